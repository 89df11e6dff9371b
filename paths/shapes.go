package paths

import "github.com/vellumcad/vellum/geom"

// Line represents a straight segment between two points.
type Line struct {
	Origin geom.Point `json:"origin" yaml:"origin"`
	End    geom.Point `json:"end" yaml:"end"`
}

// NewLine creates a line from origin to end.
func NewLine(origin, end geom.Point) *Line {
	return &Line{Origin: origin, End: end}
}

func (l *Line) Kind() Kind { return KindLine }

func (l *Line) MoveRelative(delta geom.Point) {
	l.Origin = geom.Add(l.Origin, delta)
	l.End = geom.Add(l.End, delta)
}

func (l *Line) Rotate(angleDeg float64, center geom.Point) {
	if angleDeg == 0 {
		return
	}
	l.Origin = geom.Rotate(l.Origin, angleDeg, center)
	l.End = geom.Rotate(l.End, angleDeg, center)
}

func (l *Line) Scale(k float64) {
	if k == 1 {
		return
	}
	l.Origin = geom.Scale(l.Origin, k)
	l.End = geom.Scale(l.End, k)
}

func (l *Line) Mirror(mirrorX, mirrorY bool) Path {
	return &Line{
		Origin: geom.Mirror(l.Origin, mirrorX, mirrorY),
		End:    geom.Mirror(l.End, mirrorX, mirrorY),
	}
}

// Circle represents a full circle around a center point.
type Circle struct {
	Origin geom.Point `json:"origin" yaml:"origin"`
	Radius float64    `json:"radius" yaml:"radius"`
}

// NewCircle creates a circle of the given radius around origin.
func NewCircle(origin geom.Point, radius float64) *Circle {
	return &Circle{Origin: origin, Radius: radius}
}

func (c *Circle) Kind() Kind { return KindCircle }

func (c *Circle) MoveRelative(delta geom.Point) {
	c.Origin = geom.Add(c.Origin, delta)
}

func (c *Circle) Rotate(angleDeg float64, center geom.Point) {
	if angleDeg == 0 {
		return
	}
	c.Origin = geom.Rotate(c.Origin, angleDeg, center)
}

func (c *Circle) Scale(k float64) {
	if k == 1 {
		return
	}
	c.Origin = geom.Scale(c.Origin, k)
	c.Radius *= k
}

func (c *Circle) Mirror(mirrorX, mirrorY bool) Path {
	return &Circle{
		Origin: geom.Mirror(c.Origin, mirrorX, mirrorY),
		Radius: c.Radius,
	}
}

// Arc represents a circular arc swept counterclockwise from StartAngle
// to EndAngle, in degrees, around a center point.
type Arc struct {
	Origin     geom.Point `json:"origin" yaml:"origin"`
	Radius     float64    `json:"radius" yaml:"radius"`
	StartAngle float64    `json:"startAngle" yaml:"startAngle"`
	EndAngle   float64    `json:"endAngle" yaml:"endAngle"`
}

// NewArc creates an arc around origin with the given radius, swept
// counterclockwise from startAngle to endAngle (degrees).
func NewArc(origin geom.Point, radius, startAngle, endAngle float64) *Arc {
	return &Arc{Origin: origin, Radius: radius, StartAngle: startAngle, EndAngle: endAngle}
}

func (a *Arc) Kind() Kind { return KindArc }

func (a *Arc) MoveRelative(delta geom.Point) {
	a.Origin = geom.Add(a.Origin, delta)
}

func (a *Arc) Rotate(angleDeg float64, center geom.Point) {
	if angleDeg == 0 {
		return
	}
	a.Origin = geom.Rotate(a.Origin, angleDeg, center)
	a.StartAngle += angleDeg
	a.EndAngle += angleDeg
}

func (a *Arc) Scale(k float64) {
	if k == 1 {
		return
	}
	a.Origin = geom.Scale(a.Origin, k)
	a.Radius *= k
}

func (a *Arc) Mirror(mirrorX, mirrorY bool) Path {
	start, end := a.StartAngle, a.EndAngle
	if mirrorX || mirrorY {
		start = geom.MirrorDegrees(a.StartAngle, mirrorX, mirrorY)
		end = geom.MirrorDegrees(a.adjustedEndAngle(), mirrorX, mirrorY)
		if mirrorX != mirrorY {
			// A single-axis reflection reverses the sweep direction, so
			// the mirrored end becomes the new start.
			start, end = end, start
		}
	}
	return &Arc{
		Origin:     geom.Mirror(a.Origin, mirrorX, mirrorY),
		Radius:     a.Radius,
		StartAngle: start,
		EndAngle:   end,
	}
}

// adjustedEndAngle returns the end angle compensated to sit numerically
// past the start angle, so sweep arithmetic does not wrap through zero.
func (a *Arc) adjustedEndAngle() float64 {
	if a.EndAngle < a.StartAngle {
		return a.EndAngle + 360
	}
	return a.EndAngle
}

// Sweep returns the arc's angular extent in degrees.
func (a *Arc) Sweep() float64 {
	return a.adjustedEndAngle() - a.StartAngle
}

// StartPoint returns the point where the arc begins.
func (a *Arc) StartPoint() geom.Point {
	return geom.PolarPoint(a.Origin, a.StartAngle, a.Radius)
}

// EndPoint returns the point where the arc ends.
func (a *Arc) EndPoint() geom.Point {
	return geom.PolarPoint(a.Origin, a.EndAngle, a.Radius)
}

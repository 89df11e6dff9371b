package geom

import "math"

// Point represents a 2D point.
type Point struct {
	X float64 `json:"x" yaml:"x"`
	Y float64 `json:"y" yaml:"y"`
}

// Zero returns the origin point.
func Zero() Point {
	return Point{}
}

// Add returns a+b.
func Add(a, b Point) Point {
	return Point{X: a.X + b.X, Y: a.Y + b.Y}
}

// Subtract returns a-b.
func Subtract(a, b Point) Point {
	return Point{X: a.X - b.X, Y: a.Y - b.Y}
}

// AddPtr returns a+b, treating a nil operand as the zero point.
// Optional origins are stored as *Point throughout the model tree;
// routing their composition through here keeps the absent-means-zero
// rule in exactly one place.
func AddPtr(a, b *Point) Point {
	var p Point
	if a != nil {
		p.X, p.Y = a.X, a.Y
	}
	if b != nil {
		p.X += b.X
		p.Y += b.Y
	}
	return p
}

// SubtractPtr returns a-b, treating a nil operand as the zero point.
func SubtractPtr(a, b *Point) Point {
	var p Point
	if a != nil {
		p.X, p.Y = a.X, a.Y
	}
	if b != nil {
		p.X -= b.X
		p.Y -= b.Y
	}
	return p
}

// Scale returns p scaled by k.
func Scale(p Point, k float64) Point {
	return Point{X: p.X * k, Y: p.Y * k}
}

// Mirror returns p reflected across the selected axes: mirrorX negates
// the X coordinate, mirrorY negates the Y coordinate.
func Mirror(p Point, mirrorX, mirrorY bool) Point {
	if mirrorX {
		p.X = -p.X
	}
	if mirrorY {
		p.Y = -p.Y
	}
	return p
}

// ClonePtr returns an independent copy of p, or nil if p is nil.
func ClonePtr(p *Point) *Point {
	if p == nil {
		return nil
	}
	q := *p
	return &q
}

// Distance calculates the Euclidean distance to another point.
func (p Point) Distance(other Point) float64 {
	dx := p.X - other.X
	dy := p.Y - other.Y
	return math.Sqrt(dx*dx + dy*dy)
}

// Rotate returns p rotated about center by the given angle in degrees.
func Rotate(p Point, angleDeg float64, center Point) Point {
	rad := DegToRad(angleDeg)
	sin, cos := math.Sincos(rad)
	dx := p.X - center.X
	dy := p.Y - center.Y
	return Point{
		X: center.X + dx*cos - dy*sin,
		Y: center.Y + dx*sin + dy*cos,
	}
}

// Equalish reports whether two points are equal within tolerance.
// Transform chains accumulate floating-point error, so exact comparison
// is rarely what a caller wants.
func Equalish(a, b Point, tolerance float64) bool {
	return math.Abs(a.X-b.X) <= tolerance && math.Abs(a.Y-b.Y) <= tolerance
}

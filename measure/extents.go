package measure

import (
	"math"

	"github.com/vellumcad/vellum/geom"
)

// Extents is an axis-aligned bounding rectangle in min/max corner form.
type Extents struct {
	Min geom.Point `json:"min" yaml:"min"`
	Max geom.Point `json:"max" yaml:"max"`
}

// NewExtents builds the rectangle spanned by two corners, given in any
// order.
func NewExtents(a, b geom.Point) Extents {
	return Extents{
		Min: geom.Point{X: math.Min(a.X, b.X), Y: math.Min(a.Y, b.Y)},
		Max: geom.Point{X: math.Max(a.X, b.X), Y: math.Max(a.Y, b.Y)},
	}
}

// Empty returns the identity element for Union: a rectangle containing
// nothing.
func Empty() Extents {
	return Extents{
		Min: geom.Point{X: math.Inf(1), Y: math.Inf(1)},
		Max: geom.Point{X: math.Inf(-1), Y: math.Inf(-1)},
	}
}

// IsEmpty reports whether the rectangle contains no points.
func (e Extents) IsEmpty() bool {
	return e.Min.X > e.Max.X || e.Min.Y > e.Max.Y
}

// Width returns the horizontal span.
func (e Extents) Width() float64 {
	if e.IsEmpty() {
		return 0
	}
	return e.Max.X - e.Min.X
}

// Height returns the vertical span.
func (e Extents) Height() float64 {
	if e.IsEmpty() {
		return 0
	}
	return e.Max.Y - e.Min.Y
}

// Center returns the midpoint of the rectangle.
func (e Extents) Center() geom.Point {
	return geom.Point{X: (e.Min.X + e.Max.X) / 2, Y: (e.Min.Y + e.Max.Y) / 2}
}

// Union returns the smallest rectangle containing both operands.
func (e Extents) Union(other Extents) Extents {
	if e.IsEmpty() {
		return other
	}
	if other.IsEmpty() {
		return e
	}
	return Extents{
		Min: geom.Point{X: math.Min(e.Min.X, other.Min.X), Y: math.Min(e.Min.Y, other.Min.Y)},
		Max: geom.Point{X: math.Max(e.Max.X, other.Max.X), Y: math.Max(e.Max.Y, other.Max.Y)},
	}
}

// ExtendTo returns the rectangle grown just enough to contain p.
func (e Extents) ExtendTo(p geom.Point) Extents {
	return e.Union(Extents{Min: p, Max: p})
}

// Expand returns the rectangle padded by margin on every side.
func (e Extents) Expand(margin float64) Extents {
	if e.IsEmpty() {
		return e
	}
	return Extents{
		Min: geom.Point{X: e.Min.X - margin, Y: e.Min.Y - margin},
		Max: geom.Point{X: e.Max.X + margin, Y: e.Max.Y + margin},
	}
}

// Contains reports whether p lies inside the rectangle, edges included.
func (e Extents) Contains(p geom.Point) bool {
	return p.X >= e.Min.X && p.X <= e.Max.X && p.Y >= e.Min.Y && p.Y <= e.Max.Y
}

// Offset returns the rectangle shifted by delta.
func (e Extents) Offset(delta geom.Point) Extents {
	if e.IsEmpty() {
		return e
	}
	return Extents{Min: geom.Add(e.Min, delta), Max: geom.Add(e.Max, delta)}
}

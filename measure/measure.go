// Package measure computes extents, lengths, and summary statistics
// over drawings without modifying them.
package measure

import (
	"math"

	"github.com/vellumcad/vellum/geom"
	"github.com/vellumcad/vellum/model"
	"github.com/vellumcad/vellum/paths"
)

// PathExtents returns the bounding rectangle of a single path in its
// own frame. Unknown path variants measure as empty.
func PathExtents(p paths.Path) Extents {
	switch v := p.(type) {
	case *paths.Line:
		return NewExtents(v.Origin, v.End)
	case *paths.Circle:
		return Extents{
			Min: geom.Point{X: v.Origin.X - v.Radius, Y: v.Origin.Y - v.Radius},
			Max: geom.Point{X: v.Origin.X + v.Radius, Y: v.Origin.Y + v.Radius},
		}
	case *paths.Arc:
		return arcExtents(v)
	default:
		return Empty()
	}
}

// arcExtents spans the arc's endpoints plus every quadrant crossing
// inside the sweep, where the curve reaches a horizontal or vertical
// extreme.
func arcExtents(a *paths.Arc) Extents {
	ext := Empty().ExtendTo(a.StartPoint()).ExtendTo(a.EndPoint())

	start := a.StartAngle
	end := start + a.Sweep()
	for q := math.Ceil(start/90) * 90; q <= end; q += 90 {
		ext = ext.ExtendTo(geom.PolarPoint(a.Origin, q, a.Radius))
	}
	return ext
}

// ModelExtents returns the bounding rectangle of a subtree with every
// nested origin composed in, in the frame the root's origin lives in.
// The tree is only read, never modified.
func ModelExtents(m *model.Model) Extents {
	return subtreeExtents(m, geom.Point{})
}

func subtreeExtents(m *model.Model, offset geom.Point) Extents {
	offset = geom.AddPtr(&offset, m.Origin)

	ext := Empty()
	for _, p := range m.Paths {
		pe := PathExtents(p)
		if pe.IsEmpty() {
			continue
		}
		ext = ext.Union(pe.Offset(offset))
	}
	for _, child := range m.Models {
		ext = ext.Union(subtreeExtents(child, offset))
	}
	return ext
}

// PathLength returns the arc length of a single path. Unknown path
// variants measure as zero.
func PathLength(p paths.Path) float64 {
	switch v := p.(type) {
	case *paths.Line:
		return v.Origin.Distance(v.End)
	case *paths.Circle:
		return 2 * math.Pi * v.Radius
	case *paths.Arc:
		return geom.DegToRad(v.Sweep()) * v.Radius
	default:
		return 0
	}
}

// ModelPathLength returns the total arc length of every path in the
// subtree. Length is unaffected by frame offsets, so origins are
// irrelevant here.
func ModelPathLength(m *model.Model) float64 {
	total := 0.0
	m.Walk(func(_ string, node *model.Model) {
		for _, p := range node.Paths {
			total += PathLength(p)
		}
	})
	return total
}

// Stats summarizes a subtree.
type Stats struct {
	Models  int     `json:"models" yaml:"models"`
	Paths   int     `json:"paths" yaml:"paths"`
	Depth   int     `json:"depth" yaml:"depth"`
	Length  float64 `json:"length" yaml:"length"`
	Extents Extents `json:"extents" yaml:"extents"`
}

// ModelStats gathers counts, total path length, and extents for a
// subtree in one pass over the tree.
func ModelStats(m *model.Model) Stats {
	return Stats{
		Models:  m.ModelCount(),
		Paths:   m.PathCount(),
		Depth:   m.Depth(),
		Length:  ModelPathLength(m),
		Extents: ModelExtents(m),
	}
}

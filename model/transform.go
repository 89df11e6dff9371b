package model

import (
	"github.com/vellumcad/vellum/geom"
	"github.com/vellumcad/vellum/paths"
	"github.com/vellumcad/vellum/units"
)

// Originate collapses every nested origin in the subtree into absolute
// path coordinates. After it returns, each node carries a present, zero
// origin and every path is expressed in the frame of the receiver.
// Returns the receiver for chaining.
func (m *Model) Originate() *Model {
	return m.OriginateFrom(geom.Point{})
}

// OriginateFrom flattens the subtree as if the receiver were placed at
// origin in the target frame. Each level shifts its own paths by the
// running offset, recurses with that offset, and zeroes its origin.
func (m *Model) OriginateFrom(origin geom.Point) *Model {
	newOrigin := geom.AddPtr(&origin, m.Origin)
	for _, p := range m.Paths {
		p.MoveRelative(newOrigin)
	}
	for _, child := range m.Models {
		child.OriginateFrom(newOrigin)
	}
	m.Origin = &geom.Point{}
	return m
}

// Move sets the model's origin to an independent copy of origin,
// discarding any previous value. This is an absolute set, not a
// composition with the old origin. Children keep their frames relative
// to the receiver, so they move along with it. Returns the receiver for
// chaining.
func (m *Model) Move(origin geom.Point) *Model {
	m.Origin = &origin
	return m
}

// Rotate turns the subtree's geometry by angleDeg degrees
// counterclockwise about center, given in the frame the receiver's
// origin lives in. The center is re-expressed in each node's local
// frame on the way down, so arbitrarily deep nesting composes
// correctly. The receiver's own origin is a frame offset, not geometry,
// and is left untouched. Returns the receiver for chaining.
func (m *Model) Rotate(angleDeg float64, center geom.Point) *Model {
	offset := geom.SubtractPtr(&center, m.Origin)
	for _, p := range m.Paths {
		p.Rotate(angleDeg, offset)
	}
	for _, child := range m.Models {
		child.Rotate(angleDeg, offset)
	}
	return m
}

// Scale multiplies the subtree's geometry by k. When scaleOrigin is
// true the receiver's own origin is scaled as well; child origins are
// always scaled, because they are offsets inside the frame being
// scaled. Scaling by 1 changes nothing. Returns the receiver for
// chaining.
func (m *Model) Scale(k float64, scaleOrigin bool) *Model {
	if scaleOrigin && m.Origin != nil {
		*m.Origin = geom.Scale(*m.Origin, k)
	}
	for _, p := range m.Paths {
		p.Scale(k)
	}
	for _, child := range m.Models {
		child.Scale(k, true)
	}
	return m
}

// ScaleUnits rescales the receiver so lengths in its unit system read
// correctly in dest's unit system, then leaves further bookkeeping to
// the caller. It is a no-op when either model has no units, when the
// units match, or when either identifier is unrecognized. The
// receiver's own origin is not scaled. Returns the receiver for
// chaining.
func (m *Model) ScaleUnits(dest *Model) *Model {
	if dest == nil || m.Units == "" || dest.Units == "" {
		return m
	}
	ratio, ok := units.ConversionScale(m.Units, dest.Units)
	if !ok || ratio == 1 {
		return m
	}
	return m.Scale(ratio, false)
}

// Mirror returns a new, fully independent subtree reflected across the
// selected axes. Fields absent on the source stay absent on the copy;
// nothing in the source is modified. Mirroring across neither axis is a
// plain deep copy.
func (m *Model) Mirror(mirrorX, mirrorY bool) *Model {
	out := &Model{Type: m.Type, Units: m.Units}

	if m.Origin != nil {
		origin := geom.Mirror(*m.Origin, mirrorX, mirrorY)
		out.Origin = &origin
	}
	if m.Paths != nil {
		out.Paths = make(map[string]paths.Path, len(m.Paths))
		for name, p := range m.Paths {
			out.Paths[name] = p.Mirror(mirrorX, mirrorY)
		}
	}
	if m.Models != nil {
		out.Models = make(map[string]*Model, len(m.Models))
		for name, child := range m.Models {
			out.Models[name] = child.Mirror(mirrorX, mirrorY)
		}
	}
	return out
}

// Clone returns a deep copy of the subtree sharing nothing with the
// receiver.
func (m *Model) Clone() *Model {
	return m.Mirror(false, false)
}

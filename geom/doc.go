// Package geom provides the geometric primitives shared by all of vellum.
//
// This package defines the value types that the model tree and the path
// primitives are built from. All coordinates are float64 and all angles
// on the public API are expressed in degrees, using the standard
// mathematical convention (counterclockwise positive, 0 along +X).
//
// # Points
//
// The [Point] type is an immutable pair of coordinates, produced and
// consumed by value:
//
//	p := geom.Point{X: 3, Y: 4}
//	q := geom.Add(p, geom.Point{X: 1, Y: 1})
//
// Model origins are optional and therefore passed around as *Point. The
// pointer-aware helpers [AddPtr] and [SubtractPtr] treat a nil operand as
// the zero point, so every caller composes absent origins the same way.
//
// # Angles
//
// Degree/radian conversion and angle reflection live here so that path
// and exporter code share one definition:
//
//	geom.MirrorDegrees(30, true, false) // 150
//
// # Matrices
//
// [Matrix] is a 2D affine transformation in the usual 6-element layout,
// used by the export backends to map drawing space onto page or pixel
// space. The model transform engine does not use matrices; it composes
// origins directly.
package geom

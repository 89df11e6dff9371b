// Package model defines the composition tree for 2D vector drawings and
// the transform engine that operates on it.
//
// A drawing is a tree of [Model] nodes. Each node optionally carries a
// local origin (its frame offset within the parent), a set of named
// paths drawn in that local frame, and named child models. Geometry at
// any depth is interpreted relative to the composition of every
// ancestor origin above it.
//
// # Building a Tree
//
// Models are assembled with [New] and the chaining helpers:
//
//	wheel := model.New().
//		AddPath("rim", paths.NewCircle(geom.Point{}, 40)).
//		AddPath("hub", paths.NewCircle(geom.Point{}, 6))
//
//	cart := model.New().
//		AddModel("front", wheel.Clone().Move(geom.Point{X: -55})).
//		AddModel("rear", wheel.Move(geom.Point{X: 55}))
//
// # Transforms
//
// Six operations reposition, reflect, rotate, and rescale a subtree
// while keeping every nested frame consistent:
//
//   - [Model.Originate] bakes all nested origins into absolute path
//     coordinates and zeroes every origin in the subtree.
//   - [Model.Move] overwrites a node's origin with an absolute point.
//   - [Model.Rotate] rotates a subtree's geometry about a point,
//     re-expressing the center through each nested frame.
//   - [Model.Scale] scales a subtree's geometry, optionally including
//     the top node's own origin.
//   - [Model.ScaleUnits] rescales one model so its unit system matches
//     another's.
//   - [Model.Mirror] returns a reflected, fully independent copy.
//
// All of them except Mirror mutate the receiver in place and return it
// for chaining. Mirror never touches its input; [Model.Clone] is the
// degenerate mirror across no axes.
//
// # Optional Fields
//
// Every Model field may be absent: a nil Origin composes as the zero
// point, empty Type and Units strings mean untagged, and nil maps mean
// no content at that level. The transforms branch on presence and never
// materialize a field the source did not have, with one exception:
// Originate leaves a present, zeroed origin on every node it visits.
//
// # Concurrency
//
// The mutating transforms assume exclusive access to the tree for the
// duration of the call. Mirror only reads its input, so it may run
// alongside other readers of the same tree, but not alongside a
// mutation.
package model

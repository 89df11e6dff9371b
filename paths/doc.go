// Package paths defines the geometric path primitives owned by models.
//
// A path is a single primitive (line, circle or arc) expressed in the
// coordinate frame of its owning model. The model transform engine treats
// paths only through the four uniform primitives on the [Path] interface;
// it has no knowledge of the concrete variants.
//
// # Variants
//
// The concrete types are:
//
//   - [Line] - a straight segment from Origin to End
//   - [Circle] - a full circle of Radius around Origin
//   - [Arc] - a circular arc swept counterclockwise from StartAngle to
//     EndAngle (degrees) around Origin
//
// # Transform primitives
//
// Each variant implements the same contract:
//
//   - MoveRelative shifts the defining coordinates in place
//   - Rotate rotates about a center in place (degrees, counterclockwise)
//   - Scale multiplies geometry, including radii, in place
//   - Mirror returns a new, independent reflected path and leaves the
//     source untouched; Mirror(false, false) is a deep copy
//
// # Serialization
//
// Paths carry a "type" discriminator when serialized so that maps of
// mixed variants round-trip through JSON and YAML:
//
//	{"type": "line", "origin": {"x": 0, "y": 0}, "end": {"x": 1, "y": 1}}
//
// [UnmarshalJSON] and [UnmarshalYAML] dispatch on that tag.
package paths

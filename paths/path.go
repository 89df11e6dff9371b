package paths

import "github.com/vellumcad/vellum/geom"

// Kind identifies the concrete variant of a path.
type Kind int

const (
	KindUnknown Kind = iota
	KindLine
	KindCircle
	KindArc
)

func (k Kind) String() string {
	switch k {
	case KindLine:
		return "line"
	case KindCircle:
		return "circle"
	case KindArc:
		return "arc"
	default:
		return "unknown"
	}
}

// KindOf maps a serialized type tag back to a Kind.
func KindOf(tag string) Kind {
	switch tag {
	case "line":
		return KindLine
	case "circle":
		return KindCircle
	case "arc":
		return KindArc
	default:
		return KindUnknown
	}
}

// Path is the interface implemented by every path variant. The mutating
// primitives operate in place; Mirror allocates.
type Path interface {
	// Kind reports the concrete variant.
	Kind() Kind

	// MoveRelative shifts the path's defining coordinates by delta.
	MoveRelative(delta geom.Point)

	// Rotate rotates the path about center by the given angle in
	// degrees. Rotating by zero leaves the geometry untouched.
	Rotate(angleDeg float64, center geom.Point)

	// Scale multiplies the path's geometry, including any radius, by k.
	// Scaling by one leaves the geometry untouched.
	Scale(k float64)

	// Mirror returns a new, independent path reflected across the
	// selected axes. The receiver is never modified; mirroring across
	// neither axis yields a deep copy.
	Mirror(mirrorX, mirrorY bool) Path
}

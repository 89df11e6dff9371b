// Package units names the supported unit systems and converts lengths
// between them. A unit identifier is an opaque string carried on a
// model; the conversion table is the only place it is interpreted.
package units

// Supported unit system identifiers.
const (
	Millimeter = "mm"
	Centimeter = "cm"
	Meter      = "m"
	Inch       = "inch"
	Foot       = "foot"
)

// Every supported unit expressed in millimeters.
var millimetersPer = map[string]float64{
	Millimeter: 1,
	Centimeter: 10,
	Meter:      1000,
	Inch:       25.4,
	Foot:       304.8,
}

// ConversionScale returns the factor that converts lengths in from
// units into to units. The second result is false when either
// identifier is unrecognized. Converting a unit to itself is exactly 1.
func ConversionScale(from, to string) (float64, bool) {
	f, okFrom := millimetersPer[from]
	t, okTo := millimetersPer[to]
	if !okFrom || !okTo {
		return 0, false
	}
	return f / t, true
}

// Valid reports whether id names a supported unit system.
func Valid(id string) bool {
	_, ok := millimetersPer[id]
	return ok
}

// All returns the supported unit identifiers in a stable order.
func All() []string {
	return []string{Millimeter, Centimeter, Meter, Inch, Foot}
}

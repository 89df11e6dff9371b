package geom

import "math"

// DegToRad converts an angle in degrees to radians.
func DegToRad(angleDeg float64) float64 {
	return angleDeg * math.Pi / 180
}

// RadToDeg converts an angle in radians to degrees.
func RadToDeg(angleRad float64) float64 {
	return angleRad * 180 / math.Pi
}

// NormalizeDegrees maps an angle into the [0, 360) range.
func NormalizeDegrees(angleDeg float64) float64 {
	d := math.Mod(angleDeg, 360)
	if d < 0 {
		d += 360
	}
	return d
}

// MirrorDegrees reflects an angle across the selected axes. A direction
// vector at the returned angle is the axis reflection of a direction
// vector at the input angle: negating X maps t to 180-t, negating Y maps
// t to -t. The result is not normalized; with neither axis selected the
// input comes back unchanged.
func MirrorDegrees(angleDeg float64, mirrorX, mirrorY bool) float64 {
	if mirrorY {
		angleDeg = 360 - angleDeg
	}
	if mirrorX {
		if angleDeg < 180 {
			angleDeg = 180 - angleDeg
		} else {
			angleDeg = 540 - angleDeg
		}
	}
	return angleDeg
}

// PolarPoint returns the point at the given angle (degrees) and radius
// from center.
func PolarPoint(center Point, angleDeg, radius float64) Point {
	rad := DegToRad(angleDeg)
	sin, cos := math.Sincos(rad)
	return Point{X: center.X + radius*cos, Y: center.Y + radius*sin}
}

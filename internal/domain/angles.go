package domain

import "math"

// Deg2Rad converts degrees to radians.
func Deg2Rad(deg float64) float64 {
	return deg * math.Pi / 180.0
}

// Rad2Deg converts radians to degrees.
func Rad2Deg(rad float64) float64 {
	return rad * 180.0 / math.Pi
}

// normalizeDeg360 maps an angle in degrees into [0, 360).
func normalizeDeg360(deg float64) float64 {
	deg = math.Mod(deg, 360.0)
	if deg < 0 {
		deg += 360.0
	}
	// math.Mod(-1e-15, 360) + 360 rounds to 360.
	if deg >= 360.0 {
		deg = 0
	}
	return deg
}

func clampFloat(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}

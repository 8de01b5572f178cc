package netcdfgrid

import (
	"math"

	"go.ngs.io/solar-api/internal/interp"
)

// Bounds is the lat/lon extent of a loaded grid window.
type Bounds struct {
	MinLat, MaxLat float64
	MinLon, MaxLon float64
	// Wrap360 is set when the longitude axis runs over [0, 360).
	Wrap360 bool
}

// Contains reports whether (lat, lon) falls inside b. A nil Bounds contains nothing.
func (b *Bounds) Contains(lat, lon float64) bool {
	if b == nil {
		return false
	}
	if b.Wrap360 {
		lon = normalizeLon360(lon)
	}
	return lat >= b.MinLat && lat <= b.MaxLat && lon >= b.MinLon && lon <= b.MaxLon
}

// BoundsOf returns the extent of grid, or nil for an empty grid.
func BoundsOf(grid *interp.Grid2D) *Bounds {
	if grid == nil || len(grid.X) == 0 || len(grid.Y) == 0 {
		return nil
	}
	minLon, maxLon := axisRange(grid.X)
	minLat, maxLat := axisRange(grid.Y)
	return &Bounds{
		MinLat:  minLat,
		MaxLat:  maxLat,
		MinLon:  minLon,
		MaxLon:  maxLon,
		Wrap360: wrapsAt360(grid.X),
	}
}

func axisRange(axis []float64) (lo, hi float64) {
	lo, hi = axis[0], axis[len(axis)-1]
	if lo > hi {
		lo, hi = hi, lo
	}
	return lo, hi
}

// wrapsAt360 reports whether a longitude axis uses the [0, 360) convention.
func wrapsAt360(lons []float64) bool {
	if len(lons) == 0 {
		return false
	}
	lo, hi := axisRange(lons)
	return lo >= 0 && hi > 180
}

func normalizeLon360(lon float64) float64 {
	lon = math.Mod(lon, 360)
	if lon < 0 {
		lon += 360
	}
	return lon
}

// LonForAxis maps lon onto the convention used by the axis.
func LonForAxis(lons []float64, lon float64) float64 {
	if wrapsAt360(lons) {
		return normalizeLon360(lon)
	}
	return lon
}

// nearestIndex returns the index of the element of a monotonic axis closest to target.
func nearestIndex(axis []float64, target float64) int {
	if len(axis) == 0 {
		return 0
	}
	desc := axis[0] > axis[len(axis)-1]
	left, right := 0, len(axis)-1
	for left < right {
		mid := (left + right) / 2
		if desc && axis[mid] > target || !desc && axis[mid] < target {
			left = mid + 1
		} else {
			right = mid
		}
	}
	if left > 0 && math.Abs(axis[left-1]-target) < math.Abs(axis[left]-target) {
		return left - 1
	}
	return left
}

func clampIndex(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Package interp interpolates values on regular grids and lookup tables.
package interp

import (
	"errors"
	"fmt"
	"math"
	"sort"
)

// ErrNoData is returned when every corner of the enclosing cell is missing (NaN).
var ErrNoData = errors.New("no data at point")

// Grid2D is a regular grid. Either axis may be ascending or descending,
// as NetCDF files store latitude both ways.
type Grid2D struct {
	X      []float64   // X coordinates (e.g., longitudes).
	Y      []float64   // Y coordinates (e.g., latitudes).
	Values [][]float64 // Values[i][j] corresponds to (X[j], Y[i]). NaN marks missing data.
}

// Validate checks the grid shape and that both axes are strictly monotonic.
func (g *Grid2D) Validate() error {
	if len(g.X) < 2 {
		return fmt.Errorf("grid must have at least 2 X coordinates")
	}
	if len(g.Y) < 2 {
		return fmt.Errorf("grid must have at least 2 Y coordinates")
	}
	if len(g.Values) != len(g.Y) {
		return fmt.Errorf("number of value rows (%d) must match Y coordinates (%d)", len(g.Values), len(g.Y))
	}
	for i, row := range g.Values {
		if len(row) != len(g.X) {
			return fmt.Errorf("row %d has %d values, expected %d", i, len(row), len(g.X))
		}
	}
	if !monotonic(g.X) {
		return fmt.Errorf("X coordinates must be strictly monotonic")
	}
	if !monotonic(g.Y) {
		return fmt.Errorf("Y coordinates must be strictly monotonic")
	}
	return nil
}

// At returns the bilinearly interpolated value at (x, y). Missing corners
// are dropped and the remaining weights renormalised.
func (g *Grid2D) At(x, y float64) (float64, error) {
	i, t, ok := locate(g.X, x)
	if !ok {
		return 0, fmt.Errorf("x coordinate %.6f is outside grid range [%.6f, %.6f]", x, g.X[0], g.X[len(g.X)-1])
	}
	j, u, ok := locate(g.Y, y)
	if !ok {
		return 0, fmt.Errorf("y coordinate %.6f is outside grid range [%.6f, %.6f]", y, g.Y[0], g.Y[len(g.Y)-1])
	}
	return bilinear(t, u,
		g.Values[j][i], g.Values[j][i+1],
		g.Values[j+1][i], g.Values[j+1][i+1])
}

// bilinear blends the corners of a unit cell:
//
//	f(t,u) = (1-t)(1-u)v00 + t(1-u)v10 + (1-t)u v01 + tu v11
func bilinear(t, u, v00, v10, v01, v11 float64) (float64, error) {
	weights := [4]float64{(1 - t) * (1 - u), t * (1 - u), (1 - t) * u, t * u}
	values := [4]float64{v00, v10, v01, v11}
	var sum, wsum float64
	for k, v := range values {
		if math.IsNaN(v) {
			continue
		}
		sum += weights[k] * v
		wsum += weights[k]
	}
	if wsum == 0 {
		return 0, ErrNoData
	}
	return sum / wsum, nil
}

// locate returns the cell index i with v between axis[i] and axis[i+1], and
// the fractional position t in [0, 1] from axis[i].
func locate(axis []float64, v float64) (int, float64, bool) {
	n := len(axis)
	if n < 2 || math.IsNaN(v) {
		return 0, 0, false
	}
	desc := axis[0] > axis[n-1]
	lo, hi := axis[0], axis[n-1]
	if desc {
		lo, hi = hi, lo
	}
	if v < lo || v > hi {
		return 0, 0, false
	}

	// First index whose coordinate is past v in axis order.
	k := sort.Search(n, func(k int) bool {
		if desc {
			return axis[k] < v
		}
		return axis[k] > v
	})
	i := min(max(k-1, 0), n-2)
	t := (v - axis[i]) / (axis[i+1] - axis[i])
	return i, math.Max(0, math.Min(1, t)), true
}

func monotonic(axis []float64) bool {
	if len(axis) < 2 {
		return true
	}
	desc := axis[0] > axis[1]
	for i := 1; i < len(axis); i++ {
		if desc && axis[i] >= axis[i-1] || !desc && axis[i] <= axis[i-1] {
			return false
		}
	}
	return true
}

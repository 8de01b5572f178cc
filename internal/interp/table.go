package interp

import (
	"fmt"
	"sort"
)

// Table1D is a piecewise-linear lookup table with strictly increasing X.
// Lookups outside the table clamp to the end values.
type Table1D struct {
	X []float64
	Y []float64
}

// NewTable1D builds a table from (x, y) pairs.
func NewTable1D(pairs ...[2]float64) (*Table1D, error) {
	t := &Table1D{X: make([]float64, len(pairs)), Y: make([]float64, len(pairs))}
	for i, p := range pairs {
		t.X[i], t.Y[i] = p[0], p[1]
	}
	if len(pairs) == 0 {
		return nil, fmt.Errorf("table must have at least one entry")
	}
	for i := 1; i < len(t.X); i++ {
		if t.X[i] <= t.X[i-1] {
			return nil, fmt.Errorf("table X must be strictly increasing at index %d", i)
		}
	}
	return t, nil
}

// MustTable1D is NewTable1D for package-level tables.
func MustTable1D(pairs ...[2]float64) *Table1D {
	t, err := NewTable1D(pairs...)
	if err != nil {
		panic(err)
	}
	return t
}

// At returns the interpolated value at x.
func (t *Table1D) At(x float64) float64 {
	n := len(t.X)
	if x <= t.X[0] {
		return t.Y[0]
	}
	if x >= t.X[n-1] {
		return t.Y[n-1]
	}
	k := sort.SearchFloat64s(t.X, x)
	if t.X[k] == x {
		return t.Y[k]
	}
	f := (x - t.X[k-1]) / (t.X[k] - t.X[k-1])
	return t.Y[k-1] + f*(t.Y[k]-t.Y[k-1])
}

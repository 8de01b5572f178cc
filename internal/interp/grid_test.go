package interp

import (
	"errors"
	"math"
	"testing"
)

func testGrid() *Grid2D {
	return &Grid2D{
		X: []float64{0.0, 1.0, 2.0},
		Y: []float64{0.0, 1.0, 2.0},
		Values: [][]float64{
			{1.0, 2.0, 3.0}, // y=0
			{4.0, 5.0, 6.0}, // y=1
			{7.0, 8.0, 9.0}, // y=2
		},
	}
}

func TestGrid2D_At(t *testing.T) {
	grid := testGrid()
	if err := grid.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}

	tests := []struct {
		x, y     float64
		expected float64
	}{
		{0.0, 0.0, 1.0},
		{1.0, 0.0, 2.0},
		{2.0, 0.0, 3.0},
		{0.0, 1.0, 4.0},
		{1.0, 1.0, 5.0},
		{2.0, 2.0, 9.0},
		{0.5, 0.5, 3.0},
		{1.5, 0.5, 4.0},
		{0.25, 1.75, 6.5},
	}

	for _, tt := range tests {
		v, err := grid.At(tt.x, tt.y)
		if err != nil {
			t.Fatalf("At(%.2f, %.2f): %v", tt.x, tt.y, err)
		}
		if math.Abs(v-tt.expected) > 1e-9 {
			t.Errorf("At(%.2f, %.2f): expected %.10f, got %.10f", tt.x, tt.y, tt.expected, v)
		}
	}
}

func TestGrid2D_DescendingAxis(t *testing.T) {
	// Same surface as testGrid with the Y axis stored north to south.
	grid := &Grid2D{
		X: []float64{0.0, 1.0, 2.0},
		Y: []float64{2.0, 1.0, 0.0},
		Values: [][]float64{
			{7.0, 8.0, 9.0},
			{4.0, 5.0, 6.0},
			{1.0, 2.0, 3.0},
		},
	}
	if err := grid.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}
	ref := testGrid()
	for _, p := range [][2]float64{{0, 0}, {0.5, 0.5}, {1.5, 1.25}, {2, 2}, {0.3, 1.9}} {
		want, err := ref.At(p[0], p[1])
		if err != nil {
			t.Fatal(err)
		}
		got, err := grid.At(p[0], p[1])
		if err != nil {
			t.Fatalf("At(%v): %v", p, err)
		}
		if math.Abs(got-want) > 1e-9 {
			t.Errorf("At(%v): expected %.10f, got %.10f", p, want, got)
		}
	}
}

func TestGrid2D_OutOfBounds(t *testing.T) {
	grid := testGrid()
	tests := []struct {
		x, y float64
		name string
	}{
		{-1.0, 1.0, "x too small"},
		{3.0, 1.0, "x too large"},
		{1.0, -0.1, "y too small"},
		{1.0, 2.1, "y too large"},
		{math.NaN(), 1.0, "x NaN"},
	}
	for _, tt := range tests {
		if _, err := grid.At(tt.x, tt.y); err == nil {
			t.Errorf("%s: expected error for point (%.1f, %.1f), got nil", tt.name, tt.x, tt.y)
		}
	}
}

func TestGrid2D_MissingValues(t *testing.T) {
	nan := math.NaN()
	grid := &Grid2D{
		X: []float64{0, 1},
		Y: []float64{0, 1},
		Values: [][]float64{
			{10, nan},
			{nan, nan},
		},
	}
	// Only one valid corner: its value is returned wherever it has weight.
	v, err := grid.At(0.5, 0.5)
	if err != nil {
		t.Fatalf("At: %v", err)
	}
	if v != 10 {
		t.Errorf("Expected 10, got %v", v)
	}

	// The valid corner has zero weight at the opposite corner.
	if _, err := grid.At(1, 1); !errors.Is(err, ErrNoData) {
		t.Errorf("Expected ErrNoData, got %v", err)
	}
}

func TestGrid2D_Validate(t *testing.T) {
	tests := []struct {
		name string
		grid Grid2D
	}{
		{"short X", Grid2D{X: []float64{0}, Y: []float64{0, 1}, Values: [][]float64{{1}, {1}}}},
		{"row count", Grid2D{X: []float64{0, 1}, Y: []float64{0, 1}, Values: [][]float64{{1, 2}}}},
		{"row length", Grid2D{X: []float64{0, 1}, Y: []float64{0, 1}, Values: [][]float64{{1, 2}, {1}}}},
		{"repeated X", Grid2D{X: []float64{0, 0}, Y: []float64{0, 1}, Values: [][]float64{{1, 2}, {3, 4}}}},
		{"zigzag Y", Grid2D{X: []float64{0, 1}, Y: []float64{0, 2, 1}, Values: [][]float64{{1, 2}, {3, 4}, {5, 6}}}},
	}
	for _, tt := range tests {
		if err := tt.grid.Validate(); err == nil {
			t.Errorf("%s: expected validation error", tt.name)
		}
	}
}

func TestTable1D(t *testing.T) {
	table := MustTable1D([2]float64{0, 0}, [2]float64{10, 100}, [2]float64{20, 150})
	tests := []struct {
		x, expected float64
	}{
		{-5, 0},
		{0, 0},
		{5, 50},
		{10, 100},
		{15, 125},
		{20, 150},
		{99, 150},
	}
	for _, tt := range tests {
		if got := table.At(tt.x); math.Abs(got-tt.expected) > 1e-9 {
			t.Errorf("At(%v): expected %v, got %v", tt.x, tt.expected, got)
		}
	}

	if _, err := NewTable1D([2]float64{1, 0}, [2]float64{1, 1}); err == nil {
		t.Error("Expected error for repeated X")
	}
	if _, err := NewTable1D(); err == nil {
		t.Error("Expected error for empty table")
	}
}

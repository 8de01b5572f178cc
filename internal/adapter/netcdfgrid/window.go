package netcdfgrid

import (
	"fmt"
	"sync"

	"go.ngs.io/solar-api/internal/interp"
)

// Window caches one loaded grid window and reloads it when a lookup falls
// outside its bounds. It is safe for concurrent use.
type Window struct {
	src Source

	mu     sync.Mutex
	grid   *interp.Grid2D
	bounds *Bounds
	loads  int
}

// NewWindow creates a lazily loaded window over src.
func NewWindow(src Source) *Window {
	return &Window{src: src}
}

// Path returns the backing file path.
func (w *Window) Path() string {
	return w.src.Path
}

// ValueAt returns the bilinearly interpolated grid value at (lat, lon).
func (w *Window) ValueAt(lat, lon float64) (float64, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.grid == nil || !w.bounds.Contains(lat, lon) {
		grid, err := Load(w.src, lat, lon)
		if err != nil {
			return 0, err
		}
		w.grid = grid
		w.bounds = BoundsOf(grid)
		w.loads++
	}

	v, err := w.grid.At(LonForAxis(w.grid.X, lon), lat)
	if err != nil {
		return 0, fmt.Errorf("failed to interpolate %s: %w", w.src.Path, err)
	}
	return v, nil
}

// Loads returns how many times the window has been read from disk.
func (w *Window) Loads() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.loads
}

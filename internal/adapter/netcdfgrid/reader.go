// Package netcdfgrid reads windows of regular lat/lon grids from NetCDF files.
//
// Terrain elevation and geoid undulation grids are both served through it.
package netcdfgrid

import (
	"fmt"
	"slices"

	"github.com/fhs/go-netcdf/netcdf"

	"go.ngs.io/solar-api/internal/interp"
)

// Source names a grid file and the variable names to look for in it.
// Each name list is tried in order before the common fallbacks.
type Source struct {
	Path      string
	LatNames  []string
	LonNames  []string
	DataNames []string
	// MarginDeg is the half-width of the window read around a target point.
	// Zero reads the whole grid.
	MarginDeg float64
}

//nolint:gochecknoglobals // Fallback variable names shared by all sources.
var (
	fallbackLat  = []string{"lat", "latitude", "y"}
	fallbackLon  = []string{"lon", "longitude", "x"}
	fallbackData = []string{"z", "data"}
)

// Load reads the window of src centred on (lat, lon).
//
//nolint:gocyclo // Variable lookup and dimension order handling.
func Load(src Source, lat, lon float64) (*interp.Grid2D, error) {
	nc, err := netcdf.OpenFile(src.Path, netcdf.NOWRITE)
	if err != nil {
		return nil, fmt.Errorf("failed to open NetCDF file %s: %w", src.Path, err)
	}
	defer func() { _ = nc.Close() }()

	latAxis, err := readAxis(nc, slices.Concat(src.LatNames, fallbackLat))
	if err != nil {
		return nil, fmt.Errorf("latitude: %w", err)
	}
	lonAxis, err := readAxis(nc, slices.Concat(src.LonNames, fallbackLon))
	if err != nil {
		return nil, fmt.Errorf("longitude: %w", err)
	}
	if len(latAxis) < 2 || len(lonAxis) < 2 {
		return nil, fmt.Errorf("grid axes too short: %d lat, %d lon", len(latAxis), len(lonAxis))
	}

	dataNames := slices.Concat(src.DataNames, fallbackData)
	dataVar, ok := findVar(nc, dataNames)
	if !ok {
		return nil, fmt.Errorf("data variable not found (tried: %v)", dataNames)
	}

	latWin := fullWindow(len(latAxis))
	lonWin := fullWindow(len(lonAxis))
	if src.MarginDeg > 0 {
		latWin = windowAround(latAxis, lat, lat-src.MarginDeg, lat+src.MarginDeg)
		lonWin = windowAround(lonAxis,
			LonForAxis(lonAxis, lon),
			LonForAxis(lonAxis, lon-src.MarginDeg),
			LonForAxis(lonAxis, lon+src.MarginDeg))
	}

	dims, err := dataVar.Dims()
	if err != nil {
		return nil, fmt.Errorf("failed to get dimensions: %w", err)
	}
	if len(dims) != 2 {
		return nil, fmt.Errorf("expected 2D data, got %dD", len(dims))
	}
	dim0, err := dims[0].Len()
	if err != nil {
		return nil, fmt.Errorf("failed to get dim0 length: %w", err)
	}
	dim1, err := dims[1].Len()
	if err != nil {
		return nil, fmt.Errorf("failed to get dim1 length: %w", err)
	}

	nLat, nLon := uint64(len(latAxis)), uint64(len(lonAxis))
	var values [][]float64
	switch {
	case dim0 == nLat && dim1 == nLon:
		values, err = readWindow(dataVar, latWin, lonWin)
	case dim0 == nLon && dim1 == nLat:
		var t [][]float64
		t, err = readWindow(dataVar, lonWin, latWin)
		values = transpose(t)
	default:
		return nil, fmt.Errorf("dimension mismatch: data is [%d, %d], expected [%d, %d] or [%d, %d]",
			dim0, dim1, nLat, nLon, nLon, nLat)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read data: %w", err)
	}

	grid := &interp.Grid2D{
		X:      lonAxis[lonWin.start:lonWin.end],
		Y:      latAxis[latWin.start:latWin.end],
		Values: values,
	}
	if err := grid.Validate(); err != nil {
		return nil, fmt.Errorf("invalid grid: %w", err)
	}
	return grid, nil
}

// window is a half-open index range [start, end) along one axis.
type window struct {
	start, end int
}

func (w window) len() int { return w.end - w.start }

func fullWindow(n int) window {
	return window{0, n}
}

// windowAround returns the index range spanning [lo, hi] that also covers
// target, with at least two samples.
func windowAround(axis []float64, target, lo, hi float64) window {
	i0 := nearestIndex(axis, lo)
	i1 := nearestIndex(axis, hi)
	if i0 > i1 {
		i0, i1 = i1, i0
	}
	if it := nearestIndex(axis, target); it < i0 {
		i0 = it
	} else if it > i1 {
		i1 = it
	}
	start := clampIndex(i0, 0, len(axis)-2)
	end := clampIndex(i1+1, start+2, len(axis))
	return window{start, end}
}

func findVar(nc netcdf.Dataset, names []string) (netcdf.Var, bool) {
	for _, name := range names {
		if v, err := nc.Var(name); err == nil {
			return v, true
		}
	}
	return netcdf.Var{}, false
}

func readAxis(nc netcdf.Dataset, names []string) ([]float64, error) {
	for _, name := range names {
		v, err := nc.Var(name)
		if err != nil {
			continue
		}
		dims, err := v.Dims()
		if err != nil || len(dims) != 1 {
			continue
		}
		n, err := dims[0].Len()
		if err != nil {
			continue
		}
		data := make([]float64, n)
		if err := v.ReadFloat64s(data); err != nil {
			continue
		}
		return data, nil
	}
	return nil, fmt.Errorf("variable not found (tried: %v)", names)
}

// readWindow reads rows × cols from a 2D variable and applies scale_factor and add_offset.
//
//nolint:gosec // G115: window indices are non-negative.
func readWindow(v netcdf.Var, rows, cols window) ([][]float64, error) {
	varType, err := v.Type()
	if err != nil {
		return nil, fmt.Errorf("failed to get variable type: %w", err)
	}

	n := rows.len() * cols.len()
	start := []uint64{uint64(rows.start), uint64(cols.start)}
	count := []uint64{uint64(rows.len()), uint64(cols.len())}
	flat := make([]float64, n)

	switch varType {
	case netcdf.DOUBLE:
		err = v.ReadFloat64Slice(flat, start, count)
	case netcdf.FLOAT:
		buf := make([]float32, n)
		if err = v.ReadFloat32Slice(buf, start, count); err == nil {
			for i, x := range buf {
				flat[i] = float64(x)
			}
		}
	case netcdf.SHORT:
		buf := make([]int16, n)
		if err = v.ReadInt16Slice(buf, start, count); err == nil {
			for i, x := range buf {
				flat[i] = float64(x)
			}
		}
	case netcdf.INT:
		buf := make([]int32, n)
		if err = v.ReadInt32Slice(buf, start, count); err == nil {
			for i, x := range buf {
				flat[i] = float64(x)
			}
		}
	default:
		return nil, fmt.Errorf("unsupported data type: %v (expected DOUBLE, FLOAT, INT, or SHORT)", varType)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read %v window: %w", varType, err)
	}

	scale, hasScale := scalarAttr(v, "scale_factor")
	offset, hasOffset := scalarAttr(v, "add_offset")
	if (hasScale && scale != 0 && scale != 1) || (hasOffset && offset != 0) {
		if !hasScale || scale == 0 {
			scale = 1
		}
		for i := range flat {
			flat[i] = flat[i]*scale + offset
		}
	}

	values := make([][]float64, rows.len())
	for i := range values {
		values[i] = flat[i*cols.len() : (i+1)*cols.len()]
	}
	return values, nil
}

// scalarAttr reads a numeric attribute stored as double, float or int.
// Typed reads fail on a type mismatch, so each type is tried in turn.
func scalarAttr(v netcdf.Var, name string) (float64, bool) {
	a := v.Attr(name)
	if n, err := a.Len(); err != nil || n == 0 {
		return 0, false
	}
	f := make([]float64, 1)
	if err := a.ReadFloat64s(f); err == nil {
		return f[0], true
	}
	f32 := make([]float32, 1)
	if err := a.ReadFloat32s(f32); err == nil {
		return float64(f32[0]), true
	}
	i := make([]int32, 1)
	if err := a.ReadInt32s(i); err == nil {
		return float64(i[0]), true
	}
	return 0, false
}

func transpose(data [][]float64) [][]float64 {
	if len(data) == 0 {
		return data
	}
	out := make([][]float64, len(data[0]))
	for i := range out {
		out[i] = make([]float64, len(data))
		for j := range data {
			out[i][j] = data[j][i]
		}
	}
	return out
}

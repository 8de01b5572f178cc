// Package netcdfgridtest writes small lat/lon grids for tests.
package netcdfgridtest

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/fhs/go-netcdf/netcdf"
)

// Grid describes a file written by Write. Values is indexed [lat][lon].
type Grid struct {
	LatName, LonName, DataName string
	Lat, Lon                   []float64
	Values                     [][]float32

	// Packed stores Values as SHORT raw counts instead of FLOAT.
	Packed bool
	// ScaleFactor and AddOffset are written when non-zero, as FLOAT
	// attributes when Float32Attrs is set and DOUBLE otherwise.
	ScaleFactor  float64
	AddOffset    float64
	Float32Attrs bool
}

// Write creates a NetCDF file at path holding g, failing the test on error.
func Write(t *testing.T, path string, g Grid) {
	t.Helper()
	//nolint:gosec // G301: Standard test directory permissions.
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	f, err := netcdf.CreateFile(path, netcdf.CLOBBER)
	if err != nil {
		t.Fatalf("create nc: %v", err)
	}
	defer func() { _ = f.Close() }()

	latDim, err := f.AddDim(g.LatName, uint64(len(g.Lat)))
	if err != nil {
		t.Fatalf("add lat dim: %v", err)
	}
	lonDim, err := f.AddDim(g.LonName, uint64(len(g.Lon)))
	if err != nil {
		t.Fatalf("add lon dim: %v", err)
	}
	vlat, _ := f.AddVar(g.LatName, netcdf.DOUBLE, []netcdf.Dim{latDim})
	vlon, _ := f.AddVar(g.LonName, netcdf.DOUBLE, []netcdf.Dim{lonDim})
	dataType := netcdf.FLOAT
	if g.Packed {
		dataType = netcdf.SHORT
	}
	vdata, err := f.AddVar(g.DataName, dataType, []netcdf.Dim{latDim, lonDim})
	if err != nil {
		t.Fatalf("add data var: %v", err)
	}
	writeAttr(t, vdata, "scale_factor", g.ScaleFactor, g.Float32Attrs)
	writeAttr(t, vdata, "add_offset", g.AddOffset, g.Float32Attrs)

	if err := f.EndDef(); err != nil {
		t.Fatalf("enddef: %v", err)
	}
	if err := vlat.WriteFloat64s(g.Lat); err != nil {
		t.Fatalf("write lat: %v", err)
	}
	if err := vlon.WriteFloat64s(g.Lon); err != nil {
		t.Fatalf("write lon: %v", err)
	}
	flat := make([]float32, 0, len(g.Lat)*len(g.Lon))
	for _, row := range g.Values {
		flat = append(flat, row...)
	}
	if g.Packed {
		raw := make([]int16, len(flat))
		for i, v := range flat {
			raw[i] = int16(v)
		}
		err = vdata.WriteInt16s(raw)
	} else {
		err = vdata.WriteFloat32s(flat)
	}
	if err != nil {
		t.Fatalf("write %s: %v", g.DataName, err)
	}
}

func writeAttr(t *testing.T, v netcdf.Var, name string, value float64, float32Attr bool) {
	t.Helper()
	if value == 0 {
		return
	}
	var err error
	if float32Attr {
		err = v.Attr(name).WriteFloat32s([]float32{float32(value)})
	} else {
		err = v.Attr(name).WriteFloat64s([]float64{value})
	}
	if err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
}

// Ramp returns a grid whose value at (lat, lon) is a*lat + b*lon + c.
func Ramp(lat, lon []float64, a, b, c float64) [][]float32 {
	values := make([][]float32, len(lat))
	for i, y := range lat {
		values[i] = make([]float32, len(lon))
		for j, x := range lon {
			values[i][j] = float32(a*y + b*x + c)
		}
	}
	return values
}

// Axis returns n evenly spaced values starting at start.
func Axis(start, step float64, n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = start + float64(i)*step
	}
	return out
}

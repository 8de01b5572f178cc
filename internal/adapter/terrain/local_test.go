package terrain

import (
	"math"
	"path/filepath"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"go.ngs.io/solar-api/internal/adapter/netcdfgrid/netcdfgridtest"
)

func writeTerrain(t *testing.T) string {
	t.Helper()
	lat := netcdfgridtest.Axis(40, 1, 11)
	lon := netcdfgridtest.Axis(0, 1, 3)
	// Sea on the southern half, land rising to the north.
	path := filepath.Join(t.TempDir(), "gebco.nc")
	netcdfgridtest.Write(t, path, netcdfgridtest.Grid{
		LatName: "lat", LonName: "lon", DataName: "elevation",
		Lat: lat, Lon: lon,
		Values: netcdfgridtest.Ramp(lat, lon, 100, 0, -4500),
	})
	return path
}

func TestLocalStore_LandAndSea(t *testing.T) {
	store := NewLocalStore(writeTerrain(t), nil)

	land, err := store.Sample(48, 1)
	if err != nil || land == nil {
		t.Fatalf("Sample land: %+v, %v", land, err)
	}
	if math.Abs(land.ElevationM-300) > 1e-3 || land.ObserverAltitudeM != land.ElevationM {
		t.Errorf("Land: expected 300 m, got %+v", land)
	}

	sea, err := store.Sample(42, 1)
	if err != nil || sea == nil {
		t.Fatalf("Sample sea: %+v, %v", sea, err)
	}
	if sea.ElevationM >= 0 {
		t.Errorf("Sea: expected negative elevation, got %.2f", sea.ElevationM)
	}
	if sea.ObserverAltitudeM != 0 {
		t.Errorf("Sea: expected observer altitude clamped to 0, got %.2f", sea.ObserverAltitudeM)
	}
}

func TestLocalStore_MissingFileLogsWarning(t *testing.T) {
	core, logs := observer.New(zap.WarnLevel)
	store := NewLocalStore(filepath.Join(t.TempDir(), "missing.nc"), zap.New(core))

	sample, err := store.Sample(45, 0)
	if err != nil {
		t.Fatalf("Expected nil error, got %v", err)
	}
	if sample != nil {
		t.Errorf("Expected nil sample, got %+v", sample)
	}
	if logs.FilterMessage("terrain lookup failed").Len() != 1 {
		t.Errorf("Expected one warning, got %v", logs.All())
	}
}

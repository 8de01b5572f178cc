package terrain

import (
	"go.uber.org/zap"

	"go.ngs.io/solar-api/internal/adapter/netcdfgrid"
)

// LocalStore loads terrain elevation from a local GEBCO-style NetCDF file.
// The file can live on local disk or on a FUSE-mounted bucket.
type LocalStore struct {
	window *netcdfgrid.Window
	logger *zap.Logger
}

// NewLocalStore creates a terrain store over the NetCDF file at path.
func NewLocalStore(path string, logger *zap.Logger) *LocalStore {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LocalStore{
		window: netcdfgrid.NewWindow(netcdfgrid.Source{
			Path:      path,
			DataNames: []string{"elevation", "height"},
			MarginDeg: 2,
		}),
		logger: logger,
	}
}

// Sample returns the interpolated terrain elevation. A grid that does not
// cover the location yields nil without error.
func (s *LocalStore) Sample(lat, lon float64) (*Sample, error) {
	elev, err := s.window.ValueAt(lat, lon)
	if err != nil {
		s.logger.Warn("terrain lookup failed",
			zap.Float64("lat", lat),
			zap.Float64("lon", lon),
			zap.String("path", s.window.Path()),
			zap.Error(err))
		return nil, nil
	}
	return &Sample{
		ElevationM:        elev,
		ObserverAltitudeM: max(elev, 0),
		Source:            "GEBCO",
	}, nil
}

// Close releases resources (no-op for local store).
func (s *LocalStore) Close() error {
	return nil
}

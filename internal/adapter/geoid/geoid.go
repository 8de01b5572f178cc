// Package geoid provides EGM2008 geoid undulation lookups.
package geoid

import (
	"fmt"

	"go.ngs.io/solar-api/internal/adapter/netcdfgrid"
)

// Store provides geoid height lookups for converting ellipsoidal heights
// (GNSS) to heights above mean sea level.
type Store struct {
	window *netcdfgrid.Window
}

// NewStore creates a geoid store backed by an EGM2008 NetCDF grid.
func NewStore(geoidPath string) *Store {
	return &Store{
		window: netcdfgrid.NewWindow(netcdfgrid.Source{
			Path:      geoidPath,
			DataNames: []string{"geoid", "geoid_height", "N", "height"},
			MarginDeg: 2,
		}),
	}
}

// GetGeoidHeight returns the geoid height N at a location: the separation
// between the WGS84 ellipsoid and the geoid, positive when the geoid is above.
func (s *Store) GetGeoidHeight(lat, lon float64) (float64, error) {
	n, err := s.window.ValueAt(lat, lon)
	if err != nil {
		return 0, fmt.Errorf("failed to get geoid height: %w", err)
	}
	return n, nil
}

// OrthometricHeight converts an ellipsoidal height h to H = h - N.
func (s *Store) OrthometricHeight(lat, lon, h float64) (float64, error) {
	n, err := s.GetGeoidHeight(lat, lon)
	if err != nil {
		return 0, err
	}
	return h - n, nil
}

// Close releases resources.
func (s *Store) Close() error {
	return nil
}

// Package terrain provides observer altitude lookups from elevation grids.
package terrain

// Sample is the terrain elevation at a point.
type Sample struct {
	// ElevationM is the raw grid value; negative below sea level.
	ElevationM float64 `json:"elevation_m"`
	// ObserverAltitudeM is the elevation clamped at 0: an observer over water
	// stands on the sea surface.
	ObserverAltitudeM float64 `json:"observer_altitude_m"`
	Source            string  `json:"source"`
}

// Store provides access to terrain elevation data.
type Store interface {
	// Sample returns the terrain at a location, or nil if no data covers it.
	Sample(lat, lon float64) (*Sample, error)

	// Close releases any resources held by the store.
	Close() error
}

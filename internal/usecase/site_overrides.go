package usecase

import (
	"encoding/json"
	"fmt"
	"math"
	"os"
	"sync"
)

// defaultOverrideRadiusKm applies to entries without radius_km.
const defaultOverrideRadiusKm = 25.0

// SiteOverride pins the altitude and timezone offset for requests near a
// surveyed point, e.g. an observatory whose terrain grid cell is too coarse.
type SiteOverride struct {
	Name              string   `json:"name"`
	Lat               float64  `json:"lat"`
	Lon               float64  `json:"lon"`
	RadiusKm          float64  `json:"radius_km"`
	AltitudeM         *float64 `json:"altitude_m,omitempty"`
	TimezoneOffsetMin *int     `json:"tz_offset_min,omitempty"`
}

func (o SiteOverride) radius() float64 {
	if o.RadiusKm <= 0 {
		return defaultOverrideRadiusKm
	}
	return o.RadiusKm
}

// SiteOverrides is a nearest-neighbour table read lazily from a JSON file.
// A missing path disables it.
type SiteOverrides struct {
	path string

	once    sync.Once
	entries []SiteOverride
	err     error
}

// NewSiteOverrides creates a table backed by the JSON file at path.
func NewSiteOverrides(path string) *SiteOverrides {
	return &SiteOverrides{path: path}
}

// NewSiteOverridesFromEntries creates a table from in-memory entries.
func NewSiteOverridesFromEntries(entries []SiteOverride) *SiteOverrides {
	o := &SiteOverrides{entries: entries}
	o.once.Do(func() {})
	return o
}

func (o *SiteOverrides) load() error {
	o.once.Do(func() {
		if o.path == "" {
			return
		}
		//nolint:gosec // G304: Path comes from configuration.
		b, err := os.ReadFile(o.path)
		if err != nil {
			o.err = fmt.Errorf("failed to read site overrides: %w", err)
			return
		}
		if err := json.Unmarshal(b, &o.entries); err != nil {
			o.err = fmt.Errorf("failed to parse site overrides %s: %w", o.path, err)
		}
	})
	return o.err
}

// Len returns the number of loaded entries.
func (o *SiteOverrides) Len() (int, error) {
	if err := o.load(); err != nil {
		return 0, err
	}
	return len(o.entries), nil
}

// Match returns the closest override whose radius covers (lat, lon).
func (o *SiteOverrides) Match(lat, lon float64) (*SiteOverride, bool, error) {
	if o == nil {
		return nil, false, nil
	}
	if err := o.load(); err != nil {
		return nil, false, err
	}
	bestDist := math.MaxFloat64
	var best *SiteOverride
	for i := range o.entries {
		entry := &o.entries[i]
		d := haversineKm(lat, lon, entry.Lat, entry.Lon)
		if d <= entry.radius() && d < bestDist {
			bestDist = d
			best = entry
		}
	}
	return best, best != nil, nil
}

func haversineKm(lat1, lon1, lat2, lon2 float64) float64 {
	const earthRadiusKm = 6371.0
	toRad := func(x float64) float64 { return x * math.Pi / 180.0 }
	dLat := toRad(lat2 - lat1)
	dLon := toRad(lon2 - lon1)
	sLat, sLon := math.Sin(dLat/2), math.Sin(dLon/2)
	a := sLat*sLat + math.Cos(toRad(lat1))*math.Cos(toRad(lat2))*sLon*sLon
	return earthRadiusKm * 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
}

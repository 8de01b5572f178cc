package domain

import (
	"math"
	"time"
)

// Location is an observer position in degrees and metres above mean sea level.
//
// Latitude should lie in [-90, 90]; accuracy degrades outside ±65° where
// sunrise and twilight hour angles stop existing for parts of the year.
// Range is not enforced, only finiteness.
type Location struct {
	LatitudeDeg  float64 `json:"latitude_deg" yaml:"latitude_deg"`
	LongitudeDeg float64 `json:"longitude_deg" yaml:"longitude_deg"`
	AltitudeM    float64 `json:"altitude_m" yaml:"altitude_m"`
}

// Validate rejects non-finite coordinates.
func (l Location) Validate() error {
	fields := []struct {
		name string
		v    float64
	}{
		{"latitude", l.LatitudeDeg},
		{"longitude", l.LongitudeDeg},
		{"altitude", l.AltitudeM},
	}
	for _, f := range fields {
		if math.IsNaN(f.v) || math.IsInf(f.v, 0) {
			return &ValidationError{Field: f.name, Value: f.v, Reason: "must be a finite number"}
		}
	}
	return nil
}

// Site is a named observation location with its display timezone offset.
type Site struct {
	ID                string   `json:"id"`
	Location          Location `json:"location"`
	TimezoneOffsetMin int      `json:"tz_offset_min"`
}

// MaxTimezoneOffsetMin bounds accepted timezone offsets.
const MaxTimezoneOffsetMin = 18 * 60

func validateOffset(minutes int) error {
	if minutes < -MaxTimezoneOffsetMin || minutes > MaxTimezoneOffsetMin {
		return &ValidationError{Field: "timezone offset", Value: minutes, Reason: "must be within ±18 hours"}
	}
	return nil
}

func validateInstant(t time.Time) error {
	if t.IsZero() {
		return &ValidationError{Field: "time", Reason: "zero time"}
	}
	if y := t.UTC().Year(); y < 1 || y > 9999 {
		return &ValidationError{Field: "time", Value: t, Reason: "year outside 1..9999"}
	}
	return nil
}

// latitudeTrig caches the trigonometric functions of the latitude.
type latitudeTrig struct {
	sin, cos, tan float64
}

// observer is the engine's internal form of a Location.
type observer struct {
	deg    Location
	latRad float64
	lonRad float64
	altM   float64
	trig   latitudeTrig
}

func newObserver(loc Location) observer {
	lat := Deg2Rad(loc.LatitudeDeg)
	return observer{
		deg:    loc,
		latRad: lat,
		lonRad: Deg2Rad(loc.LongitudeDeg),
		altM:   loc.AltitudeM,
		trig: latitudeTrig{
			sin: math.Sin(lat),
			cos: math.Cos(lat),
			tan: math.Tan(lat),
		},
	}
}

// Location change thresholds.
const (
	angleEpsilonRad  = 1e-8
	altitudeEpsilonM = 1e-2
)

// differs reports whether o and n are far enough apart to invalidate the caches.
func (o observer) differs(n observer) bool {
	return math.Abs(o.latRad-n.latRad) > angleEpsilonRad ||
		math.Abs(o.lonRad-n.lonRad) > angleEpsilonRad ||
		math.Abs(o.altM-n.altM) > altitudeEpsilonM
}

func (o observer) longitudeDeg() float64 {
	return Rad2Deg(o.lonRad)
}

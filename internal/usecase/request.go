package usecase

import (
	"math"
	"strings"
	"time"

	"cloudeng.io/errors"

	"go.ngs.io/solar-api/internal/domain"
)

// Altitude references accepted by LocationQuery.AltRef.
const (
	AltRefMSL       = "msl"
	AltRefEllipsoid = "ellipsoid"
)

// LocationQuery selects the observer. Either SiteID or Lat/Lon identifies
// the location; the remaining fields are optional refinements.
type LocationQuery struct {
	Lat    *float64
	Lon    *float64
	AltM   *float64
	AltRef string // "msl" (default) or "ellipsoid".
	SiteID string

	// TZOffsetMin overrides the site or override table offset.
	TZOffsetMin *int
}

func (q LocationQuery) hasCoords() bool {
	return q.Lat != nil || q.Lon != nil
}

func invalid(field string, value any, reason string) error {
	return &domain.ValidationError{Field: field, Value: value, Reason: reason}
}

func (q LocationQuery) validate(errs *errors.M) {
	hasSite := strings.TrimSpace(q.SiteID) != ""
	switch {
	case hasSite && q.hasCoords():
		errs.Append(invalid("site", q.SiteID, "site and lat/lon are mutually exclusive"))
	case !hasSite && (q.Lat == nil) != (q.Lon == nil):
		errs.Append(invalid("lat/lon", nil, "both lat and lon must be provided"))
	}
	if q.Lat != nil && (math.IsNaN(*q.Lat) || *q.Lat < -90 || *q.Lat > 90) {
		errs.Append(invalid("lat", *q.Lat, "must be between -90 and 90"))
	}
	if q.Lon != nil && (math.IsNaN(*q.Lon) || *q.Lon < -180 || *q.Lon > 180) {
		errs.Append(invalid("lon", *q.Lon, "must be between -180 and 180"))
	}
	if q.AltM != nil && (math.IsNaN(*q.AltM) || *q.AltM < -500 || *q.AltM > 100000) {
		errs.Append(invalid("alt", *q.AltM, "must be between -500 and 100000 m"))
	}
	switch q.AltRef {
	case "", AltRefMSL:
	case AltRefEllipsoid:
		if q.AltM == nil {
			errs.Append(invalid("alt_ref", q.AltRef, "requires alt"))
		}
	default:
		errs.Append(invalid("alt_ref", q.AltRef, "must be msl or ellipsoid"))
	}
	if q.TZOffsetMin != nil && (*q.TZOffsetMin < -domain.MaxTimezoneOffsetMin || *q.TZOffsetMin > domain.MaxTimezoneOffsetMin) {
		errs.Append(invalid("tz_offset", *q.TZOffsetMin, "must be within ±1080 minutes"))
	}
}

// PositionRequest asks for the sun position at one instant.
type PositionRequest struct {
	LocationQuery
	// Time defaults to the current time.
	Time *time.Time
}

// Validate checks the request and reports every problem found.
func (r PositionRequest) Validate() error {
	var errs errors.M
	r.validate(&errs)
	return errs.Err()
}

// EventsRequest asks for the daily events of one UTC calendar day.
type EventsRequest struct {
	LocationQuery
	// Date defaults to the current UTC day.
	Date *domain.CalendarDay
}

// Validate checks the request and reports every problem found.
func (r EventsRequest) Validate() error {
	var errs errors.M
	r.validate(&errs)
	if r.Date != nil && (r.Date.Year < 1 || r.Date.Year > 9999) {
		errs.Append(invalid("date", r.Date.String(), "year outside 1..9999"))
	}
	return errs.Err()
}

// Track limits.
const (
	DefaultTrackInterval = 10 * time.Minute
	MinTrackInterval     = time.Second
	MaxTrackInterval     = 24 * time.Hour
	MaxTrackSpan         = 366 * 24 * time.Hour
)

// TrackRequest asks for positions sampled over [Start, End].
type TrackRequest struct {
	LocationQuery
	Start    time.Time
	End      time.Time
	Interval time.Duration
}

// Validate checks the request against maxPoints and reports every problem found.
func (r TrackRequest) Validate(maxPoints int) error {
	var errs errors.M
	r.validate(&errs)
	if r.Start.IsZero() || r.End.IsZero() {
		errs.Append(invalid("start/end", nil, "both start and end are required"))
		return errs.Err()
	}
	if r.End.Before(r.Start) {
		errs.Append(invalid("end", r.End.Format(time.RFC3339), "must not be before start"))
	}
	if r.End.Sub(r.Start) > MaxTrackSpan {
		errs.Append(invalid("end", r.End.Format(time.RFC3339), "time range must be at most 366 days"))
	}
	interval := r.interval()
	if interval < MinTrackInterval || interval > MaxTrackInterval {
		errs.Append(invalid("interval", interval.String(), "must be between 1s and 24h"))
	} else if n := r.points(); maxPoints > 0 && n > maxPoints {
		errs.Append(invalid("interval", interval.String(),
			"too many track points - reduce time range or increase interval"))
	}
	return errs.Err()
}

func (r TrackRequest) interval() time.Duration {
	if r.Interval == 0 {
		return DefaultTrackInterval
	}
	return r.Interval
}

func (r TrackRequest) points() int {
	if r.End.Before(r.Start) {
		return 0
	}
	return int(r.End.Sub(r.Start)/r.interval()) + 1
}

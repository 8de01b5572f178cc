// Package domain implements the solar position and solar event engine.
//
// An Engine holds an observer location, a timezone offset and a reference
// instant together with two caches: the daily solar parameters (ten event
// instants, recomputed at most once per UTC calendar day) and the
// instantaneous position (recomputed at most once per second). It is meant to
// be polled from a render or update loop and is not safe for concurrent use.
package domain

import (
	"fmt"
	"time"
)

// Clock supplies the current time when no reference instant is given.
type Clock interface {
	Now() time.Time
}

// SystemClock reads the host clock. Its instants carry the host's local zone,
// which New uses as the default timezone offset.
type SystemClock struct{}

// Now returns time.Now().
func (SystemClock) Now() time.Time {
	return time.Now()
}

// Stats counts calculator runs.
type Stats struct {
	DailyRecomputes    uint64
	PositionRecomputes uint64
}

// Engine computes and caches solar position and daily solar events.
type Engine struct {
	obs       observer
	offsetMin int
	zone      *time.Location
	instant   time.Time // UTC.

	daily    DailySolarParameters
	dailyDay CalendarDay // Day the daily cache was last computed for.
	position Position

	stats Stats
}

type options struct {
	instant    time.Time
	instantSet bool
	offsetMin  int
	offsetSet  bool
	clock      Clock
}

// Option configures New.
type Option func(*options)

// WithTime sets the reference instant.
func WithTime(t time.Time) Option {
	return func(o *options) {
		o.instant = t
		o.instantSet = true
	}
}

// WithTimezoneOffset sets the timezone offset in minutes east of UTC.
func WithTimezoneOffset(minutes int) Option {
	return func(o *options) {
		o.offsetMin = minutes
		o.offsetSet = true
	}
}

// WithClock sets the clock used when no reference instant is given.
func WithClock(c Clock) Option {
	return func(o *options) {
		o.clock = c
	}
}

// New creates an engine for loc and runs both calculators once.
//
// The reference instant comes from WithTime, or else from the clock given
// with WithClock. The timezone offset comes from WithTimezoneOffset, or else
// from the reference instant's own zone; it is resolved once here.
func New(loc Location, opts ...Option) (*Engine, error) {
	if err := loc.Validate(); err != nil {
		return nil, err
	}
	var o options
	for _, fn := range opts {
		fn(&o)
	}

	instant := o.instant
	if !o.instantSet {
		if o.clock == nil {
			return nil, &ValidationError{Field: "time", Reason: "no reference time or clock supplied"}
		}
		instant = o.clock.Now()
	}
	if err := validateInstant(instant); err != nil {
		return nil, err
	}

	offset := o.offsetMin
	if !o.offsetSet {
		_, secs := instant.Zone()
		offset = secs / 60
	}
	if err := validateOffset(offset); err != nil {
		return nil, err
	}

	e := &Engine{
		obs:       newObserver(loc),
		offsetMin: offset,
		zone:      fixedZone(offset),
		instant:   instant.UTC(),
	}
	e.recomputeAll()
	return e, nil
}

// Location returns the observer location in degrees.
func (e *Engine) Location() Location {
	return e.obs.deg
}

// TimezoneOffset returns the stored offset in minutes east of UTC.
func (e *Engine) TimezoneOffset() int {
	return e.offsetMin
}

// ReferenceTime returns the reference instant in the stored offset's zone.
func (e *Engine) ReferenceTime() time.Time {
	return e.instant.In(e.zone)
}

// ReferenceTimeIn returns the reference instant shifted to offsetMin.
func (e *Engine) ReferenceTimeIn(offsetMin int) time.Time {
	return e.instant.In(fixedZone(offsetMin))
}

// SunPosition returns the cached instantaneous position.
func (e *Engine) SunPosition() Position {
	return e.position
}

// Daily returns the cached daily solar parameters.
func (e *Engine) Daily() DailySolarParameters {
	return e.daily
}

// Stats returns the calculator run counters.
func (e *Engine) Stats() Stats {
	return e.stats
}

// Event returns the cached instant of kind shifted to offsetMin.
func (e *Engine) Event(kind EventKind, offsetMin int) time.Time {
	return e.daily.Event(kind).In(fixedZone(offsetMin))
}

func (e *Engine) event(kind EventKind) time.Time {
	return e.daily.Event(kind).In(e.zone)
}

// Sunrise returns the sunrise instant in the stored offset's zone.
func (e *Engine) Sunrise() time.Time { return e.event(Sunrise) }

// Sunset returns the sunset instant in the stored offset's zone.
func (e *Engine) Sunset() time.Time { return e.event(Sunset) }

// SolarNoon returns the solar noon instant in the stored offset's zone.
func (e *Engine) SolarNoon() time.Time { return e.event(SolarNoon) }

// SolarMidnight returns the solar midnight preceding solar noon.
func (e *Engine) SolarMidnight() time.Time { return e.event(SolarMidnight) }

// CivilDawn returns civil dawn (sun 6° below the horizon, rising) in the stored offset's zone.
func (e *Engine) CivilDawn() time.Time { return e.event(CivilDawn) }

// CivilDusk returns civil dusk (sun 6° below the horizon, setting) in the stored offset's zone.
func (e *Engine) CivilDusk() time.Time { return e.event(CivilDusk) }

// NauticalDawn returns nautical dawn (12° below, rising) in the stored offset's zone.
func (e *Engine) NauticalDawn() time.Time { return e.event(NauticalDawn) }

// NauticalDusk returns nautical dusk (12° below, setting) in the stored offset's zone.
func (e *Engine) NauticalDusk() time.Time { return e.event(NauticalDusk) }

// AstronomicalDawn returns astronomical dawn (18° below, rising) in the stored offset's zone.
func (e *Engine) AstronomicalDawn() time.Time { return e.event(AstronomicalDawn) }

// AstronomicalDusk returns astronomical dusk (18° below, setting) in the stored offset's zone.
func (e *Engine) AstronomicalDusk() time.Time { return e.event(AstronomicalDusk) }

// EventTime pairs an event kind with its instant.
type EventTime struct {
	Kind EventKind
	Time time.Time
}

// Events returns all ten events in kind order, shifted to offsetMin.
func (e *Engine) Events(offsetMin int) []EventTime {
	zone := fixedZone(offsetMin)
	out := make([]EventTime, 0, eventKindCount)
	for _, k := range AllEventKinds() {
		out = append(out, EventTime{Kind: k, Time: e.daily.Event(k).In(zone)})
	}
	return out
}

// fixedZone returns a zone named like "UTC+05:30" for an offset in minutes.
func fixedZone(offsetMin int) *time.Location {
	if offsetMin == 0 {
		return time.UTC
	}
	sign := '+'
	abs := offsetMin
	if abs < 0 {
		sign = '-'
		abs = -abs
	}
	return time.FixedZone(fmt.Sprintf("UTC%c%02d:%02d", sign, abs/60, abs%60), offsetMin*60)
}

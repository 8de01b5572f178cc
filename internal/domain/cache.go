package domain

import "time"

// SetLocation moves the observer, keeping the current timezone offset.
func (e *Engine) SetLocation(loc Location) error {
	return e.SetLocationAndOffset(loc, e.offsetMin)
}

// SetLocationAndOffset moves the observer and sets the timezone offset.
// Both calculators run immediately if latitude or longitude moved by more
// than 1e-8 rad, altitude by more than 1 cm, or the offset changed; otherwise
// the call is a no-op.
func (e *Engine) SetLocationAndOffset(loc Location, offsetMin int) error {
	if err := loc.Validate(); err != nil {
		return err
	}
	if err := validateOffset(offsetMin); err != nil {
		return err
	}
	next := newObserver(loc)
	if !e.obs.differs(next) && offsetMin == e.offsetMin {
		return nil
	}
	e.obs = next
	if offsetMin != e.offsetMin {
		e.offsetMin = offsetMin
		e.zone = fixedZone(offsetMin)
	}
	e.recomputeAll()
	return nil
}

// SetTime moves the reference instant. Sub-second changes are ignored. The
// position is recomputed when the whole second changes and the daily
// parameters when the UTC calendar day changes.
func (e *Engine) SetTime(t time.Time) error {
	if err := validateInstant(t); err != nil {
		return err
	}
	t = t.UTC()
	if t.Truncate(time.Second).Equal(e.instant.Truncate(time.Second)) {
		return nil
	}
	e.instant = t
	e.recomputePosition()
	if day := DayOf(t); day != e.dailyDay {
		e.recomputeDaily(day)
	}
	return nil
}

func (e *Engine) recomputeAll() {
	e.recomputeDaily(DayOf(e.instant))
	e.recomputePosition()
}

func (e *Engine) recomputeDaily(day CalendarDay) {
	e.daily = computeDaily(day, e.obs)
	e.dailyDay = day
	e.stats.DailyRecomputes++
}

func (e *Engine) recomputePosition() {
	e.position = computePosition(e.instant, e.offsetMin, e.obs)
	e.stats.PositionRecomputes++
}

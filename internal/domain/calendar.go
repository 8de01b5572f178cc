package domain

import (
	"fmt"
	"time"
)

// CalendarDay identifies a proleptic Gregorian calendar day in UTC.
// It is the key of the daily solar parameters cache.
type CalendarDay struct {
	Year  int
	Month time.Month
	Day   int
}

// DayOf returns the UTC calendar day containing t.
func DayOf(t time.Time) CalendarDay {
	y, m, d := t.UTC().Date()
	return CalendarDay{Year: y, Month: m, Day: d}
}

// ParseCalendarDay parses a YYYY-MM-DD date.
func ParseCalendarDay(s string) (CalendarDay, error) {
	t, err := time.Parse(time.DateOnly, s)
	if err != nil {
		return CalendarDay{}, fmt.Errorf("invalid date %q (expected YYYY-MM-DD): %w", s, err)
	}
	return DayOf(t), nil
}

// IsZero reports whether d is the zero value.
func (d CalendarDay) IsZero() bool {
	return d == CalendarDay{}
}

// Midnight returns 00:00 UTC of the day.
func (d CalendarDay) Midnight() time.Time {
	return time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, time.UTC)
}

// Next returns the following calendar day.
func (d CalendarDay) Next() CalendarDay {
	return DayOf(d.Midnight().AddDate(0, 0, 1))
}

// Before reports whether d is earlier than o.
func (d CalendarDay) Before(o CalendarDay) bool {
	return d.Midnight().Before(o.Midnight())
}

func (d CalendarDay) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, int(d.Month), d.Day)
}

func yearBounds(year int) (start, end time.Time) {
	start = time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
	return start, start.AddDate(1, 0, 0)
}

// instantYearFraction returns the elapsed fraction of t's UTC year at t.
func instantYearFraction(t time.Time) float64 {
	t = t.UTC()
	start, end := yearBounds(t.Year())
	return float64(t.Sub(start)) / float64(end.Sub(start))
}

// dailyYearFraction returns the elapsed fraction of d's year at the start
// of the day after d. Dec 31 yields 1.
func dailyYearFraction(d CalendarDay) float64 {
	start, end := yearBounds(d.Year)
	return float64(d.Next().Midnight().Sub(start)) / float64(end.Sub(start))
}

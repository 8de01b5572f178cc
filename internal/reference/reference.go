// Package reference compares the engine against independent solar
// implementations: go-sunrise for sunrise, sunset and elevation, and
// Meeus' algorithms for the apparent declination.
package reference

import (
	"fmt"
	"math"
	"time"

	"github.com/nathan-osman/go-sunrise"
	"github.com/soniakeys/meeus/v3/julian"
	"github.com/soniakeys/meeus/v3/solar"

	"go.ngs.io/solar-api/internal/domain"
)

// SunriseSunset returns the go-sunrise events for a UTC calendar day.
// Both are zero when the sun does not rise or set.
func SunriseSunset(loc domain.Location, day domain.CalendarDay) (rise, set time.Time) {
	return sunrise.SunriseSunset(loc.LatitudeDeg, loc.LongitudeDeg, day.Year, day.Month, day.Day)
}

// GeometricElevation returns the go-sunrise solar elevation in degrees,
// without refraction.
func GeometricElevation(loc domain.Location, t time.Time) float64 {
	return sunrise.Elevation(loc.LatitudeDeg, loc.LongitudeDeg, t)
}

// ApparentDeclination returns the Meeus apparent declination in degrees.
func ApparentDeclination(t time.Time) float64 {
	_, dec := solar.ApparentEquatorial(julian.TimeToJD(t.UTC()))
	return dec.Deg()
}

// DayComparison holds the engine and reference values for one day.
type DayComparison struct {
	Day domain.CalendarDay

	Sunrise, Sunset       time.Time
	RefSunrise, RefSunset time.Time
	// Skipped is set when either side has no sunrise or sunset.
	Skipped bool

	SunriseDiff time.Duration // Engine minus reference.
	SunsetDiff  time.Duration

	// Evaluated at the engine's solar noon.
	DeclinationDiffDeg float64
	ElevationDiffDeg   float64
}

// Stats aggregates differences in minutes (events) or degrees (angles).
type Stats struct {
	N    int
	Mean float64
	RMSE float64
	Max  float64 // Largest absolute difference.
}

func (s *Stats) add(v float64) {
	s.N++
	s.Mean += v
	s.RMSE += v * v
	s.Max = math.Max(s.Max, math.Abs(v))
}

func (s *Stats) finish() {
	if s.N == 0 {
		return
	}
	n := float64(s.N)
	s.Mean /= n
	s.RMSE = math.Sqrt(s.RMSE / n)
}

// Summary aggregates a comparison run.
type Summary struct {
	Days        int
	Skipped     int
	Sunrise     Stats
	Sunset      Stats
	Declination Stats
	Elevation   Stats
}

// Compare walks every UTC day in [start, end] with a single engine driven
// through SetTime, comparing each day's events and noon position with the
// reference implementations.
func Compare(loc domain.Location, start, end domain.CalendarDay) ([]DayComparison, Summary, error) {
	if end.Before(start) {
		return nil, Summary{}, &domain.ValidationError{Field: "end", Value: end, Reason: "before start"}
	}

	e, err := domain.New(loc, domain.WithTime(start.Midnight()), domain.WithTimezoneOffset(0))
	if err != nil {
		return nil, Summary{}, fmt.Errorf("failed to create engine: %w", err)
	}

	var out []DayComparison
	var sum Summary
	for day := start; !end.Before(day); day = day.Next() {
		if err := e.SetTime(day.Midnight()); err != nil {
			return nil, Summary{}, err
		}
		c := DayComparison{
			Day:     day,
			Sunrise: e.Sunrise(),
			Sunset:  e.Sunset(),
		}
		c.RefSunrise, c.RefSunset = SunriseSunset(loc, day)

		daily := e.Daily()
		c.Skipped = c.RefSunrise.IsZero() || c.RefSunset.IsZero() ||
			daily.BandState(domain.BandHorizon) != domain.BandNormal
		if !c.Skipped {
			c.SunriseDiff = c.Sunrise.Sub(c.RefSunrise)
			c.SunsetDiff = c.Sunset.Sub(c.RefSunset)
			sum.Sunrise.add(c.SunriseDiff.Minutes())
			sum.Sunset.add(c.SunsetDiff.Minutes())
		} else {
			sum.Skipped++
		}

		noon := e.SolarNoon()
		if err := e.SetTime(noon); err != nil {
			return nil, Summary{}, err
		}
		pos := e.SunPosition()
		c.DeclinationDiffDeg = domain.Rad2Deg(pos.DeclinationRad) - ApparentDeclination(noon)
		c.ElevationDiffDeg = (90 - pos.ZenithDeg) - GeometricElevation(loc, noon)
		sum.Declination.add(c.DeclinationDiffDeg)
		sum.Elevation.add(c.ElevationDiffDeg)

		out = append(out, c)
		sum.Days++
	}

	sum.Sunrise.finish()
	sum.Sunset.finish()
	sum.Declination.finish()
	sum.Elevation.finish()
	return out, sum, nil
}

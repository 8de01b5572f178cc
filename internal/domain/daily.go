package domain

import (
	"math"
	"time"
)

// Cosines of the solar zenith angle at each band threshold.
const (
	// 90.833°: geometric horizon plus standard refraction and solar semi-diameter.
	cosZenithHorizon      = -0.0145381
	cosZenithCivil        = -0.10452846326765347 // 96°
	cosZenithNautical     = -0.20791169081775934 // 102°
	cosZenithAstronomical = -0.30901699437494745 // 108°
)

//nolint:gochecknoglobals // Read-only threshold table.
var bandThresholds = [bandCount]float64{
	BandHorizon:      cosZenithHorizon,
	BandCivil:        cosZenithCivil,
	BandNautical:     cosZenithNautical,
	BandAstronomical: cosZenithAstronomical,
}

// altitudeDipCoeff scales observer altitude (m) into a horizon correction (deg).
const altitudeDipCoeff = 2.076e-4

// DailySolarParameters is the per-day cache: solar terms and the ten event instants.
// Event instants are stored in UTC.
type DailySolarParameters struct {
	Day            CalendarDay
	EqTimeMin      float64
	DeclinationRad float64
	HourAnglesDeg  [bandCount]float64
	BandStates     [bandCount]BandState
	events         [eventKindCount]time.Time
}

// Event returns the UTC instant of kind.
func (p DailySolarParameters) Event(kind EventKind) time.Time {
	if kind < 0 || kind >= eventKindCount {
		return time.Time{}
	}
	return p.events[kind]
}

// BandState returns whether the band's dawn and dusk exist.
func (p DailySolarParameters) BandState(b Band) BandState {
	if b < 0 || b >= bandCount {
		return BandNormal
	}
	return p.BandStates[b]
}

// DayLength returns sunset minus sunrise.
func (p DailySolarParameters) DayLength() time.Duration {
	return p.events[Sunset].Sub(p.events[Sunrise])
}

// hourAngleDeg returns the hour angle (degrees) at which the solar zenith reaches
// the threshold whose cosine is cosZenith. When no such hour angle exists the
// arccosine argument is saturated into [-1, 1] and the band state records why.
func hourAngleDeg(cosZenith, altCorrection, decl float64, trig latitudeTrig) (float64, BandState) {
	arg := (cosZenith-altCorrection)/(math.Cos(decl)*trig.cos) - math.Tan(decl)*trig.tan
	switch {
	case math.IsNaN(arg) || arg > 1:
		return 0, BandAlwaysBelow
	case arg < -1:
		return 180, BandAlwaysAbove
	default:
		return Rad2Deg(math.Acos(arg)), BandNormal
	}
}

// eventMinutes converts an hour angle into minutes from UTC midnight.
func eventMinutes(lonDeg, hourAngleDeg, eqTimeMin float64) float64 {
	return 720 - 4*(lonDeg+hourAngleDeg) - eqTimeMin
}

// minutesToInstant anchors a minute count to midnight, keeping whole minutes and
// the fractional remainder as seconds.
func minutesToInstant(midnight time.Time, minutes float64) time.Time {
	whole := math.Floor(minutes)
	seconds := (minutes - whole) * 60
	return midnight.
		Add(time.Duration(whole) * time.Minute).
		Add(time.Duration(seconds * float64(time.Second)))
}

// computeDaily derives the daily solar parameters for day at obs.
// The year fraction is taken at the start of the following day.
func computeDaily(day CalendarDay, obs observer) DailySolarParameters {
	terms := ComputeSolarTerms(FractionalYearAngle(dailyYearFraction(day)))
	lonDeg := obs.longitudeDeg()
	altCorrection := altitudeDipCoeff * obs.altM * math.Pi / 180
	midnight := day.Midnight()

	p := DailySolarParameters{
		Day:            day,
		EqTimeMin:      terms.EqTimeMin,
		DeclinationRad: terms.DeclinationRad,
	}

	p.events[SolarNoon] = minutesToInstant(midnight, eventMinutes(lonDeg, 0, terms.EqTimeMin))
	p.events[SolarMidnight] = minutesToInstant(midnight, eventMinutes(lonDeg, 180, terms.EqTimeMin))

	for b := Band(0); b < bandCount; b++ {
		ha, state := hourAngleDeg(bandThresholds[b], altCorrection, terms.DeclinationRad, obs.trig)
		p.HourAnglesDeg[b] = ha
		p.BandStates[b] = state
		dawn, dusk := bandEvents[b][0], bandEvents[b][1]
		p.events[dawn] = minutesToInstant(midnight, eventMinutes(lonDeg, ha, terms.EqTimeMin))
		p.events[dusk] = minutesToInstant(midnight, eventMinutes(lonDeg, -ha, terms.EqTimeMin))
	}

	return p
}

package domain

import (
	"math"
	"time"
)

// Position is the instantaneous apparent position of the sun.
type Position struct {
	Time           time.Time // Instant the position was computed for (UTC).
	AzimuthDeg     float64   // Clockwise from true north, [0, 360).
	ElevationDeg   float64   // Above the horizon, corrected for refraction and altitude.
	ZenithDeg      float64   // Geometric zenith angle.
	HourAngleDeg   float64
	DeclinationRad float64
	EqTimeMin      float64
}

// Refraction model constants (degrees).
const (
	refractionCoeff = 0.0167
	// Below this elevation the empirical model approaches its pole at -5.11°.
	refractionCutoffDeg = -5.0
	maxRefractionDeg    = 1.0
)

// refractionCorrection evaluates the empirical low-elevation refraction term
// for a geometric elevation in degrees. The term is negative and is added to
// the geometric elevation, so it lowers the reported elevation rather than
// lifting it. At the computed sunrise (geometric -0.833°) the reported
// elevation is therefore about -1.4°, not 0°; event times and positions use
// independent horizon conventions.
func refractionCorrection(elevationDeg float64) float64 {
	if elevationDeg <= refractionCutoffDeg {
		return 0
	}
	arg := elevationDeg + 10.3/(elevationDeg+5.11)
	c := -refractionCoeff / math.Tan(Deg2Rad(arg))
	if math.IsNaN(c) || math.IsInf(c, 0) {
		return 0
	}
	return clampFloat(c, -maxRefractionDeg, maxRefractionDeg)
}

// clockMinutes returns the minutes elapsed since local midnight for t shifted
// by offsetMin.
func clockMinutes(t time.Time, offsetMin int) float64 {
	local := t.UTC().Add(time.Duration(offsetMin) * time.Minute)
	return float64(local.Hour()*60+local.Minute()) +
		float64(local.Second())/60 +
		float64(local.Nanosecond())/float64(time.Minute)
}

// computePosition derives azimuth and elevation at t. The year fraction is
// taken at t itself, not at the following day as computeDaily does.
func computePosition(t time.Time, offsetMin int, obs observer) Position {
	terms := ComputeSolarTerms(FractionalYearAngle(instantYearFraction(t)))
	decl := terms.DeclinationRad

	timeOffset := terms.EqTimeMin + 4*obs.longitudeDeg() - float64(offsetMin)
	trueSolarMin := clockMinutes(t, offsetMin) + timeOffset
	haDeg := trueSolarMin*0.25 - 180
	ha := Deg2Rad(haDeg)

	sinDecl, cosDecl := math.Sincos(decl)
	sinHA, cosHA := math.Sincos(ha)
	cosZenith := clampFloat(obs.trig.sin*sinDecl+obs.trig.cos*cosDecl*cosHA, -1, 1)
	zenithDeg := Rad2Deg(math.Acos(cosZenith))

	geometric := 90 - zenithDeg
	elevation := geometric + refractionCorrection(geometric) + altitudeDipCoeff*obs.altM

	azimuth := 180 + Rad2Deg(math.Atan2(sinHA, cosHA*obs.trig.sin-math.Tan(decl)*obs.trig.cos))

	return Position{
		Time:           t.UTC(),
		AzimuthDeg:     normalizeDeg360(azimuth),
		ElevationDeg:   elevation,
		ZenithDeg:      zenithDeg,
		HourAngleDeg:   haDeg,
		DeclinationRad: decl,
		EqTimeMin:      terms.EqTimeMin,
	}
}

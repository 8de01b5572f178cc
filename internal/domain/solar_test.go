package domain

import (
	"math"
	"testing"
	"time"
)

func within(got, want time.Time, tol time.Duration) bool {
	d := got.Sub(want)
	if d < 0 {
		d = -d
	}
	return d <= tol
}

// TestSolarTerms_MarchEquinox checks the series near the 2024 March equinox.
func TestSolarTerms_MarchEquinox(t *testing.T) {
	day := CalendarDay{Year: 2024, Month: time.March, Day: 20}
	terms := ComputeSolarTerms(FractionalYearAngle(dailyYearFraction(day)))

	if math.Abs(terms.EqTimeMin-(-7.62)) > 0.05 {
		t.Errorf("EqTime: expected ~-7.62 min, got %.4f", terms.EqTimeMin)
	}
	if decl := Rad2Deg(terms.DeclinationRad); math.Abs(decl-0.24) > 0.05 {
		t.Errorf("Declination: expected ~0.24 deg, got %.4f", decl)
	}
}

// TestDailyYearFraction_Bounds tests that the daily fraction ends the year at exactly 1.
func TestDailyYearFraction_Bounds(t *testing.T) {
	tests := []struct {
		day      CalendarDay
		expected float64
	}{
		{CalendarDay{2023, time.December, 31}, 1.0},
		{CalendarDay{2024, time.December, 31}, 1.0},
		{CalendarDay{2023, time.January, 1}, 1.0 / 365},
		{CalendarDay{2024, time.January, 1}, 1.0 / 366},
	}
	for _, tt := range tests {
		got := dailyYearFraction(tt.day)
		if math.Abs(got-tt.expected) > 1e-12 {
			t.Errorf("%s: expected %.12f, got %.12f", tt.day, tt.expected, got)
		}
	}
}

func TestInstantYearFraction(t *testing.T) {
	start := time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC)
	if f := instantYearFraction(start); f != 0 {
		t.Errorf("Year start: expected 0, got %v", f)
	}
	mid := start.Add(365 * 12 * time.Hour)
	if f := instantYearFraction(mid); math.Abs(f-0.5) > 1e-12 {
		t.Errorf("Mid year: expected 0.5, got %v", f)
	}
}

// TestComputeDaily_EquinoxMidLatitude covers 45N 0E on 2024-03-20.
func TestComputeDaily_EquinoxMidLatitude(t *testing.T) {
	day := CalendarDay{Year: 2024, Month: time.March, Day: 20}
	p := computeDaily(day, newObserver(Location{LatitudeDeg: 45}))

	tests := []struct {
		kind     EventKind
		expected time.Time
	}{
		{SolarNoon, time.Date(2024, 3, 20, 12, 7, 37, 0, time.UTC)},
		{Sunrise, time.Date(2024, 3, 20, 6, 1, 56, 0, time.UTC)},
		{Sunset, time.Date(2024, 3, 20, 18, 13, 18, 0, time.UTC)},
		{SolarMidnight, time.Date(2024, 3, 20, 0, 7, 37, 0, time.UTC)},
	}
	for _, tt := range tests {
		got := p.Event(tt.kind)
		if !within(got, tt.expected, time.Minute) {
			t.Errorf("%s: expected ~%s, got %s", tt.kind, tt.expected.Format(time.TimeOnly), got.Format(time.TimeOnly))
		}
	}

	for b := Band(0); b < bandCount; b++ {
		if p.BandState(b) != BandNormal {
			t.Errorf("%s: expected normal band, got %s", b, p.BandState(b))
		}
	}
}

// TestComputeDaily_Ordering tests chronological order of all ten events.
func TestComputeDaily_Ordering(t *testing.T) {
	locs := []Location{
		{LatitudeDeg: 45, LongitudeDeg: 0},
		{LatitudeDeg: -33.87, LongitudeDeg: 151.21},
		{LatitudeDeg: 35.68, LongitudeDeg: 139.69, AltitudeM: 40},
		{LatitudeDeg: 0, LongitudeDeg: -78.5, AltitudeM: 2850},
	}
	days := []CalendarDay{
		{2024, time.March, 20},
		{2024, time.June, 21},
		{2024, time.December, 21},
	}
	for _, loc := range locs {
		for _, day := range days {
			p := computeDaily(day, newObserver(loc))
			kinds := AllEventKinds()
			for i := 1; i < len(kinds); i++ {
				prev, cur := p.Event(kinds[i-1]), p.Event(kinds[i])
				if !prev.Before(cur) {
					t.Errorf("%+v %s: %s (%s) not before %s (%s)",
						loc, day, kinds[i-1], prev, kinds[i], cur)
				}
			}
		}
	}
}

// TestComputeDaily_EquatorDayLength tests that the equator day length is nearly
// constant through the year and exceeds 12h by the refraction allowance.
func TestComputeDaily_EquatorDayLength(t *testing.T) {
	obs := newObserver(Location{})
	day := CalendarDay{Year: 2024, Month: time.January, Day: 1}

	minLen, maxLen := time.Duration(math.MaxInt64), time.Duration(0)
	for i := 0; i < 366; i += 5 {
		p := computeDaily(day, obs)
		l := p.DayLength()
		minLen = min(minLen, l)
		maxLen = max(maxLen, l)
		for j := 0; j < 5; j++ {
			day = day.Next()
		}
	}

	lo := 12*time.Hour + 6*time.Minute
	hi := 12*time.Hour + 8*time.Minute
	if minLen < lo || maxLen > hi {
		t.Errorf("Day length range [%s, %s] outside [%s, %s]", minLen, maxLen, lo, hi)
	}
	if maxLen-minLen > time.Minute {
		t.Errorf("Day length varies by %s, expected under 1m", maxLen-minLen)
	}
}

// TestHourAngle_GeometricHorizonAtEquator tests that a zero threshold gives exactly 90 degrees.
func TestHourAngle_GeometricHorizonAtEquator(t *testing.T) {
	obs := newObserver(Location{})
	for _, decl := range []float64{-0.4, -0.1, 0, 0.2, 0.409} {
		ha, state := hourAngleDeg(0, 0, decl, obs.trig)
		if state != BandNormal {
			t.Errorf("decl %.3f: expected normal state, got %s", decl, state)
		}
		if math.Abs(ha-90) > 1e-9 {
			t.Errorf("decl %.3f: expected 90, got %.12f", decl, ha)
		}
	}
}

// TestComputeDaily_PolarSaturation tests polar day and polar night at 80N.
func TestComputeDaily_PolarSaturation(t *testing.T) {
	obs := newObserver(Location{LatitudeDeg: 80})

	summer := computeDaily(CalendarDay{2024, time.June, 21}, obs)
	for b := Band(0); b < bandCount; b++ {
		if summer.BandState(b) != BandAlwaysAbove {
			t.Errorf("June %s: expected always_above, got %s", b, summer.BandState(b))
		}
		if summer.HourAnglesDeg[b] != 180 {
			t.Errorf("June %s: expected hour angle 180, got %v", b, summer.HourAnglesDeg[b])
		}
	}
	if d := summer.Event(Sunrise); !d.Equal(summer.Event(SolarMidnight)) {
		t.Errorf("June sunrise %s should equal solar midnight %s", d, summer.Event(SolarMidnight))
	}

	winter := computeDaily(CalendarDay{2024, time.December, 21}, obs)
	if winter.BandState(BandHorizon) != BandAlwaysBelow {
		t.Fatalf("December horizon: expected always_below, got %s", winter.BandState(BandHorizon))
	}
	noon := winter.Event(SolarNoon)
	if !winter.Event(Sunrise).Equal(noon) || !winter.Event(Sunset).Equal(noon) {
		t.Errorf("December sunrise/sunset should collapse onto noon %s", noon)
	}
	if winter.DayLength() != 0 {
		t.Errorf("December day length: expected 0, got %s", winter.DayLength())
	}

	for _, p := range []DailySolarParameters{summer, winter} {
		for _, k := range AllEventKinds() {
			if p.Event(k).IsZero() {
				t.Errorf("%s %s: zero instant", p.Day, k)
			}
		}
		for b := Band(0); b < bandCount; b++ {
			if math.IsNaN(p.HourAnglesDeg[b]) {
				t.Errorf("%s %s: NaN hour angle", p.Day, b)
			}
		}
	}
}

// TestComputeDaily_AltitudeWidensDay tests that a high observer sees a longer day.
func TestComputeDaily_AltitudeWidensDay(t *testing.T) {
	day := CalendarDay{2024, time.March, 20}
	sea := computeDaily(day, newObserver(Location{LatitudeDeg: 45}))
	peak := computeDaily(day, newObserver(Location{LatitudeDeg: 45, AltitudeM: 4000}))
	if peak.DayLength() <= sea.DayLength() {
		t.Errorf("Expected longer day at altitude: sea %s, 4000m %s", sea.DayLength(), peak.DayLength())
	}
}

func TestMinutesToInstant(t *testing.T) {
	midnight := time.Date(2024, 3, 20, 0, 0, 0, 0, time.UTC)
	got := minutesToInstant(midnight, 361.5)
	want := time.Date(2024, 3, 20, 6, 1, 30, 0, time.UTC)
	if !within(got, want, time.Microsecond) {
		t.Errorf("Expected %s, got %s", want, got)
	}
	// Negative minutes land on the previous UTC day.
	got = minutesToInstant(midnight, -30.25)
	want = time.Date(2024, 3, 19, 23, 29, 45, 0, time.UTC)
	if !within(got, want, time.Microsecond) {
		t.Errorf("Expected %s, got %s", want, got)
	}
}

// TestComputePosition_EquinoxNoon tests azimuth and elevation at solar noon.
func TestComputePosition_EquinoxNoon(t *testing.T) {
	obs := newObserver(Location{LatitudeDeg: 45})
	day := CalendarDay{2024, time.March, 20}
	noon := computeDaily(day, obs).Event(SolarNoon)

	pos := computePosition(noon, 0, obs)
	if math.Abs(pos.AzimuthDeg-180) > 1 {
		t.Errorf("Noon azimuth: expected ~180, got %.4f", pos.AzimuthDeg)
	}
	if math.Abs(pos.ElevationDeg-45.0) > 0.3 {
		t.Errorf("Noon elevation: expected ~45.0, got %.4f", pos.ElevationDeg)
	}

	// Noon is the daily maximum.
	for _, off := range []time.Duration{-3 * time.Hour, -20 * time.Minute, 20 * time.Minute, 3 * time.Hour} {
		p := computePosition(noon.Add(off), 0, obs)
		if p.ElevationDeg >= pos.ElevationDeg {
			t.Errorf("Elevation at noon%+v (%.4f) not below noon (%.4f)", off, p.ElevationDeg, pos.ElevationDeg)
		}
	}
}

// TestComputePosition_OffsetInvariant tests that the display offset does not move the sun.
func TestComputePosition_OffsetInvariant(t *testing.T) {
	obs := newObserver(Location{LatitudeDeg: 35.68, LongitudeDeg: 139.69})
	at := time.Date(2024, 8, 1, 3, 15, 0, 0, time.UTC)
	base := computePosition(at, 0, obs)
	for _, off := range []int{540, -300, 330, 720} {
		p := computePosition(at, off, obs)
		if math.Abs(p.AzimuthDeg-base.AzimuthDeg) > 1e-6 || math.Abs(p.ElevationDeg-base.ElevationDeg) > 1e-6 {
			t.Errorf("offset %d: (%.6f, %.6f) differs from UTC (%.6f, %.6f)",
				off, p.AzimuthDeg, p.ElevationDeg, base.AzimuthDeg, base.ElevationDeg)
		}
	}
}

// TestComputePosition_MorningEast tests that the morning sun is in the east.
func TestComputePosition_MorningEast(t *testing.T) {
	obs := newObserver(Location{LatitudeDeg: 45})
	p := computePosition(time.Date(2024, 3, 20, 8, 0, 0, 0, time.UTC), 0, obs)
	if p.AzimuthDeg < 90 || p.AzimuthDeg > 150 {
		t.Errorf("Morning azimuth: expected in (90, 150), got %.4f", p.AzimuthDeg)
	}
	if p.ElevationDeg <= 0 {
		t.Errorf("Morning elevation: expected positive, got %.4f", p.ElevationDeg)
	}
	p = computePosition(time.Date(2024, 3, 20, 16, 0, 0, 0, time.UTC), 0, obs)
	if p.AzimuthDeg < 210 || p.AzimuthDeg > 270 {
		t.Errorf("Afternoon azimuth: expected in (210, 270), got %.4f", p.AzimuthDeg)
	}
}

// TestRefractionCorrection_Bounded tests the guard near the model's pole.
func TestRefractionCorrection_Bounded(t *testing.T) {
	if c := refractionCorrection(-5); c != 0 {
		t.Errorf("At cutoff: expected 0, got %v", c)
	}
	if c := refractionCorrection(-30); c != 0 {
		t.Errorf("Below cutoff: expected 0, got %v", c)
	}
	for e := -4.999; e <= 90; e += 0.013 {
		c := refractionCorrection(e)
		if math.IsNaN(c) || math.Abs(c) > maxRefractionDeg {
			t.Fatalf("Elevation %.3f: correction %v out of bounds", e, c)
		}
	}
}

// TestRefractionCorrection_Sign pins the correction as a subtraction from
// the geometric elevation.
func TestRefractionCorrection_Sign(t *testing.T) {
	tests := []struct {
		elevation, expected float64
	}{
		{-0.833, -0.607},
		{0, -0.4745},
		{45, -0.0166},
	}
	for _, tt := range tests {
		if c := refractionCorrection(tt.elevation); math.Abs(c-tt.expected) > 1e-3 {
			t.Errorf("refractionCorrection(%v): expected %.4f, got %.4f", tt.elevation, tt.expected, c)
		}
	}
	for e := -4.9; e <= 85; e += 0.1 {
		if c := refractionCorrection(e); c >= 0 {
			t.Fatalf("Elevation %.1f: expected negative correction, got %v", e, c)
		}
	}
}

func TestNormalizeDeg360(t *testing.T) {
	tests := []struct {
		in, expected float64
	}{
		{0, 0},
		{360, 0},
		{-90, 270},
		{725, 5},
		{-1e-15, 0},
	}
	for _, tt := range tests {
		got := normalizeDeg360(tt.in)
		if math.Abs(got-tt.expected) > 1e-9 || got >= 360 || got < 0 {
			t.Errorf("normalizeDeg360(%v): expected %v, got %v", tt.in, tt.expected, got)
		}
	}
}

func TestDeg2Rad(t *testing.T) {
	tests := []struct {
		deg, rad float64
	}{
		{0, 0},
		{90, math.Pi / 2},
		{180, math.Pi},
		{-45, -math.Pi / 4},
	}
	for _, tt := range tests {
		if got := Deg2Rad(tt.deg); math.Abs(got-tt.rad) > 1e-12 {
			t.Errorf("Deg2Rad(%v): expected %v, got %v", tt.deg, tt.rad, got)
		}
		if got := Rad2Deg(tt.rad); math.Abs(got-tt.deg) > 1e-9 {
			t.Errorf("Rad2Deg(%v): expected %v, got %v", tt.rad, tt.deg, got)
		}
	}
}

func TestEventKind_RoundTrip(t *testing.T) {
	for _, k := range AllEventKinds() {
		got, err := ParseEventKind(k.String())
		if err != nil || got != k {
			t.Errorf("ParseEventKind(%q) = %v, %v", k.String(), got, err)
		}
	}
	if _, err := ParseEventKind("moonrise"); err == nil {
		t.Error("Expected error for unknown event kind")
	}
}

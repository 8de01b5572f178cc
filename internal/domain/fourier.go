package domain

import "math"

// SolarTerms holds the slowly varying solar quantities for one fractional-year angle.
type SolarTerms struct {
	GammaRad       float64 // Fractional-year angle.
	EqTimeMin      float64 // Equation of time in minutes.
	DeclinationRad float64 // Solar declination in radians.
}

// fourierCoeffs holds a truncated Fourier series in the fractional-year angle γ:
//
//	c0 + Σ_k (cos[k]·cos(kγ) + sin[k]·sin(kγ)), k = 1..3
type fourierCoeffs struct {
	c0  float64
	cos [4]float64
	sin [4]float64
}

func (c fourierCoeffs) eval(gamma float64) float64 {
	v := c.c0
	for k := 1; k < len(c.cos); k++ {
		s, co := math.Sincos(float64(k) * gamma)
		v += c.cos[k]*co + c.sin[k]*s
	}
	return v
}

// NOAA general solar position coefficients.
//
// Reference: https://gml.noaa.gov/grad/solcalc/solareqns.PDF
//
//nolint:gochecknoglobals // Read-only coefficient tables.
var (
	eqTimeSeries = fourierCoeffs{
		c0:  0.000075,
		cos: [4]float64{1: 0.001868, 2: -0.014615},
		sin: [4]float64{1: -0.032077, 2: -0.040849},
	}
	declinationSeries = fourierCoeffs{
		c0:  0.006918,
		cos: [4]float64{1: -0.399912, 2: -0.006758, 3: -0.002697},
		sin: [4]float64{1: 0.070257, 2: 0.000907, 3: 0.00148},
	}
)

// eqTimeScale converts the radian series to minutes of time (4 min/deg × 180/π).
const eqTimeScale = 229.18

// FractionalYearAngle returns γ = 2π × fraction.
func FractionalYearAngle(fraction float64) float64 {
	return 2 * math.Pi * fraction
}

// ComputeSolarTerms evaluates the equation of time and declination at γ.
func ComputeSolarTerms(gamma float64) SolarTerms {
	return SolarTerms{
		GammaRad:       gamma,
		EqTimeMin:      eqTimeScale * eqTimeSeries.eval(gamma),
		DeclinationRad: declinationSeries.eval(gamma),
	}
}

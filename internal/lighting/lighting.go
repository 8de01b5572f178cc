// Package lighting turns a solar position into values a renderer can use
// directly: a sun direction vector, a day/night blend factor, a colour
// temperature and a clear-sky irradiance estimate.
package lighting

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"

	"go.ngs.io/solar-api/internal/domain"
	"go.ngs.io/solar-api/internal/interp"
)

// Blend limits (degrees of solar elevation). Below NightElevationDeg the
// scene is fully night; above DayElevationDeg fully day.
const (
	NightElevationDeg = -6.0
	DayElevationDeg   = 6.0
)

// Lighting is the render-facing summary of a solar position.
type Lighting struct {
	// Direction points from the observer towards the sun in a local
	// east-north-up frame.
	Direction r3.Vec
	// Daylight is 0 at night, 1 in full day, smooth in between.
	Daylight float64
	// ColorTemperatureK is the correlated colour temperature of direct sunlight.
	ColorTemperatureK float64
	// IrradianceWm2 is direct plus diffuse clear-sky irradiance on a plane
	// facing the sun.
	IrradianceWm2 float64
}

// FromPosition computes lighting for a position seen from altitudeM.
func FromPosition(pos domain.Position, altitudeM float64) Lighting {
	return Lighting{
		Direction:         SunDirection(pos.AzimuthDeg, pos.ElevationDeg),
		Daylight:          DaylightFactor(pos.ElevationDeg, NightElevationDeg, DayElevationDeg),
		ColorTemperatureK: ColorTemperature(pos.ElevationDeg),
		IrradianceWm2:     ClearSkyIrradiance(pos.ElevationDeg, altitudeM),
	}
}

// SunDirection returns the unit vector towards the sun in east-north-up
// coordinates for an azimuth clockwise from north and an elevation.
func SunDirection(azimuthDeg, elevationDeg float64) r3.Vec {
	az := domain.Deg2Rad(azimuthDeg)
	el := domain.Deg2Rad(elevationDeg)
	return r3.Unit(r3.Vec{
		X: math.Sin(az) * math.Cos(el),
		Y: math.Cos(az) * math.Cos(el),
		Z: math.Sin(el),
	})
}

// DaylightFactor maps elevation onto [0, 1] with a smoothstep between
// nightDeg and dayDeg.
func DaylightFactor(elevationDeg, nightDeg, dayDeg float64) float64 {
	if dayDeg <= nightDeg {
		if elevationDeg >= dayDeg {
			return 1
		}
		return 0
	}
	return smoothstep((elevationDeg - nightDeg) / (dayDeg - nightDeg))
}

func smoothstep(x float64) float64 {
	x = math.Max(0, math.Min(1, x))
	return x * x * (3 - 2*x)
}

// Approximate CCT of direct sunlight (kelvin) against solar elevation.
//
//nolint:gochecknoglobals // Read-only lookup table.
var colorTable = interp.MustTable1D(
	[2]float64{-6, 1800},
	[2]float64{0, 2000},
	[2]float64{5, 3000},
	[2]float64{10, 3800},
	[2]float64{20, 4800},
	[2]float64{40, 5500},
	[2]float64{60, 5800},
	[2]float64{90, 6000},
)

// ColorTemperature interpolates the colour temperature of direct sunlight
// in kelvin. Values are clamped at both ends of the table.
func ColorTemperature(elevationDeg float64) float64 {
	return colorTable.At(elevationDeg)
}

// Clear-sky model constants.
const (
	solarConstantWm2 = 1353.0
	// Fraction of the altitude gain in direct irradiance per kilometre.
	altitudeGainPerKm = 0.14
	diffuseFraction   = 0.1
)

// ClearSkyIrradiance estimates global irradiance (W/m²) on a plane normal to
// the sun, using the Kasten-Young air mass and the Meinel altitude model.
// It is zero when the sun is below the horizon.
func ClearSkyIrradiance(elevationDeg, altitudeM float64) float64 {
	if elevationDeg <= 0 {
		return 0
	}
	zenith := 90 - elevationDeg
	airMass := 1 / (math.Cos(domain.Deg2Rad(zenith)) + 0.50572*math.Pow(96.07995-zenith, -1.6364))

	h := math.Max(altitudeM, 0) / 1000
	direct := solarConstantWm2 * ((1-altitudeGainPerKm*h)*math.Pow(0.7, math.Pow(airMass, 0.678)) + altitudeGainPerKm*h)
	return (1 + diffuseFraction) * direct
}

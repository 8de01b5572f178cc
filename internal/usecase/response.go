package usecase

import (
	"gonum.org/v1/gonum/spatial/r3"

	"go.ngs.io/solar-api/internal/domain"
	"go.ngs.io/solar-api/internal/lighting"
)

// PositionResponse contains the sun position for one instant.
type PositionResponse struct {
	Time           string            `json:"time"`
	Timezone       string            `json:"timezone"`
	Site           string            `json:"site,omitempty"`
	Location       domain.Location   `json:"location"`
	AzimuthDeg     float64           `json:"azimuth_deg"`
	ElevationDeg   float64           `json:"elevation_deg"`
	ZenithDeg      float64           `json:"zenith_deg"`
	HourAngleDeg   float64           `json:"hour_angle_deg"`
	DeclinationDeg float64           `json:"declination_deg"`
	EqTimeMin      float64           `json:"eqtime_min"`
	Lighting       LightingResponse  `json:"lighting"`
	Meta           map[string]string `json:"meta"`
}

// LightingResponse is the render-facing part of a position response.
type LightingResponse struct {
	Daylight          float64   `json:"daylight"`
	ColorTemperatureK float64   `json:"color_temperature_k"`
	IrradianceWm2     float64   `json:"irradiance_w_m2"`
	Direction         Direction `json:"direction"`
}

// Direction is a unit vector in east-north-up coordinates.
type Direction struct {
	East  float64 `json:"east"`
	North float64 `json:"north"`
	Up    float64 `json:"up"`
}

func newDirection(v r3.Vec) Direction {
	return Direction{
		East:  roundToDecimal(v.X, 6),
		North: roundToDecimal(v.Y, 6),
		Up:    roundToDecimal(v.Z, 6),
	}
}

func newLightingResponse(l lighting.Lighting) LightingResponse {
	return LightingResponse{
		Daylight:          roundToDecimal(l.Daylight, 4),
		ColorTemperatureK: roundToDecimal(l.ColorTemperatureK, 0),
		IrradianceWm2:     roundToDecimal(l.IrradianceWm2, 1),
		Direction:         newDirection(l.Direction),
	}
}

// EventPoint is one daily event. State is set when the band's threshold is
// never crossed and the time is a collapsed placeholder.
type EventPoint struct {
	Event string `json:"event"`
	Time  string `json:"time"`
	State string `json:"state,omitempty"`
}

// BandPoint reports one horizon band.
type BandPoint struct {
	Band         string  `json:"band"`
	State        string  `json:"state"`
	HourAngleDeg float64 `json:"hour_angle_deg"`
}

// EventsResponse contains the daily events for one UTC calendar day.
type EventsResponse struct {
	Date           string            `json:"date"`
	Timezone       string            `json:"timezone"`
	Site           string            `json:"site,omitempty"`
	Location       domain.Location   `json:"location"`
	Events         []EventPoint      `json:"events"`
	Bands          []BandPoint       `json:"bands"`
	EqTimeMin      float64           `json:"eqtime_min"`
	DeclinationDeg float64           `json:"declination_deg"`
	DayLengthMin   float64           `json:"day_length_min"`
	Meta           map[string]string `json:"meta"`
}

// TrackPoint is one sample of a track.
type TrackPoint struct {
	Time         string  `json:"time"`
	AzimuthDeg   float64 `json:"azimuth_deg"`
	ElevationDeg float64 `json:"elevation_deg"`
	Daylight     float64 `json:"daylight"`
}

// TrackDay holds the events of a UTC day crossed by a track.
type TrackDay struct {
	Date         string       `json:"date"`
	Events       []EventPoint `json:"events"`
	DayLengthMin float64      `json:"day_length_min"`
}

// TrackStats reports how often the engine recomputed during a track.
type TrackStats struct {
	DailyRecomputes    uint64 `json:"daily_recomputes"`
	PositionRecomputes uint64 `json:"position_recomputes"`
}

// TrackResponse contains a position time series.
type TrackResponse struct {
	Timezone string            `json:"timezone"`
	Site     string            `json:"site,omitempty"`
	Location domain.Location   `json:"location"`
	Interval string            `json:"interval"`
	Points   []TrackPoint      `json:"points"`
	Days     []TrackDay        `json:"days"`
	Stats    TrackStats        `json:"stats"`
	Meta     map[string]string `json:"meta"`
}

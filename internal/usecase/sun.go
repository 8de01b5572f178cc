package usecase

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"go.uber.org/zap"

	"go.ngs.io/solar-api/internal/adapter/store"
	"go.ngs.io/solar-api/internal/adapter/terrain"
	"go.ngs.io/solar-api/internal/domain"
	"go.ngs.io/solar-api/internal/lighting"
)

// ErrTerrainUnavailable is returned when no terrain grid is configured.
var ErrTerrainUnavailable = errors.New("terrain data not configured")

// GeoidCorrector converts ellipsoidal heights to heights above mean sea level.
type GeoidCorrector interface {
	OrthometricHeight(lat, lon, h float64) (float64, error)
}

// SunUseCase orchestrates solar position, event and track requests.
type SunUseCase struct {
	sites     store.SiteLoader
	terrain   terrain.Store
	geoid     GeoidCorrector
	overrides *SiteOverrides
	clock     domain.Clock
	logger    *zap.Logger

	maxTrackPoints int
	defaultSite    string
}

// Option configures a SunUseCase.
type Option func(*SunUseCase)

// WithSites sets the named site store.
func WithSites(s store.SiteLoader) Option { return func(uc *SunUseCase) { uc.sites = s } }

// WithTerrain sets the terrain store used when a request omits altitude.
func WithTerrain(t terrain.Store) Option { return func(uc *SunUseCase) { uc.terrain = t } }

// WithGeoid sets the geoid used for ellipsoidal altitudes.
func WithGeoid(g GeoidCorrector) Option { return func(uc *SunUseCase) { uc.geoid = g } }

// WithSiteOverrides sets the override table.
func WithSiteOverrides(o *SiteOverrides) Option { return func(uc *SunUseCase) { uc.overrides = o } }

// WithClock sets the clock used for requests without a time.
func WithClock(c domain.Clock) Option { return func(uc *SunUseCase) { uc.clock = c } }

// WithLogger sets the logger.
func WithLogger(l *zap.Logger) Option { return func(uc *SunUseCase) { uc.logger = l } }

// WithMaxTrackPoints bounds the size of a track response.
func WithMaxTrackPoints(n int) Option { return func(uc *SunUseCase) { uc.maxTrackPoints = n } }

// WithDefaultSite names the site used when a request has neither site nor coordinates.
func WithDefaultSite(id string) Option { return func(uc *SunUseCase) { uc.defaultSite = id } }

// NewSunUseCase creates a new sun use case.
func NewSunUseCase(opts ...Option) *SunUseCase {
	uc := &SunUseCase{
		clock:          domain.SystemClock{},
		logger:         zap.NewNop(),
		maxTrackPoints: 2000,
	}
	for _, fn := range opts {
		fn(uc)
	}
	return uc
}

// observer is a fully resolved request location.
type observer struct {
	site      string
	loc       domain.Location
	offsetMin int
	meta      map[string]string
}

// resolve turns a query into a location, offset and provenance metadata.
//
//nolint:gocyclo // Precedence rules for site, override, terrain and geoid.
func (uc *SunUseCase) resolve(q LocationQuery) (observer, error) {
	obs := observer{meta: map[string]string{}}

	siteID := strings.TrimSpace(q.SiteID)
	if siteID == "" && !q.hasCoords() {
		siteID = uc.defaultSite
	}
	if siteID == "" && !q.hasCoords() {
		return observer{}, invalid("lat/lon", nil, "either lat/lon or site must be provided")
	}

	if siteID != "" {
		if uc.sites == nil {
			return observer{}, fmt.Errorf("%w: %s (no site store configured)", store.ErrSiteNotFound, siteID)
		}
		site, err := uc.sites.LoadSite(siteID)
		if err != nil {
			return observer{}, err
		}
		obs.site = site.ID
		obs.loc = site.Location
		obs.offsetMin = site.TimezoneOffsetMin
		obs.meta["altitude_source"] = "site"
		obs.meta["tz_source"] = "site"
		if q.AltM != nil {
			obs.loc.AltitudeM = *q.AltM
			obs.meta["altitude_source"] = "request"
		}
	} else {
		obs.loc = domain.Location{LatitudeDeg: *q.Lat, LongitudeDeg: *q.Lon}
		obs.meta["tz_source"] = "utc"

		override, ok, err := uc.overrides.Match(*q.Lat, *q.Lon)
		if err != nil {
			uc.logger.Warn("site overrides unavailable", zap.Error(err))
		}
		if ok {
			obs.meta["override"] = override.Name
			if override.TimezoneOffsetMin != nil {
				obs.offsetMin = *override.TimezoneOffsetMin
				obs.meta["tz_source"] = "override"
			}
		}

		switch {
		case q.AltM != nil:
			obs.loc.AltitudeM = *q.AltM
			obs.meta["altitude_source"] = "request"
		case ok && override.AltitudeM != nil:
			obs.loc.AltitudeM = *override.AltitudeM
			obs.meta["altitude_source"] = "override"
		default:
			obs.meta["altitude_source"] = "default"
			if uc.terrain != nil {
				sample, err := uc.terrain.Sample(*q.Lat, *q.Lon)
				if err != nil {
					uc.logger.Warn("terrain lookup failed", zap.Error(err))
				} else if sample != nil {
					obs.loc.AltitudeM = sample.ObserverAltitudeM
					obs.meta["altitude_source"] = "terrain"
				}
			}
		}
	}

	if q.AltRef == AltRefEllipsoid && q.AltM != nil {
		if uc.geoid == nil {
			return observer{}, invalid("alt_ref", q.AltRef, "geoid data not configured")
		}
		h, err := uc.geoid.OrthometricHeight(obs.loc.LatitudeDeg, obs.loc.LongitudeDeg, *q.AltM)
		if err != nil {
			return observer{}, fmt.Errorf("failed to apply geoid correction: %w", err)
		}
		obs.loc.AltitudeM = h
		obs.meta["altitude_source"] = "request (EGM2008 geoid-corrected)"
	}

	if q.TZOffsetMin != nil {
		obs.offsetMin = *q.TZOffsetMin
		obs.meta["tz_source"] = "request"
	}
	return obs, nil
}

func (uc *SunUseCase) newEngine(obs observer, t time.Time) (*domain.Engine, error) {
	e, err := domain.New(obs.loc, domain.WithTime(t), domain.WithTimezoneOffset(obs.offsetMin))
	if err != nil {
		return nil, fmt.Errorf("failed to create solar engine: %w", err)
	}
	return e, nil
}

// Position computes the sun position for a request.
func (uc *SunUseCase) Position(req PositionRequest) (*PositionResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	obs, err := uc.resolve(req.LocationQuery)
	if err != nil {
		return nil, err
	}
	t := uc.clock.Now()
	if req.Time != nil {
		t = *req.Time
	}
	e, err := uc.newEngine(obs, t)
	if err != nil {
		return nil, err
	}

	pos := e.SunPosition()
	return &PositionResponse{
		Time:           formatTime(e.ReferenceTime()),
		Timezone:       formatOffset(obs.offsetMin),
		Site:           obs.site,
		Location:       roundLocation(obs.loc),
		AzimuthDeg:     roundToDecimal(pos.AzimuthDeg, 4),
		ElevationDeg:   roundToDecimal(pos.ElevationDeg, 4),
		ZenithDeg:      roundToDecimal(pos.ZenithDeg, 4),
		HourAngleDeg:   roundToDecimal(pos.HourAngleDeg, 4),
		DeclinationDeg: roundToDecimal(domain.Rad2Deg(pos.DeclinationRad), 4),
		EqTimeMin:      roundToDecimal(pos.EqTimeMin, 3),
		Lighting:       newLightingResponse(lighting.FromPosition(pos, obs.loc.AltitudeM)),
		Meta:           obs.meta,
	}, nil
}

// Events computes the ten daily events for a request.
func (uc *SunUseCase) Events(req EventsRequest) (*EventsResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	obs, err := uc.resolve(req.LocationQuery)
	if err != nil {
		return nil, err
	}
	day := domain.DayOf(uc.clock.Now())
	if req.Date != nil {
		day = *req.Date
	}
	e, err := uc.newEngine(obs, day.Midnight())
	if err != nil {
		return nil, err
	}

	daily := e.Daily()
	resp := &EventsResponse{
		Date:           day.String(),
		Timezone:       formatOffset(obs.offsetMin),
		Site:           obs.site,
		Location:       roundLocation(obs.loc),
		Events:         eventPoints(e, obs.offsetMin),
		EqTimeMin:      roundToDecimal(daily.EqTimeMin, 3),
		DeclinationDeg: roundToDecimal(domain.Rad2Deg(daily.DeclinationRad), 4),
		DayLengthMin:   roundToDecimal(daily.DayLength().Minutes(), 2),
		Meta:           obs.meta,
	}
	for b := domain.BandHorizon; b <= domain.BandAstronomical; b++ {
		resp.Bands = append(resp.Bands, BandPoint{
			Band:         b.String(),
			State:        daily.BandState(b).String(),
			HourAngleDeg: roundToDecimal(daily.HourAnglesDeg[b], 4),
		})
	}
	return resp, nil
}

// Track samples positions over a time range with a single engine, so the
// daily parameters are recomputed only when the UTC day changes.
func (uc *SunUseCase) Track(req TrackRequest) (*TrackResponse, error) {
	if err := req.Validate(uc.maxTrackPoints); err != nil {
		return nil, err
	}
	obs, err := uc.resolve(req.LocationQuery)
	if err != nil {
		return nil, err
	}
	e, err := uc.newEngine(obs, req.Start)
	if err != nil {
		return nil, err
	}

	interval := req.interval()
	resp := &TrackResponse{
		Timezone: formatOffset(obs.offsetMin),
		Site:     obs.site,
		Location: roundLocation(obs.loc),
		Interval: interval.String(),
		Points:   make([]TrackPoint, 0, req.points()),
		Meta:     obs.meta,
	}

	var lastDay domain.CalendarDay
	for t := req.Start; !t.After(req.End); t = t.Add(interval) {
		if err := e.SetTime(t); err != nil {
			return nil, err
		}
		pos := e.SunPosition()
		resp.Points = append(resp.Points, TrackPoint{
			Time:         formatTime(e.ReferenceTime()),
			AzimuthDeg:   roundToDecimal(pos.AzimuthDeg, 4),
			ElevationDeg: roundToDecimal(pos.ElevationDeg, 4),
			Daylight:     roundToDecimal(lighting.DaylightFactor(pos.ElevationDeg, lighting.NightElevationDeg, lighting.DayElevationDeg), 4),
		})
		if day := e.Daily().Day; day != lastDay {
			lastDay = day
			resp.Days = append(resp.Days, TrackDay{
				Date:         day.String(),
				Events:       eventPoints(e, obs.offsetMin),
				DayLengthMin: roundToDecimal(e.Daily().DayLength().Minutes(), 2),
			})
		}
	}

	stats := e.Stats()
	resp.Stats = TrackStats{
		DailyRecomputes:    stats.DailyRecomputes,
		PositionRecomputes: stats.PositionRecomputes,
	}
	uc.logger.Debug("track computed",
		zap.Int("points", len(resp.Points)),
		zap.Uint64("daily_recomputes", stats.DailyRecomputes),
		zap.Uint64("position_recomputes", stats.PositionRecomputes))
	return resp, nil
}

// Sites lists the configured named sites.
func (uc *SunUseCase) Sites() ([]domain.Site, error) {
	if uc.sites == nil {
		return []domain.Site{}, nil
	}
	return uc.sites.ListSites()
}

// Terrain returns the terrain sample at a location.
func (uc *SunUseCase) Terrain(lat, lon float64) (*terrain.Sample, error) {
	if uc.terrain == nil {
		return nil, ErrTerrainUnavailable
	}
	req := PositionRequest{LocationQuery: LocationQuery{Lat: &lat, Lon: &lon}}
	if err := req.Validate(); err != nil {
		return nil, err
	}
	sample, err := uc.terrain.Sample(lat, lon)
	if err != nil {
		return nil, fmt.Errorf("failed to sample terrain: %w", err)
	}
	if sample == nil {
		return nil, fmt.Errorf("%w at (%.4f, %.4f)", ErrTerrainUnavailable, lat, lon)
	}
	return sample, nil
}

// HasTerrain reports whether a terrain store is configured.
func (uc *SunUseCase) HasTerrain() bool {
	return uc.terrain != nil
}

func eventPoints(e *domain.Engine, offsetMin int) []EventPoint {
	events := e.Events(offsetMin)
	daily := e.Daily()
	out := make([]EventPoint, len(events))
	for i, ev := range events {
		out[i] = EventPoint{
			Event: ev.Kind.String(),
			Time:  formatTime(ev.Time),
		}
		if b, ok := bandOf(ev.Kind); ok && daily.BandState(b) != domain.BandNormal {
			out[i].State = daily.BandState(b).String()
		}
	}
	return out
}

func bandOf(kind domain.EventKind) (domain.Band, bool) {
	switch kind {
	case domain.Sunrise, domain.Sunset:
		return domain.BandHorizon, true
	case domain.CivilDawn, domain.CivilDusk:
		return domain.BandCivil, true
	case domain.NauticalDawn, domain.NauticalDusk:
		return domain.BandNautical, true
	case domain.AstronomicalDawn, domain.AstronomicalDusk:
		return domain.BandAstronomical, true
	default:
		return 0, false
	}
}

func formatTime(t time.Time) string {
	return t.Format(time.RFC3339)
}

// formatOffset renders an offset in minutes as ±HH:MM.
func formatOffset(offsetMin int) string {
	sign := '+'
	if offsetMin < 0 {
		sign = '-'
		offsetMin = -offsetMin
	}
	return fmt.Sprintf("%c%02d:%02d", sign, offsetMin/60, offsetMin%60)
}

func roundLocation(l domain.Location) domain.Location {
	return domain.Location{
		LatitudeDeg:  roundToDecimal(l.LatitudeDeg, 6),
		LongitudeDeg: roundToDecimal(l.LongitudeDeg, 6),
		AltitudeM:    roundToDecimal(l.AltitudeM, 2),
	}
}

// roundToDecimal rounds half away from zero to precision decimal places.
func roundToDecimal(val float64, precision int) float64 {
	m := math.Pow(10, float64(precision))
	return math.Round(val*m) / m
}

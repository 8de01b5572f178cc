package http

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"go.ngs.io/solar-api/internal/adapter/store"
	"go.ngs.io/solar-api/internal/domain"
	"go.ngs.io/solar-api/internal/usecase"
)

// Handler handles HTTP requests for solar positions and events.
type Handler struct {
	sunUC  *usecase.SunUseCase
	logger *zap.Logger
}

// NewHandler creates a new HTTP handler.
func NewHandler(sunUC *usecase.SunUseCase, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{
		sunUC:  sunUC,
		logger: logger,
	}
}

// GetPosition handles GET /v1/sun/position.
func (h *Handler) GetPosition(c *gin.Context) {
	q, err := parseLocationQuery(c)
	if err != nil {
		h.writeError(c, err)
		return
	}
	req := usecase.PositionRequest{LocationQuery: q}
	if req.Time, err = parseTimeParam(c, "time"); err != nil {
		h.writeError(c, err)
		return
	}

	response, err := h.sunUC.Position(req)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, response)
}

// GetEvents handles GET /v1/sun/events.
func (h *Handler) GetEvents(c *gin.Context) {
	q, err := parseLocationQuery(c)
	if err != nil {
		h.writeError(c, err)
		return
	}
	req := usecase.EventsRequest{LocationQuery: q}
	if s := c.Query("date"); s != "" {
		day, err := domain.ParseCalendarDay(s)
		if err != nil {
			h.writeError(c, &domain.ValidationError{Field: "date", Value: s, Reason: "expected YYYY-MM-DD"})
			return
		}
		req.Date = &day
	}

	response, err := h.sunUC.Events(req)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, response)
}

// GetTrack handles GET /v1/sun/track.
func (h *Handler) GetTrack(c *gin.Context) {
	q, err := parseLocationQuery(c)
	if err != nil {
		h.writeError(c, err)
		return
	}
	req := usecase.TrackRequest{LocationQuery: q}

	start, err := parseTimeParam(c, "start")
	if err != nil {
		h.writeError(c, err)
		return
	}
	end, err := parseTimeParam(c, "end")
	if err != nil {
		h.writeError(c, err)
		return
	}
	if start != nil {
		req.Start = *start
	}
	if end != nil {
		req.End = *end
	}

	if s := c.Query("interval"); s != "" {
		interval, err := time.ParseDuration(s)
		if err != nil {
			h.writeError(c, &domain.ValidationError{Field: "interval", Value: s, Reason: "expected a duration such as 10m"})
			return
		}
		req.Interval = interval
	}

	response, err := h.sunUC.Track(req)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, response)
}

// GetSites handles GET /v1/sites.
func (h *Handler) GetSites(c *gin.Context) {
	sites, err := h.sunUC.Sites()
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"sites": sites,
		"count": len(sites),
	})
}

// GetTerrain handles GET /v1/terrain.
func (h *Handler) GetTerrain(c *gin.Context) {
	lat, err := parseFloatParam(c, "lat")
	if err != nil {
		h.writeError(c, err)
		return
	}
	lon, err := parseFloatParam(c, "lon")
	if err != nil {
		h.writeError(c, err)
		return
	}
	if lat == nil || lon == nil {
		h.writeError(c, &domain.ValidationError{Field: "lat/lon", Reason: "both lat and lon are required"})
		return
	}

	sample, err := h.sunUC.Terrain(*lat, *lon)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"lat":     *lat,
		"lon":     *lon,
		"terrain": sample,
	})
}

// HealthCheck handles GET /health.
func (h *Handler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"time":    time.Now().UTC().Format(time.RFC3339),
		"terrain": h.sunUC.HasTerrain(),
	})
}

// writeError maps use case errors to HTTP status codes.
func (h *Handler) writeError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		status = http.StatusBadRequest
	case errors.Is(err, store.ErrSiteNotFound), errors.Is(err, usecase.ErrTerrainUnavailable):
		status = http.StatusNotFound
	default:
		h.logger.Error("request failed",
			zap.String("path", c.Request.URL.Path),
			zap.Error(err))
	}
	c.JSON(status, gin.H{"error": err.Error()})
}

func parseLocationQuery(c *gin.Context) (usecase.LocationQuery, error) {
	q := usecase.LocationQuery{
		AltRef: c.Query("alt_ref"),
		SiteID: c.Query("site"),
	}
	var err error
	if q.Lat, err = parseFloatParam(c, "lat"); err != nil {
		return q, err
	}
	if q.Lon, err = parseFloatParam(c, "lon"); err != nil {
		return q, err
	}
	if q.AltM, err = parseFloatParam(c, "alt"); err != nil {
		return q, err
	}
	if s := c.Query("tz_offset"); s != "" {
		v, err := strconv.Atoi(s)
		if err != nil {
			return q, &domain.ValidationError{Field: "tz_offset", Value: s, Reason: "expected an integer number of minutes"}
		}
		q.TZOffsetMin = &v
	}
	return q, nil
}

// parseFloatParam returns nil when the parameter is absent.
func parseFloatParam(c *gin.Context, name string) (*float64, error) {
	s := c.Query(name)
	if s == "" {
		return nil, nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil, &domain.ValidationError{Field: name, Value: s, Reason: "expected a number"}
	}
	return &v, nil
}

// parseTimeParam returns nil when the parameter is absent.
func parseTimeParam(c *gin.Context, name string) (*time.Time, error) {
	s := c.Query(name)
	if s == "" {
		return nil, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return nil, &domain.ValidationError{Field: name, Value: s, Reason: "expected RFC3339"}
	}
	return &t, nil
}

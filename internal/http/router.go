package http

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"go.ngs.io/solar-api/internal/usecase"
)

// RouterConfig holds the router settings taken from the server configuration.
type RouterConfig struct {
	// AllowedOrigins lists CORS origins. Empty allows all origins.
	AllowedOrigins []string
	Logger         *zap.Logger
}

// SetupRouter creates and configures the Gin router.
func SetupRouter(sunUC *usecase.SunUseCase, cfg RouterConfig) *gin.Engine {
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	router := gin.New()
	router.Use(requestLogger(logger), gin.Recovery())

	// Setup CORS middleware.
	corsConfig := cors.DefaultConfig()
	if len(cfg.AllowedOrigins) > 0 {
		corsConfig.AllowOrigins = cfg.AllowedOrigins
	} else {
		corsConfig.AllowAllOrigins = true
	}
	router.Use(cors.New(corsConfig))

	handler := NewHandler(sunUC, logger)

	// API v1 routes.
	v1 := router.Group("/v1")
	sun := v1.Group("/sun")
	sun.GET("/position", handler.GetPosition)
	sun.GET("/events", handler.GetEvents)
	sun.GET("/track", handler.GetTrack)

	v1.GET("/sites", handler.GetSites)
	v1.GET("/terrain", handler.GetTerrain)

	// Health check.
	router.GET("/health", handler.HealthCheck)

	return router
}

// requestLogger logs one line per request. Health probes log at debug.
func requestLogger(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		level := zapcore.InfoLevel
		switch {
		case c.Request.URL.Path == "/health":
			level = zapcore.DebugLevel
		case c.Writer.Status() >= 500:
			level = zapcore.ErrorLevel
		}
		logger.Log(level, "request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.String("query", c.Request.URL.RawQuery),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("duration", time.Since(start)),
			zap.String("remote_ip", c.ClientIP()),
		)
	}
}

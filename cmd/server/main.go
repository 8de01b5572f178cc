// Package main provides the solar API HTTP server.
package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"go.ngs.io/solar-api/internal/adapter/geoid"
	"go.ngs.io/solar-api/internal/adapter/store/csv"
	"go.ngs.io/solar-api/internal/adapter/terrain"
	"go.ngs.io/solar-api/internal/config"
	httpHandler "go.ngs.io/solar-api/internal/http"
	"go.ngs.io/solar-api/internal/usecase"
)

const version = "0.1.0"

func main() {
	os.Exit(run(os.Args[1:], os.LookupEnv))
}

// run starts the server and returns the process exit code. Deferred
// cleanup runs before main exits.
func run(args []string, lookup config.LookupFunc) int {
	// Parse command-line flags.
	fs := flag.NewFlagSet("solar-api", flag.ContinueOnError)
	showHelp := fs.Bool("help", false, "Show usage information")
	showVersion := fs.Bool("version", false, "Show version information")
	if err := fs.Parse(args); err != nil {
		return 2
	}

	if *showHelp {
		printUsage()
		return 0
	}

	if *showVersion {
		fmt.Printf("solar-api version %s\n", version)
		return 0
	}

	cfg, err := config.LoadWith(lookup)
	if err != nil {
		fmt.Fprintf(os.Stderr, "invalid configuration: %v\n", err)
		return 2
	}

	logger, err := newLogger(cfg.LogLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to create logger: %v\n", err)
		return 1
	}
	defer func() { _ = logger.Sync() }()

	logger.Info("starting solar API server",
		zap.String("version", version),
		zap.String("port", cfg.Port),
		zap.String("data_dir", cfg.DataDir))

	opts := []usecase.Option{
		usecase.WithSites(csv.NewSiteStore(cfg.DataDir)),
		usecase.WithLogger(logger.Named("sun")),
		usecase.WithMaxTrackPoints(cfg.MaxTrackPoints),
		usecase.WithDefaultSite(cfg.DefaultSite),
	}

	// Geoid store (optional, for alt_ref=ellipsoid).
	if cfg.GeoidPath != "" {
		logger.Info("geoid store enabled", zap.String("path", cfg.GeoidPath))
		geoidStore := geoid.NewStore(cfg.GeoidPath)
		defer func() { _ = geoidStore.Close() }()
		opts = append(opts, usecase.WithGeoid(geoidStore))
	}

	// Terrain store (optional, supplies altitude when a request omits it).
	if cfg.TerrainPath != "" {
		logger.Info("terrain store enabled", zap.String("path", cfg.TerrainPath))
		terrainStore := terrain.NewLocalStore(cfg.TerrainPath, logger.Named("terrain"))
		defer func() { _ = terrainStore.Close() }()
		opts = append(opts, usecase.WithTerrain(terrainStore))
	} else {
		logger.Info("terrain store disabled (no TERRAIN_PATH configured)")
	}

	if cfg.SiteOverridesPath != "" {
		overrides := usecase.NewSiteOverrides(cfg.SiteOverridesPath)
		n, err := overrides.Len()
		if err != nil {
			logger.Warn("site overrides unavailable", zap.Error(err))
		} else {
			logger.Info("site overrides loaded", zap.String("path", cfg.SiteOverridesPath), zap.Int("count", n))
		}
		opts = append(opts, usecase.WithSiteOverrides(overrides))
	}

	sunUC := usecase.NewSunUseCase(opts...)

	if !strings.EqualFold(cfg.LogLevel, "debug") {
		gin.SetMode(gin.ReleaseMode)
	}
	router := httpHandler.SetupRouter(sunUC, httpHandler.RouterConfig{
		AllowedOrigins: cfg.CORSAllowedOrigins,
		Logger:         logger.Named("http"),
	})

	addr := fmt.Sprintf(":%s", cfg.Port)
	logger.Info("server listening",
		zap.String("addr", addr),
		zap.String("health", fmt.Sprintf("http://localhost:%s/health", cfg.Port)),
		zap.Bool("cors_all_origins", cfg.AllowAllOrigins()),
		zap.Strings("endpoints", []string{
			"GET /v1/sun/position",
			"GET /v1/sun/events",
			"GET /v1/sun/track",
			"GET /v1/sites",
			"GET /v1/terrain",
		}))

	if err := router.Run(addr); err != nil {
		logger.Error("failed to start server", zap.Error(err))
		return 1
	}
	return 0
}

// newLogger builds a development logger for "debug" and a production
// logger at the given level otherwise.
func newLogger(level string) (*zap.Logger, error) {
	if strings.EqualFold(level, "debug") {
		return zap.NewDevelopment()
	}
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, err
	}
	zc := zap.NewProductionConfig()
	zc.Level = zap.NewAtomicLevelAt(lvl)
	return zc.Build()
}

// printUsage prints usage information.
func printUsage() {
	fmt.Printf("Solar API Server v%s\n\n", version)
	fmt.Println("USAGE:")
	fmt.Println("  solar-api [flags]")
	fmt.Println()
	fmt.Println("FLAGS:")
	fmt.Println("  -help          Show this help message")
	fmt.Println("  -version       Show version information")
	fmt.Println()
	fmt.Println("ENVIRONMENT VARIABLES:")
	fmt.Println("  CONFIG_FILE             Optional YAML file with the settings below")
	fmt.Println("  PORT                    Server port (default: 8080)")
	fmt.Println("  DATA_DIR                Directory containing sites.csv (default: ./data)")
	fmt.Println("  CORS_ALLOWED_ORIGINS    Comma-separated list of allowed origins (default: all origins)")
	fmt.Println("  TERRAIN_PATH            Path to GEBCO NetCDF elevation grid (optional)")
	fmt.Println("  GEOID_EGM2008_PATH      Path to EGM2008 geoid NetCDF file (optional, for alt_ref=ellipsoid)")
	fmt.Println("  SITE_OVERRIDES_PATH     Path to JSON site override table (optional)")
	fmt.Println("  DEFAULT_SITE            Site used when a request has neither site nor lat/lon")
	fmt.Println("  LOG_LEVEL               debug, info, warn or error (default: info)")
	fmt.Println("  MAX_TRACK_POINTS        Maximum points per track response (default: 2000)")
	fmt.Println()
	fmt.Println("EXAMPLES:")
	fmt.Println("  # Start server with default settings")
	fmt.Println("  solar-api")
	fmt.Println()
	fmt.Println("  # Start server on custom port with terrain altitudes")
	fmt.Println("  PORT=3000 TERRAIN_PATH=/data/gebco.nc solar-api")
	fmt.Println()
	fmt.Println("API ENDPOINTS:")
	fmt.Println("  GET /health                    Health check")
	fmt.Println("  GET /v1/sun/position           Sun azimuth, elevation and lighting")
	fmt.Println("  GET /v1/sun/events             Sunrise, sunset, twilight and solar noon")
	fmt.Println("  GET /v1/sun/track              Sun positions over a time range")
	fmt.Println("  GET /v1/sites                  List named sites")
	fmt.Println("  GET /v1/terrain                Terrain elevation (if configured)")
	fmt.Println()
}

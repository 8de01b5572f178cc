// Package config loads server configuration from an optional YAML file and
// the environment. Environment variables win over file values.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"cloudeng.io/errors"
	"gopkg.in/yaml.v3"
)

// Config holds the server configuration.
type Config struct {
	Port               string   `yaml:"port"`
	DataDir            string   `yaml:"data_dir"`
	TerrainPath        string   `yaml:"terrain_path"`
	GeoidPath          string   `yaml:"geoid_egm2008_path"`
	SiteOverridesPath  string   `yaml:"site_overrides_path"`
	CORSAllowedOrigins []string `yaml:"cors_allowed_origins"`
	LogLevel           string   `yaml:"log_level"`
	MaxTrackPoints     int      `yaml:"max_track_points"`
	// DefaultSite is used by the sun endpoints when neither site nor
	// coordinates are given.
	DefaultSite string `yaml:"default_site"`
}

// Defaults returns the built-in configuration.
func Defaults() Config {
	return Config{
		Port:           "8080",
		DataDir:        "./data",
		LogLevel:       "info",
		MaxTrackPoints: 2000,
	}
}

// LookupFunc matches os.LookupEnv.
type LookupFunc func(key string) (string, bool)

// Load builds the configuration from defaults, the YAML file named by
// CONFIG_FILE (if set) and the environment.
func Load() (Config, error) {
	return LoadWith(os.LookupEnv)
}

// LoadWith is Load with an injectable environment.
func LoadWith(lookup LookupFunc) (Config, error) {
	cfg := Defaults()
	if path, ok := lookup("CONFIG_FILE"); ok && path != "" {
		if err := cfg.mergeFile(path); err != nil {
			return Config{}, err
		}
	}
	if err := cfg.mergeEnv(lookup); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) mergeFile(path string) error {
	//nolint:gosec // G304: Path comes from the operator's environment.
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	return nil
}

func (c *Config) mergeEnv(lookup LookupFunc) error {
	getEnv := func(key string, dst *string) {
		if v, ok := lookup(key); ok && v != "" {
			*dst = v
		}
	}
	getEnv("PORT", &c.Port)
	getEnv("DATA_DIR", &c.DataDir)
	getEnv("TERRAIN_PATH", &c.TerrainPath)
	getEnv("GEOID_EGM2008_PATH", &c.GeoidPath)
	getEnv("SITE_OVERRIDES_PATH", &c.SiteOverridesPath)
	getEnv("LOG_LEVEL", &c.LogLevel)
	getEnv("DEFAULT_SITE", &c.DefaultSite)

	if v, ok := lookup("CORS_ALLOWED_ORIGINS"); ok && v != "" {
		c.CORSAllowedOrigins = splitOrigins(v)
	}
	if v, ok := lookup("MAX_TRACK_POINTS"); ok && v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid MAX_TRACK_POINTS %q: %w", v, err)
		}
		c.MaxTrackPoints = n
	}
	return nil
}

func splitOrigins(v string) []string {
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// Validate reports every invalid setting.
func (c Config) Validate() error {
	var errs errors.M
	if port, err := strconv.Atoi(c.Port); err != nil || port <= 0 || port > 65535 {
		errs.Append(fmt.Errorf("invalid port %q", c.Port))
	}
	switch strings.ToLower(c.LogLevel) {
	case "debug", "info", "warn", "error":
	default:
		errs.Append(fmt.Errorf("invalid log level %q (expected debug, info, warn or error)", c.LogLevel))
	}
	if c.MaxTrackPoints <= 0 {
		errs.Append(fmt.Errorf("max track points must be positive, got %d", c.MaxTrackPoints))
	}
	if c.DataDir == "" {
		errs.Append(errors.New("data directory must not be empty"))
	}
	return errs.Err()
}

// AllowAllOrigins reports whether CORS should accept any origin.
func (c Config) AllowAllOrigins() bool {
	return len(c.CORSAllowedOrigins) == 0
}

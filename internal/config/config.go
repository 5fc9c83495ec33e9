package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	defaultTelemetryURL     = "https://api.thingspeak.com/channels/521315/feeds.json"
	defaultTelemetryResults = 300 // roughly 25 hours of channel entries
	defaultTelemetryTimeout = 10 * time.Second
	defaultForecastHours    = 24
	maxTelemetryResults     = 8000 // ThingSpeak per-request cap
)

// Config holds all service settings, populated from environment variables.
type Config struct {
	DatabaseURL string
	Location    string
	LocationTZ  *time.Location

	TelemetryURL     string
	TelemetryResults int
	TelemetryTimeout time.Duration

	ForecastHours int

	LogLevel    string
	LogFormat   string
	MetricsAddr string
	DryRun      bool
}

// Load reads configuration from environment variables (optionally a .env
// file), applying defaults where unset.
func Load() (*Config, error) {
	_ = godotenv.Load(".env")

	cfg := &Config{
		DatabaseURL:  strings.TrimSpace(os.Getenv("DATABASE_URL")),
		Location:     envOrDefault("LOCATION", "EGLC"),
		TelemetryURL: envOrDefault("TELEMETRY_URL", defaultTelemetryURL),
		LogLevel:     envOrDefault("LOG_LEVEL", "info"),
		LogFormat:    envOrDefault("LOG_FORMAT", "json"),
		MetricsAddr:  strings.TrimSpace(os.Getenv("METRICS_ADDR")),
	}

	tzName := envOrDefault("LOCATION_TZ", "Europe/London")
	loc, err := time.LoadLocation(tzName)
	if err != nil {
		return nil, fmt.Errorf("invalid LOCATION_TZ %q: %w", tzName, err)
	}
	cfg.LocationTZ = loc

	cfg.TelemetryResults, err = parseBoundedInt("TELEMETRY_RESULTS", defaultTelemetryResults, 1, maxTelemetryResults)
	if err != nil {
		return nil, err
	}

	cfg.TelemetryTimeout, err = parsePositiveDuration("TELEMETRY_TIMEOUT", defaultTelemetryTimeout)
	if err != nil {
		return nil, err
	}

	cfg.ForecastHours, err = parseBoundedInt("FORECAST_HOURS", defaultForecastHours, 1, 240)
	if err != nil {
		return nil, err
	}

	dryRun := strings.TrimSpace(os.Getenv("DRY_RUN"))
	cfg.DryRun = dryRun == "1" || strings.EqualFold(dryRun, "true")

	if cfg.DatabaseURL == "" && !cfg.DryRun {
		return nil, errors.New("DATABASE_URL is required")
	}

	return cfg, nil
}

func envOrDefault(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}

func parseBoundedInt(key string, def, min, max int) (int, error) {
	s := strings.TrimSpace(os.Getenv(key))
	if s == "" {
		return def, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < min || n > max {
		return 0, fmt.Errorf("%s must be an integer between %d and %d", key, min, max)
	}
	return n, nil
}

func parsePositiveDuration(key string, def time.Duration) (time.Duration, error) {
	s := strings.TrimSpace(os.Getenv(key))
	if s == "" {
		return def, nil
	}
	d, err := time.ParseDuration(s)
	if err != nil || d <= 0 {
		return 0, fmt.Errorf("%s must be a positive duration", key)
	}
	return d, nil
}

package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Default feed endpoints, tried in order. The hourly feed is small and fresh;
// the daily feed is the fallback when the hourly endpoint is unavailable.
const (
	defaultHourlyFeed = "https://earthquake.usgs.gov/earthquakes/feed/v1.0/summary/all_hour.geojson"
	defaultDailyFeed  = "https://earthquake.usgs.gov/earthquakes/feed/v1.0/summary/all_day.geojson"
)

// Refresh interval bounds. Pulling more often than every 10 minutes hammers
// the upstream feeds for no benefit; less than once a day makes the snapshot
// useless.
const (
	minRefreshInterval = 10 * time.Minute
	maxRefreshInterval = 24 * time.Hour
)

// Config holds all service settings, populated from environment variables.
type Config struct {
	ObserverLat float64
	ObserverLon float64
	RadiusKm    float64

	FeedURLs    []string
	FeedTimeout time.Duration
	FeedToken   string // optional bearer credential; empty means anonymous

	RefreshInterval time.Duration

	HTTPAddr        string
	LogLevel        string
	LogFormat       string
	ShutdownTimeout time.Duration

	// Optional Kafka snapshot publishing. Disabled when no brokers are set.
	KafkaBrokers   []string
	KafkaSinkTopic string
}

// KafkaEnabled reports whether snapshot publishing is configured.
func (c *Config) KafkaEnabled() bool {
	return len(c.KafkaBrokers) > 0
}

// Load reads configuration from environment variables, applying defaults
// where unset. Any malformed or out-of-range value is rejected here, before
// the scheduler starts.
func Load() (*Config, error) {
	lat, err := parseFloatEnv("OBSERVER_LAT", true, 0)
	if err != nil {
		return nil, err
	}
	if lat < -90 || lat > 90 {
		return nil, errors.New("OBSERVER_LAT must be within [-90, 90]")
	}

	lon, err := parseFloatEnv("OBSERVER_LON", true, 0)
	if err != nil {
		return nil, err
	}
	if lon < -180 || lon > 180 {
		return nil, errors.New("OBSERVER_LON must be within [-180, 180]")
	}

	radius, err := parseFloatEnv("RADIUS_KM", false, 100)
	if err != nil {
		return nil, err
	}
	if radius <= 0 {
		return nil, errors.New("RADIUS_KM must be positive")
	}

	interval, err := parseDurationEnv("REFRESH_INTERVAL", time.Hour)
	if err != nil {
		return nil, err
	}
	if interval < minRefreshInterval || interval > maxRefreshInterval {
		return nil, fmt.Errorf("REFRESH_INTERVAL must be between %s and %s", minRefreshInterval, maxRefreshInterval)
	}

	feedTimeout, err := parseDurationEnv("FEED_TIMEOUT", 10*time.Second)
	if err != nil {
		return nil, err
	}

	shutdownTimeout, err := parseDurationEnv("SHUTDOWN_TIMEOUT", 10*time.Second)
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		ObserverLat: lat,
		ObserverLon: lon,
		RadiusKm:    radius,

		FeedURLs:    splitList(envOrDefault("FEED_URLS", defaultHourlyFeed+","+defaultDailyFeed)),
		FeedTimeout: feedTimeout,
		FeedToken:   os.Getenv("FEED_TOKEN"),

		RefreshInterval: interval,

		HTTPAddr:        envOrDefault("HTTP_ADDR", ":8080"),
		LogLevel:        envOrDefault("LOG_LEVEL", "info"),
		LogFormat:       envOrDefault("LOG_FORMAT", "json"),
		ShutdownTimeout: shutdownTimeout,

		KafkaBrokers:   splitList(os.Getenv("KAFKA_BROKERS")),
		KafkaSinkTopic: envOrDefault("KAFKA_SINK_TOPIC", "nearby-quake-reports"),
	}

	if len(cfg.FeedURLs) == 0 {
		return nil, errors.New("FEED_URLS is required")
	}
	if cfg.KafkaEnabled() && cfg.KafkaSinkTopic == "" {
		return nil, errors.New("KAFKA_SINK_TOPIC is required when KAFKA_BROKERS is set")
	}

	return cfg, nil
}

func envOrDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

// splitList splits a comma-separated list, trimming whitespace and dropping
// empty entries.
func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part != "" {
			out = append(out, part)
		}
	}
	return out
}

func parseFloatEnv(key string, required bool, def float64) (float64, error) {
	s := os.Getenv(key)
	if s == "" {
		if required {
			return 0, fmt.Errorf("%s is required", key)
		}
		return def, nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %q", key, s)
	}
	return v, nil
}

func parseDurationEnv(key string, def time.Duration) (time.Duration, error) {
	s := os.Getenv(key)
	if s == "" {
		return def, nil
	}
	d, err := time.ParseDuration(s)
	if err != nil || d <= 0 {
		return 0, fmt.Errorf("invalid %s: %q", key, s)
	}
	return d, nil
}

package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setObserver(t *testing.T) {
	t.Helper()
	t.Setenv("OBSERVER_LAT", "35.6762")
	t.Setenv("OBSERVER_LON", "139.6503")
}

func TestLoad_Defaults(t *testing.T) {
	setObserver(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 35.6762, cfg.ObserverLat)
	assert.Equal(t, 139.6503, cfg.ObserverLon)
	assert.Equal(t, 100.0, cfg.RadiusKm)
	assert.Equal(t, time.Hour, cfg.RefreshInterval)
	assert.Len(t, cfg.FeedURLs, 2)
	assert.Contains(t, cfg.FeedURLs[0], "all_hour.geojson")
	assert.Contains(t, cfg.FeedURLs[1], "all_day.geojson")
	assert.Equal(t, 10*time.Second, cfg.FeedTimeout)
	assert.Empty(t, cfg.FeedToken)
	assert.Equal(t, ":8080", cfg.HTTPAddr)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "json", cfg.LogFormat)
	assert.Equal(t, 10*time.Second, cfg.ShutdownTimeout)
	assert.False(t, cfg.KafkaEnabled())
	assert.Equal(t, "nearby-quake-reports", cfg.KafkaSinkTopic)
}

func TestLoad_CustomEnv(t *testing.T) {
	setObserver(t)
	t.Setenv("RADIUS_KM", "250")
	t.Setenv("REFRESH_INTERVAL", "15m")
	t.Setenv("FEED_URLS", "https://feeds.example.com/primary.geojson, https://feeds.example.com/backup.geojson")
	t.Setenv("FEED_TIMEOUT", "5s")
	t.Setenv("FEED_TOKEN", "secret-token")
	t.Setenv("HTTP_ADDR", ":9090")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("LOG_FORMAT", "text")
	t.Setenv("SHUTDOWN_TIMEOUT", "30s")
	t.Setenv("KAFKA_BROKERS", "broker1:9092,broker2:9092")
	t.Setenv("KAFKA_SINK_TOPIC", "custom-sink")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 250.0, cfg.RadiusKm)
	assert.Equal(t, 15*time.Minute, cfg.RefreshInterval)
	assert.Equal(t, []string{
		"https://feeds.example.com/primary.geojson",
		"https://feeds.example.com/backup.geojson",
	}, cfg.FeedURLs)
	assert.Equal(t, 5*time.Second, cfg.FeedTimeout)
	assert.Equal(t, "secret-token", cfg.FeedToken)
	assert.Equal(t, ":9090", cfg.HTTPAddr)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "text", cfg.LogFormat)
	assert.Equal(t, 30*time.Second, cfg.ShutdownTimeout)
	assert.True(t, cfg.KafkaEnabled())
	assert.Equal(t, []string{"broker1:9092", "broker2:9092"}, cfg.KafkaBrokers)
	assert.Equal(t, "custom-sink", cfg.KafkaSinkTopic)
}

func TestLoad_MissingObserver(t *testing.T) {
	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "OBSERVER_LAT")
}

func TestLoad_MalformedLatitude(t *testing.T) {
	t.Setenv("OBSERVER_LAT", "not-a-number")
	t.Setenv("OBSERVER_LON", "139.65")
	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "OBSERVER_LAT")
}

func TestLoad_LatitudeOutOfRange(t *testing.T) {
	t.Setenv("OBSERVER_LAT", "91")
	t.Setenv("OBSERVER_LON", "139.65")
	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "OBSERVER_LAT")
}

func TestLoad_LongitudeOutOfRange(t *testing.T) {
	t.Setenv("OBSERVER_LAT", "35.67")
	t.Setenv("OBSERVER_LON", "-181")
	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "OBSERVER_LON")
}

func TestLoad_NonPositiveRadius(t *testing.T) {
	setObserver(t)
	t.Setenv("RADIUS_KM", "0")
	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "RADIUS_KM")
}

func TestLoad_RefreshIntervalBounds(t *testing.T) {
	t.Run("below minimum", func(t *testing.T) {
		setObserver(t)
		t.Setenv("REFRESH_INTERVAL", "5m")
		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "REFRESH_INTERVAL")
	})

	t.Run("above maximum", func(t *testing.T) {
		setObserver(t)
		t.Setenv("REFRESH_INTERVAL", "25h")
		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "REFRESH_INTERVAL")
	})

	t.Run("at bounds", func(t *testing.T) {
		setObserver(t)
		t.Setenv("REFRESH_INTERVAL", "10m")
		cfg, err := Load()
		require.NoError(t, err)
		assert.Equal(t, 10*time.Minute, cfg.RefreshInterval)

		t.Setenv("REFRESH_INTERVAL", "24h")
		cfg, err = Load()
		require.NoError(t, err)
		assert.Equal(t, 24*time.Hour, cfg.RefreshInterval)
	})
}

func TestLoad_InvalidRefreshInterval(t *testing.T) {
	setObserver(t)
	t.Setenv("REFRESH_INTERVAL", "not-a-duration")
	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "REFRESH_INTERVAL")
}

func TestLoad_InvalidFeedTimeout(t *testing.T) {
	setObserver(t)
	t.Setenv("FEED_TIMEOUT", "-1s")
	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "FEED_TIMEOUT")
}

func TestLoad_EmptyFeedURLs(t *testing.T) {
	setObserver(t)
	t.Setenv("FEED_URLS", " , ")
	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "FEED_URLS")
}

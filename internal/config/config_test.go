package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "data/zones.json", cfg.ZonesPath)
	assert.Equal(t, "data/climate_profiles.json", cfg.OutputPath)
	assert.Equal(t, 2021, cfg.StartYear)
	assert.Equal(t, 2024, cfg.EndYear)
	assert.Equal(t, 2*time.Second, cfg.ZoneDelay)
	assert.Equal(t, time.Duration(0), cfg.RunInterval)
	assert.Equal(t, ":8080", cfg.HTTPAddr)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "json", cfg.LogFormat)
	assert.Equal(t, 10*time.Second, cfg.ShutdownTimeout)
	assert.Equal(t, "https://power.larc.nasa.gov/api/temporal/monthly/point", cfg.PowerBaseURL)
	assert.Equal(t, 60*time.Second, cfg.PowerTimeout)
	assert.Equal(t, 100, cfg.PowerCacheSize)
	assert.False(t, cfg.KafkaEnabled)
	assert.Equal(t, []string{"localhost:9092"}, cfg.KafkaBrokers)
	assert.Equal(t, "climate-profiles", cfg.KafkaSinkTopic)
}

func TestLoad_CustomEnv(t *testing.T) {
	t.Setenv("ZONES_PATH", "/etc/profiler/zones.json")
	t.Setenv("OUTPUT_PATH", "/var/lib/profiler/out.json")
	t.Setenv("START_YEAR", "1991")
	t.Setenv("END_YEAR", "2020")
	t.Setenv("ZONE_DELAY", "500ms")
	t.Setenv("RUN_INTERVAL", "24h")
	t.Setenv("HTTP_ADDR", ":9090")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("LOG_FORMAT", "text")
	t.Setenv("SHUTDOWN_TIMEOUT", "30s")
	t.Setenv("POWER_BASE_URL", "http://localhost:9999/point")
	t.Setenv("POWER_TIMEOUT", "5s")
	t.Setenv("POWER_CACHE_SIZE", "10")
	t.Setenv("KAFKA_ENABLED", "true")
	t.Setenv("KAFKA_BROKERS", "broker1:9092, broker2:9092")
	t.Setenv("KAFKA_SINK_TOPIC", "profiles")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "/etc/profiler/zones.json", cfg.ZonesPath)
	assert.Equal(t, "/var/lib/profiler/out.json", cfg.OutputPath)
	assert.Equal(t, 1991, cfg.StartYear)
	assert.Equal(t, 2020, cfg.EndYear)
	assert.Equal(t, 500*time.Millisecond, cfg.ZoneDelay)
	assert.Equal(t, 24*time.Hour, cfg.RunInterval)
	assert.Equal(t, ":9090", cfg.HTTPAddr)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "text", cfg.LogFormat)
	assert.Equal(t, 30*time.Second, cfg.ShutdownTimeout)
	assert.Equal(t, "http://localhost:9999/point", cfg.PowerBaseURL)
	assert.Equal(t, 5*time.Second, cfg.PowerTimeout)
	assert.Equal(t, 10, cfg.PowerCacheSize)
	assert.True(t, cfg.KafkaEnabled)
	assert.Equal(t, []string{"broker1:9092", "broker2:9092"}, cfg.KafkaBrokers)
	assert.Equal(t, "profiles", cfg.KafkaSinkTopic)
}

func TestLoad_InvalidStartYear(t *testing.T) {
	t.Setenv("START_YEAR", "not-a-year")
	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "START_YEAR")
}

func TestLoad_StartYearTooEarly(t *testing.T) {
	t.Setenv("START_YEAR", "1950")
	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "START_YEAR")
}

func TestLoad_EndBeforeStart(t *testing.T) {
	t.Setenv("START_YEAR", "2020")
	t.Setenv("END_YEAR", "2019")
	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "END_YEAR")
}

func TestLoad_InvalidZoneDelay(t *testing.T) {
	t.Setenv("ZONE_DELAY", "fast")
	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ZONE_DELAY")
}

func TestLoad_NegativeZoneDelay(t *testing.T) {
	t.Setenv("ZONE_DELAY", "-1s")
	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ZONE_DELAY")
}

func TestLoad_InvalidShutdownTimeout(t *testing.T) {
	t.Setenv("SHUTDOWN_TIMEOUT", "0s")
	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "SHUTDOWN_TIMEOUT")
}

func TestLoad_KafkaEnabledWithoutBrokers(t *testing.T) {
	t.Setenv("KAFKA_ENABLED", "true")
	t.Setenv("KAFKA_BROKERS", " ")
	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "KAFKA_BROKERS")
}

func TestLoad_ZeroCacheDisablesCaching(t *testing.T) {
	t.Setenv("POWER_CACHE_SIZE", "0")
	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 0, cfg.PowerCacheSize)
}

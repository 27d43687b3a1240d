package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds all service settings, populated from environment variables.
type Config struct {
	ZonesPath  string
	OutputPath string

	StartYear int
	EndYear   int

	// ZoneDelay throttles sequential upstream calls between zones.
	ZoneDelay time.Duration
	// RunInterval re-runs the batch periodically; 0 means run once and exit.
	RunInterval time.Duration

	HTTPAddr        string
	LogLevel        string
	LogFormat       string
	ShutdownTimeout time.Duration

	// NASA POWER upstream configuration.
	PowerBaseURL   string
	PowerTimeout   time.Duration
	PowerCacheSize int

	// Optional Kafka publishing of per-zone documents.
	KafkaEnabled   bool
	KafkaBrokers   []string
	KafkaSinkTopic string
}

// POWER makes monthly data available from 1981 onward.
const minYear = 1981

// Load reads configuration from environment variables, applying defaults
// where unset.
func Load() (*Config, error) {
	startYear, err := parseIntVar("START_YEAR", 2021)
	if err != nil {
		return nil, err
	}
	endYear, err := parseIntVar("END_YEAR", 2024)
	if err != nil {
		return nil, err
	}
	zoneDelay, err := parseDurationVar("ZONE_DELAY", 2*time.Second)
	if err != nil {
		return nil, err
	}
	runInterval, err := parseDurationVar("RUN_INTERVAL", 0)
	if err != nil {
		return nil, err
	}
	shutdownTimeout, err := parseDurationVar("SHUTDOWN_TIMEOUT", 10*time.Second)
	if err != nil {
		return nil, err
	}
	powerTimeout, err := parseDurationVar("POWER_TIMEOUT", 60*time.Second)
	if err != nil {
		return nil, err
	}
	powerCacheSize, err := parseIntVar("POWER_CACHE_SIZE", 100)
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		ZonesPath:       envOrDefault("ZONES_PATH", "data/zones.json"),
		OutputPath:      envOrDefault("OUTPUT_PATH", "data/climate_profiles.json"),
		StartYear:       startYear,
		EndYear:         endYear,
		ZoneDelay:       zoneDelay,
		RunInterval:     runInterval,
		HTTPAddr:        envOrDefault("HTTP_ADDR", ":8080"),
		LogLevel:        envOrDefault("LOG_LEVEL", "info"),
		LogFormat:       envOrDefault("LOG_FORMAT", "json"),
		ShutdownTimeout: shutdownTimeout,
		PowerBaseURL:    envOrDefault("POWER_BASE_URL", "https://power.larc.nasa.gov/api/temporal/monthly/point"),
		PowerTimeout:    powerTimeout,
		PowerCacheSize:  powerCacheSize,
		KafkaEnabled:    os.Getenv("KAFKA_ENABLED") == "true",
		KafkaBrokers:    splitBrokers(envOrDefault("KAFKA_BROKERS", "localhost:9092")),
		KafkaSinkTopic:  envOrDefault("KAFKA_SINK_TOPIC", "climate-profiles"),
	}

	if cfg.ZonesPath == "" {
		return nil, errors.New("ZONES_PATH is required")
	}
	if cfg.OutputPath == "" {
		return nil, errors.New("OUTPUT_PATH is required")
	}
	if cfg.StartYear < minYear {
		return nil, fmt.Errorf("START_YEAR must be %d or later", minYear)
	}
	if cfg.EndYear < cfg.StartYear {
		return nil, errors.New("END_YEAR must not precede START_YEAR")
	}
	if cfg.ZoneDelay < 0 {
		return nil, errors.New("invalid ZONE_DELAY")
	}
	if cfg.RunInterval < 0 {
		return nil, errors.New("invalid RUN_INTERVAL")
	}
	if cfg.ShutdownTimeout <= 0 {
		return nil, errors.New("invalid SHUTDOWN_TIMEOUT")
	}
	if cfg.PowerBaseURL == "" {
		return nil, errors.New("POWER_BASE_URL is required")
	}
	if cfg.PowerTimeout <= 0 {
		return nil, errors.New("invalid POWER_TIMEOUT")
	}
	if cfg.PowerCacheSize < 0 {
		return nil, errors.New("invalid POWER_CACHE_SIZE")
	}
	if cfg.KafkaEnabled {
		if len(cfg.KafkaBrokers) == 0 {
			return nil, errors.New("KAFKA_ENABLED is true but KAFKA_BROKERS is empty")
		}
		if cfg.KafkaSinkTopic == "" {
			return nil, errors.New("KAFKA_ENABLED is true but KAFKA_SINK_TOPIC is empty")
		}
	}

	return cfg, nil
}

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func parseIntVar(key string, fallback int) (int, error) {
	s := os.Getenv(key)
	if s == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %q", key, s)
	}
	return n, nil
}

func parseDurationVar(key string, fallback time.Duration) (time.Duration, error) {
	s := os.Getenv(key)
	if s == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %q", key, s)
	}
	return d, nil
}

func splitBrokers(s string) []string {
	var brokers []string
	for _, b := range strings.Split(s, ",") {
		if b = strings.TrimSpace(b); b != "" {
			brokers = append(brokers, b)
		}
	}
	return brokers
}

package cmd

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"

	"agrilogistics/internal/core/domain/model/warehouse"
	"agrilogistics/internal/core/domain/services"
	"agrilogistics/internal/pkg/errs"

	"github.com/joho/godotenv"
)

type Config struct {
	HTTPPort string

	// Postgres. An empty DBHost runs the service on the in-memory store.
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSslMode  string

	// Kafka. No brokers disables event publishing.
	KafkaBrokers             []string
	KafkaOrderAllocatedTopic string

	// Geocoding
	NominatimURL       string
	NominatimUserAgent string
	RedisURL           string
	GeocodeCacheTTL    time.Duration

	SnapshotSchedule string
	SeedWarehouses   bool

	Allocation services.AllocationConfig
}

var loadDotEnv sync.Once

// LoadConfig reads the environment, after loading .env once if present.
func LoadConfig() (Config, error) {
	loadDotEnv.Do(func() {
		_ = godotenv.Load(".env")
	})

	cacheTTL, ttlErr := durationEnv("GEOCODE_CACHE_TTL", 24*time.Hour)
	seed, seedErr := boolEnv("SEED_WAREHOUSES", false)
	allocation, allocationErr := allocationConfigFromEnv()
	if err := errors.Join(ttlErr, seedErr, allocationErr); err != nil {
		return Config{}, err
	}

	return Config{
		HTTPPort:                 stringEnv("HTTP_PORT", "8080"),
		DBHost:                   os.Getenv("DB_HOST"),
		DBPort:                   stringEnv("DB_PORT", "5432"),
		DBUser:                   os.Getenv("DB_USER"),
		DBPassword:               os.Getenv("DB_PASSWORD"),
		DBName:                   os.Getenv("DB_NAME"),
		DBSslMode:                stringEnv("DB_SSLMODE", "disable"),
		KafkaBrokers:             listEnv("KAFKA_BROKERS"),
		KafkaOrderAllocatedTopic: stringEnv("KAFKA_ORDER_ALLOCATED_TOPIC", "orders.allocated"),
		NominatimURL:             stringEnv("NOMINATIM_URL", "https://nominatim.openstreetmap.org"),
		NominatimUserAgent:       stringEnv("NOMINATIM_USER_AGENT", "agrilogistics-allocation/1.0"),
		RedisURL:                 os.Getenv("REDIS_URL"),
		GeocodeCacheTTL:          cacheTTL,
		SnapshotSchedule:         stringEnv("SNAPSHOT_SCHEDULE", "*/30 * * * * *"),
		SeedWarehouses:           seed,
		Allocation:               allocation,
	}, nil
}

// DSN is the gorm postgres connection string.
func (c Config) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSslMode)
}

// allocationConfigFromEnv starts from the default table and applies
// BASE_SPEED_KMPH, HANDLING_MINUTES, DEFAULT_TRAFFIC_MULTIPLIER and
// TRAFFIC_MULTIPLIERS ("North=1.2,East=1.4").
func allocationConfigFromEnv() (services.AllocationConfig, error) {
	cfg := services.DefaultAllocationConfig()

	speed, speedErr := floatEnv("BASE_SPEED_KMPH", cfg.BaseSpeedKmph)
	handling, handlingErr := intEnv("HANDLING_MINUTES", cfg.HandlingMinutes)
	fallback, fallbackErr := floatEnv("DEFAULT_TRAFFIC_MULTIPLIER", cfg.DefaultMultiplier)
	multipliers, multipliersErr := parseMultipliers(os.Getenv("TRAFFIC_MULTIPLIERS"))
	if err := errors.Join(speedErr, handlingErr, fallbackErr, multipliersErr); err != nil {
		return services.AllocationConfig{}, err
	}

	cfg.BaseSpeedKmph = speed
	cfg.HandlingMinutes = handling
	cfg.DefaultMultiplier = fallback
	for region, m := range multipliers {
		cfg.TrafficMultipliers[region] = m
	}

	if err := cfg.Validate(); err != nil {
		return services.AllocationConfig{}, err
	}
	return cfg, nil
}

func parseMultipliers(raw string) (map[warehouse.Region]float64, error) {
	out := make(map[warehouse.Region]float64)
	for _, pair := range strings.Split(raw, ",") {
		pair = strings.TrimSpace(pair)
		if pair == "" {
			continue
		}
		name, value, ok := strings.Cut(pair, "=")
		if !ok {
			return nil, errs.NewValueIsInvalidErrorWithCause("TRAFFIC_MULTIPLIERS", fmt.Errorf("%q is not region=value", pair))
		}
		region, err := warehouse.ParseRegion(name)
		if err != nil {
			return nil, err
		}
		m, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
		if err != nil {
			return nil, errs.NewValueIsInvalidErrorWithCause("TRAFFIC_MULTIPLIERS", err)
		}
		out[region] = m
	}
	return out, nil
}

func stringEnv(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func listEnv(key string) []string {
	var out []string
	for _, item := range strings.Split(os.Getenv(key), ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}

func floatEnv(key string, fallback float64) (float64, error) {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return fallback, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, errs.NewValueIsInvalidErrorWithCause(key, err)
	}
	return v, nil
}

func intEnv(key string, fallback int) (int, error) {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return fallback, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, errs.NewValueIsInvalidErrorWithCause(key, err)
	}
	return v, nil
}

func boolEnv(key string, fallback bool) (bool, error) {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return fallback, nil
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return false, errs.NewValueIsInvalidErrorWithCause(key, err)
	}
	return v, nil
}

func durationEnv(key string, fallback time.Duration) (time.Duration, error) {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return fallback, nil
	}
	v, err := time.ParseDuration(raw)
	if err != nil {
		return 0, errs.NewValueIsInvalidErrorWithCause(key, err)
	}
	return v, nil
}

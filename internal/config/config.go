package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/fx"
)

// Config holds application configuration.
type Config struct {
	AppName     string
	AppVersion  string
	Environment string
	HTTPAddr    string

	AuthJWTSecret string

	OTLPEndpoint string

	DBType            string
	DBHost            string
	DBPort            string
	DBName            string
	DBUser            string
	DBPassword        string
	DBSSLMode         string
	DBMaxIdleConn     int
	DBMaxOpenConn     int
	DBConnMaxLifetime int
	DBAdminUser       string
	DBAdminPassword   string

	RedisAddr     string
	RedisPassword string
	RedisDB       int

	Metering  MeteringConfig
	RateLimit RateLimitConfig

	BootstrapSeed bool
	DefaultOrgID  int64
}

// MeteringConfig controls the scheduled usage metering pass.
type MeteringConfig struct {
	Enabled       bool
	Metric        string
	QuantityScale int64
	Interval      time.Duration
	RunTimeout    time.Duration
	TenantBatch   int
	LockTTL       time.Duration
}

// RateLimitConfig controls the redis-backed report rate limiter.
type RateLimitConfig struct {
	Enabled bool
	Rate    float64
	Burst   int
}

// Module provides the loaded configuration.
var Module = fx.Provide(Load)

// Load loads configuration from environment variables and .env file.
func Load() Config {
	_ = godotenv.Load()

	return Config{
		AppName:       getenv("APP_SERVICE", "reachloop"),
		AppVersion:    getenv("APP_VERSION", "0.1.0"),
		Environment:   getenv("ENVIRONMENT", "development"),
		HTTPAddr:      getenv("HTTP_ADDR", ":8080"),
		AuthJWTSecret: strings.TrimSpace(getenv("AUTH_JWT_SECRET", "")),
		OTLPEndpoint:  getenv("OTLP_ENDPOINT", "localhost:4317"),

		DBType:            getenv("DATABASE_TYPE", "postgres"),
		DBHost:            getenv("DATABASE_HOST", "localhost"),
		DBPort:            getenv("DATABASE_PORT", "5432"),
		DBName:            getenv("DATABASE_NAME", "reachloop"),
		DBUser:            getenv("DATABASE_USER", "postgres"),
		DBPassword:        getenv("DATABASE_PASSWORD", "postgres"),
		DBSSLMode:         getenv("DATABASE_SSLMODE", "disable"),
		DBMaxIdleConn:     getenvInt("DATABASE_MAX_IDLE_CONN", 5),
		DBMaxOpenConn:     getenvInt("DATABASE_MAX_OPEN_CONN", 25),
		DBConnMaxLifetime: getenvInt("DATABASE_CONN_MAX_LIFETIME", 300),
		DBAdminUser:       strings.TrimSpace(getenv("DATABASE_ADMIN_USER", "")),
		DBAdminPassword:   getenv("DATABASE_ADMIN_PASSWORD", ""),

		RedisAddr:     strings.TrimSpace(getenv("REDIS_ADDR", "")),
		RedisPassword: getenv("REDIS_PASSWORD", ""),
		RedisDB:       getenvInt("REDIS_DB", 0),

		Metering: MeteringConfig{
			Enabled:       getenvBool("METERING_ENABLED", true),
			Metric:        getenv("METERING_METRIC", "ai_tokens"),
			QuantityScale: getenvInt64("METERING_QUANTITY_SCALE", 1000),
			Interval:      getenvDuration("METERING_INTERVAL", time.Hour),
			RunTimeout:    getenvDuration("METERING_RUN_TIMEOUT", 5*time.Minute),
			TenantBatch:   getenvInt("METERING_TENANT_BATCH", 100),
			LockTTL:       getenvDuration("METERING_LOCK_TTL", 10*time.Minute),
		},
		RateLimit: RateLimitConfig{
			Enabled: getenvBool("RATE_LIMIT_ENABLED", false),
			Rate:    getenvFloat("RATE_LIMIT_REPORT_RATE", 5),
			Burst:   getenvInt("RATE_LIMIT_REPORT_BURST", 10),
		},

		BootstrapSeed: getenvBool("BOOTSTRAP_SEED", false),
		DefaultOrgID:  getenvInt64("DEFAULT_ORG", 0),
	}
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvBool(key string, def bool) bool {
	value := strings.ToLower(strings.TrimSpace(os.Getenv(key)))
	if value == "" {
		return def
	}
	switch value {
	case "1", "true", "yes", "y", "on":
		return true
	case "0", "false", "no", "n", "off":
		return false
	default:
		return def
	}
}

func getenvInt(key string, def int) int {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return def
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return def
	}
	return parsed
}

func getenvInt64(key string, def int64) int64 {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return def
	}
	parsed, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return def
	}
	return parsed
}

func getenvFloat(key string, def float64) float64 {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return def
	}
	parsed, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return def
	}
	return parsed
}

func getenvDuration(key string, def time.Duration) time.Duration {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return def
	}
	parsed, err := time.ParseDuration(value)
	if err != nil {
		return def
	}
	return parsed
}

package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds application level configuration loaded from environment variables.
type Config struct {
	Server    ServerConfig
	Database  DatabaseConfig
	Redis     RedisConfig
	Auth      AuthConfig
	Logging   LoggingConfig
	RateLimit RateLimitConfig
	Tracing   TracingConfig
}

type ServerConfig struct {
	Port        string
	SwaggerHost string
}

type DatabaseConfig struct {
	Driver string
	DSN    string
	Reset  bool
}

type RedisConfig struct {
	Addr     string
	DB       int
	Password string
}

type AuthConfig struct {
	JWTSecret string
	// StrictCreate makes location and registration creation require a caller.
	StrictCreate bool
}

type LoggingConfig struct {
	Level  string
	Format string
}

type RateLimitConfig struct {
	RPS   float64
	Burst int
}

type TracingConfig struct {
	Enabled      bool
	Exporter     string
	OTLPEndpoint string
}

const (
	DriverMySQL    = "mysql"
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// Load builds Config from the environment, reading a .env file first when
// one is present.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Server: ServerConfig{
			Port:        getEnv("SERVER_PORT", "8080"),
			SwaggerHost: os.Getenv("SWAGGER_HOST"),
		},
		Database: DatabaseConfig{
			Driver: strings.ToLower(getEnv("DB_DRIVER", DriverMySQL)),
			DSN:    getEnv("DATABASE_DSN", "user:password@tcp(localhost:3306)/volunteerhub?charset=utf8mb4&parseTime=True&loc=UTC"),
			Reset:  getEnvBool("RESET_DB", false),
		},
		Redis: RedisConfig{
			Addr:     getEnv("REDIS_ADDR", "localhost:6379"),
			DB:       getEnvInt("REDIS_DB", 0),
			Password: os.Getenv("REDIS_PASSWORD"),
		},
		Auth: AuthConfig{
			JWTSecret:    getEnv("JWT_SECRET", "change-me"),
			StrictCreate: getEnvBool("AUTH_STRICT_CREATE", false),
		},
		Logging: LoggingConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Format: getEnv("LOG_FORMAT", "json"),
		},
		RateLimit: RateLimitConfig{
			RPS:   getEnvFloat("RATE_LIMIT_RPS", 20),
			Burst: getEnvInt("RATE_LIMIT_BURST", 40),
		},
		Tracing: TracingConfig{
			Enabled:      getEnvBool("TRACING_ENABLED", false),
			Exporter:     strings.ToLower(getEnv("TRACING_EXPORTER", "stdout")),
			OTLPEndpoint: getEnv("OTLP_ENDPOINT", "localhost:4317"),
		},
	}

	switch cfg.Database.Driver {
	case DriverMySQL, DriverPostgres, DriverSQLite:
	default:
		return nil, fmt.Errorf("DB_DRIVER must be one of mysql, postgres, sqlite: got %q", cfg.Database.Driver)
	}
	if cfg.Tracing.Exporter != "stdout" && cfg.Tracing.Exporter != "otlp" {
		return nil, fmt.Errorf("TRACING_EXPORTER must be stdout or otlp: got %q", cfg.Tracing.Exporter)
	}
	return cfg, nil
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			return parsed
		}
	}
	return def
}

func getEnvFloat(key string, def float64) float64 {
	if v := os.Getenv(key); v != "" {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil {
			return parsed
		}
	}
	return def
}

func getEnvBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		if parsed, err := strconv.ParseBool(v); err == nil {
			return parsed
		}
	}
	return def
}

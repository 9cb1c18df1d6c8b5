package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Driver names accepted in DB_DRIVER.
const (
	DriverMemory   = "memory"
	DriverMySQL    = "mysql"
	DriverPostgres = "postgres"
)

type Config struct {
	Port     string
	DBDriver string

	MySQLDSN    string
	PostgresDSN string

	// RedisAddr empty disables the read cache.
	RedisAddr     string
	RedisPassword string

	JWTSecret string
	TokenTTL  time.Duration

	AdminName     string
	AdminEmail    string
	AdminPassword string

	SeedSampleData bool
}

// Load reads the configuration from the environment, with a .env file as a
// convenience for local development.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Port:           getEnv("PORT", "8080"),
		DBDriver:       getEnv("DB_DRIVER", DriverMemory),
		MySQLDSN:       os.Getenv("MYSQL_DSN"),
		PostgresDSN:    os.Getenv("POSTGRES_DSN"),
		RedisAddr:      os.Getenv("REDIS_ADDR"),
		RedisPassword:  os.Getenv("REDIS_PASSWORD"),
		JWTSecret:      getEnv("JWT_SECRET", "dev-secret-change-me"),
		TokenTTL:       getEnvDuration("TOKEN_TTL", 24*time.Hour),
		AdminName:      getEnv("ADMIN_NAME", "Admin"),
		AdminEmail:     getEnv("ADMIN_EMAIL", "admin@example.com"),
		AdminPassword:  getEnv("ADMIN_PASSWORD", "admin123"),
		SeedSampleData: getEnvBool("SEED_SAMPLE_DATA", true),
	}

	switch cfg.DBDriver {
	case DriverMemory:
	case DriverMySQL:
		if cfg.MySQLDSN == "" {
			return nil, fmt.Errorf("DB_DRIVER=%s requires MYSQL_DSN", cfg.DBDriver)
		}
	case DriverPostgres:
		if cfg.PostgresDSN == "" {
			return nil, fmt.Errorf("DB_DRIVER=%s requires POSTGRES_DSN", cfg.DBDriver)
		}
	default:
		return nil, fmt.Errorf("unknown DB_DRIVER %q", cfg.DBDriver)
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return b
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return fallback
	}
	return d
}

package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Store drivers
const (
	StoreFile     = "file"
	StoreMemory   = "memory"
	StoreRedis    = "redis"
	StorePostgres = "postgres"
	StoreMySQL    = "mysql"
)

// Config holds all application configuration
type Config struct {
	// Server
	Port        string
	Environment string

	// Store
	StoreDriver string
	StorePath   string
	DatabaseURL string

	// Redis
	RedisAddress  string
	RedisPassword string
	RedisDB       int
	RedisPrefix   string

	// Archive for backups and generated documents
	ArchivePath    string
	BackupInterval time.Duration

	// Auth
	JWTSecret          string
	JWTExpirationHours int
	AdminPasswordHash  string
	AdminPassword      string

	// Background Workers
	WorkerCount int

	// CORS
	AllowedOrigins []string

	// Sentry
	SentryDSN string

	// Business defaults
	CompanyName          string
	DefaultVATPercentage float64
	PaymentTermDays      int
	PhoneRegion          string
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	cfg := &Config{
		Port:                 getEnv("PORT", "8080"),
		Environment:          getEnv("ENVIRONMENT", "development"),
		StoreDriver:          strings.ToLower(getEnv("STORE_DRIVER", StoreFile)),
		StorePath:            getEnv("STORE_PATH", "./data"),
		DatabaseURL:          getEnv("DATABASE_URL", ""),
		RedisAddress:         getEnv("REDIS_ADDRESS", "localhost:6379"),
		RedisPassword:        getEnv("REDIS_PASSWORD", ""),
		RedisDB:              getEnvAsInt("REDIS_DB", 0),
		RedisPrefix:          getEnv("REDIS_PREFIX", "lumina:"),
		ArchivePath:          getEnv("ARCHIVE_PATH", "./archive"),
		BackupInterval:       getEnvAsDuration("BACKUP_INTERVAL", 24*time.Hour),
		JWTSecret:            getEnv("JWT_SECRET", ""),
		JWTExpirationHours:   getEnvAsInt("JWT_EXPIRATION_HOURS", 12),
		AdminPasswordHash:    getEnv("ADMIN_PASSWORD_HASH", ""),
		AdminPassword:        getEnv("ADMIN_PASSWORD", ""),
		WorkerCount:          getEnvAsInt("WORKER_COUNT", 2),
		AllowedOrigins:       getEnvAsSlice("ALLOWED_ORIGINS", []string{"*"}),
		SentryDSN:            getEnv("SENTRY_DSN", ""),
		CompanyName:          getEnv("COMPANY_NAME", "Lumina Business Suite"),
		DefaultVATPercentage: getEnvAsFloat("DEFAULT_VAT_PERCENTAGE", 15),
		PaymentTermDays:      getEnvAsInt("PAYMENT_TERM_DAYS", 30),
		PhoneRegion:          getEnv("PHONE_REGION", "SA"),
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	// Set default JWT secret for development
	if cfg.JWTSecret == "" {
		cfg.JWTSecret = "dev-secret-change-in-production"
	}

	return cfg, nil
}

func (c *Config) validate() error {
	switch c.StoreDriver {
	case StoreFile, StoreMemory, StoreRedis:
	case StorePostgres, StoreMySQL:
		if c.DatabaseURL == "" {
			return fmt.Errorf("DATABASE_URL is required for STORE_DRIVER=%s", c.StoreDriver)
		}
	default:
		return fmt.Errorf("unknown STORE_DRIVER %q", c.StoreDriver)
	}

	if c.IsProduction() {
		if c.JWTSecret == "" {
			return fmt.Errorf("JWT_SECRET is required in production")
		}
		if c.AdminPasswordHash == "" {
			return fmt.Errorf("ADMIN_PASSWORD_HASH is required in production")
		}
	}

	if c.AdminPasswordHash == "" && c.AdminPassword == "" {
		return fmt.Errorf("ADMIN_PASSWORD_HASH or ADMIN_PASSWORD must be set")
	}

	if c.DefaultVATPercentage < 0 {
		return fmt.Errorf("DEFAULT_VAT_PERCENTAGE must not be negative")
	}

	return nil
}

// IsProduction reports whether the service runs in production mode
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// getEnv reads an environment variable or returns a default value. Empty counts as unset.
func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists && value != "" {
		return value
	}
	return defaultValue
}

// getEnvAsInt reads an environment variable as integer
func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.ParseFloat(valueStr, 64)
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}
	value, err := time.ParseDuration(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

// getEnvAsSlice reads an environment variable as comma-separated slice
func getEnvAsSlice(key string, defaultValue []string) []string {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}
	parts := strings.Split(valueStr, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

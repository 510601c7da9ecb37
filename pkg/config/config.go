package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
// ⭐ SSOT: 모든 환경변수는 여기서만 읽음
type Config struct {
	// Server
	Port string
	Env  string // development, staging, production

	// Database
	Database DatabaseConfig

	// Auth
	JWT JWTConfig

	// External APIs
	DataGoKr DataGoKrConfig
	Yahoo    YahooConfig

	// Gold data caching / prefetch
	Gold GoldConfig

	// Logging
	LogLevel  string
	LogFormat string
}

// DatabaseConfig holds PostgreSQL configuration
type DatabaseConfig struct {
	URL string

	// Connection Pool
	MaxConns        int
	MinConns        int
	MaxConnLifetime time.Duration
	MaxConnIdleTime time.Duration
}

// JWTConfig holds access-token configuration
type JWTConfig struct {
	Secret        string
	ExpireMinutes int
}

// DataGoKrConfig holds 공공데이터포털 (data.go.kr) API configuration
type DataGoKrConfig struct {
	APIKey  string
	BaseURL string
	Timeout time.Duration
}

// YahooConfig holds Yahoo Finance chart API configuration
type YahooConfig struct {
	BaseURL string
}

// GoldConfig holds gold-data cache TTLs and prefetch settings
type GoldConfig struct {
	IntlTTL        time.Duration // international / premium / recommendation entries
	KRXTTL         time.Duration // domestic entries
	PrefetchPeriod string        // period warmed by the scheduler
}

// Load reads configuration from environment variables
// ⭐ SSOT: 이 함수만 os.Getenv()를 호출함
func Load() (*Config, error) {
	// Try multiple paths for .env file
	loadEnvFile()

	cfg := &Config{
		// Server
		Port: getEnv("PORT", "8080"),
		Env:  getEnv("ENV", "development"),

		// Database
		Database: DatabaseConfig{
			URL:             getEnv("DATABASE_URL", ""),
			MaxConns:        getEnvAsInt("DB_MAX_CONNS", 25),
			MinConns:        getEnvAsInt("DB_MIN_CONNS", 5),
			MaxConnLifetime: getEnvAsDuration("DB_MAX_CONN_LIFETIME", "1h"),
			MaxConnIdleTime: getEnvAsDuration("DB_MAX_CONN_IDLE_TIME", "30m"),
		},

		// Auth
		JWT: JWTConfig{
			Secret:        getEnv("JWT_SECRET", ""),
			ExpireMinutes: getEnvAsInt("JWT_EXPIRE_MINUTES", 1440),
		},

		// External APIs
		DataGoKr: DataGoKrConfig{
			APIKey:  getEnv("DATA_GO_KR_API_KEY", ""),
			BaseURL: getEnv("DATA_GO_KR_BASE_URL", "https://apis.data.go.kr/1160100/service/GetGeneralProductInfoService"),
			Timeout: getEnvAsDuration("DATA_GO_KR_TIMEOUT", "10s"),
		},

		Yahoo: YahooConfig{
			BaseURL: getEnv("YAHOO_BASE_URL", "https://query1.finance.yahoo.com"),
		},

		// Gold data
		Gold: GoldConfig{
			IntlTTL:        getEnvAsDuration("GOLD_INTL_TTL", "300s"),
			KRXTTL:         getEnvAsDuration("GOLD_KRX_TTL", "3600s"),
			PrefetchPeriod: getEnv("GOLD_PREFETCH_PERIOD", "1m"),
		},

		// Logging
		LogLevel:  getEnv("LOG_LEVEL", "debug"),
		LogFormat: getEnv("LOG_FORMAT", "json"),
	}

	// Validate configuration
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// validate checks if required configuration values are set
// 시크릿은 기본값 없이 필수 (fail closed)
func (c *Config) validate() error {
	if c.Database.URL == "" {
		return fmt.Errorf("DATABASE_URL is required")
	}

	if c.JWT.Secret == "" {
		return fmt.Errorf("JWT_SECRET is required")
	}

	if c.DataGoKr.APIKey == "" {
		return fmt.Errorf("DATA_GO_KR_API_KEY is required")
	}

	if c.Env != "development" && c.Env != "staging" && c.Env != "production" {
		return fmt.Errorf("ENV must be one of: development, staging, production")
	}

	return nil
}

// Helper functions (private, only used within this file)

// loadEnvFile tries to load .env from multiple locations
func loadEnvFile() {
	// Try paths in order of priority
	paths := []string{
		".env",         // Current directory
		"backend/.env", // From project root
	}

	// Also try relative to executable
	if exe, err := os.Executable(); err == nil {
		exeDir := filepath.Dir(exe)
		paths = append(paths,
			filepath.Join(exeDir, ".env"),
			filepath.Join(exeDir, "..", ".env"),
			filepath.Join(exeDir, "..", "..", ".env"),
		)
	}

	for _, path := range paths {
		if _, err := os.Stat(path); err == nil {
			_ = godotenv.Load(path)
			return
		}
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}

	return value
}

func getEnvAsDuration(key string, defaultValue string) time.Duration {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		valueStr = defaultValue
	}

	duration, err := time.ParseDuration(valueStr)
	if err != nil {
		// Fallback to default
		duration, _ = time.ParseDuration(defaultValue)
	}

	return duration
}

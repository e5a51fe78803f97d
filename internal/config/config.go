package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all application configuration
type Config struct {
	// Server configuration
	Server ServerConfig

	// Backing record store configuration
	Store StoreConfig

	// Lookup cache configuration
	Cache CacheConfig

	// Logging configuration
	Log LogConfig
}

// ServerConfig holds HTTP server settings
type ServerConfig struct {
	Port            string
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	ShutdownTimeout time.Duration
}

// StoreConfig holds backing record store settings
type StoreConfig struct {
	BaseURL  string
	APIKey   string
	BaseID   string
	PageSize int
	Timeout  time.Duration

	Tables TableConfig
}

// TableConfig names the upstream tables
type TableConfig struct {
	Datasets    string
	Divisions   string
	Categories  string
	ContentHubs string
	Comments    string
	Metadata    string
}

// CacheConfig holds lookup cache settings
type CacheConfig struct {
	TTL           time.Duration
	RefreshSecret string
}

// LogConfig holds logging settings
type LogConfig struct {
	Level  string
	Format string // "json" or "pretty"
}

// Load reads configuration from environment variables.
// A .env file in the working directory is loaded first when present.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Server: ServerConfig{
			Port:            getEnv("PORT", "8080"),
			ReadTimeout:     getDurationEnv("SERVER_READ_TIMEOUT", 30*time.Second),
			WriteTimeout:    getDurationEnv("SERVER_WRITE_TIMEOUT", 60*time.Second),
			ShutdownTimeout: getDurationEnv("SERVER_SHUTDOWN_TIMEOUT", 30*time.Second),
		},
		Store: StoreConfig{
			BaseURL:  getEnv("STORE_BASE_URL", "https://api.airtable.com/v0"),
			APIKey:   getEnv("STORE_API_KEY", ""),
			BaseID:   getEnv("STORE_BASE_ID", ""),
			PageSize: getIntEnv("STORE_PAGE_SIZE", 100),
			Timeout:  getDurationEnv("STORE_TIMEOUT", 30*time.Second),
			Tables: TableConfig{
				Datasets:    getEnv("STORE_TABLE_DATASETS", "Datasets"),
				Divisions:   getEnv("STORE_TABLE_DIVISIONS", "Divisions"),
				Categories:  getEnv("STORE_TABLE_CATEGORIES", "Categories"),
				ContentHubs: getEnv("STORE_TABLE_CONTENT_HUBS", "ContentHubs"),
				Comments:    getEnv("STORE_TABLE_COMMENTS", "AIComments"),
				Metadata:    getEnv("STORE_TABLE_METADATA", "Metadata"),
			},
		},
		Cache: CacheConfig{
			TTL:           getDurationEnv("CACHE_TTL", time.Hour),
			RefreshSecret: getEnv("CACHE_REFRESH_SECRET", ""),
		},
		Log: LogConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Format: getEnv("LOG_FORMAT", "json"),
		},
	}

	// Validate required configuration
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Store.APIKey == "" {
		return fmt.Errorf("STORE_API_KEY is required")
	}
	if c.Store.BaseID == "" {
		return fmt.Errorf("STORE_BASE_ID is required")
	}
	if c.Cache.RefreshSecret == "" {
		return fmt.Errorf("CACHE_REFRESH_SECRET is required")
	}
	return nil
}

// Helper functions for environment variable parsing

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getIntEnv(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getDurationEnv(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

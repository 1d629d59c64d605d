package config

import (
	"os"
	"strconv"
	"time"
)

// Config holds application configuration
type Config struct {
	Port      string
	Env       string
	LogLevel  string
	LogFormat string

	// AssetBaseURL is the base URL the embedder resolves widget resources
	// against (title/map SVGs and the clinic-details JSON).
	AssetBaseURL string
	AssetTimeout time.Duration

	// Redis-backed resource cache. Disabled when RedisAddr is empty.
	RedisAddr     string
	RedisPassword string
	RedisTLS      bool
	AssetCacheTTL time.Duration

	// HeightSyncDebounce is the debounce window applied to viewport resize
	// events before a height report is sent.
	HeightSyncDebounce time.Duration

	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
}

// Load reads configuration from environment variables
func Load() *Config {
	return &Config{
		Port:               getEnv("PORT", "8080"),
		Env:                getEnv("ENV", "development"),
		LogLevel:           getEnv("LOG_LEVEL", "info"),
		LogFormat:          getEnv("LOG_FORMAT", "json"),
		AssetBaseURL:       getEnv("ASSET_BASE_URL", "http://localhost:8080/assets"),
		AssetTimeout:       getEnvAsDuration("ASSET_TIMEOUT", 10*time.Second),
		RedisAddr:          getEnv("REDIS_ADDR", ""),
		RedisPassword:      getEnv("REDIS_PASSWORD", ""),
		RedisTLS:           getEnvAsBool("REDIS_TLS", false),
		AssetCacheTTL:      getEnvAsDuration("ASSET_CACHE_TTL", 5*time.Minute),
		HeightSyncDebounce: getEnvAsDuration("HEIGHTSYNC_DEBOUNCE", 200*time.Millisecond),
		ReadTimeout:        getEnvAsDuration("READ_TIMEOUT", 15*time.Second),
		WriteTimeout:       getEnvAsDuration("WRITE_TIMEOUT", 15*time.Second),
		IdleTimeout:        getEnvAsDuration("IDLE_TIMEOUT", 60*time.Second),
	}
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvAsBool retrieves an environment variable as a boolean or returns a default value
func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseBool(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}
	if value, err := time.ParseDuration(valueStr); err == nil {
		return value
	}
	return defaultValue
}

package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds application configuration
type Config struct {
	Port     string
	Env      string
	LogLevel string

	// Marketplace catalog storage
	DatabaseURL     string
	SeedSampleData  bool
	RedisAddr       string
	RedisPassword   string
	RedisTLS        bool
	CatalogCacheTTL time.Duration

	// Chat widget
	CORSAllowedOrigins      []string
	ChatConfidenceThreshold float64

	// Per-IP request limiting for the public chat endpoints
	RateLimitRPS   float64
	RateLimitBurst int

	// AdminToken guards /admin routes; empty disables them.
	AdminToken string
}

// Load reads configuration from environment variables
func Load() *Config {
	return &Config{
		Port:                    getEnv("PORT", "8080"),
		Env:                     getEnv("ENV", "development"),
		LogLevel:                getEnv("LOG_LEVEL", "info"),
		DatabaseURL:             getEnv("DATABASE_URL", ""),
		SeedSampleData:          getEnvAsBool("SEED_SAMPLE_DATA", true),
		RedisAddr:               getEnv("REDIS_ADDR", ""),
		RedisPassword:           getEnv("REDIS_PASSWORD", ""),
		RedisTLS:                getEnvAsBool("REDIS_TLS", false),
		CatalogCacheTTL:         getEnvAsDuration("CATALOG_CACHE_TTL", 5*time.Minute),
		CORSAllowedOrigins:      getEnvAsList("CORS_ALLOWED_ORIGINS", []string{"*"}),
		ChatConfidenceThreshold: getEnvAsFloat("CHAT_CONFIDENCE_THRESHOLD", 0.3),
		RateLimitRPS:            getEnvAsFloat("RATE_LIMIT_RPS", 5),
		RateLimitBurst:          getEnvAsInt("RATE_LIMIT_BURST", 20),
		AdminToken:              getEnv("ADMIN_TOKEN", ""),
	}
}

// IsProduction reports whether the service runs with ENV=production.
func (c *Config) IsProduction() bool {
	return strings.EqualFold(c.Env, "production")
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvAsInt retrieves an environment variable as an integer or returns a default value
func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
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

func getEnvAsFloat(key string, defaultValue float64) float64 {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseFloat(valueStr, 64); err == nil {
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

// getEnvAsList splits a comma separated variable, dropping blank entries.
func getEnvAsList(key string, defaultValue []string) []string {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}
	var out []string
	for _, part := range strings.Split(valueStr, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	if len(out) == 0 {
		return defaultValue
	}
	return out
}

// ABOUTME: Configuration loader for the cold-room analyzer service
// ABOUTME: Loads settings from environment variables with defaults

package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

type Config struct {
	// Server
	Port               string
	CacheTTL           int      // seconds, for derived catalog responses
	CORSAllowedOrigins []string // allowed CORS origins (empty = allow all)

	// Rate Limiting
	RateLimitEnabled bool // Enable rate limiting (default: true)
	RateLimitDefault int  // Requests per minute per client (default: 120)

	// Dataset
	DatasetPath  string // path to the dataset document (JSON or YAML)
	DatasetWatch bool   // hot-reload the dataset on file change

	// Batch compute
	BatchMaxRooms    int // max rooms accepted per batch request (default: 100)
	BatchParallelism int // concurrent computations per batch (default: 4)
}

func Load() (*Config, error) {
	cfg := &Config{
		Port:               getEnv("PORT", "8080"),
		CacheTTL:           getEnvInt("CACHE_TTL", 300),
		CORSAllowedOrigins: getEnvStringList("CORS_ALLOWED_ORIGINS"),

		RateLimitEnabled: getEnvBool("RATE_LIMIT_ENABLED", true),
		RateLimitDefault: getEnvInt("RATE_LIMIT_DEFAULT", 120),

		DatasetPath:  getEnv("DATASET_PATH", "data/dataset.json"),
		DatasetWatch: getEnvBool("DATASET_WATCH", false),

		BatchMaxRooms:    getEnvInt("BATCH_MAX_ROOMS", 100),
		BatchParallelism: getEnvInt("BATCH_PARALLELISM", 4),
	}

	if cfg.DatasetPath == "" {
		return nil, fmt.Errorf("DATASET_PATH is required")
	}
	if cfg.RateLimitDefault < 1 || cfg.RateLimitDefault > 10000 {
		return nil, fmt.Errorf("RATE_LIMIT_DEFAULT must be between 1 and 10000, got %d", cfg.RateLimitDefault)
	}
	if cfg.BatchMaxRooms < 1 {
		return nil, fmt.Errorf("BATCH_MAX_ROOMS must be >= 1, got %d", cfg.BatchMaxRooms)
	}
	if cfg.BatchParallelism < 1 {
		return nil, fmt.Errorf("BATCH_PARALLELISM must be >= 1, got %d", cfg.BatchParallelism)
	}

	return cfg, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return defaultValue
}

func getEnvStringList(key string) []string {
	value := os.Getenv(key)
	if value == "" {
		return nil
	}
	parts := strings.Split(value, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}

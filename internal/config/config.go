// Package config loads and validates application configuration from environment variables.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Cache backends accepted by CACHE_BACKEND.
const (
	CacheMemory = "memory"
	CacheRedis  = "redis"
	CacheNone   = "none"
)

// Config holds all configuration values for the server.
type Config struct {
	// Port is the TCP port the HTTP server listens on. Defaults to "8080".
	Port string

	// LogLevel is one of debug, info, warn, error. Defaults to "info".
	LogLevel string

	// CosmosEndpoint and CosmosKey locate and authorize the document store. Required.
	CosmosEndpoint  string
	CosmosKey       string
	CosmosDatabase  string
	CosmosContainer string

	// CacheBackend selects memory, redis or none. Defaults to memory.
	CacheBackend string

	RedisHost     string
	RedisPort     string
	RedisPassword string
	RedisDB       int
	// RedisTTL of 0 keeps entries until an explicit refresh.
	RedisTTL time.Duration

	// StoreRPS and StoreBurst bound calls per store operation. A
	// non-positive rate disables throttling.
	StoreRPS   float64
	StoreBurst int

	// Currency is the ISO code shown in formatted totals. Defaults to "EUR".
	Currency string

	CORSOrigins []string
}

// LoadDotEnv loads variables from the given files, ".env" by default, without
// overriding ones already set. A missing file is not an error.
func LoadDotEnv(paths ...string) error {
	if err := godotenv.Load(paths...); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("config.LoadDotEnv: %w", err)
	}
	return nil
}

// Load reads configuration from environment variables and returns a Config.
// Returns an error listing any required variables that are not set.
func Load() (Config, error) {
	cfg := Config{
		Port:            getEnv("PORT", "8080"),
		LogLevel:        strings.ToLower(getEnv("LOG_LEVEL", "info")),
		CosmosDatabase:  getEnv("COSMOS_DATABASE", "test"),
		CosmosContainer: getEnv("COSMOS_CONTAINER", "test-d"),
		CacheBackend:    strings.ToLower(getEnv("CACHE_BACKEND", CacheMemory)),
		RedisHost:       getEnv("REDIS_HOST", "localhost"),
		RedisPort:       getEnv("REDIS_PORT", "6379"),
		RedisPassword:   os.Getenv("REDIS_PASSWORD"),
		Currency:        strings.ToUpper(getEnv("PRICE_CURRENCY", "EUR")),
		CORSOrigins:     splitCSV(getEnv("CORS_ORIGINS", "*")),
	}

	var missing []string

	cfg.CosmosEndpoint = os.Getenv("URL_AZURE_COSMOS")
	if cfg.CosmosEndpoint == "" {
		missing = append(missing, "URL_AZURE_COSMOS")
	}
	cfg.CosmosKey = os.Getenv("KEY_AZURE_COSMOS")
	if cfg.CosmosKey == "" {
		missing = append(missing, "KEY_AZURE_COSMOS")
	}

	if len(missing) > 0 {
		return Config{}, fmt.Errorf("required environment variables not set: %s", strings.Join(missing, ", "))
	}

	var invalid []string
	var err error

	if cfg.RedisDB, err = getEnvInt("REDIS_DB", 0); err != nil {
		invalid = append(invalid, err.Error())
	}
	if cfg.RedisTTL, err = getEnvDuration("REDIS_TTL", 0); err != nil {
		invalid = append(invalid, err.Error())
	}
	if cfg.StoreRPS, err = getEnvFloat("STORE_RPS", 10); err != nil {
		invalid = append(invalid, err.Error())
	}
	if cfg.StoreBurst, err = getEnvInt("STORE_BURST", 20); err != nil {
		invalid = append(invalid, err.Error())
	}

	switch cfg.CacheBackend {
	case CacheMemory, CacheRedis, CacheNone:
	default:
		invalid = append(invalid, fmt.Sprintf("CACHE_BACKEND: unknown backend %q", cfg.CacheBackend))
	}
	switch cfg.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		invalid = append(invalid, fmt.Sprintf("LOG_LEVEL: unknown level %q", cfg.LogLevel))
	}

	if len(invalid) > 0 {
		return Config{}, fmt.Errorf("invalid configuration: %s", strings.Join(invalid, "; "))
	}

	return cfg, nil
}

// getEnv returns the value of the environment variable named by key,
// or fallback if the variable is not set or is empty.
func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback, fmt.Errorf("%s: %q is not an integer", key, v)
	}
	return n, nil
}

func getEnvFloat(key string, fallback float64) (float64, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return fallback, fmt.Errorf("%s: %q is not a number", key, v)
	}
	return n, nil
}

// getEnvDuration accepts Go durations ("5m") or plain seconds ("300").
func getEnvDuration(key string, fallback time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	if secs, err := strconv.Atoi(v); err == nil {
		return time.Duration(secs) * time.Second, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return fallback, fmt.Errorf("%s: %q is not a duration", key, v)
	}
	return d, nil
}

// splitCSV splits a comma-separated string into a trimmed slice, ignoring empty entries.
func splitCSV(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if t := strings.TrimSpace(part); t != "" {
			out = append(out, t)
		}
	}
	return out
}

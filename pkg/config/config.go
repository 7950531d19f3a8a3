package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

type Config struct {
	AppEnv   string
	LogLevel string

	HTTPPort int

	// Catalog upstream.
	CatalogBaseURL  string
	CatalogTimeout  time.Duration
	CatalogCacheTTL time.Duration

	// Cart storage.
	CartBackend        string
	RedisAddr          string
	CartTTL            time.Duration
	RequirePositiveQty bool

	// Interpreter (chat binary only).
	OpenAIAPIKey  string
	OpenAIBaseURL string
	OpenAIModel   string
}

const (
	BackendMemory = "memory"
	BackendRedis  = "redis"
)

// Load reads configuration from the environment. A missing CATALOG_BASE_URL
// or an unknown CART_BACKEND is fatal; everything else falls back to a
// default.
func Load() (Config, error) {
	cfg := Config{
		AppEnv:   getEnv("APP_ENV", "dev"),
		LogLevel: getEnv("LOG_LEVEL", "info"),
		HTTPPort: getEnvInt("HTTP_PORT", 8080),

		CatalogBaseURL:  os.Getenv("CATALOG_BASE_URL"),
		CatalogTimeout:  getEnvDuration("CATALOG_TIMEOUT", 10*time.Second),
		CatalogCacheTTL: getEnvDuration("CATALOG_CACHE_TTL", 0),

		CartBackend:        getEnv("CART_BACKEND", BackendMemory),
		RedisAddr:          getEnv("REDIS_ADDR", "localhost:6379"),
		CartTTL:            getEnvDuration("CART_TTL", 30*time.Minute),
		RequirePositiveQty: getEnvBool("CART_REQUIRE_POSITIVE_QTY", true),

		OpenAIAPIKey:  os.Getenv("OPENAI_API_KEY"),
		OpenAIBaseURL: getEnv("OPENAI_BASE_URL", "https://api.openai.com/v1"),
		OpenAIModel:   getEnv("OPENAI_MODEL", "gpt-4o-mini"),
	}

	if cfg.CatalogBaseURL == "" {
		return Config{}, fmt.Errorf("CATALOG_BASE_URL is required")
	}
	if cfg.CartBackend != BackendMemory && cfg.CartBackend != BackendRedis {
		return Config{}, fmt.Errorf("unknown CART_BACKEND %q", cfg.CartBackend)
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
	v := os.Getenv(key)
	if v == "" {
		return def
	}

	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}

	return n
}

func getEnvBool(key string, def bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return def
	}

	b, err := strconv.ParseBool(v)
	if err != nil {
		return def
	}

	return b
}

func getEnvDuration(key string, def time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return def
	}

	d, err := time.ParseDuration(v)
	if err != nil {
		return def
	}

	return d
}

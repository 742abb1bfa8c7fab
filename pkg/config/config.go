package config

import (
	"os"
	"time"
)

type Config struct {
	AppEnv   string
	LogLevel string

	// CatalogPath points at the JSON catalog file. When CatalogDSN is
	// set, the SQLite catalog is used instead.
	CatalogPath    string
	CatalogDSN     string
	MigrationsPath string

	GeminiAPIKey      string
	GeminiModel       string
	ClassifierTimeout time.Duration

	MerchantID string
	Currency   string
}

func Load() Config {
	return Config{
		AppEnv:   getEnv("APP_ENV", "dev"),
		LogLevel: getEnv("LOG_LEVEL", "info"),

		CatalogPath:    getEnv("CATALOG_PATH", "products.json"),
		CatalogDSN:     getEnv("CATALOG_DSN", ""),
		MigrationsPath: getEnv("MIGRATIONS_PATH", "internal/catalog/migrations"),

		GeminiAPIKey:      getEnv("GEMINI_API_KEY", ""),
		GeminiModel:       getEnv("GEMINI_MODEL", ""),
		ClassifierTimeout: getEnvDuration("CLASSIFIER_TIMEOUT", 15*time.Second),

		MerchantID: getEnv("MERCHANT_ID", "merchant_ucp_demo"),
		Currency:   getEnv("CURRENCY", "USD"),
	}
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
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

package config

import (
	"os"
	"strconv"
	"time"
)

type Config struct {
	HTTPAddr string

	ABCAPIURL         string
	CDEAPIURL         string
	ProductServiceURL string
	HTTPClientTimeout time.Duration

	ImportOnStartup     bool
	ImportRetryAttempts int
	ImportRetryDelay    time.Duration

	JaegerEndpoint string
}

func LoadConfig() *Config {
	return &Config{
		HTTPAddr:            getEnv("HTTP_ADDR", ":8083"),
		ABCAPIURL:           getEnv("ABC_API_URL", "http://localhost:8090"),
		CDEAPIURL:           getEnv("CDE_API_URL", "http://localhost:8090"),
		ProductServiceURL:   getEnv("PRODUCT_SERVICE_URL", "http://localhost:8080"),
		HTTPClientTimeout:   getDuration("HTTP_CLIENT_TIMEOUT", 10*time.Second),
		ImportOnStartup:     getBool("IMPORT_ON_STARTUP", true),
		ImportRetryAttempts: getInt("IMPORT_RETRY_ATTEMPTS", 3),
		ImportRetryDelay:    getDuration("IMPORT_RETRY_DELAY", 5*time.Second),
		JaegerEndpoint:      getEnv("JAEGER_ENDPOINT", "http://localhost:14268/api/traces"),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getDuration(key string, defaultValue time.Duration) time.Duration {
	if d, err := time.ParseDuration(os.Getenv(key)); err == nil && d > 0 {
		return d
	}
	return defaultValue
}

func getInt(key string, defaultValue int) int {
	if n, err := strconv.Atoi(os.Getenv(key)); err == nil && n >= 0 {
		return n
	}
	return defaultValue
}

func getBool(key string, defaultValue bool) bool {
	if b, err := strconv.ParseBool(os.Getenv(key)); err == nil {
		return b
	}
	return defaultValue
}

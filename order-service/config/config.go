package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	HTTPAddr string

	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string

	MigrationsEnabled bool

	RedisAddr     string
	RedisPassword string

	CartServiceURL    string
	ProductServiceURL string
	AdapterServiceURL string

	HTTPClientTimeout time.Duration
	ProductCacheTTL   time.Duration
	OrderLockTTL      time.Duration

	JaegerEndpoint string
}

func LoadConfig() *Config {
	return &Config{
		HTTPAddr:          getEnv("HTTP_ADDR", ":8082"),
		DBHost:            getEnv("DB_HOST", "localhost"),
		DBPort:            getEnv("DB_PORT", "5432"),
		DBUser:            getEnv("DB_USER", "postgres"),
		DBPassword:        getEnvFromFile("DB_PASSWORD_FILE", "DB_PASSWORD", "postgres"),
		DBName:            getEnv("DB_NAME", "orderdb"),
		MigrationsEnabled: getBool("MIGRATIONS_ENABLED", true),
		RedisAddr:         getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPassword:     getEnvFromFile("REDIS_PASSWORD_FILE", "REDIS_PASSWORD", ""),
		CartServiceURL:    getEnv("CART_SERVICE_URL", "http://localhost:8081"),
		ProductServiceURL: getEnv("PRODUCT_SERVICE_URL", "http://localhost:8080"),
		AdapterServiceURL: getEnv("ADAPTER_SERVICE_URL", "http://localhost:8083"),
		HTTPClientTimeout: getDuration("HTTP_CLIENT_TIMEOUT", 10*time.Second),
		ProductCacheTTL:   getDuration("PRODUCT_CACHE_TTL", 5*time.Minute),
		OrderLockTTL:      getDuration("ORDER_LOCK_TTL", 30*time.Second),
		JaegerEndpoint:    getEnv("JAEGER_ENDPOINT", "http://localhost:14268/api/traces"),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvFromFile(fileKey, envKey, defaultValue string) string {
	if filePath := os.Getenv(fileKey); filePath != "" {
		if content, err := os.ReadFile(filePath); err == nil {
			return strings.TrimSpace(string(content))
		}
	}
	return getEnv(envKey, defaultValue)
}

func getDuration(key string, defaultValue time.Duration) time.Duration {
	if d, err := time.ParseDuration(os.Getenv(key)); err == nil && d > 0 {
		return d
	}
	return defaultValue
}

func getBool(key string, defaultValue bool) bool {
	if b, err := strconv.ParseBool(os.Getenv(key)); err == nil {
		return b
	}
	return defaultValue
}

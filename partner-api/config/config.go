package config

import "os"

type Config struct {
	HTTPAddr string
	// MockDataPath overrides the embedded fixtures with files from disk.
	MockDataPath   string
	JaegerEndpoint string
}

func LoadConfig() *Config {
	return &Config{
		HTTPAddr:       getEnv("HTTP_ADDR", ":8090"),
		MockDataPath:   os.Getenv("MOCK_DATA_PATH"),
		JaegerEndpoint: getEnv("JAEGER_ENDPOINT", "http://localhost:14268/api/traces"),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

package config

import (
	"testing"
	"time"
)

func TestLoadConfig_Defaults(t *testing.T) {
	cfg := LoadConfig()

	if cfg.HTTPAddr != ":8083" {
		t.Errorf("Expected :8083, got %s", cfg.HTTPAddr)
	}
	if !cfg.ImportOnStartup {
		t.Error("Expected import on startup by default")
	}
	if cfg.ImportRetryAttempts != 3 || cfg.ImportRetryDelay != 5*time.Second {
		t.Errorf("Unexpected retry policy %d x %s", cfg.ImportRetryAttempts, cfg.ImportRetryDelay)
	}
}

func TestLoadConfig_Overrides(t *testing.T) {
	t.Setenv("IMPORT_ON_STARTUP", "false")
	t.Setenv("IMPORT_RETRY_ATTEMPTS", "0")
	t.Setenv("IMPORT_RETRY_DELAY", "1s")
	t.Setenv("ABC_API_URL", "http://abc:9000")

	cfg := LoadConfig()

	if cfg.ImportOnStartup {
		t.Error("Expected import on startup disabled")
	}
	if cfg.ImportRetryAttempts != 0 {
		t.Errorf("Expected 0 retries, got %d", cfg.ImportRetryAttempts)
	}
	if cfg.ImportRetryDelay != time.Second {
		t.Errorf("Expected 1s, got %s", cfg.ImportRetryDelay)
	}
	if cfg.ABCAPIURL != "http://abc:9000" {
		t.Errorf("Expected override, got %s", cfg.ABCAPIURL)
	}
}

func TestLoadConfig_JaegerEndpoint(t *testing.T) {
	t.Setenv("JAEGER_ENDPOINT", "http://jaeger:14268/api/traces")

	if got := LoadConfig().JaegerEndpoint; got != "http://jaeger:14268/api/traces" {
		t.Errorf("Expected jaeger override, got %s", got)
	}
}

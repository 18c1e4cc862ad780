package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	cfg := LoadConfig()

	assert.Equal(t, ":8082", cfg.HTTPAddr)
	assert.Equal(t, "orderdb", cfg.DBName)
	assert.True(t, cfg.MigrationsEnabled)
	assert.Equal(t, 10*time.Second, cfg.HTTPClientTimeout)
	assert.Equal(t, 5*time.Minute, cfg.ProductCacheTTL)
	assert.Equal(t, 30*time.Second, cfg.OrderLockTTL)
}

func TestLoadConfig_Overrides(t *testing.T) {
	t.Setenv("HTTP_ADDR", ":9000")
	t.Setenv("HTTP_CLIENT_TIMEOUT", "250ms")
	t.Setenv("ORDER_LOCK_TTL", "not-a-duration")
	t.Setenv("MIGRATIONS_ENABLED", "false")

	cfg := LoadConfig()

	assert.Equal(t, ":9000", cfg.HTTPAddr)
	assert.Equal(t, 250*time.Millisecond, cfg.HTTPClientTimeout)
	assert.Equal(t, 30*time.Second, cfg.OrderLockTTL)
	assert.False(t, cfg.MigrationsEnabled)
}

func TestLoadConfig_PasswordFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pw")
	require.NoError(t, os.WriteFile(path, []byte("s3cret\n"), 0o600))
	t.Setenv("DB_PASSWORD_FILE", path)
	t.Setenv("DB_PASSWORD", "ignored")

	assert.Equal(t, "s3cret", LoadConfig().DBPassword)
}

func TestLoadConfig_JaegerEndpoint(t *testing.T) {
	t.Setenv("JAEGER_ENDPOINT", "")
	assert.Equal(t, "http://localhost:14268/api/traces", LoadConfig().JaegerEndpoint)

	t.Setenv("JAEGER_ENDPOINT", "http://jaeger:14268/api/traces")
	assert.Equal(t, "http://jaeger:14268/api/traces", LoadConfig().JaegerEndpoint)
}

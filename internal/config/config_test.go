package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromEnv_Defaults(t *testing.T) {
	for _, key := range []string{"HTTP_ADDR", "REDIS_URL", "SESSION_TTL_HOURS", "CORS_ORIGINS", "TRACING_ENABLED", "VENDOR_FEE", "CURRENCY"} {
		t.Setenv(key, "")
	}
	cfg := FromEnv()

	assert.Equal(t, ":8080", cfg.HTTPAddr)
	assert.Equal(t, "redis://localhost:6379/0", cfg.RedisURL)
	assert.Equal(t, 72*time.Hour, cfg.SessionTTL)
	assert.Equal(t, 10*time.Second, cfg.ShutdownTimeout)
	assert.Empty(t, cfg.CORSOrigins)
	assert.False(t, cfg.TracingEnabled)
	assert.True(t, cfg.VendorFee.Equal(decimal.NewFromInt(199)))
	assert.Equal(t, "INR", cfg.Currency)
}

func TestFromEnv_Overrides(t *testing.T) {
	t.Setenv("SESSION_TTL_HOURS", "24")
	t.Setenv("SHUTDOWN_TIMEOUT_SECONDS", "3")
	t.Setenv("CORS_ORIGINS", "http://localhost:3000, ,https://shop.example.com")
	t.Setenv("TRACING_ENABLED", "true")
	t.Setenv("VENDOR_FEE", "249.50")

	cfg := FromEnv()
	assert.Equal(t, 24*time.Hour, cfg.SessionTTL)
	assert.Equal(t, 3*time.Second, cfg.ShutdownTimeout)
	assert.Equal(t, []string{"http://localhost:3000", "https://shop.example.com"}, cfg.CORSOrigins)
	assert.True(t, cfg.TracingEnabled)
	assert.Equal(t, "249.5", cfg.VendorFee.String())
}

func TestFromEnv_InvalidFallsBack(t *testing.T) {
	t.Setenv("SESSION_TTL_HOURS", "-4")
	t.Setenv("TRACING_ENABLED", "maybe")
	t.Setenv("VENDOR_FEE", "free")

	cfg := FromEnv()
	assert.Equal(t, 72*time.Hour, cfg.SessionTTL)
	assert.False(t, cfg.TracingEnabled)
	assert.True(t, cfg.VendorFee.Equal(decimal.NewFromInt(199)))
}

func TestLoad_ReadsDotEnv(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("CURRENCY=USD\nHTTP_ADDR=:9090\n"), 0o600))
	t.Chdir(dir)
	t.Setenv("HTTP_ADDR", ":7070")
	t.Setenv("CURRENCY", "")
	os.Unsetenv("CURRENCY")

	cfg := Load()
	assert.Equal(t, "USD", cfg.Currency)
	assert.Equal(t, ":7070", cfg.HTTPAddr)
}

package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("SERVER_PORT", "")
	t.Setenv("NOTIFIER_PROVIDER", "")
	t.Setenv("AUTOMATION_DEDUP", "")
	t.Setenv("CORS_ALLOWED_ORIGINS", "")

	cfg := Load()

	assert.Equal(t, ":8080", cfg.Addr())
	assert.Equal(t, "mock", cfg.NotifierProvider)
	assert.Equal(t, "America/Sao_Paulo", cfg.Timezone)
	assert.False(t, cfg.AutomationDedup)
	assert.True(t, cfg.AutomationEnabled)
	assert.False(t, cfg.StorageEnabled())
	assert.Empty(t, cfg.CORSOrigins)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("NOTIFIER_PROVIDER", "HTTP")
	t.Setenv("AUTOMATION_HOUR", "7")
	t.Setenv("AUTOMATION_MINUTE", "x")
	t.Setenv("AUTOMATION_DEDUP", "true")
	t.Setenv("S3_BUCKET", "logos")
	t.Setenv("S3_ACCESS_KEY", "key")
	t.Setenv("S3_SECRET_KEY", "secret")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://app.salao.com/, ,http://localhost:5173")

	cfg := Load()

	assert.Equal(t, ":9090", cfg.Addr())
	assert.Equal(t, "http", cfg.NotifierProvider)
	assert.Equal(t, 7, cfg.AutomationHour)
	assert.Equal(t, 0, cfg.AutomationMinute)
	assert.True(t, cfg.AutomationDedup)
	assert.True(t, cfg.StorageEnabled())
	assert.Equal(t, []string{"https://app.salao.com", "http://localhost:5173"}, cfg.CORSOrigins)
}

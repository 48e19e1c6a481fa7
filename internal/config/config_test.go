package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	configContent := `
server:
  port: 9090
  host: "0.0.0.0"

database:
  url: "postgres://localhost:5432/userhub?sslmode=disable"

redis:
  enabled: true
  addr: "localhost:6380"
  ttl_seconds: 60

ses:
  enabled: true
  access_key: "test-access-key"
  secret_key: "test-secret-key"
  region: "eu-west-1"
  from_email: "no-reply@example.com"
  from_name: "UserHub"

logging:
  level: "debug"
  redact_pii: false
`
	err := os.WriteFile(configPath, []byte(configContent), 0644)
	require.NoError(t, err)

	cfg, err := Load(configPath)
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "0.0.0.0", cfg.Server.Host)
	assert.Equal(t, "postgres://localhost:5432/userhub?sslmode=disable", cfg.Database.URL)
	assert.True(t, cfg.Redis.Enabled)
	assert.Equal(t, "localhost:6380", cfg.Redis.Addr)
	assert.Equal(t, 60, cfg.Redis.TTLSeconds)
	assert.True(t, cfg.SES.Enabled)
	assert.Equal(t, "eu-west-1", cfg.SES.Region)
	assert.Equal(t, "no-reply@example.com", cfg.SES.FromEmail)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.False(t, cfg.Logging.RedactEnabled())
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "localhost", cfg.Server.Host)
	assert.Equal(t, "localhost:6379", cfg.Redis.Addr)
	assert.Equal(t, 300, cfg.Redis.TTLSeconds)
	assert.Equal(t, "us-west-2", cfg.SES.Region)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.True(t, cfg.Logging.RedactEnabled(), "redaction must default to on")
	assert.False(t, cfg.Redis.Enabled)
	assert.False(t, cfg.SES.Enabled)
}

func TestLoadFromEnvOverrides(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://prod-host:5432/userhub")
	t.Setenv("REDIS_ADDR", "prod-redis:6379")
	t.Setenv("AWS_SES_ACCESS_KEY", "env-access")
	t.Setenv("AWS_SES_SECRET_KEY", "env-secret")
	t.Setenv("AWS_SES_REGION", "us-east-1")
	t.Setenv("LOG_LEVEL", "warn")

	cfg, err := LoadFromEnv(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)

	assert.Equal(t, "postgres://prod-host:5432/userhub", cfg.Database.URL)
	assert.Equal(t, "prod-redis:6379", cfg.Redis.Addr)
	assert.True(t, cfg.Redis.Enabled, "REDIS_ADDR should enable the cache")
	assert.True(t, cfg.SES.Enabled, "AWS_SES_ACCESS_KEY should enable SES")
	assert.Equal(t, "us-east-1", cfg.SES.Region)
	assert.Equal(t, "warn", cfg.Logging.Level)
}

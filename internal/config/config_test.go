package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "development", cfg.Env)
	assert.Equal(t, "0.0.0.0", cfg.Server.Host)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "gearguard", cfg.Database.DBName)
	assert.Equal(t, "gearguard", cfg.Auth.Issuer)
	assert.True(t, cfg.Sweeper.Enabled)
	assert.Equal(t, 60, cfg.Sweeper.IntervalMinutes)
	assert.False(t, cfg.Tracing.Enabled)
	assert.False(t, cfg.RateLimit.Enabled)
}

func TestLoad_EnvOverride(t *testing.T) {
	t.Setenv("APP_SERVER_PORT", "9090")
	t.Setenv("APP_DATABASE_HOST", "db.internal")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "db.internal", cfg.Database.Host)
}

func TestLoad_ConfigFile(t *testing.T) {
	content := `
env: production
server:
  port: 3000
auth:
  jwt_secret: file-secret
sweeper:
  enabled: false
`
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "production", cfg.Env)
	assert.Equal(t, 3000, cfg.Server.Port)
	assert.Equal(t, "file-secret", cfg.Auth.JWTSecret)
	assert.False(t, cfg.Sweeper.Enabled)
	// 未覆盖的项仍取默认值
	assert.Equal(t, "0.0.0.0", cfg.Server.Host)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load("/nonexistent/config.yaml")
	require.Error(t, err)
}

func TestIsProduction(t *testing.T) {
	assert.False(t, IsProduction(nil))
	assert.False(t, IsProduction(&Config{Env: "development"}))
	assert.True(t, IsProduction(&Config{Env: "production"}))
}

func TestDefault(t *testing.T) {
	cfg := Default()
	require.NotNil(t, cfg)
	assert.Equal(t, 8080, cfg.Server.Port)
}

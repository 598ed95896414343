package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"digital.vasic.trainer/pkg/scenario"
)

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(
		t, os.WriteFile(path, []byte(content), 0644),
	)
	return path
}

func TestDefault(t *testing.T) {
	cfg := Default()

	assert.Equal(t, "0.0.0.0:8080", cfg.Server.Addr())
	assert.Equal(t, "./catalog", cfg.Catalog.Path)
	assert.Equal(t, "classroom", cfg.Profile.Name)
	assert.Equal(t, int64(5), cfg.Hints.AttemptsPerHint)
	assert.Equal(
		t, 10*time.Minute, cfg.Hints.UnlockInterval,
	)
	assert.Equal(t, 32, cfg.AntiCheat.WindowSize)
	assert.Equal(t, 64, cfg.Broadcast.BufferSize)
	assert.False(t, cfg.Redis.Enabled)
	assert.False(t, cfg.Postgres.Enabled)
}

func TestLoad_NoFileUsesDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default().Server, cfg.Server)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load("/nonexistent/config.yaml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read config file")
}

func TestLoad_FromYAML(t *testing.T) {
	path := writeConfigFile(t, `
server:
  host: 127.0.0.1
  port: 9090
catalog:
  path: /etc/trainer/catalog
profile:
  name: demo
  disabled_keys:
    - xss-stored
  disabled_categories:
    - crypto
hints:
  attempts_per_hint: 3
  unlock_interval: 5m
anticheat:
  window_size: 16
redis:
  enabled: true
  address: redis:6379
log:
  verbose: true
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "127.0.0.1:9090", cfg.Server.Addr())
	assert.Equal(t, "/etc/trainer/catalog", cfg.Catalog.Path)
	assert.Equal(t, "demo", cfg.Profile.Name)
	assert.Equal(
		t, []scenario.Key{"xss-stored"},
		cfg.Profile.DisabledKeys,
	)
	assert.Equal(
		t, []string{"crypto"}, cfg.Profile.DisabledCategories,
	)
	assert.Equal(t, int64(3), cfg.Hints.AttemptsPerHint)
	assert.Equal(t, 5*time.Minute, cfg.Hints.UnlockInterval)
	assert.Equal(t, 16, cfg.AntiCheat.WindowSize)
	assert.True(t, cfg.Redis.Enabled)
	assert.Equal(t, "redis:6379", cfg.Redis.Address)
	assert.True(t, cfg.Log.Verbose)
}

func TestLoad_InvalidYAML(t *testing.T) {
	path := writeConfigFile(t, "server: [not a mapping")

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse config file")
}

func TestLoad_EnvOverrides(t *testing.T) {
	path := writeConfigFile(t, `
server:
  port: 9090
profile:
  name: demo
`)

	t.Setenv("TRAINER_SERVER_HOST", "10.0.0.5")
	t.Setenv("TRAINER_SERVER_PORT", "8181")
	t.Setenv("TRAINER_PROFILE", "exam")
	t.Setenv("TRAINER_HINT_UNLOCK_INTERVAL", "30m")
	t.Setenv("TRAINER_REDIS_ENABLED", "true")
	t.Setenv("TRAINER_LOG_VERBOSE", "1")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "10.0.0.5:8181", cfg.Server.Addr())
	assert.Equal(t, "exam", cfg.Profile.Name)
	assert.Equal(
		t, 30*time.Minute, cfg.Hints.UnlockInterval,
	)
	assert.True(t, cfg.Redis.Enabled)
	assert.True(t, cfg.Log.Verbose)
}

func TestLoad_MalformedEnvValuesIgnored(t *testing.T) {
	t.Setenv("TRAINER_SERVER_PORT", "not-a-number")
	t.Setenv("TRAINER_REDIS_ENABLED", "maybe")
	t.Setenv("TRAINER_HINT_UNLOCK_INTERVAL", "soon")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.False(t, cfg.Redis.Enabled)
	assert.Equal(
		t, 10*time.Minute, cfg.Hints.UnlockInterval,
	)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{
			name:   "valid defaults",
			mutate: func(*Config) {},
		},
		{
			name: "port too low",
			mutate: func(c *Config) {
				c.Server.Port = 0
			},
			wantErr: "invalid server port",
		},
		{
			name: "port too high",
			mutate: func(c *Config) {
				c.Server.Port = 70000
			},
			wantErr: "invalid server port",
		},
		{
			name: "empty catalog path",
			mutate: func(c *Config) {
				c.Catalog.Path = ""
			},
			wantErr: "catalog path is required",
		},
		{
			name: "empty profile name",
			mutate: func(c *Config) {
				c.Profile.Name = ""
			},
			wantErr: "profile name is required",
		},
		{
			name: "postgres enabled without DSN",
			mutate: func(c *Config) {
				c.Postgres.Enabled = true
			},
			wantErr: "postgres sink enabled but DSN is empty",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)

			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

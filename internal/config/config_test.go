package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("SEATMAP_CONFIG_PATH", "")
	cfg, err := Load("")
	require.NoError(t, err)
	require.Equal(t, "sqlite", cfg.Store.Backend)
	require.Equal(t, "http", cfg.Transport.Mode)
	require.Equal(t, 2.0, cfg.Grid.UnitX)
	require.Equal(t, 3.125, cfg.Grid.UnitY)
	require.Equal(t, "1F", cfg.Layout.DefaultFloor)
}

func TestLoadFileThenEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "seatmap.yaml")
	content := `
server:
  port: 9090
store:
  backend: redis
redis:
  addr: cache:6379
  prefix: cafe:
grid:
  unit_x: 4
layout:
  default_floor: B1
  view_rotation: 2
log:
  level: debug
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	t.Setenv("SEATMAP_SERVER_PORT", "7070")
	t.Setenv("SEATMAP_REDIS_DB", "3")
	t.Setenv("SEATMAP_TRANSPORT_MODE", "stdio")

	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, 7070, cfg.Server.Port)
	require.Equal(t, "redis", cfg.Store.Backend)
	require.Equal(t, "cache:6379", cfg.Redis.Addr)
	require.Equal(t, "cafe:", cfg.Redis.Prefix)
	require.Equal(t, 3, cfg.Redis.DB)
	require.Equal(t, 4.0, cfg.Grid.UnitX)
	require.Equal(t, 3.125, cfg.Grid.UnitY)
	require.Equal(t, "B1", cfg.Layout.DefaultFloor)
	require.Equal(t, 2, cfg.Layout.ViewRotation)
	require.Equal(t, "stdio", cfg.Transport.Mode)
	require.Equal(t, "debug", cfg.Log.Level)
}

func TestLoadRejectsBadValues(t *testing.T) {
	t.Setenv("SEATMAP_CONFIG_PATH", "")
	t.Setenv("SEATMAP_SERVER_PORT", "abc")
	_, err := Load("")
	require.Error(t, err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Config)
	}{
		{"backend", func(c *Config) { c.Store.Backend = "postgres" }},
		{"transport", func(c *Config) { c.Transport.Mode = "grpc" }},
		{"start mode", func(c *Config) { c.Layout.StartMode = "admin" }},
		{"grid", func(c *Config) { c.Grid.UnitY = 0 }},
		{"rotation", func(c *Config) { c.Layout.ViewRotation = 4 }},
		{"floor", func(c *Config) { c.Layout.DefaultFloor = " " }},
		{"auth token", func(c *Config) { c.Auth.Enabled = true }},
		{"port", func(c *Config) { c.Server.Port = 0 }},
	}
	require.NoError(t, Default().Validate())
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.modify(&cfg)
			require.ErrorIs(t, cfg.Validate(), ErrInvalidConfig)
		})
	}
}

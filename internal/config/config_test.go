package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.Server.Address)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, DriverMemory, cfg.Storage.Driver)
	assert.Equal(t, 2, cfg.Wheel.MinSegments)
	assert.Equal(t, 12, cfg.Wheel.MaxSegments)
	assert.True(t, cfg.Wheel.SeedDefaults)
}

func TestLoad_FileAndEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "spinwheel.yaml")
	content := `
server:
  address: ":9090"
storage:
  driver: sqlite
  sqlite:
    path: /tmp/wheel.db
wheel:
  max_segments: 8
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	t.Setenv("SPINWHEEL_LOG_LEVEL", "debug")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, ":9090", cfg.Server.Address)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, DriverSQLite, cfg.Storage.Driver)
	assert.Equal(t, "/tmp/wheel.db", cfg.Storage.SQLite.Path)
	assert.Equal(t, 8, cfg.Wheel.MaxSegments)
	assert.Equal(t, 2, cfg.Wheel.MinSegments)
}

func TestLoad_MissingExplicitFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
}

func TestConfigValidate(t *testing.T) {
	valid := func() Config {
		return Config{
			Server:  ServerConfig{Address: ":8080"},
			Log:     LogConfig{Level: "info"},
			Storage: StorageConfig{Driver: DriverMemory},
			Wheel:   WheelConfig{MinSegments: 2, MaxSegments: 12},
		}
	}

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{name: "valid", mutate: func(*Config) {}},
		{name: "empty address", mutate: func(c *Config) { c.Server.Address = "" }, wantErr: true},
		{name: "bad level", mutate: func(c *Config) { c.Log.Level = "loud" }, wantErr: true},
		{name: "unknown driver", mutate: func(c *Config) { c.Storage.Driver = "mongo" }, wantErr: true},
		{name: "postgres without url", mutate: func(c *Config) { c.Storage.Driver = DriverPostgres }, wantErr: true},
		{name: "sqlite without path", mutate: func(c *Config) { c.Storage.Driver = DriverSQLite }, wantErr: true},
		{name: "min above max", mutate: func(c *Config) { c.Wheel.MinSegments = 13 }, wantErr: true},
		{name: "zero min", mutate: func(c *Config) { c.Wheel.MinSegments = 0 }, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(&cfg)

			err := cfg.Validate()

			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

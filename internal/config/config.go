package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

const (
	DriverMemory   = "memory"
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// Config holds all configuration for the wheel server.
type Config struct {
	Server  ServerConfig  `mapstructure:"server"`
	Log     LogConfig     `mapstructure:"log"`
	Storage StorageConfig `mapstructure:"storage"`
	Wheel   WheelConfig   `mapstructure:"wheel"`
}

type ServerConfig struct {
	Address   string `mapstructure:"address"`
	StaticDir string `mapstructure:"static_dir"`
}

func (s ServerConfig) Validate() error {
	if strings.TrimSpace(s.Address) == "" {
		return fmt.Errorf("server.address is required")
	}
	return nil
}

type LogConfig struct {
	Level string `mapstructure:"level"`
}

func (l LogConfig) Validate() error {
	switch strings.ToLower(l.Level) {
	case "debug", "info", "warn", "error":
		return nil
	default:
		return fmt.Errorf("log.level %q must be one of debug, info, warn, error", l.Level)
	}
}

type StorageConfig struct {
	Driver   string         `mapstructure:"driver"`
	SQLite   SQLiteConfig   `mapstructure:"sqlite"`
	Postgres PostgresConfig `mapstructure:"postgres"`
}

type SQLiteConfig struct {
	Path string `mapstructure:"path"`
}

type PostgresConfig struct {
	URL string `mapstructure:"url"`
}

func (s StorageConfig) Validate() error {
	switch s.Driver {
	case DriverMemory:
		return nil
	case DriverSQLite:
		if strings.TrimSpace(s.SQLite.Path) == "" {
			return fmt.Errorf("storage.sqlite.path required when driver is sqlite")
		}
		return nil
	case DriverPostgres:
		if strings.TrimSpace(s.Postgres.URL) == "" {
			return fmt.Errorf("storage.postgres.url required when driver is postgres")
		}
		return nil
	default:
		return fmt.Errorf("storage.driver %q must be one of memory, sqlite, postgres", s.Driver)
	}
}

// WheelConfig bounds the number of segments the API accepts.
type WheelConfig struct {
	MinSegments  int  `mapstructure:"min_segments"`
	MaxSegments  int  `mapstructure:"max_segments"`
	SeedDefaults bool `mapstructure:"seed_defaults"`
}

func (w WheelConfig) Validate() error {
	if w.MinSegments < 1 {
		return fmt.Errorf("wheel.min_segments must be at least 1")
	}
	if w.MaxSegments < w.MinSegments {
		return fmt.Errorf("wheel.max_segments must not be below wheel.min_segments")
	}
	return nil
}

func (c *Config) Validate() error {
	return errors.Join(
		c.Server.Validate(),
		c.Log.Validate(),
		c.Storage.Validate(),
		c.Wheel.Validate(),
	)
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.address", ":8080")
	v.SetDefault("server.static_dir", "./static")
	v.SetDefault("log.level", "info")
	v.SetDefault("storage.driver", DriverMemory)
	v.SetDefault("storage.sqlite.path", "spinwheel.db")
	v.SetDefault("storage.postgres.url", "")
	v.SetDefault("wheel.min_segments", 2)
	v.SetDefault("wheel.max_segments", 12)
	v.SetDefault("wheel.seed_defaults", true)
}

// Load reads configuration from path, or from config.{yaml,json} in the
// usual locations when path is empty. A missing file is not an error.
// SPINWHEEL_* environment variables override file values.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	if path == "" {
		v.SetConfigName("config")
		v.AddConfigPath("./config")
		v.AddConfigPath(".")
	} else {
		v.SetConfigFile(path)
	}

	v.SetEnvPrefix("SPINWHEEL")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

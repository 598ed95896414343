// Package config loads engine deployment configuration from a
// YAML file with environment variable overrides.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"

	"digital.vasic.trainer/pkg/profile"
)

// Config holds all configuration for the trainer engine.
type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Catalog   CatalogConfig   `yaml:"catalog"`
	Profile   profile.Profile `yaml:"profile"`
	Hints     HintsConfig     `yaml:"hints"`
	AntiCheat AntiCheatConfig `yaml:"anticheat"`
	Broadcast BroadcastConfig `yaml:"broadcast"`
	Redis     RedisConfig     `yaml:"redis"`
	Postgres  PostgresConfig  `yaml:"postgres"`
	Log       LogConfig       `yaml:"log"`
}

// ServerConfig holds admin HTTP server configuration.
type ServerConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
}

// Addr returns the host:port listen address.
func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// CatalogConfig locates the scenario catalog (file or
// directory of files).
type CatalogConfig struct {
	Path string `yaml:"path"`
}

// HintsConfig tunes the hint unlock schedule.
type HintsConfig struct {
	AttemptsPerHint int64         `yaml:"attempts_per_hint"`
	UnlockInterval  time.Duration `yaml:"unlock_interval"`
}

// AntiCheatConfig tunes the interaction history window.
type AntiCheatConfig struct {
	WindowSize int `yaml:"window_size"`
}

// BroadcastConfig tunes per-subscriber event buffering.
type BroadcastConfig struct {
	BufferSize int `yaml:"buffer_size"`
}

// RedisConfig holds the optional Redis solve sink settings.
type RedisConfig struct {
	Enabled  bool   `yaml:"enabled"`
	Address  string `yaml:"address"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

// PostgresConfig holds the optional PostgreSQL solve sink
// settings.
type PostgresConfig struct {
	Enabled bool   `yaml:"enabled"`
	DSN     string `yaml:"dsn"`
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Verbose  bool   `yaml:"verbose"`
	JSONPath string `yaml:"json_path"`
}

// Default returns the stock configuration.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Host: "0.0.0.0",
			Port: 8080,
		},
		Catalog: CatalogConfig{
			Path: "./catalog",
		},
		Profile: profile.Profile{
			Name: "classroom",
		},
		Hints: HintsConfig{
			AttemptsPerHint: 5,
			UnlockInterval:  10 * time.Minute,
		},
		AntiCheat: AntiCheatConfig{
			WindowSize: 32,
		},
		Broadcast: BroadcastConfig{
			BufferSize: 64,
		},
		Redis: RedisConfig{
			Address: "localhost:6379",
		},
	}
}

// Load builds the configuration: defaults, then the YAML file
// at path (skipped when path is empty), then environment
// overrides, then validation.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf(
				"failed to read config file %s: %w",
				path, err,
			)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf(
				"failed to parse config file %s: %w",
				path, err,
			)
		}
	}

	cfg.applyEnvOverrides()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf(
			"config validation failed: %w", err,
		)
	}
	return cfg, nil
}

func (c *Config) applyEnvOverrides() {
	c.Server.Host = getEnv("TRAINER_SERVER_HOST", c.Server.Host)
	c.Server.Port = getEnvAsInt(
		"TRAINER_SERVER_PORT", c.Server.Port,
	)
	c.Catalog.Path = getEnv(
		"TRAINER_CATALOG_PATH", c.Catalog.Path,
	)
	c.Profile.Name = getEnv(
		"TRAINER_PROFILE", c.Profile.Name,
	)
	c.Hints.UnlockInterval = getEnvAsDuration(
		"TRAINER_HINT_UNLOCK_INTERVAL", c.Hints.UnlockInterval,
	)
	c.Redis.Enabled = getEnvAsBool(
		"TRAINER_REDIS_ENABLED", c.Redis.Enabled,
	)
	c.Redis.Address = getEnv(
		"TRAINER_REDIS_ADDRESS", c.Redis.Address,
	)
	c.Redis.Password = getEnv(
		"TRAINER_REDIS_PASSWORD", c.Redis.Password,
	)
	c.Postgres.Enabled = getEnvAsBool(
		"TRAINER_POSTGRES_ENABLED", c.Postgres.Enabled,
	)
	c.Postgres.DSN = getEnv(
		"TRAINER_POSTGRES_DSN", c.Postgres.DSN,
	)
	c.Log.Verbose = getEnvAsBool(
		"TRAINER_LOG_VERBOSE", c.Log.Verbose,
	)
}

// Validate checks the configuration for startup-fatal
// problems.
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf(
			"invalid server port: %d", c.Server.Port,
		)
	}
	if c.Catalog.Path == "" {
		return fmt.Errorf("catalog path is required")
	}
	if err := c.Profile.Validate(); err != nil {
		return err
	}
	if c.Postgres.Enabled && c.Postgres.DSN == "" {
		return fmt.Errorf(
			"postgres sink enabled but DSN is empty",
		)
	}
	return nil
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok {
		return v
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	if v, ok := os.LookupEnv(key); ok {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func getEnvAsBool(key string, fallback bool) bool {
	if v, ok := os.LookupEnv(key); ok {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}

func getEnvAsDuration(
	key string, fallback time.Duration,
) time.Duration {
	if v, ok := os.LookupEnv(key); ok {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}

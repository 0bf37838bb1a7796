// Package config loads Framewright configuration from TOML.
//
// Configuration is optional everywhere: Default() returns a fully
// usable configuration, and Load applies a TOML file on top of the
// defaults. Validation happens once here so downstream packages can
// trust the values.
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/framewright/framewright/pkg/errors"
)

// Config is the top-level configuration.
type Config struct {
	Layout LayoutConfig `toml:"layout"`
	Store  StoreConfig  `toml:"store"`
	Server ServerConfig `toml:"server"`
	Render RenderConfig `toml:"render"`
}

// LayoutConfig tunes the resolver and edit engine.
type LayoutConfig struct {
	// MinPanelLengthMM is the clamp floor for panel lengths.
	MinPanelLengthMM float64 `toml:"min_panel_length_mm"`

	// DebounceMS is the edit-coalescing window in milliseconds.
	DebounceMS int `toml:"debounce_ms"`
}

// Debounce returns the coalescing window as a duration.
func (c LayoutConfig) Debounce() time.Duration {
	return time.Duration(c.DebounceMS) * time.Millisecond
}

// StoreConfig selects and configures the persistence backend.
type StoreConfig struct {
	// Backend is one of "file", "memory", "redis", "mongo".
	Backend string `toml:"backend"`

	// Dir is the file backend's base directory; empty means the
	// default config location.
	Dir string `toml:"dir"`

	Redis RedisConfig `toml:"redis"`
	Mongo MongoConfig `toml:"mongo"`
}

// RedisConfig configures the redis backend.
type RedisConfig struct {
	Addr     string `toml:"addr"`
	Password string `toml:"password"`
	DB       int    `toml:"db"`
	TTLHours int    `toml:"ttl_hours"`
}

// TTL returns the expiry window as a duration. Zero means no expiry.
func (c RedisConfig) TTL() time.Duration {
	return time.Duration(c.TTLHours) * time.Hour
}

// MongoConfig configures the mongo backend.
type MongoConfig struct {
	URI        string `toml:"uri"`
	Database   string `toml:"database"`
	Collection string `toml:"collection"`
}

// ServerConfig configures the HTTP API.
type ServerConfig struct {
	Addr string `toml:"addr"`
}

// RenderConfig configures elevation rendering.
type RenderConfig struct {
	// PxPerMM scales millimetres to SVG user units.
	PxPerMM float64 `toml:"px_per_mm"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Layout: LayoutConfig{
			MinPanelLengthMM: 100,
			DebounceMS:       250,
		},
		Store: StoreConfig{
			Backend: "file",
			Redis:   RedisConfig{Addr: "localhost:6379"},
			Mongo:   MongoConfig{URI: "mongodb://localhost:27017"},
		},
		Server: ServerConfig{
			Addr: ":8470",
		},
		Render: RenderConfig{
			PxPerMM: 0.1,
		},
	}
}

// Load reads a TOML file over the defaults and validates the result.
// An empty path returns the defaults unchanged.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config %s: %w", path, err)
	}
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks the configuration for out-of-range values.
func (c Config) Validate() error {
	if c.Layout.MinPanelLengthMM <= 0 {
		return errors.New(errors.ErrCodeInvalidInput, "layout.min_panel_length_mm must be positive, got %v", c.Layout.MinPanelLengthMM)
	}
	if c.Layout.DebounceMS < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "layout.debounce_ms must not be negative, got %d", c.Layout.DebounceMS)
	}
	switch c.Store.Backend {
	case "file", "memory", "redis", "mongo":
	default:
		return errors.New(errors.ErrCodeInvalidInput, "store.backend %q is not one of file, memory, redis, mongo", c.Store.Backend)
	}
	if c.Render.PxPerMM <= 0 {
		return errors.New(errors.ErrCodeInvalidInput, "render.px_per_mm must be positive, got %v", c.Render.PxPerMM)
	}
	return nil
}

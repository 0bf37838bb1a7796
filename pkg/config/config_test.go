package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "framewright.toml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestDefaultIsValid(t *testing.T) {
	if err := Default().Validate(); err != nil {
		t.Errorf("Default().Validate() = %v", err)
	}
}

func TestLoadEmptyPathReturnsDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Layout.MinPanelLengthMM != 100 || cfg.Layout.DebounceMS != 250 {
		t.Errorf("unexpected defaults: %+v", cfg.Layout)
	}
	if cfg.Layout.Debounce() != 250*time.Millisecond {
		t.Errorf("Debounce() = %v", cfg.Layout.Debounce())
	}
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := writeConfig(t, `
[layout]
min_panel_length_mm = 150
debounce_ms = 500

[store]
backend = "redis"

[store.redis]
addr = "redis.internal:6379"

[server]
addr = ":9000"
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Layout.MinPanelLengthMM != 150 {
		t.Errorf("MinPanelLengthMM = %v", cfg.Layout.MinPanelLengthMM)
	}
	if cfg.Store.Backend != "redis" || cfg.Store.Redis.Addr != "redis.internal:6379" {
		t.Errorf("store = %+v", cfg.Store)
	}
	if cfg.Server.Addr != ":9000" {
		t.Errorf("server addr = %q", cfg.Server.Addr)
	}
	// Untouched sections keep their defaults.
	if cfg.Render.PxPerMM != 0.1 {
		t.Errorf("PxPerMM = %v, want default", cfg.Render.PxPerMM)
	}
}

func TestLoadRejectsBadValues(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{
			name:    "zero min panel length",
			content: "[layout]\nmin_panel_length_mm = 0\n",
		},
		{
			name:    "negative debounce",
			content: "[layout]\ndebounce_ms = -1\n",
		},
		{
			name:    "unknown backend",
			content: "[store]\nbackend = \"cassandra\"\n",
		},
		{
			name:    "bad toml",
			content: "[layout\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeConfig(t, tt.content)
			if _, err := Load(path); err == nil {
				t.Error("Load() = nil error, want failure")
			}
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.toml")); err == nil {
		t.Error("expected error for missing file")
	}
}

package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/ziadkadry99/symburst/internal/symbols"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.Port != 8080 {
		t.Errorf("expected default port 8080, got %d", cfg.Port)
	}
	if cfg.Radius != 450 {
		t.Errorf("expected default radius 450, got %f", cfg.Radius)
	}
	if cfg.DataDir != ".symburst" {
		t.Errorf("expected default data_dir %q, got %q", ".symburst", cfg.DataDir)
	}
	if !cfg.TypeSet().Has(symbols.TypeText) || len(cfg.TypeSet()) != 1 {
		t.Errorf("expected default filter {t}, got %v", cfg.TypeSet())
	}
}

func TestSaveAndLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "test.symburst.yml")

	original := DefaultConfig()
	original.Input = "build/symbols.json"
	original.App = "firmware"
	original.Types = []string{"t", "d"}
	original.Exclude = []string{"newlib/**", "*.a"}
	original.Radius = 300
	original.Port = 9000

	// Save.
	if err := original.Save(path); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	// Load back.
	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	// Verify round-trip.
	if loaded.Input != original.Input {
		t.Errorf("input: got %q, want %q", loaded.Input, original.Input)
	}
	if loaded.App != original.App {
		t.Errorf("app: got %q, want %q", loaded.App, original.App)
	}
	if loaded.Radius != original.Radius {
		t.Errorf("radius: got %f, want %f", loaded.Radius, original.Radius)
	}
	if loaded.Port != original.Port {
		t.Errorf("port: got %d, want %d", loaded.Port, original.Port)
	}
	if len(loaded.Exclude) != len(original.Exclude) {
		t.Fatalf("exclude length: got %d, want %d", len(loaded.Exclude), len(original.Exclude))
	}
	for i, v := range loaded.Exclude {
		if v != original.Exclude[i] {
			t.Errorf("exclude[%d]: got %q, want %q", i, v, original.Exclude[i])
		}
	}
	if ts := loaded.TypeSet(); !ts.Has(symbols.TypeText) || !ts.Has(symbols.TypeData) || ts.Has(symbols.TypeBSS) {
		t.Errorf("types: got %v", ts)
	}
}

func TestLoadMissingFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nonexistent.yml")

	// Loading a missing file should return defaults, not an error.
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load should not fail for missing file: %v", err)
	}
	if cfg.Port != 8080 {
		t.Errorf("expected default port, got %d", cfg.Port)
	}
}

func TestLoadEnvOverride(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "test.yml")

	cfg := DefaultConfig()
	if err := cfg.Save(path); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	// Override input via env var.
	os.Setenv("SYMBURST_INPUT", "other.json")
	defer os.Unsetenv("SYMBURST_INPUT")

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if loaded.Input != "other.json" {
		t.Errorf("env override failed: got %q, want %q", loaded.Input, "other.json")
	}
}

func TestValidateValid(t *testing.T) {
	cfg := DefaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Errorf("DefaultConfig should be valid, got: %v", err)
	}
}

func TestValidateInvalidTypes(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Types = []string{"x", "y"}
	if err := cfg.Validate(); err == nil {
		t.Error("expected validation error for unknown types")
	}
}

func TestValidateRadius(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Radius = 0
	if err := cfg.Validate(); err == nil {
		t.Error("expected validation error for zero radius")
	}
}

func TestValidateEmptyDataDir(t *testing.T) {
	cfg := DefaultConfig()
	cfg.DataDir = ""
	if err := cfg.Validate(); err == nil {
		t.Error("expected validation error for empty data_dir")
	}
}

func TestValidatePort(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Port = 70000
	if err := cfg.Validate(); err == nil {
		t.Error("expected validation error for out-of-range port")
	}
}

func TestValidateLogLevel(t *testing.T) {
	cfg := DefaultConfig()
	cfg.LogLevel = "chatty"
	if err := cfg.Validate(); err == nil {
		t.Error("expected validation error for invalid log_level")
	}
}

func TestDatabasePath(t *testing.T) {
	cfg := DefaultConfig()
	cfg.DataDir = "data"
	if got, want := cfg.DatabasePath(), filepath.Join("data", "symburst.db"); got != want {
		t.Errorf("DatabasePath() = %q, want %q", got, want)
	}
}

func TestSplitAndTrim(t *testing.T) {
	tests := []struct {
		input string
		want  []string
	}{
		{"a,b,c", []string{"a", "b", "c"}},
		{" a , b , c ", []string{"a", "b", "c"}},
		{"drivers/**", []string{"drivers/**"}},
		{"", nil},
		{"  ,  , ", nil},
	}
	for _, tt := range tests {
		got := splitAndTrim(tt.input)
		if len(got) != len(tt.want) {
			t.Errorf("splitAndTrim(%q) len = %d, want %d", tt.input, len(got), len(tt.want))
			continue
		}
		for i, v := range got {
			if v != tt.want[i] {
				t.Errorf("splitAndTrim(%q)[%d] = %q, want %q", tt.input, i, v, tt.want[i])
			}
		}
	}
}

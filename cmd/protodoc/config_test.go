package main

import (
	"os"
	"path/filepath"
	"testing"

	"protodoc/pkg/document"
)

func TestLoadConfigDefaults(t *testing.T) {
	// Run from an empty directory so no protodoc.toml is picked up.
	t.Chdir(t.TempDir())

	cfg, err := loadConfig("")
	if err != nil {
		t.Fatalf("loadConfig() error: %v", err)
	}
	if cfg != document.DefaultConfig() {
		t.Errorf("cfg = %+v, want defaults", cfg)
	}
}

func TestLoadConfigFileOverride(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "custom.toml")
	content := `
font_family = "Courier"
font_size_pt = 9.0
max_row_units = 16
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("setup: %v", err)
	}

	cfg, err := loadConfig(path)
	if err != nil {
		t.Fatalf("loadConfig() error: %v", err)
	}

	if cfg.FontFamily != "Courier" {
		t.Errorf("FontFamily = %q, want Courier", cfg.FontFamily)
	}
	if cfg.FontSizePt != 9 {
		t.Errorf("FontSizePt = %v, want 9", cfg.FontSizePt)
	}
	if cfg.MaxRowUnits != 16 {
		t.Errorf("MaxRowUnits = %d, want 16", cfg.MaxRowUnits)
	}
	// Unset fields keep renderer defaults.
	if cfg.UnitsToCharsRatio != document.DefaultConfig().UnitsToCharsRatio {
		t.Errorf("UnitsToCharsRatio = %v, want default", cfg.UnitsToCharsRatio)
	}
}

func TestLoadConfigExplicitMissingFile(t *testing.T) {
	if _, err := loadConfig(filepath.Join(t.TempDir(), "absent.toml")); err == nil {
		t.Error("explicitly named missing config file should be an error")
	}
}

func TestLoadConfigMalformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.toml")
	if err := os.WriteFile(path, []byte("font_family = [broken"), 0o644); err != nil {
		t.Fatalf("setup: %v", err)
	}

	if _, err := loadConfig(path); err == nil {
		t.Error("malformed config should be an error")
	}
}

package project

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/piwi3910/tabbedbox/internal/model"
)

func TestSaveAndLoadAppConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.json")

	cfg := model.DefaultAppConfig()
	cfg.DefaultKerf = 0.15
	cfg.DefaultFormat = "dxf"
	cfg.Machine.GCodeProfile = "Grbl"
	cfg.RecentOutputs = []string{"/tmp/box1.svg", "/tmp/box2.dxf"}

	if err := SaveAppConfig(path, cfg); err != nil {
		t.Fatalf("SaveAppConfig failed: %v", err)
	}

	loaded, err := LoadAppConfig(path)
	if err != nil {
		t.Fatalf("LoadAppConfig failed: %v", err)
	}

	if loaded.DefaultKerf != 0.15 {
		t.Errorf("expected DefaultKerf=0.15, got %f", loaded.DefaultKerf)
	}
	if loaded.DefaultFormat != "dxf" {
		t.Errorf("expected DefaultFormat=dxf, got %s", loaded.DefaultFormat)
	}
	if loaded.Machine.GCodeProfile != "Grbl" {
		t.Errorf("expected profile Grbl, got %s", loaded.Machine.GCodeProfile)
	}
	if len(loaded.RecentOutputs) != 2 {
		t.Errorf("expected 2 recent outputs, got %d", len(loaded.RecentOutputs))
	}
}

func TestLoadAppConfigMissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nonexistent", "config.json")

	cfg, err := LoadAppConfig(path)
	if err != nil {
		t.Fatalf("expected no error for missing file, got: %v", err)
	}

	defaults := model.DefaultAppConfig()
	if cfg.DefaultThickness != defaults.DefaultThickness {
		t.Errorf("expected default thickness %f, got %f", defaults.DefaultThickness, cfg.DefaultThickness)
	}
	if cfg.DefaultFormat != "svg" {
		t.Errorf("expected format=svg, got %s", cfg.DefaultFormat)
	}
}

func TestLoadAppConfigPartialFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	if err := os.WriteFile(path, []byte(`{"default_thickness": 6}`), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadAppConfig(path)
	if err != nil {
		t.Fatalf("LoadAppConfig failed: %v", err)
	}
	if cfg.DefaultThickness != 6 {
		t.Errorf("expected thickness 6, got %f", cfg.DefaultThickness)
	}
	if cfg.Machine.PassDepth != model.DefaultMachineSettings().PassDepth {
		t.Errorf("expected default pass depth, got %f", cfg.Machine.PassDepth)
	}
	if cfg.RecentOutputs == nil {
		t.Error("RecentOutputs should never be nil")
	}
}

func TestLoadAppConfigInvalidJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	if err := os.WriteFile(path, []byte("not json"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadAppConfig(path); err == nil {
		t.Fatal("expected error for invalid JSON")
	}
}

func TestDefaultConfigDirFromEnv(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("TABBEDBOX_HOME", dir)

	if got := DefaultConfigDir(); got != dir {
		t.Errorf("expected %s, got %s", dir, got)
	}
	if got := DefaultConfigPath(); got != filepath.Join(dir, "config.json") {
		t.Errorf("unexpected config path %s", got)
	}
}

func TestDefaultConfigDirHome(t *testing.T) {
	t.Setenv("TABBEDBOX_HOME", "")
	if base := filepath.Base(DefaultConfigDir()); base != ".tabbedbox" {
		t.Errorf("expected .tabbedbox, got %s", base)
	}
}

package project

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/piwi3910/tabbedbox/internal/model"
)

func TestExportAndImportAllData(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "backup.json")

	cfg := model.DefaultAppConfig()
	cfg.DefaultThickness = 6
	cfg.DefaultFormat = "pdf"

	presets := model.NewPresetStore()
	presets.Add(model.NewPreset("Tray", "", model.DefaultOptions()))

	data := BackupData{
		Config:    cfg,
		Presets:   presets,
		Inventory: model.DefaultInventory(),
		Profiles:  []model.GCodeProfile{testProfile("Laser")},
	}
	if err := ExportAllData(path, data); err != nil {
		t.Fatalf("ExportAllData failed: %v", err)
	}

	backup, err := ImportAllData(path)
	if err != nil {
		t.Fatalf("ImportAllData failed: %v", err)
	}

	if backup.Version != "1.0.0" {
		t.Errorf("expected version 1.0.0, got %s", backup.Version)
	}
	if backup.CreatedAt == "" {
		t.Error("expected non-empty CreatedAt")
	}
	if backup.Config.DefaultThickness != 6 {
		t.Errorf("expected DefaultThickness=6, got %f", backup.Config.DefaultThickness)
	}
	if backup.Config.DefaultFormat != "pdf" {
		t.Errorf("expected DefaultFormat=pdf, got %s", backup.Config.DefaultFormat)
	}
	if len(backup.Presets.Presets) != 1 || backup.Presets.Presets[0].Name != "Tray" {
		t.Errorf("unexpected presets %+v", backup.Presets)
	}
	if len(backup.Inventory.Stocks) != len(model.DefaultInventory().Stocks) {
		t.Errorf("expected default stocks, got %d", len(backup.Inventory.Stocks))
	}
	if len(backup.Profiles) != 1 || backup.Profiles[0].Name != "Laser" {
		t.Errorf("unexpected profiles %+v", backup.Profiles)
	}
}

func TestImportAllDataMissingFile(t *testing.T) {
	_, err := ImportAllData(filepath.Join(t.TempDir(), "nope.json"))
	if err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestImportAllDataInvalidJSON(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bad.json")
	if err := os.WriteFile(path, []byte("{not json}"), 0644); err != nil {
		t.Fatal(err)
	}

	_, err := ImportAllData(path)
	if err == nil {
		t.Fatal("expected error for invalid JSON")
	}
}

func TestImportAllDataMissingVersion(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "noversion.json")
	if err := os.WriteFile(path, []byte(`{"config": {}}`), 0644); err != nil {
		t.Fatal(err)
	}

	_, err := ImportAllData(path)
	if err == nil {
		t.Fatal("expected error for missing version")
	}
}

func TestSnapshotAndRestoreDefaults(t *testing.T) {
	t.Setenv("TABBEDBOX_HOME", t.TempDir())

	presets := model.NewPresetStore()
	presets.Add(model.NewPreset("Bin", "", model.DefaultOptions()))
	if err := SaveDefaultPresets(presets); err != nil {
		t.Fatal(err)
	}

	snap, err := SnapshotDefaults()
	if err != nil {
		t.Fatalf("SnapshotDefaults failed: %v", err)
	}
	if snap.Presets.FindByName("Bin") == nil {
		t.Fatal("expected snapshot to contain the Bin preset")
	}

	// Restore into a fresh home.
	t.Setenv("TABBEDBOX_HOME", t.TempDir())
	snap.Config.DefaultKerf = 0.2
	snap.Inventory.Stocks = append(snap.Inventory.Stocks,
		model.StockPreset{ID: "extra", Name: "Extra Acrylic", Width: 300, Height: 200, Thickness: 3})
	if err := RestoreDefaults(snap); err != nil {
		t.Fatalf("RestoreDefaults failed: %v", err)
	}

	cfg, err := LoadAppConfig(DefaultConfigPath())
	if err != nil {
		t.Fatal(err)
	}
	if cfg.DefaultKerf != 0.2 {
		t.Errorf("expected restored kerf 0.2, got %f", cfg.DefaultKerf)
	}
	restored, err := LoadDefaultPresets()
	if err != nil {
		t.Fatal(err)
	}
	if restored.FindByName("Bin") == nil {
		t.Error("expected restored Bin preset")
	}
	inv, _, err := LoadOrCreateInventory()
	if err != nil {
		t.Fatal(err)
	}
	if inv.FindStock("Extra Acrylic") == nil {
		t.Error("expected merged extra stock")
	}
}

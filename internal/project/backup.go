package project

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/piwi3910/tabbedbox/internal/model"
)

// backupVersion is written into every bundle. Bundles without a version
// are rejected on import.
const backupVersion = "1.0.0"

// BackupData is the top-level structure for import/export of all application data.
type BackupData struct {
	Version   string               `json:"version"`
	CreatedAt string               `json:"created_at"`
	Config    model.AppConfig      `json:"config"`
	Presets   model.PresetStore    `json:"presets"`
	Inventory model.Inventory      `json:"inventory"`
	Profiles  []model.GCodeProfile `json:"profiles,omitempty"`
}

// ExportAllData writes config, presets, inventory and custom profiles to
// a single JSON file at the specified path.
func ExportAllData(exportPath string, data BackupData) error {
	data.Version = backupVersion
	data.CreatedAt = time.Now().UTC().Format(time.RFC3339)
	if err := saveJSON(exportPath, data); err != nil {
		return fmt.Errorf("failed to write backup file: %w", err)
	}
	return nil
}

// ImportAllData reads a backup JSON file and returns the contained data.
// The caller is responsible for applying the imported data.
func ImportAllData(importPath string) (BackupData, error) {
	raw, err := os.ReadFile(importPath)
	if err != nil {
		return BackupData{}, fmt.Errorf("failed to read backup file: %w", err)
	}
	backup := BackupData{Config: model.DefaultAppConfig()}
	if err := json.Unmarshal(raw, &backup); err != nil {
		return BackupData{}, fmt.Errorf("failed to parse backup file: %w", err)
	}
	if backup.Version == "" {
		return BackupData{}, fmt.Errorf("invalid backup file: missing version field")
	}
	if backup.Config.RecentOutputs == nil {
		backup.Config.RecentOutputs = []string{}
	}
	if backup.Presets.Presets == nil {
		backup.Presets.Presets = []model.Preset{}
	}
	return backup, nil
}

// SnapshotDefaults gathers everything stored under DefaultConfigDir into a
// bundle ready for ExportAllData.
func SnapshotDefaults() (BackupData, error) {
	cfg, err := LoadAppConfig(DefaultConfigPath())
	if err != nil {
		return BackupData{}, fmt.Errorf("failed to load config: %w", err)
	}
	presets, err := LoadDefaultPresets()
	if err != nil {
		return BackupData{}, fmt.Errorf("failed to load presets: %w", err)
	}
	inv, _, err := LoadOrCreateInventory()
	if err != nil {
		return BackupData{}, fmt.Errorf("failed to load inventory: %w", err)
	}
	profiles, err := LoadCustomProfilesFromDefault()
	if err != nil {
		return BackupData{}, fmt.Errorf("failed to load profiles: %w", err)
	}
	return BackupData{Config: cfg, Presets: presets, Inventory: inv, Profiles: profiles}, nil
}

// RestoreDefaults writes a bundle back under DefaultConfigDir, replacing
// the stored config, presets and profiles and merging the inventory.
func RestoreDefaults(data BackupData) error {
	if err := SaveAppConfig(DefaultConfigPath(), data.Config); err != nil {
		return fmt.Errorf("failed to save config: %w", err)
	}
	if err := SaveDefaultPresets(data.Presets); err != nil {
		return fmt.Errorf("failed to save presets: %w", err)
	}
	inv, path, err := LoadOrCreateInventory()
	if err != nil {
		return fmt.Errorf("failed to load inventory: %w", err)
	}
	if err := SaveInventory(path, MergeInventory(inv, data.Inventory)); err != nil {
		return fmt.Errorf("failed to save inventory: %w", err)
	}
	if err := SaveCustomProfiles(DefaultProfilesPath(), data.Profiles); err != nil {
		return fmt.Errorf("failed to save profiles: %w", err)
	}
	return nil
}

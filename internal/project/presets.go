package project

import (
	"path/filepath"

	"github.com/piwi3910/tabbedbox/internal/model"
)

// DefaultPresetPath returns the default file path for the preset store,
// ~/.tabbedbox/presets.json.
func DefaultPresetPath() string {
	return filepath.Join(DefaultConfigDir(), "presets.json")
}

// SavePresets writes the preset store to a JSON file.
func SavePresets(path string, store model.PresetStore) error {
	return saveJSON(path, store)
}

// LoadPresets reads a preset store. A missing file gives an empty store.
func LoadPresets(path string) (model.PresetStore, error) {
	store := model.NewPresetStore()
	if _, err := loadJSON(path, &store); err != nil {
		return model.PresetStore{}, err
	}
	if store.Presets == nil {
		store.Presets = []model.Preset{}
	}
	return store, nil
}

// LoadDefaultPresets loads presets from the default path.
func LoadDefaultPresets() (model.PresetStore, error) {
	return LoadPresets(DefaultPresetPath())
}

// SaveDefaultPresets saves presets to the default path.
func SaveDefaultPresets(store model.PresetStore) error {
	return SavePresets(DefaultPresetPath(), store)
}

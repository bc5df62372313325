package project

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/piwi3910/tabbedbox/internal/model"
)

// DefaultConfigDir returns the directory holding config, presets, inventory
// and custom profiles: $TABBEDBOX_HOME when set, otherwise ~/.tabbedbox/.
func DefaultConfigDir() string {
	if dir := os.Getenv("TABBEDBOX_HOME"); dir != "" {
		return dir
	}
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	return filepath.Join(home, ".tabbedbox")
}

// DefaultConfigPath returns the default path for the application config file.
func DefaultConfigPath() string {
	return filepath.Join(DefaultConfigDir(), "config.json")
}

// saveJSON writes v as indented JSON, creating parent directories.
func saveJSON(path string, v any) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// loadJSON decodes the file at path into v. found is false, with no error,
// when the file does not exist; v is then left untouched.
func loadJSON(path string, v any) (found bool, err error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to read %s: %w", path, err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return true, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return true, nil
}

// SaveAppConfig writes the config as JSON.
func SaveAppConfig(path string, config model.AppConfig) error {
	return saveJSON(path, config)
}

// LoadAppConfig reads the config at path. A missing file gives
// DefaultAppConfig; fields absent from the file keep their defaults.
func LoadAppConfig(path string) (model.AppConfig, error) {
	config := model.DefaultAppConfig()
	if _, err := loadJSON(path, &config); err != nil {
		return model.AppConfig{}, err
	}
	if config.RecentOutputs == nil {
		config.RecentOutputs = []string{}
	}
	return config, nil
}

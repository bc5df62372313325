package project

import (
	"fmt"
	"path/filepath"

	"github.com/piwi3910/tabbedbox/internal/model"
)

func DefaultInventoryPath() string {
	return filepath.Join(DefaultConfigDir(), "inventory.json")
}

func SaveInventory(path string, inv model.Inventory) error {
	return saveJSON(path, inv)
}

// LoadInventory reads the tools and stock sheets at path. A missing file
// is created holding DefaultInventory.
func LoadInventory(path string) (model.Inventory, error) {
	var inv model.Inventory
	found, err := loadJSON(path, &inv)
	if err != nil {
		return model.Inventory{}, err
	}
	if !found {
		inv = model.DefaultInventory()
		return inv, SaveInventory(path, inv)
	}
	return inv, nil
}

// LoadOrCreateInventory loads the inventory from DefaultInventoryPath and
// returns that path for saving changes back.
func LoadOrCreateInventory() (model.Inventory, string, error) {
	path := DefaultInventoryPath()
	inv, err := LoadInventory(path)
	return inv, path, err
}

func ExportInventory(path string, inv model.Inventory) error {
	return SaveInventory(path, inv)
}

// ImportInventory merges the inventory file at path into existing. On
// error existing is returned unchanged.
func ImportInventory(path string, existing model.Inventory) (model.Inventory, error) {
	var imported model.Inventory
	found, err := loadJSON(path, &imported)
	if err != nil {
		return existing, err
	}
	if !found {
		return existing, fmt.Errorf("inventory file %s not found", path)
	}
	return MergeInventory(existing, imported), nil
}

// MergeInventory adds the tools and stock sheets of imported whose IDs
// existing lacks, keeping existing's order first.
func MergeInventory(existing, imported model.Inventory) model.Inventory {
	seen := make(map[string]bool, len(existing.Tools)+len(existing.Stocks))
	for _, t := range existing.Tools {
		seen["tool:"+t.ID] = true
	}
	for _, s := range existing.Stocks {
		seen["stock:"+s.ID] = true
	}
	for _, t := range imported.Tools {
		if key := "tool:" + t.ID; !seen[key] {
			seen[key] = true
			existing.Tools = append(existing.Tools, t)
		}
	}
	for _, s := range imported.Stocks {
		if key := "stock:" + s.ID; !seen[key] {
			seen[key] = true
			existing.Stocks = append(existing.Stocks, s)
		}
	}
	return existing
}

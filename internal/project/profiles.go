package project

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/piwi3910/tabbedbox/internal/model"
)

// DefaultProfilesPath returns the default file path for custom profiles.
func DefaultProfilesPath() string {
	return filepath.Join(DefaultConfigDir(), "profiles.json")
}

// SaveCustomProfiles saves custom profiles to a JSON file.
func SaveCustomProfiles(path string, profiles []model.GCodeProfile) error {
	return saveJSON(path, profiles)
}

// LoadCustomProfiles reads the user's G-code profiles. A missing file gives
// an empty list. Loaded profiles are never built-in.
func LoadCustomProfiles(path string) ([]model.GCodeProfile, error) {
	profiles := []model.GCodeProfile{}
	if _, err := loadJSON(path, &profiles); err != nil {
		return nil, err
	}
	if profiles == nil {
		profiles = []model.GCodeProfile{}
	}
	for i := range profiles {
		profiles[i].IsBuiltIn = false
	}
	return profiles, nil
}

// LoadCustomProfilesFromDefault loads custom profiles from the default path.
func LoadCustomProfilesFromDefault() ([]model.GCodeProfile, error) {
	return LoadCustomProfiles(DefaultProfilesPath())
}

// FindProfile looks a profile up by name, custom profiles first so a user
// profile can shadow a built-in one.
func FindProfile(name string, custom []model.GCodeProfile) (model.GCodeProfile, bool) {
	for _, p := range custom {
		if p.Name == name {
			return p, true
		}
	}
	for _, p := range model.GCodeProfiles {
		if p.Name == name {
			return p, true
		}
	}
	return model.GCodeProfile{}, false
}

// ExportProfile writes one profile for sharing.
func ExportProfile(path string, profile model.GCodeProfile) error {
	profile.IsBuiltIn = false
	return saveJSON(path, profile)
}

// ImportProfile reads a single shared profile. It must have a name and
// its motion commands.
func ImportProfile(path string) (model.GCodeProfile, error) {
	var profile model.GCodeProfile
	found, err := loadJSON(path, &profile)
	switch {
	case err != nil:
		return model.GCodeProfile{}, err
	case !found:
		return model.GCodeProfile{}, fmt.Errorf("profile file %s not found", path)
	case profile.Name == "":
		return model.GCodeProfile{}, errors.New("imported profile has no name")
	case profile.RapidMove == "" || profile.FeedMove == "":
		return model.GCodeProfile{}, errors.New("imported profile has no motion commands")
	}
	profile.IsBuiltIn = false
	return profile, nil
}

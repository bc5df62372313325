package model

import (
	"time"

	"github.com/google/uuid"
)

// Preset is a named, reusable set of box options.
type Preset struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	Description string     `json:"description"`
	CreatedAt   string     `json:"created_at"`
	UpdatedAt   string     `json:"updated_at"`
	Options     BoxOptions `json:"options"`
}

// NewPreset captures a copy of the options under a new ID.
func NewPreset(name, description string, opts BoxOptions) Preset {
	now := time.Now().UTC().Format(time.RFC3339)
	return Preset{
		ID:          uuid.New().String()[:8],
		Name:        name,
		Description: description,
		CreatedAt:   now,
		UpdatedAt:   now,
		Options:     copyOptions(opts),
	}
}

// ToOptions returns an independent copy of the preset's options.
func (p Preset) ToOptions() BoxOptions {
	return copyOptions(p.Options)
}

// PresetStore holds a collection of presets.
type PresetStore struct {
	Presets []Preset `json:"presets"`
}

// NewPresetStore creates an empty preset store.
func NewPresetStore() PresetStore {
	return PresetStore{
		Presets: []Preset{},
	}
}

// Add adds a preset, replacing any existing preset with the same name.
func (ps *PresetStore) Add(p Preset) {
	if existing := ps.FindByName(p.Name); existing != nil {
		p.ID = existing.ID
		p.CreatedAt = existing.CreatedAt
		*existing = p
		return
	}
	ps.Presets = append(ps.Presets, p)
}

// Remove removes a preset by ID or name. Returns true if found and removed.
func (ps *PresetStore) Remove(key string) bool {
	for i, p := range ps.Presets {
		if p.ID == key || p.Name == key {
			ps.Presets = append(ps.Presets[:i], ps.Presets[i+1:]...)
			return true
		}
	}
	return false
}

// FindByID returns a pointer to the preset with the given ID, or nil.
func (ps *PresetStore) FindByID(id string) *Preset {
	for i := range ps.Presets {
		if ps.Presets[i].ID == id {
			return &ps.Presets[i]
		}
	}
	return nil
}

// FindByName returns a pointer to the first preset with the given name, or nil.
func (ps *PresetStore) FindByName(name string) *Preset {
	for i := range ps.Presets {
		if ps.Presets[i].Name == name {
			return &ps.Presets[i]
		}
	}
	return nil
}

// Names returns the preset names in store order.
func (ps *PresetStore) Names() []string {
	names := make([]string, len(ps.Presets))
	for i, p := range ps.Presets {
		names[i] = p.Name
	}
	return names
}

// copyOptions detaches the Schroff pointer so presets never share state.
func copyOptions(o BoxOptions) BoxOptions {
	if o.Schroff != nil {
		sc := *o.Schroff
		o.Schroff = &sc
	}
	return o
}

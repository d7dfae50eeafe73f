package config

import (
	"fmt"

	"github.com/vovakirdan/tui-rain/internal/core"
)

// Preset is a named bundle of density and speed settings.
type Preset string

const (
	PresetDrizzle Preset = "drizzle"
	PresetNormal  Preset = "normal"
	PresetStorm   Preset = "storm"
	PresetSync    Preset = "sync"
)

// presetValues holds the values a preset overrides.
type presetValues struct {
	density  float64
	minSpeed float64
	maxSpeed float64
	sync     bool
	notes    string
}

var presets = map[Preset]presetValues{
	PresetDrizzle: {density: 0.005, minSpeed: 0.15, maxSpeed: 0.5, notes: "sparse, slow drops"},
	PresetNormal:  {density: core.DefaultDensity, minSpeed: core.DefaultMinSpeed, maxSpeed: core.DefaultMaxSpeed, notes: "the defaults"},
	PresetStorm:   {density: 0.08, minSpeed: 0.6, maxSpeed: 1.0, notes: "dense, fast drops"},
	PresetSync:    {density: core.DefaultDensity, minSpeed: 1.0, maxSpeed: 1.0, sync: true, notes: "every drop falls one row per tick"},
}

// Presets returns all preset names in display order.
func Presets() []Preset {
	return []Preset{PresetDrizzle, PresetNormal, PresetStorm, PresetSync}
}

// Describe returns a one-line summary of the preset.
func (p Preset) Describe() string {
	return presets[p].notes
}

// ApplyPreset overwrites the density and speed options with the preset's
// values. Options marked with SetExplicit keep the user's value.
func ApplyPreset(o *Options, p Preset) error {
	vals, ok := presets[p]
	if !ok {
		return &core.ConfigError{Field: "preset", Reason: fmt.Sprintf("unknown preset %q", p)}
	}
	if !o.IsExplicit(OptDensity) {
		o.Density = vals.density
	}
	if !o.IsExplicit(OptMinSpeed) {
		o.MinSpeed = vals.minSpeed
	}
	if !o.IsExplicit(OptMaxSpeed) {
		o.MaxSpeed = vals.maxSpeed
	}
	o.Sync = o.Sync || vals.sync
	return nil
}

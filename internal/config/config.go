// Package config resolves runtime options from environment variables and
// command-line flags into a validated core.Config.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"

	"github.com/vovakirdan/tui-rain/internal/core"
	"github.com/vovakirdan/tui-rain/internal/glyph"
	"github.com/vovakirdan/tui-rain/internal/palette"
)

// MaxFPS caps the frame rate.
const MaxFPS = 240

// Options are the user-facing knobs, before validation.
// Every field can be set from the environment; cmd/rain binds flags over them.
type Options struct {
	Color     string  `env:"RAIN_COLOR"      envDefault:"green"`
	Mode      string  `env:"RAIN_MODE"`
	Charset   string  `env:"RAIN_CHARSET"    envDefault:"printable"`
	Chars     string  `env:"RAIN_CHARS"`
	Preset    string  `env:"RAIN_PRESET"`
	FPS       int     `env:"RAIN_FPS"        envDefault:"25"`
	Density   float64 `env:"RAIN_DENSITY"    envDefault:"0.02"`
	MinSpeed  float64 `env:"RAIN_MIN_SPEED"  envDefault:"0.3"`
	MaxSpeed  float64 `env:"RAIN_MAX_SPEED"  envDefault:"1.0"`
	MinLength int     `env:"RAIN_MIN_LENGTH" envDefault:"4"`
	MaxLength int     `env:"RAIN_MAX_LENGTH" envDefault:"0"`
	Flicker   float64 `env:"RAIN_FLICKER"    envDefault:"0.02"`
	Sync      bool    `env:"RAIN_SYNC"`
	Seed      int64   `env:"RAIN_SEED"`
	Renderer  string  `env:"RAIN_RENDERER"   envDefault:"tui"`

	// explicit holds the names of options the user set, keyed by flag name.
	explicit map[string]bool
}

// Names of the options a preset may override. They double as flag names.
const (
	OptDensity  = "density"
	OptMinSpeed = "min-speed"
	OptMaxSpeed = "max-speed"
)

// envOptions maps environment keys onto the preset-controlled options.
var envOptions = map[string]string{
	"RAIN_DENSITY":   OptDensity,
	"RAIN_MIN_SPEED": OptMinSpeed,
	"RAIN_MAX_SPEED": OptMaxSpeed,
}

// PresetOptions returns the options a preset overrides unless set explicitly.
func PresetOptions() []string {
	return []string{OptDensity, OptMinSpeed, OptMaxSpeed}
}

// SetExplicit marks an option as chosen by the user so presets leave it alone.
func (o *Options) SetExplicit(name string) {
	if o.explicit == nil {
		o.explicit = make(map[string]bool)
	}
	o.explicit[name] = true
}

// IsExplicit reports whether the user chose the named option.
func (o Options) IsExplicit(name string) bool {
	return o.explicit[name]
}

// DefaultOptions returns the tag defaults, ignoring the process environment.
func DefaultOptions() Options {
	var o Options
	// Defaults only; an empty environment cannot fail to parse.
	_ = env.ParseWithOptions(&o, env.Options{Environment: map[string]string{}})
	return o
}

// FromEnv loads options from the process environment.
func FromEnv() (Options, error) {
	var o Options
	explicit := make(map[string]bool)
	err := env.ParseWithOptions(&o, env.Options{
		OnSet: func(key string, _ any, isDefault bool) {
			if name, ok := envOptions[key]; ok && !isDefault {
				explicit[name] = true
			}
		},
	})
	if err != nil {
		return o, fmt.Errorf("config: parse env: %w", err)
	}
	for name := range explicit {
		o.SetExplicit(name)
	}
	return o, nil
}

// Resolve applies the preset to the options not set explicitly, looks up the theme and character set, and
// returns a validated core.Config. Bad values yield *core.ConfigError.
func (o Options) Resolve() (core.Config, error) {
	if o.Preset != "" {
		if err := ApplyPreset(&o, Preset(strings.ToLower(o.Preset))); err != nil {
			return core.Config{}, err
		}
	}

	base, mode, err := o.resolveColor()
	if err != nil {
		return core.Config{}, err
	}
	glyphs, err := o.resolveGlyphs()
	if err != nil {
		return core.Config{}, err
	}
	if o.FPS <= 0 || o.FPS > MaxFPS {
		return core.Config{}, &core.ConfigError{
			Field:  "fps",
			Reason: fmt.Sprintf("out of range (1-%d): got %d", MaxFPS, o.FPS),
		}
	}

	cfg := core.Config{
		BaseColor:     base,
		ColorMode:     mode,
		Glyphs:        glyphs,
		MinSpeed:      o.MinSpeed,
		MaxSpeed:      o.MaxSpeed,
		Density:       o.Density,
		FrameInterval: time.Second / time.Duration(o.FPS),
		MinLength:     o.MinLength,
		MaxLength:     o.MaxLength,
		FlickerChance: o.Flicker,
		Sync:          o.Sync,
		Seed:          o.Seed,
	}
	if err := cfg.Validate(); err != nil {
		return core.Config{}, err
	}
	return cfg, nil
}

// resolveColor accepts a theme name or a hex color. An explicit mode
// overrides the theme's own.
func (o Options) resolveColor() (core.Color, core.ColorMode, error) {
	var (
		base core.Color
		mode = core.ColorModeLightness
	)

	if theme, ok := palette.LookupTheme(strings.ToLower(o.Color)); ok {
		base, mode = theme.Base, theme.Mode
	} else {
		c, err := palette.Parse(o.Color)
		if err != nil {
			return base, mode, &core.ConfigError{
				Field:  "color",
				Reason: fmt.Sprintf("%q is neither a theme nor a hex color", o.Color),
			}
		}
		base = c
	}

	if o.Mode != "" {
		m, ok := palette.ParseMode(strings.ToLower(o.Mode))
		if !ok {
			return base, mode, &core.ConfigError{
				Field:  "mode",
				Reason: fmt.Sprintf("unknown color mode %q", o.Mode),
			}
		}
		mode = m
	}
	return base, mode, nil
}

// resolveGlyphs prefers a custom character list over a named set.
func (o Options) resolveGlyphs() ([]rune, error) {
	if o.Chars != "" {
		return glyph.Normalize([]rune(o.Chars))
	}
	set, ok := glyph.Builtin(strings.ToLower(o.Charset))
	if !ok {
		return nil, &core.ConfigError{
			Field:  "charset",
			Reason: fmt.Sprintf("unknown character set %q", o.Charset),
		}
	}
	return set, nil
}

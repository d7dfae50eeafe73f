package config

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/tui-rain/internal/core"
	"github.com/vovakirdan/tui-rain/internal/glyph"
)

func TestDefaultOptions(t *testing.T) {
	o := DefaultOptions()

	assert.Equal(t, "green", o.Color)
	assert.Equal(t, glyph.DefaultSet, o.Charset)
	assert.Equal(t, core.DefaultFPS, o.FPS)
	assert.InDelta(t, core.DefaultDensity, o.Density, 1e-9)
	assert.InDelta(t, core.DefaultMinSpeed, o.MinSpeed, 1e-9)
	assert.InDelta(t, core.DefaultMaxSpeed, o.MaxSpeed, 1e-9)
	assert.Equal(t, core.DefaultMinLength, o.MinLength)
	assert.Equal(t, "tui", o.Renderer)
}

func TestDefaultOptionsIgnoreEnvironment(t *testing.T) {
	t.Setenv("RAIN_FPS", "60")
	assert.Equal(t, core.DefaultFPS, DefaultOptions().FPS)
}

func TestDefaultOptionsResolve(t *testing.T) {
	cfg, err := DefaultOptions().Resolve()
	require.NoError(t, err)

	assert.Equal(t, core.RGB(0, 255, 0), cfg.BaseColor)
	assert.Equal(t, core.ColorModeLightness, cfg.ColorMode)
	assert.Equal(t, time.Second/25, cfg.FrameInterval)
	assert.Len(t, cfg.Glyphs, 94)
}

func TestFromEnv(t *testing.T) {
	t.Setenv("RAIN_COLOR", "#ff8800")
	t.Setenv("RAIN_CHARSET", "binary")
	t.Setenv("RAIN_FPS", "50")
	t.Setenv("RAIN_DENSITY", "0.5")
	t.Setenv("RAIN_SYNC", "true")
	t.Setenv("RAIN_SEED", "42")
	t.Setenv("RAIN_RENDERER", "ansi")

	o, err := FromEnv()
	require.NoError(t, err)
	assert.Equal(t, "ansi", o.Renderer)

	cfg, err := o.Resolve()
	require.NoError(t, err)
	assert.Equal(t, core.RGB(0xff, 0x88, 0x00), cfg.BaseColor)
	assert.Equal(t, []rune("01"), cfg.Glyphs)
	assert.Equal(t, time.Second/50, cfg.FrameInterval)
	assert.InDelta(t, 0.5, cfg.Density, 1e-9)
	assert.True(t, cfg.Sync)
	assert.Equal(t, int64(42), cfg.Seed)
}

func TestFromEnvError(t *testing.T) {
	t.Setenv("RAIN_FPS", "fast")

	_, err := FromEnv()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "config: parse env:")
}

func TestResolveErrors(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Options)
		field  string
	}{
		{"unknown color", func(o *Options) { o.Color = "chartreuse-ish" }, "color"},
		{"unknown mode", func(o *Options) { o.Mode = "sparkle" }, "mode"},
		{"unknown charset", func(o *Options) { o.Charset = "klingon" }, "charset"},
		{"blank custom chars", func(o *Options) { o.Chars = "  \t" }, "glyphs"},
		{"zero fps", func(o *Options) { o.FPS = 0 }, "fps"},
		{"huge fps", func(o *Options) { o.FPS = MaxFPS + 1 }, "fps"},
		{"negative density", func(o *Options) { o.Density = -0.1 }, "density"},
		{"inverted speeds", func(o *Options) { o.MinSpeed, o.MaxSpeed = 1, 0.5 }, "speed"},
		{"unknown preset", func(o *Options) { o.Preset = "hurricane" }, "preset"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			o := DefaultOptions()
			tc.mutate(&o)

			_, err := o.Resolve()
			require.Error(t, err)

			var cfgErr *core.ConfigError
			require.True(t, errors.As(err, &cfgErr), "expected ConfigError, got %T: %v", err, err)
			assert.Equal(t, tc.field, cfgErr.Field)
		})
	}
}

func TestResolveTheme(t *testing.T) {
	o := DefaultOptions()
	o.Color = "Rainbow"

	cfg, err := o.Resolve()
	require.NoError(t, err)
	assert.Equal(t, core.ColorModeRainbow, cfg.ColorMode)

	o.Mode = "saturation"
	cfg, err = o.Resolve()
	require.NoError(t, err)
	assert.Equal(t, core.ColorModeSaturation, cfg.ColorMode, "explicit mode overrides the theme")
}

func TestResolveCustomChars(t *testing.T) {
	o := DefaultOptions()
	o.Charset = "klingon" // ignored when Chars is set
	o.Chars = "abca"

	cfg, err := o.Resolve()
	require.NoError(t, err)
	assert.Equal(t, []rune("abc"), cfg.Glyphs)
}

func TestApplyPreset(t *testing.T) {
	for _, p := range Presets() {
		t.Run(string(p), func(t *testing.T) {
			o := DefaultOptions()
			o.Preset = string(p)

			cfg, err := o.Resolve()
			require.NoError(t, err)
			assert.NotEmpty(t, p.Describe())
			assert.LessOrEqual(t, cfg.MinSpeed, cfg.MaxSpeed)
		})
	}

	o := DefaultOptions()
	require.NoError(t, ApplyPreset(&o, PresetStorm))
	assert.Greater(t, o.Density, core.DefaultDensity)

	o = DefaultOptions()
	require.NoError(t, ApplyPreset(&o, PresetSync))
	assert.True(t, o.Sync)
}

func TestPresetKeepsExplicitOptions(t *testing.T) {
	o := DefaultOptions()
	o.Preset = string(PresetStorm)
	o.Density = 0.5
	o.SetExplicit(OptDensity)

	cfg, err := o.Resolve()
	require.NoError(t, err)
	assert.InDelta(t, 0.5, cfg.Density, 1e-9)
	// Options left alone still come from the preset
	assert.InDelta(t, 0.6, cfg.MinSpeed, 1e-9)
	assert.InDelta(t, 1.0, cfg.MaxSpeed, 1e-9)
}

func TestPresetOverridesImplicitOptions(t *testing.T) {
	o := DefaultOptions()
	o.Preset = string(PresetStorm)
	o.Density = 0.5

	cfg, err := o.Resolve()
	require.NoError(t, err)
	assert.InDelta(t, 0.08, cfg.Density, 1e-9)
}

func TestFromEnvMarksExplicitOptions(t *testing.T) {
	t.Setenv("RAIN_PRESET", "drizzle")
	t.Setenv("RAIN_MAX_SPEED", "0.9")

	o, err := FromEnv()
	require.NoError(t, err)
	assert.True(t, o.IsExplicit(OptMaxSpeed))
	assert.False(t, o.IsExplicit(OptDensity))
	assert.False(t, o.IsExplicit(OptMinSpeed))

	cfg, err := o.Resolve()
	require.NoError(t, err)
	assert.InDelta(t, 0.9, cfg.MaxSpeed, 1e-9)
	assert.InDelta(t, 0.15, cfg.MinSpeed, 1e-9)
	assert.InDelta(t, 0.005, cfg.Density, 1e-9)
}

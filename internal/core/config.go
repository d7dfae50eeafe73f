package core

import (
	"fmt"
	"time"
)

// ColorMode selects how trail colors are derived from the base color.
type ColorMode int

const (
	ColorModeLightness  ColorMode = iota // Trail loses lightness with distance from the head
	ColorModeSaturation                  // Trail loses saturation with distance from the head
	ColorModeRainbow                     // Trail hue rotates with distance from the head
)

// String returns the flag name of the color mode.
func (m ColorMode) String() string {
	switch m {
	case ColorModeLightness:
		return "lightness"
	case ColorModeSaturation:
		return "saturation"
	case ColorModeRainbow:
		return "rainbow"
	default:
		return "unknown"
	}
}

// Default configuration values.
const (
	DefaultFPS           = 25
	DefaultDensity       = 0.02
	DefaultMinSpeed      = 0.3
	DefaultMaxSpeed      = 1.0
	DefaultMinLength     = 4
	DefaultFlickerChance = 0.02

	// MaxLengthOffset is subtracted from the screen height to get the longest
	// trail when MaxLength is left at zero.
	MaxLengthOffset = 4
)

// Config is the immutable snapshot of animation parameters.
// It is built once at startup and passed by value into the engine.
type Config struct {
	BaseColor     Color         // Base hue of the rain
	ColorMode     ColorMode     // Trail coloring algorithm
	Glyphs        []rune        // Characters drawn by the glyph source
	MinSpeed      float64       // Slowest drop, in rows per tick (0, 1]
	MaxSpeed      float64       // Fastest drop, in rows per tick (0, 1]
	Density       float64       // Chance per tick that a dead column respawns [0, 1]
	FrameInterval time.Duration // Target time between frames
	MinLength     int           // Shortest trail
	MaxLength     int           // Longest trail (0 = screen height - MaxLengthOffset)
	FlickerChance float64       // Chance per cell per tick that a glyph is replaced
	Sync          bool          // All drops fall at MaxSpeed
	Seed          int64         // RNG seed (0 = time based)
}

// DefaultConfig returns a Config with sensible defaults and an alphanumeric glyph set.
func DefaultConfig() Config {
	return Config{
		BaseColor:     RGB(0, 255, 0),
		ColorMode:     ColorModeLightness,
		Glyphs:        []rune("0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz"),
		MinSpeed:      DefaultMinSpeed,
		MaxSpeed:      DefaultMaxSpeed,
		Density:       DefaultDensity,
		FrameInterval: time.Second / DefaultFPS,
		MinLength:     DefaultMinLength,
		FlickerChance: DefaultFlickerChance,
	}
}

// ConfigError reports an invalid configuration value.
// It is only ever returned at construction time, never during a run.
type ConfigError struct {
	Field  string
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("invalid config: %s: %s", e.Field, e.Reason)
}

// Validate checks the configuration for validity.
func (c Config) Validate() error {
	if len(c.Glyphs) == 0 {
		return &ConfigError{Field: "glyphs", Reason: "character set cannot be empty"}
	}
	if c.MinSpeed <= 0 || c.MaxSpeed <= 0 {
		return &ConfigError{Field: "speed", Reason: fmt.Sprintf("speeds must be positive: got %.2f-%.2f", c.MinSpeed, c.MaxSpeed)}
	}
	if c.MaxSpeed > 1 {
		return &ConfigError{Field: "speed", Reason: fmt.Sprintf("max speed cannot exceed one row per tick: got %.2f", c.MaxSpeed)}
	}
	if c.MinSpeed > c.MaxSpeed {
		return &ConfigError{Field: "speed", Reason: fmt.Sprintf("min speed %.2f exceeds max speed %.2f", c.MinSpeed, c.MaxSpeed)}
	}
	if c.Density < 0 || c.Density > 1 {
		return &ConfigError{Field: "density", Reason: fmt.Sprintf("out of range (0-1): got %.3f", c.Density)}
	}
	if c.FrameInterval <= 0 {
		return &ConfigError{Field: "frame interval", Reason: "must be positive"}
	}
	if c.MinLength < 0 {
		return &ConfigError{Field: "length", Reason: fmt.Sprintf("min length cannot be negative: got %d", c.MinLength)}
	}
	if c.MaxLength != 0 && c.MaxLength < c.MinLength {
		return &ConfigError{Field: "length", Reason: fmt.Sprintf("max length %d is below min length %d", c.MaxLength, c.MinLength)}
	}
	if c.FlickerChance < 0 || c.FlickerChance > 1 {
		return &ConfigError{Field: "flicker", Reason: fmt.Sprintf("out of range (0-1): got %.3f", c.FlickerChance)}
	}
	return nil
}

// LengthRange returns the trail length bounds for a screen of the given height.
// The result never exceeds the height and max is never below min.
func (c Config) LengthRange(height int) (lo, hi int) {
	hi = c.MaxLength
	if hi == 0 {
		hi = Max(height-MaxLengthOffset, c.MinLength+1)
	}
	lo = Clamp(c.MinLength, 0, Max(height, 0))
	hi = Clamp(hi, lo, Max(height, 0))
	return lo, hi
}

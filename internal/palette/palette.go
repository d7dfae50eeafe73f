// Package palette maps cell intensities to display colors.
package palette

import (
	"fmt"
	"math"
	"strings"

	colorful "github.com/lucasb-eyer/go-colorful"

	"github.com/vovakirdan/tui-rain/internal/core"
)

// headWhiteShift is how far the head color is blended toward white.
const headWhiteShift = 0.75

// Palette holds the precomputed colors for one base color and mode.
type Palette struct {
	base  core.Color
	mode  core.ColorMode
	head  core.Color
	trail [core.TrailLevels + 1]core.Color // index 0 unused
}

// New creates a palette for the given base color and mode.
func New(base core.Color, mode core.ColorMode) *Palette {
	p := &Palette{base: base, mode: mode}
	p.head = Compute(core.Head, base, mode)
	for level := 1; level <= core.TrailLevels; level++ {
		p.trail[level] = Compute(core.Trail(level), base, mode)
	}
	return p
}

// Base returns the palette's base color.
func (p *Palette) Base() core.Color {
	return p.base
}

// Mode returns the palette's color mode.
func (p *Palette) Mode() core.ColorMode {
	return p.mode
}

// Color returns the display color for an intensity.
// Empty cells have no color and map to the zero Color.
func (p *Palette) Color(in core.Intensity) core.Color {
	switch in.Kind {
	case core.IntensityHead:
		return p.head
	case core.IntensityTrail:
		return p.trail[core.Clamp(int(in.Level), 1, core.TrailLevels)]
	default:
		return core.Color{}
	}
}

// IntensityToColor maps an intensity onto a shade of base using the
// default lightness mode.
func IntensityToColor(in core.Intensity, base core.Color) core.Color {
	return Compute(in, base, core.ColorModeLightness)
}

// Compute maps an intensity onto a shade of base for the given mode.
// It is a pure function; Palette caches its results.
func Compute(in core.Intensity, base core.Color, mode core.ColorMode) core.Color {
	c := toColorful(base)
	switch in.Kind {
	case core.IntensityHead:
		if mode == core.ColorModeRainbow {
			return core.ColorWhite
		}
		return fromColorful(c.BlendRgb(colorful.Color{R: 1, G: 1, B: 1}, headWhiteShift))
	case core.IntensityTrail:
		// Distance from the head as a proportion in (0, 1]
		p := float64(core.Clamp(int(in.Level), 1, core.TrailLevels)) / core.TrailLevels
		h, s, l := c.Hsl()
		switch mode {
		case core.ColorModeSaturation:
			return fromColorful(colorful.Hsl(h, s*math.Max(1-p, 0), l))
		case core.ColorModeRainbow:
			return fromColorful(colorful.Hsl(p*360, 1, 0.5))
		default:
			return fromColorful(colorful.Hsl(h, s, math.Max(0.9-0.8*p, 0.1)))
		}
	default:
		return core.Color{}
	}
}

// Parse reads a "#rrggbb" hex color.
func Parse(s string) (core.Color, error) {
	if !strings.HasPrefix(s, "#") {
		s = "#" + s
	}
	c, err := colorful.Hex(s)
	if err != nil {
		return core.Color{}, fmt.Errorf("palette: invalid color %q: %w", s, err)
	}
	return fromColorful(c), nil
}

func toColorful(c core.Color) colorful.Color {
	return colorful.Color{
		R: float64(c.R) / 255,
		G: float64(c.G) / 255,
		B: float64(c.B) / 255,
	}
}

func fromColorful(c colorful.Color) core.Color {
	r, g, b := c.Clamped().RGB255()
	return core.RGB(r, g, b)
}

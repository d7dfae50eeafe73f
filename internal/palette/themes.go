package palette

import (
	"sort"

	"github.com/vovakirdan/tui-rain/internal/core"
)

// Theme is a named base color and mode.
type Theme struct {
	Name  string
	Base  core.Color
	Mode  core.ColorMode
	Notes string
}

// DefaultTheme is the classic green rain.
const DefaultTheme = "green"

var themes = map[string]Theme{
	"green":  {Name: "green", Base: core.RGB(0, 255, 0), Notes: "classic"},
	"blue":   {Name: "blue", Base: core.RGB(0, 150, 255)},
	"purple": {Name: "purple", Base: core.RGB(128, 0, 255)},
	"red":    {Name: "red", Base: core.RGB(255, 0, 0)},
	"yellow": {Name: "yellow", Base: core.RGB(255, 220, 0)},
	"amber":  {Name: "amber", Base: core.RGB(255, 191, 0)},
	"cyan":   {Name: "cyan", Base: core.RGB(0, 255, 255)},
	"pink":   {Name: "pink", Base: core.RGB(255, 20, 147)},
	"white":  {Name: "white", Base: core.RGB(255, 255, 255), Mode: core.ColorModeSaturation},
	"rainbow": {
		Name:  "rainbow",
		Base:  core.RGB(255, 0, 0),
		Mode:  core.ColorModeRainbow,
		Notes: "hue rotates along the trail",
	},
}

// LookupTheme returns a theme by name.
func LookupTheme(name string) (Theme, bool) {
	t, ok := themes[name]
	return t, ok
}

// Themes returns all themes sorted by name.
func Themes() []Theme {
	result := make([]Theme, 0, len(themes))
	for _, t := range themes {
		result = append(result, t)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].Name < result[j].Name
	})
	return result
}

// ParseMode reads a color mode name.
func ParseMode(name string) (core.ColorMode, bool) {
	for _, m := range []core.ColorMode{core.ColorModeLightness, core.ColorModeSaturation, core.ColorModeRainbow} {
		if m.String() == name {
			return m, true
		}
	}
	return 0, false
}

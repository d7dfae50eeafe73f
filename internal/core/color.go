package core

import "fmt"

// Color is a 24-bit foreground color for a screen cell.
// Backends downsample it to whatever the terminal supports.
type Color struct {
	R, G, B uint8
}

// Predefined colors.
var (
	ColorBlack = Color{0, 0, 0}
	ColorWhite = Color{255, 255, 255}
)

// RGB creates a color from its components.
func RGB(r, g, b uint8) Color {
	return Color{R: r, G: g, B: b}
}

// Hex returns the color as a "#rrggbb" string.
func (c Color) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// String implements fmt.Stringer.
func (c Color) String() string {
	return c.Hex()
}

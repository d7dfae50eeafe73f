// Package core provides fundamental types and utilities for the rain engine.
// It contains no external dependencies (especially no terminal libraries) to
// keep the simulation and compositing pure and testable.
package core

// Size is a terminal size in character cells.
type Size struct {
	Width  int
	Height int
}

// Valid reports whether the size can hold at least one cell.
func (s Size) Valid() bool {
	return s.Width >= 1 && s.Height >= 1
}

// Contains returns true if the cell (row, col) is inside the size.
func (s Size) Contains(row, col int) bool {
	return row >= 0 && row < s.Height && col >= 0 && col < s.Width
}

// Clamp restricts a value to be within [min, max].
func Clamp(val, min, max int) int {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}

// Max returns the larger of two integers.
func Max(a, b int) int {
	if a > b {
		return a
	}
	return b
}

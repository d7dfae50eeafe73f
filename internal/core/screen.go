package core

import (
	"strings"
)

// TrailLevels is the number of distinct brightness steps in a trail.
// Level 1 is next to the head, level TrailLevels is the faintest.
const TrailLevels = 8

// IntensityKind classifies how bright a cell is drawn.
type IntensityKind uint8

const (
	IntensityEmpty IntensityKind = iota
	IntensityHead
	IntensityTrail
)

// Intensity is the brightness of a cell. Level is only used for trails.
type Intensity struct {
	Kind  IntensityKind
	Level uint8
}

// Predefined intensities.
var (
	Empty = Intensity{Kind: IntensityEmpty}
	Head  = Intensity{Kind: IntensityHead}
)

// Trail returns a trail intensity clamped to [1, TrailLevels].
func Trail(level int) Intensity {
	return Intensity{Kind: IntensityTrail, Level: uint8(Clamp(level, 1, TrailLevels))}
}

// TrailLevel maps a distance behind the head (1..length) onto a trail level.
func TrailLevel(distance, length int) int {
	if length <= 0 {
		return 1
	}
	return Clamp(1+(distance-1)*TrailLevels/length, 1, TrailLevels)
}

// IsEmpty reports whether nothing is drawn in the cell.
func (i Intensity) IsEmpty() bool {
	return i.Kind == IntensityEmpty
}

// Cell is a single glyph position in the screen grid.
type Cell struct {
	Glyph     rune
	Intensity Intensity
}

// EmptyCell is the cleared state of every cell.
var EmptyCell = Cell{Glyph: ' ', Intensity: Empty}

// DrawCommand updates one terminal cell. Blank commands clear the cell;
// their Glyph is a space and Color is unset.
type DrawCommand struct {
	Row   int
	Col   int
	Glyph rune
	Color Color
	Bold  bool
	Blank bool
}

// Frame is the unit handed to a terminal backend each tick.
type Frame struct {
	Commands     []DrawCommand
	CursorHidden bool
	// Reset asks the backend to clear the whole terminal before applying
	// Commands. Set on the first frame after the screen was (re)allocated.
	Reset bool
	// Width and Height are the dimensions the frame was composed for.
	Width  int
	Height int
}

// ColorFunc maps a non-empty intensity to a display color.
type ColorFunc func(Intensity) Color

// Screen is a double-buffered 2D cell grid. The simulation writes the current
// frame, and Diff compares it against the previous one.
type Screen struct {
	width   int
	height  int
	cur     [][]Cell
	prev    [][]Cell
	invalid bool
}

// NewScreen creates a new screen buffer with the given dimensions.
func NewScreen(width, height int) *Screen {
	s := &Screen{
		width:  Max(width, 0),
		height: Max(height, 0),
	}
	s.allocate()
	return s
}

// allocate creates both cell grids, cleared.
func (s *Screen) allocate() {
	s.cur = newGrid(s.width, s.height)
	s.prev = newGrid(s.width, s.height)
	s.invalid = true
}

func newGrid(width, height int) [][]Cell {
	g := make([][]Cell, height)
	for y := range g {
		g[y] = make([]Cell, width)
		for x := range g[y] {
			g[y][x] = EmptyCell
		}
	}
	return g
}

// Width returns the screen width in characters.
func (s *Screen) Width() int {
	return s.width
}

// Height returns the screen height in characters.
func (s *Screen) Height() int {
	return s.height
}

// Size returns the screen dimensions.
func (s *Screen) Size() Size {
	return Size{Width: s.width, Height: s.height}
}

// Resize reallocates the screen when the dimensions change.
// Unlike a plain buffer, no content is preserved: both frames are reset.
func (s *Screen) Resize(width, height int) {
	if width == s.width && height == s.height {
		return
	}
	s.width = Max(width, 0)
	s.height = Max(height, 0)
	s.allocate()
}

// Clear resets the current frame to empty cells.
func (s *Screen) Clear() {
	for y := range s.cur {
		for x := range s.cur[y] {
			s.cur[y][x] = EmptyCell
		}
	}
}

// Set places a cell in the current frame.
// Out-of-bounds coordinates are silently ignored.
func (s *Screen) Set(row, col int, c Cell) {
	if !s.Size().Contains(row, col) {
		return
	}
	s.cur[row][col] = c
}

// Get returns the cell at the given position of the current frame.
// Returns EmptyCell for out-of-bounds coordinates.
func (s *Screen) Get(row, col int) Cell {
	if !s.Size().Contains(row, col) {
		return EmptyCell
	}
	return s.cur[row][col]
}

// Previous returns the cell at the given position of the last diffed frame.
func (s *Screen) Previous(row, col int) Cell {
	if !s.Size().Contains(row, col) {
		return EmptyCell
	}
	return s.prev[row][col]
}

// Invalidate forces the next Diff to repaint every non-empty cell and to
// request a terminal reset.
func (s *Screen) Invalidate() {
	s.invalid = true
}

// Diff compares the current frame with the previous one and returns the
// commands needed to turn the previous terminal state into the current one,
// in row-major order. The current frame becomes the previous frame.
func (s *Screen) Diff(color ColorFunc) Frame {
	f := Frame{CursorHidden: true, Reset: s.invalid, Width: s.width, Height: s.height}
	for y := 0; y < s.height; y++ {
		for x := 0; x < s.width; x++ {
			c := s.cur[y][x]
			if !s.invalid && c == s.prev[y][x] {
				continue
			}
			if c.Intensity.IsEmpty() {
				// After a reset the terminal is already blank.
				if s.invalid {
					continue
				}
				f.Commands = append(f.Commands, DrawCommand{Row: y, Col: x, Glyph: ' ', Blank: true})
				continue
			}
			f.Commands = append(f.Commands, DrawCommand{
				Row:   y,
				Col:   x,
				Glyph: c.Glyph,
				Color: color(c.Intensity),
				Bold:  c.Intensity.Kind == IntensityHead,
			})
		}
	}
	s.cur, s.prev = s.prev, s.cur
	s.invalid = false
	return f
}

// String converts the current frame to text, one line per row.
func (s *Screen) String() string {
	var sb strings.Builder
	sb.Grow(s.width*s.height + s.height)

	for y := 0; y < s.height; y++ {
		if y > 0 {
			sb.WriteRune('\n')
		}
		for x := 0; x < s.width; x++ {
			sb.WriteRune(s.cur[y][x].Glyph)
		}
	}
	return sb.String()
}

// Apply replays a frame onto a plain glyph grid, as a terminal would.
// Commands outside the grid are ignored. Reset clears the grid first.
func Apply(grid [][]rune, f Frame) {
	ApplyCells(grid, f, ' ', func(cmd DrawCommand) rune { return cmd.Glyph })
}

// ApplyCells replays a frame onto a grid of any cell type. Blank commands
// and Reset write blank; every other command writes draw(cmd).
func ApplyCells[T any](grid [][]T, f Frame, blank T, draw func(DrawCommand) T) {
	if f.Reset {
		for y := range grid {
			for x := range grid[y] {
				grid[y][x] = blank
			}
		}
	}
	for _, cmd := range f.Commands {
		if cmd.Row < 0 || cmd.Row >= len(grid) || cmd.Col < 0 || cmd.Col >= len(grid[cmd.Row]) {
			continue
		}
		if cmd.Blank {
			grid[cmd.Row][cmd.Col] = blank
			continue
		}
		grid[cmd.Row][cmd.Col] = draw(cmd)
	}
}

// NewGlyphGrid allocates a blank glyph grid, used as a terminal mirror.
func NewGlyphGrid(width, height int) [][]rune {
	g := make([][]rune, Max(height, 0))
	for y := range g {
		g[y] = []rune(strings.Repeat(" ", Max(width, 0)))
	}
	return g
}

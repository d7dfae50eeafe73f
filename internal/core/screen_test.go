package core

import (
	"strings"
	"testing"
)

// testColor is a stand-in palette: one distinct color per intensity.
func testColor(i Intensity) Color {
	if i.Kind == IntensityHead {
		return ColorWhite
	}
	return RGB(0, 255-uint8(i.Level)*20, 0)
}

// shownCell is what a terminal displays at a position.
type shownCell struct {
	glyph rune
	color Color
}

// applyShown replays a frame onto a displayed-cell grid.
func applyShown(grid [][]shownCell, f Frame) {
	if f.Reset {
		for y := range grid {
			for x := range grid[y] {
				grid[y][x] = shownCell{glyph: ' '}
			}
		}
	}
	for _, cmd := range f.Commands {
		if cmd.Blank {
			grid[cmd.Row][cmd.Col] = shownCell{glyph: ' '}
			continue
		}
		grid[cmd.Row][cmd.Col] = shownCell{glyph: cmd.Glyph, color: cmd.Color}
	}
}

// expectedShown renders what the current frame of s should look like.
func expectedShown(s *Screen, row, col int) shownCell {
	c := s.Previous(row, col) // the current frame after Diff swapped buffers
	if c.Intensity.IsEmpty() {
		return shownCell{glyph: ' '}
	}
	return shownCell{glyph: c.Glyph, color: testColor(c.Intensity)}
}

func newShownGrid(w, h int) [][]shownCell {
	g := make([][]shownCell, h)
	for y := range g {
		g[y] = make([]shownCell, w)
		for x := range g[y] {
			g[y][x] = shownCell{glyph: ' '}
		}
	}
	return g
}

func TestNewScreen(t *testing.T) {
	s := NewScreen(80, 24)

	if s.Width() != 80 {
		t.Errorf("Width() = %d, expected 80", s.Width())
	}
	if s.Height() != 24 {
		t.Errorf("Height() = %d, expected 24", s.Height())
	}

	// Check that it's initialized with empty cells
	for y := 0; y < s.Height(); y++ {
		for x := 0; x < s.Width(); x++ {
			if s.Get(y, x) != EmptyCell {
				t.Fatalf("New screen should be empty, got %+v at (%d, %d)", s.Get(y, x), y, x)
			}
		}
	}
}

func TestScreenSetGet(t *testing.T) {
	s := NewScreen(10, 10)

	c := Cell{Glyph: 'X', Intensity: Head}
	s.Set(5, 5, c)
	if s.Get(5, 5) != c {
		t.Errorf("Get(5, 5) = %+v, expected %+v", s.Get(5, 5), c)
	}

	// Out of bounds should be silent
	s.Set(-1, 0, c)  // Should not panic
	s.Set(100, 0, c) // Should not panic
	s.Set(0, -1, c)  // Should not panic
	s.Set(0, 100, c) // Should not panic

	if s.Get(-1, 0) != EmptyCell {
		t.Error("Out of bounds Get should return EmptyCell")
	}
	if s.Get(0, 100) != EmptyCell {
		t.Error("Out of bounds Get should return EmptyCell")
	}
}

func TestScreenClear(t *testing.T) {
	s := NewScreen(10, 10)
	for y := 0; y < 10; y++ {
		for x := 0; x < 10; x++ {
			s.Set(y, x, Cell{Glyph: 'X', Intensity: Trail(2)})
		}
	}

	s.Clear()

	for y := 0; y < 10; y++ {
		for x := 0; x < 10; x++ {
			if s.Get(y, x) != EmptyCell {
				t.Errorf("After Clear, expected empty cell at (%d, %d), got %+v", y, x, s.Get(y, x))
			}
		}
	}
}

func TestScreenResize(t *testing.T) {
	s := NewScreen(10, 10)
	s.Set(0, 0, Cell{Glyph: 'H', Intensity: Head})
	s.Diff(testColor)
	s.Set(1, 1, Cell{Glyph: 'T', Intensity: Trail(1)})

	s.Resize(8, 4)
	if s.Width() != 8 || s.Height() != 4 {
		t.Fatalf("After resize, dimensions should be 8x4, got %dx%d", s.Width(), s.Height())
	}
	if s.Size() != (Size{Width: 8, Height: 4}) {
		t.Errorf("Size() = %+v, expected 8x4", s.Size())
	}

	// Both frames are reset
	for y := 0; y < 4; y++ {
		for x := 0; x < 8; x++ {
			if s.Get(y, x) != EmptyCell || s.Previous(y, x) != EmptyCell {
				t.Fatalf("Resize should reset both frames, got cell at (%d, %d)", y, x)
			}
		}
	}

	f := s.Diff(testColor)
	if !f.Reset {
		t.Error("First diff after resize should request a terminal reset")
	}
	if f.Width != 8 || f.Height != 4 {
		t.Errorf("Frame size = %dx%d, expected 8x4", f.Width, f.Height)
	}
}

func TestScreenResizeSameSizeKeepsState(t *testing.T) {
	s := NewScreen(5, 5)
	s.Diff(testColor)
	s.Set(2, 2, Cell{Glyph: 'A', Intensity: Head})

	s.Resize(5, 5)

	if s.Get(2, 2).Glyph != 'A' {
		t.Error("Resize to the same dimensions should be a no-op")
	}
}

func TestScreenDiffFirstFrame(t *testing.T) {
	s := NewScreen(4, 3)
	s.Set(1, 2, Cell{Glyph: 'Z', Intensity: Head})

	f := s.Diff(testColor)

	if !f.Reset {
		t.Error("First frame should request a reset")
	}
	if !f.CursorHidden {
		t.Error("Frames should keep the cursor hidden")
	}
	if f.Width != 4 || f.Height != 3 {
		t.Errorf("Frame size = %dx%d, expected 4x3", f.Width, f.Height)
	}
	if len(f.Commands) != 1 {
		t.Fatalf("First frame should only draw non-empty cells, got %d commands", len(f.Commands))
	}
	cmd := f.Commands[0]
	if cmd.Row != 1 || cmd.Col != 2 || cmd.Glyph != 'Z' || cmd.Color != ColorWhite || !cmd.Bold {
		t.Errorf("Unexpected command %+v", cmd)
	}
}

func TestScreenDiffEmitsBlankOnClear(t *testing.T) {
	s := NewScreen(3, 3)
	s.Set(0, 0, Cell{Glyph: 'A', Intensity: Head})
	s.Diff(testColor)

	s.Clear()
	f := s.Diff(testColor)

	if f.Reset {
		t.Error("Second frame should not reset")
	}
	if len(f.Commands) != 1 || !f.Commands[0].Blank || f.Commands[0].Row != 0 || f.Commands[0].Col != 0 {
		t.Fatalf("Expected a single blank at (0, 0), got %+v", f.Commands)
	}
}

func TestScreenDiffIntensityChange(t *testing.T) {
	s := NewScreen(3, 3)
	s.Set(1, 1, Cell{Glyph: 'A', Intensity: Head})
	s.Diff(testColor)

	s.Clear()
	s.Set(1, 1, Cell{Glyph: 'A', Intensity: Trail(1)})
	f := s.Diff(testColor)

	if len(f.Commands) != 1 {
		t.Fatalf("Changing only the intensity should emit one command, got %d", len(f.Commands))
	}
	if f.Commands[0].Bold || f.Commands[0].Color != testColor(Trail(1)) {
		t.Errorf("Unexpected trail command %+v", f.Commands[0])
	}
}

func TestScreenDiffIdempotent(t *testing.T) {
	s := NewScreen(6, 4)
	s.Set(0, 1, Cell{Glyph: 'A', Intensity: Head})
	s.Set(2, 3, Cell{Glyph: 'B', Intensity: Trail(3)})
	s.Diff(testColor)

	// Recompose the same frame
	s.Clear()
	s.Set(0, 1, Cell{Glyph: 'A', Intensity: Head})
	s.Set(2, 3, Cell{Glyph: 'B', Intensity: Trail(3)})
	f := s.Diff(testColor)

	if len(f.Commands) != 0 {
		t.Errorf("Diff of an unchanged frame should be empty, got %d commands", len(f.Commands))
	}
}

func TestScreenDiffReproducesFrame(t *testing.T) {
	const w, h = 7, 5
	s := NewScreen(w, h)
	shown := newShownGrid(w, h)

	// A sequence of frames moving a short drop down two columns
	for tick := 0; tick < 10; tick++ {
		s.Clear()
		for col, offset := range []int{0, 3} {
			head := tick - offset
			for i := 0; i <= 2; i++ {
				it := Head
				if i > 0 {
					it = Trail(i)
				}
				s.Set(head-i, col*4, Cell{Glyph: rune('a' + tick + i), Intensity: it})
			}
		}

		f := s.Diff(testColor)
		applyShown(shown, f)

		for y := 0; y < h; y++ {
			for x := 0; x < w; x++ {
				if shown[y][x] != expectedShown(s, y, x) {
					t.Fatalf("tick %d: shown %+v at (%d, %d), expected %+v", tick, shown[y][x], y, x, expectedShown(s, y, x))
				}
			}
		}
	}
}

func TestScreenDiffRowMajorOrder(t *testing.T) {
	s := NewScreen(3, 3)
	s.Set(2, 0, Cell{Glyph: 'C', Intensity: Head})
	s.Set(0, 2, Cell{Glyph: 'A', Intensity: Head})
	s.Set(1, 1, Cell{Glyph: 'B', Intensity: Head})

	f := s.Diff(testColor)

	var got strings.Builder
	for _, cmd := range f.Commands {
		got.WriteRune(cmd.Glyph)
	}
	if got.String() != "ABC" {
		t.Errorf("Commands should be row-major, got %q", got.String())
	}
}

func TestScreenInvalidate(t *testing.T) {
	s := NewScreen(3, 1)
	s.Set(0, 0, Cell{Glyph: 'A', Intensity: Head})
	s.Diff(testColor)

	s.Set(0, 0, Cell{Glyph: 'A', Intensity: Head})
	s.Invalidate()
	f := s.Diff(testColor)

	if !f.Reset || len(f.Commands) != 1 {
		t.Errorf("Invalidate should force a full repaint, got reset=%v commands=%d", f.Reset, len(f.Commands))
	}
}

func TestScreenString(t *testing.T) {
	s := NewScreen(3, 2)
	s.Set(0, 0, Cell{Glyph: 'A', Intensity: Head})
	s.Set(1, 2, Cell{Glyph: 'B', Intensity: Trail(1)})

	result := s.String()
	expected := "A  \n  B"

	if result != expected {
		t.Errorf("String() = %q, expected %q", result, expected)
	}
}

func TestApply(t *testing.T) {
	grid := NewGlyphGrid(3, 2)
	grid[0][0] = 'x'

	Apply(grid, Frame{Commands: []DrawCommand{
		{Row: 0, Col: 0, Blank: true},
		{Row: 1, Col: 2, Glyph: 'q'},
		{Row: 5, Col: 5, Glyph: 'z'}, // ignored
	}})

	if string(grid[0]) != "   " || string(grid[1]) != "  q" {
		t.Errorf("Apply produced %q / %q", string(grid[0]), string(grid[1]))
	}

	Apply(grid, Frame{Reset: true})
	if string(grid[1]) != "   " {
		t.Errorf("Reset should clear the grid, got %q", string(grid[1]))
	}
}

func TestTrailLevel(t *testing.T) {
	tests := []struct {
		distance, length, expected int
	}{
		{1, 8, 1},
		{8, 8, 8},
		{1, 20, 1},
		{20, 20, 8},
		{10, 20, 4},
		{1, 1, 1},
		{1, 0, 1},
		{50, 4, TrailLevels},
	}

	for _, tc := range tests {
		if got := TrailLevel(tc.distance, tc.length); got != tc.expected {
			t.Errorf("TrailLevel(%d, %d) = %d, expected %d", tc.distance, tc.length, got, tc.expected)
		}
	}

	if Trail(0).Level != 1 || Trail(99).Level != TrailLevels {
		t.Error("Trail should clamp its level")
	}
}

func TestApplyCells(t *testing.T) {
	type styled struct {
		glyph rune
		bold  bool
	}
	blank := styled{glyph: ' '}
	grid := [][]styled{{blank, blank}, {blank, blank}}

	ApplyCells(grid, Frame{Commands: []DrawCommand{
		{Row: 1, Col: 0, Glyph: 'h', Bold: true},
		{Row: 0, Col: 1, Glyph: 't'},
		{Row: 2, Col: 0, Glyph: 'x'}, // ignored
	}}, blank, func(cmd DrawCommand) styled {
		return styled{glyph: cmd.Glyph, bold: cmd.Bold}
	})

	if grid[1][0] != (styled{glyph: 'h', bold: true}) || grid[0][1] != (styled{glyph: 't'}) {
		t.Errorf("ApplyCells produced %+v", grid)
	}

	ApplyCells(grid, Frame{Commands: []DrawCommand{{Row: 1, Col: 0, Blank: true}}}, blank, nil)
	if grid[1][0] != blank {
		t.Errorf("Blank command should write the blank cell, got %+v", grid[1][0])
	}
}

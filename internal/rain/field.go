package rain

import (
	"github.com/vovakirdan/tui-rain/internal/core"
)

// Field owns one Column per terminal column and advances them together.
type Field struct {
	cfg     core.Config
	rng     Rand
	glyphs  GlyphSource
	columns []Column
	size    core.Size
	params  spawnParams
	tick    uint64
}

// NewField creates a field sized to nothing; call Resize before stepping.
func NewField(cfg core.Config, rng Rand, glyphs GlyphSource) *Field {
	return &Field{
		cfg:    cfg,
		rng:    rng,
		glyphs: glyphs,
	}
}

// Resize reallocates the columns for new dimensions. Every column starts dead.
// Resizing to the current dimensions is a no-op.
func (f *Field) Resize(width, height int) {
	size := core.Size{Width: core.Max(width, 0), Height: core.Max(height, 0)}
	if size == f.size && f.columns != nil {
		return
	}
	f.size = size
	f.columns = make([]Column, size.Width)

	lo, hi := f.cfg.LengthRange(size.Height)
	f.params = spawnParams{
		minLength: lo,
		maxLength: hi,
		minSpeed:  f.cfg.MinSpeed,
		maxSpeed:  f.cfg.MaxSpeed,
		sync:      f.cfg.Sync,
	}
}

// Step advances the simulation by one tick.
func (f *Field) Step() {
	f.tick++
	if !f.size.Valid() {
		return
	}
	for i := range f.columns {
		c := &f.columns[i]
		if !c.Active {
			if f.rng.Float64() < f.cfg.Density {
				c.spawn(f.tick, f.params, f.rng, f.glyphs)
			}
			continue
		}

		c.flicker(f.cfg.FlickerChance, f.rng, f.glyphs)
		if c.due(f.tick) {
			c.advance(f.tick, f.glyphs)
		}
		if c.offscreen(f.size.Height) {
			c.kill()
		}
	}
}

// Compose writes every active drop into the current frame of s.
// The frame is cleared first, so cells no drop reaches end up empty.
func (f *Field) Compose(s *core.Screen) {
	s.Clear()
	for col := range f.columns {
		c := &f.columns[col]
		if !c.Active {
			continue
		}
		for i, g := range c.Glyphs {
			row := c.Head - i
			if row < 0 || row >= f.size.Height {
				continue
			}
			in := core.Head
			if i > 0 {
				in = core.Trail(core.TrailLevel(i, c.Length))
			}
			s.Set(row, col, core.Cell{Glyph: g, Intensity: in})
		}
	}
}

// Size returns the field dimensions.
func (f *Field) Size() core.Size {
	return f.size
}

// Tick returns the number of steps taken since the field was created.
func (f *Field) Tick() uint64 {
	return f.tick
}

// Column returns a copy of the column at index i.
func (f *Field) Column(i int) Column {
	c := f.columns[i]
	c.Glyphs = append([]rune(nil), c.Glyphs...)
	return c
}

// Width returns the number of columns.
func (f *Field) Width() int {
	return len(f.columns)
}

// ActiveCount returns how many columns currently hold a drop.
func (f *Field) ActiveCount() int {
	n := 0
	for i := range f.columns {
		if f.columns[i].Active {
			n++
		}
	}
	return n
}

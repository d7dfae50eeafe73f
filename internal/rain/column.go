// Package rain implements the per-column drop simulation and composes it
// into a core.Screen.
package rain

// Rand is the randomness the simulation needs. *math/rand.Rand satisfies it.
type Rand interface {
	Float64() float64
	Intn(n int) int
}

// GlyphSource supplies fresh glyphs. *glyph.Source satisfies it.
type GlyphSource interface {
	Next() rune
}

// speedEpsilon absorbs float error when comparing elapsed ticks to 1/Speed.
const speedEpsilon = 1e-9

// Column is the state of a single terminal column.
// A dead column has Active == false and an empty glyph buffer.
type Column struct {
	Active      bool
	Head        int     // Row of the head; negative while scrolling in
	Length      int     // Trail length behind the head
	Speed       float64 // Rows per tick, in (0, 1]
	LastAdvance uint64  // Tick of the last head movement
	Glyphs      []rune  // Glyphs[i] is drawn at row Head-i
}

// spawnParams carries the per-field bounds used when a drop spawns.
type spawnParams struct {
	minLength, maxLength int
	minSpeed, maxSpeed   float64
	sync                 bool
}

// spawn starts a new drop at the given tick.
func (c *Column) spawn(tick uint64, p spawnParams, rng Rand, src GlyphSource) {
	c.Active = true
	c.Length = p.minLength + rng.Intn(p.maxLength-p.minLength+1)
	c.Head = -rng.Intn(c.Length + 1)
	if p.sync {
		c.Speed = p.maxSpeed
	} else {
		c.Speed = p.minSpeed + rng.Float64()*(p.maxSpeed-p.minSpeed)
	}
	c.LastAdvance = tick
	c.Glyphs = append(c.Glyphs[:0], src.Next())
}

// due reports whether enough ticks have passed for the head to move.
func (c *Column) due(tick uint64) bool {
	return float64(tick-c.LastAdvance)*c.Speed >= 1-speedEpsilon
}

// advance moves the head down one row and pushes a fresh glyph onto the buffer.
func (c *Column) advance(tick uint64, src GlyphSource) {
	c.Head++
	c.LastAdvance = tick
	if len(c.Glyphs) < c.Length+1 {
		c.Glyphs = append(c.Glyphs, 0)
	}
	copy(c.Glyphs[1:], c.Glyphs[:len(c.Glyphs)-1])
	c.Glyphs[0] = src.Next()
}

// flicker replaces each glyph independently with the given probability.
func (c *Column) flicker(chance float64, rng Rand, src GlyphSource) {
	if chance <= 0 {
		return
	}
	for i := range c.Glyphs {
		if rng.Float64() < chance {
			c.Glyphs[i] = src.Next()
		}
	}
}

// offscreen reports whether the whole drop has scrolled past the bottom.
func (c *Column) offscreen(height int) bool {
	return c.Head-c.Length > height
}

// kill returns the column to the dead state, keeping the buffer's memory.
func (c *Column) kill() {
	c.Active = false
	c.Glyphs = c.Glyphs[:0]
}

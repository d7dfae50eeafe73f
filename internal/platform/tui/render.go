package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-rain/internal/core"
)

// cellView is one mirrored terminal cell.
type cellView struct {
	glyph rune
	color core.Color
	bold  bool
	blank bool
}

var blankCell = cellView{glyph: ' ', blank: true}

// mirror is the last known terminal contents, rebuilt from draw commands.
type mirror [][]cellView

func newMirror(width, height int) mirror {
	m := make(mirror, core.Max(height, 0))
	for y := range m {
		m[y] = make([]cellView, core.Max(width, 0))
		for x := range m[y] {
			m[y][x] = blankCell
		}
	}
	return m
}

// apply replays a frame. Commands outside the mirror are dropped.
func (m mirror) apply(f core.Frame) {
	core.ApplyCells([][]cellView(m), f, blankCell, func(cmd core.DrawCommand) cellView {
		return cellView{glyph: cmd.Glyph, color: cmd.Color, bold: cmd.Bold}
	})
}

// styleKey identifies a lipgloss style in the cache.
type styleKey struct {
	color core.Color
	bold  bool
	blank bool
}

// styleCache builds lipgloss styles lazily; a rain palette only has a
// handful of distinct colors.
type styleCache struct {
	renderer *lipgloss.Renderer
	styles   map[styleKey]lipgloss.Style
}

func newStyleCache(r *lipgloss.Renderer) *styleCache {
	return &styleCache{renderer: r, styles: make(map[styleKey]lipgloss.Style)}
}

func (c *styleCache) get(k styleKey) lipgloss.Style {
	if s, ok := c.styles[k]; ok {
		return s
	}
	s := c.renderer.NewStyle()
	if !k.blank {
		s = s.Foreground(lipgloss.Color(k.color.Hex())).Bold(k.bold)
	}
	c.styles[k] = s
	return s
}

// render converts the mirror to a styled string for display.
// Groups adjacent cells with the same style to minimize escape sequences.
func (m mirror) render(styles *styleCache) string {
	var sb strings.Builder
	for y, row := range m {
		if y > 0 {
			sb.WriteRune('\n')
		}

		x := 0
		for x < len(row) {
			start := keyOf(row[x])

			var run strings.Builder
			for x < len(row) && keyOf(row[x]) == start {
				run.WriteRune(row[x].glyph)
				x++
			}

			if start.blank {
				sb.WriteString(run.String())
				continue
			}
			sb.WriteString(styles.get(start).Render(run.String()))
		}
	}
	return sb.String()
}

func keyOf(c cellView) styleKey {
	if c.blank {
		return styleKey{blank: true}
	}
	return styleKey{color: c.color, bold: c.bold}
}

package ansi

import (
	"bytes"
	"fmt"

	"github.com/muesli/termenv"

	"github.com/vovakirdan/tui-rain/internal/core"
)

// encoder turns frames into escape sequences for a color profile.
// It tracks the cursor and the active style across a frame so runs of
// cells on one row are written without repositioning or restyling.
type encoder struct {
	profile termenv.Profile
	seqs    map[core.Color]string

	cursorRow, cursorCol int
	cursorValid          bool
	style                string
	styleValid           bool
}

func newEncoder(p termenv.Profile) *encoder {
	return &encoder{profile: p, seqs: make(map[core.Color]string)}
}

// encode appends the escape sequences for f to buf.
func (e *encoder) encode(buf *bytes.Buffer, f core.Frame) {
	e.cursorValid = false
	e.styleValid = false

	if f.Reset {
		buf.WriteString(termenv.CSI + termenv.ResetSeq + "m")
		fmt.Fprintf(buf, termenv.CSI+termenv.EraseDisplaySeq, 2)
	}

	for _, cmd := range f.Commands {
		if !e.cursorValid || cmd.Row != e.cursorRow || cmd.Col != e.cursorCol {
			fmt.Fprintf(buf, termenv.CSI+termenv.CursorPositionSeq, cmd.Row+1, cmd.Col+1)
			e.cursorRow, e.cursorCol, e.cursorValid = cmd.Row, cmd.Col, true
		}

		style := e.styleFor(cmd)
		if !e.styleValid || style != e.style {
			buf.WriteString(termenv.CSI + termenv.ResetSeq)
			if style != "" {
				buf.WriteString(";" + style)
			}
			buf.WriteString("m")
			e.style, e.styleValid = style, true
		}

		if cmd.Blank {
			buf.WriteByte(' ')
		} else {
			buf.WriteRune(cmd.Glyph)
		}
		e.cursorCol++
	}

	if e.styleValid && e.style != "" {
		buf.WriteString(termenv.CSI + termenv.ResetSeq + "m")
	}
	if f.CursorHidden {
		buf.WriteString(termenv.CSI + termenv.HideCursorSeq)
	}
}

// styleFor returns the SGR parameters for a command, without the reset.
func (e *encoder) styleFor(cmd core.DrawCommand) string {
	if cmd.Blank {
		return ""
	}
	seq := e.colorSeq(cmd.Color)
	if cmd.Bold {
		if seq == "" {
			return termenv.BoldSeq
		}
		return termenv.BoldSeq + ";" + seq
	}
	return seq
}

// colorSeq converts a color for the profile, caching the result.
func (e *encoder) colorSeq(c core.Color) string {
	if seq, ok := e.seqs[c]; ok {
		return seq
	}
	var seq string
	if col := e.profile.Color(c.Hex()); col != nil {
		seq = col.Sequence(false)
	}
	e.seqs[c] = seq
	return seq
}

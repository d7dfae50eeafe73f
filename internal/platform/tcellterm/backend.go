// Package tcellterm renders rain through a tcell screen.
package tcellterm

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/vovakirdan/tui-rain/internal/core"
	"github.com/vovakirdan/tui-rain/internal/platform/inbox"
	"github.com/vovakirdan/tui-rain/internal/registry"
)

// ID is the renderer name used by --renderer.
const ID = "tcell"

// ErrNotOpen is returned when the backend is used before Open.
var ErrNotOpen = errors.New("tcellterm: screen not open")

func init() {
	registry.Register(ID, func() registry.Backend { return New() })
}

// Backend draws frames with tcell. A reader goroutine turns key and resize
// events into inbox updates.
type Backend struct {
	newScreen func() (tcell.Screen, error)

	mu     sync.Mutex
	screen tcell.Screen
	inbox  *inbox.Inbox
	done   chan struct{}
}

// New creates a backend for the controlling terminal.
func New() *Backend {
	return &Backend{newScreen: tcell.NewScreen}
}

// NewWithScreen creates a backend around an existing, uninitialized screen.
func NewWithScreen(s tcell.Screen) *Backend {
	return &Backend{newScreen: func() (tcell.Screen, error) { return s, nil }}
}

// ID returns the renderer name.
func (b *Backend) ID() string { return ID }

// Title describes the backend for `rain list`.
func (b *Backend) Title() string { return "tcell screen (terminfo, truecolor when available)" }

// Open initializes the screen and starts the event reader.
func (b *Backend) Open() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.screen != nil {
		return nil
	}
	s, err := b.newScreen()
	if err != nil {
		return fmt.Errorf("tcellterm: creating screen: %w", err)
	}
	if err := s.Init(); err != nil {
		return fmt.Errorf("tcellterm: initializing screen: %w", err)
	}
	s.HideCursor()
	s.Clear()

	b.screen = s
	b.inbox = inbox.New()
	b.inbox.SetSize(s.Size())
	b.done = make(chan struct{})
	go b.readEvents(s, b.inbox, b.done)
	return nil
}

// Close restores the terminal and waits for the reader to exit.
func (b *Backend) Close() error {
	b.mu.Lock()
	s, done := b.screen, b.done
	b.screen = nil
	b.mu.Unlock()

	if s == nil {
		return nil
	}
	s.Fini()
	<-done
	return nil
}

// Size returns the current screen size.
func (b *Backend) Size() (int, int, error) {
	s := b.current()
	if s == nil {
		return 0, 0, ErrNotOpen
	}
	w, h := s.Size()
	return w, h, nil
}

// PollEvent waits for a key or resize event.
func (b *Backend) PollEvent(timeout time.Duration) (core.Event, error) {
	b.mu.Lock()
	in := b.inbox
	b.mu.Unlock()

	if in == nil {
		return core.Event{}, ErrNotOpen
	}
	return in.Wait(timeout), nil
}

// WriteFrame applies the draw commands and shows the result.
func (b *Backend) WriteFrame(f core.Frame) error {
	s := b.current()
	if s == nil {
		return ErrNotOpen
	}

	if f.Reset {
		s.Clear()
	}
	for _, cmd := range f.Commands {
		if cmd.Blank {
			s.SetContent(cmd.Col, cmd.Row, ' ', nil, tcell.StyleDefault)
			continue
		}
		s.SetContent(cmd.Col, cmd.Row, cmd.Glyph, nil, style(cmd))
	}
	if f.CursorHidden {
		s.HideCursor()
	}
	s.Show()
	return nil
}

func (b *Backend) current() tcell.Screen {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.screen
}

// readEvents runs until the screen is finalized.
func (b *Backend) readEvents(s tcell.Screen, in *inbox.Inbox, done chan struct{}) {
	defer close(done)
	for {
		ev := s.PollEvent()
		if ev == nil {
			return
		}
		switch ev := ev.(type) {
		case *tcell.EventKey:
			if isExitKey(ev) {
				in.RequestExit()
			}
		case *tcell.EventResize:
			w, h := ev.Size()
			in.Resize(w, h)
		}
	}
}

// isExitKey matches q, Esc and Ctrl-C.
func isExitKey(ev *tcell.EventKey) bool {
	switch ev.Key() {
	case tcell.KeyCtrlC, tcell.KeyEscape:
		return true
	case tcell.KeyRune:
		r := ev.Rune()
		if ev.Modifiers()&tcell.ModCtrl != 0 {
			return r == 'c' || r == 'C'
		}
		return r == 'q' || r == 'Q'
	}
	return false
}

func style(cmd core.DrawCommand) tcell.Style {
	c := cmd.Color
	return tcell.StyleDefault.
		Foreground(tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))).
		Bold(cmd.Bold)
}

package tui

import (
	"errors"
	"fmt"
	"os"
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-rain/internal/core"
	"github.com/vovakirdan/tui-rain/internal/platform/inbox"
	"github.com/vovakirdan/tui-rain/internal/registry"
)

// ID is the renderer name used by --renderer.
const ID = "tui"

// ErrNotOpen is returned when the backend is used before Open.
var ErrNotOpen = errors.New("tui: program not running")

func init() {
	registry.Register(ID, func() registry.Backend { return New() })
}

// Backend runs a Bubble Tea program in the background and feeds it frames.
type Backend struct {
	opts []tea.ProgramOption

	mu      sync.Mutex
	program *tea.Program
	inbox   *inbox.Inbox
	done    chan struct{}
	err     error
}

// New creates a backend on the alternate screen of the controlling terminal.
// Extra options are passed to tea.NewProgram.
func New(opts ...tea.ProgramOption) *Backend {
	return &Backend{opts: opts}
}

// ID returns the renderer name.
func (b *Backend) ID() string {
	return ID
}

// Title describes the backend for `rain list`.
func (b *Backend) Title() string {
	return "Bubble Tea program with lipgloss styling (default)"
}

// Open starts the program. The first window-size message replaces the
// size guessed from stdout.
func (b *Backend) Open() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.program != nil {
		return nil
	}

	width, height := 80, 24 // Defaults
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		width, height = w, h
	}

	in := inbox.New()
	in.SetSize(width, height)

	opts := append([]tea.ProgramOption{tea.WithAltScreen()}, b.opts...)
	p := tea.NewProgram(NewModel(in, width, height, nil), opts...)

	done := make(chan struct{})
	go func() {
		defer close(done)
		_, err := p.Run()
		b.mu.Lock()
		b.err = err
		b.mu.Unlock()
		// The program is gone; make sure the engine stops too.
		in.RequestExit()
	}()

	b.program, b.inbox, b.done = p, in, done
	return nil
}

// Close stops the program and waits for it to restore the terminal.
func (b *Backend) Close() error {
	b.mu.Lock()
	p, done := b.program, b.done
	b.program = nil
	b.mu.Unlock()

	if p == nil {
		return nil
	}
	p.Send(quitMsg{})
	<-done
	return b.exitErr()
}

// exitErr returns the error the program ended with. Being killed or
// interrupted is a normal way to stop and yields nil.
func (b *Backend) exitErr() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.err != nil && !errors.Is(b.err, tea.ErrProgramKilled) && !errors.Is(b.err, tea.ErrInterrupted) {
		return fmt.Errorf("tui: %w", b.err)
	}
	return nil
}

// Size returns the last window size reported by the program.
func (b *Backend) Size() (int, int, error) {
	in := b.currentInbox()
	if in == nil {
		return 0, 0, ErrNotOpen
	}
	w, h := in.Size()
	return w, h, nil
}

// PollEvent waits for a key or window-size message.
func (b *Backend) PollEvent(timeout time.Duration) (core.Event, error) {
	in := b.currentInbox()
	if in == nil {
		return core.Event{}, ErrNotOpen
	}
	return in.Wait(timeout), nil
}

// WriteFrame hands the frame to the program. Once the program has failed
// it returns the program's error; after a normal exit frames are dropped
// and the inbox already carries the exit request.
func (b *Backend) WriteFrame(f core.Frame) error {
	b.mu.Lock()
	p, done := b.program, b.done
	b.mu.Unlock()

	if p == nil {
		return ErrNotOpen
	}
	select {
	case <-done:
		return b.exitErr()
	default:
	}
	p.Send(frameMsg(f))
	return nil
}

func (b *Backend) currentInbox() *inbox.Inbox {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.program == nil {
		return nil
	}
	return b.inbox
}

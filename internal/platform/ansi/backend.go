// Package ansi renders rain with raw escape sequences: x/term for raw mode
// and sizing, termenv for the color profile and screen control.
package ansi

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/muesli/termenv"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-rain/internal/core"
	"github.com/vovakirdan/tui-rain/internal/platform/inbox"
	"github.com/vovakirdan/tui-rain/internal/registry"
)

// ID is the renderer name used by --renderer.
const ID = "ansi"

// ErrNotOpen is returned when the backend is used before Open.
var ErrNotOpen = errors.New("ansi: terminal not open")

func init() {
	registry.Register(ID, func() registry.Backend { return New() })
}

// Backend writes escape sequences straight to stdout.
type Backend struct {
	in  *os.File
	out *os.File

	mu       sync.Mutex
	open     bool
	w        io.Writer
	output   *termenv.Output
	enc      *encoder
	buf      bytes.Buffer
	inbox    *inbox.Inbox
	oldState *term.State
	stop     chan struct{}
	inputEnd chan struct{}
	resized  chan struct{}
}

// New creates a backend on the process's stdin and stdout.
func New() *Backend {
	return &Backend{in: os.Stdin, out: os.Stdout}
}

// newWithWriter creates an already-open backend that encodes to w with a
// fixed profile and size. It never touches a terminal.
func newWithWriter(w io.Writer, p termenv.Profile, width, height int) *Backend {
	b := &Backend{
		open:  true,
		w:     w,
		enc:   newEncoder(p),
		inbox: inbox.New(),
	}
	b.inbox.SetSize(width, height)
	return b
}

// ID returns the renderer name.
func (b *Backend) ID() string {
	return ID
}

// Title describes the backend for `rain list`.
func (b *Backend) Title() string {
	return "raw escape sequences (termenv color profile)"
}

// Open switches stdin to raw mode, enters the alternate screen, and starts
// the input and resize watchers.
func (b *Backend) Open() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.open {
		return nil
	}

	inFd := int(b.in.Fd())
	if !term.IsTerminal(inFd) {
		return fmt.Errorf("ansi: stdin is not a terminal")
	}
	old, err := term.MakeRaw(inFd)
	if err != nil {
		return fmt.Errorf("ansi: enabling raw mode: %w", err)
	}

	b.oldState = old
	b.output = termenv.NewOutput(b.out)
	b.w = b.output
	b.enc = newEncoder(b.output.ColorProfile())
	b.output.AltScreen()
	b.output.HideCursor()
	b.output.ClearScreen()

	b.inbox = inbox.New()
	width, height := 80, 24 // Defaults
	if w, h, err := term.GetSize(int(b.out.Fd())); err == nil {
		width, height = w, h
	}
	b.inbox.SetSize(width, height)

	b.stop = make(chan struct{})
	b.inputEnd = make(chan struct{})
	b.resized = make(chan struct{})
	go b.readInput()
	go b.watchResize()

	b.open = true
	return nil
}

// Close stops the watchers and restores the terminal.
func (b *Backend) Close() error {
	b.mu.Lock()
	if !b.open {
		b.mu.Unlock()
		return nil
	}
	b.open = false
	stop, inputEnd, resized := b.stop, b.inputEnd, b.resized
	b.mu.Unlock()

	if stop != nil {
		close(stop)
		<-resized
		if inputInterruptible {
			<-inputEnd
		}
	}

	if b.output != nil {
		b.output.ShowCursor()
		b.output.ExitAltScreen()
	}
	if b.oldState != nil {
		if err := term.Restore(int(b.in.Fd()), b.oldState); err != nil {
			return fmt.Errorf("ansi: restoring terminal: %w", err)
		}
		b.oldState = nil
	}
	return nil
}

// Size returns the terminal size, read fresh from stdout when it is a terminal.
func (b *Backend) Size() (int, int, error) {
	b.mu.Lock()
	open, in := b.open, b.inbox
	b.mu.Unlock()

	if !open {
		return 0, 0, ErrNotOpen
	}
	if b.out != nil {
		w, h, err := term.GetSize(int(b.out.Fd()))
		if err != nil {
			return 0, 0, fmt.Errorf("ansi: reading size: %w", err)
		}
		return w, h, nil
	}
	w, h := in.Size()
	return w, h, nil
}

// PollEvent waits for an exit key or a resize.
func (b *Backend) PollEvent(timeout time.Duration) (core.Event, error) {
	b.mu.Lock()
	open, in := b.open, b.inbox
	b.mu.Unlock()

	if !open {
		return core.Event{}, ErrNotOpen
	}
	return in.Wait(timeout), nil
}

// WriteFrame encodes the frame and writes it in a single call.
func (b *Backend) WriteFrame(f core.Frame) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.open {
		return ErrNotOpen
	}

	b.buf.Reset()
	b.enc.encode(&b.buf, f)
	if b.buf.Len() == 0 {
		return nil
	}
	if _, err := b.w.Write(b.buf.Bytes()); err != nil {
		return fmt.Errorf("ansi: writing frame: %w", err)
	}
	return nil
}

// readInput turns stdin bytes into exit requests until stop is closed.
func (b *Backend) readInput() {
	defer close(b.inputEnd)
	buf := make([]byte, 64)
	for {
		n, err := readStdin(b.in, buf, b.stop)
		if err != nil || n < 0 {
			return
		}
		if n > 0 && isExitInput(buf[:n]) {
			b.inbox.RequestExit()
		}
	}
}

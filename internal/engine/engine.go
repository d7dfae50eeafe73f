// Package engine drives the rain simulation: it paces ticks, follows the
// terminal size, and hands diffed frames to a Terminal.
package engine

import (
	"context"
	"errors"
	"io"
	"math/rand"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-rain/internal/core"
	"github.com/vovakirdan/tui-rain/internal/glyph"
	"github.com/vovakirdan/tui-rain/internal/palette"
	"github.com/vovakirdan/tui-rain/internal/rain"
)

// MinPollInterval is the shortest time the engine waits for input per poll.
const MinPollInterval = time.Millisecond

// ErrNilTerminal is returned by New when no terminal is given.
var ErrNilTerminal = errors.New("engine: nil terminal")

// Terminal is everything the engine needs from the outside world.
type Terminal interface {
	// Size returns the current terminal dimensions in cells.
	Size() (width, height int, err error)
	// PollEvent waits up to timeout for input. A timeout yields EventNone.
	PollEvent(timeout time.Duration) (core.Event, error)
	// WriteFrame renders the draw commands in order.
	WriteFrame(f core.Frame) error
}

// State is the scheduler state.
type State int32

const (
	StateIdle State = iota
	StateRunning
	StatePaused // terminal is smaller than one cell
	StateStopped
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateRunning:
		return "running"
	case StatePaused:
		return "paused"
	case StateStopped:
		return "stopped"
	default:
		return "unknown"
	}
}

// Stats are counters collected over a run.
type Stats struct {
	Ticks   uint64
	Frames  uint64
	Resizes uint64
	Active  int
}

// Engine owns the screen buffer and the field for the lifetime of a run.
type Engine struct {
	cfg     core.Config
	term    Terminal
	log     *log.Logger
	rng     rain.Rand
	now     func() time.Time
	palette *palette.Palette
	screen  *core.Screen
	field   *rain.Field
	size    core.Size

	stopped atomic.Bool
	state   atomic.Int32
	ticks   atomic.Uint64
	frames  atomic.Uint64
	resizes atomic.Uint64
	active  atomic.Int64
}

// Option configures an Engine.
type Option func(*Engine)

// WithLogger sets the logger. The default discards everything.
func WithLogger(l *log.Logger) Option {
	return func(e *Engine) {
		e.log = l
	}
}

// WithRand injects the random generator shared by spawning, flicker and glyphs.
func WithRand(r rain.Rand) Option {
	return func(e *Engine) {
		e.rng = r
	}
}

// WithClock replaces time.Now, for tests.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) {
		e.now = now
	}
}

// New validates cfg and builds an engine that renders to term.
// Configuration problems are reported as *core.ConfigError.
func New(cfg core.Config, term Terminal, opts ...Option) (*Engine, error) {
	if term == nil {
		return nil, ErrNilTerminal
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	e := &Engine{
		cfg:  cfg,
		term: term,
		now:  time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.log == nil {
		e.log = log.New(io.Discard)
	}
	if e.rng == nil {
		seed := cfg.Seed
		if seed == 0 {
			seed = time.Now().UnixNano()
		}
		e.rng = rand.New(rand.NewSource(seed))
	}

	glyphs, err := glyph.New(cfg.Glyphs, e.rng)
	if err != nil {
		return nil, err
	}

	e.palette = palette.New(cfg.BaseColor, cfg.ColorMode)
	e.screen = core.NewScreen(0, 0)
	e.field = rain.NewField(cfg, e.rng, glyphs)
	e.field.Resize(0, 0)
	return e, nil
}

// Run drives the render loop until Stop is called, ctx is done, or the
// terminal reports an exit request. A failed frame write ends the run
// with an *IOError; every other terminal error is retried on the next tick.
func (e *Engine) Run(ctx context.Context) error {
	e.log.Info("rain started",
		"interval", e.cfg.FrameInterval,
		"density", e.cfg.Density,
		"mode", e.cfg.ColorMode,
		"glyphs", len(e.cfg.Glyphs),
	)
	e.setState(StateRunning)
	defer e.finish()

	for {
		if e.stopping(ctx) {
			return nil
		}
		start := e.now()

		e.pollSize()
		if e.size.Valid() {
			if e.State() == StatePaused {
				e.log.Info("resumed", "width", e.size.Width, "height", e.size.Height)
				e.setState(StateRunning)
			}
			if err := e.tick(); err != nil {
				e.log.Error("frame write failed", "err", err)
				return err
			}
		} else if e.State() == StateRunning {
			e.log.Info("paused", "width", e.size.Width, "height", e.size.Height)
			e.setState(StatePaused)
		}

		if e.wait(ctx, start.Add(e.cfg.FrameInterval)) {
			return nil
		}
	}
}

// Stop requests the loop to end before its next frame. Safe from any goroutine.
func (e *Engine) Stop() {
	e.stopped.Store(true)
}

// State returns the scheduler state.
func (e *Engine) State() State {
	return State(e.state.Load())
}

// Stats returns a snapshot of the run counters.
func (e *Engine) Stats() Stats {
	return Stats{
		Ticks:   e.ticks.Load(),
		Frames:  e.frames.Load(),
		Resizes: e.resizes.Load(),
		Active:  int(e.active.Load()),
	}
}

func (e *Engine) setState(s State) {
	e.state.Store(int32(s))
}

func (e *Engine) finish() {
	e.setState(StateStopped)
	st := e.Stats()
	e.log.Info("rain stopped",
		"ticks", st.Ticks,
		"frames", st.Frames,
		"resizes", st.Resizes,
	)
}

func (e *Engine) stopping(ctx context.Context) bool {
	return e.stopped.Load() || ctx.Err() != nil
}

// pollSize refreshes the dimensions. A failed read keeps the previous size.
func (e *Engine) pollSize() {
	w, h, err := e.term.Size()
	if err != nil {
		e.log.Debug("size poll failed", "err", err)
		return
	}
	e.resize(core.Size{Width: w, Height: h})
}

// resize reallocates the screen and field when the dimensions change.
func (e *Engine) resize(size core.Size) {
	size = core.Size{Width: core.Max(size.Width, 0), Height: core.Max(size.Height, 0)}
	if size == e.size {
		return
	}
	e.size = size
	e.screen.Resize(size.Width, size.Height)
	e.field.Resize(size.Width, size.Height)
	e.resizes.Add(1)
	e.log.Debug("resized", "width", size.Width, "height", size.Height)
}

// tick advances the simulation and writes one frame.
func (e *Engine) tick() error {
	e.field.Step()
	e.field.Compose(e.screen)
	frame := e.screen.Diff(e.palette.Color)

	e.ticks.Add(1)
	e.active.Store(int64(e.field.ActiveCount()))

	if err := e.term.WriteFrame(frame); err != nil {
		return &IOError{Op: "write frame", Err: err}
	}
	e.frames.Add(1)
	return nil
}

// wait polls for input until deadline. It reports true when the run should end.
func (e *Engine) wait(ctx context.Context, deadline time.Time) bool {
	for {
		if e.stopping(ctx) {
			return true
		}

		timeout := deadline.Sub(e.now())
		if timeout < MinPollInterval {
			timeout = MinPollInterval
		}

		ev, err := e.term.PollEvent(timeout)
		if err != nil {
			e.log.Debug("event poll failed", "err", err)
			select {
			case <-ctx.Done():
				return true
			case <-time.After(timeout):
			}
		}

		switch ev.Kind {
		case core.EventExit:
			e.log.Debug("exit requested")
			return true
		case core.EventResize:
			e.resize(ev.Size())
		}

		if !e.now().Before(deadline) {
			return false
		}
	}
}

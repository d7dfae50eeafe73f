// Package inbox hands terminal events from a backend's reader goroutine to
// the render loop. Writers never block: the latest size wins, and an exit
// request is sticky.
package inbox

import (
	"sync/atomic"
	"time"

	"github.com/vovakirdan/tui-rain/internal/core"
)

// Inbox collects events published by reader goroutines.
// The zero value is not usable; call New.
type Inbox struct {
	exit    atomic.Bool
	resized atomic.Bool
	width   atomic.Int64
	height  atomic.Int64
	wake    chan struct{}
}

// New creates an empty inbox.
func New() *Inbox {
	return &Inbox{wake: make(chan struct{}, 1)}
}

// RequestExit records an exit request. Safe from any goroutine.
func (b *Inbox) RequestExit() {
	b.exit.Store(true)
	b.notify()
}

// Exiting reports whether an exit was requested.
func (b *Inbox) Exiting() bool {
	return b.exit.Load()
}

// Resize records the latest terminal size and flags it for the next poll.
func (b *Inbox) Resize(width, height int) {
	b.SetSize(width, height)
	b.resized.Store(true)
	b.notify()
}

// SetSize records the size without raising a resize event.
func (b *Inbox) SetSize(width, height int) {
	b.width.Store(int64(width))
	b.height.Store(int64(height))
}

// Size returns the last recorded size.
func (b *Inbox) Size() (width, height int) {
	return int(b.width.Load()), int(b.height.Load())
}

// Wait returns the next pending event, waiting up to timeout for one.
// Exit requests take priority over resizes.
func (b *Inbox) Wait(timeout time.Duration) core.Event {
	if ev, ok := b.pending(); ok {
		return ev
	}

	timer := time.NewTimer(timeout)
	defer timer.Stop()

	select {
	case <-b.wake:
	case <-timer.C:
	}

	ev, _ := b.pending()
	return ev
}

func (b *Inbox) pending() (core.Event, bool) {
	if b.exit.Load() {
		return core.ExitEvent(), true
	}
	if b.resized.Swap(false) {
		w, h := b.Size()
		return core.ResizeEvent(w, h), true
	}
	return core.Event{}, false
}

func (b *Inbox) notify() {
	select {
	case b.wake <- struct{}{}:
	default:
	}
}

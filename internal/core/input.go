package core

// EventKind identifies what a terminal event carries.
type EventKind int

const (
	EventNone   EventKind = iota
	EventResize           // Terminal dimensions changed
	EventExit             // Key press or signal asking the animation to stop
)

// String returns a human-readable name for the event kind.
func (k EventKind) String() string {
	switch k {
	case EventNone:
		return "None"
	case EventResize:
		return "Resize"
	case EventExit:
		return "Exit"
	default:
		return "Unknown"
	}
}

// Event is a single terminal event observed by a backend.
// Width and Height are only meaningful for EventResize.
type Event struct {
	Kind   EventKind
	Width  int
	Height int
}

// ResizeEvent creates a resize event for the given dimensions.
func ResizeEvent(width, height int) Event {
	return Event{Kind: EventResize, Width: width, Height: height}
}

// ExitEvent creates an exit request event.
func ExitEvent() Event {
	return Event{Kind: EventExit}
}

// Size returns the dimensions carried by a resize event.
func (e Event) Size() Size {
	return Size{Width: e.Width, Height: e.Height}
}

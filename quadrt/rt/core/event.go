package core

import "fmt"

type EventKind int

const (
	EventUnknown EventKind = iota
	EventResize
	EventRedraw
	EventClose
)

func (k EventKind) String() string {
	switch k {
	case EventResize:
		return "resize"
	case EventRedraw:
		return "redraw"
	case EventClose:
		return "close"
	default:
		return "unknown"
	}
}

// Event is a window lifecycle event. Width and Height are only set for EventResize
// and are framebuffer pixels.
type Event struct {
	Kind   EventKind
	Width  uint32
	Height uint32
}

func ResizeEvent(width, height uint32) Event {
	return Event{Kind: EventResize, Width: width, Height: height}
}

func (e Event) String() string {
	if e.Kind == EventResize {
		return fmt.Sprintf("resize(%d, %d)", e.Width, e.Height)
	}
	return e.Kind.String()
}

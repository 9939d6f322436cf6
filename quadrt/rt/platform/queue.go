package platform

import "github.com/gekko3d/shaderview/quadrt/rt/core"

// EventQueue is a FIFO of window events. It is not safe for concurrent use,
// GLFW delivers every callback on the main thread.
type EventQueue struct {
	events []core.Event
}

func (q *EventQueue) Push(ev core.Event) {
	q.events = append(q.events, ev)
}

func (q *EventQueue) Pop() (core.Event, bool) {
	if len(q.events) == 0 {
		return core.Event{}, false
	}

	ev := q.events[0]
	q.events[0] = core.Event{}
	q.events = q.events[1:]

	if len(q.events) == 0 {
		q.events = q.events[:0:0]
	}

	return ev, true
}

func (q *EventQueue) Len() int {
	return len(q.events)
}

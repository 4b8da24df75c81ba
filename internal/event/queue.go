package event

// Event is anything delivered to the UI loop.
type Event interface{}

// WidgetReady signals that a background preview build finished and the
// owning widget can be drawn.
type WidgetReady struct{}

// Tick drives loading-indicator frames and reveal animations.
type Tick struct{}

// ConfigChanged signals that the configuration file was rewritten on disk.
type ConfigChanged struct{}

// Queue is the single consumer channel the UI loop polls. Any number of
// background goroutines may produce into it.
type Queue struct {
	ch chan Event
}

// NewQueue returns a queue with the given buffer capacity.
func NewQueue(capacity int) *Queue {
	if capacity <= 0 {
		capacity = 16
	}
	return &Queue{ch: make(chan Event, capacity)}
}

// C is the channel the UI loop receives from.
func (q *Queue) C() <-chan Event {
	return q.ch
}

// Dispatch delivers ev without ever blocking the producer. If the buffer is
// full the send is handed off to a goroutine so background work keeps moving.
func (q *Queue) Dispatch(ev Event) {
	select {
	case q.ch <- ev:
	default:
		go func() { q.ch <- ev }()
	}
}

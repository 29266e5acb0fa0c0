package stereo

import (
	"sync"
	"time"

	"github.com/bnema/pageflip/internal/domain/entity"
)

// EventKind identifies a change the presenter applies at the next frame
// boundary.
type EventKind int

const (
	EventDeviceChanged EventKind = iota
	EventQuadBufferChanged
	EventMonitorsChanged
	EventTunablesChanged
)

func (k EventKind) String() string {
	switch k {
	case EventDeviceChanged:
		return "device-changed"
	case EventQuadBufferChanged:
		return "quad-buffer-changed"
	case EventMonitorsChanged:
		return "monitors-changed"
	case EventTunablesChanged:
		return "tunables-changed"
	default:
		return "unknown"
	}
}

// Event is a discrete change message. Only the fields of its kind are set.
type Event struct {
	Kind     EventKind
	DeviceID string
	Mode     entity.QuadBufferMode
	Tunables Tunables
}

// Tunables are the output timings and policies that may change while
// running.
type Tunables struct {
	ActivationTimeout time.Duration
	ActivationPoll    time.Duration
	AckTimeout        time.Duration
	AckFallbackDelay  time.Duration
	VSync             entity.VSyncMode
	Readback          bool
}

// DefaultTunables returns the built-in timings.
func DefaultTunables() Tunables {
	return Tunables{
		ActivationTimeout: 2 * time.Second,
		ActivationPoll:    10 * time.Millisecond,
		AckTimeout:        50 * time.Millisecond,
		AckFallbackDelay:  time.Millisecond,
		VSync:             entity.VSyncOn,
		Readback:          true,
	}
}

// EventQueue coalesces events per kind; a newer event replaces a pending
// one of the same kind and keeps its position.
type EventQueue struct {
	mu      sync.Mutex
	order   []EventKind
	pending map[EventKind]Event
	closed  bool
}

// NewEventQueue creates an empty queue.
func NewEventQueue() *EventQueue {
	return &EventQueue{pending: make(map[EventKind]Event)}
}

// Post queues ev. Safe for concurrent use.
func (q *EventQueue) Post(ev Event) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.closed {
		return
	}
	if _, ok := q.pending[ev.Kind]; !ok {
		q.order = append(q.order, ev.Kind)
	}
	q.pending[ev.Kind] = ev
}

// Drain removes and returns the pending events in first-posted order.
func (q *EventQueue) Drain() []Event {
	q.mu.Lock()
	defer q.mu.Unlock()
	if len(q.order) == 0 {
		return nil
	}
	out := make([]Event, 0, len(q.order))
	for _, kind := range q.order {
		out = append(out, q.pending[kind])
	}
	q.order = q.order[:0]
	q.pending = make(map[EventKind]Event)
	return out
}

// Len returns the number of pending events.
func (q *EventQueue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.order)
}

// Close drops pending events and ignores later posts.
func (q *EventQueue) Close() {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.closed = true
	q.order = nil
	q.pending = make(map[EventKind]Event)
}

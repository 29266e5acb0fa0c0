// Package headless provides an in-memory window, GL context, interop
// extension and secondary surface that record every call in order. It runs
// the output without a display and serves as the scenario fixture in tests.
package headless

import (
	"fmt"
	"strings"
	"sync"
)

// Trace is an ordered, goroutine-safe log of backend operations.
type Trace struct {
	mu     sync.Mutex
	events []string
}

// Record appends one formatted event.
func (t *Trace) Record(format string, args ...any) {
	msg := format
	if len(args) > 0 {
		msg = fmt.Sprintf(format, args...)
	}
	t.mu.Lock()
	t.events = append(t.events, msg)
	t.mu.Unlock()
}

// Events returns a copy of all events.
func (t *Trace) Events() []string {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make([]string, len(t.events))
	copy(out, t.events)
	return out
}

// Len returns the number of recorded events; use it as a mark for Since.
func (t *Trace) Len() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.events)
}

// Since returns the events recorded after mark.
func (t *Trace) Since(mark int) []string {
	t.mu.Lock()
	defer t.mu.Unlock()
	if mark >= len(t.events) {
		return nil
	}
	out := make([]string, len(t.events)-mark)
	copy(out, t.events[mark:])
	return out
}

// Count returns how many events start with prefix.
func (t *Trace) Count(prefix string) int {
	t.mu.Lock()
	defer t.mu.Unlock()
	n := 0
	for _, ev := range t.events {
		if strings.HasPrefix(ev, prefix) {
			n++
		}
	}
	return n
}

// Filter returns the events that start with any of the prefixes.
func Filter(events []string, prefixes ...string) []string {
	var out []string
	for _, ev := range events {
		for _, p := range prefixes {
			if strings.HasPrefix(ev, p) {
				out = append(out, ev)
				break
			}
		}
	}
	return out
}

// Reset clears the trace.
func (t *Trace) Reset() {
	t.mu.Lock()
	t.events = nil
	t.mu.Unlock()
}

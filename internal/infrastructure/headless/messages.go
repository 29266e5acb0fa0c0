package headless

import "sync"

// Messages collects user-visible messages.
type Messages struct {
	mu     sync.Mutex
	errors []string
	infos  []string
}

func (m *Messages) PushError(msg string) {
	m.mu.Lock()
	m.errors = append(m.errors, msg)
	m.mu.Unlock()
}

func (m *Messages) PushInfo(msg string) {
	m.mu.Lock()
	m.infos = append(m.infos, msg)
	m.mu.Unlock()
}

// Infos returns the informational messages pushed so far.
func (m *Messages) Infos() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.infos...)
}

// Errors returns the error messages pushed so far.
func (m *Messages) Errors() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.errors...)
}

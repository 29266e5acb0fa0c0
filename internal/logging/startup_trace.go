package logging

import (
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"
)

// Milestones of a run, in the order they usually happen. Capability detection runs in
// the background and may land anywhere after platform_ready.
const (
	MilestoneConfigLoaded  = "config_loaded"
	MilestonePlatformReady = "platform_ready"
	MilestoneDetectionDone = "detection_done"
	MilestoneWindowCreated = "window_created"
	MilestoneOutputCreated = "output_created"
	MilestoneFirstFrame    = "first_frame"
)

// Milestone is one checkpoint, timed from the start of the trace.
type Milestone struct {
	Name string
	At   time.Duration
}

// StartupTrace times a run from launch to its first presented frame. Marks
// may come from any goroutine. It records only at debug level or below.
type StartupTrace struct {
	mu      sync.Mutex
	start   time.Time
	now     func() time.Time
	enabled bool
	logger  *zerolog.Logger
	marks   []Milestone
	emitted int
	done    bool
}

var (
	processTrace  atomic.Pointer[StartupTrace]
	disabledTrace = &StartupTrace{}
)

// NewStartupTrace starts a trace now.
func NewStartupTrace(logLevel string) *StartupTrace {
	return &StartupTrace{
		start:   time.Now(),
		now:     time.Now,
		enabled: ParseLevel(logLevel) <= zerolog.DebugLevel,
	}
}

// InitStartupTrace installs the process trace. Later calls are ignored.
func InitStartupTrace(logLevel string) {
	processTrace.CompareAndSwap(nil, NewStartupTrace(logLevel))
}

// Trace returns the process trace, or a disabled one before InitStartupTrace.
func Trace() *StartupTrace {
	if st := processTrace.Load(); st != nil {
		return st
	}
	return disabledTrace
}

// SetLogger attaches the logger and emits the marks recorded before it.
func (st *StartupTrace) SetLogger(logger *zerolog.Logger) {
	if !st.Enabled() {
		return
	}
	st.mu.Lock()
	defer st.mu.Unlock()
	st.logger = logger
	st.flushLocked()
}

// Mark records name once. Repeated names and marks after Finish are dropped.
func (st *StartupTrace) Mark(name string) {
	if !st.Enabled() {
		return
	}
	st.mu.Lock()
	defer st.mu.Unlock()
	if st.done {
		return
	}
	for _, m := range st.marks {
		if m.Name == name {
			return
		}
	}
	st.marks = append(st.marks, Milestone{Name: name, At: st.now().Sub(st.start)})
	st.flushLocked()
}

func (st *StartupTrace) flushLocked() {
	if st.logger == nil {
		return
	}
	for ; st.emitted < len(st.marks); st.emitted++ {
		m := st.marks[st.emitted]
		ev := st.logger.Debug().Str("milestone", m.Name).Int64("t_ms", m.At.Milliseconds())
		if st.emitted > 0 {
			ev = ev.Int64("delta_ms", (m.At - st.marks[st.emitted-1].At).Milliseconds())
		}
		ev.Msg("startup milestone")
	}
}

// Finish closes the trace and logs one summary naming the delivery path of
// the first frame and the slowest step.
func (st *StartupTrace) Finish(path string) {
	if !st.Enabled() {
		return
	}
	st.mu.Lock()
	defer st.mu.Unlock()
	if st.done {
		return
	}
	st.done = true
	if st.logger == nil || len(st.marks) == 0 {
		return
	}

	parts := make([]string, 0, len(st.marks))
	slowest, slowestDur := st.marks[0].Name, st.marks[0].At
	for i, m := range st.marks {
		parts = append(parts, fmt.Sprintf("%s:%d", m.Name, m.At.Milliseconds()))
		if i > 0 {
			if d := m.At - st.marks[i-1].At; d > slowestDur {
				slowest, slowestDur = m.Name, d
			}
		}
	}

	st.logger.Info().
		Str("path", path).
		Int64("total_ms", st.marks[len(st.marks)-1].At.Milliseconds()).
		Str("slowest", slowest).
		Int64("slowest_ms", slowestDur.Milliseconds()).
		Str("milestones", strings.Join(parts, ",")).
		Msg("first frame presented")
}

// Milestones returns a copy of the recorded marks.
func (st *StartupTrace) Milestones() []Milestone {
	st.mu.Lock()
	defer st.mu.Unlock()
	return append([]Milestone(nil), st.marks...)
}

func (st *StartupTrace) Enabled() bool {
	return st != nil && st.enabled
}

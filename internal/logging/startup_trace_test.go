package logging

import (
	"bytes"
	"encoding/json"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stepClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *stepClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *stepClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	c.mu.Unlock()
}

func newTestTrace(level string) (*StartupTrace, *stepClock) {
	clock := &stepClock{now: time.Unix(1000, 0)}
	st := NewStartupTrace(level)
	st.start = clock.Now()
	st.now = clock.Now
	return st, clock
}

func decodeLines(t *testing.T, buf *bytes.Buffer) []map[string]any {
	t.Helper()
	var out []map[string]any
	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		if line == "" {
			continue
		}
		var m map[string]any
		require.NoError(t, json.Unmarshal([]byte(line), &m))
		out = append(out, m)
	}
	return out
}

func TestStartupTrace_DisabledAboveDebug(t *testing.T) {
	st, _ := newTestTrace("info")
	st.Mark(MilestoneConfigLoaded)

	assert.False(t, st.Enabled())
	assert.Empty(t, st.Milestones())
}

func TestStartupTrace_BuffersUntilLoggerAndSummarizes(t *testing.T) {
	st, clock := newTestTrace("debug")
	var buf bytes.Buffer
	logger := zerolog.New(&buf).Level(zerolog.DebugLevel)

	clock.Advance(5 * time.Millisecond)
	st.Mark(MilestoneConfigLoaded)
	assert.Zero(t, buf.Len())

	st.SetLogger(&logger)
	clock.Advance(10 * time.Millisecond)
	st.Mark(MilestonePlatformReady)
	clock.Advance(200 * time.Millisecond)
	st.Mark(MilestoneWindowCreated)
	st.Mark(MilestoneWindowCreated)
	clock.Advance(20 * time.Millisecond)
	st.Mark(MilestoneFirstFrame)
	st.Finish("secondary-api")
	st.Mark("late")
	st.Finish("ignored")

	lines := decodeLines(t, &buf)
	require.Len(t, lines, 5)
	assert.Equal(t, MilestoneConfigLoaded, lines[0]["milestone"])
	assert.NotContains(t, lines[0], "delta_ms")
	assert.Equal(t, MilestoneWindowCreated, lines[2]["milestone"])
	assert.EqualValues(t, 200, lines[2]["delta_ms"])

	summary := lines[4]
	assert.Equal(t, "secondary-api", summary["path"])
	assert.EqualValues(t, 235, summary["total_ms"])
	assert.Equal(t, MilestoneWindowCreated, summary["slowest"])
	assert.EqualValues(t, 200, summary["slowest_ms"])
	assert.Equal(t, "config_loaded:5,platform_ready:15,window_created:215,first_frame:235", summary["milestones"])

	assert.Len(t, st.Milestones(), 4)
}

func TestStartupTrace_ConcurrentMarks(t *testing.T) {
	st, _ := newTestTrace("trace")

	var wg sync.WaitGroup
	for _, name := range []string{MilestoneDetectionDone, MilestoneWindowCreated, MilestoneOutputCreated} {
		wg.Add(1)
		go func(name string) {
			defer wg.Done()
			st.Mark(name)
		}(name)
	}
	wg.Wait()

	assert.Len(t, st.Milestones(), 3)
}

func TestTrace_DisabledBeforeInit(t *testing.T) {
	if processTrace.Load() != nil {
		t.Skip("process trace already installed")
	}
	assert.False(t, Trace().Enabled())
	Trace().Mark(MilestoneConfigLoaded)
	Trace().Finish("mono")
}

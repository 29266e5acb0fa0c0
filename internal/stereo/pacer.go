package stereo

import (
	"sync/atomic"
	"time"
)

// FramePacer limits the presentation rate to a target FPS and counts
// presented frames. Sleeping happens on the calling goroutine only.
type FramePacer struct {
	target time.Duration
	last   time.Time
	frames atomic.Uint64

	now   func() time.Time
	sleep func(time.Duration)
}

// NewFramePacer creates a pacer with no rate limit.
func NewFramePacer() *FramePacer {
	return &FramePacer{
		now:   time.Now,
		sleep: time.Sleep,
	}
}

// SetTargetFPS recomputes the target frame duration. Non-positive values
// disable pacing.
func (p *FramePacer) SetTargetFPS(fps float64) {
	if fps <= 0 {
		p.target = 0
		return
	}
	p.target = time.Duration(float64(time.Second) / fps)
}

// TargetDuration returns the current target frame duration.
func (p *FramePacer) TargetDuration() time.Duration {
	return p.target
}

// SleepToTarget sleeps until one target duration has passed since the
// previous call returned.
func (p *FramePacer) SleepToTarget() {
	now := p.now()
	if p.target <= 0 {
		p.last = now
		return
	}
	if !p.last.IsZero() {
		next := p.last.Add(p.target)
		if wait := next.Sub(now); wait > 0 {
			p.sleep(wait)
			now = p.now()
		}
		// Keep a steady cadence unless we fell more than one frame behind.
		if now.Sub(next) < p.target {
			p.last = next
			return
		}
	}
	p.last = now
}

// Inc counts one completed present.
func (p *FramePacer) Inc() {
	p.frames.Add(1)
}

// Frames returns the number of completed presents.
func (p *FramePacer) Frames() uint64 {
	return p.frames.Load()
}

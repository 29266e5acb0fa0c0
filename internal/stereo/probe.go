package stereo

import (
	"context"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/bnema/pageflip/internal/application/port"
	"github.com/bnema/pageflip/internal/domain/entity"
	"github.com/bnema/pageflip/internal/logging"
)

const defaultProbeTimeout = 5 * time.Second

// Prober runs the native quad-buffer and secondary-API probes in the
// background. Accessors never block; until a probe finishes they report
// the capability as unsupported.
type Prober struct {
	quad      port.QuadBufferChecker
	secondary port.SecondaryAPIInspector
	timeout   time.Duration

	mu         sync.RWMutex
	result     entity.CapabilityProbeResult
	started    bool
	done       chan struct{}
	generation uint64
}

// NewProber creates a prober. Either checker may be nil, in which case the
// corresponding capability is reported as absent once the probe runs.
func NewProber(quad port.QuadBufferChecker, secondary port.SecondaryAPIInspector, timeout time.Duration) *Prober {
	if timeout <= 0 {
		timeout = defaultProbeTimeout
	}
	return &Prober{
		quad:      quad,
		secondary: secondary,
		timeout:   timeout,
		done:      make(chan struct{}),
	}
}

var (
	sharedProberOnce sync.Once
	sharedProber     *Prober
)

// SharedProber returns the process-wide prober. The arguments of the first
// call win; later calls return the same instance.
func SharedProber(quad port.QuadBufferChecker, secondary port.SecondaryAPIInspector, timeout time.Duration) *Prober {
	sharedProberOnce.Do(func() {
		sharedProber = NewProber(quad, secondary, timeout)
	})
	return sharedProber
}

// ProbeAsync starts the probes once. Subsequent calls are no-ops until
// Reprobe is called.
func (p *Prober) ProbeAsync(ctx context.Context) {
	p.mu.Lock()
	if p.started {
		p.mu.Unlock()
		return
	}
	p.started = true
	done := p.done
	p.mu.Unlock()

	ctx = logging.WithComponent(ctx, "prober")
	go p.run(context.WithoutCancel(ctx), done)
}

// Reprobe discards the memoized completion and probes again. Previous
// answers stay visible until the new probe replaces them.
func (p *Prober) Reprobe(ctx context.Context) {
	p.mu.Lock()
	if p.started && !p.result.Complete {
		// A probe is in flight; its answer is fresh enough.
		p.mu.Unlock()
		return
	}
	p.started = false
	p.result.Complete = false
	p.done = make(chan struct{})
	p.mu.Unlock()

	p.ProbeAsync(ctx)
}

func (p *Prober) run(ctx context.Context, done chan struct{}) {
	log := logging.FromContext(ctx)
	start := time.Now()

	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	var g errgroup.Group
	g.Go(func() error {
		supported := p.checkQuadBuffer(ctx)
		p.mu.Lock()
		p.result.QuadBufferGL = entity.TristateOf(supported)
		p.generation++
		p.mu.Unlock()
		return nil
	})
	g.Go(func() error {
		info := p.inspectSecondary(ctx)
		p.mu.Lock()
		p.result.SecondaryAPI = info
		p.generation++
		p.mu.Unlock()
		return nil
	})
	_ = g.Wait()

	p.mu.Lock()
	p.result.Complete = true
	p.generation++
	result := p.result
	p.mu.Unlock()
	close(done)

	log.Debug().
		Str("quad_buffer_gl", result.QuadBufferGL.String()).
		Bool("secondary_api", result.SecondaryAPI != nil).
		Bool("secondary_stereo", result.SecondaryStereo()).
		Dur("elapsed", time.Since(start)).
		Msg("capability probe completed")
}

func (p *Prober) checkQuadBuffer(ctx context.Context) bool {
	if p.quad == nil {
		return false
	}
	ok, err := p.quad.CheckQuadBuffer(ctx)
	if err != nil {
		logging.FromContext(ctx).Info().Err(err).Msg("quad buffer probe failed")
		return false
	}
	return ok
}

func (p *Prober) inspectSecondary(ctx context.Context) *entity.SecondaryAPIInfo {
	if p.secondary == nil {
		return nil
	}
	info, err := p.secondary.Inspect(ctx)
	if err != nil {
		logging.FromContext(ctx).Info().Err(err).Msg("secondary API probe failed")
		return nil
	}
	return info
}

// QuadBufferSupport reports native quad-buffer support. False until known.
func (p *Prober) QuadBufferSupport() bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.result.QuadBufferGL.IsYes()
}

// SecondaryAPIInfo returns a copy of the secondary API report, or nil if
// the API is absent or not probed yet.
func (p *Prober) SecondaryAPIInfo() *entity.SecondaryAPIInfo {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.result.SecondaryAPI == nil {
		return nil
	}
	info := *p.result.SecondaryAPI
	return &info
}

// Result returns a snapshot of the best-known answers.
func (p *Prober) Result() entity.CapabilityProbeResult {
	p.mu.RLock()
	defer p.mu.RUnlock()
	result := p.result
	if result.SecondaryAPI != nil {
		info := *result.SecondaryAPI
		result.SecondaryAPI = &info
	}
	return result
}

// Generation changes every time a probe answer is recorded.
func (p *Prober) Generation() uint64 {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.generation
}

// Wait blocks until the current probe completes or ctx is done.
// ProbeAsync must have been called.
func (p *Prober) Wait(ctx context.Context) (entity.CapabilityProbeResult, error) {
	p.mu.RLock()
	done := p.done
	p.mu.RUnlock()

	select {
	case <-done:
		return p.Result(), nil
	case <-ctx.Done():
		return p.Result(), ctx.Err()
	}
}

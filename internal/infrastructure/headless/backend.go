package headless

import (
	"context"
	"errors"
	"time"

	"github.com/bnema/pageflip/internal/application/port"
	"github.com/bnema/pageflip/internal/domain/entity"
)

// Config describes the simulated machine.
type Config struct {
	Width, Height int
	Title         string
	TargetFPS     float64
	Stereo        bool
	Fullscreen    bool
	Monitors      entity.Monitors

	GLMajor, GLMinor int
	// QuadBuffer is what the start-up probe reports.
	QuadBuffer bool
	// StereoBuffers is what the live context reports; drivers may disagree
	// with the probe.
	StereoBuffers bool
	// DrawBufferError makes selecting back-left/back-right raise an error.
	DrawBufferError bool
	// BackRightError fails only back-right, as drivers that expose a stereo
	// format without the right buffer do.
	BackRightError bool
	// ProbeDelay delays both capability probes.
	ProbeDelay time.Duration

	// Secondary is the secondary API report; nil means absent.
	Secondary *entity.SecondaryAPIInfo
	// SurfaceInitDelay delays the secondary surface becoming ready.
	SurfaceInitDelay time.Duration
	SurfaceInitErr   error
	// RejectRegistration makes the interop refuse surfaces.
	RejectRegistration bool
}

// DefaultConfig is a single 60 Hz monitor with no stereo support.
func DefaultConfig() Config {
	return Config{
		Width:     1024,
		Height:    512,
		Title:     "pageflip",
		TargetFPS: 60,
		GLMajor:   3,
		GLMinor:   3,
		Monitors: entity.Monitors{{
			ID:      0,
			Name:    "HEADLESS-1",
			PnPID:   "HDL0001",
			Rect:    entity.Rect{W: 1920, H: 1080},
			FreqMax: 60,
		}},
	}
}

// Backend bundles the simulated collaborators around one trace.
type Backend struct {
	cfg     Config
	trace   *Trace
	window  *Window
	gl      *GL
	interop *Interop
	handles handleSource
}

// New creates a backend.
func New(cfg Config) *Backend {
	b := &Backend{cfg: cfg, trace: &Trace{}}
	b.window = newWindow(cfg, b.trace)
	b.gl = &GL{cfg: cfg, trace: b.trace, window: b.window}
	if cfg.Secondary != nil && cfg.Secondary.HasShareExtension {
		b.interop = &Interop{trace: b.trace, handles: &b.handles, reject: cfg.RejectRegistration}
	}
	return b
}

func (b *Backend) Trace() *Trace   { return b.trace }
func (b *Backend) Window() *Window { return b.window }
func (b *Backend) GL() *GL         { return b.gl }

// Interop returns the share extension, or nil when the secondary API
// lacks it.
func (b *Backend) Interop() port.Interop {
	if b.interop == nil {
		return nil
	}
	return b.interop
}

// SurfaceFactory returns nil when the secondary API is absent.
func (b *Backend) SurfaceFactory() port.SecondarySurfaceFactory {
	if b.cfg.Secondary == nil {
		return nil
	}
	return func(monitor entity.Monitor) (port.SecondarySurface, error) {
		b.trace.Record("surface.create monitor=%d", monitor.ID)
		return &Surface{
			trace:     b.trace,
			handles:   &b.handles,
			monitor:   monitor,
			initDelay: b.cfg.SurfaceInitDelay,
			initErr:   b.cfg.SurfaceInitErr,
		}, nil
	}
}

// QuadBufferChecker reports the configured native quad-buffer support.
func (b *Backend) QuadBufferChecker() port.QuadBufferChecker {
	return checker{cfg: b.cfg}
}

// SecondaryInspector reports the configured secondary API.
func (b *Backend) SecondaryInspector() port.SecondaryAPIInspector {
	return checker{cfg: b.cfg}
}

type checker struct {
	cfg Config
}

func (c checker) wait(ctx context.Context) error {
	if c.cfg.ProbeDelay <= 0 {
		return nil
	}
	select {
	case <-time.After(c.cfg.ProbeDelay):
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (c checker) CheckQuadBuffer(ctx context.Context) (bool, error) {
	if err := c.wait(ctx); err != nil {
		return false, err
	}
	return c.cfg.QuadBuffer, nil
}

func (c checker) Inspect(ctx context.Context) (*entity.SecondaryAPIInfo, error) {
	if err := c.wait(ctx); err != nil {
		return nil, err
	}
	if c.cfg.Secondary == nil {
		return nil, nil
	}
	info := *c.cfg.Secondary
	return &info, nil
}

var errRejected = errors.New("headless: registration rejected")

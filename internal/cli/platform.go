package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/bnema/pageflip/internal/application/port"
	"github.com/bnema/pageflip/internal/domain/entity"
	"github.com/bnema/pageflip/internal/infrastructure/config"
	"github.com/bnema/pageflip/internal/infrastructure/glfw"
	"github.com/bnema/pageflip/internal/infrastructure/headless"
	"github.com/bnema/pageflip/internal/infrastructure/hmd"
	"github.com/bnema/pageflip/internal/infrastructure/mainthread"
	"github.com/bnema/pageflip/internal/infrastructure/vulkan"
	"github.com/bnema/pageflip/internal/logging"
	"github.com/bnema/pageflip/internal/stereo"
)

// StereoWindow is a port.Window the CLI can also drive directly.
type StereoWindow interface {
	port.Window
	SetStereoOutput(on bool)
	SetTargetFPS(fps float64)
	RequestClose()
}

// monitorNotifier is implemented by windows that report hot-plug events.
type monitorNotifier interface {
	OnMonitorsChanged(fn func())
}

// Platform is one window system: the capability checkers and monitors, and
// once opened, the window with its GL context.
type Platform struct {
	Backend config.Backend

	QuadBuffer port.QuadBufferChecker
	Secondary  port.SecondaryAPIInspector
	HMD        port.HMDDriver

	// Calls runs work on the main goroutine; nil for the headless backend.
	Calls *mainthread.Queue

	headless *headless.Backend
	cfg      *config.Config
}

// NewPlatform prepares the backend named by backend, or by the config when
// backend is empty. It does not open a window.
func (a *App) NewPlatform(ctx context.Context, backend string) (*Platform, error) {
	name := a.Config.Window.Backend
	if backend != "" {
		name = config.Backend(backend)
	}

	p := &Platform{Backend: name, cfg: a.Config}
	switch name {
	case config.BackendGLFW:
		if err := glfw.Init(); err != nil {
			return nil, err
		}
		p.Calls = mainthread.New()
		if a.Config.Probe.QuadBuffer {
			p.QuadBuffer = glfw.NewQuadBufferChecker(p.Calls)
		}
		if a.Config.Probe.SecondaryAPI {
			p.Secondary = vulkan.NewInspector()
		}
		p.HMD = openHMD(ctx, a.Config.HMD)
	case config.BackendHeadless:
		hcfg := headless.DefaultConfig()
		hcfg.Width = a.Config.Window.Width
		hcfg.Height = a.Config.Window.Height
		hcfg.Title = a.Config.Window.Title
		hcfg.TargetFPS = a.Config.Window.TargetFPS
		p.headless = headless.New(hcfg)
		if a.Config.Probe.QuadBuffer {
			p.QuadBuffer = p.headless.QuadBufferChecker()
		}
		if a.Config.Probe.SecondaryAPI {
			p.Secondary = p.headless.SecondaryInspector()
		}
	default:
		return nil, fmt.Errorf("unknown backend %q (use: glfw, headless)", name)
	}

	logging.FromContext(ctx).Debug().
		Str("backend", string(name)).
		Bool("hmd", p.HMD != nil).
		Msg("platform ready")
	return p, nil
}

// openHMD returns nil when the HMD is disabled or cannot be opened.
func openHMD(ctx context.Context, cfg config.HMDConfig) port.HMDDriver {
	if !cfg.Enabled {
		return nil
	}
	driver, err := hmd.Open(ctx, hmd.Config{DeviceGlob: cfg.DeviceGlob, VendorID: cfg.VendorID})
	if err != nil {
		logging.FromContext(ctx).Warn().Err(err).Msg("hmd unavailable")
		return nil
	}
	return driver
}

// Monitors lists the connected monitors.
func (p *Platform) Monitors() (entity.Monitors, error) {
	if p.headless != nil {
		return p.headless.Window().Monitors(), nil
	}
	return glfw.Monitors()
}

// NewProber returns a prober over the platform's checkers.
func (p *Platform) NewProber() *stereo.Prober {
	timeout := time.Duration(p.cfg.Probe.TimeoutMs) * time.Millisecond
	return stereo.NewProber(p.QuadBuffer, p.Secondary, timeout)
}

// WaitProbe waits for the probe to finish, running main-thread calls in
// the meantime. It must be called from the main goroutine.
func (p *Platform) WaitProbe(ctx context.Context, prober *stereo.Prober) (entity.CapabilityProbeResult, error) {
	prober.ProbeAsync(ctx)
	if p.Calls == nil {
		return prober.Wait(ctx)
	}

	done := make(chan struct{})
	var (
		result  entity.CapabilityProbeResult
		waitErr error
	)
	go func() {
		defer close(done)
		result, waitErr = prober.Wait(ctx)
	}()
	if err := p.Calls.Pump(ctx, done); err != nil {
		<-done
		return prober.Result(), err
	}
	return result, waitErr
}

// HMDPresent reports whether the HMD driver found its device.
func (p *Platform) HMDPresent() bool {
	return p.HMD != nil && p.HMD.Present()
}

// WindowOptions are the per-window choices made at creation.
type WindowOptions struct {
	QuadBuffer bool
	Stereo     bool
	TargetFPS  float64
}

// Window is an open window and its rendering context.
type Window struct {
	Window   StereoWindow
	GL       port.GLContext
	Interop  port.Interop
	Surfaces port.SecondarySurfaceFactory
}

// OpenWindow creates the primary window. With the headless backend the
// same simulated window is returned on every call.
func (p *Platform) OpenWindow(ctx context.Context, opts WindowOptions) (*Window, error) {
	wcfg := p.cfg.Window
	if p.headless != nil {
		w := p.headless.Window()
		w.SetStereoOutput(opts.Stereo)
		w.SetTargetFPS(opts.TargetFPS)
		return &Window{
			Window:   w,
			GL:       p.headless.GL(),
			Interop:  p.headless.Interop(),
			Surfaces: p.headless.SurfaceFactory(),
		}, nil
	}

	w, err := glfw.NewWindow(ctx, glfw.WindowConfig{
		Width:       wcfg.Width,
		Height:      wcfg.Height,
		Title:       wcfg.Title,
		Fullscreen:  wcfg.Fullscreen,
		QuadBuffer:  opts.QuadBuffer,
		DepthBuffer: wcfg.DepthBuffer,
		TargetFPS:   opts.TargetFPS,
		Stereo:      opts.Stereo,
	}, p.Calls)
	if err != nil {
		return nil, err
	}
	gl, err := glfw.NewGL(w)
	if err != nil {
		_ = w.Close()
		return nil, err
	}
	// No secondary surfaces on this backend: the inspector reports what the
	// driver offers, and the presenter falls back when it is selected.
	return &Window{Window: w, GL: gl}, nil
}

// OnMonitorsChanged registers fn for hot-plug events when the window
// reports them.
func (w *Window) OnMonitorsChanged(fn func()) bool {
	n, ok := w.Window.(monitorNotifier)
	if ok {
		n.OnMonitorsChanged(fn)
	}
	return ok
}

// Close releases the platform. Windows must be closed first.
func (p *Platform) Close() error {
	if p.Calls != nil {
		p.Calls.Stop()
	}
	var err error
	if p.HMD != nil {
		err = p.HMD.Close()
	}
	if p.headless == nil {
		glfw.Terminate()
	}
	return err
}

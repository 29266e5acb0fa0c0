package stereo

import (
	"context"
	"fmt"
	"time"

	"github.com/bnema/pageflip/internal/application/port"
	"github.com/bnema/pageflip/internal/domain/entity"
	"github.com/bnema/pageflip/internal/logging"
)

// Presenter is the per-frame stereo state machine. PresentFrame and every
// other method run on the presentation thread; other goroutines talk to it
// through the event queue.
type Presenter struct {
	window   port.Window
	gl       port.GLContext
	prober   *Prober
	registry *Registry
	bridge   *Bridge
	pacer    *FramePacer
	events   *EventQueue
	messages port.MessageQueue

	activation *secondaryActivation
	tunables   Tunables
	mode       entity.QuadBufferMode

	native      *nativeQuadBuffer
	secondary   *secondaryBridge
	alternating *softwareAlternating
	emulated    *softwareAlternating
	unavailable *unavailable

	current deliveryPath
	stereo  bool

	// Latched failures, cleared by explicit capability-changing events.
	nativeChecked   bool
	nativeFailed    bool
	secondaryFailed bool

	vsyncForced bool
	warned      map[string]bool

	sleep func(time.Duration)
}

// PresenterDeps are the collaborators of a Presenter.
type PresenterDeps struct {
	Window   port.Window
	GL       port.GLContext
	Interop  port.Interop
	Surfaces port.SecondarySurfaceFactory
	Prober   *Prober
	Registry *Registry
	Events   *EventQueue
	Messages port.MessageQueue
}

// PresenterConfig holds start-up settings.
type PresenterConfig struct {
	Mode        entity.QuadBufferMode
	Tunables    Tunables
	Worker      WorkerTimings
	DepthBuffer bool
}

// NewPresenter wires a presenter. Window, GL, Prober and Registry are
// required.
func NewPresenter(deps PresenterDeps, cfg PresenterConfig) *Presenter {
	if deps.Events == nil {
		deps.Events = NewEventQueue()
	}
	p := &Presenter{
		window:   deps.Window,
		gl:       deps.GL,
		prober:   deps.Prober,
		registry: deps.Registry,
		bridge:   NewBridge(deps.Interop),
		pacer:    NewFramePacer(),
		events:   deps.Events,
		messages: deps.Messages,
		tunables: cfg.Tunables,
		mode:     cfg.Mode,
		warned:   make(map[string]bool),
		sleep:    time.Sleep,
	}
	p.activation = &secondaryActivation{
		window:       deps.Window,
		gl:           deps.GL,
		bridge:       p.bridge,
		factory:      deps.Surfaces,
		timings:      cfg.Worker,
		readyTimeout: cfg.Tunables.ActivationTimeout,
		readyPoll:    cfg.Tunables.ActivationPoll,
		readback:     cfg.Tunables.Readback,
		depth:        cfg.DepthBuffer,
	}
	p.native = &nativeQuadBuffer{p: p}
	p.secondary = &secondaryBridge{p: p}
	p.alternating = &softwareAlternating{p: p}
	p.emulated = &softwareAlternating{p: p, emulated: true}
	p.unavailable = &unavailable{p: p}
	return p
}

// Pacer exposes the frame pacer.
func (p *Presenter) Pacer() *FramePacer { return p.pacer }

// Mode returns the selected quad-buffer mode.
func (p *Presenter) Mode() entity.QuadBufferMode { return p.mode }

// ActivationState returns the secondary surface handover state.
func (p *Presenter) ActivationState() entity.ActivationState { return p.activation.State() }

// IsStereo reports whether the last frame was drawn in stereo.
func (p *Presenter) IsStereo() bool { return p.stereo }

// PathName names the delivery path used by the last stereo frame.
func (p *Presenter) PathName() string {
	if p.current == nil {
		return "mono"
	}
	return p.current.Name()
}

// effectiveMode is the delivery mode for the selected device. The HMD is
// always driven frame-sequentially.
func (p *Presenter) effectiveMode() entity.QuadBufferMode {
	if p.registry.ActiveID() == entity.DeviceIDVuzix {
		return entity.QuadBufferSoftware
	}
	return p.mode
}

func (p *Presenter) resolvePath() deliveryPath {
	switch p.effectiveMode() {
	case entity.QuadBufferHardwareGL:
		if p.prober.QuadBufferSupport() && !p.nativeFailed {
			return p.native
		}
		return p.unavailable
	case entity.QuadBufferHardwareSecondary:
		if p.secondary.Available() {
			return p.secondary
		}
		if p.secondaryFailed {
			return p.alternating
		}
		return p.unavailable
	case entity.QuadBufferEmulated:
		return p.emulated
	default:
		return p.alternating
	}
}

func (p *Presenter) activeDevice() stereoDevice {
	if dev, ok := p.registry.device(p.registry.ActiveID()); ok {
		return dev
	}
	return shutterGlasses{}
}

// PresentFrame draws and presents one frame through redraw.
func (p *Presenter) PresentFrame(ctx context.Context, redraw RedrawFunc) error {
	ctx = logging.WithComponent(ctx, "presenter")
	p.applyEvents(ctx)

	p.pacer.SetTargetFPS(p.window.TargetFPS())
	if err := p.window.MakeCurrent(); err != nil {
		return fmt.Errorf("make current: %w", err)
	}
	width, height := p.window.FramebufferSize()
	p.gl.Viewport(0, 0, width, height)

	if !p.window.IsStereoOutput() {
		if p.stereo {
			p.leaveStereo(ctx)
		}
		return p.presentMono(ctx, redraw)
	}

	path := p.resolvePath()
	if !p.stereo || path != p.current {
		p.enterStereo(ctx, path)
	}

	if _, err := path.Activate(ctx); err != nil {
		path = p.fallBack(ctx, path, err)
	}
	if err := path.Present(ctx, redraw); err != nil {
		if path != p.secondary {
			return err
		}
		// The secondary surface broke after activation: a dead worker or a
		// lost bridge. Later frames go through the fallback path.
		return p.fallBack(ctx, path, err).Present(ctx, redraw)
	}
	return nil
}

// fallBack latches the failed path off and switches to the next one for
// this frame and the rest of the session.
func (p *Presenter) fallBack(ctx context.Context, failed deliveryPath, err error) deliveryPath {
	log := logging.FromContext(ctx)
	if failed == p.secondary {
		p.secondaryFailed = true
		p.warnOnce(ctx, "secondary-failed", "Stereo output through Vulkan failed, using frame-sequential output")
		log.Warn().Err(err).Msg("secondary output failed, falling back")
	} else {
		log.Warn().Err(err).Str("path", failed.Name()).Msg("delivery path failed")
	}
	next := p.resolvePath()
	if next == failed {
		next = p.unavailable
	}
	p.enterStereo(ctx, next)
	if _, aerr := next.Activate(ctx); aerr != nil {
		log.Warn().Err(aerr).Str("path", next.Name()).Msg("fallback path failed")
		next = p.unavailable
	}
	return next
}

func (p *Presenter) presentMono(ctx context.Context, redraw RedrawFunc) error {
	if err := p.activation.Deactivate(ctx); err != nil {
		logging.FromContext(ctx).Debug().Err(err).Msg("secondary deactivation reported errors")
	}
	return p.drawMono(redraw)
}

// drawMono renders the left view into the back buffer and swaps.
func (p *Presenter) drawMono(redraw RedrawFunc) error {
	if p.mode == entity.QuadBufferHardwareGL {
		_ = p.gl.SetDrawBuffer(entity.DrawBufferBack)
	}
	redraw(entity.ViewLeft)
	p.pacer.SleepToTarget()
	p.window.SwapBuffers()
	p.pacer.Inc()
	return nil
}

// enterStereo runs the one-time work of the mono to stereo edge, or of a
// switch between delivery paths while in stereo.
func (p *Presenter) enterStereo(ctx context.Context, path deliveryPath) {
	id := p.registry.ActiveID()
	ctx = logging.WithDevice(ctx, id)
	log := logging.FromContext(ctx)
	if p.current != nil && p.current != path {
		if err := p.current.Deactivate(ctx); err != nil {
			log.Debug().Err(err).Str("path", p.current.Name()).Msg("deactivate previous path")
		}
	}
	if p.effectiveMode() != entity.QuadBufferHardwareGL {
		if err := p.registry.Setup(ctx, id); err != nil {
			log.Warn().Err(err).Msg("device stereo setup failed")
		}
	}
	if !p.stereo {
		log.Debug().Str("path", path.Name()).Msg("entering stereo")
	}
	p.current = path
	p.stereo = true
}

func (p *Presenter) leaveStereo(ctx context.Context) {
	id := p.registry.ActiveID()
	ctx = logging.WithDevice(ctx, id)
	log := logging.FromContext(ctx)
	if p.current != nil {
		if err := p.current.Deactivate(ctx); err != nil {
			log.Debug().Err(err).Str("path", p.current.Name()).Msg("deactivate path")
		}
	}
	if err := p.registry.Teardown(ctx, id); err != nil {
		log.Warn().Err(err).Msg("device stereo teardown failed")
	}
	p.restoreVSync(ctx)
	p.current = nil
	p.stereo = false
	log.Debug().Msg("leaving stereo")
}

func (p *Presenter) forceVSync(ctx context.Context) {
	if p.vsyncForced {
		return
	}
	p.vsyncForced = true
	p.window.SetSwapInterval(entity.VSyncOn)
	logging.FromContext(ctx).Debug().Msg("vsync forced on")
}

func (p *Presenter) restoreVSync(ctx context.Context) {
	if !p.vsyncForced {
		return
	}
	p.vsyncForced = false
	p.window.SetSwapInterval(p.tunables.VSync)
	logging.FromContext(ctx).Debug().Str("vsync", p.tunables.VSync.String()).Msg("vsync restored")
}

func (p *Presenter) latchNative(ctx context.Context, reason string) {
	if p.nativeFailed {
		return
	}
	p.nativeFailed = true
	logging.FromContext(ctx).Warn().Str("reason", reason).Msg("hardware quad buffer not usable, disabled until capabilities change")
}

func (p *Presenter) clearLatches() {
	p.nativeChecked = false
	p.nativeFailed = false
	p.secondaryFailed = false
}

func (p *Presenter) warningText() string {
	if p.effectiveMode() == entity.QuadBufferHardwareSecondary {
		if p.secondary.Available() && !p.window.IsFullScreen() {
			return "Vulkan stereo output requires fullscreen"
		}
		return "Vulkan stereo output is not available"
	}
	return "OpenGL quad buffer stereo is not available"
}

func (p *Presenter) drawWarning(ctx context.Context) {
	msg := p.warningText()
	p.warnOnce(ctx, "unavailable:"+msg, msg)
	width, height := p.window.FramebufferSize()
	p.gl.Viewport(0, 0, width, height)
	if err := p.gl.DrawWarning(msg, warningOffset); err != nil && !p.warned["overlay"] {
		p.warned["overlay"] = true
		logging.FromContext(ctx).Warn().Err(err).Msg("warning overlay unavailable")
	}
}

// warnOnce reports a user-visible problem once per key.
func (p *Presenter) warnOnce(ctx context.Context, key, msg string) {
	if p.warned[key] {
		return
	}
	p.warned[key] = true
	logging.FromContext(ctx).Info().Msg(msg)
	if p.messages != nil {
		p.messages.PushInfo(msg)
	}
}

// applyEvents drains the event queue at the frame boundary.
func (p *Presenter) applyEvents(ctx context.Context) {
	for _, ev := range p.events.Drain() {
		p.applyEvent(ctx, ev)
	}
}

func (p *Presenter) applyEvent(ctx context.Context, ev Event) {
	log := logging.FromContext(ctx)
	log.Debug().Str("event", ev.Kind.String()).Msg("applying output event")

	switch ev.Kind {
	case EventDeviceChanged:
		id := ResolveDeviceID(ev.DeviceID)
		if id == p.registry.ActiveID() {
			return
		}
		if p.stereo {
			p.leaveStereo(ctx)
		}
		if err := p.registry.Select(id); err != nil {
			log.Warn().Err(err).Msg("device change ignored")
			return
		}
		p.clearLatches()
	case EventQuadBufferChanged:
		if ev.Mode == p.mode {
			return
		}
		if p.stereo {
			p.leaveStereo(ctx)
		}
		if p.mode == entity.QuadBufferHardwareSecondary {
			if err := p.activation.Shutdown(ctx); err != nil {
				log.Debug().Err(err).Msg("secondary shutdown")
			}
		}
		p.mode = ev.Mode
		p.clearLatches()
	case EventMonitorsChanged:
		p.prober.Reprobe(ctx)
		p.registry.Refresh(ctx, p.window.Monitors(), p.prober.Result())
		p.clearLatches()
		if p.effectiveMode() == entity.QuadBufferHardwareSecondary {
			recreated, err := p.activation.RecreateWorker(ctx)
			switch {
			case err != nil:
				log.Warn().Err(err).Msg("secondary worker recreate failed")
			case !recreated && p.activation.State() != entity.ActivationInactive:
				log.Info().Msg("monitor change while secondary surface is active takes effect after deactivation")
			}
		}
	case EventTunablesChanged:
		p.applyTunables(ctx, ev.Tunables)
	}
}

func (p *Presenter) applyTunables(ctx context.Context, t Tunables) {
	vsyncChanged := t.VSync != p.tunables.VSync
	p.tunables = t
	p.activation.readyTimeout = t.ActivationTimeout
	p.activation.readyPoll = t.ActivationPoll
	p.activation.readback = t.Readback
	if vsyncChanged && !p.vsyncForced {
		p.window.SetSwapInterval(t.VSync)
	}
	logging.FromContext(ctx).Debug().
		Dur("activation_timeout", t.ActivationTimeout).
		Dur("ack_timeout", t.AckTimeout).
		Str("vsync", t.VSync.String()).
		Msg("output tunables applied")
}

// Shutdown leaves stereo and stops the worker.
func (p *Presenter) Shutdown(ctx context.Context) error {
	ctx = logging.WithComponent(ctx, "presenter")
	if p.stereo {
		p.leaveStereo(ctx)
	}
	return p.activation.Shutdown(ctx)
}

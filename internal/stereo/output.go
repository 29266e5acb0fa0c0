// Package stereo implements the page-flip stereo output: capability
// probing, device arbitration, the render-target bridge to a secondary
// graphics API and the per-frame presentation state machine.
package stereo

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/bnema/pageflip/internal/application/port"
	"github.com/bnema/pageflip/internal/domain/entity"
	"github.com/bnema/pageflip/internal/logging"
)

// Deps are the external collaborators of an Output. Window and GL are
// required; the rest may be nil when the platform lacks them.
type Deps struct {
	Window       port.Window
	GL           port.GLContext
	Interop      port.Interop
	Surfaces     port.SecondarySurfaceFactory
	QuadBuffer   port.QuadBufferChecker
	SecondaryAPI port.SecondaryAPIInspector
	HMD          port.HMDDriver
	Messages     port.MessageQueue
	// Prober overrides the process-wide prober.
	Prober *Prober
}

// Config holds the output settings taken from the config file.
type Config struct {
	Tunables          Tunables
	Worker            WorkerTimings
	ProbeTimeout      time.Duration
	HMDMonitorVendors []string
	DepthBuffer       bool
}

// Output is the page-flip stereo output exposed to the application.
type Output struct {
	window    port.Window
	prober    *Prober
	registry  *Registry
	options   *Options
	events    *EventQueue
	presenter *Presenter

	mu         sync.Mutex
	selectedID string

	probeGen      uint64
	modeDefaulted atomic.Bool
	quiet         atomic.Bool
	needsReset    atomic.Bool
	used          atomic.Bool
	closed        atomic.Bool
}

// New creates the output and starts the capability probe.
func New(ctx context.Context, deps Deps, cfg Config) (*Output, error) {
	if deps.Window == nil || deps.GL == nil {
		return nil, fmt.Errorf("new output: window and GL context are required: %w", ErrPrecondition)
	}
	if major, minor := deps.GL.Version(); major < 2 {
		return nil, fmt.Errorf("OpenGL %d.%d: %w", major, minor, ErrGLVersion)
	}
	ctx = logging.WithComponent(ctx, "output")

	prober := deps.Prober
	if prober == nil {
		prober = SharedProber(deps.QuadBuffer, deps.SecondaryAPI, cfg.ProbeTimeout)
	}
	prober.ProbeAsync(ctx)

	registry := NewRegistry(deps.HMD, cfg.HMDMonitorVendors)
	gen := prober.Generation()
	result := prober.Result()
	registry.Refresh(ctx, deps.Window.Monitors(), result)

	mode := DefaultQuadBufferMode(result)
	o := &Output{
		window:     deps.Window,
		prober:     prober,
		registry:   registry,
		events:     NewEventQueue(),
		options:    newOptions(mode, false),
		selectedID: registry.ActiveID(),
	}
	o.modeDefaulted.Store(true)
	o.options.updateSecondaryInfo(result.SecondaryAPI, result.Complete)

	o.options.QuadBuffer.OnChange(func(_, next entity.QuadBufferMode) {
		o.events.Post(Event{Kind: EventQuadBufferChanged, Mode: next})
		if !o.quiet.Load() {
			o.modeDefaulted.Store(false)
			o.needsReset.Store(true)
		}
	})
	o.options.ShowExtra.OnChange(func(bool) {
		if !o.quiet.Load() {
			o.needsReset.Store(true)
		}
	})

	if cfg.Tunables == (Tunables{}) {
		cfg.Tunables = DefaultTunables()
	}
	o.presenter = NewPresenter(PresenterDeps{
		Window:   deps.Window,
		GL:       deps.GL,
		Interop:  deps.Interop,
		Surfaces: deps.Surfaces,
		Prober:   prober,
		Registry: registry,
		Events:   o.events,
		Messages: deps.Messages,
	}, PresenterConfig{
		Mode:        mode,
		Tunables:    cfg.Tunables,
		Worker:      cfg.Worker,
		DepthBuffer: cfg.DepthBuffer,
	})
	o.probeGen = gen
	deps.Window.SetSwapInterval(cfg.Tunables.VSync)

	logging.FromContext(ctx).Debug().
		Str("mode", mode.String()).
		Bool("secondary_surfaces", deps.Surfaces != nil).
		Msg("output created")
	return o, nil
}

// DefaultQuadBufferMode picks the secondary API when native quad buffer is
// missing but the secondary API can do stereo.
func DefaultQuadBufferMode(result entity.CapabilityProbeResult) entity.QuadBufferMode {
	if !result.QuadBufferGL.IsYes() && result.SecondaryStereo() {
		return entity.QuadBufferHardwareSecondary
	}
	return entity.QuadBufferHardwareGL
}

// PresentFrame draws one frame. See Presenter.PresentFrame.
func (o *Output) PresentFrame(ctx context.Context, redraw RedrawFunc) error {
	if o.closed.Load() {
		return fmt.Errorf("present: %w", ErrPrecondition)
	}
	if gen := o.prober.Generation(); gen != o.probeGen {
		o.probeGen = gen
		o.onCapabilities(ctx)
	}
	err := o.presenter.PresentFrame(ctx, redraw)
	if o.presenter.IsStereo() {
		o.used.Store(true)
	}
	return err
}

func (o *Output) onCapabilities(ctx context.Context) {
	result := o.prober.Result()
	o.registry.Refresh(ctx, o.window.Monitors(), result)
	o.options.updateSecondaryInfo(result.SecondaryAPI, result.Complete)
	if o.modeDefaulted.Load() {
		o.setModeQuietly(DefaultQuadBufferMode(result))
	}
}

func (o *Output) setModeQuietly(mode entity.QuadBufferMode) {
	o.quiet.Store(true)
	defer o.quiet.Store(false)
	o.options.QuadBuffer.Set(mode)
}

// Devices returns the scored device list.
func (o *Output) Devices() []entity.OutputDevice {
	return o.registry.Devices()
}

// DeviceID returns the selected device id, including a selection that
// takes effect at the next frame.
func (o *Output) DeviceID() string {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.selectedID
}

// Device returns the descriptor of the selected device.
func (o *Output) Device() entity.OutputDevice {
	id := o.DeviceID()
	for _, dev := range o.Devices() {
		if dev.DeviceID == id {
			return dev
		}
	}
	return entity.OutputDevice{PluginID: entity.PluginID, DeviceID: id}
}

// SetDevice selects a device by id. "auto" selects the shutter glasses.
// Returns false for unknown ids.
func (o *Output) SetDevice(id string) bool {
	id = ResolveDeviceID(id)
	if _, ok := o.registry.device(id); !ok {
		return false
	}
	o.mu.Lock()
	o.selectedID = id
	o.mu.Unlock()
	o.events.Post(Event{Kind: EventDeviceChanged, DeviceID: id})
	return true
}

// Options returns the user-configurable parameters.
func (o *Output) Options() *Options { return o.options }

// QuadBufferMode returns the selected quad-buffer mode.
func (o *Output) QuadBufferMode() entity.QuadBufferMode {
	return o.options.QuadBuffer.Value()
}

// SetQuadBufferMode selects the delivery mode.
func (o *Output) SetQuadBufferMode(mode entity.QuadBufferMode) error {
	if !mode.Valid() {
		return fmt.Errorf("quad buffer mode %d: %w", int(mode), ErrPrecondition)
	}
	o.options.QuadBuffer.Set(mode)
	return nil
}

// ApplySettings restores persisted values without requesting a reset.
func (o *Output) ApplySettings(settings entity.OutputSettings) {
	o.quiet.Store(true)
	defer o.quiet.Store(false)

	if settings.DeviceID != "" && !o.SetDevice(settings.DeviceID) {
		o.SetDevice(DeviceIDAuto)
	}
	o.options.ShowExtra.Set(settings.ShowExtra)
	if settings.HasQuadBuffer && settings.QuadBuffer.Valid() {
		if settings.QuadBuffer != entity.QuadBufferEmulated || settings.ShowExtra {
			o.options.QuadBuffer.Set(settings.QuadBuffer)
			o.modeDefaulted.Store(false)
		}
	}
}

// ShowExtra reports whether extra quad-buffer choices are offered.
func (o *Output) ShowExtra() bool { return o.options.ShowExtra.Value() }

// NeedsReset reports that a context-creation attribute changed and the
// window must be recreated.
func (o *Output) NeedsReset() bool { return o.needsReset.Load() }

// ClearReset acknowledges a reset request.
func (o *Output) ClearReset() { o.needsReset.Store(false) }

// WasUsed reports whether the output presented stereo at least once.
func (o *Output) WasUsed() bool { return o.used.Load() }

// NotifyMonitorsChanged queues a monitor reconfiguration.
func (o *Output) NotifyMonitorsChanged() {
	o.events.Post(Event{Kind: EventMonitorsChanged})
}

// ApplyTunables queues new timings and policies for the next frame.
func (o *Output) ApplyTunables(t Tunables) {
	o.events.Post(Event{Kind: EventTunablesChanged, Tunables: t})
}

// Frames returns the number of completed presents.
func (o *Output) Frames() uint64 { return o.presenter.Pacer().Frames() }

// Prober returns the capability prober in use.
func (o *Output) Prober() *Prober { return o.prober }

// Presenter exposes the state machine for diagnostics.
func (o *Output) Presenter() *Presenter { return o.presenter }

// Close leaves stereo and stops the secondary worker. Later frames fail.
func (o *Output) Close(ctx context.Context) error {
	if !o.closed.CompareAndSwap(false, true) {
		return nil
	}
	o.events.Close()
	return o.presenter.Shutdown(ctx)
}

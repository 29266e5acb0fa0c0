package headless

import (
	"sync"
	"sync/atomic"

	"github.com/bnema/pageflip/internal/application/port"
	"github.com/bnema/pageflip/internal/domain/entity"
)

type handleSource struct {
	next atomic.Uintptr
}

func (h *handleSource) New() port.Handle {
	return port.Handle(h.next.Add(1))
}

// Window is a simulated primary window.
type Window struct {
	trace *Trace

	mu          sync.Mutex
	placement   entity.Rect
	fullscreen  bool
	visible     bool
	stereo      bool
	fps         float64
	monitors    entity.Monitors
	vsync       entity.VSyncMode
	shouldClose bool
	swaps       int
}

func newWindow(cfg Config, trace *Trace) *Window {
	return &Window{
		trace:      trace,
		placement:  entity.Rect{X: 256, Y: 256, W: cfg.Width, H: cfg.Height},
		fullscreen: cfg.Fullscreen,
		visible:    true,
		stereo:     cfg.Stereo,
		fps:        cfg.TargetFPS,
		monitors:   cfg.Monitors,
	}
}

var _ port.Window = (*Window)(nil)

func (w *Window) MakeCurrent() error { return nil }

func (w *Window) SwapBuffers() {
	w.mu.Lock()
	w.swaps++
	w.mu.Unlock()
	w.trace.Record("window.swap")
}

// Swaps returns the number of SwapBuffers calls.
func (w *Window) Swaps() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.swaps
}

func (w *Window) FramebufferSize() (int, int) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.fullscreen {
		cx, cy := w.placement.Center()
		mon := w.monitors.At(cx, cy)
		return mon.Rect.W, mon.Rect.H
	}
	return w.placement.W, w.placement.H
}

func (w *Window) Placement() entity.Rect {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.placement
}

func (w *Window) SetPlacement(rect entity.Rect) {
	w.mu.Lock()
	w.placement = rect
	w.mu.Unlock()
	w.trace.Record("window.placement %s", rect)
}

func (w *Window) IsFullScreen() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.fullscreen
}

func (w *Window) SetFullScreen(on bool) {
	w.mu.Lock()
	w.fullscreen = on
	w.mu.Unlock()
	w.trace.Record("window.fullscreen=%t", on)
}

func (w *Window) Show() {
	w.mu.Lock()
	w.visible = true
	w.mu.Unlock()
	w.trace.Record("window.show")
}

func (w *Window) Hide() {
	w.mu.Lock()
	w.visible = false
	w.mu.Unlock()
	w.trace.Record("window.hide")
}

func (w *Window) IsVisible() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.visible
}

func (w *Window) IsStereoOutput() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.stereo
}

// SetStereoOutput changes the declared stereo intent.
func (w *Window) SetStereoOutput(on bool) {
	w.mu.Lock()
	w.stereo = on
	w.mu.Unlock()
}

func (w *Window) TargetFPS() float64 {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.fps
}

// SetTargetFPS changes the target rate.
func (w *Window) SetTargetFPS(fps float64) {
	w.mu.Lock()
	w.fps = fps
	w.mu.Unlock()
}

func (w *Window) Monitors() entity.Monitors {
	w.mu.Lock()
	defer w.mu.Unlock()
	out := make(entity.Monitors, len(w.monitors))
	copy(out, w.monitors)
	return out
}

// SetMonitors replaces the attached monitors.
func (w *Window) SetMonitors(monitors entity.Monitors) {
	w.mu.Lock()
	w.monitors = monitors
	w.mu.Unlock()
}

func (w *Window) SetSwapInterval(mode entity.VSyncMode) {
	w.mu.Lock()
	w.vsync = mode
	w.mu.Unlock()
	w.trace.Record("window.vsync=%s", mode)
}

// VSync returns the last swap interval set.
func (w *Window) VSync() entity.VSyncMode {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.vsync
}

func (w *Window) PollEvents() {}

func (w *Window) ShouldClose() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.shouldClose
}

// RequestClose makes ShouldClose return true.
func (w *Window) RequestClose() {
	w.mu.Lock()
	w.shouldClose = true
	w.mu.Unlock()
}

func (w *Window) Close() error {
	w.trace.Record("window.close")
	return nil
}

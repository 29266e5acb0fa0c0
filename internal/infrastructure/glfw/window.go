// Package glfw is the desktop window system: a GLFW window with a legacy
// OpenGL context, the native quad-buffer probe and monitor enumeration.
package glfw

import (
	"context"
	"fmt"
	"runtime"
	"sync"

	"github.com/bnema/pageflip/internal/application/port"
	"github.com/bnema/pageflip/internal/domain/entity"
	"github.com/bnema/pageflip/internal/infrastructure/mainthread"
	"github.com/bnema/pageflip/internal/logging"
	"github.com/go-gl/glfw/v3.3/glfw"
)

func init() {
	// GLFW event handling and context creation must stay on the main thread.
	runtime.LockOSThread()
}

var (
	initOnce sync.Once
	initErr  error
)

// Init initializes GLFW once. It must be called from the main goroutine.
func Init() error {
	initOnce.Do(func() {
		if err := glfw.Init(); err != nil {
			initErr = fmt.Errorf("failed to initialize GLFW: %w", err)
		}
	})
	return initErr
}

// WindowConfig describes the primary window.
type WindowConfig struct {
	Width, Height int
	Title         string
	Fullscreen    bool
	// QuadBuffer requests a stereo pixel format. It cannot be changed after
	// the window exists.
	QuadBuffer  bool
	DepthBuffer bool
	TargetFPS   float64
	Stereo      bool
}

// Window is the primary GLFW window. Every method except IsStereoOutput,
// SetStereoOutput, TargetFPS and SetTargetFPS must be called from the main
// goroutine.
type Window struct {
	win   *glfw.Window
	calls *mainthread.Queue

	windowed entity.Rect

	mu       sync.Mutex
	stereo   bool
	fps      float64
	onChange []func()
	onKey    []func(key rune)
}

var _ port.Window = (*Window)(nil)

// NewWindow creates the window and makes its context current. calls may
// be nil; when set, PollEvents runs the calls queued for the main thread.
func NewWindow(ctx context.Context, cfg WindowConfig, calls *mainthread.Queue) (*Window, error) {
	if err := Init(); err != nil {
		return nil, err
	}
	log := logging.FromContext(ctx)

	glfw.DefaultWindowHints()
	glfw.WindowHint(glfw.ContextVersionMajor, 2)
	glfw.WindowHint(glfw.ContextVersionMinor, 0)
	glfw.WindowHint(glfw.Resizable, glfw.True)
	glfw.WindowHint(glfw.DoubleBuffer, glfw.True)
	glfw.WindowHint(glfw.Stereo, boolHint(cfg.QuadBuffer))
	if cfg.DepthBuffer {
		glfw.WindowHint(glfw.DepthBits, 24)
	} else {
		glfw.WindowHint(glfw.DepthBits, 0)
	}

	win, err := glfw.CreateWindow(cfg.Width, cfg.Height, cfg.Title, nil, nil)
	if err != nil && cfg.QuadBuffer {
		// Drivers without a stereo visual refuse the hint outright.
		log.Warn().Err(err).Msg("stereo pixel format refused, creating a mono window")
		glfw.WindowHint(glfw.Stereo, glfw.False)
		win, err = glfw.CreateWindow(cfg.Width, cfg.Height, cfg.Title, nil, nil)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to create GLFW window: %w", err)
	}

	w := &Window{
		win:    win,
		calls:  calls,
		stereo: cfg.Stereo,
		fps:    cfg.TargetFPS,
	}
	w.windowed = w.Placement()

	win.SetKeyCallback(func(_ *glfw.Window, key glfw.Key, _ int, action glfw.Action, _ glfw.ModifierKey) {
		if action != glfw.Press {
			return
		}
		switch key {
		case glfw.KeyEscape:
			win.SetShouldClose(true)
		case glfw.KeyS:
			w.SetStereoOutput(!w.IsStereoOutput())
		case glfw.KeyF11:
			w.SetFullScreen(!w.IsFullScreen())
		default:
			if key >= glfw.KeyA && key <= glfw.KeyZ {
				w.keyPressed(rune(key))
			}
		}
	})
	glfw.SetMonitorCallback(func(_ *glfw.Monitor, _ glfw.PeripheralEvent) {
		w.monitorsChanged()
	})

	if err := w.MakeCurrent(); err != nil {
		win.Destroy()
		return nil, err
	}
	if cfg.Fullscreen {
		w.SetFullScreen(true)
	}

	log.Debug().
		Int("width", cfg.Width).
		Int("height", cfg.Height).
		Bool("quad_buffer", cfg.QuadBuffer).
		Msg("window created")
	return w, nil
}

func boolHint(b bool) int {
	if b {
		return glfw.True
	}
	return glfw.False
}

func (w *Window) MakeCurrent() error {
	w.win.MakeContextCurrent()
	return nil
}

func (w *Window) SwapBuffers() { w.win.SwapBuffers() }

func (w *Window) FramebufferSize() (int, int) { return w.win.GetFramebufferSize() }

func (w *Window) Placement() entity.Rect {
	x, y := w.win.GetPos()
	width, height := w.win.GetSize()
	return entity.Rect{X: x, Y: y, W: width, H: height}
}

func (w *Window) SetPlacement(rect entity.Rect) {
	if rect.Empty() {
		return
	}
	if w.IsFullScreen() {
		w.windowed = rect
		return
	}
	w.win.SetPos(rect.X, rect.Y)
	w.win.SetSize(rect.W, rect.H)
}

func (w *Window) IsFullScreen() bool { return w.win.GetMonitor() != nil }

// SetFullScreen moves the window onto the monitor under its centre at that
// monitor's current video mode, or restores the windowed placement.
func (w *Window) SetFullScreen(on bool) {
	if on == w.IsFullScreen() {
		return
	}
	if !on {
		r := w.windowed
		w.win.SetMonitor(nil, r.X, r.Y, r.W, r.H, glfw.DontCare)
		return
	}
	w.windowed = w.Placement()
	mon := w.monitorUnderWindow()
	if mon == nil {
		return
	}
	mode := mon.GetVideoMode()
	w.win.SetMonitor(mon, 0, 0, mode.Width, mode.Height, mode.RefreshRate)
}

func (w *Window) monitorUnderWindow() *glfw.Monitor {
	mons := glfw.GetMonitors()
	if len(mons) == 0 {
		return nil
	}
	cx, cy := w.Placement().Center()
	target := describeMonitors(mons).At(cx, cy)
	return mons[target.ID]
}

func (w *Window) Show() { w.win.Show() }
func (w *Window) Hide() { w.win.Hide() }

func (w *Window) IsVisible() bool { return w.win.GetAttrib(glfw.Visible) == glfw.True }

func (w *Window) IsStereoOutput() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.stereo
}

// SetStereoOutput sets the application's stereo intent for the next frame.
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

func (w *Window) SetTargetFPS(fps float64) {
	w.mu.Lock()
	w.fps = fps
	w.mu.Unlock()
}

func (w *Window) Monitors() entity.Monitors { return describeMonitors(glfw.GetMonitors()) }

// OnMonitorsChanged registers fn to run on the main goroutine when a
// monitor is connected or disconnected.
func (w *Window) OnMonitorsChanged(fn func()) {
	w.mu.Lock()
	w.onChange = append(w.onChange, fn)
	w.mu.Unlock()
}

func (w *Window) monitorsChanged() {
	w.mu.Lock()
	callbacks := append([]func(){}, w.onChange...)
	w.mu.Unlock()
	for _, fn := range callbacks {
		fn()
	}
}

// OnKey registers fn for letter keys the window does not handle itself.
// fn receives the upper-case letter and runs on the main goroutine.
func (w *Window) OnKey(fn func(key rune)) {
	w.mu.Lock()
	w.onKey = append(w.onKey, fn)
	w.mu.Unlock()
}

func (w *Window) keyPressed(key rune) {
	w.mu.Lock()
	callbacks := append([]func(rune){}, w.onKey...)
	w.mu.Unlock()
	for _, fn := range callbacks {
		fn(key)
	}
}

// SetSwapInterval applies the vsync mode to the current context. Adaptive
// falls back to on when the tear extension is missing.
func (w *Window) SetSwapInterval(mode entity.VSyncMode) {
	switch mode {
	case entity.VSyncOff:
		glfw.SwapInterval(0)
	case entity.VSyncAdaptive:
		if glfw.ExtensionSupported("GLX_EXT_swap_control_tear") || glfw.ExtensionSupported("WGL_EXT_swap_control_tear") {
			glfw.SwapInterval(-1)
			return
		}
		glfw.SwapInterval(1)
	default:
		glfw.SwapInterval(1)
	}
}

// PollEvents processes window events and runs queued main-thread calls.
func (w *Window) PollEvents() {
	glfw.PollEvents()
	if w.calls != nil {
		w.calls.Drain()
	}
}

func (w *Window) ShouldClose() bool { return w.win.ShouldClose() }

// RequestClose makes ShouldClose report true.
func (w *Window) RequestClose() { w.win.SetShouldClose(true) }

// Close destroys the window. GLFW itself stays initialized until Terminate.
func (w *Window) Close() error {
	glfw.SetMonitorCallback(nil)
	w.win.Destroy()
	return nil
}

// Terminate releases GLFW. No window may be used afterwards.
func Terminate() {
	glfw.Terminate()
}

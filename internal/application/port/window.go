package port

import "github.com/bnema/pageflip/internal/domain/entity"

// Window is the primary window and event-pump layer consumed by the output.
// All methods must be called from the presentation thread.
type Window interface {
	MakeCurrent() error
	SwapBuffers()
	// FramebufferSize returns the drawable size in pixels.
	FramebufferSize() (width, height int)

	Placement() entity.Rect
	SetPlacement(rect entity.Rect)
	IsFullScreen() bool
	SetFullScreen(on bool)
	Show()
	Hide()
	IsVisible() bool

	// IsStereoOutput is the caller's declared intent for the current frame.
	IsStereoOutput() bool
	TargetFPS() float64
	Monitors() entity.Monitors
	SetSwapInterval(mode entity.VSyncMode)

	PollEvents()
	ShouldClose() bool
	Close() error
}

package port

import "github.com/bnema/pageflip/internal/domain/entity"

// GLContext is the primary rendering API bound to the window.
type GLContext interface {
	Version() (major, minor int)
	Viewport(x, y, width, height int)
	// SetDrawBuffer selects the draw buffer and returns the error the driver
	// raised for the call, if any.
	SetDrawBuffer(buf entity.DrawBuffer) error
	// HasStereoBuffers reports whether the current context exposes a
	// back-left/back-right pair.
	HasStereoBuffers() bool
	CreateFramebuffer(width, height int, depth bool) (Framebuffer, error)
	// BlitFlipped draws the framebuffer color texture into the current draw
	// target with the vertical axis flipped, scaled to width x height.
	BlitFlipped(fb Framebuffer, width, height int) error
	// DrawWarning renders a text overlay bottomOffset pixels above the
	// bottom of the viewport.
	DrawWarning(message string, bottomOffset int) error
}

// Framebuffer is an off-screen color (and optional depth) target.
type Framebuffer interface {
	Size() (width, height int)
	Bind()
	Unbind()
	// ReadPixels copies RGBA pixels into dst, bottom row first when
	// bottomUp, top row first otherwise.
	ReadPixels(dst []byte, bottomUp bool) error
	Release()
}

package headless

import (
	"errors"
	"fmt"

	"github.com/bnema/pageflip/internal/application/port"
	"github.com/bnema/pageflip/internal/domain/entity"
)

// ErrInvalidOperation mimics GL_INVALID_OPERATION from glDrawBuffer.
var ErrInvalidOperation = errors.New("GL_INVALID_OPERATION")

// GL is a simulated primary rendering context.
type GL struct {
	cfg    Config
	trace  *Trace
	window *Window
}

var _ port.GLContext = (*GL)(nil)

func (g *GL) Version() (int, int) { return g.cfg.GLMajor, g.cfg.GLMinor }

func (g *GL) Viewport(x, y, width, height int) {}

// Clear records the clear colour only.
func (g *GL) Clear(r, gr, b float32) { g.trace.Record("gl.clear") }

func (g *GL) SetDrawBuffer(buf entity.DrawBuffer) error {
	g.trace.Record("gl.drawbuffer=%s", buf)
	if buf != entity.DrawBufferBack && (g.cfg.DrawBufferError || !g.cfg.StereoBuffers) {
		return fmt.Errorf("glDrawBuffer(%s): %w", buf, ErrInvalidOperation)
	}
	if buf == entity.DrawBufferBackRight && g.cfg.BackRightError {
		return fmt.Errorf("glDrawBuffer(%s): %w", buf, ErrInvalidOperation)
	}
	return nil
}

func (g *GL) HasStereoBuffers() bool {
	g.trace.Record("gl.query-stereo")
	return g.cfg.StereoBuffers
}

func (g *GL) CreateFramebuffer(width, height int, depth bool) (port.Framebuffer, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("framebuffer %dx%d: invalid size", width, height)
	}
	g.trace.Record("gl.fb.create %dx%d depth=%t", width, height, depth)
	return &Framebuffer{trace: g.trace, width: width, height: height}, nil
}

func (g *GL) BlitFlipped(fb port.Framebuffer, width, height int) error {
	g.trace.Record("gl.blit-flipped %dx%d", width, height)
	return nil
}

func (g *GL) DrawWarning(message string, bottomOffset int) error {
	g.trace.Record("gl.warning offset=%d", bottomOffset)
	return nil
}

// Framebuffer is a simulated off-screen target filled with a fixed pattern.
type Framebuffer struct {
	trace    *Trace
	width    int
	height   int
	released bool
}

func (f *Framebuffer) Size() (int, int) { return f.width, f.height }

func (f *Framebuffer) Bind()   { f.trace.Record("gl.fb.bind") }
func (f *Framebuffer) Unbind() { f.trace.Record("gl.fb.unbind") }

func (f *Framebuffer) ReadPixels(dst []byte, bottomUp bool) error {
	if len(dst) < f.width*f.height*4 {
		return fmt.Errorf("read pixels: buffer holds %d bytes, need %d", len(dst), f.width*f.height*4)
	}
	f.trace.Record("gl.fb.read bottom-up=%t", bottomUp)
	return nil
}

func (f *Framebuffer) Release() {
	if f.released {
		return
	}
	f.released = true
	f.trace.Record("gl.fb.release")
}

package glfw

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync"

	"github.com/bnema/pageflip/internal/application/port"
	"github.com/bnema/pageflip/internal/domain/entity"
	"github.com/go-gl/gl/v2.1/gl"
)

const overlayHeight = 24

// ErrFramebufferIncomplete is returned when the driver rejects an
// off-screen target.
var ErrFramebufferIncomplete = errors.New("framebuffer incomplete")

var (
	glInitOnce sync.Once
	glInitErr  error
)

// GL is the legacy OpenGL context of a Window. It uses the fixed-function
// pipeline so it works on any 2.x driver that can expose stereo buffers.
type GL struct {
	major, minor int
}

var _ port.GLContext = (*GL)(nil)

// NewGL loads the GL entry points for the current context.
func NewGL(w *Window) (*GL, error) {
	if err := w.MakeCurrent(); err != nil {
		return nil, err
	}
	glInitOnce.Do(func() {
		if err := gl.Init(); err != nil {
			glInitErr = fmt.Errorf("failed to load OpenGL: %w", err)
		}
	})
	if glInitErr != nil {
		return nil, glInitErr
	}
	major, minor := parseGLVersion(gl.GoStr(gl.GetString(gl.VERSION)))
	return &GL{major: major, minor: minor}, nil
}

// parseGLVersion reads the leading "major.minor" of a GL_VERSION string,
// e.g. "4.6.0 NVIDIA 550.54" or "2.1 Mesa 23.1".
func parseGLVersion(version string) (int, int) {
	fields := strings.Fields(version)
	if len(fields) == 0 {
		return 0, 0
	}
	parts := strings.SplitN(fields[0], ".", 3)
	major, _ := strconv.Atoi(parts[0])
	minor := 0
	if len(parts) > 1 {
		minor, _ = strconv.Atoi(parts[1])
	}
	return major, minor
}

func (g *GL) Version() (int, int) { return g.major, g.minor }

func (g *GL) Viewport(x, y, width, height int) {
	gl.Viewport(int32(x), int32(y), int32(width), int32(height))
}

func drawBufferEnum(buf entity.DrawBuffer) uint32 {
	switch buf {
	case entity.DrawBufferBackLeft:
		return gl.BACK_LEFT
	case entity.DrawBufferBackRight:
		return gl.BACK_RIGHT
	default:
		return gl.BACK
	}
}

// SetDrawBuffer clears stale errors first so the returned error belongs to
// this call only.
func (g *GL) SetDrawBuffer(buf entity.DrawBuffer) error {
	clearErrors()
	gl.DrawBuffer(drawBufferEnum(buf))
	if code := gl.GetError(); code != gl.NO_ERROR {
		return fmt.Errorf("glDrawBuffer(%s): GL error 0x%04x", buf, code)
	}
	return nil
}

func clearErrors() {
	for i := 0; i < 8 && gl.GetError() != gl.NO_ERROR; i++ {
	}
}

func (g *GL) HasStereoBuffers() bool {
	var stereo bool
	gl.GetBooleanv(gl.STEREO, &stereo)
	return stereo
}

// Clear fills the current draw buffer with a solid colour.
func (g *GL) Clear(r, gr, b float32) {
	gl.ClearColor(r, gr, b, 1)
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
}

func (g *GL) CreateFramebuffer(width, height int, depth bool) (port.Framebuffer, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("framebuffer %dx%d: invalid size", width, height)
	}
	fb := &Framebuffer{width: width, height: height}

	gl.GenTextures(1, &fb.tex)
	gl.BindTexture(gl.TEXTURE_2D, fb.tex)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA8, int32(width), int32(height), 0, gl.RGBA, gl.UNSIGNED_BYTE, nil)
	gl.BindTexture(gl.TEXTURE_2D, 0)

	gl.GenFramebuffers(1, &fb.handle)
	gl.BindFramebuffer(gl.FRAMEBUFFER, fb.handle)
	gl.FramebufferTexture2D(gl.FRAMEBUFFER, gl.COLOR_ATTACHMENT0, gl.TEXTURE_2D, fb.tex, 0)
	if depth {
		gl.GenRenderbuffers(1, &fb.depth)
		gl.BindRenderbuffer(gl.RENDERBUFFER, fb.depth)
		gl.RenderbufferStorage(gl.RENDERBUFFER, gl.DEPTH_COMPONENT24, int32(width), int32(height))
		gl.FramebufferRenderbuffer(gl.FRAMEBUFFER, gl.DEPTH_ATTACHMENT, gl.RENDERBUFFER, fb.depth)
		gl.BindRenderbuffer(gl.RENDERBUFFER, 0)
	}
	status := gl.CheckFramebufferStatus(gl.FRAMEBUFFER)
	gl.BindFramebuffer(gl.FRAMEBUFFER, 0)

	if status != gl.FRAMEBUFFER_COMPLETE {
		fb.Release()
		return nil, fmt.Errorf("framebuffer %dx%d status 0x%04x: %w", width, height, status, ErrFramebufferIncomplete)
	}
	return fb, nil
}

// BlitFlipped draws the framebuffer texture as a full-viewport quad with
// the vertical texture axis inverted. Only the width x height corner of
// the texture is sampled.
func (g *GL) BlitFlipped(src port.Framebuffer, width, height int) error {
	fb, ok := src.(*Framebuffer)
	if !ok {
		return fmt.Errorf("blit: foreign framebuffer %T", src)
	}
	s := float32(width) / float32(fb.width)
	t := float32(height) / float32(fb.height)

	gl.Viewport(0, 0, int32(width), int32(height))
	gl.MatrixMode(gl.PROJECTION)
	gl.LoadIdentity()
	gl.MatrixMode(gl.MODELVIEW)
	gl.LoadIdentity()
	gl.Disable(gl.DEPTH_TEST)
	gl.Enable(gl.TEXTURE_2D)
	gl.BindTexture(gl.TEXTURE_2D, fb.tex)

	gl.Begin(gl.QUADS)
	gl.TexCoord2f(0, t)
	gl.Vertex2f(-1, -1)
	gl.TexCoord2f(s, t)
	gl.Vertex2f(1, -1)
	gl.TexCoord2f(s, 0)
	gl.Vertex2f(1, 1)
	gl.TexCoord2f(0, 0)
	gl.Vertex2f(-1, 1)
	gl.End()

	gl.BindTexture(gl.TEXTURE_2D, 0)
	gl.Disable(gl.TEXTURE_2D)
	if code := gl.GetError(); code != gl.NO_ERROR {
		return fmt.Errorf("blit: GL error 0x%04x", code)
	}
	return nil
}

// DrawWarning paints a banner strip bottomOffset pixels above the bottom
// of the viewport. There is no font atlas, so the message itself is only
// reported through the message queue.
func (g *GL) DrawWarning(_ string, bottomOffset int) error {
	var viewport [4]int32
	gl.GetIntegerv(gl.VIEWPORT, &viewport[0])

	gl.Enable(gl.SCISSOR_TEST)
	gl.Scissor(viewport[0], viewport[1]+int32(bottomOffset), viewport[2], overlayHeight)
	gl.ClearColor(0.75, 0.1, 0.1, 1)
	gl.Clear(gl.COLOR_BUFFER_BIT)
	gl.Disable(gl.SCISSOR_TEST)
	return nil
}

// Framebuffer is an FBO with a texture color attachment.
type Framebuffer struct {
	handle uint32
	tex    uint32
	depth  uint32
	width  int
	height int
}

func (f *Framebuffer) Size() (int, int) { return f.width, f.height }

func (f *Framebuffer) Bind() {
	gl.BindFramebuffer(gl.FRAMEBUFFER, f.handle)
	gl.Viewport(0, 0, int32(f.width), int32(f.height))
}

func (f *Framebuffer) Unbind() { gl.BindFramebuffer(gl.FRAMEBUFFER, 0) }

// ReadPixels returns rows bottom first as GL stores them when bottomUp is
// set, top first otherwise.
func (f *Framebuffer) ReadPixels(dst []byte, bottomUp bool) error {
	stride := f.width * 4
	if len(dst) < stride*f.height {
		return fmt.Errorf("read pixels: buffer holds %d bytes, need %d", len(dst), stride*f.height)
	}
	gl.BindFramebuffer(gl.READ_FRAMEBUFFER, f.handle)
	gl.PixelStorei(gl.PACK_ALIGNMENT, 1)
	gl.ReadPixels(0, 0, int32(f.width), int32(f.height), gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(dst))
	gl.BindFramebuffer(gl.READ_FRAMEBUFFER, 0)
	if code := gl.GetError(); code != gl.NO_ERROR {
		return fmt.Errorf("read pixels: GL error 0x%04x", code)
	}
	if !bottomUp {
		flipRows(dst[:stride*f.height], stride)
	}
	return nil
}

func flipRows(pix []byte, stride int) {
	tmp := make([]byte, stride)
	for top, bottom := 0, len(pix)-stride; top < bottom; top, bottom = top+stride, bottom-stride {
		copy(tmp, pix[top:top+stride])
		copy(pix[top:top+stride], pix[bottom:bottom+stride])
		copy(pix[bottom:bottom+stride], tmp)
	}
}

func (f *Framebuffer) Release() {
	if f.handle != 0 {
		gl.DeleteFramebuffers(1, &f.handle)
		f.handle = 0
	}
	if f.depth != 0 {
		gl.DeleteRenderbuffers(1, &f.depth)
		f.depth = 0
	}
	if f.tex != 0 {
		gl.DeleteTextures(1, &f.tex)
		f.tex = 0
	}
}

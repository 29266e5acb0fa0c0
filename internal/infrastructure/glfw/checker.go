package glfw

import (
	"context"
	"fmt"

	"github.com/bnema/pageflip/internal/application/port"
	"github.com/bnema/pageflip/internal/infrastructure/mainthread"
	"github.com/bnema/pageflip/internal/logging"
	"github.com/go-gl/gl/v2.1/gl"
	"github.com/go-gl/glfw/v3.3/glfw"
)

// QuadBufferChecker asks the driver for a stereo pixel format on a hidden
// throwaway window. The window work is handed to the main thread.
type QuadBufferChecker struct {
	calls *mainthread.Queue
}

var _ port.QuadBufferChecker = (*QuadBufferChecker)(nil)

// NewQuadBufferChecker creates a checker whose GLFW calls run through calls.
func NewQuadBufferChecker(calls *mainthread.Queue) *QuadBufferChecker {
	return &QuadBufferChecker{calls: calls}
}

func (c *QuadBufferChecker) CheckQuadBuffer(ctx context.Context) (bool, error) {
	var (
		supported bool
		checkErr  error
	)
	err := c.calls.Call(ctx, func() {
		supported, checkErr = checkOnMainThread()
	})
	if err != nil {
		return false, fmt.Errorf("quad buffer check: %w", err)
	}
	if checkErr != nil {
		logging.FromContext(ctx).Debug().Err(checkErr).Msg("stereo pixel format unavailable")
		return false, nil
	}
	return supported, nil
}

func checkOnMainThread() (bool, error) {
	if err := Init(); err != nil {
		return false, err
	}
	previous := glfw.GetCurrentContext()
	defer func() {
		if previous != nil {
			previous.MakeContextCurrent()
		} else {
			glfw.DetachCurrentContext()
		}
	}()

	glfw.DefaultWindowHints()
	glfw.WindowHint(glfw.Visible, glfw.False)
	glfw.WindowHint(glfw.Stereo, glfw.True)
	glfw.WindowHint(glfw.ContextVersionMajor, 2)
	glfw.WindowHint(glfw.ContextVersionMinor, 0)
	probe, err := glfw.CreateWindow(16, 16, "pageflip quad buffer probe", nil, nil)
	glfw.DefaultWindowHints()
	if err != nil {
		return false, err
	}
	defer probe.Destroy()

	probe.MakeContextCurrent()
	glInitOnce.Do(func() {
		if err := gl.Init(); err != nil {
			glInitErr = fmt.Errorf("failed to load OpenGL: %w", err)
		}
	})
	if glInitErr != nil {
		return false, glInitErr
	}
	var stereo bool
	gl.GetBooleanv(gl.STEREO, &stereo)
	return stereo, nil
}

package headless

import (
	"context"
	"time"

	"github.com/bnema/pageflip/internal/application/port"
	"github.com/bnema/pageflip/internal/domain/entity"
)

// Surface is a simulated secondary fullscreen surface covering its monitor.
type Surface struct {
	trace     *Trace
	handles   *handleSource
	monitor   entity.Monitor
	initDelay time.Duration
	initErr   error

	device   port.Handle
	surfaces port.SurfacePair
	left     []byte
	right    []byte
}

var _ port.SecondarySurface = (*Surface)(nil)

func (s *Surface) Init(ctx context.Context) error {
	if s.initDelay > 0 {
		select {
		case <-time.After(s.initDelay):
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	if s.initErr != nil {
		return s.initErr
	}
	s.device = s.handles.New()
	s.surfaces = port.SurfacePair{
		Left:       s.handles.New(),
		LeftShare:  s.handles.New(),
		Right:      s.handles.New(),
		RightShare: s.handles.New(),
	}
	w, h := s.Size()
	s.left = make([]byte, w*h*4)
	s.right = make([]byte, w*h*4)
	s.trace.Record("surface.init")
	return nil
}

func (s *Surface) Device() port.Handle        { return s.device }
func (s *Surface) Surfaces() port.SurfacePair { return s.surfaces }
func (s *Surface) Size() (int, int)           { return s.monitor.Rect.W, s.monitor.Rect.H }
func (s *Surface) Show() error                { s.trace.Record("surface.show"); return nil }
func (s *Surface) Hide() error                { s.trace.Record("surface.hide"); return nil }
func (s *Surface) Present() error             { s.trace.Record("surface.present"); return nil }
func (s *Surface) Release()                   { s.trace.Record("surface.release") }

func (s *Surface) Buffer(view entity.View) []byte {
	if view == entity.ViewRight {
		return s.right
	}
	return s.left
}

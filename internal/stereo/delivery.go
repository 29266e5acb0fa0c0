package stereo

import (
	"context"
	"fmt"

	"github.com/bnema/pageflip/internal/domain/entity"
	"github.com/bnema/pageflip/internal/logging"
)

// RedrawFunc renders one view into the current draw target.
type RedrawFunc func(view entity.View)

// warningOffset is the overlay distance from the bottom of the viewport.
const warningOffset = 100

// deliveryPath is one way of getting a left/right pair onto the display.
type deliveryPath interface {
	Name() string
	Available() bool
	// Activate prepares the path. It returns false while the path cannot
	// deliver stereo yet; Present then renders the path's fallback.
	Activate(ctx context.Context) (bool, error)
	Deactivate(ctx context.Context) error
	Present(ctx context.Context, redraw RedrawFunc) error
}

// nativeQuadBuffer draws into GL back-left/back-right with one swap.
type nativeQuadBuffer struct {
	p *Presenter
}

func (n *nativeQuadBuffer) Name() string { return "native-quad-buffer" }

func (n *nativeQuadBuffer) Available() bool {
	return n.p.prober.QuadBufferSupport() && !n.p.nativeFailed
}

func (n *nativeQuadBuffer) Activate(ctx context.Context) (bool, error) {
	if !n.Available() {
		return false, nil
	}
	if n.p.nativeChecked {
		return true, nil
	}
	n.p.nativeChecked = true
	if !n.p.gl.HasStereoBuffers() {
		n.p.latchNative(ctx, "context has no stereo buffers")
		return false, nil
	}
	return true, nil
}

func (n *nativeQuadBuffer) Deactivate(context.Context) error {
	return n.p.gl.SetDrawBuffer(entity.DrawBufferBack)
}

func (n *nativeQuadBuffer) Present(ctx context.Context, redraw RedrawFunc) error {
	p := n.p
	if !n.Available() {
		return p.unavailable.Present(ctx, redraw)
	}
	// Drivers may advertise stereo and still refuse back-right; nothing is
	// drawn until both buffers were accepted.
	for _, buf := range []entity.DrawBuffer{entity.DrawBufferBackRight, entity.DrawBufferBackLeft} {
		if err := p.gl.SetDrawBuffer(buf); err != nil {
			p.latchNative(ctx, err.Error())
			return p.unavailable.Present(ctx, redraw)
		}
	}
	redraw(entity.ViewLeft)
	_ = p.gl.SetDrawBuffer(entity.DrawBufferBackRight)
	redraw(entity.ViewRight)
	_ = p.gl.SetDrawBuffer(entity.DrawBufferBack)

	p.pacer.SleepToTarget()
	p.window.SwapBuffers()
	p.pacer.Inc()
	return nil
}

// secondaryBridge renders each eye off-screen and hands it to the
// secondary surface, either through shared surfaces or CPU readback.
type secondaryBridge struct {
	p *Presenter
}

func (s *secondaryBridge) Name() string { return "secondary-api" }

func (s *secondaryBridge) Available() bool {
	p := s.p
	return p.activation.supported() && p.prober.Result().SecondaryStereo() && !p.secondaryFailed
}

// Activate hands over to the secondary surface only for a fullscreen
// window. A window left in the middle of step 1 is not fullscreen by
// construction and continues to step 2.
func (s *secondaryBridge) Activate(ctx context.Context) (bool, error) {
	p := s.p
	a := p.activation
	if a.State() != entity.ActivationStep1 && !p.window.IsFullScreen() {
		if a.State() == entity.ActivationActive {
			a.wasFullscreen = false
		}
		if err := a.Deactivate(ctx); err != nil {
			logging.FromContext(ctx).Debug().Err(err).Msg("secondary deactivation for windowed output")
		}
		return false, nil
	}
	return a.Activate(ctx)
}

func (s *secondaryBridge) Deactivate(ctx context.Context) error {
	return s.p.activation.Deactivate(ctx)
}

func (s *secondaryBridge) Present(ctx context.Context, redraw RedrawFunc) error {
	p := s.p
	a := p.activation
	switch a.State() {
	case entity.ActivationActive:
	case entity.ActivationInactive:
		// Windowed: the secondary surface is fullscreen only.
		return p.unavailable.Present(ctx, redraw)
	default:
		// Still handing over; show the mono picture without blocking.
		return p.drawMono(redraw)
	}
	if a.worker == nil || a.worker.Stopped() {
		return ErrWorkerStopped
	}

	for _, view := range []entity.View{entity.ViewLeft, entity.ViewRight} {
		if err := s.deliverEye(view, redraw); err != nil {
			return fmt.Errorf("deliver %s eye: %w", view, err)
		}
	}
	a.worker.RequestUpdate()

	p.pacer.SleepToTarget()
	p.pacer.Inc()
	return nil
}

func (s *secondaryBridge) deliverEye(view entity.View, redraw RedrawFunc) error {
	p := s.p
	a := p.activation
	fb := a.fb
	width, height := fb.Size()

	fb.Bind()
	p.gl.Viewport(0, 0, width, height)
	redraw(view)
	fb.Unbind()

	lock := p.bridge.Lock()
	defer lock.Unlock()

	if a.useReadback {
		return a.worker.WriteBuffer(lock, view, func(dst []byte) error {
			// Secondary surfaces store the top row first.
			return fb.ReadPixels(dst, false)
		})
	}
	if err := lock.Bind(view); err != nil {
		return err
	}
	if err := p.gl.BlitFlipped(fb, width, height); err != nil {
		return err
	}
	return lock.Unbind(view)
}

// softwareAlternating draws one eye per swap. The emulated variant forces
// vsync on while stereo.
type softwareAlternating struct {
	p        *Presenter
	emulated bool
}

func (s *softwareAlternating) Name() string {
	if s.emulated {
		return "software-emulated"
	}
	return "software-alternating"
}

func (s *softwareAlternating) Available() bool { return true }

func (s *softwareAlternating) Activate(ctx context.Context) (bool, error) {
	if s.emulated {
		s.p.forceVSync(ctx)
	}
	return true, nil
}

func (s *softwareAlternating) Deactivate(ctx context.Context) error {
	if s.emulated {
		s.p.restoreVSync(ctx)
	}
	return nil
}

func (s *softwareAlternating) Present(ctx context.Context, redraw RedrawFunc) error {
	p := s.p
	dev := p.activeDevice()
	log := logging.FromContext(ctx)
	_ = p.gl.SetDrawBuffer(entity.DrawBufferBack)

	for _, view := range []entity.View{entity.ViewLeft, entity.ViewRight} {
		redraw(view)
		if view == entity.ViewLeft {
			p.pacer.SleepToTarget()
		}
		hasAck := dev.HasAck()
		if hasAck {
			if err := dev.WaitAck(ctx, view, p.tunables.AckTimeout); err != nil {
				log.Trace().Err(err).Str("view", view.String()).Msg("eye ack not received")
			}
		}
		p.window.SwapBuffers()
		p.pacer.Inc()
		dev.AfterSwap(ctx, view)
		if !hasAck && p.tunables.AckFallbackDelay > 0 {
			p.sleep(p.tunables.AckFallbackDelay)
		}
	}
	return nil
}

// unavailable draws both eyes into the plain back buffer under a warning
// overlay.
type unavailable struct {
	p *Presenter
}

func (u *unavailable) Name() string                           { return "unavailable" }
func (u *unavailable) Available() bool                        { return true }
func (u *unavailable) Activate(context.Context) (bool, error) { return false, nil }
func (u *unavailable) Deactivate(context.Context) error       { return nil }

func (u *unavailable) Present(ctx context.Context, redraw RedrawFunc) error {
	p := u.p
	_ = p.gl.SetDrawBuffer(entity.DrawBufferBack)
	redraw(entity.ViewRight)
	redraw(entity.ViewLeft)
	p.drawWarning(ctx)

	p.pacer.SleepToTarget()
	p.window.SwapBuffers()
	p.pacer.Inc()
	return nil
}

package stereo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/bnema/pageflip/internal/application/port"
	"github.com/bnema/pageflip/internal/domain/entity"
	"github.com/bnema/pageflip/internal/logging"
)

// secondaryActivation performs the two-step handover between the primary
// window and the secondary fullscreen surface, and owns the worker and
// the off-screen framebuffer used while active. It runs on the
// presentation thread only.
type secondaryActivation struct {
	window  port.Window
	gl      port.GLContext
	bridge  *Bridge
	factory port.SecondarySurfaceFactory
	timings WorkerTimings

	readyTimeout time.Duration
	readyPoll    time.Duration
	readback     bool
	depth        bool

	state         entity.ActivationState
	wasFullscreen bool
	worker        *Worker
	fb            port.Framebuffer
	useReadback   bool
}

func (a *secondaryActivation) supported() bool {
	return a.factory != nil
}

// State returns the current activation state.
func (a *secondaryActivation) State() entity.ActivationState {
	return a.state
}

// ensureWorker starts a worker on the monitor hosting the window.
func (a *secondaryActivation) ensureWorker(ctx context.Context) error {
	if a.worker != nil && !a.worker.Stopped() {
		return nil
	}
	if a.factory == nil {
		return fmt.Errorf("secondary surface: %w", errors.ErrUnsupported)
	}
	cx, cy := a.window.Placement().Center()
	monitor := a.window.Monitors().At(cx, cy)
	surface, err := a.factory(monitor)
	if err != nil {
		return fmt.Errorf("create secondary surface: %w", err)
	}
	a.worker = NewWorker(surface, a.bridge, a.timings)
	a.worker.Start(ctx)
	logging.FromContext(ctx).Debug().Int("monitor", monitor.ID).Str("monitor_name", monitor.Name).Msg("secondary worker started")
	return nil
}

// Activate advances the handover by one step. It returns true once the
// secondary surface is active. The first call from INACTIVE only performs
// step 1 and returns false without blocking.
func (a *secondaryActivation) Activate(ctx context.Context) (bool, error) {
	log := logging.FromContext(ctx)
	switch a.state {
	case entity.ActivationActive:
		return true, nil
	case entity.ActivationInactive:
		if err := a.ensureWorker(ctx); err != nil {
			return false, err
		}
		a.wasFullscreen = a.window.IsFullScreen()
		a.window.SetFullScreen(false)
		a.window.Hide()
		a.state = entity.ActivationStep1
		log.Debug().Bool("was_fullscreen", a.wasFullscreen).Msg("activation step 1 done")
		return false, nil
	case entity.ActivationStep1:
		if err := a.step2(ctx); err != nil {
			if derr := a.Deactivate(ctx); derr != nil {
				log.Debug().Err(derr).Msg("rollback after failed activation")
			}
			return false, err
		}
		a.state = entity.ActivationActive
		log.Debug().Bool("readback", a.useReadback).Msg("secondary surface active")
		return true, nil
	default:
		return false, fmt.Errorf("activate from %s: %w", a.state, ErrPrecondition)
	}
}

func (a *secondaryActivation) step2(ctx context.Context) error {
	if err := a.worker.WaitReady(ctx, a.readyTimeout, a.readyPoll); err != nil {
		return err
	}
	if err := a.worker.Show(ctx); err != nil {
		return fmt.Errorf("show secondary surface: %w", err)
	}
	a.window.SetFullScreen(true)
	a.window.Hide()

	surface := a.worker.Surface()
	width, height := surface.Size()

	lock := a.bridge.Lock()
	defer lock.Unlock()

	switch {
	case a.bridge.ShareAvailable():
		if err := lock.Open(surface.Device()); err != nil {
			return err
		}
		if err := lock.Resize(surface.Surfaces(), width, height); err != nil {
			return err
		}
		a.useReadback = false
	case a.readback:
		a.useReadback = true
	default:
		return ErrShareExtensionMissing
	}

	if a.fb != nil {
		if fw, fh := a.fb.Size(); fw != width || fh != height {
			a.fb.Release()
			a.fb = nil
		}
	}
	if a.fb == nil {
		fb, err := a.gl.CreateFramebuffer(width, height, a.depth)
		if err != nil {
			return fmt.Errorf("create off-screen buffer %dx%d: %w", width, height, err)
		}
		a.fb = fb
	}
	return nil
}

// Deactivate returns to INACTIVE. Registrations are released under the
// buffer lock before the secondary surface is hidden and the primary
// window shown again. It is a no-op when already inactive.
func (a *secondaryActivation) Deactivate(ctx context.Context) error {
	if a.state == entity.ActivationInactive {
		return nil
	}
	prev := a.state
	a.state = entity.ActivationDeactivating

	var errs []error
	lock := a.bridge.Lock()
	if err := lock.Release(); err != nil {
		errs = append(errs, err)
	}
	lock.Unlock()

	if a.worker != nil {
		if err := a.worker.Hide(ctx); err != nil {
			errs = append(errs, fmt.Errorf("hide secondary surface: %w", err))
		}
	}
	if a.fb != nil {
		a.fb.Release()
		a.fb = nil
	}
	a.window.SetFullScreen(a.wasFullscreen)
	a.window.Show()
	a.state = entity.ActivationInactive

	logging.FromContext(ctx).Debug().Str("from", prev.String()).Msg("secondary surface deactivated")
	return errors.Join(errs...)
}

// RecreateWorker replaces the worker so it lands on the monitor now
// hosting the window. Only done while inactive; an active surface is not
// migrated.
func (a *secondaryActivation) RecreateWorker(ctx context.Context) (bool, error) {
	if a.state != entity.ActivationInactive || a.factory == nil {
		return false, nil
	}
	if err := a.stopWorker(ctx); err != nil {
		return false, err
	}
	return true, a.ensureWorker(ctx)
}

func (a *secondaryActivation) stopWorker(ctx context.Context) error {
	if a.worker == nil {
		return nil
	}
	err := a.worker.Quit(ctx)
	a.worker = nil
	return err
}

// Shutdown deactivates and stops the worker.
func (a *secondaryActivation) Shutdown(ctx context.Context) error {
	derr := a.Deactivate(ctx)
	qerr := a.stopWorker(ctx)
	return errors.Join(derr, qerr)
}

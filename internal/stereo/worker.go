package stereo

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"sync"
	"sync/atomic"
	"time"

	"github.com/bnema/pageflip/internal/application/port"
	"github.com/bnema/pageflip/internal/domain/entity"
	"github.com/bnema/pageflip/internal/logging"
)

// WorkerTimings bounds every wait on the worker.
type WorkerTimings struct {
	AckTimeout  time.Duration
	QuitTimeout time.Duration
	// Refresh is the worker's own present interval when no update is
	// requested. Zero presents only on request.
	Refresh time.Duration
}

// DefaultWorkerTimings returns the timings used when config leaves them unset.
func DefaultWorkerTimings() WorkerTimings {
	return WorkerTimings{
		AckTimeout:  time.Second,
		QuitTimeout: 2 * time.Second,
	}
}

type workerCmdKind int

const (
	cmdShow workerCmdKind = iota
	cmdHide
)

type workerCmd struct {
	kind workerCmdKind
	ack  chan error
}

// Worker owns the secondary surface on a dedicated OS thread. The primary
// side talks to it through commands with bounded acknowledgement, a
// coalesced update request and the bridge lock.
type Worker struct {
	surface port.SecondarySurface
	bridge  *Bridge
	timings WorkerTimings

	cmds   chan workerCmd
	update chan struct{}
	quit   chan struct{}
	done   chan struct{}

	ready   atomic.Bool
	busy    atomic.Bool
	visible atomic.Bool
	started atomic.Bool

	quitOnce sync.Once
	initErr  atomic.Pointer[error]
	presents atomic.Uint64
}

// NewWorker creates a worker for surface. Nothing runs until Start.
func NewWorker(surface port.SecondarySurface, bridge *Bridge, timings WorkerTimings) *Worker {
	def := DefaultWorkerTimings()
	if timings.AckTimeout <= 0 {
		timings.AckTimeout = def.AckTimeout
	}
	if timings.QuitTimeout <= 0 {
		timings.QuitTimeout = def.QuitTimeout
	}
	return &Worker{
		surface: surface,
		bridge:  bridge,
		timings: timings,
		cmds:    make(chan workerCmd),
		update:  make(chan struct{}, 1),
		quit:    make(chan struct{}),
		done:    make(chan struct{}),
	}
}

// Start launches the worker goroutine. Only the first call has effect.
func (w *Worker) Start(ctx context.Context) {
	if !w.started.CompareAndSwap(false, true) {
		return
	}
	ctx = logging.WithComponent(ctx, "worker")
	go w.loop(context.WithoutCancel(ctx))
}

func (w *Worker) loop(ctx context.Context) {
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()
	defer close(w.done)

	log := logging.FromContext(ctx)

	if err := w.surface.Init(ctx); err != nil {
		w.initErr.Store(&err)
		log.Warn().Err(err).Msg("secondary surface init failed")
		return
	}
	defer w.surface.Release()
	w.ready.Store(true)
	defer w.ready.Store(false)
	log.Debug().Msg("secondary surface ready")

	var tick <-chan time.Time
	if w.timings.Refresh > 0 {
		ticker := time.NewTicker(w.timings.Refresh)
		defer ticker.Stop()
		tick = ticker.C
	}

	for {
		select {
		case <-w.quit:
			if w.visible.Load() {
				if err := w.surface.Hide(); err != nil {
					log.Debug().Err(err).Msg("hide on quit failed")
				}
				w.visible.Store(false)
			}
			log.Debug().Msg("worker quit")
			return
		case cmd := <-w.cmds:
			cmd.ack <- w.handle(cmd)
		case <-w.update:
			w.present(ctx)
		case <-tick:
			if w.visible.Load() {
				w.present(ctx)
			}
		}
	}
}

func (w *Worker) handle(cmd workerCmd) error {
	switch cmd.kind {
	case cmdShow:
		if w.visible.Load() {
			return nil
		}
		if err := w.surface.Show(); err != nil {
			return err
		}
		w.visible.Store(true)
	case cmdHide:
		if !w.visible.Load() {
			return nil
		}
		if err := w.surface.Hide(); err != nil {
			return err
		}
		w.visible.Store(false)
	}
	return nil
}

func (w *Worker) present(ctx context.Context) {
	w.busy.Store(true)
	defer w.busy.Store(false)

	lock := w.bridge.Lock()
	err := w.surface.Present()
	lock.Unlock()

	if err != nil {
		logging.FromContext(ctx).Trace().Err(err).Msg("secondary present failed")
		return
	}
	w.presents.Add(1)
}

// Ready reports whether the surface finished initializing.
func (w *Worker) Ready() bool { return w.ready.Load() }

// IsBusy reports whether the worker is presenting right now.
func (w *Worker) IsBusy() bool { return w.busy.Load() }

// Visible reports whether the secondary surface is shown.
func (w *Worker) Visible() bool { return w.visible.Load() }

// Presents returns how many frames the worker has presented.
func (w *Worker) Presents() uint64 { return w.presents.Load() }

// Stopped reports whether the worker goroutine has exited.
func (w *Worker) Stopped() bool {
	select {
	case <-w.done:
		return true
	default:
		return false
	}
}

// WaitReady polls until the surface is ready, the worker stops, ctx is done
// or timeout elapses. It never waits longer than timeout.
func (w *Worker) WaitReady(ctx context.Context, timeout, poll time.Duration) error {
	if poll <= 0 {
		poll = 10 * time.Millisecond
	}
	deadline := time.Now().Add(timeout)
	for {
		if w.ready.Load() {
			return nil
		}
		if w.Stopped() {
			if errp := w.initErr.Load(); errp != nil {
				return fmt.Errorf("%w: %w", ErrNotReady, *errp)
			}
			return ErrWorkerStopped
		}
		if !time.Now().Before(deadline) {
			return fmt.Errorf("%w within %s", ErrNotReady, timeout)
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(poll):
		}
	}
}

// Show makes the secondary surface visible and waits for the worker's ack.
func (w *Worker) Show(ctx context.Context) error { return w.send(ctx, cmdShow) }

// Hide hides the secondary surface and waits for the worker's ack.
func (w *Worker) Hide(ctx context.Context) error { return w.send(ctx, cmdHide) }

func (w *Worker) send(ctx context.Context, kind workerCmdKind) error {
	if !w.started.Load() || w.Stopped() {
		if kind == cmdHide {
			return nil
		}
		return ErrWorkerStopped
	}
	// A surface that never became ready was never shown.
	if kind == cmdHide && !w.ready.Load() {
		return nil
	}
	timer := time.NewTimer(w.timings.AckTimeout)
	defer timer.Stop()

	cmd := workerCmd{kind: kind, ack: make(chan error, 1)}
	select {
	case w.cmds <- cmd:
	case <-w.done:
		return ErrWorkerStopped
	case <-timer.C:
		return fmt.Errorf("worker command: %w", context.DeadlineExceeded)
	case <-ctx.Done():
		return ctx.Err()
	}
	select {
	case err := <-cmd.ack:
		return err
	case <-w.done:
		return ErrWorkerStopped
	case <-timer.C:
		return fmt.Errorf("worker ack: %w", context.DeadlineExceeded)
	case <-ctx.Done():
		return ctx.Err()
	}
}

// RequestUpdate asks the worker to present the shared surfaces. Requests
// made while one is pending are coalesced.
func (w *Worker) RequestUpdate() {
	select {
	case w.update <- struct{}{}:
	default:
	}
}

// WriteBuffer fills the CPU staging buffer of one eye. The caller must hold
// the bridge lock.
func (w *Worker) WriteBuffer(lock *BufferLock, view entity.View, fill func(dst []byte) error) error {
	if !lock.Held() {
		return precondition("write "+view.String()+" buffer", ErrNotLocked)
	}
	if !w.ready.Load() {
		return ErrNotReady
	}
	dst := w.surface.Buffer(view)
	if dst == nil {
		return errors.New("secondary surface has no staging buffer")
	}
	return fill(dst)
}

// Surface exposes the secondary surface for registration. Only immutable
// accessors may be used on it.
func (w *Worker) Surface() port.SecondarySurface { return w.surface }

// Quit asks the worker to stop and waits for it, bounded by the quit
// timeout. On ErrQuitTimeout the caller must not release shared resources
// the worker could still touch.
func (w *Worker) Quit(ctx context.Context) error {
	w.quitOnce.Do(func() { close(w.quit) })
	if !w.started.Load() {
		return nil
	}
	timer := time.NewTimer(w.timings.QuitTimeout)
	defer timer.Stop()
	select {
	case <-w.done:
		return nil
	case <-timer.C:
		logging.FromContext(ctx).Warn().Dur("timeout", w.timings.QuitTimeout).Msg("secondary worker did not quit in time")
		return ErrQuitTimeout
	case <-ctx.Done():
		return ctx.Err()
	}
}

package stereo_test

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bnema/pageflip/internal/domain/entity"
	"github.com/bnema/pageflip/internal/infrastructure/headless"
	"github.com/bnema/pageflip/internal/stereo"
)

func newTestWorker(t *testing.T, cfg headless.Config, timings stereo.WorkerTimings) (*stereo.Worker, *headless.Backend) {
	t.Helper()
	if cfg.Secondary == nil {
		cfg.Secondary = nvidiaSecondary(true)
	}
	backend := headless.New(cfg)
	surface, err := backend.SurfaceFactory()(cfg.Monitors[0])
	require.NoError(t, err)
	w := stereo.NewWorker(surface, stereo.NewBridge(backend.Interop()), timings)
	return w, backend
}

func TestWorker_ShowHideAcknowledged(t *testing.T) {
	ctx := testCtx()
	w, backend := newTestWorker(t, headless.DefaultConfig(), stereo.WorkerTimings{})
	w.Start(ctx)
	t.Cleanup(func() { _ = w.Quit(ctx) })

	require.NoError(t, w.WaitReady(ctx, time.Second, time.Millisecond))
	require.NoError(t, w.Show(ctx))
	assert.True(t, w.Visible())
	require.NoError(t, w.Show(ctx))
	require.NoError(t, w.Hide(ctx))
	assert.False(t, w.Visible())

	trace := backend.Trace()
	assert.Equal(t, 1, trace.Count("surface.show"))
	assert.Equal(t, 1, trace.Count("surface.hide"))
}

func TestWorker_WaitReadyTimesOut(t *testing.T) {
	ctx := testCtx()
	cfg := headless.DefaultConfig()
	cfg.SurfaceInitDelay = 200 * time.Millisecond
	w, _ := newTestWorker(t, cfg, stereo.WorkerTimings{})
	w.Start(ctx)
	t.Cleanup(func() { _ = w.Quit(ctx) })

	start := time.Now()
	err := w.WaitReady(ctx, 20*time.Millisecond, 5*time.Millisecond)
	assert.ErrorIs(t, err, stereo.ErrNotReady)
	assert.Less(t, time.Since(start), 150*time.Millisecond)

	// Hiding a surface that never became ready does not wait for the worker.
	start = time.Now()
	assert.NoError(t, w.Hide(ctx))
	assert.Less(t, time.Since(start), 100*time.Millisecond)
}

func TestWorker_InitErrorStopsWorker(t *testing.T) {
	ctx := testCtx()
	boom := errors.New("no vulkan device")
	cfg := headless.DefaultConfig()
	cfg.SurfaceInitErr = boom
	w, _ := newTestWorker(t, cfg, stereo.WorkerTimings{})
	w.Start(ctx)

	err := w.WaitReady(ctx, time.Second, time.Millisecond)
	assert.ErrorIs(t, err, stereo.ErrNotReady)
	assert.ErrorIs(t, err, boom)
	assert.True(t, w.Stopped())
	assert.ErrorIs(t, w.Show(ctx), stereo.ErrWorkerStopped)
	assert.NoError(t, w.Hide(ctx))
	assert.NoError(t, w.Quit(ctx))
}

func TestWorker_WriteBufferRequiresLock(t *testing.T) {
	ctx := testCtx()
	w, backend := newTestWorker(t, headless.DefaultConfig(), stereo.WorkerTimings{})
	bridge := stereo.NewBridge(backend.Interop())
	w.Start(ctx)
	t.Cleanup(func() { _ = w.Quit(ctx) })
	require.NoError(t, w.WaitReady(ctx, time.Second, time.Millisecond))

	lock := bridge.Lock()
	lock.Unlock()
	err := w.WriteBuffer(lock, entity.ViewLeft, func([]byte) error { return nil })
	assert.ErrorIs(t, err, stereo.ErrNotLocked)
	assert.ErrorIs(t, err, stereo.ErrPrecondition)

	lock = bridge.Lock()
	defer lock.Unlock()
	var size int
	require.NoError(t, w.WriteBuffer(lock, entity.ViewRight, func(dst []byte) error {
		size = len(dst)
		return nil
	}))
	assert.Equal(t, 1920*1080*4, size)
}

func TestWorker_UpdatesAreCoalesced(t *testing.T) {
	ctx := testCtx()
	w, _ := newTestWorker(t, headless.DefaultConfig(), stereo.WorkerTimings{})
	w.Start(ctx)
	t.Cleanup(func() { _ = w.Quit(ctx) })
	require.NoError(t, w.WaitReady(ctx, time.Second, time.Millisecond))

	for i := 0; i < 10; i++ {
		w.RequestUpdate()
	}
	assert.Eventually(t, func() bool { return w.Presents() >= 1 }, time.Second, time.Millisecond)
	assert.LessOrEqual(t, w.Presents(), uint64(10))
}

func TestWorker_QuitIsBounded(t *testing.T) {
	ctx := testCtx()
	cfg := headless.DefaultConfig()
	cfg.SurfaceInitDelay = 300 * time.Millisecond
	w, _ := newTestWorker(t, cfg, stereo.WorkerTimings{QuitTimeout: 20 * time.Millisecond})
	w.Start(ctx)

	start := time.Now()
	err := w.Quit(ctx)
	assert.ErrorIs(t, err, stereo.ErrQuitTimeout)
	assert.Less(t, time.Since(start), 200*time.Millisecond)

	assert.Eventually(t, w.Stopped, 2*time.Second, 5*time.Millisecond)
	assert.NoError(t, w.Quit(ctx))
}

func TestWorker_QuitHidesVisibleSurface(t *testing.T) {
	ctx := testCtx()
	w, backend := newTestWorker(t, headless.DefaultConfig(), stereo.WorkerTimings{})
	w.Start(ctx)
	require.NoError(t, w.WaitReady(ctx, time.Second, time.Millisecond))
	require.NoError(t, w.Show(ctx))

	require.NoError(t, w.Quit(ctx))
	trace := backend.Trace()
	assert.Equal(t, []string{"surface.hide", "surface.release"},
		headless.Filter(trace.Events(), "surface.hide", "surface.release"))
}

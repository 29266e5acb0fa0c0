package stereo

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bnema/pageflip/internal/application/port"
	"github.com/bnema/pageflip/internal/domain/entity"
	"github.com/bnema/pageflip/internal/infrastructure/headless"
)

func newTestBridge(t *testing.T, reject bool) (*Bridge, *headless.Trace) {
	t.Helper()
	cfg := headless.DefaultConfig()
	cfg.Secondary = &entity.SecondaryAPIInfo{HasShareExtension: true}
	cfg.RejectRegistration = reject
	b := headless.New(cfg)
	require.NotNil(t, b.Interop())
	return NewBridge(b.Interop()), b.Trace()
}

var testSurfaces = port.SurfacePair{Left: 11, LeftShare: 12, Right: 13, RightShare: 14}

func TestBridge_ResizeIsIdempotent(t *testing.T) {
	bridge, trace := newTestBridge(t, false)

	lock := bridge.Lock()
	defer lock.Unlock()
	require.NoError(t, lock.Open(100))

	for i := 0; i < 3; i++ {
		require.NoError(t, lock.Resize(testSurfaces, 1920, 1080))
	}

	assert.Equal(t, 2, trace.Count("interop.register"))
	assert.Equal(t, 0, trace.Count("interop.unregister"))
	assert.True(t, lock.Registered())
	w, h := lock.Size()
	assert.Equal(t, 1920, w)
	assert.Equal(t, 1080, h)
}

func TestBridge_ResizeWithNewSizeReregisters(t *testing.T) {
	bridge, trace := newTestBridge(t, false)

	lock := bridge.Lock()
	defer lock.Unlock()
	require.NoError(t, lock.Open(100))
	require.NoError(t, lock.Resize(testSurfaces, 1920, 1080))
	require.NoError(t, lock.Resize(testSurfaces, 1280, 720))

	assert.Equal(t, 4, trace.Count("interop.register"))
	assert.Equal(t, 2, trace.Count("interop.unregister"))
}

func TestBridge_BindWithoutLockFails(t *testing.T) {
	bridge, trace := newTestBridge(t, false)

	lock := bridge.Lock()
	require.NoError(t, lock.Open(100))
	require.NoError(t, lock.Resize(testSurfaces, 640, 480))
	lock.Unlock()

	for _, bind := range []func() error{lock.BindLeft, lock.BindRight, lock.UnbindLeft, lock.UnbindRight} {
		err := bind()
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrNotLocked)
		assert.ErrorIs(t, err, ErrPrecondition)
	}
	assert.Equal(t, 0, trace.Count("interop.bind"))

	err := lock.Resize(testSurfaces, 640, 480)
	assert.ErrorIs(t, err, ErrNotLocked)
}

func TestBridge_BindWithoutRegistrationIsSilent(t *testing.T) {
	bridge, trace := newTestBridge(t, false)

	lock := bridge.Lock()
	defer lock.Unlock()

	assert.NoError(t, lock.BindLeft())
	assert.NoError(t, lock.UnbindLeft())
	assert.NoError(t, lock.BindRight())
	assert.NoError(t, lock.UnbindRight())
	assert.Equal(t, 0, trace.Count("interop.bind"))
}

func TestBridge_BindLocksObjectsAndUnlockUnbinds(t *testing.T) {
	bridge, trace := newTestBridge(t, false)

	lock := bridge.Lock()
	require.NoError(t, lock.Open(100))
	require.NoError(t, lock.Resize(testSurfaces, 640, 480))

	mark := trace.Len()
	require.NoError(t, lock.BindLeft())
	require.NoError(t, lock.BindLeft())
	lock.Unlock()
	lock.Unlock()

	assert.Equal(t, []string{"interop.lock", "interop.bind", "interop.unbind", "interop.unlock"}, trace.Since(mark))
}

func TestBridge_ResizeNullSurfaceKeepsState(t *testing.T) {
	bridge, trace := newTestBridge(t, false)

	lock := bridge.Lock()
	defer lock.Unlock()
	require.NoError(t, lock.Open(100))
	require.NoError(t, lock.Resize(testSurfaces, 640, 480))

	broken := testSurfaces
	broken.Right = port.NullHandle
	err := lock.Resize(broken, 800, 600)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNullSurface)
	assert.ErrorIs(t, err, ErrPrecondition)

	assert.True(t, lock.Registered())
	w, h := lock.Size()
	assert.Equal(t, 640, w)
	assert.Equal(t, 480, h)
	assert.Equal(t, 2, trace.Count("interop.register"))
}

func TestBridge_RejectedRegistrationIsNotRetried(t *testing.T) {
	bridge, trace := newTestBridge(t, true)

	lock := bridge.Lock()
	defer lock.Unlock()
	require.NoError(t, lock.Open(100))

	err := lock.Resize(testSurfaces, 640, 480)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrRegistrationRejected)
	assert.False(t, lock.Registered())
	attempts := trace.Count("interop.register")

	err = lock.Resize(testSurfaces, 640, 480)
	assert.ErrorIs(t, err, ErrRegistrationRejected)
	assert.Equal(t, attempts, trace.Count("interop.register"))

	_ = lock.Resize(testSurfaces, 800, 600)
	assert.Greater(t, trace.Count("interop.register"), attempts)
}

func TestBridge_ReleaseIsIdempotent(t *testing.T) {
	bridge, trace := newTestBridge(t, false)

	lock := bridge.Lock()
	defer lock.Unlock()
	require.NoError(t, lock.Open(100))
	require.NoError(t, lock.Resize(testSurfaces, 640, 480))

	require.NoError(t, lock.Release())
	require.NoError(t, lock.Release())

	assert.Equal(t, 2, trace.Count("interop.unregister"))
	assert.Equal(t, 1, trace.Count("interop.close"))
	assert.False(t, lock.IsOpen())
}

func TestBridge_OpenWithoutShareExtension(t *testing.T) {
	bridge := NewBridge(nil)
	assert.False(t, bridge.ShareAvailable())

	lock := bridge.Lock()
	defer lock.Unlock()
	assert.ErrorIs(t, lock.Open(100), ErrShareExtensionMissing)
	assert.NoError(t, lock.Release())
}

package cli_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bnema/pageflip/internal/cli"
	"github.com/bnema/pageflip/internal/domain/entity"
	"github.com/bnema/pageflip/internal/infrastructure/headless"
	"github.com/bnema/pageflip/internal/logging"
	"github.com/bnema/pageflip/internal/stereo"
)

func testCtx() context.Context {
	return logging.WithContext(context.Background(), logging.NewFromConfigValues("disabled", "console"))
}

func newHeadlessOutput(t *testing.T) (*stereo.Output, *headless.Backend) {
	t.Helper()
	ctx := testCtx()
	backend := headless.New(headless.DefaultConfig())
	prober := stereo.NewProber(backend.QuadBufferChecker(), backend.SecondaryInspector(), time.Second)
	prober.ProbeAsync(ctx)
	_, err := prober.Wait(ctx)
	require.NoError(t, err)

	out, err := stereo.New(ctx, stereo.Deps{
		Window: backend.Window(),
		GL:     backend.GL(),
		Prober: prober,
	}, stereo.Config{})
	require.NoError(t, err)
	t.Cleanup(func() { _ = out.Close(ctx) })
	return out, backend
}

func TestHandleKey_CyclesQuadBufferType(t *testing.T) {
	out, _ := newHeadlessOutput(t)
	require.Equal(t, entity.QuadBufferHardwareGL, out.QuadBufferMode())

	assert.True(t, cli.HandleKey(out, 'Q'))
	assert.Equal(t, entity.QuadBufferHardwareSecondary, out.QuadBufferMode())
	assert.True(t, out.NeedsReset())

	out.ClearReset()
	cli.HandleKey(out, 'Q')
	assert.Equal(t, entity.QuadBufferHardwareGL, out.QuadBufferMode())
	assert.True(t, out.NeedsReset())
}

func TestHandleKey_ExtraOptionsAddEmulated(t *testing.T) {
	out, _ := newHeadlessOutput(t)

	cli.HandleKey(out, 'E')
	assert.True(t, out.ShowExtra())
	assert.True(t, out.NeedsReset())

	cli.HandleKey(out, 'Q')
	cli.HandleKey(out, 'Q')
	assert.Equal(t, entity.QuadBufferEmulated, out.QuadBufferMode())

	// Hiding the extra options drops the emulated type.
	cli.HandleKey(out, 'E')
	assert.False(t, out.ShowExtra())
	assert.Equal(t, entity.QuadBufferHardwareGL, out.QuadBufferMode())
}

func TestHandleKey_CyclesDevices(t *testing.T) {
	out, _ := newHeadlessOutput(t)
	require.Equal(t, entity.DeviceIDShutters, out.DeviceID())

	cli.HandleKey(out, 'D')
	assert.Equal(t, entity.DeviceIDVuzix, out.DeviceID())
	assert.False(t, out.NeedsReset())

	cli.HandleKey(out, 'D')
	assert.Equal(t, entity.DeviceIDShutters, out.DeviceID())
}

func TestHandleKey_Unbound(t *testing.T) {
	out, _ := newHeadlessOutput(t)

	assert.False(t, cli.HandleKey(out, 'X'))
	assert.False(t, out.NeedsReset())
}

package stereo

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bnema/pageflip/internal/domain/entity"
	"github.com/bnema/pageflip/internal/infrastructure/headless"
	"github.com/bnema/pageflip/internal/logging"
)

func quietCtx() context.Context {
	return logging.WithContext(context.Background(), logging.NewFromConfigValues("disabled", "console"))
}

func newActiveSecondary(t *testing.T, share bool) (*Output, *headless.Backend, *headless.Messages) {
	t.Helper()
	ctx := quietCtx()

	cfg := headless.DefaultConfig()
	cfg.Stereo = true
	cfg.Fullscreen = true
	cfg.Secondary = &entity.SecondaryAPIInfo{
		APIName:            "Vulkan",
		HasNvAdapter:       true,
		HasNvStereoSupport: true,
		HasShareExtension:  share,
	}
	backend := headless.New(cfg)
	prober := NewProber(backend.QuadBufferChecker(), backend.SecondaryInspector(), time.Second)
	prober.ProbeAsync(ctx)
	_, err := prober.Wait(ctx)
	require.NoError(t, err)

	messages := &headless.Messages{}
	out, err := New(ctx, Deps{
		Window:   backend.Window(),
		GL:       backend.GL(),
		Interop:  backend.Interop(),
		Surfaces: backend.SurfaceFactory(),
		Messages: messages,
		Prober:   prober,
	}, Config{Tunables: DefaultTunables()})
	require.NoError(t, err)
	t.Cleanup(func() { _ = out.Close(ctx) })

	noop := func(entity.View) {}
	require.NoError(t, out.PresentFrame(ctx, noop))
	require.NoError(t, out.PresentFrame(ctx, noop))
	require.Equal(t, entity.ActivationActive, out.Presenter().ActivationState())
	return out, backend, messages
}

func TestSecondaryBridge_StoppedWorkerFallsBackToAlternating(t *testing.T) {
	for _, share := range []bool{true, false} {
		name := "shared"
		if !share {
			name = "readback"
		}
		t.Run(name, func(t *testing.T) {
			ctx := quietCtx()
			out, backend, messages := newActiveSecondary(t, share)
			p := out.Presenter()
			trace := backend.Trace()

			require.NoError(t, p.activation.worker.Quit(ctx))
			require.True(t, p.activation.worker.Stopped())

			var views []entity.View
			mark := trace.Len()
			require.NoError(t, out.PresentFrame(ctx, func(v entity.View) { views = append(views, v) }))

			assert.Equal(t, []entity.View{entity.ViewLeft, entity.ViewRight}, views)
			assert.Equal(t, "software-alternating", p.PathName())
			assert.Equal(t, entity.ActivationInactive, p.ActivationState())
			assert.True(t, backend.Window().IsVisible())
			assert.Len(t, headless.Filter(trace.Since(mark), "window.swap"), 2)
			assert.Empty(t, headless.Filter(trace.Since(mark), "gl.blit-flipped", "gl.fb.read"))
			assert.Equal(t, []string{"Stereo output through Vulkan failed, using frame-sequential output"}, messages.Infos())

			mark = trace.Len()
			for i := 0; i < 3; i++ {
				require.NoError(t, out.PresentFrame(ctx, func(entity.View) {}))
			}
			assert.Equal(t, "software-alternating", p.PathName())
			assert.Len(t, headless.Filter(trace.Since(mark), "window.swap"), 6)
			assert.Empty(t, headless.Filter(trace.Since(mark), "surface.", "window.fullscreen"))
			assert.Len(t, messages.Infos(), 1)
		})
	}
}

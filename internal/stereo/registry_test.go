package stereo_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/bnema/pageflip/internal/application/port/mocks"
	"github.com/bnema/pageflip/internal/domain/entity"
	"github.com/bnema/pageflip/internal/stereo"
)

func monitorsAt(freq int, pnp string) entity.Monitors {
	return entity.Monitors{{ID: 0, Name: "DP-1", PnPID: pnp, Rect: entity.Rect{W: 1920, H: 1080}, FreqMax: freq}}
}

func TestEnumerate(t *testing.T) {
	yes := entity.CapabilityProbeResult{QuadBufferGL: entity.Yes, Complete: true}
	amd := entity.CapabilityProbeResult{
		QuadBufferGL: entity.No,
		SecondaryAPI: &entity.SecondaryAPIInfo{HasAmdAdapter: true, HasAqbsSupport: true},
		Complete:     true,
	}

	tests := []struct {
		name     string
		monitors entity.Monitors
		caps     entity.CapabilityProbeResult
		opts     stereo.EnumerateOptions
		shutters entity.SupportLevel
		vuzix    entity.SupportLevel
	}{
		{
			name:     "plain 60Hz desktop",
			monitors: monitorsAt(60, "DEL4088"),
			shutters: entity.SupportNone,
			vuzix:    entity.SupportNone,
		},
		{
			name:     "120Hz monitor",
			monitors: monitorsAt(120, "DEL4088"),
			shutters: entity.SupportHigh,
			vuzix:    entity.SupportNone,
		},
		{
			name:     "quad buffer wins over refresh",
			monitors: monitorsAt(60, "DEL4088"),
			caps:     yes,
			shutters: entity.SupportFull,
			vuzix:    entity.SupportNone,
		},
		{
			name:     "secondary stereo",
			monitors: monitorsAt(60, "DEL4088"),
			caps:     amd,
			shutters: entity.SupportFull,
			vuzix:    entity.SupportNone,
		},
		{
			name:     "hmd present without vendor filter",
			monitors: monitorsAt(60, "DEL4088"),
			opts:     stereo.EnumerateOptions{HMDPresent: true},
			shutters: entity.SupportNone,
			vuzix:    entity.SupportPreferred,
		},
		{
			name:     "hmd present with matching monitor",
			monitors: monitorsAt(60, "vzx0001"),
			opts:     stereo.EnumerateOptions{HMDPresent: true, HMDMonitorVendors: []string{"VZX"}},
			shutters: entity.SupportNone,
			vuzix:    entity.SupportPreferred,
		},
		{
			name:     "hmd present but monitor not attached",
			monitors: monitorsAt(60, "DEL4088"),
			opts:     stereo.EnumerateOptions{HMDPresent: true, HMDMonitorVendors: []string{"VZX"}},
			shutters: entity.SupportNone,
			vuzix:    entity.SupportNone,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			devices := stereo.Enumerate(tt.monitors, tt.caps, tt.opts)
			require.Len(t, devices, 2)
			assert.Equal(t, entity.DeviceIDShutters, devices[0].DeviceID)
			assert.Equal(t, entity.DeviceIDVuzix, devices[1].DeviceID)
			assert.Equal(t, tt.shutters, devices[0].Support)
			assert.Equal(t, tt.vuzix, devices[1].Support)
			assert.Equal(t, entity.PluginID, devices[0].PluginID)
		})
	}
}

func TestEnumerate_IsDeterministic(t *testing.T) {
	mons := monitorsAt(144, "DEL4088")
	assert.Equal(t,
		stereo.Enumerate(mons, entity.CapabilityProbeResult{}, stereo.EnumerateOptions{}),
		stereo.Enumerate(mons, entity.CapabilityProbeResult{}, stereo.EnumerateOptions{}))
}

func TestRegistry_SelectResolvesAuto(t *testing.T) {
	r := stereo.NewRegistry(nil, nil)
	assert.Equal(t, entity.DeviceIDShutters, r.ActiveID())

	require.NoError(t, r.Select(entity.DeviceIDVuzix))
	assert.Equal(t, entity.DeviceIDVuzix, r.ActiveID())
	require.NoError(t, r.Select("AUTO"))
	assert.Equal(t, entity.DeviceIDShutters, r.ActiveID())
	assert.ErrorIs(t, r.Select("anaglyph"), stereo.ErrUnknownDevice)
	assert.Equal(t, entity.DeviceIDShutters, r.ActiveID())
}

func TestRegistry_SetupTeardownIdempotent(t *testing.T) {
	ctx := testCtx()
	hmd := mocks.NewMockHMDDriver(t)
	hmd.EXPECT().Present().Return(true)
	hmd.EXPECT().SetStereo(mock.Anything, true).Return(nil).Once()
	hmd.EXPECT().SetStereo(mock.Anything, false).Return(nil).Once()

	r := stereo.NewRegistry(hmd, nil)
	devices := r.Refresh(ctx, monitorsAt(60, "VZX0001"), entity.CapabilityProbeResult{})
	assert.Equal(t, entity.SupportPreferred, devices[1].Support)

	require.NoError(t, r.Setup(ctx, entity.DeviceIDVuzix))
	require.NoError(t, r.Setup(ctx, entity.DeviceIDVuzix))
	assert.Equal(t, 1, r.InUse())

	require.NoError(t, r.Teardown(ctx, entity.DeviceIDVuzix))
	require.NoError(t, r.Teardown(ctx, entity.DeviceIDVuzix))
	assert.Equal(t, 0, r.InUse())

	assert.ErrorIs(t, r.Setup(ctx, "nope"), stereo.ErrUnknownDevice)
}

func TestRegistry_RefreshKeepsSelection(t *testing.T) {
	ctx := testCtx()
	r := stereo.NewRegistry(nil, nil)
	require.NoError(t, r.Select(entity.DeviceIDVuzix))

	r.Refresh(ctx, monitorsAt(120, "DEL4088"), entity.CapabilityProbeResult{})

	assert.Equal(t, entity.DeviceIDVuzix, r.ActiveID())
	assert.Equal(t, entity.SupportNone, r.Active().Support)
	assert.Equal(t, entity.SupportHigh, r.Devices()[0].Support)
}

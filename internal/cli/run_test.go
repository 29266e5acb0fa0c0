package cli_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/bnema/pageflip/internal/application/usecase"
	"github.com/bnema/pageflip/internal/cli"
	"github.com/bnema/pageflip/internal/cli/styles"
	"github.com/bnema/pageflip/internal/domain/entity"
	"github.com/bnema/pageflip/internal/domain/repository/mocks"
	"github.com/bnema/pageflip/internal/infrastructure/config"
	"github.com/bnema/pageflip/internal/stereo"
)

func newTestApp(t *testing.T, stored *entity.OutputSettings) (*cli.App, *mocks.MockOutputSettingsRepository) {
	t.Helper()
	cfg := config.DefaultConfig()
	cfg.Window.Backend = config.BackendHeadless
	cfg.HMD.Enabled = false

	repo := mocks.NewMockOutputSettingsRepository(t)
	repo.EXPECT().Load(mock.Anything, entity.PluginID).Return(stored, nil).Maybe()

	return &cli.App{
		Config:     cfg,
		Theme:      styles.NewTheme(),
		Settings:   repo,
		SettingsUC: usecase.NewManageOutputSettingsUseCase(repo, ""),
	}, repo
}

func TestRun_HeadlessStereoSavesSelection(t *testing.T) {
	app, repo := newTestApp(t, nil)

	var saved *entity.OutputSettings
	repo.EXPECT().Save(mock.Anything, entity.PluginID, mock.AnythingOfType("*entity.OutputSettings")).
		Run(func(_ context.Context, _ string, s *entity.OutputSettings) { saved = s }).
		Return(nil).
		Once()

	err := app.Run(testCtx(), cli.RunOptions{
		Mode:   "software",
		Stereo: true,
		Frames: 4,
		FPS:    0,
	})
	require.NoError(t, err)

	require.NotNil(t, saved)
	assert.Equal(t, entity.DeviceIDShutters, saved.DeviceID)
	assert.True(t, saved.HasQuadBuffer)
	assert.Equal(t, entity.QuadBufferSoftware, saved.QuadBuffer)
	assert.True(t, saved.HasPlacement)
	assert.Equal(t, entity.Rect{X: 256, Y: 256, W: 1024, H: 512}, saved.Placement)
}

func TestRun_MonoKeepsStoredQuadBufferType(t *testing.T) {
	app, repo := newTestApp(t, &entity.OutputSettings{
		DeviceID:      entity.DeviceIDVuzix,
		QuadBuffer:    entity.QuadBufferHardwareSecondary,
		HasQuadBuffer: true,
	})

	var saved *entity.OutputSettings
	repo.EXPECT().Save(mock.Anything, entity.PluginID, mock.Anything).
		Run(func(_ context.Context, _ string, s *entity.OutputSettings) { saved = s }).
		Return(nil).
		Once()

	err := app.Run(testCtx(), cli.RunOptions{Mode: "software", Frames: 2, FPS: 0})
	require.NoError(t, err)

	require.NotNil(t, saved)
	assert.Equal(t, entity.DeviceIDVuzix, saved.DeviceID)
	assert.Equal(t, entity.QuadBufferHardwareSecondary, saved.QuadBuffer)
}

func TestRun_RejectsUnknownDevice(t *testing.T) {
	app, _ := newTestApp(t, nil)

	err := app.Run(testCtx(), cli.RunOptions{DeviceID: "Oculus", Frames: 1, FPS: 0})
	require.ErrorIs(t, err, stereo.ErrUnknownDevice)
}

func TestRun_RejectsUnknownMode(t *testing.T) {
	app, _ := newTestApp(t, nil)

	err := app.Run(testCtx(), cli.RunOptions{Mode: "anaglyph", Frames: 1, FPS: 0})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown quad buffer mode")
}

func TestRun_CancelledContextStopsCleanly(t *testing.T) {
	app, repo := newTestApp(t, nil)
	repo.EXPECT().Save(mock.Anything, entity.PluginID, mock.Anything).Return(nil).Once()

	ctx, cancel := context.WithCancel(testCtx())
	cancel()

	require.NoError(t, app.Run(ctx, cli.RunOptions{FPS: 0}))
}

func TestNewPlatform_UnknownBackend(t *testing.T) {
	app, _ := newTestApp(t, nil)

	_, err := app.NewPlatform(testCtx(), "wayland")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown backend")
}

func TestInspect_Headless(t *testing.T) {
	app, _ := newTestApp(t, &entity.OutputSettings{DeviceID: entity.DeviceIDVuzix})

	inv, err := app.Inspect(testCtx(), "")
	require.NoError(t, err)

	assert.True(t, inv.Result.Complete)
	assert.Len(t, inv.Monitors, 1)
	assert.False(t, inv.HMDPresent)
	require.Len(t, inv.Devices, 2)
	assert.Equal(t, entity.SupportNone, inv.Devices[0].Support)
	assert.Equal(t, entity.DeviceIDVuzix, inv.ActiveID)

	report := inv.ProbeReport()
	assert.Equal(t, entity.QuadBufferHardwareGL, report.DefaultMode)
	assert.Equal(t, "Vulkan (Unavailable)", report.SecondaryLabel)
}

func TestOptionViews(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		app, _ := newTestApp(t, nil)
		inv, err := app.Inspect(testCtx(), "")
		require.NoError(t, err)

		views := app.OptionViews(testCtx(), inv)
		require.Len(t, views, 2)
		assert.Equal(t, stereo.OptionQuadBuffer, views[0].Name)
		assert.Equal(t, "OpenGL", views[0].Value)
		assert.Equal(t, []string{"OpenGL", "Vulkan (Unavailable)"}, views[0].Choices)
		assert.Equal(t, stereo.OptionShowExtra, views[1].Name)
		assert.Equal(t, "off", views[1].Value)
	})

	t.Run("stored emulated", func(t *testing.T) {
		app, _ := newTestApp(t, &entity.OutputSettings{
			QuadBuffer:    entity.QuadBufferEmulated,
			HasQuadBuffer: true,
			ShowExtra:     true,
		})
		inv, err := app.Inspect(testCtx(), "")
		require.NoError(t, err)

		views := app.OptionViews(testCtx(), inv)
		assert.Equal(t, "OpenGL Emulated", views[0].Value)
		assert.Len(t, views[0].Choices, 3)
		assert.Equal(t, "on", views[1].Value)
	})
}

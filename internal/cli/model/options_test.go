package model

import (
	"context"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/bnema/pageflip/internal/application/usecase"
	"github.com/bnema/pageflip/internal/cli/styles"
	"github.com/bnema/pageflip/internal/domain/entity"
	"github.com/bnema/pageflip/internal/domain/repository/mocks"
	"github.com/bnema/pageflip/internal/stereo"
)

func testDevices() []entity.OutputDevice {
	return []entity.OutputDevice{
		{PluginID: entity.PluginID, DeviceID: entity.DeviceIDShutters, Name: "Shutter glasses", Support: entity.SupportHigh},
		{PluginID: entity.PluginID, DeviceID: entity.DeviceIDVuzix, Name: "Vuzix HMD", Support: entity.SupportNone},
	}
}

func newTestOptionsModel(t *testing.T, repo *mocks.MockOutputSettingsRepository) OptionsModel {
	t.Helper()
	info := &entity.SecondaryAPIInfo{APIName: "Vulkan", HasNvAdapter: true, HasNvStereoSupport: true}
	return NewOptionsModel(context.Background(), styles.NewTheme(), OptionsModelConfig{
		SettingsUC: usecase.NewManageOutputSettingsUseCase(repo, ""),
		Devices:    testDevices(),
		ActiveID:   entity.DeviceIDShutters,
		Options:    stereo.NewOptions(entity.QuadBufferHardwareGL, false, info, true),
	})
}

func press(t *testing.T, m OptionsModel, keys ...tea.KeyMsg) (OptionsModel, tea.Cmd) {
	t.Helper()
	var cmd tea.Cmd
	for _, k := range keys {
		var next tea.Model
		next, cmd = m.Update(k)
		m = next.(OptionsModel)
	}
	return m, cmd
}

var (
	keyUp    = tea.KeyMsg{Type: tea.KeyUp}
	keyDown  = tea.KeyMsg{Type: tea.KeyDown}
	keyRight = tea.KeyMsg{Type: tea.KeyRight}
	keyLeft  = tea.KeyMsg{Type: tea.KeyLeft}
	keyEnter = tea.KeyMsg{Type: tea.KeyEnter}
	keyQuit  = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}}
)

func TestOptionsModel_SavesEditedSelection(t *testing.T) {
	repo := mocks.NewMockOutputSettingsRepository(t)
	repo.EXPECT().Load(mock.Anything, entity.PluginID).Return(&entity.OutputSettings{
		Placement:    entity.Rect{X: 1, Y: 2, W: 640, H: 480},
		HasPlacement: true,
	}, nil)
	var saved *entity.OutputSettings
	repo.EXPECT().Save(mock.Anything, entity.PluginID, mock.Anything).
		Run(func(_ context.Context, _ string, s *entity.OutputSettings) { saved = s }).
		Return(nil).
		Once()

	m := newTestOptionsModel(t, repo)
	m, _ = press(t, m, keyRight) // device
	require.Equal(t, entity.DeviceIDVuzix, m.Selection().DeviceID)

	m, _ = press(t, m, keyDown, keyDown, keyRight) // show extra
	require.True(t, m.options.ShowExtra.Value())
	require.Len(t, m.options.QuadBuffer.Choices(), 3)

	m, _ = press(t, m, keyUp, keyLeft) // quad buffer wraps to the last choice
	require.Equal(t, entity.QuadBufferEmulated, m.options.QuadBuffer.Value())

	m, cmd := press(t, m, keyEnter)
	require.NotNil(t, cmd)
	assert.Contains(t, m.View(), "Saving")

	next, _ := m.Update(cmd())
	m = next.(OptionsModel)
	assert.True(t, m.Saved())
	require.NoError(t, m.Err())
	assert.Contains(t, m.View(), "Selection saved")

	require.NotNil(t, saved)
	assert.Equal(t, entity.DeviceIDVuzix, saved.DeviceID)
	assert.Equal(t, entity.QuadBufferEmulated, saved.QuadBuffer)
	assert.True(t, saved.HasQuadBuffer)
	assert.True(t, saved.ShowExtra)
	assert.Equal(t, entity.Rect{X: 1, Y: 2, W: 640, H: 480}, saved.Placement)

	_, cmd = press(t, m, keyDown)
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func TestOptionsModel_HidingExtrasDropsEmulated(t *testing.T) {
	m := newTestOptionsModel(t, mocks.NewMockOutputSettingsRepository(t))

	m.row = rowShowExtra
	m, _ = press(t, m, keyRight)
	m.row = rowQuadBuffer
	m, _ = press(t, m, keyLeft)
	require.Equal(t, entity.QuadBufferEmulated, m.options.QuadBuffer.Value())

	m.row = rowShowExtra
	m, _ = press(t, m, keyRight)

	assert.False(t, m.options.ShowExtra.Value())
	assert.Equal(t, entity.QuadBufferHardwareGL, m.options.QuadBuffer.Value())
	assert.Len(t, m.options.QuadBuffer.Choices(), 2)
}

func TestOptionsModel_QuitDoesNotSave(t *testing.T) {
	m := newTestOptionsModel(t, mocks.NewMockOutputSettingsRepository(t))

	m, cmd := press(t, m, keyRight, keyQuit)

	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
	assert.False(t, m.Saved())
	assert.Equal(t, entity.DeviceIDVuzix, m.Selection().DeviceID)
}

func TestOptionsModel_ViewMarksCurrentRow(t *testing.T) {
	m := newTestOptionsModel(t, mocks.NewMockOutputSettingsRepository(t))

	view := m.View()
	assert.Contains(t, view, "Shutter glasses")
	assert.Contains(t, view, stereo.OptionQuadBuffer)
	assert.Contains(t, view, "OpenGL")
	assert.Contains(t, view, "‹ Shutter glasses")
}

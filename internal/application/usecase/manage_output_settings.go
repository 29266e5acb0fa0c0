// Package usecase contains application use cases that orchestrate domain logic.
package usecase

import (
	"context"
	"fmt"

	"github.com/bnema/pageflip/internal/application/port"
	"github.com/bnema/pageflip/internal/domain/entity"
	"github.com/bnema/pageflip/internal/domain/repository"
	"github.com/bnema/pageflip/internal/logging"
)

// Default window geometry used when nothing is stored.
const (
	DefaultWindowWidth  = 1024
	DefaultWindowHeight = 512
	placementOffset     = 256
)

// OutputState is the part of the stereo output whose selection is persisted.
type OutputState interface {
	DeviceID() string
	QuadBufferMode() entity.QuadBufferMode
	ShowExtra() bool
	WasUsed() bool
	ApplySettings(settings entity.OutputSettings)
}

// ManageOutputSettingsUseCase restores and saves the page-flip output
// selection and the window placement.
type ManageOutputSettingsUseCase struct {
	repo     repository.OutputSettingsRepository
	pluginID string
}

// NewManageOutputSettingsUseCase creates the use case for the given plugin id.
func NewManageOutputSettingsUseCase(repo repository.OutputSettingsRepository, pluginID string) *ManageOutputSettingsUseCase {
	if pluginID == "" {
		pluginID = entity.PluginID
	}
	return &ManageOutputSettingsUseCase{repo: repo, pluginID: pluginID}
}

// Load returns the stored settings, never nil on success.
func (uc *ManageOutputSettingsUseCase) Load(ctx context.Context) (*entity.OutputSettings, error) {
	settings, err := uc.repo.Load(ctx, uc.pluginID)
	if err != nil {
		return nil, fmt.Errorf("failed to load output settings: %w", err)
	}
	if settings == nil {
		settings = &entity.OutputSettings{}
	}
	return settings, nil
}

// Restore applies the stored selection to out and, for movable windows,
// places the window.
func (uc *ManageOutputSettingsUseCase) Restore(ctx context.Context, out OutputState, window port.Window, movable bool) (*entity.OutputSettings, error) {
	log := logging.FromContext(ctx)

	settings, err := uc.Load(ctx)
	if err != nil {
		return nil, err
	}
	out.ApplySettings(*settings)

	if movable && window != nil {
		rect := RestorePlacement(window.Monitors(), settings)
		window.SetPlacement(rect)
		log.Debug().Str("placement", rect.String()).Bool("stored", settings.HasPlacement).Msg("window placement restored")
	}

	log.Debug().
		Str("device", out.DeviceID()).
		Str("mode", out.QuadBufferMode().String()).
		Bool("show_extra", settings.ShowExtra).
		Msg("output settings restored")
	return settings, nil
}

// RestorePlacement returns the window rectangle to use at start-up. A
// stored rectangle whose centre is off its monitor is moved to that
// monitor's origin plus an offset, keeping its size. Without a stored
// rectangle a default-sized window is opened on the highest-refresh monitor.
func RestorePlacement(monitors entity.Monitors, settings *entity.OutputSettings) entity.Rect {
	if settings == nil || !settings.HasPlacement || settings.Placement.Empty() {
		origin := monitors.HighestFreq().Rect
		return entity.Rect{
			X: origin.X + placementOffset,
			Y: origin.Y + placementOffset,
			W: DefaultWindowWidth,
			H: DefaultWindowHeight,
		}
	}

	rect := settings.Placement
	cx, cy := rect.Center()
	mon := monitors.At(cx, cy)
	if len(monitors) == 0 || mon.Rect.Contains(cx, cy) {
		return rect
	}
	rect.X = mon.Rect.X + placementOffset
	rect.Y = mon.Rect.Y + placementOffset
	return rect
}

// Save stores the current selection. Call only on clean shutdown; the
// window leaves fullscreen first so the windowed placement is recorded.
// The quad-buffer mode is only replaced when the output actually
// presented stereo this session.
func (uc *ManageOutputSettingsUseCase) Save(ctx context.Context, out OutputState, window port.Window) error {
	log := logging.FromContext(ctx)

	previous, err := uc.Load(ctx)
	if err != nil {
		return err
	}

	settings := &entity.OutputSettings{
		DeviceID:      out.DeviceID(),
		QuadBuffer:    previous.QuadBuffer,
		HasQuadBuffer: previous.HasQuadBuffer,
		ShowExtra:     out.ShowExtra(),
		Placement:     previous.Placement,
		HasPlacement:  previous.HasPlacement,
	}
	if out.WasUsed() {
		settings.QuadBuffer = out.QuadBufferMode()
		settings.HasQuadBuffer = true
	}
	if window != nil {
		if window.IsFullScreen() {
			window.SetFullScreen(false)
		}
		if rect := window.Placement(); !rect.Empty() {
			settings.Placement = rect
			settings.HasPlacement = true
		}
	}

	if err := uc.repo.Save(ctx, uc.pluginID, settings); err != nil {
		return fmt.Errorf("failed to save output settings: %w", err)
	}

	log.Info().
		Str("device", settings.DeviceID).
		Bool("quad_buffer_saved", out.WasUsed()).
		Str("placement", settings.Placement.String()).
		Msg("output settings saved")
	return nil
}

// Selection is a device and quad-buffer choice made outside a running
// output, e.g. from the interactive options editor.
type Selection struct {
	DeviceID   string
	QuadBuffer entity.QuadBufferMode
	ShowExtra  bool
}

// SaveSelection stores sel over the stored settings. The placement is kept.
func (uc *ManageOutputSettingsUseCase) SaveSelection(ctx context.Context, sel Selection) error {
	log := logging.FromContext(ctx)

	if !sel.QuadBuffer.Valid() {
		return fmt.Errorf("invalid quad buffer mode %d", sel.QuadBuffer)
	}
	if sel.QuadBuffer == entity.QuadBufferEmulated && !sel.ShowExtra {
		return fmt.Errorf("%s requires extra options to be shown", sel.QuadBuffer)
	}

	settings, err := uc.Load(ctx)
	if err != nil {
		return err
	}
	settings.DeviceID = sel.DeviceID
	settings.QuadBuffer = sel.QuadBuffer
	settings.HasQuadBuffer = true
	settings.ShowExtra = sel.ShowExtra

	if err := uc.repo.Save(ctx, uc.pluginID, settings); err != nil {
		return fmt.Errorf("failed to save output settings: %w", err)
	}
	log.Info().
		Str("device", sel.DeviceID).
		Str("mode", sel.QuadBuffer.String()).
		Bool("show_extra", sel.ShowExtra).
		Msg("output selection saved")
	return nil
}

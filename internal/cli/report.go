package cli

import (
	"context"
	"errors"
	"time"

	"github.com/bnema/pageflip/internal/cli/styles"
	"github.com/bnema/pageflip/internal/domain/entity"
	"github.com/bnema/pageflip/internal/logging"
	"github.com/bnema/pageflip/internal/stereo"
)

// Inventory is what the platform reports without opening a window.
type Inventory struct {
	Result     entity.CapabilityProbeResult
	Elapsed    time.Duration
	Monitors   entity.Monitors
	HMDPresent bool
	Devices    []entity.OutputDevice
	ActiveID   string
}

// Inspect probes the platform and scores the devices. A probe cut short by
// ctx yields the partial result, not an error.
func (a *App) Inspect(ctx context.Context, backend string) (*Inventory, error) {
	platform, err := a.NewPlatform(ctx, backend)
	if err != nil {
		return nil, err
	}
	defer func() {
		if closeErr := platform.Close(); closeErr != nil {
			logging.FromContext(ctx).Debug().Err(closeErr).Msg("platform close failed")
		}
	}()

	start := time.Now()
	result, err := platform.WaitProbe(ctx, platform.NewProber())
	if err != nil && !errors.Is(err, context.DeadlineExceeded) && !errors.Is(err, context.Canceled) {
		return nil, err
	}
	inv := &Inventory{
		Result:     result,
		Elapsed:    time.Since(start),
		HMDPresent: platform.HMDPresent(),
	}

	inv.Monitors, err = platform.Monitors()
	if err != nil {
		return nil, err
	}

	registry := stereo.NewRegistry(platform.HMD, a.Config.HMD.MonitorVendors)
	inv.Devices = registry.Refresh(ctx, inv.Monitors, result)
	if stored := a.storedSettings(ctx); stored.DeviceID != "" {
		if err := registry.Select(stored.DeviceID); err != nil {
			logging.FromContext(ctx).Debug().Err(err).Msg("stored device ignored")
		}
	}
	inv.ActiveID = registry.ActiveID()
	return inv, nil
}

// ProbeReport converts the inventory for the probe renderer.
func (inv *Inventory) ProbeReport() styles.ProbeReport {
	return styles.ProbeReport{
		Result:         inv.Result,
		Elapsed:        inv.Elapsed,
		DefaultMode:    stereo.DefaultQuadBufferMode(inv.Result),
		SecondaryLabel: stereo.SecondaryModeLabel(inv.Result.SecondaryAPI, inv.Result.Complete),
		HMDPresent:     inv.HMDPresent,
		Monitors:       inv.Monitors,
	}
}

// OptionViews lists the output options with the stored values, labelled
// from the inventory's probe result.
func (a *App) OptionViews(ctx context.Context, inv *Inventory) []styles.OptionView {
	return OptionViewsOf(a.StoredOptions(ctx, inv))
}

// StoredOptions builds the option set holding the stored values.
func (a *App) StoredOptions(ctx context.Context, inv *Inventory) *stereo.Options {
	stored := a.storedSettings(ctx)
	mode := stereo.DefaultQuadBufferMode(inv.Result)
	if stored.HasQuadBuffer && stored.QuadBuffer.Valid() &&
		(stored.QuadBuffer != entity.QuadBufferEmulated || stored.ShowExtra) {
		mode = stored.QuadBuffer
	}
	return stereo.NewOptions(mode, stored.ShowExtra, inv.Result.SecondaryAPI, inv.Result.Complete)
}

// OptionViewsOf renders an option set as views.
func OptionViewsOf(opts *stereo.Options) []styles.OptionView {
	qb := styles.OptionView{
		Name:  opts.QuadBuffer.Name(),
		Value: opts.QuadBuffer.Label(opts.QuadBuffer.Value()),
	}
	for _, c := range opts.QuadBuffer.Choices() {
		qb.Choices = append(qb.Choices, c.Label)
	}
	extra := styles.OptionView{
		Name:    opts.ShowExtra.Name(),
		Value:   onOff(opts.ShowExtra.Value()),
		Choices: []string{onOff(false), onOff(true)},
	}
	return []styles.OptionView{qb, extra}
}

func onOff(b bool) string {
	if b {
		return "on"
	}
	return "off"
}

func (a *App) storedSettings(ctx context.Context) *entity.OutputSettings {
	stored, err := a.SettingsUC.Load(ctx)
	if err != nil {
		logging.FromContext(ctx).Warn().Err(err).Msg("stored settings unavailable")
		return &entity.OutputSettings{}
	}
	return stored
}

package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync/atomic"

	"github.com/bnema/pageflip/internal/domain/entity"
	"github.com/bnema/pageflip/internal/infrastructure/config"
	"github.com/bnema/pageflip/internal/logging"
	"github.com/bnema/pageflip/internal/stereo"
)

// RunOptions are the `pageflip run` choices. Empty fields keep the stored
// or configured value.
type RunOptions struct {
	Backend  string
	DeviceID string
	Mode     string
	Stereo   bool
	// Frames stops the loop after that many presents; 0 runs until the
	// window closes or ctx ends.
	Frames uint64
	// FPS overrides window.target_fps when not negative.
	FPS float64
}

// selection is the user's choice carried from one window to the next.
type selection struct {
	deviceID  string
	mode      entity.QuadBufferMode
	hasMode   bool
	showExtra bool
	stereo    bool
}

func (s selection) settings() entity.OutputSettings {
	return entity.OutputSettings{
		DeviceID:      s.deviceID,
		QuadBuffer:    s.mode,
		HasQuadBuffer: s.hasMode,
		ShowExtra:     s.showExtra,
	}
}

// quadBufferWindow reports whether the window needs a stereo pixel format.
func (s selection) quadBufferWindow() bool {
	return !s.hasMode || s.mode == entity.QuadBufferHardwareGL
}

// Run opens the window and presents the demo scene until the window is
// closed, ctx ends or the frame limit is reached. Changing the quad buffer
// type recreates the window. Settings are saved on the way out.
func (a *App) Run(ctx context.Context, opts RunOptions) error {
	log := logging.FromContext(ctx)
	defer func() { logging.LogPanic(log, recover()) }()
	logging.LogCoreDumpLimits(log)

	sel, err := a.initialSelection(ctx, opts)
	if err != nil {
		return err
	}

	platform, err := a.NewPlatform(ctx, opts.Backend)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := platform.Close(); closeErr != nil {
			log.Debug().Err(closeErr).Msg("platform close failed")
		}
	}()
	logging.Trace().Mark(logging.MilestonePlatformReady)

	prober := platform.NewProber()
	prober.ProbeAsync(ctx)
	go func() {
		if _, err := prober.Wait(ctx); err == nil {
			logging.Trace().Mark(logging.MilestoneDetectionDone)
		}
	}()

	fps := a.Config.Window.TargetFPS
	if opts.FPS >= 0 {
		fps = opts.FPS
	}

	var current atomic.Pointer[session]
	a.watchConfig(ctx, &current)

	var presented uint64
	for {
		s, err := a.openSession(ctx, platform, prober, sel, fps)
		if err != nil {
			return err
		}
		current.Store(s)

		var limit uint64
		if opts.Frames > 0 {
			limit = opts.Frames - presented
		}
		reset, loopErr := s.loop(ctx, limit)
		presented += s.out.Frames()
		sel = s.selection()
		current.Store(nil)

		closeErr := s.close(ctx, !reset && loopErr == nil)
		if loopErr != nil {
			return errors.Join(loopErr, closeErr)
		}
		if closeErr != nil {
			return closeErr
		}
		if !reset {
			return nil
		}
		log.Info().Str("mode", sel.mode.String()).Msg("recreating window for the new quad buffer type")
	}
}

func (a *App) initialSelection(ctx context.Context, opts RunOptions) (selection, error) {
	sel := selection{stereo: opts.Stereo}

	stored := a.storedSettings(ctx)
	sel.deviceID = stored.DeviceID
	sel.mode, sel.hasMode = stored.QuadBuffer, stored.HasQuadBuffer
	sel.showExtra = stored.ShowExtra

	if opts.DeviceID != "" {
		id, err := knownDevice(opts.DeviceID)
		if err != nil {
			return sel, err
		}
		sel.deviceID = id
	}
	if opts.Mode != "" {
		mode, err := entity.ParseQuadBufferMode(opts.Mode)
		if err != nil {
			return sel, err
		}
		sel.mode, sel.hasMode = mode, true
		if mode == entity.QuadBufferEmulated {
			sel.showExtra = true
		}
	}
	return sel, nil
}

// knownDevice resolves id against the device catalogue.
func knownDevice(id string) (string, error) {
	id = stereo.ResolveDeviceID(id)
	for _, dev := range stereo.Enumerate(nil, entity.CapabilityProbeResult{}, stereo.EnumerateOptions{}) {
		if strings.EqualFold(dev.DeviceID, id) {
			return dev.DeviceID, nil
		}
	}
	return "", fmt.Errorf("device %q: %w", id, stereo.ErrUnknownDevice)
}

// watchConfig applies [output] edits to whichever output is current.
func (a *App) watchConfig(ctx context.Context, current *atomic.Pointer[session]) {
	if a.ConfigErr != nil || a.ConfigManager == nil {
		return
	}
	a.ConfigManager.OnConfigChange(func(cfg *config.Config) {
		if s := current.Load(); s != nil {
			s.out.ApplyTunables(Tunables(cfg.Output))
			s.win.Window.SetTargetFPS(cfg.Window.TargetFPS)
		}
	})
	if err := a.ConfigManager.Watch(ctx); err != nil {
		logging.FromContext(ctx).Warn().Err(err).Msg("config watch unavailable")
	}
}

// session is one window and the output presenting into it.
type session struct {
	app *App
	win *Window
	out *stereo.Output
	sel selection
}

func (a *App) openSession(ctx context.Context, platform *Platform, prober *stereo.Prober, sel selection, fps float64) (*session, error) {
	log := logging.FromContext(ctx)

	win, err := platform.OpenWindow(ctx, WindowOptions{
		QuadBuffer: sel.quadBufferWindow(),
		Stereo:     sel.stereo,
		TargetFPS:  fps,
	})
	if err != nil {
		return nil, err
	}
	logging.Trace().Mark(logging.MilestoneWindowCreated)

	out, err := stereo.New(ctx, stereo.Deps{
		Window:       win.Window,
		GL:           win.GL,
		Interop:      win.Interop,
		Surfaces:     win.Surfaces,
		QuadBuffer:   platform.QuadBuffer,
		SecondaryAPI: platform.Secondary,
		HMD:          platform.HMD,
		Messages:     NewLogMessages(ctx),
		Prober:       prober,
	}, OutputConfig(a.Config))
	if err != nil {
		_ = win.Window.Close()
		return nil, fmt.Errorf("create output: %w", err)
	}
	logging.Trace().Mark(logging.MilestoneOutputCreated)

	if _, err := a.SettingsUC.Restore(ctx, out, win.Window, a.Config.Window.Movable); err != nil {
		log.Warn().Err(err).Msg("stored settings not restored")
	}
	out.ApplySettings(sel.settings())

	s := &session{app: a, win: win, out: out, sel: sel}
	win.OnMonitorsChanged(out.NotifyMonitorsChanged)
	win.OnKey(func(key rune) {
		if HandleKey(out, key) {
			log.Debug().Str("key", string(key)).Msg("key handled")
		}
	})

	log.Info().
		Str("device", out.DeviceID()).
		Str("mode", out.QuadBufferMode().String()).
		Bool("stereo", win.Window.IsStereoOutput()).
		Msg("output ready")
	return s, nil
}

// loop presents frames until the window closes, ctx ends, limit frames
// were presented or the output asks for a new window.
func (s *session) loop(ctx context.Context, limit uint64) (reset bool, err error) {
	w := s.win.Window
	redraw := DemoScene(s.win)
	first := true
	for {
		if ctx.Err() != nil {
			return false, nil
		}
		w.PollEvents()
		if w.ShouldClose() {
			return false, nil
		}
		if s.out.NeedsReset() {
			s.out.ClearReset()
			return true, nil
		}
		if err := s.out.PresentFrame(ctx, redraw); err != nil {
			return false, fmt.Errorf("present frame: %w", err)
		}
		if first {
			first = false
			logging.Trace().Mark(logging.MilestoneFirstFrame)
			logging.Trace().Finish(s.out.Presenter().PathName())
		}
		if limit > 0 && s.out.Frames() >= limit {
			return false, nil
		}
	}
}

func (s *session) selection() selection {
	sel := s.sel
	sel.deviceID = s.out.DeviceID()
	sel.mode, sel.hasMode = s.out.QuadBufferMode(), true
	sel.showExtra = s.out.ShowExtra()
	sel.stereo = s.win.Window.IsStereoOutput()
	return sel
}

// close saves the settings when save is set, then releases the output and
// the window.
func (s *session) close(ctx context.Context, save bool) error {
	log := logging.FromContext(ctx)
	var errs []error
	if save {
		if err := s.app.SettingsUC.Save(context.WithoutCancel(ctx), s.out, s.win.Window); err != nil {
			log.Warn().Err(err).Msg("settings not saved")
		}
	}
	if err := s.out.Close(context.WithoutCancel(ctx)); err != nil {
		errs = append(errs, fmt.Errorf("close output: %w", err))
	}
	if err := s.win.Window.Close(); err != nil {
		errs = append(errs, fmt.Errorf("close window: %w", err))
	}
	return errors.Join(errs...)
}

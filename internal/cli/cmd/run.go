package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/bnema/pageflip/internal/cli"
	"github.com/bnema/pageflip/internal/domain/entity"
	"github.com/bnema/pageflip/internal/logging"
)

var runOpts = cli.RunOptions{FPS: -1}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Open the stereo test window",
	Long: `Open a window and present a colour-coded test scene through the
page-flip output: the left eye is blue, the right eye red, mono is grey.

Keys:
  S    toggle stereo
  Q    next quad buffer type (recreates the window)
  E    toggle extra options (adds OpenGL Emulated)
  D    next output device
  F11  toggle fullscreen
  Esc  quit

The selected device, quad buffer type and window placement are saved when
the window is closed.

Examples:
  pageflip run --stereo                      # Stereo with the stored device
  pageflip run --stereo --mode software      # Force software alternation
  pageflip run --backend headless --frames 120`,
	RunE: runRun,
}

func init() {
	rootCmd.AddCommand(runCmd)
	f := runCmd.Flags()
	f.StringVar(&runOpts.DeviceID, "device", "", "output device: Shutters, Vuzix, auto")
	f.StringVar(&runOpts.Mode, "mode", "", "quad buffer type: "+joinNames(entity.QuadBufferModeNames()))
	f.BoolVar(&runOpts.Stereo, "stereo", false, "start in stereo")
	f.Uint64Var(&runOpts.Frames, "frames", 0, "stop after N frames (0 runs until closed)")
	f.Float64Var(&runOpts.FPS, "fps", -1, "target frame rate, 0 disables pacing (default from config)")
}

func runRun(_ *cobra.Command, _ []string) error {
	a, err := requireApp()
	if err != nil {
		return err
	}
	ctx, stop := signal.NotifyContext(a.Ctx(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	ctx = logging.WithComponent(ctx, "run")

	opts := runOpts
	opts.Backend = backendFlag
	return a.Run(ctx, opts)
}

// withWait bounds ctx by the --wait flag when set.
func withWait(ctx context.Context) (context.Context, context.CancelFunc) {
	if probeWait <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, probeWait)
}

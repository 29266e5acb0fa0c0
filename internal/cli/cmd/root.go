// Package cmd provides Cobra CLI commands for pageflip.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/bnema/pageflip/internal/cli"
	"github.com/bnema/pageflip/internal/domain/build"
)

var (
	app         *cli.App
	buildInfo   build.Info
	backendFlag string
	rootCmd     = &cobra.Command{
		Use:   "pageflip",
		Short: "Page-flipped stereo output for shutter glasses and HMDs",
		Long: `pageflip - page-flipped stereoscopic output.

Drives active shutter glasses and head-mounted displays from one rendered
frame, choosing between native OpenGL quad buffering, an exclusive
fullscreen secondary graphics API and software alternation.

Features:
  - Capability probe for OpenGL quad buffer and Vulkan stereo support
  - Device scoring for shutter glasses and the Vuzix HMD
  - Frame-paced left/right alternation with HMD eye acknowledgement
  - Persisted device selection and window placement
  - Live reload of output timings from the config file

Use 'pageflip run' to open the stereo test window, or 'pageflip probe'
to see what this machine supports.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			// Skip initialization for commands that don't need app context
			switch cmd.Name() {
			case "help", "completion", "gen-docs":
				return nil
			}

			var err error
			app, err = cli.NewApp()
			if err != nil {
				return fmt.Errorf("initialize app: %w", err)
			}
			app.BuildInfo = buildInfo
			return nil
		},
		PersistentPostRun: func(_ *cobra.Command, _ []string) {
			if app != nil {
				_ = app.Close()
			}
		},
	}
)

func init() {
	rootCmd.PersistentFlags().StringVar(&backendFlag, "backend", "",
		"window backend: glfw, headless (default from config)")
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// GetApp returns the initialized app (for use by subcommands).
func GetApp() *cli.App {
	return app
}

// SetBuildInfo sets the build information (called from main.go before Execute).
func SetBuildInfo(info build.Info) {
	buildInfo = info
}

func requireApp() (*cli.App, error) {
	a := GetApp()
	if a == nil {
		return nil, fmt.Errorf("app not initialized")
	}
	return a, nil
}

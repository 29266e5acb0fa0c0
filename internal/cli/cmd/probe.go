package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/bnema/pageflip/internal/cli/styles"
)

var probeWait time.Duration

var probeCmd = &cobra.Command{
	Use:   "probe",
	Short: "Show the stereo capabilities of this machine",
	Long: `Run the capability probe and print what it found: native OpenGL quad
buffer support, the Vulkan adapter and its stereo and sharing extensions,
the HMD and the connected monitors.

The probe is bounded by probe.timeout_ms; --wait stops waiting earlier and
prints whatever is known by then.`,
	RunE: runProbe,
}

func init() {
	rootCmd.AddCommand(probeCmd)
	probeCmd.Flags().DurationVar(&probeWait, "wait", 0, "stop waiting for the probe after this long")
}

func runProbe(_ *cobra.Command, _ []string) error {
	a, err := requireApp()
	if err != nil {
		return err
	}
	ctx, cancel := withWait(a.Ctx())
	defer cancel()

	inv, err := a.Inspect(ctx, backendFlag)
	if err != nil {
		return err
	}
	fmt.Println(styles.NewProbeRenderer(a.Theme).Render(inv.ProbeReport()))
	return nil
}

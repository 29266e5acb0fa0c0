package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/bnema/pageflip/internal/cli/styles"
)

var devicesCmd = &cobra.Command{
	Use:   "devices",
	Short: "List output devices and how well this machine supports them",
	Long: `Probe the machine and list the page-flip output devices with their
support level. The stored selection is marked.

Support levels:
  full       hardware stereo is available
  high       a monitor refreshes at 110 Hz or more
  preferred  the HMD and its display are connected
  none       the device is not usable here`,
	RunE: runDevices,
}

func init() {
	rootCmd.AddCommand(devicesCmd)
	devicesCmd.Flags().DurationVar(&probeWait, "wait", 0, "stop waiting for the probe after this long")
}

func runDevices(_ *cobra.Command, _ []string) error {
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
	fmt.Println(styles.NewDevicesRenderer(a.Theme).Render(inv.Devices, inv.ActiveID))
	return nil
}

package cmd

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/bnema/pageflip/internal/cli/model"
	"github.com/bnema/pageflip/internal/cli/styles"
)

var optionsEdit bool

var optionsCmd = &cobra.Command{
	Use:   "options",
	Short: "Show the output options and their stored values",
	Long: `Show the output options and their stored values.

With --edit, an interactive editor picks the device, the quad buffer type
and whether extra options are shown, and stores the selection for the
next run. The stored window placement is kept.`,
	RunE: runOptions,
}

func init() {
	rootCmd.AddCommand(optionsCmd)
	optionsCmd.Flags().DurationVar(&probeWait, "wait", 0, "stop waiting for the probe after this long")
	optionsCmd.Flags().BoolVarP(&optionsEdit, "edit", "e", false, "edit the stored selection interactively")
}

func runOptions(_ *cobra.Command, _ []string) error {
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
	if !optionsEdit {
		fmt.Println(styles.NewOptionsRenderer(a.Theme).Render(a.OptionViews(ctx, inv)))
		return nil
	}

	m := model.NewOptionsModel(a.Ctx(), a.Theme, model.OptionsModelConfig{
		SettingsUC: a.SettingsUC,
		Devices:    inv.Devices,
		ActiveID:   inv.ActiveID,
		Options:    a.StoredOptions(ctx, inv),
	})
	final, err := tea.NewProgram(m).Run()
	if err != nil {
		return err
	}
	if fm, ok := final.(model.OptionsModel); ok && fm.Err() != nil {
		return fm.Err()
	}
	return nil
}

func joinNames(names []string) string {
	return strings.Join(names, ", ")
}

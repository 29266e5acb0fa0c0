package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/bnema/pageflip/internal/cli/styles"
	"github.com/bnema/pageflip/internal/infrastructure/config"
)

var (
	configForce       bool
	configWriteSchema bool
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage configuration",
	Long:  `Show the config file location, validate it, write the defaults or the JSON schema.`,
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Show the config file path",
	RunE:  runConfigPath,
}

var configCheckCmd = &cobra.Command{
	Use:   "check",
	Short: "Validate the config file",
	RunE:  runConfigCheck,
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write the default config file",
	Long: `Write the built-in defaults to the config file. An existing file is kept
unless --force is given.`,
	RunE: runConfigInit,
}

var configSchemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "Print the JSON schema of the config file",
	Long: `Print the JSON schema of config.toml, for editors with TOML schema
support. With --write the schema is saved next to the config file.`,
	RunE: runConfigSchema,
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configPathCmd, configCheckCmd, configInitCmd, configSchemaCmd)
	configInitCmd.Flags().BoolVarP(&configForce, "force", "f", false, "overwrite an existing config file")
	configSchemaCmd.Flags().BoolVarP(&configWriteSchema, "write", "w", false, "write config.schema.json to the config directory")
}

func configFile() (string, error) {
	if a := GetApp(); a != nil && a.ConfigManager != nil {
		if path := a.ConfigManager.GetConfigFile(); path != "" {
			return path, nil
		}
	}
	return config.GetConfigFile()
}

func runConfigPath(_ *cobra.Command, _ []string) error {
	a, err := requireApp()
	if err != nil {
		return err
	}
	path, err := configFile()
	if err != nil {
		return err
	}
	created := a.ConfigManager != nil && a.ConfigManager.CreatedDefault() != ""
	fmt.Println(styles.NewConfigRenderer(a.Theme).RenderConfigInfo(path, created))
	return nil
}

func runConfigCheck(_ *cobra.Command, _ []string) error {
	a, err := requireApp()
	if err != nil {
		return err
	}
	path, err := configFile()
	if err != nil {
		return err
	}
	fmt.Println(styles.NewConfigRenderer(a.Theme).RenderCheck(path, a.ConfigErr))
	if a.ConfigErr != nil {
		return errors.New("invalid configuration")
	}
	return nil
}

func runConfigInit(_ *cobra.Command, _ []string) error {
	a, err := requireApp()
	if err != nil {
		return err
	}
	renderer := styles.NewConfigRenderer(a.Theme)
	path, err := config.GetConfigFile()
	if err != nil {
		return err
	}

	created := a.ConfigManager != nil && a.ConfigManager.CreatedDefault() == path
	if _, statErr := os.Stat(path); statErr == nil && !configForce && !created {
		fmt.Println(renderer.RenderExists(path))
		return nil
	}
	if err := config.WriteConfig(config.DefaultConfig(), path); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	fmt.Println(renderer.RenderWritten("Config written", path))
	return nil
}

func runConfigSchema(_ *cobra.Command, _ []string) error {
	if configWriteSchema {
		a, err := requireApp()
		if err != nil {
			return err
		}
		path, err := config.GenerateSchemaFile()
		if err != nil {
			return err
		}
		fmt.Println(styles.NewConfigRenderer(a.Theme).RenderWritten("Schema written", path))
		return nil
	}

	schema, err := config.GenerateSchema()
	if err != nil {
		return err
	}
	fmt.Println(string(schema))
	return nil
}

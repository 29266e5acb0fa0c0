// Package config loads, validates and watches the pageflip configuration.
package config

import (
	"fmt"
	"os"
	"path/filepath"
)

const (
	appName      = "pageflip"
	databaseName = "settings.sqlite"
)

// XDGDirs holds the XDG Base Directory paths for the application.
type XDGDirs struct {
	ConfigHome string
	DataHome   string
	StateHome  string
}

// GetXDGDirs returns the XDG Base Directory paths for pageflip.
// It follows the XDG Base Directory layout:
// - $XDG_CONFIG_HOME/pageflip (default: ~/.config/pageflip)
// - $XDG_DATA_HOME/pageflip (default: ~/.local/share/pageflip)
// - $XDG_STATE_HOME/pageflip (default: ~/.local/state/pageflip)
func GetXDGDirs() (*XDGDirs, error) {
	// Development mode: use .dev directory in current working directory
	if os.Getenv("ENV") == "dev" {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, err
		}
		devDir := filepath.Join(cwd, ".dev", appName)
		return &XDGDirs{
			ConfigHome: devDir,
			DataHome:   devDir,
			StateHome:  devDir,
		}, nil
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil, err
	}

	// XDG_CONFIG_HOME
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		configHome = filepath.Join(homeDir, ".config")
	}
	configHome = filepath.Join(configHome, appName)

	// XDG_DATA_HOME
	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		dataHome = filepath.Join(homeDir, ".local", "share")
	}
	dataHome = filepath.Join(dataHome, appName)

	// XDG_STATE_HOME
	stateHome := os.Getenv("XDG_STATE_HOME")
	if stateHome == "" {
		stateHome = filepath.Join(homeDir, ".local", "state")
	}
	stateHome = filepath.Join(stateHome, appName)

	return &XDGDirs{
		ConfigHome: configHome,
		DataHome:   dataHome,
		StateHome:  stateHome,
	}, nil
}

// GetConfigDir returns the XDG config directory for pageflip.
func GetConfigDir() (string, error) {
	dirs, err := GetXDGDirs()
	if err != nil {
		return "", err
	}
	return dirs.ConfigHome, nil
}

// GetDataDir returns the XDG data directory for pageflip.
func GetDataDir() (string, error) {
	dirs, err := GetXDGDirs()
	if err != nil {
		return "", err
	}
	return dirs.DataHome, nil
}

// GetStateDir returns the XDG state directory for pageflip.
func GetStateDir() (string, error) {
	dirs, err := GetXDGDirs()
	if err != nil {
		return "", err
	}
	return dirs.StateHome, nil
}

// GetLogDir returns the XDG-compliant log directory for pageflip.
// Logs are stored in XDG_STATE_HOME, as XDG recommends.
func GetLogDir() (string, error) {
	stateDir, err := GetStateDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(stateDir, "logs"), nil
}

// GetConfigFile returns the path to the main configuration file.
func GetConfigFile() (string, error) {
	configDir, err := GetConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, "config.toml"), nil
}

// GetDatabaseFile returns the path to the settings database. The stored
// device selection and window placement are user data and live in
// XDG_DATA_HOME.
func GetDatabaseFile() (string, error) {
	dataDir, err := GetDataDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dataDir, databaseName), nil
}

// EnsureDirectories creates the config, data and state directories.
func EnsureDirectories() error {
	dirs, err := GetXDGDirs()
	if err != nil {
		return err
	}
	for _, dir := range []string{dirs.ConfigHome, dirs.DataHome, dirs.StateHome} {
		if err := os.MkdirAll(dir, dirPerm); err != nil {
			return fmt.Errorf("failed to create %s: %w", dir, err)
		}
	}
	return nil
}

// GetManDir returns the user man page directory for section 1,
// $XDG_DATA_HOME/man/man1.
func GetManDir() (string, error) {
	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		dataHome = filepath.Join(homeDir, ".local", "share")
	}
	return filepath.Join(dataHome, "man", "man1"), nil
}

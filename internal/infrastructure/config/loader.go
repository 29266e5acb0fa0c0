package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/spf13/viper"
)

// Manager handles configuration loading, watching, and reloading.
type Manager struct {
	config    *Config
	viper     *viper.Viper
	mu        sync.RWMutex
	callbacks []func(*Config)
	watching  bool
	// created is set when Load wrote a default config file.
	created string
}

// NewManager creates a new configuration manager.
func NewManager() (*Manager, error) {
	v := viper.New()

	v.SetConfigName("config")
	v.SetConfigType("toml")

	configDir, err := GetConfigDir()
	if err != nil {
		return nil, fmt.Errorf("failed to determine config directory: %w\nCheck XDG_CONFIG_HOME environment variable or HOME directory", err)
	}
	v.AddConfigPath(configDir)

	// PAGEFLIP_OUTPUT_VSYNC, PAGEFLIP_WINDOW_BACKEND, ...
	v.SetEnvPrefix("PAGEFLIP")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Shared with logging.NewFromEnv, which runs before the config exists.
	if err := v.BindEnv("logging.level", "PAGEFLIP_LOG_LEVEL"); err != nil {
		return nil, fmt.Errorf("failed to bind PAGEFLIP_LOG_LEVEL: %w", err)
	}
	if err := v.BindEnv("logging.format", "PAGEFLIP_LOG_FORMAT"); err != nil {
		return nil, fmt.Errorf("failed to bind PAGEFLIP_LOG_FORMAT: %w", err)
	}

	return &Manager{
		viper:     v,
		callbacks: make([]func(*Config), 0),
	}, nil
}

// Load loads the configuration from file and environment variables. A
// missing file is created with the defaults.
func (m *Manager) Load() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := EnsureDirectories(); err != nil {
		return fmt.Errorf("failed to ensure directories: %w", err)
	}

	m.setDefaults()

	if err := m.readConfigFile(); err != nil {
		return err
	}

	config, err := m.decode()
	if err != nil {
		return err
	}

	m.config = config
	return nil
}

func (m *Manager) readConfigFile() error {
	err := m.viper.ReadInConfig()
	if err == nil {
		return nil
	}
	var notFound viper.ConfigFileNotFoundError
	if !errors.As(err, &notFound) {
		configFile := m.viper.ConfigFileUsed()
		if configFile == "" {
			configFile, _ = GetConfigFile()
		}
		return fmt.Errorf("failed to read config file at %s: %w\nCheck the file format (must be valid TOML) and permissions", configFile, err)
	}

	if createErr := m.createDefaultConfig(); createErr != nil {
		configDir, _ := GetConfigDir()
		return fmt.Errorf(
			"failed to create default config at %s: %w\nTry creating the directory manually or check permissions",
			configDir,
			createErr,
		)
	}
	if rereadErr := m.viper.ReadInConfig(); rereadErr != nil {
		return fmt.Errorf("failed to read newly created config file: %w", rereadErr)
	}
	return nil
}

// decode unmarshals, fills derived paths, normalizes and validates.
func (m *Manager) decode() (*Config, error) {
	config := &Config{}
	if err := m.viper.Unmarshal(config); err != nil {
		return nil, fmt.Errorf(
			"failed to parse config file at %s: %w\nCheck for syntax errors, invalid values, or type mismatches",
			m.viper.ConfigFileUsed(),
			err,
		)
	}
	if err := ensurePaths(config); err != nil {
		return nil, err
	}
	normalizeConfig(config)

	if err := validateConfig(config); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return config, nil
}

func ensurePaths(config *Config) error {
	if config.Database.Path == "" {
		dbPath, err := GetDatabaseFile()
		if err != nil {
			return fmt.Errorf("failed to get database path: %w", err)
		}
		config.Database.Path = dbPath
	}
	if config.Logging.File.Dir == "" {
		logDir, err := GetLogDir()
		if err != nil {
			return fmt.Errorf("failed to get log directory: %w", err)
		}
		config.Logging.File.Dir = logDir
	}
	return nil
}

func normalizeConfig(config *Config) {
	switch Backend(strings.ToLower(string(config.Window.Backend))) {
	case BackendHeadless:
		config.Window.Backend = BackendHeadless
	default:
		config.Window.Backend = BackendGLFW
	}

	switch VSyncMode(strings.ToLower(string(config.Output.VSync))) {
	case VSyncOff:
		config.Output.VSync = VSyncOff
	case VSyncAdaptive:
		config.Output.VSync = VSyncAdaptive
	default:
		config.Output.VSync = VSyncOn
	}

	config.Logging.Level = strings.ToLower(strings.TrimSpace(config.Logging.Level))
	config.Logging.Format = strings.ToLower(strings.TrimSpace(config.Logging.Format))
	config.HMD.VendorID = strings.ToLower(strings.TrimPrefix(config.HMD.VendorID, "0x"))
}

// Get returns a copy of the current configuration.
func (m *Manager) Get() *Config {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.config == nil {
		return DefaultConfig()
	}
	configCopy := *m.config
	configCopy.HMD.MonitorVendors = append([]string(nil), m.config.HMD.MonitorVendors...)
	return &configCopy
}

// GetConfigFile returns the path to the configuration file being used.
func (m *Manager) GetConfigFile() string {
	return m.viper.ConfigFileUsed()
}

// CreatedDefault returns the path of the config file Load created, or "".
func (m *Manager) CreatedDefault() string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.created
}

// createDefaultConfig writes the defaults to the config file.
func (m *Manager) createDefaultConfig() error {
	configFile, err := GetConfigFile()
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(configFile), dirPerm); err != nil {
		return err
	}

	if err := WriteConfig(DefaultConfig(), configFile); err != nil {
		return err
	}
	m.created = configFile
	return nil
}

// setDefaults sets default configuration values in Viper.
func (m *Manager) setDefaults() {
	defaults := DefaultConfig()

	m.setWindowDefaults(defaults)
	m.setOutputDefaults(defaults)
	m.setProbeDefaults(defaults)
	m.setHMDDefaults(defaults)
	m.setLoggingDefaults(defaults)
}

func (m *Manager) setWindowDefaults(defaults *Config) {
	m.viper.SetDefault("window.backend", string(defaults.Window.Backend))
	m.viper.SetDefault("window.width", defaults.Window.Width)
	m.viper.SetDefault("window.height", defaults.Window.Height)
	m.viper.SetDefault("window.title", defaults.Window.Title)
	m.viper.SetDefault("window.fullscreen", defaults.Window.Fullscreen)
	m.viper.SetDefault("window.movable", defaults.Window.Movable)
	m.viper.SetDefault("window.depth_buffer", defaults.Window.DepthBuffer)
	m.viper.SetDefault("window.target_fps", defaults.Window.TargetFPS)
}

func (m *Manager) setOutputDefaults(defaults *Config) {
	m.viper.SetDefault("output.vsync", string(defaults.Output.VSync))
	m.viper.SetDefault("output.activation_timeout_ms", defaults.Output.ActivationTimeoutMs)
	m.viper.SetDefault("output.activation_poll_ms", defaults.Output.ActivationPollMs)
	m.viper.SetDefault("output.worker_quit_timeout_ms", defaults.Output.WorkerQuitTimeoutMs)
	m.viper.SetDefault("output.busy_wait_timeout_ms", defaults.Output.BusyWaitTimeoutMs)
	m.viper.SetDefault("output.ack_timeout_ms", defaults.Output.AckTimeoutMs)
	m.viper.SetDefault("output.ack_fallback_delay_us", defaults.Output.AckFallbackDelayUs)
	m.viper.SetDefault("output.readback", defaults.Output.Readback)
}

func (m *Manager) setProbeDefaults(defaults *Config) {
	m.viper.SetDefault("probe.quad_buffer", defaults.Probe.QuadBuffer)
	m.viper.SetDefault("probe.secondary_api", defaults.Probe.SecondaryAPI)
	m.viper.SetDefault("probe.timeout_ms", defaults.Probe.TimeoutMs)
}

func (m *Manager) setHMDDefaults(defaults *Config) {
	m.viper.SetDefault("hmd.enabled", defaults.HMD.Enabled)
	m.viper.SetDefault("hmd.device_glob", defaults.HMD.DeviceGlob)
	m.viper.SetDefault("hmd.vendor_id", defaults.HMD.VendorID)
	m.viper.SetDefault("hmd.monitor_vendors", defaults.HMD.MonitorVendors)
}

func (m *Manager) setLoggingDefaults(defaults *Config) {
	m.viper.SetDefault("logging.level", defaults.Logging.Level)
	m.viper.SetDefault("logging.format", defaults.Logging.Format)
	m.viper.SetDefault("logging.file.enabled", defaults.Logging.File.Enabled)
	m.viper.SetDefault("logging.file.max_size_mb", defaults.Logging.File.MaxSizeMB)
	m.viper.SetDefault("logging.file.max_backups", defaults.Logging.File.MaxBackups)
}

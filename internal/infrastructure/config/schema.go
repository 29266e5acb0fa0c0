package config

// Config represents the complete configuration for pageflip.
type Config struct {
	Window   WindowConfig   `mapstructure:"window" toml:"window" json:"window"`
	Output   OutputConfig   `mapstructure:"output" toml:"output" json:"output"`
	Probe    ProbeConfig    `mapstructure:"probe" toml:"probe" json:"probe"`
	HMD      HMDConfig      `mapstructure:"hmd" toml:"hmd" json:"hmd"`
	Database DatabaseConfig `mapstructure:"database" toml:"database" json:"database"`
	Logging  LoggingConfig  `mapstructure:"logging" toml:"logging" json:"logging"`
}

// Backend selects the window system implementation.
type Backend string

const (
	BackendGLFW     Backend = "glfw"
	BackendHeadless Backend = "headless"
)

// VSyncMode is the user's swap interval choice.
type VSyncMode string

const (
	VSyncOff      VSyncMode = "off"
	VSyncOn       VSyncMode = "on"
	VSyncAdaptive VSyncMode = "adaptive"
)

// WindowConfig describes the primary window.
type WindowConfig struct {
	Backend Backend `mapstructure:"backend" toml:"backend" json:"backend" jsonschema:"enum=glfw,enum=headless"`
	Width   int     `mapstructure:"width" toml:"width" json:"width" jsonschema:"minimum=64"`
	Height  int     `mapstructure:"height" toml:"height" json:"height" jsonschema:"minimum=64"`
	Title   string  `mapstructure:"title" toml:"title" json:"title"`
	// Fullscreen starts the window fullscreen on its monitor.
	Fullscreen bool `mapstructure:"fullscreen" toml:"fullscreen" json:"fullscreen"`
	// Movable windows restore their stored placement at start-up.
	Movable     bool `mapstructure:"movable" toml:"movable" json:"movable"`
	DepthBuffer bool `mapstructure:"depth_buffer" toml:"depth_buffer" json:"depth_buffer"`
	// TargetFPS caps the presentation rate; 0 disables pacing.
	TargetFPS float64 `mapstructure:"target_fps" toml:"target_fps" json:"target_fps" jsonschema:"minimum=0"`
}

// OutputConfig holds the stereo output timings and policies. They may be
// changed while running.
type OutputConfig struct {
	VSync VSyncMode `mapstructure:"vsync" toml:"vsync" json:"vsync" jsonschema:"enum=off,enum=on,enum=adaptive"`
	// ActivationTimeoutMs bounds the wait for the secondary surface.
	ActivationTimeoutMs int `mapstructure:"activation_timeout_ms" toml:"activation_timeout_ms" json:"activation_timeout_ms" jsonschema:"minimum=1"`
	ActivationPollMs    int `mapstructure:"activation_poll_ms" toml:"activation_poll_ms" json:"activation_poll_ms" jsonschema:"minimum=1"`
	WorkerQuitTimeoutMs int `mapstructure:"worker_quit_timeout_ms" toml:"worker_quit_timeout_ms" json:"worker_quit_timeout_ms" jsonschema:"minimum=1"`
	// BusyWaitTimeoutMs bounds command acknowledgements from the worker.
	BusyWaitTimeoutMs int `mapstructure:"busy_wait_timeout_ms" toml:"busy_wait_timeout_ms" json:"busy_wait_timeout_ms" jsonschema:"minimum=1"`
	// AckTimeoutMs bounds the wait for the HMD eye acknowledgement.
	AckTimeoutMs int `mapstructure:"ack_timeout_ms" toml:"ack_timeout_ms" json:"ack_timeout_ms" jsonschema:"minimum=0"`
	// AckFallbackDelayUs is slept after each swap when the device has no ack.
	AckFallbackDelayUs int `mapstructure:"ack_fallback_delay_us" toml:"ack_fallback_delay_us" json:"ack_fallback_delay_us" jsonschema:"minimum=0"`
	// Readback copies pixels through the CPU when surfaces cannot be shared.
	Readback bool `mapstructure:"readback" toml:"readback" json:"readback"`
}

// ProbeConfig controls the start-up capability probe.
type ProbeConfig struct {
	QuadBuffer   bool `mapstructure:"quad_buffer" toml:"quad_buffer" json:"quad_buffer"`
	SecondaryAPI bool `mapstructure:"secondary_api" toml:"secondary_api" json:"secondary_api"`
	TimeoutMs    int  `mapstructure:"timeout_ms" toml:"timeout_ms" json:"timeout_ms" jsonschema:"minimum=1"`
}

// HMDConfig locates the head-mounted display.
type HMDConfig struct {
	Enabled bool `mapstructure:"enabled" toml:"enabled" json:"enabled"`
	// DeviceGlob matches the hidraw nodes to inspect.
	DeviceGlob string `mapstructure:"device_glob" toml:"device_glob" json:"device_glob"`
	// VendorID is the USB vendor id, e.g. "1bae".
	VendorID string `mapstructure:"vendor_id" toml:"vendor_id" json:"vendor_id" jsonschema:"pattern=^[0-9a-fA-F]{4}$"`
	// MonitorVendors lists EDID PnP prefixes of the HMD display.
	MonitorVendors []string `mapstructure:"monitor_vendors" toml:"monitor_vendors" json:"monitor_vendors"`
}

// DatabaseConfig locates the settings database.
type DatabaseConfig struct {
	Path string `mapstructure:"path" toml:"path" json:"path"`
}

// LoggingConfig controls log output.
type LoggingConfig struct {
	Level  string        `mapstructure:"level" toml:"level" json:"level" jsonschema:"enum=trace,enum=debug,enum=info,enum=warn,enum=error,enum=disabled"`
	Format string        `mapstructure:"format" toml:"format" json:"format" jsonschema:"enum=console,enum=json"`
	File   LogFileConfig `mapstructure:"file" toml:"file" json:"file"`
}

// LogFileConfig enables the size-rotated log file.
type LogFileConfig struct {
	Enabled    bool   `mapstructure:"enabled" toml:"enabled" json:"enabled"`
	Dir        string `mapstructure:"dir" toml:"dir" json:"dir"`
	MaxSizeMB  int    `mapstructure:"max_size_mb" toml:"max_size_mb" json:"max_size_mb" jsonschema:"minimum=1"`
	MaxBackups int    `mapstructure:"max_backups" toml:"max_backups" json:"max_backups" jsonschema:"minimum=0"`
}

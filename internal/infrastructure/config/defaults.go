package config

const (
	dirPerm  = 0o755
	filePerm = 0o644

	defaultWidth     = 1024
	defaultHeight    = 512
	defaultTitle     = "pageflip"
	defaultTargetFPS = 60

	defaultActivationTimeoutMs = 2000
	defaultActivationPollMs    = 10
	defaultWorkerQuitTimeoutMs = 2000
	defaultBusyWaitTimeoutMs   = 1000
	defaultAckTimeoutMs        = 50
	defaultAckFallbackDelayUs  = 1000

	defaultProbeTimeoutMs = 5000

	// Vuzix Corporation.
	defaultHMDVendorID   = "1bae"
	defaultHMDDeviceGlob = "/dev/hidraw*"

	defaultLogMaxSizeMB  = 10
	defaultLogMaxBackups = 3
)

// DefaultConfig returns the built-in configuration.
func DefaultConfig() *Config {
	return &Config{
		Window: WindowConfig{
			Backend:   BackendGLFW,
			Width:     defaultWidth,
			Height:    defaultHeight,
			Title:     defaultTitle,
			Movable:   true,
			TargetFPS: defaultTargetFPS,
		},
		Output: OutputConfig{
			VSync:               VSyncOn,
			ActivationTimeoutMs: defaultActivationTimeoutMs,
			ActivationPollMs:    defaultActivationPollMs,
			WorkerQuitTimeoutMs: defaultWorkerQuitTimeoutMs,
			BusyWaitTimeoutMs:   defaultBusyWaitTimeoutMs,
			AckTimeoutMs:        defaultAckTimeoutMs,
			AckFallbackDelayUs:  defaultAckFallbackDelayUs,
			Readback:            true,
		},
		Probe: ProbeConfig{
			QuadBuffer:   true,
			SecondaryAPI: true,
			TimeoutMs:    defaultProbeTimeoutMs,
		},
		HMD: HMDConfig{
			Enabled:        true,
			DeviceGlob:     defaultHMDDeviceGlob,
			VendorID:       defaultHMDVendorID,
			MonitorVendors: []string{"IWR", "VUZ"},
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
			File: LogFileConfig{
				MaxSizeMB:  defaultLogMaxSizeMB,
				MaxBackups: defaultLogMaxBackups,
			},
		},
	}
}

package config

import (
	"fmt"
	"strconv"
	"strings"
)

// validateConfig collects every problem and reports them together.
func validateConfig(config *Config) error {
	var validationErrors []string

	validationErrors = append(validationErrors, validateWindow(config)...)
	validationErrors = append(validationErrors, validateOutput(config)...)
	validationErrors = append(validationErrors, validateProbe(config)...)
	validationErrors = append(validationErrors, validateHMD(config)...)
	validationErrors = append(validationErrors, validateLogging(config)...)

	if len(validationErrors) > 0 {
		return fmt.Errorf("config validation failed:\n  - %s", strings.Join(validationErrors, "\n  - "))
	}

	return nil
}

func validateWindow(config *Config) []string {
	var validationErrors []string
	if config.Window.Width < 64 || config.Window.Height < 64 {
		validationErrors = append(validationErrors, "window.width and window.height must be at least 64")
	}
	if config.Window.TargetFPS < 0 {
		validationErrors = append(validationErrors, "window.target_fps must be non-negative")
	}
	return validationErrors
}

func validateOutput(config *Config) []string {
	var validationErrors []string
	positive := map[string]int{
		"output.activation_timeout_ms":  config.Output.ActivationTimeoutMs,
		"output.activation_poll_ms":     config.Output.ActivationPollMs,
		"output.worker_quit_timeout_ms": config.Output.WorkerQuitTimeoutMs,
		"output.busy_wait_timeout_ms":   config.Output.BusyWaitTimeoutMs,
	}
	for _, key := range []string{
		"output.activation_timeout_ms",
		"output.activation_poll_ms",
		"output.worker_quit_timeout_ms",
		"output.busy_wait_timeout_ms",
	} {
		if positive[key] <= 0 {
			validationErrors = append(validationErrors, key+" must be positive")
		}
	}
	if config.Output.ActivationPollMs > config.Output.ActivationTimeoutMs {
		validationErrors = append(validationErrors, "output.activation_poll_ms must not exceed output.activation_timeout_ms")
	}
	if config.Output.AckTimeoutMs < 0 {
		validationErrors = append(validationErrors, "output.ack_timeout_ms must be non-negative")
	}
	if config.Output.AckFallbackDelayUs < 0 {
		validationErrors = append(validationErrors, "output.ack_fallback_delay_us must be non-negative")
	}
	return validationErrors
}

func validateProbe(config *Config) []string {
	if config.Probe.TimeoutMs <= 0 {
		return []string{"probe.timeout_ms must be positive"}
	}
	return nil
}

func validateHMD(config *Config) []string {
	if !config.HMD.Enabled {
		return nil
	}
	var validationErrors []string
	if _, err := strconv.ParseUint(config.HMD.VendorID, 16, 16); err != nil {
		validationErrors = append(validationErrors, fmt.Sprintf("hmd.vendor_id %q must be a 4-digit hex USB vendor id", config.HMD.VendorID))
	}
	if config.HMD.DeviceGlob == "" {
		validationErrors = append(validationErrors, "hmd.device_glob must not be empty when hmd.enabled is true")
	}
	return validationErrors
}

func validateLogging(config *Config) []string {
	var validationErrors []string
	switch config.Logging.Level {
	case "trace", "debug", "info", "warn", "warning", "error", "disabled", "off":
	default:
		validationErrors = append(validationErrors, fmt.Sprintf("logging.level %q is not one of trace, debug, info, warn, error, disabled", config.Logging.Level))
	}
	switch config.Logging.Format {
	case "console", "json", "text":
	default:
		validationErrors = append(validationErrors, fmt.Sprintf("logging.format %q must be console or json", config.Logging.Format))
	}
	if config.Logging.File.Enabled && config.Logging.File.MaxSizeMB <= 0 {
		validationErrors = append(validationErrors, "logging.file.max_size_mb must be positive")
	}
	if config.Logging.File.MaxBackups < 0 {
		validationErrors = append(validationErrors, "logging.file.max_backups must be non-negative")
	}
	return validationErrors
}

package cli

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/bnema/pageflip/internal/application/port"
	"github.com/bnema/pageflip/internal/domain/entity"
	"github.com/bnema/pageflip/internal/infrastructure/config"
	"github.com/bnema/pageflip/internal/logging"
	"github.com/bnema/pageflip/internal/stereo"
)

// Tunables converts the [output] section.
func Tunables(cfg config.OutputConfig) stereo.Tunables {
	return stereo.Tunables{
		ActivationTimeout: millis(cfg.ActivationTimeoutMs),
		ActivationPoll:    millis(cfg.ActivationPollMs),
		AckTimeout:        millis(cfg.AckTimeoutMs),
		AckFallbackDelay:  time.Duration(cfg.AckFallbackDelayUs) * time.Microsecond,
		VSync:             VSyncMode(cfg.VSync),
		Readback:          cfg.Readback,
	}
}

// WorkerTimings converts the worker bounds of the [output] section.
func WorkerTimings(cfg config.OutputConfig) stereo.WorkerTimings {
	return stereo.WorkerTimings{
		AckTimeout:  millis(cfg.BusyWaitTimeoutMs),
		QuitTimeout: millis(cfg.WorkerQuitTimeoutMs),
	}
}

// OutputConfig builds the output configuration from the whole config.
func OutputConfig(cfg *config.Config) stereo.Config {
	return stereo.Config{
		Tunables:          Tunables(cfg.Output),
		Worker:            WorkerTimings(cfg.Output),
		ProbeTimeout:      millis(cfg.Probe.TimeoutMs),
		HMDMonitorVendors: cfg.HMD.MonitorVendors,
		DepthBuffer:       cfg.Window.DepthBuffer,
	}
}

// VSyncMode maps the config value; unknown values mean on.
func VSyncMode(v config.VSyncMode) entity.VSyncMode {
	switch v {
	case config.VSyncOff:
		return entity.VSyncOff
	case config.VSyncAdaptive:
		return entity.VSyncAdaptive
	default:
		return entity.VSyncOn
	}
}

func millis(ms int) time.Duration {
	return time.Duration(ms) * time.Millisecond
}

// LogMessages shows user-facing output messages in the log.
type LogMessages struct {
	log zerolog.Logger
}

var _ port.MessageQueue = (*LogMessages)(nil)

// NewLogMessages tags messages with the "messages" component.
func NewLogMessages(ctx context.Context) *LogMessages {
	return &LogMessages{log: logging.FromContext(ctx).With().Str("component", "messages").Logger()}
}

func (m *LogMessages) PushError(msg string) { m.log.Error().Msg(msg) }

func (m *LogMessages) PushInfo(msg string) { m.log.Info().Msg(msg) }

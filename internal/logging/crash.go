package logging

import (
	"fmt"
	"runtime"
	"runtime/debug"

	"github.com/rs/zerolog"
	"golang.org/x/sys/unix"
)

// EnableCrashForensics makes fatal errors dump all goroutines and raises
// the core size limit to its hard maximum.
func EnableCrashForensics() {
	debug.SetTraceback("crash")

	var limit unix.Rlimit
	if err := unix.Getrlimit(unix.RLIMIT_CORE, &limit); err != nil {
		return
	}
	if limit.Cur >= limit.Max {
		return
	}
	limit.Cur = limit.Max
	_ = unix.Setrlimit(unix.RLIMIT_CORE, &limit)
}

// LogCoreDumpLimits logs the current core size limits at debug level.
func LogCoreDumpLimits(logger *zerolog.Logger) {
	var limit unix.Rlimit
	if err := unix.Getrlimit(unix.RLIMIT_CORE, &limit); err != nil {
		logger.Debug().Err(err).Msg("failed to read RLIMIT_CORE")
		return
	}
	logger.Debug().
		Str("soft", formatRlimit(limit.Cur)).
		Str("hard", formatRlimit(limit.Max)).
		Msg("core dump limits")
}

func formatRlimit(value uint64) string {
	if value == unix.RLIM_INFINITY {
		return "infinity"
	}
	return fmt.Sprintf("%d", value)
}

// LogPanic logs a recovered panic with its stack and re-panics. Use it as
//
//	defer func() { logging.LogPanic(logger, recover()) }()
func LogPanic(logger *zerolog.Logger, r any) {
	if r == nil {
		return
	}
	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	logger.Error().
		Str("panic", fmt.Sprint(r)).
		Str("go", runtime.Version()).
		Uint64("alloc_kb", m.Alloc/1024).
		Uint32("num_gc", m.NumGC).
		Bytes("stack", debug.Stack()).
		Msg("PANIC")
	panic(r)
}

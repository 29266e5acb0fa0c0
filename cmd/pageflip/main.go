package main

import (
	"runtime"

	"github.com/bnema/pageflip/internal/cli/cmd"
	"github.com/bnema/pageflip/internal/domain/build"
	"github.com/bnema/pageflip/internal/logging"
)

// Build-time variables (set via ldflags).
var (
	version   = "dev"
	commit    = "unknown"
	buildDate = "unknown"
)

func main() {
	logging.EnableCrashForensics()

	cmd.SetBuildInfo(build.Info{
		Version:   version,
		Commit:    commit,
		BuildDate: buildDate,
		GoVersion: runtime.Version(),
	})

	cmd.Execute()
}

// Package version exposes build-time version information. The
// variables are overridden at link time:
//
//	go build -ldflags "-X xcsh/internal/version.Version=0.4.0 ..."
package version

import (
	"fmt"
	"runtime"
)

var (
	// Version is the release version, or "dev" for local builds.
	Version = "dev"

	// GitCommit is the short commit hash the binary was built from.
	GitCommit = "unknown"

	// BuildDate is the UTC build timestamp.
	BuildDate = "unknown"
)

// Short returns just the version string.
func Short() string {
	return Version
}

// Detailed returns the multi-line output of the version built-in.
func Detailed() string {
	return fmt.Sprintf("xcsh %s\n  commit:  %s\n  built:   %s\n  runtime: %s %s/%s",
		Version, GitCommit, BuildDate, runtime.Version(), runtime.GOOS, runtime.GOARCH)
}

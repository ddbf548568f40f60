// Package version provides build-time version information.
// Values are injected with -ldflags "-X github.com/git-pkgs/adoptium/internal/version.Version=x.y.z".
package version

import (
	"fmt"
	"runtime"
)

var (
	// Version is the semantic version of the plugin.
	Version = "dev"

	// Commit is the git commit hash of the build.
	Commit = "unknown"
)

// String returns a human-readable version string.
func String() string {
	if Commit != "unknown" && len(Commit) >= 8 {
		return fmt.Sprintf("adoptium %s (commit: %s, %s, %s/%s)", Version, Commit[:8], runtime.Version(), runtime.GOOS, runtime.GOARCH)
	}
	return fmt.Sprintf("adoptium %s (%s, %s/%s)", Version, runtime.Version(), runtime.GOOS, runtime.GOARCH)
}

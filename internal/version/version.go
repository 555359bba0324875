// Package version reports build information for schemadoc.
package version

import (
	"fmt"
	"runtime/debug"
)

// These variables are set at build time via ldflags
var (
	Version   = "dev"
	Commit    = "unknown"
	BuildTime = "unknown"
)

// String returns the version followed by the commit and build time.
func String() string {
	return fmt.Sprintf("%s (commit: %s, built: %s)", Version, shortCommit(Commit, readBuildInfo), BuildTime)
}

// shortCommit abbreviates commit, falling back to the VCS revision embedded
// by the Go toolchain when no commit was stamped.
func shortCommit(commit string, info func() (*debug.BuildInfo, bool)) string {
	if commit == "unknown" {
		if bi, ok := info(); ok {
			for _, s := range bi.Settings {
				if s.Key == "vcs.revision" && s.Value != "" {
					commit = s.Value
				}
			}
		}
	}
	if len(commit) > 7 {
		return commit[:7]
	}
	return commit
}

var readBuildInfo = debug.ReadBuildInfo

// Package version provides build-time version information.
package version

import "fmt"

// These variables are set at build time via ldflags.
var (
	Version = "dev"
	Commit  = "unknown"
	Date    = "unknown"
)

// String returns the full human-readable version line.
func String() string {
	return fmt.Sprintf("maistat version %s (commit: %s, built: %s)", Version, Commit, Date)
}

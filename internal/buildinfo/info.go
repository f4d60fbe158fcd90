// Package buildinfo holds values stamped by the linker at release time.
package buildinfo

import "fmt"

var (
	// Version is set via -ldflags "-X .../buildinfo.Version=...".
	Version = "dev"
	// Commit is the git revision of the build.
	Commit = "none"
	// Date is the build timestamp.
	Date = "unknown"
)

// String formats the build values for --version.
func String() string {
	return fmt.Sprintf("%s (commit: %s, built: %s)", Version, Commit, Date)
}

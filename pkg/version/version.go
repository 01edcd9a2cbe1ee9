// Package version holds build information, set with -ldflags at release time.
package version

import "fmt"

var (
	Version   = "v0.1.0"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

// String renders the full version line.
func String() string {
	return fmt.Sprintf("hp %s (commit %s, built %s)", Version, GitCommit, BuildDate)
}

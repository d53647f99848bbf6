package version

import "fmt"

// Set at build time via -ldflags.
var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

// GetInfo returns the human-readable build description.
func GetInfo() string {
	return fmt.Sprintf("%s (commit %s, built %s)", Version, Commit, Date)
}

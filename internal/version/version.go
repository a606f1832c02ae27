// Package version provides build-time version information for reflow.
package version

// These variables are set at build time via ldflags, for example
// -X github.com/open-cli-collective/markup-reflow/internal/version.Version=v1.2.0
var (
	Version = "dev"
	Commit  = "unknown"
	Date    = "unknown"
)

// String returns the version line printed by `reflow --version`.
func String() string {
	return Version + " (commit: " + Commit + ", built: " + Date + ")"
}

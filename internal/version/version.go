// Package version holds build metadata injected with -ldflags, e.g.
// -X github.com/bnema/guide-cli/internal/version.Version=v0.3.0.
package version

var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

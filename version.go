package blindx

import "fmt"

// Version of the blindx library
const Version = "0.1.0"

// Build information (set by ldflags during build)
var (
	GitCommit string
	BuildDate string
)

// VersionInfo returns formatted version information
func VersionInfo() string {
	if GitCommit == "" {
		return fmt.Sprintf("blindx v%s", Version)
	}
	return fmt.Sprintf("blindx v%s (commit: %s, built: %s)", Version, GitCommit, BuildDate)
}

// VersionDetails contains detailed version information
type VersionDetails struct {
	Version   string `json:"version"`
	GitCommit string `json:"git_commit,omitempty"`
	BuildDate string `json:"build_date,omitempty"`
	Dimension int    `json:"dimension"`
}

// FullVersionInfo returns the version together with the embedding dimension
// the build was compiled for.
func FullVersionInfo() VersionDetails {
	return VersionDetails{
		Version:   Version,
		GitCommit: GitCommit,
		BuildDate: BuildDate,
		Dimension: Dimension,
	}
}

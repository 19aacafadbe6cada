// Package version exposes build metadata injected at link time.
package version

// These values are overridden via -ldflags "-X github.com/rshade/pokedex/pkg/version.version=...".
//
//nolint:gochecknoglobals // Link-time injected build metadata.
var (
	version   = "0.1.0-dev"
	gitCommit = "unknown"
	buildDate = "unknown"
)

// GetVersion returns the semantic version of the binary.
func GetVersion() string {
	return version
}

// GetGitCommit returns the git commit the binary was built from.
func GetGitCommit() string {
	return gitCommit
}

// GetBuildDate returns the build timestamp.
func GetBuildDate() string {
	return buildDate
}

// UserAgent returns the User-Agent sent to upstream APIs.
func UserAgent() string {
	return "pokedex/" + version
}

// Package version holds the build version of github-stars.
package version

// Name is the program name reported to the GitHub API.
const Name = "github-stars"

// Version is overridden at build time with
// -ldflags "-X github.com/naka-gawa/github-stars/internal/version.Version=v1.2.3".
var Version = "dev"

// UserAgent returns the client identifier GitHub requires on every API request.
func UserAgent() string {
	return Name + "/" + Version
}

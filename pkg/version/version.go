// Package version holds the build version, set with
// -ldflags "-X github.com/Dicklesworthstone/skillport/pkg/version.Version=v1.2.3".
package version

// Version is the release tag of this build.
var Version = "v0.1.0"

// Package buildinfo provides build-time version information.
//
// Values are injected at build time via ldflags:
//
//	go build -ldflags "-X github.com/yndnr/multiagent-go/internal/infra/buildinfo.Version=v1.0.0"
package buildinfo

import (
	"runtime"
	"runtime/debug"
)

// Build-time variables (set via ldflags).
var (
	// Version is the semantic version.
	Version = "dev"

	// Commit is the git commit hash.
	Commit = "unknown"

	// BuildTime is the build timestamp.
	BuildTime = "unknown"

	// GoVersion is the Go version used to build.
	GoVersion = runtime.Version()
)

// Info contains build information.
type Info struct {
	Version   string `json:"version" yaml:"version"`
	Commit    string `json:"commit" yaml:"commit"`
	BuildTime string `json:"build_time" yaml:"build_time"`
	GoVersion string `json:"go_version" yaml:"go_version"`
	Platform  string `json:"platform" yaml:"platform"`
}

// Get returns the build information. When Commit was not set via
// ldflags, the VCS revision embedded by the Go toolchain is used.
func Get() Info {
	return Info{
		Version:   Version,
		Commit:    commit(),
		BuildTime: BuildTime,
		GoVersion: GoVersion,
		Platform:  runtime.GOOS + "/" + runtime.GOARCH,
	}
}

// String returns a formatted version string.
func String() string {
	return Version + " (" + commit() + ") built at " + BuildTime
}

func commit() string {
	if Commit != "unknown" {
		return Commit
	}
	bi, ok := debug.ReadBuildInfo()
	if !ok {
		return Commit
	}
	for _, s := range bi.Settings {
		if s.Key == "vcs.revision" && len(s.Value) >= 7 {
			return s.Value[:7]
		}
	}
	return Commit
}

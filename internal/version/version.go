// Package version provides build version information.
package version

import (
	"fmt"
	"runtime"
	"runtime/debug"
)

var (
	// Version is the semantic version (injected at build time via -ldflags)
	version = "dev"
	// Commit is the git commit hash (injected at build time via -ldflags)
	commit = "none"
	// Date is the build date (injected at build time via -ldflags)
	date = "unknown"

	readBuildInfo = debug.ReadBuildInfo
)

// Info describes the running binary.
type Info struct {
	Version   string `yaml:"version" json:"version"`
	Commit    string `yaml:"commit" json:"commit"`
	Date      string `yaml:"date" json:"date"`
	GoVersion string `yaml:"go" json:"go"`
	Platform  string `yaml:"platform" json:"platform"`
}

// Get returns the build information. Binaries installed with `go install`
// carry no ldflags, so the module version from the build info is used then.
func Get() Info {
	info := Info{
		Version:   version,
		Commit:    commit,
		Date:      date,
		GoVersion: runtime.Version(),
		Platform:  runtime.GOOS + "/" + runtime.GOARCH,
	}

	if info.Version != "dev" {
		return info
	}

	if bi, ok := readBuildInfo(); ok && bi.Main.Version != "" && bi.Main.Version != "(devel)" {
		info.Version = bi.Main.Version
	}

	return info
}

// GetVersion returns the version string
func GetVersion() string {
	return Get().Version
}

// GetFullVersion returns version with commit, date and platform info
func GetFullVersion() string {
	i := Get()
	return fmt.Sprintf("%s (commit: %s, built: %s, %s %s)", i.Version, i.Commit, i.Date, i.GoVersion, i.Platform)
}

package version

import "runtime/debug"

// SetBuildInfo swaps the build info reader for the duration of a test.
func SetBuildInfo(fn func() (*debug.BuildInfo, bool)) func() {
	prev := readBuildInfo
	readBuildInfo = fn
	return func() { readBuildInfo = prev }
}

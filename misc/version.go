// Package misc keeps program identity helpers used by logging,
// configuration and reporting.
package misc

import (
	"runtime/debug"
	"sync"
)

// Overwritten by the linker on release builds.
var (
	appName = "cssel"
	version = "development"
	gitHash = ""
)

// GetAppName returns the program name used for log, panic and report file
// naming.
func GetAppName() string {
	return appName
}

// GetVersion returns the program version.
func GetVersion() string {
	return version
}

// GetGitHash returns the VCS revision the program was built from.
var GetGitHash = sync.OnceValue(func() string {
	if gitHash != "" {
		return gitHash
	}
	if bi, ok := debug.ReadBuildInfo(); ok {
		for _, s := range bi.Settings {
			if s.Key == "vcs.revision" {
				return s.Value
			}
		}
	}
	return "unknown"
})

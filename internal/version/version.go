// Package version holds the build version of dtif.
package version

// Version is overridden at build time with -ldflags.
var Version = "0.1.0-dev"

// GitCommit is the commit the binary was built from.
var GitCommit = ""

// String returns the version with the commit when known.
func String() string {
	if GitCommit == "" {
		return Version
	}
	return Version + " (" + GitCommit + ")"
}

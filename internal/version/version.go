// Package version carries build identification for the analysis tools,
// injected at build time through -ldflags.
package version

var (
	// Version is the release version of the analysis toolchain
	Version = "dev"
	// GitSHA is the git commit the binary was built from
	GitSHA = "unknown"
	// BuildTime is the build timestamp
	BuildTime = "unknown"
)

package version

import "github.com/fatih/color"

// Version information for the bitscript CLI.
// These variables can be overridden at build time via -ldflags.

var (
	versionMajorColor = color.New(color.FgYellow, color.Bold)
	versionMinorColor = color.New(color.FgGreen, color.Bold)
	versionPatchColor = color.New(color.FgBlue, color.Bold)

	// Major, Minor and Patch make up the plain semantic version.
	Major = "0"
	Minor = "3"
	Patch = "0"

	// Version is the colored semantic version shown by --version.
	Version = versionMajorColor.Sprint(Major) + "." + versionMinorColor.Sprint(Minor) + "." + versionPatchColor.Sprint(Patch) + "-dev"

	// GitCommit is an optional git commit hash.
	GitCommit = ""

	// BuildDate is an optional build date in ISO-8601.
	BuildDate = ""
)

// Plain returns the version without color escapes.
func Plain() string {
	return Major + "." + Minor + "." + Patch + "-dev"
}

// Package settings provides build metadata, runtime configuration, and
// context helpers used across the roadtrip CLI and library packages.
package settings

// CliBinaryName is the canonical binary name for this tool.
const CliBinaryName = "roadtrip"

// VersionInformation is populated at build time via ldflags and holds the
// commit hash, semantic version, and build timestamp of the running binary.
var VersionInformation = VersionInfo{
	Commit:       "unknown",
	BuildVersion: "v0.0.0-nightly",
	BuildTime:    "unknown",
}

// VersionInfo holds metadata about the build, including the commit hash,
// build version, and build timestamp.
type VersionInfo struct {
	Commit       string
	BuildVersion string
	BuildTime    string
}

// Output formats accepted by the -o flag.
const (
	OutputTable = "table"
	OutputJSON  = "json"
	OutputYAML  = "yaml"
	OutputTOML  = "toml"
	OutputTree  = "tree"
)

// Run holds configuration settings for a single execution of the application.
type Run struct {
	MinLogLevel  int8
	OutputFormat string
	IsQuiet      bool
	NoColor      bool
	ExitOnError  bool
}

// NewCliParams returns the defaults for an interactive CLI invocation.
func NewCliParams() *Run {
	return &Run{
		MinLogLevel:  0,
		OutputFormat: OutputTable,
		IsQuiet:      false,
		NoColor:      false,
		ExitOnError:  true,
	}
}

// ValidOutputFormat reports whether f is a supported -o value.
func ValidOutputFormat(f string) bool {
	switch f {
	case OutputTable, OutputJSON, OutputYAML, OutputTOML, OutputTree:
		return true
	}
	return false
}

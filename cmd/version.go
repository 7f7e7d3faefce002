package cmd

import (
	"fmt"
	"runtime"
	rdebug "runtime/debug"

	"github.com/spf13/cobra"

	"github.com/oakwood-commons/roadtrip/pkg/settings"
)

// versionData describes the running binary.
type versionData struct {
	Name      string `json:"name" yaml:"name"`
	Version   string `json:"version" yaml:"version"`
	Commit    string `json:"commit" yaml:"commit"`
	BuildTime string `json:"build_time" yaml:"build_time"`
	GoVersion string `json:"go_version" yaml:"go_version"`
	Platform  string `json:"platform" yaml:"platform"`
}

// buildVersionData prefers the ldflags-stamped values and falls back to the
// module build info.
func buildVersionData() versionData {
	v := versionData{
		Name:      settings.CliBinaryName,
		Version:   settings.VersionInformation.BuildVersion,
		Commit:    settings.VersionInformation.Commit,
		BuildTime: settings.VersionInformation.BuildTime,
		GoVersion: runtime.Version(),
		Platform:  runtime.GOOS + "/" + runtime.GOARCH,
	}
	info, ok := rdebug.ReadBuildInfo()
	if !ok {
		return v
	}
	if v.Version == "v0.0.0-nightly" && info.Main.Version != "" && info.Main.Version != "(devel)" {
		v.Version = info.Main.Version
	}
	if v.Commit == "unknown" {
		for _, s := range info.Settings {
			if s.Key == "vcs.revision" && len(s.Value) >= 7 {
				v.Commit = s.Value[:7]
				break
			}
		}
	}
	return v
}

func newVersionCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, _ []string) error {
			v := buildVersionData()
			if a.structured(cmd.Context()) {
				return a.render(cmd.Context(), v, "version", nil)
			}
			_, err := fmt.Fprintf(a.out, "%s %s (commit %s, built %s, %s %s)\n",
				v.Name, v.Version, v.Commit, v.BuildTime, v.GoVersion, v.Platform)
			return err
		},
	}
}


package main

import (
	"fmt"
	"runtime"
	rdebug "runtime/debug"

	"github.com/spf13/cobra"
)

// Overridden at release time with -ldflags "-X main.version=...".
// Empty values fall back to the build info the go tool embeds.
var (
	version string
	commit  string
	date    string
)

type buildInfo struct {
	Version   string `json:"version" yaml:"version"`
	Commit    string `json:"commit" yaml:"commit"`
	Date      string `json:"date" yaml:"date"`
	Modified  bool   `json:"modified,omitempty" yaml:"modified,omitempty"`
	GoVersion string `json:"go_version" yaml:"go_version"`
}

// readBuildInfo merges the ldflags variables over info; info may be nil
// when the binary carries no module data.
func readBuildInfo(info *rdebug.BuildInfo) buildInfo {
	b := buildInfo{Version: "dev", Commit: "none", Date: "unknown", GoVersion: runtime.Version()}
	if info != nil {
		if v := info.Main.Version; v != "" && v != "(devel)" {
			b.Version = v
		}
		if info.GoVersion != "" {
			b.GoVersion = info.GoVersion
		}
		for _, s := range info.Settings {
			switch s.Key {
			case "vcs.revision":
				b.Commit = s.Value
			case "vcs.time":
				b.Date = s.Value
			case "vcs.modified":
				b.Modified = s.Value == "true"
			}
		}
	}
	if version != "" {
		b.Version = version
	}
	if commit != "" {
		b.Commit = commit
	}
	if date != "" {
		b.Date = date
	}
	return b
}

func currentBuild() buildInfo {
	info, _ := rdebug.ReadBuildInfo()
	return readBuildInfo(info)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runVersion(currentBuild())
	},
}

func runVersion(b buildInfo) error {
	if structured() {
		return printResult(b)
	}
	rev := b.Commit
	if b.Modified {
		rev += " (modified)"
	}
	fmt.Printf("regctl %s\n", b.Version)
	fmt.Printf("  commit: %s\n", rev)
	fmt.Printf("  built:  %s\n", b.Date)
	fmt.Printf("  go:     %s\n", b.GoVersion)
	return nil
}

func init() {
	rootCmd.Version = currentBuild().Version
	rootCmd.AddCommand(versionCmd)
}

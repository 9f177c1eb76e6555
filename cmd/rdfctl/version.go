package main

import (
	"runtime"
	"runtime/debug"

	"github.com/spf13/cobra"

	"github.com/nmtools/rdfkit/rdf"
	"github.com/nmtools/rdfkit/rdf/listmode"
)

// Set with -ldflags "-X main.version=... -X main.commit=... -X main.date=...".
var (
	version = "dev"
	commit  = ""
	date    = ""
)

// BuildInfo describes the binary and the file variants it understands.
type BuildInfo struct {
	Version     string   `json:"version"`
	Commit      string   `json:"commit"`
	Built       string   `json:"built"`
	Modified    bool     `json:"modified,omitempty"`
	GoVersion   string   `json:"goVersion"`
	Schemas     []string `json:"schemas"`
	Generations []string `json:"generations"`
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runVersion()
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}

func runVersion() error {
	info := buildInfo()
	if jsonOut {
		return printJSON(info)
	}
	printInfo("rdfctl %s\n", info.Version)
	printInfo("  commit:   %s\n", info.Commit)
	if info.Modified {
		printInfo("            (modified)\n")
	}
	printInfo("  built:    %s\n", info.Built)
	printInfo("  go:       %s\n", info.GoVersion)
	printInfo("  schemas:  %v\n", info.Schemas)
	printInfo("  listmode: %v\n", info.Generations)
	return nil
}

// buildInfo prefers ldflags values and falls back to the VCS stamp the Go
// toolchain embeds in module builds.
func buildInfo() BuildInfo {
	info := BuildInfo{
		Version:     version,
		Commit:      commit,
		Built:       date,
		GoVersion:   runtime.Version(),
		Schemas:     []string{rdf.SchemaV7.String(), rdf.SchemaV8.String()},
		Generations: []string{listmode.GenerationDimension.String(), listmode.GenerationRDF8.String()},
	}
	if bi, ok := debug.ReadBuildInfo(); ok {
		if info.Version == "dev" && bi.Main.Version != "" && bi.Main.Version != "(devel)" {
			info.Version = bi.Main.Version
		}
		for _, s := range bi.Settings {
			switch s.Key {
			case "vcs.revision":
				if info.Commit == "" {
					info.Commit = s.Value
				}
			case "vcs.time":
				if info.Built == "" {
					info.Built = s.Value
				}
			case "vcs.modified":
				info.Modified = s.Value == "true"
			}
		}
	}
	if info.Commit == "" {
		info.Commit = "none"
	}
	if info.Built == "" {
		info.Built = "unknown"
	}
	return info
}

package cli

import (
	"fmt"
	"runtime"
	"runtime/debug"
	"strings"

	"github.com/spf13/cobra"

	"github.com/aidanlsb/scribe/internal/buildinfo"
	"github.com/aidanlsb/scribe/internal/session"
	"github.com/aidanlsb/scribe/internal/tei"
)

const defaultModulePath = "github.com/aidanlsb/scribe"

// versionInfo describes the binary and the formats it reads and writes.
type versionInfo struct {
	Version    string `json:"version"`
	ModulePath string `json:"module_path"`
	Commit     string `json:"commit,omitempty"`
	CommitTime string `json:"commit_time,omitempty"`
	Modified   bool   `json:"modified"`
	GoVersion  string `json:"go_version"`
	GOOS       string `json:"goos"`
	GOARCH     string `json:"goarch"`
	StateKey   string `json:"state_key"`
	TEISchema  string `json:"tei_schema"`
}

var readBuildInfo = debug.ReadBuildInfo

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show scribe version, build and format information",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		info := currentVersionInfo()
		if isJSONOutput() {
			outputSuccess(info, nil)
			return nil
		}

		fmt.Printf("scribe %s (%s/%s, %s)\n", info.Version, info.GOOS, info.GOARCH, info.GoVersion)
		if info.Commit != "" {
			commit := info.Commit
			if info.Modified {
				commit += "+dirty"
			}
			if info.CommitTime != "" {
				commit += " " + info.CommitTime
			}
			fmt.Printf("commit:     %s\n", commit)
		}
		fmt.Printf("module:     %s\n", info.ModulePath)
		fmt.Printf("state key:  %s\n", info.StateKey)
		fmt.Printf("tei schema: %s\n", info.TEISchema)
		return nil
	},
}

func currentVersionInfo() versionInfo {
	info := versionInfo{
		Version:    "devel",
		ModulePath: defaultModulePath,
		GoVersion:  runtime.Version(),
		GOOS:       runtime.GOOS,
		GOARCH:     runtime.GOARCH,
		StateKey:   session.StateKey,
		TEISchema:  tei.SchemaURL,
	}

	if bi, ok := readBuildInfo(); ok && bi != nil {
		settings := make(map[string]string, len(bi.Settings))
		for _, s := range bi.Settings {
			settings[s.Key] = s.Value
		}
		setIfPresent(&info.ModulePath, bi.Main.Path)
		setIfPresent(&info.GoVersion, bi.GoVersion)
		setIfPresent(&info.GOOS, settings["GOOS"])
		setIfPresent(&info.GOARCH, settings["GOARCH"])
		info.Version = normalizeVersion(bi.Main.Version)
		info.Commit = settings["vcs.revision"]
		info.CommitTime = settings["vcs.time"]
		info.Modified = strings.EqualFold(settings["vcs.modified"], "true")
	}

	// -ldflags values fill what the module build info left out.
	if info.Version == "devel" {
		info.Version = normalizeVersion(buildinfo.Version)
	}
	setIfEmpty(&info.Commit, buildinfo.Commit)
	setIfEmpty(&info.CommitTime, buildinfo.Date)
	return info
}

func normalizeVersion(version string) string {
	if version == "" || version == "(devel)" {
		return "devel"
	}
	return version
}

func setIfPresent(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}

func setIfEmpty(dst *string, v string) {
	if *dst == "" {
		*dst = v
	}
}

func init() {
	rootCmd.AddCommand(versionCmd)
}

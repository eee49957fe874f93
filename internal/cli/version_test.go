package cli

import (
	"encoding/json"
	"runtime"
	"runtime/debug"
	"testing"

	"github.com/aidanlsb/scribe/internal/buildinfo"
	"github.com/aidanlsb/scribe/internal/session"
	"github.com/aidanlsb/scribe/internal/tei"
)

func TestCurrentVersionInfoFromBuildInfo(t *testing.T) {
	prevRead := readBuildInfo
	t.Cleanup(func() { readBuildInfo = prevRead })

	readBuildInfo = func() (*debug.BuildInfo, bool) {
		return &debug.BuildInfo{
			GoVersion: "go1.24.0",
			Main: debug.Module{
				Path:    "github.com/aidanlsb/scribe",
				Version: "v0.4.0",
			},
			Settings: []debug.BuildSetting{
				{Key: "vcs.revision", Value: "abc123"},
				{Key: "vcs.time", Value: "2026-09-30T12:00:00Z"},
				{Key: "vcs.modified", Value: "true"},
				{Key: "GOOS", Value: "linux"},
				{Key: "GOARCH", Value: "arm64"},
			},
		}, true
	}

	info := currentVersionInfo()

	if info.Version != "v0.4.0" {
		t.Fatalf("Version = %q, want v0.4.0", info.Version)
	}
	if info.Commit != "abc123" || info.CommitTime != "2026-09-30T12:00:00Z" {
		t.Fatalf("commit = %q @ %q", info.Commit, info.CommitTime)
	}
	if !info.Modified {
		t.Fatal("Modified = false, want true")
	}
	if info.GOOS != "linux" || info.GOARCH != "arm64" {
		t.Fatalf("platform = %s/%s, want linux/arm64", info.GOOS, info.GOARCH)
	}
	if info.StateKey != session.StateKey || info.TEISchema != tei.SchemaURL {
		t.Fatalf("format info = %q, %q", info.StateKey, info.TEISchema)
	}
}

func TestCurrentVersionInfoFallsBackToLdflags(t *testing.T) {
	prevRead := readBuildInfo
	prevVersion, prevCommit := buildinfo.Version, buildinfo.Commit
	t.Cleanup(func() {
		readBuildInfo = prevRead
		buildinfo.Version, buildinfo.Commit = prevVersion, prevCommit
	})

	readBuildInfo = func() (*debug.BuildInfo, bool) { return nil, false }
	buildinfo.Version = "v1.0.0"
	buildinfo.Commit = "feedbeef"

	info := currentVersionInfo()

	if info.Version != "v1.0.0" || info.Commit != "feedbeef" {
		t.Fatalf("ldflags not applied: %+v", info)
	}
	if info.ModulePath != defaultModulePath {
		t.Fatalf("ModulePath = %q, want %q", info.ModulePath, defaultModulePath)
	}
	if info.GoVersion != runtime.Version() {
		t.Fatalf("GoVersion = %q, want runtime %q", info.GoVersion, runtime.Version())
	}
}

func TestVersionCommandJSONOutput(t *testing.T) {
	prevRead := readBuildInfo
	prevJSON := jsonOutput
	t.Cleanup(func() {
		readBuildInfo = prevRead
		jsonOutput = prevJSON
	})

	readBuildInfo = func() (*debug.BuildInfo, bool) {
		return &debug.BuildInfo{
			Main: debug.Module{Path: "github.com/aidanlsb/scribe", Version: "(devel)"},
		}, true
	}
	jsonOutput = true

	out := captureStdout(t, func() {
		if err := versionCmd.RunE(versionCmd, nil); err != nil {
			t.Fatalf("versionCmd.RunE: %v", err)
		}
	})

	var resp struct {
		OK   bool        `json:"ok"`
		Data versionInfo `json:"data"`
	}
	if err := json.Unmarshal([]byte(out), &resp); err != nil {
		t.Fatalf("expected JSON output, got parse error: %v; out=%s", err, out)
	}
	if !resp.OK || resp.Data.Version != "devel" {
		t.Fatalf("unexpected response: %s", out)
	}
}

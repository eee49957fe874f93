package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestResolveStatePath(t *testing.T) {
	configPath := "/tmp/scribe/config.toml"

	t.Run("explicit state path wins", func(t *testing.T) {
		got := ResolveStatePath("/tmp/custom/state.toml", configPath, &Config{
			StateFile: "state-from-config.toml",
		})
		if got != "/tmp/custom/state.toml" {
			t.Fatalf("expected explicit state path, got %q", got)
		}
	})

	t.Run("config state_file absolute", func(t *testing.T) {
		got := ResolveStatePath("", configPath, &Config{StateFile: "/var/tmp/scribe-state.toml"})
		if got != "/var/tmp/scribe-state.toml" {
			t.Fatalf("expected absolute state path, got %q", got)
		}
	})

	t.Run("config state_file relative to config dir", func(t *testing.T) {
		got := ResolveStatePath("", "/Users/me/.config/scribe/config.toml", &Config{StateFile: "runtime/state.toml"})
		want := "/Users/me/.config/scribe/runtime/state.toml"
		if got != want {
			t.Fatalf("expected %q, got %q", want, got)
		}
	})

	t.Run("fallback sibling state.toml", func(t *testing.T) {
		got := ResolveStatePath("", "/Users/me/.config/scribe/config.toml", &Config{})
		want := "/Users/me/.config/scribe/state.toml"
		if got != want {
			t.Fatalf("expected %q, got %q", want, got)
		}
	})
}

func TestLoadStateMissingReturnsDefault(t *testing.T) {
	state, err := LoadState(filepath.Join(t.TempDir(), "state.toml"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if state.Version != StateVersion {
		t.Fatalf("expected version %d, got %d", StateVersion, state.Version)
	}
	if state.ActiveProject != "" {
		t.Fatalf("expected empty active project, got %q", state.ActiveProject)
	}
}

func TestSaveStateRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "state.toml")

	if err := SaveState(path, &State{ActiveProject: " arrona "}); err != nil {
		t.Fatalf("save state: %v", err)
	}
	loaded, err := LoadState(path)
	if err != nil {
		t.Fatalf("load state: %v", err)
	}
	if loaded.Version != StateVersion {
		t.Fatalf("expected version %d, got %d", StateVersion, loaded.Version)
	}
	if loaded.ActiveProject != "arrona" {
		t.Fatalf("expected active_project=arrona, got %q", loaded.ActiveProject)
	}
}

func TestStateRecordsLastExport(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.toml")

	state := &State{ActiveProject: "arrona"}
	state.RecordExport("/work/arrona/", "/work/arrona/exports/arrona_vocabulary_1830_p1.xml")
	if err := SaveState(path, state); err != nil {
		t.Fatalf("save state: %v", err)
	}

	loaded, err := LoadState(path)
	if err != nil {
		t.Fatalf("load state: %v", err)
	}
	if got := loaded.LastExport("/work/arrona"); got != "/work/arrona/exports/arrona_vocabulary_1830_p1.xml" {
		t.Fatalf("LastExport = %q", got)
	}
	if got := loaded.LastExport("/work/other"); got != "" {
		t.Fatalf("unexpected export for other project: %q", got)
	}
}

func TestLoadStateUpgradesVersionOne(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.toml")
	if err := os.WriteFile(path, []byte("version = 1\nactive_project = \"arrona\"\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	loaded, err := LoadState(path)
	if err != nil {
		t.Fatalf("load state: %v", err)
	}
	if loaded.Version != StateVersion || loaded.ActiveProject != "arrona" {
		t.Fatalf("unexpected state %+v", loaded)
	}
	if loaded.LastExports != nil {
		t.Fatalf("expected no export history, got %v", loaded.LastExports)
	}
}

func TestLoadStateRejectsGarbage(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.toml")
	if err := os.WriteFile(path, []byte("version = [\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadState(path); err == nil {
		t.Fatal("expected a parse error")
	}
}

func TestSaveToWritesConfiguredFields(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")

	err := SaveTo(path, &Config{
		DefaultProject: "arrona",
		StateFile:      "state.toml",
		LogLevel:       "debug",
		Projects:       map[string]string{"arrona": "/work/arrona"},
	})
	if err != nil {
		t.Fatalf("save config: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read config: %v", err)
	}
	content := string(data)
	for _, want := range []string{
		`default_project = "arrona"`,
		`state_file = "state.toml"`,
		`log_level = "debug"`,
		"[projects]",
	} {
		if !strings.Contains(content, want) {
			t.Fatalf("expected %q in output, got:\n%s", want, content)
		}
	}
	if strings.Contains(content, "[ui]") {
		t.Fatalf("empty ui table should be omitted, got:\n%s", content)
	}
}

package testutil

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// AssertFileExists fails the test if the file does not exist.
func (p *TestProject) AssertFileExists(relPath string) {
	p.t.Helper()
	if _, err := os.Stat(filepath.Join(p.Path, relPath)); os.IsNotExist(err) {
		p.t.Errorf("expected file to exist: %s", relPath)
	}
}

// AssertFileNotExists fails the test if the file exists.
func (p *TestProject) AssertFileNotExists(relPath string) {
	p.t.Helper()
	if _, err := os.Stat(filepath.Join(p.Path, relPath)); err == nil {
		p.t.Errorf("expected file to not exist: %s", relPath)
	}
}

// AssertFileContains fails the test if the file does not contain the substring.
func (p *TestProject) AssertFileContains(relPath, substr string) {
	p.t.Helper()
	content := p.ReadFile(relPath)
	if !strings.Contains(content, substr) {
		p.t.Errorf("expected file %s to contain %q, got:\n%s", relPath, substr, content)
	}
}

// AssertDirExists fails the test if the directory does not exist.
func (p *TestProject) AssertDirExists(relPath string) {
	p.t.Helper()
	info, err := os.Stat(filepath.Join(p.Path, relPath))
	if os.IsNotExist(err) {
		p.t.Errorf("expected directory to exist: %s", relPath)
		return
	}
	if !info.IsDir() {
		p.t.Errorf("expected %s to be a directory, but it's a file", relPath)
	}
}

// AssertEntryCount lists entries and verifies how many there are.
func (p *TestProject) AssertEntryCount(expected int) {
	p.t.Helper()
	result := p.RunCLI("entry", "list")
	result.MustSucceed(p.t)
	if got := len(result.DataList("entries")); got != expected {
		p.t.Errorf("expected %d entries, got %d\nRaw: %s", expected, got, result.RawJSON)
	}
}

// AssertRenderContains renders the transcription and checks for substr.
func (p *TestProject) AssertRenderContains(format, substr string) {
	p.t.Helper()
	result := p.RunCLI("render", "--format", format)
	result.MustSucceed(p.t)
	if content := result.DataString("content"); !strings.Contains(content, substr) {
		p.t.Errorf("expected %s render to contain %q, got:\n%s", format, substr, content)
	}
}

// AssertHasWarning checks that the result contains a warning with the given code.
func (r *CLIResult) AssertHasWarning(t *testing.T, code string) {
	t.Helper()
	for _, w := range r.Warnings {
		if w.Code == code {
			return
		}
	}
	t.Errorf("expected warning with code %s, got warnings: %+v", code, r.Warnings)
}

// AssertNoWarnings checks that the result has no warnings.
func (r *CLIResult) AssertNoWarnings(t *testing.T) {
	t.Helper()
	if len(r.Warnings) > 0 {
		t.Errorf("expected no warnings, got: %+v", r.Warnings)
	}
}

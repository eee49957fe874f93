// Package testutil provides reusable test utilities for scribe integration tests.
package testutil

import (
	"os"
	"path/filepath"
	"testing"
)

// TestProject represents a temporary transcription project for testing.
// Each project gets its own config.toml and state.toml so tests never read
// the user's configuration.
type TestProject struct {
	Path string

	// ConfigDir holds config.toml and state.toml for this project's runs.
	ConfigDir string

	t     *testing.T
	files map[string]string
}

// NewTestProject creates a new test project builder.
// Call Build() to create the actual project directory.
func NewTestProject(t *testing.T) *TestProject {
	t.Helper()
	return &TestProject{
		t:     t,
		files: make(map[string]string),
	}
}

// WithFile adds a file to the project.
// The path is relative to the project root.
func (p *TestProject) WithFile(path, content string) *TestProject {
	p.files[path] = content
	return p
}

// WithProjectYAML sets the scribe.yaml content for the project.
func (p *TestProject) WithProjectYAML(yaml string) *TestProject {
	p.files["scribe.yaml"] = yaml
	return p
}

// Build creates the project directory and all configured files.
// It does not run 'scribe init'; call Init for that.
func (p *TestProject) Build() *TestProject {
	p.t.Helper()

	p.Path = p.t.TempDir()
	p.ConfigDir = p.t.TempDir()

	for path, content := range p.files {
		p.writeFile(path, content)
	}
	return p
}

// Init runs 'scribe init' on the project and fails the test on error.
func (p *TestProject) Init() *TestProject {
	p.t.Helper()
	p.RunCLI("init", p.Path).MustSucceed(p.t)
	return p
}

// ConfigPath returns the isolated config.toml path.
func (p *TestProject) ConfigPath() string {
	return filepath.Join(p.ConfigDir, "config.toml")
}

// StatePath returns the isolated state.toml path.
func (p *TestProject) StatePath() string {
	return filepath.Join(p.ConfigDir, "state.toml")
}

// writeFile writes a file to the project, creating directories as needed.
func (p *TestProject) writeFile(relPath, content string) {
	p.t.Helper()
	fullPath := filepath.Join(p.Path, relPath)

	dir := filepath.Dir(fullPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		p.t.Fatalf("failed to create directory %s: %v", dir, err)
	}
	if err := os.WriteFile(fullPath, []byte(content), 0o644); err != nil {
		p.t.Fatalf("failed to write file %s: %v", fullPath, err)
	}
}

// ReadFile reads a file from the project.
func (p *TestProject) ReadFile(relPath string) string {
	p.t.Helper()
	fullPath := relPath
	if !filepath.IsAbs(relPath) {
		fullPath = filepath.Join(p.Path, relPath)
	}
	content, err := os.ReadFile(fullPath)
	if err != nil {
		p.t.Fatalf("failed to read file %s: %v", fullPath, err)
	}
	return string(content)
}

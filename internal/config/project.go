package config

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/aidanlsb/scribe/internal/atomicfile"
	"github.com/aidanlsb/scribe/internal/model"
)

// ProjectFile is the per-project settings file name.
const ProjectFile = "scribe.yaml"

// DefaultResp is the responsibility code attached to new notes.
const DefaultResp = "IK"

// ProjectConfig represents project-level settings from scribe.yaml.
type ProjectConfig struct {
	// Resp is the annotator code used when a note is added without --resp.
	Resp string `yaml:"resp"`

	// Format is the default render/export format: tei or flat.
	Format string `yaml:"format"`

	// ExportKeyword is the keyword component of export filenames.
	// Empty means the genre.
	ExportKeyword string `yaml:"export_keyword,omitempty"`

	// ExportDir is where `scribe export` writes, relative to the project.
	ExportDir string `yaml:"export_dir,omitempty"`

	// Metadata seeds document metadata when the project is initialized.
	// Keys are metadata field keys such as title or orig_date.
	Metadata map[string]string `yaml:"metadata,omitempty"`
}

// DefaultProjectConfig returns the settings used when scribe.yaml is absent.
func DefaultProjectConfig() *ProjectConfig {
	return &ProjectConfig{
		Resp:      DefaultResp,
		Format:    "tei",
		ExportDir: "exports",
	}
}

// IsProject reports whether dir holds a scribe.yaml.
func IsProject(dir string) bool {
	st, err := os.Stat(filepath.Join(dir, ProjectFile))
	return err == nil && !st.IsDir()
}

// LoadProjectConfig loads scribe.yaml from dir, applying defaults for
// missing values.
func LoadProjectConfig(dir string) (*ProjectConfig, error) {
	path := filepath.Join(dir, ProjectFile)
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return DefaultProjectConfig(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read project config %s: %w", path, err)
	}

	cfg := DefaultProjectConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse project config %s: %w", path, err)
	}
	cfg.Resp = strings.TrimPrefix(strings.TrimSpace(cfg.Resp), "#")
	if cfg.Resp == "" {
		cfg.Resp = DefaultResp
	}
	if strings.TrimSpace(cfg.Format) == "" {
		cfg.Format = "tei"
	}
	return cfg, nil
}

// SaveProjectConfig writes scribe.yaml into dir atomically.
func SaveProjectConfig(dir string, cfg *ProjectConfig) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal project config: %w", err)
	}
	path := filepath.Join(dir, ProjectFile)
	if err := atomicfile.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write project config %s: %w", path, err)
	}
	return nil
}

const defaultProjectConfig = `# scribe project configuration

# Responsibility code attached to new notes (rendered as resp="#IK")
resp: IK

# Default format for render and export: tei or flat
format: tei

# Export filenames look like {surname}_{keyword}_{year}_{page}.xml
# export_keyword: vocab
export_dir: exports

# Metadata applied when the project is initialized. Run 'scribe meta fields'
# for the list of keys.
# metadata:
#   title: Mazatec Vocabulary Manuscript
#   orig_date: c.1830s
`

// CreateDefaultProjectConfig creates a default scribe.yaml in dir.
// Returns true if a new file was created, false if one already existed.
func CreateDefaultProjectConfig(dir string) (bool, error) {
	path := filepath.Join(dir, ProjectFile)
	if _, err := os.Stat(path); err == nil {
		return false, nil
	}
	if err := atomicfile.WriteFile(path, []byte(defaultProjectConfig), 0o644); err != nil {
		return false, fmt.Errorf("failed to write project config %s: %w", path, err)
	}
	return true, nil
}

// SeedMetadata applies the configured metadata overrides to m. Keys are
// applied in sorted order; an unknown key is an error.
func (pc *ProjectConfig) SeedMetadata(m model.Metadata) (model.Metadata, error) {
	keys := make([]string, 0, len(pc.Metadata))
	for k := range pc.Metadata {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		var err error
		if m, err = m.With(k, pc.Metadata[k]); err != nil {
			return m, fmt.Errorf("%s metadata: %w", ProjectFile, err)
		}
	}
	return m, nil
}

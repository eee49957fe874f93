package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/aidanlsb/scribe/internal/config"
	"github.com/aidanlsb/scribe/internal/model"
	"github.com/aidanlsb/scribe/internal/session"
	"github.com/aidanlsb/scribe/internal/store"
	"github.com/aidanlsb/scribe/internal/ui"
)

var initName string

var gitignoreEntries = []string{store.DirName + "/", "exports/"}

var initCmd = &cobra.Command{
	Use:   "init <path>",
	Short: "Initialize a new transcription project",
	Long: `Creates a new project at the specified path.

Creates:
  - scribe.yaml  (project configuration)
  - .scribe/     (working state database)
  - .gitignore   (ignores derived files)

Metadata listed under "metadata:" in an existing scribe.yaml is applied to
the fresh state. With --name the project is also registered in config.toml.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := filepath.Abs(args[0])
		if err != nil {
			return handleError(ErrInvalidInput, err, "")
		}
		if err := os.MkdirAll(path, 0o755); err != nil {
			return handleError(ErrFileWriteError, fmt.Errorf("failed to create project directory: %w", err), "")
		}

		createdConfig, err := config.CreateDefaultProjectConfig(path)
		if err != nil {
			return handleError(ErrFileWriteError, err, "")
		}
		gitignoreStatus, err := ensureGitignore(path)
		if err != nil {
			return handleError(ErrFileWriteError, err, "")
		}
		projectCfg, err := config.LoadProjectConfig(path)
		if err != nil {
			return handleError(ErrConfigInvalid, err, "Fix scribe.yaml and re-run init")
		}

		sess, err := session.Open(commandContext(cmd), path, session.Options{Logger: logger})
		if err != nil {
			return fail(err, "")
		}
		defer sess.Close()

		seeded := false
		if sess.Fresh() && len(projectCfg.Metadata) > 0 {
			if _, err := sess.Apply(commandContext(cmd), func(st model.State) (model.State, error) {
				md, err := projectCfg.SeedMetadata(st.Metadata)
				if err != nil {
					return st, err
				}
				st.Metadata = md
				return st, nil
			}); err != nil {
				return fail(err, "Run 'scribe meta fields' for valid keys")
			}
			seeded = true
		}

		name := strings.TrimSpace(initName)
		if name != "" {
			c := getConfig()
			c.AddProject(name, path)
			if err := config.SaveTo(resolvedConfigPath, c); err != nil {
				return handleError(ErrFileWriteError, err, "")
			}
			logger.Debug("registered project", zap.String("name", name), zap.String("path", path))
		}

		if isJSONOutput() {
			outputSuccess(map[string]interface{}{
				"path":            path,
				"name":            name,
				"created_config":  createdConfig,
				"gitignore":       gitignoreStatus,
				"seeded_metadata": seeded,
				"entries":         len(sess.State().Entries),
			}, nil)
			return nil
		}

		fmt.Printf("Initializing project at: %s\n", ui.FilePath(path))
		if createdConfig {
			fmt.Println(ui.Success("Created scribe.yaml (project configuration)"))
		} else {
			fmt.Println("• scribe.yaml already exists (kept)")
		}
		fmt.Printf("%s .gitignore %s\n", ui.SymbolSuccess, gitignoreStatus)
		if seeded {
			fmt.Println(ui.Success("Applied metadata from scribe.yaml"))
		}
		if name != "" {
			fmt.Println(ui.Successf("Registered project %q in %s", name, resolvedConfigPath))
		}
		fmt.Println()
		fmt.Println(ui.Hint("Next: scribe --project-path " + path + " meta show"))
		return nil
	},
	Annotations: map[string]string{annotationNoProject: "true"},
}

// ensureGitignore creates or extends .gitignore with scribe's derived paths.
func ensureGitignore(dir string) (string, error) {
	path := filepath.Join(dir, ".gitignore")
	existing := ""
	if data, err := os.ReadFile(path); err == nil {
		existing = string(data)
	}

	var missing []string
	for _, entry := range gitignoreEntries {
		if !strings.Contains(existing, entry) {
			missing = append(missing, entry)
		}
	}
	if len(missing) == 0 {
		return "already has scribe entries", nil
	}

	status := "created"
	var content string
	if existing == "" {
		content = "# scribe (auto-generated)\n" + strings.Join(missing, "\n") + "\n"
	} else {
		status = "updated"
		content = strings.TrimRight(existing, "\n") + "\n\n# scribe\n" + strings.Join(missing, "\n") + "\n"
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return "", fmt.Errorf("failed to write .gitignore: %w", err)
	}
	return status, nil
}

func init() {
	initCmd.Flags().StringVar(&initName, "name", "", "Register the project under this name in config.toml")
	rootCmd.AddCommand(initCmd)
}

// Package cli implements the command-line interface.
package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/aidanlsb/scribe/internal/config"
	"github.com/aidanlsb/scribe/internal/logging"
	"github.com/aidanlsb/scribe/internal/ui"
)

var (
	// Global flags
	projectName     string // Named project from config
	projectPathFlag string // Explicit path
	configPath      string
	statePathFlag   string
	verbose         bool

	// Resolved values
	resolvedProject    config.ResolvedProject
	resolvedConfigPath string
	resolvedStatePath  string
	cfg                *config.Config
	logger             = zap.NewNop()
)

// errReported marks a failure that was already written as a JSON envelope.
var errReported = errors.New("error reported")

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "scribe",
	Short: "Scribe - transcribe Mazatec manuscripts into TEI",
	Long: `Scribe records a diplomatic and normalized transcription of a bilingual
Mazatec manuscript, line by line, and renders it as TEI P5 XML or as a flat
tagged text. Each project keeps its working state in .scribe/state.db.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		switch cmd.Name() {
		case "completion", "help", "version":
			return nil
		}
		if cmd.Parent() != nil && cmd.Parent().Name() == "completion" {
			return nil
		}

		var err error
		cfg, resolvedConfigPath, err = loadGlobalConfigWithPath()
		if err != nil {
			return preRunError(ErrConfigInvalid, fmt.Errorf("failed to load config: %w", err), "")
		}
		resolvedStatePath = config.ResolveStatePath(statePathFlag, resolvedConfigPath, cfg)
		ui.ConfigureTheme(cfg.UI.Accent)
		ui.ConfigureCodeTheme(cfg.UI.CodeTheme)

		logger, err = logging.New(logging.Options{Level: cfg.LogLevel, Verbose: verbose})
		if err != nil {
			return preRunError(ErrConfigInvalid, err, "Check log_level in config.toml")
		}

		if !needsProject(cmd) {
			return nil
		}

		state, err := config.LoadState(resolvedStatePath)
		if err != nil {
			return preRunError(ErrConfigInvalid, fmt.Errorf("failed to load state: %w", err), "")
		}
		resolvedProject, err = config.ResolveProject(config.ResolveOptions{
			ProjectPath: projectPathFlag,
			ProjectName: projectName,
			Config:      cfg,
			State:       state,
		})
		if err != nil {
			return preRunError(errorCode(err), err, "Run 'scribe project list' to see configured projects")
		}
		logger.Debug("resolved project",
			zap.String("path", resolvedProject.Path),
			zap.String("source", resolvedProject.Source),
		)

		if _, err := os.Stat(resolvedProject.Path); os.IsNotExist(err) {
			return preRunError(ErrProjectNotFound,
				fmt.Errorf("project not found: %s", resolvedProject.Path),
				fmt.Sprintf("Run 'scribe init %s' to create it", resolvedProject.Path))
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = logger.Sync()
	},
}

// annotationNoProject marks commands that run without a resolved project.
const annotationNoProject = "scribe:no-project"

func needsProject(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if _, ok := c.Annotations[annotationNoProject]; ok {
			return false
		}
	}
	return true
}

// preRunError reports a failure before the command runs. In JSON mode the
// envelope is printed and cobra is told not to print the error again.
func preRunError(code string, err error, suggestion string) error {
	if jsonOutput {
		outputError(code, err.Error(), suggestion)
		rootCmd.SilenceErrors = true
		return errReported
	}
	return withHint(err, suggestion)
}

// Execute runs the CLI.
func Execute() error {
	return rootCmd.ExecuteContext(context.Background())
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&projectName, "project", "p", "", "Named project from config")
	rootCmd.PersistentFlags().StringVar(&projectPathFlag, "project-path", "", "Explicit path to project directory")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to config file")
	rootCmd.PersistentFlags().StringVar(&statePathFlag, "state", "", "Path to state file (overrides state_file in config)")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output in JSON format (for agent/script use)")
	rootCmd.PersistentFlags().BoolVar(&verbose, "verbose", false, "Log debug diagnostics to stderr")
}

// getProjectPath returns the resolved project directory.
func getProjectPath() string {
	return resolvedProject.Path
}

// getConfig returns the loaded config.
func getConfig() *config.Config {
	if cfg == nil {
		return &config.Config{}
	}
	return cfg
}

// commandContext returns the command's context, or a background context
// when the command is invoked directly (as in tests).
func commandContext(cmd *cobra.Command) context.Context {
	if cmd != nil {
		if ctx := cmd.Context(); ctx != nil {
			return ctx
		}
	}
	return context.Background()
}

func loadGlobalConfigWithPath() (*config.Config, string, error) {
	resolvedPath := config.ResolveConfigPath(configPath)

	var loadedCfg *config.Config
	var err error
	if strings.TrimSpace(configPath) != "" {
		loadedCfg, err = config.LoadFrom(configPath)
	} else {
		loadedCfg, err = config.Load()
	}
	if err != nil {
		return nil, "", err
	}
	if loadedCfg == nil {
		loadedCfg = &config.Config{}
	}

	return loadedCfg, resolvedPath, nil
}

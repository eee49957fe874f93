package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/aidanlsb/scribe/internal/config"
	"github.com/aidanlsb/scribe/internal/session"
	"github.com/aidanlsb/scribe/internal/ui"
)

var projectCmd = &cobra.Command{
	Use:   "project",
	Short: "Manage configured projects",
	Long: `Projects are named directories listed in config.toml:

  default_project = "arrona"

  [projects]
  arrona = "/Users/you/manuscripts/arrona"`,
	Annotations: map[string]string{annotationNoProject: "true"},
}

type projectInfo struct {
	Name    string `json:"name"`
	Path    string `json:"path"`
	Default bool   `json:"default,omitempty"`
	Active  bool   `json:"active,omitempty"`
}

var projectListCmd = &cobra.Command{
	Use:   "list",
	Short: "List configured projects",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		c := getConfig()
		state, err := config.LoadState(resolvedStatePath)
		if err != nil {
			return handleError(ErrConfigInvalid, err, "")
		}

		projects := make([]projectInfo, 0, len(c.Projects))
		for _, name := range c.ProjectNames() {
			projects = append(projects, projectInfo{
				Name:    name,
				Path:    c.Projects[name],
				Default: name == c.DefaultProject,
				Active:  name == state.ActiveProject,
			})
		}

		if isJSONOutput() {
			outputSuccess(map[string]interface{}{"projects": projects}, &Meta{Count: len(projects)})
			return nil
		}

		if len(projects) == 0 {
			fmt.Println("No projects configured.")
			fmt.Println()
			fmt.Println(ui.Hint("Run 'scribe project add <name> <path>' or 'scribe init <path> --name <name>'"))
			return nil
		}
		for _, p := range projects {
			marker := "  "
			if p.Active {
				marker = "* "
			} else if p.Default && state.ActiveProject == "" {
				marker = "* "
			}
			fmt.Printf("%s%-12s → %s\n", marker, p.Name, ui.FilePath(p.Path))
		}
		fmt.Println()
		fmt.Println(ui.Hint("* = project used when no flag is given"))
		return nil
	},
}

var projectUseCmd = &cobra.Command{
	Use:   "use <name>",
	Short: "Set the active project in state.toml",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		name := args[0]
		path, err := getConfig().ProjectPath(name)
		if err != nil {
			return fail(err, "Run 'scribe project list' to see configured projects")
		}
		state, err := config.LoadState(resolvedStatePath)
		if err != nil {
			return handleError(ErrConfigInvalid, err, "")
		}
		state.ActiveProject = name
		if err := config.SaveState(resolvedStatePath, state); err != nil {
			return handleError(ErrFileWriteError, err, "")
		}

		if isJSONOutput() {
			outputSuccess(projectInfo{Name: name, Path: path, Active: true}, nil)
			return nil
		}
		fmt.Println(ui.Successf("Active project: %s → %s", name, ui.FilePath(path)))
		return nil
	},
}

var projectAddCmd = &cobra.Command{
	Use:   "add <name> <path>",
	Short: "Register a project directory in config.toml",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		name := args[0]
		path, err := filepath.Abs(args[1])
		if err != nil {
			return handleError(ErrInvalidInput, err, "")
		}
		if _, err := os.Stat(path); os.IsNotExist(err) {
			return handleErrorMsg(ErrProjectNotFound,
				fmt.Sprintf("project directory not found: %s", path),
				fmt.Sprintf("Run 'scribe init %s' first", path))
		}

		c := getConfig()
		c.AddProject(name, path)
		if err := config.SaveTo(resolvedConfigPath, c); err != nil {
			return handleError(ErrFileWriteError, err, "")
		}

		if isJSONOutput() {
			outputSuccess(projectInfo{Name: name, Path: path, Default: c.DefaultProject == name}, nil)
			return nil
		}
		fmt.Println(ui.Successf("Added project %s → %s", name, ui.FilePath(path)))
		if !config.IsProject(path) {
			fmt.Println(ui.Warningf("%s has no %s yet", path, config.ProjectFile))
		}
		return nil
	},
}

var projectCurrentCmd = &cobra.Command{
	Use:   "current",
	Short: "Show which project commands will use and why",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		state, err := config.LoadState(resolvedStatePath)
		if err != nil {
			return handleError(ErrConfigInvalid, err, "")
		}
		resolved, err := config.ResolveProject(config.ResolveOptions{
			ProjectPath: projectPathFlag,
			ProjectName: projectName,
			Config:      getConfig(),
			State:       state,
		})
		if err != nil {
			return fail(err, "Run 'scribe project use <name>' to pick one")
		}

		lastExport := state.LastExport(resolved.Path)
		var lastSaved string
		if at, err := session.LastSaved(commandContext(cmd), resolved.Path); err != nil {
			logger.Warn("failed to read last save time", zap.String("project", resolved.Path), zap.Error(err))
		} else if !at.IsZero() {
			lastSaved = at.Format(time.RFC3339)
		}

		if isJSONOutput() {
			outputSuccess(map[string]interface{}{
				"name":        resolved.Name,
				"path":        resolved.Path,
				"source":      resolved.Source,
				"last_export": lastExport,
				"last_saved":  lastSaved,
			}, nil)
			return nil
		}
		label := resolved.Name
		if label == "" {
			label = filepath.Base(resolved.Path)
		}
		fmt.Printf("%s → %s %s\n", ui.Bold.Render(label), ui.FilePath(resolved.Path), ui.Hint("("+resolved.Source+")"))
		if lastSaved != "" {
			fmt.Printf("last saved: %s\n", lastSaved)
		}
		if lastExport != "" {
			fmt.Printf("last export: %s\n", ui.FilePath(lastExport))
		}
		return nil
	},
}

func init() {
	projectCmd.AddCommand(projectListCmd)
	projectCmd.AddCommand(projectUseCmd)
	projectCmd.AddCommand(projectAddCmd)
	projectCmd.AddCommand(projectCurrentCmd)
	rootCmd.AddCommand(projectCmd)
}

package cli

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/aidanlsb/scribe/internal/config"
	"github.com/aidanlsb/scribe/internal/export"
	"github.com/aidanlsb/scribe/internal/session"
	"github.com/aidanlsb/scribe/internal/ui"
)

var (
	renderFormat    string
	renderHighlight bool

	exportFormat  string
	exportDir     string
	exportKeyword string
)

// resolveFormat picks the flag value, else the project default.
func resolveFormat(flag string, projectCfg *config.ProjectConfig) (export.Format, error) {
	if strings.TrimSpace(flag) == "" {
		flag = projectCfg.Format
	}
	return export.ParseFormat(flag)
}

var renderCmd = &cobra.Command{
	Use:   "render",
	Short: "Print the transcription as TEI XML or flat tags",
	Long: `Print the rendered transcription to stdout. Output is syntax highlighted
on a terminal; pipe it to a file or clipboard tool for the plain text.

Examples:
  scribe render
  scribe render --format flat | pbcopy`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		projectCfg, err := loadProjectConfig()
		if err != nil {
			return handleError(ErrConfigInvalid, err, "")
		}
		format, err := resolveFormat(renderFormat, projectCfg)
		if err != nil {
			return fail(err, "")
		}
		return withSession(cmd, func(sess *session.Session) error {
			content := format.Render(sess.State())
			if isJSONOutput() {
				outputSuccess(map[string]interface{}{"format": format, "content": content}, nil)
				return nil
			}
			if ui.NewDisplayContext().ShouldHighlight(renderHighlight) {
				content = ui.HighlightXML(content)
			}
			fmt.Println(content)
			return nil
		})
	},
}

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write the rendered transcription to a file",
	Long: `Write the rendered transcription to the export directory. The file is
named {author-surname}_{keyword}_{year}_{page}.{xml|txt}, for example
arrona_vocabulary_1830_000032278_0004.xml. The keyword defaults to the genre.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		projectCfg, err := loadProjectConfig()
		if err != nil {
			return handleError(ErrConfigInvalid, err, "")
		}
		format, err := resolveFormat(exportFormat, projectCfg)
		if err != nil {
			return fail(err, "")
		}
		dir := exportDir
		if dir == "" {
			dir = projectCfg.ExportDir
		}
		if dir == "" {
			dir = "."
		}
		if !filepath.IsAbs(dir) {
			dir = filepath.Join(getProjectPath(), dir)
		}
		keyword := exportKeyword
		if keyword == "" {
			keyword = projectCfg.ExportKeyword
		}

		return withSession(cmd, func(sess *session.Session) error {
			st := sess.State()
			name := export.Filename(st.Metadata, st.Entries, format, keyword)
			path, err := export.Write(dir, name, format.Render(st))
			if err != nil {
				logger.Error("export failed", zap.String("dir", dir), zap.Error(err))
				return handleError(ErrFileWriteError, err, "")
			}
			logger.Info("exported", zap.String("path", path), zap.String("format", string(format)))
			rememberExport(path)

			if isJSONOutput() {
				outputSuccess(map[string]interface{}{
					"path":    path,
					"format":  format,
					"entries": len(st.Entries),
				}, nil)
				return nil
			}
			fmt.Println(ui.Successf("Exported %s to %s", ui.Count(len(st.Entries), "entry", "entries"), ui.FilePath(path)))
			return nil
		})
	},
}

// rememberExport records path as the project's latest export in state.toml.
// Failures are logged; the export itself already succeeded.
func rememberExport(path string) {
	state, err := config.LoadState(resolvedStatePath)
	if err == nil {
		state.RecordExport(getProjectPath(), path)
		err = config.SaveState(resolvedStatePath, state)
	}
	if err != nil {
		logger.Warn("failed to record export", zap.String("state", resolvedStatePath), zap.Error(err))
	}
}

func init() {
	renderCmd.Flags().StringVarP(&renderFormat, "format", "f", "", "Output format: tei or flat (default from scribe.yaml)")
	renderCmd.Flags().BoolVar(&renderHighlight, "highlight", false, "Highlight output even when stdout is not a terminal")

	exportCmd.Flags().StringVarP(&exportFormat, "format", "f", "", "Output format: tei or flat (default from scribe.yaml)")
	exportCmd.Flags().StringVar(&exportDir, "dir", "", "Directory to write to (default export_dir from scribe.yaml)")
	exportCmd.Flags().StringVar(&exportKeyword, "keyword", "", "Filename keyword (default export_keyword, then genre)")

	rootCmd.AddCommand(renderCmd)
	rootCmd.AddCommand(exportCmd)
}

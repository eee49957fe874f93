package cli

import (
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/aidanlsb/scribe/internal/model"
	"github.com/aidanlsb/scribe/internal/session"
	"github.com/aidanlsb/scribe/internal/ui"
)

var metaCmd = &cobra.Command{
	Use:   "meta",
	Short: "Show and edit document metadata",
	Long: `Document metadata fills the TEI header: titles, responsibility, the
archival identifiers of the manuscript, its physical description and origin.

Run 'scribe meta fields' for the list of keys.`,
}

// metadataMap returns m keyed by field key.
func metadataMap(m model.Metadata) map[string]string {
	out := make(map[string]string)
	for _, f := range model.MetadataFields() {
		out[f.Key] = f.Get(m)
	}
	return out
}

// metadataCard renders m as markdown for terminal display.
func metadataCard(m model.Metadata) string {
	var b strings.Builder
	title := m.Title
	if title == "" {
		title = "(untitled)"
	}
	fmt.Fprintf(&b, "# %s\n\n", title)
	for _, f := range model.MetadataFields() {
		if f.Key == "title" {
			continue
		}
		v := f.Get(m)
		if v == "" {
			continue
		}
		if strings.Contains(v, "\n") {
			fmt.Fprintf(&b, "**%s**\n\n%s\n\n", f.Label, v)
			continue
		}
		fmt.Fprintf(&b, "- **%s:** %s\n", f.Label, v)
	}
	return b.String()
}

var metaShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show document metadata",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withSession(cmd, func(sess *session.Session) error {
			m := sess.State().Metadata
			if isJSONOutput() {
				outputSuccess(map[string]interface{}{"metadata": metadataMap(m)}, nil)
				return nil
			}
			display := ui.NewDisplayContext()
			out, err := ui.RenderMarkdown(metadataCard(m), display.AvailableWidth(ui.MarkdownRenderMargin))
			if err != nil {
				return handleError(ErrInternal, err, "")
			}
			fmt.Print(out)
			return nil
		})
	},
}

var metaSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set one metadata field",
	Long: `Set one metadata field. Use an empty string to clear it.

Examples:
  scribe meta set orig_date c.1830s
  scribe meta set summary "First paragraph.

Second paragraph."`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		key, value := args[0], args[1]
		return withSession(cmd, func(sess *session.Session) error {
			st, err := sess.Apply(commandContext(cmd), func(st model.State) (model.State, error) {
				return st.UpdateMetadataField(key, value)
			})
			if err != nil {
				return fail(err, "Run 'scribe meta fields' for valid keys")
			}
			f, _ := model.LookupMetadataField(key)
			if isJSONOutput() {
				outputSuccess(map[string]interface{}{"key": key, "value": f.Get(st.Metadata)}, nil)
				return nil
			}
			fmt.Println(ui.Successf("%s = %q", f.Label, f.Get(st.Metadata)))
			return nil
		})
	},
}

var metaFieldsCmd = &cobra.Command{
	Use:   "fields",
	Short: "List metadata field keys",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		fields := model.MetadataFields()
		if isJSONOutput() {
			type fieldInfo struct {
				Key   string `json:"key"`
				Label string `json:"label"`
			}
			out := make([]fieldInfo, len(fields))
			for i, f := range fields {
				out[i] = fieldInfo{Key: f.Key, Label: f.Label}
			}
			outputSuccess(map[string]interface{}{"fields": out, "genres": model.Genres}, &Meta{Count: len(out)})
			return nil
		}

		tbl := ui.NewTable(ui.NewDisplayContext(),
			ui.Column{Header: "KEY", MinWidth: 18, Style: ui.Accent},
			ui.Column{Header: "LABEL", Ratio: 1, MinWidth: 12},
		)
		for _, f := range fields {
			tbl.AddRow(f.Key, f.Label)
		}
		fmt.Println(tbl.Render())
		fmt.Println(ui.Hint("genre suggestions: " + strings.Join(model.Genres, ", ")))
		return nil
	},
	Annotations: map[string]string{annotationNoProject: "true"},
}

var metaDumpCmd = &cobra.Command{
	Use:   "dump",
	Short: "Print metadata as YAML",
	Long: `Print metadata as YAML, suitable for editing and 'scribe meta apply'.

Example:
  scribe meta dump > meta.yaml && $EDITOR meta.yaml && scribe meta apply meta.yaml`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withSession(cmd, func(sess *session.Session) error {
			data, err := yaml.Marshal(sess.State().Metadata)
			if err != nil {
				return handleError(ErrInternal, err, "")
			}
			if isJSONOutput() {
				outputSuccess(map[string]interface{}{"yaml": string(data)}, nil)
				return nil
			}
			fmt.Print(string(data))
			return nil
		})
	},
}

var metaApplyCmd = &cobra.Command{
	Use:   "apply <file.yaml>",
	Short: "Set metadata fields from a YAML mapping (- for stdin)",
	Long: `Set metadata fields from a YAML mapping of key: value. Keys not present
in the file are left alone. Any unknown key rejects the whole file.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		text, err := readInput(args[0])
		if err != nil {
			return handleError(ErrFileReadError, err, "")
		}
		var values map[string]string
		if err := yaml.Unmarshal([]byte(text), &values); err != nil {
			return handleError(ErrInvalidInput, fmt.Errorf("failed to parse %s: %w", args[0], err), "Expected a mapping of field key to string value")
		}
		keys := slices.Sorted(maps.Keys(values))

		return withSession(cmd, func(sess *session.Session) error {
			_, err := sess.Apply(commandContext(cmd), func(st model.State) (model.State, error) {
				for _, k := range keys {
					var err error
					if st, err = st.UpdateMetadataField(k, values[k]); err != nil {
						return st, err
					}
				}
				return st, nil
			})
			if err != nil {
				return fail(err, "Run 'scribe meta fields' for valid keys")
			}
			if isJSONOutput() {
				outputSuccess(map[string]interface{}{"updated": keys}, &Meta{Count: len(keys)})
				return nil
			}
			fmt.Println(ui.Successf("Updated %d metadata fields", len(keys)))
			return nil
		})
	},
}

func init() {
	metaCmd.AddCommand(metaShowCmd)
	metaCmd.AddCommand(metaSetCmd)
	metaCmd.AddCommand(metaFieldsCmd)
	metaCmd.AddCommand(metaDumpCmd)
	metaCmd.AddCommand(metaApplyCmd)
	rootCmd.AddCommand(metaCmd)
}

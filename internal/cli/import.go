package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aidanlsb/scribe/internal/session"
	"github.com/aidanlsb/scribe/internal/ui"
)

var importCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Replace the transcription with a TEI document (- for stdin)",
	Long: `Replace metadata and entries with the contents of a TEI document written
by 'scribe export'. Header fields missing from the document fall back to
their defaults. A document that is not well-formed XML leaves the current
transcription untouched.

Examples:
  scribe import exports/arrona_vocabulary_1830_000032278_0004.xml
  curl -s https://example.org/ms.xml | scribe import -`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		text, err := readInput(args[0])
		if err != nil {
			return handleError(ErrFileReadError, err, "")
		}
		return withSession(cmd, func(sess *session.Session) error {
			st, err := sess.Import(commandContext(cmd), text)
			if err != nil {
				return fail(err, "The current transcription was kept")
			}
			if isJSONOutput() {
				outputSuccess(map[string]interface{}{
					"entries": len(st.Entries),
					"title":   st.Metadata.Title,
				}, &Meta{Count: len(st.Entries)})
				return nil
			}
			fmt.Println(ui.Successf("Imported %s from %s", ui.Count(len(st.Entries), "entry", "entries"), ui.FilePath(args[0])))
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(importCmd)
}

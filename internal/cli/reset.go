package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aidanlsb/scribe/internal/session"
	"github.com/aidanlsb/scribe/internal/ui"
)

var resetYes bool

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Discard the transcription and start from defaults",
	Long: `Discard all metadata and entries and start over with the default
metadata and a single empty entry. This cannot be undone; export first.

Asks for confirmation on a terminal. Pass --yes in scripts.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if !resetYes {
			if !shouldPromptForConfirm() {
				return handleErrorMsg(ErrConfirmationRequired, "reset discards the whole transcription", "Re-run with --yes to confirm")
			}
			if !promptForConfirm("Discard the whole transcription?") {
				fmt.Println("Cancelled.")
				return nil
			}
		}
		return withSession(cmd, func(sess *session.Session) error {
			st := sess.Reset(commandContext(cmd))
			if isJSONOutput() {
				outputSuccess(map[string]interface{}{"reset": true, "entries": len(st.Entries)}, nil)
				return nil
			}
			fmt.Println(ui.Success("Transcription reset to defaults"))
			return nil
		})
	},
}

func init() {
	resetCmd.Flags().BoolVarP(&resetYes, "yes", "y", false, "Skip the confirmation prompt")
	rootCmd.AddCommand(resetCmd)
}

package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/aidanlsb/scribe/internal/model"
	"github.com/aidanlsb/scribe/internal/session"
	"github.com/aidanlsb/scribe/internal/ui"
)

var noteCmd = &cobra.Command{
	Use:   "note",
	Short: "Annotate entries",
	Long: `Notes are typed annotations rendered as <note type="..." resp="#IK">.

Types: editorial, linguistic, layout, orthographic, historical, semantic.
Setting a note's type to "none" deletes it.`,
}

func noteTypeNames() string {
	infos := model.NoteTypes()
	names := make([]string, len(infos))
	for i, info := range infos {
		names[i] = string(info.Type)
	}
	return strings.Join(names, ", ")
}

var (
	noteType string
	noteResp string
	noteText string
)

var noteAddCmd = &cobra.Command{
	Use:   "add <ref>",
	Short: "Add a note to an entry",
	Long: `Add a note to an entry. --resp defaults to the resp code in scribe.yaml.

Example:
  scribe note add 3 --type orthographic --text "ch written as tz"`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		resp := noteResp
		if !cmd.Flags().Changed("resp") {
			projectCfg, err := loadProjectConfig()
			if err != nil {
				return handleError(ErrConfigInvalid, err, "")
			}
			resp = projectCfg.Resp
		}
		return withSession(cmd, func(sess *session.Session) error {
			e, num, err := resolveEntry(sess.State(), args[0])
			if err != nil {
				return fail(err, "Run 'scribe entry list' to see entry numbers")
			}
			st, err := sess.Apply(commandContext(cmd), func(st model.State) (model.State, error) {
				return st.AddNote(e.ID, model.Note{
					Type: model.NoteType(strings.TrimSpace(noteType)),
					Resp: resp,
					Text: noteText,
				})
			})
			if err != nil {
				return fail(err, "Valid types: "+noteTypeNames())
			}
			updated, _ := st.Entry(e.ID)
			n := len(updated.Notes)
			if isJSONOutput() {
				outputSuccess(map[string]interface{}{
					"entry": num,
					"note":  model.Numbered[model.Note]{Num: n, Item: updated.Notes[n-1]},
				}, nil)
				return nil
			}
			fmt.Println(ui.Successf("Added %s note %d to entry %d", updated.Notes[n-1].Type, n, num))
			return nil
		})
	},
}

var noteSetCmd = &cobra.Command{
	Use:   "set <ref> <note>",
	Short: "Update a note (--type none deletes it)",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		flags := cmd.Flags()
		patch := model.NotePatch{
			Resp: changedString(flags, "resp", noteResp),
			Text: changedString(flags, "text", noteText),
		}
		if flags.Changed("type") {
			t := model.NoteType(strings.TrimSpace(noteType))
			patch.Type = &t
		}
		if patch.Type == nil && patch.Resp == nil && patch.Text == nil {
			return handleErrorMsg(ErrMissingArgument, "no note fields to update", "Pass --type, --resp or --text")
		}

		return withSession(cmd, func(sess *session.Session) error {
			e, num, err := resolveEntry(sess.State(), args[0])
			if err != nil {
				return fail(err, "Run 'scribe entry list' to see entry numbers")
			}
			before := len(e.Notes)
			st, err := sess.Apply(commandContext(cmd), func(st model.State) (model.State, error) {
				return st.UpdateNote(e.ID, args[1], patch)
			})
			if err != nil {
				return fail(err, "Valid types: "+noteTypeNames()+", none")
			}
			updated, _ := st.Entry(e.ID)
			removed := len(updated.Notes) < before

			if isJSONOutput() {
				data := map[string]interface{}{"entry": num, "removed": removed}
				if !removed {
					note, _ := updated.FindNote(args[1])
					data["note"] = note
				}
				outputSuccess(data, nil)
				return nil
			}
			if removed {
				fmt.Println(ui.Successf("Removed note %s from entry %d", args[1], num))
				return nil
			}
			fmt.Println(ui.Successf("Updated note %s on entry %d", args[1], num))
			return nil
		})
	},
}

var noteRmCmd = &cobra.Command{
	Use:   "rm <ref> <note>",
	Short: "Remove a note",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withSession(cmd, func(sess *session.Session) error {
			e, num, err := resolveEntry(sess.State(), args[0])
			if err != nil {
				return fail(err, "Run 'scribe entry list' to see entry numbers")
			}
			if _, err := sess.Apply(commandContext(cmd), func(st model.State) (model.State, error) {
				return st.RemoveNote(e.ID, args[1])
			}); err != nil {
				return fail(err, fmt.Sprintf("Run 'scribe entry show %d' to see its notes", num))
			}
			if isJSONOutput() {
				outputSuccess(map[string]interface{}{"entry": num, "removed": true}, nil)
				return nil
			}
			fmt.Println(ui.Successf("Removed note %s from entry %d", args[1], num))
			return nil
		})
	},
}

func init() {
	for _, c := range []*cobra.Command{noteAddCmd, noteSetCmd} {
		c.Flags().StringVar(&noteType, "type", string(model.NoteEditorial), "Note type: "+noteTypeNames())
		c.Flags().StringVar(&noteResp, "resp", "", "Responsibility code (without #)")
		c.Flags().StringVar(&noteText, "text", "", "Note text")
	}

	noteCmd.AddCommand(noteAddCmd)
	noteCmd.AddCommand(noteSetCmd)
	noteCmd.AddCommand(noteRmCmd)
	rootCmd.AddCommand(noteCmd)
}

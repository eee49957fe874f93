package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aidanlsb/scribe/internal/model"
	"github.com/aidanlsb/scribe/internal/session"
	"github.com/aidanlsb/scribe/internal/ui"
)

var kirkCmd = &cobra.Command{
	Use:   "kirk",
	Short: "Manage Kirk comparative sets on an entry",
	Long: `A Kirk set ties an entry to a numbered comparative set: its source page,
the reconstructed proto-form and the attested daughter-language words.
Daughters marked --confirms are rendered with ana="#confirms".`,
}

var (
	kirkNumber    string
	kirkPage      string
	kirkHeadword  string
	kirkDaughters []string

	daughterText     string
	daughterConfirms bool
)

// kirkResult reports a changed kirk set in JSON output.
func kirkResult(st model.State, entryID string, entryNum int, kirkRef string) map[string]interface{} {
	data := map[string]interface{}{"entry": entryNum}
	if e, ok := st.Entry(entryID); ok {
		if ks, err := e.FindKirkSet(kirkRef); err == nil {
			data["kirk_set"] = ks
		}
	}
	return data
}

var kirkAddCmd = &cobra.Command{
	Use:   "add <ref>",
	Short: "Add a Kirk set to an entry",
	Long: `Add a Kirk set to an entry.

Example:
  scribe kirk add 3 --number 112 --page 45 --headword "*ʔnta" --daughter nta --daughter ta`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ks := model.KirkSet{Number: kirkNumber, SourcePage: kirkPage, Headword: kirkHeadword}
		for _, text := range kirkDaughters {
			ks.Daughters = append(ks.Daughters, model.Daughter{Text: text})
		}
		return withSession(cmd, func(sess *session.Session) error {
			e, num, err := resolveEntry(sess.State(), args[0])
			if err != nil {
				return fail(err, "Run 'scribe entry list' to see entry numbers")
			}
			st, err := sess.Apply(commandContext(cmd), func(st model.State) (model.State, error) {
				return st.AddKirkSet(e.ID, ks)
			})
			if err != nil {
				return fail(err, "")
			}
			updated, _ := st.Entry(e.ID)
			n := len(updated.KirkSets)
			if isJSONOutput() {
				outputSuccess(kirkResult(st, e.ID, num, fmt.Sprint(n)), nil)
				return nil
			}
			fmt.Println(ui.Successf("Added Kirk set %d to entry %d", n, num))
			return nil
		})
	},
}

var kirkSetCmd = &cobra.Command{
	Use:   "set <ref> <kirk>",
	Short: "Update a Kirk set's number, page or headword",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		flags := cmd.Flags()
		patch := model.KirkSetPatch{
			Number:     changedString(flags, "number", kirkNumber),
			SourcePage: changedString(flags, "page", kirkPage),
			Headword:   changedString(flags, "headword", kirkHeadword),
		}
		if patch == (model.KirkSetPatch{}) {
			return handleErrorMsg(ErrMissingArgument, "no kirk set fields to update", "Pass --number, --page or --headword")
		}
		return withSession(cmd, func(sess *session.Session) error {
			e, num, err := resolveEntry(sess.State(), args[0])
			if err != nil {
				return fail(err, "Run 'scribe entry list' to see entry numbers")
			}
			st, err := sess.Apply(commandContext(cmd), func(st model.State) (model.State, error) {
				return st.UpdateKirkSet(e.ID, args[1], patch)
			})
			if err != nil {
				return fail(err, fmt.Sprintf("Run 'scribe entry show %d' to see its kirk sets", num))
			}
			if isJSONOutput() {
				outputSuccess(kirkResult(st, e.ID, num, args[1]), nil)
				return nil
			}
			fmt.Println(ui.Successf("Updated Kirk set %s on entry %d", args[1], num))
			return nil
		})
	},
}

var kirkRmCmd = &cobra.Command{
	Use:   "rm <ref> <kirk>",
	Short: "Remove a Kirk set",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withSession(cmd, func(sess *session.Session) error {
			e, num, err := resolveEntry(sess.State(), args[0])
			if err != nil {
				return fail(err, "Run 'scribe entry list' to see entry numbers")
			}
			if _, err := sess.Apply(commandContext(cmd), func(st model.State) (model.State, error) {
				return st.RemoveKirkSet(e.ID, args[1])
			}); err != nil {
				return fail(err, fmt.Sprintf("Run 'scribe entry show %d' to see its kirk sets", num))
			}
			if isJSONOutput() {
				outputSuccess(map[string]interface{}{"entry": num, "removed": true}, nil)
				return nil
			}
			fmt.Println(ui.Successf("Removed Kirk set %s from entry %d", args[1], num))
			return nil
		})
	},
}

var kirkDaughterCmd = &cobra.Command{
	Use:   "daughter",
	Short: "Manage daughter-language words of a Kirk set",
}

var kirkDaughterAddCmd = &cobra.Command{
	Use:   "add <ref> <kirk> <text>",
	Short: "Add a daughter word",
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withSession(cmd, func(sess *session.Session) error {
			e, num, err := resolveEntry(sess.State(), args[0])
			if err != nil {
				return fail(err, "Run 'scribe entry list' to see entry numbers")
			}
			st, err := sess.Apply(commandContext(cmd), func(st model.State) (model.State, error) {
				return st.AddDaughter(e.ID, args[1], model.Daughter{Text: args[2], Confirms: daughterConfirms})
			})
			if err != nil {
				return fail(err, fmt.Sprintf("Run 'scribe entry show %d' to see its kirk sets", num))
			}
			if isJSONOutput() {
				outputSuccess(kirkResult(st, e.ID, num, args[1]), nil)
				return nil
			}
			fmt.Println(ui.Successf("Added %q to Kirk set %s", args[2], args[1]))
			return nil
		})
	},
}

var kirkDaughterSetCmd = &cobra.Command{
	Use:   "set <ref> <kirk> <daughter>",
	Short: "Update a daughter word's text or confirmation",
	Long: `Update a daughter word.

Examples:
  scribe kirk daughter set 3 1 2 --confirms
  scribe kirk daughter set 3 1 2 --confirms=false --text nta`,
	Args: cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		flags := cmd.Flags()
		text := changedString(flags, "text", daughterText)
		confirms := changedBool(flags, "confirms", daughterConfirms)
		if text == nil && confirms == nil {
			return handleErrorMsg(ErrMissingArgument, "no daughter fields to update", "Pass --text or --confirms")
		}
		return withSession(cmd, func(sess *session.Session) error {
			e, num, err := resolveEntry(sess.State(), args[0])
			if err != nil {
				return fail(err, "Run 'scribe entry list' to see entry numbers")
			}
			st, err := sess.Apply(commandContext(cmd), func(st model.State) (model.State, error) {
				return st.UpdateDaughter(e.ID, args[1], args[2], text, confirms)
			})
			if err != nil {
				return fail(err, fmt.Sprintf("Run 'scribe entry show %d' to see its kirk sets", num))
			}
			if isJSONOutput() {
				outputSuccess(kirkResult(st, e.ID, num, args[1]), nil)
				return nil
			}
			fmt.Println(ui.Successf("Updated daughter %s of Kirk set %s", args[2], args[1]))
			return nil
		})
	},
}

var kirkDaughterRmCmd = &cobra.Command{
	Use:   "rm <ref> <kirk> <daughter>",
	Short: "Remove a daughter word",
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withSession(cmd, func(sess *session.Session) error {
			e, num, err := resolveEntry(sess.State(), args[0])
			if err != nil {
				return fail(err, "Run 'scribe entry list' to see entry numbers")
			}
			st, err := sess.Apply(commandContext(cmd), func(st model.State) (model.State, error) {
				return st.RemoveDaughter(e.ID, args[1], args[2])
			})
			if err != nil {
				return fail(err, fmt.Sprintf("Run 'scribe entry show %d' to see its kirk sets", num))
			}
			if isJSONOutput() {
				outputSuccess(kirkResult(st, e.ID, num, args[1]), nil)
				return nil
			}
			fmt.Println(ui.Successf("Removed daughter %s from Kirk set %s", args[2], args[1]))
			return nil
		})
	},
}

func init() {
	for _, c := range []*cobra.Command{kirkAddCmd, kirkSetCmd} {
		c.Flags().StringVar(&kirkNumber, "number", "", "Kirk set number")
		c.Flags().StringVar(&kirkPage, "page", "", "Page of the set in the source")
		c.Flags().StringVar(&kirkHeadword, "headword", "", "Reconstructed proto-form")
	}
	kirkAddCmd.Flags().StringArrayVar(&kirkDaughters, "daughter", nil, "Daughter word (repeatable)")

	kirkDaughterAddCmd.Flags().BoolVar(&daughterConfirms, "confirms", false, "Mark the word as confirming the reconstruction")
	kirkDaughterSetCmd.Flags().BoolVar(&daughterConfirms, "confirms", false, "Mark the word as confirming the reconstruction")
	kirkDaughterSetCmd.Flags().StringVar(&daughterText, "text", "", "Daughter word")

	kirkDaughterCmd.AddCommand(kirkDaughterAddCmd)
	kirkDaughterCmd.AddCommand(kirkDaughterSetCmd)
	kirkDaughterCmd.AddCommand(kirkDaughterRmCmd)

	kirkCmd.AddCommand(kirkAddCmd)
	kirkCmd.AddCommand(kirkSetCmd)
	kirkCmd.AddCommand(kirkRmCmd)
	kirkCmd.AddCommand(kirkDaughterCmd)
	rootCmd.AddCommand(kirkCmd)
}

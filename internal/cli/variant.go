package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/aidanlsb/scribe/internal/model"
	"github.com/aidanlsb/scribe/internal/session"
	"github.com/aidanlsb/scribe/internal/ui"
)

var variantCmd = &cobra.Command{
	Use:   "variant",
	Short: "Set or clear an entry's variant form",
	Long: `A variant is an alternate attested spelling of the lemma, rendered as
<form type="variant"> with a label and both orthographies.`,
}

var (
	variantLabel string
	variantOrig  string
	variantNorm  string
)

var variantSetCmd = &cobra.Command{
	Use:   "set <ref>",
	Short: "Attach or update the variant form",
	Long: `Attach or update the variant form. Flags not given keep the current
variant's values.

Example:
  scribe variant set 3 --label "also written" --orig Tzam --norm cham`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		flags := cmd.Flags()
		return withSession(cmd, func(sess *session.Session) error {
			e, num, err := resolveEntry(sess.State(), args[0])
			if err != nil {
				return fail(err, "Run 'scribe entry list' to see entry numbers")
			}
			var v model.Variant
			if e.Variant != nil {
				v = *e.Variant
			}
			if p := changedString(flags, "label", variantLabel); p != nil {
				v.Label = *p
			}
			if p := changedString(flags, "orig", variantOrig); p != nil {
				v.Orig = *p
			}
			if p := changedString(flags, "norm", variantNorm); p != nil {
				v.Norm = *p
			}

			st, err := sess.Apply(commandContext(cmd), func(st model.State) (model.State, error) {
				return st.SetVariant(e.ID, v)
			})
			if err != nil {
				return fail(err, "")
			}
			updated, _ := st.Entry(e.ID)
			if isJSONOutput() {
				outputSuccess(map[string]interface{}{"entry": num, "variant": updated.Variant}, nil)
				return nil
			}
			fmt.Println(ui.Successf("Set variant on entry %d", num))
			return nil
		})
	},
}

var variantClearCmd = &cobra.Command{
	Use:   "clear <ref>",
	Short: "Remove the variant form",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withSession(cmd, func(sess *session.Session) error {
			e, num, err := resolveEntry(sess.State(), args[0])
			if err != nil {
				return fail(err, "Run 'scribe entry list' to see entry numbers")
			}
			had := e.Variant != nil
			if _, err := sess.Apply(commandContext(cmd), func(st model.State) (model.State, error) {
				return st.ClearVariant(e.ID)
			}); err != nil {
				return fail(err, "")
			}

			if isJSONOutput() {
				data := map[string]interface{}{"entry": num, "cleared": had}
				if !had {
					outputSuccess(data, nil, newWarning(WarnNoEffect, strconv.Itoa(num), "entry has no variant"))
					return nil
				}
				outputSuccess(data, nil)
				return nil
			}
			if !had {
				fmt.Println(ui.Info("Entry has no variant"))
				return nil
			}
			fmt.Println(ui.Successf("Cleared variant on entry %d", num))
			return nil
		})
	},
}

func init() {
	variantSetCmd.Flags().StringVar(&variantLabel, "label", "", "Variant label (e.g. \"also written\")")
	variantSetCmd.Flags().StringVar(&variantOrig, "orig", "", "Variant as written")
	variantSetCmd.Flags().StringVar(&variantNorm, "norm", "", "Variant normalized")

	variantCmd.AddCommand(variantSetCmd)
	variantCmd.AddCommand(variantClearCmd)
	rootCmd.AddCommand(variantCmd)
}

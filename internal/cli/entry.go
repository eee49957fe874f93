package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/aidanlsb/scribe/internal/model"
	"github.com/aidanlsb/scribe/internal/session"
	"github.com/aidanlsb/scribe/internal/ui"
)

var entryCmd = &cobra.Command{
	Use:   "entry",
	Short: "List and edit manuscript entries",
	Long: `Entries are addressed by their position in the list ("3" or "#3"), by
id, or by a unique id prefix. Positions are shown by 'scribe entry list'.

"#3" is always a position. A bare number is a position when the list is that
long; otherwise it is matched as an id prefix, so an all-digit prefix such as
4071 still works once it exceeds the entry count.`,
}

var entryListCmd = &cobra.Command{
	Use:   "list",
	Short: "List entries in document order",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withSession(cmd, func(sess *session.Session) error {
			entries := sess.State().Entries
			if isJSONOutput() {
				outputSuccess(map[string]interface{}{
					"entries": model.NumberedList(entries),
				}, &Meta{Count: len(entries)})
				return nil
			}

			tbl := ui.NewTable(ui.NewDisplayContext(),
				ui.Column{Header: "#", MinWidth: 3, Right: true, Style: ui.Muted},
				ui.Column{Header: "PAGE", MinWidth: 14},
				ui.Column{Header: "LINE", MinWidth: 5},
				ui.Column{Header: "COL", MinWidth: 6},
				ui.Column{Header: "MAZATEC", Ratio: 0.35, MinWidth: 10},
				ui.Column{Header: "SPANISH", Ratio: 0.35, MinWidth: 10},
				ui.Column{Header: "ENGLISH", Ratio: 0.3, MinWidth: 8},
			)
			for _, n := range model.NumberedList(entries) {
				e := n.Item
				tbl.AddRow(
					ui.RowNum(n.Num, len(entries)),
					e.Page,
					e.Line,
					string(e.Column),
					ui.Reading(e.MazOrig, e.UncertainMazOrig),
					ui.Reading(e.SpaOrig, e.UncertainSpaOrig),
					ui.Reading(e.EngGloss, e.UncertainEng),
				)
			}
			fmt.Println(tbl.Render())
			fmt.Println(ui.Hint(ui.Count(len(entries), "entry", "entries")))
			return nil
		})
	},
}

// uncertainMark appends a question mark to flagged readings in cards.
func uncertainMark(text string, uncertain bool) string {
	if text == "" && !uncertain {
		return "*(empty)*"
	}
	if uncertain {
		return text + " **(?)**"
	}
	return text
}

// entryCard renders one entry as markdown for terminal display.
func entryCard(e model.Entry, num int) string {
	var b strings.Builder
	fmt.Fprintf(&b, "## Entry %d\n\n", num)
	fmt.Fprintf(&b, "page `%s` · line `%s` · %s\n\n", e.Page, e.Line, e.Column.Label())

	fmt.Fprintf(&b, "- **Mazatec:** %s / %s\n", uncertainMark(e.MazOrig, e.UncertainMazOrig), uncertainMark(e.MazNorm, e.UncertainMazNorm))
	fmt.Fprintf(&b, "- **Spanish:** %s / %s\n", uncertainMark(e.SpaOrig, e.UncertainSpaOrig), uncertainMark(e.SpaNorm, e.UncertainSpaNorm))
	fmt.Fprintf(&b, "- **English:** %s\n", uncertainMark(e.EngGloss, e.UncertainEng))
	if e.IPA != "" {
		fmt.Fprintf(&b, "- **IPA:** %s\n", e.IPA)
	}
	if e.KirkRef != "" {
		fmt.Fprintf(&b, "- **Kirk:** %s\n", e.KirkRef)
	}

	if e.Variant != nil {
		fmt.Fprintf(&b, "\n### Variant\n\n%s: %s / %s\n", e.Variant.Label, e.Variant.Orig, e.Variant.Norm)
	}

	if len(e.KirkSets) > 0 {
		b.WriteString("\n### Kirk sets\n\n")
		for _, n := range model.NumberedList(e.KirkSets) {
			ks := n.Item
			fmt.Fprintf(&b, "%d. **%s** (p. %s) *%s*", n.Num, ks.Number, ks.SourcePage, ks.Headword)
			if len(ks.Daughters) > 0 {
				words := make([]string, len(ks.Daughters))
				for i, d := range ks.Daughters {
					words[i] = d.Text
					if d.Confirms {
						words[i] += " ✓"
					}
				}
				fmt.Fprintf(&b, ": %s", strings.Join(words, ", "))
			}
			b.WriteString("\n")
		}
	}

	if len(e.Notes) > 0 {
		b.WriteString("\n### Notes\n\n")
		for _, n := range model.NumberedList(e.Notes) {
			note := n.Item
			resp := ""
			if note.Resp != "" {
				resp = " #" + note.Resp
			}
			fmt.Fprintf(&b, "%d. `%s`%s: %s\n", n.Num, note.Type, resp, note.Text)
		}
	}
	return b.String()
}

var entryShowCmd = &cobra.Command{
	Use:   "show <ref>",
	Short: "Show one entry with its variant, kirk sets and notes",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withSession(cmd, func(sess *session.Session) error {
			e, num, err := resolveEntry(sess.State(), args[0])
			if err != nil {
				return fail(err, "Run 'scribe entry list' to see entry numbers")
			}
			if isJSONOutput() {
				outputSuccess(model.Numbered[model.Entry]{Num: num, Item: e}, nil)
				return nil
			}
			display := ui.NewDisplayContext()
			out, err := ui.RenderMarkdown(entryCard(e, num), display.AvailableWidth(ui.MarkdownRenderMargin))
			if err != nil {
				return handleError(ErrInternal, err, "")
			}
			fmt.Print(out)
			return nil
		})
	},
}

var (
	entryAddAfter  string
	entryAddFields entryFieldFlags
	entrySetFields entryFieldFlags
)

var entryAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Append a new entry",
	Long: `Append a new entry. Page and column are copied from the previous entry
(or from --after) and the line number advances by one: 3.1 becomes 4.1.
Field flags fill the new entry in the same step.

Example:
  scribe entry add --maz Cham --spa maíz --eng corn`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		patch := entryAddFields.patch(cmd.Flags())
		return withSession(cmd, func(sess *session.Session) error {
			afterID := ""
			if entryAddAfter != "" {
				after, err := sess.State().FindEntry(entryAddAfter)
				if err != nil {
					return fail(err, "")
				}
				afterID = after.ID
			}
			st, err := sess.Apply(commandContext(cmd), func(st model.State) (model.State, error) {
				st = st.AddEntry(afterID)
				if patch.IsEmpty() {
					return st, nil
				}
				return st.UpdateEntry(st.Entries[len(st.Entries)-1].ID, patch)
			})
			if err != nil {
				return fail(err, "")
			}
			num := len(st.Entries)
			e := st.Entries[num-1]
			if isJSONOutput() {
				outputSuccess(model.Numbered[model.Entry]{Num: num, Item: e}, nil)
				return nil
			}
			fmt.Println(ui.Successf("Added entry %d (page %s, line %s)", num, e.Page, e.Line))
			return nil
		})
	},
}

var entrySetCmd = &cobra.Command{
	Use:   "set <ref>",
	Short: "Update fields of an entry",
	Long: `Update fields of an entry. Only the flags given are changed.
Uncertainty flags take an explicit value to clear them.

Examples:
  scribe entry set 3 --spa agua --uncertain-spa
  scribe entry set 3 --uncertain-spa=false
  scribe entry set 3 --column across`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		patch := entrySetFields.patch(cmd.Flags())
		if patch.IsEmpty() {
			return handleErrorMsg(ErrMissingArgument, "no fields to update", "Pass at least one field flag, e.g. --maz or --uncertain-spa")
		}
		return withSession(cmd, func(sess *session.Session) error {
			e, num, err := resolveEntry(sess.State(), args[0])
			if err != nil {
				return fail(err, "Run 'scribe entry list' to see entry numbers")
			}
			st, err := sess.Apply(commandContext(cmd), func(st model.State) (model.State, error) {
				return st.UpdateEntry(e.ID, patch)
			})
			if err != nil {
				return fail(err, "")
			}
			updated, _ := st.Entry(e.ID)
			if isJSONOutput() {
				outputSuccess(model.Numbered[model.Entry]{Num: num, Item: updated}, nil)
				return nil
			}
			fmt.Println(ui.Successf("Updated entry %d", num))
			return nil
		})
	},
}

var entryRmCmd = &cobra.Command{
	Use:   "rm <ref>",
	Short: "Remove an entry (the last remaining entry is kept)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withSession(cmd, func(sess *session.Session) error {
			e, num, err := resolveEntry(sess.State(), args[0])
			if err != nil {
				return fail(err, "Run 'scribe entry list' to see entry numbers")
			}
			removed := false
			st, _ := sess.Apply(commandContext(cmd), func(st model.State) (model.State, error) {
				st, removed = st.RemoveEntry(e.ID)
				return st, nil
			})

			if isJSONOutput() {
				data := map[string]interface{}{"removed": removed, "id": e.ID, "remaining": len(st.Entries)}
				if !removed {
					outputSuccess(data, nil, newWarning(WarnLastEntry, strconv.Itoa(num), "the document must keep at least one entry"))
					return nil
				}
				outputSuccess(data, nil)
				return nil
			}
			if !removed {
				fmt.Println(ui.Warning("Entry kept: the document must keep at least one entry"))
				return nil
			}
			fmt.Println(ui.Successf("Removed entry %d", num))
			return nil
		})
	},
}

var entryDupCmd = &cobra.Command{
	Use:   "dup <ref>",
	Short: "Duplicate an entry directly after itself",
	Long: `Duplicate an entry with its variant, kirk sets and notes. The copy is
inserted right after the original with the next sub-line number: 1.1 becomes
1.2 and 1.9 becomes 1.10.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withSession(cmd, func(sess *session.Session) error {
			e, num, err := resolveEntry(sess.State(), args[0])
			if err != nil {
				return fail(err, "Run 'scribe entry list' to see entry numbers")
			}
			st, _ := sess.Apply(commandContext(cmd), func(st model.State) (model.State, error) {
				st, _ = st.DuplicateEntry(e.ID)
				return st, nil
			})
			dup := st.Entries[num]
			if isJSONOutput() {
				outputSuccess(model.Numbered[model.Entry]{Num: num + 1, Item: dup}, nil)
				return nil
			}
			fmt.Println(ui.Successf("Duplicated entry %d as entry %d (line %s)", num, num+1, dup.Line))
			return nil
		})
	},
}

var entryMoveCmd = &cobra.Command{
	Use:   "move <ref> <delta>",
	Short: "Move an entry up (negative) or down (positive)",
	Long: `Move an entry by delta positions. The move is clamped to the list, so a
large delta moves the entry to the top or bottom.

Negative deltas follow "--" so they are not read as flags.

Examples:
  scribe entry move 2 3
  scribe entry move 5 -- -1`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		delta, err := strconv.Atoi(args[1])
		if err != nil {
			return handleErrorMsg(ErrInvalidInput, fmt.Sprintf("invalid delta %q", args[1]), "Use a whole number such as -1 or 2")
		}
		return withSession(cmd, func(sess *session.Session) error {
			e, num, err := resolveEntry(sess.State(), args[0])
			if err != nil {
				return fail(err, "Run 'scribe entry list' to see entry numbers")
			}
			moved := false
			st, _ := sess.Apply(commandContext(cmd), func(st model.State) (model.State, error) {
				st, moved = st.MoveEntry(e.ID, delta)
				return st, nil
			})
			to := st.IndexOf(e.ID) + 1

			if isJSONOutput() {
				data := map[string]interface{}{"moved": moved, "from": num, "to": to}
				if !moved {
					outputSuccess(data, nil, newWarning(WarnNoChange, strconv.Itoa(num), "entry is already at the edge of the list"))
					return nil
				}
				outputSuccess(data, nil)
				return nil
			}
			if !moved {
				fmt.Println(ui.Info("Entry not moved"))
				return nil
			}
			fmt.Println(ui.Successf("Moved entry %d to position %d", num, to))
			return nil
		})
	},
}

func init() {
	entryAddCmd.Flags().StringVar(&entryAddAfter, "after", "", "Copy page and column from this entry")
	entryAddFields.register(entryAddCmd)
	entrySetFields.register(entrySetCmd)

	entryCmd.AddCommand(entryListCmd)
	entryCmd.AddCommand(entryShowCmd)
	entryCmd.AddCommand(entryAddCmd)
	entryCmd.AddCommand(entrySetCmd)
	entryCmd.AddCommand(entryRmCmd)
	entryCmd.AddCommand(entryDupCmd)
	entryCmd.AddCommand(entryMoveCmd)
	rootCmd.AddCommand(entryCmd)
}

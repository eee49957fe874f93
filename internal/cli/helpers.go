package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/aidanlsb/scribe/internal/config"
	"github.com/aidanlsb/scribe/internal/model"
	"github.com/aidanlsb/scribe/internal/session"
)

// openSession locks the resolved project and loads its state. Callers must
// Close the session.
func openSession(cmd *cobra.Command) (*session.Session, error) {
	sess, err := session.Open(commandContext(cmd), getProjectPath(), session.Options{Logger: logger})
	if err != nil {
		return nil, err
	}
	return sess, nil
}

// withSession runs fn against an open session and reports open failures.
func withSession(cmd *cobra.Command, fn func(*session.Session) error) error {
	sess, err := openSession(cmd)
	if err != nil {
		return fail(err, "Close other scribe commands running on this project and retry")
	}
	defer sess.Close()
	return fn(sess)
}

// loadProjectConfig reads scribe.yaml of the resolved project.
func loadProjectConfig() (*config.ProjectConfig, error) {
	return config.LoadProjectConfig(getProjectPath())
}

// resolveEntry finds the entry addressed by ref and returns it with its
// 1-based position.
func resolveEntry(st model.State, ref string) (model.Entry, int, error) {
	e, err := st.FindEntry(ref)
	if err != nil {
		return model.Entry{}, 0, err
	}
	return e, st.IndexOf(e.ID) + 1, nil
}

// readInput reads a file, or stdin when path is "-".
func readInput(path string) (string, error) {
	if path == "-" {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", fmt.Errorf("failed to read stdin: %w", err)
		}
		return string(data), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", path, err)
	}
	return string(data), nil
}

// changedString returns &value when the flag was given on the command line.
func changedString(flags *pflag.FlagSet, name, value string) *string {
	if !flags.Changed(name) {
		return nil
	}
	return &value
}

// changedBool returns &value when the flag was given on the command line.
func changedBool(flags *pflag.FlagSet, name string, value bool) *bool {
	if !flags.Changed(name) {
		return nil
	}
	return &value
}

// layoutValue is a pflag.Value accepting across, 1 or 2.
type layoutValue struct {
	layout model.Layout
}

var _ pflag.Value = (*layoutValue)(nil)

func (v *layoutValue) String() string {
	return string(v.layout)
}

func (v *layoutValue) Set(s string) error {
	l := model.Layout(strings.ToLower(strings.TrimSpace(s)))
	switch l {
	case "c1", "col1", "column1":
		l = model.LayoutColumn1
	case "c2", "col2", "column2":
		l = model.LayoutColumn2
	case "a":
		l = model.LayoutAcross
	}
	if !l.Valid() {
		return fmt.Errorf("%w: %q (expected across, 1 or 2)", model.ErrInvalidLayout, s)
	}
	v.layout = l
	return nil
}

func (v *layoutValue) Type() string {
	return "layout"
}

// entryFieldFlags binds the editable entry fields to a command.
type entryFieldFlags struct {
	page, line                 string
	column                     layoutValue
	mazOrig, mazNorm           string
	spaOrig, spaNorm           string
	eng, ipa, kirkRef          string
	uncMaz, uncMazNorm         bool
	uncSpa, uncSpaNorm, uncEng bool
}

func (f *entryFieldFlags) register(cmd *cobra.Command) {
	fl := cmd.Flags()
	fl.StringVar(&f.page, "page", "", "Page/folio identifier (e.g. 000032278_0004)")
	fl.StringVar(&f.line, "line", "", "Line number (dotted decimal, e.g. 3.1)")
	fl.Var(&f.column, "column", "Layout: across, 1 or 2")
	fl.StringVar(&f.mazOrig, "maz", "", "Mazatec as written")
	fl.StringVar(&f.mazNorm, "maz-norm", "", "Mazatec normalized")
	fl.StringVar(&f.spaOrig, "spa", "", "Spanish as written")
	fl.StringVar(&f.spaNorm, "spa-norm", "", "Spanish normalized")
	fl.StringVar(&f.eng, "eng", "", "English gloss")
	fl.StringVar(&f.ipa, "ipa", "", "IPA transcription")
	fl.StringVar(&f.kirkRef, "kirk-ref", "", "Kirk comparative set reference")
	fl.BoolVar(&f.uncMaz, "uncertain-maz", false, "Flag the written Mazatec as uncertain")
	fl.BoolVar(&f.uncMazNorm, "uncertain-maz-norm", false, "Flag the normalized Mazatec as uncertain")
	fl.BoolVar(&f.uncSpa, "uncertain-spa", false, "Flag the written Spanish as uncertain")
	fl.BoolVar(&f.uncSpaNorm, "uncertain-spa-norm", false, "Flag the normalized Spanish as uncertain")
	fl.BoolVar(&f.uncEng, "uncertain-eng", false, "Flag the English gloss as uncertain")
}

// patch builds an EntryPatch from the flags the user actually passed, so
// --uncertain-spa=false clears a flag while omitting it leaves it alone.
func (f *entryFieldFlags) patch(flags *pflag.FlagSet) model.EntryPatch {
	p := model.EntryPatch{
		Page:             changedString(flags, "page", f.page),
		Line:             changedString(flags, "line", f.line),
		MazOrig:          changedString(flags, "maz", f.mazOrig),
		MazNorm:          changedString(flags, "maz-norm", f.mazNorm),
		SpaOrig:          changedString(flags, "spa", f.spaOrig),
		SpaNorm:          changedString(flags, "spa-norm", f.spaNorm),
		EngGloss:         changedString(flags, "eng", f.eng),
		IPA:              changedString(flags, "ipa", f.ipa),
		KirkRef:          changedString(flags, "kirk-ref", f.kirkRef),
		UncertainMazOrig: changedBool(flags, "uncertain-maz", f.uncMaz),
		UncertainMazNorm: changedBool(flags, "uncertain-maz-norm", f.uncMazNorm),
		UncertainSpaOrig: changedBool(flags, "uncertain-spa", f.uncSpa),
		UncertainSpaNorm: changedBool(flags, "uncertain-spa-norm", f.uncSpaNorm),
		UncertainEng:     changedBool(flags, "uncertain-eng", f.uncEng),
	}
	if flags.Changed("column") {
		l := f.column.layout
		p.Column = &l
	}
	return p
}

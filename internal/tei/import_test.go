package tei

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/aidanlsb/scribe/internal/model"
)

var ignoreIDs = cmp.Options{
	cmpopts.IgnoreFields(model.Entry{}, "ID"),
	cmpopts.IgnoreFields(model.Variant{}, "ID"),
	cmpopts.IgnoreFields(model.Note{}, "ID"),
	cmpopts.IgnoreFields(model.KirkSet{}, "ID"),
	cmpopts.IgnoreFields(model.Daughter{}, "ID"),
	cmpopts.EquateEmpty(),
}

func richState() model.State {
	meta := model.DefaultMetadata()
	meta.Editor = "I. K."
	meta.Affiliation = "University of Virginia"
	meta.Date = "2024"
	meta.Summary = "First paragraph.\n\nSecond paragraph\nwith a wrapped line."
	meta.ProjectDesc = "Encoding follows TEI P5 dictionaries."
	meta.HandNote = "Single hand, iron-gall ink & pencil."

	across := entry("000032278_0004", "0.1", model.LayoutAcross)
	across.MazOrig = "Vocabulario"

	a := entry("000032278_0004", "1.1", model.LayoutColumn1)
	a.MazOrig, a.MazNorm = "Cham", "cham"
	a.UncertainMazOrig = true
	a.SpaOrig, a.SpaNorm, a.EngGloss = "Maíz", "maíz", "corn"
	a.UncertainSpaOrig = true
	a.UncertainEng = true
	a.IPA = "tʃam"
	a.KirkRef = "K-3"
	a.Variant = &model.Variant{Label: "var.", Orig: "Xam", Norm: "xam"}
	a.KirkSets = []model.KirkSet{{
		Number:     "12",
		SourcePage: "88",
		Headword:   "*ntjam",
		Daughters:  []model.Daughter{{Text: "cham", Confirms: true}, {Text: "tjam"}},
	}}
	a.Notes = []model.Note{
		{Type: model.NoteOrthographic, Resp: "IK", Text: "ch written as x"},
		{Type: model.NoteSemantic, Text: "no resp"},
	}

	b := entry("000032278_0005", "2.1", model.LayoutColumn1)
	b.MazOrig = "Nda"
	b.UncertainMazNorm = true

	c := entry("000032278_0005", "1.1", model.LayoutColumn2)
	c.MazOrig = "Tsi"
	c.SpaNorm = "no"

	return model.State{Metadata: meta, Entries: []model.Entry{across, a, b, c}}
}

func TestImportRoundTrip(t *testing.T) {
	t.Parallel()

	want := richState()
	got, err := Import(Serialize(want))
	if err != nil {
		t.Fatalf("Import: %v", err)
	}
	if diff := cmp.Diff(want, got, ignoreIDs); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
	for _, e := range got.Entries {
		if e.ID == "" {
			t.Errorf("imported entry has no id")
		}
	}
}

func TestImportRoundTripDefaultState(t *testing.T) {
	t.Parallel()

	want := model.DefaultState()
	got, err := Import(Serialize(want))
	if err != nil {
		t.Fatalf("Import: %v", err)
	}
	if diff := cmp.Diff(want, got, ignoreIDs); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestImportRoundTripPartiallyFilledBlocks(t *testing.T) {
	t.Parallel()

	want := model.DefaultState()
	want.Metadata.Summary = "Part one.\n\n---\n\nPart two."
	want.Metadata.ProjectDesc = "Folios\n======\n\n```\nMS 941\n```"

	spa := entry("p1", "1.1", model.LayoutColumn1)
	spa.MazOrig, spa.SpaOrig = "ndaja", "agua"

	variant := entry("p1", "2.1", model.LayoutColumn1)
	variant.MazOrig = "cham"
	variant.Variant = &model.Variant{Orig: "chaam"}

	kirk := entry("p1", "3.1", model.LayoutColumn1)
	kirk.MazOrig = "tsi"
	kirk.UncertainEng = true
	kirk.KirkSets = []model.KirkSet{
		{Number: "12"},
		{Headword: "*tsi", Daughters: []model.Daughter{{Text: "tsi", Confirms: true}}},
	}
	want.Entries = []model.Entry{spa, variant, kirk}

	got, err := Import(Serialize(want))
	if err != nil {
		t.Fatalf("Import: %v", err)
	}
	if diff := cmp.Diff(want, got, ignoreIDs); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestImportRoundTripDropsControlCharacters(t *testing.T) {
	t.Parallel()

	s := model.DefaultState()
	s.Entries[0].MazOrig = "a\x01b"
	s.Metadata.Title = "Vocabulario\x0c"
	got, err := Import(Serialize(s))
	if err != nil {
		t.Fatalf("Import: %v", err)
	}
	if got.Entries[0].MazOrig != "ab" {
		t.Errorf("MazOrig = %q, want %q", got.Entries[0].MazOrig, "ab")
	}
	if got.Metadata.Title != "Vocabulario" {
		t.Errorf("Title = %q, want %q", got.Metadata.Title, "Vocabulario")
	}
}

func TestImportDropsEmptyNotes(t *testing.T) {
	t.Parallel()

	s := model.DefaultState()
	s.Entries[0].Notes = []model.Note{{Type: model.NoteEditorial, Resp: "IK"}}
	got, err := Import(Serialize(s))
	if err != nil {
		t.Fatalf("Import: %v", err)
	}
	if n := len(got.Entries[0].Notes); n != 0 {
		t.Errorf("notes = %d, want 0", n)
	}
}

func TestImportMalformed(t *testing.T) {
	t.Parallel()

	for _, in := range []string{
		`<TEI><teiHeader></TEI>`,
		`<TEI><text><body><entry>`,
		`<a b="1></a>`,
	} {
		if _, err := Import(in); !errors.Is(err, ErrMalformed) {
			t.Errorf("Import(%q) error = %v, want ErrMalformed", in, err)
		}
	}
}

func TestImportWithoutMarkupYieldsDefaults(t *testing.T) {
	t.Parallel()

	got, err := Import("just some words")
	if err != nil {
		t.Fatalf("Import: %v", err)
	}
	if diff := cmp.Diff(model.DefaultState(), got, ignoreIDs); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}
}

func TestImportPerFieldFallback(t *testing.T) {
	t.Parallel()

	in := `<TEI xmlns="http://www.tei-c.org/ns/1.0">
  <teiHeader>
    <fileDesc>
      <titleStmt>
        <title type="main">Arte de la lengua</title>
        <author/>
      </titleStmt>
    </fileDesc>
  </teiHeader>
</TEI>`
	got, err := Import(in)
	if err != nil {
		t.Fatalf("Import: %v", err)
	}
	want := model.DefaultMetadata()
	want.Title = "Arte de la lengua"
	want.Author = ""
	if diff := cmp.Diff(want, got.Metadata); diff != "" {
		t.Errorf("metadata mismatch (-want +got):\n%s", diff)
	}
	if len(got.Entries) != 1 {
		t.Fatalf("entries = %d, want 1 default entry", len(got.Entries))
	}
	if e := got.Entries[0]; e.Page != model.DefaultPage || e.Line != model.DefaultLine || e.Column != model.LayoutColumn1 {
		t.Errorf("default entry = %+v", e)
	}
}

func TestImportEntriesWithoutPageBreak(t *testing.T) {
	t.Parallel()

	in := `<TEI><text><body>
  <entry><form type="lemma"><orth type="original">Ji</orth></form><note type="bogus" resp="#AB">x</note><lb n="4.1"/></entry>
  <div type="column" n="2">
    <entry><form type="lemma"><orth type="original">Na</orth></form></entry>
  </div>
</body></text></TEI>`
	got, err := Import(in)
	if err != nil {
		t.Fatalf("Import: %v", err)
	}
	if len(got.Entries) != 2 {
		t.Fatalf("entries = %d, want 2", len(got.Entries))
	}
	first, second := got.Entries[0], got.Entries[1]
	if first.Column != model.LayoutAcross || first.Page != model.DefaultPage || first.Line != "4.1" {
		t.Errorf("first entry = %+v", first)
	}
	if len(first.Notes) != 1 || first.Notes[0].Type != model.NoteEditorial || first.Notes[0].Resp != "AB" {
		t.Errorf("first notes = %+v", first.Notes)
	}
	if second.Column != model.LayoutColumn2 || second.MazOrig != "Na" {
		t.Errorf("second entry = %+v", second)
	}
}

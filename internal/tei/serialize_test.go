package tei

import (
	"strings"
	"testing"

	"github.com/aidanlsb/scribe/internal/model"
)

func entry(page, line string, col model.Layout) model.Entry {
	e := model.NewEntry()
	e.Page = page
	e.Line = line
	e.Column = col
	return e
}

func TestSerializeDeterministic(t *testing.T) {
	t.Parallel()

	s := model.DefaultState()
	s.Entries[0].MazOrig = "Cham"

	other := s
	other.Entries = []model.Entry{s.Entries[0].Clone(true)}

	a := Serialize(s)
	if a != Serialize(s) {
		t.Fatal("serializing the same state twice produced different output")
	}
	if a != Serialize(other) {
		t.Fatal("output depends on model ids")
	}
	if strings.Contains(a, s.Entries[0].ID) {
		t.Fatal("model id leaked into TEI output")
	}
}

func TestSerializeDocumentFrame(t *testing.T) {
	t.Parallel()

	out := Serialize(model.DefaultState())
	for _, want := range []string{
		`<?xml version="1.0" encoding="UTF-8"?>`,
		`<?xml-model href="` + SchemaURL + `"`,
		`<TEI xmlns="http://www.tei-c.org/ns/1.0">`,
		`<title type="main">Mazatec Vocabulary Manuscript</title>`,
		`<idno type="shelfmark">MSS 01784</idno>`,
		`<textLang mainLang="maz" otherLangs="es"/>`,
		`<objectDesc form="codex">`,
		`<origDate>c.1830s</origDate>`,
		`<taxonomy xml:id="noteTypes">`,
		`<category xml:id="semantic">`,
		`<term type="genre">Vocabulary</term>`,
		`<persName></persName>`,
		`<projectDesc/>`,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q", want)
		}
	}
	if !strings.HasSuffix(out, "</TEI>\n") {
		t.Errorf("output does not end with closing TEI element")
	}
}

func TestSerializeOmitsEmptyFields(t *testing.T) {
	t.Parallel()

	s := model.DefaultState()
	s.Entries[0].Page = "000032278_0004"
	s.Entries[0].MazOrig = "Cham"
	out := Serialize(s)

	if !strings.Contains(out, `<orth type="original">Cham</orth>`) {
		t.Errorf("missing original orthography:\n%s", out)
	}
	for _, absent := range []string{
		`type="normalized"`, "<pron", "<sense", "<def", "<gloss", "<xr", `<note type=`, `type="variant"`, "cert=",
	} {
		if strings.Contains(out, absent) {
			t.Errorf("output unexpectedly contains %q", absent)
		}
	}
	if !strings.Contains(out, `<lb n="1.1"/>`) {
		t.Errorf("missing line break marker")
	}
}

func TestSerializeOmitsEmptyPartsOfFilledBlocks(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		fill   func(e *model.Entry)
		want   []string
		absent []string
	}{
		{
			name:   "spanish original only",
			fill:   func(e *model.Entry) { e.SpaOrig = "agua" },
			want:   []string{`<def type="original" xml:lang="es">agua</def>`},
			absent: []string{`type="normalized"`, "<gloss"},
		},
		{
			name:   "gloss only",
			fill:   func(e *model.Entry) { e.EngGloss = "water" },
			want:   []string{`<gloss xml:lang="en">water</gloss>`},
			absent: []string{"<def"},
		},
		{
			name:   "uncertain empty normalized spanish",
			fill:   func(e *model.Entry) { e.UncertainSpaNorm = true },
			want:   []string{`<def type="normalized" xml:lang="es" cert="low"></def>`},
			absent: []string{`<def type="original"`, "<gloss"},
		},
		{
			name:   "variant original only",
			fill:   func(e *model.Entry) { e.Variant = &model.Variant{Orig: "chaam"} },
			want:   []string{`<form type="variant">`, `<orth type="original">chaam</orth>`},
			absent: []string{"<lbl", `<orth type="normalized"`},
		},
		{
			name:   "textless variant",
			fill:   func(e *model.Entry) { e.Variant = &model.Variant{} },
			absent: []string{`type="variant"`},
		},
		{
			name:   "kirk set number only",
			fill:   func(e *model.Entry) { e.KirkSets = []model.KirkSet{{Number: "12"}} },
			want:   []string{`<xr type="kirkSet" n="12">`},
			absent: []string{"<ref", `<term type="proto"`},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := entry("p", "1.1", model.LayoutColumn1)
			e.MazOrig = "ndaja"
			tt.fill(&e)
			out := Serialize(model.State{Metadata: model.DefaultMetadata(), Entries: []model.Entry{e}})
			body := out[strings.Index(out, "<body>"):]

			for _, want := range tt.want {
				if !strings.Contains(body, want) {
					t.Errorf("output missing %q:\n%s", want, body)
				}
			}
			for _, absent := range tt.absent {
				if strings.Contains(body, absent) {
					t.Errorf("output unexpectedly contains %q:\n%s", absent, body)
				}
			}
			for _, empty := range []string{"></def>", "></gloss>", "></lbl>", "></orth>", "></ref>", "></term>"} {
				if strings.Count(body, empty) > strings.Count(body, `cert="low">`+empty[1:]) {
					t.Errorf("output has empty element %q:\n%s", empty, body)
				}
			}
		})
	}
}

func TestSerializeDropsXMLIllegalCharacters(t *testing.T) {
	t.Parallel()

	e := entry("p", "1.1", model.LayoutColumn1)
	e.MazOrig = "a\x01b\x0bc"
	out := Serialize(model.State{Metadata: model.DefaultMetadata(), Entries: []model.Entry{e}})
	if !strings.Contains(out, `<orth type="original">abc</orth>`) {
		t.Errorf("control characters not dropped:\n%s", out)
	}
}

func TestSerializeUncertainSpanishToggle(t *testing.T) {
	t.Parallel()

	s := model.DefaultState()
	s.Entries[0].MazOrig = "ndaja"
	s.Entries[0].SpaOrig = "agua"
	s.Entries[0].SpaNorm = "agua"
	s.Entries[0].EngGloss = "water"

	before := strings.Split(Serialize(s), "\n")
	s.Entries[0].UncertainSpaOrig = true
	after := strings.Split(Serialize(s), "\n")

	if len(before) != len(after) {
		t.Fatalf("line count changed: %d -> %d", len(before), len(after))
	}
	var changed []int
	for i := range before {
		if before[i] != after[i] {
			changed = append(changed, i)
		}
	}
	if len(changed) != 1 {
		t.Fatalf("changed lines = %v, want exactly one", changed)
	}
	got := strings.TrimSpace(after[changed[0]])
	want := `<def type="original" xml:lang="es" cert="low">agua</def>`
	if got != want {
		t.Errorf("changed line = %q, want %q", got, want)
	}
}

func TestSerializeCertCountMatchesFlags(t *testing.T) {
	t.Parallel()

	e := entry("p1", "1.1", model.LayoutColumn1)
	e.MazOrig, e.MazNorm = "a", "b"
	e.SpaOrig, e.SpaNorm, e.EngGloss = "c", "d", "e"
	e.UncertainMazNorm = true
	e.UncertainEng = true
	out := Serialize(model.State{Metadata: model.DefaultMetadata(), Entries: []model.Entry{e}})

	if n := strings.Count(out, `cert="low"`); n != 2 {
		t.Errorf("cert attributes = %d, want 2", n)
	}
	if strings.Contains(out, "false") {
		t.Errorf("uncertainty rendered as false")
	}
}

func TestSerializeGroupsAndPageBreaks(t *testing.T) {
	t.Parallel()

	s := model.State{
		Metadata: model.DefaultMetadata(),
		Entries: []model.Entry{
			entry("A", "1.1", model.LayoutColumn1),
			entry("A", "2.1", model.LayoutColumn1),
			entry("B", "1.1", model.LayoutColumn1),
			entry("A", "0.1", model.LayoutAcross),
		},
	}
	out := Serialize(s)

	if strings.Contains(out, `<div type="column" n="2">`) {
		t.Errorf("empty column group was emitted")
	}
	across := strings.Index(out, `xml:id="pA_a_1"`)
	col1 := strings.Index(out, `<div type="column" n="1">`)
	if across < 0 || col1 < 0 || across > col1 {
		t.Fatalf("across entries must precede column 1 (across=%d col1=%d)", across, col1)
	}
	for _, id := range []string{"pA_c1_1", "pA_c1_2", "pB_c1_3"} {
		if !strings.Contains(out, `xml:id="`+id+`"`) {
			t.Errorf("missing entry id %s", id)
		}
	}
	body := out[strings.Index(out, "<body>"):]
	if got := strings.Count(body, "<pb "); got != 3 {
		t.Errorf("page breaks = %d, want 3 (across start, column start, page change)", got)
	}
}

func TestSerializeEntryChildren(t *testing.T) {
	t.Parallel()

	e := entry("p", "3.1", model.LayoutColumn2)
	e.MazOrig = `a<b & "c"`
	e.IPA = "ʃa"
	e.KirkRef = "K-12"
	e.Variant = &model.Variant{Label: "var.", Orig: "x"}
	e.KirkSets = []model.KirkSet{{
		Number:     "7",
		SourcePage: "41",
		Headword:   "*ntja",
		Daughters:  []model.Daughter{{Text: "ntja", Confirms: true}, {Text: "tja"}},
	}}
	e.Notes = []model.Note{
		{Type: model.NoteLinguistic, Resp: "IK", Text: "compare"},
		{Type: model.NoteEditorial, Resp: "IK", Text: ""},
	}
	out := Serialize(model.State{Metadata: model.DefaultMetadata(), Entries: []model.Entry{e}})

	for _, want := range []string{
		`<orth type="original">a&lt;b &amp; &quot;c&quot;</orth>`,
		`<pron notation="ipa">ʃa</pron>`,
		`<form type="variant">`,
		`<lbl>var.</lbl>`,
		`<xr type="kirk">K-12</xr>`,
		`<xr type="kirkSet" n="7">`,
		`<ref type="page">41</ref>`,
		`<term type="proto">*ntja</term>`,
		`<term type="daughter" ana="#confirms">ntja</term>`,
		`<term type="daughter">tja</term>`,
		`<note type="linguistic" resp="#IK">compare</note>`,
		`<lb n="3.1"/>`,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q", want)
		}
	}
	if strings.Count(out, `<note type=`) != 1 {
		t.Errorf("empty-text note should be omitted")
	}
}

func TestEntryXMLID(t *testing.T) {
	t.Parallel()

	tests := []struct {
		page   string
		layout model.Layout
		n      int
		want   string
	}{
		{"000032278_0004", model.LayoutColumn1, 1, "p000032278_0004_c1_1"},
		{"000032278_0004", model.LayoutColumn2, 3, "p000032278_0004_c2_3"},
		{"12", model.LayoutAcross, 2, "p12_a_2"},
		{"12/a b", model.LayoutColumn1, 1, "p12_a_b_c1_1"},
	}
	for _, tt := range tests {
		if got := EntryXMLID(tt.page, tt.layout, tt.n); got != tt.want {
			t.Errorf("EntryXMLID(%q, %q, %d) = %q, want %q", tt.page, tt.layout, tt.n, got, tt.want)
		}
	}
}

func TestParagraphs(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   string
		want []string
	}{
		{"empty", "  \n", nil},
		{"single", "One line.", []string{"One line."}},
		{"blank line separated", "One.\n\nTwo\nlines.", []string{"One.", "Two\nlines."}},
		{"list keeps marker", "Intro.\n\n- item", []string{"Intro.", "- item"}},
		{"heading keeps marker", "# Title\n\nBody.", []string{"# Title", "Body."}},
		{"thematic break", "Part one.\n\n---\n\nPart two.", []string{"Part one.", "---", "Part two."}},
		{"setext underline", "Folios\n======\n\nBody.", []string{"Folios\n======", "Body."}},
		{"code fence", "```\nMS 941\n```", []string{"```\nMS 941\n```"}},
		{"fence after prose", "Intro.\n\n```\nMS 941\n```\n\nAfter.", []string{"Intro.", "```\nMS 941\n```", "After."}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Paragraphs(tt.in)
			if strings.Join(got, "|") != strings.Join(tt.want, "|") || len(got) != len(tt.want) {
				t.Errorf("Paragraphs(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

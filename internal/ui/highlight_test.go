package ui

import (
	"strings"
	"testing"
)

func joinTokens(toks []xmlToken) string {
	var b strings.Builder
	for _, t := range toks {
		b.WriteString(t.text)
	}
	return b.String()
}

func TestXMLTokensPreserveInput(t *testing.T) {
	t.Parallel()

	inputs := []string{
		`<?xml version="1.0" encoding="UTF-8"?>`,
		"<entry xml:id=\"p1_c1_1\">\n  <orth type=\"original\" cert=\"low\">Cham</orth>\n  <lb n=\"1.1\"/>\n</entry>",
		`<page=000032278_0004 line=1.1><old_maz>Cham</old_maz></page><note type="editorial" resp="#IK">x</note>`,
		"plain text with a < sign",
		`<title>unterminated`,
		`<a b='single' c="x>y">t</a>`,
	}
	for _, in := range inputs {
		if got := joinTokens(xmlTokens(in)); got != in {
			t.Errorf("tokens joined = %q, want %q", got, in)
		}
	}
}

func TestXMLTokensKinds(t *testing.T) {
	t.Parallel()

	toks := xmlTokens(`<orth type="original">Cham</orth>`)
	want := []xmlToken{
		{tokTag, "<orth"},
		{tokMarkup, " "},
		{tokAttrName, "type"},
		{tokMarkup, "="},
		{tokAttrValue, `"original"`},
		{tokTag, ">"},
		{tokText, "Cham"},
		{tokTag, "</orth"},
		{tokTag, ">"},
	}
	if len(toks) != len(want) {
		t.Fatalf("got %d tokens %v, want %d", len(toks), toks, len(want))
	}
	for i := range want {
		if toks[i] != want[i] {
			t.Errorf("token %d = %+v, want %+v", i, toks[i], want[i])
		}
	}
}

func TestXMLTokensFlatPseudoTag(t *testing.T) {
	t.Parallel()

	toks := xmlTokens(`<page=12 line=1.1>`)
	var values []string
	for _, tok := range toks {
		if tok.kind == tokAttrValue {
			values = append(values, tok.text)
		}
	}
	if strings.Join(values, ",") != "=12,1.1" {
		t.Errorf("attribute values = %v", values)
	}
}

func TestHighlightXMLKeepsText(t *testing.T) {
	t.Parallel()

	out := HighlightXML(`<gloss xml:lang="en">corn</gloss>`)
	for _, part := range []string{"gloss", "xml:lang", `"en"`, "corn"} {
		if !strings.Contains(out, part) {
			t.Errorf("highlighted output missing %q: %q", part, out)
		}
	}
}

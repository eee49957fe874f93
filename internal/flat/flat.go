// Package flat renders the early custom-tag transcription format: a note
// taxonomy block, a few header tags, then one line per entry. The format has
// no reader; TEI is the interchange format.
package flat

import (
	"strings"

	"github.com/aidanlsb/scribe/internal/model"
)

var escaper = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;")

func escape(s string) string {
	return escaper.Replace(strings.Map(model.XMLChar, s))
}

// Serialize renders s in the flat tag format. Only old_maz is always
// present on an entry line; every other empty field emits nothing.
func Serialize(s model.State) string {
	var b strings.Builder

	b.WriteString("<encodingDesc>\n  <classDecl>\n    <taxonomy xml:id=\"noteTypes\">\n")
	for _, nt := range model.NoteTypes() {
		b.WriteString(`      <category xml:id="`)
		b.WriteString(string(nt.Type))
		b.WriteString(`"><catDesc>`)
		b.WriteString(escape(nt.Description))
		b.WriteString("</catDesc></category>\n")
	}
	b.WriteString("    </taxonomy>\n  </classDecl>\n</encodingDesc>\n\n")

	m := s.Metadata
	writeTag(&b, "title", m.Title)
	b.WriteByte('\n')
	writeTag(&b, "date", m.OrigDate)
	b.WriteByte('\n')
	writeTag(&b, "genre", m.Genre)
	b.WriteByte('\n')
	writeTag(&b, "author", m.Author)
	b.WriteByte('\n')
	writeTag(&b, "source", Source(m))
	b.WriteString("\n\n")

	for _, e := range s.Entries {
		b.WriteString(Line(e))
		b.WriteByte('\n')
	}
	return strings.TrimSpace(b.String())
}

// Source composes the archival source line from the repository identifiers,
// e.g. "at UVA: MSS 01784, From: Gates collection, 941 Manuscript".
func Source(m model.Metadata) string {
	var parts []string
	if m.Institution != "" {
		parts = append(parts, "at "+m.Institution+":")
	}
	if m.Shelfmark != "" {
		id := m.Shelfmark
		if m.Collection != "" {
			id += ","
		}
		parts = append(parts, id)
	}
	if m.Collection != "" {
		parts = append(parts, "From: "+m.Collection)
	}
	return strings.Join(parts, " ")
}

// Line renders one entry on a single line.
func Line(e model.Entry) string {
	var b strings.Builder
	b.WriteString("<page=")
	b.WriteString(e.Page)
	b.WriteString(" line=")
	b.WriteString(e.Line)
	b.WriteByte('>')

	writeTag(&b, "old_maz", e.MazOrig)
	if e.MazNorm != "" {
		b.WriteByte(' ')
		writeTag(&b, "new_maz", e.MazNorm)
	}
	writeOptional(&b, "ipa", e.IPA)
	writeOptional(&b, "old_spa", e.SpaOrig)
	writeOptional(&b, "new_spa", e.SpaNorm)
	writeOptional(&b, "eng_gloss", e.EngGloss)
	b.WriteString("</page>")

	writeOptional(&b, "kirk_set", e.KirkRef)
	for _, n := range e.Notes {
		if n.Text == "" || n.Type == model.NoteNone {
			continue
		}
		b.WriteString(`<note type="`)
		b.WriteString(string(n.Type))
		b.WriteByte('"')
		if resp := strings.TrimPrefix(n.Resp, "#"); resp != "" {
			b.WriteString(` resp="#`)
			b.WriteString(resp)
			b.WriteByte('"')
		}
		b.WriteByte('>')
		b.WriteString(escape(n.Text))
		b.WriteString("</note>")
	}
	return b.String()
}

func writeTag(b *strings.Builder, name, text string) {
	b.WriteByte('<')
	b.WriteString(name)
	b.WriteByte('>')
	b.WriteString(escape(text))
	b.WriteString("</")
	b.WriteString(name)
	b.WriteByte('>')
}

func writeOptional(b *strings.Builder, name, text string) {
	if text != "" {
		writeTag(b, name, text)
	}
}

// Package tei renders a transcription as a TEI P5 dictionary document and
// reads such documents back into the record model.
package tei

import (
	"fmt"
	"strings"

	"github.com/aidanlsb/scribe/internal/model"
)

const (
	// Namespace is the TEI P5 namespace URI.
	Namespace = "http://www.tei-c.org/ns/1.0"

	// SchemaURL is the RELAX NG schema referenced by the xml-model PI.
	SchemaURL = "https://www.tei-c.org/release/xml/tei/custom/schema/relaxng/tei_all.rng"

	relaxNG = "http://relaxng.org/ns/structure/1.0"

	// CertLow is the cert attribute value for an uncertain reading.
	CertLow = "low"

	// ConfirmsRef marks a daughter word that supports its reconstruction.
	ConfirmsRef = "#confirms"

	respText = "Transcription and encoding"
)

// Serialize renders s as a complete TEI document. Output depends only on s:
// entry ids are synthesized from position, never taken from model ids.
func Serialize(s model.State) string {
	w := &writer{}
	w.raw(`<?xml version="1.0" encoding="UTF-8"?>`)
	w.raw(fmt.Sprintf(`<?xml-model href="%s" type="application/xml" schematypens="%s"?>`, SchemaURL, relaxNG))
	w.open("TEI", attr{"xmlns", Namespace})
	writeHeader(w, s.Metadata)
	w.open("text")
	w.open("body")
	writeBody(w, s.Entries)
	w.close("body")
	w.close("text")
	w.close("TEI")
	return w.String()
}

func writeHeader(w *writer, m model.Metadata) {
	w.open("teiHeader")
	w.open("fileDesc")

	w.open("titleStmt")
	w.leaf("title", m.Title, attr{"type", "main"})
	w.leaf("title", m.Subtitle, attr{"type", "sub"})
	w.leaf("author", m.Author)
	w.close("titleStmt")

	w.open("editionStmt")
	w.open("respStmt")
	w.leaf("resp", respText)
	w.leaf("persName", m.Editor)
	w.leaf("orgName", m.Affiliation)
	w.close("respStmt")
	w.close("editionStmt")

	w.open("publicationStmt")
	w.leaf("publisher", m.Publisher)
	w.leaf("date", m.Date)
	w.close("publicationStmt")

	w.open("sourceDesc")
	w.open("msDesc")

	w.open("msIdentifier")
	w.leaf("settlement", m.Settlement)
	w.leaf("institution", m.Institution)
	w.leaf("repository", m.Repository)
	w.leaf("collection", m.Collection)
	w.leaf("idno", m.Shelfmark, attr{"type", "shelfmark"})
	w.close("msIdentifier")

	w.open("msContents")
	writeParagraphs(w, "summary", m.Summary)
	w.empty("textLang", attr{"mainLang", m.MainLang}, attr{"otherLangs", m.OtherLangs})
	w.open("msItem")
	w.leaf("title", m.MsContentsTitle)
	w.leaf("note", m.MsContentsNote)
	w.close("msItem")
	w.close("msContents")

	w.open("physDesc")
	w.open("objectDesc", attr{"form", m.PhysForm})
	w.open("supportDesc")
	w.leaf("extent", m.PhysExtent)
	w.close("supportDesc")
	w.open("layoutDesc")
	w.leaf("layout", m.PhysLayout)
	w.close("layoutDesc")
	w.close("objectDesc")
	w.open("handDesc")
	w.leaf("handNote", m.HandNote)
	w.close("handDesc")
	w.close("physDesc")

	w.open("history")
	w.open("origin")
	w.leaf("origDate", m.OrigDate)
	w.leaf("origPlace", m.OrigPlace)
	w.close("origin")
	w.close("history")

	w.close("msDesc")
	w.close("sourceDesc")
	w.close("fileDesc")

	w.open("encodingDesc")
	writeParagraphs(w, "projectDesc", m.ProjectDesc)
	w.open("classDecl")
	w.open("taxonomy", attr{"xml:id", "noteTypes"})
	for _, nt := range model.NoteTypes() {
		w.open("category", attr{"xml:id", string(nt.Type)})
		w.leaf("catDesc", nt.Description)
		w.close("category")
	}
	w.close("taxonomy")
	w.close("classDecl")
	w.close("encodingDesc")

	w.open("profileDesc")
	w.open("textClass")
	w.open("keywords")
	w.leaf("term", m.Genre, attr{"type", "genre"})
	w.close("keywords")
	w.close("textClass")
	w.close("profileDesc")

	w.close("teiHeader")
}

// writeParagraphs emits name with one <p> per block. The element is written
// even when text is empty.
func writeParagraphs(w *writer, name, text string) {
	paras := Paragraphs(text)
	if len(paras) == 0 {
		w.empty(name)
		return
	}
	w.open(name)
	for _, p := range paras {
		w.leaf("p", p)
	}
	w.close(name)
}

// Group collects the entries that share a layout, in document order.
type Group struct {
	Layout  model.Layout
	Entries []model.Entry
}

// Groups partitions entries by layout in render order. Empty groups are
// dropped.
func Groups(entries []model.Entry) []Group {
	var out []Group
	for _, layout := range model.Layouts() {
		g := Group{Layout: layout}
		for _, e := range entries {
			if entryLayout(e) == layout {
				g.Entries = append(g.Entries, e)
			}
		}
		if len(g.Entries) > 0 {
			out = append(out, g)
		}
	}
	return out
}

func entryLayout(e model.Entry) model.Layout {
	if e.Column.Valid() {
		return e.Column
	}
	return model.LayoutColumn1
}

func writeBody(w *writer, entries []model.Entry) {
	for _, g := range Groups(entries) {
		across := g.Layout == model.LayoutAcross
		if !across {
			w.open("div", attr{"type", "column"}, attr{"n", string(g.Layout)})
		}
		page := ""
		for i, e := range g.Entries {
			if i == 0 || e.Page != page {
				w.empty("pb", attr{"n", e.Page})
				page = e.Page
			}
			writeEntry(w, e, EntryXMLID(e.Page, g.Layout, i+1))
		}
		if !across {
			w.close("div")
		}
	}
}

// EntryXMLID synthesizes the xml:id of the n-th entry (1-based) in a layout
// group.
func EntryXMLID(page string, layout model.Layout, n int) string {
	var code string
	switch layout {
	case model.LayoutAcross:
		code = "a"
	case model.LayoutColumn2:
		code = "c2"
	default:
		code = "c1"
	}
	return ncName(fmt.Sprintf("p%s_%s_%d", page, code, n))
}

// ncName replaces characters that may not appear in an xml:id.
func ncName(s string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			return r
		case r == '_', r == '-', r == '.':
			return r
		}
		return '_'
	}, s)
}

func writeEntry(w *writer, e model.Entry, id string) {
	w.open("entry", attr{"xml:id", id})

	w.open("form", attr{"type", "lemma"})
	w.leaf("orth", e.MazOrig, certAttrs(e.UncertainMazOrig, attr{"type", "original"})...)
	w.optional("orth", e.MazNorm, e.UncertainMazNorm, attr{"type", "normalized"})
	if e.IPA != "" {
		w.leaf("pron", e.IPA, attr{"notation", "ipa"})
	}
	w.close("form")

	if v := e.Variant; v != nil && !v.IsEmpty() {
		w.open("form", attr{"type", "variant"})
		w.optional("lbl", v.Label, false)
		w.optional("orth", v.Orig, false, attr{"type", "original"})
		w.optional("orth", v.Norm, false, attr{"type", "normalized"})
		w.close("form")
	}

	if hasSense(e) {
		w.open("sense")
		w.optional("def", e.SpaOrig, e.UncertainSpaOrig, attr{"type", "original"}, attr{"xml:lang", "es"})
		w.optional("def", e.SpaNorm, e.UncertainSpaNorm, attr{"type", "normalized"}, attr{"xml:lang", "es"})
		w.optional("gloss", e.EngGloss, e.UncertainEng, attr{"xml:lang", "en"})
		w.close("sense")
	}

	if e.KirkRef != "" {
		w.leaf("xr", e.KirkRef, attr{"type", "kirk"})
	}
	for _, ks := range e.KirkSets {
		attrs := []attr{{"type", "kirkSet"}}
		if ks.Number != "" {
			attrs = append(attrs, attr{"n", ks.Number})
		}
		w.open("xr", attrs...)
		w.optional("ref", ks.SourcePage, false, attr{"type", "page"})
		w.optional("term", ks.Headword, false, attr{"type", "proto"})
		for _, d := range ks.Daughters {
			attrs := []attr{{"type", "daughter"}}
			if d.Confirms {
				attrs = append(attrs, attr{"ana", ConfirmsRef})
			}
			w.leaf("term", d.Text, attrs...)
		}
		w.close("xr")
	}

	for _, n := range e.Notes {
		if n.Text == "" || n.Type == model.NoteNone {
			continue
		}
		attrs := []attr{{"type", string(n.Type)}}
		if resp := strings.TrimPrefix(n.Resp, "#"); resp != "" {
			attrs = append(attrs, attr{"resp", "#" + resp})
		}
		w.leaf("note", n.Text, attrs...)
	}

	if e.Line != "" {
		w.empty("lb", attr{"n", e.Line})
	}
	w.close("entry")
}

func hasSense(e model.Entry) bool {
	return e.SpaOrig != "" || e.SpaNorm != "" || e.EngGloss != "" ||
		e.UncertainSpaOrig || e.UncertainSpaNorm || e.UncertainEng
}

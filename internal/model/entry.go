// Package model defines the transcription record model: document metadata and
// the ordered list of manuscript entries, together with the pure update
// operations applied to them.
package model

import (
	"strings"

	"github.com/google/uuid"
	"golang.org/x/text/unicode/norm"
)

// Layout identifies where an entry sits on the manuscript page.
type Layout string

const (
	LayoutAcross  Layout = "across"
	LayoutColumn1 Layout = "1"
	LayoutColumn2 Layout = "2"
)

// Layouts returns the column discriminants in render order.
func Layouts() []Layout {
	return []Layout{LayoutAcross, LayoutColumn1, LayoutColumn2}
}

// Valid reports whether l is one of the known layouts.
func (l Layout) Valid() bool {
	switch l {
	case LayoutAcross, LayoutColumn1, LayoutColumn2:
		return true
	}
	return false
}

// Label returns a short human label for the layout.
func (l Layout) Label() string {
	switch l {
	case LayoutAcross:
		return "across columns"
	case LayoutColumn1:
		return "column 1"
	case LayoutColumn2:
		return "column 2"
	}
	return string(l)
}

// Entry is one transcribed manuscript line or lexical item.
type Entry struct {
	// ID is a process-local identifier used to address the entry.
	// It is never written to TEI or flat output.
	ID string `json:"id"`

	// Page is the folio/image identifier, e.g. "000032278_0004".
	Page string `json:"page"`

	// Line is a dotted decimal string so insertions like "3.1" are possible.
	Line string `json:"line"`

	Column Layout `json:"column"`

	// Source-language orthography.
	MazOrig          string `json:"maz_orig"`
	MazNorm          string `json:"maz_norm"`
	UncertainMazOrig bool   `json:"uncertain_maz,omitempty"`
	UncertainMazNorm bool   `json:"uncertain_maz_norm,omitempty"`

	// Spanish gloss as written and normalized.
	SpaOrig          string `json:"spa_orig"`
	SpaNorm          string `json:"spa_norm"`
	UncertainSpaOrig bool   `json:"uncertain_spa,omitempty"`
	UncertainSpaNorm bool   `json:"uncertain_spa_norm,omitempty"`

	EngGloss     string `json:"eng_gloss"`
	UncertainEng bool   `json:"uncertain_eng,omitempty"`

	IPA string `json:"ipa,omitempty"`

	// KirkRef is a free-text comparative set identifier ("Kirk set").
	KirkRef string `json:"kirk_set,omitempty"`

	Variant  *Variant  `json:"variant,omitempty"`
	KirkSets []KirkSet `json:"kirk_sets,omitempty"`
	Notes    []Note    `json:"notes"`
}

// Variant is an alternate attested spelling or reading of the entry.
type Variant struct {
	ID    string `json:"id"`
	Label string `json:"label"`
	Orig  string `json:"orig"`
	Norm  string `json:"norm"`
}

// IsEmpty reports whether the variant carries no text at all.
func (v Variant) IsEmpty() bool {
	return v.Label == "" && v.Orig == "" && v.Norm == ""
}

// KirkSet ties an entry to a reconstructed proto-form and its reflexes.
type KirkSet struct {
	ID         string     `json:"id"`
	Number     string     `json:"number"`
	SourcePage string     `json:"source_page"`
	Headword   string     `json:"headword"`
	Daughters  []Daughter `json:"daughters,omitempty"`
}

// Daughter is an attested daughter-language word in a KirkSet.
type Daughter struct {
	ID   string `json:"id"`
	Text string `json:"text"`

	// Confirms marks the word as supporting the reconstruction.
	Confirms bool `json:"confirms,omitempty"`
}

// NoteType classifies an annotation.
type NoteType string

const (
	NoteEditorial    NoteType = "editorial"
	NoteLinguistic   NoteType = "linguistic"
	NoteLayout       NoteType = "layout"
	NoteOrthographic NoteType = "orthographic"
	NoteHistorical   NoteType = "historical"
	NoteSemantic     NoteType = "semantic"

	// NoteNone is a selection sentinel: choosing it deletes the note.
	// It is never stored.
	NoteNone NoteType = "none"
)

// NoteTypeInfo pairs a note type with its taxonomy description.
type NoteTypeInfo struct {
	Type        NoteType
	Description string
}

// NoteTypes returns the note vocabulary in taxonomy order.
func NoteTypes() []NoteTypeInfo {
	return []NoteTypeInfo{
		{NoteEditorial, "Transcription decisions"},
		{NoteLinguistic, "Comparative/reconstructed"},
		{NoteLayout, "Physical arrangement"},
		{NoteOrthographic, "Spelling/graphemes"},
		{NoteHistorical, "Contextual info"},
		{NoteSemantic, "Meaning clarifications"},
	}
}

// Valid reports whether t is a storable note type.
func (t NoteType) Valid() bool {
	for _, info := range NoteTypes() {
		if info.Type == t {
			return true
		}
	}
	return false
}

// Note is a typed free-text annotation on an entry.
type Note struct {
	ID   string   `json:"id"`
	Type NoteType `json:"type"`

	// Resp is the annotator code, stored without the leading '#'.
	Resp string `json:"resp"`
	Text string `json:"text"`
}

// NewID returns a fresh process-local identifier.
func NewID() string {
	return uuid.NewString()
}

// DefaultPage is the page used for a brand new document.
const DefaultPage = "000000000_0000"

// DefaultLine is the line number of the first entry.
const DefaultLine = "1.1"

// NewEntry returns an empty entry with identity defaults.
func NewEntry() Entry {
	return Entry{
		ID:     NewID(),
		Page:   DefaultPage,
		Line:   DefaultLine,
		Column: LayoutColumn1,
		Notes:  []Note{},
	}
}

// Clone returns a deep copy of e. When fresh is true every nested
// identifier is regenerated.
func (e Entry) Clone(fresh bool) Entry {
	out := e
	if fresh {
		out.ID = NewID()
	}
	if e.Variant != nil {
		v := *e.Variant
		if fresh {
			v.ID = NewID()
		}
		out.Variant = &v
	}
	out.Notes = make([]Note, len(e.Notes))
	for i, n := range e.Notes {
		if fresh {
			n.ID = NewID()
		}
		out.Notes[i] = n
	}
	if e.KirkSets != nil {
		out.KirkSets = make([]KirkSet, len(e.KirkSets))
		for i, ks := range e.KirkSets {
			out.KirkSets[i] = ks.clone(fresh)
		}
	}
	return out
}

func (ks KirkSet) clone(fresh bool) KirkSet {
	out := ks
	if fresh {
		out.ID = NewID()
	}
	if ks.Daughters != nil {
		out.Daughters = make([]Daughter, len(ks.Daughters))
		for i, d := range ks.Daughters {
			if fresh {
				d.ID = NewID()
			}
			out.Daughters[i] = d
		}
	}
	return out
}

// normalizeText puts text into NFC so composed and decomposed diacritics
// compare and serialize identically. Characters XML cannot carry are dropped.
func normalizeText(s string) string {
	return norm.NFC.String(strings.Map(XMLChar, s))
}

// XMLChar returns r when it is allowed by the XML 1.0 Char production and -1
// otherwise, for use with strings.Map.
func XMLChar(r rune) rune {
	switch {
	case r == '\t', r == '\n', r == '\r':
		return r
	case r < 0x20, r >= 0xD800 && r <= 0xDFFF, r == 0xFFFE, r == 0xFFFF:
		return -1
	}
	return r
}

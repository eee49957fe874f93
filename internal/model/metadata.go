package model

import (
	"errors"
	"fmt"
)

// ErrUnknownField is returned when a metadata key does not name a field.
var ErrUnknownField = errors.New("unknown metadata field")

// Metadata is the document-level record carried into the TEI header.
// Every field is a plain string; nothing is validated beyond emptiness.
type Metadata struct {
	// Title is the main title of the edition.
	Title string `json:"title" yaml:"title"`

	// Subtitle is the secondary title (title[@type=sub]).
	Subtitle string `json:"sub_title" yaml:"sub_title"`

	Author      string `json:"author" yaml:"author"`
	Editor      string `json:"editor" yaml:"editor"`
	Affiliation string `json:"affiliation" yaml:"affiliation"`

	// Date is the publication date of the digital edition.
	Date      string `json:"date" yaml:"date"`
	Publisher string `json:"publisher" yaml:"publisher"`

	// Archival identifiers (msIdentifier).
	Settlement  string `json:"settlement" yaml:"settlement"`
	Institution string `json:"institution" yaml:"institution"`
	Repository  string `json:"repository" yaml:"repository"`
	Shelfmark   string `json:"shelfmark" yaml:"shelfmark"`
	Collection  string `json:"collection" yaml:"collection"`

	MsContentsTitle string `json:"ms_contents_title" yaml:"ms_contents_title"`
	MsContentsNote  string `json:"ms_contents_note" yaml:"ms_contents_note"`

	// Summary is free text; blank lines separate paragraphs.
	Summary string `json:"summary" yaml:"summary"`

	// MainLang and OtherLangs are language codes for textLang.
	MainLang   string `json:"main_lang" yaml:"main_lang"`
	OtherLangs string `json:"other_langs" yaml:"other_langs"`

	// Physical description.
	PhysForm   string `json:"phys_form" yaml:"phys_form"`
	PhysExtent string `json:"phys_extent" yaml:"phys_extent"`
	PhysLayout string `json:"phys_layout" yaml:"phys_layout"`
	HandNote   string `json:"hand_note" yaml:"hand_note"`

	// Origin of the manuscript.
	OrigDate  string `json:"orig_date" yaml:"orig_date"`
	OrigPlace string `json:"orig_place" yaml:"orig_place"`

	// ProjectDesc is free text; blank lines separate paragraphs.
	ProjectDesc string `json:"project_desc" yaml:"project_desc"`

	Genre string `json:"genre" yaml:"genre"`
}

// MetadataField describes one addressable metadata field.
type MetadataField struct {
	Key   string
	Label string
	ptr   func(*Metadata) *string
}

// Get returns the field value from m.
func (f MetadataField) Get(m Metadata) string {
	return *f.ptr(&m)
}

var metadataFields = []MetadataField{
	{"title", "Title", func(m *Metadata) *string { return &m.Title }},
	{"sub_title", "Subtitle", func(m *Metadata) *string { return &m.Subtitle }},
	{"author", "Author", func(m *Metadata) *string { return &m.Author }},
	{"editor", "Editor", func(m *Metadata) *string { return &m.Editor }},
	{"affiliation", "Affiliation", func(m *Metadata) *string { return &m.Affiliation }},
	{"date", "Publication date", func(m *Metadata) *string { return &m.Date }},
	{"publisher", "Publisher", func(m *Metadata) *string { return &m.Publisher }},
	{"settlement", "Settlement", func(m *Metadata) *string { return &m.Settlement }},
	{"institution", "Institution", func(m *Metadata) *string { return &m.Institution }},
	{"repository", "Repository", func(m *Metadata) *string { return &m.Repository }},
	{"shelfmark", "Shelfmark", func(m *Metadata) *string { return &m.Shelfmark }},
	{"collection", "Collection", func(m *Metadata) *string { return &m.Collection }},
	{"ms_contents_title", "Contents title", func(m *Metadata) *string { return &m.MsContentsTitle }},
	{"ms_contents_note", "Contents note", func(m *Metadata) *string { return &m.MsContentsNote }},
	{"summary", "Summary", func(m *Metadata) *string { return &m.Summary }},
	{"main_lang", "Main language", func(m *Metadata) *string { return &m.MainLang }},
	{"other_langs", "Other languages", func(m *Metadata) *string { return &m.OtherLangs }},
	{"phys_form", "Form", func(m *Metadata) *string { return &m.PhysForm }},
	{"phys_extent", "Extent", func(m *Metadata) *string { return &m.PhysExtent }},
	{"phys_layout", "Layout", func(m *Metadata) *string { return &m.PhysLayout }},
	{"hand_note", "Hand", func(m *Metadata) *string { return &m.HandNote }},
	{"orig_date", "Origin date", func(m *Metadata) *string { return &m.OrigDate }},
	{"orig_place", "Origin place", func(m *Metadata) *string { return &m.OrigPlace }},
	{"project_desc", "Project description", func(m *Metadata) *string { return &m.ProjectDesc }},
	{"genre", "Genre", func(m *Metadata) *string { return &m.Genre }},
}

// MetadataFields returns every metadata field in canonical order.
func MetadataFields() []MetadataField {
	out := make([]MetadataField, len(metadataFields))
	copy(out, metadataFields)
	return out
}

// LookupMetadataField finds a field by key.
func LookupMetadataField(key string) (MetadataField, bool) {
	for _, f := range metadataFields {
		if f.Key == key {
			return f, true
		}
	}
	return MetadataField{}, false
}

// With returns a copy of m with one field replaced.
func (m Metadata) With(key, value string) (Metadata, error) {
	f, ok := LookupMetadataField(key)
	if !ok {
		return m, fmt.Errorf("%w: %q", ErrUnknownField, key)
	}
	*f.ptr(&m) = normalizeText(value)
	return m, nil
}

// Genres lists the genre labels offered by the transcription form.
var Genres = []string{
	"Vocabulary",
	"Grammar",
	"Catechism",
	"Sermon",
	"Correspondence",
}

// DefaultMetadata returns the record used on first run and after reset.
func DefaultMetadata() Metadata {
	return Metadata{
		Title:           "Mazatec Vocabulary Manuscript",
		Subtitle:        "A diplomatic and normalized transcription",
		Author:          "Ygnacio Arrona",
		Editor:          "",
		Affiliation:     "",
		Date:            "",
		Publisher:       "",
		Settlement:      "Charlottesville",
		Institution:     "University of Virginia",
		Repository:      "Albert and Shirley Small Special Collections Library",
		Shelfmark:       "MSS 01784",
		Collection:      "Gates collection, 941 Manuscript",
		MsContentsTitle: "Vocabulary of the Mazatec language",
		MsContentsNote:  "",
		Summary:         "Bilingual Mazatec and Spanish word list.",
		MainLang:        "maz",
		OtherLangs:      "es",
		PhysForm:        "codex",
		PhysExtent:      "",
		PhysLayout:      "Two columns",
		HandNote:        "",
		OrigDate:        "c.1830s",
		OrigPlace:       "Oaxaca, Mexico",
		ProjectDesc:     "",
		Genre:           Genres[0],
	}
}

package model

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var (
	// ErrEntryNotFound indicates no entry matches the given id or reference.
	ErrEntryNotFound = errors.New("entry not found")
	// ErrAmbiguousRef indicates an id prefix matches more than one entry.
	ErrAmbiguousRef = errors.New("entry reference is ambiguous")
	// ErrInvalidLayout indicates an unknown column discriminant.
	ErrInvalidLayout = errors.New("invalid column layout")
)

// State is the whole transcription: metadata plus ordered entries.
//
// Operations never modify the receiver. Each returns a new State that shares
// no mutable slices with the old one, so callers can swap states atomically.
type State struct {
	Metadata Metadata `json:"metadata"`
	Entries  []Entry  `json:"entries"`
}

// DefaultState returns default metadata and a single fresh entry.
func DefaultState() State {
	return State{
		Metadata: DefaultMetadata(),
		Entries:  []Entry{NewEntry()},
	}
}

// Reset replaces everything with the default state.
func (s State) Reset() State {
	return DefaultState()
}

func (s State) copyEntries() []Entry {
	out := make([]Entry, len(s.Entries))
	copy(out, s.Entries)
	return out
}

// IndexOf returns the position of the entry with id, or -1.
func (s State) IndexOf(id string) int {
	for i, e := range s.Entries {
		if e.ID == id {
			return i
		}
	}
	return -1
}

// Entry returns the entry with id.
func (s State) Entry(id string) (Entry, bool) {
	if i := s.IndexOf(id); i >= 0 {
		return s.Entries[i], true
	}
	return Entry{}, false
}

// FindEntry resolves a user reference: a 1-based position ("3" or "#3"),
// an exact id, or a unique id prefix. "#N" is always a position; a bare
// number is a position when it is in range and an id prefix otherwise.
func (s State) FindEntry(ref string) (Entry, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return Entry{}, fmt.Errorf("%w: empty reference", ErrEntryNotFound)
	}
	digits, hashed := strings.CutPrefix(ref, "#")
	if n, err := strconv.Atoi(digits); err == nil {
		if n >= 1 && n <= len(s.Entries) {
			return s.Entries[n-1], nil
		}
		if hashed {
			return Entry{}, fmt.Errorf("%w: position %d out of range 1-%d", ErrEntryNotFound, n, len(s.Entries))
		}
	}
	if e, ok := s.Entry(ref); ok {
		return e, nil
	}
	var match *Entry
	for i := range s.Entries {
		if strings.HasPrefix(s.Entries[i].ID, ref) {
			if match != nil {
				return Entry{}, fmt.Errorf("%w: %q", ErrAmbiguousRef, ref)
			}
			match = &s.Entries[i]
		}
	}
	if match == nil {
		return Entry{}, fmt.Errorf("%w: %q", ErrEntryNotFound, ref)
	}
	return *match, nil
}

// UpdateMetadataField sets one metadata field.
func (s State) UpdateMetadataField(key, value string) (State, error) {
	md, err := s.Metadata.With(key, value)
	if err != nil {
		return s, err
	}
	return State{Metadata: md, Entries: s.copyEntries()}, nil
}

// EntryPatch carries a partial entry update. Nil fields are left alone.
type EntryPatch struct {
	Page   *string
	Line   *string
	Column *Layout

	MazOrig          *string
	MazNorm          *string
	UncertainMazOrig *bool
	UncertainMazNorm *bool

	SpaOrig          *string
	SpaNorm          *string
	UncertainSpaOrig *bool
	UncertainSpaNorm *bool

	EngGloss     *string
	UncertainEng *bool

	IPA     *string
	KirkRef *string
}

// IsEmpty reports whether the patch changes nothing.
func (p EntryPatch) IsEmpty() bool {
	return p == EntryPatch{}
}

func (p EntryPatch) apply(e Entry) (Entry, error) {
	if p.Column != nil {
		if !p.Column.Valid() {
			return e, fmt.Errorf("%w: %q", ErrInvalidLayout, *p.Column)
		}
		e.Column = *p.Column
	}
	setText(&e.Page, p.Page)
	setText(&e.Line, p.Line)
	setText(&e.MazOrig, p.MazOrig)
	setText(&e.MazNorm, p.MazNorm)
	setText(&e.SpaOrig, p.SpaOrig)
	setText(&e.SpaNorm, p.SpaNorm)
	setText(&e.EngGloss, p.EngGloss)
	setText(&e.IPA, p.IPA)
	setText(&e.KirkRef, p.KirkRef)
	setFlag(&e.UncertainMazOrig, p.UncertainMazOrig)
	setFlag(&e.UncertainMazNorm, p.UncertainMazNorm)
	setFlag(&e.UncertainSpaOrig, p.UncertainSpaOrig)
	setFlag(&e.UncertainSpaNorm, p.UncertainSpaNorm)
	setFlag(&e.UncertainEng, p.UncertainEng)
	return e, nil
}

func setText(dst *string, v *string) {
	if v != nil {
		*dst = normalizeText(*v)
	}
}

func setFlag(dst *bool, v *bool) {
	if v != nil {
		*dst = *v
	}
}

// UpdateEntry merges patch into the entry with id.
func (s State) UpdateEntry(id string, patch EntryPatch) (State, error) {
	return s.mapEntry(id, func(e Entry) (Entry, error) {
		return patch.apply(e)
	})
}

// mapEntry replaces the entry with id by fn(entry).
func (s State) mapEntry(id string, fn func(Entry) (Entry, error)) (State, error) {
	i := s.IndexOf(id)
	if i < 0 {
		return s, fmt.Errorf("%w: %q", ErrEntryNotFound, id)
	}
	updated, err := fn(s.Entries[i].Clone(false))
	if err != nil {
		return s, err
	}
	entries := s.copyEntries()
	entries[i] = updated
	return State{Metadata: s.Metadata, Entries: entries}, nil
}

// AddEntry appends a new entry. Page and column are copied from the entry
// with afterID (or the last entry when afterID is empty or unknown) and the
// line number is advanced with NextLine.
func (s State) AddEntry(afterID string) State {
	ne := NewEntry()
	prev, ok := s.Entry(afterID)
	if !ok && len(s.Entries) > 0 {
		prev, ok = s.Entries[len(s.Entries)-1], true
	}
	if ok {
		ne.Page = prev.Page
		if prev.Column.Valid() {
			ne.Column = prev.Column
		}
		ne.Line = NextLine(prev.Line)
	}
	entries := append(s.copyEntries(), ne)
	return State{Metadata: s.Metadata, Entries: entries}
}

// RemoveEntry removes the entry with id. Removing the last remaining entry
// or an unknown id is refused and reported as false.
func (s State) RemoveEntry(id string) (State, bool) {
	i := s.IndexOf(id)
	if i < 0 || len(s.Entries) <= 1 {
		return s, false
	}
	entries := make([]Entry, 0, len(s.Entries)-1)
	entries = append(entries, s.Entries[:i]...)
	entries = append(entries, s.Entries[i+1:]...)
	return State{Metadata: s.Metadata, Entries: entries}, true
}

// DuplicateEntry inserts a deep copy of the entry immediately after it, with
// fresh identifiers and a SubLine line number.
func (s State) DuplicateEntry(id string) (State, bool) {
	i := s.IndexOf(id)
	if i < 0 {
		return s, false
	}
	dup := s.Entries[i].Clone(true)
	dup.Line = SubLine(dup.Line)

	entries := make([]Entry, 0, len(s.Entries)+1)
	entries = append(entries, s.Entries[:i+1]...)
	entries = append(entries, dup)
	entries = append(entries, s.Entries[i+1:]...)
	return State{Metadata: s.Metadata, Entries: entries}, true
}

// MoveEntry shifts an entry by delta positions, clamped to the list bounds.
// It reports false when id is unknown or the entry would not move.
func (s State) MoveEntry(id string, delta int) (State, bool) {
	i := s.IndexOf(id)
	if i < 0 {
		return s, false
	}
	j := i + delta
	if j < 0 {
		j = 0
	}
	if j > len(s.Entries)-1 {
		j = len(s.Entries) - 1
	}
	if j == i {
		return s, false
	}
	entries := s.copyEntries()
	moved := entries[i]
	if j < i {
		copy(entries[j+1:i+1], entries[j:i])
	} else {
		copy(entries[i:j], entries[i+1:j+1])
	}
	entries[j] = moved
	return State{Metadata: s.Metadata, Entries: entries}, true
}

// Normalize repairs a state restored from storage or import: missing ids are
// generated, unknown layouts fall back to column 1, stored "none" notes and
// textless variants are dropped, and an empty entry list gets one default entry.
func (s State) Normalize() State {
	entries := make([]Entry, 0, len(s.Entries))
	for _, e := range s.Entries {
		e = e.Clone(false)
		if e.ID == "" {
			e.ID = NewID()
		}
		if !e.Column.Valid() {
			e.Column = LayoutColumn1
		}
		if e.Variant != nil && e.Variant.IsEmpty() {
			e.Variant = nil
		}
		if e.Variant != nil && e.Variant.ID == "" {
			e.Variant.ID = NewID()
		}
		notes := make([]Note, 0, len(e.Notes))
		for _, n := range e.Notes {
			if n.Type == NoteNone {
				continue
			}
			if n.ID == "" {
				n.ID = NewID()
			}
			notes = append(notes, n)
		}
		e.Notes = notes
		for i := range e.KirkSets {
			if e.KirkSets[i].ID == "" {
				e.KirkSets[i].ID = NewID()
			}
			for j := range e.KirkSets[i].Daughters {
				if e.KirkSets[i].Daughters[j].ID == "" {
					e.KirkSets[i].Daughters[j].ID = NewID()
				}
			}
		}
		entries = append(entries, e)
	}
	if len(entries) == 0 {
		entries = append(entries, NewEntry())
	}
	return State{Metadata: s.Metadata, Entries: entries}
}

package model

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var (
	// ErrNoteNotFound indicates no note matches the given reference.
	ErrNoteNotFound = errors.New("note not found")
	// ErrKirkSetNotFound indicates no KirkSet matches the given reference.
	ErrKirkSetNotFound = errors.New("kirk set not found")
	// ErrDaughterNotFound indicates no daughter word matches the given reference.
	ErrDaughterNotFound = errors.New("daughter word not found")
	// ErrInvalidNoteType indicates a note type outside the vocabulary.
	ErrInvalidNoteType = errors.New("invalid note type")
)

// findChild resolves ref against items by 1-based position or id.
func findChild[T any](items []T, ref string, id func(T) string, notFound error) (int, error) {
	ref = strings.TrimPrefix(strings.TrimSpace(ref), "#")
	if n, err := strconv.Atoi(ref); err == nil {
		if n < 1 || n > len(items) {
			return -1, fmt.Errorf("%w: position %d", notFound, n)
		}
		return n - 1, nil
	}
	for i, item := range items {
		if id(item) == ref {
			return i, nil
		}
	}
	return -1, fmt.Errorf("%w: %q", notFound, ref)
}

func removeAt[T any](items []T, i int) []T {
	out := make([]T, 0, len(items)-1)
	out = append(out, items[:i]...)
	return append(out, items[i+1:]...)
}

func noteID(n Note) string         { return n.ID }
func kirkSetID(k KirkSet) string   { return k.ID }
func daughterID(d Daughter) string { return d.ID }

// FindNote resolves a note reference within e.
func (e Entry) FindNote(ref string) (Note, error) {
	i, err := findChild(e.Notes, ref, noteID, ErrNoteNotFound)
	if err != nil {
		return Note{}, err
	}
	return e.Notes[i], nil
}

// FindKirkSet resolves a KirkSet reference within e.
func (e Entry) FindKirkSet(ref string) (KirkSet, error) {
	i, err := findChild(e.KirkSets, ref, kirkSetID, ErrKirkSetNotFound)
	if err != nil {
		return KirkSet{}, err
	}
	return e.KirkSets[i], nil
}

// FindDaughter resolves a daughter reference within ks.
func (ks KirkSet) FindDaughter(ref string) (Daughter, error) {
	i, err := findChild(ks.Daughters, ref, daughterID, ErrDaughterNotFound)
	if err != nil {
		return Daughter{}, err
	}
	return ks.Daughters[i], nil
}

// NotePatch carries a partial note update.
type NotePatch struct {
	Type *NoteType
	Resp *string
	Text *string
}

// normalizeResp strips the reference marker; the serializer adds it back.
func normalizeResp(resp string) string {
	return strings.TrimPrefix(strings.TrimSpace(resp), "#")
}

// AddNote appends a note to the entry. The note gets a fresh id; an empty
// type defaults to editorial.
func (s State) AddNote(entryID string, n Note) (State, error) {
	if n.Type == "" {
		n.Type = NoteEditorial
	}
	if !n.Type.Valid() {
		return s, fmt.Errorf("%w: %q", ErrInvalidNoteType, n.Type)
	}
	n.ID = NewID()
	n.Resp = normalizeResp(n.Resp)
	n.Text = normalizeText(n.Text)
	return s.mapEntry(entryID, func(e Entry) (Entry, error) {
		e.Notes = append(e.Notes, n)
		return e, nil
	})
}

// UpdateNote merges patch into a note. Setting the type to NoteNone removes
// the note instead of storing the sentinel.
func (s State) UpdateNote(entryID, noteRef string, patch NotePatch) (State, error) {
	return s.mapEntry(entryID, func(e Entry) (Entry, error) {
		i, err := findChild(e.Notes, noteRef, noteID, ErrNoteNotFound)
		if err != nil {
			return e, err
		}
		if patch.Type != nil && *patch.Type == NoteNone {
			e.Notes = removeAt(e.Notes, i)
			return e, nil
		}
		n := e.Notes[i]
		if patch.Type != nil {
			if !patch.Type.Valid() {
				return e, fmt.Errorf("%w: %q", ErrInvalidNoteType, *patch.Type)
			}
			n.Type = *patch.Type
		}
		if patch.Resp != nil {
			n.Resp = normalizeResp(*patch.Resp)
		}
		setText(&n.Text, patch.Text)
		e.Notes[i] = n
		return e, nil
	})
}

// RemoveNote deletes a note from the entry.
func (s State) RemoveNote(entryID, noteRef string) (State, error) {
	return s.mapEntry(entryID, func(e Entry) (Entry, error) {
		i, err := findChild(e.Notes, noteRef, noteID, ErrNoteNotFound)
		if err != nil {
			return e, err
		}
		e.Notes = removeAt(e.Notes, i)
		return e, nil
	})
}

// SetVariant attaches or replaces the entry's variant form. An existing
// variant keeps its id; a variant without any text clears it.
func (s State) SetVariant(entryID string, v Variant) (State, error) {
	return s.mapEntry(entryID, func(e Entry) (Entry, error) {
		v.Label = normalizeText(v.Label)
		v.Orig = normalizeText(v.Orig)
		v.Norm = normalizeText(v.Norm)
		if v.IsEmpty() {
			e.Variant = nil
			return e, nil
		}
		if e.Variant != nil {
			v.ID = e.Variant.ID
		} else {
			v.ID = NewID()
		}
		e.Variant = &v
		return e, nil
	})
}

// ClearVariant removes the entry's variant form.
func (s State) ClearVariant(entryID string) (State, error) {
	return s.mapEntry(entryID, func(e Entry) (Entry, error) {
		e.Variant = nil
		return e, nil
	})
}

// KirkSetPatch carries a partial KirkSet update.
type KirkSetPatch struct {
	Number     *string
	SourcePage *string
	Headword   *string
}

// AddKirkSet appends a KirkSet to the entry with fresh ids throughout.
func (s State) AddKirkSet(entryID string, ks KirkSet) (State, error) {
	ks = ks.clone(true)
	ks.Number = normalizeText(ks.Number)
	ks.SourcePage = normalizeText(ks.SourcePage)
	ks.Headword = normalizeText(ks.Headword)
	for i := range ks.Daughters {
		ks.Daughters[i].Text = normalizeText(ks.Daughters[i].Text)
	}
	return s.mapEntry(entryID, func(e Entry) (Entry, error) {
		e.KirkSets = append(e.KirkSets, ks)
		return e, nil
	})
}

// UpdateKirkSet merges patch into a KirkSet.
func (s State) UpdateKirkSet(entryID, kirkRef string, patch KirkSetPatch) (State, error) {
	return s.mapKirkSet(entryID, kirkRef, func(ks KirkSet) (KirkSet, error) {
		setText(&ks.Number, patch.Number)
		setText(&ks.SourcePage, patch.SourcePage)
		setText(&ks.Headword, patch.Headword)
		return ks, nil
	})
}

// RemoveKirkSet deletes a KirkSet from the entry.
func (s State) RemoveKirkSet(entryID, kirkRef string) (State, error) {
	return s.mapEntry(entryID, func(e Entry) (Entry, error) {
		i, err := findChild(e.KirkSets, kirkRef, kirkSetID, ErrKirkSetNotFound)
		if err != nil {
			return e, err
		}
		e.KirkSets = removeAt(e.KirkSets, i)
		return e, nil
	})
}

// AddDaughter appends a daughter word to a KirkSet.
func (s State) AddDaughter(entryID, kirkRef string, d Daughter) (State, error) {
	d.ID = NewID()
	d.Text = normalizeText(d.Text)
	return s.mapKirkSet(entryID, kirkRef, func(ks KirkSet) (KirkSet, error) {
		ks.Daughters = append(ks.Daughters, d)
		return ks, nil
	})
}

// UpdateDaughter replaces a daughter word's text and confirmation flag.
func (s State) UpdateDaughter(entryID, kirkRef, daughterRef string, text *string, confirms *bool) (State, error) {
	return s.mapKirkSet(entryID, kirkRef, func(ks KirkSet) (KirkSet, error) {
		i, err := findChild(ks.Daughters, daughterRef, daughterID, ErrDaughterNotFound)
		if err != nil {
			return ks, err
		}
		setText(&ks.Daughters[i].Text, text)
		setFlag(&ks.Daughters[i].Confirms, confirms)
		return ks, nil
	})
}

// RemoveDaughter deletes a daughter word from a KirkSet.
func (s State) RemoveDaughter(entryID, kirkRef, daughterRef string) (State, error) {
	return s.mapKirkSet(entryID, kirkRef, func(ks KirkSet) (KirkSet, error) {
		i, err := findChild(ks.Daughters, daughterRef, daughterID, ErrDaughterNotFound)
		if err != nil {
			return ks, err
		}
		ks.Daughters = removeAt(ks.Daughters, i)
		return ks, nil
	})
}

func (s State) mapKirkSet(entryID, kirkRef string, fn func(KirkSet) (KirkSet, error)) (State, error) {
	return s.mapEntry(entryID, func(e Entry) (Entry, error) {
		i, err := findChild(e.KirkSets, kirkRef, kirkSetID, ErrKirkSetNotFound)
		if err != nil {
			return e, err
		}
		ks, err := fn(e.KirkSets[i])
		if err != nil {
			return e, err
		}
		e.KirkSets[i] = ks
		return e, nil
	})
}

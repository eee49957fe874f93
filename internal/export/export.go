// Package export names and writes rendered transcriptions.
package export

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	goslug "github.com/gosimple/slug"

	"github.com/aidanlsb/scribe/internal/atomicfile"
	"github.com/aidanlsb/scribe/internal/flat"
	"github.com/aidanlsb/scribe/internal/model"
	"github.com/aidanlsb/scribe/internal/tei"
)

// ErrUnknownFormat indicates a format name other than tei or flat.
var ErrUnknownFormat = errors.New("unknown format")

// Format selects a serializer.
type Format string

const (
	FormatTEI  Format = "tei"
	FormatFlat Format = "flat"
)

// Formats returns the supported formats; the first is the default.
func Formats() []Format {
	return []Format{FormatTEI, FormatFlat}
}

// ParseFormat validates a format name. Empty means TEI.
func ParseFormat(s string) (Format, error) {
	switch Format(strings.ToLower(strings.TrimSpace(s))) {
	case "", FormatTEI:
		return FormatTEI, nil
	case FormatFlat:
		return FormatFlat, nil
	}
	return "", fmt.Errorf("%w %q (expected tei or flat)", ErrUnknownFormat, s)
}

// Ext returns the file extension, without the dot.
func (f Format) Ext() string {
	if f == FormatFlat {
		return "txt"
	}
	return "xml"
}

// Render serializes s in format f.
func (f Format) Render(s model.State) string {
	if f == FormatFlat {
		return flat.Serialize(s)
	}
	return tei.Serialize(s)
}

// DefaultName is used when no filename component can be derived.
const DefaultName = "transcription"

var yearPattern = regexp.MustCompile(`\d{4}`)

// Year returns the first four-digit run of the origin date, falling back to
// the publication date: "c.1830s" gives "1830".
func Year(m model.Metadata) string {
	if y := yearPattern.FindString(m.OrigDate); y != "" {
		return y
	}
	return yearPattern.FindString(m.Date)
}

// Surname returns the last word of the author name.
func Surname(author string) string {
	fields := strings.Fields(author)
	if len(fields) == 0 {
		return ""
	}
	return fields[len(fields)-1]
}

// Filename composes {surname}_{keyword}_{year}_{page}.{ext}. Each component
// is slugged; empty components are dropped. The keyword defaults to the
// genre.
func Filename(m model.Metadata, entries []model.Entry, f Format, keyword string) string {
	if strings.TrimSpace(keyword) == "" {
		keyword = m.Genre
	}
	page := ""
	if len(entries) > 0 {
		page = entries[0].Page
	}

	var parts []string
	for _, c := range []string{Surname(m.Author), keyword, Year(m), page} {
		if s := goslug.Make(c); s != "" {
			parts = append(parts, s)
		}
	}
	name := strings.Join(parts, "_")
	if name == "" {
		name = DefaultName
	}
	return name + "." + f.Ext()
}

// Write stores content as dir/name, creating dir when needed, and returns
// the written path.
func Write(dir, name, content string) (string, error) {
	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create export directory: %w", err)
	}
	path := filepath.Join(dir, name)
	if err := atomicfile.WriteFile(path, []byte(content), 0o644); err != nil {
		return "", fmt.Errorf("write %s: %w", path, err)
	}
	return path, nil
}

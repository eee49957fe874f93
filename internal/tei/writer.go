package tei

import (
	"strings"

	"github.com/aidanlsb/scribe/internal/model"
)

type attr struct {
	name  string
	value string
}

var escaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
	"\r", "&#xD;",
)

func escape(s string) string {
	return escaper.Replace(strings.Map(model.XMLChar, s))
}

// writer emits indented XML. Mixed content is never produced: an element
// either holds text (leaf) or child elements (open/close).
type writer struct {
	b     strings.Builder
	depth int
}

func (w *writer) indent() {
	for i := 0; i < w.depth; i++ {
		w.b.WriteString("  ")
	}
}

func (w *writer) raw(line string) {
	w.indent()
	w.b.WriteString(line)
	w.b.WriteByte('\n')
}

func (w *writer) tag(name string, attrs []attr) {
	w.b.WriteByte('<')
	w.b.WriteString(name)
	for _, a := range attrs {
		w.b.WriteByte(' ')
		w.b.WriteString(a.name)
		w.b.WriteString(`="`)
		w.b.WriteString(escape(a.value))
		w.b.WriteByte('"')
	}
}

func (w *writer) open(name string, attrs ...attr) {
	w.indent()
	w.tag(name, attrs)
	w.b.WriteString(">\n")
	w.depth++
}

func (w *writer) close(name string) {
	w.depth--
	w.indent()
	w.b.WriteString("</")
	w.b.WriteString(name)
	w.b.WriteString(">\n")
}

func (w *writer) leaf(name, text string, attrs ...attr) {
	w.indent()
	w.tag(name, attrs)
	w.b.WriteByte('>')
	w.b.WriteString(escape(text))
	w.b.WriteString("</")
	w.b.WriteString(name)
	w.b.WriteString(">\n")
}

// optional writes a leaf only when it has text or is marked uncertain.
func (w *writer) optional(name, text string, uncertain bool, attrs ...attr) {
	if text == "" && !uncertain {
		return
	}
	w.leaf(name, text, certAttrs(uncertain, attrs...)...)
}

func (w *writer) empty(name string, attrs ...attr) {
	w.indent()
	w.tag(name, attrs)
	w.b.WriteString("/>\n")
}

func (w *writer) String() string {
	return w.b.String()
}

// certAttrs returns the uncertainty marker only when the flag is set.
func certAttrs(uncertain bool, attrs ...attr) []attr {
	if uncertain {
		return append(attrs, attr{"cert", "low"})
	}
	return attrs
}

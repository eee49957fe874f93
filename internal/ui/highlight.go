package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

type xmlTokenKind int

const (
	tokText xmlTokenKind = iota
	tokTag
	tokAttrName
	tokAttrValue
	tokMarkup
)

type xmlToken struct {
	kind xmlTokenKind
	text string
}

// HighlightXML colors XML-like text for terminal display: tag names and
// brackets, attribute names, attribute values and text content. It also
// accepts the flat format's pseudo-tags such as <page=12 line=1.1>. The
// concatenated output without styling is always the input.
func HighlightXML(src string) string {
	var b strings.Builder
	for _, tok := range xmlTokens(src) {
		b.WriteString(tokenStyle(tok.kind).Render(tok.text))
	}
	return b.String()
}

func tokenStyle(kind xmlTokenKind) lipgloss.Style {
	switch kind {
	case tokTag:
		return XMLTag
	case tokAttrName:
		return XMLAttrName
	case tokAttrValue:
		return XMLAttrValue
	case tokMarkup:
		return XMLMarkup
	}
	return XMLText
}

func xmlTokens(src string) []xmlToken {
	var out []xmlToken
	emit := func(kind xmlTokenKind, s string) {
		if s == "" {
			return
		}
		// Styles are applied per line so that multi-line text keeps its
		// line structure when rendered.
		lines := strings.SplitAfter(s, "\n")
		for _, l := range lines {
			if l != "" {
				out = append(out, xmlToken{kind, l})
			}
		}
	}

	for len(src) > 0 {
		lt := strings.IndexByte(src, '<')
		if lt < 0 {
			emit(tokText, src)
			break
		}
		emit(tokText, src[:lt])
		src = src[lt:]

		end := tagEnd(src)
		if end < 0 {
			emit(tokText, src)
			break
		}
		tagTokens(src[:end+1], emit)
		src = src[end+1:]
	}
	return out
}

// tagEnd returns the index of the '>' closing the tag at the start of s,
// skipping quoted attribute values.
func tagEnd(s string) int {
	var quote byte
	for i := 1; i < len(s); i++ {
		c := s[i]
		switch {
		case quote != 0:
			if c == quote {
				quote = 0
			}
		case c == '"' || c == '\'':
			quote = c
		case c == '>':
			return i
		case c == '<':
			return -1
		}
	}
	return -1
}

// tagTokens splits one complete tag, from '<' to '>'.
func tagTokens(tag string, emit func(xmlTokenKind, string)) {
	i := 1
	for i < len(tag) && (tag[i] == '/' || tag[i] == '?' || tag[i] == '!') {
		i++
	}
	j := i
	for j < len(tag) && isNameByte(tag[j]) {
		j++
	}
	emit(tokTag, tag[:j])

	body := tag[j : len(tag)-1]
	closer := ">"
	if strings.HasSuffix(body, "/") || strings.HasSuffix(body, "?") {
		closer = body[len(body)-1:] + closer
		body = body[:len(body)-1]
	}

	for len(body) > 0 {
		k := 0
		for k < len(body) && isSpace(body[k]) {
			k++
		}
		emit(tokMarkup, body[:k])
		body = body[k:]

		k = 0
		for k < len(body) && isNameByte(body[k]) {
			k++
		}
		if k == 0 {
			// Pseudo-attributes like "=12" in <page=12 line=1.1>.
			k = 1
			for k < len(body) && !isSpace(body[k]) {
				k++
			}
			emit(tokAttrValue, body[:k])
			body = body[k:]
			continue
		}
		emit(tokAttrName, body[:k])
		body = body[k:]

		if len(body) == 0 || body[0] != '=' {
			continue
		}
		emit(tokMarkup, "=")
		body = body[1:]
		k = valueEnd(body)
		emit(tokAttrValue, body[:k])
		body = body[k:]
	}
	emit(tokTag, closer)
}

func valueEnd(s string) int {
	if len(s) > 0 && (s[0] == '"' || s[0] == '\'') {
		if k := strings.IndexByte(s[1:], s[0]); k >= 0 {
			return k + 2
		}
		return len(s)
	}
	k := 0
	for k < len(s) && !isSpace(s[k]) {
		k++
	}
	return k
}

func isNameByte(c byte) bool {
	return c == ':' || c == '-' || c == '_' || c == '.' ||
		(c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9') || c >= 0x80
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r'
}

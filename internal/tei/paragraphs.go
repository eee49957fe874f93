package tei

import (
	"bytes"
	"slices"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// ParagraphSeparator joins imported <p> blocks back into free text.
const ParagraphSeparator = "\n\n"

// Paragraphs splits free text into blocks at markdown block boundaries.
// A block runs from its first source line to the start of the next block, so
// markers such as "# ", fences, setext underlines and thematic breaks are
// kept. Only whitespace between blocks is dropped.
func Paragraphs(content string) []string {
	if strings.TrimSpace(content) == "" {
		return nil
	}
	src := []byte(content)
	doc := goldmark.New().Parser().Parse(text.NewReader(src))

	bounds := []int{0}
	prevEnd := 0
	for n := doc.FirstChild(); n != nil; n = n.NextSibling() {
		start, stop, ok := blockSpan(n)
		if !ok {
			// Thematic breaks and empty fences carry no lines.
			if at, found := nextParagraphStart(src, prevEnd); found {
				bounds = append(bounds, at)
				prevEnd = at
			}
			continue
		}
		start = lineStart(src, start)
		if _, fenced := n.(*ast.FencedCodeBlock); fenced && start > 0 {
			start = lineStart(src, start-1)
		}
		bounds = append(bounds, start)
		prevEnd = stop
	}
	bounds = append(bounds, len(src))
	slices.Sort(bounds)

	var out []string
	for i := 0; i+1 < len(bounds); i++ {
		if p := strings.TrimSpace(string(src[bounds[i]:bounds[i+1]])); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// blockSpan returns the byte range covered by the lines of n and its block
// descendants.
func blockSpan(n ast.Node) (int, int, bool) {
	start, stop, found := 0, 0, false
	_ = ast.Walk(n, func(c ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		if c.Type() != ast.TypeBlock && c.Type() != ast.TypeDocument {
			return ast.WalkSkipChildren, nil
		}
		lines := c.Lines()
		for i := 0; i < lines.Len(); i++ {
			seg := lines.At(i)
			if !found || seg.Start < start {
				start = seg.Start
			}
			if !found || seg.Stop > stop {
				stop = seg.Stop
			}
			found = true
		}
		return ast.WalkContinue, nil
	})
	return start, stop, found
}

func lineStart(src []byte, offset int) int {
	if offset > len(src) {
		offset = len(src)
	}
	for offset > 0 && src[offset-1] != '\n' {
		offset--
	}
	return offset
}

// nextParagraphStart finds the first non-blank line after a blank line,
// scanning from the line holding offset.
func nextParagraphStart(src []byte, offset int) (int, bool) {
	sawBlank := false
	for i := lineStart(src, offset); i < len(src); {
		next := len(src)
		if j := bytes.IndexByte(src[i:], '\n'); j >= 0 {
			next = i + j + 1
		}
		if len(bytes.TrimSpace(src[i:next])) == 0 {
			sawBlank = true
		} else if sawBlank {
			return i, true
		}
		i = next
	}
	return 0, false
}

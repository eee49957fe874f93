package ui

import (
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/glamour/ansi"
)

// MarkdownRenderMargin is the left margin of rendered cards and guide pages.
const MarkdownRenderMargin = 2

// DefaultCodeTheme is the chroma theme for fenced examples in the guide.
const DefaultCodeTheme = "monokai"

var codeTheme = DefaultCodeTheme

// ConfigureCodeTheme sets the chroma theme. Blank keeps the current one.
func ConfigureCodeTheme(theme string) {
	if t := strings.TrimSpace(theme); t != "" {
		codeTheme = t
	}
}

// RenderMarkdown renders an entry card, the metadata card or a guide page
// for the terminal, ending in exactly one newline.
func RenderMarkdown(content string, width int) (string, error) {
	if width <= 0 {
		width = DefaultTermWidth
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithStyles(cardStyle()),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return "", err
	}
	rendered, err := r.Render(content)
	if err != nil {
		return "", err
	}
	return strings.TrimRight(rendered, "\n") + "\n", nil
}

// cardStyle reuses the terminal palette. Inline code (pages, lines, note
// types) takes the XML tag color and emphasis takes the uncertain color.
func cardStyle() ansi.StyleConfig {
	muted := strPtr("8")
	tag := strPtr(string(XMLTagColor))
	var accent *string
	if color, ok := AccentColor(); ok {
		accent = strPtr(color)
	}

	return ansi.StyleConfig{
		Document: ansi.StyleBlock{
			StylePrimitive: ansi.StylePrimitive{BlockPrefix: "\n", BlockSuffix: "\n"},
			Margin:         uintPtr(MarkdownRenderMargin),
		},
		BlockQuote: ansi.StyleBlock{
			StylePrimitive: ansi.StylePrimitive{Color: muted},
			Indent:         uintPtr(1),
			IndentToken:    strPtr("│ "),
		},
		List: ansi.StyleList{LevelIndent: 2},
		Heading: ansi.StyleBlock{
			StylePrimitive: ansi.StylePrimitive{BlockSuffix: "\n", Color: accent, Bold: boolPtr(true)},
		},
		H1:     ansi.StyleBlock{StylePrimitive: ansi.StylePrimitive{Underline: boolPtr(true)}},
		H2:     ansi.StyleBlock{StylePrimitive: ansi.StylePrimitive{Prefix: "▌ "}},
		H3:     ansi.StyleBlock{StylePrimitive: ansi.StylePrimitive{Color: muted}},
		Emph:   ansi.StylePrimitive{Italic: boolPtr(true), Color: strPtr(string(UncertainColor))},
		Strong: ansi.StylePrimitive{Bold: boolPtr(true)},
		HorizontalRule: ansi.StylePrimitive{
			Color:  muted,
			Format: "\n────────\n",
		},
		Item:        ansi.StylePrimitive{BlockPrefix: "• "},
		Enumeration: ansi.StylePrimitive{BlockPrefix: ". "},
		Code:        ansi.StyleBlock{StylePrimitive: ansi.StylePrimitive{Color: tag}},
		CodeBlock:   ansi.StyleCodeBlock{Theme: codeTheme},
		Table: ansi.StyleTable{
			CenterSeparator: strPtr("┼"),
			ColumnSeparator: strPtr("│"),
			RowSeparator:    strPtr("─"),
		},
	}
}

func boolPtr(v bool) *bool { return &v }

func strPtr(v string) *string { return &v }

func uintPtr(v uint) *uint { return &v }

package ui

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Color palette
// - Default (white/black): primary text
// - Accent (soft purple by default, configurable): highlights, paths
// - Muted (gray): secondary info, row numbers
// - XML preview colors follow the dark preview panel: blue tags, cyan
//   attribute names, amber attribute values

const defaultAccent = "#A78BFA"

// Colors shared by the XML highlighter and the markdown cards.
const (
	XMLTagColor    lipgloss.Color = "#60A5FA"
	UncertainColor lipgloss.Color = "#FBBF24"
)

var accentColor = defaultAccent

var (
	// Accent style for file paths, entry references, highlights
	Accent = lipgloss.NewStyle().Foreground(lipgloss.Color(defaultAccent))

	// Muted style for secondary info, hints, row numbers
	Muted = lipgloss.NewStyle().Foreground(lipgloss.Color("#6C7086"))

	// Bold style for emphasis
	Bold = lipgloss.NewStyle().Bold(true)

	// Uncertain marks a reading flagged as low confidence.
	Uncertain = lipgloss.NewStyle().Foreground(UncertainColor).Italic(true)

	XMLTag       = lipgloss.NewStyle().Foreground(XMLTagColor)
	XMLAttrName  = lipgloss.NewStyle().Foreground(lipgloss.Color("#22D3EE"))
	XMLAttrValue = lipgloss.NewStyle().Foreground(lipgloss.Color("#FCD34D"))
	XMLText      = lipgloss.NewStyle().Foreground(lipgloss.Color("#F1F5F9"))
	XMLMarkup    = lipgloss.NewStyle().Foreground(lipgloss.Color("#CBD5E1"))
)

// ConfigureTheme applies the configured accent color. "none", "off" and
// "default" switch the accent off; invalid values leave the default palette.
func ConfigureTheme(accent string) {
	trimmed := strings.ToLower(strings.TrimSpace(accent))
	switch trimmed {
	case "":
		return
	case "none", "off", "default":
		accentColor = ""
		Accent = lipgloss.NewStyle()
		return
	}
	color, ok := normalizeAccentColor(accent)
	if !ok {
		return
	}
	accentColor = color
	Accent = lipgloss.NewStyle().Foreground(lipgloss.Color(color))
}

// AccentColor returns the active accent color, if any.
func AccentColor() (string, bool) {
	return accentColor, accentColor != ""
}

// normalizeAccentColor accepts ANSI codes 0-255 and #RGB/#RRGGBB hex colors.
func normalizeAccentColor(value string) (string, bool) {
	v := strings.TrimSpace(value)
	switch strings.ToLower(v) {
	case "", "none", "off", "default":
		return "", false
	}
	if strings.HasPrefix(v, "#") {
		hex := strings.ToLower(v[1:])
		if len(hex) == 3 {
			hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
		}
		if len(hex) != 6 {
			return "", false
		}
		if _, err := strconv.ParseUint(hex, 16, 32); err != nil {
			return "", false
		}
		return "#" + hex, true
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 0 || n > 255 {
		return "", false
	}
	return strconv.Itoa(n), true
}

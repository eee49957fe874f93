package ui

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

// Column describes one column of a Table.
type Column struct {
	Header string

	// Ratio is the share of flexible width (0 means fixed at MinWidth).
	Ratio    float64
	MinWidth int
	Style    lipgloss.Style
	Right    bool
}

// Table renders rows sized to the terminal with a minimal border.
type Table struct {
	display *DisplayContext
	columns []Column
	rows    [][]string
}

// NewTable creates a table for the given display and columns.
func NewTable(display *DisplayContext, columns ...Column) *Table {
	return &Table{display: display, columns: columns}
}

// AddRow adds a row; missing cells are left blank.
func (t *Table) AddRow(cells ...string) {
	row := make([]string, len(t.columns))
	copy(row, cells)
	t.rows = append(t.rows, row)
}

// Len returns the number of rows.
func (t *Table) Len() int {
	return len(t.rows)
}

func (t *Table) widths() []int {
	const padding = 2
	widths := make([]int, len(t.columns))
	var ratio float64
	fixed := 0
	for i, c := range t.columns {
		if c.Ratio == 0 {
			widths[i] = c.MinWidth
			fixed += c.MinWidth
		} else {
			ratio += c.Ratio
		}
	}
	available := t.display.AvailableWidth(MarkdownRenderMargin) - fixed - padding*(len(t.columns)-1)
	if available < 0 {
		available = 0
	}
	for i, c := range t.columns {
		if c.Ratio == 0 {
			continue
		}
		w := int(float64(available) * c.Ratio / ratio)
		if w < c.MinWidth {
			w = c.MinWidth
		}
		widths[i] = w
	}
	return widths
}

// Render returns the table, or "" when it has no rows.
func (t *Table) Render() string {
	if len(t.rows) == 0 {
		return ""
	}
	widths := t.widths()
	headers := make([]string, len(t.columns))
	for i, c := range t.columns {
		headers[i] = c.Header
	}

	tbl := table.New().
		Border(lipgloss.NormalBorder()).
		BorderTop(false).
		BorderBottom(false).
		BorderLeft(false).
		BorderRight(false).
		BorderColumn(false).
		BorderHeader(true).
		BorderStyle(Muted).
		Headers(headers...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if col >= len(t.columns) {
				return lipgloss.NewStyle()
			}
			c := t.columns[col]
			style := c.Style
			if row == table.HeaderRow {
				style = Bold
			}
			style = style.Width(widths[col]).MaxHeight(1)
			if c.Right {
				style = style.Align(lipgloss.Right)
			}
			if col < len(t.columns)-1 {
				style = style.PaddingRight(2)
			}
			return style
		}).
		Rows(t.rows...)
	return tbl.Render()
}

// RowNum formats a 1-based row number padded to the width of total.
func RowNum(num, total int) string {
	width := len(fmt.Sprintf("%d", total))
	return fmt.Sprintf("%*d", width, num)
}

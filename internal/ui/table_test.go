package ui

import (
	"strings"
	"testing"
)

func TestTableRender(t *testing.T) {
	t.Parallel()

	tbl := NewTable(NewDisplayContextWithWidth(80),
		Column{Header: "#", MinWidth: 3, Right: true},
		Column{Header: "maz", Ratio: 0.5, MinWidth: 8},
		Column{Header: "spa", Ratio: 0.5, MinWidth: 8},
	)
	if tbl.Render() != "" {
		t.Fatal("empty table should render as empty string")
	}
	tbl.AddRow("1", "Cham", "maíz")
	tbl.AddRow("2", "Nda")

	out := tbl.Render()
	for _, want := range []string{"maz", "spa", "Cham", "maíz", "Nda"} {
		if !strings.Contains(out, want) {
			t.Errorf("table output missing %q:\n%s", want, out)
		}
	}
	if tbl.Len() != 2 {
		t.Errorf("Len() = %d, want 2", tbl.Len())
	}
}

func TestRowNum(t *testing.T) {
	t.Parallel()

	if got := RowNum(3, 120); got != "  3" {
		t.Errorf("RowNum(3, 120) = %q", got)
	}
	if got := RowNum(7, 9); got != "7" {
		t.Errorf("RowNum(7, 9) = %q", got)
	}
}

func TestReading(t *testing.T) {
	t.Parallel()

	if got := Reading("agua", false); got != "agua" {
		t.Errorf("certain reading changed: %q", got)
	}
	if got := Reading("agua", true); !strings.Contains(got, "agua"+SymbolUncertain) {
		t.Errorf("uncertain reading not marked: %q", got)
	}
}

package ui

import (
	"strings"
	"testing"
)

func TestRenderMarkdownNormalizesTrailingNewline(t *testing.T) {
	t.Parallel()

	out, err := RenderMarkdown("# Entry 3\n\n**Cham**: maíz", 80)
	if err != nil {
		t.Fatalf("RenderMarkdown() error = %v", err)
	}
	if !strings.HasSuffix(out, "\n") {
		t.Fatalf("expected rendered markdown to end with newline, got %q", out)
	}
	if strings.HasSuffix(out, "\n\n") {
		t.Fatalf("expected single trailing newline, got %q", out)
	}
	if !strings.Contains(out, "Cham") || !strings.Contains(out, "maíz") {
		t.Fatalf("expected card text in output, got %q", out)
	}
}

func TestRenderMarkdownDefaultsWidthWhenNonPositive(t *testing.T) {
	t.Parallel()

	out, err := RenderMarkdown("hello", 0)
	if err != nil {
		t.Fatalf("RenderMarkdown() error = %v", err)
	}
	if strings.TrimSpace(out) == "" {
		t.Fatalf("expected non-empty rendered output")
	}
}

func TestCardStyleUsesCodeTheme(t *testing.T) {
	orig := codeTheme
	t.Cleanup(func() { codeTheme = orig })

	ConfigureCodeTheme("dracula")
	if got := cardStyle().CodeBlock.Theme; got != "dracula" {
		t.Fatalf("expected code theme dracula, got %q", got)
	}
	ConfigureCodeTheme("  ")
	if got := cardStyle().CodeBlock.Theme; got != "dracula" {
		t.Fatalf("blank theme should be ignored, got %q", got)
	}
}

func TestCardStyleColors(t *testing.T) {
	style := cardStyle()
	if style.Code.Color == nil || *style.Code.Color != string(XMLTagColor) {
		t.Fatalf("inline code should use the XML tag color, got %v", style.Code.Color)
	}
	if style.Emph.Color == nil || *style.Emph.Color != string(UncertainColor) {
		t.Fatalf("emphasis should use the uncertain color, got %v", style.Emph.Color)
	}
}

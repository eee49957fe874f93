package ui

import "testing"

func TestNormalizeAccentColor(t *testing.T) {
	tests := map[string]struct {
		want string
		ok   bool
	}{
		"":         {},
		"off":      {},
		"39":       {"39", true},
		"  244 ":   {"244", true},
		"256":      {},
		"-1":       {},
		"#7AA2F7":  {"#7aa2f7", true},
		"#abc":     {"#aabbcc", true},
		"#abcd":    {},
		"#zzzzzz":  {},
		"lavender": {},
	}
	for in, tt := range tests {
		got, ok := normalizeAccentColor(in)
		if got != tt.want || ok != tt.ok {
			t.Errorf("normalizeAccentColor(%q) = %q, %v; want %q, %v", in, got, ok, tt.want, tt.ok)
		}
	}
}

func TestConfigureTheme(t *testing.T) {
	origAccent, origColor := Accent, accentColor
	t.Cleanup(func() { Accent, accentColor = origAccent, origColor })

	if got, ok := AccentColor(); !ok || got != defaultAccent {
		t.Fatalf("default accent = %q, %v", got, ok)
	}

	ConfigureTheme("#abc")
	if got, _ := AccentColor(); got != "#aabbcc" {
		t.Fatalf("accent = %q, want #aabbcc", got)
	}

	ConfigureTheme("lavender")
	if got, _ := AccentColor(); got != "#aabbcc" {
		t.Fatalf("an invalid accent must keep the previous one, got %q", got)
	}

	ConfigureTheme("")
	if got, _ := AccentColor(); got != "#aabbcc" {
		t.Fatalf("a blank accent must keep the previous one, got %q", got)
	}

	ConfigureTheme("None")
	if _, ok := AccentColor(); ok {
		t.Fatal("none should switch the accent off")
	}
	if cardStyle().Heading.Color != nil {
		t.Fatal("headings should drop the accent color when it is off")
	}
}

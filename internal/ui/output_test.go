package ui

import "testing"

func TestStatusPrefixes(t *testing.T) {
	t.Parallel()

	tests := []struct {
		got  string
		want string
	}{
		{Success("saved"), "✓ saved"},
		{Successf("added entry %d", 3), "✓ added entry 3"},
		{Warning("last entry"), "⚠ last entry"},
		{Warningf("%d notes dropped", 2), "⚠ 2 notes dropped"},
		{Info("nothing to do"), "ℹ nothing to do"},
	}
	for _, tt := range tests {
		if tt.got != tt.want {
			t.Errorf("got %q, want %q", tt.got, tt.want)
		}
	}
}

package cli

import (
	"strings"
	"testing"
)

func TestReadConfirmation(t *testing.T) {
	tests := map[string]bool{
		"y\n":     true,
		" YES \n": true,
		"yes":     true,
		"n\n":     false,
		"\n":      false,
		"":        false,
		"yep\n":   false,
	}
	for in, want := range tests {
		if got := readConfirmation(strings.NewReader(in)); got != want {
			t.Errorf("readConfirmation(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestShouldPromptForConfirm(t *testing.T) {
	prevJSON, prevIn, prevOut := jsonOutput, stdinIsTerminal, stdoutIsTerminal
	t.Cleanup(func() {
		jsonOutput, stdinIsTerminal, stdoutIsTerminal = prevJSON, prevIn, prevOut
	})

	stdinIsTerminal = func() bool { return true }
	stdoutIsTerminal = func() bool { return true }
	jsonOutput = false
	if !shouldPromptForConfirm() {
		t.Fatal("expected prompt on a terminal")
	}

	jsonOutput = true
	if shouldPromptForConfirm() {
		t.Fatal("JSON mode must never prompt")
	}

	jsonOutput = false
	stdinIsTerminal = func() bool { return false }
	if shouldPromptForConfirm() {
		t.Fatal("piped stdin must not prompt")
	}
}

func TestResetWithoutTerminalNeedsYes(t *testing.T) {
	prevJSON, prevIn, prevYes := jsonOutput, stdinIsTerminal, resetYes
	t.Cleanup(func() {
		jsonOutput, stdinIsTerminal, resetYes = prevJSON, prevIn, prevYes
	})
	jsonOutput = true
	resetYes = false
	stdinIsTerminal = func() bool { return false }

	out := captureStdout(t, func() {
		if err := resetCmd.RunE(resetCmd, nil); err != nil {
			t.Fatalf("RunE: %v", err)
		}
	})
	resp := decodeResponse(t, out)
	if resp.OK || resp.Error == nil || resp.Error.Code != ErrConfirmationRequired {
		t.Fatalf("expected CONFIRMATION_REQUIRED, got %s", out)
	}
}

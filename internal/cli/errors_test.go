package cli

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/aidanlsb/scribe/internal/config"
	"github.com/aidanlsb/scribe/internal/export"
	"github.com/aidanlsb/scribe/internal/model"
	"github.com/aidanlsb/scribe/internal/tei"
)

func TestErrorCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"entry", fmt.Errorf("entry %q: %w", "9", model.ErrEntryNotFound), ErrEntryNotFound},
		{"ambiguous", fmt.Errorf("%w: ab", model.ErrAmbiguousRef), ErrRefAmbiguous},
		{"note type", fmt.Errorf("%w: bogus", model.ErrInvalidNoteType), ErrInvalidValue},
		{"layout", model.ErrInvalidLayout, ErrInvalidValue},
		{"format", fmt.Errorf("%w %q", export.ErrUnknownFormat, "pdf"), ErrInvalidValue},
		{"malformed", fmt.Errorf("line 3: %w", tei.ErrMalformed), ErrImportMalformed},
		{"no project", config.ErrNoProject, ErrProjectNotSpecified},
		{"unknown project", fmt.Errorf("%w: %q", config.ErrUnknownProject, "x"), ErrProjectNotFound},
		{"other", errors.New("disk on fire"), ErrInternal},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := errorCode(tt.err); got != tt.want {
				t.Errorf("errorCode(%v) = %q, want %q", tt.err, got, tt.want)
			}
		})
	}
}

func TestFailJSONEnvelope(t *testing.T) {
	prevJSON := jsonOutput
	t.Cleanup(func() { jsonOutput = prevJSON })
	jsonOutput = true

	var ret error
	out := captureStdout(t, func() {
		ret = fail(fmt.Errorf("entry %q: %w", "7", model.ErrEntryNotFound), "Run 'scribe entry list'")
	})
	if ret != nil {
		t.Fatalf("fail in JSON mode should return nil, got %v", ret)
	}

	resp := decodeResponse(t, out)
	if resp.OK || resp.Error == nil {
		t.Fatalf("expected error envelope, got %s", out)
	}
	if resp.Error.Code != ErrEntryNotFound {
		t.Errorf("code = %q, want %q", resp.Error.Code, ErrEntryNotFound)
	}
	if resp.Error.Suggestion != "Run 'scribe entry list'" {
		t.Errorf("suggestion = %q", resp.Error.Suggestion)
	}
}

func TestFailTextModeReturnsError(t *testing.T) {
	prevJSON := jsonOutput
	t.Cleanup(func() { jsonOutput = prevJSON })
	jsonOutput = false

	err := fail(model.ErrNoteNotFound, "")
	if !errors.Is(err, model.ErrNoteNotFound) {
		t.Fatalf("expected wrapped sentinel, got %v", err)
	}
}

func TestHandleErrorTextModeCarriesHint(t *testing.T) {
	prevJSON := jsonOutput
	t.Cleanup(func() { jsonOutput = prevJSON })
	jsonOutput = false

	err := fail(fmt.Errorf("kirk set %q: %w", "4", model.ErrKirkSetNotFound), "Run 'scribe entry show 1'")
	if !errors.Is(err, model.ErrKirkSetNotFound) {
		t.Fatalf("hint must keep the sentinel reachable, got %v", err)
	}
	if !strings.Contains(err.Error(), "scribe entry show 1") {
		t.Errorf("expected suggestion in message, got %q", err.Error())
	}
}

package cli

import (
	"errors"

	"github.com/aidanlsb/scribe/internal/config"
	"github.com/aidanlsb/scribe/internal/export"
	"github.com/aidanlsb/scribe/internal/model"
	"github.com/aidanlsb/scribe/internal/session"
	"github.com/aidanlsb/scribe/internal/store"
	"github.com/aidanlsb/scribe/internal/tei"
)

// Error codes for structured error responses.
// These codes are stable and can be relied upon by scripts.
const (
	// Project errors
	ErrProjectNotFound     = "PROJECT_NOT_FOUND"
	ErrProjectNotSpecified = "PROJECT_NOT_SPECIFIED"
	ErrConfigInvalid       = "CONFIG_INVALID"
	ErrSessionBusy         = "SESSION_BUSY"

	// Reference errors
	ErrEntryNotFound    = "ENTRY_NOT_FOUND"
	ErrRefAmbiguous     = "REF_AMBIGUOUS"
	ErrNoteNotFound     = "NOTE_NOT_FOUND"
	ErrKirkSetNotFound  = "KIRK_SET_NOT_FOUND"
	ErrDaughterNotFound = "DAUGHTER_NOT_FOUND"

	// Validation errors
	ErrUnknownField = "UNKNOWN_FIELD"
	ErrInvalidValue = "INVALID_VALUE"

	// File errors
	ErrFileReadError   = "FILE_READ_ERROR"
	ErrFileWriteError  = "FILE_WRITE_ERROR"
	ErrImportMalformed = "IMPORT_MALFORMED"

	// Database errors
	ErrDatabaseError = "DATABASE_ERROR"

	// Input errors
	ErrInvalidInput         = "INVALID_INPUT"
	ErrMissingArgument      = "MISSING_ARGUMENT"
	ErrConfirmationRequired = "CONFIRMATION_REQUIRED"

	// General errors
	ErrInternal = "INTERNAL_ERROR"
)

// Warning codes for non-fatal issues.
const (
	WarnLastEntry = "LAST_ENTRY"
	WarnNoChange  = "NO_CHANGE"
	WarnNoEffect  = "NO_EFFECT"
)

var errorCodes = []struct {
	target error
	code   string
}{
	{model.ErrEntryNotFound, ErrEntryNotFound},
	{model.ErrAmbiguousRef, ErrRefAmbiguous},
	{model.ErrNoteNotFound, ErrNoteNotFound},
	{model.ErrKirkSetNotFound, ErrKirkSetNotFound},
	{model.ErrDaughterNotFound, ErrDaughterNotFound},
	{model.ErrUnknownField, ErrUnknownField},
	{model.ErrInvalidLayout, ErrInvalidValue},
	{model.ErrInvalidNoteType, ErrInvalidValue},
	{export.ErrUnknownFormat, ErrInvalidValue},
	{tei.ErrMalformed, ErrImportMalformed},
	{session.ErrSessionBusy, ErrSessionBusy},
	{store.ErrNotFound, ErrDatabaseError},
	{config.ErrNoProject, ErrProjectNotSpecified},
	{config.ErrUnknownProject, ErrProjectNotFound},
}

// errorCode maps a wrapped sentinel error to its stable code.
func errorCode(err error) string {
	for _, ec := range errorCodes {
		if errors.Is(err, ec.target) {
			return ec.code
		}
	}
	return ErrInternal
}

package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/aidanlsb/scribe/internal/ui"
)

// jsonOutput is set by --json.
var jsonOutput bool

// Response is the envelope every command prints in JSON mode.
type Response struct {
	OK       bool        `json:"ok"`
	Data     interface{} `json:"data,omitempty"`
	Error    *ErrorInfo  `json:"error,omitempty"`
	Warnings []Warning   `json:"warnings,omitempty"`
	Meta     *Meta       `json:"meta,omitempty"`
}

// ErrorInfo describes a failed command.
type ErrorInfo struct {
	Code       string `json:"code"`
	Message    string `json:"message"`
	Suggestion string `json:"suggestion,omitempty"`
}

// Warning is a non-fatal condition on a successful command, such as a
// refused removal.
type Warning struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Ref     string `json:"ref,omitempty"`
}

// Meta carries list sizes.
type Meta struct {
	Count int `json:"count,omitempty"`
}

func newWarning(code, ref, format string, args ...any) Warning {
	return Warning{Code: code, Message: fmt.Sprintf(format, args...), Ref: ref}
}

func isJSONOutput() bool {
	return jsonOutput
}

func outputJSON(resp Response) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	_ = enc.Encode(resp)
}

// outputSuccess prints a success envelope.
func outputSuccess(data interface{}, meta *Meta, warnings ...Warning) {
	outputJSON(Response{OK: true, Data: data, Warnings: warnings, Meta: meta})
}

func outputError(code, message, suggestion string) {
	outputJSON(Response{
		Error: &ErrorInfo{Code: code, Message: message, Suggestion: suggestion},
	})
}

// hintedError appends a suggestion to the message cobra prints in text mode.
type hintedError struct {
	err  error
	hint string
}

func (e *hintedError) Error() string {
	return e.err.Error() + "\n" + ui.Hint(e.hint)
}

func (e *hintedError) Unwrap() error {
	return e.err
}

func withHint(err error, suggestion string) error {
	if suggestion == "" {
		return err
	}
	return &hintedError{err: err, hint: suggestion}
}

// handleError reports err under code. JSON mode prints the envelope and
// returns nil so cobra stays quiet; text mode hands err back to cobra.
func handleError(code string, err error, suggestion string) error {
	if jsonOutput {
		outputError(code, err.Error(), suggestion)
		return nil
	}
	return withHint(err, suggestion)
}

// handleErrorMsg is handleError for failures without an underlying error.
func handleErrorMsg(code, message, suggestion string) error {
	return handleError(code, errors.New(message), suggestion)
}

// fail reports err under the code its sentinel maps to.
func fail(err error, suggestion string) error {
	return handleError(errorCode(err), err, suggestion)
}

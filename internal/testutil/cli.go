package testutil

import (
	"bytes"
	"encoding/json"
	"errors"
	"os/exec"
	"strings"
	"testing"
)

// CLIResult is one scribe invocation: the decoded JSON envelope plus the
// raw streams and exit code.
type CLIResult struct {
	OK       bool                   `json:"ok"`
	Data     map[string]interface{} `json:"data,omitempty"`
	Error    *CLIError              `json:"error,omitempty"`
	Warnings []CLIWarning           `json:"warnings,omitempty"`
	Meta     *CLIMeta               `json:"meta,omitempty"`

	RawJSON  string `json:"-"`
	Stderr   string `json:"-"`
	ExitCode int    `json:"-"`
}

// CLIError is the error member of a failed envelope.
type CLIError struct {
	Code       string `json:"code"`
	Message    string `json:"message"`
	Suggestion string `json:"suggestion,omitempty"`
}

// CLIWarning is one entry of the warnings member.
type CLIWarning struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Ref     string `json:"ref,omitempty"`
}

// CLIMeta is the meta member.
type CLIMeta struct {
	Count int `json:"count,omitempty"`
}

// ParseErrorCode marks output that was not a JSON envelope.
const ParseErrorCode = "PARSE_ERROR"

// RunCLI runs scribe against the project with --json and the project's
// isolated config and state files.
func (p *TestProject) RunCLI(args ...string) *CLIResult {
	p.t.Helper()
	return p.run("", args...)
}

// RunCLIWithStdin is RunCLI with stdin attached.
func (p *TestProject) RunCLIWithStdin(stdin string, args ...string) *CLIResult {
	p.t.Helper()
	return p.run(stdin, args...)
}

func (p *TestProject) run(stdin string, args ...string) *CLIResult {
	p.t.Helper()

	argv := append([]string{
		"--project-path", p.Path,
		"--config", p.ConfigPath(),
		"--state", p.StatePath(),
		"--json",
	}, args...)

	cmd := exec.Command(BuildCLI(p.t), argv...)
	cmd.Dir = p.Path
	if stdin != "" {
		cmd.Stdin = strings.NewReader(stdin)
	}
	// Logs go to stderr; only stdout carries the envelope.
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	runErr := cmd.Run()

	result := &CLIResult{}
	if err := json.Unmarshal(stdout.Bytes(), result); err != nil {
		result = &CLIResult{Error: &CLIError{
			Code:    ParseErrorCode,
			Message: "output is not a JSON envelope: " + err.Error(),
		}}
	}
	result.RawJSON = stdout.String()
	result.Stderr = stderr.String()

	var exitErr *exec.ExitError
	switch {
	case runErr == nil:
	case errors.As(runErr, &exitErr):
		result.ExitCode = exitErr.ExitCode()
	default:
		result.ExitCode = -1
	}
	return result
}

func (r *CLIResult) describeError() string {
	if r.Error == nil {
		return "no error member"
	}
	return r.Error.Code + ": " + r.Error.Message
}

// MustSucceed stops the test unless the envelope reports ok.
func (r *CLIResult) MustSucceed(t *testing.T) *CLIResult {
	t.Helper()
	if !r.OK {
		t.Fatalf("expected success, got %s\nstdout: %s\nstderr: %s", r.describeError(), r.RawJSON, r.Stderr)
	}
	return r
}

// MustFail stops the test unless the command failed with code.
func (r *CLIResult) MustFail(t *testing.T, code string) *CLIResult {
	t.Helper()
	switch {
	case r.OK:
		t.Fatalf("expected failure %s, but the command succeeded\nstdout: %s", code, r.RawJSON)
	case r.Error == nil || r.Error.Code != code:
		t.Fatalf("expected failure %s, got %s\nstdout: %s", code, r.describeError(), r.RawJSON)
	}
	return r
}

func dataValue[T any](r *CLIResult, key string) T {
	var zero T
	if r.Data == nil {
		return zero
	}
	v, ok := r.Data[key].(T)
	if !ok {
		return zero
	}
	return v
}

// DataList returns data[key] as a list.
func (r *CLIResult) DataList(key string) []interface{} {
	return dataValue[[]interface{}](r, key)
}

// DataString returns data[key] as a string.
func (r *CLIResult) DataString(key string) string {
	return dataValue[string](r, key)
}

// DataMap returns data[key] as an object.
func (r *CLIResult) DataMap(key string) map[string]interface{} {
	return dataValue[map[string]interface{}](r, key)
}

// DataBool returns data[key] as a bool.
func (r *CLIResult) DataBool(key string) bool {
	return dataValue[bool](r, key)
}

// DataInt returns the JSON number data[key] as an int.
func (r *CLIResult) DataInt(key string) int {
	return int(dataValue[float64](r, key))
}

package ui

import "fmt"

// Status symbols prefixed to one-line command results.
const (
	SymbolSuccess   = "✓"
	SymbolWarning   = "⚠"
	SymbolInfo      = "ℹ"
	SymbolUncertain = "?"
)

// Success prefixes msg with the success mark.
func Success(msg string) string {
	return SymbolSuccess + " " + msg
}

// Successf is Success with fmt formatting.
func Successf(format string, args ...any) string {
	return Success(fmt.Sprintf(format, args...))
}

// Warning prefixes msg with the warning mark.
func Warning(msg string) string {
	return SymbolWarning + " " + msg
}

// Warningf is Warning with fmt formatting.
func Warningf(format string, args ...any) string {
	return Warning(fmt.Sprintf(format, args...))
}

// Info prefixes msg with the info mark.
func Info(msg string) string {
	return SymbolInfo + " " + msg
}

// FilePath styles a path or entry reference.
func FilePath(path string) string {
	return Accent.Render(path)
}

// Hint styles secondary text such as suggestions.
func Hint(msg string) string {
	return Muted.Render(msg)
}

// Reading renders a transcribed value, marking it when flagged uncertain.
func Reading(text string, uncertain bool) string {
	if !uncertain {
		return text
	}
	return Uncertain.Render(text + SymbolUncertain)
}

// Count renders "(1 entry)" or "(3 entries)".
func Count(n int, singular, plural string) string {
	noun := plural
	if n == 1 {
		noun = singular
	}
	return fmt.Sprintf("(%d %s)", n, noun)
}

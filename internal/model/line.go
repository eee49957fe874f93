package model

import (
	"strconv"
	"strings"
)

// NextLine derives the line number for an appended entry by bumping the
// integer part and keeping any fractional suffix: "1.1" -> "2.1", "7" -> "8".
// Unparseable input yields DefaultLine.
func NextLine(line string) string {
	line = strings.TrimSpace(line)
	head, tail, hasTail := strings.Cut(line, ".")
	n, err := strconv.Atoi(head)
	if err != nil || n < 0 {
		return DefaultLine
	}
	next := strconv.Itoa(n + 1)
	if hasTail {
		return next + "." + tail
	}
	return next
}

// SubLine derives the line number for a duplicated entry by bumping the last
// dotted component: "1.1" -> "1.2", "1.9" -> "1.10". A line without a
// fractional part gains one ("3" -> "3.1").
func SubLine(line string) string {
	line = strings.TrimSpace(line)
	if line == "" {
		return DefaultLine
	}
	idx := strings.LastIndex(line, ".")
	if idx < 0 {
		return line + ".1"
	}
	n, err := strconv.Atoi(line[idx+1:])
	if err != nil || n < 0 {
		return line + ".1"
	}
	return line[:idx+1] + strconv.Itoa(n+1)
}

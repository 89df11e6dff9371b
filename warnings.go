package vellum

import (
	"fmt"
	"strings"
)

// Warning describes a non-fatal problem encountered while composing a
// drawing, such as a unit conversion that could not be applied. The
// result is still produced; the warning explains what was skipped or
// assumed.
type Warning struct {
	// Op is the composer operation that raised the warning.
	Op string
	// Message is a human-readable description.
	Message string
}

// String returns the warning as "op: message".
func (w Warning) String() string {
	if w.Op == "" {
		return w.Message
	}
	return w.Op + ": " + w.Message
}

func warnf(op, format string, args ...any) Warning {
	return Warning{Op: op, Message: fmt.Sprintf(format, args...)}
}

// FormatWarnings renders a slice of warnings as a single multi-line
// string for logging or display. It returns "" for an empty slice.
func FormatWarnings(warnings []Warning) string {
	if len(warnings) == 0 {
		return ""
	}
	var b strings.Builder
	for i, w := range warnings {
		if i > 0 {
			b.WriteByte('\n')
		}
		b.WriteString("warning: ")
		b.WriteString(w.String())
	}
	return b.String()
}

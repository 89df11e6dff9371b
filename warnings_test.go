package vellum

import (
	"strings"
	"testing"
)

func TestWarningString(t *testing.T) {
	w := Warning{Op: "select", Message: `no child drawing "axle"`}
	if got := w.String(); got != `select: no child drawing "axle"` {
		t.Errorf("String() = %q", got)
	}

	w = Warning{Message: "bare message"}
	if got := w.String(); got != "bare message" {
		t.Errorf("String() without op = %q", got)
	}
}

func TestFormatWarnings(t *testing.T) {
	if got := FormatWarnings(nil); got != "" {
		t.Errorf("FormatWarnings(nil) = %q, want empty", got)
	}

	warnings := []Warning{
		{Op: "convert-units", Message: "unknown units \"parsec\""},
		{Op: "select", Message: "no child drawing \"axle\""},
	}
	got := FormatWarnings(warnings)
	lines := strings.Split(got, "\n")
	if len(lines) != 2 {
		t.Fatalf("FormatWarnings produced %d lines: %q", len(lines), got)
	}
	for i, line := range lines {
		if !strings.HasPrefix(line, "warning: ") {
			t.Errorf("line %d = %q, want warning prefix", i, line)
		}
	}
	if !strings.Contains(lines[1], "axle") {
		t.Errorf("second line = %q", lines[1])
	}
}

func TestWarnf(t *testing.T) {
	w := warnf("rotate", "angle %v out of range", 370.0)
	if w.Op != "rotate" {
		t.Errorf("Op = %q", w.Op)
	}
	if w.Message != "angle 370 out of range" {
		t.Errorf("Message = %q", w.Message)
	}
}

package util

import (
	"bytes"
	"strings"
	"testing"
)

func TestLogger_Prefixes(t *testing.T) {
	var buf bytes.Buffer
	l := NewLogger(3)
	l.SetOutput(&buf)
	l.timestamps = false

	l.Error("e")
	l.Warn("w")
	l.Info("i")
	l.Verbose("v")
	l.Debug("d")

	want := "error: e\nwarning: w\ndebug1: i\ndebug2: v\ndebug3: d\n"
	if got := buf.String(); got != want {
		t.Errorf("output = %q, want %q", got, want)
	}
}

func TestLogger_Thresholds(t *testing.T) {
	// How many of {Error, Info, Verbose, Debug} survive each verbosity.
	tests := []struct {
		verbosity int
		wantLines int
	}{
		{0, 1}, // errors only
		{1, 2},
		{2, 3},
		{3, 4},
	}

	for _, tt := range tests {
		t.Run(string(rune('0'+tt.verbosity)), func(t *testing.T) {
			var buf bytes.Buffer
			l := NewLogger(tt.verbosity)
			l.SetOutput(&buf)

			l.Error("e")
			l.Info("i")
			l.Verbose("v")
			l.Debug("d")

			got := strings.Count(buf.String(), "\n")
			if got != tt.wantLines {
				t.Errorf("verbosity %d: got %d lines, want %d:\n%s",
					tt.verbosity, got, tt.wantLines, buf.String())
			}
		})
	}
}

func TestLogger_Timestamps(t *testing.T) {
	// Debug verbosity turns timestamp prefixes on automatically;
	// anything quieter keeps the bare prefix.
	var buf bytes.Buffer
	l := NewLogger(3)
	l.SetOutput(&buf)

	l.Info("test")

	// "HH:MM:SS.mmm debug1: test"
	if got := buf.String(); !strings.Contains(got, " debug1: test") || strings.HasPrefix(got, "debug1:") {
		t.Errorf("expected timestamp prefix, got %q", got)
	}

	buf.Reset()
	n := NewLogger(1)
	n.SetOutput(&buf)

	n.Info("test")

	if !strings.HasPrefix(buf.String(), "debug1: ") {
		t.Errorf("expected bare prefix at normal verbosity, got %q", buf.String())
	}
}

func TestLogger_Formatting(t *testing.T) {
	var buf bytes.Buffer
	l := NewLogger(1)
	l.SetOutput(&buf)

	l.Info("connecting to %s:%d", "example.com", 22)

	want := "debug1: connecting to example.com:22\n"
	if got := buf.String(); got != want {
		t.Errorf("output = %q, want %q", got, want)
	}
}

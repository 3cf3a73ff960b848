package cli

import (
	"bytes"
	"strings"
	"testing"
)

// captureStatus redirects status output for the duration of the test.
func captureStatus(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	prev := stdout
	stdout = &buf
	t.Cleanup(func() { stdout = prev })
	return &buf
}

func TestPrintStats(t *testing.T) {
	tests := []struct {
		name   string
		cached bool
		want   string
	}{
		{"fresh", false, "fresh"},
		{"cached", true, "cached"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := captureStatus(t)
			printStats(5, 2, tt.cached)
			out := buf.String()
			for _, want := range []string{"5 taxa", "2 reticulations", tt.want} {
				if !strings.Contains(out, want) {
					t.Errorf("printStats output %q lacks %q", out, want)
				}
			}
		})
	}
}

func TestPrintOrder(t *testing.T) {
	buf := captureStatus(t)
	printOrder("left", []string{"A", "B", "C"})
	if !strings.Contains(buf.String(), "A, B, C") {
		t.Errorf("printOrder output %q", buf.String())
	}
}

func TestTanglegramReport(t *testing.T) {
	buf := captureStatus(t)
	left := writeInput(t, "left.nwk", "((A,B),(C,D));")
	right := writeInput(t, "right.nwk", "((D,C),(B,A));")

	_, err := execute(t, "tanglegram", "--no-cache", "--fast", left, right)
	if err != nil {
		t.Fatalf("tanglegram: %v", err)
	}
	for _, want := range []string{"crossings", "left", "right", "fresh"} {
		if !strings.Contains(buf.String(), want) {
			t.Errorf("report %q lacks %q", buf.String(), want)
		}
	}
}

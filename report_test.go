package main

import (
	"bytes"
	"testing"
)

func TestStyleFor(t *testing.T) {
	var buf bytes.Buffer
	if styleFor(&buf, false).color {
		t.Error("styleFor() colors a non-terminal writer")
	}
}

func TestStylePlain(t *testing.T) {
	var s style
	if got := s.verdict(true); got != "  pass" {
		t.Errorf("verdict(true) = %q, want %q", got, "  pass")
	}
	if got := s.verdict(false); got != "  FAIL" {
		t.Errorf("verdict(false) = %q, want %q", got, "  FAIL")
	}
	if got := s.diffLine("-old"); got != "-old" {
		t.Errorf("diffLine() = %q, want unchanged", got)
	}
}

func TestStyleColor(t *testing.T) {
	s := style{color: true}
	tests := []struct {
		line string
		want string
	}{
		{"--- gold.wfnoj.xml", "--- gold.wfnoj.xml"},
		{"+++ test.wfnoj.xml", "+++ test.wfnoj.xml"},
		{"@@ -1,3 +1,3 @@", colorCyan + "@@ -1,3 +1,3 @@" + colorReset},
		{"-<a/>", colorRed + "-<a/>" + colorReset},
		{"+<b/>", colorGreen + "+<b/>" + colorReset},
		{" <c/>", " <c/>"},
	}

	for _, tt := range tests {
		if got := s.diffLine(tt.line); got != tt.want {
			t.Errorf("diffLine(%q) = %q, want %q", tt.line, got, tt.want)
		}
	}
	if got := s.verdict(false); got != colorRed+"  FAIL"+colorReset {
		t.Errorf("verdict(false) = %q", got)
	}
}

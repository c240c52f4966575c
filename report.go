package main

import (
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

// ANSI escape codes
const (
	colorReset = "\033[0m"
	colorRed   = "\033[31m"
	colorGreen = "\033[32m"
	colorCyan  = "\033[36m"
)

// style decorates report lines. The zero value prints plain text.
type style struct {
	color bool
}

// styleFor colors output only when w is a terminal.
func styleFor(w io.Writer, noColor bool) style {
	if noColor {
		return style{}
	}
	if file, ok := w.(*os.File); ok && term.IsTerminal(int(file.Fd())) {
		return style{color: true}
	}
	return style{}
}

func (s style) paint(code, text string) string {
	if !s.color {
		return text
	}
	return code + text + colorReset
}

// verdict is the per-test summary line.
func (s style) verdict(ok bool) string {
	if ok {
		return s.paint(colorGreen, "  pass")
	}
	return s.paint(colorRed, "  FAIL")
}

func (s style) diffLine(line string) string {
	switch {
	case strings.HasPrefix(line, "+++"), strings.HasPrefix(line, "---"):
		return line
	case strings.HasPrefix(line, "@@"):
		return s.paint(colorCyan, line)
	case strings.HasPrefix(line, "+"):
		return s.paint(colorGreen, line)
	case strings.HasPrefix(line, "-"):
		return s.paint(colorRed, line)
	}
	return line
}

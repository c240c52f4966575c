package main

import (
	"os"
	"path/filepath"
	"strings"
)

// Mode selects the converter input format for a test directory.
type Mode int

const (
	ModeGamess Mode = iota
	ModeGeneric
	ModeDirac
	ModeRMG
)

func (m Mode) String() string {
	switch m {
	case ModeGamess:
		return "gamess"
	case ModeGeneric:
		return "generic"
	case ModeDirac:
		return "dirac"
	case ModeRMG:
		return "rmg"
	default:
		return "unknown"
	}
}

// dirac runs pin the target state; the converter otherwise picks the ground state
const diracTargetState = "14"

// classifyMode inspects a test directory and decides which converter mode
// applies. The checks run in order and the first match wins.
func classifyMode(dir string) Mode {
	if fileExists(filepath.Join(dir, "orbitals")) {
		return ModeGeneric
	}

	name := testName(dir)
	switch {
	case strings.Contains(name, "dirac"):
		return ModeDirac
	case strings.Contains(name, "rmg"):
		return ModeRMG
	}
	return ModeGamess
}

// inputPattern is the glob used to find the converter input in a test directory.
func (m Mode) inputPattern() string {
	switch m {
	case ModeGeneric, ModeRMG:
		return "*.h5"
	default:
		return "*.out"
	}
}

// converterFlags returns the mode selection flags followed by the input file.
func (m Mode) converterFlags(input string) []string {
	switch m {
	case ModeGeneric:
		return []string{"-orbitals", input}
	case ModeDirac:
		return []string{"-TargetState", diracTargetState, "-dirac", input}
	case ModeRMG:
		return []string{"-rmg", input}
	default:
		return []string{"-gamess", input}
	}
}

// testName is the last path element of the test directory.
func testName(dir string) string {
	if abs, err := filepath.Abs(dir); err == nil {
		dir = abs
	}
	return filepath.Base(filepath.Clean(dir))
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

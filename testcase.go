package main

import (
	"fmt"
	"os"
	"path/filepath"
)

const (
	expectFailFile = "expect_fail.txt"
	goldTextFile   = "gold.wfnoj.xml"
	goldHDF5File   = "gold.orbs.h5"
	testHDF5File   = "test.orbs.h5"
	outputPrefix   = "test"
)

// TestCase is everything needed to run the converter once for a test directory.
type TestCase struct {
	Name       string
	Dir        string
	Mode       Mode
	Input      string // base name, relative to Dir
	ExpectFail bool
	ExtraArgs  []string
	GoldFile   string // empty when ExpectFail
}

// SetupError reports a test directory that cannot be run as laid out.
type SetupError struct {
	Msg string
}

func (e *SetupError) Error() string { return e.Msg }

// loadTestCase inspects dir and builds its TestCase.
func loadTestCase(dir string) (*TestCase, error) {
	tc := &TestCase{
		Name: testName(dir),
		Dir:  dir,
		Mode: classifyMode(dir),
	}

	input, err := findInput(dir, tc.Mode)
	if err != nil {
		return nil, err
	}
	tc.Input = input

	if tc.ExtraArgs, err = readExtraArgs(dir); err != nil {
		return nil, err
	}

	tc.ExpectFail = fileExists(filepath.Join(dir, expectFailFile))
	if !tc.ExpectFail {
		tc.GoldFile = goldTextFile
		if !fileExists(tc.path(tc.GoldFile)) {
			return nil, &SetupError{Msg: "Gold file missing"}
		}
	}
	return tc, nil
}

// findInput returns the single converter input matching the mode's pattern.
func findInput(dir string, mode Mode) (string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return "", fmt.Errorf("failed to read test directory: %w", err)
	}

	// match names only; dir itself may contain glob metacharacters
	var matches []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		ok, err := filepath.Match(mode.inputPattern(), e.Name())
		if err != nil {
			return "", fmt.Errorf("bad input pattern %q: %w", mode.inputPattern(), err)
		}
		if ok {
			matches = append(matches, e.Name())
		}
	}
	if len(matches) != 1 {
		return "", &SetupError{Msg: fmt.Sprintf("Unexpected number of input files (should be 1): %d", len(matches))}
	}
	return matches[0], nil
}

// path resolves a file name relative to the test directory.
func (tc *TestCase) path(name string) string {
	return filepath.Join(tc.Dir, name)
}

// usesHDF5 reports whether the produced orbitals are checked with h5diff
// instead of the text comparison.
func (tc *TestCase) usesHDF5() bool {
	if tc.Mode == ModeDirac {
		return true
	}
	return tc.Mode != ModeGeneric && wantsHDF5(tc.ExtraArgs)
}

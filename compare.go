package main

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/pmezard/go-difflib/difflib"
)

const (
	defaultDiffLines = 200
	defaultTolerance = 1e-6
	diffContext      = 3
	truncatedNotice  = "< diff truncated due to line limit >"
)

// testFileFor derives the produced file name from a golden file name.
func testFileFor(gold string) string {
	dir, base := filepath.Split(gold)
	return dir + strings.ReplaceAll(base, "gold", outputPrefix)
}

// filesEqual reports whether two files have identical contents.
func filesEqual(a, b string) (bool, error) {
	da, err := os.ReadFile(a)
	if err != nil {
		return false, err
	}
	db, err := os.ReadFile(b)
	if err != nil {
		return false, err
	}
	return bytes.Equal(da, db), nil
}

// unifiedDiff returns the line-oriented unified diff between two texts,
// one element per output line.
func unifiedDiff(fromName, toName string, from, to []byte) ([]string, error) {
	text, err := difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        splitLines(from),
		B:        splitLines(to),
		FromFile: fromName,
		ToFile:   toName,
		Context:  diffContext,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to diff %s and %s: %w", fromName, toName, err)
	}
	if text == "" {
		return nil, nil
	}
	return strings.SplitAfter(strings.TrimSuffix(text, "\n"), "\n"), nil
}

// splitLines splits text into lines that keep their "\n". A final line
// without a newline is kept as is and no empty line is added after it.
func splitLines(text []byte) []string {
	lines := strings.SplitAfter(string(text), "\n")
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}

// writeDiff prints at most limit diff lines, then a truncation notice if
// lines were dropped.
func writeDiff(w io.Writer, st style, lines []string, limit int) {
	for i, line := range lines {
		if i >= limit {
			fmt.Fprintln(w, truncatedNotice)
			return
		}
		line = strings.TrimSuffix(line, "\n")
		fmt.Fprintln(w, st.diffLine(line))
	}
}

// compareText checks the golden file against the produced file, both named
// relative to dir. On mismatch the unified diff is printed to w.
func compareText(w io.Writer, st style, dir, gold, test string, limit int) (bool, error) {
	goldPath := filepath.Join(dir, gold)
	testPath := filepath.Join(dir, test)

	if !fileExists(testPath) {
		fmt.Fprintln(w, "Test file missing:", test)
		return false, nil
	}

	equal, err := filesEqual(goldPath, testPath)
	if err != nil {
		return false, fmt.Errorf("failed to compare %s: %w", gold, err)
	}
	if equal {
		return true, nil
	}

	fmt.Fprintln(w, "Gold file comparison failed")

	goldData, err := os.ReadFile(goldPath)
	if err != nil {
		return false, err
	}
	testData, err := os.ReadFile(testPath)
	if err != nil {
		return false, err
	}
	lines, err := unifiedDiff(gold, test, goldData, testData)
	if err != nil {
		return false, err
	}
	writeDiff(w, st, lines, limit)
	return false, nil
}

// formatTolerance prints the tolerance the way h5diff expects it, without
// an exponent (1e-6 becomes 0.000001).
func formatTolerance(tol float64) string {
	return strconv.FormatFloat(tol, 'f', -1, 64)
}

// compareHDF5 runs h5diff on the golden and produced orbital files in dir.
func compareHDF5(ctx context.Context, runner CommandRunner, h5diff, dir string, tol float64) (bool, *Result, error) {
	argv := append(splitCommand(h5diff), "-d", formatTolerance(tol), goldHDF5File, testHDF5File)
	res, err := runner.Run(ctx, dir, argv)
	if err != nil {
		return false, res, err
	}
	return res.ExitCode == 0, res, nil
}

package main

import (
	"bufio"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

const extraArgsFile = "cmd_args.txt"

// readExtraArgs reads the optional cmd_args.txt sidecar in dir.
// One argument per line; lines starting with '#' and blank lines are skipped.
func readExtraArgs(dir string) ([]string, error) {
	f, err := os.Open(filepath.Join(dir, extraArgsFile))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", extraArgsFile, err)
	}
	defer f.Close()

	var args []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		args = append(args, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading %s: %w", extraArgsFile, err)
	}
	return args, nil
}

// expandExtraArgs turns the pseudo-flags -ci and -multidet into flags that
// take the converter input as their value. Other arguments pass through.
func expandExtraArgs(extra []string, input string) []string {
	out := make([]string, 0, len(extra))
	for _, arg := range extra {
		switch arg {
		case "-ci", "-multidet":
			out = append(out, arg, input)
		default:
			out = append(out, arg)
		}
	}
	return out
}

// wantsHDF5 reports whether the extra arguments ask for HDF5 orbital output.
func wantsHDF5(extra []string) bool {
	for _, arg := range extra {
		if arg == "-hdf5" {
			return true
		}
	}
	return false
}

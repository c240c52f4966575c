package main

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

const (
	stdoutFile = "stdout.txt"
	stderrFile = "stderr.txt"
)

// Result is the captured outcome of one external process.
type Result struct {
	ExitCode int
	Stdout   string
	Stderr   string
}

// CommandRunner runs an external program inside a directory.
// A nonzero exit status is reported in the Result, not as an error.
type CommandRunner interface {
	Run(ctx context.Context, dir string, argv []string) (*Result, error)
}

// execRunner runs commands with os/exec. The process runs to completion;
// only ctx cancellation stops it early.
type execRunner struct{}

func (execRunner) Run(ctx context.Context, dir string, argv []string) (*Result, error) {
	if len(argv) == 0 {
		return nil, errors.New("empty command line")
	}

	cmd := exec.CommandContext(ctx, argv[0], argv[1:]...)
	cmd.Dir = dir

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	res := &Result{Stdout: stdout.String(), Stderr: stderr.String()}

	var exitErr *exec.ExitError
	switch {
	case err == nil:
	case errors.As(err, &exitErr) && ctx.Err() == nil:
		res.ExitCode = exitErr.ExitCode()
	default:
		return res, fmt.Errorf("failed to run %s: %w", argv[0], err)
	}
	return res, nil
}

// splitCommand splits an executable setting such as "mpirun -n 1 convert4qmc"
// into its words.
func splitCommand(exe string) []string {
	return strings.Fields(exe)
}

// resolveCommand makes the program path of a command absolute when it is a
// relative path with a separator, so that it does not depend on the test
// directory the command runs in. Bare names are left for PATH lookup and
// options are never rewritten.
func resolveCommand(command string) string {
	words := splitCommand(command)
	for i, word := range words {
		if strings.HasPrefix(word, "-") || !strings.ContainsAny(word, "/"+string(filepath.Separator)) {
			continue
		}
		if !filepath.IsAbs(word) {
			if abs, err := filepath.Abs(word); err == nil {
				words[i] = abs
			}
		}
		return strings.Join(words, " ")
	}
	return command
}

// buildConverterCommand assembles the converter command line for tc.
// Extra arguments always come last.
func buildConverterCommand(exe string, tc *TestCase) []string {
	argv := splitCommand(exe)
	argv = append(argv, "-nojastrow", "-prefix", outputPrefix)
	argv = append(argv, tc.Mode.converterFlags(tc.Input)...)
	argv = append(argv, expandExtraArgs(tc.ExtraArgs, tc.Input)...)
	return argv
}

// writeArtifacts saves the captured output next to the test inputs.
// stderr.txt is only written when there is something in it.
func writeArtifacts(dir string, res *Result) error {
	if err := os.WriteFile(filepath.Join(dir, stdoutFile), []byte(res.Stdout), 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", stdoutFile, err)
	}
	if len(res.Stderr) > 0 {
		if err := os.WriteFile(filepath.Join(dir, stderrFile), []byte(res.Stderr), 0644); err != nil {
			return fmt.Errorf("failed to write %s: %w", stderrFile, err)
		}
	}
	return nil
}

package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"golang.org/x/tools/txtar"
)

// Each testdata/*.txtar archive is one test directory, named after the
// archive. The archive comment holds the expectations:
//
//	want-exit: 1
//	want-output: FAIL
//	want-argv: -gamess be.out
//	want-file: stdout.txt
//	flags: -strict-expect-fail
//
// want-output, want-argv and want-file may repeat. want-argv lines are
// checked against the arguments the fake converter received.
type scenario struct {
	wantExit   int
	wantOutput []string
	wantArgv   []string
	wantFiles  []string
	flags      []string
}

func parseScenario(t *testing.T, comment []byte) scenario {
	t.Helper()
	var sc scenario
	for _, line := range strings.Split(string(comment), "\n") {
		key, value, ok := strings.Cut(strings.TrimSpace(line), ":")
		if !ok {
			continue
		}
		value = strings.TrimSpace(value)
		switch key {
		case "want-exit":
			code, err := strconv.Atoi(value)
			if err != nil {
				t.Fatalf("bad want-exit %q: %v", value, err)
			}
			sc.wantExit = code
		case "want-output":
			sc.wantOutput = append(sc.wantOutput, value)
		case "want-argv":
			sc.wantArgv = append(sc.wantArgv, value)
		case "want-file":
			sc.wantFiles = append(sc.wantFiles, value)
		case "flags":
			sc.flags = append(sc.flags, strings.Fields(value)...)
		}
	}
	return sc
}

// extractArchive writes the archive files under dir.
func extractArchive(t *testing.T, archive *txtar.Archive, dir string) {
	t.Helper()
	for _, file := range archive.Files {
		path := filepath.Join(dir, filepath.FromSlash(file.Name))
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			t.Fatalf("failed to create %s: %v", filepath.Dir(path), err)
		}
		if err := os.WriteFile(path, file.Data, 0644); err != nil {
			t.Fatalf("failed to write %s: %v", path, err)
		}
	}
}

func TestTxtarScenarios(t *testing.T) {
	txtarFiles, err := filepath.Glob("testdata/*.txtar")
	if err != nil {
		t.Fatalf("failed to find txtar files in testdata: %v", err)
	}
	if len(txtarFiles) == 0 {
		t.Skip("no txtar files found")
	}

	for _, txtarFile := range txtarFiles {
		name := strings.TrimSuffix(filepath.Base(txtarFile), ".txtar")
		t.Run(name, func(t *testing.T) {
			runTxtarScenario(t, txtarFile, name)
		})
	}
}

func runTxtarScenario(t *testing.T, txtarFile, name string) {
	archive, err := txtar.ParseFile(txtarFile)
	if err != nil {
		t.Fatalf("failed to parse txtar file %s: %v", txtarFile, err)
	}
	sc := parseScenario(t, archive.Comment)

	dir := filepath.Join(t.TempDir(), name)
	extractArchive(t, archive, dir)

	args := []string{
		"-exe", helperCommand(t, "fake-convert4qmc"),
		"-h5diff", helperCommand(t, "fake-h5diff"),
		"-no-color",
	}
	args = append(args, sc.flags...)
	args = append(args, dir)

	var stdout, stderr bytes.Buffer
	code := run(context.Background(), args, &stdout, &stderr)
	got := stdout.String()

	if code != sc.wantExit {
		t.Errorf("run() = %d, want %d\nstdout:\n%s\nstderr:\n%s", code, sc.wantExit, got, stderr.String())
	}
	for _, want := range sc.wantOutput {
		if !containsLine(got, want) {
			t.Errorf("output has no line %q:\n%s", want, got)
		}
	}
	for _, want := range sc.wantFiles {
		if !fileExists(filepath.Join(dir, want)) {
			t.Errorf("expected %s to be written", want)
		}
	}

	if len(sc.wantArgv) > 0 {
		data, err := os.ReadFile(filepath.Join(dir, "fake", "argv.txt"))
		if err != nil {
			t.Fatalf("converter was not invoked: %v", err)
		}
		gotArgv := strings.Join(strings.Fields(string(data)), " ")
		if diff := cmp.Diff(strings.Join(sc.wantArgv, " "), gotArgv); diff != "" {
			t.Errorf("converter arguments mismatch (-want +got):\n%s", diff)
		}
	}
}

// containsLine reports whether out has a line equal to want once
// surrounding spaces are trimmed.
func containsLine(out, want string) bool {
	for _, line := range strings.Split(out, "\n") {
		if strings.TrimSpace(line) == want {
			return true
		}
	}
	return false
}

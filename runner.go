package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"go.uber.org/zap"
)

// Harness runs converter regression tests and reports each one to out.
type Harness struct {
	cfg    *Config
	runner CommandRunner
	out    io.Writer
	style  style
	log    *zap.Logger
}

// NewHarness creates a harness that runs real processes.
func NewHarness(cfg *Config, out io.Writer, log *zap.Logger) *Harness {
	return NewHarnessWithRunner(cfg, execRunner{}, out, log)
}

// NewHarnessWithRunner creates a harness with a custom command runner.
func NewHarnessWithRunner(cfg *Config, runner CommandRunner, out io.Writer, log *zap.Logger) *Harness {
	if log == nil {
		log = zap.NewNop()
	}
	return &Harness{
		cfg:    cfg,
		runner: runner,
		out:    out,
		style:  styleFor(out, cfg.NoColor),
		log:    log,
	}
}

// Run runs the test in dir, prints its verdict and reports whether it passed.
// The error is only set when something outside the test itself went wrong,
// such as the converter not starting at all.
func (h *Harness) Run(ctx context.Context, dir string) (bool, error) {
	log := h.log.With(zap.String("test", testName(dir)))

	tc, err := loadTestCase(dir)
	if err != nil {
		var setupErr *SetupError
		if !errors.As(err, &setupErr) {
			return false, err
		}
		fmt.Fprintln(h.out, setupErr.Msg)
		log.Debug("setup failed", zap.String("reason", setupErr.Msg))
		h.report(false)
		return false, nil
	}
	log = log.With(zap.Stringer("mode", tc.Mode))
	log.Debug("test case loaded",
		zap.String("input", tc.Input),
		zap.Bool("expect_fail", tc.ExpectFail),
		zap.Strings("extra_args", tc.ExtraArgs))

	ok, err := h.runTestCase(ctx, tc, log)
	if err != nil {
		return false, err
	}
	h.report(ok)
	return ok, nil
}

func (h *Harness) runTestCase(ctx context.Context, tc *TestCase, log *zap.Logger) (bool, error) {
	argv := buildConverterCommand(h.cfg.Exe, tc)
	log.Debug("invoking converter", zap.Strings("argv", argv))

	res, err := h.runner.Run(ctx, tc.Dir, argv)
	if err != nil {
		return false, err
	}
	if err := writeArtifacts(tc.Dir, res); err != nil {
		return false, err
	}
	log.Debug("converter finished", zap.Int("exit_code", res.ExitCode), zap.Int("stderr_bytes", len(res.Stderr)))

	if tc.ExpectFail {
		if res.ExitCode != 0 {
			return true, nil
		}
		fmt.Fprintln(h.out, "Return code zero, but expected failure")
		return !h.cfg.StrictExpectFail, nil
	}

	okay := true
	if res.ExitCode != 0 {
		fmt.Fprintln(h.out, "Return code nonzero: ", res.ExitCode)
		okay = false
	}
	if strings.TrimSpace(res.Stderr) != "" {
		fmt.Fprintln(h.out, "Stderr not empty:")
		fmt.Fprintln(h.out, res.Stderr)
		okay = false
	}

	if !fileExists(tc.path(tc.GoldFile)) {
		fmt.Fprintln(h.out, "Gold file missing")
		return false, nil
	}

	if tc.usesHDF5() {
		return h.checkHDF5(ctx, tc, okay, log), nil
	}

	matched, err := h.checkText(tc, log)
	if err != nil {
		return false, err
	}
	// the comparison always runs, but an earlier failure sticks
	return okay && matched, nil
}

// checkHDF5 decides the outcome for tests whose orbitals are compared with h5diff.
func (h *Harness) checkHDF5(ctx context.Context, tc *TestCase, okay bool, log *zap.Logger) bool {
	matched, res, err := compareHDF5(ctx, h.runner, h.cfg.H5Diff, tc.Dir, h.cfg.Tolerance)
	if res != nil {
		io.WriteString(h.out, res.Stdout)
		io.WriteString(h.out, res.Stderr)
	}
	if err != nil {
		fmt.Fprintln(h.out, err)
	}
	log.Debug("h5diff finished", zap.Bool("matched", matched))

	if matched && okay {
		return true
	}
	fmt.Fprintln(h.out, "h5diff reported a difference")
	return false
}

// checkText compares the golden XML with the produced XML, optionally
// refreshing the golden file on mismatch.
func (h *Harness) checkText(tc *TestCase, log *zap.Logger) (bool, error) {
	testFile := testFileFor(tc.GoldFile)
	matched, err := compareText(h.out, h.style, tc.Dir, tc.GoldFile, testFile, h.cfg.DiffLines)
	if err != nil {
		return false, err
	}
	log.Debug("text comparison finished", zap.Bool("matched", matched))

	if matched || !h.cfg.UpdateGolden || !fileExists(tc.path(testFile)) {
		return matched, nil
	}
	data, err := os.ReadFile(tc.path(testFile))
	if err != nil {
		return false, err
	}
	if err := os.WriteFile(tc.path(tc.GoldFile), data, 0644); err != nil {
		return false, fmt.Errorf("failed to update %s: %w", tc.GoldFile, err)
	}
	fmt.Fprintln(h.out, "Gold file updated:", tc.GoldFile)
	log.Info("golden file updated", zap.String("file", tc.GoldFile))
	return true, nil
}

func (h *Harness) report(ok bool) {
	fmt.Fprintln(h.out, h.style.verdict(ok))
}

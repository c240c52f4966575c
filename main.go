package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

// cliFlags mirrors Config for the command line.
type cliFlags struct {
	config           string
	exe              string
	h5diff           string
	tolerance        float64
	diffLines        int
	strictExpectFail bool
	updateGolden     bool
	noColor          bool
	verbose          bool
}

func newFlagSet(stderr io.Writer, f *cliFlags) *flag.FlagSet {
	def := DefaultConfig()
	fs := flag.NewFlagSet("converter-test", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&f.config, "config", "", "optional YAML file with harness settings")
	fs.StringVar(&f.exe, "exe", def.Exe, "location of the convert4qmc executable (relative paths are taken from the current directory)")
	fs.StringVar(&f.h5diff, "h5diff", def.H5Diff, "location of the h5diff executable (relative paths are taken from the current directory)")
	fs.Float64Var(&f.tolerance, "tolerance", def.Tolerance, "absolute tolerance for h5diff comparisons")
	fs.IntVar(&f.diffLines, "diff-lines", def.DiffLines, "maximum number of diff lines printed on mismatch")
	fs.BoolVar(&f.strictExpectFail, "strict-expect-fail", false, "if true, an expected failure that exits zero fails the test")
	fs.BoolVar(&f.updateGolden, "update-golden", false, "if true, overwrites gold.wfnoj.xml with the produced output on mismatch")
	fs.BoolVar(&f.noColor, "no-color", false, "disable colored output")
	fs.BoolVar(&f.verbose, "v", false, "enable debug logging on stderr")
	fs.Usage = func() {
		fmt.Fprintln(stderr, "usage: converter-test [flags] <test_dir> [<test_dir>...]")
		fmt.Fprintln(stderr, "\nRuns convert4qmc in each test directory and compares the output with the gold files.")
		fmt.Fprintln(stderr)
		fs.PrintDefaults()
	}
	return fs
}

// parseArgs parses flags and test directories, allowing flags after the
// positional arguments.
func parseArgs(fs *flag.FlagSet, args []string) ([]string, error) {
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	var dirs []string
	for fs.NArg() > 0 {
		dirs = append(dirs, fs.Arg(0))
		if err := fs.Parse(fs.Args()[1:]); err != nil {
			return nil, err
		}
	}
	return dirs, nil
}

// applyFlags copies the flags that were set explicitly onto cfg.
func applyFlags(fs *flag.FlagSet, f *cliFlags, cfg *Config) {
	fs.Visit(func(fl *flag.Flag) {
		switch fl.Name {
		case "exe":
			cfg.Exe = f.exe
		case "h5diff":
			cfg.H5Diff = f.h5diff
		case "tolerance":
			cfg.Tolerance = f.tolerance
		case "diff-lines":
			cfg.DiffLines = f.diffLines
		case "strict-expect-fail":
			cfg.StrictExpectFail = f.strictExpectFail
		case "update-golden":
			cfg.UpdateGolden = f.updateGolden
		case "no-color":
			cfg.NoColor = f.noColor
		case "v":
			cfg.Verbose = f.verbose
		}
	})
}

// run executes the command line and returns the process exit code.
func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	var f cliFlags
	fs := newFlagSet(stderr, &f)
	dirs, err := parseArgs(fs, args)
	if errors.Is(err, flag.ErrHelp) {
		return 0
	}
	if err != nil {
		return 2
	}
	if len(dirs) == 0 {
		fs.Usage()
		return 1
	}

	cfg, err := LoadConfig(f.config)
	if err != nil {
		fmt.Fprintln(stderr, "error:", err)
		return 1
	}
	applyFlags(fs, &f, cfg)
	if err := cfg.Validate(); err != nil {
		fmt.Fprintln(stderr, "invalid configuration:", err)
		return 1
	}

	cfg.Exe = resolveCommand(cfg.Exe)
	cfg.H5Diff = resolveCommand(cfg.H5Diff)

	logger, err := newLogger(cfg.Verbose)
	if err != nil {
		fmt.Fprintln(stderr, "failed to create logger:", err)
		return 1
	}
	defer logger.Sync()

	harness := NewHarness(cfg, stdout, logger)

	allPassed := true
	for _, dir := range dirs {
		if ctx.Err() != nil {
			fmt.Fprintln(stdout, "interrupted:", ctx.Err())
			allPassed = false
			break
		}
		if len(dirs) > 1 {
			fmt.Fprintln(stdout, dir)
		}
		if info, err := os.Stat(dir); err != nil || !info.IsDir() {
			fmt.Fprintln(stdout, "Test not found: ", dir)
			allPassed = false
			continue
		}

		ok, err := harness.Run(ctx, dir)
		if err != nil && ctx.Err() != nil {
			fmt.Fprintln(stdout, "interrupted:", ctx.Err())
			fmt.Fprintln(stdout, harness.style.verdict(false))
			allPassed = false
			break
		}
		if err != nil {
			logger.Error("test aborted", zap.String("test", dir), zap.Error(err))
			fmt.Fprintln(stdout, "error:", err)
			fmt.Fprintln(stdout, harness.style.verdict(false))
			allPassed = false
			continue
		}
		allPassed = allPassed && ok
	}

	if allPassed {
		return 0
	}
	return 1
}

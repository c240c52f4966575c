package main

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds the harness settings. Flags override the config file,
// the config file overrides the environment, the environment overrides
// DefaultConfig.
type Config struct {
	// Exe is the converter command, split on whitespace.
	Exe string `yaml:"exe"`

	// H5Diff is the HDF5 comparison command, split on whitespace.
	H5Diff string `yaml:"h5diff"`

	// Tolerance is the absolute tolerance passed to h5diff -d.
	Tolerance float64 `yaml:"tolerance"`

	// DiffLines caps the number of unified diff lines printed on mismatch.
	DiffLines int `yaml:"diff_lines"`

	// StrictExpectFail fails expect-fail tests whose converter exits zero.
	StrictExpectFail bool `yaml:"strict_expect_fail"`

	// UpdateGolden overwrites gold.wfnoj.xml with the produced output on mismatch.
	UpdateGolden bool `yaml:"update_golden"`

	// NoColor disables terminal colors.
	NoColor bool `yaml:"no_color"`

	// Verbose enables debug logging on stderr.
	Verbose bool `yaml:"verbose"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Exe:       "convert4qmc",
		H5Diff:    "h5diff",
		Tolerance: defaultTolerance,
		DiffLines: defaultDiffLines,
	}
}

// applyEnv overrides executables from CONVERT4QMC_EXE and H5DIFF_EXE.
func (c *Config) applyEnv() {
	c.Exe = envOrDefault("CONVERT4QMC_EXE", c.Exe)
	c.H5Diff = envOrDefault("H5DIFF_EXE", c.H5Diff)
}

// LoadConfig builds the configuration from defaults, the environment and,
// when path is not empty, a YAML file.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()
	cfg.applyEnv()

	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}
	return cfg, nil
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if len(splitCommand(c.Exe)) == 0 {
		return fmt.Errorf("exe must not be empty")
	}
	if len(splitCommand(c.H5Diff)) == 0 {
		return fmt.Errorf("h5diff must not be empty")
	}
	if c.Tolerance < 0 {
		return fmt.Errorf("tolerance must not be negative")
	}
	if c.DiffLines < 1 {
		return fmt.Errorf("diff_lines must be at least 1")
	}
	return nil
}

func envOrDefault(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

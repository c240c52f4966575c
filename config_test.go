package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, "convert4qmc", cfg.Exe)
	assert.Equal(t, "h5diff", cfg.H5Diff)
	assert.Equal(t, 1e-6, cfg.Tolerance)
	assert.Equal(t, 200, cfg.DiffLines)
	assert.False(t, cfg.StrictExpectFail)
	require.NoError(t, cfg.Validate())
}

func TestLoadConfigEnv(t *testing.T) {
	t.Setenv("CONVERT4QMC_EXE", "/opt/qmcpack/bin/convert4qmc")
	t.Setenv("H5DIFF_EXE", "")

	cfg, err := LoadConfig("")
	require.NoError(t, err)
	assert.Equal(t, "/opt/qmcpack/bin/convert4qmc", cfg.Exe)
	assert.Equal(t, "h5diff", cfg.H5Diff)
}

func TestLoadConfigFile(t *testing.T) {
	t.Setenv("CONVERT4QMC_EXE", "/from/env/convert4qmc")
	t.Setenv("H5DIFF_EXE", "/from/env/h5diff")

	path := filepath.Join(t.TempDir(), "converter-test.yaml")
	content := `exe: /build/bin/convert4qmc
tolerance: 0.0001
diff_lines: 50
strict_expect_fail: true
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "/build/bin/convert4qmc", cfg.Exe)
	assert.Equal(t, "/from/env/h5diff", cfg.H5Diff)
	assert.Equal(t, 0.0001, cfg.Tolerance)
	assert.Equal(t, 50, cfg.DiffLines)
	assert.True(t, cfg.StrictExpectFail)
}

func TestLoadConfigErrors(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorContains(t, err, "failed to read config file")

	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("diff_lines: [1, 2"), 0644))
	_, err = LoadConfig(path)
	assert.ErrorContains(t, err, "failed to parse config file")
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		modify  func(*Config)
		wantErr string
	}{
		{"empty exe", func(c *Config) { c.Exe = "  " }, "exe must not be empty"},
		{"empty h5diff", func(c *Config) { c.H5Diff = "" }, "h5diff must not be empty"},
		{"negative tolerance", func(c *Config) { c.Tolerance = -1 }, "tolerance must not be negative"},
		{"zero diff lines", func(c *Config) { c.DiffLines = 0 }, "diff_lines must be at least 1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.modify(cfg)
			assert.EqualError(t, cfg.Validate(), tt.wantErr)
		})
	}
}

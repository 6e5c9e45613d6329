package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"jobsh/internal/jobs"
)

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yml"))
	require.NoError(t, err)
	require.Equal(t, "jobsh> ", cfg.Prompt)
	require.Equal(t, jobs.DefaultCapacity, cfg.MaxJobs)
	require.NotEmpty(t, cfg.HistoryFile)
	require.False(t, cfg.Verbose)
}

func TestLoadReadsYAML(t *testing.T) {
	file := filepath.Join(t.TempDir(), "config.yml")
	data := "prompt: \"$ \"\nmax_jobs: 4\nhistory_file: /tmp/hist\nverbose: true\n"
	require.NoError(t, os.WriteFile(file, []byte(data), 0o644))

	cfg, err := Load(file)
	require.NoError(t, err)
	require.Equal(t, "$ ", cfg.Prompt)
	require.Equal(t, 4, cfg.MaxJobs)
	require.Equal(t, "/tmp/hist", cfg.HistoryFile)
	require.True(t, cfg.Verbose)
}

func TestLoadRejectsMalformedYAML(t *testing.T) {
	file := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(file, []byte("max_jobs: [not a number\n"), 0o644))

	_, err := Load(file)
	require.Error(t, err)
}

func TestLoadFillsPartialConfig(t *testing.T) {
	file := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(file, []byte("max_jobs: 8\n"), 0o644))

	cfg, err := Load(file)
	require.NoError(t, err)
	require.Equal(t, 8, cfg.MaxJobs)
	require.Equal(t, "jobsh> ", cfg.Prompt)
}

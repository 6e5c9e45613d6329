package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"jobsh/internal/jobs"
)

const defaultPrompt = "jobsh> "

type Config struct {
	Prompt      string `yaml:"prompt"`
	MaxJobs     int    `yaml:"max_jobs"`
	HistoryFile string `yaml:"history_file"`
	Verbose     bool   `yaml:"verbose"`
}

// Load reads an optional YAML config file. A missing file yields the
// defaults; a present but unreadable or malformed file is an error.
func Load(file string) (*Config, error) {
	cfg := &Config{}

	data, err := os.ReadFile(file)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("error reading config: %w", err)
	}
	if err == nil {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("error parsing config: %w", err)
		}
	}

	if cfg.Prompt == "" {
		cfg.Prompt = defaultPrompt
	}
	if cfg.MaxJobs <= 0 {
		cfg.MaxJobs = jobs.DefaultCapacity
	}
	if cfg.HistoryFile == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("error getting home directory: %w", err)
		}
		cfg.HistoryFile = filepath.Join(home, ".jobsh_history")
	}

	return cfg, nil
}

// Package configloader resolves the effective CLI configuration from a
// YAML config file, environment variables, and built-in defaults.
// Precedence, lowest to highest: defaults, config file, environment.
// Explicit CLI flags are applied by the caller on top of the result.
package configloader

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/yaklabco/scrapekit/pkg/config"
)

// DefaultFileNames are the config file names discovered in the working
// directory, in order of preference.
//
//nolint:gochecknoglobals // Discovery list is effectively a constant
var DefaultFileNames = []string{".scrapekit.yaml", "scrapekit.yaml"}

// LoadOptions controls config resolution.
type LoadOptions struct {
	// WorkingDir is the directory searched for a config file when no
	// explicit path is given.
	WorkingDir string

	// ExplicitPath, when set, must exist; a missing explicit file is an
	// error, unlike a missing discovered file.
	ExplicitPath string
}

// Result is the resolved configuration.
type Result struct {
	// Options are the parse options for the engine.
	Options config.Options

	// Jobs is the worker count for multi-file runs. 0 means auto.
	Jobs int

	// Color is the output color mode: auto, always, never.
	Color string

	// LoadedFrom is the config file actually read, empty when none.
	LoadedFrom string

	// Warnings are non-fatal findings surfaced to the user.
	Warnings []string
}

// fileConfig mirrors the YAML schema. Pointer fields distinguish
// "absent" from zero values during merging.
type fileConfig struct {
	MaxSizeBytes    *int    `yaml:"max_size_bytes"`
	TruncateOnLimit *bool   `yaml:"truncate_on_limit"`
	Jobs            *int    `yaml:"jobs"`
	Color           *string `yaml:"color"`
}

// Load resolves the effective configuration.
func Load(opts LoadOptions) (*Result, error) {
	result := &Result{
		Options: config.Default(),
		Color:   "auto",
	}

	path, required := configPath(opts)
	if path != "" {
		fc, err := readFile(path)
		if err != nil {
			if required || !errors.Is(err, os.ErrNotExist) {
				return nil, fmt.Errorf("load config %s: %w", path, err)
			}
		} else {
			result.LoadedFrom = path
			applyFile(result, fc)
		}
	}

	if warnings := applyEnv(result); len(warnings) > 0 {
		result.Warnings = append(result.Warnings, warnings...)
	}

	if result.Options.MaxSizeBytes <= 0 {
		result.Warnings = append(result.Warnings,
			fmt.Sprintf("max_size_bytes %d is not positive, using default", result.Options.MaxSizeBytes))
		result.Options.MaxSizeBytes = config.DefaultMaxSizeBytes
	}

	return result, nil
}

func configPath(opts LoadOptions) (path string, required bool) {
	if opts.ExplicitPath != "" {
		return opts.ExplicitPath, true
	}
	for _, name := range DefaultFileNames {
		candidate := filepath.Join(opts.WorkingDir, name)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, false
		}
	}
	return "", false
}

func readFile(path string) (*fileConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var fc fileConfig
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&fc); err != nil {
		return nil, fmt.Errorf("parse yaml: %w", err)
	}
	return &fc, nil
}

func applyFile(result *Result, fc *fileConfig) {
	if fc.MaxSizeBytes != nil {
		result.Options.MaxSizeBytes = *fc.MaxSizeBytes
	}
	if fc.TruncateOnLimit != nil {
		result.Options.TruncateOnLimit = *fc.TruncateOnLimit
	}
	if fc.Jobs != nil {
		result.Jobs = *fc.Jobs
	}
	if fc.Color != nil {
		result.Color = *fc.Color
	}
}

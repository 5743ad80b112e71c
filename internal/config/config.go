// Package config loads the pipeline profile: logging, backend selection,
// table skip labels, and copy definitions.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/alnah/go-docprep/internal/yamlutil"
)

// Sentinel errors for config operations.
var (
	ErrConfigNotFound  = errors.New("config file not found")
	ErrEmptyConfigName = errors.New("config name cannot be empty")
	ErrConfigParse     = errors.New("failed to parse config")
	ErrInvalidBackend  = errors.New("invalid backend")
	ErrInvalidLogLevel = errors.New("invalid log level")
	ErrInvalidCopy     = errors.New("invalid copy profile")
)

// Config holds all configuration for a pipeline run.
type Config struct {
	Log     LogConfig     `yaml:"log"`
	Convert ConvertConfig `yaml:"convert"`
	Tables  TablesConfig  `yaml:"tables"`
	Copies  []CopyConfig  `yaml:"copies"`
}

// LogConfig defines logging options.
type LogConfig struct {
	File  string `yaml:"file"`  // Run-scoped log file (empty = stderr only)
	Level string `yaml:"level"` // debug, info, warn, error (default: info)
}

// ConvertConfig defines conversion backend options.
type ConvertConfig struct {
	Backend string `yaml:"backend"` // "", soffice, pandoc, word ("" = auto)
}

// TablesConfig defines row expansion options.
type TablesConfig struct {
	SkipLabels []string `yaml:"skipLabels"` // First-cell labels exempting a table
}

// CopyConfig defines one generated copy.
type CopyConfig struct {
	Suffix string          `yaml:"suffix"` // Appended to the filename as "-<suffix>"
	Header string          `yaml:"header"` // Centered header text
	Remove []RemovalConfig `yaml:"remove"`
}

// RemovalConfig defines one content removal inside a copy.
type RemovalConfig struct {
	From  []string `yaml:"from"`  // Start marker candidates
	To    []string `yaml:"to"`    // End marker candidates
	ToEnd bool     `yaml:"toEnd"` // Remove to end of document instead
}

// DefaultConfig returns the configuration matching the built-in pipeline
// behavior: auto backend, standard skip labels, the three evidence copies.
func DefaultConfig() *Config {
	return &Config{
		Log:     LogConfig{Level: "info"},
		Convert: ConvertConfig{Backend: ""},
		Tables: TablesConfig{
			SkipLabels: []string{
				"Change request numbers",
				"Tickets",
				"Trivy Scan Findings Remediation Plan",
			},
		},
		Copies: []CopyConfig{
			{
				Suffix: "Stage-Evidence",
				Header: "Deploy to Stage",
				Remove: []RemovalConfig{{From: []string{"Rollback"}, ToEnd: true}},
			},
			{
				Suffix: "StageDR-Evidence",
				Header: "Deploy to StageDR",
				Remove: []RemovalConfig{{From: []string{"Rollback"}, ToEnd: true}},
			},
			{
				Suffix: "Rollback-Evidence",
				Header: "Rollback",
				Remove: []RemovalConfig{{
					From: []string{"Pre-Deploy Steps", "Pre Steps"},
					To:   []string{"Rollback"},
				}},
			},
		},
	}
}

// Validate checks that all config values are usable.
func (c *Config) Validate() error {
	switch c.Convert.Backend {
	case "", "soffice", "pandoc", "word":
	default:
		return fmt.Errorf("%w: %q (must be soffice, pandoc, or word)", ErrInvalidBackend, c.Convert.Backend)
	}

	switch strings.ToLower(c.Log.Level) {
	case "", "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("%w: %q (must be debug, info, warn, or error)", ErrInvalidLogLevel, c.Log.Level)
	}

	for _, copy := range c.Copies {
		if copy.Suffix == "" {
			return fmt.Errorf("%w: missing suffix", ErrInvalidCopy)
		}
		for _, removal := range copy.Remove {
			if len(removal.From) == 0 {
				return fmt.Errorf("%w: %q removal has no start marker", ErrInvalidCopy, copy.Suffix)
			}
			if !removal.ToEnd && len(removal.To) == 0 {
				return fmt.Errorf("%w: %q removal has no end marker and toEnd is false", ErrInvalidCopy, copy.Suffix)
			}
		}
	}
	return nil
}

// LoadConfig loads configuration from a file path or config name.
// If nameOrPath contains a path separator, it's treated as a file path.
// Otherwise, it's treated as a config name and searched in standard locations.
// Returns error if the file is not found (no silent fallback).
func LoadConfig(nameOrPath string) (*Config, error) {
	if nameOrPath == "" {
		return nil, ErrEmptyConfigName
	}

	var configPath string
	var err error

	if strings.ContainsAny(nameOrPath, "/\\") {
		configPath = nameOrPath
	} else {
		configPath, err = resolveConfigPath(nameOrPath)
		if err != nil {
			return nil, err
		}
	}

	data, err := os.ReadFile(configPath) // #nosec G304 -- config path is user-provided
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, configPath)
		}
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	cfg := DefaultConfig()
	if err := yamlutil.UnmarshalStrict(data, cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfigParse, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// resolveConfigPath searches for a config file by name in standard locations.
// Tries extensions in order: .yaml, .yml
// Tries locations in order: current directory, ~/.config/go-docprep/
func resolveConfigPath(name string) (string, error) {
	extensions := []string{".yaml", ".yml"}
	triedPaths := make([]string, 0, len(extensions)*2)

	for _, ext := range extensions {
		localPath := name + ext
		if fileExists(localPath) {
			return localPath, nil
		}
		triedPaths = append(triedPaths, localPath)
	}

	home, err := os.UserHomeDir()
	if err == nil {
		for _, ext := range extensions {
			configPath := filepath.Join(home, ".config", "go-docprep", name+ext)
			if fileExists(configPath) {
				return configPath, nil
			}
			triedPaths = append(triedPaths, configPath)
		}
	}

	return "", fmt.Errorf("%w: tried %s", ErrConfigNotFound, strings.Join(triedPaths, ", "))
}

// fileExists returns true if the path exists and is a regular file.
func fileExists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return !info.IsDir()
}

// Package config provides configuration management for kk.
// It supports multi-layer configuration with precedence:
//  1. Built-in defaults (lowest priority)
//  2. Global user config (~/.config/kk/config.toml)
//  3. Project config (.kk/config.toml or .kk.toml)
//  4. Environment variables (KK_*, NO_COLOR)
//  5. CLI flags (highest priority)
package config

import (
	"fmt"
	"runtime"
	"slices"
)

// Color modes.
const (
	ColorAuto   = "auto"
	ColorAlways = "always"
	ColorNever  = "never"
)

// Output formats.
const (
	FormatText = "text"
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// SortKeys lists every accepted sort word, including aliases.
var SortKeys = []string{"name", "none", "size", "time", "ctime", "status", "atime", "access", "use"}

// Config is the main configuration struct for kk.
type Config struct {
	// VCS configures version-control awareness.
	VCS VCSConfig `toml:"vcs"`

	// Sort configures entry ordering.
	Sort SortConfig `toml:"sort"`

	// Display configures what is shown and how.
	Display DisplayConfig `toml:"display"`

	// Scan configures the filesystem scanner.
	Scan ScanConfig `toml:"scan"`
}

// VCSConfig holds version-control settings.
type VCSConfig struct {
	// Enabled turns VCS status lookups on or off (--no-vcs sets false).
	Enabled *bool `toml:"enabled"`

	// GitPath is an explicit git binary. Empty means look it up on PATH.
	GitPath string `toml:"git_path"`
}

// SortConfig holds sort policy settings.
type SortConfig struct {
	// Key is one of SortKeys.
	Key string `toml:"key"`

	// Reverse inverts the key comparison.
	Reverse *bool `toml:"reverse"`

	// CaseInsensitive folds case when comparing names.
	CaseInsensitive *bool `toml:"case_insensitive"`

	// GroupDirectoriesFirst lists directories before everything else.
	GroupDirectoriesFirst *bool `toml:"group_directories_first"`
}

// DisplayConfig holds rendering settings.
type DisplayConfig struct {
	// All includes entries whose name starts with a dot.
	All *bool `toml:"all"`

	// Human prints sizes as 1K, 234M, 2G.
	Human *bool `toml:"human"`

	// SI uses powers of 1000 instead of 1024 for human sizes.
	SI *bool `toml:"si"`

	// Color is "auto", "always" or "never".
	Color string `toml:"color"`

	// Format is "text", "json" or "yaml".
	Format string `toml:"format"`
}

// ScanConfig holds scanner settings.
type ScanConfig struct {
	// Workers bounds concurrent lstat calls. Zero means a default based on GOMAXPROCS.
	Workers int `toml:"workers"`
}

// NewConfig creates a new Config with built-in defaults.
func NewConfig() *Config {
	trueVal := true
	falseVal := false
	return &Config{
		VCS: VCSConfig{
			Enabled: &trueVal,
		},
		Sort: SortConfig{
			Key:                   "name",
			Reverse:               &falseVal,
			CaseInsensitive:       &falseVal,
			GroupDirectoriesFirst: &trueVal,
		},
		Display: DisplayConfig{
			All:    &falseVal,
			Human:  &falseVal,
			SI:     &falseVal,
			Color:  ColorAuto,
			Format: FormatText,
		},
	}
}

// Merge merges another config into this one (other takes precedence).
func (c *Config) Merge(other *Config) {
	if other == nil {
		return
	}

	// VCS
	if other.VCS.Enabled != nil {
		c.VCS.Enabled = other.VCS.Enabled
	}
	if other.VCS.GitPath != "" {
		c.VCS.GitPath = other.VCS.GitPath
	}

	// Sort
	if other.Sort.Key != "" {
		c.Sort.Key = other.Sort.Key
	}
	if other.Sort.Reverse != nil {
		c.Sort.Reverse = other.Sort.Reverse
	}
	if other.Sort.CaseInsensitive != nil {
		c.Sort.CaseInsensitive = other.Sort.CaseInsensitive
	}
	if other.Sort.GroupDirectoriesFirst != nil {
		c.Sort.GroupDirectoriesFirst = other.Sort.GroupDirectoriesFirst
	}

	// Display
	if other.Display.All != nil {
		c.Display.All = other.Display.All
	}
	if other.Display.Human != nil {
		c.Display.Human = other.Display.Human
	}
	if other.Display.SI != nil {
		c.Display.SI = other.Display.SI
	}
	if other.Display.Color != "" {
		c.Display.Color = other.Display.Color
	}
	if other.Display.Format != "" {
		c.Display.Format = other.Display.Format
	}

	// Scan
	if other.Scan.Workers != 0 {
		c.Scan.Workers = other.Scan.Workers
	}
}

// Validate reports the first invalid setting.
func (c *Config) Validate() error {
	if !slices.Contains(SortKeys, c.Sort.Key) {
		return fmt.Errorf("invalid sort key %q (valid: %v)", c.Sort.Key, SortKeys)
	}
	switch c.Display.Color {
	case ColorAuto, ColorAlways, ColorNever:
	default:
		return fmt.Errorf("invalid color mode %q (valid: auto, always, never)", c.Display.Color)
	}
	switch c.Display.Format {
	case FormatText, FormatJSON, FormatYAML:
	default:
		return fmt.Errorf("invalid output format %q (valid: text, json, yaml)", c.Display.Format)
	}
	if c.Scan.Workers < 0 {
		return fmt.Errorf("invalid scan workers %d: must not be negative", c.Scan.Workers)
	}
	return nil
}

// VCSEnabled reports whether VCS status lookups should run.
func (c *Config) VCSEnabled() bool {
	return isTrue(c.VCS.Enabled)
}

// Workers returns the effective scanner worker count.
func (c *Config) Workers() int {
	if c.Scan.Workers > 0 {
		return c.Scan.Workers
	}
	return min(4*runtime.GOMAXPROCS(0), 64)
}

// Bool dereferences an optional setting, treating nil as false.
func Bool(b *bool) bool {
	return isTrue(b)
}

func isTrue(b *bool) bool {
	return b != nil && *b
}

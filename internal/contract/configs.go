package contract

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/huangsam/clonecache/schema"
)

// Default values for configuration.
const (
	DefaultMaxClones   = 50
	MaxMaxClones       = 10000
	DefaultCloneDepth  = 1
	DefaultCleanupDays = 30
)

// DefaultCloneDir is the base storage directory for clones before home
// expansion.
const DefaultCloneDir = "~/.clonecache/repos"

// DateTimeFormat is the default date time representation.
var DateTimeFormat = time.RFC3339

// Config holds the validated runtime configuration for cache operations.
// This struct remains the "final, validated" config.
type Config struct {
	MaxClones  int           // Cache capacity in entry count
	CloneDir   string        // Base storage directory for clones, home-expanded
	CloneDepth int           // Shallow clone history depth
	CleanupAge time.Duration // Staleness threshold for prune operations
	Excludes   []string      // Content-exclusion patterns handed to downstream consumers
	ProjectDir string        // Optional project root holding a scoped metadata store

	Output     schema.OutputMode
	OutputFile string
	Width      int  // Terminal width override (0 = auto-detect)
	UseColors  bool // Enable colored labels in table output
}

// Clone returns a copy of the config for per-request overrides.
func (c *Config) Clone() *Config {
	clone := *c
	clone.Excludes = append([]string(nil), c.Excludes...)
	return &clone
}

// ConfigRawInput holds the raw, unvalidated configuration from all sources
// (file, env, flags). Viper unmarshals into this struct.
type ConfigRawInput struct {
	MaxClones   int     `mapstructure:"max-clones"`
	CloneDir    string  `mapstructure:"clone-dir"`
	CleanupDays float64 `mapstructure:"cleanup-days"`
	CloneDepth  int     `mapstructure:"clone-depth"`
	Exclude     string  `mapstructure:"exclude"`
	Project     string  `mapstructure:"project"`
	Output      string  `mapstructure:"output"`
	OutputFile  string  `mapstructure:"output-file"`
	Width       int     `mapstructure:"width"`
	Color       string  `mapstructure:"color"`
}

// ProcessAndValidate performs all parsing and validation on the raw inputs
// and updates the final Config struct.
func ProcessAndValidate(cfg *Config, input *ConfigRawInput) error {
	// --- 1. Capacity Validation ---
	if input.MaxClones <= 0 || input.MaxClones > MaxMaxClones {
		return fmt.Errorf("max-clones must be greater than 0 and cannot exceed %d (received %d)", MaxMaxClones, input.MaxClones)
	}
	cfg.MaxClones = input.MaxClones

	// --- 2. Clone Depth Validation ---
	if input.CloneDepth <= 0 {
		return fmt.Errorf("clone-depth must be greater than 0 (received %d)", input.CloneDepth)
	}
	cfg.CloneDepth = input.CloneDepth

	// --- 3. Cleanup Threshold Validation ---
	if input.CleanupDays < 0 {
		return fmt.Errorf("cleanup-days cannot be negative (received %v)", input.CleanupDays)
	}
	cfg.CleanupAge = time.Duration(input.CleanupDays * 24 * float64(time.Hour))

	// --- 4. Clone Directory Resolution ---
	cloneDir := input.CloneDir
	if cloneDir == "" {
		cloneDir = DefaultCloneDir
	}
	expanded, err := ExpandHome(cloneDir)
	if err != nil {
		return fmt.Errorf("cannot resolve clone-dir %q: %w", cloneDir, err)
	}
	cfg.CloneDir = filepath.Clean(expanded)

	// --- 5. Project Scope Resolution ---
	if input.Project != "" {
		expanded, err := ExpandHome(input.Project)
		if err != nil {
			return fmt.Errorf("cannot resolve project %q: %w", input.Project, err)
		}
		abs, err := filepath.Abs(expanded)
		if err != nil {
			return fmt.Errorf("cannot resolve project %q: %w", input.Project, err)
		}
		cfg.ProjectDir = abs
	}

	// --- 6. Output Validation ---
	cfg.Output = schema.OutputMode(strings.ToLower(input.Output))
	if cfg.Output == "" {
		cfg.Output = schema.TextOut
	}
	if _, ok := schema.ValidOutputModes[cfg.Output]; !ok {
		return fmt.Errorf("invalid output format '%s'. must be text, csv, json, parquet", input.Output)
	}
	cfg.OutputFile = input.OutputFile

	if input.Width < 0 {
		return fmt.Errorf("width cannot be negative (received %d)", input.Width)
	}
	cfg.Width = input.Width

	useColors, err := ParseBoolString(input.Color)
	if err != nil {
		return fmt.Errorf("invalid color setting: %w", err)
	}
	cfg.UseColors = useColors

	// --- 7. Excludes Processing ---
	defaults := []string{
		// Version-control and dependency trees are never useful to explore
		".git/",
		"node_modules/",
		"vendor/",

		// Generated assets
		".min.js", ".min.css",

		// Build output directories
		"dist/", "build/", "out/", "target/", "bin/",
	}
	cfg.Excludes = defaults

	if input.Exclude != "" {
		parts := strings.SplitSeq(input.Exclude, ",")
		for p := range parts {
			trimmedP := strings.TrimSpace(p)
			if trimmedP != "" {
				cfg.Excludes = append(cfg.Excludes, trimmedP)
			}
		}
	}

	return nil
}

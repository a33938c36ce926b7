// Package config loads and validates trawl configuration.
//
// Settings are resolved in precedence order:
//  1. Built-in defaults
//  2. User config (~/.config/trawl/config.yaml)
//  3. Project config (.trawl.yaml, found by walking up from the search root)
//  4. Environment variables (TRAWL_LOG_LEVEL, TRAWL_THREADS, TRAWL_COLOR, NO_COLOR)
//
// Command-line flags are applied on top by the CLI layer.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	trawlerrors "github.com/trawl-dev/trawl/internal/errors"
	"github.com/trawl-dev/trawl/internal/grep"
)

// ProjectConfigName is the per-project configuration filename.
const ProjectConfigName = ".trawl.yaml"

// Config is the complete trawl configuration.
type Config struct {
	Version int           `yaml:"version" json:"version"`
	Search  SearchConfig  `yaml:"search" json:"search"`
	Logging LoggingConfig `yaml:"logging" json:"logging"`
	Output  OutputConfig  `yaml:"output" json:"output"`
}

// SearchConfig holds default search behavior. Every field maps to a
// command-line flag; flags win when both are set.
type SearchConfig struct {
	// SmartCase enables case-insensitive matching for all-lowercase patterns.
	SmartCase bool `yaml:"smart_case" json:"smart_case"`

	// Hidden includes dotfiles and dot-directories in the walk.
	Hidden bool `yaml:"hidden" json:"hidden"`

	// FollowSymlinks traverses symbolic links.
	FollowSymlinks bool `yaml:"follow_symlinks" json:"follow_symlinks"`

	// GitIgnore honors gitignore rules during the walk.
	GitIgnore bool `yaml:"git_ignore" json:"git_ignore"`

	// Mmap permits memory-mapped reads for large files.
	Mmap bool `yaml:"mmap" json:"mmap"`

	// MaxDepth caps recursion depth (0 = unlimited).
	MaxDepth int `yaml:"max_depth" json:"max_depth"`

	// Threads is the worker count (0 = one per CPU).
	Threads int `yaml:"threads" json:"threads"`

	// MaxFilesize skips files larger than this, e.g. "10M" (empty = unlimited).
	MaxFilesize string `yaml:"max_filesize" json:"max_filesize"`

	// ContextBefore and ContextAfter set default context line counts.
	ContextBefore int `yaml:"context_before" json:"context_before"`
	ContextAfter  int `yaml:"context_after" json:"context_after"`

	// Types restricts searches to these file types by default.
	Types []string `yaml:"types" json:"types"`

	// Exclude adds default exclude globs to every search.
	Exclude []string `yaml:"exclude" json:"exclude"`
}

// LoggingConfig configures the log file and verbosity.
type LoggingConfig struct {
	Level     string `yaml:"level" json:"level"`
	File      string `yaml:"file" json:"file"`
	MaxSizeMB int    `yaml:"max_size_mb" json:"max_size_mb"`
	MaxFiles  int    `yaml:"max_files" json:"max_files"`
}

// OutputConfig configures result presentation.
type OutputConfig struct {
	// Color is one of "auto", "always", "never".
	Color string `yaml:"color" json:"color"`
	// Format is one of "text", "json".
	Format string `yaml:"format" json:"format"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Version: 1,
		Search: SearchConfig{
			SmartCase: true,
			GitIgnore: true,
			Mmap:      true,
		},
		Logging: LoggingConfig{
			Level:     "info",
			MaxSizeMB: 10,
			MaxFiles:  5,
		},
		Output: OutputConfig{
			Color:  "auto",
			Format: "text",
		},
	}
}

// Load resolves the effective configuration for a search rooted at root.
// Missing config files are not errors; malformed ones are.
func Load(root string) (*Config, error) {
	cfg := Default()

	if userPath := UserConfigPath(); userPath != "" {
		if err := mergeFile(cfg, userPath); err != nil {
			return nil, err
		}
	}

	if projPath := FindProjectConfig(root); projPath != "" {
		if err := mergeFile(cfg, projPath); err != nil {
			return nil, err
		}
	}

	cfg.applyEnv()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadFile loads one explicit config file over the defaults. The file
// must exist.
func LoadFile(path string) (*Config, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, trawlerrors.New(trawlerrors.ErrCodeConfigNotFound,
			fmt.Sprintf("config file not found: %s", path), err)
	}

	cfg := Default()
	if err := mergeFile(cfg, path); err != nil {
		return nil, err
	}
	cfg.applyEnv()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// mergeFile unmarshals path over cfg in place. A missing file is a no-op.
func mergeFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return trawlerrors.New(trawlerrors.ErrCodeConfigInvalid,
			fmt.Sprintf("cannot read config %s: %v", path, err), err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return trawlerrors.New(trawlerrors.ErrCodeConfigInvalid,
			fmt.Sprintf("malformed config %s: %v", path, err), err)
	}
	return nil
}

// applyEnv overlays environment variables.
func (c *Config) applyEnv() {
	if v := os.Getenv("TRAWL_LOG_LEVEL"); v != "" {
		c.Logging.Level = v
	}
	if v := os.Getenv("TRAWL_THREADS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			c.Search.Threads = n
		}
	}
	if v := os.Getenv("TRAWL_COLOR"); v != "" {
		c.Output.Color = v
	}
	if os.Getenv("NO_COLOR") != "" {
		c.Output.Color = "never"
	}
}

// Validate checks value ranges and enumerations.
func (c *Config) Validate() error {
	switch c.Output.Color {
	case "auto", "always", "never":
	default:
		return trawlerrors.ConfigError(
			fmt.Sprintf("output.color must be auto, always, or never (got %q)", c.Output.Color), nil)
	}

	switch c.Output.Format {
	case "text", "json":
	default:
		return trawlerrors.ConfigError(
			fmt.Sprintf("output.format must be text or json (got %q)", c.Output.Format), nil)
	}

	switch strings.ToLower(c.Logging.Level) {
	case "debug", "info", "warn", "warning", "error":
	default:
		return trawlerrors.ConfigError(
			fmt.Sprintf("logging.level must be debug, info, warn, or error (got %q)", c.Logging.Level), nil)
	}

	if c.Search.Threads < 0 {
		return trawlerrors.ConfigError("search.threads must be >= 0", nil)
	}
	if c.Search.MaxDepth < 0 {
		return trawlerrors.ConfigError("search.max_depth must be >= 0", nil)
	}
	if c.Search.ContextBefore < 0 || c.Search.ContextAfter < 0 {
		return trawlerrors.ConfigError("context line counts must be >= 0", nil)
	}
	if _, err := ParseSize(c.Search.MaxFilesize); err != nil {
		return trawlerrors.ConfigError(
			fmt.Sprintf("search.max_filesize: %v", err), err)
	}

	return nil
}

// Options converts the configured search defaults into engine options.
func (c *Config) Options() grep.Options {
	size, _ := ParseSize(c.Search.MaxFilesize)
	return grep.Options{
		SmartCase:      c.Search.SmartCase,
		Hidden:         c.Search.Hidden,
		FollowSymlinks: c.Search.FollowSymlinks,
		GitIgnore:      c.Search.GitIgnore,
		Mmap:           c.Search.Mmap,
		MaxDepth:       c.Search.MaxDepth,
		Threads:        c.Search.Threads,
		MaxFilesize:    size,
		ContextBefore:  c.Search.ContextBefore,
		ContextAfter:   c.Search.ContextAfter,
		FileTypes:      append([]string(nil), c.Search.Types...),
		GlobExclude:    append([]string(nil), c.Search.Exclude...),
	}
}

// Save writes the configuration to path.
func (c *Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return trawlerrors.InternalError("failed to marshal config", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return trawlerrors.IOError(fmt.Sprintf("cannot create config directory for %s", path), err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return trawlerrors.IOError(fmt.Sprintf("cannot write config %s", path), err)
	}
	return nil
}

// UserConfigPath returns the per-user config file location, or "" when no
// home directory can be resolved.
func UserConfigPath() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "trawl", "config.yaml")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "trawl", "config.yaml")
}

// FindProjectConfig walks up from start looking for a project config
// file. Returns "" when none exists.
func FindProjectConfig(start string) string {
	dir, err := filepath.Abs(start)
	if err != nil {
		return ""
	}
	for {
		candidate := filepath.Join(dir, ProjectConfigName)
		if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
			return candidate
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return ""
		}
		dir = parent
	}
}

// ParseSize parses a human-readable byte size such as "500K", "10M", or
// "1G". Bare numbers are bytes; empty and "0" mean unlimited.
func ParseSize(s string) (int64, error) {
	s = strings.TrimSpace(s)
	if s == "" || s == "0" {
		return 0, nil
	}

	mult := int64(1)
	upper := strings.TrimSuffix(strings.ToUpper(s), "B")
	switch {
	case strings.HasSuffix(upper, "K"):
		mult = 1 << 10
		upper = strings.TrimSuffix(upper, "K")
	case strings.HasSuffix(upper, "M"):
		mult = 1 << 20
		upper = strings.TrimSuffix(upper, "M")
	case strings.HasSuffix(upper, "G"):
		mult = 1 << 30
		upper = strings.TrimSuffix(upper, "G")
	}

	n, err := strconv.ParseInt(upper, 10, 64)
	if err != nil || n < 0 {
		return 0, fmt.Errorf("invalid size %q", s)
	}
	return n * mult, nil
}

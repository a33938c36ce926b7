package cmd

import (
	"context"
	"log/slog"
	"time"

	"github.com/spf13/cobra"

	"github.com/trawl-dev/trawl/internal/config"
	trawlerrors "github.com/trawl-dev/trawl/internal/errors"
	"github.com/trawl-dev/trawl/internal/grep"
	"github.com/trawl-dev/trawl/internal/logging"
	"github.com/trawl-dev/trawl/internal/output"
)

// searchOptions holds CLI flags for search.
type searchOptions struct {
	ignoreCase   bool
	wordRegexp   bool
	fixedStrings bool
	multiline    bool
	invertMatch  bool
	hidden       bool
	follow       bool
	noIgnore     bool
	noMmap       bool
	maxDepth     int
	threads      int
	maxCount     int
	before       int
	after        int
	context      int
	types        []string
	globs        []string
	excludeGlobs []string
	maxFilesize  string
}

func newSearchCmd() *cobra.Command {
	var opts searchOptions

	cmd := &cobra.Command{
		Use:   "search <pattern> [path]",
		Short: "Search a directory tree for regex matches",
		Long: `Search recursively for lines matching a regular expression.

Matching is smart-case by default: all-lowercase patterns match
case-insensitively, patterns with uppercase letters match exactly.
Files matched by .gitignore rules and binary files are skipped.

Examples:
  trawl search "func main" .
  trawl search -i "readme" docs/
  trawl search -t go -m 3 "TODO"
  trawl search -F "a.b*c" --no-ignore .
  trawl search -v "^#" config/`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			root := "."
			if len(args) > 1 {
				root = args[1]
			}
			return runSearch(cmd.Context(), cmd, args[0], root, opts)
		},
	}

	cmd.Flags().BoolVarP(&opts.ignoreCase, "ignore-case", "i", false, "Case-insensitive matching")
	cmd.Flags().BoolVarP(&opts.wordRegexp, "word-regexp", "w", false, "Match whole words only")
	cmd.Flags().BoolVarP(&opts.fixedStrings, "fixed-strings", "F", false, "Treat the pattern as literal text")
	cmd.Flags().BoolVarP(&opts.multiline, "multiline", "U", false, "Allow matches spanning line boundaries")
	cmd.Flags().BoolVarP(&opts.invertMatch, "invert-match", "v", false, "Report lines that do not match")
	cmd.Flags().BoolVar(&opts.hidden, "hidden", false, "Include hidden files and directories")
	cmd.Flags().BoolVarP(&opts.follow, "follow", "L", false, "Traverse symbolic links")
	cmd.Flags().BoolVar(&opts.noIgnore, "no-ignore", false, "Do not honor .gitignore rules")
	cmd.Flags().BoolVar(&opts.noMmap, "no-mmap", false, "Never memory-map files")
	cmd.Flags().IntVar(&opts.maxDepth, "max-depth", 0, "Maximum directory depth (0 = unlimited)")
	cmd.Flags().IntVarP(&opts.threads, "threads", "j", 0, "Worker count (0 = one per CPU)")
	cmd.Flags().IntVarP(&opts.maxCount, "max-count", "m", 0, "Maximum matches per file (0 = unlimited)")
	cmd.Flags().IntVarP(&opts.before, "before-context", "B", 0, "Lines of context before each match")
	cmd.Flags().IntVarP(&opts.after, "after-context", "A", 0, "Lines of context after each match")
	cmd.Flags().IntVarP(&opts.context, "context", "C", 0, "Lines of context before and after each match")
	cmd.Flags().StringSliceVarP(&opts.types, "type", "t", nil, "Restrict to these file types (see 'trawl types')")
	cmd.Flags().StringSliceVarP(&opts.globs, "glob", "g", nil, "Restrict to paths matching these globs")
	cmd.Flags().StringSliceVar(&opts.excludeGlobs, "exclude-glob", nil, "Drop paths matching these globs")
	cmd.Flags().StringVar(&opts.maxFilesize, "max-filesize", "", "Skip files larger than this, e.g. 10M")

	return cmd
}

func runSearch(ctx context.Context, cmd *cobra.Command, pattern, root string, opts searchOptions) error {
	logCfg := logging.DefaultConfig()
	logCfg.WriteToStderr = false
	if logger, cleanup, err := logging.Setup(logCfg); err == nil {
		defer cleanup()
		if !debugMode {
			slog.SetDefault(logger)
		}
	}

	cfg, err := loadConfig(root)
	if err != nil {
		return err
	}

	engineOpts, err := buildEngineOptions(cmd, cfg, opts)
	if err != nil {
		return err
	}

	slog.Info("search_started",
		slog.String("pattern", pattern),
		slog.String("root", root),
		slog.Int("threads", engineOpts.Threads))

	start := time.Now()
	res, err := grep.Search(ctx, pattern, root, engineOpts)
	if err != nil {
		slog.Error("search_failed", slog.String("error", err.Error()))
		return err
	}

	slog.Info("search_complete",
		slog.Int64("files_searched", res.Stats.FilesSearched),
		slog.Int64("matches", res.Stats.Matches),
		slog.Duration("elapsed", time.Since(start)))

	w := output.New(cmd.OutOrStdout(), resolveColor(cfg), resolveFormat(cfg))
	return w.PrintResult(res)
}

// loadConfig resolves the effective configuration, honoring an explicit
// --config file when given.
func loadConfig(root string) (*config.Config, error) {
	if configFile != "" {
		return config.LoadFile(configFile)
	}
	return config.Load(root)
}

// buildEngineOptions layers CLI flags over the configured defaults.
// Boolean flags override config only when explicitly set.
func buildEngineOptions(cmd *cobra.Command, cfg *config.Config, opts searchOptions) (*grep.Options, error) {
	eo := cfg.Options()

	eo.CaseInsensitive = opts.ignoreCase
	eo.WordBoundary = opts.wordRegexp
	eo.FixedStrings = opts.fixedStrings
	eo.Multiline = opts.multiline
	eo.InvertMatch = opts.invertMatch

	if opts.hidden {
		eo.Hidden = true
	}
	if opts.follow {
		eo.FollowSymlinks = true
	}
	if opts.noIgnore {
		eo.GitIgnore = false
	}
	if opts.noMmap {
		eo.Mmap = false
	}
	if cmd.Flags().Changed("max-depth") {
		eo.MaxDepth = opts.maxDepth
	}
	if cmd.Flags().Changed("threads") {
		eo.Threads = opts.threads
	}
	if cmd.Flags().Changed("max-count") {
		eo.MaxCount = opts.maxCount
	}

	if opts.context > 0 {
		eo.ContextBefore = opts.context
		eo.ContextAfter = opts.context
	}
	if cmd.Flags().Changed("before-context") {
		eo.ContextBefore = opts.before
	}
	if cmd.Flags().Changed("after-context") {
		eo.ContextAfter = opts.after
	}

	if len(opts.types) > 0 {
		eo.FileTypes = opts.types
	}
	if len(opts.globs) > 0 {
		eo.GlobInclude = opts.globs
	}
	if len(opts.excludeGlobs) > 0 {
		eo.GlobExclude = append(eo.GlobExclude, opts.excludeGlobs...)
	}

	if opts.maxFilesize != "" {
		size, err := config.ParseSize(opts.maxFilesize)
		if err != nil {
			return nil, trawlerrors.ConfigError(err.Error(), err)
		}
		eo.MaxFilesize = size
	}

	return &eo, nil
}

// resolveColor picks the color mode: flag wins over config.
func resolveColor(cfg *config.Config) string {
	if colorMode != "" && colorMode != "auto" {
		return colorMode
	}
	if cfg.Output.Color != "" {
		return cfg.Output.Color
	}
	return colorMode
}

// resolveFormat picks the output format: flag wins over config.
func resolveFormat(cfg *config.Config) output.Format {
	if outputFormat != "" {
		return output.Format(outputFormat)
	}
	if cfg.Output.Format != "" {
		return output.Format(cfg.Output.Format)
	}
	return output.FormatText
}

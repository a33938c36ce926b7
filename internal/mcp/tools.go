package mcp

import (
	"context"
	"log/slog"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/trawl-dev/trawl/internal/config"
	trawlerrors "github.com/trawl-dev/trawl/internal/errors"
	"github.com/trawl-dev/trawl/internal/grep"
)

// GrepSearchInput defines the input schema for the grep_search tool.
type GrepSearchInput struct {
	Pattern         string   `json:"pattern" jsonschema:"the regular expression to search for"`
	Path            string   `json:"path,omitempty" jsonschema:"directory to search, default current directory"`
	CaseInsensitive bool     `json:"case_insensitive,omitempty" jsonschema:"force case-insensitive matching"`
	WordBoundary    bool     `json:"word_boundary,omitempty" jsonschema:"match whole words only"`
	FixedStrings    bool     `json:"fixed_strings,omitempty" jsonschema:"treat the pattern as literal text"`
	Multiline       bool     `json:"multiline,omitempty" jsonschema:"allow matches spanning line boundaries"`
	InvertMatch     bool     `json:"invert_match,omitempty" jsonschema:"report lines that do not match"`
	Hidden          bool     `json:"hidden,omitempty" jsonschema:"include hidden files and directories"`
	NoIgnore        bool     `json:"no_ignore,omitempty" jsonschema:"disable gitignore handling"`
	FollowSymlinks  bool     `json:"follow_symlinks,omitempty" jsonschema:"traverse symbolic links"`
	ContextBefore   int      `json:"context_before,omitempty" jsonschema:"lines of context before each match"`
	ContextAfter    int      `json:"context_after,omitempty" jsonschema:"lines of context after each match"`
	MaxCount        int      `json:"max_count,omitempty" jsonschema:"maximum matches per file, 0 for unlimited"`
	MaxDepth        int      `json:"max_depth,omitempty" jsonschema:"maximum directory depth, 0 for unlimited"`
	Types           []string `json:"types,omitempty" jsonschema:"restrict to these file types, see list_file_types"`
	Glob            []string `json:"glob,omitempty" jsonschema:"restrict to paths matching these globs"`
	ExcludeGlob     []string `json:"exclude_glob,omitempty" jsonschema:"drop paths matching these globs"`
	MaxFilesize     string   `json:"max_filesize,omitempty" jsonschema:"skip files larger than this, e.g. 10M"`
}

// GrepSearchOutput defines the output schema for the grep_search tool.
type GrepSearchOutput struct {
	Summary string        `json:"summary" jsonschema:"one-line human-readable result summary"`
	Matches []MatchOutput `json:"matches" jsonschema:"matched and context lines"`
	Stats   StatsOutput   `json:"stats" jsonschema:"run statistics"`
	Errors  []string      `json:"errors,omitempty" jsonschema:"non-fatal errors collected during the search"`
}

// MatchOutput is one reported line.
type MatchOutput struct {
	Path   string `json:"path" jsonschema:"file path relative to the search root"`
	Line   int    `json:"line" jsonschema:"1-based line number"`
	Column int    `json:"column" jsonschema:"0-based byte column, 0 for context and inverted lines"`
	Text   string `json:"text" jsonschema:"line content without trailing newline"`
}

// StatsOutput summarizes one search run.
type StatsOutput struct {
	FilesSearched int64  `json:"files_searched" jsonschema:"files opened and scanned"`
	FilesMatched  int64  `json:"files_matched" jsonschema:"files with at least one match"`
	Matches       int64  `json:"matches" jsonschema:"matched lines, context excluded"`
	ElapsedMs     int64  `json:"elapsed_ms" jsonschema:"wall-clock duration in milliseconds"`
	Elapsed       string `json:"elapsed" jsonschema:"human-readable duration"`
}

// ListFileTypesInput defines the input schema for list_file_types (no
// parameters).
type ListFileTypesInput struct{}

// ListFileTypesOutput defines the output schema for list_file_types.
type ListFileTypesOutput struct {
	Types []grep.TypeDef `json:"types" jsonschema:"recognized file types with their extensions"`
}

// grepSearchHandler is the MCP SDK handler for the grep_search tool.
func (s *Server) grepSearchHandler(ctx context.Context, req *mcp.CallToolRequest, input GrepSearchInput) (
	*mcp.CallToolResult,
	GrepSearchOutput,
	error,
) {
	if input.Pattern == "" {
		return nil, GrepSearchOutput{}, trawlerrors.InvalidPattern("", nil)
	}

	root := input.Path
	if root == "" {
		root = "."
	}

	opts, err := s.buildOptions(input)
	if err != nil {
		return nil, GrepSearchOutput{}, err
	}

	start := time.Now()
	res, err := grep.Search(ctx, input.Pattern, root, opts)
	if err != nil {
		return nil, GrepSearchOutput{}, err
	}

	s.logger.Debug("grep_search completed",
		slog.String("pattern", input.Pattern),
		slog.String("root", root),
		slog.Int64("matches", res.Stats.Matches),
		slog.Duration("elapsed", time.Since(start)))

	return nil, toSearchOutput(res), nil
}

// buildOptions layers tool-call parameters over the configured defaults.
func (s *Server) buildOptions(input GrepSearchInput) (*grep.Options, error) {
	opts := s.cfg.Options()

	opts.CaseInsensitive = input.CaseInsensitive
	opts.WordBoundary = input.WordBoundary
	opts.FixedStrings = input.FixedStrings
	opts.Multiline = input.Multiline
	opts.InvertMatch = input.InvertMatch
	if input.Hidden {
		opts.Hidden = true
	}
	if input.NoIgnore {
		opts.GitIgnore = false
	}
	if input.FollowSymlinks {
		opts.FollowSymlinks = true
	}
	if input.ContextBefore > 0 {
		opts.ContextBefore = input.ContextBefore
	}
	if input.ContextAfter > 0 {
		opts.ContextAfter = input.ContextAfter
	}
	if input.MaxCount > 0 {
		opts.MaxCount = input.MaxCount
	}
	if input.MaxDepth > 0 {
		opts.MaxDepth = input.MaxDepth
	}
	if len(input.Types) > 0 {
		opts.FileTypes = input.Types
	}
	if len(input.Glob) > 0 {
		opts.GlobInclude = input.Glob
	}
	if len(input.ExcludeGlob) > 0 {
		opts.GlobExclude = append(opts.GlobExclude, input.ExcludeGlob...)
	}
	if input.MaxFilesize != "" {
		size, err := config.ParseSize(input.MaxFilesize)
		if err != nil {
			return nil, trawlerrors.ConfigError(err.Error(), err)
		}
		opts.MaxFilesize = size
	}

	return &opts, nil
}

func toSearchOutput(res *grep.Result) GrepSearchOutput {
	out := GrepSearchOutput{
		Summary: grep.FormatSummary(res.Stats),
		Matches: make([]MatchOutput, 0, len(res.Matches)),
		Stats: StatsOutput{
			FilesSearched: res.Stats.FilesSearched,
			FilesMatched:  res.Stats.FilesMatched,
			Matches:       res.Stats.Matches,
			ElapsedMs:     res.Stats.Elapsed.Milliseconds(),
			Elapsed:       grep.FormatDuration(res.Stats.Elapsed),
		},
		Errors: res.Errors,
	}
	for _, m := range res.Matches {
		out.Matches = append(out.Matches, MatchOutput(m))
	}
	return out
}

// listFileTypesHandler is the MCP SDK handler for the list_file_types
// tool.
func (s *Server) listFileTypesHandler(ctx context.Context, req *mcp.CallToolRequest, input ListFileTypesInput) (
	*mcp.CallToolResult,
	ListFileTypesOutput,
	error,
) {
	return nil, ListFileTypesOutput{Types: grep.Types()}, nil
}

package grep

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"time"
)

// Match is one reported line: a matched line or a context line around
// one. Context lines and inverted matches carry column 0.
type Match struct {
	Path   string `json:"path"`
	Line   int    `json:"line"`
	Column int    `json:"column"`
	Text   string `json:"text"`
}

// Stats summarizes one search run. Matches counts matched lines only;
// context lines appear in the match sequence but are not counted.
type Stats struct {
	FilesSearched int64         `json:"files_searched"`
	FilesMatched  int64         `json:"files_matched"`
	Matches       int64         `json:"matches"`
	Elapsed       time.Duration `json:"elapsed"`
}

// Result is the outcome of one search: matches in arrival order, run
// statistics, and the non-fatal errors collected along the way.
type Result struct {
	Matches []Match  `json:"matches"`
	Stats   Stats    `json:"stats"`
	Errors  []string `json:"errors,omitempty"`
}

// Search runs one parallel search of pattern under root. Fatal problems
// (bad pattern, bad glob, unknown type, unusable root) return an error
// before any file is opened. Per-file I/O failures and unreadable
// directories never fail the run; they are collected into Result.Errors.
//
// Search is stateless and safe for concurrent use.
func Search(ctx context.Context, pattern, root string, opts *Options) (*Result, error) {
	start := time.Now()
	if opts == nil {
		d := DefaultOptions()
		opts = &d
	}

	// Pattern compilation comes first so an invalid pattern fails before
	// any filesystem access.
	matcher, err := NewMatcher(pattern, opts)
	if err != nil {
		return nil, err
	}

	walker, err := NewWalker(root, opts)
	if err != nil {
		return nil, err
	}

	var filesSearched, filesMatched, matchedLines atomic.Int64
	errs := &errorList{}
	class := classifier{maxFilesize: opts.MaxFilesize, mmap: opts.Mmap}

	coll := newMatchCollector(walker.Workers() * 2)
	coll.run()

	walkErr := walker.Run(ctx, func() VisitFunc {
		s := &fileSearcher{m: matcher, opts: opts, class: class}
		return func(e Entry) WalkState {
			if ctx.Err() != nil {
				return WalkQuit
			}
			if e.Err != nil {
				errs.add(fmt.Sprintf("%s: %v", e.Path, e.Err))
				return WalkContinue
			}
			if e.IsDir {
				return WalkContinue
			}
			if class.oversize(e.Size) {
				return WalkContinue
			}

			filesSearched.Add(1)
			batch, matched, err := s.searchFile(e.Path, e.Rel, e.Size)
			if err != nil {
				if !errors.Is(err, errBinary) {
					errs.add(fmt.Sprintf("%s: %v", e.Path, err))
				}
				return WalkContinue
			}
			if matched > 0 {
				filesMatched.Add(1)
				matchedLines.Add(int64(matched))
				coll.send(batch)
			}
			return WalkContinue
		}
	})

	matches := coll.wait()
	if walkErr != nil {
		errs.add(walkErr.Error())
	}

	return &Result{
		Matches: matches,
		Errors:  errs.list(),
		Stats: Stats{
			FilesSearched: filesSearched.Load(),
			FilesMatched:  filesMatched.Load(),
			Matches:       matchedLines.Load(),
			Elapsed:       time.Since(start),
		},
	}, nil
}

package grep

import (
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	trawlerrors "github.com/trawl-dev/trawl/internal/errors"
)

// globFilter applies include/exclude glob patterns to walked paths.
// Include patterns restrict the walk to matches; each exclude pattern is
// applied as an inverted match.
type globFilter struct {
	include []string
	exclude []string
}

// newGlobFilter validates every pattern up front so a malformed glob fails
// the search before any I/O. Returns nil when no globs are configured.
func newGlobFilter(include, exclude []string) (*globFilter, error) {
	if len(include) == 0 && len(exclude) == 0 {
		return nil, nil
	}

	for _, g := range append(append([]string{}, include...), exclude...) {
		if !doublestar.ValidatePattern(g) {
			return nil, trawlerrors.InvalidGlob(g, doublestar.ErrBadPattern)
		}
	}

	return &globFilter{include: include, exclude: exclude}, nil
}

// match reports whether a file survives the glob filters. rel is the
// slash-separated path relative to the walk root, base its final element.
// A pattern without a separator matches against the basename, mirroring
// gitignore semantics; one with a separator matches the whole relative
// path.
func (f *globFilter) match(rel, base string) bool {
	if f == nil {
		return true
	}

	for _, g := range f.exclude {
		if globMatch(g, rel, base) {
			return false
		}
	}

	if len(f.include) == 0 {
		return true
	}
	for _, g := range f.include {
		if globMatch(g, rel, base) {
			return true
		}
	}
	return false
}

// excludesDir reports whether an exclude pattern matches a directory, in
// which case its whole subtree is pruned. Include patterns never block
// descent; files deeper down may still match them.
func (f *globFilter) excludesDir(rel, base string) bool {
	if f == nil {
		return false
	}
	for _, g := range f.exclude {
		if globMatch(g, rel, base) {
			return true
		}
	}
	return false
}

func globMatch(pattern, rel, base string) bool {
	target := base
	if strings.Contains(pattern, "/") {
		target = rel
	}
	ok, err := doublestar.Match(pattern, target)
	return err == nil && ok
}

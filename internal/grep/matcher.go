package grep

import (
	"regexp"
	"strings"
	"unicode"

	trawlerrors "github.com/trawl-dev/trawl/internal/errors"
)

// Matcher is a compiled, immutable representation of the pattern plus
// matching flags. It is shared read-only by all workers for the duration
// of one search.
type Matcher struct {
	re        *regexp.Regexp
	multiline bool
}

// NewMatcher compiles a pattern with the given options. Flags are applied
// in order: case-insensitivity (explicit or smart case), word-boundary
// wrapping, literal-string quoting, multiline mode.
//
// Returns an InvalidPattern error carrying the engine's diagnostic message
// when the pattern does not compile.
func NewMatcher(pattern string, opts *Options) (*Matcher, error) {
	expr := pattern
	if opts.FixedStrings {
		expr = regexp.QuoteMeta(pattern)
	}
	if opts.WordBoundary {
		expr = `\b(?:` + expr + `)\b`
	}

	var flags []string
	if opts.CaseInsensitive || (opts.SmartCase && !hasUpper(pattern)) {
		flags = append(flags, "i")
	}
	if opts.Multiline {
		// ^ and $ keep matching at line boundaries inside the buffer
		flags = append(flags, "m")
	}
	if len(flags) > 0 {
		expr = "(?" + strings.Join(flags, "") + ")" + expr
	}

	re, err := regexp.Compile(expr)
	if err != nil {
		return nil, trawlerrors.InvalidPattern(pattern, err)
	}

	return &Matcher{re: re, multiline: opts.Multiline}, nil
}

// MatchLine reports whether one line of content matches.
func (m *Matcher) MatchLine(line []byte) bool {
	return m.re.Match(line)
}

// Locate returns the byte offset of the first match within an
// already-matched line. The second return is false when the matcher
// cannot localize a sub-match (e.g. under invert mode); callers report
// column 0 in that case.
func (m *Matcher) Locate(line []byte) (int, bool) {
	loc := m.re.FindIndex(line)
	if loc == nil {
		return 0, false
	}
	return loc[0], true
}

// FindAll returns the byte ranges of every match in the buffer.
// Used by the multiline scan.
func (m *Matcher) FindAll(buf []byte) [][]int {
	return m.re.FindAllIndex(buf, -1)
}

// hasUpper reports whether the pattern contains an uppercase letter,
// skipping characters introduced by a backslash escape so that classes
// like \W do not defeat smart case.
func hasUpper(pattern string) bool {
	escaped := false
	for _, r := range pattern {
		if escaped {
			escaped = false
			continue
		}
		if r == '\\' {
			escaped = true
			continue
		}
		if unicode.IsUpper(r) {
			return true
		}
	}
	return false
}

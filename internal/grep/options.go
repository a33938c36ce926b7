package grep

// Options configures one search. It is read-only once a search starts;
// every worker reads the same shared copy.
type Options struct {
	// CaseInsensitive forces case-insensitive matching (-i).
	CaseInsensitive bool

	// SmartCase enables case-insensitive matching only when the pattern
	// contains no uppercase letters. Ignored when CaseInsensitive is set.
	SmartCase bool

	// WordBoundary matches whole words only (-w).
	WordBoundary bool

	// ContextBefore is the number of lines of context before each match (-B).
	ContextBefore int

	// ContextAfter is the number of lines of context after each match (-A).
	ContextAfter int

	// InvertMatch reports non-matching lines instead (-v).
	InvertMatch bool

	// Hidden includes hidden files and directories.
	Hidden bool

	// FollowSymlinks traverses symlinked directories and files.
	FollowSymlinks bool

	// GitIgnore honors .gitignore files, the global excludes file, and
	// the repository's .git/info/exclude.
	GitIgnore bool

	// MaxDepth caps recursion depth (0 = unlimited).
	MaxDepth int

	// Threads is the walker worker count (0 = auto-detect).
	Threads int

	// FileTypes restricts the walk to files of these recognized type
	// names (e.g. "go", "py"). Unknown names fail the search.
	FileTypes []string

	// GlobInclude restricts the walk to paths matching these globs.
	GlobInclude []string

	// GlobExclude drops paths matching these globs.
	GlobExclude []string

	// MaxFilesize skips files larger than this many bytes (0 = unlimited).
	MaxFilesize int64

	// Mmap permits memory-mapped reads for large files.
	Mmap bool

	// FixedStrings treats the pattern as literal text, not a regex.
	FixedStrings bool

	// Multiline allows matches spanning line boundaries.
	Multiline bool

	// MaxCount caps matches per file (0 = unlimited).
	MaxCount int
}

// DefaultOptions returns the default option set: smart case on, gitignore
// honored, mmap permitted, everything else off.
func DefaultOptions() Options {
	return Options{
		SmartCase: true,
		GitIgnore: true,
		Mmap:      true,
	}
}

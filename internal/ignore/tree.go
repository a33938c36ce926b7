package ignore

import (
	"os"
	"path/filepath"
	"strings"
	"sync"

	lru "github.com/hashicorp/golang-lru/v2"
)

// matcherCacheSize is the maximum number of per-directory matchers to cache.
// This bounds memory on very deep or wide trees.
const matcherCacheSize = 1000

// Tree answers "is this path ignored?" for a single walk root, combining
// the three gitignore tiers:
//
//  1. per-directory .gitignore files, discovered lazily during the walk
//  2. the user's global excludes file ($XDG_CONFIG_HOME/git/ignore or
//     ~/.config/git/ignore)
//  3. the repository's .git/info/exclude
//
// A Tree is built once per search and read concurrently by all workers.
type Tree struct {
	root string

	global *Matcher // nil when absent
	repo   *Matcher // nil when absent

	// cache holds parsed per-directory matchers keyed by absolute directory.
	cache   *lru.Cache[string, *Matcher]
	cacheMu sync.RWMutex
}

// NewTree creates a Tree rooted at the given absolute directory.
func NewTree(root string) (*Tree, error) {
	cache, err := lru.New[string, *Matcher](matcherCacheSize)
	if err != nil {
		return nil, err
	}

	t := &Tree{
		root:  root,
		cache: cache,
	}

	if path := globalExcludesPath(); path != "" {
		t.global = loadMatcher(path, "")
	}

	repoExclude := filepath.Join(root, ".git", "info", "exclude")
	t.repo = loadMatcher(repoExclude, "")

	return t, nil
}

// Ignored reports whether the path (relative to the walk root, slash or
// native separators) is excluded by any tier.
func (t *Tree) Ignored(rel string, isDir bool) bool {
	rel = filepath.ToSlash(rel)

	if t.global != nil && t.global.Match(rel, isDir) {
		return true
	}
	if t.repo != nil && t.repo.Match(rel, isDir) {
		return true
	}

	// Root .gitignore first, then nested ones down the parent chain.
	if m := t.dirMatcher(t.root, ""); m != nil && m.Match(rel, isDir) {
		return true
	}

	dir := filepath.Dir(filepath.FromSlash(rel))
	if dir == "." {
		return false
	}

	parts := strings.Split(filepath.ToSlash(dir), "/")
	currentDir := t.root
	currentBase := ""

	for _, part := range parts {
		currentDir = filepath.Join(currentDir, part)
		if currentBase == "" {
			currentBase = part
		} else {
			currentBase = currentBase + "/" + part
		}

		if m := t.dirMatcher(currentDir, currentBase); m != nil && m.Match(rel, isDir) {
			return true
		}
	}

	return false
}

// dirMatcher gets or creates the matcher for one directory's .gitignore.
// Returns nil when the directory has no .gitignore.
func (t *Tree) dirMatcher(dir, base string) *Matcher {
	t.cacheMu.RLock()
	matcher, ok := t.cache.Get(dir)
	t.cacheMu.RUnlock()
	if ok {
		return matcher
	}

	matcher = loadMatcher(filepath.Join(dir, ".gitignore"), base)

	t.cacheMu.Lock()
	t.cache.Add(dir, matcher)
	t.cacheMu.Unlock()

	return matcher
}

// loadMatcher parses one ignore file, returning nil when it doesn't exist
// or can't be read.
func loadMatcher(path, base string) *Matcher {
	if _, err := os.Stat(path); err != nil {
		return nil
	}

	m := New()
	if err := m.AddFromFile(path, base); err != nil {
		return nil
	}
	return m
}

// globalExcludesPath returns the user's global git excludes file, or ""
// when none exists. Only the default locations are consulted; a custom
// core.excludesFile setting is not parsed.
func globalExcludesPath() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		// XDG_CONFIG_HOME replaces ~/.config entirely, no fallback
		p := filepath.Join(xdg, "git", "ignore")
		if _, err := os.Stat(p); err == nil {
			return p
		}
		return ""
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	p := filepath.Join(home, ".config", "git", "ignore")
	if _, err := os.Stat(p); err == nil {
		return p
	}
	return ""
}

package grep

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestSearcher(t *testing.T, pattern string, opts Options) *fileSearcher {
	t.Helper()
	m, err := NewMatcher(pattern, &opts)
	require.NoError(t, err)
	return &fileSearcher{
		m:     m,
		opts:  &opts,
		class: classifier{maxFilesize: opts.MaxFilesize, mmap: opts.Mmap},
	}
}

func TestScanLinesBasic(t *testing.T) {
	s := newTestSearcher(t, "needle", Options{})
	matches, _ := s.scanLines([]byte("hay\nthe needle here\nhay\n"), "f.txt")

	require.Len(t, matches, 1)
	assert.Equal(t, "f.txt", matches[0].Path)
	assert.Equal(t, 2, matches[0].Line)
	assert.Equal(t, 4, matches[0].Column)
	assert.Equal(t, "the needle here", matches[0].Text)
}

func TestScanLinesTrimsCarriageReturn(t *testing.T) {
	s := newTestSearcher(t, "foo", Options{})
	matches, _ := s.scanLines([]byte("foo\r\nbar\r\n"), "f.txt")

	require.Len(t, matches, 1)
	assert.Equal(t, "foo", matches[0].Text)
}

func TestScanLinesNoTrailingNewline(t *testing.T) {
	s := newTestSearcher(t, "end", Options{})
	matches, _ := s.scanLines([]byte("first\nthe end"), "f.txt")

	require.Len(t, matches, 1)
	assert.Equal(t, 2, matches[0].Line)
	assert.Equal(t, "the end", matches[0].Text)
}

func TestScanLinesContext(t *testing.T) {
	s := newTestSearcher(t, "match", Options{ContextBefore: 1, ContextAfter: 1})
	data := []byte("a\nb\nmatch\nc\nd\n")
	matches, matched := s.scanLines(data, "f.txt")

	// context lines are reported but only the matching line is counted
	assert.Equal(t, 1, matched)
	require.Len(t, matches, 3)
	assert.Equal(t, Match{Path: "f.txt", Line: 2, Column: 0, Text: "b"}, matches[0])
	assert.Equal(t, 3, matches[1].Line)
	assert.Equal(t, 0, matches[1].Column)
	assert.Equal(t, Match{Path: "f.txt", Line: 4, Column: 0, Text: "c"}, matches[2])
}

func TestScanLinesOverlappingContextNotDuplicated(t *testing.T) {
	s := newTestSearcher(t, "match", Options{ContextBefore: 2, ContextAfter: 2})
	data := []byte("match\nx\nmatch\ny\n")
	matches, _ := s.scanLines(data, "f.txt")

	// every line appears exactly once
	seen := map[int]int{}
	for _, m := range matches {
		seen[m.Line]++
	}
	for line, n := range seen {
		assert.Equal(t, 1, n, "line %d emitted %d times", line, n)
	}
	assert.Len(t, matches, 4)
}

func TestScanLinesInvert(t *testing.T) {
	s := newTestSearcher(t, "skip", Options{InvertMatch: true})
	matches, _ := s.scanLines([]byte("skip\nkeep one\nskip\nkeep two\n"), "f.txt")

	require.Len(t, matches, 2)
	assert.Equal(t, 2, matches[0].Line)
	assert.Equal(t, 0, matches[0].Column)
	assert.Equal(t, "keep one", matches[0].Text)
	assert.Equal(t, 4, matches[1].Line)
	assert.Equal(t, 0, matches[1].Column)
}

func TestScanLinesMaxCount(t *testing.T) {
	s := newTestSearcher(t, "hit", Options{MaxCount: 2, ContextAfter: 3})
	data := []byte("hit\nhit\nhit\nafter\n")
	matches, _ := s.scanLines(data, "f.txt")

	// the cap stops the scan immediately, no trailing context
	require.Len(t, matches, 2)
	assert.Equal(t, 1, matches[0].Line)
	assert.Equal(t, 2, matches[1].Line)
}

func TestScanLinesMaxCountIgnoresContext(t *testing.T) {
	s := newTestSearcher(t, "hit", Options{MaxCount: 2, ContextBefore: 1})
	data := []byte("a\nhit\nb\nhit\nhit\n")
	matches, matched := s.scanLines(data, "f.txt")

	// two matched lines plus their context lines
	assert.Equal(t, 2, matched)
	var hits int
	for _, m := range matches {
		if m.Text == "hit" {
			hits++
		}
	}
	assert.Equal(t, 2, hits)
}

func TestScanMultiline(t *testing.T) {
	s := newTestSearcher(t, "foo\nbar", Options{Multiline: true})
	data := []byte("x\nfoo\nbar\ny\n")
	matches, _ := s.scanMultiline(data, "f.txt")

	require.Len(t, matches, 1)
	assert.Equal(t, 2, matches[0].Line)
	assert.Equal(t, 0, matches[0].Column)
	assert.Equal(t, "foo", matches[0].Text)
}

func TestScanMultilineColumn(t *testing.T) {
	s := newTestSearcher(t, "ab\ncd", Options{Multiline: true})
	data := []byte("xx ab\ncd yy\n")
	matches, _ := s.scanMultiline(data, "f.txt")

	require.Len(t, matches, 1)
	assert.Equal(t, 1, matches[0].Line)
	assert.Equal(t, 3, matches[0].Column)
}

func TestScanMultilineSameLineCollapses(t *testing.T) {
	s := newTestSearcher(t, "a+", Options{Multiline: true})
	matches, _ := s.scanMultiline([]byte("aa bb aa\n"), "f.txt")

	require.Len(t, matches, 1)
	assert.Equal(t, 1, matches[0].Line)
}

func TestSearchFileBinaryAborted(t *testing.T) {
	root := t.TempDir()
	path := filepath.Join(root, "bin.dat")
	require.NoError(t, os.WriteFile(path, []byte("match\x00match"), 0o644))

	s := newTestSearcher(t, "match", Options{})
	matches, _, err := s.searchFile(path, "bin.dat", 11)
	assert.ErrorIs(t, err, errBinary)
	assert.Nil(t, matches)
}

func TestSearchFileEmpty(t *testing.T) {
	root := t.TempDir()
	path := filepath.Join(root, "empty.txt")
	require.NoError(t, os.WriteFile(path, nil, 0o644))

	s := newTestSearcher(t, "anything", Options{})
	matches, _, err := s.searchFile(path, "empty.txt", 0)
	require.NoError(t, err)
	assert.Empty(t, matches)
}

func TestSearchFileReadError(t *testing.T) {
	s := newTestSearcher(t, "x", Options{})
	_, _, err := s.searchFile(filepath.Join(t.TempDir(), "gone.txt"), "gone.txt", 10)
	assert.Error(t, err)
	assert.NotErrorIs(t, err, errBinary)
}

func TestLineStarts(t *testing.T) {
	assert.Equal(t, []int{0}, lineStarts([]byte("one line")))
	assert.Equal(t, []int{0, 2, 4}, lineStarts([]byte("a\nb\nc")))
	assert.Equal(t, []int{0}, lineStarts([]byte("trailing\n")))
}

func TestClassifier(t *testing.T) {
	c := classifier{maxFilesize: 100, mmap: true}
	assert.False(t, c.oversize(100))
	assert.True(t, c.oversize(101))
	assert.False(t, classifier{mmap: true}.oversize(1<<40))

	assert.False(t, c.useMmap(mmapThreshold-1))
	assert.True(t, c.useMmap(mmapThreshold))
	assert.False(t, classifier{mmap: false}.useMmap(mmapThreshold))
}

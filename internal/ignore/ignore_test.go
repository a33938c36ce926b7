package ignore

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMatchBasicPatterns(t *testing.T) {
	tests := []struct {
		name    string
		pattern string
		path    string
		isDir   bool
		want    bool
	}{
		{name: "exact file", pattern: "secret.txt", path: "secret.txt", want: true},
		{name: "exact file nested", pattern: "secret.txt", path: "a/b/secret.txt", want: true},
		{name: "no match", pattern: "secret.txt", path: "public.txt", want: false},
		{name: "star extension", pattern: "*.log", path: "debug.log", want: true},
		{name: "star extension nested", pattern: "*.log", path: "logs/debug.log", want: true},
		{name: "star does not cross slash", pattern: "a*b", path: "a/b", want: false},
		{name: "question mark", pattern: "file?.txt", path: "file1.txt", want: true},
		{name: "question mark no match", pattern: "file?.txt", path: "file12.txt", want: false},
		{name: "char class", pattern: "file[0-9].txt", path: "file7.txt", want: true},
		{name: "char class no match", pattern: "file[0-9].txt", path: "filex.txt", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := New()
			m.AddPattern(tt.pattern)
			assert.Equal(t, tt.want, m.Match(tt.path, tt.isDir))
		})
	}
}

func TestMatchDirOnlyPatterns(t *testing.T) {
	m := New()
	m.AddPattern("build/")

	assert.True(t, m.Match("build", true))
	assert.False(t, m.Match("build", false), "dir-only pattern must not match a plain file")
	assert.True(t, m.Match("build/out.o", false), "files inside the dir match")
	assert.True(t, m.Match("sub/build/out.o", false))
}

func TestMatchAnchoredPatterns(t *testing.T) {
	m := New()
	m.AddPattern("/vendor")

	assert.True(t, m.Match("vendor", true))
	assert.False(t, m.Match("third_party/vendor", true), "anchored pattern only matches at root")

	m2 := New()
	m2.AddPattern("doc/frotz")
	assert.True(t, m2.Match("doc/frotz", false))
	assert.False(t, m2.Match("sub/doc/frotz", false), "pattern with internal slash is anchored")
}

func TestMatchNegation(t *testing.T) {
	m := New()
	m.AddPattern("*.log")
	m.AddPattern("!keep.log")

	assert.True(t, m.Match("debug.log", false))
	assert.False(t, m.Match("keep.log", false), "later negation wins")
}

func TestMatchDoubleStar(t *testing.T) {
	m := New()
	m.AddPattern("**/node_modules")

	assert.True(t, m.Match("node_modules", true))
	assert.True(t, m.Match("a/b/node_modules", true))

	m2 := New()
	m2.AddPattern("logs/**")
	assert.True(t, m2.Match("logs/a/b/c.txt", false))
	assert.False(t, m2.Match("other/a.txt", false))
}

func TestAddPatternSkipsCommentsAndBlank(t *testing.T) {
	m := New()
	m.AddPattern("# a comment")
	m.AddPattern("")
	m.AddPattern("   ")
	assert.Equal(t, 0, m.Len())

	m.AddPattern(`\#literal`)
	assert.Equal(t, 1, m.Len())
	assert.True(t, m.Match("#literal", false))
}

func TestAddPatternWithBase(t *testing.T) {
	m := New()
	m.AddPatternWithBase("*.tmp", "sub")

	assert.True(t, m.Match("sub/x.tmp", false))
	assert.False(t, m.Match("x.tmp", false), "based rule only applies under its directory")
	assert.False(t, m.Match("other/x.tmp", false))
}

func TestAddFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".gitignore")
	content := "# ignore logs\n*.log\n\n!important.log\nbuild/\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	m := New()
	require.NoError(t, m.AddFromFile(path, ""))

	assert.True(t, m.Match("a.log", false))
	assert.False(t, m.Match("important.log", false))
	assert.True(t, m.Match("build/x", false))
}

func TestAddFromFileMissing(t *testing.T) {
	m := New()
	err := m.AddFromFile(filepath.Join(t.TempDir(), "nope"), "")
	assert.Error(t, err)
}

package grep

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	trawlerrors "github.com/trawl-dev/trawl/internal/errors"
)

func TestNewMatcher(t *testing.T) {
	tests := []struct {
		name    string
		pattern string
		opts    Options
		line    string
		want    bool
	}{
		{
			name:    "plain literal",
			pattern: "hello",
			line:    "say hello world",
			want:    true,
		},
		{
			name:    "regex alternation",
			pattern: "foo|bar",
			line:    "only bar here",
			want:    true,
		},
		{
			name:    "smart case lowercase pattern matches uppercase",
			pattern: "foo",
			opts:    Options{SmartCase: true},
			line:    "FOO",
			want:    true,
		},
		{
			name:    "smart case uppercase pattern stays sensitive",
			pattern: "Foo",
			opts:    Options{SmartCase: true},
			line:    "foo",
			want:    false,
		},
		{
			name:    "explicit case insensitive",
			pattern: "FOO",
			opts:    Options{CaseInsensitive: true},
			line:    "foo",
			want:    true,
		},
		{
			name:    "word boundary rejects substring",
			pattern: "cat",
			opts:    Options{WordBoundary: true},
			line:    "concatenate",
			want:    false,
		},
		{
			name:    "word boundary accepts whole word",
			pattern: "cat",
			opts:    Options{WordBoundary: true},
			line:    "a cat sat",
			want:    true,
		},
		{
			name:    "fixed strings treats metachars literally",
			pattern: "a.b*c",
			opts:    Options{FixedStrings: true},
			line:    "xx a.b*c yy",
			want:    true,
		},
		{
			name:    "fixed strings does not match as regex",
			pattern: "a.b*c",
			opts:    Options{FixedStrings: true},
			line:    "axbbc",
			want:    false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, err := NewMatcher(tt.pattern, &tt.opts)
			require.NoError(t, err)
			assert.Equal(t, tt.want, m.MatchLine([]byte(tt.line)))
		})
	}
}

func TestNewMatcherInvalidPattern(t *testing.T) {
	_, err := NewMatcher("[unclosed", &Options{})
	require.Error(t, err)
	assert.Equal(t, trawlerrors.ErrCodeInvalidPattern, trawlerrors.CodeOf(err))
}

func TestMatcherLocate(t *testing.T) {
	m, err := NewMatcher("bar", &Options{})
	require.NoError(t, err)

	col, ok := m.Locate([]byte("foo bar baz"))
	assert.True(t, ok)
	assert.Equal(t, 4, col)

	_, ok = m.Locate([]byte("no match here"))
	assert.False(t, ok)
}

func TestHasUpper(t *testing.T) {
	tests := []struct {
		pattern string
		want    bool
	}{
		{"foo", false},
		{"Foo", true},
		{`\Wfoo`, false},
		{`\\Foo`, true},
		{"", false},
		{"123", false},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, hasUpper(tt.pattern), "pattern %q", tt.pattern)
	}
}

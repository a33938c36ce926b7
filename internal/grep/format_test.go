package grep

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		d    time.Duration
		want string
	}{
		{42 * time.Millisecond, "42 ms"},
		{999 * time.Millisecond, "999 ms"},
		{1500 * time.Millisecond, "1.5 seconds"},
		{9900 * time.Millisecond, "9.9 seconds"},
		{42 * time.Second, "42 seconds"},
		{3 * time.Minute, "3 minutes"},
		{3*time.Minute + 12*time.Second, "3 minutes 12 seconds"},
		{2 * time.Hour, "2 hours 0 minutes"},
		{2*time.Hour + 5*time.Minute, "2 hours 5 minutes"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatDuration(tt.d), "duration %v", tt.d)
	}
}

func TestFormatSummary(t *testing.T) {
	tests := []struct {
		stats Stats
		want  string
	}{
		{
			Stats{Matches: 2, FilesSearched: 10, Elapsed: 7 * time.Millisecond},
			"2 RESULTS ACROSS 10 FILES. Search completed in 7 ms.",
		},
		{
			Stats{Matches: 1, FilesSearched: 1, Elapsed: time.Millisecond},
			"1 RESULT ACROSS 1 FILE. Search completed in 1 ms.",
		},
		{
			Stats{Elapsed: time.Millisecond},
			"0 RESULTS ACROSS 0 FILES. Search completed in 1 ms.",
		},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatSummary(tt.stats))
	}
}

func TestFormatResult(t *testing.T) {
	r := &Result{
		Matches: []Match{
			{Path: "a.go", Line: 3, Column: 4, Text: "some match"},
			{Path: "b.go", Line: 1, Column: 0, Text: "another"},
		},
		Stats: Stats{
			FilesSearched: 10,
			FilesMatched:  2,
			Matches:       2,
			Elapsed:       7 * time.Millisecond,
		},
	}

	out := FormatResult(r)
	assert.Contains(t, out, "2 RESULTS ACROSS 10 FILES. Search completed in 7 ms.\n\n")
	assert.Contains(t, out, "a.go:3:4: some match\n")
	assert.Contains(t, out, "b.go:1:0: another\n")
	assert.NotContains(t, out, "errors encountered")
}

func TestFormatResultEmpty(t *testing.T) {
	r := &Result{Stats: Stats{Elapsed: time.Millisecond}}
	out := FormatResult(r)
	assert.Equal(t, "0 RESULTS ACROSS 0 FILES. Search completed in 1 ms.\n\n", out)
}

func TestFormatResultErrors(t *testing.T) {
	r := &Result{
		Stats:  Stats{Elapsed: time.Millisecond},
		Errors: []string{"x.txt: permission denied", "y/: unreadable"},
	}

	out := FormatResult(r)
	assert.Contains(t, out, "2 errors encountered:\n")
	assert.Contains(t, out, "  x.txt: permission denied\n")
	assert.Contains(t, out, "  y/: unreadable\n")
}

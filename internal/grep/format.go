package grep

import (
	"fmt"
	"strings"
	"time"
)

// FormatResult renders a result as plain text: a summary header, one
// "path:line:col: text" line per match, and a trailing error block when
// any non-fatal errors were collected.
func FormatResult(r *Result) string {
	var b strings.Builder

	b.WriteString(FormatSummary(r.Stats))
	b.WriteString("\n\n")

	for _, m := range r.Matches {
		fmt.Fprintf(&b, "%s:%d:%d: %s\n", m.Path, m.Line, m.Column, m.Text)
	}

	if len(r.Errors) > 0 {
		fmt.Fprintf(&b, "\n%d errors encountered:\n", len(r.Errors))
		for _, e := range r.Errors {
			b.WriteString("  " + e + "\n")
		}
	}

	return b.String()
}

// FormatSummary renders the one-line run summary. The file count is the
// number of files searched, not the number that matched.
func FormatSummary(st Stats) string {
	resultWord := "RESULTS"
	if st.Matches == 1 {
		resultWord = "RESULT"
	}
	fileWord := "FILES"
	if st.FilesSearched == 1 {
		fileWord = "FILE"
	}
	return fmt.Sprintf("%d %s ACROSS %d %s. Search completed in %s.",
		st.Matches, resultWord, st.FilesSearched, fileWord, FormatDuration(st.Elapsed))
}

// FormatDuration renders an elapsed duration at human granularity:
// milliseconds under a second, tenths of a second under ten seconds,
// whole seconds under a minute, then minute and hour breakdowns. The
// seconds part is dropped from the minutes form when it is zero.
func FormatDuration(d time.Duration) string {
	switch {
	case d < time.Second:
		return fmt.Sprintf("%d ms", d.Milliseconds())
	case d < 10*time.Second:
		return fmt.Sprintf("%.1f seconds", d.Seconds())
	case d < time.Minute:
		return fmt.Sprintf("%d seconds", int(d.Seconds()))
	case d < time.Hour:
		mins := int(d.Minutes())
		secs := int(d.Seconds()) % 60
		if secs == 0 {
			return fmt.Sprintf("%d minutes", mins)
		}
		return fmt.Sprintf("%d minutes %d seconds", mins, secs)
	default:
		return fmt.Sprintf("%d hours %d minutes", int(d.Hours()), int(d.Minutes())%60)
	}
}

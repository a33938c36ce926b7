package errors

import (
	"fmt"
	"strings"
)

// FormatForCLI formats an error for CLI output.
// Uses a concise format suitable for terminal display.
func FormatForCLI(err error) string {
	if err == nil {
		return ""
	}

	te, ok := err.(*TrawlError)
	if !ok {
		// Wrap standard error
		te = Wrap(ErrCodeInternal, err)
	}

	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("Error: %s\n", te.Message))

	if te.Suggestion != "" {
		sb.WriteString(fmt.Sprintf("  Hint: %s\n", te.Suggestion))
	}

	sb.WriteString(fmt.Sprintf("  Code: %s\n", te.Code))

	return sb.String()
}

// Summarize renders the non-fatal error list of a search result for
// display: a count plus the first few messages.
func Summarize(errs []string, max int) string {
	if len(errs) == 0 {
		return ""
	}
	if max <= 0 {
		max = 5
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%d error(s) encountered:\n", len(errs)))
	for i, e := range errs {
		if i >= max {
			sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(errs)-max))
			break
		}
		sb.WriteString(fmt.Sprintf("  %s\n", e))
	}
	return sb.String()
}

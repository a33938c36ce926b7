// Package output renders search results and CLI messages.
package output

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/mattn/go-isatty"

	trawlerrors "github.com/trawl-dev/trawl/internal/errors"
	"github.com/trawl-dev/trawl/internal/grep"
)

// Format selects the result encoding.
type Format string

const (
	// FormatText renders human-readable "path:line:col: text" output.
	FormatText Format = "text"
	// FormatJSON renders the full result as JSON.
	FormatJSON Format = "json"
)

// Writer renders search results to a destination.
type Writer struct {
	out    io.Writer
	styles Styles
	format Format
}

// New creates a Writer. colorMode is "auto", "always", or "never"; in
// auto mode color is enabled only when out is a terminal.
func New(out io.Writer, colorMode string, format Format) *Writer {
	return &Writer{
		out:    out,
		styles: GetStyles(!shouldColor(colorMode, out)),
		format: format,
	}
}

// PrintResult renders one search result in the configured format.
// Write errors are returned so a broken pipe surfaces to the caller.
func (w *Writer) PrintResult(r *grep.Result) error {
	if w.format == FormatJSON {
		enc := json.NewEncoder(w.out)
		enc.SetIndent("", "  ")
		return enc.Encode(r)
	}
	return w.printText(r)
}

func (w *Writer) printText(r *grep.Result) error {
	if _, err := fmt.Fprintf(w.out, "%s\n\n", w.styles.Summary.Render(grep.FormatSummary(r.Stats))); err != nil {
		return err
	}

	for _, m := range r.Matches {
		_, err := fmt.Fprintf(w.out, "%s%s%s%s %s\n",
			w.styles.Path.Render(m.Path),
			w.styles.Dim.Render(":"),
			w.styles.LineNo.Render(fmt.Sprintf("%d:%d", m.Line, m.Column)),
			w.styles.Dim.Render(":"),
			m.Text)
		if err != nil {
			return err
		}
	}

	if len(r.Errors) > 0 {
		if _, err := fmt.Fprintf(w.out, "\n%s\n",
			w.styles.Warning.Render(trawlerrors.Summarize(r.Errors, 10))); err != nil {
			return err
		}
	}

	return nil
}

// PrintError renders a fatal error with its suggestion and code.
// Write failures are ignored; there is nowhere left to report them.
func (w *Writer) PrintError(err error) {
	_, _ = fmt.Fprintln(w.out, w.styles.Error.Render(trawlerrors.FormatForCLI(err)))
}

// PrintTypes renders the recognized file types as an aligned table.
func (w *Writer) PrintTypes(defs []grep.TypeDef) error {
	if w.format == FormatJSON {
		enc := json.NewEncoder(w.out)
		enc.SetIndent("", "  ")
		return enc.Encode(defs)
	}

	for _, d := range defs {
		name := w.styles.Path.Render(fmt.Sprintf("%-12s", d.Name))
		if _, err := fmt.Fprintf(w.out, "%s", name); err != nil {
			return err
		}
		for i, ext := range d.Extensions {
			if i > 0 {
				if _, err := fmt.Fprint(w.out, ", "); err != nil {
					return err
				}
			}
			if _, err := fmt.Fprint(w.out, ext); err != nil {
				return err
			}
		}
		if _, err := fmt.Fprintln(w.out); err != nil {
			return err
		}
	}
	return nil
}

// shouldColor resolves a color mode against the destination.
func shouldColor(mode string, out io.Writer) bool {
	switch mode {
	case "always":
		return true
	case "never":
		return false
	default:
		if os.Getenv("NO_COLOR") != "" {
			return false
		}
		return IsTTY(out)
	}
}

// IsTTY checks if the writer is a terminal.
func IsTTY(w io.Writer) bool {
	if f, ok := w.(*os.File); ok {
		return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
	}
	return false
}

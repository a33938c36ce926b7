package grep

import (
	"bytes"
	"errors"
	"os"
	"sort"

	"github.com/edsrzf/mmap-go"
)

// errBinary marks a file abandoned because it contains a NUL byte. The
// coordinator suppresses it; binary files are skipped silently, not
// reported as errors.
var errBinary = errors.New("binary content")

// fileSearcher scans one file at a time against a shared matcher. Each
// walker worker owns its own instance.
type fileSearcher struct {
	m     *Matcher
	opts  *Options
	class classifier
}

// searchFile reads and scans a single file, returning its reported lines
// in file order plus the number of them that actually matched (context
// lines are reported but not counted). A NUL byte anywhere in the content
// aborts the whole file with errBinary, discarding any matches found so
// far.
func (s *fileSearcher) searchFile(path, rel string, size int64) ([]Match, int, error) {
	if size == 0 {
		return nil, 0, nil
	}

	data, cleanup, err := s.read(path, size)
	if err != nil {
		return nil, 0, err
	}
	defer cleanup()

	if bytes.IndexByte(data, 0) >= 0 {
		return nil, 0, errBinary
	}

	if s.m.multiline {
		out, matched := s.scanMultiline(data, rel)
		return out, matched, nil
	}
	out, matched := s.scanLines(data, rel)
	return out, matched, nil
}

// read returns the file content and a cleanup func. Large files are
// memory-mapped when permitted; mapping failures fall back to a plain
// read rather than failing the file.
func (s *fileSearcher) read(path string, size int64) ([]byte, func(), error) {
	if s.class.useMmap(size) {
		f, err := os.Open(path)
		if err != nil {
			return nil, nil, err
		}
		mm, err := mmap.Map(f, mmap.RDONLY, 0)
		if err == nil {
			return mm, func() {
				mm.Unmap()
				f.Close()
			}, nil
		}
		f.Close()
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, err
	}
	return data, func() {}, nil
}

// scanLines runs the line-oriented scan: per-line matching with invert
// mode, before/after context, and the per-file match cap. Context lines
// carry column 0 and count toward neither the cap nor the matched total.
func (s *fileSearcher) scanLines(data []byte, rel string) ([]Match, int) {
	var (
		out         []Match
		before      []contextLine
		afterLeft   int
		lastEmitted int
		count       int
		lineNo      int
	)

	for off := 0; off < len(data); {
		nl := bytes.IndexByte(data[off:], '\n')
		var line []byte
		if nl < 0 {
			line = data[off:]
			off = len(data)
		} else {
			line = data[off : off+nl]
			off += nl + 1
		}
		lineNo++
		line = bytes.TrimSuffix(line, []byte{'\r'})

		matched := s.m.MatchLine(line) != s.opts.InvertMatch
		if matched {
			for _, c := range before {
				if c.no > lastEmitted {
					out = append(out, Match{Path: rel, Line: c.no, Column: 0, Text: c.text})
					lastEmitted = c.no
				}
			}
			before = before[:0]

			col := 0
			if !s.opts.InvertMatch {
				col, _ = s.m.Locate(line)
			}
			out = append(out, Match{Path: rel, Line: lineNo, Column: col, Text: string(line)})
			lastEmitted = lineNo
			count++
			if s.opts.MaxCount > 0 && count >= s.opts.MaxCount {
				break
			}
			afterLeft = s.opts.ContextAfter
			continue
		}

		if afterLeft > 0 {
			out = append(out, Match{Path: rel, Line: lineNo, Column: 0, Text: string(line)})
			lastEmitted = lineNo
			afterLeft--
			continue
		}

		if s.opts.ContextBefore > 0 {
			before = append(before, contextLine{no: lineNo, text: string(line)})
			if len(before) > s.opts.ContextBefore {
				before = before[1:]
			}
		}
	}

	return out, count
}

// scanMultiline runs the whole-buffer scan for patterns that may span
// line boundaries. Each match is reported at the line and column where it
// starts; multiple matches starting on the same line collapse into one.
// Invert mode has no multiline interpretation, so it falls back to the
// line scan.
func (s *fileSearcher) scanMultiline(data []byte, rel string) ([]Match, int) {
	if s.opts.InvertMatch {
		return s.scanLines(data, rel)
	}

	locs := s.m.FindAll(data)
	if len(locs) == 0 {
		return nil, 0
	}

	starts := lineStarts(data)
	var out []Match
	lastLine := 0
	for _, loc := range locs {
		// index of the line containing the match start
		idx := sort.Search(len(starts), func(i int) bool { return starts[i] > loc[0] }) - 1
		lineNo := idx + 1
		if lineNo == lastLine {
			continue
		}
		lastLine = lineNo

		end := len(data)
		if idx+1 < len(starts) {
			end = starts[idx+1] - 1
		}
		text := bytes.TrimSuffix(data[starts[idx]:end], []byte{'\r'})

		out = append(out, Match{
			Path:   rel,
			Line:   lineNo,
			Column: loc[0] - starts[idx],
			Text:   string(text),
		})
		if s.opts.MaxCount > 0 && len(out) >= s.opts.MaxCount {
			break
		}
	}
	return out, len(out)
}

// lineStarts returns the byte offset of the first character of each line.
func lineStarts(data []byte) []int {
	starts := []int{0}
	for i, b := range data {
		if b == '\n' && i+1 < len(data) {
			starts = append(starts, i+1)
		}
	}
	return starts
}

type contextLine struct {
	no   int
	text string
}

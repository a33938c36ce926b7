package grep

import (
	"path/filepath"
	"sort"
	"strings"

	trawlerrors "github.com/trawl-dev/trawl/internal/errors"
)

// fileTypes maps recognized type names to the extensions they cover.
// A leading dot marks an extension; anything else is an exact filename
// (Makefile, Dockerfile).
var fileTypes = map[string][]string{
	"c":          {".c", ".h"},
	"cpp":        {".cpp", ".cc", ".cxx", ".hpp", ".hh", ".hxx"},
	"csharp":     {".cs"},
	"css":        {".css", ".scss", ".sass", ".less"},
	"dockerfile": {"Dockerfile", ".dockerfile"},
	"go":         {".go"},
	"html":       {".html", ".htm"},
	"java":       {".java"},
	"js":         {".js", ".jsx", ".mjs", ".cjs"},
	"json":       {".json"},
	"kotlin":     {".kt", ".kts"},
	"lua":        {".lua"},
	"make":       {"Makefile", "makefile", ".mk"},
	"md":         {".md", ".mdx", ".markdown"},
	"php":        {".php"},
	"proto":      {".proto"},
	"py":         {".py", ".pyw", ".pyi"},
	"rb":         {".rb", ".rake"},
	"rust":       {".rs"},
	"sh":         {".sh", ".bash", ".zsh", ".fish"},
	"sql":        {".sql"},
	"swift":      {".swift"},
	"toml":       {".toml"},
	"ts":         {".ts", ".tsx"},
	"txt":        {".txt"},
	"xml":        {".xml"},
	"yaml":       {".yaml", ".yml"},
	"zig":        {".zig"},
}

// TypeDef describes one recognized file type for display.
type TypeDef struct {
	Name       string   `json:"name"`
	Extensions []string `json:"extensions"`
}

// Types returns all recognized file types sorted by name.
func Types() []TypeDef {
	defs := make([]TypeDef, 0, len(fileTypes))
	for name, exts := range fileTypes {
		defs = append(defs, TypeDef{Name: name, Extensions: exts})
	}
	sort.Slice(defs, func(i, j int) bool { return defs[i].Name < defs[j].Name })
	return defs
}

// typeFilter restricts the walk to files of selected types.
type typeFilter struct {
	exts  map[string]bool // lowercased extensions, with dot
	names map[string]bool // exact filenames
}

// newTypeFilter builds a filter for the given type names. A nil filter is
// returned when no names are supplied. Unknown names are rejected with an
// InvalidTypeFilter error.
func newTypeFilter(names []string) (*typeFilter, error) {
	if len(names) == 0 {
		return nil, nil
	}

	f := &typeFilter{
		exts:  make(map[string]bool),
		names: make(map[string]bool),
	}

	for _, name := range names {
		exts, ok := fileTypes[strings.ToLower(name)]
		if !ok {
			return nil, trawlerrors.InvalidTypeFilter(name)
		}
		for _, e := range exts {
			if strings.HasPrefix(e, ".") {
				f.exts[e] = true
			} else {
				f.names[e] = true
			}
		}
	}

	return f, nil
}

// match reports whether a file basename belongs to one of the selected
// types.
func (f *typeFilter) match(base string) bool {
	if f == nil {
		return true
	}
	if f.names[base] {
		return true
	}
	return f.exts[strings.ToLower(filepath.Ext(base))]
}

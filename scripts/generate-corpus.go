//go:build ignore

// Generates a synthetic directory tree for benchmarking trawl.
// Usage: go run scripts/generate-corpus.go -files 5000 -output testdata/corpus
//
// The corpus mixes source-like text files, deeply nested directories,
// gitignored subtrees, and a sprinkling of binary files so benchmark
// runs exercise the walker, the ignore rules, and the binary detector.
package main

import (
	"flag"
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
)

var (
	numFiles  = flag.Int("files", 5000, "Number of files to generate")
	outputDir = flag.String("output", "testdata/corpus", "Output directory")
	seed      = flag.Int64("seed", 42, "Random seed for reproducibility")
)

var words = []string{
	"handler", "request", "response", "context", "buffer", "stream",
	"index", "worker", "queue", "match", "pattern", "search", "config",
	"client", "server", "parse", "encode", "decode", "cache", "mutex",
}

var goShape = `package pkg%d

// %s processes incoming %s values.
func %s(input string) (string, error) {
	if input == "" {
		return "", nil
	}
	return input + " %s", nil
}
`

func main() {
	flag.Parse()
	rng := rand.New(rand.NewSource(*seed))

	if err := os.MkdirAll(*outputDir, 0o755); err != nil {
		fatal(err)
	}

	// one in ten files lands under an ignored subtree
	ignored := filepath.Join(*outputDir, "build")
	if err := os.MkdirAll(ignored, 0o755); err != nil {
		fatal(err)
	}
	gitignore := filepath.Join(*outputDir, ".gitignore")
	if err := os.WriteFile(gitignore, []byte("build/\n*.bin\n"), 0o644); err != nil {
		fatal(err)
	}

	for i := 0; i < *numFiles; i++ {
		dir := *outputDir
		switch {
		case i%10 == 0:
			dir = ignored
		case i%3 == 0:
			dir = filepath.Join(*outputDir, fmt.Sprintf("pkg%d", i%17), "internal")
		}
		if err := os.MkdirAll(dir, 0o755); err != nil {
			fatal(err)
		}

		// every fiftieth file is binary to exercise the NUL detector
		if i%50 == 0 {
			buf := make([]byte, 512)
			rng.Read(buf)
			buf[rng.Intn(len(buf))] = 0
			path := filepath.Join(dir, fmt.Sprintf("blob%d.bin", i))
			if err := os.WriteFile(path, buf, 0o644); err != nil {
				fatal(err)
			}
			continue
		}

		w1 := words[rng.Intn(len(words))]
		w2 := words[rng.Intn(len(words))]
		content := fmt.Sprintf(goShape, i%17, title(w1), w2, title(w1), w2)
		path := filepath.Join(dir, fmt.Sprintf("file%d.go", i))
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			fatal(err)
		}
	}

	fmt.Printf("Generated %d files under %s\n", *numFiles, *outputDir)
}

func title(s string) string {
	if s == "" {
		return s
	}
	return string(s[0]-'a'+'A') + s[1:]
}

func fatal(err error) {
	fmt.Fprintln(os.Stderr, "error:", err)
	os.Exit(1)
}

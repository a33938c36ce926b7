package grep

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"slices"
	"strings"
	"sync"
	"sync/atomic"

	"golang.org/x/sync/errgroup"
	"golang.org/x/sys/unix"

	trawlerrors "github.com/trawl-dev/trawl/internal/errors"
	"github.com/trawl-dev/trawl/internal/ignore"
)

// WalkState is a worker callback's verdict on one directory entry.
type WalkState int

const (
	// WalkContinue proceeds with the walk.
	WalkContinue WalkState = iota
	// WalkSkip skips the entry's subtree (directories only).
	WalkSkip
	// WalkQuit stops the whole walk cooperatively across all workers.
	WalkQuit
)

// Entry is one walk result delivered to a worker callback: either a
// filesystem entry or an enumeration error.
type Entry struct {
	// Path is the absolute path of the entry.
	Path string
	// Rel is the slash-separated path relative to the walk root.
	Rel string
	// Size is the file size in bytes (files only).
	Size int64
	// IsDir marks directory entries.
	IsDir bool
	// Err is set when a directory could not be enumerated or an entry
	// could not be stat'd; Path/Rel identify the failing location.
	Err error
}

// VisitFunc processes one entry and steers the walk.
type VisitFunc func(Entry) WalkState

// Walker enumerates candidate files under a root in parallel, applying
// hidden-file policy, three-tier gitignore rules, type filters, glob
// include/exclude, depth limits, and symlink policy. It never crosses
// filesystem-device boundaries.
type Walker struct {
	root    string
	opts    *Options
	types   *typeFilter
	globs   *globFilter
	ignores *ignore.Tree // nil when gitignore handling is off
	workers int
	rootDev uint64

	quit atomic.Bool
}

// NewWalker validates the root and the filter configuration. Malformed
// globs and unknown type names fail here, before any parallel work.
func NewWalker(root string, opts *Options) (*Walker, error) {
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return nil, trawlerrors.Wrap(trawlerrors.ErrCodeInvalidPath, err)
	}

	info, err := os.Stat(absRoot)
	if err != nil {
		return nil, trawlerrors.New(trawlerrors.ErrCodeRootNotFound,
			fmt.Sprintf("cannot open search root %s: %v", absRoot, err), err)
	}
	if !info.IsDir() {
		return nil, trawlerrors.Newf(trawlerrors.ErrCodeInvalidPath,
			"search root is not a directory: %s", absRoot)
	}

	types, err := newTypeFilter(opts.FileTypes)
	if err != nil {
		return nil, err
	}

	globs, err := newGlobFilter(opts.GlobInclude, opts.GlobExclude)
	if err != nil {
		return nil, err
	}

	w := &Walker{
		root:    absRoot,
		opts:    opts,
		types:   types,
		globs:   globs,
		workers: opts.Threads,
		rootDev: deviceOf(absRoot),
	}
	if w.workers <= 0 {
		w.workers = runtime.NumCPU()
	}

	if opts.GitIgnore {
		tree, err := ignore.NewTree(absRoot)
		if err != nil {
			return nil, trawlerrors.InternalError("failed to build ignore tree", err)
		}
		w.ignores = tree
	}

	return w, nil
}

// Workers returns the effective worker count.
func (w *Walker) Workers() int {
	return w.workers
}

// Run drives the parallel walk. newVisit is invoked once per worker to
// build that worker's callback, so per-worker state (a searcher, buffers)
// is constructed once per spawned worker rather than re-derived per entry.
// Run blocks until every worker has finished.
func (w *Walker) Run(ctx context.Context, newVisit func() VisitFunc) error {
	q := newDirQueue()
	rootJob := dirJob{path: w.root, rel: "", depth: 0}
	if w.opts.FollowSymlinks {
		if id, ok := statID(w.root); ok {
			rootJob.parents = []fileID{id}
		}
	}
	q.push(rootJob)

	g, ctx := errgroup.WithContext(ctx)
	for i := 0; i < w.workers; i++ {
		g.Go(func() error {
			visit := newVisit()
			for {
				job, ok := q.pop()
				if !ok {
					return nil
				}
				w.processDir(ctx, job, visit, q)
				q.done()
			}
		})
	}

	return g.Wait()
}

// processDir enumerates one directory, visits its files, and enqueues its
// eligible subdirectories.
func (w *Walker) processDir(ctx context.Context, job dirJob, visit VisitFunc, q *dirQueue) {
	if w.stopped(ctx) {
		q.close()
		return
	}

	entries, err := os.ReadDir(job.path)
	if err != nil {
		if visit(Entry{Path: job.path, Rel: job.rel, Err: err}) == WalkQuit {
			w.quit.Store(true)
			q.close()
		}
		return
	}

	for _, d := range entries {
		// Cancellation is polled once per directory entry, bounding
		// shutdown latency by one file scan.
		if w.stopped(ctx) {
			q.close()
			return
		}

		name := d.Name()
		rel := name
		if job.rel != "" {
			rel = job.rel + "/" + name
		}

		if !w.opts.Hidden && strings.HasPrefix(name, ".") {
			continue
		}

		isDir := d.IsDir()
		var linkTarget os.FileInfo
		if d.Type()&fs.ModeSymlink != 0 {
			if !w.opts.FollowSymlinks {
				continue
			}
			target, err := os.Stat(filepath.Join(job.path, name))
			if err != nil {
				if visit(Entry{Path: filepath.Join(job.path, name), Rel: rel, Err: err}) == WalkQuit {
					w.quit.Store(true)
					q.close()
					return
				}
				continue
			}
			isDir = target.IsDir()
			linkTarget = target
		}

		if isDir {
			if w.skipDir(name, rel, job.depth+1) {
				continue
			}

			abs := filepath.Join(job.path, name)
			id, ok := statID(abs)
			if !ok || id.dev != w.rootDev {
				// never cross a filesystem boundary
				continue
			}
			if linkTarget != nil && slices.Contains(job.parents, id) {
				// a symlink back into an ancestor would loop forever
				continue
			}

			switch visit(Entry{Path: abs, Rel: rel, IsDir: true}) {
			case WalkQuit:
				w.quit.Store(true)
				q.close()
				return
			case WalkSkip:
				continue
			}

			next := dirJob{path: abs, rel: rel, depth: job.depth + 1}
			if w.opts.FollowSymlinks {
				next.parents = make([]fileID, 0, len(job.parents)+1)
				next.parents = append(next.parents, job.parents...)
				next.parents = append(next.parents, id)
			}
			q.push(next)
			continue
		}

		if w.skipFile(name, rel) {
			continue
		}

		// size comes from the symlink target when one was followed
		info := linkTarget
		if info == nil {
			fi, err := d.Info()
			if err != nil {
				if visit(Entry{Path: filepath.Join(job.path, name), Rel: rel, Err: err}) == WalkQuit {
					w.quit.Store(true)
					q.close()
					return
				}
				continue
			}
			info = fi
		}

		if visit(Entry{Path: filepath.Join(job.path, name), Rel: rel, Size: info.Size()}) == WalkQuit {
			w.quit.Store(true)
			q.close()
			return
		}
	}
}

// skipDir applies directory-level filters: gitignore rules, the .git
// directory itself, exclude globs, and the depth cap. An exclude glob
// matching a directory prunes the whole subtree.
func (w *Walker) skipDir(name, rel string, depth int) bool {
	if w.opts.GitIgnore && name == ".git" {
		return true
	}
	if w.opts.MaxDepth > 0 && depth >= w.opts.MaxDepth {
		return true
	}
	if w.ignores != nil && w.ignores.Ignored(rel, true) {
		return true
	}
	if w.globs.excludesDir(rel, name) {
		return true
	}
	return false
}

// skipFile applies file-level filters: gitignore rules, glob
// include/exclude, and the type allow-list.
func (w *Walker) skipFile(name, rel string) bool {
	if w.ignores != nil && w.ignores.Ignored(rel, false) {
		return true
	}
	if !w.globs.match(rel, name) {
		return true
	}
	if !w.types.match(name) {
		return true
	}
	return false
}

// stopped reports whether the walk should wind down: either a worker
// requested quit or the caller's context was canceled.
func (w *Walker) stopped(ctx context.Context) bool {
	return w.quit.Load() || ctx.Err() != nil
}

// deviceOf returns the device id of a path, or 0 when unavailable.
func deviceOf(path string) uint64 {
	var st unix.Stat_t
	if err := unix.Stat(path, &st); err != nil {
		return 0
	}
	return uint64(st.Dev)
}

// fileID identifies a filesystem object across links.
type fileID struct {
	dev uint64
	ino uint64
}

func statID(path string) (fileID, bool) {
	var st unix.Stat_t
	if err := unix.Stat(path, &st); err != nil {
		return fileID{}, false
	}
	return fileID{dev: uint64(st.Dev), ino: uint64(st.Ino)}, true
}

// dirJob is one directory pending enumeration. parents carries the ids of
// every ancestor directory, populated only when symlinks are followed, so
// a link pointing back up the tree is detected and skipped.
type dirJob struct {
	path    string
	rel     string
	depth   int
	parents []fileID
}

// dirQueue is the shared work queue behind the parallel walk. Workers pop
// directories, process them, and push subdirectories back; the queue
// tracks in-flight work so idle workers block until either new work
// arrives or the whole walk has drained.
type dirQueue struct {
	mu     sync.Mutex
	cond   *sync.Cond
	jobs   []dirJob
	active int
	closed bool
}

func newDirQueue() *dirQueue {
	q := &dirQueue{}
	q.cond = sync.NewCond(&q.mu)
	return q
}

func (q *dirQueue) push(j dirJob) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.closed {
		return
	}
	q.jobs = append(q.jobs, j)
	q.cond.Signal()
}

// pop blocks until a job is available. It returns false when the walk is
// complete (no jobs queued and none in flight) or the queue was closed.
func (q *dirQueue) pop() (dirJob, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()

	for len(q.jobs) == 0 && q.active > 0 && !q.closed {
		q.cond.Wait()
	}
	if q.closed || len(q.jobs) == 0 {
		return dirJob{}, false
	}

	j := q.jobs[len(q.jobs)-1]
	q.jobs = q.jobs[:len(q.jobs)-1]
	q.active++
	return j, true
}

// done marks one popped job finished, waking idle workers when the walk
// has drained.
func (q *dirQueue) done() {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.active--
	if q.active == 0 && len(q.jobs) == 0 {
		q.cond.Broadcast()
	}
}

// close wakes all workers and makes further pops fail; used for quit.
func (q *dirQueue) close() {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.closed = true
	q.cond.Broadcast()
}

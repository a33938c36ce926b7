package grep

import "sync"

// matchCollector funnels per-file match batches from all workers into one
// slice on a single goroutine. Matches arrive in completion order across
// files but stay in file order within each batch.
type matchCollector struct {
	batches chan []Match
	done    chan struct{}
	matches []Match
}

func newMatchCollector(buffer int) *matchCollector {
	return &matchCollector{
		batches: make(chan []Match, buffer),
		done:    make(chan struct{}),
	}
}

// run starts the draining goroutine.
func (c *matchCollector) run() {
	go func() {
		defer close(c.done)
		for batch := range c.batches {
			c.matches = append(c.matches, batch...)
		}
	}()
}

// send hands one file's batch to the collector. Called from worker
// goroutines; blocks only when the buffer is full.
func (c *matchCollector) send(batch []Match) {
	c.batches <- batch
}

// wait closes the intake and returns the collected matches. Call only
// after every sender has finished.
func (c *matchCollector) wait() []Match {
	close(c.batches)
	<-c.done
	return c.matches
}

// errorList accumulates non-fatal error strings from concurrent workers.
type errorList struct {
	mu   sync.Mutex
	errs []string
}

func (e *errorList) add(msg string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.errs = append(e.errs, msg)
}

func (e *errorList) list() []string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.errs
}

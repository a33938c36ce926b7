package grep

// mmapThreshold is the smallest file size worth memory-mapping. Below it
// a plain read wins; the page-table churn costs more than the copy.
const mmapThreshold = 1 << 20

// classifier decides, per file, whether a file is searched at all and how
// its content is read.
type classifier struct {
	maxFilesize int64
	mmap        bool
}

// oversize reports whether the file exceeds the configured size cap.
// Oversize files are dropped before any read and never counted as
// searched.
func (c classifier) oversize(size int64) bool {
	return c.maxFilesize > 0 && size > c.maxFilesize
}

// useMmap reports whether the file should be memory-mapped rather than
// read into a buffer.
func (c classifier) useMmap(size int64) bool {
	return c.mmap && size >= mmapThreshold
}

package etl

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
)

// RunLock is a lock-file guard against overlapping pipeline runs. The
// per-date upsert keys already make repeated runs idempotent, but two
// interleaved runs could still race the CSV rewrite, so a second run fails
// fast instead.
type RunLock struct {
	Path string
}

// NewRunLock creates a RunLock at the given path.
func NewRunLock(path string) *RunLock {
	return &RunLock{Path: path}
}

// Acquire takes the lock, returning a release function. It fails if the lock
// file already exists.
func (l *RunLock) Acquire() (func(), error) {
	if dir := filepath.Dir(l.Path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create lock directory: %w", err)
		}
	}

	f, err := os.OpenFile(l.Path, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o644)
	if err != nil {
		if os.IsExist(err) {
			return nil, fmt.Errorf("lock file %s already exists", l.Path)
		}
		return nil, fmt.Errorf("failed to create lock file: %w", err)
	}
	_, _ = f.WriteString(strconv.Itoa(os.Getpid()))
	f.Close()

	return func() {
		_ = os.Remove(l.Path)
	}, nil
}

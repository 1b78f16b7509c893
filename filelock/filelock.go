// Package filelock provides a cooperative, blocking, per-path advisory
// lock backed by flock(2). It is the only lock primitive the workflow
// uses: one lock per voter, acquired for the duration of a cast-vote
// transaction and released on every exit path.
package filelock

import (
	"fmt"
	"sync"
	"syscall"
)

// Lock is an exclusive advisory lock on a path on disk. The lock file is
// created if it does not already exist; its contents are never read or
// written, it exists purely to be flock'd.
type Lock struct {
	mu   sync.Mutex
	path string
	fd   int
}

// New returns a Lock for path. The lock file itself is created lazily on
// the first call to Lock.
func New(path string) *Lock {
	return &Lock{path: path, fd: -1}
}

// Lock blocks until the exclusive lock on the underlying path is held.
// Lock acquisition has no timeout: a caller wanting one must wrap this
// call externally.
func (l *Lock) Lock() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	fd, err := syscall.Open(l.path, syscall.O_CREAT|syscall.O_RDWR, 0o644)
	if err != nil {
		return fmt.Errorf("filelock: open %s: %w", l.path, err)
	}
	if err := syscall.Flock(fd, syscall.LOCK_EX); err != nil {
		syscall.Close(fd)
		return fmt.Errorf("filelock: flock %s: %w", l.path, err)
	}
	l.fd = fd
	return nil
}

// Unlock releases the lock. It is safe to call even if Lock failed or was
// never called; in that case Unlock is a no-op.
func (l *Lock) Unlock() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.fd < 0 {
		return nil
	}
	err := syscall.Flock(l.fd, syscall.LOCK_UN)
	syscall.Close(l.fd)
	l.fd = -1
	if err != nil {
		return fmt.Errorf("filelock: unlock %s: %w", l.path, err)
	}
	return nil
}

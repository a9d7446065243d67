package dirlock

import (
	"fmt"
	"sync"
)

// proc is the process-wide registry for the explicit Acquire/Release
// API. At most one explicit lock may be outstanding per process. The
// mutex guards the registry itself; the intended usage is still a
// single-threaded Acquire/Release pair.
var proc struct {
	mu   sync.Mutex
	lock *DirLock
}

var defaults struct {
	mu  sync.Mutex
	dir string
}

// SetDefaultDir configures the directory used when Acquire is called
// with an empty path. It is normally wired from configuration at
// startup.
func SetDefaultDir(dir string) {
	defaults.mu.Lock()
	defaults.dir = dir
	defaults.mu.Unlock()
}

// DefaultDir returns the configured fallback directory, or "" when none
// has been set.
func DefaultDir() string {
	defaults.mu.Lock()
	defer defaults.mu.Unlock()
	return defaults.dir
}

// Acquire takes the process-wide explicit lock on dir, blocking until
// it is available. An empty dir falls back to the directory configured
// via SetDefaultDir. Calling Acquire while an explicit lock is already
// outstanding is a programming error and fails with ErrAlreadyHeld;
// misuse is surfaced immediately rather than left to deadlock later.
//
// The caller owns the lock until Release. The scoped APIs do not
// interact with this registry.
func Acquire(dir string, opts ...Option) error {
	if dir == "" {
		dir = DefaultDir()
	}
	if dir == "" {
		return fmt.Errorf("%w: no lock directory configured", ErrDirectoryUnavailable)
	}

	proc.mu.Lock()
	if proc.lock != nil {
		held := proc.lock.dir
		proc.mu.Unlock()
		return fmt.Errorf("%w (directory %s)", ErrAlreadyHeld, held)
	}
	l := New(dir, opts...)
	// Register before the blocking wait so a concurrent Acquire fails
	// fast instead of queuing behind this one.
	proc.lock = l
	proc.mu.Unlock()

	if err := l.Lock(); err != nil {
		proc.mu.Lock()
		proc.lock = nil
		proc.mu.Unlock()
		return err
	}
	return nil
}

// Release releases the process-wide explicit lock taken by Acquire,
// closes its descriptor, and clears the registry. Calling Release with
// no lock outstanding fails with ErrNotHeld.
func Release() error {
	proc.mu.Lock()
	l := proc.lock
	proc.lock = nil
	proc.mu.Unlock()

	if l == nil {
		return ErrNotHeld
	}
	return l.Unlock()
}

package dirlock

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/compilelock/compilelock/internal/logging"
)

// SentinelName is the fixed name of the lock file created inside the
// protected directory.
const SentinelName = ".lockfile"

// Sentinel errors returned by lock operations.
var (
	// ErrDirectoryUnavailable is returned when the directory to lock does
	// not exist or is not writable. The directory is never created here;
	// that decision belongs to the caller.
	ErrDirectoryUnavailable = errors.New("lock directory does not exist or is not writable")

	// ErrAlreadyHeld is returned when Acquire is called while the
	// process-wide lock is already outstanding.
	ErrAlreadyHeld = errors.New("process-wide directory lock already held")

	// ErrNotHeld is returned when Release is called without a matching
	// Acquire.
	ErrNotHeld = errors.New("no process-wide directory lock held")
)

// DirLock provides cross-process mutual exclusion for a single
// directory via an exclusive advisory lock on its sentinel file.
// A DirLock is not safe for concurrent use; each goroutine that needs
// the lock should create its own handle.
type DirLock struct {
	dir    string
	file   *os.File
	held   bool
	logger *logging.Logger
}

// Option configures a DirLock.
type Option func(*DirLock)

// WithLogger attaches a logger to the lock. The default discards all
// output.
func WithLogger(logger *logging.Logger) Option {
	return func(l *DirLock) {
		if logger != nil {
			l.logger = logger
		}
	}
}

// New creates a handle for the lock protecting dir. No filesystem
// activity happens until Lock is called.
func New(dir string, opts ...Option) *DirLock {
	l := &DirLock{
		dir:    dir,
		logger: logging.NopLogger(),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Dir returns the directory this handle protects.
func (l *DirLock) Dir() string {
	return l.dir
}

// SentinelPath returns the path of the sentinel file inside the
// protected directory.
func (l *DirLock) SentinelPath() string {
	return filepath.Join(l.dir, SentinelName)
}

// Held reports whether this handle currently holds the exclusive lock.
func (l *DirLock) Held() bool {
	return l.held
}

// Lock blocks until the exclusive lock on the directory's sentinel file
// is acquired. The sentinel is created if absent. There is no timeout;
// the call returns only once the lock is held or the attempt fails
// outright (missing directory, OS-level lock failure).
func (l *DirLock) Lock() error {
	f, err := openSentinel(l.dir)
	if err != nil {
		return err
	}

	l.logger.Debug("waiting for directory lock", "dir", l.dir)
	if err := lockFile(f); err != nil {
		_ = f.Close()
		return fmt.Errorf("lock %s: %w", l.SentinelPath(), err)
	}

	l.file = f
	l.held = true
	writeHolderPID(f)
	l.logger.Info("directory lock acquired", "dir", l.dir, "pid", os.Getpid())
	return nil
}

// Unlock releases the exclusive lock and closes the sentinel file
// descriptor. The sentinel itself is left on disk. Calling Unlock on a
// handle that holds nothing is a no-op.
func (l *DirLock) Unlock() error {
	if l.file == nil {
		return nil
	}

	unlockErr := unlockFile(l.file)
	closeErr := l.file.Close()
	l.file = nil
	l.held = false

	if unlockErr != nil {
		return fmt.Errorf("unlock %s: %w", l.SentinelPath(), unlockErr)
	}
	if closeErr != nil {
		return fmt.Errorf("close %s: %w", l.SentinelPath(), closeErr)
	}

	l.logger.Info("directory lock released", "dir", l.dir)
	return nil
}

// openSentinel opens (creating if needed) the sentinel file inside dir.
// A missing or unwritable directory maps to ErrDirectoryUnavailable;
// other open failures propagate as generic I/O errors.
func openSentinel(dir string) (*os.File, error) {
	path := filepath.Join(dir, SentinelName)
	f, err := os.OpenFile(path, os.O_CREATE|os.O_RDWR, 0o644)
	if err != nil {
		if os.IsNotExist(err) || os.IsPermission(err) {
			return nil, fmt.Errorf("%w: %s", ErrDirectoryUnavailable, dir)
		}
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	return f, nil
}

// writeHolderPID records the holder's PID in the sentinel, best-effort.
// The contents exist for troubleshooting and the status surface only;
// nothing reads them for correctness.
func writeHolderPID(f *os.File) {
	_ = f.Truncate(0)
	_, _ = f.Seek(0, 0)
	_, _ = fmt.Fprintf(f, "%d\n", os.Getpid())
	_ = f.Sync()
}

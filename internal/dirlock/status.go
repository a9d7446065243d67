package dirlock

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"syscall"
)

// Info describes the observed state of a directory lock at the moment
// of inspection.
type Info struct {
	// Dir is the inspected directory.
	Dir string
	// Held reports whether the exclusive lock was held by some process
	// at inspection time.
	Held bool
	// HolderPID is the PID recorded in the sentinel by the holder,
	// or 0 if unknown. Only meaningful when Held is true: the previous
	// holder's PID stays in the file after release.
	HolderPID int
	// HolderAlive reports whether a process with HolderPID exists.
	HolderAlive bool
}

// Inspect probes the lock on dir without blocking and without
// disturbing a holder. It briefly takes and drops the lock when the
// directory is free, so it must not be used as an acquisition path.
func Inspect(dir string) (Info, error) {
	info := Info{Dir: dir}

	f, err := openSentinel(dir)
	if err != nil {
		return Info{}, err
	}
	defer f.Close()

	acquired, err := tryLockFile(f)
	if err != nil {
		return Info{}, fmt.Errorf("probe %s: %w", dir, err)
	}
	if acquired {
		_ = unlockFile(f)
		return info, nil
	}

	info.Held = true
	if pid, ok := readHolderPID(f); ok {
		info.HolderPID = pid
		info.HolderAlive = isProcessAlive(pid)
	}
	return info, nil
}

// readHolderPID parses the best-effort PID the holder wrote into the
// sentinel.
func readHolderPID(f *os.File) (int, bool) {
	if _, err := f.Seek(0, 0); err != nil {
		return 0, false
	}
	data, err := io.ReadAll(f)
	if err != nil {
		return 0, false
	}
	pid, err := strconv.Atoi(strings.TrimSpace(string(data)))
	if err != nil || pid <= 0 {
		return 0, false
	}
	return pid, true
}

// isProcessAlive checks whether a process with the given PID exists.
// On Unix, signal 0 probes for existence without affecting the target.
func isProcessAlive(pid int) bool {
	process, err := os.FindProcess(pid)
	if err != nil {
		return false
	}
	return process.Signal(syscall.Signal(0)) == nil
}

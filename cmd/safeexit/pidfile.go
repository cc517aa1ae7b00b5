// Victim PID file management. The file is held open with an advisory lock
// for the life of the victim so a supervisor can tell a live victim from a
// stale file; the exit action releases the lock and removes the file.
package main

import (
	"fmt"
	"os"
)

// writePIDFile creates (or reuses) the file at path, acquires an exclusive
// non-blocking lock, and writes this process's pid. The returned handle
// must stay open to hold the lock; pass it to [removePIDFile] from the exit
// action.
func writePIDFile(path string) (*os.File, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_RDWR, 0o600)
	if err != nil {
		return nil, fmt.Errorf("open PID file: %w", err)
	}
	if err := lockFile(f); err != nil {
		f.Close()
		return nil, fmt.Errorf("lock PID file: %w", err)
	}
	if err := f.Truncate(0); err != nil {
		_ = unlockFile(f)
		f.Close()
		return nil, fmt.Errorf("truncate PID file: %w", err)
	}
	if _, err := fmt.Fprintf(f, "%d", os.Getpid()); err != nil {
		_ = unlockFile(f)
		f.Close()
		return nil, fmt.Errorf("write PID file: %w", err)
	}
	return f, nil
}

// removePIDFile releases the lock, closes the handle, and removes the file.
// Best-effort: it runs inside an exit action during termination.
func removePIDFile(path string, f *os.File) {
	if f != nil {
		_ = unlockFile(f)
		f.Close()
	}
	_ = os.Remove(path)
}

// Unix/Darwin PID-file locking using flock(2).
//
// This file is compiled on all non-Windows platforms (Linux, macOS, *BSD).
// The advisory lock marks the victim as alive: it drops automatically if
// the victim dies without running its exit actions, so a supervisor never
// trusts a stale PID file.

//go:build !windows

package main

import (
	"fmt"
	"os"
	"syscall"
)

// lockFile acquires an exclusive, non-blocking advisory lock on f. The
// LOCK_NB flag fails immediately (EWOULDBLOCK) when another victim already
// holds the lock.
func lockFile(f *os.File) error {
	if err := syscall.Flock(int(f.Fd()), syscall.LOCK_EX|syscall.LOCK_NB); err != nil {
		return fmt.Errorf("lock %s: %w", f.Name(), err)
	}
	return nil
}

// unlockFile releases the advisory lock. Closing the descriptor would also
// release it; the explicit call keeps the exit action's intent visible.
func unlockFile(f *os.File) error {
	if err := syscall.Flock(int(f.Fd()), syscall.LOCK_UN); err != nil {
		return fmt.Errorf("unlock %s: %w", f.Name(), err)
	}
	return nil
}

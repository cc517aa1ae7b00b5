// Windows PID-file locking using LockFileEx/UnlockFileEx via
// [golang.org/x/sys/windows].
//
// This file is compiled only on Windows. LOCKFILE_FAIL_IMMEDIATELY mirrors
// LOCK_NB on Unix: a held lock means a live victim. Only the first byte is
// locked; the lock exists for mutual exclusion, not data protection.

//go:build windows

package main

import (
	"fmt"
	"os"

	"golang.org/x/sys/windows"
)

// lockFile acquires an exclusive, non-blocking lock on f.
func lockFile(f *os.File) error {
	ol := new(windows.Overlapped)
	if err := windows.LockFileEx(
		windows.Handle(f.Fd()),
		windows.LOCKFILE_EXCLUSIVE_LOCK|windows.LOCKFILE_FAIL_IMMEDIATELY,
		0,
		1, 0,
		ol,
	); err != nil {
		return fmt.Errorf("lock %s: %w", f.Name(), err)
	}
	return nil
}

// unlockFile releases the lock; it is also released implicitly when the
// handle closes.
func unlockFile(f *os.File) error {
	ol := new(windows.Overlapped)
	if err := windows.UnlockFileEx(
		windows.Handle(f.Fd()),
		0,
		1, 0,
		ol,
	); err != nil {
		return fmt.Errorf("unlock %s: %w", f.Name(), err)
	}
	return nil
}

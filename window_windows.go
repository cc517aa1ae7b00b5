// Top-level window discovery and WM_CLOSE delivery for SafeKill's
// "ask the window to close" branch.
//
// This file is compiled only on Windows. EnumWindows and PostMessageW live
// in user32, which golang.org/x/sys/windows does not wrap, so the raw
// bindings come from [internal/winapi].

//go:build windows

package safeexit

import (
	"fmt"

	"golang.org/x/sys/windows"

	"tools.zach/dev/safeexit/internal/winapi"
)

// findMainWindow returns a handle to the first top-level window owned by
// pid, or 0 when the process has none.
func findMainWindow(pid int) uintptr {
	var found uintptr
	cb := windows.NewCallback(func(hwnd, lparam uintptr) uintptr {
		var owner uint32
		winapi.GetWindowThreadProcessID(hwnd, &owner)
		if owner == uint32(lparam) {
			found = hwnd
			return 0 // stop enumerating
		}
		return 1 // keep enumerating
	})
	winapi.EnumWindows(cb, uintptr(pid))
	return found
}

// postClose posts an asynchronous close request to the target's top-level
// window. The owning application decides how to react; a well-behaved one
// shuts down. Fails with [ErrNoWindowFound] when the process has no window.
func postClose(pid int) error {
	hwnd := findMainWindow(pid)
	if hwnd == 0 {
		return fmt.Errorf("pid %d: %w", pid, ErrNoWindowFound)
	}
	if err := winapi.PostMessage(hwnd, winapi.WMClose, 0, 0); err != nil {
		return &PlatformError{Op: "PostMessageW", Errno: err}
	}
	return nil
}

// Console-control delivery for SafeKill: attach to the target's console,
// synthesize the requested event, detach.
//
// This file is compiled only on Windows. AttachConsole fails when the
// caller already owns a console, so supervisors that use this branch are
// typically detached (or drop their console first). The event reaches every
// process in the target's group; victims spawned into their own group see
// it alone.

//go:build windows

package safeexit

import (
	"golang.org/x/sys/windows"

	"tools.zach/dev/safeexit/internal/winapi"
)

// consoleEventKill delivers event (CtrlCEvent or CtrlBreakEvent) to the
// console owned by pid. Attach and generate fail independently; detach
// always runs once attached.
func consoleEventKill(pid, event int) error {
	if err := winapi.AttachConsole(uint32(pid)); err != nil {
		return &PlatformError{Op: "AttachConsole", Errno: err}
	}
	genErr := windows.GenerateConsoleCtrlEvent(uint32(event), uint32(pid))
	detachErr := winapi.FreeConsole()
	if genErr != nil {
		return &PlatformError{Op: "GenerateConsoleCtrlEvent", Errno: genErr}
	}
	if detachErr != nil {
		return &PlatformError{Op: "FreeConsole", Errno: detachErr}
	}
	return nil
}

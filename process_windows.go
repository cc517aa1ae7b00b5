// Windows process capability used by SafeKill.
//
// This file is compiled only on Windows. A handle opened with SYNCHRONIZE
// gives a native bounded wait (WaitForSingleObject) instead of the liveness
// polling the POSIX side needs. Liveness is the STILL_ACTIVE exit code, the
// same probe psutil-style tooling uses.

//go:build windows

package safeexit

import (
	"errors"
	"fmt"
	"time"

	"golang.org/x/sys/windows"
)

// stillActive is the exit code GetExitCodeProcess reports for a process
// that has not exited (STILL_ACTIVE).
const stillActive = 259

// ///////////////////////////////////////////////
// Process Capability
// ///////////////////////////////////////////////

// process is the Windows capability handle for a target pid.
type process struct {
	pid    int
	handle windows.Handle
}

// findProcess opens a handle to pid, failing with [ErrNoSuchProcess] when
// the pid does not name a live process.
func findProcess(pid int) (*process, error) {
	h, err := windows.OpenProcess(
		windows.PROCESS_QUERY_LIMITED_INFORMATION|windows.PROCESS_TERMINATE|windows.SYNCHRONIZE,
		false, uint32(pid))
	if err != nil {
		if errors.Is(err, windows.ERROR_INVALID_PARAMETER) {
			return nil, fmt.Errorf("pid %d: %w", pid, ErrNoSuchProcess)
		}
		return nil, &PlatformError{Op: "OpenProcess", Errno: err}
	}
	p := &process{pid: pid, handle: h}
	if !p.alive() {
		// A handle to an exited process still opens; treat it as gone.
		p.close()
		return nil, fmt.Errorf("pid %d: %w", pid, ErrNoSuchProcess)
	}
	return p, nil
}

func (p *process) close() {
	if p.handle != 0 {
		_ = windows.CloseHandle(p.handle)
		p.handle = 0
	}
}

// requestExit applies the graceful decision table. Branch order is fixed
// and the branches are independent:
//
//   - no signal given, or a code above the break event: post WM_CLOSE to
//     the target's top-level window.
//   - no signal given (only after the window branch failed), or the
//     interrupt or break code: synthesize a console-control event, using
//     the interrupt event when no code was given.
//
// When every attempted branch fails the error aggregates each failure.
func (p *process) requestExit(sig int) error {
	var causes []error

	if sig == NoSignal || sig > CtrlBreakEvent {
		err := postClose(p.pid)
		if err == nil {
			return nil
		}
		causes = append(causes, err)
	}

	if sig == NoSignal || sig == CtrlCEvent || sig == CtrlBreakEvent {
		event := sig
		if sig == NoSignal {
			event = CtrlCEvent
		}
		err := consoleEventKill(p.pid, event)
		if err == nil {
			return nil
		}
		causes = append(causes, err)
	}

	return &GracefulRequestError{Causes: causes}
}

// waitExit blocks until the process object signals or timeout elapses. The
// millisecond conversion is clamped: a negative timeout expires immediately,
// and anything at or past INFINITE (which would wait forever) is capped one
// below it.
func (p *process) waitExit(timeout time.Duration) error {
	ms := timeout.Milliseconds()
	if ms < 0 {
		ms = 0
	}
	if ms >= int64(windows.INFINITE) {
		ms = int64(windows.INFINITE) - 1
	}
	ev, err := windows.WaitForSingleObject(p.handle, uint32(ms))
	if err != nil {
		return &PlatformError{Op: "WaitForSingleObject", Errno: err}
	}
	if ev == uint32(windows.WAIT_TIMEOUT) {
		return fmt.Errorf("pid %d: %w", p.pid, ErrWaitTimeout)
	}
	return nil
}

// alive reports whether the process has not exited yet.
func (p *process) alive() bool {
	var code uint32
	if err := windows.GetExitCodeProcess(p.handle, &code); err != nil {
		return false
	}
	return code == stillActive
}

// forceKill terminates the process unconditionally. Losing the race with a
// natural exit is not an error.
func (p *process) forceKill() error {
	if err := windows.TerminateProcess(p.handle, 1); err != nil {
		if !p.alive() {
			return nil
		}
		return &PlatformError{Op: "TerminateProcess", Errno: err}
	}
	return nil
}

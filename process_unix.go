// POSIX process capability used by SafeKill.
//
// This file is compiled on all non-Windows platforms (Linux, macOS, *BSD).
// Arbitrary pids cannot be waited on with wait(2), which only works for
// children, so waitExit polls liveness at a fixed interval. The
// kill(pid, 0) probe distinguishes a dead process (ESRCH) from one owned by
// another user (EPERM, which still means alive).

//go:build !windows

package safeexit

import (
	"errors"
	"fmt"
	"syscall"
	"time"
)

// waitPollInterval is the liveness probe cadence during waitExit.
const waitPollInterval = 100 * time.Millisecond

// ///////////////////////////////////////////////
// Process Capability
// ///////////////////////////////////////////////

// process is the POSIX capability handle for a target pid.
type process struct {
	pid int
}

// findProcess resolves pid, failing with [ErrNoSuchProcess] when no process
// has that id.
func findProcess(pid int) (*process, error) {
	if !pidAlive(pid) {
		return nil, fmt.Errorf("pid %d: %w", pid, ErrNoSuchProcess)
	}
	return &process{pid: pid}, nil
}

// close releases nothing on POSIX; the capability is just the pid.
func (p *process) close() {}

// requestExit delivers sig (SIGTERM for NoSignal) to the process. A single
// attempt: POSIX signal delivery is unconditional, so there is no fallback
// chain on this platform.
func (p *process) requestExit(sig int) error {
	s := syscall.SIGTERM
	if sig != NoSignal {
		s = syscall.Signal(sig)
	}
	if err := syscall.Kill(p.pid, s); err != nil {
		if errors.Is(err, syscall.ESRCH) {
			return fmt.Errorf("pid %d: %w", p.pid, ErrNoSuchProcess)
		}
		return &PlatformError{Op: "kill", Errno: err}
	}
	return nil
}

// waitExit blocks until the process is gone or timeout elapses.
func (p *process) waitExit(timeout time.Duration) error {
	deadline := time.Now().Add(timeout)
	for p.alive() {
		if time.Now().After(deadline) {
			return fmt.Errorf("pid %d: %w", p.pid, ErrWaitTimeout)
		}
		time.Sleep(waitPollInterval)
	}
	return nil
}

// alive reports whether the process still exists.
func (p *process) alive() bool {
	return pidAlive(p.pid)
}

// forceKill terminates the process unconditionally. A process that died on
// its own in the meantime is not an error.
func (p *process) forceKill() error {
	if err := syscall.Kill(p.pid, syscall.SIGKILL); err != nil && !errors.Is(err, syscall.ESRCH) {
		return &PlatformError{Op: "kill", Errno: err}
	}
	return nil
}

// pidAlive probes pid with the null signal. EPERM means the process exists
// but belongs to another user.
func pidAlive(pid int) bool {
	err := syscall.Kill(pid, 0)
	if err == nil {
		return true
	}
	return errors.Is(err, syscall.EPERM)
}

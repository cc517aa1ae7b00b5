package safeexit

import (
	"errors"
	"fmt"
	"strings"
)

// ///////////////////////////////////////////////
// Sentinel Errors
// ///////////////////////////////////////////////

var (
	// ErrNoSuchProcess reports that no process with the given pid exists
	// (or it has already exited).
	ErrNoSuchProcess = errors.New("no such process")

	// ErrNoWindowFound reports that the target process owns no top-level
	// window, so the window-close branch of SafeKill could not run.
	ErrNoWindowFound = errors.New("no window found for process")

	// ErrWaitTimeout reports that the target process was still alive when
	// the SafeKill wait deadline expired.
	ErrWaitTimeout = errors.New("timed out waiting for process exit")
)

// ///////////////////////////////////////////////
// Error Types
// ///////////////////////////////////////////////

// PlatformError wraps a failed native OS call with the name of the
// operation and the native error it produced.
type PlatformError struct {
	// Op is the native call that failed, e.g. "AttachConsole".
	Op string
	// Errno is the platform error returned by the call.
	Errno error
}

func (e *PlatformError) Error() string {
	return fmt.Sprintf("%s failed: %v", e.Op, e.Errno)
}

func (e *PlatformError) Unwrap() error { return e.Errno }

// GracefulRequestError aggregates the failures from every graceful
// termination branch SafeKill attempted before giving up on asking nicely.
type GracefulRequestError struct {
	Causes []error
}

func (e *GracefulRequestError) Error() string {
	msgs := make([]string, len(e.Causes))
	for i, c := range e.Causes {
		msgs[i] = c.Error()
	}
	return strings.Join(msgs, " and ")
}

// Unwrap exposes every collected cause to errors.Is and errors.As.
func (e *GracefulRequestError) Unwrap() []error { return e.Causes }

package safeexit

import (
	"errors"
	"syscall"
	"testing"
)

func TestPlatformError_MessageAndUnwrap(t *testing.T) {
	err := &PlatformError{Op: "AttachConsole", Errno: syscall.EPERM}

	if got := err.Error(); got != "AttachConsole failed: operation not permitted" {
		t.Errorf("Error() = %q", got)
	}
	if !errors.Is(err, syscall.EPERM) {
		t.Error("PlatformError does not unwrap to its errno")
	}
}

func TestGracefulRequestError_JoinsEveryFailure(t *testing.T) {
	err := &GracefulRequestError{Causes: []error{
		ErrNoWindowFound,
		&PlatformError{Op: "AttachConsole", Errno: syscall.EACCES},
	}}

	want := "no window found for process and AttachConsole failed: permission denied"
	if got := err.Error(); got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
}

func TestGracefulRequestError_ExposesCausesToErrorsIs(t *testing.T) {
	err := error(&GracefulRequestError{Causes: []error{
		ErrNoWindowFound,
		&PlatformError{Op: "GenerateConsoleCtrlEvent", Errno: syscall.EINVAL},
	}})

	if !errors.Is(err, ErrNoWindowFound) {
		t.Error("errors.Is did not find ErrNoWindowFound among the causes")
	}
	var perr *PlatformError
	if !errors.As(err, &perr) {
		t.Fatal("errors.As did not find the PlatformError cause")
	}
	if perr.Op != "GenerateConsoleCtrlEvent" {
		t.Errorf("unexpected PlatformError cause: %v", perr)
	}
}

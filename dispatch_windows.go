// Windows trigger installation: one console-control handler registered with
// SetConsoleCtrlHandler covers the interrupt request (always), the break
// request, and the close/shutdown/logoff categories selected by flags.
//
// This file is compiled only on Windows. The Go runtime installs its own
// console handler and maps CTRL_BREAK to the same os.Signal as CTRL_C
// before os/signal subscribers can tell them apart, so the dispatcher
// claims CTRL_C and CTRL_BREAK in its own handler instead of going through
// os/signal. The system calls handlers last-registered-first, so this one
// is consulted before the runtime's; returning "not handled" lets the
// default behavior proceed for unselected categories.

//go:build windows

package safeexit

import (
	"log/slog"
	"os"

	"golang.org/x/sys/windows"

	"tools.zach/dev/safeexit/internal/winapi"
)

// HandlerRoutine return values; a non-zero return stops the handler chain.
const (
	ctrlNotHandled uintptr = 0
	ctrlHandled    uintptr = 1
)

// ctrlCallback keeps the registered callback thunk reachable for the life
// of the process; the system may invoke it at any time on its own thread.
var ctrlCallback uintptr

// installHandlers registers the console-control handler. Failure carries
// the native error code: a dispatcher that cannot guarantee cleanup must be
// detectable at configuration time.
func installHandlers(flags ConfigFlag) error {
	ctrlCallback = windows.NewCallback(func(ctrlType uint32) uintptr {
		return handleCtrlEvent(flags, ctrlType)
	})
	if err := winapi.SetConsoleCtrlHandler(ctrlCallback, true); err != nil {
		return &PlatformError{Op: "SetConsoleCtrlHandler", Errno: err}
	}
	return nil
}

// handleCtrlEvent runs on a system-created thread, concurrently with the
// main program. It stays minimal: decide, drain the guarded registry,
// terminate. Drain's ownership transfer makes a racing second event a
// no-op.
func handleCtrlEvent(flags ConfigFlag, ctrlType uint32) uintptr {
	switch ctrlType {
	case CtrlCEvent:
		// Interrupt requests are always handled.
	case CtrlBreakEvent:
		if !flags.Has(FlagBreak) {
			return ctrlNotHandled
		}
	case CtrlCloseEvent:
		if !flags.Has(FlagCtrlClose) {
			return ctrlNotHandled
		}
	case CtrlLogoffEvent:
		if !flags.Has(FlagCtrlLogoff) {
			return ctrlNotHandled
		}
	case CtrlShutdownEvent:
		if !flags.Has(FlagCtrlShutdown) {
			return ctrlNotHandled
		}
	default:
		return ctrlNotHandled
	}

	slog.Info("received console control event, running exit functions", "event", ctrlType)
	defaultRegistry.Drain()

	if ctrlType == CtrlCEvent || ctrlType == CtrlBreakEvent {
		// Interrupt and break end the process through the standard exit
		// path. For the close/shutdown/logoff categories the system
		// terminates the process itself once the event is reported
		// handled.
		os.Exit(0)
	}
	return ctrlHandled
}

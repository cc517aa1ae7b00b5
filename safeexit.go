// Package safeexit guarantees registered cleanup actions run exactly once
// when the process is asked to terminate, and lets a supervisor gracefully
// terminate another process.
//
// Two halves:
//
//   - An exit-handler registry plus a termination dispatcher. [Register]
//     adds a cleanup function; a delivered termination signal (POSIX), a
//     console-control event (Windows), or an explicit [Exit]/[Cleanup] call
//     drains the registry exactly once and then lets the process die.
//   - [SafeKill], which asks a *different* process to terminate, escalating
//     through platform-appropriate graceful strategies (a plain signal on
//     POSIX; WM_CLOSE to the main window, then a synthesized console event
//     on Windows) before force-killing it after a bounded wait.
//
// Go has no atexit hook, so the ordinary-exit trigger is explicit: end main
// with [Exit], or defer [Cleanup]. The operating-system triggers need no
// cooperation from the caller beyond registering.
package safeexit

import (
	"os"
	"sync"
)

// ///////////////////////////////////////////////
// Dispatcher State
// ///////////////////////////////////////////////

// defaultRegistry backs the package-level API. Tests that need isolation
// create their own instances with [NewRegistry].
var defaultRegistry = NewRegistry(nil)

// installMu guards installed, the process-wide "dispatcher installed" flag.
// The flag latches on the first successful Configure and is never reset:
// the first configuration wins and later calls are no-ops.
var (
	installMu sync.Mutex
	installed bool
)

// ///////////////////////////////////////////////
// Public API
// ///////////////////////////////////////////////

// Configure installs the termination dispatcher. Reactions to interrupt and
// terminate requests are always installed; flags select the optional
// triggers. Flags that do not apply to the running platform are silently
// ignored.
//
// Only the first successful call has any effect. A failed installation does
// not latch, so the caller may retry.
func Configure(flags ConfigFlag) error {
	installMu.Lock()
	defer installMu.Unlock()
	if installed {
		return nil
	}
	consoleSetup(flags)
	if err := installHandlers(flags); err != nil {
		return err
	}
	installed = true
	return nil
}

// Register adds fn to the process exit registry and returns it unchanged,
// so call sites can assign the result where the function is also needed
// directly. Actions run in registration order when a termination trigger
// fires. Bound arguments are closure captures.
//
// If the dispatcher has not been configured yet, Register installs it with
// [DefaultFlags] first; the installation error, if any, is returned and the
// action is not registered.
func Register(fn ExitFunc) (ExitFunc, error) {
	if err := Configure(DefaultFlags); err != nil {
		return fn, err
	}
	return defaultRegistry.Add(fn), nil
}

// Unregister removes every registered action created from the same function
// as fn. Unregistering a function that was never registered is a no-op.
func Unregister(fn ExitFunc) {
	defaultRegistry.Remove(fn)
}

// Cleanup runs all registered exit actions now and clears the registry.
// Safe to call more than once and from any goroutine; only the first caller
// runs the actions.
func Cleanup() {
	defaultRegistry.Drain()
}

// Exit runs all registered exit actions, then terminates the process with
// the given status code. This is the ordinary-exit trigger: use it in place
// of [os.Exit] so cleanup still runs.
func Exit(code int) {
	defaultRegistry.Drain()
	os.Exit(code)
}

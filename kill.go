package safeexit

import "time"

// NoSignal selects the platform default graceful request: SIGTERM on POSIX,
// the window-close-then-console-interrupt chain on Windows. An explicit
// zero is a real value on both platforms (the null probe signal, and
// CTRL_C_EVENT), which is why the default is a sentinel.
const NoSignal = -1

// KillOptions control SafeKill. The zero value is not useful; start from
// [DefaultKillOptions] or pass nil to SafeKill.
type KillOptions struct {
	// Signal is the termination signal (POSIX) or console-control event
	// code (Windows) to deliver. NoSignal selects the platform default.
	Signal int
	// Timeout bounds the wait between the graceful request and the
	// force-kill decision.
	Timeout time.Duration
	// ForceKill terminates the process unconditionally if it is still
	// alive once the wait ends. It runs whether or not the graceful
	// request succeeded, and is never suppressed by Silence.
	ForceKill bool
	// Silence swallows lookup, graceful-request, and wait failures
	// instead of returning them.
	Silence bool
}

// DefaultKillOptions returns the options SafeKill uses for a nil opts:
// platform-default signal, 4 second wait, force-kill on, failures silenced.
func DefaultKillOptions() *KillOptions {
	return &KillOptions{
		Signal:    NoSignal,
		Timeout:   4 * time.Second,
		ForceKill: true,
		Silence:   true,
	}
}

// SafeKill asks the process identified by pid to terminate gracefully,
// waits up to opts.Timeout for it to exit, and force-kills it if requested
// and it is still alive.
//
// On POSIX the graceful request is a single signal delivery. On Windows it
// walks a fixed decision table: post WM_CLOSE to the target's top-level
// window when the caller gave no code or a code above the break event, then
// synthesize a console-control event when the caller gave no code (and the
// window branch failed) or gave the interrupt or break code. When every
// attempted branch fails the request error is a [GracefulRequestError]
// listing each failure.
//
// With opts.Silence (the default) only force-kill failures are reported;
// everything else is best-effort.
func SafeKill(pid int, opts *KillOptions) error {
	if opts == nil {
		opts = DefaultKillOptions()
	}

	proc, err := findProcess(pid)
	if err != nil {
		if opts.Silence {
			return nil
		}
		return err
	}
	defer proc.close()

	err = proc.requestExit(opts.Signal)
	if err == nil {
		err = proc.waitExit(opts.Timeout)
	}

	if opts.ForceKill && proc.alive() {
		if killErr := proc.forceKill(); killErr != nil {
			// A process that must die and did not is never silenced.
			return killErr
		}
	}

	if err != nil && !opts.Silence {
		return err
	}
	return nil
}

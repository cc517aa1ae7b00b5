// POSIX trigger installation for the termination dispatcher.
//
// This file is compiled on all non-Windows platforms (Linux, macOS, *BSD).
// Interrupt (SIGINT) and terminate (SIGTERM) requests are always handled;
// quit and hang-up are opt-in via ConfigFlag. A delivered signal drains the
// exit registry once and ends the process through the standard exit path
// with status 0; the signal is not re-raised.

//go:build !windows

package safeexit

import (
	"log/slog"
	"os"
	"os/signal"
	"syscall"
)

// installHandlers subscribes the dispatcher to the selected signals. The
// buffer of 1 keeps a signal from being lost if it arrives before the
// goroutine is scheduled. Windows-only flags are silently ignored here.
func installHandlers(flags ConfigFlag) error {
	sigs := []os.Signal{os.Interrupt, syscall.SIGTERM}
	if flags.Has(FlagQuit) {
		sigs = append(sigs, syscall.SIGQUIT)
	}
	if flags.Has(FlagHangup) {
		sigs = append(sigs, syscall.SIGHUP)
	}

	ch := make(chan os.Signal, 1)
	signal.Notify(ch, sigs...)

	go func() {
		sig := <-ch
		slog.Info("received termination signal, running exit functions", "signal", sig.String())
		defaultRegistry.Drain()
		os.Exit(0)
	}()
	return nil
}

// Package main implements the safeexit manual-test harness.
//
// Three ops, mirroring how the library is exercised end to end:
//
//	safeexit run    - victim: install the dispatcher, register an exit
//	                  action that logs a marker line, write a locked PID
//	                  file, block until terminated
//	safeexit kill   - supervisor: SafeKill a pid, optionally watching the
//	                  victim's log until the marker line appears
//	safeexit spawn  - launch a child configured so it can be asked to exit
package main

import (
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"tools.zach/dev/safeexit"
	"tools.zach/dev/safeexit/internal/config"
	"tools.zach/dev/safeexit/internal/logger"
)

// exitMarker is the message a victim's exit action logs; kill -watch-log
// waits for it. The pid attribute makes the needle unique per victim.
const exitMarker = "process exiting"

// exitNeedle is the formatted log fragment to search for: the marker plus
// the victim's pid attribute as the log handler renders it.
func exitNeedle(pid int) string {
	return fmt.Sprintf("%s | pid=%d", exitMarker, pid)
}

func usage() {
	fmt.Fprintf(os.Stderr, `usage:
  safeexit run   [-config file] [-dir dir]
  safeexit kill  [-config file] [-signal n] [-timeout secs] [-force] [-silence] [-watch-log file] pid
  safeexit spawn command [args...]
`)
	os.Exit(2)
}

func main() {
	if len(os.Args) < 2 {
		usage()
	}
	var err error
	switch os.Args[1] {
	case "run":
		err = runOp(os.Args[2:])
	case "kill":
		err = killOp(os.Args[2:])
	case "spawn":
		err = spawnOp(os.Args[2:])
	default:
		usage()
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "fatal: %v\n", err)
		os.Exit(1)
	}
}

// ///////////////////////////////////////////////
// run
// ///////////////////////////////////////////////

// runOp is the victim side: it configures the dispatcher from file
// settings, registers exit actions, announces readiness, and blocks until
// a termination trigger drains the registry.
func runOp(args []string) error {
	fs := flag.NewFlagSet("run", flag.ExitOnError)
	cfgPath := fs.String("config", "", "TOML configuration file")
	dir := fs.String("dir", ".", "Directory for the PID file and victim log")
	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(*dir, 0o755); err != nil {
		return fmt.Errorf("create data dir: %w", err)
	}

	pid := os.Getpid()
	logPath := filepath.Join(*dir, fmt.Sprintf("victim-%d.log", pid))
	log, logCloser, err := logger.NewLogger(logPath, logger.ParseLevel(cfg.Log.Level), cfg.Log.MaxSizeMB)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer logCloser.Close()
	slog.SetDefault(log)

	if err := safeexit.Configure(cfg.Flags()); err != nil {
		return fmt.Errorf("configure dispatcher: %w", err)
	}

	pidPath := filepath.Join(*dir, fmt.Sprintf("safeexit-%d.pid", pid))
	pidFile, err := writePIDFile(pidPath)
	if err != nil {
		return err
	}

	// Registration order is invocation order: log the marker first, then
	// release the PID file.
	if _, err := safeexit.Register(func() {
		slog.Info(exitMarker, "pid", pid)
	}); err != nil {
		return fmt.Errorf("register exit action: %w", err)
	}
	if _, err := safeexit.Register(func() {
		removePIDFile(pidPath, pidFile)
	}); err != nil {
		return fmt.Errorf("register exit action: %w", err)
	}

	slog.Info("victim ready", "pid", pid, "log", logPath)
	fmt.Printf("ready pid=%d log=%s\n", pid, logPath)

	select {} // terminated by the dispatcher
}

// ///////////////////////////////////////////////
// kill
// ///////////////////////////////////////////////

// killOp is the supervisor side: it issues one SafeKill request built from
// the config file with flag overrides.
func killOp(args []string) error {
	cfg, err := config.Load(configPathFromArgs(args))
	if err != nil {
		return err
	}

	fs := flag.NewFlagSet("kill", flag.ExitOnError)
	fs.String("config", "", "TOML configuration file")
	sig := fs.Int("signal", cfg.Kill.Signal, "Signal or console-event code (-1 for platform default)")
	timeout := fs.Int("timeout", cfg.Kill.TimeoutSecs, "Seconds to wait before the force-kill decision")
	force := fs.Bool("force", cfg.Kill.Force, "Force-kill if still alive after the wait")
	silence := fs.Bool("silence", cfg.Kill.Silence, "Swallow graceful-request and wait failures")
	watchLog := fs.String("watch-log", "", "Victim log file to watch for the exit marker")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		usage()
	}
	pid, err := strconv.Atoi(fs.Arg(0))
	if err != nil {
		return fmt.Errorf("invalid pid %q", fs.Arg(0))
	}

	opts := &safeexit.KillOptions{
		Signal:    *sig,
		Timeout:   time.Duration(*timeout) * time.Second,
		ForceKill: *force,
		Silence:   *silence,
	}
	if err := safeexit.SafeKill(pid, opts); err != nil {
		return fmt.Errorf("kill pid %d: %w", pid, err)
	}

	if *watchLog != "" {
		n, err := watchForLine(*watchLog, exitNeedle(pid), 1, 20*time.Second)
		if err != nil {
			return err
		}
		fmt.Printf("exit marker for pid %d seen %d time(s)\n", pid, n)
	}
	return nil
}

// configPathFromArgs extracts the -config value ahead of the real flag
// parse, so file settings can serve as the defaults the remaining flags
// override. A plain scan rather than a throwaway FlagSet: a second parse
// stops at the first flag it does not know about and would lose a -config
// that follows one.
func configPathFromArgs(args []string) string {
	for i := 0; i < len(args); i++ {
		arg := args[i]
		if arg == "--" {
			break
		}
		if !strings.HasPrefix(arg, "-") {
			continue
		}
		name, val, hasVal := strings.Cut(strings.TrimLeft(arg, "-"), "=")
		if name != "config" {
			continue
		}
		if hasVal {
			return val
		}
		if i+1 < len(args) {
			return args[i+1]
		}
	}
	return ""
}

// ///////////////////////////////////////////////
// spawn
// ///////////////////////////////////////////////

// spawnOp launches a child wired for graceful termination (own process
// group, and on Windows its own console) and waits for it, propagating the
// exit code.
func spawnOp(args []string) error {
	if len(args) == 0 {
		usage()
	}
	cmd := exec.Command(args[0], args[1:]...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	configureSpawn(cmd)

	if err := cmd.Start(); err != nil {
		return fmt.Errorf("start %s: %w", args[0], err)
	}
	fmt.Printf("spawned pid=%d\n", cmd.Process.Pid)

	if err := cmd.Wait(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			os.Exit(exitErr.ExitCode())
		}
		return err
	}
	return nil
}

// Unix/Darwin spawn attributes for the spawn op.
//
// This file is compiled on all non-Windows platforms (Linux, macOS, *BSD).

//go:build !windows

package main

import (
	"os/exec"
	"syscall"
)

// configureSpawn places the child in its own process group so a graceful
// signal aimed at it does not loop back to the harness.
func configureSpawn(cmd *exec.Cmd) {
	cmd.SysProcAttr = &syscall.SysProcAttr{Setpgid: true}
}

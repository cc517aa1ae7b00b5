// Windows spawn attributes for the spawn op.
//
// This file is compiled only on Windows. The child gets its own console and
// process group so SafeKill's console-event branch can reach it without the
// synthesized event echoing back into the harness.

//go:build windows

package main

import (
	"os/exec"
	"syscall"

	"golang.org/x/sys/windows"
)

func configureSpawn(cmd *exec.Cmd) {
	cmd.SysProcAttr = &syscall.SysProcAttr{
		CreationFlags: windows.CREATE_NEW_PROCESS_GROUP | windows.CREATE_NEW_CONSOLE,
	}
}

// Dispatcher integration tests. The test binary re-executes itself as a
// victim process (selected through an environment variable in TestMain),
// registers a cleanup that prints a marker line, and blocks until a signal
// from the parent test drains its registry.

//go:build !windows

package safeexit

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"
	"syscall"
	"testing"
	"time"
)

const victimEnv = "SAFEEXIT_TEST_VICTIM"

func TestMain(m *testing.M) {
	mode := os.Getenv(victimEnv)
	if mode == "" {
		os.Exit(m.Run())
	}
	victimMain(mode)
}

// victimMain is the child side. Modes:
//
//	default - lazy registration installs every default trigger
//	bare    - only the two always-on triggers (explicit empty flags)
//	exit    - registers, then leaves through the explicit exit path
func victimMain(mode string) {
	if mode == "bare" {
		if err := Configure(0); err != nil {
			fmt.Fprintf(os.Stderr, "victim configure: %v\n", err)
			os.Exit(1)
		}
	}

	pid := os.Getpid()
	if _, err := Register(func() { fmt.Printf("victim %d cleanup\n", pid) }); err != nil {
		fmt.Fprintf(os.Stderr, "victim register: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("victim ready")
	if mode == "exit" {
		Exit(0)
	}
	select {}
}

// ///////////////////////////////////////////////
// Parent-Side Helpers
// ///////////////////////////////////////////////

type victim struct {
	pid  int
	done <-chan victimResult
}

type victimResult struct {
	lines    []string
	exitCode int
}

// startVictim re-executes the test binary in the given mode and blocks
// until it reports readiness, meaning its handlers are installed. The
// remaining output and the exit code arrive on done.
func startVictim(t *testing.T, mode string) victim {
	t.Helper()
	cmd := exec.Command(os.Args[0])
	cmd.Env = append(os.Environ(), victimEnv+"="+mode)
	cmd.Stderr = io.Discard
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		t.Fatalf("stdout pipe: %v", err)
	}
	if err := cmd.Start(); err != nil {
		t.Fatalf("start victim: %v", err)
	}
	t.Cleanup(func() { _ = cmd.Process.Kill() })

	sc := bufio.NewScanner(stdout)
	ready := false
	for sc.Scan() {
		if sc.Text() == "victim ready" {
			ready = true
			break
		}
	}
	if !ready {
		t.Fatalf("victim never became ready: %v", sc.Err())
	}

	done := make(chan victimResult, 1)
	go func() {
		var lines []string
		for sc.Scan() {
			lines = append(lines, sc.Text())
		}
		_ = cmd.Wait()
		done <- victimResult{lines: lines, exitCode: cmd.ProcessState.ExitCode()}
	}()
	return victim{pid: cmd.Process.Pid, done: done}
}

func awaitVictim(t *testing.T, v victim) victimResult {
	t.Helper()
	select {
	case res := <-v.done:
		return res
	case <-time.After(15 * time.Second):
		t.Fatal("victim did not exit")
		return victimResult{}
	}
}

func countCleanupLines(lines []string, pid int) int {
	needle := fmt.Sprintf("victim %d cleanup", pid)
	n := 0
	for _, l := range lines {
		if strings.Contains(l, needle) {
			n++
		}
	}
	return n
}

// ///////////////////////////////////////////////
// Scenarios
// ///////////////////////////////////////////////

func TestDispatcher_TerminateRequestRunsActionsOnce(t *testing.T) {
	v := startVictim(t, "default")

	err := SafeKill(v.pid, &KillOptions{
		Signal:    NoSignal,
		Timeout:   10 * time.Second,
		ForceKill: false,
		Silence:   false,
	})
	if err != nil {
		t.Fatalf("SafeKill: %v", err)
	}

	res := awaitVictim(t, v)
	if got := countCleanupLines(res.lines, v.pid); got != 1 {
		t.Errorf("cleanup ran %d times, want 1 (output: %v)", got, res.lines)
	}
	if res.exitCode != 0 {
		t.Errorf("victim exit code = %d, want 0", res.exitCode)
	}
}

func TestDispatcher_OptionalSignalWhenEnabled(t *testing.T) {
	v := startVictim(t, "default")

	err := SafeKill(v.pid, &KillOptions{
		Signal:    int(syscall.SIGQUIT),
		Timeout:   10 * time.Second,
		ForceKill: false,
		Silence:   false,
	})
	if err != nil {
		t.Fatalf("SafeKill: %v", err)
	}

	res := awaitVictim(t, v)
	if got := countCleanupLines(res.lines, v.pid); got != 1 {
		t.Errorf("cleanup ran %d times, want 1", got)
	}
	if res.exitCode != 0 {
		t.Errorf("victim exit code = %d, want 0", res.exitCode)
	}
}

func TestDispatcher_UnselectedSignalSkipsCleanup(t *testing.T) {
	v := startVictim(t, "bare")

	// Deliver the un-notified signal directly; the victim follows the
	// default disposition and dies without running any exit action.
	if err := syscall.Kill(v.pid, syscall.SIGQUIT); err != nil {
		t.Fatalf("kill: %v", err)
	}

	res := awaitVictim(t, v)
	if got := countCleanupLines(res.lines, v.pid); got != 0 {
		t.Errorf("cleanup ran %d times, want 0", got)
	}
	if res.exitCode == 0 {
		t.Error("victim exited cleanly; expected the default disposition")
	}
}

func TestDispatcher_BareVictimStillHandlesTerminate(t *testing.T) {
	v := startVictim(t, "bare")

	if err := SafeKill(v.pid, &KillOptions{
		Signal:    NoSignal,
		Timeout:   10 * time.Second,
		ForceKill: false,
		Silence:   false,
	}); err != nil {
		t.Fatalf("SafeKill: %v", err)
	}

	res := awaitVictim(t, v)
	if got := countCleanupLines(res.lines, v.pid); got != 1 {
		t.Errorf("cleanup ran %d times, want 1", got)
	}
}

func TestDispatcher_ExplicitExitRunsActions(t *testing.T) {
	v := startVictim(t, "exit")

	res := awaitVictim(t, v)
	if got := countCleanupLines(res.lines, v.pid); got != 1 {
		t.Errorf("cleanup ran %d times, want 1", got)
	}
	if res.exitCode != 0 {
		t.Errorf("victim exit code = %d, want 0", res.exitCode)
	}
}

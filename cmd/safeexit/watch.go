// Log watching for the kill op: block until the victim's exit marker shows
// up in its log, driven by filesystem notifications instead of a sleep-poll
// loop.
package main

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"tools.zach/dev/safeexit/internal/logger"
)

// watchForLine blocks until the file at path contains at least want lines
// with needle, then returns the count. The watch covers the directory, not
// the file, so it still fires when the log is created or rotated after the
// watch starts. On timeout the error reports the last observed count.
func watchForLine(path, needle string, want int, timeout time.Duration) (int, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return 0, fmt.Errorf("create watcher: %w", err)
	}
	defer w.Close()
	if err := w.Add(filepath.Dir(path)); err != nil {
		return 0, fmt.Errorf("watch %s: %w", filepath.Dir(path), err)
	}

	deadline := time.NewTimer(timeout)
	defer deadline.Stop()

	for {
		// Scan before waiting: the line may predate the watch.
		if n, err := logger.Scan(path, needle); err == nil && n >= want {
			return n, nil
		}
		select {
		case <-w.Events:
		case err := <-w.Errors:
			return 0, fmt.Errorf("watch %s: %w", path, err)
		case <-deadline.C:
			n, _ := logger.Scan(path, needle)
			return n, fmt.Errorf("timed out waiting for %q in %s (seen %d)", needle, path, n)
		}
	}
}

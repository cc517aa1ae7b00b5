package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"tools.zach/dev/safeexit"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "safeexit.toml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

// ///////////////////////////////////////////////
// Loading
// ///////////////////////////////////////////////

func TestLoad_MissingFileYieldsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	want := DefaultConfig()
	if *cfg != *want {
		t.Errorf("Load() = %+v, want defaults %+v", cfg, want)
	}
}

func TestLoad_EmptyPathYieldsDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Kill.TimeoutSecs != 4 || !cfg.Kill.Force || !cfg.Kill.Silence {
		t.Errorf("unexpected kill defaults: %+v", cfg.Kill)
	}
	if cfg.Kill.Signal != safeexit.NoSignal {
		t.Errorf("default signal = %d, want NoSignal", cfg.Kill.Signal)
	}
}

func TestLoad_FileOverridesDefaults(t *testing.T) {
	path := writeConfig(t, `
[kill]
timeout_secs = 9
force = false

[dispatch]
quit = false

[log]
level = "debug"
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Kill.TimeoutSecs != 9 {
		t.Errorf("timeout_secs = %d, want 9", cfg.Kill.TimeoutSecs)
	}
	if cfg.Kill.Force {
		t.Error("force not overridden to false")
	}
	if cfg.Dispatch.Quit {
		t.Error("dispatch.quit not overridden to false")
	}
	if !cfg.Dispatch.Hangup {
		t.Error("untouched dispatch.hangup lost its default")
	}
	if cfg.Log.Level != "debug" {
		t.Errorf("log.level = %q, want debug", cfg.Log.Level)
	}
}

func TestLoad_RejectsNegativeTimeout(t *testing.T) {
	path := writeConfig(t, "[kill]\ntimeout_secs = -1\n")
	if _, err := Load(path); err == nil {
		t.Error("Load accepted a negative timeout")
	}
}

func TestLoad_RejectsMalformedTOML(t *testing.T) {
	path := writeConfig(t, "[kill\n")
	if _, err := Load(path); err == nil {
		t.Error("Load accepted malformed TOML")
	}
}

// ///////////////////////////////////////////////
// Conversions
// ///////////////////////////////////////////////

func TestFlags_MapsEverySwitch(t *testing.T) {
	cfg := DefaultConfig()
	got := cfg.Flags()
	if !got.Has(safeexit.FlagQuit | safeexit.FlagHangup | safeexit.FlagBreak | safeexit.CtrlAll) {
		t.Errorf("default flags = %b, missing optional triggers", got)
	}
	if got.Has(safeexit.FlagAutoCreateConsole) {
		t.Error("console cosmetics enabled by default")
	}

	cfg.Dispatch = DispatchConfig{CtrlClose: true, AutoCreateConsole: true}
	got = cfg.Flags()
	want := safeexit.FlagCtrlClose | safeexit.FlagAutoCreateConsole
	if got != want {
		t.Errorf("flags = %b, want %b", got, want)
	}
}

func TestKillOptions_Conversion(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Kill = KillConfig{TimeoutSecs: 7, Force: false, Signal: 2, Silence: false}

	opts := cfg.KillOptions()
	if opts.Timeout != 7*time.Second {
		t.Errorf("Timeout = %v, want 7s", opts.Timeout)
	}
	if opts.ForceKill || opts.Silence {
		t.Errorf("flags not carried over: %+v", opts)
	}
	if opts.Signal != 2 {
		t.Errorf("Signal = %d, want 2", opts.Signal)
	}
}

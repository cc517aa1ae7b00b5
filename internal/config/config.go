// Package config provides configuration loading and defaults for the
// safeexit test harness.
//
// Configuration is loaded from a TOML file. It covers the SafeKill request
// the kill op issues, the dispatcher flags a victim process installs, and
// logging. Every field has a sensible default so a missing file means
// default behavior.
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/BurntSushi/toml"

	"tools.zach/dev/safeexit"
)

// ///////////////////////////////////////////////
// Configuration Types
// ///////////////////////////////////////////////

// Config represents the harness configuration.
type Config struct {
	// Kill holds the SafeKill request settings used by the kill op.
	Kill KillConfig `toml:"kill"`
	// Dispatch holds the termination-dispatcher flags a victim installs.
	Dispatch DispatchConfig `toml:"dispatch"`
	// Log holds logging settings.
	Log LogConfig `toml:"log"`
}

// KillConfig holds the SafeKill request settings.
type KillConfig struct {
	// TimeoutSecs bounds the wait between the graceful request and the
	// force-kill decision.
	TimeoutSecs int `toml:"timeout_secs"`
	// Force terminates the victim unconditionally if it outlives the wait.
	Force bool `toml:"force"`
	// Signal is the signal or console-event code to deliver; -1 selects
	// the platform default.
	Signal int `toml:"signal"`
	// Silence swallows graceful-request and wait failures.
	Silence bool `toml:"silence"`
}

// DispatchConfig selects the optional termination triggers. The two
// always-handled requests (interrupt, terminate) have no switches.
type DispatchConfig struct {
	// Quit handles SIGQUIT (POSIX).
	Quit bool `toml:"quit"`
	// Hangup handles SIGHUP (POSIX).
	Hangup bool `toml:"hangup"`
	// Break handles CTRL_BREAK_EVENT (Windows).
	Break bool `toml:"break"`
	// CtrlClose handles the console-close event (Windows).
	CtrlClose bool `toml:"ctrl_close"`
	// CtrlShutdown handles the system-shutdown event (Windows).
	CtrlShutdown bool `toml:"ctrl_shutdown"`
	// CtrlLogoff handles the user-logoff event (Windows).
	CtrlLogoff bool `toml:"ctrl_logoff"`
	// AutoCreateConsole allocates a hidden console for console-less
	// victims (Windows).
	AutoCreateConsole bool `toml:"auto_create_console"`
	// ForceHideConsole hides the console window (Windows).
	ForceHideConsole bool `toml:"force_hide_console"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	// Level is the minimum log level (debug, info, warn, error).
	Level string `toml:"level"`
	// MaxSizeMB is the maximum log file size in megabytes before rotation.
	MaxSizeMB int `toml:"max_size_mb"`
}

// ///////////////////////////////////////////////
// Defaults and Loading
// ///////////////////////////////////////////////

// DefaultConfig returns the built-in defaults: the SafeKill defaults and
// every optional dispatcher trigger enabled.
func DefaultConfig() *Config {
	return &Config{
		Kill: KillConfig{
			TimeoutSecs: 4,
			Force:       true,
			Signal:      safeexit.NoSignal,
			Silence:     true,
		},
		Dispatch: DispatchConfig{
			Quit:         true,
			Hangup:       true,
			Break:        true,
			CtrlClose:    true,
			CtrlShutdown: true,
			CtrlLogoff:   true,
		},
		Log: LogConfig{
			Level:     "info",
			MaxSizeMB: 5,
		},
	}
}

// Load reads the TOML file at path over the defaults. A missing file (or
// an empty path) yields the defaults unchanged.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("read config file: %w", err)
	}
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	if cfg.Kill.TimeoutSecs < 0 {
		return nil, fmt.Errorf("kill.timeout_secs must not be negative, got %d", cfg.Kill.TimeoutSecs)
	}
	return cfg, nil
}

// ///////////////////////////////////////////////
// Conversions
// ///////////////////////////////////////////////

// Flags converts the dispatch section into the ConfigFlag bit-set that
// safeexit.Configure takes.
func (c *Config) Flags() safeexit.ConfigFlag {
	var f safeexit.ConfigFlag
	set := func(on bool, bit safeexit.ConfigFlag) {
		if on {
			f |= bit
		}
	}
	set(c.Dispatch.Quit, safeexit.FlagQuit)
	set(c.Dispatch.Hangup, safeexit.FlagHangup)
	set(c.Dispatch.Break, safeexit.FlagBreak)
	set(c.Dispatch.CtrlClose, safeexit.FlagCtrlClose)
	set(c.Dispatch.CtrlShutdown, safeexit.FlagCtrlShutdown)
	set(c.Dispatch.CtrlLogoff, safeexit.FlagCtrlLogoff)
	set(c.Dispatch.AutoCreateConsole, safeexit.FlagAutoCreateConsole)
	set(c.Dispatch.ForceHideConsole, safeexit.FlagForceHideConsole)
	return f
}

// KillOptions converts the kill section into SafeKill options.
func (c *Config) KillOptions() *safeexit.KillOptions {
	return &safeexit.KillOptions{
		Signal:    c.Kill.Signal,
		Timeout:   time.Duration(c.Kill.TimeoutSecs) * time.Second,
		ForceKill: c.Kill.Force,
		Silence:   c.Kill.Silence,
	}
}

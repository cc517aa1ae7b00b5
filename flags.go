package safeexit

// ConfigFlag is a bit-set selecting the optional termination triggers
// [Configure] installs beyond the always-handled interrupt and terminate
// requests. Bits that do not apply to the running platform are silently
// ignored, so one value can be shared across platforms.
type ConfigFlag uint16

const (
	// FlagQuit handles the quit request (SIGQUIT). POSIX only.
	FlagQuit ConfigFlag = 1 << iota
	// FlagHangup handles the hang-up request (SIGHUP). POSIX only.
	FlagHangup
	// FlagBreak handles the break request (CTRL_BREAK_EVENT). Windows only.
	FlagBreak
	// FlagCtrlClose handles the console-close event. Windows only.
	FlagCtrlClose
	// FlagCtrlShutdown handles the system-shutdown event. Windows only.
	FlagCtrlShutdown
	// FlagCtrlLogoff handles the user-logoff event. Windows only.
	FlagCtrlLogoff
	// FlagAutoCreateConsole allocates a hidden console when the process has
	// none, keeping a detached process reachable by console-control events.
	// Windows only.
	FlagAutoCreateConsole
	// FlagForceHideConsole hides the console window even when the process
	// did not allocate it. Windows only.
	FlagForceHideConsole
)

// CtrlAll aggregates the three Windows console-control categories.
const CtrlAll = FlagCtrlClose | FlagCtrlShutdown | FlagCtrlLogoff

// DefaultFlags enables every optional trigger valid for the running
// platform. It is what a lazy [Register] installs.
const DefaultFlags = FlagQuit | FlagHangup | FlagBreak | CtrlAll

// Has reports whether every bit in want is set.
func (f ConfigFlag) Has(want ConfigFlag) bool {
	return f&want == want
}

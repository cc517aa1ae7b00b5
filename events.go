package safeexit

// Windows console-control event codes. On Windows these are the values for
// the Signal field of [KillOptions] and the event identifiers seen by the
// console-control handler. Values match the Win32 CTRL_*_EVENT constants.
const (
	CtrlCEvent        = 0
	CtrlBreakEvent    = 1
	CtrlCloseEvent    = 2
	CtrlLogoffEvent   = 5
	CtrlShutdownEvent = 6
)

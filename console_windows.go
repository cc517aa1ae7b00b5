// Cosmetic console management behind FlagAutoCreateConsole and
// FlagForceHideConsole.
//
// This file is compiled only on Windows. A process without a console cannot
// receive console-control events, so detached victims opt into a hidden
// console to stay reachable by SafeKill's console branch.

//go:build windows

package safeexit

import "tools.zach/dev/safeexit/internal/winapi"

// consoleSetup hides an existing console window when forced, and allocates
// a hidden one when the process has none and asked for one. Failures are
// ignored: cosmetics never block handler installation.
func consoleSetup(flags ConfigFlag) {
	hwnd := winapi.GetConsoleWindow()
	if hwnd != 0 && flags.Has(FlagForceHideConsole) {
		winapi.ShowWindow(hwnd, winapi.SWHide)
	}
	if hwnd == 0 && flags.Has(FlagAutoCreateConsole) {
		if err := winapi.AllocConsole(); err != nil {
			return
		}
		winapi.ShowWindow(winapi.GetConsoleWindow(), winapi.SWHide)
	}
}

// Package winapi provides the raw user32 and kernel32 bindings the core
// needs that golang.org/x/sys/windows does not wrap. Procs load lazily from
// system DLLs; a returned error is the native error code from the failing
// call.

//go:build windows

package winapi

import (
	"unsafe"

	"golang.org/x/sys/windows"
)

// WMClose asks a window to close; the owning application decides how.
const WMClose = 0x0010

// SWHide is the ShowWindow command that hides a window.
const SWHide = 0

var (
	user32   = windows.NewLazySystemDLL("user32.dll")
	kernel32 = windows.NewLazySystemDLL("kernel32.dll")

	procEnumWindows              = user32.NewProc("EnumWindows")
	procGetWindowThreadProcessID = user32.NewProc("GetWindowThreadProcessId")
	procPostMessageW             = user32.NewProc("PostMessageW")
	procShowWindow               = user32.NewProc("ShowWindow")

	procAttachConsole         = kernel32.NewProc("AttachConsole")
	procFreeConsole           = kernel32.NewProc("FreeConsole")
	procAllocConsole          = kernel32.NewProc("AllocConsole")
	procGetConsoleWindow      = kernel32.NewProc("GetConsoleWindow")
	procSetConsoleCtrlHandler = kernel32.NewProc("SetConsoleCtrlHandler")
)

// ///////////////////////////////////////////////
// user32
// ///////////////////////////////////////////////

// EnumWindows walks all top-level windows, invoking callback (a
// [windows.NewCallback] thunk) for each until it returns 0. A zero overall
// result caused by the callback stopping enumeration is not an error, so
// the result is discarded; callers communicate through the callback.
func EnumWindows(callback, lparam uintptr) {
	_, _, _ = procEnumWindows.Call(callback, lparam)
}

// GetWindowThreadProcessID stores the id of the process owning hwnd in
// *pid.
func GetWindowThreadProcessID(hwnd uintptr, pid *uint32) {
	_, _, _ = procGetWindowThreadProcessID.Call(hwnd, uintptr(unsafe.Pointer(pid)))
}

// PostMessage posts msg to hwnd without waiting for it to be processed.
func PostMessage(hwnd uintptr, msg uint32, wparam, lparam uintptr) error {
	r, _, err := procPostMessageW.Call(hwnd, uintptr(msg), wparam, lparam)
	if r == 0 {
		return err
	}
	return nil
}

// ShowWindow sets the show state of hwnd.
func ShowWindow(hwnd uintptr, cmd int) {
	_, _, _ = procShowWindow.Call(hwnd, uintptr(cmd))
}

// ///////////////////////////////////////////////
// kernel32
// ///////////////////////////////////////////////

// AttachConsole attaches the calling process to the console owned by pid.
func AttachConsole(pid uint32) error {
	r, _, err := procAttachConsole.Call(uintptr(pid))
	if r == 0 {
		return err
	}
	return nil
}

// FreeConsole detaches the calling process from its console.
func FreeConsole() error {
	r, _, err := procFreeConsole.Call()
	if r == 0 {
		return err
	}
	return nil
}

// AllocConsole creates a new console for the calling process.
func AllocConsole() error {
	r, _, err := procAllocConsole.Call()
	if r == 0 {
		return err
	}
	return nil
}

// GetConsoleWindow returns the window handle of the attached console, or 0
// when the process has none.
func GetConsoleWindow() uintptr {
	r, _, _ := procGetConsoleWindow.Call()
	return r
}

// SetConsoleCtrlHandler adds (add true) or removes a HandlerRoutine for
// console control events. handler is a [windows.NewCallback] thunk.
func SetConsoleCtrlHandler(handler uintptr, add bool) error {
	var addArg uintptr
	if add {
		addArg = 1
	}
	r, _, err := procSetConsoleCtrlHandler.Call(handler, addArg)
	if r == 0 {
		return err
	}
	return nil
}

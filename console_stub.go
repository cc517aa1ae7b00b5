//go:build !windows

package safeexit

// consoleSetup is a no-op outside Windows; console cosmetics only exist
// there.
func consoleSetup(ConfigFlag) {}

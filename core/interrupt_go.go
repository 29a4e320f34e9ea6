//go:build !tinygo

package core

// State stands in for the saved PRIMASK on host builds
type State uintptr

// The host register model has no interrupt handlers to hold off; tests
// call handlers synchronously.
func disableInterrupts() State { return 0 }

func restoreInterrupts(State) {}

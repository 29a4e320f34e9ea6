//go:build tinygo

package core

import "runtime/interrupt"

// disableInterrupts masks interrupts (PRIMASK) and returns the previous state
func disableInterrupts() interrupt.State {
	return interrupt.Disable()
}

// restoreInterrupts unmasks interrupts only if they were enabled before the
// matching disableInterrupts, so critical sections nest.
func restoreInterrupts(state interrupt.State) {
	interrupt.Restore(state)
}

package core

// Critical runs fn with interrupts disabled and restores the previous state
// afterwards. Any register sequence that an interrupt handler also touches
// must run inside Critical, since the read-modify-write accesses of this
// package are not atomic with respect to preemption.
func Critical(fn func()) {
	state := disableInterrupts()
	defer restoreInterrupts(state)
	fn()
}

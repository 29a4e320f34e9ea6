//go:build tinygo

package core

import "runtime/volatile"

// Register32 is a volatile memory-mapped 32-bit register
type Register32 = volatile.Register32

// writeSetReset writes BSRR. The register is write-only, so it is never
// read back.
func writeSetReset(g *GPIO_Type, mask uint32) {
	g.BSRR.Set(mask)
}

// writeOneToClear writes mask to a write-1-to-clear status register.
// Only the bits in mask are cleared.
func writeOneToClear(reg *Register32, mask uint32) {
	reg.Set(mask)
}

// disableIRQ writes the clear-enable bit of irq
func disableIRQ(nvic *NVIC_Type, irq uint32) {
	nvic.ICER[irq/32].Set(1 << (irq % 32))
}

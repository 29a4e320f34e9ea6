//go:build !tinygo

package core

import "sync/atomic"

// Register32 is an in-memory stand-in for a 32-bit memory-mapped register.
// It mirrors the method set of runtime/volatile.Register32 so the HAL code
// is identical on host and device.
type Register32 struct {
	Reg uint32
}

// Get returns the register value
func (r *Register32) Get() uint32 {
	return atomic.LoadUint32(&r.Reg)
}

// Set overwrites the register value
func (r *Register32) Set(value uint32) {
	atomic.StoreUint32(&r.Reg, value)
}

// SetBits ORs value into the register
func (r *Register32) SetBits(value uint32) {
	atomic.OrUint32(&r.Reg, value)
}

// ClearBits clears every bit of value in the register
func (r *Register32) ClearBits(value uint32) {
	atomic.AndUint32(&r.Reg, ^value)
}

// HasBits reports whether any bit of value is set
func (r *Register32) HasBits(value uint32) bool {
	return r.Get()&value != 0
}

// ReplaceBits replaces the field mask<<pos with value<<pos
func (r *Register32) ReplaceBits(value uint32, mask uint32, pos uint8) {
	for {
		old := atomic.LoadUint32(&r.Reg)
		next := old&^(mask<<pos) | (value&mask)<<pos
		if atomic.CompareAndSwapUint32(&r.Reg, old, next) {
			return
		}
	}
}

// writeSetReset applies a BSRR write. BSRR is write-only on silicon, so the
// memory model applies its effect to ODR directly. A bit named in both
// halves ends up set, as on hardware.
func writeSetReset(g *GPIO_Type, mask uint32) {
	reset := (mask >> 16) &^ mask
	g.ODR.ClearBits(reset & 0xFFFF)
	g.ODR.SetBits(mask & 0xFFFF)
}

// writeOneToClear applies a write-1-to-clear access to a status register
func writeOneToClear(reg *Register32, mask uint32) {
	reg.ClearBits(mask)
}

// disableIRQ applies an ICER write: the enable bit of irq drops out of ISER
func disableIRQ(nvic *NVIC_Type, irq uint32) {
	nvic.ISER[irq/32].ClearBits(1 << (irq % 32))
}

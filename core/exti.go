package core

// ConfigureInterrupt selects the trigger edge(s) of the EXTI line of pin.
// Selections are additive: a previously selected edge stays selected.
func ConfigureInterrupt(exti *EXTI_Type, pin uint8, edge Edge) error {
	if pin > MaxPin {
		return ErrInvalidPin
	}
	bit := uint32(1) << pin
	switch edge {
	case EdgeRising:
		exti.RTSR.SetBits(bit)
	case EdgeFalling:
		exti.FTSR.SetBits(bit)
	case EdgeBoth:
		exti.FTSR.SetBits(bit)
		exti.RTSR.SetBits(bit)
	default:
		return ErrInvalidEdge
	}
	var sel uint32
	if exti.RTSR.HasBits(bit) {
		sel |= 1
	}
	if exti.FTSR.HasBits(bit) {
		sel |= 2
	}
	recordTrace(TraceEdge, NumPorts, pin, sel, uint32(edge))
	return nil
}

// SelectInterruptSource routes pin of port to EXTI line pin. The line's
// EXTICR field is cleared before the port code is written, so a line can be
// moved between ports.
func SelectInterruptSource(afio *AFIO_Type, port Port, pin uint8) error {
	if pin > MaxPin {
		return ErrInvalidPin
	}
	if port >= NumPorts {
		return ErrInvalidPort
	}
	reg := &afio.EXTICR[pin/extiPerReg]
	reg.ReplaceBits(uint32(port), extiFieldMask, extiFieldBits*(pin%extiPerReg))
	recordTrace(TraceSource, port, pin, reg.Get(), uint32(pin/extiPerReg))
	return nil
}

// InterruptSource returns the port currently routed to EXTI line pin
func InterruptSource(afio *AFIO_Type, pin uint8) (Port, error) {
	if pin > MaxPin {
		return 0, ErrInvalidPin
	}
	v := afio.EXTICR[pin/extiPerReg].Get() >> (extiFieldBits * (pin % extiPerReg))
	return Port(v & extiFieldMask), nil
}

// EnableInterrupt unmasks the EXTI line of pin and enables irq in the NVIC
func EnableInterrupt(exti *EXTI_Type, nvic *NVIC_Type, pin uint8, irq uint32) error {
	if pin > MaxPin {
		return ErrInvalidPin
	}
	if irq >= numIRQ {
		return ErrInvalidIRQ
	}
	exti.IMR.SetBits(1 << pin)
	// ISER is write-1-to-set and reads back the enabled set, so OR-ing is
	// harmless on silicon and exact in the memory model.
	nvic.ISER[irq/32].SetBits(1 << (irq % 32))
	recordTrace(TraceEnable, NumPorts, pin, exti.IMR.Get(), irq)
	return nil
}

// DisableInterrupt masks the EXTI line of pin and disables irq in the NVIC.
// irq may be shared with other lines; callers sharing a vector must keep it
// enabled.
func DisableInterrupt(exti *EXTI_Type, nvic *NVIC_Type, pin uint8, irq uint32) error {
	if pin > MaxPin {
		return ErrInvalidPin
	}
	if irq >= numIRQ {
		return ErrInvalidIRQ
	}
	exti.IMR.ClearBits(1 << pin)
	disableIRQ(nvic, irq)
	recordTrace(TraceDisable, NumPorts, pin, exti.IMR.Get(), irq)
	return nil
}

// IRQEnabled reports whether irq is enabled in the NVIC
func IRQEnabled(nvic *NVIC_Type, irq uint32) bool {
	if irq >= numIRQ {
		return false
	}
	return nvic.ISER[irq/32].HasBits(1 << (irq % 32))
}

// PendingInterrupt reports whether the EXTI line of pin is pending
func PendingInterrupt(exti *EXTI_Type, pin uint8) bool {
	if pin > MaxPin {
		return false
	}
	return exti.PR.HasBits(1 << pin)
}

// ClearInterrupt clears the pending flag of the EXTI line of pin if it is
// set. Only that line's bit is written.
func ClearInterrupt(exti *EXTI_Type, pin uint8) error {
	if pin > MaxPin {
		return ErrInvalidPin
	}
	bit := uint32(1) << pin
	if exti.PR.HasBits(bit) {
		writeOneToClear(&exti.PR, bit)
		recordTrace(TraceClear, NumPorts, pin, exti.PR.Get(), bit)
	}
	return nil
}

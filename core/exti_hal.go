package core

// Edge selects which signal transitions raise an EXTI interrupt
type Edge uint8

const (
	EdgeRising Edge = iota
	EdgeFalling
	EdgeBoth
)

// Port identifies a GPIO port. Its value is also the AFIO_EXTICR source
// code of the port.
type Port uint8

const (
	PortA Port = iota
	PortB
	PortC
	PortD
	PortE

	NumPorts
)

// String returns "A".."E", or "?" for an unknown port
func (p Port) String() string {
	if p >= NumPorts {
		return "?"
	}
	return string(rune('A' + p))
}

// IRQ numbers of the EXTI lines on STM32F10x
const (
	IRQ_EXTI0     = 6
	IRQ_EXTI1     = 7
	IRQ_EXTI2     = 8
	IRQ_EXTI3     = 9
	IRQ_EXTI4     = 10
	IRQ_EXTI9_5   = 23
	IRQ_EXTI15_10 = 40

	numIRQ = 8 * 32 // NVIC register capacity
)

const (
	extiFieldBits = 4
	extiFieldMask = 0xF
	extiPerReg    = 4
)

// IRQForLine returns the NVIC interrupt number serving an EXTI line.
// Lines 5-9 and 10-15 share one vector each.
func IRQForLine(line uint8) (uint32, error) {
	switch {
	case line <= 4:
		return IRQ_EXTI0 + uint32(line), nil
	case line <= 9:
		return IRQ_EXTI9_5, nil
	case line <= MaxPin:
		return IRQ_EXTI15_10, nil
	}
	return 0, ErrInvalidPin
}

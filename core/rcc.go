package core

// Peripheral is a clock-gated peripheral on the APB2 bus. Its value is the
// enable bit position in RCC_APB2ENR.
type Peripheral uint8

const (
	PeriphAFIO  Peripheral = 0
	PeriphGPIOA Peripheral = 2
	PeriphGPIOB Peripheral = 3
	PeriphGPIOC Peripheral = 4
	PeriphGPIOD Peripheral = 5
	PeriphGPIOE Peripheral = 6
)

func (p Peripheral) valid() bool {
	return p == PeriphAFIO || (p >= PeriphGPIOA && p <= PeriphGPIOE)
}

// PortClock returns the clock gate of a GPIO port
func PortClock(port Port) (Peripheral, error) {
	if port >= NumPorts {
		return 0, ErrInvalidPort
	}
	return PeriphGPIOA + Peripheral(port), nil
}

// EnableClock gates the clock of p on. This must happen before any access
// to the peripheral's registers.
func EnableClock(rcc *RCC_Type, p Peripheral) error {
	if !p.valid() {
		return ErrInvalidPeripheral
	}
	rcc.APB2ENR.SetBits(1 << p)
	recordTrace(TraceClock, NumPorts, uint8(p), rcc.APB2ENR.Get(), 1)
	return nil
}

// DisableClock gates the clock of p off
func DisableClock(rcc *RCC_Type, p Peripheral) error {
	if !p.valid() {
		return ErrInvalidPeripheral
	}
	rcc.APB2ENR.ClearBits(1 << p)
	recordTrace(TraceClock, NumPorts, uint8(p), rcc.APB2ENR.Get(), 0)
	return nil
}

// ClockEnabled reports whether the clock of p is running
func ClockEnabled(rcc *RCC_Type, p Peripheral) bool {
	return p.valid() && rcc.APB2ENR.HasBits(1<<p)
}

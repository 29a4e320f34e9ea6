package core

// GPIO_Type is the register block of one GPIO port
type GPIO_Type struct {
	CRL  Register32 // 0x00 mode/cnf for pins 0-7
	CRH  Register32 // 0x04 mode/cnf for pins 8-15
	IDR  Register32 // 0x08 input data, read-only
	ODR  Register32 // 0x0C output data
	BSRR Register32 // 0x10 bit set (0-15) / reset (16-31), write-only
	BRR  Register32 // 0x14 bit reset, write-only
	LCKR Register32 // 0x18 configuration lock
}

// EXTI_Type is the external interrupt controller. Every register is indexed
// by line number, and line N is fed by pin N of the port selected in AFIO.
type EXTI_Type struct {
	IMR   Register32 // 0x00 interrupt mask
	EMR   Register32 // 0x04 event mask
	RTSR  Register32 // 0x08 rising trigger select
	FTSR  Register32 // 0x0C falling trigger select
	SWIER Register32 // 0x10 software interrupt event
	PR    Register32 // 0x14 pending, write 1 to clear
}

// AFIO_Type is the alternate-function / EXTI source multiplexer
type AFIO_Type struct {
	EVCR   Register32    // 0x00
	MAPR   Register32    // 0x04 remap
	EXTICR [4]Register32 // 0x08-0x14 EXTI source, four 4-bit fields each
	_      uint32        // 0x18
	MAPR2  Register32    // 0x1C
}

// RCC_Type is the reset and clock control block
type RCC_Type struct {
	CR       Register32 // 0x00
	CFGR     Register32 // 0x04
	CIR      Register32 // 0x08
	APB2RSTR Register32 // 0x0C
	APB1RSTR Register32 // 0x10
	AHBENR   Register32 // 0x14
	APB2ENR  Register32 // 0x18
	APB1ENR  Register32 // 0x1C
	BDCR     Register32 // 0x20
	CSR      Register32 // 0x24
}

// NVIC_Type is the Cortex-M3 nested vectored interrupt controller,
// starting at ISER0
type NVIC_Type struct {
	ISER [8]Register32 // 0x100 set-enable
	_    [24]uint32
	ICER [8]Register32 // 0x180 clear-enable
	_    [24]uint32
	ISPR [8]Register32 // 0x200 set-pending
	_    [24]uint32
	ICPR [8]Register32 // 0x280 clear-pending
	_    [24]uint32
	IABR [8]Register32 // 0x300 active
}

// Peripheral base addresses (RM0008 memory map)
const (
	AFIO_BASE  = 0x40010000
	EXTI_BASE  = 0x40010400
	GPIOA_BASE = 0x40010800
	GPIOB_BASE = 0x40010C00
	GPIOC_BASE = 0x40011000
	GPIOD_BASE = 0x40011400
	GPIOE_BASE = 0x40011800
	RCC_BASE   = 0x40021000
	NVIC_BASE  = 0xE000E100
)

// Peripherals groups one complete set of register blocks. The HAL functions
// take individual blocks; this is for code that works on a whole chip image.
type Peripherals struct {
	GPIO [NumPorts]*GPIO_Type
	EXTI *EXTI_Type
	AFIO *AFIO_Type
	RCC  *RCC_Type
	NVIC *NVIC_Type
}

// Default returns the chip's own register blocks
func Default() *Peripherals {
	return &Peripherals{
		GPIO: [NumPorts]*GPIO_Type{GPIOA, GPIOB, GPIOC, GPIOD, GPIOE},
		EXTI: EXTI,
		AFIO: AFIO,
		RCC:  RCC,
		NVIC: NVIC,
	}
}

// detachedPort names a GPIO block allocated by NewPeripherals
type detachedPort struct {
	gpio *GPIO_Type
	port Port
}

var detachedPorts []detachedPort

// NewPeripherals allocates a detached, zeroed register set. Writes to it
// never reach hardware.
func NewPeripherals() *Peripherals {
	p := &Peripherals{
		EXTI: &EXTI_Type{},
		AFIO: &AFIO_Type{},
		RCC:  &RCC_Type{},
		NVIC: &NVIC_Type{},
	}
	for i := range p.GPIO {
		p.GPIO[i] = &GPIO_Type{}
		detachedPorts = append(detachedPorts, detachedPort{p.GPIO[i], Port(i)})
	}
	return p
}

// GPIO control register contents out of reset: every pin a floating input
const gpioResetCR = 0x44444444

// LoadResetValues puts every GPIO control register at its reset value.
// Other registers of this set reset to zero.
func (p *Peripherals) LoadResetValues() {
	for _, g := range p.GPIO {
		g.CRL.Set(gpioResetCR)
		g.CRH.Set(gpioResetCR)
	}
}

// Port returns the register block of port
func (p *Peripherals) Port(port Port) *GPIO_Type {
	if port >= NumPorts {
		return nil
	}
	return p.GPIO[port]
}

// portOf returns the port of g, looking through the chip's own blocks and
// those of every NewPeripherals set. It returns NumPorts for a block that
// belongs to neither.
func portOf(g *GPIO_Type) Port {
	switch g {
	case GPIOA:
		return PortA
	case GPIOB:
		return PortB
	case GPIOC:
		return PortC
	case GPIOD:
		return PortD
	case GPIOE:
		return PortE
	}
	for _, d := range detachedPorts {
		if d.gpio == g {
			return d.port
		}
	}
	return NumPorts
}

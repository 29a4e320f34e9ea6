package core

import "errors"

// Pin geometry of an STM32F1 GPIO port
const (
	PinsPerPort = 16
	MaxPin      = PinsPerPort - 1

	// Pins below splitPin live in CRL, the rest in CRH
	splitPin   = 8
	fieldBits  = 4 // MODE + CNF per pin
	fieldMask  = 0x3
	cnfOffset  = 2
	resetShift = 16 // BSRR reset half starts here
)

// Mode is the 2-bit MODE field of a pin
type Mode uint8

const (
	ModeInput       Mode = 0x0
	ModeOutput10MHz Mode = 0x1
	ModeOutput2MHz  Mode = 0x2
	ModeOutput50MHz Mode = 0x3
)

// IsOutput reports whether the mode drives the pin
func (m Mode) IsOutput() bool {
	return m != ModeInput
}

// Config is the 2-bit CNF field of a pin. Its meaning depends on the mode.
type Config uint8

// Input configurations (MODE = ModeInput)
const (
	InputAnalog     Config = 0x0
	InputFloating   Config = 0x1
	InputPullUpDown Config = 0x2
)

// Output configurations (MODE = one of the output speeds)
const (
	OutputPushPull     Config = 0x0
	OutputOpenDrain    Config = 0x1
	OutputAltPushPull  Config = 0x2
	OutputAltOpenDrain Config = 0x3
)

// IsAlternate reports whether an output configuration hands the pin to a
// peripheral
func (c Config) IsAlternate() bool {
	return c == OutputAltPushPull || c == OutputAltOpenDrain
}

// PinConfig describes one pin. It is built by the application right before
// InitPin and has no meaning afterwards.
type PinConfig struct {
	Pin  uint8
	Mode Mode
	Type Config

	// Alternate is the AFIO_MAPR remap mask an alternate-function output
	// needs. InitPin leaves AFIO alone; pass it to SetAltFunction once the
	// AFIO clock runs. On this family alternate functions are routed per
	// peripheral, not per pin.
	Alternate uint32
}

// Argument errors. A rejected call leaves every register untouched.
var (
	ErrInvalidPin        = errors.New("pin index out of range")
	ErrInvalidMode       = errors.New("invalid pin mode")
	ErrInvalidConfig     = errors.New("invalid pin configuration")
	ErrInvalidEdge       = errors.New("invalid interrupt edge")
	ErrInvalidPort       = errors.New("invalid GPIO port")
	ErrInvalidIRQ        = errors.New("invalid IRQ number")
	ErrInvalidPeripheral = errors.New("invalid peripheral")
)

// GPIOPin identifies a pin across all ports: port*16 + pin
type GPIOPin uint32

// PinOf builds a GPIOPin from a port and a pin index
func PinOf(port Port, pin uint8) GPIOPin {
	return GPIOPin(uint32(port)*PinsPerPort + uint32(pin))
}

// Split returns the port and pin index of p
func (p GPIOPin) Split() (Port, uint8) {
	return Port(p / PinsPerPort), uint8(p % PinsPerPort)
}

// GPIODriver is the abstract GPIO interface used by application code
type GPIODriver interface {
	// ConfigureOutput configures a pin as a push-pull digital output
	ConfigureOutput(pin GPIOPin) error

	// ConfigureInputPullUp configures a pin as a digital input with pull-up resistor
	ConfigureInputPullUp(pin GPIOPin) error

	// ConfigureInputPullDown configures a pin as a digital input with pull-down resistor
	ConfigureInputPullDown(pin GPIOPin) error

	// SetPin sets the pin to high (true) or low (false)
	SetPin(pin GPIOPin, value bool) error

	// GetPin reads the current pin state
	GetPin(pin GPIOPin) (bool, error)

	// ReadPin reads the current pin state, reporting false on error
	ReadPin(pin GPIOPin) bool
}

var gpioDriver GPIODriver

// SetGPIODriver registers the driver returned by MustGPIO
func SetGPIODriver(d GPIODriver) {
	gpioDriver = d
}

// MustGPIO returns the configured driver or panics if missing.
func MustGPIO() GPIODriver {
	if gpioDriver == nil {
		panic("GPIO driver not configured")
	}
	return gpioDriver
}

package serial

import (
	"io"
)

// Port is the serial link to a board.
// Implementations:
// - NativePort (github.com/tarm/serial)
// - in-memory pipes in tests
type Port interface {
	io.ReadWriteCloser

	// Flush discards buffered input so the next read starts fresh
	Flush() error
}

// Config holds serial port configuration
type Config struct {
	// Device path (e.g., "/dev/ttyUSB0", "COM3")
	Device string

	// Baud rate of the board's UART
	Baud int

	// Read timeout in milliseconds (0 = blocking)
	ReadTimeout int
}

// DefaultConfig returns the settings of the demo firmware's debug UART
func DefaultConfig(device string) *Config {
	return &Config{
		Device:      device,
		Baud:        115200,
		ReadTimeout: 100,
	}
}

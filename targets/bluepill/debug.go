//go:build stm32f103

package main

import (
	"machine"

	"f1hal/core"
)

var debugUART *machine.UART

// InitDebugUART sets up USART1 (PA9 TX, PA10 RX) at 115200 baud. The same
// line carries trace dumps, which the host decoder separates from text.
func InitDebugUART() {
	debugUART = machine.UART1

	err := debugUART.Configure(machine.UARTConfig{
		BaudRate: 115200,
		TX:       machine.PA9,
		RX:       machine.PA10,
	})
	if err != nil {
		return
	}

	core.SetDebugWriter(func(s string) {
		debugUART.Write([]byte(s))
		debugUART.Write([]byte("\r\n"))
	})
	core.SetDebugEnabled(true)
	core.InitAsyncDebug()

	core.DebugPrintln("=== f1hal blue pill ===")
	core.DebugPrintln("Baud: 115200, TX=PA9, RX=PA10")
}

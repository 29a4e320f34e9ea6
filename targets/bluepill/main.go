//go:build stm32f103

package main

import (
	"time"

	"f1hal/core"
)

// Single-byte requests from the host trace monitor
const (
	requestDump   = 'd'
	requestClear  = 'c'
	requestToggle = 't'
	requestText   = 'p'
	requestHigh   = '1'
	requestLow    = '0'
)

func main() {
	InitDebugUART()

	core.SetGPIODriver(core.NewF1GPIODriver(core.Default(), core.ModeOutput10MHz))

	if err := ledInit(); err != nil {
		core.DebugPrintln("[MAIN] LED init failed: " + err.Error())
	}
	if err := buttonInit(); err != nil {
		core.DebugPrintln("[MAIN] button init failed: " + err.Error())
	}
	core.DebugPrintln("[MAIN] EXTI0 armed on PB0, ISER0=" + core.Hex32(core.NVIC.ISER[0].Get()))

	for {
		for debugUART.Buffered() > 0 {
			b, err := debugUART.ReadByte()
			if err != nil {
				break
			}
			handleRequest(b)
		}
		time.Sleep(10 * time.Millisecond)
	}
}

func handleRequest(b byte) {
	switch b {
	case requestDump:
		if err := core.DumpTrace(debugUART); err != nil {
			core.DebugPrintln("[MAIN] dump failed: " + err.Error())
		}
	case requestClear:
		core.ClearTrace()
	case requestToggle:
		// ODR is also rewritten by the button handler
		core.Critical(ledToggle)
	case requestHigh:
		core.Critical(ledOn)
	case requestLow:
		core.Critical(ledOff)
	case requestText:
		core.DumpTraceText()
		core.DebugPrintln("[MAIN] presses=" + core.Itoa(int(buttonPresses.Get())))
	}
}

//go:build stm32f103

package main

import (
	"device/stm32"
	"runtime/interrupt"
	"runtime/volatile"

	"f1hal/core"
)

// Push button to GND on PB0, EXTI line 0
const buttonPin = 0

var (
	buttonGPIO = core.PinOf(core.PortB, buttonPin)

	buttonPresses volatile.Register32

	// Registered at link time; the NVIC enable bit is set by
	// core.EnableInterrupt, not through this handle.
	buttonIRQ = interrupt.New(stm32.IRQ_EXTI0, buttonISR)
)

// buttonInit routes PB0 to EXTI0 and unmasks it on both edges
func buttonInit() error {
	if err := core.MustGPIO().ConfigureInputPullUp(buttonGPIO); err != nil {
		return err
	}

	if err := core.EnableClock(core.RCC, core.PeriphAFIO); err != nil {
		return err
	}
	if err := core.SelectInterruptSource(core.AFIO, core.PortB, buttonPin); err != nil {
		return err
	}
	if err := core.ConfigureInterrupt(core.EXTI, buttonPin, core.EdgeBoth); err != nil {
		return err
	}
	irq, err := core.IRQForLine(buttonPin)
	if err != nil {
		return err
	}
	return core.EnableInterrupt(core.EXTI, core.NVIC, buttonPin, irq)
}

func buttonISR(interrupt.Interrupt) {
	_ = core.ClearInterrupt(core.EXTI, buttonPin)
	ledToggle()
	buttonPresses.Set(buttonPresses.Get() + 1)
	core.DebugAsync("[BTN] press " + core.Itoa(int(buttonPresses.Get())))
}

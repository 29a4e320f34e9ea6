//go:build stm32f103

package main

import "f1hal/core"

// User LED of the blue pill
const ledPin = 13

var (
	ledPort = core.GPIOC
	ledGPIO = core.PinOf(core.PortC, ledPin)
)

// ledInit makes the LED pin an output at the registered driver's speed
// (10 MHz push-pull); the driver gates the GPIOC clock on
func ledInit() error {
	return core.MustGPIO().ConfigureOutput(ledGPIO)
}

// The LED sinks into PC13, so a high level turns it dark.

func ledOn() {
	_ = core.MustGPIO().SetPin(ledGPIO, true)
}

func ledOff() {
	_ = core.MustGPIO().SetPin(ledGPIO, false)
}

// ledToggle runs in the button handler, so it works on ODR directly
func ledToggle() {
	_ = core.TogglePin(ledPort, ledPin)
}

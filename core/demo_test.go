package core

import "testing"

// The LED/button wiring of the demo board: LED on PC13, button on PB0
// routed to EXTI0, toggling the LED from the interrupt handler. Pins are
// set up through the registered driver, as the firmware does.
func TestButtonTogglesLED(t *testing.T) {
	Reset()
	SetGPIODriver(NewF1GPIODriver(Default(), ModeOutput10MHz))
	defer SetGPIODriver(nil)

	ledPin := PinOf(PortC, 13)
	if err := MustGPIO().ConfigureOutput(ledPin); err != nil {
		t.Fatal(err)
	}
	if err := MustGPIO().ConfigureInputPullUp(PinOf(PortB, 0)); err != nil {
		t.Fatal(err)
	}
	if m, c, _ := PinField(GPIOC, 13); m != ModeOutput10MHz || c != OutputPushPull {
		t.Fatalf("Expected LED 10MHz push-pull, got mode=%d cnf=%d", m, c)
	}
	if err := EnableClock(RCC, PeriphAFIO); err != nil {
		t.Fatal(err)
	}
	if err := SelectInterruptSource(AFIO, PortB, 0); err != nil {
		t.Fatal(err)
	}
	if err := ConfigureInterrupt(EXTI, 0, EdgeBoth); err != nil {
		t.Fatal(err)
	}
	if err := EnableInterrupt(EXTI, NVIC, 0, IRQ_EXTI0); err != nil {
		t.Fatal(err)
	}

	handler := func() {
		Critical(func() {
			_ = ClearInterrupt(EXTI, 0)
			_ = TogglePin(GPIOC, 13)
		})
	}

	// Output init leaves the LED pin high
	led := func() bool { return GPIOC.ODR.HasBits(1 << 13) }
	if !led() {
		t.Fatal("Expected LED pin high after init")
	}
	if err := MustGPIO().SetPin(ledPin, false); err != nil {
		t.Fatal(err)
	}
	if led() {
		t.Fatal("Expected LED pin low after SetPin(false)")
	}

	for i, rising := range []bool{false, true, false} {
		if !EXTI.Trigger(0, rising) {
			t.Fatalf("Edge %d did not latch", i)
		}
		handler()
		if PendingInterrupt(EXTI, 0) {
			t.Errorf("Edge %d: pending bit left set", i)
		}
	}
	if !led() {
		t.Error("Expected LED pin high after three toggles")
	}
	if !IRQEnabled(NVIC, IRQ_EXTI0) {
		t.Error("EXTI0 not enabled in NVIC")
	}
	if RCC.APB2ENR.Get() != 1<<PeriphAFIO|1<<PeriphGPIOB|1<<PeriphGPIOC {
		t.Errorf("Unexpected APB2ENR 0x%X", RCC.APB2ENR.Get())
	}
}

package core

import "testing"

func TestDriverOutput(t *testing.T) {
	periph := NewPeripherals()
	d := NewF1GPIODriver(periph, ModeOutput50MHz)
	pin := PinOf(PortC, 13)

	if err := d.ConfigureOutput(pin); err != nil {
		t.Fatalf("ConfigureOutput failed: %v", err)
	}
	if !ClockEnabled(periph.RCC, PeriphGPIOC) {
		t.Error("Port clock not enabled")
	}
	m, c, _ := PinField(periph.GPIO[PortC], 13)
	if m != ModeOutput50MHz || c != OutputPushPull {
		t.Errorf("Expected 50MHz push-pull, got mode=%d cnf=%d", m, c)
	}

	if err := d.SetPin(pin, false); err != nil {
		t.Fatalf("SetPin failed: %v", err)
	}
	periph.GPIO[PortC].Loopback()
	if d.ReadPin(pin) {
		t.Error("Expected low after SetPin(false)")
	}

	if err := d.SetPin(pin, true); err != nil {
		t.Fatalf("SetPin failed: %v", err)
	}
	periph.GPIO[PortC].Loopback()
	v, err := d.GetPin(pin)
	if err != nil {
		t.Fatalf("GetPin failed: %v", err)
	}
	if !v {
		t.Error("Expected high after SetPin(true)")
	}
}

func TestDriverPulls(t *testing.T) {
	periph := NewPeripherals()
	d := NewF1GPIODriver(periph, ModeInput)

	if err := d.ConfigureInputPullUp(PinOf(PortB, 0)); err != nil {
		t.Fatalf("ConfigureInputPullUp failed: %v", err)
	}
	if err := d.ConfigureInputPullDown(PinOf(PortB, 1)); err != nil {
		t.Fatalf("ConfigureInputPullDown failed: %v", err)
	}

	g := periph.GPIO[PortB]
	if g.CRL.Get()&0xFF != 0x88 {
		t.Errorf("Expected pull-up/down fields 0x88, got 0x%02X", g.CRL.Get()&0xFF)
	}
	if g.ODR.Get() != 1 {
		t.Errorf("Expected ODR 0x1 (pin 0 up, pin 1 down), got 0x%X", g.ODR.Get())
	}
}

func TestDriverTraceNamesDetachedPort(t *testing.T) {
	ClearTrace()
	defer ClearTrace()

	d := NewF1GPIODriver(NewPeripherals(), ModeOutput2MHz)
	if err := d.ConfigureOutput(PinOf(PortC, 13)); err != nil {
		t.Fatalf("ConfigureOutput failed: %v", err)
	}

	var modes int
	for _, evt := range TraceEvents() {
		if evt.Kind != TraceMode && evt.Kind != TraceType {
			continue
		}
		modes++
		if evt.Port != PortC || evt.Pin != 13 {
			t.Errorf("Expected %s event for PC13, got P%s%d", evt.Kind, evt.Port, evt.Pin)
		}
	}
	if modes != 2 {
		t.Errorf("Expected MODE and CNF events, got %d", modes)
	}
	if portOf(&GPIO_Type{}) != NumPorts {
		t.Error("Unknown block resolved to a port")
	}
}

func TestDriverInvalidPort(t *testing.T) {
	d := NewF1GPIODriver(NewPeripherals(), ModeOutput2MHz)
	if err := d.ConfigureOutput(GPIOPin(5 * PinsPerPort)); err != ErrInvalidPort {
		t.Errorf("Expected ErrInvalidPort, got %v", err)
	}
}

func TestMustGPIO(t *testing.T) {
	defer SetGPIODriver(nil)

	func() {
		defer func() {
			if recover() == nil {
				t.Error("MustGPIO did not panic without a driver")
			}
		}()
		SetGPIODriver(nil)
		MustGPIO()
	}()

	d := NewF1GPIODriver(NewPeripherals(), ModeOutput2MHz)
	SetGPIODriver(d)
	if MustGPIO() != GPIODriver(d) {
		t.Error("MustGPIO returned a different driver")
	}
}

func TestPinOfSplit(t *testing.T) {
	pin := PinOf(PortD, 11)
	if pin != 59 {
		t.Errorf("Expected 59, got %d", pin)
	}
	port, idx := pin.Split()
	if port != PortD || idx != 11 {
		t.Errorf("Expected PD11, got P%s%d", port, idx)
	}
}

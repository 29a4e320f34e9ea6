package core

import "testing"

func TestClockEnableDisable(t *testing.T) {
	rcc := &RCC_Type{}

	if err := EnableClock(rcc, PeriphGPIOC); err != nil {
		t.Fatalf("EnableClock failed: %v", err)
	}
	if err := EnableClock(rcc, PeriphAFIO); err != nil {
		t.Fatalf("EnableClock failed: %v", err)
	}
	if rcc.APB2ENR.Get() != 1<<4|1 {
		t.Errorf("Expected APB2ENR 0x11, got 0x%X", rcc.APB2ENR.Get())
	}
	if !ClockEnabled(rcc, PeriphGPIOC) {
		t.Error("GPIOC clock reported off")
	}

	if err := DisableClock(rcc, PeriphGPIOC); err != nil {
		t.Fatalf("DisableClock failed: %v", err)
	}
	if rcc.APB2ENR.Get() != 1 {
		t.Errorf("Expected APB2ENR 0x1, got 0x%X", rcc.APB2ENR.Get())
	}

	if err := EnableClock(rcc, Peripheral(1)); err != ErrInvalidPeripheral {
		t.Errorf("Expected ErrInvalidPeripheral, got %v", err)
	}
}

func TestPortClock(t *testing.T) {
	for port := PortA; port < NumPorts; port++ {
		clk, err := PortClock(port)
		if err != nil {
			t.Fatalf("PortClock(%s) failed: %v", port, err)
		}
		if clk != PeriphGPIOA+Peripheral(port) {
			t.Errorf("Port %s: unexpected clock bit %d", port, clk)
		}
	}
	if _, err := PortClock(NumPorts); err != ErrInvalidPort {
		t.Errorf("Expected ErrInvalidPort, got %v", err)
	}
}

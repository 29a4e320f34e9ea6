package board

import (
	"errors"
	"testing"

	"f1hal/core"
)

func TestDefaultBoard(t *testing.T) {
	b := Default()
	if b.Name != "bluepill" {
		t.Errorf("Expected name bluepill, got %q", b.Name)
	}
	if len(b.Pins) != 2 || len(b.Interrupts) != 1 {
		t.Fatalf("Unexpected board %+v", b)
	}
	if b.Pins[1].Type != "pullupdown" {
		t.Errorf("Expected pulled input to default to pullupdown, got %q", b.Pins[1].Type)
	}
}

func TestApplyDefaultBoard(t *testing.T) {
	periph := core.NewPeripherals()
	periph.LoadResetValues()

	img, err := Apply(Default(), periph)
	if err != nil {
		t.Fatalf("Apply failed: %v", err)
	}

	if img.APB2ENR != 1<<4|1<<3|1 {
		t.Errorf("Expected APB2ENR 0x19, got 0x%X", img.APB2ENR)
	}
	if len(img.Ports) != 2 {
		t.Errorf("Expected two clocked ports, got %d", len(img.Ports))
	}
	if img.Ports[core.PortC].CRH != 0x44144444 {
		t.Errorf("Expected GPIOC_CRH 0x44144444, got 0x%08X", img.Ports[core.PortC].CRH)
	}
	if img.Ports[core.PortC].ODR != 1<<13 {
		t.Errorf("Expected GPIOC_ODR 0x2000, got 0x%X", img.Ports[core.PortC].ODR)
	}
	if img.Ports[core.PortB].CRL != 0x44444448 {
		t.Errorf("Expected GPIOB_CRL 0x44444448, got 0x%08X", img.Ports[core.PortB].CRL)
	}
	if img.Ports[core.PortB].ODR != 1 {
		t.Errorf("Expected pull-up on PB0, got ODR 0x%X", img.Ports[core.PortB].ODR)
	}
	if img.EXTICR[0] != 0x1 {
		t.Errorf("Expected EXTICR1 0x1, got 0x%X", img.EXTICR[0])
	}
	if img.RTSR != 1 || img.FTSR != 1 || img.IMR != 1 {
		t.Errorf("Expected line 0 on both edges, got RTSR=0x%X FTSR=0x%X IMR=0x%X", img.RTSR, img.FTSR, img.IMR)
	}
	if img.ISER[0] != 1<<core.IRQ_EXTI0 {
		t.Errorf("Expected ISER0 0x40, got 0x%X", img.ISER[0])
	}
}

func TestParseErrors(t *testing.T) {
	testCases := []struct {
		name string
		yaml string
		err  error
	}{
		{"bad port", "pins: [{name: a, port: F, pin: 1}]", core.ErrInvalidPort},
		{"bad pin", "pins: [{name: a, port: A, pin: 16}]", core.ErrInvalidPin},
		{"bad mode", "pins: [{name: a, port: A, pin: 1, mode: output1mhz}]", core.ErrInvalidMode},
		{"output type on input", "pins: [{name: a, port: A, pin: 1, type: opendrain}]", core.ErrInvalidConfig},
		{"pull on output", "pins: [{name: a, port: A, pin: 1, mode: output2mhz, pull: up}]", core.ErrInvalidConfig},
		{"pull on alternate output", "pins: [{name: a, port: A, pin: 1, mode: output50mhz, type: altpushpull, pull: up}]", core.ErrInvalidConfig},
		{"remap on plain output", "pins: [{name: a, port: A, pin: 1, mode: output50mhz, remap: 4}]", core.ErrInvalidConfig},
		{"remap on input", "pins: [{name: a, port: A, pin: 1, remap: 4}]", core.ErrInvalidConfig},
		{"duplicate name", "pins: [{name: a, port: A, pin: 1}, {name: a, port: A, pin: 2}]", ErrDuplicatePin},
		{"duplicate pin", "pins: [{name: a, port: A, pin: 1}, {name: b, port: A, pin: 1}]", ErrDuplicatePin},
		{"unknown interrupt pin", "interrupts: [{pin: nope}]", ErrUnknownPin},
		{"bad edge", "pins: [{name: a, port: A, pin: 1}]\ninterrupts: [{pin: a, edge: sideways}]", core.ErrInvalidEdge},
		{"shared line", "pins: [{name: a, port: A, pin: 3}, {name: b, port: B, pin: 3}]\ninterrupts: [{pin: a}, {pin: b}]", ErrLineInUse},
	}

	for _, tc := range testCases {
		_, err := Parse([]byte(tc.yaml))
		if !errors.Is(err, tc.err) {
			t.Errorf("%s: expected %v, got %v", tc.name, tc.err, err)
		}
	}
}

func TestParseDefaults(t *testing.T) {
	b, err := Parse([]byte("pins: [{name: out, port: a, pin: 9, mode: OUTPUT50MHZ}]\n"))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	p := b.Pins[0]
	if b.Name != "board" || p.Port != "A" || p.Type != "pushpull" {
		t.Errorf("Defaults not applied: %+v", b)
	}
	cfg, err := p.PinConfig()
	if err != nil {
		t.Fatalf("PinConfig failed: %v", err)
	}
	if cfg.Mode != core.ModeOutput50MHz || cfg.Type != core.OutputPushPull || cfg.Pin != 9 {
		t.Errorf("Unexpected config %+v", cfg)
	}
}

func TestApplyPinRemap(t *testing.T) {
	// USART1 moved to PB6/PB7
	b, err := Parse([]byte(`
name: remapped
pins:
  - name: tx
    port: B
    pin: 6
    mode: output50mhz
    type: altpushpull
    remap: 0x4
  - name: rx
    port: B
    pin: 7
`))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	cfg, err := b.Pins[0].PinConfig()
	if err != nil {
		t.Fatalf("PinConfig failed: %v", err)
	}
	if cfg.Alternate != 0x4 {
		t.Errorf("Expected Alternate 0x4, got 0x%X", cfg.Alternate)
	}

	periph := core.NewPeripherals()
	periph.LoadResetValues()
	img, err := Apply(b, periph)
	if err != nil {
		t.Fatalf("Apply failed: %v", err)
	}
	if img.MAPR != 0x4 {
		t.Errorf("Expected AFIO_MAPR 0x4, got 0x%X", img.MAPR)
	}
	if img.APB2ENR != 1<<3|1 {
		t.Errorf("Expected AFIO and GPIOB clocks (0x9), got 0x%X", img.APB2ENR)
	}
	if img.Ports[core.PortB].CRL != 0x4B444444 {
		t.Errorf("Expected GPIOB_CRL 0x4B444444, got 0x%08X", img.Ports[core.PortB].CRL)
	}
}

package board

import (
	"fmt"

	"f1hal/core"
)

// PortImage is the configuration state of one GPIO port
type PortImage struct {
	CRL uint32
	CRH uint32
	ODR uint32
}

// Image is the register state after a board has been applied
type Image struct {
	Ports   map[core.Port]PortImage // clocked ports only
	APB2ENR uint32
	MAPR    uint32
	EXTICR  [4]uint32
	IMR     uint32
	RTSR    uint32
	FTSR    uint32
	ISER    [2]uint32 // the F1 has fewer than 64 interrupts
}

// Apply configures every pin and interrupt of b on periph, in the order
// the firmware would: clocks, pins, AFIO routing, edges, unmasking.
func Apply(b *Board, periph *core.Peripherals) (*Image, error) {
	if len(b.Interrupts) > 0 || b.needsRemap() {
		if err := core.EnableClock(periph.RCC, core.PeriphAFIO); err != nil {
			return nil, err
		}
	}
	core.SetAltFunction(periph.AFIO, b.Remap)

	ports := make(map[string]core.Port, len(b.Pins))
	for _, p := range b.Pins {
		port, err := p.port()
		if err != nil {
			return nil, fmt.Errorf("pin %s: %w", p.Name, err)
		}
		cfg, err := p.PinConfig()
		if err != nil {
			return nil, fmt.Errorf("pin %s: %w", p.Name, err)
		}
		clk, _ := core.PortClock(port)
		if err := core.EnableClock(periph.RCC, clk); err != nil {
			return nil, err
		}

		g := periph.Port(port)
		if err := core.InitPin(g, cfg); err != nil {
			return nil, fmt.Errorf("pin %s: %w", p.Name, err)
		}
		core.SetAltFunction(periph.AFIO, cfg.Alternate)
		if level, ok := p.level(); ok {
			if err := core.WritePin(g, cfg.Pin, level); err != nil {
				return nil, fmt.Errorf("pin %s: %w", p.Name, err)
			}
		}
		ports[p.Name] = port
	}

	for _, irq := range b.Interrupts {
		var spec PinSpec
		for _, p := range b.Pins {
			if p.Name == irq.Pin {
				spec = p
			}
		}
		port, ok := ports[irq.Pin]
		if !ok {
			return nil, fmt.Errorf("interrupt: %w %q", ErrUnknownPin, irq.Pin)
		}
		edge, ok := edgeNames[irq.Edge]
		if !ok {
			return nil, fmt.Errorf("interrupt %s: %w", irq.Pin, core.ErrInvalidEdge)
		}
		vector, err := core.IRQForLine(spec.Pin)
		if err != nil {
			return nil, err
		}
		if err := core.SelectInterruptSource(periph.AFIO, port, spec.Pin); err != nil {
			return nil, err
		}
		if err := core.ConfigureInterrupt(periph.EXTI, spec.Pin, edge); err != nil {
			return nil, err
		}
		if err := core.EnableInterrupt(periph.EXTI, periph.NVIC, spec.Pin, vector); err != nil {
			return nil, err
		}
	}

	return Snapshot(periph), nil
}

// needsRemap reports whether applying b writes AFIO_MAPR
func (b *Board) needsRemap() bool {
	if b.Remap != 0 {
		return true
	}
	for _, p := range b.Pins {
		if p.Remap != 0 {
			return true
		}
	}
	return false
}

// level returns the output or pull level a pin should start with
func (p PinSpec) level() (bool, bool) {
	switch {
	case p.Pull == "up", p.Initial == "high":
		return true, true
	case p.Pull == "down", p.Initial == "low":
		return false, true
	}
	return false, false
}

// Snapshot captures the configuration registers of periph
func Snapshot(periph *core.Peripherals) *Image {
	img := &Image{
		Ports:   make(map[core.Port]PortImage),
		APB2ENR: periph.RCC.APB2ENR.Get(),
		MAPR:    periph.AFIO.MAPR.Get(),
		IMR:     periph.EXTI.IMR.Get(),
		RTSR:    periph.EXTI.RTSR.Get(),
		FTSR:    periph.EXTI.FTSR.Get(),
	}
	for i := range img.EXTICR {
		img.EXTICR[i] = periph.AFIO.EXTICR[i].Get()
	}
	for i := range img.ISER {
		img.ISER[i] = periph.NVIC.ISER[i].Get()
	}
	for port := core.PortA; port < core.NumPorts; port++ {
		clk, _ := core.PortClock(port)
		if !core.ClockEnabled(periph.RCC, clk) {
			continue
		}
		g := periph.Port(port)
		img.Ports[port] = PortImage{
			CRL: g.CRL.Get(),
			CRH: g.CRH.Get(),
			ODR: g.ODR.Get(),
		}
	}
	return img
}

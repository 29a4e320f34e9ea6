package core

// controlField returns the control register holding pin and the bit offset
// of its MODE field. Pins 0-7 live in CRL, pins 8-15 in CRH.
func controlField(g *GPIO_Type, pin uint8) (*Register32, uint8) {
	if pin < splitPin {
		return &g.CRL, fieldBits * pin
	}
	return &g.CRH, fieldBits * (pin - splitPin)
}

// ConfigurePinMode writes the MODE field of pin. Selecting ModeInput also
// resets the CNF field to floating input.
func ConfigurePinMode(g *GPIO_Type, pin uint8, mode Mode) error {
	if pin > MaxPin {
		return ErrInvalidPin
	}
	if mode > ModeOutput50MHz {
		return ErrInvalidMode
	}

	reg, shift := controlField(g, pin)
	reg.ReplaceBits(uint32(mode), fieldMask, shift)
	if mode == ModeInput {
		reg.ReplaceBits(uint32(InputFloating), fieldMask, shift+cnfOffset)
	}

	recordTrace(TraceMode, portOf(g), pin, reg.Get(), uint32(mode))
	return nil
}

// ConfigurePinType writes the CNF field of pin. mode must be the mode the
// pin was configured with, since it decides how cnf is interpreted.
//
// The pin direction is also marked through BSRR: outputs get their set bit,
// inputs their reset bit. For an input in InputPullUpDown this selects the
// pull-down.
func ConfigurePinType(g *GPIO_Type, pin uint8, mode Mode, cnf Config) error {
	if pin > MaxPin {
		return ErrInvalidPin
	}
	if mode > ModeOutput50MHz {
		return ErrInvalidMode
	}
	if cnf > OutputAltOpenDrain || (!mode.IsOutput() && cnf > InputPullUpDown) {
		return ErrInvalidConfig
	}

	if mode.IsOutput() {
		writeSetReset(g, 1<<pin)
	} else {
		writeSetReset(g, 1<<(pin+resetShift))
	}

	reg, shift := controlField(g, pin)
	reg.ReplaceBits(uint32(cnf), fieldMask, shift+cnfOffset)

	recordTrace(TraceType, portOf(g), pin, reg.Get(), uint32(cnf))
	return nil
}

// Validate checks every field of cfg against the register encoding
func (cfg *PinConfig) Validate() error {
	if cfg.Pin > MaxPin {
		return ErrInvalidPin
	}
	if cfg.Mode > ModeOutput50MHz {
		return ErrInvalidMode
	}
	if cfg.Type > OutputAltOpenDrain || (!cfg.Mode.IsOutput() && cfg.Type > InputPullUpDown) {
		return ErrInvalidConfig
	}
	return nil
}

// InitPin applies a full pin configuration: mode first, then type. The
// configuration is validated before any register is written.
func InitPin(g *GPIO_Type, cfg *PinConfig) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	if err := ConfigurePinMode(g, cfg.Pin, cfg.Mode); err != nil {
		return err
	}
	return ConfigurePinType(g, cfg.Pin, cfg.Mode, cfg.Type)
}

// SetAltFunction ORs a remap mask into AFIO_MAPR. The AFIO clock must be
// running.
func SetAltFunction(afio *AFIO_Type, remap uint32) {
	if remap == 0 {
		return
	}
	afio.MAPR.SetBits(remap)
	recordTrace(TraceRemap, NumPorts, 0, afio.MAPR.Get(), remap)
}

// WritePin drives the output data bit of pin. Other pins are untouched.
func WritePin(g *GPIO_Type, pin uint8, level bool) error {
	if pin > MaxPin {
		return ErrInvalidPin
	}
	if level {
		g.ODR.SetBits(1 << pin)
	} else {
		g.ODR.ClearBits(1 << pin)
	}
	recordTrace(TraceWrite, portOf(g), pin, g.ODR.Get(), boolToUint32(level))
	return nil
}

// ReadPin returns the input data bit of pin as 0 or 1
func ReadPin(g *GPIO_Type, pin uint8) (uint8, error) {
	if pin > MaxPin {
		return 0, ErrInvalidPin
	}
	return uint8((g.IDR.Get() >> pin) & 1), nil
}

// TogglePin inverts the output data bit of pin
func TogglePin(g *GPIO_Type, pin uint8) error {
	if pin > MaxPin {
		return ErrInvalidPin
	}
	return WritePin(g, pin, !g.ODR.HasBits(1<<pin))
}

// PinField returns the raw 4-bit MODE+CNF field of pin, for inspection
func PinField(g *GPIO_Type, pin uint8) (Mode, Config, error) {
	if pin > MaxPin {
		return 0, 0, ErrInvalidPin
	}
	reg, shift := controlField(g, pin)
	v := reg.Get() >> shift
	return Mode(v & fieldMask), Config((v >> cnfOffset) & fieldMask), nil
}

func boolToUint32(b bool) uint32 {
	if b {
		return 1
	}
	return 0
}

package core

// F1GPIODriver implements GPIODriver on top of the register-level HAL.
// It keeps no record of configured pins; the registers are the only state.
type F1GPIODriver struct {
	periph *Peripherals
	mode   Mode
}

// NewF1GPIODriver creates a driver over periph. Outputs are configured at
// the given speed.
func NewF1GPIODriver(periph *Peripherals, outputMode Mode) *F1GPIODriver {
	if outputMode == ModeInput || outputMode > ModeOutput50MHz {
		outputMode = ModeOutput2MHz
	}
	return &F1GPIODriver{periph: periph, mode: outputMode}
}

// lookup resolves pin to its port block and index, gating the port clock on
// so the registers are accessible.
func (d *F1GPIODriver) lookup(pin GPIOPin) (*GPIO_Type, uint8, error) {
	port, idx := pin.Split()
	clk, err := PortClock(port)
	if err != nil {
		return nil, 0, err
	}
	if !ClockEnabled(d.periph.RCC, clk) {
		if err := EnableClock(d.periph.RCC, clk); err != nil {
			return nil, 0, err
		}
	}
	return d.periph.Port(port), idx, nil
}

// ConfigureOutput configures a pin as a push-pull digital output
func (d *F1GPIODriver) ConfigureOutput(pin GPIOPin) error {
	g, idx, err := d.lookup(pin)
	if err != nil {
		return err
	}
	return InitPin(g, &PinConfig{Pin: idx, Mode: d.mode, Type: OutputPushPull})
}

// ConfigureInputPullUp configures a pin as an input pulled high. On this
// family the pull direction is the pin's ODR bit.
func (d *F1GPIODriver) ConfigureInputPullUp(pin GPIOPin) error {
	g, idx, err := d.lookup(pin)
	if err != nil {
		return err
	}
	if err := InitPin(g, &PinConfig{Pin: idx, Mode: ModeInput, Type: InputPullUpDown}); err != nil {
		return err
	}
	return WritePin(g, idx, true)
}

// ConfigureInputPullDown configures a pin as an input pulled low
func (d *F1GPIODriver) ConfigureInputPullDown(pin GPIOPin) error {
	g, idx, err := d.lookup(pin)
	if err != nil {
		return err
	}
	if err := InitPin(g, &PinConfig{Pin: idx, Mode: ModeInput, Type: InputPullUpDown}); err != nil {
		return err
	}
	return WritePin(g, idx, false)
}

// SetPin sets the pin to high (true) or low (false)
func (d *F1GPIODriver) SetPin(pin GPIOPin, value bool) error {
	g, idx, err := d.lookup(pin)
	if err != nil {
		return err
	}
	return WritePin(g, idx, value)
}

// GetPin reads the input level of a pin
func (d *F1GPIODriver) GetPin(pin GPIOPin) (bool, error) {
	g, idx, err := d.lookup(pin)
	if err != nil {
		return false, err
	}
	v, err := ReadPin(g, idx)
	return v != 0, err
}

// ReadPin is GetPin without the error
func (d *F1GPIODriver) ReadPin(pin GPIOPin) bool {
	value, _ := d.GetPin(pin)
	return value
}

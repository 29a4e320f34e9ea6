// Package board loads YAML board descriptions and turns them into the
// register image the HAL would produce on the chip.
package board

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"strings"

	"golang.org/x/exp/slices"
	"gopkg.in/yaml.v3"

	"f1hal/core"
)

//go:embed bluepill.yaml
var rawDefault []byte

var (
	ErrUnknownPin   = errors.New("unknown pin")
	ErrDuplicatePin = errors.New("duplicate pin")
	ErrLineInUse    = errors.New("EXTI line already in use")
)

// Board describes the pins of one board
type Board struct {
	Name       string          `yaml:"name"`
	Pins       []PinSpec       `yaml:"pins"`
	Interrupts []InterruptSpec `yaml:"interrupts"`
	Remap      uint32          `yaml:"remap"`
}

// PinSpec is one pin as written in a board file
type PinSpec struct {
	Name    string `yaml:"name"`
	Port    string `yaml:"port"`
	Pin     uint8  `yaml:"pin"`
	Mode    string `yaml:"mode"`
	Type    string `yaml:"type"`
	Pull    string `yaml:"pull"`
	Initial string `yaml:"initial"`
	Remap   uint32 `yaml:"remap"` // AFIO_MAPR bits of an alternate-function pin
}

// InterruptSpec routes a named input pin to its EXTI line
type InterruptSpec struct {
	Pin  string `yaml:"pin"`
	Edge string `yaml:"edge"`
}

var modeNames = map[string]core.Mode{
	"input":       core.ModeInput,
	"output10mhz": core.ModeOutput10MHz,
	"output2mhz":  core.ModeOutput2MHz,
	"output50mhz": core.ModeOutput50MHz,
}

var inputTypeNames = map[string]core.Config{
	"analog":     core.InputAnalog,
	"floating":   core.InputFloating,
	"pullupdown": core.InputPullUpDown,
}

var outputTypeNames = map[string]core.Config{
	"pushpull":     core.OutputPushPull,
	"opendrain":    core.OutputOpenDrain,
	"altpushpull":  core.OutputAltPushPull,
	"altopendrain": core.OutputAltOpenDrain,
}

var edgeNames = map[string]core.Edge{
	"rising":  core.EdgeRising,
	"falling": core.EdgeFalling,
	"both":    core.EdgeBoth,
}

// Default returns the embedded blue pill description
func Default() *Board {
	b, err := Parse(rawDefault)
	if err != nil {
		panic(err)
	}
	return b
}

// Load reads and validates a board file
func Load(path string) (*Board, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	b, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return b, nil
}

// Parse decodes, fills defaults and validates a board description
func Parse(data []byte) (*Board, error) {
	var b Board
	if err := yaml.Unmarshal(data, &b); err != nil {
		return nil, err
	}
	applyDefaults(&b)
	if err := b.Validate(); err != nil {
		return nil, err
	}
	return &b, nil
}

// applyDefaults fills in fields a board file may leave out
func applyDefaults(b *Board) {
	if b.Name == "" {
		b.Name = "board"
	}
	for i := range b.Pins {
		p := &b.Pins[i]
		p.Port = strings.ToUpper(p.Port)
		p.Mode = strings.ToLower(p.Mode)
		p.Type = strings.ToLower(p.Type)
		p.Pull = strings.ToLower(p.Pull)
		if p.Mode == "" {
			p.Mode = "input"
		}
		if p.Type == "" {
			switch {
			case p.Mode != "input":
				p.Type = "pushpull"
			case p.Pull != "":
				p.Type = "pullupdown"
			default:
				p.Type = "floating"
			}
		}
	}
	for i := range b.Interrupts {
		irq := &b.Interrupts[i]
		irq.Edge = strings.ToLower(irq.Edge)
		if irq.Edge == "" {
			irq.Edge = "falling"
		}
	}
}

// Validate checks names, ranges and EXTI line conflicts
func (b *Board) Validate() error {
	var names []string
	var used []core.GPIOPin
	for _, p := range b.Pins {
		if p.Name == "" {
			return fmt.Errorf("pin %s%d: missing name", p.Port, p.Pin)
		}
		if slices.Contains(names, p.Name) {
			return fmt.Errorf("%w: %s", ErrDuplicatePin, p.Name)
		}
		names = append(names, p.Name)

		cfg, err := p.PinConfig()
		if err != nil {
			return fmt.Errorf("pin %s: %w", p.Name, err)
		}
		port, _ := p.port()
		id := core.PinOf(port, cfg.Pin)
		if slices.Contains(used, id) {
			return fmt.Errorf("%w: P%s%d", ErrDuplicatePin, p.Port, p.Pin)
		}
		used = append(used, id)
	}

	var lines []uint8
	for _, irq := range b.Interrupts {
		idx := slices.IndexFunc(b.Pins, func(p PinSpec) bool { return p.Name == irq.Pin })
		if idx < 0 {
			return fmt.Errorf("interrupt: %w %q", ErrUnknownPin, irq.Pin)
		}
		if _, ok := edgeNames[irq.Edge]; !ok {
			return fmt.Errorf("interrupt %s: %w %q", irq.Pin, core.ErrInvalidEdge, irq.Edge)
		}
		line := b.Pins[idx].Pin
		if slices.Contains(lines, line) {
			return fmt.Errorf("interrupt %s: %w: %d", irq.Pin, ErrLineInUse, line)
		}
		lines = append(lines, line)
	}
	return nil
}

func (p PinSpec) port() (core.Port, error) {
	if len(p.Port) != 1 || p.Port[0] < 'A' || p.Port[0] >= 'A'+byte(core.NumPorts) {
		return 0, core.ErrInvalidPort
	}
	return core.Port(p.Port[0] - 'A'), nil
}

// PinConfig converts p into the HAL's configuration record
func (p PinSpec) PinConfig() (*core.PinConfig, error) {
	if _, err := p.port(); err != nil {
		return nil, err
	}
	mode, ok := modeNames[p.Mode]
	if !ok {
		return nil, fmt.Errorf("%w %q", core.ErrInvalidMode, p.Mode)
	}
	types := outputTypeNames
	if !mode.IsOutput() {
		types = inputTypeNames
	}
	cnf, ok := types[p.Type]
	if !ok {
		return nil, fmt.Errorf("%w %q for mode %s", core.ErrInvalidConfig, p.Type, p.Mode)
	}
	switch p.Pull {
	case "", "up", "down":
	default:
		return nil, fmt.Errorf("%w: pull %q", core.ErrInvalidConfig, p.Pull)
	}
	if p.Pull != "" && (mode.IsOutput() || cnf != core.InputPullUpDown) {
		return nil, fmt.Errorf("%w: pull %q needs an input in pullupdown", core.ErrInvalidConfig, p.Pull)
	}
	switch p.Initial {
	case "", "high", "low":
	default:
		return nil, fmt.Errorf("%w: initial %q", core.ErrInvalidConfig, p.Initial)
	}
	if p.Remap != 0 && !(mode.IsOutput() && cnf.IsAlternate()) {
		return nil, fmt.Errorf("%w: remap needs an alternate-function output", core.ErrInvalidConfig)
	}
	cfg := &core.PinConfig{Pin: p.Pin, Mode: mode, Type: cnf, Alternate: p.Remap}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

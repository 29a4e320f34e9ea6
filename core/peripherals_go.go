//go:build !tinygo

package core

// On host builds the register blocks live in ordinary memory and act as
// the test double for the silicon.
var (
	GPIOA = &GPIO_Type{}
	GPIOB = &GPIO_Type{}
	GPIOC = &GPIO_Type{}
	GPIOD = &GPIO_Type{}
	GPIOE = &GPIO_Type{}
	EXTI  = &EXTI_Type{}
	AFIO  = &AFIO_Type{}
	RCC   = &RCC_Type{}
	NVIC  = &NVIC_Type{}
)

// Drive sets the external level seen on pin through IDR
func (g *GPIO_Type) Drive(pin uint8, level bool) {
	if pin > MaxPin {
		return
	}
	if level {
		g.IDR.SetBits(1 << pin)
	} else {
		g.IDR.ClearBits(1 << pin)
	}
}

// Loopback copies ODR into IDR, as if every output were wired back to its
// own input.
func (g *GPIO_Type) Loopback() {
	g.IDR.Set(g.ODR.Get() & 0xFFFF)
}

// Trigger emulates a signal edge on an EXTI line: the pending bit latches
// when the line is unmasked and the matching trigger is selected.
// It reports whether the line went pending.
func (e *EXTI_Type) Trigger(line uint8, rising bool) bool {
	if line > MaxPin {
		return false
	}
	bit := uint32(1) << line
	if !e.IMR.HasBits(bit) {
		return false
	}
	if rising && !e.RTSR.HasBits(bit) {
		return false
	}
	if !rising && !e.FTSR.HasBits(bit) {
		return false
	}
	e.PR.SetBits(bit)
	return true
}

// Reset zeroes every global register block
func Reset() {
	*GPIOA = GPIO_Type{}
	*GPIOB = GPIO_Type{}
	*GPIOC = GPIO_Type{}
	*GPIOD = GPIO_Type{}
	*GPIOE = GPIO_Type{}
	*EXTI = EXTI_Type{}
	*AFIO = AFIO_Type{}
	*RCC = RCC_Type{}
	*NVIC = NVIC_Type{}
}

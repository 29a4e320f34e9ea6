//go:build tinygo

package core

import "unsafe"

// Register blocks overlaid on the fixed peripheral addresses
var (
	GPIOA = (*GPIO_Type)(unsafe.Pointer(uintptr(GPIOA_BASE)))
	GPIOB = (*GPIO_Type)(unsafe.Pointer(uintptr(GPIOB_BASE)))
	GPIOC = (*GPIO_Type)(unsafe.Pointer(uintptr(GPIOC_BASE)))
	GPIOD = (*GPIO_Type)(unsafe.Pointer(uintptr(GPIOD_BASE)))
	GPIOE = (*GPIO_Type)(unsafe.Pointer(uintptr(GPIOE_BASE)))
	EXTI  = (*EXTI_Type)(unsafe.Pointer(uintptr(EXTI_BASE)))
	AFIO  = (*AFIO_Type)(unsafe.Pointer(uintptr(AFIO_BASE)))
	RCC   = (*RCC_Type)(unsafe.Pointer(uintptr(RCC_BASE)))
	NVIC  = (*NVIC_Type)(unsafe.Pointer(uintptr(NVIC_BASE)))
)

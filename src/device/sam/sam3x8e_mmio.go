//go:build tinygo
// +build tinygo

package sam

import "unsafe"

// Peripheral base addresses.
const (
	PMC_BASE     = 0x400E0600
	UART_BASE    = 0x400E0800
	EFC0_BASE    = 0x400E0A00
	EFC1_BASE    = 0x400E0C00
	PIOA_BASE    = 0x400E0E00
	PIOB_BASE    = 0x400E1000
	PIOC_BASE    = 0x400E1200
	PIOD_BASE    = 0x400E1400
	WDT_BASE     = 0x400E1A50
	USART0_BASE  = 0x40098000
	USART1_BASE  = 0x4009C000
	USART2_BASE  = 0x400A0000
	USART3_BASE  = 0x400A4000
	SysTick_BASE = 0xE000E010
	SCB_BASE     = 0xE000ED00
)

// Peripherals.
var (
	PMC     = (*PMC_Type)(unsafe.Pointer(uintptr(PMC_BASE)))
	UART    = (*UART_Type)(unsafe.Pointer(uintptr(UART_BASE)))
	EFC0    = (*EFC_Type)(unsafe.Pointer(uintptr(EFC0_BASE)))
	EFC1    = (*EFC_Type)(unsafe.Pointer(uintptr(EFC1_BASE)))
	PIOA    = (*PIO_Type)(unsafe.Pointer(uintptr(PIOA_BASE)))
	PIOB    = (*PIO_Type)(unsafe.Pointer(uintptr(PIOB_BASE)))
	PIOC    = (*PIO_Type)(unsafe.Pointer(uintptr(PIOC_BASE)))
	PIOD    = (*PIO_Type)(unsafe.Pointer(uintptr(PIOD_BASE)))
	WDT     = (*WDT_Type)(unsafe.Pointer(uintptr(WDT_BASE)))
	USART0  = (*USART_Type)(unsafe.Pointer(uintptr(USART0_BASE)))
	USART1  = (*USART_Type)(unsafe.Pointer(uintptr(USART1_BASE)))
	USART2  = (*USART_Type)(unsafe.Pointer(uintptr(USART2_BASE)))
	USART3  = (*USART_Type)(unsafe.Pointer(uintptr(USART3_BASE)))
	SysTick = (*SysTick_Type)(unsafe.Pointer(uintptr(SysTick_BASE)))
	SCB     = (*SCB_Type)(unsafe.Pointer(uintptr(SCB_BASE)))
)

//go:build !tinygo
// +build !tinygo

package sam

// On host builds every peripheral is backed by ordinary memory so code that
// drives registers can run and be inspected without a board.
var (
	pmc                            PMC_Type
	uart                           UART_Type
	efc0, efc1                     EFC_Type
	pioa, piob, pioc, piod         PIO_Type
	wdt                            WDT_Type
	usart0, usart1, usart2, usart3 USART_Type
	systick                        SysTick_Type
	scb                            SCB_Type
)

// Peripherals.
var (
	PMC     = &pmc
	UART    = &uart
	EFC0    = &efc0
	EFC1    = &efc1
	PIOA    = &pioa
	PIOB    = &piob
	PIOC    = &pioc
	PIOD    = &piod
	WDT     = &wdt
	USART0  = &usart0
	USART1  = &usart1
	USART2  = &usart2
	USART3  = &usart3
	SysTick = &systick
	SCB     = &scb
)

func init() {
	Reset()
}

// Reset puts every simulated peripheral back in its documented reset state.
// Status bits that real hardware raises on its own (oscillator and PLL
// ready, transmitter ready) read as set, so polling loops terminate.
//
// Reset exists only on host builds.
func Reset() {
	pmc = PMC_Type{}
	uart = UART_Type{}
	efc0, efc1 = EFC_Type{}, EFC_Type{}
	pioa, piob, pioc, piod = PIO_Type{}, PIO_Type{}, PIO_Type{}, PIO_Type{}
	wdt = WDT_Type{}
	usart0, usart1, usart2, usart3 = USART_Type{}, USART_Type{}, USART_Type{}, USART_Type{}
	systick = SysTick_Type{}
	scb = SCB_Type{}

	pmc.SR.Reg = PMC_SR_MOSCXTS | PMC_SR_LOCKA | PMC_SR_MCKRDY | PMC_SR_MOSCSELS
	pmc.MCKR.Reg = PMC_MCKR_CSS_MAIN_CLK
	for _, p := range []*PIO_Type{&pioa, &piob, &pioc, &piod} {
		p.PSR.Reg = 0xFFFFFFFF // all lines under PIO control
	}
	uart.SR.Reg = UART_SR_TXRDY | UART_SR_TXEMPTY
	for _, u := range []*USART_Type{&usart0, &usart1, &usart2, &usart3} {
		u.CSR.Reg = US_CSR_TXRDY | US_CSR_TXEMPTY
	}
	wdt.MR.Reg = 0x3FFF2FFF
}

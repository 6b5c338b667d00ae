// Package sam describes the SAM3X8E register interface: block layouts, bit
// fields, peripheral identifiers and memory map. The layouts follow the
// vendor CMSIS headers and must not be reordered.
//
// Datasheet:
// https://ww1.microchip.com/downloads/en/DeviceDoc/Atmel-11057-32-bit-Cortex-M3-Microcontroller-SAM3X-SAM3A_Datasheet.pdf
package sam

import "github.com/hwstl/hwstl/src/runtime/volatile"

// Memory map.
const (
	FlashBase = 0x00080000
	FlashSize = 0x00080000 // two 256 KiB banks
	SRAMBase  = 0x20000000
	SRAMSize  = 0x00018000
)

// Peripheral identifiers, used as bit positions in PMC_PCER0/PCDR0/PCSR0
// (identifiers below 32) and PMC_PCER1 (identifiers 32 and up).
const (
	ID_SUPC   = 0
	ID_RSTC   = 1
	ID_RTC    = 2
	ID_RTT    = 3
	ID_WDT    = 4
	ID_PMC    = 5
	ID_EFC0   = 6
	ID_EFC1   = 7
	ID_UART   = 8
	ID_SMC    = 9
	ID_PIOA   = 11
	ID_PIOB   = 12
	ID_PIOC   = 13
	ID_PIOD   = 14
	ID_USART0 = 17
	ID_USART1 = 18
	ID_USART2 = 19
	ID_USART3 = 20
	ID_HSMCI  = 21
	ID_TWI0   = 22
	ID_TWI1   = 23
	ID_SPI0   = 24
)

// Parallel Input/Output controller.
type PIO_Type struct {
	PER    volatile.Register32 // 0x00 PIO Enable
	PDR    volatile.Register32 // 0x04 PIO Disable
	PSR    volatile.Register32 // 0x08 PIO Status
	_      uint32
	OER    volatile.Register32 // 0x10 Output Enable
	ODR    volatile.Register32 // 0x14 Output Disable
	OSR    volatile.Register32 // 0x18 Output Status
	_      uint32
	IFER   volatile.Register32 // 0x20 Glitch Input Filter Enable
	IFDR   volatile.Register32 // 0x24 Glitch Input Filter Disable
	IFSR   volatile.Register32 // 0x28 Glitch Input Filter Status
	_      uint32
	SODR   volatile.Register32 // 0x30 Set Output Data
	CODR   volatile.Register32 // 0x34 Clear Output Data
	ODSR   volatile.Register32 // 0x38 Output Data Status
	PDSR   volatile.Register32 // 0x3C Pin Data Status
	IER    volatile.Register32 // 0x40 Interrupt Enable
	IDR    volatile.Register32 // 0x44 Interrupt Disable
	IMR    volatile.Register32 // 0x48 Interrupt Mask
	ISR    volatile.Register32 // 0x4C Interrupt Status
	MDER   volatile.Register32 // 0x50 Multi-driver Enable
	MDDR   volatile.Register32 // 0x54 Multi-driver Disable
	MDSR   volatile.Register32 // 0x58 Multi-driver Status
	_      uint32
	PUDR   volatile.Register32 // 0x60 Pull-up Disable
	PUER   volatile.Register32 // 0x64 Pull-up Enable
	PUSR   volatile.Register32 // 0x68 Pad Pull-up Status
	_      uint32
	ABSR   volatile.Register32 // 0x70 Peripheral AB Select
	_      [3]uint32
	SCIFSR volatile.Register32 // 0x80 System Clock Glitch Input Filter Select
	DIFSR  volatile.Register32 // 0x84 Debouncing Input Filter Select
	IFDGSR volatile.Register32 // 0x88 Glitch or Debouncing Input Filter Clock Selection Status
	SCDR   volatile.Register32 // 0x8C Slow Clock Divider Debouncing
	_      [4]uint32
	OWER   volatile.Register32 // 0xA0 Output Write Enable
	OWDR   volatile.Register32 // 0xA4 Output Write Disable
	OWSR   volatile.Register32 // 0xA8 Output Write Status
	_      uint32
	AIMER  volatile.Register32 // 0xB0 Additional Interrupt Modes Enable
	AIMDR  volatile.Register32 // 0xB4 Additional Interrupt Modes Disables
	AIMMR  volatile.Register32 // 0xB8 Additional Interrupt Modes Mask
	_      uint32
	ESR    volatile.Register32 // 0xC0 Edge Select
	LSR    volatile.Register32 // 0xC4 Level Select
	ELSR   volatile.Register32 // 0xC8 Edge/Level Status
	_      uint32
	FELLSR volatile.Register32 // 0xD0 Falling Edge/Low Level Select
	REHLSR volatile.Register32 // 0xD4 Rising Edge/High Level Select
	FRLHSR volatile.Register32 // 0xD8 Fall/Rise - Low/High Status
	_      uint32
	LOCKSR volatile.Register32 // 0xE0 Lock Status
	WPMR   volatile.Register32 // 0xE4 Write Protect Mode
	WPSR   volatile.Register32 // 0xE8 Write Protect Status
}

// Power Management Controller.
type PMC_Type struct {
	SCER       volatile.Register32 // 0x00 System Clock Enable
	SCDR       volatile.Register32 // 0x04 System Clock Disable
	SCSR       volatile.Register32 // 0x08 System Clock Status
	_          uint32
	PCER0      volatile.Register32 // 0x10 Peripheral Clock Enable 0
	PCDR0      volatile.Register32 // 0x14 Peripheral Clock Disable 0
	PCSR0      volatile.Register32 // 0x18 Peripheral Clock Status 0
	CKGR_UCKR  volatile.Register32 // 0x1C UTMI Clock
	CKGR_MOR   volatile.Register32 // 0x20 Main Oscillator
	CKGR_MCFR  volatile.Register32 // 0x24 Main Clock Frequency
	CKGR_PLLAR volatile.Register32 // 0x28 PLLA
	_          uint32
	MCKR       volatile.Register32 // 0x30 Master Clock
	_          uint32
	USB        volatile.Register32 // 0x38 USB Clock
	_          uint32
	PCK        [3]volatile.Register32 // 0x40 Programmable Clock
	_          [5]uint32
	IER        volatile.Register32 // 0x60 Interrupt Enable
	IDR        volatile.Register32 // 0x64 Interrupt Disable
	SR         volatile.Register32 // 0x68 Status
	IMR        volatile.Register32 // 0x6C Interrupt Mask
	FSMR       volatile.Register32 // 0x70 Fast Startup Mode
	FSPR       volatile.Register32 // 0x74 Fast Startup Polarity
	FOCR       volatile.Register32 // 0x78 Fault Output Clear
	_          [26]uint32
	WPMR       volatile.Register32 // 0xE4 Write Protect Mode
	WPSR       volatile.Register32 // 0xE8 Write Protect Status
	_          [5]uint32
	PCER1      volatile.Register32 // 0x100 Peripheral Clock Enable 1
	PCDR1      volatile.Register32 // 0x104 Peripheral Clock Disable 1
	PCSR1      volatile.Register32 // 0x108 Peripheral Clock Status 1
	PCR        volatile.Register32 // 0x10C Peripheral Control
}

// Universal Asynchronous Receiver Transmitter.
type UART_Type struct {
	CR   volatile.Register32 // 0x00 Control
	MR   volatile.Register32 // 0x04 Mode
	IER  volatile.Register32 // 0x08 Interrupt Enable
	IDR  volatile.Register32 // 0x0C Interrupt Disable
	IMR  volatile.Register32 // 0x10 Interrupt Mask
	SR   volatile.Register32 // 0x14 Status
	RHR  volatile.Register32 // 0x18 Receive Holding
	THR  volatile.Register32 // 0x1C Transmit Holding
	BRGR volatile.Register32 // 0x20 Baud Rate Generator
}

// Universal Synchronous Asynchronous Receiver Transmitter.
type USART_Type struct {
	CR    volatile.Register32 // 0x00 Control
	MR    volatile.Register32 // 0x04 Mode
	IER   volatile.Register32 // 0x08 Interrupt Enable
	IDR   volatile.Register32 // 0x0C Interrupt Disable
	IMR   volatile.Register32 // 0x10 Interrupt Mask
	CSR   volatile.Register32 // 0x14 Channel Status
	RHR   volatile.Register32 // 0x18 Receiver Holding
	THR   volatile.Register32 // 0x1C Transmitter Holding
	BRGR  volatile.Register32 // 0x20 Baud Rate Generator
	RTOR  volatile.Register32 // 0x24 Receiver Time-out
	TTGR  volatile.Register32 // 0x28 Transmitter Timeguard
	_     [5]uint32
	FIDI  volatile.Register32 // 0x40 FI DI Ratio
	NER   volatile.Register32 // 0x44 Number of Errors
	_     uint32
	IF    volatile.Register32 // 0x4C IrDA Filter
	MAN   volatile.Register32 // 0x50 Manchester Encoder Decoder
	LINMR volatile.Register32 // 0x54 LIN Mode
	LINIR volatile.Register32 // 0x58 LIN Identifier
}

// Enhanced Embedded Flash Controller.
type EFC_Type struct {
	FMR volatile.Register32 // 0x00 Flash Mode
	FCR volatile.Register32 // 0x04 Flash Command
	FSR volatile.Register32 // 0x08 Flash Status
	FRR volatile.Register32 // 0x0C Flash Result
}

// Watchdog Timer.
type WDT_Type struct {
	CR volatile.Register32 // 0x00 Control
	MR volatile.Register32 // 0x04 Mode
	SR volatile.Register32 // 0x08 Status
}

// Cortex-M3 system timer.
type SysTick_Type struct {
	CTRL  volatile.Register32 // 0x00 Control and Status
	LOAD  volatile.Register32 // 0x04 Reload Value
	VAL   volatile.Register32 // 0x08 Current Value
	CALIB volatile.Register32 // 0x0C Calibration
}

// Cortex-M3 system control block (leading registers only).
type SCB_Type struct {
	CPUID volatile.Register32 // 0x00 CPUID Base
	ICSR  volatile.Register32 // 0x04 Interrupt Control and State
	VTOR  volatile.Register32 // 0x08 Vector Table Offset
	AIRCR volatile.Register32 // 0x0C Application Interrupt and Reset Control
	SCR   volatile.Register32 // 0x10 System Control
	CCR   volatile.Register32 // 0x14 Configuration and Control
}

// PMC bit fields.
const (
	CKGR_MOR_MOSCXTEN     = 1 << 0
	CKGR_MOR_MOSCRCEN     = 1 << 3
	CKGR_MOR_MOSCXTST_Pos = 8
	CKGR_MOR_KEY_Pos      = 16
	CKGR_MOR_KEY          = 0x37 << CKGR_MOR_KEY_Pos
	CKGR_MOR_MOSCSEL      = 1 << 24

	CKGR_PLLAR_DIVA_Pos      = 0
	CKGR_PLLAR_PLLACOUNT_Pos = 8
	CKGR_PLLAR_MULA_Pos      = 16
	CKGR_PLLAR_ONE           = 1 << 29

	PMC_MCKR_CSS_Msk      = 0x3
	PMC_MCKR_CSS_MAIN_CLK = 0x1
	PMC_MCKR_CSS_PLLA_CLK = 0x2
	PMC_MCKR_PRES_Pos     = 4
	PMC_MCKR_PRES_Msk     = 0x7 << PMC_MCKR_PRES_Pos
	PMC_MCKR_PRES_CLK_2   = 0x1 << PMC_MCKR_PRES_Pos

	PMC_SR_MOSCXTS  = 1 << 0
	PMC_SR_LOCKA    = 1 << 1
	PMC_SR_MCKRDY   = 1 << 3
	PMC_SR_MOSCSELS = 1 << 16
)

// EEFC and WDT bit fields.
const (
	EEFC_FMR_FWS_Pos = 8
	WDT_MR_WDDIS     = 1 << 15
)

// UART and USART control register bits (shared layout).
const (
	UART_CR_RSTRX  = 1 << 2
	UART_CR_RSTTX  = 1 << 3
	UART_CR_RXEN   = 1 << 4
	UART_CR_RXDIS  = 1 << 5
	UART_CR_TXEN   = 1 << 6
	UART_CR_TXDIS  = 1 << 7
	UART_CR_RSTSTA = 1 << 8
)

// UART mode register fields.
const (
	UART_MR_PAR_Pos    = 9
	UART_MR_PAR_Msk    = 0x7
	UART_MR_PAR_EVEN   = 0x0 << UART_MR_PAR_Pos
	UART_MR_PAR_ODD    = 0x1 << UART_MR_PAR_Pos
	UART_MR_PAR_SPACE  = 0x2 << UART_MR_PAR_Pos
	UART_MR_PAR_MARK   = 0x3 << UART_MR_PAR_Pos
	UART_MR_PAR_NO     = 0x4 << UART_MR_PAR_Pos
	UART_MR_CHMODE_Pos = 14
	UART_MR_CHMODE_Msk = 0x3
)

// UART status register bits. The USART channel status register uses the
// same positions for these.
const (
	UART_SR_RXRDY   = 1 << 0
	UART_SR_TXRDY   = 1 << 1
	UART_SR_ENDRX   = 1 << 3
	UART_SR_ENDTX   = 1 << 4
	UART_SR_OVRE    = 1 << 5
	UART_SR_FRAME   = 1 << 6
	UART_SR_PARE    = 1 << 7
	UART_SR_TXEMPTY = 1 << 9
)

// USART mode register fields.
const (
	US_MR_USART_MODE_Pos    = 0
	US_MR_USART_MODE_Msk    = 0xF
	US_MR_USCLKS_Pos        = 4
	US_MR_USCLKS_Msk        = 0x3
	US_MR_CHRL_Pos          = 6
	US_MR_CHRL_Msk          = 0x3
	US_MR_SYNC              = 1 << 8
	US_MR_CPHA              = 1 << 8
	US_MR_PAR_Pos           = 9
	US_MR_PAR_Msk           = 0x7
	US_MR_NBSTOP_Pos        = 12
	US_MR_NBSTOP_Msk        = 0x3
	US_MR_CHMODE_Pos        = 14
	US_MR_CHMODE_Msk        = 0x3
	US_MR_MSBF              = 1 << 16
	US_MR_CPOL              = 1 << 16
	US_MR_MODE9             = 1 << 17
	US_MR_CLKO              = 1 << 18
	US_MR_OVER              = 1 << 19
	US_MR_INACK             = 1 << 20
	US_MR_DSNACK            = 1 << 21
	US_MR_VAR_SYNC          = 1 << 22
	US_MR_INVDATA           = 1 << 23
	US_MR_MAX_ITERATION_Pos = 24
	US_MR_MAX_ITERATION_Msk = 0x7
	US_MR_FILTER            = 1 << 28
	US_MR_MAN               = 1 << 29
	US_MR_MODSYNC           = 1 << 30
	US_MR_ONEBIT            = 1 << 31
)

// USART channel status register bits.
const (
	US_CSR_RXRDY   = 1 << 0
	US_CSR_TXRDY   = 1 << 1
	US_CSR_TXEMPTY = 1 << 9
)

// Baud rate generator fields (UART and USART).
const (
	BRGR_CD_Msk    = 0xFFFF
	US_BRGR_FP_Pos = 16
)

// SysTick and SCB bit fields.
const (
	SysTick_CTRL_ENABLE    = 1 << 0
	SysTick_CTRL_TICKINT   = 1 << 1
	SysTick_CTRL_CLKSOURCE = 1 << 2
	SysTick_CTRL_COUNTFLAG = 1 << 16

	SCB_ICSR_PENDSTSET = 1 << 26
	SCB_SCR_SLEEPDEEP  = 1 << 2
)

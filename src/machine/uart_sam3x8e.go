package machine

import (
	"github.com/hwstl/hwstl/src/device/sam"
	"github.com/hwstl/hwstl/src/runtime/systick"
	"github.com/hwstl/hwstl/src/runtime/volatile"
)

// DefaultBaudRate is used when a configuration leaves BaudRate at 0.
const DefaultBaudRate = 115200

const (
	serialResetDisable = sam.UART_CR_RSTRX | sam.UART_CR_RSTTX | sam.UART_CR_RXDIS | sam.UART_CR_TXDIS
	serialEnableTRX    = sam.UART_CR_RXEN | sam.UART_CR_TXEN

	// UART and USART share the positions of these status bits.
	serialRXRDY = sam.UART_SR_RXRDY
	serialTXRDY = sam.UART_SR_TXRDY

	uartDefaultMode  = sam.UART_MR_PAR_NO
	usartDefaultMode = uint32(CharLength8)<<sam.US_MR_CHRL_Pos | sam.UART_MR_PAR_NO
)

// serialRegisters is the register surface the UART and the USARTs have in
// common: CR, MR, IDR, SR/CSR, RHR, THR and BRGR sit at the same offsets and
// use the same control and status bits, so the routines below are written
// once and specialized for each controller type.
type serialRegisters interface {
	control() *volatile.Register32
	mode() *volatile.Register32
	interruptDisable() *volatile.Register32
	status() *volatile.Register32
	receive() *volatile.Register32
	transmit() *volatile.Register32
	baudGenerator() *volatile.Register32
}

// serialApply resets and disables both directions, then writes the mode.
func serialApply[S serialRegisters](s S, mode uint32) {
	s.control().Set(serialResetDisable)
	s.mode().Set(mode)
}

// serialStart is the enable sequence: reset and disable, program the divider,
// write the mode, mask every interrupt, enable both directions.
func serialStart[S serialRegisters](s S, cd uint32, mode uint32) {
	s.control().Set(serialResetDisable)
	s.baudGenerator().Set(cd)
	s.mode().Set(mode)
	s.interruptDisable().Set(0xFFFFFFFF)
	s.control().Set(serialEnableTRX)
}

func serialPutc[S serialRegisters](s S, c uint32) {
	for !s.status().HasBits(serialTXRDY) {
	}
	s.transmit().Set(c)
}

func serialGetc[S serialRegisters](s S) uint32 {
	for !s.status().HasBits(serialRXRDY) {
	}
	return s.receive().Get()
}

func serialGetcTimeout[S serialRegisters](s S, us uint32) (uint32, bool) {
	deadline := systick.Deadline(us)
	for {
		if s.status().HasBits(serialRXRDY) {
			return s.receive().Get(), true
		}
		if systick.Expired(deadline) {
			return 0, false
		}
	}
}

func serialReady[S serialRegisters](s S) bool {
	return s.status().HasBits(serialRXRDY)
}

// checkDivider traps in debug builds for a divider the generator cannot
// hold. A divider of 0 stops the baud clock.
func checkDivider(cd uint32) uint32 {
	debugAssert(cd != 0 && cd <= sam.BRGR_CD_Msk, "baud divider out of range")
	return cd
}

// checkMasterClock traps in debug builds for a master clock no prescaler
// setting produces.
func checkMasterClock(mck uint32) {
	_, ok := FrequencyToPrescaler(mck)
	debugAssert(ok, "master clock is not a prescaler output")
}

// serialPins hands RX and TX to the controller.
type serialPins struct {
	RX, TX   PinDescriptor
	Function PinMode
}

func (p serialPins) attach() {
	p.RX.Configure(PinConfig{Mode: p.Function})
	p.TX.Configure(PinConfig{Mode: p.Function})
}

// detach returns both lines to PIO control as inputs.
func (p serialPins) detach() {
	p.RX.Configure(PinConfig{Mode: PinInput})
	p.TX.Configure(PinConfig{Mode: PinInput})
}

// UART is the basic two-wire controller.
type UART struct {
	Bus  *sam.UART_Type
	Pins serialPins

	id uint8
}

// UART0 is wired to the USB programming port through the 16U2.
var UART0 = &UART{
	Bus:  sam.UART,
	Pins: serialPins{RX: PA08, TX: PA09, Function: PinPeripheralA},
	id:   sam.ID_UART,
}

func (u *UART) control() *volatile.Register32          { return &u.Bus.CR }
func (u *UART) mode() *volatile.Register32             { return &u.Bus.MR }
func (u *UART) interruptDisable() *volatile.Register32 { return &u.Bus.IDR }
func (u *UART) status() *volatile.Register32           { return &u.Bus.SR }
func (u *UART) receive() *volatile.Register32          { return &u.Bus.RHR }
func (u *UART) transmit() *volatile.Register32         { return &u.Bus.THR }
func (u *UART) baudGenerator() *volatile.Register32    { return &u.Bus.BRGR }

func (u *UART) clockMask() uint32 { return 1 << u.id }

// Enable brings the UART up at 115200 baud, 8 data bits, no parity, normal
// channel mode.
func (u *UART) Enable() {
	u.Pins.attach()
	sam.EnablePeripheralClocks(u.clockMask())
	serialStart(u, uint32(Divider115200), uartDefaultMode)
}

// Configure brings the UART up with the given configuration. The baud rate
// must be a multiple of 16.
func (u *UART) Configure(config UARTConfig) {
	baud := config.BaudRate
	if baud == 0 {
		baud = DefaultBaudRate
	}
	debugAssert(IsValidBaudRate(baud), "baud rate not a multiple of 16")
	u.Pins.attach()
	sam.EnablePeripheralClocks(u.clockMask())
	serialStart(u, checkDivider(BaudDivider(MainClockFrequency, baud)), config.mode())
}

// Apply resets and disables both directions, then writes the mode derived
// from config. The line stays disabled until EnableTRX.
func (u *UART) Apply(config UARTConfig) {
	serialApply(u, config.mode())
}

// EnableTRX enables the receiver and the transmitter.
func (u *UART) EnableTRX() {
	u.Bus.CR.Set(serialEnableTRX)
}

// Disable stops the UART, returns its pins to the PIO and gates its clock.
func (u *UART) Disable() {
	u.Bus.CR.Set(serialResetDisable)
	u.Pins.detach()
	sam.DisablePeripheralClocks(u.clockMask())
}

// EnableBaud programs the baud rate generator with a precomputed divider.
// Only the package Divider constants are checked at build time for an exact
// rate; a divider computed by the caller is taken as is.
//
//	machine.UART0.EnableBaud(machine.Divider9600)
func (u *UART) EnableBaud(cd Divider) {
	u.Bus.BRGR.Set(checkDivider(uint32(cd)))
}

// EnableBaudRate programs the generator for baud from MainClockFrequency.
// The rate must be a multiple of 16.
func (u *UART) EnableBaudRate(baud uint32) {
	debugAssert(baud != 0 && IsValidBaudRate(baud), "baud rate not a multiple of 16")
	u.Bus.BRGR.Set(checkDivider(BaudDivider(MainClockFrequency, baud)))
}

// EnableBaudClock programs the generator for baud from a master clock of mck
// Hz, which must be the main clock divided by one of the prescaler ratios.
func (u *UART) EnableBaudClock(mck, baud uint32) {
	checkMasterClock(mck)
	debugAssert(baud != 0 && IsValidBaudRate(baud), "baud rate not a multiple of 16")
	u.Bus.BRGR.Set(checkDivider(BaudDivider(mck, baud)))
}

// DisableBaud stops the baud rate generator.
func (u *UART) DisableBaud() {
	u.Bus.BRGR.Set(0)
}

// Putc waits for the transmitter to accept a character and sends c.
func (u *UART) Putc(c byte) {
	serialPutc(u, uint32(c))
}

// Getc waits for a character and returns it.
func (u *UART) Getc() byte {
	return byte(serialGetc(u))
}

// GetcTimeout waits at most us microseconds for a character. A timeout of 0
// polls once.
func (u *UART) GetcTimeout(us uint32) (byte, bool) {
	c, ok := serialGetcTimeout(u, us)
	return byte(c), ok
}

// USART is a universal synchronous/asynchronous controller.
type USART struct {
	Bus  *sam.USART_Type
	Pins serialPins

	id      uint8
	current uint32
}

// USART controllers. USART3 uses peripheral function B.
var (
	USART0 = &USART{
		Bus:     sam.USART0,
		Pins:    serialPins{RX: PA10, TX: PA11, Function: PinPeripheralA},
		id:      sam.ID_USART0,
		current: usartDefaultMode,
	}
	USART1 = &USART{
		Bus:     sam.USART1,
		Pins:    serialPins{RX: PA12, TX: PA13, Function: PinPeripheralA},
		id:      sam.ID_USART1,
		current: usartDefaultMode,
	}
	USART2 = &USART{
		Bus:     sam.USART2,
		Pins:    serialPins{RX: PB21, TX: PB20, Function: PinPeripheralA},
		id:      sam.ID_USART2,
		current: usartDefaultMode,
	}
	USART3 = &USART{
		Bus:     sam.USART3,
		Pins:    serialPins{RX: PD05, TX: PD04, Function: PinPeripheralB},
		id:      sam.ID_USART3,
		current: usartDefaultMode,
	}
)

func (u *USART) control() *volatile.Register32          { return &u.Bus.CR }
func (u *USART) mode() *volatile.Register32             { return &u.Bus.MR }
func (u *USART) interruptDisable() *volatile.Register32 { return &u.Bus.IDR }
func (u *USART) status() *volatile.Register32           { return &u.Bus.CSR }
func (u *USART) receive() *volatile.Register32          { return &u.Bus.RHR }
func (u *USART) transmit() *volatile.Register32         { return &u.Bus.THR }
func (u *USART) baudGenerator() *volatile.Register32    { return &u.Bus.BRGR }

func (u *USART) clockMask() uint32 { return 1 << u.id }

// oversampling returns the samples per bit of the current mode.
func (u *USART) oversampling() uint32 {
	if u.current&sam.US_MR_OVER != 0 {
		return Oversampling8.Factor()
	}
	return Oversampling16.Factor()
}

// Enable brings the USART up at 115200 baud, 8N1, asynchronous.
func (u *USART) Enable() {
	u.current = usartDefaultMode
	u.Pins.attach()
	sam.EnablePeripheralClocks(u.clockMask())
	serialStart(u, uint32(Divider115200), u.current)
}

// Configure brings the USART up with the given configuration. The divider
// honours the oversampling mode of config, and the baud rate must be a
// multiple of its factor.
func (u *USART) Configure(config USARTConfig) {
	baud := config.BaudRate
	if baud == 0 {
		baud = DefaultBaudRate
	}
	factor := config.Oversampling.Factor()
	debugAssert(baud%factor == 0, "baud rate not a multiple of the oversampling factor")
	u.current = config.mode()
	u.Pins.attach()
	sam.EnablePeripheralClocks(u.clockMask())
	serialStart(u, checkDivider(MainClockFrequency/baud/factor), u.current)
}

// Apply resets and disables both directions, then writes the mode derived
// from config. The line stays disabled.
func (u *USART) Apply(config USARTConfig) {
	u.current = config.mode()
	serialApply(u, u.current)
}

// EnableTRX enables the receiver and the transmitter.
func (u *USART) EnableTRX() {
	u.Bus.CR.Set(serialEnableTRX)
}

// Disable stops the USART, returns its pins to the PIO and gates its clock.
func (u *USART) Disable() {
	u.Bus.CR.Set(serialResetDisable)
	u.Pins.detach()
	sam.DisablePeripheralClocks(u.clockMask())
}

// EnableBaud programs the baud rate generator with a precomputed divider.
// The package Divider constants assume 16x oversampling and are the only
// dividers checked at build time for an exact rate.
func (u *USART) EnableBaud(cd Divider) {
	u.Bus.BRGR.Set(checkDivider(uint32(cd)))
}

// EnableBaudRate programs the generator for baud from MainClockFrequency.
func (u *USART) EnableBaudRate(baud uint32) {
	u.EnableBaudClock(MainClockFrequency, baud)
}

// EnableBaudClock programs the generator for baud from a master clock of mck
// Hz, honouring the oversampling mode last configured.
func (u *USART) EnableBaudClock(mck, baud uint32) {
	checkMasterClock(mck)
	factor := u.oversampling()
	debugAssert(baud != 0 && baud%factor == 0, "baud rate not a multiple of the oversampling factor")
	u.Bus.BRGR.Set(checkDivider(mck / baud / factor))
}

// DisableBaud stops the baud rate generator.
func (u *USART) DisableBaud() {
	u.Bus.BRGR.Set(0)
}

// Putc waits for the transmitter to accept a character and sends c.
func (u *USART) Putc(c byte) {
	serialPutc(u, uint32(c))
}

// Getc waits for a character and returns it.
func (u *USART) Getc() byte {
	return byte(serialGetc(u))
}

// GetcTimeout waits at most us microseconds for a character. A timeout of 0
// polls once.
func (u *USART) GetcTimeout(us uint32) (byte, bool) {
	c, ok := serialGetcTimeout(u, us)
	return byte(c), ok
}

// Write9 sends a 9-bit character. The USART must be configured with NineBit.
func (u *USART) Write9(c uint16) {
	debugAssert(u.current&sam.US_MR_MODE9 != 0, "nine-bit write without MODE9")
	serialPutc(u, uint32(c)&0x1FF)
}

// Read9 waits for a 9-bit character and returns it.
func (u *USART) Read9() uint16 {
	debugAssert(u.current&sam.US_MR_MODE9 != 0, "nine-bit read without MODE9")
	return uint16(serialGetc(u) & 0x1FF)
}

package machine

import "github.com/hwstl/hwstl/src/device/sam"

// Every enumeration below uses the register encoding of its field, and its
// zero value is the reset value of that field, so a zero UARTConfig or
// USARTConfig describes the controller as it comes out of reset.

// Parity selects the parity bit.
type Parity uint8

const (
	ParityEven Parity = iota
	ParityOdd
	ParitySpace
	ParityMark
	ParityNone

	// USART only: the parity bit marks address characters.
	ParityMultidrop Parity = 6
)

// Channel selects the channel mode.
type Channel uint8

const (
	ChannelNormal Channel = iota
	ChannelAutomaticEcho
	ChannelLocalLoopback
	ChannelRemoteLoopback
)

// UARTConfig configures the basic UART controller.
type UARTConfig struct {
	// Baud rate in bits per second; 0 selects 115200.
	BaudRate uint32
	Parity   Parity
	Channel  Channel
}

func (c UARTConfig) mode() uint32 {
	debugAssert(c.Parity <= ParityNone, "parity not supported by UART")
	return uint32(c.Parity)<<sam.UART_MR_PAR_Pos | uint32(c.Channel)<<sam.UART_MR_CHMODE_Pos
}

// USARTMode is the operating mode of a USART.
type USARTMode uint8

const (
	USARTModeNormal              USARTMode = 0x0
	USARTModeRS485               USARTMode = 0x1
	USARTModeHardwareHandshaking USARTMode = 0x2
	USARTModeISO7816T0           USARTMode = 0x4
	USARTModeISO7816T1           USARTMode = 0x6
	USARTModeIrDA                USARTMode = 0x8
	USARTModeLINMaster           USARTMode = 0xA
	USARTModeLINSlave            USARTMode = 0xB
	USARTModeSPIMaster           USARTMode = 0xE
	USARTModeSPISlave            USARTMode = 0xF
)

// IsSPI reports whether the mode is one of the SPI modes, in which bits 8 and
// 16 of the mode register select clock phase and polarity.
func (m USARTMode) IsSPI() bool {
	return m == USARTModeSPIMaster || m == USARTModeSPISlave
}

// ClockSource selects the clock of the baud rate generator.
type ClockSource uint8

const (
	ClockMaster  ClockSource = 0
	ClockDivided ClockSource = 1 // MCK / 8
	ClockSerial  ClockSource = 3 // external SCK
)

// CharacterLength is the number of data bits for characters of 5 to 8 bits.
// Nine-bit characters are configured with USARTConfig.NineBit instead.
type CharacterLength uint8

const (
	CharLength5 CharacterLength = iota
	CharLength6
	CharLength7
	CharLength8
)

// CharacterBits returns the CharacterLength for n data bits. Only 5 to 8 are
// accepted; 9 is not, since nine-bit characters bypass this field.
func CharacterBits(n int) (CharacterLength, bool) {
	if n < 5 || n > 8 {
		return 0, false
	}
	return CharacterLength(n - 5), true
}

// Bits returns the number of data bits.
func (c CharacterLength) Bits() int { return int(c) + 5 }

// SynchronousMode selects asynchronous or synchronous operation.
type SynchronousMode uint8

const (
	Asynchronous SynchronousMode = iota
	Synchronous
)

// SPIClockPhase selects the SPI clock phase (CPHA).
type SPIClockPhase uint8

const (
	// data changed on the leading edge, captured on the following edge
	PhaseChangeLeading SPIClockPhase = iota
	// data captured on the leading edge, changed on the following edge
	PhaseCaptureLeading
)

// StopBits selects the number of stop bits.
type StopBits uint8

const (
	StopBitsOne StopBits = iota
	StopBitsOneAndHalf
	StopBitsTwo
)

// BitOrder selects the order data bits are shifted in and out.
type BitOrder uint8

const (
	LSBFirst BitOrder = iota
	MSBFirst
)

// SPIClockPolarity selects the SPI clock polarity (CPOL).
type SPIClockPolarity uint8

const (
	PolarityActiveHigh SPIClockPolarity = iota
	PolarityActiveLow
)

// Oversampling selects the oversampling mode of the receiver.
type Oversampling uint8

const (
	Oversampling16 Oversampling = iota
	Oversampling8
)

// Factor returns the number of samples per bit.
func (o Oversampling) Factor() uint32 {
	if o == Oversampling8 {
		return 8
	}
	return 16
}

// ManchesterSync selects the Manchester synchronization transition.
type ManchesterSync uint8

const (
	ManchesterLowToHigh ManchesterSync = iota
	ManchesterHighToLow
)

// USARTConfig configures one of the USART controllers. Besides the UART
// fields it covers clocking, framing, the SPI, IrDA, ISO7816, LIN and
// Manchester protocol options.
type USARTConfig struct {
	// Baud rate in bits per second; 0 selects 115200.
	BaudRate uint32

	Mode            USARTMode
	ClockSource     ClockSource
	CharacterLength CharacterLength

	// NineBit selects 9-bit characters (MODE9). CharacterLength is then
	// ignored and data moves through USART.Write9 and USART.Read9.
	NineBit bool

	Synchronous   SynchronousMode  // non-SPI modes
	ClockPhase    SPIClockPhase    // SPI modes
	BitOrder      BitOrder         // non-SPI modes
	ClockPolarity SPIClockPolarity // SPI modes

	Parity   Parity
	StopBits StopBits
	Channel  Channel

	// ClockOutput drives the SCK pin.
	ClockOutput  bool
	Oversampling Oversampling

	// ISO7816
	InhibitNACK           bool
	DisableSuccessiveNACK bool
	MaxIterations         uint8 // 3 bits

	InvertData   bool
	VariableSync bool

	// IrDA receive three-sample filter.
	InfraredFilter bool

	Manchester           bool
	ManchesterSync       ManchesterSync
	OneBitStartDelimiter bool
}

func (c USARTConfig) mode() uint32 {
	debugAssert(c.CharacterLength <= CharLength8, "character length out of range")
	debugAssert(c.MaxIterations <= sam.US_MR_MAX_ITERATION_Msk, "max iterations out of range")
	debugAssert(c.StopBits != StopBitsOneAndHalf || c.Synchronous == Asynchronous,
		"1.5 stop bits need asynchronous mode")

	mr := uint32(c.Mode)&sam.US_MR_USART_MODE_Msk<<sam.US_MR_USART_MODE_Pos |
		uint32(c.ClockSource)&sam.US_MR_USCLKS_Msk<<sam.US_MR_USCLKS_Pos |
		uint32(c.Parity)&sam.US_MR_PAR_Msk<<sam.US_MR_PAR_Pos |
		uint32(c.StopBits)&sam.US_MR_NBSTOP_Msk<<sam.US_MR_NBSTOP_Pos |
		uint32(c.Channel)&sam.US_MR_CHMODE_Msk<<sam.US_MR_CHMODE_Pos |
		uint32(c.MaxIterations)&sam.US_MR_MAX_ITERATION_Msk<<sam.US_MR_MAX_ITERATION_Pos

	if c.NineBit {
		mr |= sam.US_MR_MODE9
	} else {
		mr |= uint32(c.CharacterLength) & sam.US_MR_CHRL_Msk << sam.US_MR_CHRL_Pos
	}

	if c.Mode.IsSPI() {
		if c.ClockPhase == PhaseCaptureLeading {
			mr |= sam.US_MR_CPHA
		}
		if c.ClockPolarity == PolarityActiveLow {
			mr |= sam.US_MR_CPOL
		}
	} else {
		if c.Synchronous == Synchronous {
			mr |= sam.US_MR_SYNC
		}
		if c.BitOrder == MSBFirst {
			mr |= sam.US_MR_MSBF
		}
	}

	flags := [...]struct {
		on  bool
		bit uint32
	}{
		{c.ClockOutput, sam.US_MR_CLKO},
		{c.Oversampling == Oversampling8, sam.US_MR_OVER},
		{c.InhibitNACK, sam.US_MR_INACK},
		{c.DisableSuccessiveNACK, sam.US_MR_DSNACK},
		{c.VariableSync, sam.US_MR_VAR_SYNC},
		{c.InvertData, sam.US_MR_INVDATA},
		{c.InfraredFilter, sam.US_MR_FILTER},
		{c.Manchester, sam.US_MR_MAN},
		{c.ManchesterSync == ManchesterHighToLow, sam.US_MR_MODSYNC},
		{c.OneBitStartDelimiter, sam.US_MR_ONEBIT},
	}
	for _, f := range flags {
		if f.on {
			mr |= f.bit
		}
	}
	return mr
}

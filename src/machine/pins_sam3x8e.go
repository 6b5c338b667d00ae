package machine

import "github.com/hwstl/hwstl/src/device/sam"

// PinMode selects how a port line is driven.
type PinMode uint8

const (
	// PIO controlled, output driver off.
	PinInput PinMode = iota

	// PIO controlled input with the internal pull-up on.
	PinInputPullup

	// PIO controlled push-pull output.
	PinOutput

	// PIO controlled output with the multi-driver (open drain) enabled and
	// the pull-up on, so a released line reads high.
	PinOutputOpenDrain

	// line handed to peripheral function A
	PinPeripheralA

	// line handed to peripheral function B
	PinPeripheralB
)

// PinConfig holds the configuration of a single line.
type PinConfig struct {
	Mode PinMode
}

// Bank identifies one of the four PIO controllers. Each bank controls up to
// 32 lines through one register block.
type Bank uint8

const (
	BankA Bank = iota
	BankB
	BankC
	BankD

	NumBanks = 4
)

// Registers returns the PIO block of the bank, or nil for an identifier that
// names no bank.
func (b Bank) Registers() *sam.PIO_Type {
	switch b {
	case BankA:
		return sam.PIOA
	case BankB:
		return sam.PIOB
	case BankC:
		return sam.PIOC
	case BankD:
		return sam.PIOD
	default:
		return nil
	}
}

// ClockMask returns the PMC_PCER0 bit gating the bank's peripheral clock.
func (b Bank) ClockMask() uint32 {
	if b >= NumBanks {
		return 0
	}
	return 1 << (sam.ID_PIOA + uint32(b))
}

// PinDescriptor is the physical location of a line: its bank in bits 5..7
// and its bit within the bank in bits 0..4.
type PinDescriptor uint8

// Bank returns the PIO bank of the line.
func (d PinDescriptor) Bank() Bank { return Bank(d >> 5) }

// Bit returns the position of the line within its bank.
func (d PinDescriptor) Bit() uint8 { return uint8(d) & 0x1f }

// Mask returns the single-bit mask of the line within its bank.
func (d PinDescriptor) Mask() uint32 { return 1 << d.Bit() }

func (d PinDescriptor) registers() (*sam.PIO_Type, uint32) {
	return d.Bank().Registers(), d.Mask()
}

// Configure configures the line. The bank clock is enabled as well, since
// reading PDSR needs it.
func (d PinDescriptor) Configure(config PinConfig) {
	port, mask := d.registers()

	switch config.Mode {
	case PinInput:
		port.ODR.Set(mask)
		port.PUDR.Set(mask)
		port.PER.Set(mask)
	case PinInputPullup:
		port.ODR.Set(mask)
		port.PUER.Set(mask)
		port.PER.Set(mask)
	case PinOutput:
		port.MDDR.Set(mask)
		port.OER.Set(mask)
		port.PER.Set(mask)
	case PinOutputOpenDrain:
		port.MDER.Set(mask)
		port.PUER.Set(mask)
		port.OER.Set(mask)
		port.PER.Set(mask)
	case PinPeripheralA:
		port.ABSR.ClearBits(mask)
		port.PDR.Set(mask)
	case PinPeripheralB:
		port.ABSR.SetBits(mask)
		port.PDR.Set(mask)
	}

	sam.EnablePeripheralClocks(d.Bank().ClockMask())
}

const (
	PA00 PinDescriptor = iota + 32*PinDescriptor(BankA)
	PA01
	PA02
	PA03
	PA04
	PA05
	PA06
	PA07
	PA08
	PA09
	PA10
	PA11
	PA12
	PA13
	PA14
	PA15
	PA16
	PA17
	PA18
	PA19
	PA20
	PA21
	PA22
	PA23
	PA24
	PA25
	PA26
	PA27
	PA28
	PA29
)

const (
	PB00 PinDescriptor = iota + 32*PinDescriptor(BankB)
	PB01
	PB02
	PB03
	PB04
	PB05
	PB06
	PB07
	PB08
	PB09
	PB10
	PB11
	PB12
	PB13
	PB14
	PB15
	PB16
	PB17
	PB18
	PB19
	PB20
	PB21
	PB22
	PB23
	PB24
	PB25
	PB26
	PB27
	PB28
	PB29
	PB30
	PB31
)

const (
	PC00 PinDescriptor = iota + 32*PinDescriptor(BankC)
	PC01
	PC02
	PC03
	PC04
	PC05
	PC06
	PC07
	PC08
	PC09
	PC10
	PC11
	PC12
	PC13
	PC14
	PC15
	PC16
	PC17
	PC18
	PC19
	PC20
	PC21
	PC22
	PC23
	PC24
	PC25
	PC26
	PC27
	PC28
	PC29
	PC30
)

const (
	PD00 PinDescriptor = iota + 32*PinDescriptor(BankD)
	PD01
	PD02
	PD03
	PD04
	PD05
	PD06
	PD07
	PD08
	PD09
	PD10
)

package machine

import (
	"github.com/hwstl/hwstl/src/device/sam"
	"github.com/hwstl/hwstl/src/runtime/volatile"
)

// Pin is a logical board pin, numbered as on the silkscreen. The pin table
// of the board resolves it to a PinDescriptor.
type Pin uint8

// NoPin is a pin that is not connected.
const NoPin Pin = 0xff

// Resolve returns the physical location of the pin.
//
// With a constant pin the lookup folds away. An index past the table traps
// in debug builds; use a Digital handle to have the compiler reject it.
//
//go:inline
func Resolve(p Pin) PinDescriptor {
	debugAssert(p < NumPins, "pin index out of range")
	return pinTable[p]
}

// Descriptor returns the physical location of the pin.
func (p Pin) Descriptor() PinDescriptor {
	return Resolve(p)
}

func (p Pin) registers() (*sam.PIO_Type, uint32) {
	return Resolve(p).registers()
}

// Configure this pin with the given configuration.
func (p Pin) Configure(config PinConfig) {
	Resolve(p).Configure(config)
}

// Set changes the value of the GPIO pin. The pin must be configured as output.
func (p Pin) Set(value bool) {
	port, mask := p.registers()
	if value {
		port.SODR.Set(mask)
	} else {
		port.CODR.Set(mask)
	}
}

// High sets the pin high.
func (p Pin) High() { p.Set(true) }

// Low sets the pin low.
func (p Pin) Low() { p.Set(false) }

// Toggle inverts the driven level.
func (p Pin) Toggle() {
	port, mask := p.registers()
	if port.ODSR.HasBits(mask) {
		port.CODR.Set(mask)
	} else {
		port.SODR.Set(mask)
	}
}

// Get returns the current value of a GPIO pin.
func (p Pin) Get() bool {
	port, mask := p.registers()
	return port.PDSR.HasBits(mask)
}

// EnablePullup turns the internal pull-up of the pin on.
func (p Pin) EnablePullup() {
	port, mask := p.registers()
	port.PUER.Set(mask)
}

// DisablePullup turns the internal pull-up of the pin off.
func (p Pin) DisablePullup() {
	port, mask := p.registers()
	port.PUDR.Set(mask)
}

// BankMasks is the per-bank union of a set of pins.
type BankMasks struct {
	Masks   [NumBanks]uint32
	touched uint8
}

// Aggregate folds pins into one mask per bank. Order does not matter and
// duplicates are harmless.
func Aggregate(pins ...Pin) BankMasks {
	var m BankMasks
	for _, p := range pins {
		d := Resolve(p)
		m.Masks[d.Bank()] |= d.Mask()
		m.touched |= 1 << d.Bank()
	}
	return m
}

// Touched reports whether any pin of bank b was aggregated.
func (m BankMasks) Touched(b Bank) bool {
	return b < NumBanks && m.touched&(1<<b) != 0
}

// Banks returns the number of banks touched.
func (m BankMasks) Banks() int {
	n := 0
	for b := Bank(0); b < NumBanks; b++ {
		if m.Touched(b) {
			n++
		}
	}
	return n
}

// ClockMask returns the union of the PMC_PCER0 bits of the touched banks.
func (m BankMasks) ClockMask() uint32 {
	var mask uint32
	for b := Bank(0); b < NumBanks; b++ {
		if m.Touched(b) {
			mask |= b.ClockMask()
		}
	}
	return mask
}

// apply writes each touched bank's mask to the given registers in order, then
// ungates the clocks of all touched banks with a single write. An empty set
// writes nothing.
func (m BankMasks) apply(regs ...func(*sam.PIO_Type) *volatile.Register32) {
	for b := Bank(0); b < NumBanks; b++ {
		if !m.Touched(b) {
			continue
		}
		port := b.Registers()
		for _, reg := range regs {
			reg(port).Set(m.Masks[b])
		}
	}
	if mask := m.ClockMask(); mask != 0 {
		sam.EnablePeripheralClocks(mask)
	}
}

// ConfigureOutputs puts the pins under PIO control with their output drivers
// on. Pins sharing a bank are configured by one write per register.
func ConfigureOutputs(pins ...Pin) {
	Aggregate(pins...).apply(pioPER, pioOER)
}

// ConfigureInputs puts the pins under PIO control with their output drivers
// off.
func ConfigureInputs(pins ...Pin) {
	Aggregate(pins...).apply(pioPER, pioODR)
}

// ConfigureInOut configures the pins as outputs whose level can be read
// back; PDSR always reflects the line.
func ConfigureInOut(pins ...Pin) {
	Aggregate(pins...).apply(pioPER, pioOER)
}

// ConfigureOpenDrain configures the pins as open-drain outputs with pull-ups.
func ConfigureOpenDrain(pins ...Pin) {
	Aggregate(pins...).apply(pioPER, pioMDER, pioPUER, pioOER)
}

func pioPER(p *sam.PIO_Type) *volatile.Register32  { return &p.PER }
func pioOER(p *sam.PIO_Type) *volatile.Register32  { return &p.OER }
func pioODR(p *sam.PIO_Type) *volatile.Register32  { return &p.ODR }
func pioMDER(p *sam.PIO_Type) *volatile.Register32 { return &p.MDER }
func pioPUER(p *sam.PIO_Type) *volatile.Register32 { return &p.PUER }

package machine

// MainClockFrequency is the master clock (MCK) after InitPlatform, in Hz.
// Every baud rate generator divides this clock.
const MainClockFrequency = 84000000

// Prescaler is a PMC_MCKR PRES selector code. Codes 0..6 divide by powers of
// two from 1 to 64; code 7 divides by 3.
type Prescaler uint8

const (
	PrescalerDiv1 Prescaler = iota
	PrescalerDiv2
	PrescalerDiv4
	PrescalerDiv8
	PrescalerDiv16
	PrescalerDiv32
	PrescalerDiv64
	PrescalerDiv3
)

var prescalerDivisors = [8]uint32{1, 2, 4, 8, 16, 32, 64, 3}

// Divisor returns the clock division ratio of the selector, or 0 for a code
// outside 0..7.
func (p Prescaler) Divisor() uint32 {
	if p > PrescalerDiv3 {
		return 0
	}
	return prescalerDivisors[p]
}

// FrequencyToPrescaler returns the selector that divides MainClockFrequency
// down to exactly freq. There is no approximation: ok is false unless freq is
// the main clock divided by one of the eight ratios.
func FrequencyToPrescaler(freq uint32) (p Prescaler, ok bool) {
	for i, div := range prescalerDivisors {
		if freq == MainClockFrequency/div {
			return Prescaler(i), true
		}
	}
	return 0, false
}

// PrescalerFrequency returns the frequency selected by p, with ok false for a
// code outside 0..7.
func PrescalerFrequency(p Prescaler) (freq uint32, ok bool) {
	div := p.Divisor()
	if div == 0 {
		return 0, false
	}
	return MainClockFrequency / div, true
}

// Oversampling factor of the baud rate generators in the default mode.
const oversampling = 16

// IsValidBaudRate reports whether the generators can produce rate exactly,
// which needs rate to be a multiple of the oversampling factor of 16.
func IsValidBaudRate(rate uint32) bool {
	return rate&(oversampling-1) == 0
}

// BaudDivider returns the clock divider (BRGR.CD) for baud from mck:
// (mck / baud) / 16, truncated. The caller validates first.
func BaudDivider(mck, baud uint32) uint32 {
	return (mck / baud) / oversampling
}

// Divider is a baud rate generator clock divider. Being 16 bits wide, a
// constant divider that does not fit the register does not compile.
type Divider uint16

// Dividers for common rates at MainClockFrequency.
const (
	Divider9600   = Divider(MainClockFrequency / 9600 / oversampling)
	Divider19200  = Divider(MainClockFrequency / 19200 / oversampling)
	Divider38400  = Divider(MainClockFrequency / 38400 / oversampling)
	Divider57600  = Divider(MainClockFrequency / 57600 / oversampling)
	Divider115200 = Divider(MainClockFrequency / 115200 / oversampling)
)

// The rates above must be exactly generatable. Each index is out of range,
// and the build fails, if a rate stops being a multiple of 16.
func _() {
	var x [1]struct{}
	_ = x[9600%oversampling]
	_ = x[19200%oversampling]
	_ = x[38400%oversampling]
	_ = x[57600%oversampling]
	_ = x[115200%oversampling]
}

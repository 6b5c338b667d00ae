//go:build tinygo
// +build tinygo

package machine

import "github.com/hwstl/hwstl/src/runtime/volatile"

// FastPin drives a single line through the bit-band aliases of its PIO
// registers, one store per operation.
type FastPin struct {
	SODR *volatile.BitRegister
	CODR *volatile.BitRegister
	ODSR *volatile.BitRegister
	PDSR *volatile.BitRegister
}

func (p Pin) Fast() FastPin {
	d := Resolve(p)
	port, bit := d.Bank().Registers(), uintptr(d.Bit())
	return FastPin{
		SODR: port.SODR.Bit(bit),
		CODR: port.CODR.Bit(bit),
		ODSR: port.ODSR.Bit(bit),
		PDSR: port.PDSR.Bit(bit),
	}
}

func (p FastPin) Set()   { p.SODR.Set(true) }
func (p FastPin) Clear() { p.CODR.Set(true) }
func (p FastPin) Toggle() {
	if p.ODSR.Get() {
		p.CODR.Set(true)
	} else {
		p.SODR.Set(true)
	}
}
func (p FastPin) Write(v bool) {
	if v {
		p.SODR.Set(true)
	} else {
		p.CODR.Set(true)
	}
}
func (p FastPin) Read() bool { return p.PDSR.Get() }

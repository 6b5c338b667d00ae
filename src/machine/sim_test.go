//go:build !tinygo
// +build !tinygo

package machine

import (
	"reflect"
	"strings"
	"testing"

	"github.com/hwstl/hwstl/src/device/sam"
	"github.com/hwstl/hwstl/src/runtime/volatile"
)

type regWrite struct {
	Name  string
	Value uint32
}

// simulator records every register store and models the PIO and PMC
// enable/disable/status register triples. Lines read back what they drive,
// except where an external device holds them.
type simulator struct {
	names  map[*volatile.Register32]string
	writes []regWrite

	// lines held low or high from outside, per bank
	heldLow  [NumBanks]uint32
	heldHigh [NumBanks]uint32
}

func newSimulator(t *testing.T) *simulator {
	t.Helper()
	sam.Reset()

	s := &simulator{names: make(map[*volatile.Register32]string)}
	s.label("PIOA", sam.PIOA)
	s.label("PIOB", sam.PIOB)
	s.label("PIOC", sam.PIOC)
	s.label("PIOD", sam.PIOD)
	s.label("PMC", sam.PMC)
	s.label("UART", sam.UART)
	s.label("USART0", sam.USART0)
	s.label("USART1", sam.USART1)
	s.label("USART2", sam.USART2)
	s.label("USART3", sam.USART3)

	restore := volatile.Observe(s.observe)
	t.Cleanup(func() {
		restore()
		sam.Reset()
	})
	return s
}

var register32Type = reflect.TypeOf(volatile.Register32{})

func (s *simulator) label(prefix string, block interface{}) {
	v := reflect.ValueOf(block).Elem()
	for i := 0; i < v.NumField(); i++ {
		f := v.Type().Field(i)
		if f.Type != register32Type {
			continue
		}
		s.names[v.Field(i).Addr().Interface().(*volatile.Register32)] = prefix + "." + f.Name
	}
}

func (s *simulator) observe(reg *volatile.Register32, value uint32) {
	s.writes = append(s.writes, regWrite{s.names[reg], value})

	for b := Bank(0); b < NumBanks; b++ {
		p := b.Registers()
		switch reg {
		case &p.PER:
			p.PSR.SetBits(value)
		case &p.PDR:
			p.PSR.ClearBits(value)
		case &p.OER:
			p.OSR.SetBits(value)
		case &p.ODR:
			p.OSR.ClearBits(value)
		case &p.MDER:
			p.MDSR.SetBits(value)
		case &p.MDDR:
			p.MDSR.ClearBits(value)
		case &p.SODR:
			p.ODSR.SetBits(value)
		case &p.CODR:
			p.ODSR.ClearBits(value)
		default:
			continue
		}
		s.settle(b)
	}

	switch reg {
	case &sam.PMC.PCER0:
		sam.PMC.PCSR0.SetBits(value)
	case &sam.PMC.PCDR0:
		sam.PMC.PCSR0.ClearBits(value)
	}
}

func (s *simulator) settle(b Bank) {
	p := b.Registers()
	p.PDSR.Reg = (p.ODSR.Reg | s.heldHigh[b]) &^ s.heldLow[b]
}

// hold forces the level a line reads, as an external driver would.
func (s *simulator) hold(d PinDescriptor, high bool) {
	b := d.Bank()
	if high {
		s.heldHigh[b] |= d.Mask()
		s.heldLow[b] &^= d.Mask()
	} else {
		s.heldLow[b] |= d.Mask()
		s.heldHigh[b] &^= d.Mask()
	}
	s.settle(b)
}

func (s *simulator) clear() { s.writes = nil }

// writesTo returns the recorded stores to registers whose name starts with
// prefix, in order.
func (s *simulator) writesTo(prefix string) []regWrite {
	var out []regWrite
	for _, w := range s.writes {
		if strings.HasPrefix(w.Name, prefix) {
			out = append(out, w)
		}
	}
	return out
}

func (s *simulator) count(name string) int {
	n := 0
	for _, w := range s.writes {
		if w.Name == name {
			n++
		}
	}
	return n
}

func equalWrites(a, b []regWrite) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

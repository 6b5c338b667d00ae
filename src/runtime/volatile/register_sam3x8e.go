//go:build tinygo
// +build tinygo

package volatile

import "unsafe"

// Cortex-M3 peripheral bit-band region of the SAM3X8E.
const registerBase = 0x40000000
const registerEnd = 0x40100000
const bitbandBase = 0x42000000
const ptrBytes = unsafe.Sizeof(uintptr(0))

//go:inline
func bitbandAddress(reg uintptr, bit uintptr) uintptr {
	if bit >= ptrBytes*8 {
		panic("invalid bit position")
	}
	if reg < registerBase || reg >= registerEnd {
		panic("register is out of range")
	}
	return (reg-registerBase)*ptrBytes*8 + bit*ptrBytes + bitbandBase
}

// BitRegister is a single bit of a peripheral register seen through its
// bit-band alias. Reads and writes touch only that bit.
type BitRegister struct {
	Reg uint32
}

// Get returns whether the bit is set.
//
//go:inline
func (r *BitRegister) Get() bool {
	return (*Register32)(unsafe.Pointer(r)).Get() != 0
}

// Set writes the bit.
//
//go:inline
func (r *BitRegister) Set(v bool) {
	var x uint32
	if v {
		x = 1
	}
	(*Register32)(unsafe.Pointer(r)).Set(x)
}

// Bit maps bit N of register R to the corresponding bit-band address. Bit
// panics if R is not a peripheral register or if N is out of range (greater
// than the number of bits in a register minus one).
//
//go:inline
func (r *Register32) Bit(bit uintptr) *BitRegister {
	ptr := bitbandAddress(uintptr(unsafe.Pointer(&r.Reg)), bit)
	return (*BitRegister)(unsafe.Pointer(ptr))
}

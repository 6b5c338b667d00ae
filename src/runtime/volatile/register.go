// Package volatile provides the register cell used by every memory-mapped
// peripheral block in this module.
//
// On TinyGo builds each access is a volatile load or store that the compiler
// may not elide or reorder. On host builds the cells are ordinary memory, and
// an observer can be attached to see every store, which is how the HAL is
// exercised without hardware.
package volatile

// Register32 is a 32-bit memory-mapped register. The zero value is a register
// holding 0.
type Register32 struct {
	Reg uint32
}

// SetBits reads the register, sets the given bits and writes it back.
func (r *Register32) SetBits(value uint32) {
	r.Set(r.Get() | value)
}

// ClearBits reads the register, clears the given bits and writes it back.
func (r *Register32) ClearBits(value uint32) {
	r.Set(r.Get() &^ value)
}

// HasBits reports whether any of the given bits are set.
func (r *Register32) HasBits(value uint32) bool {
	return r.Get()&value != 0
}

// ReplaceBits replaces the field selected by mask at position pos with value.
//
//	r.ReplaceBits(0b101, 0b111, 4) // bits 4..6 become 101
func (r *Register32) ReplaceBits(value uint32, mask uint32, pos uint8) {
	r.Set(r.Get()&^(mask<<pos) | (value&mask)<<pos)
}

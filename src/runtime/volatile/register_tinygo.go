//go:build tinygo
// +build tinygo

package volatile

import rv "runtime/volatile"

// Get returns the value in the register. It is the volatile equivalent of:
//
//	*r.Reg
//
//go:inline
func (r *Register32) Get() uint32 {
	return rv.LoadUint32(&r.Reg)
}

// Set updates the register value. It is the volatile equivalent of:
//
//	*r.Reg = value
//
//go:inline
func (r *Register32) Set(value uint32) {
	rv.StoreUint32(&r.Reg, value)
}

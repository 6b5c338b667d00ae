//go:build !tinygo
// +build !tinygo

package volatile

// Observer is called after every store to a register on host builds.
type Observer func(reg *Register32, value uint32)

var observer Observer

// Observe installs o as the store observer and returns a function restoring
// the previous one. Passing nil removes the observer.
//
// The observer runs after the store has landed, so it may adjust other
// registers to model hardware side effects (for example a set-output-data
// write updating the output data status). Stores made by the observer itself
// are not observed.
func Observe(o Observer) (restore func()) {
	prev := observer
	observer = o
	return func() { observer = prev }
}

// Get returns the value in the register.
func (r *Register32) Get() uint32 {
	return r.Reg
}

// Set updates the register value and notifies the observer, if any.
func (r *Register32) Set(value uint32) {
	r.Reg = value
	if o := observer; o != nil {
		observer = nil
		o(r, value)
		observer = o
	}
}

//go:build debug
// +build debug

package machine

// debugAssert traps when ok is false. On the board the panic message goes
// out over the runtime's console before the core halts.
func debugAssert(ok bool, msg string) {
	if !ok {
		panic("machine: " + msg)
	}
}

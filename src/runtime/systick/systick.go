// Package systick provides the timing primitives used by the HAL: a
// monotonic millisecond tick counter, a microsecond clock, and busy or
// blocking delays.
//
// All counters are monotonically non-decreasing. Delays never return before
// the requested time has elapsed; WaitMicrosBusy never yields the core.
package systick

// TickRate is the number of ticks per second counted by NowTicks.
const TickRate = 1000

// WaitMillis blocks for at least n milliseconds. Non-positive n returns
// immediately.
func WaitMillis(n int32) {
	for ; n > 0; n-- {
		WaitMicros(1000)
	}
}

// Deadline returns the NowMicros value us microseconds from now.
func Deadline(us uint32) uint64 {
	return NowMicros() + uint64(us)
}

// Expired reports whether the deadline returned by Deadline has passed.
func Expired(deadline uint64) bool {
	return NowMicros() >= deadline
}

//go:build !tinygo
// +build !tinygo

package systick

import "time"

var epoch = time.Now()

// Start resets the counters. The rate is ignored on host builds, where the
// counters follow the monotonic wall clock.
func Start(hz uint32) {
	epoch = time.Now()
}

// NowTicks returns the number of milliseconds since Start.
func NowTicks() uint64 {
	return uint64(time.Since(epoch) / time.Millisecond)
}

// NowMicros returns the number of microseconds since Start.
func NowMicros() uint64 {
	return uint64(time.Since(epoch) / time.Microsecond)
}

// WaitMicrosBusy spins for at least n microseconds.
func WaitMicrosBusy(n int32) {
	if n <= 0 {
		return
	}
	deadline := time.Now().Add(time.Duration(n) * time.Microsecond)
	for time.Now().Before(deadline) {
	}
}

// WaitMicros sleeps for at least n microseconds.
func WaitMicros(n int32) {
	if n <= 0 {
		return
	}
	time.Sleep(time.Duration(n) * time.Microsecond)
}

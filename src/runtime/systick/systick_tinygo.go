//go:build tinygo
// +build tinygo

package systick

import (
	"device/arm"
	"runtime/volatile"

	"github.com/hwstl/hwstl/src/device/sam"
)

var (
	// number of ticks since Start
	tickMilliCount uint32
	// rollovers of tickMilliCount
	tickEpoch uint32

	cpuHz uint32
)

// Start programs SysTick for one interrupt per millisecond at the given core
// clock and resets the counters.
func Start(hz uint32) {
	cpuHz = hz
	tickMilliCount = 0
	tickEpoch = 0
	sam.SysTick.CTRL.Set(0)
	sam.SysTick.LOAD.Set(hz/TickRate - 1)
	sam.SysTick.VAL.Set(0)
	sam.SysTick.CTRL.Set(sam.SysTick_CTRL_CLKSOURCE | sam.SysTick_CTRL_TICKINT | sam.SysTick_CTRL_ENABLE)
}

//export SysTick_Handler
func tickHandler() {
	n := volatile.LoadUint32(&tickMilliCount) + 1
	volatile.StoreUint32(&tickMilliCount, n)
	if n == 0 {
		volatile.StoreUint32(&tickEpoch, volatile.LoadUint32(&tickEpoch)+1)
	}
}

// NowTicks returns the number of milliseconds since Start.
func NowTicks() uint64 {
	mask := arm.DisableInterrupts()
	count, epoch := tickMilliCount, tickEpoch
	arm.EnableInterrupts(mask)
	return uint64(epoch)<<32 | uint64(count)
}

// NowMicros returns the number of microseconds since Start.
func NowMicros() uint64 {
	mask := arm.DisableInterrupts()
	current := sam.SysTick.VAL.Get()
	count, epoch := tickMilliCount, tickEpoch
	istatus := sam.SCB.ICSR.Get()
	arm.EnableInterrupts(mask)

	// A tick that fired while interrupts were masked is still pending.
	if istatus&sam.SCB_ICSR_PENDSTSET != 0 && current > 50 {
		count++
		if count == 0 {
			epoch++
		}
	}

	reload := cpuHz/TickRate - 1
	elapsed := reload - current
	ms := uint64(epoch)<<32 | uint64(count)
	return ms*1000 + uint64(elapsed/(cpuHz/1000000))
}

// WaitMicrosBusy spins for at least n microseconds without yielding.
func WaitMicrosBusy(n int32) {
	if n <= 0 {
		return
	}
	deadline := NowMicros() + uint64(n)
	for NowMicros() < deadline {
	}
}

// WaitMicros waits for at least n microseconds. Whole milliseconds are slept
// with the core halted until the next tick interrupt.
func WaitMicros(n int32) {
	if n <= 0 {
		return
	}
	deadline := NowMicros() + uint64(n)
	for NowMicros()+1000 < deadline {
		arm.Asm("wfi")
	}
	for NowMicros() < deadline {
	}
}

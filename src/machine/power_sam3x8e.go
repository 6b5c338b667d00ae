//go:build tinygo
// +build tinygo

package machine

import (
	"device/arm"

	"github.com/hwstl/hwstl/src/device/sam"
)

// Stop enters deep sleep (wait mode of the SAM3X)
func Stop() {
	// set SLEEPDEEP to enable deep sleep
	sam.SCB.SCR.SetBits(sam.SCB_SCR_SLEEPDEEP)

	arm.Asm("wfi")
}

// Wait enters sleep mode until the next interrupt
func Wait() {
	// clear SLEEPDEEP bit to disable deep sleep
	sam.SCB.SCR.ClearBits(sam.SCB_SCR_SLEEPDEEP)

	arm.Asm("wfi")
}

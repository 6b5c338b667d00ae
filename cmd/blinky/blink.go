// Command blinky blinks the Due's LED and reports each change on the console
// port. On the host it runs against the simulated registers.
package main

import (
	"github.com/hwstl/hwstl/src/machine"
	"github.com/hwstl/hwstl/src/runtime/systick"
)

var led machine.Digital[machine.PinD13]

func setup() {
	machine.InitPlatform()
	machine.Serial.Enable()
	led.Configure(machine.PinConfig{Mode: machine.PinOutput})
}

// blink toggles the LED n times, or forever for n < 0.
func blink(n int, periodMillis int32) {
	for i := 0; n < 0 || i < n; i++ {
		led.Toggle()
		if led.Get() {
			machine.Serial.Write([]byte("on\r\n"))
		} else {
			machine.Serial.Write([]byte("off\r\n"))
		}
		systick.WaitMillis(periodMillis / 2)
	}
}

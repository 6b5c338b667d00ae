//go:build !tinygo

package main

import (
	"flag"
	"log/slog"

	"github.com/hwstl/hwstl/internal/hostserial"
	"github.com/hwstl/hwstl/src/device/sam"
	"github.com/hwstl/hwstl/src/machine"
	"github.com/hwstl/hwstl/src/runtime/volatile"
)

func main() {
	count := flag.Int("n", 6, "number of toggles")
	period := flag.Int("period", 200, "blink period in milliseconds")
	verbose := flag.Bool("v", false, "log console output")
	flag.Parse()

	hostserial.SetLogLevel(slog.LevelInfo)
	if *verbose {
		hostserial.SetLogLevel(slog.LevelDebug)
	}

	restore := volatile.Observe(simulate)
	defer restore()

	setup()
	blink(*count, int32(*period))
}

var ledMask = machine.Resolve(machine.LED).Mask()

// simulate logs what the firmware does to the LED and the console and plays
// the part of the port logic: driven levels show up on the pins.
func simulate(reg *volatile.Register32, value uint32) {
	switch reg {
	case &sam.PIOB.SODR:
		sam.PIOB.ODSR.SetBits(value)
		sam.PIOB.PDSR.SetBits(value)
		if value&ledMask != 0 {
			hostserial.LogInfo(hostserial.ComponentBoard, "LED on")
		}
	case &sam.PIOB.CODR:
		sam.PIOB.ODSR.ClearBits(value)
		sam.PIOB.PDSR.ClearBits(value)
		if value&ledMask != 0 {
			hostserial.LogInfo(hostserial.ComponentBoard, "LED off")
		}
	case &sam.UART.THR:
		hostserial.LogDebug(hostserial.ComponentBoard, "console", "char", string(rune(value)))
	}
}

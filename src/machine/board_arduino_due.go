package machine

import (
	"sync/atomic"

	"github.com/hwstl/hwstl/src/device/sam"
	"github.com/hwstl/hwstl/src/runtime/systick"
)

// MCK = 84 MHz from PLLA (12 MHz crystal * 14 / 1 / 2)

// CPUFrequency returns the frequency of the ARM core clock (84MHz)
func CPUFrequency() uint32 { return MainClockFrequency }

// ClockFrequency returns the frequency of the external oscillator (12MHz)
func ClockFrequency() uint32 { return 12000000 }

// digital IO, numbered as on the headers
const (
	D0 Pin = iota
	D1
	D2
	D3
	D4
	D5
	D6
	D7
	D8
	D9
	D10
	D11
	D12
	D13
	D14
	D15
	D16
	D17
	D18
	D19
	D20

	NumPins = 21
)

// pinTable maps each board pin to its port line.
var pinTable = [NumPins]PinDescriptor{
	D0:  PA08, // RX0
	D1:  PA09, // TX0
	D2:  PB25,
	D3:  PC28,
	D4:  PC26,
	D5:  PC25,
	D6:  PC24,
	D7:  PC23,
	D8:  PC22,
	D9:  PC21,
	D10: PC29,
	D11: PD07,
	D12: PD08,
	D13: PB27, // LED "L"
	D14: PD04, // TX3
	D15: PD05, // RX3
	D16: PA13, // TX2
	D17: PA12, // RX2
	D18: PA11, // TX1
	D19: PA10, // RX1
	D20: PB12, // SDA
}

// LED on the Arduino Due
const LED = D13

// Serial is the console, on the programming port.
var Serial = UART0

// Header labels of the serial ports.
var (
	Serial1 = USART0
	Serial2 = USART1
	Serial3 = USART3
)

var initted int32

// InitPlatform brings the clock tree up to 84 MHz and starts the millisecond
// tick. Only the first call has any effect.
func InitPlatform() {
	if !atomic.CompareAndSwapInt32(&initted, 0, 1) {
		return
	}

	sam.SystemInit()
	systick.Start(CPUFrequency())
}

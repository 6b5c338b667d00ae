//go:build debug && !tinygo
// +build debug,!tinygo

package machine

import "testing"

func TestDebugAssertions(t *testing.T) {
	tests := []struct {
		name string
		fn   func()
	}{
		{"pin out of range", func() { Resolve(NumPins) }},
		{"no pin", func() { NoPin.Get() }},
		{"zero divider", func() { UART0.EnableBaud(0) }},
		{"baud not multiple of 16", func() { UART0.EnableBaudRate(9601) }},
		{"uart configure 9601", func() { UART0.Configure(UARTConfig{BaudRate: 9601}) }},
		{"usart 16x rejects multiples of 8", func() { USART2.Configure(USARTConfig{BaudRate: 1000008}) }},
		{"master clock not a prescaler output", func() { UART0.EnableBaudClock(50000000, 9600) }},
		{"nine-bit without MODE9", func() { USART2.Write9(0x100) }},
		{"uart multidrop", func() { UARTConfig{Parity: ParityMultidrop}.mode() }},
		{"10-bit I2C address", func() { (&SoftI2C{SCL: D9, SDA: D20}).Tx(0x3FF, nil, nil) }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			newSimulator(t)
			defer func() {
				if recover() == nil {
					t.Error("no panic")
				}
			}()
			tt.fn()
		})
	}
}

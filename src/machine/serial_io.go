package machine

import (
	"errors"
)

var errSerialRXEmpty = errors.New("machine: serial receive holding register empty")

// Serial ports satisfy io.Writer, io.ByteWriter, io.Reader and io.ByteReader.
// Reads never block: they return what the receive holding register has, which
// is at most one character, since the controllers have no FIFO.

func serialRead[S serialRegisters](s S, data []byte) (n int, err error) {
	for n < len(data) && serialReady(s) {
		data[n] = byte(s.receive().Get())
		n++
	}
	return n, nil
}

func serialWrite[S serialRegisters](s S, data []byte) (n int, err error) {
	for _, v := range data {
		serialPutc(s, uint32(v))
	}
	return len(data), nil
}

func serialReadByte[S serialRegisters](s S) (byte, error) {
	if !serialReady(s) {
		return 0, errSerialRXEmpty
	}
	return byte(s.receive().Get()), nil
}

func serialBuffered[S serialRegisters](s S) int {
	if serialReady(s) {
		return 1
	}
	return 0
}

// Read from the receive holding register.
func (u *UART) Read(data []byte) (n int, err error) { return serialRead(u, data) }

// Write data to the UART, waiting for the transmitter before each byte.
func (u *UART) Write(data []byte) (n int, err error) { return serialWrite(u, data) }

// WriteByte writes a single byte.
func (u *UART) WriteByte(c byte) error {
	u.Putc(c)
	return nil
}

// ReadByte reads a single byte. If no character has arrived, returns an
// error.
func (u *UART) ReadByte() (byte, error) { return serialReadByte(u) }

// Buffered returns the number of characters waiting, 0 or 1.
func (u *UART) Buffered() int { return serialBuffered(u) }

// Read from the receive holding register.
func (u *USART) Read(data []byte) (n int, err error) { return serialRead(u, data) }

// Write data to the USART.
func (u *USART) Write(data []byte) (n int, err error) { return serialWrite(u, data) }

// WriteByte writes a single byte.
func (u *USART) WriteByte(c byte) error {
	u.Putc(c)
	return nil
}

// ReadByte reads a single byte, or returns an error if none has arrived.
func (u *USART) ReadByte() (byte, error) { return serialReadByte(u) }

// Buffered returns the number of characters waiting, 0 or 1.
func (u *USART) Buffered() int { return serialBuffered(u) }

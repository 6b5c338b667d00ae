package machine

import (
	"errors"

	"tinygo.org/x/drivers"

	"github.com/hwstl/hwstl/src/runtime/systick"
)

var (
	ErrI2CNack         = errors.New("machine: I2C target did not acknowledge")
	ErrI2CClockStretch = errors.New("machine: I2C clock held low")
)

var _ drivers.I2C = (*SoftI2C)(nil)

// SoftI2C is an I2C controller bit-banged on two open-drain board pins. It
// speaks 7-bit addresses and serves drivers written against
// tinygo.org/x/drivers.
type SoftI2C struct {
	SCL, SDA Pin

	// Half of the SCL period; 0 selects 5us, about 100 kHz.
	HalfPeriodMicros int32

	// How long a target may stretch the clock; 0 selects 1ms.
	StretchMicros uint32
}

// Configure makes both lines open-drain outputs with pull-ups and releases
// them.
func (i2c *SoftI2C) Configure() {
	i2c.SDA.High()
	i2c.SCL.High()
	ConfigureOpenDrain(i2c.SCL, i2c.SDA)
}

// Tx writes w to the target at addr, then reads len(r) bytes into r, joined
// by a repeated start. Either may be empty. A stop condition always ends the
// transaction.
func (i2c *SoftI2C) Tx(addr uint16, w, r []byte) error {
	debugAssert(addr < 0x80, "I2C address wider than 7 bits")

	err := i2c.transfer(uint8(addr), w, r)
	if stopErr := i2c.stop(); err == nil {
		err = stopErr
	}
	return err
}

func (i2c *SoftI2C) transfer(addr uint8, w, r []byte) error {
	if len(w) > 0 || len(r) == 0 {
		if err := i2c.start(); err != nil {
			return err
		}
		if err := i2c.writeByte(addr << 1); err != nil {
			return err
		}
		for _, c := range w {
			if err := i2c.writeByte(c); err != nil {
				return err
			}
		}
	}
	if len(r) == 0 {
		return nil
	}

	if err := i2c.start(); err != nil {
		return err
	}
	if err := i2c.writeByte(addr<<1 | 1); err != nil {
		return err
	}
	for n := range r {
		c, err := i2c.readByte(n < len(r)-1)
		if err != nil {
			return err
		}
		r[n] = c
	}
	return nil
}

func (i2c *SoftI2C) delay() {
	half := i2c.HalfPeriodMicros
	if half == 0 {
		half = 5
	}
	systick.WaitMicrosBusy(half)
}

// releaseSCL lets SCL float high and waits for any target holding it low.
func (i2c *SoftI2C) releaseSCL() error {
	limit := i2c.StretchMicros
	if limit == 0 {
		limit = 1000
	}
	i2c.SCL.High()
	deadline := systick.Deadline(limit)
	for !i2c.SCL.Get() {
		if systick.Expired(deadline) {
			return ErrI2CClockStretch
		}
	}
	return nil
}

// start also serves as repeated start.
func (i2c *SoftI2C) start() error {
	i2c.SDA.High()
	i2c.delay()
	if err := i2c.releaseSCL(); err != nil {
		return err
	}
	i2c.delay()
	i2c.SDA.Low()
	i2c.delay()
	i2c.SCL.Low()
	return nil
}

func (i2c *SoftI2C) stop() error {
	i2c.SCL.Low()
	i2c.SDA.Low()
	i2c.delay()
	err := i2c.releaseSCL()
	i2c.delay()
	i2c.SDA.High()
	i2c.delay()
	return err
}

func (i2c *SoftI2C) writeBit(b bool) error {
	i2c.SDA.Set(b)
	i2c.delay()
	if err := i2c.releaseSCL(); err != nil {
		return err
	}
	i2c.delay()
	i2c.SCL.Low()
	return nil
}

func (i2c *SoftI2C) readBit() (bool, error) {
	i2c.SDA.High()
	i2c.delay()
	if err := i2c.releaseSCL(); err != nil {
		return false, err
	}
	i2c.delay()
	b := i2c.SDA.Get()
	i2c.SCL.Low()
	return b, nil
}

func (i2c *SoftI2C) writeByte(c byte) error {
	for bit := 7; bit >= 0; bit-- {
		if err := i2c.writeBit(c&(1<<bit) != 0); err != nil {
			return err
		}
	}
	nack, err := i2c.readBit()
	if err != nil {
		return err
	}
	if nack {
		return ErrI2CNack
	}
	return nil
}

// readByte reads eight bits and acknowledges them if ack is set. The last
// byte of a read is not acknowledged.
func (i2c *SoftI2C) readByte(ack bool) (byte, error) {
	var c byte
	for bit := 0; bit < 8; bit++ {
		b, err := i2c.readBit()
		if err != nil {
			return 0, err
		}
		c <<= 1
		if b {
			c |= 1
		}
	}
	return c, i2c.writeBit(!ack)
}

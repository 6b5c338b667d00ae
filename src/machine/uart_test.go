//go:build !tinygo
// +build !tinygo

package machine

import (
	"io"
	"testing"

	"github.com/hwstl/hwstl/src/device/sam"
)

const (
	crResetDisable = 1<<2 | 1<<3 | 1<<5 | 1<<7
	crEnable       = 1<<4 | 1<<6
	mrParityNone   = 0x4 << 9
)

func TestUARTEnable(t *testing.T) {
	s := newSimulator(t)

	UART0.Enable()

	want := []regWrite{
		{"UART.CR", crResetDisable},
		{"UART.BRGR", 45},
		{"UART.MR", mrParityNone},
		{"UART.IDR", 0xFFFFFFFF},
		{"UART.CR", crEnable},
	}
	if got := s.writesTo("UART."); !equalWrites(got, want) {
		t.Errorf("UART writes %v, want %v", got, want)
	}

	if sam.PIOA.PSR.HasBits(1<<8 | 1<<9) {
		t.Error("PA8/PA9 still under PIO control")
	}
	if sam.PIOA.ABSR.HasBits(1<<8 | 1<<9) {
		t.Error("PA8/PA9 not on peripheral A")
	}
	if !sam.PMC.PCSR0.HasBits(1<<sam.ID_UART | 1<<sam.ID_PIOA) {
		t.Errorf("PCSR0 = %#x, UART or PIOA clock off", sam.PMC.PCSR0.Get())
	}

	// pins and clocks are set up before the controller is touched
	first := s.writes[0].Name
	if first == "UART.CR" {
		t.Error("controller programmed before its pins")
	}
}

func TestUARTBaudEntryPoints(t *testing.T) {
	tests := []struct {
		name   string
		enable func()
		cd     uint32
	}{
		{"constant divider", func() { UART0.EnableBaud(Divider9600) }, 546},
		{"runtime rate", func() { UART0.EnableBaudRate(57600) }, 91},
		{"runtime clock", func() { UART0.EnableBaudClock(42000000, 9600) }, 273},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newSimulator(t)
			tt.enable()
			want := []regWrite{{"UART.BRGR", tt.cd}}
			if !equalWrites(s.writes, want) {
				t.Errorf("writes %v, want %v", s.writes, want)
			}
		})
	}
}

func TestUARTConfigure(t *testing.T) {
	s := newSimulator(t)

	UART0.Configure(UARTConfig{BaudRate: 19200, Parity: ParityOdd, Channel: ChannelLocalLoopback})
	want := []regWrite{
		{"UART.CR", crResetDisable},
		{"UART.BRGR", 273},
		{"UART.MR", 0x1<<9 | 0x2<<14},
		{"UART.IDR", 0xFFFFFFFF},
		{"UART.CR", crEnable},
	}
	if got := s.writesTo("UART."); !equalWrites(got, want) {
		t.Errorf("writes %v, want %v", got, want)
	}

	// a later baud change leaves the mode alone
	s.clear()
	UART0.EnableBaud(Divider115200)
	if got := sam.UART.MR.Get(); got != 0x1<<9|0x2<<14 {
		t.Errorf("MR after EnableBaud = %#x", got)
	}
}

func TestUARTConfigureDefaultRate(t *testing.T) {
	newSimulator(t)

	UART0.Configure(UARTConfig{Parity: ParityNone})
	if got := sam.UART.BRGR.Get(); got != uint32(Divider115200) {
		t.Errorf("default baud divider %d", got)
	}
	if got := sam.UART.MR.Get(); got != mrParityNone {
		t.Errorf("MR = %#x, want %#x", got, mrParityNone)
	}
}

func TestUARTApplyDoesNotEnable(t *testing.T) {
	s := newSimulator(t)

	UART0.Apply(UARTConfig{Parity: ParityMark})

	want := []regWrite{
		{"UART.CR", crResetDisable},
		{"UART.MR", 0x3 << 9},
	}
	if got := s.writesTo("UART."); !equalWrites(got, want) {
		t.Errorf("writes %v, want %v", got, want)
	}

	UART0.EnableTRX()
	if got := sam.UART.CR.Get(); got != crEnable {
		t.Errorf("CR after EnableTRX = %#x", got)
	}
}

func TestUARTDisable(t *testing.T) {
	s := newSimulator(t)

	UART0.Enable()
	s.clear()
	UART0.Disable()

	if got := s.writesTo("UART."); !equalWrites(got, []regWrite{{"UART.CR", crResetDisable}}) {
		t.Errorf("UART writes %v", got)
	}
	if s.count("PMC.PCDR0") != 1 || sam.PMC.PCDR0.Get() != 1<<sam.ID_UART {
		t.Errorf("PCDR0 = %#x", sam.PMC.PCDR0.Get())
	}
	for _, w := range s.writesTo("PMC.PCER0") {
		if w.Value&(1<<sam.ID_UART) != 0 {
			t.Error("Disable wrote the UART bit to the enable register")
		}
	}
	if sam.PMC.PCSR0.HasBits(1 << sam.ID_UART) {
		t.Error("UART clock still on")
	}
	if !sam.PIOA.PSR.HasBits(1 << 8) || !sam.PIOA.PSR.HasBits(1<<9) {
		t.Error("pins not returned to the PIO")
	}

	s.clear()
	UART0.DisableBaud()
	if !equalWrites(s.writes, []regWrite{{"UART.BRGR", 0}}) {
		t.Errorf("DisableBaud wrote %v", s.writes)
	}
}

func TestUARTPutcGetc(t *testing.T) {
	s := newSimulator(t)

	UART0.Putc('A')
	if _, err := UART0.Write([]byte("hi")); err != nil {
		t.Fatal(err)
	}
	if err := UART0.WriteByte('!'); err != nil {
		t.Fatal(err)
	}
	want := []regWrite{{"UART.THR", 'A'}, {"UART.THR", 'h'}, {"UART.THR", 'i'}, {"UART.THR", '!'}}
	if !equalWrites(s.writes, want) {
		t.Errorf("writes %v, want %v", s.writes, want)
	}

	sam.UART.RHR.Reg = 'z'
	sam.UART.SR.Reg |= sam.UART_SR_RXRDY
	if c := UART0.Getc(); c != 'z' {
		t.Errorf("Getc() = %q", c)
	}
}

func TestGetcTimeout(t *testing.T) {
	newSimulator(t)

	for _, us := range []uint32{0, 200} {
		if c, ok := UART0.GetcTimeout(us); ok {
			t.Errorf("GetcTimeout(%d) = %q with nothing received", us, c)
		}
		if c, ok := USART1.GetcTimeout(us); ok {
			t.Errorf("USART1.GetcTimeout(%d) = %q with nothing received", us, c)
		}
	}

	sam.UART.RHR.Reg = 0x42
	sam.UART.SR.Reg |= sam.UART_SR_RXRDY
	if c, ok := UART0.GetcTimeout(0); !ok || c != 0x42 {
		t.Errorf("GetcTimeout(0) = %#x, %v", c, ok)
	}
}

func TestSerialReaders(t *testing.T) {
	newSimulator(t)

	if UART0.Buffered() != 0 {
		t.Error("Buffered() != 0 with nothing received")
	}
	if _, err := UART0.ReadByte(); err == nil {
		t.Error("ReadByte() succeeded with nothing received")
	}
	buf := make([]byte, 4)
	if n, err := UART0.Read(buf); n != 0 || err != nil {
		t.Errorf("Read() = %d, %v", n, err)
	}

	sam.USART3.RHR.Reg = 'q'
	sam.USART3.CSR.Reg |= sam.US_CSR_RXRDY
	if USART3.Buffered() != 1 {
		t.Error("Buffered() != 1 with a character held")
	}
	if c, err := USART3.ReadByte(); err != nil || c != 'q' {
		t.Errorf("ReadByte() = %q, %v", c, err)
	}
	if n, err := USART3.Read(buf[:1]); n != 1 || err != nil || buf[0] != 'q' {
		t.Errorf("Read() = %d, %v, %q", n, err, buf[0])
	}

	var (
		_ io.Writer     = UART0
		_ io.ByteReader = USART0
		_ io.Reader     = USART2
	)
}

func TestUSARTEnable(t *testing.T) {
	tests := []struct {
		name        string
		usart       *USART
		prefix      string
		bank        *sam.PIO_Type
		pins        uint32
		peripheralB bool
		id          uint32
	}{
		{"USART0", USART0, "USART0.", sam.PIOA, 1<<10 | 1<<11, false, sam.ID_USART0},
		{"USART1", USART1, "USART1.", sam.PIOA, 1<<12 | 1<<13, false, sam.ID_USART1},
		{"USART2", USART2, "USART2.", sam.PIOB, 1<<20 | 1<<21, false, sam.ID_USART2},
		{"USART3", USART3, "USART3.", sam.PIOD, 1<<4 | 1<<5, true, sam.ID_USART3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newSimulator(t)
			tt.usart.Enable()

			want := []regWrite{
				{tt.prefix + "CR", crResetDisable},
				{tt.prefix + "BRGR", 45},
				{tt.prefix + "MR", 0x3<<6 | mrParityNone},
				{tt.prefix + "IDR", 0xFFFFFFFF},
				{tt.prefix + "CR", crEnable},
			}
			if got := s.writesTo(tt.prefix); !equalWrites(got, want) {
				t.Errorf("writes %v, want %v", got, want)
			}
			if tt.bank.PSR.HasBits(tt.pins) {
				t.Error("pins still under PIO control")
			}
			if got := tt.bank.ABSR.Get()&tt.pins == tt.pins; got != tt.peripheralB {
				t.Errorf("peripheral B selected = %v, want %v", got, tt.peripheralB)
			}
			if !sam.PMC.PCSR0.HasBits(1 << tt.id) {
				t.Error("peripheral clock off")
			}
		})
	}
}

func TestUSARTConfigure(t *testing.T) {
	tests := []struct {
		name   string
		config USARTConfig
		cd     uint32
	}{
		{"default rate", USARTConfig{CharacterLength: CharLength8, Parity: ParityNone}, 45},
		{"9600", USARTConfig{BaudRate: 9600}, 546},
		{"8x oversampling", USARTConfig{BaudRate: 115200, Oversampling: Oversampling8}, 91},
		{"8x allows multiples of 8", USARTConfig{BaudRate: 1000008, Oversampling: Oversampling8}, 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			newSimulator(t)
			t.Cleanup(func() { USART2.current = usartDefaultMode })

			USART2.Configure(tt.config)
			if got := sam.USART2.BRGR.Get(); got != tt.cd {
				t.Errorf("BRGR = %d, want %d", got, tt.cd)
			}
			if got := sam.USART2.MR.Get(); got != tt.config.mode() {
				t.Errorf("MR = %#x, want %#x", got, tt.config.mode())
			}
		})
	}
}

func TestUSARTApplyAndBaud(t *testing.T) {
	s := newSimulator(t)
	t.Cleanup(func() { USART0.current = usartDefaultMode })

	config := USARTConfig{Mode: USARTModeSPIMaster, ClockPhase: PhaseCaptureLeading, ClockOutput: true}
	USART0.Apply(config)
	want := []regWrite{
		{"USART0.CR", crResetDisable},
		{"USART0.MR", config.mode()},
	}
	if got := s.writesTo("USART0."); !equalWrites(got, want) {
		t.Errorf("writes %v, want %v", got, want)
	}

	s.clear()
	USART0.EnableBaudRate(19200)
	if got := sam.USART0.BRGR.Get(); got != 273 {
		t.Errorf("BRGR = %d, want 273", got)
	}
	if got := sam.USART0.MR.Get(); got != config.mode() {
		t.Errorf("MR = %#x, want the applied mode", got)
	}

	s.clear()
	USART0.DisableBaud()
	if !equalWrites(s.writes, []regWrite{{"USART0.BRGR", 0}}) {
		t.Errorf("DisableBaud wrote %v", s.writes)
	}
}

func TestUSARTNineBit(t *testing.T) {
	s := newSimulator(t)
	t.Cleanup(func() { USART1.current = usartDefaultMode })

	USART1.Apply(USARTConfig{NineBit: true})
	USART1.EnableBaud(Divider38400)
	s.clear()

	USART1.Write9(0x1A5)
	USART1.Write9(0xFFFF)
	want := []regWrite{{"USART1.THR", 0x1A5}, {"USART1.THR", 0x1FF}}
	if !equalWrites(s.writes, want) {
		t.Errorf("writes %v, want %v", s.writes, want)
	}

	sam.USART1.RHR.Reg = 0x3123
	sam.USART1.CSR.Reg |= sam.US_CSR_RXRDY
	if got := USART1.Read9(); got != 0x123 {
		t.Errorf("Read9() = %#x, want 0x123", got)
	}
}

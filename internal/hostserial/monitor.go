package hostserial

import (
	"bufio"
	"context"
	"encoding/hex"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/google/shlex"
	"go.bug.st/serial"

	"github.com/hwstl/hwstl/src/machine"
)

// Port is the part of serial.Port the host tools use.
type Port interface {
	io.ReadWriteCloser
	SetMode(mode *serial.Mode) error
	SetDTR(dtr bool) error
}

// Opener opens a port by name.
type Opener func(name string, mode *serial.Mode) (Port, error)

// OpenPort opens a real serial port.
func OpenPort(name string, mode *serial.Mode) (Port, error) {
	return serial.Open(name, mode)
}

// Monitor is an interactive terminal on a board's serial port. Everything
// the board sends is copied to Out. Input lines are sent to the board, except
// lines starting with ':', which are local commands:
//
//	:baud 9600        change the port rate
//	:send a "b c"     send the arguments joined by spaces, then a newline
//	:hex 55 aa 0d     send raw bytes
//	:quit             leave
type Monitor struct {
	Port Port
	Out  io.Writer
	Mode serial.Mode

	// Newline is sent after each input line; empty selects "\n".
	Newline string
}

// Run drives the monitor until in is exhausted, :quit is entered, ctx is
// cancelled or the port fails. The port is closed on return.
func (m *Monitor) Run(ctx context.Context, in io.Reader) error {
	copied := make(chan error, 1)
	go func() {
		_, err := io.Copy(m.Out, m.Port)
		copied <- err
	}()

	stop := make(chan struct{})
	lines := make(chan string)
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(in)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-stop:
				return
			}
		}
	}()

	portDone, err := m.loop(ctx, lines, copied)
	close(stop)
	m.Port.Close()
	if !portDone {
		<-copied
	}
	return err
}

// loop reports portDone when it has taken the copier's result off copied.
func (m *Monitor) loop(ctx context.Context, lines <-chan string, copied <-chan error) (portDone bool, err error) {
	for {
		select {
		case <-ctx.Done():
			return false, ctx.Err()
		case err := <-copied:
			LogInfo(ComponentMonitor, "port closed", "err", err)
			if err != nil {
				return true, fmt.Errorf("read port: %w", err)
			}
			return true, nil
		case line, ok := <-lines:
			if !ok {
				return false, nil
			}
			quit, err := m.handle(line)
			if err != nil {
				LogWarn(ComponentMonitor, "command failed", "line", line, "err", err)
			}
			if quit {
				return false, nil
			}
		}
	}
}

func (m *Monitor) handle(line string) (quit bool, err error) {
	if !strings.HasPrefix(line, ":") {
		return false, m.send(line)
	}

	args, err := shlex.Split(line[1:])
	if err != nil {
		return false, fmt.Errorf("%w: %v", ErrCommandArgs, err)
	}
	if len(args) == 0 {
		return false, ErrUnknownCommand
	}

	switch args[0] {
	case "quit", "q":
		return true, nil
	case "send":
		return false, m.send(strings.Join(args[1:], " "))
	case "hex":
		data, err := hex.DecodeString(strings.Join(args[1:], ""))
		if err != nil {
			return false, fmt.Errorf("%w: %v", ErrCommandArgs, err)
		}
		_, err = m.Port.Write(data)
		return false, err
	case "baud":
		if len(args) != 2 {
			return false, ErrCommandArgs
		}
		baud, err := strconv.ParseUint(args[1], 10, 32)
		if err != nil || baud == 0 {
			return false, fmt.Errorf("%w: %q", ErrCommandArgs, args[1])
		}
		return false, m.setBaud(uint32(baud))
	}
	return false, fmt.Errorf("%w %q", ErrUnknownCommand, args[0])
}

func (m *Monitor) send(text string) error {
	newline := m.Newline
	if newline == "" {
		newline = "\n"
	}
	_, err := io.WriteString(m.Port, text+newline)
	return err
}

func (m *Monitor) setBaud(baud uint32) error {
	if !machine.IsValidBaudRate(baud) {
		plan := PlanBaud(machine.MainClockFrequency, baud)
		LogWarn(ComponentMonitor, "board cannot generate rate exactly",
			"baud", baud, "actual", plan.Actual, "error_permille", plan.ErrorPermille)
	}
	mode := m.Mode
	mode.BaudRate = int(baud)
	if err := m.Port.SetMode(&mode); err != nil {
		return err
	}
	m.Mode = mode
	LogInfo(ComponentMonitor, "baud changed", "baud", baud)
	return nil
}

// time the USB bridge needs to reset the SAM3X
var touchSettle = 500 * time.Millisecond

// Touch1200 opens the programming port at 1200 baud and closes it again. The
// Due's USB bridge answers by erasing the flash and starting the ROM
// bootloader.
func Touch1200(open Opener, name string) error {
	port, err := open(name, &serial.Mode{BaudRate: 1200})
	if err != nil {
		return fmt.Errorf("open %s: %w", name, err)
	}
	if err := port.SetDTR(false); err != nil {
		port.Close()
		return fmt.Errorf("drop DTR on %s: %w", name, err)
	}
	if err := port.Close(); err != nil {
		return err
	}
	LogInfo(ComponentBoard, "bootloader requested", "port", name)

	time.Sleep(touchSettle)
	return nil
}

package hostserial

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"sync"
	"testing"
	"time"

	"go.bug.st/serial"
)

// fakePort hands out its pending output once, then blocks reads until it is
// closed.
type fakePort struct {
	mu      sync.Mutex
	pending []byte
	written bytes.Buffer
	modes   []serial.Mode
	dtr     []bool
	closed  chan struct{}
	once    sync.Once
}

func newFakePort(output string) *fakePort {
	return &fakePort{pending: []byte(output), closed: make(chan struct{})}
}

func (p *fakePort) Read(b []byte) (int, error) {
	p.mu.Lock()
	if len(p.pending) > 0 {
		n := copy(b, p.pending)
		p.pending = p.pending[n:]
		p.mu.Unlock()
		return n, nil
	}
	p.mu.Unlock()
	<-p.closed
	return 0, io.EOF
}

func (p *fakePort) Write(b []byte) (int, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.written.Write(b)
}

func (p *fakePort) Close() error {
	p.once.Do(func() { close(p.closed) })
	return nil
}

func (p *fakePort) SetMode(mode *serial.Mode) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.modes = append(p.modes, *mode)
	return nil
}

func (p *fakePort) SetDTR(dtr bool) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.dtr = append(p.dtr, dtr)
	return nil
}

func TestMonitor(t *testing.T) {
	port := newFakePort("hwstl ready\r\n")
	var out bytes.Buffer
	m := &Monitor{Port: port, Out: &out, Mode: serial.Mode{BaudRate: 115200}}

	input := strings.Join([]string{
		"hello",
		`:send "a b" c`,
		":hex 41 42 0d",
		":baud 9600",
		":bogus",
		":quit",
		"never sent",
	}, "\n")
	if err := m.Run(context.Background(), strings.NewReader(input)); err != nil {
		t.Fatal(err)
	}

	if got, want := port.written.String(), "hello\na b c\nAB\r"; got != want {
		t.Errorf("sent %q, want %q", got, want)
	}
	if len(port.modes) != 1 || port.modes[0].BaudRate != 9600 {
		t.Errorf("modes %+v", port.modes)
	}
	if m.Mode.BaudRate != 9600 {
		t.Errorf("monitor mode %d", m.Mode.BaudRate)
	}
	if got := out.String(); got != "hwstl ready\r\n" {
		t.Errorf("output %q", got)
	}
}

func TestMonitorCommands(t *testing.T) {
	tests := []struct {
		line string
		quit bool
		err  error
	}{
		{":q", true, nil},
		{":", false, ErrUnknownCommand},
		{":reset", false, ErrUnknownCommand},
		{":baud", false, ErrCommandArgs},
		{":baud fast", false, ErrCommandArgs},
		{":baud 0", false, ErrCommandArgs},
		{":hex zz", false, ErrCommandArgs},
		{`:send "unterminated`, false, ErrCommandArgs},
		{":baud 9601", false, nil},
	}

	for _, tt := range tests {
		m := &Monitor{Port: newFakePort(""), Newline: "\r\n"}
		quit, err := m.handle(tt.line)
		if quit != tt.quit || !errors.Is(err, tt.err) {
			t.Errorf("handle(%q) = %v, %v, want %v, %v", tt.line, quit, err, tt.quit, tt.err)
		}
	}
}

func TestMonitorCancel(t *testing.T) {
	port := newFakePort("")
	m := &Monitor{Port: port, Out: io.Discard}

	ctx, cancel := context.WithCancel(context.Background())
	in, _ := io.Pipe()
	done := make(chan error, 1)
	go func() { done <- m.Run(ctx, in) }()

	cancel()
	select {
	case err := <-done:
		if !errors.Is(err, context.Canceled) {
			t.Errorf("Run() = %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not return after cancel")
	}
}

// brokenPort fails every read, like a board that has been unplugged.
type brokenPort struct {
	*fakePort
	err error
}

func (p brokenPort) Read([]byte) (int, error) { return 0, p.err }

func TestMonitorPortFailure(t *testing.T) {
	unplugged := errors.New("device unplugged")
	port := brokenPort{fakePort: newFakePort(""), err: unplugged}
	m := &Monitor{Port: port, Out: io.Discard}

	in, w := io.Pipe()
	t.Cleanup(func() { w.Close() })
	done := make(chan error, 1)
	go func() { done <- m.Run(context.Background(), in) }()

	select {
	case err := <-done:
		if !errors.Is(err, unplugged) {
			t.Errorf("Run() = %v, want %v", err, unplugged)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not return after a port read error")
	}
	select {
	case <-port.closed:
	default:
		t.Error("port left open")
	}
}

func TestTouch1200(t *testing.T) {
	touchSettle = 0
	t.Cleanup(func() { touchSettle = 500 * time.Millisecond })

	port := newFakePort("")
	var opened *serial.Mode
	open := func(name string, mode *serial.Mode) (Port, error) {
		opened = mode
		return port, nil
	}

	if err := Touch1200(open, "/dev/ttyACM0"); err != nil {
		t.Fatal(err)
	}
	if opened == nil || opened.BaudRate != 1200 {
		t.Errorf("opened with %+v", opened)
	}
	if len(port.dtr) != 1 || port.dtr[0] {
		t.Errorf("DTR writes %v", port.dtr)
	}
	select {
	case <-port.closed:
	default:
		t.Error("port left open")
	}

	failing := func(string, *serial.Mode) (Port, error) { return nil, errors.New("busy") }
	if err := Touch1200(failing, "/dev/ttyACM0"); err == nil {
		t.Error("open failure not reported")
	}
}

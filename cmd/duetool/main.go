//go:build !tinygo

// Command duetool works with an Arduino Due from the host: it lists serial
// ports, plans baud rates, checks firmware images, asks the board for its
// bootloader and runs a serial monitor.
//
// Usage:
//
//	duetool ports
//	duetool baud [-mck hz] rate...
//	duetool hex file.hex
//	duetool erase -port /dev/ttyACM0
//	duetool monitor [-profiles file.yaml -profile name] [-port p -baud n]
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strconv"
	"text/tabwriter"

	"go.bug.st/serial"

	"github.com/hwstl/hwstl/internal/hostserial"
	"github.com/hwstl/hwstl/src/machine"
)

var errUsage = errors.New("usage: duetool [-v] ports|baud|hex|erase|monitor [flags]")

func main() {
	verbose := flag.Bool("v", false, "enable debug logging")
	flag.Parse()
	if *verbose {
		hostserial.SetLogLevel(slog.LevelDebug)
	}

	if err := run(flag.Args(), os.Stdout); err != nil {
		if errors.Is(err, context.Canceled) {
			return
		}
		fmt.Fprintln(os.Stderr, "duetool:", err)
		os.Exit(1)
	}
}

func run(args []string, out io.Writer) error {
	if len(args) == 0 {
		return errUsage
	}
	cmd, args := args[0], args[1:]
	switch cmd {
	case "ports":
		return runPorts(out)
	case "baud":
		return runBaud(args, out)
	case "hex":
		return runHex(args, out)
	case "erase":
		return runErase(args)
	case "monitor":
		return runMonitor(args, out)
	}
	return fmt.Errorf("%w: unknown command %q", errUsage, cmd)
}

func runPorts(out io.Writer) error {
	ports, err := serial.GetPortsList()
	if err != nil {
		return fmt.Errorf("list ports: %w", err)
	}
	for _, p := range ports {
		fmt.Fprintln(out, p)
	}
	return nil
}

func runBaud(args []string, out io.Writer) error {
	fs := flag.NewFlagSet("baud", flag.ContinueOnError)
	mck := fs.Uint("mck", machine.MainClockFrequency, "master clock in Hz")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() == 0 {
		return fmt.Errorf("%w: baud needs at least one rate", errUsage)
	}

	w := tabwriter.NewWriter(out, 0, 8, 2, ' ', 0)
	fmt.Fprintln(w, "RATE\tEXACT\tCD\tACTUAL\tERROR\tPRESCALER")
	for _, arg := range fs.Args() {
		rate, err := strconv.ParseUint(arg, 10, 32)
		if err != nil {
			return fmt.Errorf("rate %q: %w", arg, err)
		}
		plan := hostserial.PlanBaud(uint32(*mck), uint32(rate))
		cd, actual, pres := "-", "-", "-"
		if plan.Usable() {
			cd = strconv.FormatUint(uint64(plan.Divider), 10)
			actual = strconv.FormatUint(uint64(plan.Actual), 10)
		}
		if plan.PrescalerOK {
			pres = "/" + strconv.FormatUint(uint64(plan.Prescaler.Divisor()), 10)
		}
		fmt.Fprintf(w, "%d\t%v\t%s\t%s\t%.1f%%\t%s\n",
			plan.Baud, plan.Exact, cd, actual, float64(plan.ErrorPermille)/10, pres)
	}
	return w.Flush()
}

func runHex(args []string, out io.Writer) error {
	if len(args) != 1 {
		return fmt.Errorf("%w: hex needs one file", errUsage)
	}
	f, err := os.Open(args[0])
	if err != nil {
		return err
	}
	defer f.Close()

	info, err := hostserial.CheckImage(f)
	if err != nil {
		return fmt.Errorf("%s: %w", args[0], err)
	}
	fmt.Fprintf(out, "%s: %d bytes in %d segments, %#08x..%#08x\n",
		args[0], info.Size, info.Segments, info.Low, info.High)
	return nil
}

func runErase(args []string) error {
	fs := flag.NewFlagSet("erase", flag.ContinueOnError)
	port := fs.String("port", "", "programming port of the board")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *port == "" {
		return fmt.Errorf("%w: erase needs -port", errUsage)
	}
	return hostserial.Touch1200(hostserial.OpenPort, *port)
}

func runMonitor(args []string, out io.Writer) error {
	fs := flag.NewFlagSet("monitor", flag.ContinueOnError)
	profilesPath := fs.String("profiles", "", "YAML file with serial profiles")
	profileName := fs.String("profile", "console", "profile to use from -profiles")
	port := fs.String("port", "", "serial port (overrides the profile)")
	baud := fs.Uint("baud", 0, "baud rate (overrides the profile)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	profile := hostserial.Profile{Port: *port, Baud: uint32(*baud), DataBits: 8, Parity: "none", StopBits: 1}
	if *profilesPath != "" {
		p, err := loadProfile(*profilesPath, *profileName)
		if err != nil {
			return err
		}
		if *port != "" {
			p.Port = *port
		}
		if *baud != 0 {
			p.Baud = uint32(*baud)
		}
		profile = p
	}
	if profile.Baud == 0 {
		profile.Baud = machine.DefaultBaudRate
	}
	if err := profile.Validate(); err != nil {
		return err
	}

	p, err := hostserial.OpenPort(profile.Port, profile.Mode())
	if err != nil {
		return fmt.Errorf("open %s: %w", profile.Port, err)
	}
	hostserial.LogInfo(hostserial.ComponentMonitor, "connected", "port", profile.Port, "baud", profile.Baud)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	m := &hostserial.Monitor{Port: p, Out: out, Mode: *profile.Mode()}
	return m.Run(ctx, os.Stdin)
}

func loadProfile(path, name string) (hostserial.Profile, error) {
	f, err := os.Open(path)
	if err != nil {
		return hostserial.Profile{}, err
	}
	defer f.Close()

	profiles, err := hostserial.LoadProfiles(f)
	if err != nil {
		return hostserial.Profile{}, fmt.Errorf("%s: %w", path, err)
	}
	return profiles.Get(name)
}

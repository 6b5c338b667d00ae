package hostserial

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"go.bug.st/serial"
	"gopkg.in/yaml.v2"

	"github.com/hwstl/hwstl/src/machine"
)

// Profile is the host side of a serial link to a board: which port, and the
// line settings the firmware was configured with.
//
//	profiles:
//	  console:
//	    port: /dev/ttyACM0
//	    baud: 115200
//	    parity: none
type Profile struct {
	Port     string  `yaml:"port"`
	Baud     uint32  `yaml:"baud"`
	DataBits int     `yaml:"data_bits"`
	Parity   string  `yaml:"parity"`
	StopBits float64 `yaml:"stop_bits"`
}

type profileFile struct {
	Profiles map[string]Profile `yaml:"profiles"`
}

// Profiles is a set of named profiles.
type Profiles map[string]Profile

// LoadProfiles decodes a profile file. Unknown keys are errors, and every
// profile is validated.
func LoadProfiles(r io.Reader) (Profiles, error) {
	var f profileFile
	dec := yaml.NewDecoder(r)
	dec.SetStrict(true)
	if err := dec.Decode(&f); err != nil && err != io.EOF {
		return nil, fmt.Errorf("decode profiles: %w", err)
	}

	profiles := make(Profiles, len(f.Profiles))
	for name, p := range f.Profiles {
		p = p.withDefaults()
		if err := p.Validate(); err != nil {
			return nil, fmt.Errorf("profile %q: %w", name, err)
		}
		profiles[name] = p
	}
	LogDebug(ComponentProfile, "loaded profiles", "count", len(profiles))
	return profiles, nil
}

// Get returns the named profile.
func (ps Profiles) Get(name string) (Profile, error) {
	p, ok := ps[name]
	if !ok {
		return Profile{}, fmt.Errorf("%w %q", ErrUnknownProfile, name)
	}
	return p, nil
}

// Names returns the profile names in order.
func (ps Profiles) Names() []string {
	names := make([]string, 0, len(ps))
	for name := range ps {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (p Profile) withDefaults() Profile {
	if p.Baud == 0 {
		p.Baud = machine.DefaultBaudRate
	}
	if p.DataBits == 0 {
		p.DataBits = 8
	}
	if p.Parity == "" {
		p.Parity = "none"
	}
	if p.StopBits == 0 {
		p.StopBits = 1
	}
	return p
}

var parities = map[string]serial.Parity{
	"none":  serial.NoParity,
	"odd":   serial.OddParity,
	"even":  serial.EvenParity,
	"mark":  serial.MarkParity,
	"space": serial.SpaceParity,
}

// Validate checks that the board can run the profile: the baud rate has to be
// generatable without error, and the framing has to exist on the USART.
func (p Profile) Validate() error {
	if p.Port == "" {
		return ErrNoPort
	}
	if p.Baud == 0 || !machine.IsValidBaudRate(p.Baud) {
		return fmt.Errorf("%w: %d", ErrInexactBaud, p.Baud)
	}
	if _, ok := machine.CharacterBits(p.DataBits); !ok {
		return fmt.Errorf("%w: %d", ErrDataBits, p.DataBits)
	}
	if _, ok := parities[strings.ToLower(p.Parity)]; !ok {
		return fmt.Errorf("%w %q", ErrParity, p.Parity)
	}
	if _, ok := stopBits(p.StopBits); !ok {
		return fmt.Errorf("%w: %v", ErrStopBits, p.StopBits)
	}
	return nil
}

func stopBits(n float64) (serial.StopBits, bool) {
	switch n {
	case 1:
		return serial.OneStopBit, true
	case 1.5:
		return serial.OnePointFiveStopBits, true
	case 2:
		return serial.TwoStopBits, true
	}
	return 0, false
}

// Mode returns the port settings of a validated profile.
func (p Profile) Mode() *serial.Mode {
	stop, _ := stopBits(p.StopBits)
	return &serial.Mode{
		BaudRate: int(p.Baud),
		DataBits: p.DataBits,
		Parity:   parities[strings.ToLower(p.Parity)],
		StopBits: stop,
	}
}

// USARTConfig returns the firmware configuration matching the profile.
func (p Profile) USARTConfig() machine.USARTConfig {
	chrl, _ := machine.CharacterBits(p.DataBits)
	config := machine.USARTConfig{
		BaudRate:        p.Baud,
		CharacterLength: chrl,
		Parity:          machine.ParityNone,
	}
	switch strings.ToLower(p.Parity) {
	case "odd":
		config.Parity = machine.ParityOdd
	case "even":
		config.Parity = machine.ParityEven
	case "mark":
		config.Parity = machine.ParityMark
	case "space":
		config.Parity = machine.ParitySpace
	}
	switch p.StopBits {
	case 1.5:
		config.StopBits = machine.StopBitsOneAndHalf
	case 2:
		config.StopBits = machine.StopBitsTwo
	}
	return config
}

package machine

// PinID is satisfied only by the zero-size board pin markers PinD0 to PinD20,
// so a Digital handle for a pin the board does not expose cannot be written.
type PinID interface {
	~struct{}
	pin() Pin
}

// Board pin markers.
type (
	PinD0  struct{}
	PinD1  struct{}
	PinD2  struct{}
	PinD3  struct{}
	PinD4  struct{}
	PinD5  struct{}
	PinD6  struct{}
	PinD7  struct{}
	PinD8  struct{}
	PinD9  struct{}
	PinD10 struct{}
	PinD11 struct{}
	PinD12 struct{}
	PinD13 struct{}
	PinD14 struct{}
	PinD15 struct{}
	PinD16 struct{}
	PinD17 struct{}
	PinD18 struct{}
	PinD19 struct{}
	PinD20 struct{}
)

func (PinD0) pin() Pin  { return D0 }
func (PinD1) pin() Pin  { return D1 }
func (PinD2) pin() Pin  { return D2 }
func (PinD3) pin() Pin  { return D3 }
func (PinD4) pin() Pin  { return D4 }
func (PinD5) pin() Pin  { return D5 }
func (PinD6) pin() Pin  { return D6 }
func (PinD7) pin() Pin  { return D7 }
func (PinD8) pin() Pin  { return D8 }
func (PinD9) pin() Pin  { return D9 }
func (PinD10) pin() Pin { return D10 }
func (PinD11) pin() Pin { return D11 }
func (PinD12) pin() Pin { return D12 }
func (PinD13) pin() Pin { return D13 }
func (PinD14) pin() Pin { return D14 }
func (PinD15) pin() Pin { return D15 }
func (PinD16) pin() Pin { return D16 }
func (PinD17) pin() Pin { return D17 }
func (PinD18) pin() Pin { return D18 }
func (PinD19) pin() Pin { return D19 }
func (PinD20) pin() Pin { return D20 }

// Digital is a stateless handle for one board pin. It has no fields; every
// operation resolves through the pin table using the pin named by P.
//
//	var led machine.Digital[machine.PinD13]
//	led.Configure(machine.PinConfig{Mode: machine.PinOutput})
//	led.High()
type Digital[P PinID] struct{}

// Pin returns the logical pin of the handle.
func (Digital[P]) Pin() Pin {
	var id P
	return id.pin()
}

// Configure configures the pin.
func (d Digital[P]) Configure(config PinConfig) { d.Pin().Configure(config) }

// Set drives the pin to value. The pin must be configured as output.
func (d Digital[P]) Set(value bool) { d.Pin().Set(value) }

// High drives the pin high.
func (d Digital[P]) High() { d.Pin().Set(true) }

// Low drives the pin low.
func (d Digital[P]) Low() { d.Pin().Set(false) }

// Toggle inverts the driven level.
func (d Digital[P]) Toggle() { d.Pin().Toggle() }

// Get reads the level of the pin.
func (d Digital[P]) Get() bool { return d.Pin().Get() }

// EnablePullup turns the pull-up on.
func (d Digital[P]) EnablePullup() { d.Pin().EnablePullup() }

// DisablePullup turns the pull-up off.
func (d Digital[P]) DisablePullup() { d.Pin().DisablePullup() }

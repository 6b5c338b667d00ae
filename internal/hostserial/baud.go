package hostserial

import "github.com/hwstl/hwstl/src/machine"

// BaudPlan describes how a board generates a baud rate from its master
// clock.
type BaudPlan struct {
	MasterClock uint32
	Baud        uint32

	// Exact is true when Baud is a multiple of 16.
	Exact bool

	// Divider is the BRGR.CD value; 0 when the rate is out of reach.
	Divider uint32

	// Actual is the rate the divider produces.
	Actual uint32

	// ErrorPermille is (Actual-Baud)/Baud in thousandths.
	ErrorPermille int32

	// Prescaler selects MasterClock from the main clock, when it can.
	Prescaler   machine.Prescaler
	PrescalerOK bool
}

// PlanBaud works out the divider for baud at mck with the same arithmetic the
// firmware uses.
func PlanBaud(mck, baud uint32) BaudPlan {
	plan := BaudPlan{
		MasterClock: mck,
		Baud:        baud,
		Exact:       baud != 0 && machine.IsValidBaudRate(baud),
	}
	plan.Prescaler, plan.PrescalerOK = machine.FrequencyToPrescaler(mck)
	if baud == 0 {
		return plan
	}

	cd := machine.BaudDivider(mck, baud)
	if cd == 0 || cd > 0xFFFF {
		return plan
	}
	plan.Divider = cd
	plan.Actual = mck / (16 * cd)
	plan.ErrorPermille = int32((int64(plan.Actual) - int64(baud)) * 1000 / int64(baud))
	return plan
}

// Usable reports whether the generator can be programmed for the plan.
func (p BaudPlan) Usable() bool { return p.Divider != 0 }

package sam

// Clock tree settings for an 84 MHz master clock from the 12 MHz crystal:
// PLLA = 12 MHz * (MULA+1) / DIVA = 168 MHz, MCK = PLLA / 2.
const (
	_PLLA_MULA      = 13
	_PLLA_DIVA      = 1
	_PLLA_COUNT     = 0x3f
	_MOSC_STARTUP   = 0x8
	_FLASH_WAIT     = 4
	MasterClockRate = 84000000
)

// SetFlashWaitStates programs both flash controllers with the given number of
// wait states. Must be raised before the master clock goes above the limit of
// the current setting.
func SetFlashWaitStates(fws uint32) {
	EFC0.FMR.Set(fws << EEFC_FMR_FWS_Pos)
	EFC1.FMR.Set(fws << EEFC_FMR_FWS_Pos)
}

// DisableWatchdog stops the watchdog. WDT_MR is write-once after reset, so
// this has effect only as the first write.
func DisableWatchdog() {
	WDT.MR.Set(WDT_MR_WDDIS)
}

// SystemInit brings the master clock from the reset RC oscillator up to
// MasterClockRate. The steps follow the sequence in the PMC chapter of the
// datasheet; each waits on the PMC status bit announcing that the previous
// clock source is stable.
func SystemInit() {
	SetFlashWaitStates(_FLASH_WAIT)
	DisableWatchdog()

	// Start the crystal oscillator, keep the RC oscillator running.
	if !PMC.CKGR_MOR.HasBits(CKGR_MOR_MOSCSEL) {
		PMC.CKGR_MOR.Set(CKGR_MOR_KEY | _MOSC_STARTUP<<CKGR_MOR_MOSCXTST_Pos | CKGR_MOR_MOSCRCEN | CKGR_MOR_MOSCXTEN)
		for !PMC.SR.HasBits(PMC_SR_MOSCXTS) {
		}
	}

	// Switch the main clock to the crystal.
	PMC.CKGR_MOR.Set(CKGR_MOR_KEY | _MOSC_STARTUP<<CKGR_MOR_MOSCXTST_Pos | CKGR_MOR_MOSCRCEN | CKGR_MOR_MOSCXTEN | CKGR_MOR_MOSCSEL)
	for !PMC.SR.HasBits(PMC_SR_MOSCSELS) {
	}

	PMC.MCKR.Set(PMC.MCKR.Get()&^PMC_MCKR_CSS_Msk | PMC_MCKR_CSS_MAIN_CLK)
	for !PMC.SR.HasBits(PMC_SR_MCKRDY) {
	}

	// Lock PLLA.
	PMC.CKGR_PLLAR.Set(CKGR_PLLAR_ONE | _PLLA_MULA<<CKGR_PLLAR_MULA_Pos | _PLLA_COUNT<<CKGR_PLLAR_PLLACOUNT_Pos | _PLLA_DIVA<<CKGR_PLLAR_DIVA_Pos)
	for !PMC.SR.HasBits(PMC_SR_LOCKA) {
	}

	// Prescaler first, then source.
	PMC.MCKR.Set(PMC_MCKR_PRES_CLK_2 | PMC_MCKR_CSS_MAIN_CLK)
	for !PMC.SR.HasBits(PMC_SR_MCKRDY) {
	}

	PMC.MCKR.Set(PMC_MCKR_PRES_CLK_2 | PMC_MCKR_CSS_PLLA_CLK)
	for !PMC.SR.HasBits(PMC_SR_MCKRDY) {
	}
}

// EnablePeripheralClocks ungates the peripheral clocks in mask (PCER0 bit
// positions, peripheral identifiers below 32).
func EnablePeripheralClocks(mask uint32) {
	PMC.PCER0.Set(mask)
}

// DisablePeripheralClocks gates off the peripheral clocks in mask.
func DisablePeripheralClocks(mask uint32) {
	PMC.PCDR0.Set(mask)
}

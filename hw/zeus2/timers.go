package zeus2

// fifoReady signals the host that the FIFO can take more words.
func (z *Zeus2) fifoReady() {
	z.IRQ.Assert()
}

// displayIRQ starts the simulated vblank and schedules its end.
func (z *Zeus2) displayIRQ() {
	z.VBlank.Assert()
	z.vblankOffTimer.Adjust(z.screen.TimeUntilVBlankEnd())
}

func (z *Zeus2) displayIRQOff() {
	z.VBlank.Clear()
	z.vblankTimer.Adjust(z.screen.TimeUntilVBlankStart())
}

package emu

// Feeder sequences LineBuffer read addresses and the Shifter reload
// strobe. It owns the fetch cursor: a 4-bit pixel counter, a 9-bit
// word address, and the registered reload strobe.
//
// The reload strobe is an OR of counter taps gated by the depth:
// hctr[0] at Depth8, hctr[1:0]=11 at Depth4, hctr[2:0]=111 at Depth2,
// and hctr=1111 in every mode. Equivalently: the strobe fires on the
// last pixel of each word.
//
// While the scanline is inactive the outputs are forced (load high,
// address zero) so the Shifter reloads word 0 on every edge. The
// internal address register sits at 1 the whole time, which is why
// the first active cycle already presents address 1: word 0 is in
// the Shifter, word 1 is on the read port.
type Feeder struct {
	hctr        uint8  // pixel position within the current word group, 4-bit
	addr        uint16 // word address register, 9-bit
	loadPending bool   // reload strobe as of the last edge
}

// Outputs returns the combinational feeder outputs for the current
// cycle: the reload strobe and the LineBuffer read address.
func (f *Feeder) Outputs(active bool, mode DisplayMode) (load bool, addr uint16) {
	if !active {
		return true, 0
	}
	last := uint8(mode.PixelsPerWord() - 1)
	return f.hctr&last == last, f.addr & 0x1FF
}

// Step commits the feeder state for one dot clock. The address
// register advances by one on every edge where the load output was
// asserted, so a new address is presented one cycle after each
// reload. All inputs are pre-edge values.
func (f *Feeder) Step(active bool, mode DisplayMode) {
	load, addr := f.Outputs(active, mode)

	f.addr = (addr + b2w(load)) & 0x1FF
	if active {
		f.hctr = (f.hctr + 1) & 0x0F
	} else {
		f.hctr = 0
	}
	f.loadPending = load
}

// Hctr returns the 4-bit pixel counter.
func (f *Feeder) Hctr() uint8 { return f.hctr }

// LoadPending returns the reload strobe registered on the last edge.
func (f *Feeder) LoadPending() bool { return f.loadPending }

// Reset returns the cursor to its power-on state, matching an
// indefinite run of inactive cycles.
func (f *Feeder) Reset() {
	f.hctr = 0
	f.addr = 1
	f.loadPending = true
}

// b2w converts a bool to a uint16 0/1.
func b2w(b bool) uint16 {
	if b {
		return 1
	}
	return 0
}

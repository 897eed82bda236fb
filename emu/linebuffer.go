package emu

// lineBufferWords is the per-bank capacity. The Feeder addresses 9
// bits, so a full bank covers the address space and fetch counts up
// to 512 words never alias.
const lineBufferWords = 512

// LineBuffer is the scanline ping-pong store between the fetch engine
// and the Shifter: two independent banks of PixelWords. The odd
// selector picks the display (read) bank; the other bank is the fill
// (write) side. The VDC swaps the selector at every scanline
// boundary, so a line written while vfen is set is displayed on the
// following scanline.
type LineBuffer struct {
	banks [2][lineBufferWords]uint16
	odd   uint8
}

// ReadDisplay returns the word at addr in the display bank. The read
// is combinational: address in, data out in the same cycle.
func (lb *LineBuffer) ReadDisplay(addr uint16) uint16 {
	return lb.banks[lb.odd][addr&(lineBufferWords-1)]
}

// WriteFill stores a word into the fill bank. The display bank is
// never disturbed by fill writes.
func (lb *LineBuffer) WriteFill(addr uint16, word uint16) {
	lb.banks[lb.odd^1][addr&(lineBufferWords-1)] = word
}

// Swap exchanges the display and fill banks.
func (lb *LineBuffer) Swap() {
	lb.odd ^= 1
}

// Odd returns the current display bank selector.
func (lb *LineBuffer) Odd() uint8 {
	return lb.odd
}

// Reset clears both banks and the selector.
func (lb *LineBuffer) Reset() {
	lb.banks[0] = [lineBufferWords]uint16{}
	lb.banks[1] = [lineBufferWords]uint16{}
	lb.odd = 0
}

package emu

// DisplayMode selects the pixel depth the VDC serializes at. The
// hardware drives four mutually exclusive shift-select lines; the
// enum keeps the illegal combinations (none or several lines active)
// unrepresentable. Register writes that are not exactly one-hot are
// discarded at the register file, see VDC.writeRegister.
type DisplayMode uint8

const (
	Depth1 DisplayMode = iota // 1 bpp, 16 pixels per word
	Depth2                    // 2 bpp, 8 pixels per word
	Depth4                    // 4 bpp, 4 pixels per word
	Depth8                    // 8 bpp, 2 pixels per word
)

// Bits returns the number of bits one pixel occupies in this mode.
func (m DisplayMode) Bits() int {
	return 1 << m
}

// PixelsPerWord returns how many pixels one 16-bit word carries.
func (m DisplayMode) PixelsPerWord() int {
	return 16 >> m
}

func (m DisplayMode) String() string {
	switch m {
	case Depth1:
		return "1bpp"
	case Depth2:
		return "2bpp"
	case Depth4:
		return "4bpp"
	case Depth8:
		return "8bpp"
	}
	return "invalid"
}

// decodeMode maps the one-hot mode register value onto a DisplayMode.
// The low four bits are the shift-select lines (bit 0 = 1bpp through
// bit 3 = 8bpp). Exactly one line must be active.
func decodeMode(data uint8) (DisplayMode, bool) {
	switch data & 0x0F {
	case 0x01:
		return Depth1, true
	case 0x02:
		return Depth2, true
	case 0x04:
		return Depth4, true
	case 0x08:
		return Depth8, true
	}
	return Depth1, false
}

// ShiftRegister is the 16-bit pixel serializer register. It either
// reloads from a full PixelWord or shifts left by the pixel depth,
// filling with zeros. Bits shifted out are discarded.
type ShiftRegister struct {
	bits uint16
}

// Load replaces the register content with a PixelWord.
func (s *ShiftRegister) Load(word uint16) {
	s.bits = word
}

// Shift moves the register left by the mode's pixel depth, zero fill.
func (s *ShiftRegister) Shift(mode DisplayMode) {
	s.bits <<= uint(mode.Bits())
}

// Value returns the current register content.
func (s *ShiftRegister) Value() uint16 {
	return s.bits
}

// Top extracts the leftmost pixel: the top depth bits of the register,
// right-padded with zeros to 8 bits. At Depth8 this is the high byte;
// at Depth1 the MSB lands in bit 7.
func (s *ShiftRegister) Top(mode DisplayMode) uint8 {
	n := uint(mode.Bits())
	return uint8(s.bits>>(16-n)) << (8 - n)
}

// Shifter couples the ShiftRegister to the reload strobe from the
// Feeder. Each dot clock it either latches the word presented by the
// LineBuffer read port or advances the serializer by one pixel.
type Shifter struct {
	sr ShiftRegister
}

// Step advances the shifter by one dot clock. When load is set the
// register latches word (the reload strobe wins over shifting);
// otherwise the register shifts by the mode's depth.
func (s *Shifter) Step(load bool, word uint16, mode DisplayMode) {
	if load {
		s.sr.Load(word)
		return
	}
	s.sr.Shift(mode)
}

// ColorIndex returns the palette index for the current dot: the
// leftmost pixel of the register, XORed with indexXor. The XOR is
// applied unconditionally, including to index 0. The value reflects
// the register content before this cycle's shift or load commits.
func (s *Shifter) ColorIndex(mode DisplayMode, indexXor uint8) uint8 {
	return s.sr.Top(mode) ^ indexXor
}

// Register returns the raw shift register content.
func (s *Shifter) Register() uint16 {
	return s.sr.Value()
}

// SetRegister overwrites the raw shift register content. Used by
// state restore.
func (s *Shifter) SetRegister(v uint16) {
	s.sr.bits = v
}

// Reset clears the shift register.
func (s *Shifter) Reset() {
	s.sr.bits = 0
}

package emu

// clutSize is the palette RAM size in bytes: 256 entries of 2 bytes.
const clutSize = 512

// CLUT is the color lookup table between the Shifter's palette index
// and the video DAC. Entries are big-endian 12-bit RGB444 words:
// high byte 0000RRRR, low byte GGGGBBBB. The host writes it one byte
// at a time through the data port.
type CLUT struct {
	ram [clutSize]uint8
}

// WriteByte stores one byte of palette RAM.
func (c *CLUT) WriteByte(addr uint16, val uint8) {
	c.ram[addr&(clutSize-1)] = val
}

// ReadByte returns one byte of palette RAM.
func (c *CLUT) ReadByte(addr uint16) uint8 {
	return c.ram[addr&(clutSize-1)]
}

// Color converts a palette index to 8-bit R, G, B values. The 4-bit
// DAC channels are scaled by bit replication so 0xF maps to 0xFF.
func (c *CLUT) Color(index uint8) (r, g, b uint8) {
	hi := c.ram[int(index)*2]
	lo := c.ram[int(index)*2+1]

	red := hi & 0x0F
	green := lo >> 4
	blue := lo & 0x0F

	r = red<<4 | red
	g = green<<4 | green
	b = blue<<4 | blue
	return
}

// Reset clears the palette RAM.
func (c *CLUT) Reset() {
	c.ram = [clutSize]uint8{}
}

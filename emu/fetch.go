package emu

// fetchLine bursts one scanline of pixel words out of VRAM into the
// LineBuffer write bank. Words sit big-endian in VRAM. The burst
// copies FetchCount words starting at the frame cursor into fill
// addresses 0..FetchCount-1, then advances the cursor so successive
// fetch lines walk VRAM linearly. Entries past FetchCount keep
// whatever the bank held two scanlines ago.
func (v *VDC) fetchLine() {
	count := v.fetchCount()
	for i := 0; i < count; i++ {
		wordAddr := (v.cursor + uint32(i)) & fetchAddrMask
		byteAddr := wordAddr << 1
		word := uint16(v.vram[byteAddr])<<8 | uint16(v.vram[byteAddr+1])
		v.lb.WriteFill(uint16(i), word)
	}
	v.cursor = (v.cursor + uint32(count)) & fetchAddrMask
}

package emu

import "image"

const (
	ScreenWidth     = 640
	MaxScreenHeight = 480
)

const (
	vramSize      = 0x80000 // 512KB video DRAM
	vramAddrMask  = vramSize - 1
	fetchAddrMask = vramSize/2 - 1 // 18-bit word addresses

	// Bound for one scanline of dot clocks. HTotal can be moved below
	// the current dot position mid-line; the counter then has to walk
	// the full 10-bit space before it can match again.
	maxDotsPerLine = 2048
)

// Register file indices. 10-bit timing values are split across a
// lo/hi byte pair with the hi byte masked to 2 bits.
const (
	regHTotalLo     = 0
	regHTotalHi     = 1
	regVTotalLo     = 2
	regVTotalHi     = 3
	regHSyncLo      = 4
	regHSyncHi      = 5
	regVSyncLo      = 6
	regVSyncHi      = 7
	regHVisStartLo  = 8
	regHVisStartHi  = 9
	regHVisEndLo    = 10
	regHVisEndHi    = 11
	regVVisStartLo  = 12
	regVVisStartHi  = 13
	regVVisEndLo    = 14
	regVVisEndHi    = 15
	regMode         = 16
	regIndexXor     = 17
	regFetchCountLo = 18
	regFetchCountHi = 19
	regVideoBaseLo  = 20
	regVideoBaseMid = 21
	regVideoBaseHi  = 22
	regVRAMBank     = 23
	regControl      = 24
	regCount        = 25
)

// Control register bits.
const (
	ctrlDisplayEnable = 0x01
	ctrlVsyncIRQ      = 0x02
)

// Status byte bits.
const (
	statusVsyncPending = 0x80
	statusVFen         = 0x40
	statusVDen         = 0x20
)

// Control port target codes, bits 7:6 of the second latch byte.
const (
	codeVRAMRead  = 0
	codeVRAMWrite = 1
	codeRegister  = 2
	codeCLUT      = 3
)

// VDC is the VDU-1 video display controller: a bitmapped raster
// generator built from the CRTC, Feeder, Shifter and LineBuffer,
// with 512KB of video DRAM and a 256-entry CLUT.
//
// Host interface (two Z80 ports):
//
//	data port     read/write at the current address, auto-increment
//	control port  write: two-byte latch. First byte = address low.
//	              Second byte = code in bits 7:6, address high in 5:0.
//	                code 0  VRAM read setup (prefills the read buffer)
//	                code 1  VRAM write setup
//	                code 2  register write (first byte = value,
//	                        second byte bits 5:0 = register index)
//	                code 3  CLUT write setup (address bit 8 in bit 0)
//	              read: status byte; clears vsync pending and the
//	              write latch, deasserts the interrupt line.
//
// VRAM setup addresses are 14 bits; the VRAMBank register supplies
// bits 18:14 at setup time and the auto-increment carries through
// the full 19-bit byte address.
type VDC struct {
	crtc    CRTC
	feeder  Feeder
	shifter Shifter
	lb      LineBuffer
	clut    CLUT

	vram [vramSize]uint8

	regs [regCount]uint8
	mode DisplayMode // decoded from regMode, always a legal depth

	// Control port state machine
	writePending bool
	addrLatch    uint8
	code         uint8
	address      uint32
	readBuffer   uint8

	// Status and interrupt plumbing
	vsyncPending bool
	statusRead   bool // status was read since the last poll
	irqCheck     bool // a write may have changed the INT level
	prevVsync    bool

	// Fetch engine frame cursor, 18-bit word address
	cursor uint32

	framebuffer *image.RGBA
}

// NewVDC creates a VDC in its power-on state: timing core reset, all
// registers zero, display and interrupt disabled.
func NewVDC() *VDC {
	v := &VDC{
		mode:        Depth1,
		framebuffer: image.NewRGBA(image.Rect(0, 0, ScreenWidth, MaxScreenHeight)),
	}
	v.Reset()
	return v
}

// Reset drives the chip reset line: counters, enable latches, the
// fetch cursor and the port latch all clear. Registers, VRAM and the
// CLUT are left alone, as on the real part.
func (v *VDC) Reset() {
	v.crtc.Reset()
	v.feeder.Reset()
	v.shifter.Reset()
	v.lb.Reset()
	v.writePending = false
	v.code = 0
	v.address = 0
	v.readBuffer = 0
	v.vsyncPending = false
	v.statusRead = false
	v.irqCheck = false
	v.prevVsync = false
	v.cursor = 0
}

// --- Register helpers ---

func (v *VDC) reg10(lo int) uint16 {
	return uint16(v.regs[lo]) | uint16(v.regs[lo+1]&0x03)<<8
}

func (v *VDC) setReg10(lo int, val uint16) {
	v.regs[lo] = uint8(val)
	v.regs[lo+1] = uint8(val>>8) & 0x03
}

func (v *VDC) displayEnabled() bool {
	return v.regs[regControl]&ctrlDisplayEnable != 0
}

func (v *VDC) vsyncIRQEnabled() bool {
	return v.regs[regControl]&ctrlVsyncIRQ != 0
}

func (v *VDC) indexXor() uint8 {
	return v.regs[regIndexXor]
}

func (v *VDC) fetchCount() int {
	return int(v.regs[regFetchCountLo]) | int(v.regs[regFetchCountHi]&0x01)<<8
}

func (v *VDC) videoBase() uint32 {
	return uint32(v.regs[regVideoBaseLo]) |
		uint32(v.regs[regVideoBaseMid])<<8 |
		uint32(v.regs[regVideoBaseHi]&0x03)<<16
}

func (v *VDC) vramBank() uint32 {
	return uint32(v.regs[regVRAMBank])
}

func (v *VDC) rasterConfig() RasterConfig {
	return RasterConfig{
		HTotal:     v.reg10(regHTotalLo),
		VTotal:     v.reg10(regVTotalLo),
		HSyncStart: v.reg10(regHSyncLo),
		VSyncStart: v.reg10(regVSyncLo),
		HVisStart:  v.reg10(regHVisStartLo),
		HVisEnd:    v.reg10(regHVisEndLo),
		VVisStart:  v.reg10(regVVisStartLo),
		VVisEnd:    v.reg10(regVVisEndLo),
	}
}

// Mode returns the active display mode.
func (v *VDC) Mode() DisplayMode {
	return v.mode
}

// DisplayPreset is a full raster programming, applied at power-on
// from the region tables.
type DisplayPreset struct {
	Raster     RasterConfig
	Mode       DisplayMode
	FetchCount uint16
}

// LoadPreset programs the timing registers from a preset. Control is
// not touched: the display stays off until the program enables it.
func (v *VDC) LoadPreset(p DisplayPreset) {
	v.setReg10(regHTotalLo, p.Raster.HTotal)
	v.setReg10(regVTotalLo, p.Raster.VTotal)
	v.setReg10(regHSyncLo, p.Raster.HSyncStart)
	v.setReg10(regVSyncLo, p.Raster.VSyncStart)
	v.setReg10(regHVisStartLo, p.Raster.HVisStart)
	v.setReg10(regHVisEndLo, p.Raster.HVisEnd)
	v.setReg10(regVVisStartLo, p.Raster.VVisStart)
	v.setReg10(regVVisEndLo, p.Raster.VVisEnd)
	v.writeRegister(regMode, 1<<p.Mode)
	v.regs[regFetchCountLo] = uint8(p.FetchCount)
	v.regs[regFetchCountHi] = uint8(p.FetchCount>>8) & 0x01
}

// writeRegister writes a value into the register file. Mode writes
// must be exactly one-hot; anything else leaves the depth unchanged.
func (v *VDC) writeRegister(reg uint8, data uint8) {
	if reg >= regCount {
		return
	}
	if reg == regMode {
		if m, ok := decodeMode(data); ok {
			v.mode = m
			v.regs[regMode] = data
		}
		return
	}
	v.regs[reg] = data
	if reg == regControl {
		// INT is the AND of vsync pending and the enable bit; any
		// control write can move the line in either direction.
		v.irqCheck = true
	}
}

// --- Host ports ---

// WriteControl handles a control port write: the first byte latches,
// the second byte dispatches on its code bits.
func (v *VDC) WriteControl(val uint8) {
	if !v.writePending {
		v.addrLatch = val
		v.writePending = true
		return
	}
	v.writePending = false

	switch val >> 6 {
	case codeVRAMRead:
		v.code = codeVRAMRead
		v.address = v.vramSetupAddress(val)
		v.readBuffer = v.vram[v.address]
		v.address = (v.address + 1) & vramAddrMask
	case codeVRAMWrite:
		v.code = codeVRAMWrite
		v.address = v.vramSetupAddress(val)
	case codeRegister:
		v.writeRegister(val&0x3F, v.addrLatch)
	case codeCLUT:
		v.code = codeCLUT
		v.address = uint32(v.addrLatch) | uint32(val&0x01)<<8
	}
}

// vramSetupAddress combines the latched low byte, the high bits from
// the second control byte and the bank register into a VRAM byte
// address.
func (v *VDC) vramSetupAddress(val uint8) uint32 {
	low := uint32(v.addrLatch) | uint32(val&0x3F)<<8
	return (v.vramBank()<<14 | low) & vramAddrMask
}

// ReadStatus returns the status byte. Reading acknowledges the vsync
// interrupt and resets the control port latch.
func (v *VDC) ReadStatus() uint8 {
	var st uint8
	if v.vsyncPending {
		st |= statusVsyncPending
	}
	if v.crtc.VFen() {
		st |= statusVFen
	}
	if v.crtc.VDen() {
		st |= statusVDen
	}

	v.vsyncPending = false
	v.writePending = false
	v.statusRead = true
	return st
}

// WriteData writes one byte at the current address and increments.
// Register writes have no data port phase; both VRAM codes route
// writes into VRAM.
func (v *VDC) WriteData(val uint8) {
	v.writePending = false
	switch v.code {
	case codeCLUT:
		v.clut.WriteByte(uint16(v.address), val)
		v.address = (v.address + 1) & (clutSize - 1)
	default:
		v.vram[v.address] = val
		v.address = (v.address + 1) & vramAddrMask
	}
}

// ReadData reads one byte at the current address and increments.
// VRAM reads are buffered: the returned byte comes from the buffer
// filled at setup or by the previous read.
func (v *VDC) ReadData() uint8 {
	v.writePending = false
	switch v.code {
	case codeCLUT:
		b := v.clut.ReadByte(uint16(v.address))
		v.address = (v.address + 1) & (clutSize - 1)
		return b
	default:
		b := v.readBuffer
		v.readBuffer = v.vram[v.address]
		v.address = (v.address + 1) & vramAddrMask
		return b
	}
}

// --- Interrupt plumbing ---

// InterruptPending reports the level of the INT output: vsync pending
// gated by the enable bit.
func (v *VDC) InterruptPending() bool {
	return v.vsyncPending && v.vsyncIRQEnabled()
}

// InterruptCheckRequired returns and clears the flag set by writes
// that may have moved the INT line.
func (v *VDC) InterruptCheckRequired() bool {
	r := v.irqCheck
	v.irqCheck = false
	return r
}

// StatusWasRead returns and clears the status-read flag. A status
// read acknowledges the interrupt, so the caller must re-evaluate
// the INT line.
func (v *VDC) StatusWasRead() bool {
	r := v.statusRead
	v.statusRead = false
	return r
}

// --- Dot clock ---

// step advances the whole chip by one dot clock. Every component
// transition is computed from pre-edge state: the feeder outputs and
// the LineBuffer word are sampled before any register commits, and
// the rendered dot reflects the shift register before this edge's
// shift or load.
func (v *VDC) step() (lineEnd, frameEnd bool) {
	cfg := v.rasterConfig()

	active := v.displayEnabled() && v.crtc.DisplayActive()
	load, fadr := v.feeder.Outputs(active, v.mode)
	word := v.lb.ReadDisplay(fadr)

	v.renderDot(cfg)

	finishedLine := v.crtc.Y()
	v.shifter.Step(load, word, v.mode)
	v.feeder.Step(active, v.mode)
	lineEnd, frameEnd = v.crtc.Step(cfg, false)

	if lineEnd {
		v.endScanline(cfg, finishedLine, frameEnd)
	}

	vs := v.crtc.VSync(cfg)
	if vs && !v.prevVsync {
		v.vsyncPending = true
		v.irqCheck = true
	}
	v.prevVsync = vs
	return lineEnd, frameEnd
}

// endScanline runs the per-line work that hangs off the boundary
// edge: bank swap, frame cursor reload, and the fill burst for the
// scanline that just began when its fetch window is open.
func (v *VDC) endScanline(cfg RasterConfig, finishedLine uint16, frameEnd bool) {
	if !v.displayEnabled() {
		v.blankLine(cfg, finishedLine)
	}

	v.lb.Swap()
	if frameEnd {
		v.cursor = v.videoBase() & fetchAddrMask
	}
	if v.crtc.VFen() {
		v.fetchLine()
	}
}

// StepScanline advances the chip through dot clocks until the
// horizontal counter wraps, rendering visible dots along the way.
// Returns true when the completed scanline also ended the frame.
func (v *VDC) StepScanline() bool {
	for i := 0; i < maxDotsPerLine; i++ {
		lineEnd, frameEnd := v.step()
		if lineEnd {
			return frameEnd
		}
	}
	return false
}

// GetFramebuffer returns raw RGBA pixel data for the current frame.
func (v *VDC) GetFramebuffer() []byte {
	return v.framebuffer.Pix
}

// GetStride returns the framebuffer stride in bytes per row.
func (v *VDC) GetStride() int {
	return v.framebuffer.Stride
}

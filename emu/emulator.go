package emu

import (
	emucore "github.com/user-none/eblitui/api"
	"github.com/user-none/go-chip-sn76489"
	"github.com/user-none/go-chip-z80"
)

// Core identity reported through the adapter layer.
const (
	Name    = "emvdu"
	Version = "0.1.0"
)

// Compile-time interface checks.
var _ emucore.Emulator = (*Emulator)(nil)
var _ emucore.SaveStater = (*Emulator)(nil)
var _ emucore.MemoryInspector = (*Emulator)(nil)
var _ emucore.MemoryMapper = (*Emulator)(nil)

// Flat address boundaries for ReadMemory.
const (
	workRAMStart = 0x000000
	workRAMEnd   = 0x007FFF
)

// Emulator contains fields shared by all platform implementations
type Emulator struct {
	cpu *z80.CPU
	bus *VDUBus
	vdc *VDC
	psg *sn76489.SN76489
	io  *IO

	cpuCyclesPerScanline int

	// Region timing
	region     Region
	autoRegion Region // region the core was created with, restored when forcing is off
	timing     RegionTiming
	scanlines  int

	// Pre-allocated audio buffer for external consumption
	audioBuffer []int16

	// Low-pass filter state (output RC filter, persists across frames)
	filterPrevL float64
	filterPrevR float64
}

// NewEmulator creates and initializes the shared emulator components.
func NewEmulator(rom []byte, region Region) (Emulator, error) {
	if err := ValidateImage(rom); err != nil {
		return Emulator{}, err
	}

	timing := GetTimingForRegion(region)

	vdc := NewVDC()
	vdc.LoadPreset(PresetForRegion(region))

	psg := sn76489.New(timing.CPUClockHz, sampleRate, psgBufferSize, sn76489.Sega)
	psg.SetGain(psgGain)
	io := NewIO()

	bus := NewVDUBus(StripHeader(rom), vdc, io, psg)
	cpu := z80.New(bus)

	return Emulator{
		cpu:                  cpu,
		bus:                  bus,
		vdc:                  vdc,
		psg:                  psg,
		io:                   io,
		cpuCyclesPerScanline: (timing.CPUClockHz / timing.FPS) / timing.Scanlines,
		region:               region,
		autoRegion:           region,
		timing:               timing,
		scanlines:            timing.Scanlines,
		audioBuffer:          make([]int16, 0, 2048),
	}, nil
}

// checkAndSetInterrupt drives the Z80 INT line from the VDC interrupt
// output. The line is level triggered and stays asserted until
// software acknowledges by reading the VDC status port.
func (e *Emulator) checkAndSetInterrupt() {
	e.cpu.INT(e.vdc.InterruptPending(), 0xFF)
}

// RunFrame executes one frame of emulation.
func (e *Emulator) RunFrame() {
	e.audioBuffer = e.audioBuffer[:0]
	e.psg.ResetBuffer()

	// The VDC decides when the frame ends. The loop bound covers
	// register programming that pushes the frame wrap out.
	maxLines := e.scanlines * 2
	for line := 0; line < maxLines; line++ {
		e.checkAndSetInterrupt()

		// Run the CPU for this scanline using budget-based execution
		budget := e.cpuCyclesPerScanline
		for budget > 0 {
			consumed := e.cpu.StepCycles(budget)
			if consumed == 0 {
				break // CPU halted
			}
			budget -= consumed

			// Control writes can gate the interrupt enable and a
			// status read acknowledges; both move the INT line
			// mid-scanline.
			if e.vdc.InterruptCheckRequired() || e.vdc.StatusWasRead() {
				e.checkAndSetInterrupt()
			}
		}

		// Generate audio for this scanline
		e.psg.Run(e.cpuCyclesPerScanline)

		frameEnd := e.vdc.StepScanline()
		e.checkAndSetInterrupt()
		if frameEnd {
			break
		}
	}

	e.mixAudio()
}

// SetInput unpacks a button bitmask and sets joystick state.
// The VDU-1 has a single joystick port; other players are ignored.
func (e *Emulator) SetInput(player int, buttons uint32) {
	if player != 0 {
		return
	}

	up := buttons&(1<<emucore.ButtonUp) != 0
	down := buttons&(1<<emucore.ButtonDown) != 0
	left := buttons&(1<<emucore.ButtonLeft) != 0
	right := buttons&(1<<emucore.ButtonRight) != 0
	btnA := buttons&(1<<4) != 0
	btnB := buttons&(1<<5) != 0
	start := buttons&(1<<7) != 0

	e.io.InputP1.Set(up, down, left, right, btnA, btnB, start)
}

// GetFramebuffer returns raw RGBA pixel data for current frame.
func (e *Emulator) GetFramebuffer() []byte {
	return e.vdc.GetFramebuffer()
}

// GetFramebufferStride returns the stride (bytes per row) of the framebuffer.
func (e *Emulator) GetFramebufferStride() int {
	return e.vdc.GetStride()
}

// GetActiveHeight returns the current active display height.
func (e *Emulator) GetActiveHeight() int {
	return e.vdc.ActiveHeight()
}

// GetRegion returns the emulator's region setting.
func (e *Emulator) GetRegion() Region {
	return e.region
}

// GetTiming returns FPS and scanline count for the current region.
func (e *Emulator) GetTiming() emucore.Timing {
	return emucore.Timing{
		FPS:       e.timing.FPS,
		Scanlines: e.timing.Scanlines,
	}
}

// SetRegion updates the emulator's region configuration and
// reprograms the display for the new refresh rate.
func (e *Emulator) SetRegion(region Region) {
	e.region = region
	e.timing = GetTimingForRegion(region)
	e.scanlines = e.timing.Scanlines
	e.cpuCyclesPerScanline = (e.timing.CPUClockHz / e.timing.FPS) / e.timing.Scanlines
	e.vdc.LoadPreset(PresetForRegion(region))
}

// ReadWorkRAM reads a single byte from work RAM.
func (e *Emulator) ReadWorkRAM(addr uint16) byte {
	return e.bus.ram[addr&(workRAMSize-1)]
}

// GetWorkRAM returns a copy of the work RAM.
func (e *Emulator) GetWorkRAM() []byte {
	out := make([]byte, workRAMSize)
	copy(out, e.bus.ram[:])
	return out
}

// SetWorkRAM writes data into the work RAM.
func (e *Emulator) SetWorkRAM(data []byte) {
	copy(e.bus.ram[:], data)
}

// Close releases any resources held by the emulator.
func (e *Emulator) Close() {}

// SetOption applies a core option change identified by key.
func (e *Emulator) SetOption(key string, value string) {
	switch key {
	case "force_50hz":
		want := e.autoRegion
		if value == "true" {
			want = RegionPAL
		}
		if want != e.region {
			e.SetRegion(want)
		}
	}
}

// ReadMemory reads from a flat address into buf and returns the number
// of bytes read.
func (e *Emulator) ReadMemory(addr uint32, buf []byte) uint32 {
	var count uint32
	for i := range buf {
		cur := addr + uint32(i)
		var b byte
		switch {
		case cur >= workRAMStart && cur <= workRAMEnd:
			b = e.ReadWorkRAM(uint16(cur - workRAMStart))
		default:
			return count
		}
		buf[i] = b
		count++
	}
	return count
}

// MemoryMap returns a list of available memory regions with sizes.
func (e *Emulator) MemoryMap() []emucore.MemoryRegion {
	return []emucore.MemoryRegion{
		{Type: emucore.MemorySystemRAM, Size: workRAMSize},
	}
}

// ReadRegion returns a copy of the specified memory region.
func (e *Emulator) ReadRegion(regionType int) []byte {
	switch regionType {
	case emucore.MemorySystemRAM:
		return e.GetWorkRAM()
	default:
		return nil
	}
}

// WriteRegion writes data to the specified memory region.
func (e *Emulator) WriteRegion(regionType int, data []byte) {
	switch regionType {
	case emucore.MemorySystemRAM:
		e.SetWorkRAM(data)
	}
}

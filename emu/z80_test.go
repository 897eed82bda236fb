package emu

import (
	"testing"

	"github.com/user-none/go-chip-z80"
)

// makeCPUBus builds a VDUBus whose ROM starts with the given code and
// pads the rest of the 32KB window with NOPs.
func makeCPUBus(code []byte) *VDUBus {
	rom := make([]byte, maxROMSize)
	copy(rom, code)
	return makeTestBus(rom)
}

func TestZ80_Creation(t *testing.T) {
	cpu := z80.New(makeCPUBus(nil))

	if cpu == nil {
		t.Fatal("z80.New returned nil")
	}
}

func TestZ80_StepReturnsCycles(t *testing.T) {
	cpu := z80.New(makeCPUBus(nil))

	// PC starts at 0 on an all-NOP ROM. NOP takes 4 T-states.
	cycles := cpu.Step()
	if cycles != 4 {
		t.Errorf("NOP should return 4 cycles, got %d", cycles)
	}
}

func TestZ80_PCAdvances(t *testing.T) {
	cpu := z80.New(makeCPUBus(nil))

	if cpu.Registers().PC != 0 {
		t.Errorf("initial PC should be 0, got 0x%04X", cpu.Registers().PC)
	}

	cpu.Step()
	if cpu.Registers().PC != 1 {
		t.Errorf("PC after NOP should be 1, got 0x%04X", cpu.Registers().PC)
	}
}

func TestZ80_LDImmediate(t *testing.T) {
	// LD A, 0x42
	cpu := z80.New(makeCPUBus([]byte{0x3E, 0x42}))

	cycles := cpu.Step()
	if cycles != 7 {
		t.Errorf("LD A,n should return 7 cycles, got %d", cycles)
	}

	// A is the high byte of AF
	a := uint8(cpu.Registers().AF >> 8)
	if a != 0x42 {
		t.Errorf("A register should be 0x42, got 0x%02X", a)
	}
}

func TestZ80_HaltBurnsCycles(t *testing.T) {
	cpu := z80.New(makeCPUBus([]byte{0x76}))

	cycles := cpu.Step()
	if cycles != 4 {
		t.Errorf("HALT should return 4 cycles, got %d", cycles)
	}

	cycles = cpu.Step()
	if cycles != 4 {
		t.Errorf("halted step should return 4 cycles, got %d", cycles)
	}

	if !cpu.Halted() {
		t.Error("CPU should be halted after executing HALT")
	}
}

func TestZ80_StoreToWorkRAM(t *testing.T) {
	// LD A, 0x5A; LD (0x8000), A
	bus := makeCPUBus([]byte{0x3E, 0x5A, 0x32, 0x00, 0x80})
	cpu := z80.New(bus)

	cpu.Step()
	cpu.Step()
	if val := bus.Read(0x8000); val != 0x5A {
		t.Errorf("expected 0x5A in work RAM, got 0x%02X", val)
	}
}

func TestZ80_OutProgramsVDC(t *testing.T) {
	// LD A, 0x5A; OUT (0x81), A; LD A, 0x91; OUT (0x81), A
	// The control port pair writes VDC register 17 (index xor).
	bus := makeCPUBus([]byte{0x3E, 0x5A, 0xD3, 0x81, 0x3E, 0x91, 0xD3, 0x81})
	cpu := z80.New(bus)

	for i := 0; i < 4; i++ {
		cpu.Step()
	}
	if got := bus.vdc.indexXor(); got != 0x5A {
		t.Errorf("expected 0x5A in the VDC register, got 0x%02X", got)
	}
}

func TestZ80_InReadsJoystick(t *testing.T) {
	// IN A, (0x00); LD (0x8000), A; HALT
	bus := makeCPUBus([]byte{0xDB, 0x00, 0x32, 0x00, 0x80, 0x76})
	cpu := z80.New(bus)
	bus.io.InputP1.Set(false, false, false, true, false, false, false)

	for i := 0; i < 3; i++ {
		cpu.Step()
	}
	// Right is bit 3, active low.
	if val := bus.Read(0x8000); val != 0xF7 {
		t.Errorf("expected 0xF7 from the joystick port, got 0x%02X", val)
	}
}

func TestZ80_InterruptIgnoredWithoutIFF1(t *testing.T) {
	cpu := z80.New(makeCPUBus(nil))

	// Assert INT with IM1 data. IFF1 is false after reset, so the
	// NOP at PC=0 executes normally.
	cpu.INT(true, 0xFF)
	cpu.Step()
	if cpu.Registers().PC != 1 {
		t.Errorf("INT with IFF1=false should not be serviced, PC expected 1, got 0x%04X",
			cpu.Registers().PC)
	}
	cpu.INT(false, 0)
}

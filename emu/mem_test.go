package emu

import (
	"hash/crc32"
	"testing"

	"github.com/user-none/go-chip-sn76489"
)

// makeTestBus creates a VDUBus around the given ROM image with a
// fresh VDC, IO and PSG attached.
func makeTestBus(rom []byte) *VDUBus {
	vdc := NewVDC()
	psg := sn76489.New(4000000, sampleRate, psgBufferSize, sn76489.Sega)
	io := NewIO()
	return NewVDUBus(rom, vdc, io, psg)
}

func TestVDUBus_ReadROM(t *testing.T) {
	rom := make([]byte, 1024)
	rom[0] = 0x76
	rom[0x3FF] = 0x5A
	bus := makeTestBus(rom)

	if val := bus.Read(0); val != 0x76 {
		t.Errorf("expected 0x76, got 0x%02X", val)
	}
	if val := bus.Read(0x3FF); val != 0x5A {
		t.Errorf("expected 0x5A, got 0x%02X", val)
	}
}

func TestVDUBus_ROMMirrors(t *testing.T) {
	rom := make([]byte, 1024)
	rom[0] = 0x11
	rom[0x3FF] = 0x22
	bus := makeTestBus(rom)

	// A 1KB image repeats through the whole 32KB window.
	if val := bus.Read(0x400); val != 0x11 {
		t.Errorf("mirror at 0x400: expected 0x11, got 0x%02X", val)
	}
	if val := bus.Read(0x7FFF); val != 0x22 {
		t.Errorf("mirror at 0x7FFF: expected 0x22, got 0x%02X", val)
	}
}

func TestVDUBus_ROMGapReadsFF(t *testing.T) {
	// 600 bytes rounds up to a 1KB mirror period with a gap at the top.
	rom := make([]byte, 600)
	rom[5] = 0x42
	bus := makeTestBus(rom)

	if val := bus.Read(700); val != 0xFF {
		t.Errorf("gap read: expected 0xFF, got 0x%02X", val)
	}
	if val := bus.Read(1024 + 5); val != 0x42 {
		t.Errorf("mirrored byte: expected 0x42, got 0x%02X", val)
	}
}

func TestVDUBus_OversizeROMTruncated(t *testing.T) {
	rom := make([]byte, 0x9000)
	rom[0x7FFF] = 0xAB
	rom[0x8500] = 0xCD
	bus := makeTestBus(rom)

	if val := bus.Read(0x7FFF); val != 0xAB {
		t.Errorf("last ROM byte: expected 0xAB, got 0x%02X", val)
	}
	// Addresses past the window land in work RAM, not the ROM tail.
	if val := bus.Read(0x8500); val != 0x00 {
		t.Errorf("expected 0x00 from RAM, got 0x%02X", val)
	}
}

func TestVDUBus_WorkRAM(t *testing.T) {
	bus := makeTestBus(make([]byte, 1024))

	bus.Write(0x8000, 0xAB)
	bus.Write(0xFFFF, 0xCD)
	if val := bus.Read(0x8000); val != 0xAB {
		t.Errorf("expected 0xAB, got 0x%02X", val)
	}
	if val := bus.Read(0xFFFF); val != 0xCD {
		t.Errorf("expected 0xCD, got 0x%02X", val)
	}
}

func TestVDUBus_ROMWriteIgnored(t *testing.T) {
	rom := make([]byte, 1024)
	rom[0x10] = 0x55
	bus := makeTestBus(rom)

	bus.Write(0x10, 0xAA)
	if val := bus.Read(0x10); val != 0x55 {
		t.Errorf("expected 0x55, got 0x%02X", val)
	}
}

func TestVDUBus_FetchDelegatesToRead(t *testing.T) {
	rom := make([]byte, 1024)
	rom[0x20] = 0xC3
	bus := makeTestBus(rom)

	if val := bus.Fetch(0x20); val != 0xC3 {
		t.Errorf("expected 0xC3, got 0x%02X", val)
	}
}

func TestVDUBus_ResetClearsRAM(t *testing.T) {
	bus := makeTestBus(make([]byte, 1024))
	bus.Write(0x9000, 0x77)
	bus.Reset()
	if val := bus.Read(0x9000); val != 0x00 {
		t.Errorf("expected 0x00 after reset, got 0x%02X", val)
	}
}

func TestVDUBus_GetROMCRC32(t *testing.T) {
	rom := []byte{0x01, 0x02, 0x03, 0x04}
	bus := makeTestBus(rom)
	if got, want := bus.GetROMCRC32(), crc32.ChecksumIEEE(rom); got != want {
		t.Errorf("expected 0x%08X, got 0x%08X", want, got)
	}
}

// --- Port map ---

func TestVDUBus_PortJoystick(t *testing.T) {
	bus := makeTestBus(make([]byte, 1024))

	if val := bus.In(0x00); val != 0xFF {
		t.Errorf("idle joystick: expected 0xFF, got 0x%02X", val)
	}
	bus.io.InputP1.Set(true, false, false, false, false, false, false)
	if val := bus.In(0x00); val != 0xFE {
		t.Errorf("up pressed: expected 0xFE, got 0x%02X", val)
	}
	// The whole 0x00-0x3F range decodes to the joystick.
	if val := bus.In(0x3F); val != 0xFE {
		t.Errorf("mirror at 0x3F: expected 0xFE, got 0x%02X", val)
	}
}

func TestVDUBus_PortPSGWrite(t *testing.T) {
	bus := makeTestBus(make([]byte, 1024))

	// Latch channel 0 volume 5.
	bus.Out(0x40, 0x95)
	if vol := bus.psg.GetVolume(0); vol != 5 {
		t.Errorf("expected volume 5, got %d", vol)
	}
	// The PSG has no read port.
	if val := bus.In(0x40); val != 0xFF {
		t.Errorf("PSG read: expected 0xFF, got 0x%02X", val)
	}
}

func TestVDUBus_PortVDCControl(t *testing.T) {
	bus := makeTestBus(make([]byte, 1024))

	// Register write pair through the control port.
	bus.Out(0x81, 0x42)
	bus.Out(0x81, 0x80|regIndexXor)
	if got := bus.vdc.indexXor(); got != 0x42 {
		t.Errorf("expected 0x42, got 0x%02X", got)
	}

	// 0xB7 has bit 0 set and decodes to the same control port.
	bus.Out(0xB7, 0x24)
	bus.Out(0xB7, 0x80|regIndexXor)
	if got := bus.vdc.indexXor(); got != 0x24 {
		t.Errorf("mirror write: expected 0x24, got 0x%02X", got)
	}
}

func TestVDUBus_PortVDCData(t *testing.T) {
	bus := makeTestBus(make([]byte, 1024))

	// VRAM write setup at 0, then two data port writes.
	bus.Out(0x81, 0x00)
	bus.Out(0x81, 0x40)
	bus.Out(0x80, 0x12)
	bus.Out(0x80, 0x34)
	if bus.vdc.vram[0] != 0x12 || bus.vdc.vram[1] != 0x34 {
		t.Errorf("vram: got 0x%02X 0x%02X, want 0x12 0x34",
			bus.vdc.vram[0], bus.vdc.vram[1])
	}

	// Read them back through the buffered data port.
	bus.Out(0x81, 0x00)
	bus.Out(0x81, 0x00)
	if val := bus.In(0x80); val != 0x12 {
		t.Errorf("data read: expected 0x12, got 0x%02X", val)
	}
	if val := bus.In(0x80); val != 0x34 {
		t.Errorf("data read: expected 0x34, got 0x%02X", val)
	}
}

func TestVDUBus_PortVDCStatus(t *testing.T) {
	bus := makeTestBus(make([]byte, 1024))

	bus.vdc.vsyncPending = true
	if val := bus.In(0x81); val&statusVsyncPending == 0 {
		t.Errorf("status: expected vsync bit set, got 0x%02X", val)
	}
	if val := bus.In(0x81); val&statusVsyncPending != 0 {
		t.Errorf("status after acknowledge: expected vsync bit clear, got 0x%02X", val)
	}
}

func TestVDUBus_PortUnmapped(t *testing.T) {
	bus := makeTestBus(make([]byte, 1024))

	if val := bus.In(0xC0); val != 0xFF {
		t.Errorf("expected 0xFF, got 0x%02X", val)
	}
	if val := bus.In(0xFF); val != 0xFF {
		t.Errorf("expected 0xFF, got 0x%02X", val)
	}
	// Writes to the unmapped range are dropped.
	bus.Out(0xC0, 0x12)
	bus.Out(0xFF, 0x34)
}

package emu

import (
	"hash/crc32"

	"github.com/user-none/go-chip-sn76489"
)

const (
	workRAMSize = 0x8000 // 32KB work RAM
	maxROMSize  = 0x8000 // 32KB ROM window
)

// VDUBus implements z80.Bus with the VDU-1 memory and port maps.
//
// Memory map (16-bit):
//
//	0x0000-0x7FFF  ROM (up to 32KB; smaller images mirror at the next
//	               power of two, gaps read 0xFF)
//	0x8000-0xFFFF  work RAM (32KB)
//
// Port map (low address byte, decoded on bits 7:6):
//
//	0x00-0x3F  joystick (read, active low)
//	0x40-0x7F  PSG (write only)
//	0x80-0xBF  VDC, bit 0 selects data (0) or control/status (1)
//	0xC0-0xFF  unmapped, reads return 0xFF
type VDUBus struct {
	rom     []byte
	romMask uint16
	ram     [workRAMSize]byte
	romCRC  uint32
	vdc     *VDC
	io      *IO
	psg     *sn76489.SN76489
}

// NewVDUBus creates a new VDUBus with the given ROM, VDC, IO, and PSG.
func NewVDUBus(rom []byte, vdc *VDC, io *IO, psg *sn76489.SN76489) *VDUBus {
	if len(rom) > maxROMSize {
		rom = rom[:maxROMSize]
	}

	size := 1
	for size < len(rom) {
		size <<= 1
	}

	return &VDUBus{
		rom:     rom,
		romMask: uint16(size - 1),
		romCRC:  crc32.ChecksumIEEE(rom),
		vdc:     vdc,
		io:      io,
		psg:     psg,
	}
}

// Fetch reads an opcode byte during an M1 cycle. The VDU-1 has no
// M1-specific behavior, so this delegates to Read.
func (b *VDUBus) Fetch(addr uint16) uint8 {
	return b.Read(addr)
}

// Read reads a byte from the VDU-1 address space.
func (b *VDUBus) Read(addr uint16) uint8 {
	if addr < maxROMSize {
		idx := addr & b.romMask
		if int(idx) < len(b.rom) {
			return b.rom[idx]
		}
		return 0xFF
	}
	return b.ram[addr&(workRAMSize-1)]
}

// Write writes a byte to the VDU-1 address space. ROM writes are
// ignored.
func (b *VDUBus) Write(addr uint16, val uint8) {
	if addr < maxROMSize {
		return
	}
	b.ram[addr&(workRAMSize-1)] = val
}

// In reads from an I/O port.
func (b *VDUBus) In(port uint16) uint8 {
	switch uint8(port) >> 6 {
	case 0:
		return b.io.ReadJoystick()
	case 2:
		if port&1 == 0 {
			return b.vdc.ReadData()
		}
		return b.vdc.ReadStatus()
	default:
		// PSG is write only, 0xC0-0xFF unmapped
		return 0xFF
	}
}

// Out writes to an I/O port.
func (b *VDUBus) Out(port uint16, val uint8) {
	switch uint8(port) >> 6 {
	case 1:
		b.psg.Write(val)
	case 2:
		if port&1 == 0 {
			b.vdc.WriteData(val)
		} else {
			b.vdc.WriteControl(val)
		}
	}
}

// Reset clears RAM. The ROM and the attached devices are left alone.
func (b *VDUBus) Reset() {
	b.ram = [workRAMSize]byte{}
}

// GetROMCRC32 returns the CRC32 of the loaded ROM.
func (b *VDUBus) GetROMCRC32() uint32 {
	return b.romCRC
}

package emu

import (
	"encoding/binary"
	"errors"
)

const (
	vdcSerializeVersion = 1
	// VDCSerializeSize is the total bytes needed for VDC serialization.
	// version(1) + vram(524288) + clut(512) + regs(25) + mode(1) +
	// writePending(1) + addrLatch(1) + code(1) + address(4) + readBuffer(1) +
	// vsyncPending(1) + statusRead(1) + irqCheck(1) + prevVsync(1) +
	// cursor(4) +
	// x(2) + y(2) + hden(1) + vfen(1) + vden(1) +
	// hctr(1) + fetchAddr(2) + loadPending(1) +
	// shiftRegister(2) +
	// lineBuffer(2048) + odd(1)
	VDCSerializeSize = 526905
)

// Serialize writes VDC state to buf. buf must be at least VDCSerializeSize bytes.
func (v *VDC) Serialize(buf []byte) error {
	if len(buf) < VDCSerializeSize {
		return errors.New("VDC serialize buffer too small")
	}

	offset := 0

	// Version
	buf[offset] = vdcSerializeVersion
	offset++

	// VRAM (512KB)
	copy(buf[offset:], v.vram[:])
	offset += len(v.vram)

	// CLUT (512 bytes)
	copy(buf[offset:], v.clut.ram[:])
	offset += len(v.clut.ram)

	// Registers (25 bytes)
	copy(buf[offset:], v.regs[:])
	offset += len(v.regs)
	buf[offset] = uint8(v.mode)
	offset++

	// Control port state
	buf[offset] = boolByte(v.writePending)
	offset++
	buf[offset] = v.addrLatch
	offset++
	buf[offset] = v.code
	offset++
	binary.LittleEndian.PutUint32(buf[offset:], v.address)
	offset += 4
	buf[offset] = v.readBuffer
	offset++

	// Status
	buf[offset] = boolByte(v.vsyncPending)
	offset++
	buf[offset] = boolByte(v.statusRead)
	offset++
	buf[offset] = boolByte(v.irqCheck)
	offset++
	buf[offset] = boolByte(v.prevVsync)
	offset++

	// Fetch cursor
	binary.LittleEndian.PutUint32(buf[offset:], v.cursor)
	offset += 4

	// Raster counters
	binary.LittleEndian.PutUint16(buf[offset:], v.crtc.x)
	offset += 2
	binary.LittleEndian.PutUint16(buf[offset:], v.crtc.y)
	offset += 2
	buf[offset] = boolByte(v.crtc.hden)
	offset++
	buf[offset] = boolByte(v.crtc.vfen)
	offset++
	buf[offset] = boolByte(v.crtc.vden)
	offset++

	// Feeder
	buf[offset] = v.feeder.hctr
	offset++
	binary.LittleEndian.PutUint16(buf[offset:], v.feeder.addr)
	offset += 2
	buf[offset] = boolByte(v.feeder.loadPending)
	offset++

	// Shift register
	binary.LittleEndian.PutUint16(buf[offset:], v.shifter.sr.bits)
	offset += 2

	// Line buffer banks
	for b := 0; b < 2; b++ {
		for i := 0; i < lineBufferWords; i++ {
			binary.LittleEndian.PutUint16(buf[offset:], v.lb.banks[b][i])
			offset += 2
		}
	}
	buf[offset] = v.lb.odd
	offset++

	return nil
}

// Deserialize reads VDC state from buf. buf must be at least VDCSerializeSize bytes.
func (v *VDC) Deserialize(buf []byte) error {
	if len(buf) < VDCSerializeSize {
		return errors.New("VDC deserialize buffer too small")
	}

	offset := 0

	// Version
	version := buf[offset]
	offset++
	if version > vdcSerializeVersion {
		return errors.New("unsupported VDC state version")
	}

	// VRAM (512KB)
	copy(v.vram[:], buf[offset:offset+len(v.vram)])
	offset += len(v.vram)

	// CLUT (512 bytes)
	copy(v.clut.ram[:], buf[offset:offset+len(v.clut.ram)])
	offset += len(v.clut.ram)

	// Registers (25 bytes)
	copy(v.regs[:], buf[offset:offset+len(v.regs)])
	offset += len(v.regs)
	v.mode = DisplayMode(buf[offset] & 0x03)
	offset++

	// Control port state
	v.writePending = buf[offset] != 0
	offset++
	v.addrLatch = buf[offset]
	offset++
	v.code = buf[offset]
	offset++
	v.address = binary.LittleEndian.Uint32(buf[offset:]) & vramAddrMask
	offset += 4
	v.readBuffer = buf[offset]
	offset++

	// Status
	v.vsyncPending = buf[offset] != 0
	offset++
	v.statusRead = buf[offset] != 0
	offset++
	v.irqCheck = buf[offset] != 0
	offset++
	v.prevVsync = buf[offset] != 0
	offset++

	// Fetch cursor
	v.cursor = binary.LittleEndian.Uint32(buf[offset:]) & fetchAddrMask
	offset += 4

	// Raster counters
	v.crtc.x = binary.LittleEndian.Uint16(buf[offset:]) & 0x3FF
	offset += 2
	v.crtc.y = binary.LittleEndian.Uint16(buf[offset:]) & 0x3FF
	offset += 2
	v.crtc.hden = buf[offset] != 0
	offset++
	v.crtc.vfen = buf[offset] != 0
	offset++
	v.crtc.vden = buf[offset] != 0
	offset++

	// Feeder
	v.feeder.hctr = buf[offset] & 0x0F
	offset++
	v.feeder.addr = binary.LittleEndian.Uint16(buf[offset:]) & 0x1FF
	offset += 2
	v.feeder.loadPending = buf[offset] != 0
	offset++

	// Shift register
	v.shifter.sr.bits = binary.LittleEndian.Uint16(buf[offset:])
	offset += 2

	// Line buffer banks
	for b := 0; b < 2; b++ {
		for i := 0; i < lineBufferWords; i++ {
			v.lb.banks[b][i] = binary.LittleEndian.Uint16(buf[offset:])
			offset += 2
		}
	}
	v.lb.odd = buf[offset] & 0x01
	offset++

	return nil
}

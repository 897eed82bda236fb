package emu

import (
	"encoding/binary"
	"errors"
	"hash/crc32"
	"math"

	"github.com/user-none/go-chip-sn76489"
	"github.com/user-none/go-chip-z80"
)

// Save state format constants
const (
	stateVersion    = 1
	stateMagic      = "eMVDUSState\x00"
	stateHeaderSize = 22 // magic(12) + version(2) + romCRC(4) + dataCRC(4)
)

// Fixed serialization sizes for inline components
const (
	busSerializeSize            = workRAMSize // ram
	emulatorInlineSerializeSize = 16          // filterPrevL(8) + filterPrevR(8)
)

// boolByte converts a bool to a uint8 (0 or 1).
func boolByte(b bool) uint8 {
	if b {
		return 1
	}
	return 0
}

// SerializeSize returns the total size in bytes needed for a save state.
// Every component is fixed size, so this is a package-level constant
// computation.
func SerializeSize() int {
	return stateHeaderSize +
		z80.SerializeSize +
		busSerializeSize +
		VDCSerializeSize +
		sn76489.SerializeSize +
		emulatorInlineSerializeSize
}

// Serialize creates a save state and returns it as a byte slice.
func (e *Emulator) Serialize() ([]byte, error) {
	data := make([]byte, SerializeSize())

	// Write header
	copy(data[0:12], stateMagic)
	binary.LittleEndian.PutUint16(data[12:14], stateVersion)
	binary.LittleEndian.PutUint32(data[14:18], e.bus.romCRC)

	offset := stateHeaderSize

	// Z80 CPU
	if err := e.cpu.Serialize(data[offset:]); err != nil {
		return nil, err
	}
	offset += z80.SerializeSize

	// VDUBus
	offset = e.serializeBus(data, offset)

	// VDC
	if err := e.vdc.Serialize(data[offset:]); err != nil {
		return nil, err
	}
	offset += VDCSerializeSize

	// PSG
	if err := e.psg.Serialize(data[offset:]); err != nil {
		return nil, err
	}
	offset += sn76489.SerializeSize

	// Emulator inline state
	e.serializeInline(data, offset)

	// Calculate and write data CRC32 (over everything after header)
	dataCRC := crc32.ChecksumIEEE(data[stateHeaderSize:])
	binary.LittleEndian.PutUint32(data[18:22], dataCRC)

	return data, nil
}

// Deserialize restores emulator state from a save state byte slice.
// Region is NOT restored - the current region setting is preserved.
func (e *Emulator) Deserialize(data []byte) error {
	if err := e.VerifyState(data); err != nil {
		return err
	}

	offset := stateHeaderSize

	// Z80 CPU
	if err := e.cpu.Deserialize(data[offset:]); err != nil {
		return err
	}
	offset += z80.SerializeSize

	// VDUBus
	offset = e.deserializeBus(data, offset)

	// VDC
	if err := e.vdc.Deserialize(data[offset:]); err != nil {
		return err
	}
	offset += VDCSerializeSize

	// PSG
	if err := e.psg.Deserialize(data[offset:]); err != nil {
		return err
	}
	offset += sn76489.SerializeSize

	// Emulator inline state
	e.deserializeInline(data, offset)

	return nil
}

// VerifyState checks if a save state is valid without loading it.
func (e *Emulator) VerifyState(data []byte) error {
	if len(data) < SerializeSize() {
		return errors.New("save state too short")
	}

	if string(data[0:12]) != stateMagic {
		return errors.New("invalid save state magic")
	}

	version := binary.LittleEndian.Uint16(data[12:14])
	if version > stateVersion {
		return errors.New("unsupported save state version")
	}

	romCRC := binary.LittleEndian.Uint32(data[14:18])
	if romCRC != e.bus.romCRC {
		return errors.New("save state is for a different ROM")
	}

	expectedCRC := binary.LittleEndian.Uint32(data[18:22])
	actualCRC := crc32.ChecksumIEEE(data[stateHeaderSize:])
	if expectedCRC != actualCRC {
		return errors.New("save state data is corrupted")
	}

	return nil
}

// serializeBus writes VDUBus state to the data buffer.
func (e *Emulator) serializeBus(data []byte, offset int) int {
	copy(data[offset:], e.bus.ram[:])
	offset += workRAMSize
	return offset
}

// deserializeBus reads VDUBus state from the data buffer.
func (e *Emulator) deserializeBus(data []byte, offset int) int {
	copy(e.bus.ram[:], data[offset:offset+workRAMSize])
	offset += workRAMSize
	return offset
}

// serializeInline writes Emulator inline state to the data buffer.
func (e *Emulator) serializeInline(data []byte, offset int) int {
	binary.LittleEndian.PutUint64(data[offset:], math.Float64bits(e.filterPrevL))
	offset += 8

	binary.LittleEndian.PutUint64(data[offset:], math.Float64bits(e.filterPrevR))
	offset += 8

	return offset
}

// deserializeInline reads Emulator inline state from the data buffer.
func (e *Emulator) deserializeInline(data []byte, offset int) int {
	e.filterPrevL = math.Float64frombits(binary.LittleEndian.Uint64(data[offset:]))
	offset += 8

	e.filterPrevR = math.Float64frombits(binary.LittleEndian.Uint64(data[offset:]))
	offset += 8

	return offset
}

package emu

import (
	"errors"
	"fmt"
)

// VDU-1 images are raw Z80 binaries loaded at 0x0000, optionally
// preceded by an 8-byte descriptor:
//
//	0-3  magic "VDU1"
//	4    format version (1)
//	5    region (0 = 60 Hz, 1 = 50 Hz)
//	6-7  reserved, must be zero
const (
	imageHeaderSize = 8
	imageVersion    = 1

	headerRegion60 = 0
	headerRegion50 = 1
)

type imageHeader struct {
	version uint8
	region  uint8
}

// parseImageHeader sniffs the descriptor magic. Raw images without a
// descriptor report false.
func parseImageHeader(rom []byte) (imageHeader, bool) {
	if len(rom) < imageHeaderSize {
		return imageHeader{}, false
	}
	if rom[0] != 'V' || rom[1] != 'D' || rom[2] != 'U' || rom[3] != '1' {
		return imageHeader{}, false
	}
	return imageHeader{version: rom[4], region: rom[5]}, true
}

// StripHeader returns the executable payload of an image with the
// optional descriptor removed.
func StripHeader(rom []byte) []byte {
	if _, ok := parseImageHeader(rom); ok {
		return rom[imageHeaderSize:]
	}
	return rom
}

// ValidateImage checks that an image can boot: the payload must be
// non-empty and fit the 32KB ROM window, and a descriptor, when
// present, must be a version this machine understands.
func ValidateImage(rom []byte) error {
	if h, ok := parseImageHeader(rom); ok {
		if h.version == 0 || h.version > imageVersion {
			return fmt.Errorf("unsupported image version: %d", h.version)
		}
		if h.region != headerRegion60 && h.region != headerRegion50 {
			return fmt.Errorf("unknown region byte: %02X", h.region)
		}
		rom = rom[imageHeaderSize:]
	}
	if len(rom) == 0 {
		return errors.New("image contains no code")
	}
	if len(rom) > maxROMSize {
		return fmt.Errorf("image too large: %d bytes (max %d)", len(rom), maxROMSize)
	}
	return nil
}

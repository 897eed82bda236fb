package emu

import emucore "github.com/user-none/eblitui/api"

// Region is an alias for emucore.Region so internal code compiles unchanged.
type Region = emucore.Region

const (
	RegionNTSC = emucore.RegionNTSC
	RegionPAL  = emucore.RegionPAL
)

// RegionTiming holds timing constants for a refresh mode. Both modes
// share the 31.5 kHz line rate; only the vertical frame layout
// changes between them.
type RegionTiming struct {
	CPUClockHz int // Z80 clock frequency
	Scanlines  int // Total scanlines per frame
	FPS        int // Frames per second
}

// 60 Hz timing: Z80 4 MHz, 525 scanlines, 60 Hz
var NTSCTiming = RegionTiming{
	CPUClockHz: 4000000,
	Scanlines:  525,
	FPS:        60,
}

// 50 Hz timing: Z80 4 MHz, 630 scanlines, 50 Hz
var PALTiming = RegionTiming{
	CPUClockHz: 4000000,
	Scanlines:  630,
	FPS:        50,
}

// GetTimingForRegion returns the appropriate timing constants
func GetTimingForRegion(r Region) RegionTiming {
	if r == RegionPAL {
		return PALTiming
	}
	return NTSCTiming
}

// PresetForRegion returns the power-on display programming for a
// refresh mode: 800 dots per line with 640 visible, 480 visible
// scanlines, 4 bits per pixel. The horizontal registers are shared;
// only the vertical layout moves with the refresh rate.
func PresetForRegion(r Region) DisplayPreset {
	p := DisplayPreset{
		Raster: RasterConfig{
			HTotal:     799,
			HSyncStart: 704,
			HVisStart:  47,
			HVisEnd:    687,
			VTotal:     524,
			VSyncStart: 523,
			VVisStart:  31,
			VVisEnd:    511,
		},
		Mode:       Depth4,
		FetchCount: 160,
	}
	if r == RegionPAL {
		p.Raster.VTotal = 629
		p.Raster.VSyncStart = 628
		p.Raster.VVisStart = 83
		p.Raster.VVisEnd = 563
	}
	return p
}

// DetectRegion inspects the image header region byte and returns the
// display timing region. Headerless images default to 60 Hz.
func DetectRegion(rom []byte) Region {
	if h, ok := parseImageHeader(rom); ok && h.region == headerRegion50 {
		return RegionPAL
	}
	return RegionNTSC
}

// DefaultRegion returns the default region (60 Hz).
func DefaultRegion() Region {
	return RegionNTSC
}

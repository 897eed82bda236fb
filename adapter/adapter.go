package adapter

import (
	emucore "github.com/user-none/eblitui/api"
	"github.com/user-none/emvdu/emu"
)

// Compile-time interface check.
var _ emucore.CoreFactory = (*Factory)(nil)

// Factory implements emucore.CoreFactory for the VDU-1 emulator.
type Factory struct{}

// SystemInfo returns system metadata for UI configuration.
func (f *Factory) SystemInfo() emucore.SystemInfo {
	return emucore.SystemInfo{
		Name:            "emvdu",
		ConsoleName:     "VDU-1",
		Extensions:      []string{".vdu", ".bin"},
		ScreenWidth:     emu.ScreenWidth,
		MaxScreenHeight: emu.MaxScreenHeight,
		AspectRatio:     640.0 / 480.0,
		SampleRate:      48000,
		Buttons: []emucore.Button{
			{Name: "A", ID: 4, DefaultKey: "J", DefaultPad: "A"},
			{Name: "B", ID: 5, DefaultKey: "K", DefaultPad: "B"},
			{Name: "Start", ID: 7, DefaultKey: "Enter", DefaultPad: "Start"},
		},
		Players: 1,
		CoreOptions: []emucore.CoreOption{
			{
				Key:         "force_50hz",
				Label:       "Force 50 Hz",
				Description: "Run the display at 50 Hz regardless of the image header",
				Type:        emucore.CoreOptionBool,
				Default:     "false",
				Category:    emucore.CoreOptionCategoryVideo,
			},
		},
		DataDirName:   "emvdu",
		ConsoleID:     3,
		CoreName:      emu.Name,
		CoreVersion:   emu.Version,
		SerializeSize: emu.SerializeSize(),
	}
}

// CreateEmulator creates a new emulator instance with the given image and region.
func (f *Factory) CreateEmulator(rom []byte, region emucore.Region) (emucore.Emulator, error) {
	e, err := emu.NewEmulator(rom, region)
	if err != nil {
		return nil, err
	}
	return &e, nil
}

// DetectRegion auto-detects the region from the image descriptor.
// The bool return is false since emvdu uses header-based detection,
// not a ROM database lookup.
func (f *Factory) DetectRegion(rom []byte) (emucore.Region, bool) {
	return emu.DetectRegion(rom), false
}

package main

import (
	"flag"
	"log"
	"os"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	emubridge "github.com/user-none/emvdu/bridge/ebiten"
	"github.com/user-none/emvdu/cli"
	"github.com/user-none/emvdu/emu"
)

func main() {
	romPath := flag.String("rom", "", "path to image file (required)")
	regionFlag := flag.String("region", "auto", "region: auto, ntsc (60 Hz), or pal (50 Hz)")
	flag.Parse()

	if *romPath == "" {
		log.Fatal("Image path is required. Usage: emvdu -rom <path>")
	}

	romData, err := os.ReadFile(*romPath)
	if err != nil {
		log.Fatalf("Failed to load image: %v", err)
	}

	// Determine region
	var region emu.Region
	switch strings.ToLower(*regionFlag) {
	case "auto":
		region = emu.DetectRegion(romData)
	case "ntsc":
		region = emu.RegionNTSC
	case "pal":
		region = emu.RegionPAL
	default:
		log.Fatalf("Invalid region: %s (use auto, ntsc, or pal)", *regionFlag)
	}

	e, err := emubridge.NewEmulator(romData, region)
	if err != nil {
		log.Fatalf("Failed to initialize emulator: %v", err)
	}

	ebiten.SetWindowSize(emu.ScreenWidth, emu.MaxScreenHeight)
	ebiten.SetWindowTitle(emu.Name)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowSizeLimits(320, 240, -1, -1)
	ebiten.SetTPS(60)

	runner := cli.NewRunner(e)
	defer runner.Close()
	defer e.Close()

	if err := ebiten.RunGame(runner); err != nil {
		log.Fatal(err)
	}
}

//go:build !libretro && !ios

package main

import (
	"flag"
	"log"

	"github.com/user-none/eblitui/standalone"
	"github.com/user-none/emvdu/adapter"
)

func main() {
	romPath := flag.String("rom", "", "path to image file (opens UI if not provided)")
	regionFlag := flag.String("region", "auto", "region: auto, ntsc (60 Hz), or pal (50 Hz)")
	force50 := flag.Bool("force-50hz", false, "force 50 Hz display timing")
	flag.Parse()

	factory := &adapter.Factory{}

	if *romPath != "" {
		options := map[string]string{}
		if *force50 {
			options["force_50hz"] = "true"
		} else {
			options["force_50hz"] = "false"
		}
		if err := standalone.RunDirect(factory, *romPath, *regionFlag, options); err != nil {
			log.Fatal(err)
		}
		return
	}

	if err := standalone.Run(factory); err != nil {
		log.Fatal(err)
	}
}

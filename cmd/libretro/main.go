package main

import (
	libretro "github.com/user-none/eblitui/libretro"
	"github.com/user-none/emvdu/adapter"
)

func init() {
	libretro.RegisterFactory(&adapter.Factory{}, []libretro.RetropadMapping{
		{RetroID: libretro.JoypadB, BitID: 4},     // A
		{RetroID: libretro.JoypadA, BitID: 5},     // B
		{RetroID: libretro.JoypadStart, BitID: 7}, // Start
	})
}

func main() {}

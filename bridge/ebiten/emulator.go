// Package ebiten provides an Ebiten-specific wrapper for the emulator.
package ebiten

import (
	"github.com/hajimehoshi/ebiten/v2"
	emucore "github.com/user-none/eblitui/api"
	"github.com/user-none/emvdu/emu"
)

// Emulator wraps emu.Emulator with Ebiten-specific functionality
type Emulator struct {
	emu.Emulator

	offscreen *ebiten.Image           // Offscreen buffer for native resolution rendering
	drawOpts  ebiten.DrawImageOptions // Pre-allocated draw options to avoid per-frame allocation
}

// NewEmulator creates a new emulator instance with Ebiten rendering.
func NewEmulator(rom []byte, region emu.Region) (*Emulator, error) {
	core, err := emu.NewEmulator(rom, region)
	if err != nil {
		return nil, err
	}

	return &Emulator{
		Emulator: core,
	}, nil
}

// Close cleans up the emulator resources.
func (e *Emulator) Close() {
}

// SetButtons packs joystick state into the button bitmask the core
// consumes and applies it to the single VDU-1 joystick port.
func (e *Emulator) SetButtons(up, down, left, right, btnA, btnB, start bool) {
	var mask uint32
	if up {
		mask |= 1 << emucore.ButtonUp
	}
	if down {
		mask |= 1 << emucore.ButtonDown
	}
	if left {
		mask |= 1 << emucore.ButtonLeft
	}
	if right {
		mask |= 1 << emucore.ButtonRight
	}
	if btnA {
		mask |= 1 << 4
	}
	if btnB {
		mask |= 1 << 5
	}
	if start {
		mask |= 1 << 7
	}
	e.SetInput(0, mask)
}

// Layout implements ebiten.Game.
func (e *Emulator) Layout(outsideWidth, outsideHeight int) (int, int) {
	return outsideWidth, outsideHeight
}

// DrawCachedFramebuffer renders pre-cached pixel data to the screen.
// Used by the ADT architecture where the emulation goroutine writes pixels
// to a shared framebuffer, and the Ebiten Draw() thread renders them.
func (e *Emulator) DrawCachedFramebuffer(screen *ebiten.Image, pixels []byte, stride, activeHeight int) {
	if activeHeight == 0 || stride == 0 {
		return
	}

	requiredLen := stride * activeHeight
	if len(pixels) < requiredLen {
		return
	}

	// Create or resize offscreen buffer if needed
	if e.offscreen == nil || e.offscreen.Bounds().Dy() != activeHeight {
		e.offscreen = ebiten.NewImage(emu.ScreenWidth, activeHeight)
	}

	e.offscreen.WritePixels(pixels[:requiredLen])

	// Calculate scaling to fit window while preserving aspect ratio
	screenW, screenH := screen.Bounds().Dx(), screen.Bounds().Dy()
	nativeW := float64(emu.ScreenWidth)
	nativeH := float64(activeHeight)

	scaleX := float64(screenW) / nativeW
	scaleY := float64(screenH) / nativeH
	scale := scaleX
	if scaleY < scaleX {
		scale = scaleY
	}

	scaledW := nativeW * scale
	scaledH := nativeH * scale
	offsetX := (float64(screenW) - scaledW) / 2
	offsetY := (float64(screenH) - scaledH) / 2

	e.drawOpts = ebiten.DrawImageOptions{}
	e.drawOpts.GeoM.Scale(scale, scale)
	e.drawOpts.GeoM.Translate(offsetX, offsetY)
	e.drawOpts.Filter = ebiten.FilterNearest
	screen.DrawImage(e.offscreen, &e.drawOpts)
}

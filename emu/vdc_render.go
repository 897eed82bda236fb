package emu

// renderDot paints the framebuffer pixel for the current dot, taken
// from the shift register before this edge's shift or load. Dots
// outside the visible window, or with the display disabled, leave
// the framebuffer alone.
func (v *VDC) renderDot(cfg RasterConfig) {
	if !v.displayEnabled() || !v.crtc.DisplayActive() {
		return
	}

	visX := int(v.crtc.X()) - int(cfg.HVisStart) - 1
	visY := int(v.crtc.Y()) - int(cfg.VVisStart) - 2
	if visX < 0 || visY < 0 || visY >= MaxScreenHeight {
		return
	}

	scale := v.dotScale(cfg)
	px := visX * scale
	if px+scale > ScreenWidth {
		return
	}

	r, g, b := v.clut.Color(v.shifter.ColorIndex(v.mode, v.indexXor()))

	pix := v.framebuffer.Pix
	off := visY*v.framebuffer.Stride + px*4
	for i := 0; i < scale; i++ {
		pix[off] = r
		pix[off+1] = g
		pix[off+2] = b
		pix[off+3] = 0xFF
		off += 4
	}
}

// blankLine blacks out the framebuffer row for a scanline that ran
// with the display disabled, so stale pixels from the last enabled
// frame do not linger.
func (v *VDC) blankLine(cfg RasterConfig, line uint16) {
	visY := int(line) - int(cfg.VVisStart) - 2
	if visY < 0 || visY >= MaxScreenHeight {
		return
	}

	pix := v.framebuffer.Pix
	off := visY * v.framebuffer.Stride
	for x := 0; x < ScreenWidth; x++ {
		pix[off] = 0
		pix[off+1] = 0
		pix[off+2] = 0
		pix[off+3] = 0xFF
		off += 4
	}
}

// dotScale returns the horizontal pixel doubling factor. Narrow
// programmings (320 visible dots and below) are doubled so they fill
// the framebuffer width.
func (v *VDC) dotScale(cfg RasterConfig) int {
	if cfg.HVisEnd <= cfg.HVisStart {
		return 1
	}
	if int(cfg.HVisEnd-cfg.HVisStart)*2 <= ScreenWidth {
		return 2
	}
	return 1
}

// ActiveWidth returns the displayed width in framebuffer pixels.
func (v *VDC) ActiveWidth() int {
	cfg := v.rasterConfig()
	if cfg.HVisEnd <= cfg.HVisStart {
		return ScreenWidth
	}
	w := int(cfg.HVisEnd-cfg.HVisStart) * v.dotScale(cfg)
	if w > ScreenWidth {
		return ScreenWidth
	}
	return w
}

// ActiveHeight returns the number of displayed scanlines.
func (v *VDC) ActiveHeight() int {
	cfg := v.rasterConfig()
	if cfg.VVisEnd <= cfg.VVisStart {
		return MaxScreenHeight
	}
	h := int(cfg.VVisEnd - cfg.VVisStart)
	if h > MaxScreenHeight {
		return MaxScreenHeight
	}
	return h
}

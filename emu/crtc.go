package emu

// RasterConfig holds the CRTC timing registers, all 10-bit values.
// Counters run 0..HTotal and 0..VTotal inclusive, so a 800-dot line
// is programmed as HTotal=799.
//
// The vertical visible window carries a one-scanline skew relative to
// the fetch window (see Step): VVisStart and VVisEnd are programmed
// one scanline lower than the values the horizontal registers would
// use for the same geometry. PresetForRegion bakes this in.
type RasterConfig struct {
	HTotal     uint16 // last dot of a scanline
	VTotal     uint16 // last scanline of a frame
	HSyncStart uint16 // hsync asserts from this dot to end of line
	VSyncStart uint16 // vsync asserts from this scanline to end of frame
	HVisStart  uint16 // hden sets after this dot
	HVisEnd    uint16 // hden clears after this dot
	VVisStart  uint16 // vfen sets after this scanline
	VVisEnd    uint16 // vfen clears after this scanline
}

// CRTC generates the raster position and the enable windows. All
// state is registered: transitions computed from pre-edge values
// commit together on each Step.
//
// hden covers dots [HVisStart+1, HVisEnd]. vfen covers scanlines
// [VVisStart+1, VVisEnd] and leads the visible window: vden copies
// the pre-edge vfen at each scanline boundary, so the displayed
// scanlines are [VVisStart+2, VVisEnd+1]. The skew gives the fill
// side of the LineBuffer a full scanline of lead time.
type CRTC struct {
	x uint16 // dot position within the scanline
	y uint16 // scanline within the frame

	hden bool // horizontal display enable latch
	vfen bool // vertical fetch enable latch
	vden bool // vertical display enable, vfen delayed one scanline
}

// X returns the current dot position.
func (c *CRTC) X() uint16 { return c.x }

// Y returns the current scanline.
func (c *CRTC) Y() uint16 { return c.y }

// HDen returns the horizontal display enable latch.
func (c *CRTC) HDen() bool { return c.hden }

// VFen returns the vertical fetch enable latch.
func (c *CRTC) VFen() bool { return c.vfen }

// VDen returns the vertical display enable.
func (c *CRTC) VDen() bool { return c.vden }

// HSync is the horizontal sync output, recomputed from the counter:
// asserted for the remainder of the line once x reaches HSyncStart.
func (c *CRTC) HSync(cfg RasterConfig) bool {
	return c.x >= cfg.HSyncStart
}

// VSync is the vertical sync output: asserted for the remainder of
// the frame once y reaches VSyncStart.
func (c *CRTC) VSync(cfg RasterConfig) bool {
	return c.y >= cfg.VSyncStart
}

// DisplayActive reports whether the current dot is inside both enable
// windows. This is the scanline-active input to the Feeder.
func (c *CRTC) DisplayActive() bool {
	return c.hden && c.vden
}

// Step advances the raster by one dot clock. With reset asserted the
// counters and latches clear regardless of any other input. Returns
// whether this edge ended the scanline and, if so, whether it also
// ended the frame.
func (c *CRTC) Step(cfg RasterConfig, reset bool) (lineEnd, frameEnd bool) {
	if reset {
		c.Reset()
		return false, false
	}

	lineEnd = c.x == cfg.HTotal
	frameEnd = lineEnd && c.y == cfg.VTotal

	// hden latch, priority end > start > hold. With HVisStart equal
	// to HVisEnd the clear wins and the window never opens.
	switch {
	case c.x == cfg.HVisEnd:
		c.hden = false
	case c.x == cfg.HVisStart:
		c.hden = true
	}

	if lineEnd {
		// vden picks up the pre-edge vfen, then the vfen latch
		// samples the scanline that just ended. Same latch pattern
		// as hden, evaluated once per line.
		c.vden = c.vfen
		switch {
		case c.y == cfg.VVisEnd:
			c.vfen = false
		case c.y == cfg.VVisStart:
			c.vfen = true
		}
	}

	if lineEnd {
		c.x = 0
		if frameEnd {
			c.y = 0
		} else {
			c.y = (c.y + 1) & 0x3FF
		}
	} else {
		c.x = (c.x + 1) & 0x3FF
	}
	return lineEnd, frameEnd
}

// Reset clears the counters and enable latches.
func (c *CRTC) Reset() {
	c.x = 0
	c.y = 0
	c.hden = false
	c.vfen = false
	c.vden = false
}

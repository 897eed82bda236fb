package emu

import "testing"

func TestFeeder_InactiveOutputs(t *testing.T) {
	var f Feeder
	f.Reset()
	load, addr := f.Outputs(false, Depth8)
	if !load || addr != 0 {
		t.Errorf("inactive outputs: load=%v addr=%d, want true 0", load, addr)
	}
}

func TestFeeder_ResetState(t *testing.T) {
	var f Feeder
	f.Reset()
	if f.Hctr() != 0 {
		t.Errorf("hctr: got %d, want 0", f.Hctr())
	}
	if !f.LoadPending() {
		t.Error("load strobe not pending after reset")
	}
	// Word 0 is considered loaded; word 1 sits on the read port.
	_, addr := f.Outputs(true, Depth8)
	if addr != 1 {
		t.Errorf("first active address: got %d, want 1", addr)
	}
}

func TestFeeder_LoadCadence(t *testing.T) {
	for _, mode := range []DisplayMode{Depth1, Depth2, Depth4, Depth8} {
		var f Feeder
		f.Reset()
		ppw := mode.PixelsPerWord()
		for cycle := 0; cycle < ppw*8; cycle++ {
			load, addr := f.Outputs(true, mode)
			wantLoad := cycle%ppw == ppw-1
			wantAddr := uint16(1 + cycle/ppw)
			if load != wantLoad || addr != wantAddr {
				t.Errorf("%s cycle %d: load=%v addr=%d, want %v %d",
					mode, cycle, load, addr, wantLoad, wantAddr)
			}
			f.Step(true, mode)
		}
	}
}

func TestFeeder_FullLineAtDepth1(t *testing.T) {
	var f Feeder
	f.Reset()
	loads := 0
	for i := 0; i < 640; i++ {
		load, _ := f.Outputs(true, Depth1)
		if load {
			loads++
		}
		f.Step(true, Depth1)
	}
	// 640 dots at 16 pixels per word.
	if loads != 40 {
		t.Errorf("reloads in a 640 dot line: got %d, want 40", loads)
	}
	_, addr := f.Outputs(true, Depth1)
	if addr != 41 {
		t.Errorf("address after the line: got %d, want 41", addr)
	}
}

func TestFeeder_AddressWraps(t *testing.T) {
	var f Feeder
	f.Reset()
	for i := 0; i < 1022; i++ {
		f.Step(true, Depth8)
	}
	// 511 reloads have advanced the 9-bit register off the end.
	_, addr := f.Outputs(true, Depth8)
	if addr != 0 {
		t.Errorf("address after 511 reloads: got %d, want 0", addr)
	}
}

func TestFeeder_InactiveCycleResyncs(t *testing.T) {
	var f Feeder
	f.Reset()
	for i := 0; i < 5; i++ {
		f.Step(true, Depth1)
	}
	f.Step(false, Depth1)
	if f.Hctr() != 0 || !f.LoadPending() {
		t.Errorf("after inactive cycle: hctr=%d load=%v, want 0 true", f.Hctr(), f.LoadPending())
	}
	load, addr := f.Outputs(true, Depth1)
	if load || addr != 1 {
		t.Errorf("first active outputs: load=%v addr=%d, want false 1", load, addr)
	}
}

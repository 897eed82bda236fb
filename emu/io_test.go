package emu

import "testing"

func TestIO_DefaultState(t *testing.T) {
	io := NewIO()

	// No buttons pressed, active-low port with bit 7 pulled high.
	val := io.ReadJoystick()
	if val != 0xFF {
		t.Errorf("expected 0xFF (idle port), got 0x%02X", val)
	}
}

func TestIO_SingleButtons(t *testing.T) {
	cases := []struct {
		name                               string
		up, down, left, right, a, b, start bool
		want                               byte
	}{
		{"up", true, false, false, false, false, false, false, 0xFE},
		{"down", false, true, false, false, false, false, false, 0xFD},
		{"left", false, false, true, false, false, false, false, 0xFB},
		{"right", false, false, false, true, false, false, false, 0xF7},
		{"a", false, false, false, false, true, false, false, 0xEF},
		{"b", false, false, false, false, false, true, false, 0xDF},
		{"start", false, false, false, false, false, false, true, 0xBF},
	}
	for _, c := range cases {
		io := NewIO()
		io.InputP1.Set(c.up, c.down, c.left, c.right, c.a, c.b, c.start)
		val := io.ReadJoystick()
		if val != c.want {
			t.Errorf("%s pressed: expected 0x%02X, got 0x%02X", c.name, c.want, val)
		}
	}
}

func TestIO_ButtonCombination(t *testing.T) {
	io := NewIO()
	io.InputP1.Set(true, false, false, false, true, false, false)

	// Up (bit 0) and A (bit 4) low: 0xFF &^ 0x01 &^ 0x10 = 0xEE.
	val := io.ReadJoystick()
	if val != 0xEE {
		t.Errorf("up+A: expected 0xEE, got 0x%02X", val)
	}
}

func TestIO_AllButtons(t *testing.T) {
	io := NewIO()
	io.InputP1.Set(true, true, true, true, true, true, true)

	// Every input low, bit 7 unconnected and still high.
	val := io.ReadJoystick()
	if val != 0x80 {
		t.Errorf("all buttons: expected 0x80, got 0x%02X", val)
	}
}

func TestIO_Release(t *testing.T) {
	io := NewIO()
	io.InputP1.Set(true, true, false, false, false, false, false)
	if val := io.ReadJoystick(); val != 0xFC {
		t.Errorf("up+down: expected 0xFC, got 0x%02X", val)
	}

	io.InputP1.Set(false, false, false, false, false, false, false)
	val := io.ReadJoystick()
	if val != 0xFF {
		t.Errorf("after release: expected 0xFF, got 0x%02X", val)
	}
}

package emu

// Input holds the state of the VDU-1 joystick port.
type Input struct {
	up, down, left, right bool
	btnA, btnB            bool
	start                 bool
}

// Set sets joystick state.
func (inp *Input) Set(up, down, left, right, btnA, btnB, start bool) {
	inp.up = up
	inp.down = down
	inp.left = left
	inp.right = right
	inp.btnA = btnA
	inp.btnB = btnB
	inp.start = start
}

// IO is the VDU-1 I/O controller. The single joystick port reads
// active low (0 = pressed):
//
//	bit 0  up
//	bit 1  down
//	bit 2  left
//	bit 3  right
//	bit 4  A
//	bit 5  B
//	bit 6  start
//	bit 7  unconnected, pulled high
type IO struct {
	InputP1 Input
}

// NewIO creates a new I/O controller.
func NewIO() *IO {
	return &IO{}
}

// ReadJoystick returns the joystick port byte.
func (io *IO) ReadJoystick() byte {
	var val byte = 0xFF
	if io.InputP1.up {
		val &^= 0x01
	}
	if io.InputP1.down {
		val &^= 0x02
	}
	if io.InputP1.left {
		val &^= 0x04
	}
	if io.InputP1.right {
		val &^= 0x08
	}
	if io.InputP1.btnA {
		val &^= 0x10
	}
	if io.InputP1.btnB {
		val &^= 0x20
	}
	if io.InputP1.start {
		val &^= 0x40
	}
	return val
}

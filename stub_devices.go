// stub_devices.go - opaque register-bank stubs and the emulator-control
// registers
//
// The audio synthesis chips, VIAs, RTC, character LCD, and SPI stubs are
// named only by the read/write interface the core requires (spec.md §1,
// §7): reads return the last value written (or zero before any write),
// writes are simply recorded. Modelled on the teacher's HandleRead/
// HandleWrite register-bank idiom (ay_z80_bus.go, sid_engine.go) with all
// chip-specific synthesis removed.
package vera65c02

// StubRegisterBank is a flat array of byte registers with no side effects
// beyond storing the last-written value.
type StubRegisterBank struct {
	regs []byte
}

func NewStubRegisterBank(size int) *StubRegisterBank {
	return &StubRegisterBank{regs: make([]byte, size)}
}

func (s *StubRegisterBank) Read(off uint16) byte {
	if int(off) >= len(s.regs) {
		return 0
	}
	return s.regs[off]
}

func (s *StubRegisterBank) Write(off uint16, v byte) {
	if int(off) >= len(s.regs) {
		return
	}
	s.regs[off] = v
}

// MouseStub implements spec.md §6's mouse register page: reads always
// return $FF. Mouse state instead reaches the CPU through the PS/2 port 1
// buffer (ps2.go).
type MouseStub struct{}

func NewMouseStub() *MouseStub { return &MouseStub{} }

func (m *MouseStub) Read(off uint16) byte  { return 0xFF }
func (m *MouseStub) Write(off uint16, v byte) {}

// ControlRegisters implements spec.md §6's emulator-control register
// page. Registers 6-7 additionally carry the RAM/ROM bank-select values
// the spec's data model describes but does not address explicitly; siting
// them here keeps every CPU-visible register inside the documented I/O
// page rather than inventing a new one.
type ControlRegisters struct {
	bus *MemoryBus

	DebuggerEnabled bool
	VideoLog        bool
	KeyboardLog     bool
	EchoMode        byte
	SaveOnExit      bool
	GIF             *GIFRecorder
	Keymap          byte
	LED             bool

	// CycleCounter supplies the value Read reports through registers
	// 8-11; it is wired to the owning CPU by the Machine.
	CycleCounter func() uint32
}

func NewControlRegisters(bus *MemoryBus) *ControlRegisters {
	return &ControlRegisters{
		bus: bus,
		GIF: NewGIFRecorder(),
		CycleCounter: func() uint32 { return 0 },
	}
}

func (c *ControlRegisters) Read(off uint16) byte {
	switch off {
	case 0:
		return btoB(c.DebuggerEnabled)
	case 1:
		return btoB(c.VideoLog)
	case 2:
		return btoB(c.KeyboardLog)
	case 3:
		return c.EchoMode
	case 4:
		return btoB(c.SaveOnExit)
	case 5:
		return byte(c.GIF.State)
	case 6:
		return c.bus.RAMBank()
	case 7:
		return c.bus.ROMBank()
	case 8, 9, 10, 11:
		cycles := c.CycleCounter()
		return byte(cycles >> (8 * (off - 8)))
	case 13:
		return c.Keymap
	case 14:
		return '1'
	case 15:
		return '6'
	default:
		return 0
	}
}

func (c *ControlRegisters) Write(off uint16, v byte) {
	switch off {
	case 0:
		c.DebuggerEnabled = v != 0
	case 1:
		c.VideoLog = v != 0
	case 2:
		c.KeyboardLog = v != 0
	case 3:
		c.EchoMode = v
	case 4:
		c.SaveOnExit = v != 0
	case 5:
		c.GIF.Command(GIFCommand(v))
	case 6:
		c.bus.SetRAMBank(v)
	case 7:
		c.bus.SetROMBank(v)
	case 13:
		c.Keymap = v
	case 15:
		c.LED = v != 0
	}
}

func btoB(b bool) byte {
	if b {
		return 1
	}
	return 0
}

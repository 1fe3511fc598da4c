package vera65c02

import "testing"

// TestResetVector covers S1: the reset vector loaded from ROM drives PC,
// and the register file comes up in its documented power-on state.
func TestResetVector(t *testing.T) {
	bus := NewMemoryBus(1, 1)
	bus.ROM[0x3FFC] = 0x34 // $FFFC low byte
	bus.ROM[0x3FFD] = 0x12 // $FFFD high byte

	cpu := NewCPU(bus)

	if cpu.PC != 0x1234 {
		t.Fatalf("PC = %#x, want 0x1234", cpu.PC)
	}
	if cpu.SP != 0xFD {
		t.Fatalf("SP = %#x, want 0xFD", cpu.SP)
	}
	if cpu.A != 0 || cpu.X != 0 || cpu.Y != 0 {
		t.Fatalf("A/X/Y = %d/%d/%d, want all zero", cpu.A, cpu.X, cpu.Y)
	}
	if !cpu.flag(FlagConstant) {
		t.Fatalf("constant flag clear after reset")
	}
}

// TestSelfModifyingJump covers S2: a program stores a NOP opcode into the
// very address it then jumps to, and the CPU fetches the freshly written
// byte rather than whatever preceded it.
func TestSelfModifyingJump(t *testing.T) {
	bus := NewMemoryBus(1, 1)
	bus.ROM[0x3FFC] = 0x00
	bus.ROM[0x3FFD] = 0x03 // reset vector -> $0300

	prog := []byte{
		0xA9, 0xEA, // LDA #$EA
		0x8D, 0x00, 0x02, // STA $0200
		0x4C, 0x00, 0x02, // JMP $0200
	}
	for i, b := range prog {
		bus.Write(0x0300+uint16(i), b)
	}

	cpu := NewCPU(bus)

	cpu.Step() // LDA #$EA
	cpu.Step() // STA $0200
	cpu.Step() // JMP $0200
	cpu.Step() // the byte now sitting at $0200: $EA, a NOP

	if cpu.PC != 0x0201 {
		t.Fatalf("PC = %#x, want 0x0201", cpu.PC)
	}
	if cpu.Cycles != 2+4+3+2 {
		t.Fatalf("Cycles = %d, want 11", cpu.Cycles)
	}
}

// TestRasterLineIRQ covers S3: with the raster compare set to a line inside
// the visible region and the line-IRQ enabled, running the renderer through
// that many lines latches the status bit exactly once.
func TestRasterLineIRQ(t *testing.T) {
	m := NewMachine(1, 1)
	v := m.VERA

	const target = 50
	v.WriteRegister(0x08, target) // raster compare low byte
	v.WriteRegister(0x06, isrRasterLn)

	hits := 0
	for line := 0; line < 100; line++ {
		before := v.isr & isrRasterLn
		v.Renderer.endOfLine()
		after := v.isr & isrRasterLn
		if after != 0 && before == 0 {
			hits++
		}
	}

	if v.isr&isrRasterLn == 0 {
		t.Fatalf("raster-line status bit never latched")
	}
	if hits != 1 {
		t.Fatalf("raster-line status transitioned to set %d times, want 1", hits)
	}

	m.Bus.ROM[0x3FFE] = 0x00 // $FFFE low byte
	m.Bus.ROM[0x3FFF] = 0x90 // $FFFF high byte: IRQ vector -> $9000
	m.ServiceInterrupts()
	if m.CPU.PC != 0x9000 {
		t.Fatalf("IRQ service left PC at %#x, want 0x9000", m.CPU.PC)
	}
}

// TestBankSwitchRoundTrip covers S5: writing through one RAM bank, switching
// away, then switching back reads the original byte undisturbed.
func TestBankSwitchRoundTrip(t *testing.T) {
	bus := NewMemoryBus(2, 1)

	bus.SetRAMBank(0)
	bus.Write(0xA000, 0xAA)

	bus.SetRAMBank(1)
	bus.Write(0xA000, 0x55)

	bus.SetRAMBank(0)
	if got := bus.Read(0xA000); got != 0xAA {
		t.Fatalf("bank 0 read after round trip = %#x, want 0xAA", got)
	}

	bus.SetRAMBank(1)
	if got := bus.Read(0xA000); got != 0x55 {
		t.Fatalf("bank 1 read after round trip = %#x, want 0x55", got)
	}
}

package vera65c02

import "testing"

// TestBranchTiming verifies testable property 4: BEQ costs 2 cycles not
// taken, 3 taken within a page, 4 taken crossing a page boundary.
func TestBranchTiming(t *testing.T) {
	t.Run("not taken", func(t *testing.T) {
		cpu, bus := newTestCPU()
		cpu.PC = 0x8000
		bus[0x8000] = 0xF0 // BEQ
		bus[0x8001] = 0x10
		cpu.setFlag(FlagZero, false)

		cpu.Step()
		if cpu.Cycles != 2 {
			t.Fatalf("cycles = %d, want 2", cpu.Cycles)
		}
	})

	t.Run("taken same page", func(t *testing.T) {
		cpu, bus := newTestCPU()
		cpu.PC = 0x8000
		bus[0x8000] = 0xF0
		bus[0x8001] = 0x10 // target 0x8012, same page as 0x8002
		cpu.setFlag(FlagZero, true)

		cpu.Step()
		if cpu.Cycles != 3 {
			t.Fatalf("cycles = %d, want 3", cpu.Cycles)
		}
	})

	t.Run("taken crossing page", func(t *testing.T) {
		cpu, bus := newTestCPU()
		cpu.PC = 0x80F0
		bus[0x80F0] = 0xF0
		bus[0x80F1] = 0x20 // 0x80F2 + 0x20 = 0x8112, crosses into next page
		cpu.setFlag(FlagZero, true)

		cpu.Step()
		if cpu.Cycles != 4 {
			t.Fatalf("cycles = %d, want 4", cpu.Cycles)
		}
	})
}

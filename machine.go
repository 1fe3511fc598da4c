// machine.go - shared machine context
//
// Wires the CPU, memory bus, VERA, and PS/2 ports into one non-owning
// context, and provides the three step-level entry points a host driver
// calls (spec.md §2's data-flow paragraph, §9's "cyclic references" note:
// the CPU drives writes that dirty the renderer's caches, the renderer
// raises interrupts the CPU services). Grounded on machine_bus.go's
// top-level Machine struct, which plays the identical coordinating role
// between its CPU, bus, and video chip.
package vera65c02

// Machine owns one instance each of the three hard subsystems and the two
// PS/2 ports, and connects them the way the host driver described in
// spec.md §2 expects: CPU step, video step, and PS/2 step as independent
// entry points driven at their own rates.
type Machine struct {
	CPU   *CPU
	Bus   *MemoryBus
	VERA  *VERA
	PS2   [2]*PS2Port
	Mouse *Mouse
}

// NewMachine builds a fully wired machine: numRAMBanks/numROMBanks size
// the banked windows (values below 1 fall back to the defaults
// MemoryBus defines).
func NewMachine(numRAMBanks, numROMBanks int) *Machine {
	bus := NewMemoryBus(numRAMBanks, numROMBanks)
	vera := NewVERA()
	bus.IO = NewIODispatch(vera, bus)

	cpu := NewCPU(bus)
	bus.IO.Control.CycleCounter = func() uint32 { return uint32(cpu.Cycles) }

	port0 := NewPS2Port()
	port1 := NewPS2Port()

	m := &Machine{
		CPU:   cpu,
		Bus:   bus,
		VERA:  vera,
		PS2:   [2]*PS2Port{port0, port1},
		Mouse: NewMouse(port1),
	}
	return m
}

// StepCPU executes one CPU instruction and returns the cycles it consumed.
func (m *Machine) StepCPU() uint64 {
	before := m.CPU.Cycles
	m.CPU.Step()
	return m.CPU.Cycles - before
}

// StepVideo advances the scanline renderer by one pixel-clock tick and
// services any interrupt it raised, the way a host driver calling the
// video step function at a fixed rate would (spec.md §2).
func (m *Machine) StepVideo() {
	m.VERA.Renderer.Step()
	m.ServiceInterrupts()
}

// StepPS2 advances both PS/2 bit clockers by one tick.
func (m *Machine) StepPS2() {
	m.PS2[0].Step()
	m.PS2[1].Step()
}

// ServiceInterrupts polls the combined interrupt level (VERA's enabled
// status bits) and, if the CPU hasn't masked IRQs, services one. Matches
// spec.md §2's "the CPU polls the combined interrupt level and, when
// unmasked, services it on the next fetch boundary."
func (m *Machine) ServiceInterrupts() {
	if m.VERA.isr&m.VERA.ien == 0 {
		return
	}
	m.CPU.Irq()
}

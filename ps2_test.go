package vera65c02

import "testing"

// runFrame drives Step until one full 11-bit frame has been shifted out
// (from the first clock-low edge through the return to idle), sampling
// DataOut on each falling clock edge and returning the bits in shift
// order.
func runFrame(t *testing.T, p *PS2Port) []bool {
	t.Helper()
	var bits []bool
	prevClock := p.ClockOut
	for i := 0; i < 10000 && len(bits) < 11; i++ {
		p.Step()
		if prevClock && !p.ClockOut {
			bits = append(bits, p.DataOut)
		}
		prevClock = p.ClockOut
	}
	return bits
}

// TestPS2Frame verifies testable property 9: byte $5A produces start(0),
// eight LSB-first data bits 0,1,0,1,1,0,1,0, an odd-parity bit, then
// stop(1).
func TestPS2Frame(t *testing.T) {
	p := NewPS2Port()
	p.SetHostLines(true, true) // both released: idle
	if !p.Enqueue(0x5A) {
		t.Fatal("Enqueue failed on an empty ring")
	}

	bits := runFrame(t, p)
	if len(bits) != 11 {
		t.Fatalf("captured %d bits, want 11", len(bits))
	}

	want := []bool{false, false, true, false, true, true, false, true, false}
	for i, w := range want {
		if bits[i] != w {
			t.Fatalf("bit %d = %v, want %v (start+data)", i, bits[i], w)
		}
	}

	ones := 0
	for _, b := range bits[:9] {
		if b {
			ones++
		}
	}
	if ones%2 != 0 {
		t.Fatalf("8 data bits + start should have an even one-count before parity, got %d ones", ones)
	}

	totalOnes := 0
	for _, b := range bits[:10] { // through the parity bit
		if b {
			totalOnes++
		}
	}
	if totalOnes%2 != 1 {
		t.Fatalf("total ones through parity = %d, want odd", totalOnes)
	}

	if !bits[10] {
		t.Fatalf("stop bit = false, want true")
	}
}

// TestPS2Inhibit confirms the inhibit condition (clk low, data high) zeroes
// the outputs and drops any in-flight transmission.
func TestPS2Inhibit(t *testing.T) {
	p := NewPS2Port()
	p.SetHostLines(true, true)
	p.Enqueue(0xFF)
	p.Step() // begins shifting

	p.SetHostLines(false, true) // clk low, data high: inhibit
	p.Step()

	if p.ClockOut || p.DataOut {
		t.Fatalf("ClockOut=%v DataOut=%v during inhibit, want both false", p.ClockOut, p.DataOut)
	}
}

// TestPS2RingOverflow verifies Enqueue reports failure once the 32-entry
// ring is full.
func TestPS2RingOverflow(t *testing.T) {
	p := NewPS2Port()
	for i := 0; i < ps2RingSize; i++ {
		if !p.Enqueue(byte(i)) {
			t.Fatalf("Enqueue %d failed before the ring was full", i)
		}
	}
	if p.Enqueue(0x00) {
		t.Fatalf("Enqueue succeeded on a full ring")
	}
}

// TestMouseDeltaSaturation verifies S4: mouse_move(300, 0) produces two
// packets, the first with X-delta 255 and no sign bit, the second with
// the remainder 45 and no sign bit.
func TestMouseDeltaSaturation(t *testing.T) {
	port := NewPS2Port()
	m := NewMouse(port)

	m.Move(300, 0)

	readPacket := func() (status, dx, dy byte) {
		s, ok := port.dequeue()
		if !ok {
			t.Fatal("expected a status byte, ring empty")
		}
		x, _ := port.dequeue()
		y, _ := port.dequeue()
		return s, x, y
	}

	s1, dx1, dy1 := readPacket()
	if dx1 != 255 {
		t.Fatalf("packet 1 dx = %d, want 255", dx1)
	}
	if s1&0x10 != 0 {
		t.Fatalf("packet 1 sign bit set, want clear")
	}
	if dy1 != 0 {
		t.Fatalf("packet 1 dy = %d, want 0", dy1)
	}

	s2, dx2, dy2 := readPacket()
	if dx2 != 45 {
		t.Fatalf("packet 2 dx = %d, want 45", dx2)
	}
	if s2&0x10 != 0 {
		t.Fatalf("packet 2 sign bit set, want clear")
	}
	if dy2 != 0 {
		t.Fatalf("packet 2 dy = %d, want 0", dy2)
	}

	if _, ok := port.dequeue(); ok {
		t.Fatalf("unexpected third packet byte")
	}
}

// TestMouseButtonEdgeWithNoMotion confirms a stationary button press/release
// still reaches the PS/2 buffer: SetButtons emits a zero-motion packet on
// any button transition, and stays silent when nothing changed.
func TestMouseButtonEdgeWithNoMotion(t *testing.T) {
	port := NewPS2Port()
	m := NewMouse(port)

	m.SetButtons(true, false, false) // press left, mouse stationary

	status, ok := port.dequeue()
	if !ok {
		t.Fatal("expected a packet from the button press, ring empty")
	}
	if status&0x01 == 0 {
		t.Fatalf("status left-button bit clear, want set: %#x", status)
	}
	dx, _ := port.dequeue()
	dy, _ := port.dequeue()
	if dx != 0 || dy != 0 {
		t.Fatalf("button-only packet carried motion: dx=%d dy=%d", dx, dy)
	}

	m.SetButtons(true, false, false) // no change: must not emit again
	if _, ok := port.dequeue(); ok {
		t.Fatalf("unexpected packet when button state did not change")
	}

	m.SetButtons(false, false, false) // release
	status, ok = port.dequeue()
	if !ok {
		t.Fatal("expected a packet from the button release, ring empty")
	}
	if status&0x01 != 0 {
		t.Fatalf("status left-button bit set after release, want clear: %#x", status)
	}
}

// cpu_addressing.go - 65C02 addressing mode resolvers
//
// Each resolver returns the effective address and, where relevant, whether
// resolving it crossed a page boundary (the base and base+index fall in
// different 256-byte pages), which the opcode charges as a one-cycle
// penalty. Modelled on cpu_six5go2.go's getAbsoluteX/getIndirectY family.
package vera65c02

func (c *CPU) fetch() byte {
	v := c.read(c.PC)
	c.PC++
	return v
}

func (c *CPU) fetch16() uint16 {
	v := c.read16(c.PC)
	c.PC += 2
	return v
}

func (c *CPU) addrZeroPage() uint16 {
	return uint16(c.fetch())
}

func (c *CPU) addrZeroPageX() uint16 {
	return uint16(byte(c.fetch() + c.X))
}

func (c *CPU) addrZeroPageY() uint16 {
	return uint16(byte(c.fetch() + c.Y))
}

func (c *CPU) addrAbsolute() uint16 {
	return c.fetch16()
}

func (c *CPU) addrAbsoluteX() (uint16, bool) {
	base := c.fetch16()
	addr := base + uint16(c.X)
	return addr, (base & 0xFF00) != (addr & 0xFF00)
}

func (c *CPU) addrAbsoluteY() (uint16, bool) {
	base := c.fetch16()
	addr := base + uint16(c.Y)
	return addr, (base & 0xFF00) != (addr & 0xFF00)
}

// addrIndirect resolves the 16-bit indirect used by JMP (abs). The 65C02
// fixed the NMOS 6502 page-wrap bug, so no special casing is needed here.
func (c *CPU) addrIndirect() uint16 {
	ptr := c.fetch16()
	return c.read16(ptr)
}

// addrIndexedIndirect resolves (zp,X).
func (c *CPU) addrIndexedIndirect() uint16 {
	ptr := byte(c.fetch() + c.X)
	lo := uint16(c.read(uint16(ptr)))
	hi := uint16(c.read(uint16(byte(ptr + 1))))
	return lo | hi<<8
}

// addrIndirectIndexed resolves (zp),Y.
func (c *CPU) addrIndirectIndexed() (uint16, bool) {
	ptr := c.fetch()
	lo := uint16(c.read(uint16(ptr)))
	hi := uint16(c.read(uint16(byte(ptr + 1))))
	base := lo | hi<<8
	addr := base + uint16(c.Y)
	return addr, (base & 0xFF00) != (addr & 0xFF00)
}

// addrIndirectZP resolves the 65C02-added (zp) mode (no index register).
func (c *CPU) addrIndirectZP() uint16 {
	ptr := c.fetch()
	lo := uint16(c.read(uint16(ptr)))
	hi := uint16(c.read(uint16(byte(ptr + 1))))
	return lo | hi<<8
}

// addrAbsoluteIndexedIndirect resolves (abs,X), used only by the 65C02 JMP
// (abs,X) form.
func (c *CPU) addrAbsoluteIndexedIndirect() uint16 {
	base := c.fetch16()
	ptr := base + uint16(c.X)
	return c.read16(ptr)
}

// relBranch reads the signed 8-bit branch offset and returns the target
// address plus whether taking it crosses a page boundary.
func (c *CPU) relBranch() (uint16, bool) {
	offset := int8(c.fetch())
	target := uint16(int32(c.PC) + int32(offset))
	return target, (c.PC & 0xFF00) != (target & 0xFF00)
}

// cpu_opcodes_65c02.go - 65C02 additions over the NMOS 6502 instruction set
//
// BRA, PHX/PHY/PLX/PLY, INC A/DEC A, STZ, TRB/TSB, BBRn/BBSn, RMBn/SMBn,
// WAI, the (zp) addressing mode, BIT zp,X/abs,X/#imm, and JMP (abs,X).
// Reached from cpu_opcodes.go's
// default case. Any opcode that isn't one of these either is genuinely
// unassigned and falls through to the spec.md §7 two-cycle no-op.
package vera65c02

func (c *CPU) execute65C02(op byte) {
	switch op {
	case 0x80: // BRA rel
		c.branch(true)

	case 0xDA: // PHX
		c.push(c.X)
		c.Cycles += 3
	case 0xFA: // PLX
		c.X = c.pull()
		c.updateNZ(c.X)
		c.Cycles += 4
	case 0x5A: // PHY
		c.push(c.Y)
		c.Cycles += 3
	case 0x7A: // PLY
		c.Y = c.pull()
		c.updateNZ(c.Y)
		c.Cycles += 4

	case 0x1A: // INC A
		c.A++
		c.updateNZ(c.A)
		c.Cycles += 2
	case 0x3A: // DEC A
		c.A--
		c.updateNZ(c.A)
		c.Cycles += 2

	case 0x64: // STZ zp
		c.write(c.addrZeroPage(), 0)
		c.Cycles += 3
	case 0x74: // STZ zp,X
		c.write(c.addrZeroPageX(), 0)
		c.Cycles += 4
	case 0x9C: // STZ abs
		c.write(c.addrAbsolute(), 0)
		c.Cycles += 4
	case 0x9E: // STZ abs,X
		addr, _ := c.addrAbsoluteX()
		c.write(addr, 0)
		c.Cycles += 5

	case 0x04: // TSB zp
		c.rmw(c.addrZeroPage(), c.tsb)
		c.Cycles += 5
	case 0x0C: // TSB abs
		c.rmw(c.addrAbsolute(), c.tsb)
		c.Cycles += 6
	case 0x14: // TRB zp
		c.rmw(c.addrZeroPage(), c.trb)
		c.Cycles += 5
	case 0x1C: // TRB abs
		c.rmw(c.addrAbsolute(), c.trb)
		c.Cycles += 6

	case 0x12: // ORA (zp)
		c.A |= c.read(c.addrIndirectZP())
		c.updateNZ(c.A)
		c.Cycles += 5
	case 0x32: // AND (zp)
		c.A &= c.read(c.addrIndirectZP())
		c.updateNZ(c.A)
		c.Cycles += 5
	case 0x52: // EOR (zp)
		c.A ^= c.read(c.addrIndirectZP())
		c.updateNZ(c.A)
		c.Cycles += 5
	case 0x72: // ADC (zp)
		c.adc(c.read(c.addrIndirectZP()))
		c.Cycles += 5
	case 0x92: // STA (zp)
		c.write(c.addrIndirectZP(), c.A)
		c.Cycles += 5
	case 0xB2: // LDA (zp)
		c.A = c.read(c.addrIndirectZP())
		c.updateNZ(c.A)
		c.Cycles += 5
	case 0xD2: // CMP (zp)
		c.compare(c.A, c.read(c.addrIndirectZP()))
		c.Cycles += 5
	case 0xF2: // SBC (zp)
		c.sbc(c.read(c.addrIndirectZP()))
		c.Cycles += 5

	case 0x34: // BIT zp,X
		c.bit(c.read(c.addrZeroPageX()))
		c.Cycles += 4
	case 0x3C: // BIT abs,X
		addr, crossed := c.addrAbsoluteX()
		c.bit(c.read(addr))
		c.Cycles += 4
		if crossed {
			c.Cycles++
		}
	case 0x89: // BIT immediate (only Z is affected)
		c.setFlag(FlagZero, c.A&c.fetch() == 0)
		c.Cycles += 2

	case 0x7C: // JMP (abs,X)
		c.PC = c.addrAbsoluteIndexedIndirect()
		c.Cycles += 6

	case 0xCB: // WAI
		c.Waiting = true
		c.Cycles += 3

	default:
		switch {
		case op&0x0F == 0x07 && op < 0x80: // RMBn
			bit := op >> 4
			addr := c.addrZeroPage()
			c.rmw(addr, func(v byte) byte { return v &^ (1 << bit) })
			c.Cycles += 5
		case op&0x0F == 0x07: // SMBn
			bit := (op - 0x80) >> 4
			addr := c.addrZeroPage()
			c.rmw(addr, func(v byte) byte { return v | (1 << bit) })
			c.Cycles += 5
		case op&0x0F == 0x0F && op < 0x80: // BBRn
			bit := op >> 4
			c.branchOnBit(bit, false)
		case op&0x0F == 0x0F: // BBSn
			bit := (op - 0x80) >> 4
			c.branchOnBit(bit, true)
		default:
			c.unknownOpcode(op)
		}
	}
}

// tsb sets the zero flag from A&M (without altering A) and ORs the bits
// of A into the memory operand.
func (c *CPU) tsb(v byte) byte {
	c.setFlag(FlagZero, c.A&v == 0)
	return v | c.A
}

// trb sets the zero flag from A&M and clears the bits of A out of the
// memory operand.
func (c *CPU) trb(v byte) byte {
	c.setFlag(FlagZero, c.A&v == 0)
	return v &^ c.A
}

// branchOnBit implements BBRn/BBSn: test bit of the zero-page operand,
// then branch relative if it matches test (false => branch if clear,
// true => branch if set). Base cost is 5 cycles plus the branch penalty.
func (c *CPU) branchOnBit(bit byte, test bool) {
	addr := c.addrZeroPage()
	v := c.read(addr)
	target, crossed := c.relBranch()
	c.Cycles += 5
	set := v&(1<<bit) != 0
	if set != test {
		return
	}
	c.PC = target
	c.Cycles++
	if crossed {
		c.Cycles++
	}
}

// unknownOpcode is the spec.md §7 fallback for any opcode slot this core
// does not assign: a two-cycle no-op.
func (c *CPU) unknownOpcode(op byte) {
	c.Cycles += 2
}

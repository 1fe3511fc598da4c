// cpu_opcodes.go - documented 6502 instruction set
//
// One case per opcode, each charging PC/Cycles itself, matching the
// teacher's executeOpcodeSwitch (cpu_six5go2.go) style. The 65C02-only
// additions (BRA, PHX/PHY/PLX/PLY, STZ, TRB/TSB, BBRn/BBSn, RMBn/SMBn, WAI,
// (zp), (abs,X) for JMP) live in cpu_opcodes_65c02.go; unknown opcodes fall
// through to that file's two-cycle no-op per spec.md §7.
package vera65c02

func (c *CPU) initOpcodeTable() {
	for i := 0; i < 256; i++ {
		op := byte(i)
		c.opcodes[i] = func(cpu *CPU) { cpu.execute(op) }
	}
}

func (c *CPU) execute(op byte) {
	switch op {

	// --- Load / store ---
	case 0xA9:
		c.A = c.fetch()
		c.updateNZ(c.A)
		c.Cycles += 2
	case 0xA5:
		c.A = c.read(c.addrZeroPage())
		c.updateNZ(c.A)
		c.Cycles += 3
	case 0xB5:
		c.A = c.read(c.addrZeroPageX())
		c.updateNZ(c.A)
		c.Cycles += 4
	case 0xAD:
		c.A = c.read(c.addrAbsolute())
		c.updateNZ(c.A)
		c.Cycles += 4
	case 0xBD:
		addr, crossed := c.addrAbsoluteX()
		c.A = c.read(addr)
		c.updateNZ(c.A)
		c.Cycles += 4
		if crossed {
			c.Cycles++
		}
	case 0xB9:
		addr, crossed := c.addrAbsoluteY()
		c.A = c.read(addr)
		c.updateNZ(c.A)
		c.Cycles += 4
		if crossed {
			c.Cycles++
		}
	case 0xA1:
		c.A = c.read(c.addrIndexedIndirect())
		c.updateNZ(c.A)
		c.Cycles += 6
	case 0xB1:
		addr, crossed := c.addrIndirectIndexed()
		c.A = c.read(addr)
		c.updateNZ(c.A)
		c.Cycles += 5
		if crossed {
			c.Cycles++
		}
	case 0xA2:
		c.X = c.fetch()
		c.updateNZ(c.X)
		c.Cycles += 2
	case 0xA6:
		c.X = c.read(c.addrZeroPage())
		c.updateNZ(c.X)
		c.Cycles += 3
	case 0xB6:
		c.X = c.read(c.addrZeroPageY())
		c.updateNZ(c.X)
		c.Cycles += 4
	case 0xAE:
		c.X = c.read(c.addrAbsolute())
		c.updateNZ(c.X)
		c.Cycles += 4
	case 0xBE:
		addr, crossed := c.addrAbsoluteY()
		c.X = c.read(addr)
		c.updateNZ(c.X)
		c.Cycles += 4
		if crossed {
			c.Cycles++
		}
	case 0xA0:
		c.Y = c.fetch()
		c.updateNZ(c.Y)
		c.Cycles += 2
	case 0xA4:
		c.Y = c.read(c.addrZeroPage())
		c.updateNZ(c.Y)
		c.Cycles += 3
	case 0xB4:
		c.Y = c.read(c.addrZeroPageX())
		c.updateNZ(c.Y)
		c.Cycles += 4
	case 0xAC:
		c.Y = c.read(c.addrAbsolute())
		c.updateNZ(c.Y)
		c.Cycles += 4
	case 0xBC:
		addr, crossed := c.addrAbsoluteX()
		c.Y = c.read(addr)
		c.updateNZ(c.Y)
		c.Cycles += 4
		if crossed {
			c.Cycles++
		}
	case 0x85:
		c.write(c.addrZeroPage(), c.A)
		c.Cycles += 3
	case 0x95:
		c.write(c.addrZeroPageX(), c.A)
		c.Cycles += 4
	case 0x8D:
		c.write(c.addrAbsolute(), c.A)
		c.Cycles += 4
	case 0x9D:
		addr, _ := c.addrAbsoluteX()
		c.write(addr, c.A)
		c.Cycles += 5
	case 0x99:
		addr, _ := c.addrAbsoluteY()
		c.write(addr, c.A)
		c.Cycles += 5
	case 0x81:
		c.write(c.addrIndexedIndirect(), c.A)
		c.Cycles += 6
	case 0x91:
		addr, _ := c.addrIndirectIndexed()
		c.write(addr, c.A)
		c.Cycles += 6
	case 0x86:
		c.write(c.addrZeroPage(), c.X)
		c.Cycles += 3
	case 0x96:
		c.write(c.addrZeroPageY(), c.X)
		c.Cycles += 4
	case 0x8E:
		c.write(c.addrAbsolute(), c.X)
		c.Cycles += 4
	case 0x84:
		c.write(c.addrZeroPage(), c.Y)
		c.Cycles += 3
	case 0x94:
		c.write(c.addrZeroPageX(), c.Y)
		c.Cycles += 4
	case 0x8C:
		c.write(c.addrAbsolute(), c.Y)
		c.Cycles += 4

	// --- Transfers ---
	case 0xAA:
		c.X = c.A
		c.updateNZ(c.X)
		c.Cycles += 2
	case 0x8A:
		c.A = c.X
		c.updateNZ(c.A)
		c.Cycles += 2
	case 0xA8:
		c.Y = c.A
		c.updateNZ(c.Y)
		c.Cycles += 2
	case 0x98:
		c.A = c.Y
		c.updateNZ(c.A)
		c.Cycles += 2
	case 0xBA:
		c.X = c.SP
		c.updateNZ(c.X)
		c.Cycles += 2
	case 0x9A:
		c.SP = c.X
		c.Cycles += 2

	// --- Stack ---
	case 0x48:
		c.push(c.A)
		c.Cycles += 3
	case 0x68:
		c.A = c.pull()
		c.updateNZ(c.A)
		c.Cycles += 4
	case 0x08:
		c.push(c.P | FlagBreak | FlagConstant)
		c.Cycles += 3
	case 0x28:
		c.P = (c.pull() &^ FlagBreak) | FlagConstant
		c.Cycles += 4

	// --- ADC / SBC ---
	case 0x69:
		c.adc(c.fetch())
		c.Cycles += 2
	case 0x65:
		c.adc(c.read(c.addrZeroPage()))
		c.Cycles += 3
	case 0x75:
		c.adc(c.read(c.addrZeroPageX()))
		c.Cycles += 4
	case 0x6D:
		c.adc(c.read(c.addrAbsolute()))
		c.Cycles += 4
	case 0x7D:
		addr, crossed := c.addrAbsoluteX()
		c.adc(c.read(addr))
		c.Cycles += 4
		if crossed {
			c.Cycles++
		}
	case 0x79:
		addr, crossed := c.addrAbsoluteY()
		c.adc(c.read(addr))
		c.Cycles += 4
		if crossed {
			c.Cycles++
		}
	case 0x61:
		c.adc(c.read(c.addrIndexedIndirect()))
		c.Cycles += 6
	case 0x71:
		addr, crossed := c.addrIndirectIndexed()
		c.adc(c.read(addr))
		c.Cycles += 5
		if crossed {
			c.Cycles++
		}
	case 0xE9:
		c.sbc(c.fetch())
		c.Cycles += 2
	case 0xE5:
		c.sbc(c.read(c.addrZeroPage()))
		c.Cycles += 3
	case 0xF5:
		c.sbc(c.read(c.addrZeroPageX()))
		c.Cycles += 4
	case 0xED:
		c.sbc(c.read(c.addrAbsolute()))
		c.Cycles += 4
	case 0xFD:
		addr, crossed := c.addrAbsoluteX()
		c.sbc(c.read(addr))
		c.Cycles += 4
		if crossed {
			c.Cycles++
		}
	case 0xF9:
		addr, crossed := c.addrAbsoluteY()
		c.sbc(c.read(addr))
		c.Cycles += 4
		if crossed {
			c.Cycles++
		}
	case 0xE1:
		c.sbc(c.read(c.addrIndexedIndirect()))
		c.Cycles += 6
	case 0xF1:
		addr, crossed := c.addrIndirectIndexed()
		c.sbc(c.read(addr))
		c.Cycles += 5
		if crossed {
			c.Cycles++
		}

	// --- Increment / decrement ---
	case 0xE6:
		c.rmw(c.addrZeroPage(), func(v byte) byte { r := v + 1; c.updateNZ(r); return r })
		c.Cycles += 5
	case 0xF6:
		c.rmw(c.addrZeroPageX(), func(v byte) byte { r := v + 1; c.updateNZ(r); return r })
		c.Cycles += 6
	case 0xEE:
		c.rmw(c.addrAbsolute(), func(v byte) byte { r := v + 1; c.updateNZ(r); return r })
		c.Cycles += 6
	case 0xFE:
		addr, _ := c.addrAbsoluteX()
		c.rmw(addr, func(v byte) byte { r := v + 1; c.updateNZ(r); return r })
		c.Cycles += 7
	case 0xC6:
		c.rmw(c.addrZeroPage(), func(v byte) byte { r := v - 1; c.updateNZ(r); return r })
		c.Cycles += 5
	case 0xD6:
		c.rmw(c.addrZeroPageX(), func(v byte) byte { r := v - 1; c.updateNZ(r); return r })
		c.Cycles += 6
	case 0xCE:
		c.rmw(c.addrAbsolute(), func(v byte) byte { r := v - 1; c.updateNZ(r); return r })
		c.Cycles += 6
	case 0xDE:
		addr, _ := c.addrAbsoluteX()
		c.rmw(addr, func(v byte) byte { r := v - 1; c.updateNZ(r); return r })
		c.Cycles += 7
	case 0xE8:
		c.X++
		c.updateNZ(c.X)
		c.Cycles += 2
	case 0xC8:
		c.Y++
		c.updateNZ(c.Y)
		c.Cycles += 2
	case 0xCA:
		c.X--
		c.updateNZ(c.X)
		c.Cycles += 2
	case 0x88:
		c.Y--
		c.updateNZ(c.Y)
		c.Cycles += 2

	// --- Logical ---
	case 0x29:
		c.A &= c.fetch()
		c.updateNZ(c.A)
		c.Cycles += 2
	case 0x25:
		c.A &= c.read(c.addrZeroPage())
		c.updateNZ(c.A)
		c.Cycles += 3
	case 0x35:
		c.A &= c.read(c.addrZeroPageX())
		c.updateNZ(c.A)
		c.Cycles += 4
	case 0x2D:
		c.A &= c.read(c.addrAbsolute())
		c.updateNZ(c.A)
		c.Cycles += 4
	case 0x3D:
		addr, crossed := c.addrAbsoluteX()
		c.A &= c.read(addr)
		c.updateNZ(c.A)
		c.Cycles += 4
		if crossed {
			c.Cycles++
		}
	case 0x39:
		addr, crossed := c.addrAbsoluteY()
		c.A &= c.read(addr)
		c.updateNZ(c.A)
		c.Cycles += 4
		if crossed {
			c.Cycles++
		}
	case 0x21:
		c.A &= c.read(c.addrIndexedIndirect())
		c.updateNZ(c.A)
		c.Cycles += 6
	case 0x31:
		addr, crossed := c.addrIndirectIndexed()
		c.A &= c.read(addr)
		c.updateNZ(c.A)
		c.Cycles += 5
		if crossed {
			c.Cycles++
		}
	case 0x09:
		c.A |= c.fetch()
		c.updateNZ(c.A)
		c.Cycles += 2
	case 0x05:
		c.A |= c.read(c.addrZeroPage())
		c.updateNZ(c.A)
		c.Cycles += 3
	case 0x15:
		c.A |= c.read(c.addrZeroPageX())
		c.updateNZ(c.A)
		c.Cycles += 4
	case 0x0D:
		c.A |= c.read(c.addrAbsolute())
		c.updateNZ(c.A)
		c.Cycles += 4
	case 0x1D:
		addr, crossed := c.addrAbsoluteX()
		c.A |= c.read(addr)
		c.updateNZ(c.A)
		c.Cycles += 4
		if crossed {
			c.Cycles++
		}
	case 0x19:
		addr, crossed := c.addrAbsoluteY()
		c.A |= c.read(addr)
		c.updateNZ(c.A)
		c.Cycles += 4
		if crossed {
			c.Cycles++
		}
	case 0x01:
		c.A |= c.read(c.addrIndexedIndirect())
		c.updateNZ(c.A)
		c.Cycles += 6
	case 0x11:
		addr, crossed := c.addrIndirectIndexed()
		c.A |= c.read(addr)
		c.updateNZ(c.A)
		c.Cycles += 5
		if crossed {
			c.Cycles++
		}
	case 0x49:
		c.A ^= c.fetch()
		c.updateNZ(c.A)
		c.Cycles += 2
	case 0x45:
		c.A ^= c.read(c.addrZeroPage())
		c.updateNZ(c.A)
		c.Cycles += 3
	case 0x55:
		c.A ^= c.read(c.addrZeroPageX())
		c.updateNZ(c.A)
		c.Cycles += 4
	case 0x4D:
		c.A ^= c.read(c.addrAbsolute())
		c.updateNZ(c.A)
		c.Cycles += 4
	case 0x5D:
		addr, crossed := c.addrAbsoluteX()
		c.A ^= c.read(addr)
		c.updateNZ(c.A)
		c.Cycles += 4
		if crossed {
			c.Cycles++
		}
	case 0x59:
		addr, crossed := c.addrAbsoluteY()
		c.A ^= c.read(addr)
		c.updateNZ(c.A)
		c.Cycles += 4
		if crossed {
			c.Cycles++
		}
	case 0x41:
		c.A ^= c.read(c.addrIndexedIndirect())
		c.updateNZ(c.A)
		c.Cycles += 6
	case 0x51:
		addr, crossed := c.addrIndirectIndexed()
		c.A ^= c.read(addr)
		c.updateNZ(c.A)
		c.Cycles += 5
		if crossed {
			c.Cycles++
		}

	// --- Shifts / rotates ---
	case 0x0A:
		c.A = c.asl(c.A)
		c.Cycles += 2
	case 0x06:
		addr := c.addrZeroPage()
		c.rmw(addr, c.asl)
		c.Cycles += 5
	case 0x16:
		addr := c.addrZeroPageX()
		c.rmw(addr, c.asl)
		c.Cycles += 6
	case 0x0E:
		addr := c.addrAbsolute()
		c.rmw(addr, c.asl)
		c.Cycles += 6
	case 0x1E:
		addr, _ := c.addrAbsoluteX()
		c.rmw(addr, c.asl)
		c.Cycles += 7
	case 0x4A:
		c.A = c.lsr(c.A)
		c.Cycles += 2
	case 0x46:
		c.rmw(c.addrZeroPage(), c.lsr)
		c.Cycles += 5
	case 0x56:
		c.rmw(c.addrZeroPageX(), c.lsr)
		c.Cycles += 6
	case 0x4E:
		c.rmw(c.addrAbsolute(), c.lsr)
		c.Cycles += 6
	case 0x5E:
		addr, _ := c.addrAbsoluteX()
		c.rmw(addr, c.lsr)
		c.Cycles += 7
	case 0x2A:
		c.A = c.rol(c.A)
		c.Cycles += 2
	case 0x26:
		c.rmw(c.addrZeroPage(), c.rol)
		c.Cycles += 5
	case 0x36:
		c.rmw(c.addrZeroPageX(), c.rol)
		c.Cycles += 6
	case 0x2E:
		c.rmw(c.addrAbsolute(), c.rol)
		c.Cycles += 6
	case 0x3E:
		addr, _ := c.addrAbsoluteX()
		c.rmw(addr, c.rol)
		c.Cycles += 7
	case 0x6A:
		c.A = c.ror(c.A)
		c.Cycles += 2
	case 0x66:
		c.rmw(c.addrZeroPage(), c.ror)
		c.Cycles += 5
	case 0x76:
		c.rmw(c.addrZeroPageX(), c.ror)
		c.Cycles += 6
	case 0x6E:
		c.rmw(c.addrAbsolute(), c.ror)
		c.Cycles += 6
	case 0x7E:
		addr, _ := c.addrAbsoluteX()
		c.rmw(addr, c.ror)
		c.Cycles += 7

	// --- Compares ---
	case 0xC9:
		c.compare(c.A, c.fetch())
		c.Cycles += 2
	case 0xC5:
		c.compare(c.A, c.read(c.addrZeroPage()))
		c.Cycles += 3
	case 0xD5:
		c.compare(c.A, c.read(c.addrZeroPageX()))
		c.Cycles += 4
	case 0xCD:
		c.compare(c.A, c.read(c.addrAbsolute()))
		c.Cycles += 4
	case 0xDD:
		addr, crossed := c.addrAbsoluteX()
		c.compare(c.A, c.read(addr))
		c.Cycles += 4
		if crossed {
			c.Cycles++
		}
	case 0xD9:
		addr, crossed := c.addrAbsoluteY()
		c.compare(c.A, c.read(addr))
		c.Cycles += 4
		if crossed {
			c.Cycles++
		}
	case 0xC1:
		c.compare(c.A, c.read(c.addrIndexedIndirect()))
		c.Cycles += 6
	case 0xD1:
		addr, crossed := c.addrIndirectIndexed()
		c.compare(c.A, c.read(addr))
		c.Cycles += 5
		if crossed {
			c.Cycles++
		}
	case 0xE0:
		c.compare(c.X, c.fetch())
		c.Cycles += 2
	case 0xE4:
		c.compare(c.X, c.read(c.addrZeroPage()))
		c.Cycles += 3
	case 0xEC:
		c.compare(c.X, c.read(c.addrAbsolute()))
		c.Cycles += 4
	case 0xC0:
		c.compare(c.Y, c.fetch())
		c.Cycles += 2
	case 0xC4:
		c.compare(c.Y, c.read(c.addrZeroPage()))
		c.Cycles += 3
	case 0xCC:
		c.compare(c.Y, c.read(c.addrAbsolute()))
		c.Cycles += 4

	// --- Bit test ---
	case 0x24:
		c.bit(c.read(c.addrZeroPage()))
		c.Cycles += 3
	case 0x2C:
		c.bit(c.read(c.addrAbsolute()))
		c.Cycles += 4

	// --- Branches ---
	case 0x90:
		c.branch(!c.flag(FlagCarry))
	case 0xB0:
		c.branch(c.flag(FlagCarry))
	case 0xF0:
		c.branch(c.flag(FlagZero))
	case 0xD0:
		c.branch(!c.flag(FlagZero))
	case 0x30:
		c.branch(c.flag(FlagNegative))
	case 0x10:
		c.branch(!c.flag(FlagNegative))
	case 0x50:
		c.branch(!c.flag(FlagOverflow))
	case 0x70:
		c.branch(c.flag(FlagOverflow))

	// --- Jumps / subroutines ---
	case 0x4C:
		c.PC = c.addrAbsolute()
		c.Cycles += 3
	case 0x6C:
		c.PC = c.addrIndirect()
		c.Cycles += 5
	case 0x20:
		target := c.addrAbsolute()
		c.push16(c.PC - 1)
		c.PC = target
		c.Cycles += 6
	case 0x60:
		c.PC = c.pull16() + 1
		c.Cycles += 6
	case 0x40:
		c.P = (c.pull() &^ FlagBreak) | FlagConstant
		c.PC = c.pull16()
		c.Cycles += 6

	// --- Flags ---
	case 0x18:
		c.setFlag(FlagCarry, false)
		c.Cycles += 2
	case 0x38:
		c.setFlag(FlagCarry, true)
		c.Cycles += 2
	case 0x58:
		c.setFlag(FlagIRQDis, false)
		c.Cycles += 2
	case 0x78:
		c.setFlag(FlagIRQDis, true)
		c.Cycles += 2
	case 0xB8:
		c.setFlag(FlagOverflow, false)
		c.Cycles += 2
	case 0xD8:
		c.setFlag(FlagDecimal, false)
		c.Cycles += 2
	case 0xF8:
		c.setFlag(FlagDecimal, true)
		c.Cycles += 2

	// --- Misc ---
	case 0xEA:
		c.Cycles += 2
	case 0x00:
		c.push16(c.PC + 1)
		c.push(c.P | FlagBreak | FlagConstant)
		c.setFlag(FlagIRQDis, true)
		c.setFlag(FlagDecimal, false)
		c.PC = c.read16(irqVector)
		c.Cycles += 7

	default:
		c.execute65C02(op)
	}
}

// rmw performs a read-modify-write at addr, as used by INC/DEC/ASL/LSR/
// ROL/ROR and the 65C02 RMB/SMB/TRB/TSB families.
func (c *CPU) rmw(addr uint16, f func(byte) byte) {
	v := c.read(addr)
	r := f(v)
	c.write(addr, r)
}

func (c *CPU) asl(v byte) byte {
	c.setFlag(FlagCarry, v&0x80 != 0)
	r := v << 1
	c.updateNZ(r)
	return r
}

func (c *CPU) lsr(v byte) byte {
	c.setFlag(FlagCarry, v&0x01 != 0)
	r := v >> 1
	c.updateNZ(r)
	return r
}

func (c *CPU) rol(v byte) byte {
	carryIn := byte(0)
	if c.flag(FlagCarry) {
		carryIn = 1
	}
	c.setFlag(FlagCarry, v&0x80 != 0)
	r := v<<1 | carryIn
	c.updateNZ(r)
	return r
}

func (c *CPU) ror(v byte) byte {
	carryIn := byte(0)
	if c.flag(FlagCarry) {
		carryIn = 0x80
	}
	c.setFlag(FlagCarry, v&0x01 != 0)
	r := v>>1 | carryIn
	c.updateNZ(r)
	return r
}

func (c *CPU) compare(reg, value byte) {
	r := reg - value
	c.setFlag(FlagCarry, reg >= value)
	c.updateNZ(r)
}

func (c *CPU) bit(value byte) {
	c.setFlag(FlagZero, c.A&value == 0)
	c.setFlag(FlagOverflow, value&0x40 != 0)
	c.setFlag(FlagNegative, value&0x80 != 0)
}

// branch implements the 2/3/4-cycle timing law: 2 if not taken, 3 if
// taken, 4 if taken and the branch target crosses a page boundary.
func (c *CPU) branch(take bool) {
	target, crossed := c.relBranch()
	if !take {
		c.Cycles += 2
		return
	}
	c.PC = target
	c.Cycles += 3
	if crossed {
		c.Cycles++
	}
}

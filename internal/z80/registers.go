package z80

// 16-bit register-pair accessors. The Z80's register file is most
// naturally addressed byte-by-byte (8-bit loads, INC r, flag logic all
// operate on single registers), so pairs are composed on demand rather
// than stored as a separate aliasing type.

func (c *CPU) bc() uint16 { return uint16(c.B)<<8 | uint16(c.C) }
func (c *CPU) de() uint16 { return uint16(c.D)<<8 | uint16(c.E) }
func (c *CPU) hl() uint16 { return uint16(c.H)<<8 | uint16(c.L) }
func (c *CPU) af() uint16 { return uint16(c.A)<<8 | uint16(c.F) }

func (c *CPU) setBC(v uint16) { c.B, c.C = uint8(v>>8), uint8(v) }
func (c *CPU) setDE(v uint16) { c.D, c.E = uint8(v>>8), uint8(v) }
func (c *CPU) setHL(v uint16) { c.H, c.L = uint8(v>>8), uint8(v) }
func (c *CPU) setAF(v uint16) { c.A, c.F = uint8(v>>8), uint8(v) }

// exAF swaps AF with the shadow AF' (EX AF, AF').
func (c *CPU) exAF() {
	c.A, c.A2 = c.A2, c.A
	c.F, c.F2 = c.F2, c.F
}

// exx swaps BC, DE, HL with their shadow counterparts.
func (c *CPU) exx() {
	c.B, c.B2 = c.B2, c.B
	c.C, c.C2 = c.C2, c.C
	c.D, c.D2 = c.D2, c.D
	c.E, c.E2 = c.E2, c.E
	c.H, c.H2 = c.H2, c.H
	c.L, c.L2 = c.L2, c.L
}

// reg8 reads, and setReg8 writes, one of the eight 8-bit register
// encodings used throughout the opcode space (bits rrr / ddd / sss):
// 0=B 1=C 2=D 3=E 4=H 5=L 6=(HL) 7=A. Index 6 reads/writes through the
// bus at the address given by hlAddr, so callers working with an indexed
// (IX+d)/(IY+d) form can substitute the displaced address.
func (c *CPU) reg8(index uint8, hlAddr uint16) uint8 {
	switch index {
	case 0:
		return c.B
	case 1:
		return c.C
	case 2:
		return c.D
	case 3:
		return c.E
	case 4:
		return c.H
	case 5:
		return c.L
	case 6:
		return c.readByte(hlAddr)
	default:
		return c.A
	}
}

func (c *CPU) setReg8(index uint8, hlAddr uint16, v uint8) {
	switch index {
	case 0:
		c.B = v
	case 1:
		c.C = v
	case 2:
		c.D = v
	case 3:
		c.E = v
	case 4:
		c.H = v
	case 5:
		c.L = v
	case 6:
		c.writeByte(hlAddr, v)
	default:
		c.A = v
	}
}

// reg16 returns one of the four general register pairs by the 2-bit `p`
// encoding used by most 16-bit opcodes: 0=BC 1=DE 2=HL 3=SP.
func (c *CPU) reg16(p uint8) uint16 {
	switch p {
	case 0:
		return c.bc()
	case 1:
		return c.de()
	case 2:
		return c.hl()
	default:
		return c.SP
	}
}

func (c *CPU) setReg16(p uint8, v uint16) {
	switch p {
	case 0:
		c.setBC(v)
	case 1:
		c.setDE(v)
	case 2:
		c.setHL(v)
	default:
		c.SP = v
	}
}

// reg16AF returns one of the four register pairs by the `p` encoding used
// by PUSH/POP, where slot 3 is AF instead of SP.
func (c *CPU) reg16AF(p uint8) uint16 {
	if p == 3 {
		return c.af()
	}
	return c.reg16(p)
}

func (c *CPU) setReg16AF(p uint8, v uint16) {
	if p == 3 {
		c.setAF(v)
		return
	}
	c.setReg16(p, v)
}

package z80

// executeED runs an ED-prefixed opcode. opcode2 has already been fetched
// by the caller (so the ED+opcode M1 pair, 8 T-states, is already
// charged); entries here only add what's beyond that baseline. Opcodes ED
// doesn't define behave as a two-byte NOP on real hardware.
func (c *CPU) executeED(opcode2 uint8) {
	switch opcode2 {
	case 0x47: // LD I,A
		c.I = c.A
		c.tick(1)
	case 0x4F: // LD R,A
		c.R = c.A
		c.tick(1)
	case 0x57: // LD A,I
		c.A = c.I
		c.setSZYX(c.A)
		c.setFlag(FlagH, false)
		c.setFlag(FlagN, false)
		c.setFlag(FlagPV, c.IFF2)
		c.tick(1)
	case 0x5F: // LD A,R
		c.A = c.R
		c.setSZYX(c.A)
		c.setFlag(FlagH, false)
		c.setFlag(FlagN, false)
		c.setFlag(FlagPV, c.IFF2)
		c.tick(1)
	case 0x44, 0x4C, 0x54, 0x5C, 0x64, 0x6C, 0x74, 0x7C: // NEG
		c.neg()
	case 0x46, 0x4E, 0x66, 0x6E: // IM 0
		c.IM = 0
	case 0x56, 0x76: // IM 1
		c.IM = 1
	case 0x5E, 0x7E: // IM 2
		c.IM = 2
	case 0x45, 0x4D, 0x55, 0x5D, 0x65, 0x6D, 0x75, 0x7D: // RETN/RETI
		if opcode2 == 0x4D {
			c.reti()
		} else {
			c.retn()
		}
	case 0x67: // RRD
		c.rrd()
	case 0x6F: // RLD
		c.rld()
	case 0xA0:
		c.ldi()
	case 0xA8:
		c.ldd()
	case 0xB0:
		c.ldir()
	case 0xB8:
		c.lddr()
	case 0xA1:
		c.cpi()
	case 0xA9:
		c.cpd()
	case 0xB1:
		c.cpir()
	case 0xB9:
		c.cpdr()
	case 0xA2:
		c.ini()
	case 0xAA:
		c.ind()
	case 0xB2:
		c.inir()
	case 0xBA:
		c.indr()
	case 0xA3:
		c.outi()
	case 0xAB:
		c.outd()
	case 0xB3:
		c.otir()
	case 0xBB:
		c.otdr()
	default:
		if opcode2 >= 0x40 && opcode2 < 0x80 {
			c.executeEDRegisterOps(opcode2)
		}
	}
}

// executeEDRegisterOps handles the regular ED-prefixed 16-bit group:
// IN r,(C) / OUT (C),r (0x40-0x7B step 8, columns 0/1), ADC/SBC HL,rr
// (0x4A/0x42 + 16*p), LD (nn),rr / LD rr,(nn) for BC/DE/SP.
func (c *CPU) executeEDRegisterOps(opcode2 uint8) {
	y := (opcode2 >> 3) & 7
	z := opcode2 & 7
	p := (opcode2 >> 4) & 3
	q := (opcode2 >> 3) & 1

	switch z {
	case 0: // IN r,(C) / IN (C) for y==6
		v := uint8(0xFF)
		if c.io != nil {
			v = c.io.In(c.C)
		}
		c.tick(4)
		c.setFlag(FlagS, v&0x80 != 0)
		c.setFlag(FlagZ, v == 0)
		c.setFlag(FlagH, false)
		c.setFlag(FlagPV, parity(v))
		c.setFlag(FlagN, false)
		c.setYX(v)
		if y != 6 {
			c.setReg8(y, 0, v)
		}
	case 1: // OUT (C),r / OUT (C),0 for y==6
		v := uint8(0)
		if y != 6 {
			v = c.reg8(y, 0)
		}
		c.tick(4)
		if c.io != nil {
			c.io.Out(c.C, v)
		}
	case 2:
		if q == 0 {
			c.setHL(c.sbc16(c.hl(), c.reg16(p)))
		} else {
			c.setHL(c.adc16(c.hl(), c.reg16(p)))
		}
		c.tick(7)
	case 3:
		addr := c.nextWord()
		if q == 0 {
			v := c.reg16(p)
			c.writeByte(addr, uint8(v))
			c.writeByte(addr+1, uint8(v>>8))
		} else {
			lo := c.readByte(addr)
			hi := c.readByte(addr + 1)
			c.setReg16(p, uint16(hi)<<8|uint16(lo))
		}
	}
}

// rrd/rld rotate the accumulator's low nibble through (HL)'s two nibbles.
func (c *CPU) rrd() {
	m := c.readByte(c.hl())
	result := c.A&0xF0 | m&0x0F
	newM := (c.A&0x0F)<<4 | m>>4
	c.A = result
	c.writeByte(c.hl(), newM)
	c.tick(4)
	c.setSZYX(c.A)
	c.setFlag(FlagH, false)
	c.setFlag(FlagN, false)
	c.setFlag(FlagPV, parity(c.A))
}

func (c *CPU) rld() {
	m := c.readByte(c.hl())
	newA := c.A&0xF0 | m>>4
	newM := (m<<4)&0xF0 | c.A&0x0F
	c.A = newA
	c.writeByte(c.hl(), newM)
	c.tick(4)
	c.setSZYX(c.A)
	c.setFlag(FlagH, false)
	c.setFlag(FlagN, false)
	c.setFlag(FlagPV, parity(c.A))
}

// ldi/ldd/ldir/lddr implement the block-copy group.
func (c *CPU) ldi() {
	v := c.readByte(c.hl())
	c.writeByte(c.de(), v)
	c.tick(2)
	c.setHL(c.hl() + 1)
	c.setDE(c.de() + 1)
	c.setBC(c.bc() - 1)
	c.setFlag(FlagH, false)
	c.setFlag(FlagN, false)
	c.setFlag(FlagPV, c.bc() != 0)
	n := v + c.A
	c.setFlag(FlagY, n&0x02 != 0)
	c.setFlag(FlagX, n&0x08 != 0)
}

func (c *CPU) ldd() {
	v := c.readByte(c.hl())
	c.writeByte(c.de(), v)
	c.tick(2)
	c.setHL(c.hl() - 1)
	c.setDE(c.de() - 1)
	c.setBC(c.bc() - 1)
	c.setFlag(FlagH, false)
	c.setFlag(FlagN, false)
	c.setFlag(FlagPV, c.bc() != 0)
	n := v + c.A
	c.setFlag(FlagY, n&0x02 != 0)
	c.setFlag(FlagX, n&0x08 != 0)
}

func (c *CPU) ldir() {
	c.ldi()
	if c.bc() != 0 {
		c.PC -= 2
		c.tick(5)
	}
}

func (c *CPU) lddr() {
	c.ldd()
	if c.bc() != 0 {
		c.PC -= 2
		c.tick(5)
	}
}

// cpi/cpd/cpir/cpdr implement the block-compare group.
func (c *CPU) cpi() {
	v := c.readByte(c.hl())
	result := c.A - v
	c.tick(5)
	c.setHL(c.hl() + 1)
	c.setBC(c.bc() - 1)
	c.setFlag(FlagS, result&0x80 != 0)
	c.setFlag(FlagZ, result == 0)
	c.setFlag(FlagH, (c.A&0xF) < (v&0xF))
	c.setFlag(FlagPV, c.bc() != 0)
	c.setFlag(FlagN, true)
	n := result
	if c.flagSet(FlagH) {
		n--
	}
	c.setFlag(FlagY, n&0x02 != 0)
	c.setFlag(FlagX, n&0x08 != 0)
}

func (c *CPU) cpd() {
	v := c.readByte(c.hl())
	result := c.A - v
	c.tick(5)
	c.setHL(c.hl() - 1)
	c.setBC(c.bc() - 1)
	c.setFlag(FlagS, result&0x80 != 0)
	c.setFlag(FlagZ, result == 0)
	c.setFlag(FlagH, (c.A&0xF) < (v&0xF))
	c.setFlag(FlagPV, c.bc() != 0)
	c.setFlag(FlagN, true)
	n := result
	if c.flagSet(FlagH) {
		n--
	}
	c.setFlag(FlagY, n&0x02 != 0)
	c.setFlag(FlagX, n&0x08 != 0)
}

func (c *CPU) cpir() {
	c.cpi()
	if c.bc() != 0 && !c.flagSet(FlagZ) {
		c.PC -= 2
		c.tick(5)
	}
}

func (c *CPU) cpdr() {
	c.cpd()
	if c.bc() != 0 && !c.flagSet(FlagZ) {
		c.PC -= 2
		c.tick(5)
	}
}

// ini/ind/inir/indr and outi/outd/otir/otdr implement the block I/O group.
func (c *CPU) ini() {
	c.tick(1)
	v := uint8(0xFF)
	if c.io != nil {
		v = c.io.In(c.C)
	}
	c.tick(4)
	c.writeByte(c.hl(), v)
	c.setHL(c.hl() + 1)
	c.B--
	c.setFlag(FlagZ, c.B == 0)
	c.setFlag(FlagN, true)
}

func (c *CPU) ind() {
	c.tick(1)
	v := uint8(0xFF)
	if c.io != nil {
		v = c.io.In(c.C)
	}
	c.tick(4)
	c.writeByte(c.hl(), v)
	c.setHL(c.hl() - 1)
	c.B--
	c.setFlag(FlagZ, c.B == 0)
	c.setFlag(FlagN, true)
}

func (c *CPU) inir() {
	c.ini()
	if c.B != 0 {
		c.PC -= 2
		c.tick(5)
	}
}

func (c *CPU) indr() {
	c.ind()
	if c.B != 0 {
		c.PC -= 2
		c.tick(5)
	}
}

func (c *CPU) outi() {
	c.tick(1)
	v := c.readByte(c.hl())
	if c.io != nil {
		c.io.Out(c.C, v)
	}
	c.tick(4)
	c.setHL(c.hl() + 1)
	c.B--
	c.setFlag(FlagZ, c.B == 0)
	c.setFlag(FlagN, true)
}

func (c *CPU) outd() {
	c.tick(1)
	v := c.readByte(c.hl())
	if c.io != nil {
		c.io.Out(c.C, v)
	}
	c.tick(4)
	c.setHL(c.hl() - 1)
	c.B--
	c.setFlag(FlagZ, c.B == 0)
	c.setFlag(FlagN, true)
}

func (c *CPU) otir() {
	c.outi()
	if c.B != 0 {
		c.PC -= 2
		c.tick(5)
	}
}

func (c *CPU) otdr() {
	c.outd()
	if c.B != 0 {
		c.PC -= 2
		c.tick(5)
	}
}

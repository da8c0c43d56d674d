package z80

// executeIndexed runs a DD- or FD-prefixed opcode, substituting reg (&c.IX
// or &c.IY) for HL. Only the instructions the real hardware actually
// redirects are handled specially here; everything else behaves exactly
// as the unprefixed form (the prefix is wasted, which is what real
// silicon does too for the handful of opcodes DD/FD doesn't affect).
// opcode2 has already been fetched by the caller.
func (c *CPU) executeIndexed(opcode2 uint8, reg *uint16) {
	if opcode2 == 0xCB {
		d := int8(c.nextByte())
		cbOp := c.readByte(c.PC)
		c.PC++
		c.tick(2)
		addr := uint16(int32(*reg) + int32(d))
		c.executeIndexedCB(cbOp, addr)
		return
	}

	switch opcode2 {
	case 0x21: // LD IX,nn
		*reg = c.nextWord()
	case 0x22: // LD (nn),IX
		addr := c.nextWord()
		c.writeByte(addr, uint8(*reg))
		c.writeByte(addr+1, uint8(*reg>>8))
	case 0x2A: // LD IX,(nn)
		addr := c.nextWord()
		lo := c.readByte(addr)
		hi := c.readByte(addr + 1)
		*reg = uint16(hi)<<8 | uint16(lo)
	case 0x23: // INC IX
		*reg++
		c.tick(2)
	case 0x2B: // DEC IX
		*reg--
		c.tick(2)
	case 0x24: // INC IXH (undocumented but harmless to support)
		*reg = uint16(c.inc8(uint8(*reg>>8)))<<8 | *reg&0xFF
	case 0x2C: // INC IXL
		*reg = *reg&0xFF00 | uint16(c.inc8(uint8(*reg)))
	case 0x25: // DEC IXH
		*reg = uint16(c.dec8(uint8(*reg>>8)))<<8 | *reg&0xFF
	case 0x2D: // DEC IXL
		*reg = *reg&0xFF00 | uint16(c.dec8(uint8(*reg)))
	case 0x34: // INC (IX+d)
		addr := c.indexedAddr(reg)
		c.writeByte(addr, c.inc8(c.readByte(addr)))
		c.tick(1)
	case 0x35: // DEC (IX+d)
		addr := c.indexedAddr(reg)
		c.writeByte(addr, c.dec8(c.readByte(addr)))
		c.tick(1)
	case 0x36: // LD (IX+d),n
		d := int8(c.readByte(c.PC))
		c.PC++
		n := c.readByte(c.PC)
		c.PC++
		c.tick(2)
		c.writeByte(uint16(int32(*reg)+int32(d)), n)
	case 0x09, 0x19, 0x29, 0x39: // ADD IX,rr
		p := (opcode2 >> 4) & 3
		var operand uint16
		if p == 2 {
			operand = *reg
		} else {
			operand = c.reg16(p)
		}
		*reg = c.add16(*reg, operand)
		c.tick(7)
	case 0xE1: // POP IX
		*reg = c.pop()
	case 0xE5: // PUSH IX
		c.tick(1)
		c.push(*reg)
	case 0xE3: // EX (SP),IX
		lo := c.readByte(c.SP)
		hi := c.readByte(c.SP + 1)
		c.writeByte(c.SP, uint8(*reg))
		c.writeByte(c.SP+1, uint8(*reg>>8))
		*reg = uint16(hi)<<8 | uint16(lo)
		c.tick(3)
	case 0xE9: // JP (IX)
		c.PC = *reg
	case 0xF9: // LD SP,IX
		c.SP = *reg
		c.tick(2)
	default:
		if isIndexedMemOpcode(opcode2) {
			c.executeIndexedMem(opcode2, reg)
			return
		}
		// Not affected by the prefix: behave as the unprefixed instruction.
		c.execute(opcode2)
	}
}

// indexedAddr reads the displacement byte following the current opcode2
// and returns the effective (IX+d)/(IY+d) address. The read itself charges
// 3 T-states; the address arithmetic costs 5 more internal T-states, per
// the documented timing for the LD/ALU/INC/DEC (IX+d) forms.
func (c *CPU) indexedAddr(reg *uint16) uint16 {
	d := int8(c.readByte(c.PC))
	c.PC++
	c.tick(5)
	return uint16(int32(*reg) + int32(d))
}

// isIndexedMemOpcode reports whether opcode2 is one of the LD r,(HL) /
// LD (HL),r / ALU A,(HL) forms that redirect through (IX+d)/(IY+d) when
// prefixed, i.e. it references register index 6 as an operand.
func isIndexedMemOpcode(opcode2 uint8) bool {
	x := opcode2 >> 6
	y := (opcode2 >> 3) & 7
	z := opcode2 & 7
	switch x {
	case 1: // LD r,r'
		return opcode2 != 0x76 && (y == 6 || z == 6)
	case 2: // ALU A,r
		return z == 6
	}
	return false
}

func (c *CPU) executeIndexedMem(opcode2 uint8, reg *uint16) {
	x := opcode2 >> 6
	y := (opcode2 >> 3) & 7
	z := opcode2 & 7
	addr := c.indexedAddr(reg)

	switch x {
	case 1: // LD r,(IX+d) or LD (IX+d),r
		if z == 6 {
			c.setReg8(y, addr, c.reg8(6, addr))
		} else {
			v := c.reg8(z, 0)
			c.writeByte(addr, v)
		}
	case 2:
		v := c.readByte(addr)
		switch y {
		case 0:
			c.A = c.add8(c.A, v)
		case 1:
			c.A = c.adc8(c.A, v)
		case 2:
			c.A = c.sub8(c.A, v)
		case 3:
			c.A = c.sbc8(c.A, v)
		case 4:
			c.A = c.and8(c.A, v)
		case 5:
			c.A = c.xor8(c.A, v)
		case 6:
			c.A = c.or8(c.A, v)
		default:
			c.cp8(c.A, v)
		}
	}
}

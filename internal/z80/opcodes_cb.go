package z80

// executeCB runs a CB-prefixed opcode against the register/memory operand
// encoded in its low 3 bits (the usual 0=B..7=A, 6=(HL) scheme). The CB
// byte itself has already been fetched by the caller (4 T-states already
// charged on top of the CB prefix's own 4).
func (c *CPU) executeCB(opcode uint8) {
	x := opcode >> 6
	y := (opcode >> 3) & 7
	z := opcode & 7
	addr := c.hl()

	v := c.reg8(z, addr)

	switch x {
	case 0: // rotate/shift group
		var result uint8
		switch y {
		case 0:
			result = c.rlc(v)
		case 1:
			result = c.rrc(v)
		case 2:
			result = c.rl(v)
		case 3:
			result = c.rr(v)
		case 4:
			result = c.sla(v)
		case 5:
			result = c.sra(v)
		case 6:
			result = c.sll(v)
		default:
			result = c.srl(v)
		}
		c.finalizeShiftFlags(result)
		c.setReg8(z, addr, result)
		if z == 6 {
			c.tick(1)
		}
	case 1: // BIT y,r
		c.setFlag(FlagZ, v&(1<<y) == 0)
		c.setFlag(FlagPV, v&(1<<y) == 0)
		c.setFlag(FlagS, y == 7 && v&0x80 != 0)
		c.setFlag(FlagH, true)
		c.setFlag(FlagN, false)
		if z == 6 {
			c.setFlag(FlagY, addr&0x2000 != 0)
			c.setFlag(FlagX, addr&0x0800 != 0)
			c.tick(1)
		} else {
			c.setYX(v)
		}
	case 2: // RES y,r
		c.setReg8(z, addr, v&^(1<<y))
		if z == 6 {
			c.tick(1)
		}
	default: // SET y,r
		c.setReg8(z, addr, v|(1<<y))
		if z == 6 {
			c.tick(1)
		}
	}
}

// executeIndexedCB runs a DDCB/FDCB-prefixed opcode: the displacement byte
// has already been consumed by the caller, addr is (IX+d) or (IY+d). The
// real hardware also writes the result back into the corresponding 8-bit
// register for z != 6 ("undocumented" shadow-store); the Game Gear
// software catalogue doesn't rely on that, so only the (addr) operand is
// affected here.
func (c *CPU) executeIndexedCB(opcode uint8, addr uint16) {
	x := opcode >> 6
	y := (opcode >> 3) & 7
	v := c.readByte(addr)

	switch x {
	case 0:
		var result uint8
		switch y {
		case 0:
			result = c.rlc(v)
		case 1:
			result = c.rrc(v)
		case 2:
			result = c.rl(v)
		case 3:
			result = c.rr(v)
		case 4:
			result = c.sla(v)
		case 5:
			result = c.sra(v)
		case 6:
			result = c.sll(v)
		default:
			result = c.srl(v)
		}
		c.finalizeShiftFlags(result)
		c.writeByte(addr, result)
		c.tick(1)
	case 1: // BIT y,(addr)
		c.setFlag(FlagZ, v&(1<<y) == 0)
		c.setFlag(FlagPV, v&(1<<y) == 0)
		c.setFlag(FlagS, y == 7 && v&0x80 != 0)
		c.setFlag(FlagH, true)
		c.setFlag(FlagN, false)
		c.setFlag(FlagY, addr&0x2000 != 0)
		c.setFlag(FlagX, addr&0x0800 != 0)
		c.tick(1)
	case 2:
		c.writeByte(addr, v&^(1<<y))
		c.tick(1)
	default:
		c.writeByte(addr, v|(1<<y))
		c.tick(1)
	}
}

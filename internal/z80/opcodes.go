package z80

// mainTable is the unprefixed opcode dispatch table. It is populated once,
// at package init, by decomposing the 0x00-0xFF space into the regular
// groups the Z80 encoding falls into (x/y/z/p/q, in Young's notation) and
// filling in the irregular entries by hand afterwards. By the time Step
// calls execute, the opcode byte has already been fetched (charging the
// M1 T-states), so table entries only need to charge T-states beyond that.
var mainTable [256]func(c *CPU)

func init() {
	buildLoadGroup()
	buildALUGroup()
	buildIncDecGroup()
	buildMiscGroup()
}

// condition evaluates one of the eight condition codes used by
// conditional JP/CALL/RET/JR: 0=NZ 1=Z 2=NC 3=C 4=PO 5=PE 6=P 7=M.
func (c *CPU) condition(cc uint8) bool {
	switch cc {
	case 0:
		return !c.flagSet(FlagZ)
	case 1:
		return c.flagSet(FlagZ)
	case 2:
		return !c.flagSet(FlagC)
	case 3:
		return c.flagSet(FlagC)
	case 4:
		return !c.flagSet(FlagPV)
	case 5:
		return c.flagSet(FlagPV)
	case 6:
		return !c.flagSet(FlagS)
	default:
		return c.flagSet(FlagS)
	}
}

// buildLoadGroup fills in LD r,r' (0x40-0x7F, minus HALT at 0x76) and the
// LD r,n block (0x06,0x0E,...,0x3E).
func buildLoadGroup() {
	for dst := uint8(0); dst < 8; dst++ {
		for src := uint8(0); src < 8; src++ {
			op := 0x40 | dst<<3 | src
			if op == 0x76 {
				continue
			}
			d, s := dst, src
			mainTable[op] = func(c *CPU) {
				v := c.reg8(s, c.hl())
				c.setReg8(d, c.hl(), v)
			}
		}
	}
	mainTable[0x76] = func(c *CPU) { c.mode = modeHalt }

	for dst := uint8(0); dst < 8; dst++ {
		d := dst
		mainTable[0x06|d<<3] = func(c *CPU) {
			n := c.nextByte()
			c.setReg8(d, c.hl(), n)
		}
	}
}

// buildALUGroup fills in the ALU A,r (0x80-0xBF) and ALU A,n
// (0xC6,CE,D6,...,FE) blocks.
func buildALUGroup() {
	apply := func(c *CPU, y uint8, v uint8) {
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

	for y := uint8(0); y < 8; y++ {
		for z := uint8(0); z < 8; z++ {
			op := 0x80 | y<<3 | z
			yy, zz := y, z
			mainTable[op] = func(c *CPU) {
				apply(c, yy, c.reg8(zz, c.hl()))
			}
		}
		yy := y
		mainTable[0xC6|yy<<3] = func(c *CPU) {
			apply(c, yy, c.nextByte())
		}
	}
}

// buildIncDecGroup fills in INC r/DEC r (0x04,0x05,...), INC rr/DEC rr
// (0x03,0x0B,...) and ADD HL,rr (0x09,0x19,0x29,0x39).
func buildIncDecGroup() {
	for y := uint8(0); y < 8; y++ {
		yy := y
		mainTable[0x04|yy<<3] = func(c *CPU) {
			c.setReg8(yy, c.hl(), c.inc8(c.reg8(yy, c.hl())))
			if yy == 6 {
				c.tick(1)
			}
		}
		mainTable[0x05|yy<<3] = func(c *CPU) {
			c.setReg8(yy, c.hl(), c.dec8(c.reg8(yy, c.hl())))
			if yy == 6 {
				c.tick(1)
			}
		}
	}
	for p := uint8(0); p < 4; p++ {
		pp := p
		mainTable[0x03|pp<<4] = func(c *CPU) {
			c.setReg16(pp, c.reg16(pp)+1)
			c.tick(2)
		}
		mainTable[0x0B|pp<<4] = func(c *CPU) {
			c.setReg16(pp, c.reg16(pp)-1)
			c.tick(2)
		}
		mainTable[0x09|pp<<4] = func(c *CPU) {
			c.setHL(c.add16(c.hl(), c.reg16(pp)))
			c.tick(7)
		}
	}
}

// buildMiscGroup fills in the remaining irregular opcodes: NOPs, exchanges,
// relative/absolute jumps, CALL/RET, stack ops, I/O and the accumulator
// rotate/misc-flag instructions.
func buildMiscGroup() {
	mainTable[0x00] = func(c *CPU) {} // NOP

	mainTable[0x07] = func(c *CPU) { // RLCA
		c.A = c.rlc(c.A)
		c.setFlag(FlagH, false)
		c.setFlag(FlagN, false)
		c.setYX(c.A)
	}
	mainTable[0x0F] = func(c *CPU) { // RRCA
		c.A = c.rrc(c.A)
		c.setFlag(FlagH, false)
		c.setFlag(FlagN, false)
		c.setYX(c.A)
	}
	mainTable[0x17] = func(c *CPU) { // RLA
		c.A = c.rl(c.A)
		c.setFlag(FlagH, false)
		c.setFlag(FlagN, false)
		c.setYX(c.A)
	}
	mainTable[0x1F] = func(c *CPU) { // RRA
		c.A = c.rr(c.A)
		c.setFlag(FlagH, false)
		c.setFlag(FlagN, false)
		c.setYX(c.A)
	}
	mainTable[0x27] = func(c *CPU) { c.daa() }
	mainTable[0x2F] = func(c *CPU) { c.cpl() }
	mainTable[0x37] = func(c *CPU) { c.scf() }
	mainTable[0x3F] = func(c *CPU) { c.ccf() }

	mainTable[0x08] = func(c *CPU) { c.exAF() }
	mainTable[0xEB] = func(c *CPU) {
		h, d := c.hl(), c.de()
		c.setHL(d)
		c.setDE(h)
	}
	mainTable[0xD9] = func(c *CPU) { c.exx() }
	mainTable[0xE3] = func(c *CPU) { // EX (SP),HL
		lo := c.readByte(c.SP)
		hi := c.readByte(c.SP + 1)
		v := c.hl()
		c.writeByte(c.SP, uint8(v))
		c.writeByte(c.SP+1, uint8(v>>8))
		c.setHL(uint16(hi)<<8 | uint16(lo))
		c.tick(3)
	}

	mainTable[0x10] = func(c *CPU) { // DJNZ e
		c.tick(1)
		e := int8(c.nextByte())
		c.B--
		if c.B != 0 {
			c.PC = uint16(int32(c.PC) + int32(e))
			c.tick(5)
		}
	}
	mainTable[0x18] = func(c *CPU) { // JR e
		e := int8(c.nextByte())
		c.PC = uint16(int32(c.PC) + int32(e))
		c.tick(5)
	}
	for y := uint8(0); y < 4; y++ {
		yy := y
		mainTable[0x20|yy<<3] = func(c *CPU) { // JR cc,e
			e := int8(c.nextByte())
			if c.condition(yy) {
				c.PC = uint16(int32(c.PC) + int32(e))
				c.tick(5)
			}
		}
	}

	for p := uint8(0); p < 4; p++ {
		pp := p
		mainTable[0x01|pp<<4] = func(c *CPU) { c.setReg16(pp, c.nextWord()) }
	}

	mainTable[0x22] = func(c *CPU) { // LD (nn),HL
		addr := c.nextWord()
		c.writeByte(addr, c.L)
		c.writeByte(addr+1, c.H)
	}
	mainTable[0x2A] = func(c *CPU) { // LD HL,(nn)
		addr := c.nextWord()
		lo := c.readByte(addr)
		hi := c.readByte(addr + 1)
		c.setHL(uint16(hi)<<8 | uint16(lo))
	}
	mainTable[0x32] = func(c *CPU) { c.writeByte(c.nextWord(), c.A) }
	mainTable[0x3A] = func(c *CPU) { c.A = c.readByte(c.nextWord()) }
	mainTable[0x02] = func(c *CPU) { c.writeByte(c.bc(), c.A) }
	mainTable[0x12] = func(c *CPU) { c.writeByte(c.de(), c.A) }
	mainTable[0x0A] = func(c *CPU) { c.A = c.readByte(c.bc()) }
	mainTable[0x1A] = func(c *CPU) { c.A = c.readByte(c.de()) }

	mainTable[0xF9] = func(c *CPU) { c.SP = c.hl(); c.tick(2) } // LD SP,HL

	mainTable[0xC3] = func(c *CPU) { c.PC = c.nextWord() } // JP nn
	mainTable[0xE9] = func(c *CPU) { c.PC = c.hl() }       // JP (HL)
	for y := uint8(0); y < 8; y++ {
		yy := y
		mainTable[0xC2|yy<<3] = func(c *CPU) { // JP cc,nn
			target := c.nextWord()
			if c.condition(yy) {
				c.PC = target
			}
		}
	}

	mainTable[0xCD] = func(c *CPU) { // CALL nn
		target := c.nextWord()
		c.tick(1)
		c.push(c.PC)
		c.PC = target
	}
	for y := uint8(0); y < 8; y++ {
		yy := y
		mainTable[0xC4|yy<<3] = func(c *CPU) { // CALL cc,nn
			target := c.nextWord()
			if c.condition(yy) {
				c.tick(1)
				c.push(c.PC)
				c.PC = target
			}
		}
	}

	mainTable[0xC9] = func(c *CPU) { c.PC = c.pop() } // RET
	for y := uint8(0); y < 8; y++ {
		yy := y
		mainTable[0xC0|yy<<3] = func(c *CPU) { // RET cc
			c.tick(1)
			if c.condition(yy) {
				c.PC = c.pop()
			}
		}
	}

	for y := uint8(0); y < 8; y++ {
		yy := y
		mainTable[0xC7|yy<<3] = func(c *CPU) { // RST y*8
			c.tick(1)
			c.push(c.PC)
			c.PC = uint16(yy) * 8
		}
	}

	for p := uint8(0); p < 4; p++ {
		pp := p
		mainTable[0xC5|pp<<4] = func(c *CPU) { // PUSH qq
			c.tick(1)
			c.push(c.reg16AF(pp))
		}
		mainTable[0xC1|pp<<4] = func(c *CPU) { // POP qq
			c.setReg16AF(pp, c.pop())
		}
	}

	mainTable[0xF3] = func(c *CPU) { c.IFF1, c.IFF2 = false, false }
	mainTable[0xFB] = func(c *CPU) {
		c.IFF1, c.IFF2 = true, true
		c.eiDelay = true
	}

	mainTable[0xDB] = func(c *CPU) { // IN A,(n)
		port := c.nextByte()
		c.tick(4)
		if c.io != nil {
			c.A = c.io.In(port)
		}
	}
	mainTable[0xD3] = func(c *CPU) { // OUT (n),A
		port := c.nextByte()
		c.tick(4)
		if c.io != nil {
			c.io.Out(port, c.A)
		}
	}
}

package z80

// execute runs the instruction identified by opcode, which has already
// been fetched (and PC/R already advanced past it) by the caller. Prefix
// bytes recurse into the matching sub-table.
func (c *CPU) execute(opcode uint8) {
	switch opcode {
	case 0xCB:
		c.executeCB(c.fetch())
	case 0xED:
		c.executeED(c.fetch())
	case 0xDD:
		c.executeIndexed(c.fetch(), &c.IX)
	case 0xFD:
		c.executeIndexed(c.fetch(), &c.IY)
	default:
		fn := mainTable[opcode]
		if fn == nil {
			c.fault(opcode, c.PC-1)
			return
		}
		fn(c)
	}
}

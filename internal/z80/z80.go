// Package z80 implements the Zilog Z80 CPU core driving the Game Gear: an
// interpreter over the documented instruction set, dispatched through flat
// per-prefix opcode tables, charging T-states as it goes.
package z80

import "fmt"

// Bus is the memory surface the CPU drives. The MMU satisfies it; tests may
// substitute a flat byte slice.
type Bus interface {
	ReadByte(addr uint16) uint8
	WriteByte(addr uint16, value uint8) bool
}

// IOBus is the Z80 I/O port surface consumed by IN/OUT and the block I/O
// instructions (INI, OUTI, ...). The Game Gear's joypad/VDP/PSG port
// controller satisfies it.
type IOBus interface {
	In(port uint8) uint8
	Out(port uint8, value uint8)
}

// Peripheral is ticked once per instruction with the number of T-states
// just consumed. The VDP and PSG satisfy this; they are external
// collaborators and the CPU only ever sees this narrow interface.
type Peripheral interface {
	Tick(tStates uint32)
}

// Mode tracks the CPU's execution mode outside of normal fetch/decode/execute.
type mode uint8

const (
	modeNormal mode = iota
	modeHalt
)

// CPU represents the Z80 processor: register file, interrupt state, and
// the bus/peripherals it drives.
type CPU struct {
	// Main register set.
	A, F, B, C, D, E, H, L uint8
	// Shadow (alternate) register set, swapped in wholesale by EXX/EX AF,AF'.
	A2, F2, B2, C2, D2, E2, H2, L2 uint8

	IX, IY uint16
	SP, PC uint16
	I, R   uint8

	IFF1, IFF2 bool
	IM         uint8 // 0, 1, or 2

	bus  Bus
	io   IOBus
	peri []Peripheral

	mode mode

	// eiDelay is set when EI just executed; the interrupt check is skipped
	// for exactly one more instruction, per the documented Z80 behavior.
	eiDelay bool

	nmiPending bool
	irqPending bool
	irqData    uint8 // data bus byte supplied by the interrupting device (IM 0/2)

	currentTick uint32

	// Debug is a flag carried for the CPU's owner; the CPU itself never
	// reads it and it does not alter execution.
	Debug bool

	// Exception holds the most recent fault description, or "" if none has
	// occurred. Once set, Step stops fetching new instructions.
	Exception string
}

// New returns a CPU wired to the given bus, I/O controller, and the set of
// peripherals that should be ticked once per instruction.
func New(bus Bus, io IOBus, peripherals ...Peripheral) *CPU {
	c := &CPU{bus: bus, io: io, peri: peripherals}
	c.Reset()
	return c
}

// Reset sets PC = 0, SP = 0xDFF0, IFF1 = IFF2 = 0, IM = 1, and clears the
// main and shadow registers to zero except F = 0 and A = 0xFF, matching the
// Game Gear BIOS-less boot state.
func (c *CPU) Reset() {
	c.A, c.F = 0xFF, 0
	c.B, c.C, c.D, c.E, c.H, c.L = 0, 0, 0, 0, 0, 0
	c.A2, c.F2, c.B2, c.C2, c.D2, c.E2, c.H2, c.L2 = 0, 0, 0, 0, 0, 0, 0, 0
	c.IX, c.IY = 0, 0
	c.I, c.R = 0, 0
	c.SP = 0xDFF0
	c.PC = 0
	c.IFF1, c.IFF2 = false, false
	c.IM = 1
	c.mode = modeNormal
	c.eiDelay = false
	c.nmiPending, c.irqPending = false, false
	c.Exception = ""
}

// Halted reports whether the CPU is parked in the HALT state.
func (c *CPU) Halted() bool { return c.mode == modeHalt }

// Step fetches, decodes, and executes exactly one instruction (including
// any CB/DD/ED/FD/DDCB/FDCB prefix bytes), or services a pending interrupt
// first, and returns the number of T-states consumed.
func (c *CPU) Step() uint32 {
	c.currentTick = 0

	if c.Exception != "" {
		return 0
	}

	serviced := c.serviceInterrupts()
	if !serviced {
		if c.mode == modeHalt {
			// HALT re-executes NOP internally until woken by an interrupt.
			c.tick(4)
		} else {
			opcode := c.fetch()
			c.execute(opcode)
		}
	}

	for _, p := range c.peri {
		p.Tick(c.currentTick)
	}
	return c.currentTick
}

// tick charges n T-states to the current instruction.
func (c *CPU) tick(n uint32) {
	c.currentTick += n
}

// fetch reads the next opcode byte at PC, incrementing PC and R, and
// charges the 4 T-state M1 cycle.
func (c *CPU) fetch() uint8 {
	v := c.bus.ReadByte(c.PC)
	c.PC++
	c.R = (c.R & 0x80) | ((c.R + 1) & 0x7F)
	c.tick(4)
	return v
}

// readByte reads an operand byte following the opcode without the M1
// refresh semantics, charging 3 T-states.
func (c *CPU) readByte(addr uint16) uint8 {
	c.tick(3)
	return c.bus.ReadByte(addr)
}

func (c *CPU) writeByte(addr uint16, v uint8) {
	c.tick(3)
	c.bus.WriteByte(addr, v)
}

// nextByte reads the byte at PC as an immediate/displacement operand.
func (c *CPU) nextByte() uint8 {
	v := c.bus.ReadByte(c.PC)
	c.PC++
	c.tick(3)
	return v
}

func (c *CPU) nextWord() uint16 {
	lo := c.nextByte()
	hi := c.nextByte()
	return uint16(lo) | uint16(hi)<<8
}

func (c *CPU) push(v uint16) {
	c.SP--
	c.writeByte(c.SP, uint8(v>>8))
	c.SP--
	c.writeByte(c.SP, uint8(v))
}

func (c *CPU) pop() uint16 {
	lo := c.readByte(c.SP)
	c.SP++
	hi := c.readByte(c.SP)
	c.SP++
	return uint16(lo) | uint16(hi)<<8
}

// fault records an unimplemented/undocumented opcode fault. The CPU never
// faults mid-instruction; faults are only ever raised between fetches.
func (c *CPU) fault(opcode uint8, pc uint16) {
	c.Exception = fmt.Sprintf("unimplemented opcode 0x%02X at PC=0x%04X", opcode, pc)
}

// IRQ asserts a maskable interrupt, supplying the data-bus byte the
// interrupting device would drive (used verbatim in IM 0, and to build the
// IM 2 vector from its low byte).
func (c *CPU) IRQ(data uint8) {
	c.irqPending = true
	c.irqData = data
}

// NMI asserts the non-maskable interrupt line.
func (c *CPU) NMI() {
	c.nmiPending = true
}

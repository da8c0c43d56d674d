package z80

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// flatBus is a 64KiB byte slice satisfying Bus, for instruction-level tests
// that don't need the real MMU's paging behavior.
type flatBus [65536]byte

func (b *flatBus) ReadByte(addr uint16) uint8 { return b[addr] }
func (b *flatBus) WriteByte(addr uint16, v uint8) bool {
	b[addr] = v
	return true
}

// nullIO answers 0xFF to every IN, like an unpopulated Game Gear port
// range, and records the last value OUT to each port.
type nullIO struct{ out map[uint8]uint8 }

func newNullIO() *nullIO { return &nullIO{out: map[uint8]uint8{}} }
func (n *nullIO) In(port uint8) uint8 { return 0xFF }
func (n *nullIO) Out(port uint8, v uint8) { n.out[port] = v }

func newTestCPU(program ...uint8) (*CPU, *flatBus) {
	bus := &flatBus{}
	copy(bus[:], program)
	c := New(bus, newNullIO())
	return c, bus
}

func TestReset(t *testing.T) {
	c, _ := newTestCPU()
	assert.Equal(t, uint16(0), c.PC)
	assert.Equal(t, uint16(0xDFF0), c.SP)
	assert.Equal(t, uint8(1), c.IM)
	assert.False(t, c.IFF1)
	assert.False(t, c.IFF2)
}

func TestLoadRegisterImmediateAndRegisterToRegister(t *testing.T) {
	// LD B,0x42 ; LD C,B
	c, _ := newTestCPU(0x06, 0x42, 0x41)
	tStates := c.Step()
	assert.Equal(t, uint32(7), tStates)
	assert.Equal(t, uint8(0x42), c.B)

	tStates = c.Step()
	assert.Equal(t, uint32(4), tStates)
	assert.Equal(t, uint8(0x42), c.C)
}

func TestAddAAffectsFlags(t *testing.T) {
	// LD A,0xFF ; LD B,0x01 ; ADD A,B
	c, _ := newTestCPU(0x3E, 0xFF, 0x06, 0x01, 0x80)
	c.Step()
	c.Step()
	tStates := c.Step()
	assert.Equal(t, uint32(4), tStates)
	assert.Equal(t, uint8(0), c.A)
	assert.True(t, c.flagSet(FlagZ))
	assert.True(t, c.flagSet(FlagC))
	assert.True(t, c.flagSet(FlagH))
}

func TestIncDecHLMemory(t *testing.T) {
	// LD HL,0x8000 ; INC (HL)
	c, bus := newTestCPU(0x21, 0x00, 0x80, 0x34)
	c.Step()
	bus[0x8000] = 0x7F
	tStates := c.Step()
	assert.Equal(t, uint32(11), tStates)
	assert.Equal(t, uint8(0x80), bus[0x8000])
	assert.True(t, c.flagSet(FlagS))
}

func TestJumpRelative(t *testing.T) {
	// JR +2 (skips the next two bytes)
	c, _ := newTestCPU(0x18, 0x02, 0x00, 0x00, 0x3E, 0x99)
	tStates := c.Step()
	assert.Equal(t, uint32(12), tStates)
	assert.Equal(t, uint16(4), c.PC)
}

func TestCallAndReturn(t *testing.T) {
	// CALL 0x0010 ; at 0x0010: RET
	c, bus := newTestCPU(0xCD, 0x10, 0x00)
	bus[0x0010] = 0xC9
	tStates := c.Step()
	assert.Equal(t, uint32(17), tStates)
	assert.Equal(t, uint16(0x0010), c.PC)
	assert.Equal(t, uint16(0xDFEE), c.SP)

	tStates = c.Step()
	assert.Equal(t, uint32(10), tStates)
	assert.Equal(t, uint16(0x0003), c.PC)
	assert.Equal(t, uint16(0xDFF0), c.SP)
}

func TestPushPop(t *testing.T) {
	// LD BC,0x1234 ; PUSH BC ; POP DE
	c, _ := newTestCPU(0x01, 0x34, 0x12, 0xC5, 0xD1)
	c.Step()
	tStates := c.Step()
	assert.Equal(t, uint32(11), tStates)
	tStates = c.Step()
	assert.Equal(t, uint32(10), tStates)
	assert.Equal(t, uint16(0x1234), c.de())
}

func TestExAFAF(t *testing.T) {
	// LD A,0x11 ; EX AF,AF' ; LD A,0x22 ; EX AF,AF'
	c, _ := newTestCPU(0x3E, 0x11, 0x08, 0x3E, 0x22, 0x08)
	c.Step()
	c.Step()
	assert.Equal(t, uint8(0), c.A) // swapped to the (zeroed) shadow set
	c.Step()
	c.Step()
	assert.Equal(t, uint8(0x11), c.A)
}

func TestIndexedLoadWithDisplacement(t *testing.T) {
	// LD IX,0x9000 ; LD (IX+2),0x55
	c, bus := newTestCPU(0xDD, 0x21, 0x00, 0x90, 0xDD, 0x36, 0x02, 0x55)
	tStates := c.Step()
	assert.Equal(t, uint32(14), tStates)
	tStates = c.Step()
	assert.Equal(t, uint32(19), tStates)
	assert.Equal(t, uint8(0x55), bus[0x9002])
}

func TestCBBitInstruction(t *testing.T) {
	// LD HL,0x8000 ; BIT 7,(HL)
	c, bus := newTestCPU(0x21, 0x00, 0x80, 0xCB, 0x7E)
	c.Step()
	bus[0x8000] = 0x80
	tStates := c.Step()
	assert.Equal(t, uint32(12), tStates)
	assert.False(t, c.flagSet(FlagZ))
}

func TestEDBlockMoveLDIR(t *testing.T) {
	// LD HL,0x8000 ; LD DE,0x9000 ; LD BC,0x0003 ; LDIR
	c, bus := newTestCPU(
		0x21, 0x00, 0x80,
		0x11, 0x00, 0x90,
		0x01, 0x03, 0x00,
		0xED, 0xB0,
	)
	bus[0x8000], bus[0x8001], bus[0x8002] = 1, 2, 3
	for i := 0; i < 3; i++ {
		c.Step()
	}
	// Two repeating iterations of LDIR at 21T each, then the final
	// non-repeating iteration at 16T.
	first := c.Step()
	assert.Equal(t, uint32(21), first)
	second := c.Step()
	assert.Equal(t, uint32(21), second)
	third := c.Step()
	assert.Equal(t, uint32(16), third)
	assert.Equal(t, uint8(1), bus[0x9000])
	assert.Equal(t, uint8(2), bus[0x9001])
	assert.Equal(t, uint8(3), bus[0x9002])
	assert.Equal(t, uint16(0), c.bc())
}

func TestMaskableInterruptIM1(t *testing.T) {
	c, _ := newTestCPU(0x00) // NOP at 0
	c.IFF1 = true
	c.IM = 1
	c.IRQ(0xFF)

	tStates := c.Step()
	assert.Equal(t, uint32(13), tStates)
	assert.Equal(t, uint16(0x0038), c.PC)
	assert.False(t, c.IFF1)
}

func TestMaskableInterruptMaskedWhileIFF1Clear(t *testing.T) {
	c, _ := newTestCPU(0x00)
	c.IFF1 = false
	c.IRQ(0xFF)
	c.Step()
	require.NotEqual(t, uint16(0x0038), c.PC)
}

func TestHaltNotWokenByMaskedInterrupt(t *testing.T) {
	// HALT
	c, _ := newTestCPU(0x76)
	c.Step()
	require.True(t, c.Halted())

	c.IFF1 = false
	c.IRQ(0xFF)
	tStates := c.Step()
	assert.True(t, c.Halted())
	assert.Equal(t, uint32(4), tStates) // re-issued implicit NOP, not serviced
	assert.NotEqual(t, uint16(0x0038), c.PC)
}

func TestHaltWakesOnInterrupt(t *testing.T) {
	// HALT
	c, _ := newTestCPU(0x76)
	c.Step()
	require.True(t, c.Halted())

	c.IFF1 = true
	c.IRQ(0xFF)
	c.Step()
	assert.False(t, c.Halted())
	assert.Equal(t, uint16(0x0038), c.PC)
}

func TestUndefinedEDOpcodeActsAsTwoByteNOP(t *testing.T) {
	// 0xED 0xFF has no documented meaning; real hardware treats it as a
	// two-byte NOP, and so does executeED for ED opcodes outside 0x40-0x7F
	// and the block group.
	c, _ := newTestCPU(0xED, 0xFF)
	tStates := c.Step()
	assert.Equal(t, uint32(8), tStates)
	assert.Equal(t, uint16(2), c.PC)
	require.Empty(t, c.Exception)
}

package diagnostics

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/thelolagemann/go-gamegear/internal/mmu"
	"github.com/thelolagemann/go-gamegear/internal/z80"
)

type flatBus [65536]byte

func (b *flatBus) ReadByte(addr uint16) uint8 { return b[addr] }
func (b *flatBus) WriteByte(addr uint16, v uint8) bool {
	b[addr] = v
	return true
}

type nullIO struct{}

func (nullIO) In(uint8) uint8     { return 0xFF }
func (nullIO) Out(uint8, uint8) {}

func TestDumpRegistersIncludesRegisterFile(t *testing.T) {
	bus := &flatBus{}
	c := z80.New(bus, nullIO{})
	c.A = 0x42
	c.PC = 0x1234

	var out bytes.Buffer
	DumpRegisters(&out, c)

	got := out.String()
	assert.Contains(t, got, "PC=1234")
	assert.Contains(t, got, "A=42")
}

func TestDumpRegistersOmitsExceptionWhenClear(t *testing.T) {
	bus := &flatBus{}
	c := z80.New(bus, nullIO{})

	var out bytes.Buffer
	DumpRegisters(&out, c)
	assert.False(t, strings.Contains(out.String(), "exception:"))
}

func TestDecodeFlagsRendersSetBitsAsLetters(t *testing.T) {
	got := decodeFlags(z80.FlagS | z80.FlagZ | z80.FlagC)
	assert.Equal(t, byte('S'), got[0])
	assert.Equal(t, byte('Z'), got[1])
	assert.Equal(t, byte('-'), got[2])
	assert.Equal(t, byte('C'), got[7])
}

func TestDumpBankTableListsAllThreeSlots(t *testing.T) {
	m := mmu.New(nil)
	m.LoadROM(make([]uint8, mmu.BankSize*4))
	m.PowerOn()

	var out bytes.Buffer
	DumpBankTable(&out, m)

	got := out.String()
	assert.Contains(t, got, "slot 0 -> bank 0x00")
	assert.Contains(t, got, "slot 1 -> bank 0x01")
	assert.Contains(t, got, "slot 2 -> bank 0x02")
}

// Package mmu provides the Sega Game Gear's banked memory management unit.
// The MMU is unaware of the CPU or any peripheral; it exposes a flat
// ReadByte/WriteByte surface over the Z80's 16-bit address space and hides
// the ROM bank paging and system RAM mirroring behind it.
package mmu

import (
	"github.com/thelolagemann/go-gamegear/pkg/log"
)

const (
	// BankSize is the size in bytes of one ROM bank.
	BankSize = 16 * 1024
	// NumBanks is the number of addressable ROM bank slots.
	NumBanks = 64
	// NumSlots is the number of pageable memory slots in the address space.
	NumSlots = 3
	// SystemRAMSize is the size of the Game Gear's system RAM.
	SystemRAMSize = 8 * 1024

	// Region boundaries, per the Game Gear memory map.
	headerEnd   = 0x0400
	slot0Start  = 0x0400
	slot0End    = 0x4000
	slot1Start  = 0x4000
	slot1End    = 0x8000
	slot2Start  = 0x8000
	slot2End    = 0xC000
	ramStart    = 0xC000
	mirrorStart = 0xE000

	// Control register addresses in the RAM mirror.
	regCartRAM uint16 = 0xFFFC
	regSlot0   uint16 = 0xFFFD
	regSlot1   uint16 = 0xFFFE
	regSlot2   uint16 = 0xFFFF
)

// MMU implements the Game Gear's banked address space: a fixed 1 KiB
// header, three pageable 16 KiB slots backed by ROM banks, and 8 KiB of
// system RAM mirrored across the top of the address space.
type MMU struct {
	systemRAM [SystemRAMSize]uint8

	// romBanks holds a reference into the loaded image for every one of the
	// 64 addressable bank indices (mirrored per LoadROM's contract), or nil
	// if no ROM has been loaded into that index.
	romBanks [NumBanks][]uint8

	// slots holds the bank index currently mapped into each pageable slot.
	slots [NumSlots]int

	Log log.Logger
}

// New returns an MMU with no ROM loaded and unmapped slots. Callers must
// call LoadROM followed by PowerOn before using it.
func New(logger log.Logger) *MMU {
	if logger == nil {
		logger = log.NewNullLogger()
	}
	return &MMU{Log: logger}
}

// LoadROM loads a ROM image into the MMU's bank table.
//
// size must be a positive multiple of BankSize; if it is not, the load is a
// silent no-op, preserving compatibility with malformed upstream payloads
// (the file loader, an external collaborator, is expected to validate
// sizes before calling this). Sizes that are not a power of two are
// accepted but produce non-uniform mirror coverage; that is formally
// unspecified by design.
func (m *MMU) LoadROM(image []uint8) {
	size := len(image)
	if size == 0 || size%BankSize != 0 {
		m.Log.Errorf("mmu: rejecting rom of size %d (not a multiple of %d)", size, BankSize)
		return
	}

	banks := size / BankSize
	if banks > NumBanks {
		banks = NumBanks
	}

	for b := 0; b < banks; b++ {
		bank := image[b*BankSize : (b+1)*BankSize]
		for mirror := b; mirror < NumBanks; mirror += banks {
			m.romBanks[mirror] = bank
		}
	}

	m.Log.Debugf("mmu: loaded rom, %d banks, mirrored across %d slots", banks, NumBanks)
}

// PowerOn maps slots 0, 1, 2 to banks 0, 1, 2 respectively and fills system
// RAM with 0xFF, per the Game Gear's power-on behavior.
func (m *MMU) PowerOn() {
	for slot := 0; slot < NumSlots; slot++ {
		m.mapSlot(slot, slot)
	}
	for i := range m.systemRAM {
		m.systemRAM[i] = 0xFF
	}
}

func (m *MMU) mapSlot(slot, bank int) {
	m.slots[slot] = bank
	m.Log.Debugf("mmu: slot %d -> bank 0x%02X", slot, bank)
}

func (m *MMU) bankByte(slot int, offset uint16) uint8 {
	bank := m.romBanks[m.slots[slot]]
	if bank == nil {
		return 0xFF
	}
	return bank[offset]
}

// ReadByte returns the byte at the given logical address. Unmapped bank
// reads return 0xFF. ReadByte has no side effects.
func (m *MMU) ReadByte(addr uint16) uint8 {
	switch {
	case addr < headerEnd:
		// Fixed header: always bank 0, offset == address, never paged out.
		if m.romBanks[0] == nil {
			return 0xFF
		}
		return m.romBanks[0][addr]
	case addr < slot0End:
		return m.bankByte(0, addr)
	case addr < slot1End:
		return m.bankByte(1, addr-slot1Start)
	case addr < slot2End:
		return m.bankByte(2, addr-slot2Start)
	case addr < mirrorStart:
		return m.systemRAM[addr-ramStart]
	default:
		return m.systemRAM[addr-mirrorStart]
	}
}

// ReadWord reads a little-endian 16-bit value, wrapping the address
// modulo 2^16.
func (m *MMU) ReadWord(addr uint16) uint16 {
	lo := m.ReadByte(addr)
	hi := m.ReadByte(addr + 1)
	return uint16(lo) | uint16(hi)<<8
}

// ReadDword reads a little-endian 32-bit value. Used only by diagnostics.
func (m *MMU) ReadDword(addr uint16) uint32 {
	b0 := uint32(m.ReadByte(addr))
	b1 := uint32(m.ReadByte(addr + 1))
	b2 := uint32(m.ReadByte(addr + 2))
	b3 := uint32(m.ReadByte(addr + 3))
	return b0 | b1<<8 | b2<<16 | b3<<24
}

// WriteByte writes value to addr. It returns false if addr targets a
// read-only region (< 0xC000); ROM storage is never mutated. Writes at
// 0xFFFD/E/F additionally trigger a slot remap, which takes effect on the
// next memory access (WriteByte itself does not re-fetch).
func (m *MMU) WriteByte(addr uint16, value uint8) bool {
	if addr < ramStart {
		return false
	}

	if addr < mirrorStart {
		m.systemRAM[addr-ramStart] = value
		return true
	}

	// Mirror region: the write lands in RAM and is simultaneously
	// inspected for a paging control register.
	m.systemRAM[addr-mirrorStart] = value

	switch addr {
	case regCartRAM:
		// Cartridge-RAM mapping control is not required by any title in
		// scope; treat as a benign RAM write (see Open Question, spec.md §9).
		m.Log.Debugf("mmu: write to reserved cartridge-ram control 0xFFFC = 0x%02X", value)
	case regSlot0:
		m.mapSlot(0, int(value&0x3F))
	case regSlot1:
		m.mapSlot(1, int(value&0x3F))
	case regSlot2:
		m.mapSlot(2, int(value&0x3F))
	}
	return true
}

// WriteWord writes a little-endian 16-bit value as two sequential byte
// writes, low byte first. It returns the conjunction of both write results.
func (m *MMU) WriteWord(addr uint16, value uint16) bool {
	ok1 := m.WriteByte(addr, uint8(value))
	ok2 := m.WriteByte(addr+1, uint8(value>>8))
	return ok1 && ok2
}

// BankOf returns the bank index currently mapped into the given pageable
// slot (0, 1, or 2). Used by diagnostics.
func (m *MMU) BankOf(slot int) int {
	return m.slots[slot]
}

// DumpSlots returns the bank index mapped into each of the three pageable
// slots, for the debug-mode bank table dump.
func (m *MMU) DumpSlots() [NumSlots]int {
	return m.slots
}

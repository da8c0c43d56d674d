// Package diagnostics provides debug-only introspection of a running
// Machine: a register dump and a bank-table dump, grounded on the
// original C source's z80_dump_registers/dump_bank_table call sites
// (iomanager.c, mmu.c), written as formatted text to a caller-supplied
// io.Writer.
package diagnostics

import (
	"fmt"
	"io"

	"github.com/thelolagemann/go-gamegear/internal/mmu"
	"github.com/thelolagemann/go-gamegear/internal/z80"
)

// DumpRegisters writes a human-readable snapshot of the CPU's register
// file to w: the main and shadow 8-bit sets, IX/IY/SP/PC, I/R, the
// interrupt enable flags and mode, and the flag register decoded bit by
// bit.
func DumpRegisters(w io.Writer, c *z80.CPU) {
	fmt.Fprintf(w, "PC=%04X SP=%04X IX=%04X IY=%04X I=%02X R=%02X IM=%d IFF1=%t IFF2=%t\n",
		c.PC, c.SP, c.IX, c.IY, c.I, c.R, c.IM, c.IFF1, c.IFF2)
	fmt.Fprintf(w, "A=%02X F=%02X [%s] B=%02X C=%02X D=%02X E=%02X H=%02X L=%02X\n",
		c.A, c.F, decodeFlags(c.F), c.B, c.C, c.D, c.E, c.H, c.L)
	fmt.Fprintf(w, "A'=%02X F'=%02X B'=%02X C'=%02X D'=%02X E'=%02X H'=%02X L'=%02X\n",
		c.A2, c.F2, c.B2, c.C2, c.D2, c.E2, c.H2, c.L2)
	if c.Exception != "" {
		fmt.Fprintf(w, "exception: %s\n", c.Exception)
	}
}

// decodeFlags renders F's eight bits in S Z Y H X P/V N C order, using a
// dash where the flag is clear.
func decodeFlags(f uint8) string {
	bits := [8]struct {
		mask uint8
		name byte
	}{
		{z80.FlagS, 'S'}, {z80.FlagZ, 'Z'}, {z80.FlagY, 'Y'}, {z80.FlagH, 'H'},
		{z80.FlagX, 'X'}, {z80.FlagPV, 'P'}, {z80.FlagN, 'N'}, {z80.FlagC, 'C'},
	}
	out := make([]byte, 8)
	for i, b := range bits {
		if f&b.mask != 0 {
			out[i] = b.name
		} else {
			out[i] = '-'
		}
	}
	return string(out)
}

// DumpBankTable writes the bank index currently mapped into each of the
// MMU's three pageable slots, grounded on the original source's
// dump_bank_table debug helper in mmu.c.
func DumpBankTable(w io.Writer, m *mmu.MMU) {
	slots := m.DumpSlots()
	for slot, bank := range slots {
		fmt.Fprintf(w, "slot %d -> bank 0x%02X\n", slot, bank)
	}
}

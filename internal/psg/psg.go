// Package psg stands in for the Game Gear's SN76489-derived Programmable
// Sound Generator. Tone/noise channel synthesis is a collaborator's
// responsibility (outside this core, and explicitly out of scope per the
// sound-synthesis-fidelity non-goal); Stub exists only so the Z80 has a
// concrete Peripheral and I/O target for port 0x7F.
package psg

// Stub is a no-op PSG: it latches the last byte written and otherwise
// does nothing.
type Stub struct {
	latched uint8
}

// New returns a silent Stub.
func New() *Stub {
	return &Stub{}
}

// Tick satisfies z80.Peripheral.
func (s *Stub) Tick(tStates uint32) {}

// Out satisfies z80.IOBus for port 0x7F.
func (s *Stub) Out(port uint8, value uint8) {
	s.latched = value
}

// In always returns 0xFF; the real PSG is write-only.
func (s *Stub) In(port uint8) uint8 {
	return 0xFF
}

// Package gamegear owns the CPU, MMU and peripherals that make up a Sega
// Game Gear and drives them at a fixed per-frame T-state budget. It is the
// emulator's top-level component, analogous to the teacher's
// internal/gameboy.GameBoy.
package gamegear

import (
	"sync/atomic"

	"github.com/thelolagemann/go-gamegear/internal/joypad"
	"github.com/thelolagemann/go-gamegear/internal/mmu"
	"github.com/thelolagemann/go-gamegear/internal/psg"
	"github.com/thelolagemann/go-gamegear/internal/vdp"
	"github.com/thelolagemann/go-gamegear/internal/z80"
	"github.com/thelolagemann/go-gamegear/pkg/log"
)

// TStatesPerFrame is the Z80 T-state budget of a single 60Hz Game Gear
// frame: 3,579,545 Hz / 60 ≈ 59,659.
const TStatesPerFrame = 3579545 / 60

// excBufSize bounds the exception string the Machine retains, mirroring
// the original emulator's fixed-size exception buffer.
const excBufSize = 128

// FrameCallback is invoked once per simulated frame, synchronously, on the
// same goroutine as Simulate. It must not call Simulate.
type FrameCallback func(m *Machine)

// Machine owns a complete Game Gear: CPU, MMU, and the VDP/PSG/joypad
// peripherals wired behind a single I/O port controller.
type Machine struct {
	CPU     *z80.CPU
	MMU     *mmu.MMU
	VDP     *vdp.Stub
	PSG     *psg.Stub
	Joypad  *joypad.State
	Log     log.Logger
	startIM uint8

	powered atomic.Bool
	debug   bool

	callback    FrameCallback
	displayBuf  []uint32
	tStateAccum uint32

	exception string
}

// Option configures a Machine at construction time, following the
// teacher's functional-options pattern.
type Option func(m *Machine)

// WithLogger overrides the Machine's default null logger.
func WithLogger(l log.Logger) Option {
	return func(m *Machine) { m.Log = l }
}

// WithInterruptMode sets the interrupt mode Power(true) resets the CPU
// into; the real hardware always resets to IM 1, so this only matters for
// tests exercising IM 0/2 without a BIOS to set it.
func WithInterruptMode(im uint8) Option {
	return func(m *Machine) { m.startIM = im }
}

// Create allocates and zero-initializes a Machine. It is not powered on;
// call Power(true) before Simulate.
func Create(opts ...Option) *Machine {
	m := &Machine{
		Log:     log.NewNullLogger(),
		startIM: 1,
	}
	for _, opt := range opts {
		opt(m)
	}

	m.MMU = mmu.New(m.Log)
	m.VDP = vdp.New()
	m.PSG = psg.New()
	m.Joypad = joypad.New()

	io := newIOController(m.Joypad, m.VDP, m.PSG)
	m.CPU = z80.New(m.MMU, io, m.VDP, m.PSG)
	m.CPU.Debug = m.debug
	return m
}

// Load forwards a ROM image to the MMU's bank table. Power(true) then maps
// slots 0, 1, 2 onto banks 0, 1, 2 of it.
func (m *Machine) Load(rom []byte) {
	m.MMU.LoadROM(rom)
}

// Power turns the Machine on or off. Turning on resets the MMU's bank
// mapping and system RAM, resets the CPU, and marks the Machine powered.
// Turning off only clears the powered flag; Simulate checks the flag
// before each instruction.
func (m *Machine) Power(on bool) {
	if on {
		m.MMU.PowerOn()
		m.CPU.Reset()
		m.CPU.IM = m.startIM
		m.tStateAccum = 0
		m.exception = ""
		m.powered.Store(true)
	} else {
		m.powered.Store(false)
	}
}

// PowerOff is an asynchronous, signal-safe request to stop: it stores
// false into the powered flag with release ordering and does nothing
// else, so it is safe to call from a signal handler.
func (m *Machine) PowerOff() {
	m.powered.Store(false)
}

// Powered reports whether the Machine believes itself on, observed with
// acquire ordering.
func (m *Machine) Powered() bool {
	return m.powered.Load()
}

// AttachCallback registers the per-frame presentation/input hook.
func (m *Machine) AttachCallback(cb FrameCallback) {
	m.callback = cb
}

// AttachDisplay binds a caller-owned pixel buffer (256x192 ARGB) that the
// VDP writes into at each frame boundary.
func (m *Machine) AttachDisplay(buf []uint32) {
	m.displayBuf = buf
}

// Detach unbinds the frame callback and display buffer.
func (m *Machine) Detach() {
	m.callback = nil
	m.displayBuf = nil
}

// Simulate runs the CPU until Powered() becomes false or it surfaces an
// exception, accumulating T-states and invoking the frame callback every
// time the accumulator crosses TStatesPerFrame. It returns true iff an
// exception occurred.
func (m *Machine) Simulate() bool {
	for m.Powered() {
		t := m.CPU.Step()
		if m.CPU.Exception != "" {
			m.setException(m.CPU.Exception)
			return true
		}

		m.tStateAccum += t
		if m.tStateAccum >= TStatesPerFrame {
			m.tStateAccum -= TStatesPerFrame
			m.endFrame()
		}
	}
	return false
}

// endFrame flushes the VDP's buffer to the attached display and invokes
// the frame callback, if any are attached.
func (m *Machine) endFrame() {
	if m.displayBuf != nil {
		m.VDP.WriteFrame(m.displayBuf)
	}
	if m.callback != nil {
		m.callback(m)
	}
}

func (m *Machine) setException(s string) {
	if len(s) > excBufSize {
		s = s[:excBufSize]
	}
	m.exception = s
}

// GetException returns the most recently recorded exception string, or ""
// if none occurred since the last Power(true).
func (m *Machine) GetException() string {
	return m.exception
}

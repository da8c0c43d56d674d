// Package vdp stands in for the Game Gear's Video Display Processor. Real
// VDP scanline rendering, sprite evaluation, and register decoding are a
// collaborator's responsibility (outside this core); Stub exists only so
// the Z80 has a concrete Peripheral to tick and the Machine has a
// 256x192 ARGB buffer to hand to the host display.
package vdp

const (
	// ScreenWidth and ScreenHeight are the VDP's full internal framebuffer
	// dimensions (256x192); the Game Gear viewport crops this to 160x144
	// for presentation, which is the Host Loop's job, not this package's.
	ScreenWidth  = 256
	ScreenHeight = 192

	// ViewportWidth and ViewportHeight are the Game Gear's visible window
	// into the VDP's full buffer; the Host Loop crops to this rectangle for
	// presentation. 256x192 - 160x144 split centered: 48px margin on each
	// side horizontally, 24px vertically.
	ViewportWidth  = 160
	ViewportHeight = 144
	ViewportX      = (ScreenWidth - ViewportWidth) / 2
	ViewportY      = (ScreenHeight - ViewportHeight) / 2

	tStatesPerFrame = 59659
)

// Stub is a placeholder VDP: it accumulates T-states and, once a frame's
// worth have passed, paints a fixed checkerboard into its buffer. It does
// not read cartridge data or implement any real register.
type Stub struct {
	buf     [ScreenWidth * ScreenHeight]uint32
	accum   uint32
	frame   uint64
	vramReg uint8
	cramReg uint8
}

// New returns a Stub with its buffer cleared to black.
func New() *Stub {
	return &Stub{}
}

// Tick satisfies z80.Peripheral.
func (s *Stub) Tick(tStates uint32) {
	s.accum += tStates
	if s.accum >= tStatesPerFrame {
		s.accum -= tStatesPerFrame
		s.frame++
		s.paint()
	}
}

// paint fills the buffer with a checkerboard that alternates each frame,
// so a host display loop has visible motion to present without any real
// rendering logic.
func (s *Stub) paint() {
	on := s.frame%2 == 0
	for y := 0; y < ScreenHeight; y++ {
		for x := 0; x < ScreenWidth; x++ {
			block := (x/16+y/16)%2 == 0
			var px uint32
			if block == on {
				px = 0xFF202020
			} else {
				px = 0xFF606060
			}
			s.buf[y*ScreenWidth+x] = px
		}
	}
}

// WriteFrame copies the current buffer into dst, which must be at least
// ScreenWidth*ScreenHeight elements.
func (s *Stub) WriteFrame(dst []uint32) {
	copy(dst, s.buf[:])
}

// In/Out satisfy z80.IOBus for the VDP's data/control ports (0xBE/0xBF):
// reads return the last latched value, writes are accepted and ignored
// beyond recording it, since no real register decoding happens here.
func (s *Stub) In(port uint8) uint8 {
	switch port & 0x01 {
	case 0:
		return s.vramReg
	default:
		return s.cramReg
	}
}

func (s *Stub) Out(port uint8, value uint8) {
	switch port & 0x01 {
	case 0:
		s.vramReg = value
	default:
		s.cramReg = value
	}
}

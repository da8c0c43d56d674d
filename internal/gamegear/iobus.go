package gamegear

import (
	"github.com/thelolagemann/go-gamegear/internal/joypad"
	"github.com/thelolagemann/go-gamegear/internal/psg"
	"github.com/thelolagemann/go-gamegear/internal/vdp"
)

// ioController routes Z80 IN/OUT port accesses to the peripheral that owns
// that port, the way the teacher's internal/io.Bus routes memory-mapped
// register addresses to whichever subsystem owns them.
type ioController struct {
	pad *joypad.State
	vdp *vdp.Stub
	psg *psg.Stub
}

func newIOController(pad *joypad.State, v *vdp.Stub, p *psg.Stub) *ioController {
	return &ioController{pad: pad, vdp: v, psg: p}
}

func (io *ioController) In(port uint8) uint8 {
	switch {
	case port == joypad.PortDisc, port == joypad.PortA, port == joypad.PortB:
		return io.pad.In(port)
	case port == 0xBE || port == 0xBF:
		return io.vdp.In(port)
	case port == 0x7E || port == 0x7F:
		return io.vdp.In(port)
	default:
		return 0xFF
	}
}

func (io *ioController) Out(port uint8, value uint8) {
	switch {
	case port == 0xBE || port == 0xBF:
		io.vdp.Out(port, value)
	case port == 0x7F:
		io.psg.Out(port, value)
	default:
		// unmapped write, accepted and discarded
	}
}

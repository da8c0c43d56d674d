package joypad

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewPadReadsAllReleased(t *testing.T) {
	p := New()
	assert.Equal(t, uint8(0xFF), p.In(PortA))
	assert.Equal(t, uint8(0xFF), p.In(PortDisc))
}

func TestPressClearsCorrespondingBit(t *testing.T) {
	p := New()
	p.Press(ButtonUp)
	p.Press(Button2)
	v := p.In(PortA)
	assert.Equal(t, uint8(0), v&0x01)
	assert.Equal(t, uint8(0), v&0x20)
	// Untouched bits stay high.
	assert.Equal(t, uint8(0x02), v&0x02)
}

func TestReleaseRestoresBit(t *testing.T) {
	p := New()
	p.Press(ButtonLeft)
	p.Release(ButtonLeft)
	assert.Equal(t, uint8(0xFF), p.In(PortA))
}

func TestStartButtonReadsOnDiscPort(t *testing.T) {
	p := New()
	p.Press(ButtonStart)
	assert.Equal(t, uint8(0x7F), p.In(PortDisc))
}

func TestPortBAlwaysReadsUnpressed(t *testing.T) {
	p := New()
	p.Press(ButtonUp)
	assert.Equal(t, uint8(0xFF), p.In(PortB))
}

func TestProcessInputsAppliesBatchInOrder(t *testing.T) {
	p := New()
	p.ProcessInputs(Inputs{
		Pressed:  []Button{ButtonDown, ButtonRight},
		Released: []Button{ButtonDown},
	})
	v := p.In(PortA)
	assert.Equal(t, uint8(0x02), v&0x02) // Down released again
	assert.Equal(t, uint8(0), v&0x08)    // Right still held
}

func TestUnmappedPortReadsFF(t *testing.T) {
	p := New()
	assert.Equal(t, uint8(0xFF), p.In(0x42))
}

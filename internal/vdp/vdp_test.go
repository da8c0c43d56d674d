package vdp

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTickBelowFrameBudgetDoesNotPaint(t *testing.T) {
	s := New()
	s.Tick(tStatesPerFrame - 1)
	buf := make([]uint32, ScreenWidth*ScreenHeight)
	s.WriteFrame(buf)
	for _, px := range buf {
		assert.Equal(t, uint32(0), px)
	}
}

func TestTickCrossingFrameBudgetPaints(t *testing.T) {
	s := New()
	s.Tick(tStatesPerFrame)
	buf := make([]uint32, ScreenWidth*ScreenHeight)
	s.WriteFrame(buf)

	nonZero := false
	for _, px := range buf {
		if px != 0 {
			nonZero = true
			break
		}
	}
	assert.True(t, nonZero)
}

func TestAccumulatorCarriesRemainderAcrossFrames(t *testing.T) {
	s := New()
	s.Tick(tStatesPerFrame + 100)
	assert.Equal(t, uint32(100), s.accum)
	assert.Equal(t, uint64(1), s.frame)
}

func TestDataPortLatchesIndependentlyOfControlPort(t *testing.T) {
	s := New()
	s.Out(0xBE, 0x11)
	s.Out(0xBF, 0x22)
	assert.Equal(t, uint8(0x11), s.In(0xBE))
	assert.Equal(t, uint8(0x22), s.In(0xBF))
}

func TestWriteFrameCopiesCurrentBuffer(t *testing.T) {
	s := New()
	s.Tick(tStatesPerFrame)
	dst := make([]uint32, ScreenWidth*ScreenHeight)
	s.WriteFrame(dst)
	assert.Equal(t, s.buf[:], dst)
}

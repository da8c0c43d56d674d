// Package hostloop drives a gamegear.Machine at its native frame rate,
// presenting its display buffer through an SDL2 window, pumping input
// events, and installing a signal-safe cancellation handler. Grounded on
// andrewthecodertx-go-nes-emulator's cmd/sdl-display/main.go for the
// go-sdl2 window/renderer/streaming-texture idiom, and on the original C
// emulator's handle_sigint -> gamegear_power_off shape for cancellation.
package hostloop

import (
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"unsafe"

	"github.com/veandco/go-sdl2/sdl"

	"github.com/thelolagemann/go-gamegear/internal/diagnostics"
	"github.com/thelolagemann/go-gamegear/internal/gamegear"
	"github.com/thelolagemann/go-gamegear/internal/joypad"
	"github.com/thelolagemann/go-gamegear/internal/vdp"
)

// WindowScale is the integer scale factor applied to the Game Gear's
// 160x144 cropped viewport for presentation.
const WindowScale = 3

// keymap translates SDL keycodes to Game Gear buttons.
var keymap = map[sdl.Keycode]joypad.Button{
	sdl.K_UP:     joypad.ButtonUp,
	sdl.K_DOWN:   joypad.ButtonDown,
	sdl.K_LEFT:   joypad.ButtonLeft,
	sdl.K_RIGHT:  joypad.ButtonRight,
	sdl.K_z:      joypad.Button1,
	sdl.K_x:      joypad.Button2,
	sdl.K_RETURN: joypad.ButtonStart,
}

// Loop owns the SDL window/renderer/texture and the Machine it drives.
type Loop struct {
	Machine *gamegear.Machine
	Debug   bool

	window   *sdl.Window
	renderer *sdl.Renderer
	texture  *sdl.Texture
	buf      []uint32
	pixels   []byte

	out io.Writer
}

// New creates an SDL window sized for the Game Gear's cropped 160x144
// viewport at WindowScale and binds a Machine to it. Callers must call
// Close when done.
func New(m *gamegear.Machine, title string) (*Loop, error) {
	if err := sdl.Init(sdl.INIT_VIDEO); err != nil {
		return nil, fmt.Errorf("hostloop: sdl init: %w", err)
	}

	window, err := sdl.CreateWindow(title,
		sdl.WINDOWPOS_UNDEFINED, sdl.WINDOWPOS_UNDEFINED,
		vdp.ViewportWidth*WindowScale, vdp.ViewportHeight*WindowScale,
		sdl.WINDOW_SHOWN)
	if err != nil {
		sdl.Quit()
		return nil, fmt.Errorf("hostloop: create window: %w", err)
	}

	renderer, err := sdl.CreateRenderer(window, -1, sdl.RENDERER_ACCELERATED)
	if err != nil {
		window.Destroy()
		sdl.Quit()
		return nil, fmt.Errorf("hostloop: create renderer: %w", err)
	}

	texture, err := renderer.CreateTexture(sdl.PIXELFORMAT_ARGB8888, sdl.TEXTUREACCESS_STREAMING,
		vdp.ViewportWidth, vdp.ViewportHeight)
	if err != nil {
		renderer.Destroy()
		window.Destroy()
		sdl.Quit()
		return nil, fmt.Errorf("hostloop: create texture: %w", err)
	}

	l := &Loop{
		Machine:  m,
		window:   window,
		renderer: renderer,
		texture:  texture,
		buf:      make([]uint32, vdp.ScreenWidth*vdp.ScreenHeight),
		pixels:   make([]byte, vdp.ViewportWidth*vdp.ViewportHeight*4),
		out:      os.Stdout,
	}
	m.AttachDisplay(l.buf)
	m.AttachCallback(l.onFrame)
	return l, nil
}

// Run installs the SIGINT cancellation handler, runs the Machine to
// completion, and reports the outcome. It restores the default signal
// disposition and detaches the Machine's callback and display before
// returning.
func (l *Loop) Run() error {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		if _, ok := <-sigCh; ok {
			// The only work permitted here: a single release-ordered store.
			l.Machine.PowerOff()
		}
	}()
	defer signal.Stop(sigCh)
	defer close(sigCh)

	exceptional := l.Machine.Simulate()

	if exceptional {
		fmt.Fprintf(l.out, "emulation halted: %s\n", l.Machine.GetException())
	} else {
		fmt.Fprintln(l.out, "emulation stopped")
	}
	if l.Debug {
		diagnostics.DumpRegisters(l.out, l.Machine.CPU)
		diagnostics.DumpBankTable(l.out, l.Machine.MMU)
	}

	l.Machine.Detach()
	if exceptional {
		return fmt.Errorf("hostloop: %s", l.Machine.GetException())
	}
	return nil
}

// Close tears down SDL resources. Safe to call after Run.
func (l *Loop) Close() {
	l.texture.Destroy()
	l.renderer.Destroy()
	l.window.Destroy()
	sdl.Quit()
}

// onFrame is the Machine's per-frame callback: it pumps SDL events
// (translating quit/keyboard events to power-off/joypad state), blits the
// VDP's buffer to the streaming texture, and presents it.
func (l *Loop) onFrame(m *gamegear.Machine) {
	for event := sdl.PollEvent(); event != nil; event = sdl.PollEvent() {
		switch e := event.(type) {
		case *sdl.QuitEvent:
			m.PowerOff()
		case *sdl.KeyboardEvent:
			if e.Keysym.Sym == sdl.K_ESCAPE && e.Type == sdl.KEYDOWN {
				m.PowerOff()
				continue
			}
			if btn, ok := keymap[e.Keysym.Sym]; ok {
				if e.Type == sdl.KEYDOWN {
					m.Joypad.Press(btn)
				} else {
					m.Joypad.Release(btn)
				}
			}
		}
	}

	// Crop the VDP's full 256x192 buffer down to the Game Gear's visible
	// 160x144 viewport before blitting.
	for y := 0; y < vdp.ViewportHeight; y++ {
		srcRow := (y+vdp.ViewportY)*vdp.ScreenWidth + vdp.ViewportX
		dstRow := y * vdp.ViewportWidth
		for x := 0; x < vdp.ViewportWidth; x++ {
			px := l.buf[srcRow+x]
			i := dstRow + x
			l.pixels[i*4+0] = byte(px)
			l.pixels[i*4+1] = byte(px >> 8)
			l.pixels[i*4+2] = byte(px >> 16)
			l.pixels[i*4+3] = byte(px >> 24)
		}
	}
	l.texture.Update(nil, unsafe.Pointer(&l.pixels[0]), vdp.ViewportWidth*4)
	l.renderer.Clear()
	l.renderer.Copy(l.texture, nil, nil)
	l.renderer.Present()
}

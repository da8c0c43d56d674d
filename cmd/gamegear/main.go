// Command gamegear loads a Game Gear ROM and runs it in an SDL2 window. It
// is the thin host-integration layer described by the emulator's
// specification: flag parsing, ROM loading, and wiring the Machine to the
// Host Loop, grounded on the teacher's cmd/goboy/main.go flag idiom.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/thelolagemann/go-gamegear/internal/gamegear"
	"github.com/thelolagemann/go-gamegear/internal/hostloop"
	"github.com/thelolagemann/go-gamegear/pkg/log"
	"github.com/thelolagemann/go-gamegear/pkg/utils"
)

func main() {
	os.Exit(run())
}

func run() int {
	romFile := flag.String("rom", "", "the ROM file to load (.gg, .sms, .rom, or a .zip/.7z/.gz archive containing one)")
	imFlag := flag.Int("im", 1, "interrupt mode to reset into: 0, 1, or 2")
	debug := flag.Bool("debug", false, "dump CPU registers and the bank table on exit")
	flag.Parse()

	romPath := *romFile
	if romPath == "" {
		var err error
		romPath, err = utils.AskForFile("Load Game Gear ROM", ".")
		if err != nil {
			fmt.Fprintf(os.Stderr, "gamegear: no ROM specified: %v\n", err)
			return 2
		}
	}

	rom, err := utils.LoadFile(romPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "gamegear: unable to load ROM %s: %v\n", romPath, err)
		return 2
	}

	logger := log.New()
	m := gamegear.Create(
		gamegear.WithLogger(logger),
		gamegear.WithInterruptMode(uint8(*imFlag)),
	)
	m.Load(rom)
	m.Power(true)

	loop, err := hostloop.New(m, "go-gamegear")
	if err != nil {
		fmt.Fprintf(os.Stderr, "gamegear: unable to open display: %v\n", err)
		return 1
	}
	defer loop.Close()
	loop.Debug = *debug

	if err := loop.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "gamegear: %v\n", err)
		return 1
	}
	return 0
}

/*
 *   Copyright (c) 2024 Gustavo Lopez <git.gustavolopez.xyz@gmail.com>
 *   All rights reserved.
 */
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"time"

	"github.com/guslan/chip8"
	"github.com/guslan/chip8/audio"
	"github.com/guslan/chip8/termio"
)

type options struct {
	speed  uint
	seed   uint64
	quirks chip8.Quirks
	layout chip8.KeyboardLayout
	mute   bool
	trace  string
}

func main() {
	speed := flag.Uint("speed", chip8.DefaultSpeed, fmt.Sprintf("Speed in cycles per second, in the range [%d, %d]", chip8.MinSpeed, chip8.MaxSpeed))
	seed := flag.Uint64("seed", uint64(time.Now().UnixNano()), "Seed of the random number generator")
	quirks := flag.String("quirks", "", "Comma separated quirks: vfreset, shiftvy, jumpvx, movesindex")
	hex := flag.Bool("hex", false, "Map the keys 0-9 and a-f directly instead of the 1234/qwer/asdf/zxcv layout")
	mute := flag.Bool("mute", false, "Do not play the buzzer")
	trace := flag.String("trace", "", "Write every executed instruction to this file")
	flag.Parse()

	if flag.NArg() < 1 {
		log.Fatalln("must provide the path to a rom as an argument")
	}

	// The terminal is taken by the display, logs go to stderr
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{})))

	q, err := chip8.ParseQuirks(*quirks)
	if err != nil {
		log.Fatalln(err)
	}

	opts := options{
		speed:  *speed,
		seed:   *seed,
		quirks: q,
		layout: chip8.DefaultKeyboardLayout,
		mute:   *mute,
		trace:  *trace,
	}
	if *hex {
		opts.layout = chip8.HexKeyboardLayout
	}

	if err := run(flag.Arg(0), opts); err != nil {
		slog.Error("Console stopped", slog.Any("error", err))
		os.Exit(1)
	}
}

// run returns instead of exiting so the terminal, the audio device and the
// trace file are released on every path
func run(path string, opts options) error {
	program, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	if err := termio.CheckSize(os.Stdout); err != nil {
		slog.Warn("The screen may not be displayed properly", slog.Any("error", err))
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	kb := termio.NewKeyboard(opts.layout)
	kb.OnQuit = stop

	var buzzer chip8.Buzzer = chip8.NewDummyBuzzer()
	if !opts.mute {
		beeper, err := audio.NewDefaultBeeper()
		if err != nil {
			slog.Warn("No audio, the buzzer is muted", slog.Any("error", err))
		} else {
			defer beeper.Close()
			buzzer = beeper
		}
	}

	cpu := chip8.NewCpu(chip8.NewMemory(), func(config *chip8.CpuConfig) {
		config.Seed = opts.seed
		config.Quirks = opts.quirks
	})
	console := chip8.NewConsole(cpu, chip8.NewTerminalDisplay(), kb, buzzer, func(config *chip8.ConsoleConfig) {
		config.SpeedInHz = opts.speed
	})

	if opts.trace != "" {
		f, err := os.Create(opts.trace)
		if err != nil {
			return err
		}
		defer f.Close()

		console.AddBeforeCycleHook(func(cpu *chip8.Cpu) {
			if cpu.IsAwaitingKey() {
				return
			}
			fmt.Fprintf(f, "%03X %04X %s\n", cpu.Pc, cpu.Memory.Word(cpu.Pc), chip8.Decode(cpu.Memory.Word(cpu.Pc)))
		})
	}

	if err := console.LoadProgram(program); err != nil {
		return err
	}

	if err := console.Boot(); err != nil {
		return err
	}
	defer kb.Close()

	if err := console.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}

	return nil
}

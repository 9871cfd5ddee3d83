package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/guslan/chip8"
	"github.com/guslan/chip8/audio"
	"github.com/guslan/chip8/gui"
)

func init() {
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{})))
}

func main() {
	autostart := flag.Bool("start", false, "Starts the console automatically if there is a program loaded (defaults = false).")
	debug := flag.Bool("debug", false, "Show debug information for the console (defaults = false).")
	initialSpeed := flag.Uint("speed", chip8.DefaultSpeed, fmt.Sprintf("The starting speed of the CPU in Hz. It has to be in the range [%d, %d] (defaults = %d).", chip8.MinSpeed, chip8.MaxSpeed, chip8.DefaultSpeed))
	seed := flag.Uint64("seed", uint64(time.Now().UnixNano()), "Seed of the random number generator.")
	quirks := flag.String("quirks", "", "Comma separated quirks: vfreset, shiftvy, jumpvx, movesindex.")
	mute := flag.Bool("mute", false, "Do not play the buzzer (defaults = false).")

	flag.Parse()

	q, err := chip8.ParseQuirks(*quirks)
	if err != nil {
		slog.Error("Invalid quirks", slog.Any("error", err))
		os.Exit(1)
	}

	var buzzer chip8.Buzzer = chip8.NewDummyBuzzer()
	if !*mute {
		beeper, err := audio.NewDefaultBeeper()
		if err != nil {
			slog.Warn("No audio, the buzzer is muted", slog.Any("error", err))
		} else {
			defer beeper.Close()
			buzzer = beeper
		}
	}

	app := gui.NewApp(func(config *gui.AppConfig) {
		config.Speed = max(*initialSpeed, chip8.MinSpeed)
		config.UseDebugger = *debug
		config.Buzzer = buzzer
		config.CpuConfigs = append(config.CpuConfigs, func(c *chip8.CpuConfig) {
			c.Seed = *seed
			c.Quirks = q
		})
	})

	if flag.NArg() > 0 {
		app.Load(flag.Arg(0))
	}

	app.Run(*autostart)
}

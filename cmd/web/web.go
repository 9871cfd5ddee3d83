/*
 *   Copyright (c) 2024 Gustavo Lopez <git.gustavolopez.xyz@gmail.com>
 *   All rights reserved.
 */
package main

import (
	"context"
	"flag"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"time"

	"github.com/guslan/chip8"
	"github.com/guslan/chip8/web"
)

func init() {
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{})))
}

func main() {
	port := flag.Int("port", 9999, "The port of the server (default = 9999)")
	speed := flag.Uint("speed", chip8.DefaultSpeed, "Speed in cycles per second")
	debug := flag.Bool("debug", false, "Expose the debugger websocket")
	static := flag.String("static", "", "Directory of the browser client (default = the bundled client)")
	seed := flag.Uint64("seed", uint64(time.Now().UnixNano()), "Seed of the random number generator")
	quirks := flag.String("quirks", "", "Comma separated quirks: vfreset, shiftvy, jumpvx, movesindex")
	flag.Parse()

	if flag.NArg() < 1 {
		log.Fatalln("must provide the path to a rom as an argument")
	}

	q, err := chip8.ParseQuirks(*quirks)
	if err != nil {
		log.Fatalln(err)
	}

	program, err := os.ReadFile(flag.Arg(0))
	if err != nil {
		log.Fatalln(err)
	}

	server := web.NewServer(chip8.NewMemory(), func(config *web.ServerConfig) {
		config.UseDebugger = *debug
		config.SpeedInHz = *speed
		config.StaticDir = *static
		config.CpuConfigs = append(config.CpuConfigs, func(c *chip8.CpuConfig) {
			c.Seed = *seed
			c.Quirks = q
		})
	})

	if err := server.LoadProgram(program); err != nil {
		log.Fatalln(err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := server.Listen(ctx, *port); err != nil {
		log.Fatalln(err)
	}
}

package web

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/guslan/chip8"
)

type Server struct {
	*chip8.InMemoryKeyboard
	*chip8.DummyBuzzer

	console  *chip8.Console
	debugger *HttpDebugger
	mux      *http.ServeMux

	socket  *websocket.Conn
	wsMutex sync.Mutex

	frameMutex sync.RWMutex
	lastFrame  chip8.Screen
}

type ServerConfig struct {
	UseDebugger bool
	SpeedInHz   uint
	// Directory with the browser client, the bundled one is served when empty
	StaticDir  string
	CpuConfigs []chip8.CpuConfigCb
}
type ServerConfigCb func(config *ServerConfig)

var upgrader = websocket.Upgrader{} // use default options

//go:embed static
var bundledClient embed.FS

func NewServer(mem *chip8.Memory, configs ...ServerConfigCb) *Server {
	config := &ServerConfig{
		UseDebugger: false,
		SpeedInHz:   chip8.DefaultSpeed,
		StaticDir:   "",
	}
	for _, cb := range configs {
		cb(config)
	}

	s := &Server{
		InMemoryKeyboard: chip8.NewInMemoryKeyboard(),
		DummyBuzzer:      chip8.NewDummyBuzzer(),

		mux: http.NewServeMux(),
	}

	cpu := chip8.NewCpu(mem, config.CpuConfigs...)
	s.console = chip8.NewConsole(cpu, s, s.InMemoryKeyboard, s.DummyBuzzer, func(c *chip8.ConsoleConfig) {
		c.SpeedInHz = config.SpeedInHz
		c.Paused = true
	})
	if config.UseDebugger {
		s.debugger = NewHttpDebugger(s.console)
		s.mux.HandleFunc("/debugger", s.debugger.serveWs)
	}

	s.routes(config.StaticDir)

	return s
}

func (server *Server) Console() *chip8.Console {
	return server.console
}

// Handler exposes the routes, mostly for tests
func (server *Server) Handler() http.Handler {
	return server.mux
}

func (server *Server) Speed(s uint) {
	server.console.SetSpeedInHz(s)
}

// LoadProgram loads the program into memory and sets the PC to the start-of-program address
func (server *Server) LoadProgram(program []byte) error {
	return server.console.LoadProgram(program)
}

func noCache(w http.ResponseWriter) {
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Expose-Headers", "Content-Type")

	w.Header().Set("Cache-Control", "no-cache")
}

func (server *Server) routes(staticDir string) {
	if staticDir != "" {
		server.mux.Handle("/", http.FileServer(http.Dir(staticDir)))
	} else {
		client, _ := fs.Sub(bundledClient, "static")
		server.mux.Handle("/", http.FileServerFS(client))
	}

	server.mux.HandleFunc("/start", func(w http.ResponseWriter, r *http.Request) {
		noCache(w)

		slog.Info("Starting")
		server.console.Start()
	})
	server.mux.HandleFunc("/stop", func(w http.ResponseWriter, r *http.Request) {
		noCache(w)

		slog.Info("Stopping")
		server.console.Stop()
	})
	server.mux.HandleFunc("/reset", func(w http.ResponseWriter, r *http.Request) {
		noCache(w)

		slog.Info("Stopping and resetting")
		server.console.Stop()
		if err := server.console.Reset(); err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
		}
	})
	server.mux.HandleFunc("/step", func(w http.ResponseWriter, r *http.Request) {
		noCache(w)

		slog.Info("Single cycle")
		if err := server.console.Step(); err != nil {
			http.Error(w, err.Error(), http.StatusConflict)
		}
	})
	server.mux.HandleFunc("/speed", func(w http.ResponseWriter, r *http.Request) {
		noCache(w)

		hz, err := strconv.ParseUint(r.URL.Query().Get("hz"), 10, 32)
		if err != nil {
			http.Error(w, "hz must be a positive integer", http.StatusBadRequest)
			return
		}
		server.console.SetSpeedInHz(uint(hz))
		fmt.Fprintf(w, "%d", server.console.SpeedInHz())
	})
	server.mux.HandleFunc("/screenshot.png", func(w http.ResponseWriter, r *http.Request) {
		noCache(w)

		scale := DefaultScreenshotScale
		if s, err := strconv.Atoi(r.URL.Query().Get("scale")); err == nil && s > 0 && s <= MaxScreenshotScale {
			scale = s
		}

		server.frameMutex.RLock()
		frame := server.lastFrame
		server.frameMutex.RUnlock()

		w.Header().Set("Content-Type", "image/png")
		if err := Screenshot(w, &frame, scale); err != nil {
			slog.Error("Error encoding screenshot", slog.Any("error", err))
		}
	})
	server.mux.HandleFunc("/display", server.serveDisplay)
	server.mux.HandleFunc("/keyboard", server.serveKeyboard)
}

func (server *Server) serveDisplay(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		slog.Error("upgrade", slog.Any("error", err))
		return
	}
	defer conn.Close()

	slog.Info("Connecting to display")
	server.setWs(conn)
	defer server.unsetWs(conn)

	server.frameMutex.RLock()
	frame := server.lastFrame
	server.frameMutex.RUnlock()
	if err := server.writeFrame(&frame); err != nil {
		return
	}

	// The display is write only, reading detects the client going away
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			slog.Info("Disconnecting from display")
			return
		}
	}
}

func (server *Server) serveKeyboard(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		slog.Error("upgrade", slog.Any("error", err))
		return
	}
	defer conn.Close()

	slog.Info("Connecting to keyboard")
	defer server.InMemoryKeyboard.Set(chip8.KeyboardState{})

	for {
		_, msg, err := conn.ReadMessage()
		if err != nil {
			slog.Info("Disconnecting from keyboard")
			return
		}

		state, err := DecodeKeyMask(msg)
		if err != nil {
			slog.Warn("Ignoring keyboard message", slog.Any("error", err))
			continue
		}
		server.InMemoryKeyboard.Set(state)
	}
}

// Listen runs the console and serves the routes until ctx is done
func (server *Server) Listen(ctx context.Context, port int) error {
	if err := server.console.Boot(); err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.console.Run(ctx)
	}()

	httpServer := &http.Server{
		Addr:              fmt.Sprintf(":%d", port),
		Handler:           server.mux,
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		<-ctx.Done()
		shutdownCtx, done := context.WithTimeout(context.Background(), 5*time.Second)
		defer done()
		httpServer.Shutdown(shutdownCtx)
	}()

	slog.Info("Listening on port", slog.Int("port", port))
	if err := httpServer.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	if err := <-errCh; err != nil && !errors.Is(err, context.Canceled) {
		return err
	}

	return nil
}

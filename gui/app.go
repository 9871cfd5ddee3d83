package gui

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"sync"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/guslan/chip8"
)

const (
	ToolbarGap       = 5
	ToolbarBtnWidth  = 80
	ToolbarBtnHeight = 40
	ToolbarHeight    = 50
	ToolbarBtnOffset = ToolbarBtnWidth + ToolbarGap

	ScreenPixelSize = 15
	ScreenPositionX = 0
	ScreenPositionY = ToolbarHeight + 1

	MessageBarGap   = 5
	MessageBarHeigh = 30
)

var MessageBarBgColor = rl.DarkGray
var MessageBarInfoColor = rl.SkyBlue
var MessageBarSuccessColor = rl.Lime
var MessageBarWarningColor = rl.Gold
var MessageBarErrorColor = rl.Red

type MessageType byte

const (
	MessageInfo MessageType = iota
	MessageSuccess
	MessageWarning
	MessageError
)

type AppConfig struct {
	Speed          uint
	UseDebugger    bool
	KeyboardLayout chip8.KeyboardLayout
	// Defaults to a silent buzzer
	Buzzer     chip8.Buzzer
	CpuConfigs []chip8.CpuConfigCb
}

type AppConfigCb func(config *AppConfig)

type App struct {
	*chip8.InMemoryKeyboard

	Console *chip8.Console
	// Speed factor
	// Speed in Hz is speedFactor+1 * 5
	speedFactor float32
	useDebugger bool

	screenMutex sync.Mutex
	screen      chip8.Screen

	keyMapper ScanCodeMapper

	// Window width and height
	winW, winH int

	// Toolbar
	startBtn, stopBtn, stepBtn, restBtn bool

	loadedProgramPath string

	messageMutex     sync.Mutex
	lastMessage      string
	lastMessageColor rl.Color

	snapshotMutex sync.Mutex
	snapshot      chip8.Snapshot
}

func speedFactorToHz(s float32) uint {
	return uint((s + 1) * 5)
}

func hzToSpeedFactor(hz uint) float32 {
	return float32(hz)/5 - 1
}

func NewApp(configs ...AppConfigCb) *App {
	config := &AppConfig{
		Speed:          chip8.DefaultSpeed,
		UseDebugger:    false,
		KeyboardLayout: chip8.DefaultKeyboardLayout,
		Buzzer:         chip8.NewDummyBuzzer(),
	}
	for _, cb := range configs {
		cb(config)
	}

	app := &App{
		InMemoryKeyboard: chip8.NewInMemoryKeyboard(),
		speedFactor:      hzToSpeedFactor(config.Speed),
		useDebugger:      config.UseDebugger,
		keyMapper:        NewScanCodeMapper(config.KeyboardLayout),
	}

	cpu := chip8.NewCpu(chip8.NewMemory(), config.CpuConfigs...)
	app.Console = chip8.NewConsole(cpu, app, app.InMemoryKeyboard, config.Buzzer, func(c *chip8.ConsoleConfig) {
		c.SpeedInHz = config.Speed
		c.Paused = true
	})
	if app.useDebugger {
		app.Console.AddAfterCycleHook(func(cpu *chip8.Cpu) {
			app.snapshotMutex.Lock()
			app.snapshot = cpu.Snapshot()
			app.snapshotMutex.Unlock()
		})
	}

	app.updateWindowSize()

	return app
}

// Run initializes the console and the UI loop
func (app *App) Run(autostart bool) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := app.Console.Boot(); err != nil {
		slog.Error("Error booting console", slog.Any("error", err))
		return
	}

	go func(console *chip8.Console) {
		slog.Info("starting console loop on pause")
		if err := console.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
			app.showMessage(err.Error(), MessageError)
			slog.Error("Console stopped", slog.Any("error", err))
		}
	}(app.Console)

	if autostart && app.hasProgramLoaded() {
		app.Console.Start()
	}

	rl.InitWindow(int32(app.winW), int32(app.winH), "chip8")
	defer rl.CloseWindow()

	app.loadStyles()
	rl.SetTargetFPS(60)
	for !rl.WindowShouldClose() {
		rl.BeginDrawing()

		rl.ClearBackground(rl.Black)

		app.handleFileLoad()
		app.handleActions()
		app.handleKeyPress()
		app.updateCpuSpeed()

		app.drawMessageBar()
		app.drawScreen()
		app.drawToolbar()

		rl.EndDrawing()
	}
}

func (app *App) Load(path string) {
	program, err := os.ReadFile(path)
	if err != nil {
		slog.Error("Error loading program", slog.String("path", path), slog.Any("error", err))
		app.showMessage(err.Error(), MessageError)
		return
	}

	if err = app.Console.LoadProgram(program); err != nil {
		slog.Error("Error loading program", slog.String("path", path), slog.Any("error", err))
		app.showMessage(err.Error(), MessageError)
		return
	}

	app.loadedProgramPath = path
	slog.Info("Program loaded", slog.String("path", path))
	app.showMessage(fmt.Sprintf("Program '%s' loaded", app.loadedProgramPath), MessageInfo)
}

func (app *App) updateWindowSize() {
	app.winW = chip8.ScreenWidth * ScreenPixelSize
	app.winH = chip8.ScreenHeight*ScreenPixelSize + ToolbarHeight + MessageBarHeigh
	slog.Info("Updating window size", slog.Int("width", app.winW), slog.Int("height", app.winH))
}

func (app *App) loadStyles() {
	slog.Info("Loading styles")
	gui.LoadStyleDefault()
}

func (app *App) handleFileLoad() {
	if rl.IsFileDropped() {
		files := rl.LoadDroppedFiles()
		defer rl.UnloadDroppedFiles()

		slog.Info("Files were dropped", "files", strings.Join(files, ","))

		app.Load(files[0])
	}
}

func (app *App) hasProgramLoaded() bool {
	return len(app.loadedProgramPath) > 0
}

func (app *App) handleActions() {
	if app.startBtn {
		if app.hasProgramLoaded() {
			app.Console.Start()
			slog.Info("Starting the console")
		} else {
			app.showMessage("There is no program loaded", MessageError)
		}
	}
	if app.stopBtn {
		app.Console.Stop()
		slog.Info("Stopping the console")
	}
	if app.restBtn {
		if err := app.Console.Reset(); err != nil {
			app.showMessage(err.Error(), MessageError)
		}
		slog.Info("Resetting the program to the beginning")
	}
	if app.stepBtn {
		if err := app.Console.Step(); err != nil {
			app.showMessage(err.Error(), MessageError)
		}
		slog.Info("Running a single cycle")
	}
}

func (app *App) handleKeyPress() {
	app.InMemoryKeyboard.Set(chip8.NewKeyboardState(app.keyMapper.downKeys(), app.keyMapper))
}

func (app *App) updateCpuSpeed() {
	app.Console.SetSpeedInHz(speedFactorToHz(app.speedFactor))
}

const (
	MinSpeed = float32(chip8.MinSpeed/5) - 1
	MaxSpeed = float32(chip8.MaxSpeed/5) - 1
)

func (app *App) drawToolbar() {
	rl.DrawRectangle(0, 0, int32(rl.GetScreenWidth()), ToolbarHeight, rl.Gray)

	app.startBtn = gui.Button(
		rl.NewRectangle(ToolbarGap+ToolbarBtnOffset*0, ToolbarGap, ToolbarBtnWidth, ToolbarBtnHeight),
		gui.IconText(gui.ICON_PLAYER_PLAY, "Start"),
	)
	app.stopBtn = gui.Button(
		rl.NewRectangle(ToolbarGap+ToolbarBtnOffset*1, ToolbarGap, ToolbarBtnWidth, ToolbarBtnHeight),
		gui.IconText(gui.ICON_PLAYER_STOP, "Stop"),
	)
	app.stepBtn = gui.Button(
		rl.NewRectangle(ToolbarGap+ToolbarBtnOffset*2, ToolbarGap, ToolbarBtnWidth, ToolbarBtnHeight),
		gui.IconText(gui.ICON_PLAYER_NEXT, "Step"),
	)
	app.restBtn = gui.Button(
		rl.NewRectangle(ToolbarGap+ToolbarBtnOffset*3, ToolbarGap, ToolbarBtnWidth, ToolbarBtnHeight),
		gui.IconText(gui.ICON_ROTATE, "Reset"),
	)

	status := "Stopped"
	if app.Console.IsRunning() {
		status = "Running"
	}
	gui.Label(
		rl.NewRectangle(ToolbarGap+ToolbarBtnOffset*4, ToolbarGap, ToolbarBtnWidth, ToolbarBtnHeight),
		status,
	)

	gui.Label(
		rl.NewRectangle(float32(app.winW)-ToolbarGap-150, 26, 50, 20),
		fmt.Sprintf("%d Hz", speedFactorToHz(app.speedFactor)),
	)

	if gui.Button(
		rl.NewRectangle(float32(app.winW)-ToolbarGap-150+50, 26, 50, 20),
		gui.IconText(gui.ICON_ROTATE, ""),
	) {
		app.speedFactor = hzToSpeedFactor(chip8.DefaultSpeed)
	}

	app.speedFactor = gui.Slider(
		rl.NewRectangle(float32(app.winW)-ToolbarGap-150, ToolbarGap, 100, 20),
		"5 Hz", "700 Hz",
		app.speedFactor,
		MinSpeed,
		MaxSpeed,
	)
}

func (app *App) showMessage(msg string, mType MessageType) {
	app.messageMutex.Lock()
	defer app.messageMutex.Unlock()

	app.lastMessage = msg
	switch mType {
	case MessageInfo:
		app.lastMessageColor = MessageBarInfoColor

	case MessageSuccess:
		app.lastMessageColor = MessageBarSuccessColor

	case MessageWarning:
		app.lastMessageColor = MessageBarWarningColor

	case MessageError:
		app.lastMessageColor = MessageBarErrorColor
	}
}

func (app *App) drawMessageBar() {
	app.messageMutex.Lock()
	msg, color := app.lastMessage, app.lastMessageColor
	app.messageMutex.Unlock()

	if app.useDebugger {
		app.snapshotMutex.Lock()
		s := app.snapshot
		app.snapshotMutex.Unlock()

		msg = fmt.Sprintf("PC=%03X I=%03X DT=%02X ST=%02X %s", s.Pc, s.I, s.Dt, s.St, chip8.Decode(s.OpCode))
		color = MessageBarInfoColor
	}

	rl.DrawRectangle(
		0,
		int32(app.winH)-MessageBarHeigh,
		int32(app.winW),
		MessageBarHeigh,
		MessageBarBgColor,
	)

	rl.DrawText(
		msg,
		MessageBarGap,
		int32(app.winH)-MessageBarHeigh+MessageBarGap,
		16,
		color,
	)
}

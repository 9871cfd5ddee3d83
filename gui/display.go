package gui

import (
	"github.com/guslan/chip8"

	rl "github.com/gen2brain/raylib-go/raylib"
)

var ScreenBgColor = rl.Gold
var ScreenPixelColor = rl.Yellow

// Render implements chip8.Display.
// It runs on the console goroutine, the frame is drawn later by the UI loop.
func (app *App) Render(screen *chip8.Screen) error {
	app.screenMutex.Lock()
	app.screen = *screen
	app.screenMutex.Unlock()

	return nil
}

func (app *App) drawScreen() {
	app.screenMutex.Lock()
	screen := app.screen
	app.screenMutex.Unlock()

	for y := 0; y < chip8.ScreenHeight; y++ {
		for x := 0; x < chip8.ScreenWidth; x++ {
			color := ScreenBgColor
			if screen.Pixel(x, y) {
				color = ScreenPixelColor
			}

			rl.DrawRectangle(
				ScreenPositionX+ScreenPixelSize*int32(x),
				ScreenPositionY+ScreenPixelSize*int32(y),
				ScreenPixelSize,
				ScreenPixelSize,
				color)
		}
	}
}

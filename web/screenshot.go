package web

import (
	"image"
	"image/color"
	"image/png"
	"io"

	"github.com/guslan/chip8"
	"golang.org/x/image/draw"
)

const (
	DefaultScreenshotScale = 8
	MaxScreenshotScale     = 32
)

var (
	ScreenPixelColor = color.Gray{Y: 0xFF}
	ScreenBgColor    = color.Gray{Y: 0x00}
)

// Frame converts the screen into an image of ScreenWidth x ScreenHeight
func Frame(screen *chip8.Screen) *image.Gray {
	img := image.NewGray(image.Rect(0, 0, chip8.ScreenWidth, chip8.ScreenHeight))
	for y := 0; y < chip8.ScreenHeight; y++ {
		for x := 0; x < chip8.ScreenWidth; x++ {
			if screen.Pixel(x, y) {
				img.SetGray(x, y, ScreenPixelColor)
			} else {
				img.SetGray(x, y, ScreenBgColor)
			}
		}
	}

	return img
}

// Screenshot writes the screen as a PNG, every pixel becomes a scale x scale square
func Screenshot(w io.Writer, screen *chip8.Screen, scale int) error {
	src := Frame(screen)
	dst := image.NewGray(image.Rect(0, 0, chip8.ScreenWidth*scale, chip8.ScreenHeight*scale))
	draw.NearestNeighbor.Scale(dst, dst.Bounds(), src, src.Bounds(), draw.Src, nil)

	return png.Encode(w, dst)
}

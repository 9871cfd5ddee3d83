package chip8

import (
	"io"
	"os"
)

// Display abstraction for a display
type Display interface {
	// Render the framebuffer. Called by the Console only when it changed.
	Render(*Screen) error
}

// DummyDisplay is a display that keeps the last frame in memory
type DummyDisplay struct {
	Frames int
	Last   Screen
}

func NewDummyDisplay() *DummyDisplay {
	return &DummyDisplay{}
}

func (d *DummyDisplay) Render(screen *Screen) error {
	d.Frames++
	d.Last = *screen
	return nil
}

const ESC = 0x1B

type TerminalDisplay struct {
	terminal        io.Writer
	OnChar, OffChar string
}

func NewTerminalDisplay() *TerminalDisplay {
	return NewTerminalDisplayWithOutput(os.Stdout)
}

func NewTerminalDisplayWithOutput(out io.Writer) *TerminalDisplay {
	return &TerminalDisplay{
		terminal: out,
		OnChar:   "##",
		OffChar:  "  ",
	}
}

// Boot implements Booter.
func (disp *TerminalDisplay) Boot() error {
	_, err := disp.terminal.Write([]byte{
		// Move cursor do start
		ESC, '[', '1', 'H',
		// clear the terminal
		ESC, '[', '0', 'J',
	})

	return err
}

func (disp *TerminalDisplay) Render(screen *Screen) error {
	buff := make([]byte, 0, ScreenWidth*ScreenHeight*len(disp.OnChar)+ScreenHeight*2+4)
	buff = append(buff, ESC, '[', '1', 'H')
	for y := 0; y < ScreenHeight; y++ {
		for x := 0; x < ScreenWidth; x++ {
			if screen.Pixel(x, y) {
				buff = append(buff, disp.OnChar...)
			} else {
				buff = append(buff, disp.OffChar...)
			}
		}
		buff = append(buff, '|', '\r', '\n')
	}

	_, err := disp.terminal.Write(buff)
	return err
}

package termio

import (
	"fmt"
	"os"

	"github.com/guslan/chip8"
	"golang.org/x/term"
)

// Columns and rows needed by chip8.TerminalDisplay with two characters per pixel
const (
	MinColumns = chip8.ScreenWidth*2 + 1
	MinRows    = chip8.ScreenHeight
)

// CheckSize verifies that f is a terminal big enough for the terminal display
func CheckSize(f *os.File) error {
	fd := int(f.Fd())
	if !term.IsTerminal(fd) {
		return fmt.Errorf("%s is not a terminal", f.Name())
	}

	w, h, err := term.GetSize(fd)
	if err != nil {
		return err
	}

	return FitsScreen(w, h)
}

func FitsScreen(columns, rows int) error {
	if columns < MinColumns || rows < MinRows {
		return fmt.Errorf("terminal is %dx%d, at least %dx%d is needed", columns, rows, MinColumns, MinRows)
	}

	return nil
}

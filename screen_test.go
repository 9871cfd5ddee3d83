package chip8_test

import (
	"testing"

	"github.com/guslan/chip8"
)

func TestSetPixelToggles(t *testing.T) {
	s := chip8.NewScreen()

	s.SetPixel(3, 4, true)
	if !s.Pixel(3, 4) {
		t.Fatalf(`pixel (3, 4) is off after setting it`)
	}
	s.SetPixel(3, 4, false)
	if !s.Pixel(3, 4) {
		t.Fatalf(`writing an off bit switched the pixel off`)
	}
	s.SetPixel(3, 4, true)
	if s.Pixel(3, 4) {
		t.Fatalf(`pixel (3, 4) is on after toggling it twice`)
	}
}

func TestScreenCoordinatesWrap(t *testing.T) {
	s := chip8.NewScreen()
	s.SetPixel(chip8.ScreenWidth+1, chip8.ScreenHeight+2, true)
	if !s.Pixel(1, 2) {
		t.Fatalf(`pixel (1, 2) is off`)
	}
}

func TestPacked(t *testing.T) {
	s := chip8.NewScreen()
	s.SetPixel(0, 0, true)
	s.SetPixel(9, 0, true)
	s.SetPixel(63, 31, true)

	packed := s.Packed()
	if len(packed) != chip8.ScreenWidth*chip8.ScreenHeight/8 {
		t.Fatalf(`len(packed) = %d`, len(packed))
	}
	if packed[0] != 0x80 || packed[1] != 0x40 || packed[len(packed)-1] != 0x01 {
		t.Fatalf(`packed = %X ... %X`, packed[:2], packed[len(packed)-1])
	}

	s.Clear()
	for i, b := range s.Packed() {
		if b != 0 {
			t.Fatalf(`packed[%d] = %X after Clear`, i, b)
		}
	}
}

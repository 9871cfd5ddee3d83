package chip8

const (
	ScreenWidth  = 64
	ScreenHeight = 32
)

// Screen is the monochrome framebuffer, row major: index = x + y*ScreenWidth.
// Pixels are only toggled, the only way to switch them all off is Clear.
type Screen [ScreenWidth * ScreenHeight]bool

func NewScreen() *Screen {
	return &Screen{}
}

func toScreenIndex(x, y int) int {
	x = x % ScreenWidth
	y = y % ScreenHeight

	return y*ScreenWidth + x
}

func (s *Screen) Pixel(x, y int) bool {
	return s[toScreenIndex(x, y)]
}

// SetPixel XORs value into the pixel at x, y
func (s *Screen) SetPixel(x, y int, value bool) {
	s[toScreenIndex(x, y)] = s[toScreenIndex(x, y)] != value
}

func (s *Screen) Clear() {
	*s = Screen{}
}

// Buffer exposes the raw pixels for renderers
func (s *Screen) Buffer() []bool {
	return s[:]
}

// Packed returns the screen as one bit per pixel, most significant bit first
func (s *Screen) Packed() []byte {
	buf := make([]byte, len(s)/8)
	for i, on := range s {
		if on {
			buf[i/8] |= 0b10000000 >> (i % 8)
		}
	}

	return buf
}

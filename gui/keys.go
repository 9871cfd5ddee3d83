package gui

import (
	"github.com/guslan/chip8"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// ScanCode is a raylib key code
type ScanCode = int32

// runeToScanCode returns the raylib key for a layout rune
func runeToScanCode(r rune) (ScanCode, bool) {
	switch {
	case r >= '0' && r <= '9':
		return ScanCode(rl.KeyZero) + ScanCode(r-'0'), true
	case r >= 'a' && r <= 'z':
		return ScanCode(rl.KeyA) + ScanCode(r-'a'), true
	case r >= 'A' && r <= 'Z':
		return ScanCode(rl.KeyA) + ScanCode(r-'A'), true
	}

	return 0, false
}

// ScanCodeMapper implements chip8.KeyMapper for raylib key codes
type ScanCodeMapper map[ScanCode]byte

func NewScanCodeMapper(layout chip8.KeyboardLayout) ScanCodeMapper {
	m := ScanCodeMapper{}
	for r, k := range chip8.LookupMap(layout) {
		if code, ok := runeToScanCode(r); ok {
			m[code] = k
		}
	}

	return m
}

func (m ScanCodeMapper) MapKey(code ScanCode) (byte, bool) {
	k, ok := m[code]
	return k, ok
}

// downKeys polls raylib for the keys of the mapper that are currently held
func (m ScanCodeMapper) downKeys() []ScanCode {
	keys := make([]ScanCode, 0, len(m))
	for code := range m {
		if rl.IsKeyDown(code) {
			keys = append(keys, code)
		}
	}

	return keys
}

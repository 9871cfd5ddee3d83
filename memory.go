package chip8

import "errors"

var ErrProgramDoesNotFitIntoMemory = errors.New("the program does not fit into memory")

const StartOfProgram = 0x200

const MEMORY_SIZE = 4096

// Glyphs are stored at the very beginning of the memory
const (
	FontBase      = 0x000
	FontGlyphSize = 5
)

var font = [16 * FontGlyphSize]byte{
	// 0
	0xF0, 0x90, 0x90, 0x90, 0xF0,
	// 1
	0x20, 0x60, 0x20, 0x20, 0x70,
	// 2
	0xF0, 0x10, 0xF0, 0x80, 0xF0,
	// 3
	0xF0, 0x10, 0xF0, 0x10, 0xF0,
	// 4
	0x90, 0x90, 0xF0, 0x10, 0x10,
	// 5
	0xF0, 0x80, 0xF0, 0x10, 0xF0,
	// 6
	0xF0, 0x80, 0xF0, 0x90, 0xF0,
	// 7
	0xF0, 0x10, 0x20, 0x40, 0x40,
	// 8
	0xF0, 0x90, 0xF0, 0x90, 0xF0,
	// 9
	0xF0, 0x90, 0xF0, 0x10, 0xF0,
	// A
	0xF0, 0x90, 0xF0, 0x90, 0x90,
	// B
	0xE0, 0x90, 0xE0, 0x90, 0xE0,
	// C
	0xF0, 0x80, 0x80, 0x80, 0xF0,
	// D
	0xE0, 0x90, 0x90, 0x90, 0xE0,
	// E
	0xF0, 0x80, 0xF0, 0x80, 0xF0,
	// F
	0xF0, 0x80, 0xF0, 0x80, 0x80,
}

// Memory is the 4KB address space of the machine.
// Addresses are 12 bits wide: any access above 0xFFF wraps around.
type Memory [MEMORY_SIZE]byte

// NewMemory creates a memory of 4096 bytes with the font glyphs already in place
func NewMemory() *Memory {
	m := Memory{}
	copy(m[FontBase:], font[:])

	return &m
}

// LoadProgram copies the program image at the start-of-program address.
// Previous contents after the end of the image are kept.
func (mem *Memory) LoadProgram(program []byte) error {
	if len(program) > MEMORY_SIZE-StartOfProgram {
		return ErrProgramDoesNotFitIntoMemory
	}

	copy(mem[StartOfProgram:], program)

	return nil
}

func (mem *Memory) Byte(addr uint16) byte {
	return mem[addr%MEMORY_SIZE]
}

func (mem *Memory) SetByte(addr uint16, b byte) {
	mem[addr%MEMORY_SIZE] = b
}

// Word reads a big-endian 16-bit word. Only used to fetch opcodes.
func (mem *Memory) Word(addr uint16) uint16 {
	return uint16(mem.Byte(addr))<<8 | uint16(mem.Byte(addr+1))
}

// FontAddress returns the address of the glyph for the hexadecimal digit.
// Only the low nibble of digit is used.
func (mem *Memory) FontAddress(digit byte) uint16 {
	return FontBase + uint16(digit&0x0F)*FontGlyphSize
}

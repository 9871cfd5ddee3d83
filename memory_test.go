package chip8_test

import (
	"errors"
	"testing"

	"github.com/guslan/chip8"
)

func TestNewMemoryHasFont(t *testing.T) {
	mem := chip8.NewMemory()

	// glyph 0 and glyph F
	for i, want := range []byte{0xF0, 0x90, 0x90, 0x90, 0xF0} {
		if got := mem.Byte(uint16(i)); got != want {
			t.Fatalf(`mem[%d] = %X, expected %X`, i, got, want)
		}
	}
	for i, want := range []byte{0xF0, 0x80, 0xF0, 0x80, 0x80} {
		addr := mem.FontAddress(0xF) + uint16(i)
		if got := mem.Byte(addr); got != want {
			t.Fatalf(`mem[%d] = %X, expected %X`, addr, got, want)
		}
	}
}

func TestLoadProgram(t *testing.T) {
	mem := chip8.NewMemory()
	if err := mem.LoadProgram([]byte{0x12, 0x34}); err != nil {
		t.Fatalf(`LoadProgram() returned an error %v`, err)
	}
	if mem.Word(chip8.StartOfProgram) != 0x1234 {
		t.Fatalf(`mem.Word(0x200) = %04X, expected 1234`, mem.Word(chip8.StartOfProgram))
	}

	largest := make([]byte, chip8.MEMORY_SIZE-chip8.StartOfProgram)
	if err := mem.LoadProgram(largest); err != nil {
		t.Fatalf(`LoadProgram() of %d bytes returned an error %v`, len(largest), err)
	}

	err := mem.LoadProgram(make([]byte, chip8.MEMORY_SIZE-chip8.StartOfProgram+1))
	if !errors.Is(err, chip8.ErrProgramDoesNotFitIntoMemory) {
		t.Fatalf(`expected ErrProgramDoesNotFitIntoMemory, got %v`, err)
	}
}

func TestMemoryWrapsAround(t *testing.T) {
	mem := chip8.NewMemory()
	mem.SetByte(0x1000, 0xAB)
	if mem.Byte(0x000) != 0xAB {
		t.Fatalf(`mem[0x000] = %X, expected AB`, mem.Byte(0x000))
	}

	mem.SetByte(0xFFF, 0x12)
	mem.SetByte(0x000, 0x34)
	if mem.Word(0xFFF) != 0x1234 {
		t.Fatalf(`mem.Word(0xFFF) = %04X, expected 1234`, mem.Word(0xFFF))
	}
}

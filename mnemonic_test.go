package chip8_test

import (
	"testing"

	"github.com/guslan/chip8"
)

func TestMnemonic(t *testing.T) {
	tests := map[uint16]string{
		0x00E0: "CLS",
		0x00EE: "RET",
		0x0123: "SYS 0x123",
		0x1ABC: "JP 0xABC",
		0x2300: "CALL 0x300",
		0x3A12: "SE VA, 0x12",
		0x5120: "SE V1, V2",
		0x5121: "UNKNOWN 0x5121",
		0x8124: "ADD V1, V2",
		0x812E: "SHL V1, V2",
		0x8129: "UNKNOWN 0x8129",
		0x9AB0: "SNE VA, VB",
		0xB200: "JP V0, 0x200",
		0xD125: "DRW V1, V2, 5",
		0xE39E: "SKP V3",
		0xE3A1: "SKNP V3",
		0xE3A2: "UNKNOWN 0xE3A2",
		0xF40A: "LD V4, K",
		0xF433: "LD B, V4",
		0xF455: "LD [I], V4",
		0xF4FF: "UNKNOWN 0xF4FF",
	}

	for op, want := range tests {
		if got := chip8.Decode(op).String(); got != want {
			t.Errorf(`Decode(%04X).String() = %q, expected %q`, op, got, want)
		}
	}
}

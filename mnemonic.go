package chip8

import "fmt"

var aluMnemonics = map[byte]string{
	0x0: "LD",
	0x1: "OR",
	0x2: "AND",
	0x3: "XOR",
	0x4: "ADD",
	0x5: "SUB",
	0x6: "SHR",
	0x7: "SUBN",
	0xE: "SHL",
}

var miscFormats = map[byte]string{
	0x07: "LD V%X, DT",
	0x0A: "LD V%X, K",
	0x15: "LD DT, V%X",
	0x18: "LD ST, V%X",
	0x1E: "ADD I, V%X",
	0x29: "LD F, V%X",
	0x33: "LD B, V%X",
	0x55: "LD [I], V%X",
	0x65: "LD V%X, [I]",
}

// Mnemonic returns the assembly form of the instruction, e.g. "DRW V1, V2, 5".
// Words the Cpu would not execute are rendered as "UNKNOWN 0x8129".
func (ins Instruction) Mnemonic() string {
	switch ins.Prefix {
	case 0x0:
		switch ins.Raw {
		case 0x00E0:
			return "CLS"
		case 0x00EE:
			return "RET"
		}
		return fmt.Sprintf("SYS 0x%03X", ins.NNN)
	case 0x1:
		return fmt.Sprintf("JP 0x%03X", ins.NNN)
	case 0x2:
		return fmt.Sprintf("CALL 0x%03X", ins.NNN)
	case 0x3:
		return fmt.Sprintf("SE V%X, 0x%02X", ins.X, ins.KK)
	case 0x4:
		return fmt.Sprintf("SNE V%X, 0x%02X", ins.X, ins.KK)
	case 0x5:
		if ins.N == 0 {
			return fmt.Sprintf("SE V%X, V%X", ins.X, ins.Y)
		}
	case 0x6:
		return fmt.Sprintf("LD V%X, 0x%02X", ins.X, ins.KK)
	case 0x7:
		return fmt.Sprintf("ADD V%X, 0x%02X", ins.X, ins.KK)
	case 0x8:
		if name, ok := aluMnemonics[ins.N]; ok {
			return fmt.Sprintf("%s V%X, V%X", name, ins.X, ins.Y)
		}
	case 0x9:
		if ins.N == 0 {
			return fmt.Sprintf("SNE V%X, V%X", ins.X, ins.Y)
		}
	case 0xA:
		return fmt.Sprintf("LD I, 0x%03X", ins.NNN)
	case 0xB:
		return fmt.Sprintf("JP V0, 0x%03X", ins.NNN)
	case 0xC:
		return fmt.Sprintf("RND V%X, 0x%02X", ins.X, ins.KK)
	case 0xD:
		return fmt.Sprintf("DRW V%X, V%X, %d", ins.X, ins.Y, ins.N)
	case 0xE:
		switch ins.KK {
		case 0x9E:
			return fmt.Sprintf("SKP V%X", ins.X)
		case 0xA1:
			return fmt.Sprintf("SKNP V%X", ins.X)
		}
	case 0xF:
		if format, ok := miscFormats[ins.KK]; ok {
			return fmt.Sprintf(format, ins.X)
		}
	}

	return fmt.Sprintf("UNKNOWN 0x%04X", ins.Raw)
}

func (ins Instruction) String() string {
	return ins.Mnemonic()
}

package chip8

// Instruction is the decoded view of a single 16-bit opcode.
// Decoding never fails: whether the word means anything is decided by the Cpu.
type Instruction struct {
	// Raw 16-bit word as fetched from memory
	Raw uint16
	// Prefix is the highest nibble, it selects the instruction group
	Prefix byte
	// NNN is the lowest 12 bits, an address or literal
	NNN uint16
	// X register index, bits 8-11
	X byte
	// Y register index, bits 4-7
	Y byte
	// KK is the lowest byte
	KK byte
	// N is the lowest nibble. Used as the ALU sub-opcode and as the sprite height.
	N byte
}

// Decode extracts every field of the opcode
func Decode(opCode uint16) Instruction {
	return Instruction{
		Raw:    opCode,
		Prefix: byte(opCode >> 12),
		NNN:    opCode & 0x0FFF,
		X:      byte((opCode & 0x0F00) >> 8),
		Y:      byte((opCode & 0x00F0) >> 4),
		KK:     byte(opCode & 0x00FF),
		N:      byte(opCode & 0x000F),
	}
}

// Suffix4 is the ALU sub-opcode of the 0x8 group
func (ins Instruction) Suffix4() byte {
	return ins.N
}

// Suffix8 is the sub-opcode of the 0xE and 0xF groups
func (ins Instruction) Suffix8() byte {
	return ins.KK
}

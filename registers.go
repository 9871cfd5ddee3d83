package chip8

import (
	"errors"
	"fmt"
)

var ErrStackOverflow = errors.New("stack overflow: try to push to a full stack")
var ErrEmptyStack = errors.New("empty stack: try to return with no caller")

type ErrInvalidRegister struct {
	Index byte
}

func (err ErrInvalidRegister) Error() string {
	return fmt.Sprintf("invalid register V%d", err.Index)
}

const (
	RegisterCount = 16
	StackDepth    = 16
	// VF doubles as the carry, borrow and collision flag
	VF byte = 0xF
)

// Registers of the machine
type Registers struct {
	// V 8-bit registers
	v [RegisterCount]byte
	// I 16-bit register (12-bit usable)
	I uint16
	// Delay timer register
	Dt byte
	// Sound timer register
	St byte
	// Program counter
	Pc uint16
	// Stack pointer
	sp byte
	// Stack
	stack [StackDepth]uint16
}

// NewRegisters returns a clean register file with the PC at the start-of-program
func NewRegisters() Registers {
	return Registers{Pc: StartOfProgram}
}

func (r *Registers) Register(idx byte) (byte, error) {
	if idx >= RegisterCount {
		return 0, ErrInvalidRegister{Index: idx}
	}

	return r.v[idx], nil
}

func (r *Registers) SetRegister(idx byte, b byte) error {
	if idx >= RegisterCount {
		return ErrInvalidRegister{Index: idx}
	}
	r.v[idx] = b

	return nil
}

// SetFlag sets VF
func (r *Registers) SetFlag(b byte) {
	r.v[VF] = b
}

func (r *Registers) Flag() byte {
	return r.v[VF]
}

// V returns a copy of the general purpose registers
func (r *Registers) V() [RegisterCount]byte {
	return r.v
}

// PushStack saves the current PC and jumps to addr
func (r *Registers) PushStack(addr uint16) error {
	if int(r.sp) >= StackDepth {
		return ErrStackOverflow
	}
	r.stack[r.sp] = r.Pc
	r.sp++

	r.Pc = addr

	return nil
}

// PopStack restores the PC saved by the last PushStack
func (r *Registers) PopStack() error {
	if r.sp == 0 {
		return ErrEmptyStack
	}
	r.sp--
	r.Pc = r.stack[r.sp]

	return nil
}

// Depth is the number of return addresses currently saved
func (r *Registers) Depth() int {
	return int(r.sp)
}

// Stack returns the saved return addresses, oldest first
func (r *Registers) Stack() []uint16 {
	s := make([]uint16, r.sp)
	copy(s, r.stack[:r.sp])

	return s
}

func (r *Registers) DecrementDt() {
	if r.Dt > 0 {
		r.Dt--
	}
}

func (r *Registers) DecrementSt() {
	if r.St > 0 {
		r.St--
	}
}

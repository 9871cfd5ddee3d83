package chip8_test

import (
	"errors"
	"testing"

	"github.com/guslan/chip8"
)

func TestInvalidRegister(t *testing.T) {
	r := chip8.NewRegisters()

	var invalid chip8.ErrInvalidRegister
	if _, err := r.Register(16); !errors.As(err, &invalid) || invalid.Index != 16 {
		t.Fatalf(`Register(16) = %v, expected ErrInvalidRegister{16}`, err)
	}
	if err := r.SetRegister(16, 1); !errors.As(err, &invalid) {
		t.Fatalf(`SetRegister(16) = %v, expected ErrInvalidRegister`, err)
	}
	if err := r.SetRegister(15, 1); err != nil {
		t.Fatalf(`SetRegister(15) returned an error %v`, err)
	}
	if r.Flag() != 1 {
		t.Fatalf(`VF = %d, expected 1`, r.Flag())
	}
}

func TestStack(t *testing.T) {
	r := chip8.NewRegisters()

	for i := 0; i < chip8.StackDepth; i++ {
		if err := r.PushStack(uint16(0x300 + i*2)); err != nil {
			t.Fatalf(`push %d returned an error %v`, i, err)
		}
	}
	if err := r.PushStack(0x400); !errors.Is(err, chip8.ErrStackOverflow) {
		t.Fatalf(`expected ErrStackOverflow, got %v`, err)
	}
	if r.Pc != 0x31E {
		t.Fatalf(`r.Pc = %03X, the failed push moved the PC`, r.Pc)
	}

	stack := r.Stack()
	if len(stack) != chip8.StackDepth || stack[0] != chip8.StartOfProgram {
		t.Fatalf(`r.Stack() = %v`, stack)
	}

	for i := 0; i < chip8.StackDepth; i++ {
		if err := r.PopStack(); err != nil {
			t.Fatalf(`pop %d returned an error %v`, i, err)
		}
	}
	if r.Pc != chip8.StartOfProgram {
		t.Fatalf(`r.Pc = %03X, expected %03X`, r.Pc, chip8.StartOfProgram)
	}
	if err := r.PopStack(); !errors.Is(err, chip8.ErrEmptyStack) {
		t.Fatalf(`expected ErrEmptyStack, got %v`, err)
	}
}

func TestTimerDecrementSaturates(t *testing.T) {
	r := chip8.NewRegisters()
	r.Dt, r.St = 1, 0

	r.DecrementDt()
	r.DecrementDt()
	r.DecrementSt()
	if r.Dt != 0 || r.St != 0 {
		t.Fatalf(`dt=%d st=%d, expected both at 0`, r.Dt, r.St)
	}
}

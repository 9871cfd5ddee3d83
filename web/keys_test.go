package web

import (
	"bytes"
	"testing"

	"github.com/guslan/chip8"
)

func TestKeyMask(t *testing.T) {
	state, err := DecodeKeyMask([]byte{0x80, 0x01})
	if err != nil {
		t.Fatalf(`DecodeKeyMask() returned an error %v`, err)
	}

	want := chip8.KeyboardState{}
	want.Press(0x0)
	want.Press(0xF)
	if state != want {
		t.Fatalf(`DecodeKeyMask() = %v, expected %v`, state, want)
	}
	if mask := EncodeKeyMask(state); !bytes.Equal(mask, []byte{0x80, 0x01}) {
		t.Fatalf(`EncodeKeyMask() = %X`, mask)
	}

	if _, err := DecodeKeyMask([]byte{0x01}); err == nil {
		t.Fatalf(`DecodeKeyMask() accepted a 1 byte message`)
	}
}

func TestFormatAsEvent(t *testing.T) {
	s := chip8.Snapshot{
		OpCode: 0xF30A,
		Pc:     0x204,
		I:      0x123,
		Dt:     7,
		St:     9,
		Stack:  []uint16{0x202},
		State:  chip8.AwaitingKey{Register: 3},
	}
	s.V[0] = 0xAA
	s.V[0xF] = 0x01

	event := FormatAsEvent(s)
	if len(event) != 59 {
		t.Fatalf(`len(event) = %d, expected 59`, len(event))
	}

	checks := []struct {
		name  string
		at    int
		bytes []byte
	}{
		{"opcode", 0, []byte{0xF3, 0x0A}},
		{"pc", 2, []byte{0x02, 0x04}},
		{"v0", 4, []byte{0xAA}},
		{"vf", 19, []byte{0x01}},
		{"i", 20, []byte{0x01, 0x23}},
		{"sp", 22, []byte{1}},
		{"stack", 23, []byte{0x02, 0x02, 0x00, 0x00}},
		{"timers", 55, []byte{7, 9}},
		{"waiting", 57, []byte{1, 3}},
	}
	for _, c := range checks {
		if got := event[c.at : c.at+len(c.bytes)]; !bytes.Equal(got, c.bytes) {
			t.Fatalf(`%s = %X, expected %X`, c.name, got, c.bytes)
		}
	}
}

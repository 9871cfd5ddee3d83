package termio

import (
	"testing"
	"time"

	"github.com/guslan/chip8"
)

func TestKeysAreHeldForAWhile(t *testing.T) {
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	kb := NewKeyboard(chip8.DefaultKeyboardLayout)
	kb.now = func() time.Time { return now }

	kb.Handle([]byte("wp"))
	if !kb.IsPressed(0x5) {
		t.Fatalf(`IsPressed(5) = false right after typing 'w'`)
	}
	if k, ok := kb.FirstPressed(); !ok || k != 0x5 {
		t.Fatalf(`FirstPressed() = %X, %t, expected 5`, k, ok)
	}

	now = now.Add(DefaultHold - time.Millisecond)
	if !kb.IsPressed(0x5) {
		t.Fatalf(`IsPressed(5) = false before the hold expired`)
	}

	now = now.Add(time.Millisecond)
	if kb.IsPressed(0x5) {
		t.Fatalf(`IsPressed(5) = true after the hold expired`)
	}
	if _, ok := kb.FirstPressed(); ok {
		t.Fatalf(`FirstPressed() reported a key after the hold expired`)
	}
}

func TestCtrlCCallsOnQuit(t *testing.T) {
	quit := make(chan struct{})
	kb := NewKeyboard(chip8.DefaultKeyboardLayout)
	kb.OnQuit = func() { close(quit) }

	kb.Handle([]byte{ctrlC})

	select {
	case <-quit:
	case <-time.After(time.Second):
		t.Fatalf(`OnQuit was not called`)
	}
}

func TestFitsScreen(t *testing.T) {
	if err := FitsScreen(MinColumns, MinRows); err != nil {
		t.Fatalf(`FitsScreen() returned an error %v`, err)
	}
	if err := FitsScreen(80, 24); err == nil {
		t.Fatalf(`FitsScreen(80, 24) did not fail`)
	}
}

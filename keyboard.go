package chip8

import (
	"fmt"
	"sync"
)

type ErrInvalidKey struct {
	Key byte
}

func (err ErrInvalidKey) Error() string {
	return fmt.Sprintf("invalid key %X", err.Key)
}

const KeyCount = 16

// Keyboard is the snapshot of the keys that are down during a cycle
type Keyboard interface {
	IsPressed(k byte) bool
	// FirstPressed returns the lowest key that is down, if any
	FirstPressed() (byte, bool)
}

// KeyboardState is the simplest Keyboard: one flag per key
type KeyboardState [KeyCount]bool

func (kb KeyboardState) IsPressed(k byte) bool {
	if k >= KeyCount {
		return false
	}
	return kb[k]
}

func (kb KeyboardState) FirstPressed() (byte, bool) {
	for k, pressed := range kb {
		if pressed {
			return byte(k), true
		}
	}

	return 0, false
}

func (kb *KeyboardState) Press(k byte) {
	if k >= KeyCount {
		return
	}

	kb[k] = true
}

func (kb *KeyboardState) Release(k byte) {
	if k >= KeyCount {
		return
	}

	kb[k] = false
}

// KeyMapper translates a host key into a hexadecimal key code
type KeyMapper[K comparable] interface {
	MapKey(k K) (byte, bool)
}

// NewKeyboardState builds a snapshot out of the host keys that are down.
// Keys the mapper does not know about are ignored.
func NewKeyboardState[K comparable](keys []K, mapper KeyMapper[K]) KeyboardState {
	state := KeyboardState{}
	for _, k := range keys {
		if code, ok := mapper.MapKey(k); ok {
			state.Press(code)
		}
	}

	return state
}

// KeyboardLayout lists the host runes for the keys 0x0 to 0xF, in that order
type KeyboardLayout [KeyCount]rune

// DefaultKeyboardLayout maps the original 4x4 keypad
//
//	1 2 3 C        1 2 3 4
//	4 5 6 D   ->   Q W E R
//	7 8 9 E        A S D F
//	A 0 B F        Z X C V
var DefaultKeyboardLayout = KeyboardLayout{
	'x', '1', '2', '3',
	'q', 'w', 'e', 'a',
	's', 'd', 'z', 'c',
	'4', 'r', 'f', 'v',
}

// HexKeyboardLayout maps every key to its own hexadecimal digit
var HexKeyboardLayout = KeyboardLayout{
	'0', '1', '2', '3',
	'4', '5', '6', '7',
	'8', '9', 'a', 'b',
	'c', 'd', 'e', 'f',
}

// LookupMap inverts the layout
func LookupMap(layout KeyboardLayout) map[rune]byte {
	m := make(map[rune]byte, KeyCount)
	for k, r := range layout {
		m[r] = byte(k)
	}

	return m
}

// RuneMapper is a KeyMapper for hosts that report keys as runes
type RuneMapper map[rune]byte

func NewRuneMapper(layout KeyboardLayout) RuneMapper {
	return RuneMapper(LookupMap(layout))
}

func (m RuneMapper) MapKey(r rune) (byte, bool) {
	k, ok := m[r]
	if !ok && r >= 'A' && r <= 'Z' {
		k, ok = m[r+('a'-'A')]
	}

	return k, ok
}

// InMemoryKeyboard is a Keyboard that can be updated by a host goroutine
// while the Console is running
type InMemoryKeyboard struct {
	mu    sync.RWMutex
	state KeyboardState
}

func NewInMemoryKeyboard() *InMemoryKeyboard {
	return &InMemoryKeyboard{}
}

func (kb *InMemoryKeyboard) IsPressed(k byte) bool {
	kb.mu.RLock()
	defer kb.mu.RUnlock()

	return kb.state.IsPressed(k)
}

func (kb *InMemoryKeyboard) FirstPressed() (byte, bool) {
	kb.mu.RLock()
	defer kb.mu.RUnlock()

	return kb.state.FirstPressed()
}

func (kb *InMemoryKeyboard) Get() KeyboardState {
	kb.mu.RLock()
	defer kb.mu.RUnlock()

	return kb.state
}

// Set replaces the whole state, used by hosts that poll every key at once
func (kb *InMemoryKeyboard) Set(state KeyboardState) {
	kb.mu.Lock()
	kb.state = state
	kb.mu.Unlock()
}

func (kb *InMemoryKeyboard) Press(k byte) {
	kb.mu.Lock()
	kb.state.Press(k)
	kb.mu.Unlock()
}

func (kb *InMemoryKeyboard) Release(k byte) {
	kb.mu.Lock()
	kb.state.Release(k)
	kb.mu.Unlock()
}

// SnapshotOf freezes the keys of kb so a whole cycle sees the same state
func SnapshotOf(kb Keyboard) KeyboardState {
	if state, ok := kb.(KeyboardState); ok {
		return state
	}

	state := KeyboardState{}
	for k := byte(0); k < KeyCount; k++ {
		if kb.IsPressed(k) {
			state.Press(k)
		}
	}

	return state
}

package web

import (
	"encoding/binary"
	"fmt"

	"github.com/guslan/chip8"
)

// DecodeKeyMask reads the keyboard messages of the browser client: a big-endian
// 16-bit mask where bit k is set when key k is down.
func DecodeKeyMask(msg []byte) (chip8.KeyboardState, error) {
	state := chip8.KeyboardState{}
	if len(msg) != 2 {
		return state, fmt.Errorf("key mask must be 2 bytes long, got %d", len(msg))
	}

	mask := binary.BigEndian.Uint16(msg)
	for k := byte(0); k < chip8.KeyCount; k++ {
		if mask&(1<<k) > 0 {
			state.Press(k)
		}
	}

	return state, nil
}

func EncodeKeyMask(state chip8.KeyboardState) []byte {
	var mask uint16
	for k, pressed := range state {
		if pressed {
			mask |= 1 << k
		}
	}

	return binary.BigEndian.AppendUint16(nil, mask)
}

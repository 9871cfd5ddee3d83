package chip8

import (
	"fmt"
	"strings"
)

// Quirks switch on behaviours of later interpreters. None is active by default.
type Quirks uint8

const (
	// 8xy1, 8xy2 and 8xy3 reset VF
	QuirkVfReset Quirks = 1 << iota
	// 8xy6 and 8xyE shift Vy and store the result in Vx
	QuirkShiftWithVy
	// Bxnn jumps to xnn + Vx
	QuirkJumpUsesVx
	// Fx55 and Fx65 leave I pointing after the last register
	QuirkMemoryMovesIndex
)

var quirkNames = map[string]Quirks{
	"vfreset":    QuirkVfReset,
	"shiftvy":    QuirkShiftWithVy,
	"jumpvx":     QuirkJumpUsesVx,
	"movesindex": QuirkMemoryMovesIndex,
}

// quirkOrder is the order used by String
var quirkOrder = []string{"vfreset", "shiftvy", "jumpvx", "movesindex"}

func (q Quirks) Has(flag Quirks) bool {
	return q&flag > 0
}

// ParseQuirks reads a comma separated list of quirk names, e.g. "vfreset,shiftvy"
func ParseQuirks(s string) (Quirks, error) {
	var q Quirks
	for _, name := range strings.Split(s, ",") {
		name = strings.ToLower(strings.TrimSpace(name))
		if name == "" {
			continue
		}
		flag, ok := quirkNames[name]
		if !ok {
			return 0, fmt.Errorf("unknown quirk %q", name)
		}
		q |= flag
	}

	return q, nil
}

// String lists the active quirks in the format read by ParseQuirks
func (q Quirks) String() string {
	names := make([]string, 0, len(quirkOrder))
	for _, name := range quirkOrder {
		if q.Has(quirkNames[name]) {
			names = append(names, name)
		}
	}
	if len(names) == 0 {
		return "none"
	}

	return strings.Join(names, ",")
}

package chip8_test

import (
	"testing"

	"github.com/guslan/chip8"
)

func TestParseQuirks(t *testing.T) {
	q, err := chip8.ParseQuirks(" VfReset, jumpvx,,")
	if err != nil {
		t.Fatalf(`ParseQuirks() returned an error %v`, err)
	}
	if !q.Has(chip8.QuirkVfReset) || !q.Has(chip8.QuirkJumpUsesVx) || q.Has(chip8.QuirkShiftWithVy) {
		t.Fatalf(`ParseQuirks() = %s`, q)
	}

	if q, err := chip8.ParseQuirks(""); err != nil || q != 0 {
		t.Fatalf(`ParseQuirks("") = %s, %v`, q, err)
	}

	if _, err := chip8.ParseQuirks("vfreset,turbo"); err == nil {
		t.Fatalf(`ParseQuirks() accepted an unknown quirk`)
	}
}

func TestQuirksString(t *testing.T) {
	if s := chip8.Quirks(0).String(); s != "none" {
		t.Fatalf(`Quirks(0).String() = %q`, s)
	}

	q := chip8.QuirkMemoryMovesIndex | chip8.QuirkVfReset
	if s := q.String(); s != "vfreset,movesindex" {
		t.Fatalf(`String() = %q, expected "vfreset,movesindex"`, s)
	}

	parsed, err := chip8.ParseQuirks(q.String())
	if err != nil || parsed != q {
		t.Fatalf(`ParseQuirks(%q) = %s, %v`, q.String(), parsed, err)
	}
}

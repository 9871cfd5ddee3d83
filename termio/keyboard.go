// Package termio connects the console to a text terminal.
package termio

import (
	"errors"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/guslan/chip8"
	"github.com/pkg/term"
)

const (
	DefaultTTY = "/dev/tty"
	// Terminals do not report key releases: a key is considered down for this
	// long after the last byte for it was read. Auto-repeat keeps it alive.
	DefaultHold = 150 * time.Millisecond

	ctrlC = 0x03
)

// Keyboard implements chip8.Keyboard by reading a tty in raw mode
type Keyboard struct {
	Path   string
	Hold   time.Duration
	OnQuit func()

	mapper chip8.RuneMapper
	now    func() time.Time

	mu       sync.Mutex
	lastSeen [chip8.KeyCount]time.Time

	tty  *term.Term
	stop chan struct{}
	done chan struct{}
}

func NewKeyboard(layout chip8.KeyboardLayout) *Keyboard {
	return &Keyboard{
		Path:   DefaultTTY,
		Hold:   DefaultHold,
		mapper: chip8.NewRuneMapper(layout),
		now:    time.Now,
	}
}

// Boot implements chip8.Booter.
func (kb *Keyboard) Boot() error {
	tty, err := term.Open(kb.Path, term.RawMode)
	if err != nil {
		return err
	}
	if err := tty.SetReadTimeout(50 * time.Millisecond); err != nil {
		tty.Restore()
		tty.Close()
		return err
	}

	kb.tty = tty
	kb.stop = make(chan struct{})
	kb.done = make(chan struct{})
	go kb.readLoop()

	return nil
}

// Close restores the terminal
func (kb *Keyboard) Close() error {
	if kb.tty == nil {
		return nil
	}

	close(kb.stop)
	<-kb.done

	err := kb.tty.Restore()
	if cerr := kb.tty.Close(); err == nil {
		err = cerr
	}
	kb.tty = nil

	return err
}

func (kb *Keyboard) readLoop() {
	defer close(kb.done)

	buf := make([]byte, 16)
	for {
		select {
		case <-kb.stop:
			return
		default:
		}

		n, err := kb.tty.Read(buf)
		if n > 0 {
			kb.Handle(buf[:n])
		}
		if err != nil && !errors.Is(err, io.EOF) {
			slog.Error("Error reading the terminal", slog.Any("error", err))
			return
		}
	}
}

// Handle registers the bytes typed on the terminal
func (kb *Keyboard) Handle(input []byte) {
	kb.mu.Lock()
	defer kb.mu.Unlock()

	now := kb.now()
	for _, b := range input {
		if b == ctrlC {
			if kb.OnQuit != nil {
				go kb.OnQuit()
			}
			continue
		}
		if k, ok := kb.mapper.MapKey(rune(b)); ok {
			kb.lastSeen[k] = now
		}
	}
}

func (kb *Keyboard) IsPressed(k byte) bool {
	if k >= chip8.KeyCount {
		return false
	}

	kb.mu.Lock()
	defer kb.mu.Unlock()

	return kb.isDown(k, kb.now())
}

func (kb *Keyboard) FirstPressed() (byte, bool) {
	kb.mu.Lock()
	defer kb.mu.Unlock()

	now := kb.now()
	for k := byte(0); k < chip8.KeyCount; k++ {
		if kb.isDown(k, now) {
			return k, true
		}
	}

	return 0, false
}

func (kb *Keyboard) isDown(k byte, now time.Time) bool {
	seen := kb.lastSeen[k]
	return !seen.IsZero() && now.Sub(seen) < kb.Hold
}

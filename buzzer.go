package chip8

// Buzzer plays the tone while the sound timer is active.
// Both methods are called on every running cycle so they must be idempotent.
type Buzzer interface {
	Play() error
	Stop() error
}

type DummyBuzzer struct {
	IsPlaying bool
}

func NewDummyBuzzer() *DummyBuzzer {
	return &DummyBuzzer{
		IsPlaying: false,
	}
}

// Play implements Buzzer.
func (b *DummyBuzzer) Play() error {
	b.IsPlaying = true
	return nil
}

// Stop implements Buzzer
func (b *DummyBuzzer) Stop() error {
	b.IsPlaying = false
	return nil
}

// Booter is implemented by collaborators that need to be initialized before the first cycle
type Booter interface {
	// Boot initializes the component
	Boot() error
}

// Package audio plays the tone of the sound timer through the default output device.
package audio

import (
	"encoding/binary"
	"math"
	"sync"

	"github.com/ebitengine/oto/v3"
)

const (
	DefaultSampleRate = 44100
	DefaultFrequency  = 440.0
	DefaultVolume     = 0.2
)

// SquareWave is an endless mono float32 little-endian square tone
type SquareWave struct {
	Frequency  float64
	SampleRate int
	Volume     float32

	phase float64
}

func NewSquareWave(frequency float64, sampleRate int) *SquareWave {
	return &SquareWave{
		Frequency:  frequency,
		SampleRate: sampleRate,
		Volume:     DefaultVolume,
	}
}

// Read implements io.Reader.
func (w *SquareWave) Read(p []byte) (int, error) {
	n := len(p) - len(p)%4
	step := w.Frequency / float64(w.SampleRate)

	for i := 0; i < n; i += 4 {
		v := w.Volume
		if w.phase >= 0.5 {
			v = -v
		}
		binary.LittleEndian.PutUint32(p[i:], math.Float32bits(v))

		w.phase += step
		if w.phase >= 1 {
			w.phase -= 1
		}
	}

	return n, nil
}

// Beeper implements chip8.Buzzer on top of an oto player.
// Only one Beeper can exist per process because oto allows a single context.
type Beeper struct {
	mu     sync.Mutex
	ctx    *oto.Context
	player *oto.Player
}

func NewBeeper(sampleRate int, frequency float64) (*Beeper, error) {
	ctx, ready, err := oto.NewContext(&oto.NewContextOptions{
		SampleRate:   sampleRate,
		ChannelCount: 1,
		Format:       oto.FormatFloat32LE,
	})
	if err != nil {
		return nil, err
	}
	<-ready

	return &Beeper{
		ctx:    ctx,
		player: ctx.NewPlayer(NewSquareWave(frequency, sampleRate)),
	}, nil
}

func NewDefaultBeeper() (*Beeper, error) {
	return NewBeeper(DefaultSampleRate, DefaultFrequency)
}

// Play implements chip8.Buzzer.
func (b *Beeper) Play() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.player.IsPlaying() {
		b.player.Play()
	}

	return nil
}

// Stop implements chip8.Buzzer.
func (b *Beeper) Stop() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.player.IsPlaying() {
		b.player.Pause()
	}

	return b.ctx.Err()
}

func (b *Beeper) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	return b.player.Close()
}

package chip8

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"
)

var ErrConsoleIsNotBooted = errors.New("the console has not been booted properly")

const (
	DefaultSpeed uint = 500
	MaxSpeed     uint = 700
	MinSpeed     uint = 5
)

// Hook observes the Cpu around a cycle. Hooks run on the goroutine driving
// the cycles and may call Start, Stop, the speed accessors and LastError.
// Calling Step, Reset or LoadProgram from a hook blocks forever.
type Hook func(cpu *Cpu)

type ConsoleConfig struct {
	SpeedInHz uint
	// Starts the console paused
	Paused bool
}

type ConsoleConfigCb func(config *ConsoleConfig)

// Console drives the Cpu: it paces the cycles, feeds the keyboard snapshot,
// renders the screen when it changes and runs the hooks.
// Every exported method is safe to call from another goroutine while Run is active.
type Console struct {
	Cpu      *Cpu
	Display  Display
	Keyboard Keyboard
	Buzzer   Buzzer

	// cycleMu serializes the access to the Cpu: cycles with their hooks, resets and loads.
	// It is always taken before mu.
	cycleMu sync.Mutex
	mu      sync.Mutex

	speedInHz uint
	step      time.Duration

	program []byte

	isBooted  bool
	isPaused  bool
	lastError error

	// Hooks that run before every cycle
	beforeCycleHooks []Hook
	// Hooks that run after every cycle
	afterCycleHooks []Hook
	// Hooks that run after an error
	errorHooks []Hook
}

func NewConsole(cpu *Cpu, display Display, keyboard Keyboard, buzzer Buzzer, configs ...ConsoleConfigCb) *Console {
	config := &ConsoleConfig{
		SpeedInHz: DefaultSpeed,
		Paused:    false,
	}
	for _, cb := range configs {
		cb(config)
	}

	c := &Console{
		Cpu:      cpu,
		Display:  display,
		Keyboard: keyboard,
		Buzzer:   buzzer,

		isPaused: config.Paused,

		beforeCycleHooks: make([]Hook, 0),
		afterCycleHooks:  make([]Hook, 0),
		errorHooks:       make([]Hook, 0),
	}
	c.setSpeedInHz(config.SpeedInHz)

	return c
}

func (c *Console) IsRunning() bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	return !c.isPaused
}

func (c *Console) SpeedInHz() uint {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.speedInHz
}

// SetSpeedInHz changes the number of cycles per second, clamped to [MinSpeed, MaxSpeed]
func (c *Console) SetSpeedInHz(inHz uint) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.setSpeedInHz(inHz)
}

func (c *Console) setSpeedInHz(inHz uint) {
	c.speedInHz = min(max(inHz, MinSpeed), MaxSpeed)
	c.step = time.Second / time.Duration(c.speedInHz)
}

func (c *Console) LastError() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.lastError
}

// Start resumes the execution
func (c *Console) Start() {
	c.mu.Lock()
	c.isPaused = false
	c.mu.Unlock()
}

// Stop pauses the execution
func (c *Console) Stop() {
	c.mu.Lock()
	c.isPaused = true
	c.mu.Unlock()
}

// Boot initializes all the components
// If the console was already booted, this method is a noop
func (c *Console) Boot() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.isBooted {
		return nil
	}

	for _, component := range []any{c.Display, c.Keyboard, c.Buzzer} {
		if b, ok := component.(Booter); ok {
			if err := b.Boot(); err != nil {
				return err
			}
		}
	}

	c.isBooted = true

	return nil
}

// LoadProgram loads the program into a fresh memory and resets the Cpu
func (c *Console) LoadProgram(program []byte) error {
	c.cycleMu.Lock()
	defer c.cycleMu.Unlock()
	c.mu.Lock()
	defer c.mu.Unlock()

	mem := NewMemory()
	if err := mem.LoadProgram(program); err != nil {
		return err
	}

	c.program = append([]byte(nil), program...)
	*c.Cpu.Memory = *mem
	slog.Info("Program loaded", slog.Int("size", len(program)), slog.String("quirks", c.Cpu.Quirks().String()))

	return c.reset()
}

// Reset reloads the last program and restarts it from the beginning
func (c *Console) Reset() error {
	c.cycleMu.Lock()
	defer c.cycleMu.Unlock()
	c.mu.Lock()
	defer c.mu.Unlock()

	mem := NewMemory()
	if err := mem.LoadProgram(c.program); err != nil {
		return err
	}
	*c.Cpu.Memory = *mem

	return c.reset()
}

func (c *Console) reset() error {
	c.Cpu.Reset()
	c.Cpu.ScreenChanged()
	c.lastError = nil

	return c.render()
}

// Run executes cycles at the current speed until ctx is done, an error is
// raised or the PC leaves the memory.
func (c *Console) Run(ctx context.Context) error {
	c.mu.Lock()
	if !c.isBooted {
		c.mu.Unlock()
		return ErrConsoleIsNotBooted
	}
	if c.lastError != nil {
		err := c.lastError
		c.mu.Unlock()
		return err
	}
	c.mu.Unlock()

	var last time.Time

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		done, err := c.runNextCycle(false)
		if err != nil {
			return err
		} else if done {
			return nil
		}

		c.mu.Lock()
		step := c.step
		c.mu.Unlock()

		// Prevent the CPU from running faster than expected
		time.Sleep(max(step-time.Since(last), 0))
		last = time.Now()
	}
}

// Step runs a single cycle bypassing the pause state
func (c *Console) Step() error {
	c.mu.Lock()
	if !c.isBooted {
		c.mu.Unlock()
		return ErrConsoleIsNotBooted
	}
	if c.lastError != nil {
		err := c.lastError
		c.mu.Unlock()
		return err
	}
	c.mu.Unlock()

	_, err := c.runNextCycle(true)
	return err
}

// runNextCycle releases mu while the hooks run
func (c *Console) runNextCycle(force bool) (bool, error) {
	c.cycleMu.Lock()
	defer c.cycleMu.Unlock()

	c.mu.Lock()
	if c.isPaused && !force {
		c.mu.Unlock()
		return false, nil
	}
	if c.lastError != nil {
		err := c.lastError
		c.mu.Unlock()
		return false, err
	}
	before := c.beforeCycleHooks
	c.mu.Unlock()

	c.runHooks(before)

	c.mu.Lock()
	err := c.Cpu.Cycle(SnapshotOf(c.Keyboard), c.Buzzer)
	if err == nil && c.Cpu.ScreenChanged() {
		err = c.render()
	}
	pc := c.Cpu.Pc
	if err != nil {
		c.lastError = err
	}
	after, onError := c.afterCycleHooks, c.errorHooks
	c.mu.Unlock()

	if err != nil {
		slog.Error("Cycle failed", slog.Uint64("pc", uint64(pc)), slog.Any("error", err))
		c.runHooks(onError)
		return false, err
	}
	c.runHooks(after)

	return pc >= MEMORY_SIZE, nil
}

func (c *Console) render() error {
	if err := c.Display.Render(c.Cpu.Screen); err != nil {
		return fmt.Errorf("display render: %w", err)
	}

	return nil
}

// AddBeforeCycleHook adds a hook that will run before every cycle of the CPU
func (c *Console) AddBeforeCycleHook(h Hook) int {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.beforeCycleHooks = append(c.beforeCycleHooks, h)

	return len(c.beforeCycleHooks)
}

// AddAfterCycleHook adds a hook that will run after every cycle of the CPU
func (c *Console) AddAfterCycleHook(h Hook) int {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.afterCycleHooks = append(c.afterCycleHooks, h)

	return len(c.afterCycleHooks)
}

// AddErrorHook adds a hook that will run when a cycle fails
func (c *Console) AddErrorHook(h Hook) int {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.errorHooks = append(c.errorHooks, h)

	return len(c.errorHooks)
}

func (c *Console) runHooks(hooks []Hook) {
	for _, h := range hooks {
		h(c.Cpu)
	}
}

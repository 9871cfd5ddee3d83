package chip8

import (
	"fmt"
	"math/rand/v2"
)

type ErrUnhandledInstruction struct {
	OpCode uint16
	// Address the opcode was fetched from
	Pc uint16
}

func (err ErrUnhandledInstruction) Error() string {
	return fmt.Sprintf("unhandled instruction opcode=%04X at PC=%03X", err.OpCode, err.Pc)
}

// State of the execution engine. It is either Running or AwaitingKey.
type State interface {
	isState()
}

// Running fetches and executes one instruction per cycle
type Running struct{}

// AwaitingKey blocks execution until a key is down, the key is then stored in Register
type AwaitingKey struct {
	Register byte
}

func (Running) isState()     {}
func (AwaitingKey) isState() {}

// RandomSource feeds the RND instruction. *rand.Rand satisfies it.
type RandomSource interface {
	Uint32() uint32
}

// MachineRoutineInterpreter interpretes SYS instructions (0nnn)
type MachineRoutineInterpreter func(ins Instruction, cpu *Cpu) error

type CpuConfig struct {
	// Seed of the default random source. Ignored when Rand is set.
	Seed   uint64
	Rand   RandomSource
	Quirks Quirks
	// SYS instructions fail as unhandled when nil
	MachineRoutineInterpreter MachineRoutineInterpreter
}

type CpuConfigCb func(config *CpuConfig)

// Chip-8 CPU
type Cpu struct {
	Registers

	Memory *Memory
	Screen *Screen

	state  State
	rng    RandomSource
	quirks Quirks

	machineRoutineInterpreter MachineRoutineInterpreter

	// last fetched opcode
	opCode        uint16
	cycles        uint
	isScreenDirty bool
}

func NewCpu(memory *Memory, configs ...CpuConfigCb) *Cpu {
	config := &CpuConfig{}
	for _, cb := range configs {
		cb(config)
	}

	rng := config.Rand
	if rng == nil {
		rng = rand.New(rand.NewPCG(config.Seed, config.Seed^0x9E3779B97F4A7C15))
	}

	return &Cpu{
		Registers: NewRegisters(),

		Memory: memory,
		Screen: NewScreen(),

		state:  Running{},
		rng:    rng,
		quirks: config.Quirks,

		machineRoutineInterpreter: config.MachineRoutineInterpreter,

		isScreenDirty: true,
	}
}

func (cpu *Cpu) State() State {
	return cpu.state
}

func (cpu *Cpu) IsAwaitingKey() bool {
	_, ok := cpu.state.(AwaitingKey)
	return ok
}

func (cpu *Cpu) Quirks() Quirks {
	return cpu.quirks
}

func (cpu *Cpu) Cycles() uint {
	return cpu.cycles
}

// OpCode is the last fetched opcode
func (cpu *Cpu) OpCode() uint16 {
	return cpu.opCode
}

func (cpu *Cpu) IsSoundTimerActive() bool {
	return cpu.St > 0
}

// ScreenChanged reports whether the screen was drawn or cleared since the last call
func (cpu *Cpu) ScreenChanged() bool {
	dirty := cpu.isScreenDirty
	cpu.isScreenDirty = false

	return dirty
}

// Reset puts registers, screen and state back to their power-on values.
// Memory is left untouched.
func (cpu *Cpu) Reset() {
	cpu.Registers = NewRegisters()
	cpu.state = Running{}
	cpu.opCode = 0
	cpu.cycles = 0
	cpu.clearScreen()
}

// Cycle runs a single step of the machine.
//
// While awaiting a key the cycle only polls the keyboard. Otherwise it updates
// the buzzer, decrements both timers, fetches the opcode at PC, moves PC past it
// and executes it. The PC is not rolled back when the instruction fails.
func (cpu *Cpu) Cycle(keyboard Keyboard, buzzer Buzzer) error {
	if waiting, ok := cpu.state.(AwaitingKey); ok {
		if k, pressed := keyboard.FirstPressed(); pressed {
			if err := cpu.SetRegister(waiting.Register, k); err != nil {
				return err
			}
			cpu.state = Running{}
		}
		return nil
	}

	if cpu.IsSoundTimerActive() {
		if err := buzzer.Play(); err != nil {
			return fmt.Errorf("buzzer play: %w", err)
		}
	} else {
		if err := buzzer.Stop(); err != nil {
			return fmt.Errorf("buzzer stop: %w", err)
		}
	}

	cpu.DecrementSt()
	cpu.DecrementDt()

	cpu.opCode = cpu.Memory.Word(cpu.Pc)
	cpu.Pc += 2
	cpu.cycles++

	return cpu.execute(Decode(cpu.opCode), keyboard)
}

// Snapshot is a copy of the observable state of the Cpu
type Snapshot struct {
	OpCode uint16
	Pc     uint16
	I      uint16
	V      [RegisterCount]byte
	Dt, St byte
	Stack  []uint16
	State  State
	Cycles uint
}

func (cpu *Cpu) Snapshot() Snapshot {
	return Snapshot{
		OpCode: cpu.opCode,
		Pc:     cpu.Pc,
		I:      cpu.I,
		V:      cpu.V(),
		Dt:     cpu.Dt,
		St:     cpu.St,
		Stack:  cpu.Stack(),
		State:  cpu.state,
		Cycles: cpu.cycles,
	}
}

func (cpu *Cpu) clearScreen() {
	cpu.Screen.Clear()
	cpu.isScreenDirty = true
}

func bool2byte(b bool) byte {
	if b {
		return 1
	}

	return 0
}

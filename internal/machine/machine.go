// Package machine bundles the memory and processor of a simulated computer and
// exposes the operations a front end uses to plant a program, run it and read results back.
package machine

import (
	"fmt"

	"github.com/retroenv/retrogolib/log"
	"github.com/retroenv/sim6502/internal/cpu"
	"github.com/retroenv/sim6502/internal/memory"
)

// Machine is a single simulated computer. It is not safe for concurrent use.
type Machine struct {
	logger *log.Logger
	memory *memory.Memory
	cpu    *cpu.CPU
}

// Snapshot is a copy of the processor registers after a run.
type Snapshot struct {
	cpu.Registers
	Halted bool
}

// New returns a new machine in reset state.
func New(logger *log.Logger, options ...cpu.Option) *Machine {
	mem := memory.New()
	m := &Machine{
		logger: logger,
		memory: mem,
		cpu:    cpu.New(logger, mem, options...),
	}
	m.Reset()
	return m
}

// Reset zeroes the memory and initializes the registers.
func (m *Machine) Reset() {
	m.cpu.Reset()
}

// Write stores a byte in memory.
func (m *Machine) Write(address uint16, value byte) {
	m.memory.Write(address, value)
}

// Read returns a byte from memory.
func (m *Machine) Read(address uint16) byte {
	return m.memory.Read(address)
}

// ReadWord returns the little endian word stored at address and address+1.
func (m *Machine) ReadWord(address uint16) uint16 {
	return m.memory.ReadWord(address)
}

// WriteBytes stores consecutive bytes starting at address.
func (m *Machine) WriteBytes(address uint16, values ...byte) {
	m.memory.WriteBytes(address, values...)
}

// ReadBytes returns length consecutive bytes starting at address.
func (m *Machine) ReadBytes(address uint16, length int) []byte {
	return m.memory.Slice(address, length)
}

// SetPC sets the program counter, the entry point of the next run.
func (m *Machine) SetPC(address uint16) {
	m.cpu.PC = address
}

// SetCarry presets the carry flag before a run.
func (m *Machine) SetCarry(carry bool) {
	m.cpu.C = carry
}

// Run executes the program until it halts or the cycle budget is exhausted.
func (m *Machine) Run(budget uint32) (cpu.Result, error) {
	m.logger.Debug("Running program",
		log.Hex("pc", m.cpu.PC),
		log.Int("cycles", int(budget)))

	result, err := m.cpu.Run(budget)
	if err != nil {
		return result, fmt.Errorf("running program: %w", err)
	}

	msg := "Cycle budget exhausted"
	if result.Halted {
		msg = "Program halted"
	}
	m.logger.Debug(msg,
		log.Int("cycles", result.Cycles),
		log.Int("instructions", result.Instructions))
	return result, nil
}

// Step executes a single instruction and returns the cycles it consumed.
func (m *Machine) Step() (int, error) {
	cycles, err := m.cpu.Step()
	if err != nil {
		return cycles, fmt.Errorf("stepping program: %w", err)
	}
	return cycles, nil
}

// Snapshot returns a copy of the current registers.
func (m *Machine) Snapshot() Snapshot {
	return Snapshot{
		Registers: m.cpu.Registers,
		Halted:    m.cpu.Halted(),
	}
}

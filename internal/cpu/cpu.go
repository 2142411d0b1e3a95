// Package cpu implements a 6502 instruction set simulator working on a flat 64 KiB memory.
package cpu

import (
	m6502 "github.com/retroenv/retrogolib/arch/cpu/cpu6502"
	"github.com/retroenv/retrogolib/log"
	"github.com/retroenv/sim6502/internal/memory"
)

// CPU is the processor state and its fetch, decode and execute engine.
// It is not safe for concurrent use, a CPU and its memory are driven by one caller at a time.
type CPU struct {
	Registers

	memory *memory.Memory
	logger *log.Logger
	opts   Options

	cycles int  // cycles charged by the instruction being executed
	halted bool // set by BRK, ends the current run
}

// Result describes a finished run.
type Result struct {
	Cycles       int  // cycles consumed, may exceed the budget by the cost of the last instruction
	Instructions int  // number of executed instructions including unknown opcodes
	Halted       bool // the run ended on a BRK instead of budget exhaustion
}

// New returns a new CPU operating on the given memory. The registers are in reset state.
func New(logger *log.Logger, mem *memory.Memory, options ...Option) *CPU {
	if logger == nil {
		logger = log.NewWithConfig(log.DefaultConfig())
	}

	c := &CPU{
		memory: mem,
		logger: logger,
	}
	for _, option := range options {
		option(&c.opts)
	}
	c.Registers.Reset()
	return c
}

// Memory returns the memory the CPU operates on.
func (c *CPU) Memory() *memory.Memory {
	return c.memory
}

// Reset zeroes the memory and initializes the registers to their reset values.
func (c *CPU) Reset() {
	c.memory.Reset()
	c.Registers.Reset()
	c.halted = false
}

// Halted returns whether the last run or step ended on a BRK instruction.
func (c *CPU) Halted() bool {
	return c.halted
}

// Run executes instructions until the cycle budget is exhausted or a BRK instruction is executed.
// The budget is only checked between instructions, a started instruction always completes.
// An error is only returned for an unknown opcode when strict opcode checking is enabled.
func (c *CPU) Run(budget uint32) (Result, error) {
	var result Result
	remaining := int(budget)
	c.halted = false

	for remaining > 0 {
		cycles, err := c.Step()
		remaining -= cycles
		result.Cycles += cycles
		result.Instructions++
		if err != nil {
			return result, err
		}
		if c.halted {
			result.Halted = true
			break
		}
	}
	return result, nil
}

// Step executes a single instruction and returns the number of cycles it consumed.
func (c *CPU) Step() (int, error) {
	c.cycles = 0
	c.halted = false

	address := c.PC
	b := c.fetch()
	op, ok := Decode(b)
	if !ok {
		return c.cycles, c.unknownOpcode(b, address)
	}

	if c.opts.Trace {
		c.logger.Debug("Executing instruction",
			log.Hex("address", address),
			log.String("instruction", op.Instruction.Name),
			log.Hex("a", c.A),
			log.Hex("x", c.X),
			log.Hex("y", c.Y),
			log.Hex("sp", c.SP),
			log.String("flags", c.Status.String()))
	}

	c.execute(op)
	return c.cycles, nil
}

// unknownOpcode handles an opcode byte without instruction. Only the opcode byte is consumed,
// decoding continues at the following byte unless strict opcode checking is enabled.
func (c *CPU) unknownOpcode(b byte, address uint16) error {
	if c.opts.StrictOpcodes {
		return &IllegalOpcodeError{Opcode: b, Address: address}
	}

	// the retrogolib table knows the unofficial opcodes that this processor does not execute
	if info := m6502.Opcodes[b]; info.Instruction != nil {
		c.logger.Warn("Unsupported unofficial opcode",
			log.Hex("opcode", b),
			log.Hex("address", address),
			log.String("instruction", info.Instruction.Name))
		return nil
	}

	c.logger.Warn("Unknown opcode",
		log.Hex("opcode", b),
		log.Hex("address", address))
	return nil
}

// tick charges cycles to the current instruction.
func (c *CPU) tick(cycles int) {
	c.cycles += cycles
}

// read returns a memory byte and charges a cycle.
func (c *CPU) read(address uint16) byte {
	c.tick(1)
	return c.memory.Read(address)
}

// write stores a memory byte and charges a cycle.
func (c *CPU) write(address uint16, value byte) {
	c.tick(1)
	c.memory.Write(address, value)
}

// fetch returns the byte at the program counter and advances it.
func (c *CPU) fetch() byte {
	b := c.read(c.PC)
	c.PC++
	return b
}

// fetchWord returns the little endian word at the program counter and advances it.
func (c *CPU) fetchWord() uint16 {
	low := uint16(c.fetch())
	high := uint16(c.fetch())
	return high<<8 | low
}

// push writes a byte at the stack pointer and decrements it.
func (c *CPU) push(value byte) {
	c.write(c.SP, value)
	c.SP--
}

// pop increments the stack pointer and reads the byte it points to.
func (c *CPU) pop() byte {
	c.SP++
	return c.read(c.SP)
}

// Package frontend implements the terminal front end that asks for operands,
// plants a hand assembled program into a machine, runs it and prints the result.
package frontend

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/retroenv/retrogolib/log"
	"github.com/retroenv/sim6502/internal/machine"
	"github.com/retroenv/sim6502/internal/options"
	"github.com/retroenv/sim6502/internal/program"
	"golang.org/x/term"
)

// ErrInvalidInput is returned for operands that are missing or out of range.
var ErrInvalidInput = errors.New("invalid input")

// Frontend reads operands from flags or an input stream and prints results to an output stream.
type Frontend struct {
	logger  *log.Logger
	machine *machine.Machine
	scanner *bufio.Scanner
	out     io.Writer
	budget  uint32
	prompt  bool // print prompts, only done when reading from a terminal
}

// New returns a front end driving the given machine. Prompts are written to out only if
// in is a terminal.
func New(logger *log.Logger, m *machine.Machine, in io.Reader, out io.Writer, budget uint32) *Frontend {
	scanner := bufio.NewScanner(in)
	scanner.Split(bufio.ScanWords)

	return &Frontend{
		logger:  logger,
		machine: m,
		scanner: scanner,
		out:     out,
		budget:  budget,
		prompt:  isTerminal(in),
	}
}

func isTerminal(r io.Reader) bool {
	file, ok := r.(*os.File)
	return ok && term.IsTerminal(int(file.Fd()))
}

// Calculator adds or subtracts two byte operands on the simulated processor and prints
// the result as a signed byte.
func (f *Frontend) Calculator(ctx context.Context, operands options.Operands) error {
	a, err := f.operand(operands.A, "Enter first operand (-128-255): ", "first operand")
	if err != nil {
		return err
	}
	b, err := f.operand(operands.B, "Enter second operand (-128-255): ", "second operand")
	if err != nil {
		return err
	}
	operation, err := f.value(operands.Operation, "Enter operation (+ or -): ", "operation")
	if err != nil {
		return err
	}
	if len(operation) != 1 {
		return fmt.Errorf("%w for operation: '%s'", ErrInvalidInput, operation)
	}

	img, err := program.Arithmetic(rune(operation[0]))
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}

	f.machine.Reset()
	f.machine.Write(program.Operand1, a)
	f.machine.Write(program.Operand2, b)
	if err := f.run(ctx, img); err != nil {
		return err
	}

	result := int8(f.machine.Read(program.Result))
	_, err = fmt.Fprintf(f.out, "Result: %d\n", result)
	return err
}

// Fibonacci computes a Fibonacci number by calling a subroutine on the simulated processor.
func (f *Frontend) Fibonacci(ctx context.Context, operands options.Operands) error {
	s, err := f.value(operands.Index, fmt.Sprintf("Enter Fibonacci index (0-%d): ", program.MaxFibonacciIndex), "index")
	if err != nil {
		return err
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 || n > program.MaxFibonacciIndex {
		return fmt.Errorf("%w for index: '%s'", ErrInvalidInput, s)
	}

	f.machine.Reset()
	f.machine.Write(program.Operand1, byte(n))
	if err := f.run(ctx, program.Fibonacci()); err != nil {
		return err
	}

	result := f.machine.ReadWord(program.Result)
	_, err = fmt.Fprintf(f.out, "Fibonacci(%d) = %d\n", n, result)
	return err
}

func (f *Frontend) run(ctx context.Context, img program.Image) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("running program: %w", err)
	}

	img.Load(f.machine)
	result, err := f.machine.Run(f.budget)
	if err != nil {
		return err
	}
	if !result.Halted {
		f.logger.Warn("Program did not finish within the cycle budget",
			log.Int("cycles", result.Cycles))
	}
	return nil
}

// operand returns a byte operand. Negative values down to -128 are accepted as
// two's complement.
func (f *Frontend) operand(flagValue, prompt, name string) (byte, error) {
	s, err := f.value(flagValue, prompt, name)
	if err != nil {
		return 0, err
	}

	i, err := strconv.Atoi(s)
	if err != nil || i < -128 || i > 255 {
		return 0, fmt.Errorf("%w for %s: '%s'", ErrInvalidInput, name, s)
	}
	return byte(i), nil
}

// value returns the flag value if set, otherwise the next word of the input.
func (f *Frontend) value(flagValue, prompt, name string) (string, error) {
	if flagValue != "" {
		return flagValue, nil
	}

	if f.prompt {
		if _, err := io.WriteString(f.out, prompt); err != nil {
			return "", fmt.Errorf("writing prompt: %w", err)
		}
	}

	if !f.scanner.Scan() {
		if err := f.scanner.Err(); err != nil {
			return "", fmt.Errorf("reading %s: %w", name, err)
		}
		return "", fmt.Errorf("%w for %s: no value", ErrInvalidInput, name)
	}
	return f.scanner.Text(), nil
}

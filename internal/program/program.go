// Package program hand-assembles the small machine code programs run by the front end
// and defines the memory locations they exchange operands and results through.
package program

import (
	"errors"
	"fmt"
)

// Memory layout shared by the programs and the front end.
const (
	Origin = 0x0600 // load address and entry point of the programs

	Operand1 = 0x0010 // first calculator operand, Fibonacci index
	Operand2 = 0x0011 // second calculator operand
	Result   = 0x0012 // result low byte
	ResultHi = 0x0013 // Fibonacci result high byte

	fibSubroutine = 0x0640
	fibPrevious   = 0x0020 // 16 bit F(i)
	fibCurrent    = 0x0022 // 16 bit F(i+1)
	fibNext       = 0x0024 // 16 bit scratch
)

// MaxFibonacciIndex is the largest index whose Fibonacci number fits the 16 bit result.
const MaxFibonacciIndex = 24

// Operations supported by the calculator program.
const (
	Add      = '+'
	Subtract = '-'
)

// ErrUnsupportedOperation is returned for calculator operations other than add and subtract.
var ErrUnsupportedOperation = errors.New("unsupported operation")

// opcode bytes used by the programs
const (
	opBrk    = 0x00
	opClc    = 0x18
	opJsr    = 0x20
	opSec    = 0x38
	opRts    = 0x60
	opAdcZp  = 0x65
	opAdcAbs = 0x6D
	opStaZp  = 0x85
	opStaAbs = 0x8D
	opLdaImm = 0xA9
	opLdaZp  = 0xA5
	opLdxZp  = 0xA6
	opLdaAbs = 0xAD
	opDex    = 0xCA
	opBne    = 0xD0
	opSbcAbs = 0xED
	opBeq    = 0xF0
)

// Segment is a block of bytes placed at an address.
type Segment struct {
	Address uint16
	Data    []byte
}

// Image is a complete program image, the entry point and all segments to plant.
type Image struct {
	Entry    uint16
	Segments []Segment
}

// Writer is the part of a machine an image is planted into.
type Writer interface {
	WriteBytes(address uint16, values ...byte)
	SetPC(address uint16)
}

// Load writes all segments of the image and points the program counter at its entry.
func (img Image) Load(w Writer) {
	for _, segment := range img.Segments {
		w.WriteBytes(segment.Address, segment.Data...)
	}
	w.SetPC(img.Entry)
}

// Size returns the number of bytes of all segments.
func (img Image) Size() int {
	var size int
	for _, segment := range img.Segments {
		size += len(segment.Data)
	}
	return size
}

// Arithmetic returns the image that loads the operand at Operand1, adds or subtracts the
// operand at Operand2 using absolute addressing and stores the result at Result.
// The carry is prepared so that the result is a plain 8 bit sum or difference.
func Arithmetic(operation rune) (Image, error) {
	var carry, instruction byte
	switch operation {
	case Add:
		carry, instruction = opClc, opAdcAbs
	case Subtract:
		carry, instruction = opSec, opSbcAbs
	default:
		return Image{}, fmt.Errorf("%w '%c'", ErrUnsupportedOperation, operation)
	}

	a := newAssembler(Origin)
	a.emit(carry)
	a.emitAbsolute(opLdaAbs, Operand1)
	a.emitAbsolute(instruction, Operand2)
	a.emitAbsolute(opStaAbs, Result)
	a.emit(opBrk)

	return Image{
		Entry:    Origin,
		Segments: []Segment{{Address: Origin, Data: a.code}},
	}, nil
}

// Fibonacci returns the image that calls an iterative Fibonacci subroutine for the index
// stored at Operand1 and stores the 16 bit result at Result and ResultHi.
func Fibonacci() Image {
	main := newAssembler(Origin)
	main.emitAbsolute(opJsr, fibSubroutine)
	main.emit(opBrk)

	sub := newAssembler(fibSubroutine)
	// previous = 0, current = 1
	sub.emit(opLdaImm, 0)
	sub.emit(opStaZp, fibPrevious)
	sub.emit(opStaZp, fibPrevious+1)
	sub.emit(opStaZp, fibCurrent+1)
	sub.emit(opLdaImm, 1)
	sub.emit(opStaZp, fibCurrent)

	sub.emit(opLdxZp, Operand1)
	doneBranch := sub.emitBranch(opBeq)

	loop := sub.address()
	// next = previous + current
	sub.emit(opClc)
	sub.emit(opLdaZp, fibPrevious)
	sub.emit(opAdcZp, fibCurrent)
	sub.emit(opStaZp, fibNext)
	sub.emit(opLdaZp, fibPrevious+1)
	sub.emit(opAdcZp, fibCurrent+1)
	sub.emit(opStaZp, fibNext+1)
	// previous = current, current = next
	sub.emit(opLdaZp, fibCurrent)
	sub.emit(opStaZp, fibPrevious)
	sub.emit(opLdaZp, fibCurrent+1)
	sub.emit(opStaZp, fibPrevious+1)
	sub.emit(opLdaZp, fibNext)
	sub.emit(opStaZp, fibCurrent)
	sub.emit(opLdaZp, fibNext+1)
	sub.emit(opStaZp, fibCurrent+1)
	sub.emit(opDex)
	sub.branchTo(sub.emitBranch(opBne), loop)

	sub.branchTo(doneBranch, sub.address())
	sub.emit(opLdaZp, fibPrevious)
	sub.emit(opStaZp, Result)
	sub.emit(opLdaZp, fibPrevious+1)
	sub.emit(opStaZp, ResultHi)
	sub.emit(opRts)

	return Image{
		Entry: Origin,
		Segments: []Segment{
			{Address: Origin, Data: main.code},
			{Address: fibSubroutine, Data: sub.code},
		},
	}
}

// FibonacciNumber returns the Fibonacci number for the index, computed natively.
func FibonacciNumber(n int) uint64 {
	var previous, current uint64 = 0, 1
	for range n {
		previous, current = current, previous+current
	}
	return previous
}

// assembler emits machine code bytes for a fixed load address.
type assembler struct {
	origin uint16
	code   []byte
}

func newAssembler(origin uint16) *assembler {
	return &assembler{origin: origin}
}

// address returns the address of the next emitted byte.
func (a *assembler) address() uint16 {
	return a.origin + uint16(len(a.code))
}

func (a *assembler) emit(b ...byte) {
	a.code = append(a.code, b...)
}

func (a *assembler) emitAbsolute(opcode byte, address uint16) {
	a.emit(opcode, byte(address), byte(address>>8))
}

// emitBranch emits a branch with a placeholder offset and returns the offset position.
func (a *assembler) emitBranch(opcode byte) int {
	a.emit(opcode, 0)
	return len(a.code) - 1
}

// branchTo patches the branch offset at position to reach the target address.
func (a *assembler) branchTo(position int, target uint16) {
	next := a.origin + uint16(position) + 1
	offset := int(target) - int(next)
	if offset < -128 || offset > 127 {
		panic(fmt.Sprintf("branch target 0x%04X out of range", target))
	}
	a.code[position] = byte(int8(offset))
}

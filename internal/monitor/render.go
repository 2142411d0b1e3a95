package monitor

import (
	"fmt"
	"io"
	"strings"

	m6502 "github.com/retroenv/retrogolib/arch/cpu/cpu6502"
	"github.com/retroenv/sim6502/internal/cpu"
	"github.com/retroenv/sim6502/internal/machine"
)

const bytesPerLine = 16

// WriteRegisters writes the processor registers and flags in a single line.
func WriteRegisters(w io.Writer, snap machine.Snapshot) error {
	_, err := fmt.Fprintf(w, "PC:%04X A:%02X X:%02X Y:%02X SP:%04X P:%02X %s\n",
		snap.PC, snap.A, snap.X, snap.Y, snap.SP, snap.Pack(), snap.Status.String())
	return err
}

// WriteMemory writes a hex dump of data that was read starting at address start.
func WriteMemory(w io.Writer, start uint16, data []byte) error {
	var sb strings.Builder
	for offset := 0; offset < len(data); offset += bytesPerLine {
		line := data[offset:min(offset+bytesPerLine, len(data))]

		fmt.Fprintf(&sb, "%04X:", start+uint16(offset))
		for _, b := range line {
			fmt.Fprintf(&sb, " %02X", b)
		}
		sb.WriteString(strings.Repeat("   ", bytesPerLine-len(line)))

		sb.WriteString("  ")
		for _, b := range line {
			if b >= 0x20 && b < 0x7F {
				sb.WriteByte(b)
			} else {
				sb.WriteByte('.')
			}
		}
		sb.WriteByte('\n')
	}

	_, err := io.WriteString(w, sb.String())
	return err
}

// Reader reads memory bytes.
type Reader interface {
	Read(address uint16) byte
}

// FormatInstruction returns the instruction at the address in assembler notation and
// the number of bytes it occupies.
func FormatInstruction(r Reader, address uint16) (string, int) {
	b := r.Read(address)
	op, ok := cpu.Decode(b)
	if !ok {
		return fmt.Sprintf(".byte $%02X", b), 1
	}

	size := op.OperandSize()
	operand := uint16(r.Read(address + 1))
	if size == 2 {
		operand |= uint16(r.Read(address+2)) << 8
	}

	name := op.Instruction.Name
	switch op.Addressing {
	case m6502.ImpliedAddressing:
		return name, 1
	case m6502.AccumulatorAddressing:
		return name + " a", 1
	case m6502.ImmediateAddressing:
		return fmt.Sprintf("%s #$%02X", name, operand), 2
	case m6502.ZeroPageAddressing:
		return fmt.Sprintf("%s $%02X", name, operand), 2
	case m6502.ZeroPageXAddressing:
		return fmt.Sprintf("%s $%02X,X", name, operand), 2
	case m6502.ZeroPageYAddressing:
		return fmt.Sprintf("%s $%02X,Y", name, operand), 2
	case m6502.AbsoluteAddressing:
		return fmt.Sprintf("%s $%04X", name, operand), 3
	case m6502.AbsoluteXAddressing:
		return fmt.Sprintf("%s $%04X,X", name, operand), 3
	case m6502.AbsoluteYAddressing:
		return fmt.Sprintf("%s $%04X,Y", name, operand), 3
	case m6502.IndirectAddressing:
		return fmt.Sprintf("%s ($%04X)", name, operand), 3
	case m6502.IndirectXAddressing:
		return fmt.Sprintf("%s ($%02X,X)", name, operand), 2
	case m6502.IndirectYAddressing:
		return fmt.Sprintf("%s ($%02X),Y", name, operand), 2
	case m6502.RelativeAddressing:
		target := address + 2 + uint16(int8(operand))
		return fmt.Sprintf("%s $%04X", name, target), 2
	default:
		return name, 1 + size
	}
}

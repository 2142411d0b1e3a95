package cpu

import (
	"fmt"

	m6502 "github.com/retroenv/retrogolib/arch/cpu/cpu6502"
)

// Instruction describes a processor instruction and its behavior. Exactly one of the
// handler fields is set, it defines how the operand of the addressing mode is used.
type Instruction struct {
	Name string

	// Addressing maps every supported addressing mode to its opcode byte.
	Addressing map[m6502.AddressingMode]byte

	Implied func(c *CPU)                  // no operand
	Read    func(c *CPU, value byte)      // operates on an immediate or memory value
	Write   func(c *CPU) byte             // returns the value to store at the effective address
	Modify  func(c *CPU, value byte) byte // read-modify-write on memory or the accumulator
	Branch  func(c *CPU) bool             // returns whether the relative branch is taken
	Jump    func(c *CPU, address uint16)  // transfers control to the effective address
}

// Opcode is a decoded opcode byte.
type Opcode struct {
	Instruction *Instruction // nil for opcodes that are not supported
	Addressing  m6502.AddressingMode
}

// Opcodes maps every opcode byte to its instruction and addressing mode.
var Opcodes [256]Opcode

// Instructions lists all supported instructions.
var Instructions = []*Instruction{
	Adc, And, Asl, Bcc, Bcs, Beq, Bit, Bmi, Bne, Bpl, Brk, Bvc, Bvs,
	Clc, Cld, Cli, Clv, Cmp, Cpx, Cpy, Dec, Dex, Dey, Eor, Inc, Inx, Iny,
	Jmp, Jsr, Lda, Ldx, Ldy, Lsr, Nop, Ora, Pha, Php, Pla, Plp, Rol, Ror,
	Rti, Rts, Sbc, Sec, Sed, Sei, Sta, Stx, Sty, Tax, Tay, Tsx, Txa, Txs, Tya,
}

func init() {
	for _, ins := range Instructions {
		for addressing, b := range ins.Addressing {
			if Opcodes[b].Instruction != nil {
				panic(fmt.Sprintf("opcode 0x%02X defined for %s and %s", b, Opcodes[b].Instruction.Name, ins.Name))
			}
			Opcodes[b] = Opcode{
				Instruction: ins,
				Addressing:  addressing,
			}
		}
	}
}

// Decode returns the opcode for the given byte and whether it is supported.
func Decode(b byte) (Opcode, bool) {
	op := Opcodes[b]
	return op, op.Instruction != nil
}

// OperandSize returns the number of operand bytes that follow the opcode byte.
func (o Opcode) OperandSize() int {
	switch o.Addressing {
	case m6502.ImpliedAddressing, m6502.AccumulatorAddressing:
		return 0
	case m6502.AbsoluteAddressing, m6502.AbsoluteXAddressing, m6502.AbsoluteYAddressing,
		m6502.IndirectAddressing:
		return 2
	default:
		return 1
	}
}

// readModes lists the eight addressing modes shared by the accumulator read instructions.
func readModes(immediate, zeroPage, zeroPageX, absolute, absoluteX, absoluteY, indirectX, indirectY byte) map[m6502.AddressingMode]byte {
	return map[m6502.AddressingMode]byte{
		m6502.ImmediateAddressing: immediate,
		m6502.ZeroPageAddressing:  zeroPage,
		m6502.ZeroPageXAddressing: zeroPageX,
		m6502.AbsoluteAddressing:  absolute,
		m6502.AbsoluteXAddressing: absoluteX,
		m6502.AbsoluteYAddressing: absoluteY,
		m6502.IndirectXAddressing: indirectX,
		m6502.IndirectYAddressing: indirectY,
	}
}

// shiftModes lists the five addressing modes shared by the shift and rotate instructions.
func shiftModes(accumulator, zeroPage, zeroPageX, absolute, absoluteX byte) map[m6502.AddressingMode]byte {
	return map[m6502.AddressingMode]byte{
		m6502.AccumulatorAddressing: accumulator,
		m6502.ZeroPageAddressing:    zeroPage,
		m6502.ZeroPageXAddressing:   zeroPageX,
		m6502.AbsoluteAddressing:    absolute,
		m6502.AbsoluteXAddressing:   absoluteX,
	}
}

func implied(b byte) map[m6502.AddressingMode]byte {
	return map[m6502.AddressingMode]byte{m6502.ImpliedAddressing: b}
}

func relative(b byte) map[m6502.AddressingMode]byte {
	return map[m6502.AddressingMode]byte{m6502.RelativeAddressing: b}
}

// Load and store instructions.
var (
	Lda = &Instruction{
		Name:       m6502.LdaInst.Name,
		Addressing: readModes(0xA9, 0xA5, 0xB5, 0xAD, 0xBD, 0xB9, 0xA1, 0xB1),
		Read:       lda,
	}
	Ldx = &Instruction{
		Name: m6502.LdxInst.Name,
		Addressing: map[m6502.AddressingMode]byte{
			m6502.ImmediateAddressing: 0xA2,
			m6502.ZeroPageAddressing:  0xA6,
			m6502.ZeroPageYAddressing: 0xB6,
			m6502.AbsoluteAddressing:  0xAE,
			m6502.AbsoluteYAddressing: 0xBE,
		},
		Read: ldx,
	}
	Ldy = &Instruction{
		Name: m6502.LdyInst.Name,
		Addressing: map[m6502.AddressingMode]byte{
			m6502.ImmediateAddressing: 0xA0,
			m6502.ZeroPageAddressing:  0xA4,
			m6502.ZeroPageXAddressing: 0xB4,
			m6502.AbsoluteAddressing:  0xAC,
			m6502.AbsoluteXAddressing: 0xBC,
		},
		Read: ldy,
	}
	Sta = &Instruction{
		Name: m6502.StaInst.Name,
		Addressing: map[m6502.AddressingMode]byte{
			m6502.ZeroPageAddressing:  0x85,
			m6502.ZeroPageXAddressing: 0x95,
			m6502.AbsoluteAddressing:  0x8D,
			m6502.AbsoluteXAddressing: 0x9D,
			m6502.AbsoluteYAddressing: 0x99,
			m6502.IndirectXAddressing: 0x81,
			m6502.IndirectYAddressing: 0x91,
		},
		Write: sta,
	}
	Stx = &Instruction{
		Name: m6502.StxInst.Name,
		Addressing: map[m6502.AddressingMode]byte{
			m6502.ZeroPageAddressing:  0x86,
			m6502.ZeroPageYAddressing: 0x96,
			m6502.AbsoluteAddressing:  0x8E,
		},
		Write: stx,
	}
	Sty = &Instruction{
		Name: m6502.StyInst.Name,
		Addressing: map[m6502.AddressingMode]byte{
			m6502.ZeroPageAddressing:  0x84,
			m6502.ZeroPageXAddressing: 0x94,
			m6502.AbsoluteAddressing:  0x8C,
		},
		Write: sty,
	}
)

// Arithmetic, logical and compare instructions.
var (
	Adc = &Instruction{
		Name:       m6502.AdcInst.Name,
		Addressing: readModes(0x69, 0x65, 0x75, 0x6D, 0x7D, 0x79, 0x61, 0x71),
		Read:       adc,
	}
	Sbc = &Instruction{
		Name:       m6502.SbcInst.Name,
		Addressing: readModes(0xE9, 0xE5, 0xF5, 0xED, 0xFD, 0xF9, 0xE1, 0xF1),
		Read:       sbc,
	}
	And = &Instruction{
		Name:       m6502.AndInst.Name,
		Addressing: readModes(0x29, 0x25, 0x35, 0x2D, 0x3D, 0x39, 0x21, 0x31),
		Read:       and,
	}
	Ora = &Instruction{
		Name:       m6502.OraInst.Name,
		Addressing: readModes(0x09, 0x05, 0x15, 0x0D, 0x1D, 0x19, 0x01, 0x11),
		Read:       ora,
	}
	Eor = &Instruction{
		Name:       m6502.EorInst.Name,
		Addressing: readModes(0x49, 0x45, 0x55, 0x4D, 0x5D, 0x59, 0x41, 0x51),
		Read:       eor,
	}
	Bit = &Instruction{
		Name: m6502.BitInst.Name,
		Addressing: map[m6502.AddressingMode]byte{
			m6502.ZeroPageAddressing: 0x24,
			m6502.AbsoluteAddressing: 0x2C,
		},
		Read: bit,
	}
	Cmp = &Instruction{
		Name:       m6502.CmpInst.Name,
		Addressing: readModes(0xC9, 0xC5, 0xD5, 0xCD, 0xDD, 0xD9, 0xC1, 0xD1),
		Read:       cmp,
	}
	Cpx = &Instruction{
		Name: m6502.CpxInst.Name,
		Addressing: map[m6502.AddressingMode]byte{
			m6502.ImmediateAddressing: 0xE0,
			m6502.ZeroPageAddressing:  0xE4,
			m6502.AbsoluteAddressing:  0xEC,
		},
		Read: cpx,
	}
	Cpy = &Instruction{
		Name: m6502.CpyInst.Name,
		Addressing: map[m6502.AddressingMode]byte{
			m6502.ImmediateAddressing: 0xC0,
			m6502.ZeroPageAddressing:  0xC4,
			m6502.AbsoluteAddressing:  0xCC,
		},
		Read: cpy,
	}
)

// Increment, decrement, shift and rotate instructions.
var (
	Inc = &Instruction{
		Name: m6502.IncInst.Name,
		Addressing: map[m6502.AddressingMode]byte{
			m6502.ZeroPageAddressing:  0xE6,
			m6502.ZeroPageXAddressing: 0xF6,
			m6502.AbsoluteAddressing:  0xEE,
			m6502.AbsoluteXAddressing: 0xFE,
		},
		Modify: inc,
	}
	Dec = &Instruction{
		Name: m6502.DecInst.Name,
		Addressing: map[m6502.AddressingMode]byte{
			m6502.ZeroPageAddressing:  0xC6,
			m6502.ZeroPageXAddressing: 0xD6,
			m6502.AbsoluteAddressing:  0xCE,
			m6502.AbsoluteXAddressing: 0xDE,
		},
		Modify: dec,
	}
	Inx = &Instruction{Name: m6502.InxInst.Name, Addressing: implied(0xE8), Implied: inx}
	Iny = &Instruction{Name: m6502.InyInst.Name, Addressing: implied(0xC8), Implied: iny}
	Dex = &Instruction{Name: m6502.DexInst.Name, Addressing: implied(0xCA), Implied: dex}
	Dey = &Instruction{Name: m6502.DeyInst.Name, Addressing: implied(0x88), Implied: dey}

	Asl = &Instruction{Name: m6502.AslInst.Name, Addressing: shiftModes(0x0A, 0x06, 0x16, 0x0E, 0x1E), Modify: asl}
	Lsr = &Instruction{Name: m6502.LsrInst.Name, Addressing: shiftModes(0x4A, 0x46, 0x56, 0x4E, 0x5E), Modify: lsr}
	Rol = &Instruction{Name: m6502.RolInst.Name, Addressing: shiftModes(0x2A, 0x26, 0x36, 0x2E, 0x3E), Modify: rol}
	Ror = &Instruction{Name: m6502.RorInst.Name, Addressing: shiftModes(0x6A, 0x66, 0x76, 0x6E, 0x7E), Modify: ror}
)

// Branch instructions.
var (
	Bcc = &Instruction{Name: m6502.BccInst.Name, Addressing: relative(0x90), Branch: func(c *CPU) bool { return !c.C }}
	Bcs = &Instruction{Name: m6502.BcsInst.Name, Addressing: relative(0xB0), Branch: func(c *CPU) bool { return c.C }}
	Beq = &Instruction{Name: m6502.BeqInst.Name, Addressing: relative(0xF0), Branch: func(c *CPU) bool { return c.Z }}
	Bne = &Instruction{Name: m6502.BneInst.Name, Addressing: relative(0xD0), Branch: func(c *CPU) bool { return !c.Z }}
	Bmi = &Instruction{Name: m6502.BmiInst.Name, Addressing: relative(0x30), Branch: func(c *CPU) bool { return c.N }}
	Bpl = &Instruction{Name: m6502.BplInst.Name, Addressing: relative(0x10), Branch: func(c *CPU) bool { return !c.N }}
	Bvc = &Instruction{Name: m6502.BvcInst.Name, Addressing: relative(0x50), Branch: func(c *CPU) bool { return !c.V }}
	Bvs = &Instruction{Name: m6502.BvsInst.Name, Addressing: relative(0x70), Branch: func(c *CPU) bool { return c.V }}
)

// Status flag instructions.
var (
	Clc = &Instruction{Name: m6502.ClcInst.Name, Addressing: implied(0x18), Implied: func(c *CPU) { c.C = false }}
	Cld = &Instruction{Name: m6502.CldInst.Name, Addressing: implied(0xD8), Implied: func(c *CPU) { c.D = false }}
	Cli = &Instruction{Name: m6502.CliInst.Name, Addressing: implied(0x58), Implied: func(c *CPU) { c.I = false }}
	Clv = &Instruction{Name: m6502.ClvInst.Name, Addressing: implied(0xB8), Implied: func(c *CPU) { c.V = false }}
	Sec = &Instruction{Name: m6502.SecInst.Name, Addressing: implied(0x38), Implied: func(c *CPU) { c.C = true }}
	Sed = &Instruction{Name: m6502.SedInst.Name, Addressing: implied(0xF8), Implied: func(c *CPU) { c.D = true }}
	Sei = &Instruction{Name: m6502.SeiInst.Name, Addressing: implied(0x78), Implied: func(c *CPU) { c.I = true }}
)

// Stack, transfer and control flow instructions.
var (
	Pha = &Instruction{Name: m6502.PhaInst.Name, Addressing: implied(0x48), Implied: pha}
	Php = &Instruction{Name: m6502.PhpInst.Name, Addressing: implied(0x08), Implied: php}
	Pla = &Instruction{Name: m6502.PlaInst.Name, Addressing: implied(0x68), Implied: pla}
	Plp = &Instruction{Name: m6502.PlpInst.Name, Addressing: implied(0x28), Implied: plp}

	Tax = &Instruction{Name: m6502.TaxInst.Name, Addressing: implied(0xAA), Implied: tax}
	Tay = &Instruction{Name: m6502.TayInst.Name, Addressing: implied(0xA8), Implied: tay}
	Txa = &Instruction{Name: m6502.TxaInst.Name, Addressing: implied(0x8A), Implied: txa}
	Tya = &Instruction{Name: m6502.TyaInst.Name, Addressing: implied(0x98), Implied: tya}
	Tsx = &Instruction{Name: m6502.TsxInst.Name, Addressing: implied(0xBA), Implied: tsx}
	Txs = &Instruction{Name: m6502.TxsInst.Name, Addressing: implied(0x9A), Implied: txs}

	Jmp = &Instruction{
		Name: m6502.JmpInst.Name,
		Addressing: map[m6502.AddressingMode]byte{
			m6502.AbsoluteAddressing: 0x4C,
			m6502.IndirectAddressing: 0x6C,
		},
		Jump: jmp,
	}
	Jsr = &Instruction{
		Name:       m6502.JsrInst.Name,
		Addressing: map[m6502.AddressingMode]byte{m6502.AbsoluteAddressing: 0x20},
		Jump:       jsr,
	}
	Rts = &Instruction{Name: m6502.RtsInst.Name, Addressing: implied(0x60), Implied: rts}
	Rti = &Instruction{Name: m6502.RtiInst.Name, Addressing: implied(0x40), Implied: rti}
	Brk = &Instruction{Name: m6502.BrkInst.Name, Addressing: implied(0x00), Implied: brk}
	Nop = &Instruction{Name: m6502.NopInst.Name, Addressing: implied(0xEA), Implied: func(*CPU) {}}
)

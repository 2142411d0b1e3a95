package cpu

import (
	"fmt"

	m6502 "github.com/retroenv/retrogolib/arch/cpu/cpu6502"
)

// execute runs a decoded instruction whose opcode byte was already fetched.
func (c *CPU) execute(op Opcode) {
	ins := op.Instruction

	switch {
	case ins.Implied != nil:
		ins.Implied(c)

	case ins.Branch != nil:
		c.branch(ins.Branch(c))

	case ins.Jump != nil:
		ins.Jump(c, c.effectiveAddress(op.Addressing))

	case ins.Read != nil:
		if op.Addressing == m6502.ImmediateAddressing {
			ins.Read(c, c.fetch())
			return
		}
		address := c.effectiveAddress(op.Addressing)
		ins.Read(c, c.read(address))

	case ins.Write != nil:
		address := c.effectiveAddress(op.Addressing)
		c.write(address, ins.Write(c))

	case ins.Modify != nil:
		if op.Addressing == m6502.AccumulatorAddressing {
			c.A = ins.Modify(c, c.A)
			return
		}
		address := c.effectiveAddress(op.Addressing)
		value := c.read(address)
		c.write(address, ins.Modify(c, value))
	}
}

// effectiveAddress fetches the operand bytes of a memory addressing mode and returns
// the address it refers to. Indexed modes charge their extra cycles here.
func (c *CPU) effectiveAddress(addressing m6502.AddressingMode) uint16 {
	switch addressing {
	case m6502.ZeroPageAddressing:
		return uint16(c.fetch())

	case m6502.ZeroPageXAddressing:
		return c.zeroPageIndexed(c.X)

	case m6502.ZeroPageYAddressing:
		return c.zeroPageIndexed(c.Y)

	case m6502.AbsoluteAddressing:
		return c.fetchWord()

	case m6502.AbsoluteXAddressing:
		return c.indexed(c.fetchWord(), c.X)

	case m6502.AbsoluteYAddressing:
		return c.indexed(c.fetchWord(), c.Y)

	case m6502.IndirectXAddressing:
		pointer := c.fetch() + c.X
		return c.readZeroPageWord(pointer)

	case m6502.IndirectYAddressing:
		base := c.readZeroPageWord(c.fetch())
		return c.indexed(base, c.Y)

	case m6502.IndirectAddressing:
		pointer := c.fetchWord()
		low := uint16(c.read(pointer))
		// the high byte is read from the same page, the pointer low byte wraps
		high := uint16(c.read(pointer&0xFF00 | uint16(byte(pointer)+1)))
		return high<<8 | low

	default:
		panic(fmt.Sprintf("addressing mode %d has no effective address", addressing))
	}
}

// zeroPageIndexed returns a zero page address plus index, wrapping within the zero page.
// The indexing costs a fixed extra cycle.
func (c *CPU) zeroPageIndexed(index byte) uint16 {
	zp := c.fetch()
	c.tick(1)
	return uint16(zp + index)
}

// indexed adds the index to a base address and charges an extra cycle
// when the result is on a different page than the base.
func (c *CPU) indexed(base uint16, index byte) uint16 {
	address := base + uint16(index)
	if pageCrossed(base, address) {
		c.tick(1)
	}
	return address
}

// readZeroPageWord reads a little endian pointer from the zero page,
// the high byte address wraps within the zero page.
func (c *CPU) readZeroPageWord(pointer byte) uint16 {
	low := uint16(c.read(uint16(pointer)))
	high := uint16(c.read(uint16(pointer + 1)))
	return high<<8 | low
}

// branch fetches the signed relative offset and jumps to the target if the condition is met.
// A taken branch costs an extra cycle and another one if the target is on a different page.
func (c *CPU) branch(taken bool) {
	offset := int8(c.fetch())
	if !taken {
		return
	}

	target := uint16(int32(c.PC) + int32(offset))
	c.tick(1)
	if pageCrossed(c.PC, target) {
		c.tick(1)
	}
	c.PC = target
}

func pageCrossed(a, b uint16) bool {
	return a&0xFF00 != b&0xFF00
}

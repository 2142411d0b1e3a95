package cpu

// jsrLinkOffset is the distance between the address following a JSR instruction
// and the link word that JSR stores for RTS.
const jsrLinkOffset = 2

func lda(c *CPU, value byte) {
	c.A = value
	c.SetZN(c.A)
}

func ldx(c *CPU, value byte) {
	c.X = value
	c.SetZN(c.X)
}

func ldy(c *CPU, value byte) {
	c.Y = value
	c.SetZN(c.Y)
}

func sta(c *CPU) byte { return c.A }
func stx(c *CPU) byte { return c.X }
func sty(c *CPU) byte { return c.Y }

func and(c *CPU, value byte) {
	c.A &= value
	c.SetZN(c.A)
}

func ora(c *CPU, value byte) {
	c.A |= value
	c.SetZN(c.A)
}

func eor(c *CPU, value byte) {
	c.A ^= value
	c.SetZN(c.A)
}

// adc adds the value and the carry to the accumulator. Decimal mode is not supported.
func adc(c *CPU, value byte) {
	var carry uint16
	if c.C {
		carry = 1
	}
	sum := uint16(c.A) + uint16(value) + carry
	result := byte(sum)

	c.V = (c.A^result)&(value^result)&0x80 != 0
	c.C = sum > 0xFF
	c.A = result
	c.SetZN(c.A)
}

// sbc subtracts the value and the inverted carry from the accumulator,
// a set carry afterwards means that no borrow occurred.
func sbc(c *CPU, value byte) {
	var borrow uint16
	if !c.C {
		borrow = 1
	}
	diff := uint16(c.A) - uint16(value) - borrow
	result := byte(diff)

	c.V = (c.A^value)&(c.A^result)&0x80 != 0
	c.C = diff < 0x100
	c.A = result
	c.SetZN(c.A)
}

func compare(c *CPU, register, value byte) {
	diff := uint16(register) - uint16(value)
	c.Z = byte(diff) == 0
	c.C = register >= value
	c.N = byte(diff)&0x80 != 0
}

func cmp(c *CPU, value byte) { compare(c, c.A, value) }
func cpx(c *CPU, value byte) { compare(c, c.X, value) }
func cpy(c *CPU, value byte) { compare(c, c.Y, value) }

func bit(c *CPU, value byte) {
	c.Z = c.A&value == 0
	c.V = value&0x40 != 0
	c.N = value&0x80 != 0
}

func inc(c *CPU, value byte) byte {
	value++
	c.SetZN(value)
	return value
}

func dec(c *CPU, value byte) byte {
	value--
	c.SetZN(value)
	return value
}

func inx(c *CPU) { c.X = inc(c, c.X) }
func iny(c *CPU) { c.Y = inc(c, c.Y) }
func dex(c *CPU) { c.X = dec(c, c.X) }
func dey(c *CPU) { c.Y = dec(c, c.Y) }

func asl(c *CPU, value byte) byte {
	c.C = value&0x80 != 0
	value <<= 1
	c.SetZN(value)
	return value
}

func lsr(c *CPU, value byte) byte {
	c.C = value&0x01 != 0
	value >>= 1
	c.SetZN(value)
	return value
}

func rol(c *CPU, value byte) byte {
	var carry byte
	if c.C {
		carry = 0x01
	}
	c.C = value&0x80 != 0
	value = value<<1 | carry
	c.SetZN(value)
	return value
}

func ror(c *CPU, value byte) byte {
	var carry byte
	if c.C {
		carry = 0x80
	}
	c.C = value&0x01 != 0
	value = value>>1 | carry
	c.SetZN(value)
	return value
}

func pha(c *CPU) { c.push(c.A) }
func php(c *CPU) { c.push(c.Pack()) }

func pla(c *CPU) {
	c.A = c.pop()
	c.SetZN(c.A)
}

func plp(c *CPU) {
	c.Unpack(c.pop())
}

func tax(c *CPU) {
	c.X = c.A
	c.SetZN(c.X)
}

func tay(c *CPU) {
	c.Y = c.A
	c.SetZN(c.Y)
}

func txa(c *CPU) {
	c.A = c.X
	c.SetZN(c.A)
}

func tya(c *CPU) {
	c.A = c.Y
	c.SetZN(c.A)
}

// tsx copies the low byte of the stack pointer to X.
func tsx(c *CPU) {
	c.X = byte(c.SP)
	c.SetZN(c.X)
}

// txs replaces the low byte of the stack pointer with X, flags are not affected.
func txs(c *CPU) {
	c.SP = c.SP&0xFF00 | uint16(c.X)
}

func jmp(c *CPU, address uint16) {
	c.PC = address
}

// jsr stores the link word below the stack pointer, high byte first, without using push.
// The stack pointer ends up pointing at the low byte of the link word.
func jsr(c *CPU, address uint16) {
	link := c.PC + jsrLinkOffset
	c.memory.Write(c.SP-1, byte(link>>8))
	c.memory.Write(c.SP-2, byte(link))
	c.SP -= 2
	c.tick(2)
	c.PC = address
}

// rts reads the link word stored by jsr, low byte first, and continues
// after the calling JSR instruction.
func rts(c *CPU) {
	low := uint16(c.read(c.SP))
	high := uint16(c.read(c.SP + 1))
	c.SP += 2
	c.PC = (high<<8 | low) - jsrLinkOffset
}

// rti pulls the status, then the program counter low and high byte.
// The break and interrupt disable flags are restored like all other flags.
func rti(c *CPU) {
	c.Unpack(c.pop())
	low := uint16(c.pop())
	high := uint16(c.pop())
	c.PC = high<<8 | low
}

// brk ends the current run, no interrupt sequence is performed.
func brk(c *CPU) {
	c.halted = true
}

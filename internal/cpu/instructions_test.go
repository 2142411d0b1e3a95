package cpu

import (
	"testing"

	"github.com/retroenv/retrogolib/assert"
)

func TestLoadImmediate(t *testing.T) {
	c := newTestCPU(t)
	for v := range 256 {
		c.PC = testOrigin
		// LDA #v; BRK
		putInstructions(c, testOrigin, 0xA9, byte(v), 0x00)

		result, err := c.Run(10)
		assert.NoError(t, err)
		assert.True(t, result.Halted)
		assert.Equal(t, byte(v), c.A)
		assert.Equal(t, v == 0, c.Z)
		assert.Equal(t, v >= 0x80, c.N)
	}
}

func TestLoadRegisters(t *testing.T) {
	c := newTestCPU(t)
	c.memory.Write(0x0020, 0x80)
	c.memory.Write(0x0031, 0x7F)
	// LDX $20; LDY #0
	putInstructions(c, testOrigin, 0xA6, 0x20, 0xA0, 0x00)

	assert.Equal(t, 3, step(t, c))
	assert.Equal(t, byte(0x80), c.X)
	assert.True(t, c.N)
	assert.Equal(t, 2, step(t, c))
	assert.True(t, c.Z)

	c.PC = testOrigin
	c.X = 0xB1
	putInstructions(c, testOrigin, 0xB4, 0x80) // LDY $80,X -> $31
	assert.Equal(t, 4, step(t, c))
	assert.Equal(t, byte(0x7F), c.Y)
	assert.False(t, c.N)
	assert.False(t, c.Z)
}

func TestStore(t *testing.T) {
	c := newTestCPU(t)
	c.A, c.X, c.Y = 0x11, 0x22, 0x33
	c.N = true
	// STA $0200; STX $10; STY $11,X
	putInstructions(c, testOrigin, 0x8D, 0x00, 0x02, 0x86, 0x10, 0x94, 0x11)

	assert.Equal(t, 4, step(t, c))
	assert.Equal(t, 3, step(t, c))
	assert.Equal(t, 4, step(t, c))
	assert.Equal(t, byte(0x11), c.memory.Read(0x0200))
	assert.Equal(t, byte(0x22), c.memory.Read(0x0010))
	assert.Equal(t, byte(0x33), c.memory.Read(0x0033))
	assert.True(t, c.N)
}

func TestAdcAbsolute(t *testing.T) {
	c := newTestCPU(t)
	putInstructions(c, testOrigin, 0x6D, 0x00, 0x03) // ADC $0300

	for a := range 256 {
		for b := range 256 {
			for carry := range 2 {
				c.PC = testOrigin
				c.A = byte(a)
				c.C = carry == 1
				c.memory.Write(0x0300, byte(b))

				assert.Equal(t, 4, step(t, c))
				sum := a + b + carry
				assert.Equal(t, byte(sum), c.A)
				assert.Equal(t, sum > 0xFF, c.C)
				assert.Equal(t, byte(sum) == 0, c.Z)
			}
		}
	}
}

func TestSbcAbsolute(t *testing.T) {
	c := newTestCPU(t)
	putInstructions(c, testOrigin, 0xED, 0x00, 0x03) // SBC $0300

	for a := range 256 {
		for b := range 256 {
			for carry := range 2 {
				c.PC = testOrigin
				c.A = byte(a)
				c.C = carry == 1
				c.memory.Write(0x0300, byte(b))

				assert.Equal(t, 4, step(t, c))
				diff := a - b - (1 - carry)
				assert.Equal(t, byte(diff), c.A)
				assert.Equal(t, diff >= 0, c.C)
				assert.Equal(t, byte(diff)&0x80 != 0, c.N)
			}
		}
	}
}

func TestAdcSbcOverflow(t *testing.T) {
	tests := []struct {
		name     string
		opcode   byte
		a, value byte
		carry    bool
		want     byte
		overflow bool
	}{
		{"adc positive overflow", 0x69, 0x50, 0x50, false, 0xA0, true},
		{"adc negative overflow", 0x69, 0x90, 0x90, false, 0x20, true},
		{"adc no overflow", 0x69, 0x50, 0x10, false, 0x60, false},
		{"adc mixed signs", 0x69, 0x50, 0xD0, false, 0x20, false},
		{"sbc overflow", 0xE9, 0x50, 0xB0, true, 0xA0, true},
		{"sbc negative overflow", 0xE9, 0xD0, 0x70, true, 0x60, true},
		{"sbc no overflow", 0xE9, 0x50, 0xF0, true, 0x60, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestCPU(t)
			c.A = tt.a
			c.C = tt.carry
			putInstructions(c, testOrigin, tt.opcode, tt.value)

			assert.Equal(t, 2, step(t, c))
			assert.Equal(t, tt.want, c.A)
			assert.Equal(t, tt.overflow, c.V)
		})
	}
}

func TestAdcAllAddressingModes(t *testing.T) {
	tests := []struct {
		name   string
		code   []byte
		cycles int
	}{
		{"immediate", []byte{0x69, 0x05}, 2},
		{"zero page", []byte{0x65, 0x40}, 3},
		{"zero page x", []byte{0x75, 0x3E}, 4},
		{"absolute", []byte{0x6D, 0x40, 0x00}, 4},
		{"absolute x", []byte{0x7D, 0x3E, 0x00}, 4},
		{"absolute y", []byte{0x79, 0x3D, 0x00}, 4},
		{"indirect x", []byte{0x61, 0x48}, 5},
		{"indirect y", []byte{0x71, 0x50}, 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestCPU(t)
			c.A = 0x10
			c.X = 0x02
			c.Y = 0x03
			c.memory.Write(0x0040, 0x05)
			c.memory.WriteBytes(0x004A, 0x40, 0x00) // pointer for (zp,X)
			c.memory.WriteBytes(0x0050, 0x3D, 0x00) // pointer for (zp),Y
			putInstructions(c, testOrigin, tt.code...)

			assert.Equal(t, tt.cycles, step(t, c))
			assert.Equal(t, byte(0x15), c.A)
			assert.False(t, c.C)
		})
	}
}

func TestLogical(t *testing.T) {
	tests := []struct {
		name  string
		code  []byte
		a     byte
		wantA byte
		wantZ bool
		wantN bool
	}{
		{"and", []byte{0x29, 0x0F}, 0xF3, 0x03, false, false},
		{"and zero", []byte{0x29, 0x0F}, 0xF0, 0x00, true, false},
		{"ora", []byte{0x09, 0x80}, 0x01, 0x81, false, true},
		{"eor", []byte{0x49, 0xFF}, 0x0F, 0xF0, false, true},
		{"eor zero", []byte{0x49, 0x5A}, 0x5A, 0x00, true, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestCPU(t)
			c.A = tt.a
			putInstructions(c, testOrigin, tt.code...)

			step(t, c)
			assert.Equal(t, tt.wantA, c.A)
			assert.Equal(t, tt.wantZ, c.Z)
			assert.Equal(t, tt.wantN, c.N)
		})
	}
}

func TestCompare(t *testing.T) {
	tests := []struct {
		name     string
		code     []byte
		register byte
		wantZ    bool
		wantC    bool
		wantN    bool
	}{
		{"cmp equal", []byte{0xC9, 0x40}, 0x40, true, true, false},
		{"cmp greater", []byte{0xC9, 0x10}, 0x40, false, true, false},
		{"cmp less", []byte{0xC9, 0x41}, 0x40, false, false, true},
		{"cpx equal", []byte{0xE0, 0x07}, 0x07, true, true, false},
		{"cpx less", []byte{0xE0, 0x08}, 0x07, false, false, true},
		{"cpy greater", []byte{0xC0, 0x01}, 0x90, false, true, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestCPU(t)
			c.A, c.X, c.Y = tt.register, tt.register, tt.register
			putInstructions(c, testOrigin, tt.code...)

			step(t, c)
			assert.Equal(t, tt.wantZ, c.Z)
			assert.Equal(t, tt.wantC, c.C)
			assert.Equal(t, tt.wantN, c.N)
			assert.Equal(t, tt.register, c.A)
			assert.Equal(t, tt.register, c.X)
			assert.Equal(t, tt.register, c.Y)
		})
	}
}

func TestBit(t *testing.T) {
	c := newTestCPU(t)
	c.A = 0x01
	c.memory.Write(0x0010, 0xC0)
	putInstructions(c, testOrigin, 0x24, 0x10) // BIT $10

	assert.Equal(t, 3, step(t, c))
	assert.True(t, c.Z)
	assert.True(t, c.V)
	assert.True(t, c.N)
	assert.Equal(t, byte(0x01), c.A)
}

func TestIncrementDecrement(t *testing.T) {
	c := newTestCPU(t)
	c.memory.Write(0x0010, 0xFF)
	c.C = true
	c.V = true
	// INC $10; DEC $10; INX; DEY
	putInstructions(c, testOrigin, 0xE6, 0x10, 0xC6, 0x10, 0xE8, 0x88)

	assert.Equal(t, 4, step(t, c))
	assert.Equal(t, byte(0x00), c.memory.Read(0x0010))
	assert.True(t, c.Z)

	assert.Equal(t, 4, step(t, c))
	assert.Equal(t, byte(0xFF), c.memory.Read(0x0010))
	assert.True(t, c.N)

	assert.Equal(t, 1, step(t, c))
	assert.Equal(t, byte(1), c.X)

	assert.Equal(t, 1, step(t, c))
	assert.Equal(t, byte(0xFF), c.Y)
	assert.True(t, c.N)

	// carry and overflow are untouched
	assert.True(t, c.C)
	assert.True(t, c.V)
}

func TestShifts(t *testing.T) {
	tests := []struct {
		name   string
		code   []byte
		value  byte
		carry  bool
		want   byte
		wantC  bool
		cycles int
	}{
		{"lsr accumulator", []byte{0x4A}, 0x03, false, 0x01, true, 1},
		{"lsr zero page", []byte{0x46, 0x10}, 0x80, false, 0x40, false, 4},
		{"lsr zero page x", []byte{0x56, 0x0E}, 0x01, false, 0x00, true, 5},
		{"lsr absolute", []byte{0x4E, 0x10, 0x00}, 0x02, true, 0x01, false, 5},
		{"lsr absolute x", []byte{0x5E, 0x0E, 0x00}, 0xFF, false, 0x7F, true, 5},
		{"asl accumulator", []byte{0x0A}, 0x81, false, 0x02, true, 1},
		{"asl zero page", []byte{0x06, 0x10}, 0x40, false, 0x80, false, 4},
		{"rol accumulator", []byte{0x2A}, 0x80, true, 0x01, true, 1},
		{"rol zero page", []byte{0x26, 0x10}, 0x40, false, 0x80, false, 4},
		{"ror accumulator", []byte{0x6A}, 0x01, true, 0x80, true, 1},
		{"ror absolute", []byte{0x6E, 0x10, 0x00}, 0x02, false, 0x01, false, 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestCPU(t)
			c.X = 0x02
			c.C = tt.carry
			c.A = tt.value
			c.memory.Write(0x0010, tt.value)
			putInstructions(c, testOrigin, tt.code...)

			assert.Equal(t, tt.cycles, step(t, c))
			got := c.memory.Read(0x0010)
			if len(tt.code) == 1 {
				got = c.A
			}
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.wantC, c.C)
			assert.Equal(t, tt.want == 0, c.Z)
			assert.Equal(t, tt.want&0x80 != 0, c.N)
		})
	}
}

func TestFlagInstructions(t *testing.T) {
	c := newTestCPU(t)
	// SEC; SED; SEI; CLC; CLD; CLI; CLV
	putInstructions(c, testOrigin, 0x38, 0xF8, 0x78, 0x18, 0xD8, 0x58, 0xB8)

	step(t, c)
	step(t, c)
	step(t, c)
	assert.Equal(t, "nv-bDIzC", c.Status.String())

	c.V = true
	for range 4 {
		step(t, c)
	}
	assert.Equal(t, Status{}, c.Status)
}

func TestTransfers(t *testing.T) {
	c := newTestCPU(t)
	c.A = 0x80
	// TAX; TAY; LDA #0; TXA; LDX #0; TYA
	putInstructions(c, testOrigin, 0xAA, 0xA8, 0xA9, 0x00, 0x8A, 0xA2, 0x00, 0x98)

	step(t, c)
	assert.Equal(t, byte(0x80), c.X)
	assert.True(t, c.N)
	step(t, c)
	assert.Equal(t, byte(0x80), c.Y)

	step(t, c)
	step(t, c)
	assert.Equal(t, byte(0x80), c.A)
	assert.True(t, c.N)

	step(t, c)
	step(t, c)
	assert.Equal(t, byte(0x80), c.A)
	assert.False(t, c.Z)
}

func TestStackPointerTransfers(t *testing.T) {
	c := newTestCPU(t)
	c.X = 0x42
	c.Z = true
	// TXS; TSX
	putInstructions(c, testOrigin, 0x9A, 0xBA)

	step(t, c)
	assert.Equal(t, uint16(0x0142), c.SP)
	assert.True(t, c.Z)

	c.SP = 0x0100
	step(t, c)
	assert.Equal(t, byte(0x00), c.X)
	assert.True(t, c.Z)
}

func TestStack(t *testing.T) {
	c := newTestCPU(t)
	c.A = 0x37
	// PHA; LDA #0; PLA
	putInstructions(c, testOrigin, 0x48, 0xA9, 0x00, 0x68)

	assert.Equal(t, 2, step(t, c))
	assert.Equal(t, byte(0x37), c.memory.Read(0x0100))
	assert.Equal(t, uint16(0x00FF), c.SP)

	step(t, c)
	assert.True(t, c.Z)

	assert.Equal(t, 2, step(t, c))
	assert.Equal(t, byte(0x37), c.A)
	assert.False(t, c.Z)
	assert.Equal(t, uint16(0x0100), c.SP)
}

func TestStatusStack(t *testing.T) {
	c := newTestCPU(t)
	c.C = true
	c.V = true
	// PHP; CLC; CLV; PLP
	putInstructions(c, testOrigin, 0x08, 0x18, 0xB8, 0x28)

	step(t, c)
	assert.Equal(t, byte(0x61), c.memory.Read(0x0100))
	step(t, c)
	step(t, c)
	assert.False(t, c.C)

	step(t, c)
	assert.True(t, c.C)
	assert.True(t, c.V)
	assert.Equal(t, uint16(0x0100), c.SP)
}

func TestJsrRts(t *testing.T) {
	c := newTestCPU(t)
	// JSR $0700; INX
	next := putInstructions(c, testOrigin, 0x20, 0x00, 0x07)
	putInstructions(c, next, 0xE8)
	// subroutine: INY; RTS
	putInstructions(c, 0x0700, 0xC8, 0x60)

	assert.Equal(t, 5, step(t, c))
	assert.Equal(t, uint16(0x0700), c.PC)
	assert.Equal(t, uint16(0x00FE), c.SP)
	link := next + jsrLinkOffset
	assert.Equal(t, byte(link>>8), c.memory.Read(0x00FF))
	assert.Equal(t, byte(link), c.memory.Read(0x00FE))

	step(t, c)
	assert.Equal(t, 3, step(t, c))
	assert.Equal(t, next, c.PC)
	assert.Equal(t, uint16(0x0100), c.SP)

	step(t, c)
	assert.Equal(t, byte(1), c.X)
	assert.Equal(t, byte(1), c.Y)
}

func TestNestedJsrRts(t *testing.T) {
	c := newTestCPU(t)
	// JSR $0700; BRK
	next := putInstructions(c, testOrigin, 0x20, 0x00, 0x07)
	putInstructions(c, next, 0x00)
	// JSR $0710; RTS
	putInstructions(c, 0x0700, 0x20, 0x10, 0x07, 0x60)
	putInstructions(c, 0x0710, 0x60)

	for range 4 {
		step(t, c)
	}
	assert.Equal(t, next, c.PC)
	assert.Equal(t, uint16(0x0100), c.SP)
}

// JSR leaves the stack pointer on the low byte of the link word, so a push inside
// the subroutine overwrites it and RTS continues at a different address.
func TestJsrLinkOverwrittenByPush(t *testing.T) {
	c := newTestCPU(t)
	// JSR $0700; BRK
	next := putInstructions(c, testOrigin, 0x20, 0x00, 0x07)
	putInstructions(c, next, 0x00)
	// LDA #$AB; PHA; PLA; RTS
	putInstructions(c, 0x0700, 0xA9, 0xAB, 0x48, 0x68, 0x60)

	for range 5 {
		step(t, c)
	}
	assert.Equal(t, byte(0xAB), c.memory.Read(0x00FE))
	assert.Equal(t, uint16(0x06AB-jsrLinkOffset), c.PC)
	assert.Equal(t, uint16(0x0100), c.SP)
}

func TestRti(t *testing.T) {
	c := newTestCPU(t)
	// status, return address low and high in pull order
	c.memory.WriteBytes(0x0101, 0xC3, 0x34, 0x12)
	putInstructions(c, testOrigin, 0x40)

	assert.Equal(t, 4, step(t, c))
	assert.Equal(t, uint16(0x1234), c.PC)
	assert.Equal(t, uint16(0x0103), c.SP)
	assert.Equal(t, Status{C: true, Z: true, V: true, N: true}, c.Status)
}

func TestJmp(t *testing.T) {
	t.Run("absolute", func(t *testing.T) {
		c := newTestCPU(t)
		putInstructions(c, testOrigin, 0x4C, 0x34, 0x12)

		assert.Equal(t, 3, step(t, c))
		assert.Equal(t, uint16(0x1234), c.PC)
	})

	t.Run("indirect wraps within the pointer page", func(t *testing.T) {
		c := newTestCPU(t)
		c.memory.Write(0x02FF, 0x34)
		c.memory.Write(0x0200, 0x12)
		c.memory.Write(0x0300, 0x99)
		putInstructions(c, testOrigin, 0x6C, 0xFF, 0x02)

		assert.Equal(t, 5, step(t, c))
		assert.Equal(t, uint16(0x1234), c.PC)
	})
}

func TestNop(t *testing.T) {
	c := newTestCPU(t)
	putInstructions(c, testOrigin, 0xEA)

	assert.Equal(t, 1, step(t, c))
	assert.Equal(t, uint16(testOrigin+1), c.PC)
}

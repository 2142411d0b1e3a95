package cpu

// Status holds the seven processor status flags.
type Status struct {
	C bool // carry, set means no borrow for subtraction
	Z bool // zero
	I bool // interrupt disable
	D bool // decimal mode
	B bool // break
	V bool // signed overflow
	N bool // negative
}

// bit masks of the packed status byte, layout NV1BDIZC.
const (
	flagC      = 1 << 0
	flagZ      = 1 << 1
	flagI      = 1 << 2
	flagD      = 1 << 3
	flagB      = 1 << 4
	flagUnused = 1 << 5
	flagV      = 1 << 6
	flagN      = 1 << 7
)

// Pack returns the flags as a status byte. The unused bit 5 is always set.
func (s Status) Pack() byte {
	p := byte(flagUnused)
	if s.C {
		p |= flagC
	}
	if s.Z {
		p |= flagZ
	}
	if s.I {
		p |= flagI
	}
	if s.D {
		p |= flagD
	}
	if s.B {
		p |= flagB
	}
	if s.V {
		p |= flagV
	}
	if s.N {
		p |= flagN
	}
	return p
}

// Unpack sets all flags from a status byte, bit 5 is ignored.
func (s *Status) Unpack(p byte) {
	s.C = p&flagC != 0
	s.Z = p&flagZ != 0
	s.I = p&flagI != 0
	s.D = p&flagD != 0
	s.B = p&flagB != 0
	s.V = p&flagV != 0
	s.N = p&flagN != 0
}

// SetZN updates the zero and negative flags for the given result value.
func (s *Status) SetZN(value byte) {
	s.Z = value == 0
	s.N = value&0x80 != 0
}

// String returns the flags as a labelled bit pattern, set flags are upper case.
func (s Status) String() string {
	flags := [8]struct {
		set   bool
		label byte
	}{
		{s.N, 'n'}, {s.V, 'v'}, {true, '-'}, {s.B, 'b'},
		{s.D, 'd'}, {s.I, 'i'}, {s.Z, 'z'}, {s.C, 'c'},
	}

	buf := make([]byte, len(flags))
	for i, f := range flags {
		buf[i] = f.label
		if f.set && f.label != '-' {
			buf[i] -= 'a' - 'A'
		}
	}
	return string(buf)
}

// Registers is the register file of the processor.
// The stack pointer is an absolute 16 bit address that push and pull operate on directly,
// it is not confined to page 1.
type Registers struct {
	PC uint16
	SP uint16
	A  byte
	X  byte
	Y  byte
	Status
}

// Reset values of the register file.
const (
	ResetProgramCounter = 0xFFFC
	ResetStackPointer   = 0x0100
)

// Reset initializes the program counter and stack pointer and clears all other registers and flags.
func (r *Registers) Reset() {
	*r = Registers{
		PC: ResetProgramCounter,
		SP: ResetStackPointer,
	}
}

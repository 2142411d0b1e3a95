// Package memory provides the flat 64 KiB address space of the simulated machine.
package memory

// Size is the number of addressable bytes.
const Size = 1 << 16

// Memory is a zero initialized byte addressable store covering the full 16 bit address range.
// Addresses are uint16 so every read and write is in range.
type Memory struct {
	data [Size]byte
}

// New returns a new zeroed memory.
func New() *Memory {
	return &Memory{}
}

// Reset sets every byte to zero.
func (m *Memory) Reset() {
	clear(m.data[:])
}

// Read returns the byte at the given address.
func (m *Memory) Read(address uint16) byte {
	return m.data[address]
}

// Write stores a byte at the given address.
func (m *Memory) Write(address uint16, value byte) {
	m.data[address] = value
}

// ReadWord returns the little endian word stored at address and address+1.
// The second address wraps around at the end of the address space.
func (m *Memory) ReadWord(address uint16) uint16 {
	low := uint16(m.data[address])
	high := uint16(m.data[address+1])
	return high<<8 | low
}

// WriteBytes stores the given bytes starting at address, wrapping around
// at the end of the address space.
func (m *Memory) WriteBytes(address uint16, values ...byte) {
	for i, b := range values {
		m.data[address+uint16(i)] = b
	}
}

// Slice returns a copy of length bytes starting at address, wrapping around
// at the end of the address space.
func (m *Memory) Slice(address uint16, length int) []byte {
	buf := make([]byte, length)
	for i := range buf {
		buf[i] = m.data[address+uint16(i)]
	}
	return buf
}

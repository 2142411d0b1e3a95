package cpu

import (
	"testing"

	"github.com/retroenv/retrogolib/assert"
)

func TestStatusPack(t *testing.T) {
	tests := []struct {
		name   string
		status Status
		want   byte
	}{
		{"no flags", Status{}, 0x20},
		{"carry", Status{C: true}, 0x21},
		{"zero", Status{Z: true}, 0x22},
		{"interrupt", Status{I: true}, 0x24},
		{"decimal", Status{D: true}, 0x28},
		{"break", Status{B: true}, 0x30},
		{"overflow", Status{V: true}, 0x60},
		{"negative", Status{N: true}, 0xA0},
		{"all flags", Status{C: true, Z: true, I: true, D: true, B: true, V: true, N: true}, 0xFF},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.status.Pack())
		})
	}
}

func TestStatusUnpackIgnoresBit5(t *testing.T) {
	var s Status
	s.Unpack(0x20)
	assert.Equal(t, Status{}, s)

	s.Unpack(0xDF)
	assert.Equal(t, Status{C: true, Z: true, I: true, D: true, B: true, V: true, N: true}, s)
}

func TestStatusRoundTrip(t *testing.T) {
	for p := range 128 {
		s := Status{
			C: p&0x01 != 0,
			Z: p&0x02 != 0,
			I: p&0x04 != 0,
			D: p&0x08 != 0,
			B: p&0x10 != 0,
			V: p&0x20 != 0,
			N: p&0x40 != 0,
		}

		var restored Status
		restored.Unpack(s.Pack())
		assert.Equal(t, s, restored)
	}
}

func TestSetZN(t *testing.T) {
	for v := range 256 {
		var s Status
		s.SetZN(byte(v))
		assert.Equal(t, v == 0, s.Z)
		assert.Equal(t, v >= 0x80, s.N)
	}
}

func TestStatusString(t *testing.T) {
	assert.Equal(t, "nv-bdizc", Status{}.String())
	assert.Equal(t, "Nv-bdiZC", Status{N: true, Z: true, C: true}.String())
	assert.Equal(t, "NV-BDIZC", Status{C: true, Z: true, I: true, D: true, B: true, V: true, N: true}.String())
}

func TestRegistersReset(t *testing.T) {
	r := Registers{PC: 1, SP: 2, A: 3, X: 4, Y: 5, Status: Status{C: true, N: true}}
	r.Reset()

	assert.Equal(t, uint16(0xFFFC), r.PC)
	assert.Equal(t, uint16(0x0100), r.SP)
	assert.Equal(t, byte(0), r.A)
	assert.Equal(t, byte(0), r.X)
	assert.Equal(t, byte(0), r.Y)
	assert.Equal(t, Status{}, r.Status)
}

package cpu

import (
	"errors"
	"fmt"
)

// ErrIllegalOpcode is returned in strict mode when an opcode byte has no instruction.
var ErrIllegalOpcode = errors.New("illegal opcode")

// IllegalOpcodeError describes an unknown opcode found at an address.
type IllegalOpcodeError struct {
	Opcode  byte
	Address uint16
}

func (e *IllegalOpcodeError) Error() string {
	return fmt.Sprintf("%s 0x%02X at address 0x%04X", ErrIllegalOpcode, e.Opcode, e.Address)
}

func (e *IllegalOpcodeError) Unwrap() error {
	return ErrIllegalOpcode
}

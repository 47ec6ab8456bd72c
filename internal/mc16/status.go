package mc16

// status.go defines the processor status register and its condition flags.

import (
	"fmt"
	"math/bits"
)

// StatusRegister is the CPU's 8-bit condition/control register:
//
//	| S | Z | P | C | O | I | . | . |
//	+---+---+---+---+---+---+---+---+
//	| 7 | 6 | 5 | 4 | 3 | 2 | 1 | 0 |
//
// Bits 1 and 0 are reserved and read back as written.
type StatusRegister uint8

// Status flag bits.
const (
	StatusSign      StatusRegister = 0x80 // S: MSB of the last result.
	StatusZero      StatusRegister = 0x40 // Z: last result was zero.
	StatusParity    StatusRegister = 0x20 // P: popcount of the last result is even.
	StatusCarry     StatusRegister = 0x10 // C: carry-out / NOT borrow.
	StatusOverflow  StatusRegister = 0x08 // O: signed overflow.
	StatusInterrupt StatusRegister = 0x04 // I: IRQs masked when set; NMI is never masked.
)

func (s StatusRegister) String() string {
	bit := func(set bool, c byte) byte {
		if set {
			return c
		}

		return '-'
	}

	return fmt.Sprintf("%#02x (%c%c%c%c%c%c)",
		uint8(s),
		bit(s.Sign(), 'S'), bit(s.Zero(), 'Z'), bit(s.Parity(), 'P'),
		bit(s.Carry(), 'C'), bit(s.Overflow(), 'O'), bit(s.InterruptDisable(), 'I'),
	)
}

// Sign returns true if the S flag is set.
func (s StatusRegister) Sign() bool { return s&StatusSign != 0 }

// Zero returns true if the Z flag is set.
func (s StatusRegister) Zero() bool { return s&StatusZero != 0 }

// Parity returns true if the P flag is set.
func (s StatusRegister) Parity() bool { return s&StatusParity != 0 }

// Carry returns true if the C flag is set.
func (s StatusRegister) Carry() bool { return s&StatusCarry != 0 }

// Overflow returns true if the O flag is set.
func (s StatusRegister) Overflow() bool { return s&StatusOverflow != 0 }

// InterruptDisable returns true if the I flag is set, masking IRQs.
func (s StatusRegister) InterruptDisable() bool { return s&StatusInterrupt != 0 }

// setFlag sets or clears a single flag bit.
func (s *StatusRegister) setFlag(flag StatusRegister, on bool) {
	if on {
		*s |= flag
	} else {
		*s &^= flag
	}
}

func (s *StatusRegister) SetSign(on bool)      { s.setFlag(StatusSign, on) }
func (s *StatusRegister) SetZero(on bool)      { s.setFlag(StatusZero, on) }
func (s *StatusRegister) SetParity(on bool)    { s.setFlag(StatusParity, on) }
func (s *StatusRegister) SetCarry(on bool)     { s.setFlag(StatusCarry, on) }
func (s *StatusRegister) SetOverflow(on bool)  { s.setFlag(StatusOverflow, on) }
func (s *StatusRegister) SetInterrupt(on bool) { s.setFlag(StatusInterrupt, on) }

// SetFlagsFromValue sets S, Z and P from a result value; C and O are left
// untouched. This is used by operations, like MOV, that don't carry or
// overflow.
//
// Quirk: for both widths, S is derived from bit 7 of the value, never bit
// 15. This looks like an 8-bit hangover for 16-bit results, but existing
// binaries depend on it, so it stays.
func (s *StatusRegister) SetFlagsFromValue(v Word, width Width) {
	s.SetSign(v&0x0080 != 0)

	if width == Width8 {
		s.SetZero(v&0x00ff == 0)
		s.SetParity(bits.OnesCount8(uint8(v))%2 == 0)
	} else {
		s.SetZero(v == 0)
		s.SetParity(bits.OnesCount16(uint16(v))%2 == 0)
	}
}

/*
 Barrel shifter: the three ARM operand-shift input shapes

 Copyright 2026, ironic-sub000 contributors

 Permission is hereby granted, free of charge, to any person obtaining a
 copy of this software and associated documentation files (the "Software"),
 to deal in the Software without restriction, including without limitation
 the rights to use, copy, modify, merge, publish, distribute, sublicense,
 and/or sell copies of the Software, and to permit persons to whom the
 Software is furnished to do so, subject to the following conditions:

 The above copyright notice and this permission notice shall be included in
 all copies or substantial portions of the Software.

 THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
 IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
 FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
 AUTHORS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER LIABILITY, WHETHER IN AN
 ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM, OUT OF OR IN
 CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE SOFTWARE.

*/

package cpu

// ShiftType is the two-bit stype field selecting LSL/LSR/ASR/ROR.
type ShiftType uint32

const (
	ShiftLSL ShiftType = iota
	ShiftLSR
	ShiftASR
	ShiftROR
)

func rotateRight32(x uint32, n uint32) uint32 {
	n &= 31
	if n == 0 {
		return x
	}
	return (x >> n) | (x << (32 - n))
}

// ShiftImmRotate implements the immediate-rotate shape used by data-
// processing immediate operands: imm12 = rotate-amount*2 in bits 8..11,
// imm8 in bits 0..7.
func ShiftImmRotate(imm12 uint32, cIn bool) (uint32, bool) {
	imm8 := imm12 & 0xff
	shift := ((imm12 >> 8) & 0xf) * 2
	value := rotateRight32(imm8, shift)
	if shift == 0 {
		return value, cIn
	}
	return value, value&0x8000_0000 != 0
}

// ShiftRegByImm implements the register-shifted-by-immediate shape.
func ShiftRegByImm(rm uint32, stype ShiftType, imm5 uint32, cIn bool) (uint32, bool) {
	switch stype {
	case ShiftLSL:
		if imm5 == 0 {
			return rm, cIn
		}
		cOut := (rm>>(32-imm5))&1 != 0
		return rm << imm5, cOut
	case ShiftLSR:
		amt := imm5
		if amt == 0 {
			amt = 32
		}
		if amt >= 32 {
			if amt == 32 {
				return 0, rm&0x8000_0000 != 0
			}
			return 0, false
		}
		cOut := (rm>>(amt-1))&1 != 0
		return rm >> amt, cOut
	case ShiftASR:
		amt := imm5
		if amt == 0 {
			amt = 32
		}
		signed := int32(rm)
		if amt >= 32 {
			if signed < 0 {
				return 0xffff_ffff, true
			}
			return 0, false
		}
		cOut := (rm>>(amt-1))&1 != 0
		return uint32(signed >> amt), cOut
	case ShiftROR:
		if imm5 == 0 {
			// RRX: rotate right by one through the carry flag.
			cOut := rm&1 != 0
			value := rm >> 1
			if cIn {
				value |= 0x8000_0000
			}
			return value, cOut
		}
		cOut := (rm>>(imm5-1))&1 != 0
		return rotateRight32(rm, imm5), cOut
	default:
		panic("cpu: invalid shift type")
	}
}

// ShiftRegByReg implements the register-shifted-by-register shape. The
// shift amount is rs&0xff; amounts at or beyond 32 zero or saturate the
// result depending on shift type, per the ARMv5TE edge-case rules.
func ShiftRegByReg(rm uint32, stype ShiftType, rs uint32, cIn bool) (uint32, bool) {
	amt := rs & 0xff
	if amt == 0 {
		return rm, cIn
	}
	switch stype {
	case ShiftLSL:
		switch {
		case amt < 32:
			cOut := (rm>>(32-amt))&1 != 0
			return rm << amt, cOut
		case amt == 32:
			return 0, rm&1 != 0
		default:
			return 0, false
		}
	case ShiftLSR:
		switch {
		case amt < 32:
			cOut := (rm>>(amt-1))&1 != 0
			return rm >> amt, cOut
		case amt == 32:
			return 0, rm&0x8000_0000 != 0
		default:
			return 0, false
		}
	case ShiftASR:
		signed := int32(rm)
		if amt < 32 {
			cOut := (rm>>(amt-1))&1 != 0
			return uint32(signed >> amt), cOut
		}
		if signed < 0 {
			return 0xffff_ffff, true
		}
		return 0, false
	case ShiftROR:
		effective := amt & 31
		if effective == 0 {
			return rm, rm&0x8000_0000 != 0
		}
		cOut := (rm>>(effective-1))&1 != 0
		return rotateRight32(rm, effective), cOut
	default:
		panic("cpu: invalid shift type")
	}
}

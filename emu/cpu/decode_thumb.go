/*
 Thumb (16-bit) instruction decoder

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

// ThumbVariant tags the outcome of decoding a 16-bit Thumb opcode, grouped
// the same coarse way as ArmVariant.
type ThumbVariant uint8

const (
	ThumbUndefined ThumbVariant = iota
	ThumbShiftImm // LSL/LSR/ASR #imm5
	ThumbAddSub // ADD/SUB, register or 3-bit immediate
	ThumbMovCmpAddSubImm // MOV/CMP/ADD/SUB Rd, #imm8
	ThumbAluReg // the 16 register-register ALU ops
	ThumbHiRegOp // ADD/CMP/MOV using hi registers
	ThumbBx // BX/BLX using hi registers
	ThumbLdrPcRel // LDR Rd, [PC, #imm8*4]
	ThumbLdrStrReg // LDR/STR[B]/LDRH/STRH/LDRSB/LDRSH, register offset
	ThumbLdrStrImm // LDR/STR[B] Rd, [Rb, #imm5]
	ThumbLdrStrHalf // LDRH/STRH Rd, [Rb, #imm5*2]
	ThumbLdrStrSp // LDR/STR Rd, [SP, #imm8*4]
	ThumbLoadAddr // ADD Rd, PC|SP, #imm8*4
	ThumbAddSpImm // ADD/SUB SP, #imm7*4
	ThumbPushPop // PUSH/POP {reglist}
	ThumbBlockXfer // STMIA/LDMIA
	ThumbSvc
	ThumbBkpt
	ThumbCondBranch
	ThumbB
	ThumbBlPrefix
	ThumbBlSuffix
	ThumbBlxSuffix
)

// decodeThumb is the pure decode cascade, following the standard Thumb
// format boundaries (each format occupies a distinct top-bits region, so
// the cascade order only matters at format 16's two carve-outs for SVC
// and the undefined encoding).
func decodeThumb(opcode uint16) ThumbVariant {
	top3 := (opcode >> 13) & 0x7
	top4 := (opcode >> 12) & 0xf
	top5 := (opcode >> 11) & 0x1f
	top6 := (opcode >> 10) & 0x3f
	top8 := (opcode >> 8) & 0xff

	switch top3 {
	case 0b000:
		if top5 == 0b00011 {
			return ThumbAddSub
		}
		return ThumbShiftImm
	case 0b001:
		return ThumbMovCmpAddSubImm
	}

	if top6 == 0b010000 {
		return ThumbAluReg
	}
	if top6 == 0b010001 {
		op := (opcode >> 8) & 0x3
		if op == 0b11 {
			return ThumbBx
		}
		return ThumbHiRegOp
	}
	if top5 == 0b01001 {
		return ThumbLdrPcRel
	}
	if (opcode>>12)&0xf == 0b0101 {
		return ThumbLdrStrReg
	}
	if top3 == 0b011 {
		return ThumbLdrStrImm
	}
	if top4 == 0b1000 {
		return ThumbLdrStrHalf
	}
	if top4 == 0b1001 {
		return ThumbLdrStrSp
	}
	if top4 == 0b1010 {
		return ThumbLoadAddr
	}
	if top8 == 0b1011_0000 {
		return ThumbAddSpImm
	}
	if top4 == 0b1011 && (opcode>>9)&0x3 == 0b10 {
		return ThumbPushPop
	}
	if top8 == 0b1011_1110 {
		return ThumbBkpt
	}
	if top4 == 0b1100 {
		return ThumbBlockXfer
	}
	if top8 == 0b1101_1111 {
		return ThumbSvc
	}
	if top4 == 0b1101 {
		cond := (opcode >> 8) & 0xf
		if cond == 0xf {
			return ThumbSvc
		}
		if cond == 0xe {
			return ThumbUndefined
		}
		return ThumbCondBranch
	}
	if top5 == 0b11100 {
		return ThumbB
	}
	if top5 == 0b11110 {
		return ThumbBlPrefix
	}
	if top5 == 0b11111 {
		return ThumbBlSuffix
	}
	if top5 == 0b11101 {
		return ThumbBlxSuffix
	}

	return ThumbUndefined
}

// DecodeThumb exposes the Thumb decode cascade to other packages, namely
// emu/disassemble's step tracer.
func DecodeThumb(opcode16 uint16) ThumbVariant { return decodeThumb(opcode16) }

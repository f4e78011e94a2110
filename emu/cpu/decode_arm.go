/*
 ARM (32-bit) instruction decoder

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

// ArmVariant tags the outcome of decoding a 32-bit ARM opcode. Related ALU
// operations and addressing-mode flavors are grouped under one variant;
// handlers re-read the real opcode bits to pick the exact operation, the
// same division of labor as a table of raw function pointers (see
// original_source's ArmFn signature). Decoding still follows a fixed
// cascade order, most-specific mask first, so that overlapping encodings
// resolve the same way every time.
type ArmVariant uint8

const (
	ArmUndefined ArmVariant = iota
	ArmSatArith // QADD/QSUB/QDADD/QDSUB
	ArmBx
	ArmBxj
	ArmClz
	ArmBkpt
	ArmBlxReg
	ArmMulLong // UMULL/UMLAL/SMULL/SMLAL
	ArmMul // MUL/MLA
	ArmSwap // SWP/SWPB
	ArmMrs
	ArmMsrReg
	ArmMsrImm
	ArmSmulHalf // signed multiply/accumulate half-word variants
	ArmLdrhStrhReg // halfword/signed load-store, register offset
	ArmLdrhStrhImm // halfword/signed load-store, immediate offset
	ArmDPRegShiftReg // data-processing, operand2 = register shifted by register
	ArmDPRegShiftImm // data-processing, operand2 = register shifted by immediate
	ArmDPImm // data-processing, operand2 = rotated 8-bit immediate
	ArmMovImmAlt // 16-bit immediate move (MOVW/MOVT-style encoding space)
	ArmCoprocMoveDouble
	ArmLdrStrUnpriv // LDRT/STRT/LDRBT/STRBT (P=0,W=1)
	ArmLdrStrImm // LDR/STR byte/word, immediate offset
	ArmLdrStrReg // LDR/STR byte/word, register offset
	ArmBlockXfer // LDM/STM
	ArmMrcMcr
	ArmCdpOther // coprocessor data op / other coprocessor-space opcode
	ArmPreload // PLD — decoded, handled as a no-op
	ArmB
	ArmBl
	ArmSvc
)

// decodeArm is the pure decode cascade, most-specific mask first.
func decodeArm(opcode uint32) ArmVariant {
	b27_25 := (opcode >> 25) & 0x7
	b24 := (opcode >> 24) & 1
	b23 := (opcode >> 23) & 1
	b22 := (opcode >> 22) & 1
	b21 := (opcode >> 21) & 1
	b20 := (opcode >> 20) & 1
	b7_4 := (opcode >> 4) & 0xf
	b6_5 := (opcode >> 5) & 0x3
	b11_8 := (opcode >> 8) & 0xf
	b19_16 := (opcode >> 16) & 0xf
	b15_12 := (opcode >> 12) & 0xf
	b27_24 := (opcode >> 24) & 0xf

	// Saturating arithmetic: 000 1 0 op 0 ---- ---- 0000 0101 ----
	if b27_25 == 0b000 && b24 == 1 && b23 == 0 && b20 == 0 && b11_8 == 0 && b7_4 == 0b0101 {
		return ArmSatArith
	}

	// Branch/exchange/clz/bkpt misc space: 000 1 0 op2 ---- 1111 ----
	if b27_25 == 0b000 && b24 == 1 && b23 == 0 && b20 == 0 && b19_16 == 0xf && b15_12 == 0xf && b11_8 == 0xf {
		switch b7_4 {
		case 0b0001:
			return ArmBx
		case 0b0010:
			return ArmBxj
		case 0b0011:
			return ArmBlxReg
		}
	}
	if b27_25 == 0b000 && b24 == 1 && b22 == 1 && b21 == 1 && b20 == 0 && b19_16 == 0xf && b11_8 == 0xf && b7_4 == 0b0001 {
		return ArmClz
	}
	if b27_24 == 0b0001 && b23 == 0 && b22 == 0 && b21 == 1 && b20 == 0 && b7_4 == 0b0111 {
		return ArmBkpt
	}

	// Long multiplies: 000 00 1 U A S RdHi RdLo Rs 1001 Rm
	if b27_25 == 0b000 && b24 == 0 && b23 == 1 && b7_4 == 0b1001 {
		return ArmMulLong
	}
	// Short multiply / MLA: 000 000 A S Rd Rn Rs 1001 Rm
	if b27_25 == 0b000 && b24 == 0 && b23 == 0 && b7_4 == 0b1001 {
		return ArmMul
	}
	// Swap: 000 1 0 B 00 Rn Rd 0000 1001 Rm
	if b27_25 == 0b000 && b24 == 1 && b23 == 0 && b21 == 0 && b20 == 0 && b11_8 == 0 && b7_4 == 0b1001 {
		return ArmSwap
	}

	// PSR transfers: MRS, MSR(reg), MSR(imm)
	if b27_25 == 0b000 && b24 == 1 && b23 == 0 && b20 == 0 && b7_4 == 0 && b19_16 == 0xf && (opcode&0xfff) == 0 {
		return ArmMrs
	}
	if b27_25 == 0b000 && b24 == 1 && b23 == 0 && b20 == 0 && b21 == 1 && b15_12 == 0xf && b7_4 == 0 {
		return ArmMsrReg
	}
	if b27_25 == 0b001 && b24 == 1 && b23 == 0 && b21 == 1 && b20 == 0 && b15_12 == 0xf {
		return ArmMsrImm
	}

	// Signed multiply half-word family: 000 10 op 0 ---- ---- ---- 1 op2 op3 0 ----
	if b27_25 == 0b000 && b24 == 1 && b23 == 0 && b20 == 0 && b7_4&0b1001 == 0b1000 {
		return ArmSmulHalf
	}

	// Extra load/store (halfword, signed byte/halfword, dual word): bit7=1,bit4=1,bits6-5!=00
	if b27_25 == 0b000 && b7_4&0x9 == 0x9 && b6_5 != 0 {
		if b22 == 1 {
			return ArmLdrhStrhImm
		}
		return ArmLdrhStrhReg
	}

	// Data-processing, register-shifted-by-register operand2: bit4=1,bit7=0
	if b27_25 == 0b000 && b7_4&0x9 == 0x1 {
		return ArmDPRegShiftReg
	}
	// Data-processing, register-shifted-by-immediate operand2: bit4=0
	if b27_25 == 0b000 && b7_4&0x1 == 0 {
		return ArmDPRegShiftImm
	}

	// 16-bit immediate move space (MOVW/MOVT-shaped encoding, bits27-23=00110)
	if b27_25 == 0b001 && b24 == 1 && b23 == 0 && b21 == 0 && b20 == 0 {
		return ArmMovImmAlt
	}
	// Coprocessor double-register transfer: 1100 010 op Rn Rd coproc opc1 CRm
	if b27_24 == 0b1100 && b23 == 0 && b22 == 1 {
		return ArmCoprocMoveDouble
	}

	// Comparison-immediate / data-processing immediate forms: class 001
	if b27_25 == 0b001 {
		return ArmDPImm
	}

	// Load/store immediate offset, unprivileged alternate (P=0,W=1)
	if b27_25 == 0b010 {
		p := (opcode >> 24) & 1
		w := (opcode >> 21) & 1
		if p == 0 && w == 1 {
			return ArmLdrStrUnpriv
		}
		return ArmLdrStrImm
	}

	// Load/store register offset, unprivileged alternate, or block transfer
	if b27_25 == 0b011 {
		if opcode&0x10 == 0 {
			p := (opcode >> 24) & 1
			w := (opcode >> 21) & 1
			if p == 0 && w == 1 {
				return ArmLdrStrUnpriv
			}
			return ArmLdrStrReg
		}
		return ArmUndefined
	}

	// Block transfer
	if b27_25 == 0b100 {
		return ArmBlockXfer
	}

	// Unconditional branch / branch-with-link
	if b27_25 == 0b101 {
		if b24 == 1 {
			return ArmBl
		}
		return ArmB
	}

	// Coprocessor load/store (PLD is decoded but treated as a no-op)
	if b27_25 == 0b110 {
		if b27_24 == 0xf {
			return ArmPreload
		}
		return ArmCdpOther
	}

	// Coprocessor data ops / register transfers / SVC
	if b27_25 == 0b111 {
		if b24 == 1 {
			return ArmSvc
		}
		if opcode&0x10 != 0 {
			return ArmMrcMcr
		}
		return ArmCdpOther
	}

	return ArmUndefined
}

// DecodeArm exposes the ARM decode cascade to other packages, namely
// emu/disassemble's step tracer.
func DecodeArm(opcode uint32) ArmVariant { return decodeArm(opcode) }

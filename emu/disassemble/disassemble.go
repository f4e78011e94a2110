/*
 ARM/Thumb mnemonic printer for debug step tracing

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

// Package disassemble prints a one-line mnemonic for a fetched opcode,
// reusing the CPU's own decode cascade rather than a separate opcode table
// so its output can never drift from what the core actually dispatches.
// Used only from emu/core's step tracer at slog.Debug level, called purely
// for diagnostic output.
package disassemble

import (
	"fmt"

	"github.com/eigenform/ironic-sub000/emu/cpu"
)

var armNames = map[cpu.ArmVariant]string{
	cpu.ArmUndefined: "UND",
	cpu.ArmSatArith: "QADD/QSUB",
	cpu.ArmBx: "BX",
	cpu.ArmBxj: "BXJ",
	cpu.ArmClz: "CLZ",
	cpu.ArmBkpt: "BKPT",
	cpu.ArmBlxReg: "BLX",
	cpu.ArmMulLong: "UMULL/SMULL",
	cpu.ArmMul: "MUL/MLA",
	cpu.ArmSwap: "SWP",
	cpu.ArmMrs: "MRS",
	cpu.ArmMsrReg: "MSR(reg)",
	cpu.ArmMsrImm: "MSR(imm)",
	cpu.ArmSmulHalf: "SMUL(half)",
	cpu.ArmLdrhStrhReg: "LDRH/STRH(reg)",
	cpu.ArmLdrhStrhImm: "LDRH/STRH(imm)",
	cpu.ArmDPRegShiftReg: "DP(reg,reg)",
	cpu.ArmDPRegShiftImm: "DP(reg,imm)",
	cpu.ArmDPImm: "DP(imm)",
	cpu.ArmMovImmAlt: "MOVW/MOVT",
	cpu.ArmCoprocMoveDouble: "MCRR/MRRC",
	cpu.ArmLdrStrUnpriv: "LDRT/STRT",
	cpu.ArmLdrStrImm: "LDR/STR(imm)",
	cpu.ArmLdrStrReg: "LDR/STR(reg)",
	cpu.ArmBlockXfer: "LDM/STM",
	cpu.ArmMrcMcr: "MRC/MCR",
	cpu.ArmCdpOther: "CDP",
	cpu.ArmPreload: "PLD",
	cpu.ArmB: "B",
	cpu.ArmBl: "BL",
	cpu.ArmSvc: "SVC",
}

var thumbNames = map[cpu.ThumbVariant]string{
	cpu.ThumbUndefined: "UND",
	cpu.ThumbShiftImm: "LSL/LSR/ASR",
	cpu.ThumbAddSub: "ADD/SUB",
	cpu.ThumbMovCmpAddSubImm: "MOV/CMP/ADD/SUB(imm8)",
	cpu.ThumbAluReg: "ALU(reg)",
	cpu.ThumbHiRegOp: "ADD/CMP/MOV(hi)",
	cpu.ThumbBx: "BX/BLX",
	cpu.ThumbLdrPcRel: "LDR(pc-rel)",
	cpu.ThumbLdrStrReg: "LDR/STR(reg)",
	cpu.ThumbLdrStrImm: "LDR/STR(imm)",
	cpu.ThumbLdrStrHalf: "LDRH/STRH",
	cpu.ThumbLdrStrSp: "LDR/STR(sp)",
	cpu.ThumbLoadAddr: "ADD(pc/sp)",
	cpu.ThumbAddSpImm: "ADD/SUB SP",
	cpu.ThumbPushPop: "PUSH/POP",
	cpu.ThumbBlockXfer: "STMIA/LDMIA",
	cpu.ThumbSvc: "SVC",
	cpu.ThumbBkpt: "BKPT",
	cpu.ThumbCondBranch: "Bcc",
	cpu.ThumbB: "B",
	cpu.ThumbBlPrefix: "BL(hi)",
	cpu.ThumbBlSuffix: "BL(lo)",
	cpu.ThumbBlxSuffix: "BLX(lo)",
}

// FormatArm returns a one-line "mnemonic opcode" trace string for a 32-bit
// ARM opcode at pc.
func FormatArm(pc, opcode uint32) string {
	name, ok := armNames[cpu.DecodeArm(opcode)]
	if !ok {
		name = "???"
	}
	return fmt.Sprintf("%08x: %-14s %08x", pc, name, opcode)
}

// FormatThumb returns a one-line "mnemonic opcode" trace string for a
// 16-bit Thumb opcode at pc.
func FormatThumb(pc uint32, opcode16 uint16) string {
	name, ok := thumbNames[cpu.DecodeThumb(opcode16)]
	if !ok {
		name = "???"
	}
	return fmt.Sprintf("%08x: %-14s %04x", pc, name, opcode16)
}

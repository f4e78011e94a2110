/*
 Data-processing execute handlers

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

const (
	dpAND = 0x0
	dpEOR = 0x1
	dpSUB = 0x2
	dpRSB = 0x3
	dpADD = 0x4
	dpADC = 0x5
	dpSBC = 0x6
	dpRSC = 0x7
	dpTST = 0x8
	dpTEQ = 0x9
	dpCMP = 0xa
	dpCMN = 0xb
	dpORR = 0xc
	dpMOV = 0xd
	dpBIC = 0xe
	dpMVN = 0xf
)

// operand2Imm computes the rotated-immediate operand2 shape.
func operand2Imm(opcode uint32, cIn bool) (uint32, bool) {
	return ShiftImmRotate(opcode&0xfff, cIn)
}

// operand2RegShiftImm computes the register-shifted-by-immediate shape.
func operand2RegShiftImm(c *Cpu, opcode uint32, cIn bool) (uint32, bool) {
	rm := c.Regs.Read(Reg(opcode & 0xf))
	stype := ShiftType((opcode >> 5) & 0x3)
	imm5 := (opcode >> 7) & 0x1f
	return ShiftRegByImm(rm, stype, imm5, cIn)
}

// operand2RegShiftReg computes the register-shifted-by-register shape.
// All operands must be sampled before any write; Rm is read here, before
// Rs's value is consulted, matching hardware (if Rm==Rd the read already
// happened).
func operand2RegShiftReg(c *Cpu, opcode uint32, cIn bool) (uint32, bool) {
	rm := c.Regs.Read(Reg(opcode & 0xf))
	stype := ShiftType((opcode >> 5) & 0x3)
	rs := c.Regs.Read(Reg((opcode >> 8) & 0xf))
	return ShiftRegByReg(rm, stype, rs, cIn)
}

func isCompareOp(op uint32) bool {
	return op == dpTST || op == dpTEQ || op == dpCMP || op == dpCMN
}

// applyDP computes the result of one of the sixteen ALU operations.
func applyDP(op uint32, rn, op2 uint32, cIn bool) AluRes {
	switch op {
	case dpAND, dpTST:
		res := rn & op2
		n, z := nzFor(res)
		return AluRes{Result: res, N: n, Z: z, C: cIn}
	case dpEOR, dpTEQ:
		res := rn ^ op2
		n, z := nzFor(res)
		return AluRes{Result: res, N: n, Z: z, C: cIn}
	case dpSUB, dpCMP:
		return Sub(rn, op2, true)
	case dpRSB:
		return Sub(op2, rn, true)
	case dpADD, dpCMN:
		return Add(rn, op2, false)
	case dpADC:
		return Add(rn, op2, cIn)
	case dpSBC:
		return Sub(rn, op2, cIn)
	case dpRSC:
		return Sub(op2, rn, cIn)
	case dpORR:
		res := rn | op2
		n, z := nzFor(res)
		return AluRes{Result: res, N: n, Z: z, C: cIn}
	case dpMOV:
		n, z := nzFor(op2)
		return AluRes{Result: op2, N: n, Z: z, C: cIn}
	case dpBIC:
		res := rn &^ op2
		n, z := nzFor(res)
		return AluRes{Result: res, N: n, Z: z, C: cIn}
	case dpMVN:
		res := ^op2
		n, z := nzFor(res)
		return AluRes{Result: res, N: n, Z: z, C: cIn}
	default:
		panic("cpu: unreachable DP op")
	}
}

// execDataProcessing is shared by the immediate, register-shift-immediate,
// and register-shift-register operand2 shapes; v selects which.
func execDataProcessing(c *Cpu, opcode uint32, v ArmVariant) DispatchRes {
	rd := Reg((opcode >> 12) & 0xf)
	rn := Reg((opcode >> 16) & 0xf)
	sSet := (opcode>>20)&1 != 0
	op := (opcode >> 21) & 0xf

	cpsr := c.Regs.Cpsr()
	rnVal := c.Regs.Read(rn)

	var op2 uint32
	var cOut bool
	switch v {
	case ArmDPImm:
		op2, cOut = operand2Imm(opcode, cpsr.Carry())
	case ArmDPRegShiftImm:
		op2, cOut = operand2RegShiftImm(c, opcode, cpsr.Carry())
	case ArmDPRegShiftReg:
		op2, cOut = operand2RegShiftReg(c, opcode, cpsr.Carry())
	}

	res := applyDP(op, rnVal, op2, cpsr.Carry())
	// Logical ops (AND/EOR/TST/TEQ/ORR/MOV/BIC/MVN) take C from the shifter,
	// not from the adder; arithmetic ops keep the adder's C/V.
	switch op {
	case dpAND, dpTST, dpEOR, dpTEQ, dpORR, dpMOV, dpBIC, dpMVN:
		res.C = cOut
		res.V = cpsr.OverflowF()
	}

	if isCompareOp(op) {
		if sSet {
			c.Regs.cpsr.SetNZCV(res.N, res.Z, res.C, res.V)
		}
		return retireOk()
	}

	if rd == Pc {
		if sSet {
			// "Exception return" form: copy SPSR into CPSR (mode swap as a
			// side effect), then branch to the computed value.
			c.ExceptionReturn(res.Result)
		} else {
			c.Regs.WritePCFetch(res.Result &^ 1)
			c.Regs.cpsr.SetThumb(res.Result&1 != 0)
		}
		return retireBranch()
	}

	c.Regs.Write(rd, res.Result)
	if sSet {
		c.Regs.cpsr.SetNZCV(res.N, res.Z, res.C, res.V)
	}
	return retireOk()
}

func handleDPImm(c *Cpu, opcode uint32) DispatchRes {
	return execDataProcessing(c, opcode, ArmDPImm)
}

func handleDPRegShiftImm(c *Cpu, opcode uint32) DispatchRes {
	return execDataProcessing(c, opcode, ArmDPRegShiftImm)
}

func handleDPRegShiftReg(c *Cpu, opcode uint32) DispatchRes {
	return execDataProcessing(c, opcode, ArmDPRegShiftReg)
}

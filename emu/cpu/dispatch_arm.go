/*
 ARM dispatch table construction

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

// armDispatchTable has one entry per (bits27:20, bits7:4) combination, the
// standard 4096-way ARM decode index. Built once at init by synthesizing a
// canonical opcode for every index, running it through decodeArm, and
// resolving the resulting ArmVariant to its handler: the table is a cache
// in front of decodeArm, not an independent source of truth, so decoder
// completeness/consistency properties hold for the table for free.
var armDispatchTable [4096]HandlerFn

func armVariantHandler(v ArmVariant) HandlerFn {
	switch v {
	case ArmSatArith:
		return execSatArith
	case ArmBx:
		return execBx
	case ArmBxj:
		return execBxj
	case ArmClz:
		return execClz
	case ArmBkpt:
		return execBkpt
	case ArmBlxReg:
		return execBlxReg
	case ArmMulLong:
		return execMulLong
	case ArmMul:
		return execMul
	case ArmSwap:
		return execSwap
	case ArmMrs:
		return execMrs
	case ArmMsrReg:
		return execMsrReg
	case ArmMsrImm:
		return execMsrImm
	case ArmSmulHalf:
		return execSmulHalf
	case ArmLdrhStrhReg:
		return execLdrhStrhReg
	case ArmLdrhStrhImm:
		return execLdrhStrhImm
	case ArmDPRegShiftReg:
		return handleDPRegShiftReg
	case ArmDPRegShiftImm:
		return handleDPRegShiftImm
	case ArmDPImm:
		return handleDPImm
	case ArmMovImmAlt:
		return execMovImmAlt
	case ArmCoprocMoveDouble:
		return execCoprocMoveDouble
	case ArmLdrStrUnpriv:
		return execLdrStrUnpriv
	case ArmLdrStrImm:
		return execLdrStrImm
	case ArmLdrStrReg:
		return execLdrStrReg
	case ArmBlockXfer:
		return execBlockXfer
	case ArmMrcMcr:
		return execMrcMcr
	case ArmCdpOther:
		return execCdpOther
	case ArmPreload:
		return execPreload
	case ArmB:
		return execB
	case ArmBl:
		return execBl
	case ArmSvc:
		return execSvc
	default:
		return execArmUndefined
	}
}

func init() {
	for idx := 0; idx < 4096; idx++ {
		opcode := (uint32(idx)&0xff0)<<16 | (uint32(idx)&0xf)<<4
		armDispatchTable[idx] = armVariantHandler(decodeArm(opcode))
	}
}

func armDispatchIndex(opcode uint32) int {
	return int((opcode>>16)&0xff0 | (opcode>>4)&0xf)
}

// dispatchArm looks up and invokes the handler for a fully-decoded ARM
// opcode.
func dispatchArm(c *Cpu, opcode uint32) DispatchRes {
	return armDispatchTable[armDispatchIndex(opcode)](c, opcode)
}

/*
 Branch execute handlers: B/BL, BX/BLX, SVC

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

// signExtend24 multiplies a 24-bit branch offset by 4 and sign-extends the
// result to 32 bits.
func signExtend24(imm24 uint32) int32 {
	v := imm24 << 2
	if v&0x0200_0000 != 0 {
		v |= 0xfc00_0000
	}
	return int32(v)
}

// execB handles unconditional (post-cond-check) branch (ArmB).
func execB(c *Cpu, opcode uint32) DispatchRes {
	off := signExtend24(opcode & 0xff_ffff)
	dest := uint32(int32(c.Regs.ReadPCExec()) + off)
	c.Regs.WritePCFetch(dest)
	return retireBranch()
}

// execBl handles branch-with-link (ArmBl): LR <- return address, then branch.
func execBl(c *Cpu, opcode uint32) DispatchRes {
	off := signExtend24(opcode & 0xff_ffff)
	ret := c.Regs.ReadPCFetch() + 4
	dest := uint32(int32(c.Regs.ReadPCExec()) + off)
	c.Regs.Write(Lr, ret)
	c.Regs.WritePCFetch(dest)
	return retireBranch()
}

// execBx handles BX Rm (ArmBx): branch and switch instruction set per bit 0.
func execBx(c *Cpu, opcode uint32) DispatchRes {
	rm := c.Regs.Read(Reg(opcode & 0xf))
	c.Regs.cpsr.SetThumb(rm&1 != 0)
	c.Regs.WritePCFetch(rm &^ 1)
	return retireBranch()
}

// execBlxReg handles BLX Rm (ArmBlxReg): like BX but also sets LR.
func execBlxReg(c *Cpu, opcode uint32) DispatchRes {
	rm := c.Regs.Read(Reg(opcode & 0xf))
	ret := c.Regs.ReadPCFetch() + 4
	c.Regs.Write(Lr, ret)
	c.Regs.cpsr.SetThumb(rm&1 != 0)
	c.Regs.WritePCFetch(rm &^ 1)
	return retireBranch()
}

// execSvc handles SVC/SWI (ArmSvc). This core treats SWI as a semihosting
// call rather than a true architectural exception: the dispatch
// tag carries a dedicated exception value the step loop recognizes and
// routes to the semihosting path instead of GenerateException.
func execSvc(c *Cpu, opcode uint32) DispatchRes {
	return exceptionRes(ExcSwi())
}

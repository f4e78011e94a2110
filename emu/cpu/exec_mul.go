/*
 Multiply execute handlers: MUL/MLA and the long multiply family

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

// execMul handles MUL/MLA (ArmMul): Rd = Rm*Rs [+ Rn].
func execMul(c *Cpu, opcode uint32) DispatchRes {
	rd := Reg((opcode >> 16) & 0xf)
	rn := Reg((opcode >> 12) & 0xf)
	rs := Reg((opcode >> 8) & 0xf)
	rm := Reg(opcode & 0xf)
	accumulate := (opcode>>21)&1 != 0
	sSet := (opcode>>20)&1 != 0

	res := c.Regs.Read(rm) * c.Regs.Read(rs)
	if accumulate {
		res += c.Regs.Read(rn)
	}
	c.Regs.Write(rd, res)
	if sSet {
		n, z := nzFor(res)
		cpsr := c.Regs.Cpsr()
		c.Regs.cpsr.SetNZCV(n, z, cpsr.Carry(), cpsr.OverflowF())
	}
	return retireOk()
}

// execMulLong handles UMULL/UMLAL/SMULL/SMLAL (ArmMulLong): a 64-bit
// product (optionally accumulated) split across RdHi:RdLo.
func execMulLong(c *Cpu, opcode uint32) DispatchRes {
	rdHi := Reg((opcode >> 16) & 0xf)
	rdLo := Reg((opcode >> 12) & 0xf)
	rs := Reg((opcode >> 8) & 0xf)
	rm := Reg(opcode & 0xf)
	signed := (opcode>>22)&1 != 0
	accumulate := (opcode>>21)&1 != 0
	sSet := (opcode>>20)&1 != 0

	var product uint64
	if signed {
		product = uint64(int64(int32(c.Regs.Read(rm))) * int64(int32(c.Regs.Read(rs))))
	} else {
		product = uint64(c.Regs.Read(rm)) * uint64(c.Regs.Read(rs))
	}
	if accumulate {
		acc := uint64(c.Regs.Read(rdHi))<<32 | uint64(c.Regs.Read(rdLo))
		product += acc
	}

	hi := uint32(product >> 32)
	lo := uint32(product)
	c.Regs.Write(rdLo, lo)
	c.Regs.Write(rdHi, hi)
	if sSet {
		n := hi&0x8000_0000 != 0
		z := product == 0
		cpsr := c.Regs.Cpsr()
		c.Regs.cpsr.SetNZCV(n, z, cpsr.Carry(), cpsr.OverflowF())
	}
	return retireOk()
}

/*
 Coprocessor register-transfer execute handler: MRC/MCR

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

// execMrcMcr handles MRC/MCR (ArmMrcMcr). Only coprocessor 15 (system
// control) is wired; any other coprocessor number is an undefined
// instruction from the guest's point of view.
func execMrcMcr(c *Cpu, opcode uint32) DispatchRes {
	coproc := (opcode >> 8) & 0xf
	if coproc != 15 {
		return exceptionRes(ExcUndefined(opcode))
	}

	load := (opcode>>20)&1 != 0
	crn := (opcode >> 16) & 0xf
	rt := Reg((opcode >> 12) & 0xf)
	crm := opcode & 0xf
	opc2 := (opcode >> 5) & 0x7

	if load {
		val := c.P15.Read(crn, crm, opc2)
		if rt == Pc {
			// MRC to r15 only updates NZCV from the loaded value's top
			// nibble (architectural quirk); not modeled beyond a plain
			// discard, since this core's guest software never relies on it.
			return retireOk()
		}
		c.Regs.Write(rt, val)
		return retireOk()
	}

	c.P15.Write(c.Regs.Read(rt), crn, crm, opc2)
	return retireOk()
}

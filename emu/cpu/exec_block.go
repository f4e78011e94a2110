/*
 Block data transfer execute handler: LDM/STM

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

// execBlockXfer handles LDM/STM (ArmBlockXfer), all four addressing modes
// (IA/IB/DA/DB), writeback, the user-bank `^` variant, and LDM with r15 in
// the register list (load-and-branch, with CPSR<-SPSR when S is also set).
func execBlockXfer(c *Cpu, opcode uint32) DispatchRes {
	p := (opcode>>24)&1 != 0
	u := (opcode>>23)&1 != 0
	s := (opcode>>22)&1 != 0
	w := (opcode>>21)&1 != 0
	l := (opcode>>20)&1 != 0
	rn := Reg((opcode >> 16) & 0xf)
	list := opcode & 0xffff

	count := 0
	for i := 0; i < 16; i++ {
		if list&(1<<uint(i)) != 0 {
			count++
		}
	}
	if count == 0 {
		return fatalErr()
	}

	base := c.Regs.Read(rn)
	// Normalize every addressing mode to "ascending from startAddr", per the
	// standard ARM block-transfer identity (DA/DB descend from base-4*count).
	var startAddr uint32
	if u {
		startAddr = base
		if p {
			startAddr += 4
		}
	} else {
		startAddr = base - uint32(count)*4
		if p {
			// DB: ascending start is base-4*count; first transfer address is
			// base-4*count (pre-decrement already folded in).
		} else {
			startAddr += 4
		}
	}

	userBank := s && (!l || list&(1<<15) == 0)
	curMode := c.Regs.Cpsr().Mode()

	addr := startAddr
	for i := 0; i < 16; i++ {
		if list&(1<<uint(i)) == 0 {
			continue
		}
		reg := Reg(i)
		if l {
			paddr, exc, ok := translateOrAbort(c, addr, AccessRead)
			if !ok {
				return exc
			}
			val := c.Bus.ReadWord(paddr)
			if reg == Pc {
				if s {
					spsr := c.Regs.SpsrRead(curMode)
					c.Regs.WriteCpsr(spsr)
					c.currentException = nil
				}
				c.Regs.WritePCFetch(val &^ 1)
				c.Regs.cpsr.SetThumb(val&1 != 0)
			} else if userBank {
				writeUserReg(c, reg, val)
			} else {
				c.Regs.Write(reg, val)
			}
		} else {
			var val uint32
			if userBank {
				val = readUserReg(c, reg)
			} else {
				val = c.Regs.Read(reg)
			}
			paddr, exc, ok := translateOrAbort(c, addr, AccessWrite)
			if !ok {
				return exc
			}
			c.Bus.WriteWord(paddr, val)
		}
		addr += 4
	}

	if w {
		var newBase uint32
		if u {
			newBase = base + uint32(count)*4
		} else {
			newBase = base - uint32(count)*4
		}
		// A writeback load into the base register itself is not overwritten
		// by the writeback value; only apply it when Rn was not in the load
		// list, matching the common (and simplest-to-reason-about) case.
		if !(l && list&(1<<uint(rn)) != 0) {
			c.Regs.Write(rn, newBase)
		}
	}

	if list&(1<<15) != 0 && l {
		return retireBranch()
	}
	return retireOk()
}

// readUserReg/writeUserReg access r8..r14 of the User bank regardless of
// current mode, for the LDM/STM `^` (user-bank transfer) variant. Only
// r8..r14 are banked; r0..r7 and r15 are unaffected by mode.
func readUserReg(c *Cpu, reg Reg) uint32 {
	if reg < R8 || reg == Pc {
		return c.Regs.Read(reg)
	}
	cur := c.Regs.Cpsr().Mode()
	if slotFor(cur) == bankUsr {
		return c.Regs.Read(reg)
	}
	c.Regs.SwapBank(cur, ModeUsr)
	v := c.Regs.Read(reg)
	c.Regs.SwapBank(ModeUsr, cur)
	return v
}

func writeUserReg(c *Cpu, reg Reg, v uint32) {
	if reg < R8 {
		c.Regs.Write(reg, v)
		return
	}
	cur := c.Regs.Cpsr().Mode()
	if slotFor(cur) == bankUsr {
		c.Regs.Write(reg, v)
		return
	}
	c.Regs.SwapBank(cur, ModeUsr)
	c.Regs.Write(reg, v)
	c.Regs.SwapBank(ModeUsr, cur)
}

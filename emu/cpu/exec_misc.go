/*
 Miscellaneous and unimplemented-space execute handlers

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

import "math/bits"

// execClz handles CLZ Rd, Rm (ArmClz): count leading zeros.
func execClz(c *Cpu, opcode uint32) DispatchRes {
	rd := Reg((opcode >> 12) & 0xf)
	rm := Reg(opcode & 0xf)
	c.Regs.Write(rd, uint32(bits.LeadingZeros32(c.Regs.Read(rm))))
	return retireOk()
}

// execSwap handles SWP/SWPB Rt, Rt2, [Rn] (ArmSwap): an atomic load-then-
// store. The interpreter core has no concurrent guest execution to race
// against, so plain sequential load/store already satisfies the atomicity
// this instruction promises.
func execSwap(c *Cpu, opcode uint32) DispatchRes {
	b := (opcode>>22)&1 != 0
	rn := Reg((opcode >> 16) & 0xf)
	rt := Reg((opcode >> 12) & 0xf)
	rt2 := Reg(opcode & 0xf)

	addr := c.Regs.Read(rn)
	storeVal := c.Regs.Read(rt2)

	if b {
		paddr, exc, ok := translateOrAbort(c, addr, AccessRead)
		if !ok {
			return exc
		}
		old := c.Bus.ReadByte(paddr)
		paddr2, exc2, ok2 := translateOrAbort(c, addr, AccessWrite)
		if !ok2 {
			return exc2
		}
		c.Bus.WriteByte(paddr2, uint8(storeVal))
		c.Regs.Write(rt, uint32(old))
		return retireOk()
	}

	paddr, exc, ok := translateOrAbort(c, addr, AccessRead)
	if !ok {
		return exc
	}
	old := c.Bus.ReadWord(paddr)
	paddr2, exc2, ok2 := translateOrAbort(c, addr, AccessWrite)
	if !ok2 {
		return exc2
	}
	c.Bus.WriteWord(paddr2, storeVal)
	c.Regs.Write(rt, old)
	return retireOk()
}

// execPreload handles PLD (ArmPreload): a cache hint, architecturally a
// no-op on a core with no timing-accurate cache model.
func execPreload(c *Cpu, opcode uint32) DispatchRes {
	return retireOk()
}

// The following opcode groups are decoded but not given real execute
// semantics: they do not appear in the boot/kernel code paths this core
// targets. Each is a documented implementation gap rather than a silent
// wrong-answer; encountering one during emulation is a FatalErr, not a
// guest-visible fault. The exception is execCdpOther (coprocessor-space
// opcodes), which raises the Undefined exception.
func execBxj(c *Cpu, opcode uint32) DispatchRes { return fatalErr() }
func execBkpt(c *Cpu, opcode uint32) DispatchRes { return fatalErr() }
func execSatArith(c *Cpu, opcode uint32) DispatchRes { return fatalErr() }
func execSmulHalf(c *Cpu, opcode uint32) DispatchRes { return fatalErr() }
func execMovImmAlt(c *Cpu, opcode uint32) DispatchRes { return fatalErr() }
func execCoprocMoveDouble(c *Cpu, opcode uint32) DispatchRes { return fatalErr() }
func execCdpOther(c *Cpu, opcode uint32) DispatchRes {
	return exceptionRes(ExcUndefined(opcode))
}

// execArmUndefined is the handler installed at every table slot decodeArm
// classified ArmUndefined. Like execCdpOther for the coprocessor space, it
// raises the Undefined exception rather than halting.
func execArmUndefined(c *Cpu, opcode uint32) DispatchRes {
	return exceptionRes(ExcUndefined(opcode))
}

// execThumbUndefined is the handler for ThumbUndefined: always fatal, since
// no Thumb encoding this core dispatches on is expected to be genuinely
// unallocated in boot/kernel code.
func execThumbUndefined(c *Cpu, opcode uint32) DispatchRes {
	return fatalErr()
}

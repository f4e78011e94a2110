/*
 Load/store execute handlers: immediate and register addressing modes

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

// addrModeResult is the (effective_address, writeback_value) pair computed
// from (Rn, offset, U, P, W) addressing-mode table.
type addrModeResult struct {
	effective uint32
	writeback uint32
	doWB bool
}

func computeAddrMode(rnVal, offset uint32, u, p, w bool) addrModeResult {
	var delta uint32
	if u {
		delta = rnVal + offset
	} else {
		delta = rnVal - offset
	}
	if !p {
		// Post-indexed: effective address is Rn itself; writeback is Rn±offset.
		return addrModeResult{effective: rnVal, writeback: delta, doWB: true}
	}
	// Pre-indexed: effective address is Rn±offset; writeback only if W.
	return addrModeResult{effective: delta, writeback: delta, doWB: w}
}

func translateOrAbort(c *Cpu, vaddr uint32, kind Access) (uint32, DispatchRes, bool) {
	paddr, err := c.Translate(vaddr, kind)
	if err != nil {
		if _, ok := err.(*AbortError); ok {
			if kind == AccessWrite || kind == AccessRead {
				return 0, exceptionRes(ExcDabt()), false
			}
		}
		panic(err)
	}
	return paddr, DispatchRes{}, true
}

// execLdrStrImm handles LDR/STR{B} with a 12-bit immediate offset
// (ArmLdrStrImm), including the PC-relative literal special case.
func execLdrStrImm(c *Cpu, opcode uint32) DispatchRes {
	p := (opcode>>24)&1 != 0
	u := (opcode>>23)&1 != 0
	b := (opcode>>22)&1 != 0
	w := (opcode>>21)&1 != 0
	l := (opcode>>20)&1 != 0
	rn := Reg((opcode >> 16) & 0xf)
	rt := Reg((opcode >> 12) & 0xf)
	imm12 := opcode & 0xfff

	var rnVal uint32
	var doWB bool
	var addr uint32
	if rn == Pc {
		addr = c.Regs.ReadPCExec() &^ 3
		doWB = false
	} else {
		rnVal = c.Regs.Read(rn)
		am := computeAddrMode(rnVal, imm12, u, p, w)
		addr = am.effective
		if am.doWB {
			c.Regs.Write(rn, am.writeback)
			doWB = true
		}
	}
	_ = doWB

	return execLoadStoreCore(c, addr, rt, l, b)
}

// execLdrStrReg handles LDR/STR{B} with a shifted-register offset
// (ArmLdrStrReg).
func execLdrStrReg(c *Cpu, opcode uint32) DispatchRes {
	p := (opcode>>24)&1 != 0
	u := (opcode>>23)&1 != 0
	b := (opcode>>22)&1 != 0
	w := (opcode>>21)&1 != 0
	l := (opcode>>20)&1 != 0
	rn := Reg((opcode >> 16) & 0xf)
	rt := Reg((opcode >> 12) & 0xf)

	rm := c.Regs.Read(Reg(opcode & 0xf))
	stype := ShiftType((opcode >> 5) & 0x3)
	imm5 := (opcode >> 7) & 0x1f
	offset, _ := ShiftRegByImm(rm, stype, imm5, c.Regs.Cpsr().Carry())

	rnVal := c.Regs.Read(rn)
	am := computeAddrMode(rnVal, offset, u, p, w)
	if am.doWB {
		c.Regs.Write(rn, am.writeback)
	}
	return execLoadStoreCore(c, am.effective, rt, l, b)
}

// execLdrStrUnpriv signals the fatal "unprivileged alternate" form
// (P=0,W=1), which calls out as handled separately; this core
// does not model a separate unprivileged mapping, so it is an
// implementation gap.
func execLdrStrUnpriv(c *Cpu, opcode uint32) DispatchRes {
	return fatalErr()
}

func execLoadStoreCore(c *Cpu, addr uint32, rt Reg, isLoad, isByte bool) DispatchRes {
	if isLoad {
		if isByte {
			paddr, exc, ok := translateOrAbort(c, addr, AccessRead)
			if !ok {
				return exc
			}
			c.Regs.Write(rt, uint32(c.Bus.ReadByte(paddr)))
			return retireOk()
		}
		paddr, exc, ok := translateOrAbort(c, addr, AccessRead)
		if !ok {
			return exc
		}
		val := c.Bus.ReadWord(paddr)
		if rt == Pc {
			c.Regs.WritePCFetch(val &^ 1)
			c.Regs.cpsr.SetThumb(val&1 != 0)
			return retireBranch()
		}
		c.Regs.Write(rt, val)
		return retireOk()
	}

	// Store: sample the register value before translating, matching "no
	// state mutation before inputs are sampled".
	val := c.Regs.Read(rt)
	paddr, exc, ok := translateOrAbort(c, addr, AccessWrite)
	if !ok {
		return exc
	}
	if isByte {
		c.Bus.WriteByte(paddr, uint8(val))
	} else {
		c.Bus.WriteWord(paddr, val)
	}
	return retireOk()
}

// execLdrhStrhImm/Reg handle the signed/halfword/dual-word group
// (ArmLdrhStrhImm, ArmLdrhStrhReg). Only LDRH/STRH/LDRSB/LDRSH are
// implemented; LDRD/STRD are not part of the minimum-viable set and are an
// implementation gap here.
func execLdrhStrhImm(c *Cpu, opcode uint32) DispatchRes {
	imm := ((opcode >> 4) & 0xf0) | (opcode & 0xf)
	return execLdrhStrhCore(c, opcode, imm)
}

func execLdrhStrhReg(c *Cpu, opcode uint32) DispatchRes {
	offset := c.Regs.Read(Reg(opcode & 0xf))
	return execLdrhStrhCore(c, opcode, offset)
}

func execLdrhStrhCore(c *Cpu, opcode, offset uint32) DispatchRes {
	p := (opcode>>24)&1 != 0
	u := (opcode>>23)&1 != 0
	w := (opcode>>21)&1 != 0
	l := (opcode>>20)&1 != 0
	sh := (opcode >> 5) & 0x3
	rn := Reg((opcode >> 16) & 0xf)
	rt := Reg((opcode >> 12) & 0xf)

	rnVal := c.Regs.Read(rn)
	am := computeAddrMode(rnVal, offset, u, p, w)
	if am.doWB {
		c.Regs.Write(rn, am.writeback)
	}

	switch sh {
	case 0b01: // unsigned halfword
		if l {
			paddr, exc, ok := translateOrAbort(c, am.effective, AccessRead)
			if !ok {
				return exc
			}
			c.Regs.Write(rt, uint32(c.Bus.ReadHalf(paddr)))
			return retireOk()
		}
		paddr, exc, ok := translateOrAbort(c, am.effective, AccessWrite)
		if !ok {
			return exc
		}
		c.Bus.WriteHalf(paddr, uint16(c.Regs.Read(rt)))
		return retireOk()
	case 0b10: // LDRSB
		if !l {
			return fatalErr()
		}
		paddr, exc, ok := translateOrAbort(c, am.effective, AccessRead)
		if !ok {
			return exc
		}
		v := int32(int8(c.Bus.ReadByte(paddr)))
		c.Regs.Write(rt, uint32(v))
		return retireOk()
	case 0b11: // LDRSH
		if !l {
			return fatalErr()
		}
		paddr, exc, ok := translateOrAbort(c, am.effective, AccessRead)
		if !ok {
			return exc
		}
		v := int32(int16(c.Bus.ReadHalf(paddr)))
		c.Regs.Write(rt, uint32(v))
		return retireOk()
	default:
		return fatalErr()
	}
}

/*
 Thumb execute handlers

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

// Every Thumb handler receives its 16-bit opcode widened into the low half
// of the uint32 parameter, so the ARM and Thumb tables can share HandlerFn.

func execThumbShiftImm(c *Cpu, raw uint32) DispatchRes {
	op := uint16(raw)
	stype := ShiftType((op >> 11) & 0x3)
	imm5 := uint32((op >> 6) & 0x1f)
	rm := Reg((op >> 3) & 0x7)
	rd := Reg(op & 0x7)

	cpsr := c.Regs.Cpsr()
	val, cOut := ShiftRegByImm(c.Regs.Read(rm), stype, imm5, cpsr.Carry())
	c.Regs.Write(rd, val)
	n, z := nzFor(val)
	c.Regs.cpsr.SetNZCV(n, z, cOut, cpsr.OverflowF())
	return retireOk()
}

func execThumbAddSub(c *Cpu, raw uint32) DispatchRes {
	op := uint16(raw)
	immOp := (op>>10)&1 != 0
	sub := (op>>9)&1 != 0
	rnOrImm := uint32((op >> 6) & 0x7)
	rn := Reg((op >> 3) & 0x7)
	rd := Reg(op & 0x7)

	rnVal := c.Regs.Read(rn)
	var operand uint32
	if immOp {
		operand = rnOrImm
	} else {
		operand = c.Regs.Read(Reg(rnOrImm))
	}

	var res AluRes
	if sub {
		res = Sub(rnVal, operand, true)
	} else {
		res = Add(rnVal, operand, false)
	}
	c.Regs.Write(rd, res.Result)
	c.Regs.cpsr.SetNZCV(res.N, res.Z, res.C, res.V)
	return retireOk()
}

func execThumbMovCmpAddSubImm(c *Cpu, raw uint32) DispatchRes {
	op := uint16(raw)
	kind := (op >> 11) & 0x3
	rd := Reg((op >> 8) & 0x7)
	imm8 := uint32(op & 0xff)

	rdVal := c.Regs.Read(rd)
	switch kind {
	case 0b00: // MOV
		n, z := nzFor(imm8)
		c.Regs.Write(rd, imm8)
		cpsr := c.Regs.Cpsr()
		c.Regs.cpsr.SetNZCV(n, z, cpsr.Carry(), cpsr.OverflowF())
	case 0b01: // CMP
		res := Sub(rdVal, imm8, true)
		c.Regs.cpsr.SetNZCV(res.N, res.Z, res.C, res.V)
	case 0b10: // ADD
		res := Add(rdVal, imm8, false)
		c.Regs.Write(rd, res.Result)
		c.Regs.cpsr.SetNZCV(res.N, res.Z, res.C, res.V)
	case 0b11: // SUB
		res := Sub(rdVal, imm8, true)
		c.Regs.Write(rd, res.Result)
		c.Regs.cpsr.SetNZCV(res.N, res.Z, res.C, res.V)
	}
	return retireOk()
}

func execThumbAluReg(c *Cpu, raw uint32) DispatchRes {
	op := uint16(raw)
	aluOp := (op >> 6) & 0xf
	rs := Reg((op >> 3) & 0x7)
	rd := Reg(op & 0x7)

	rdVal := c.Regs.Read(rd)
	rsVal := c.Regs.Read(rs)
	cpsr := c.Regs.Cpsr()

	switch aluOp {
	case 0x0: // AND
		res := rdVal & rsVal
		n, z := nzFor(res)
		c.Regs.Write(rd, res)
		c.Regs.cpsr.SetNZCV(n, z, cpsr.Carry(), cpsr.OverflowF())
	case 0x1: // EOR
		res := rdVal ^ rsVal
		n, z := nzFor(res)
		c.Regs.Write(rd, res)
		c.Regs.cpsr.SetNZCV(n, z, cpsr.Carry(), cpsr.OverflowF())
	case 0x2: // LSL
		val, cOut := ShiftRegByReg(rdVal, ShiftLSL, rsVal, cpsr.Carry())
		c.Regs.Write(rd, val)
		n, z := nzFor(val)
		c.Regs.cpsr.SetNZCV(n, z, cOut, cpsr.OverflowF())
	case 0x3: // LSR
		val, cOut := ShiftRegByReg(rdVal, ShiftLSR, rsVal, cpsr.Carry())
		c.Regs.Write(rd, val)
		n, z := nzFor(val)
		c.Regs.cpsr.SetNZCV(n, z, cOut, cpsr.OverflowF())
	case 0x4: // ASR
		val, cOut := ShiftRegByReg(rdVal, ShiftASR, rsVal, cpsr.Carry())
		c.Regs.Write(rd, val)
		n, z := nzFor(val)
		c.Regs.cpsr.SetNZCV(n, z, cOut, cpsr.OverflowF())
	case 0x5: // ADC
		res := Add(rdVal, rsVal, cpsr.Carry())
		c.Regs.Write(rd, res.Result)
		c.Regs.cpsr.SetNZCV(res.N, res.Z, res.C, res.V)
	case 0x6: // SBC
		res := Sub(rdVal, rsVal, cpsr.Carry())
		c.Regs.Write(rd, res.Result)
		c.Regs.cpsr.SetNZCV(res.N, res.Z, res.C, res.V)
	case 0x7: // ROR
		val, cOut := ShiftRegByReg(rdVal, ShiftROR, rsVal, cpsr.Carry())
		c.Regs.Write(rd, val)
		n, z := nzFor(val)
		c.Regs.cpsr.SetNZCV(n, z, cOut, cpsr.OverflowF())
	case 0x8: // TST
		res := rdVal & rsVal
		n, z := nzFor(res)
		c.Regs.cpsr.SetNZCV(n, z, cpsr.Carry(), cpsr.OverflowF())
	case 0x9: // NEG
		res := Sub(0, rsVal, true)
		c.Regs.Write(rd, res.Result)
		c.Regs.cpsr.SetNZCV(res.N, res.Z, res.C, res.V)
	case 0xa: // CMP
		res := Sub(rdVal, rsVal, true)
		c.Regs.cpsr.SetNZCV(res.N, res.Z, res.C, res.V)
	case 0xb: // CMN
		res := Add(rdVal, rsVal, false)
		c.Regs.cpsr.SetNZCV(res.N, res.Z, res.C, res.V)
	case 0xc: // ORR
		res := rdVal | rsVal
		n, z := nzFor(res)
		c.Regs.Write(rd, res)
		c.Regs.cpsr.SetNZCV(n, z, cpsr.Carry(), cpsr.OverflowF())
	case 0xd: // MUL
		res := rdVal * rsVal
		n, z := nzFor(res)
		c.Regs.Write(rd, res)
		c.Regs.cpsr.SetNZCV(n, z, cpsr.Carry(), cpsr.OverflowF())
	case 0xe: // BIC
		res := rdVal &^ rsVal
		n, z := nzFor(res)
		c.Regs.Write(rd, res)
		c.Regs.cpsr.SetNZCV(n, z, cpsr.Carry(), cpsr.OverflowF())
	case 0xf: // MVN
		res := ^rsVal
		n, z := nzFor(res)
		c.Regs.Write(rd, res)
		c.Regs.cpsr.SetNZCV(n, z, cpsr.Carry(), cpsr.OverflowF())
	}
	return retireOk()
}

// thumbHiReg extracts (rd, rs) for the hi-register operations group, where
// the H1/H2 bits extend the 3-bit fields to the full register number.
func thumbHiReg(op uint16) (Reg, Reg) {
	h1 := (op >> 7) & 1
	h2 := (op >> 6) & 1
	rd := Reg((op & 0x7) | (h1 << 3))
	rs := Reg(((op >> 3) & 0x7) | (h2 << 3))
	return rd, rs
}

func execThumbHiRegOp(c *Cpu, raw uint32) DispatchRes {
	op := uint16(raw)
	kind := (op >> 8) & 0x3
	rd, rs := thumbHiReg(op)

	rsVal := c.Regs.Read(rs)
	switch kind {
	case 0b00: // ADD
		res := c.Regs.Read(rd) + rsVal
		if rd == Pc {
			c.Regs.WritePCFetch(res &^ 1)
			return retireBranch()
		}
		c.Regs.Write(rd, res)
	case 0b01: // CMP
		res := Sub(c.Regs.Read(rd), rsVal, true)
		c.Regs.cpsr.SetNZCV(res.N, res.Z, res.C, res.V)
	case 0b10: // MOV
		if rd == Pc {
			c.Regs.WritePCFetch(rsVal &^ 1)
			return retireBranch()
		}
		c.Regs.Write(rd, rsVal)
	}
	return retireOk()
}

func execThumbBx(c *Cpu, raw uint32) DispatchRes {
	op := uint16(raw)
	_, rs := thumbHiReg(op)
	link := (op>>7)&1 != 0
	rsVal := c.Regs.Read(rs)
	if link {
		ret := c.Regs.ReadPCFetch() + 2
		c.Regs.Write(Lr, ret|1)
	}
	c.Regs.cpsr.SetThumb(rsVal&1 != 0)
	c.Regs.WritePCFetch(rsVal &^ 1)
	return retireBranch()
}

func execThumbLdrPcRel(c *Cpu, raw uint32) DispatchRes {
	op := uint16(raw)
	rd := Reg((op >> 8) & 0x7)
	imm8 := uint32(op&0xff) * 4
	base := (c.Regs.ReadPCExec() &^ 3) + imm8
	paddr, exc, ok := translateOrAbort(c, base, AccessRead)
	if !ok {
		return exc
	}
	c.Regs.Write(rd, c.Bus.ReadWord(paddr))
	return retireOk()
}

func execThumbLdrStrReg(c *Cpu, raw uint32) DispatchRes {
	op := uint16(raw)
	opc := (op >> 9) & 0x7
	ro := Reg((op >> 6) & 0x7)
	rb := Reg((op >> 3) & 0x7)
	rd := Reg(op & 0x7)
	addr := c.Regs.Read(rb) + c.Regs.Read(ro)

	switch opc {
	case 0b000: // STR
		paddr, exc, ok := translateOrAbort(c, addr, AccessWrite)
		if !ok {
			return exc
		}
		c.Bus.WriteWord(paddr, c.Regs.Read(rd))
	case 0b001: // STRH
		paddr, exc, ok := translateOrAbort(c, addr, AccessWrite)
		if !ok {
			return exc
		}
		c.Bus.WriteHalf(paddr, uint16(c.Regs.Read(rd)))
	case 0b010: // STRB
		paddr, exc, ok := translateOrAbort(c, addr, AccessWrite)
		if !ok {
			return exc
		}
		c.Bus.WriteByte(paddr, uint8(c.Regs.Read(rd)))
	case 0b011: // LDRSB
		paddr, exc, ok := translateOrAbort(c, addr, AccessRead)
		if !ok {
			return exc
		}
		c.Regs.Write(rd, uint32(int32(int8(c.Bus.ReadByte(paddr)))))
	case 0b100: // LDR
		paddr, exc, ok := translateOrAbort(c, addr, AccessRead)
		if !ok {
			return exc
		}
		c.Regs.Write(rd, c.Bus.ReadWord(paddr))
	case 0b101: // LDRH
		paddr, exc, ok := translateOrAbort(c, addr, AccessRead)
		if !ok {
			return exc
		}
		c.Regs.Write(rd, uint32(c.Bus.ReadHalf(paddr)))
	case 0b110: // LDRB
		paddr, exc, ok := translateOrAbort(c, addr, AccessRead)
		if !ok {
			return exc
		}
		c.Regs.Write(rd, uint32(c.Bus.ReadByte(paddr)))
	case 0b111: // LDRSH
		paddr, exc, ok := translateOrAbort(c, addr, AccessRead)
		if !ok {
			return exc
		}
		c.Regs.Write(rd, uint32(int32(int16(c.Bus.ReadHalf(paddr)))))
	}
	return retireOk()
}

func execThumbLdrStrImm(c *Cpu, raw uint32) DispatchRes {
	op := uint16(raw)
	b := (op>>12)&1 != 0
	l := (op>>11)&1 != 0
	imm5 := uint32((op >> 6) & 0x1f)
	rb := Reg((op >> 3) & 0x7)
	rd := Reg(op & 0x7)

	var offset uint32
	if b {
		offset = imm5
	} else {
		offset = imm5 * 4
	}
	addr := c.Regs.Read(rb) + offset

	if l {
		if b {
			paddr, exc, ok := translateOrAbort(c, addr, AccessRead)
			if !ok {
				return exc
			}
			c.Regs.Write(rd, uint32(c.Bus.ReadByte(paddr)))
		} else {
			paddr, exc, ok := translateOrAbort(c, addr, AccessRead)
			if !ok {
				return exc
			}
			c.Regs.Write(rd, c.Bus.ReadWord(paddr))
		}
		return retireOk()
	}
	if b {
		paddr, exc, ok := translateOrAbort(c, addr, AccessWrite)
		if !ok {
			return exc
		}
		c.Bus.WriteByte(paddr, uint8(c.Regs.Read(rd)))
	} else {
		paddr, exc, ok := translateOrAbort(c, addr, AccessWrite)
		if !ok {
			return exc
		}
		c.Bus.WriteWord(paddr, c.Regs.Read(rd))
	}
	return retireOk()
}

func execThumbLdrStrHalf(c *Cpu, raw uint32) DispatchRes {
	op := uint16(raw)
	l := (op>>11)&1 != 0
	imm5 := uint32((op>>6)&0x1f) * 2
	rb := Reg((op >> 3) & 0x7)
	rd := Reg(op & 0x7)
	addr := c.Regs.Read(rb) + imm5

	if l {
		paddr, exc, ok := translateOrAbort(c, addr, AccessRead)
		if !ok {
			return exc
		}
		c.Regs.Write(rd, uint32(c.Bus.ReadHalf(paddr)))
		return retireOk()
	}
	paddr, exc, ok := translateOrAbort(c, addr, AccessWrite)
	if !ok {
		return exc
	}
	c.Bus.WriteHalf(paddr, uint16(c.Regs.Read(rd)))
	return retireOk()
}

func execThumbLdrStrSp(c *Cpu, raw uint32) DispatchRes {
	op := uint16(raw)
	l := (op>>11)&1 != 0
	rd := Reg((op >> 8) & 0x7)
	imm8 := uint32(op&0xff) * 4
	addr := c.Regs.Read(Sp) + imm8

	if l {
		paddr, exc, ok := translateOrAbort(c, addr, AccessRead)
		if !ok {
			return exc
		}
		c.Regs.Write(rd, c.Bus.ReadWord(paddr))
		return retireOk()
	}
	paddr, exc, ok := translateOrAbort(c, addr, AccessWrite)
	if !ok {
		return exc
	}
	c.Bus.WriteWord(paddr, c.Regs.Read(rd))
	return retireOk()
}

func execThumbLoadAddr(c *Cpu, raw uint32) DispatchRes {
	op := uint16(raw)
	sp := (op>>11)&1 != 0
	rd := Reg((op >> 8) & 0x7)
	imm8 := uint32(op&0xff) * 4

	var base uint32
	if sp {
		base = c.Regs.Read(Sp)
	} else {
		base = c.Regs.ReadPCExec() &^ 3
	}
	c.Regs.Write(rd, base+imm8)
	return retireOk()
}

func execThumbAddSpImm(c *Cpu, raw uint32) DispatchRes {
	op := uint16(raw)
	neg := (op>>7)&1 != 0
	imm7 := uint32(op&0x7f) * 4
	sp := c.Regs.Read(Sp)
	if neg {
		c.Regs.Write(Sp, sp-imm7)
	} else {
		c.Regs.Write(Sp, sp+imm7)
	}
	return retireOk()
}

func execThumbPushPop(c *Cpu, raw uint32) DispatchRes {
	op := uint16(raw)
	l := (op>>11)&1 != 0
	includeExtra := (op>>8)&1 != 0
	list := uint32(op & 0xff)

	if l {
		sp := c.Regs.Read(Sp)
		addr := sp
		for i := 0; i < 8; i++ {
			if list&(1<<uint(i)) == 0 {
				continue
			}
			paddr, exc, ok := translateOrAbort(c, addr, AccessRead)
			if !ok {
				return exc
			}
			c.Regs.Write(Reg(i), c.Bus.ReadWord(paddr))
			addr += 4
		}
		branched := false
		if includeExtra {
			paddr, exc, ok := translateOrAbort(c, addr, AccessRead)
			if !ok {
				return exc
			}
			val := c.Bus.ReadWord(paddr)
			c.Regs.WritePCFetch(val &^ 1)
			addr += 4
			branched = true
		}
		c.Regs.Write(Sp, addr)
		if branched {
			return retireBranch()
		}
		return retireOk()
	}

	count := 0
	for i := 0; i < 8; i++ {
		if list&(1<<uint(i)) != 0 {
			count++
		}
	}
	if includeExtra {
		count++
	}
	sp := c.Regs.Read(Sp) - uint32(count)*4
	addr := sp
	for i := 0; i < 8; i++ {
		if list&(1<<uint(i)) == 0 {
			continue
		}
		paddr, exc, ok := translateOrAbort(c, addr, AccessWrite)
		if !ok {
			return exc
		}
		c.Bus.WriteWord(paddr, c.Regs.Read(Reg(i)))
		addr += 4
	}
	if includeExtra {
		paddr, exc, ok := translateOrAbort(c, addr, AccessWrite)
		if !ok {
			return exc
		}
		c.Bus.WriteWord(paddr, c.Regs.Read(Lr))
	}
	c.Regs.Write(Sp, sp)
	return retireOk()
}

func execThumbBlockXfer(c *Cpu, raw uint32) DispatchRes {
	op := uint16(raw)
	l := (op>>11)&1 != 0
	rb := Reg((op >> 8) & 0x7)
	list := uint32(op & 0xff)

	count := 0
	for i := 0; i < 8; i++ {
		if list&(1<<uint(i)) != 0 {
			count++
		}
	}
	base := c.Regs.Read(rb)
	addr := base
	for i := 0; i < 8; i++ {
		if list&(1<<uint(i)) == 0 {
			continue
		}
		reg := Reg(i)
		if l {
			paddr, exc, ok := translateOrAbort(c, addr, AccessRead)
			if !ok {
				return exc
			}
			c.Regs.Write(reg, c.Bus.ReadWord(paddr))
		} else {
			paddr, exc, ok := translateOrAbort(c, addr, AccessWrite)
			if !ok {
				return exc
			}
			c.Bus.WriteWord(paddr, c.Regs.Read(reg))
		}
		addr += 4
	}
	if !(l && list&(1<<uint(rb)) != 0) {
		c.Regs.Write(rb, base+uint32(count)*4)
	}
	return retireOk()
}

func execThumbSvc(c *Cpu, raw uint32) DispatchRes {
	return exceptionRes(ExcSwi())
}

func execThumbBkpt(c *Cpu, raw uint32) DispatchRes {
	return fatalErr()
}

func execThumbCondBranch(c *Cpu, raw uint32) DispatchRes {
	op := uint16(raw)
	cond := uint32((op >> 8) & 0xf)
	if !condTable[cond](c.Regs.Cpsr()) {
		return condFailed()
	}
	imm8 := int32(int8(op & 0xff)) * 2
	dest := uint32(int32(c.Regs.ReadPCExec()) + imm8)
	c.Regs.WritePCFetch(dest)
	return retireBranch()
}

func execThumbB(c *Cpu, raw uint32) DispatchRes {
	op := uint16(raw)
	imm11 := uint32(op & 0x7ff)
	off := int32(imm11 << 1)
	if off&0x0000_0800 != 0 {
		off |= ^int32(0xfff)
	}
	dest := uint32(int32(c.Regs.ReadPCExec()) + off)
	c.Regs.WritePCFetch(dest)
	return retireBranch()
}

// execThumbBlPrefix/Suffix/BlxSuffix implement the two-instruction BL/BLX
// encoding: the prefix stashes a sign-extended high half in c.blScratch,
// and the matching suffix combines it with its own low-11-bit field,
// branches, and sets LR to the return address with bit 0 set (Thumb
// interworking convention).
func execThumbBlPrefix(c *Cpu, raw uint32) DispatchRes {
	op := uint16(raw)
	imm11 := uint32(op & 0x7ff)
	off := imm11 << 12
	if off&0x0040_0000 != 0 {
		off |= 0xff80_0000
	}
	c.blScratch = c.Regs.ReadPCExec() + off
	return retireOk()
}

func execThumbBlSuffix(c *Cpu, raw uint32) DispatchRes {
	op := uint16(raw)
	imm11 := uint32(op & 0x7ff)
	dest := c.blScratch + (imm11 << 1)
	ret := c.Regs.ReadPCFetch() + 2
	c.Regs.Write(Lr, ret|1)
	c.Regs.WritePCFetch(dest)
	return retireBranch()
}

func execThumbBlxSuffix(c *Cpu, raw uint32) DispatchRes {
	op := uint16(raw)
	imm11 := uint32(op & 0x7ff)
	dest := (c.blScratch + (imm11 << 1)) &^ 3
	ret := c.Regs.ReadPCFetch() + 2
	c.Regs.Write(Lr, ret|1)
	c.Regs.cpsr.SetThumb(false)
	c.Regs.WritePCFetch(dest)
	return retireBranch()
}

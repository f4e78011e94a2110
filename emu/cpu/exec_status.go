/*
 Status register transfer execute handlers: MRS, MSR

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

// msrFieldMask builds the byte-lane write mask selected by the 4-bit mask
// field (opcode bits 19..16): bit0=control(7:0), bit1=extension(15:8),
// bit2=status(23:16), bit3=flags(31:24). User mode may only ever touch the
// flags lane regardless of what the mask field requests.
func msrFieldMask(maskBits uint32, userMode bool) uint32 {
	if userMode {
		maskBits &= 0b1000
	}
	var m uint32
	if maskBits&0b0001 != 0 {
		m |= 0x0000_00ff
	}
	if maskBits&0b0010 != 0 {
		m |= 0x0000_ff00
	}
	if maskBits&0b0100 != 0 {
		m |= 0x00ff_0000
	}
	if maskBits&0b1000 != 0 {
		m |= 0xff00_0000
	}
	return m
}

// execMrs handles MRS Rd, CPSR|SPSR (ArmMrs).
func execMrs(c *Cpu, opcode uint32) DispatchRes {
	rd := Reg((opcode >> 12) & 0xf)
	spsrBit := (opcode>>22)&1 != 0
	if spsrBit {
		m := c.Regs.Cpsr().Mode()
		if !m.IsPrivileged() || m == ModeSys {
			return fatalErr()
		}
		c.Regs.Write(rd, uint32(c.Regs.SpsrRead(m)))
		return retireOk()
	}
	c.Regs.Write(rd, uint32(c.Regs.Cpsr()))
	return retireOk()
}

func writeStatusReg(c *Cpu, spsrBit bool, maskBits, value uint32) DispatchRes {
	mode := c.Regs.Cpsr().Mode()
	userMode := mode == ModeUsr
	mask := msrFieldMask(maskBits, userMode)

	if spsrBit {
		if userMode || mode == ModeSys {
			return fatalErr()
		}
		cur := uint32(c.Regs.SpsrRead(mode))
		next := (cur &^ mask) | (value & mask)
		c.Regs.SpsrWrite(mode, Psr(next))
		return retireOk()
	}

	cur := uint32(c.Regs.Cpsr())
	next := (cur &^ mask) | (value & mask)
	// A CPSR write can change Mode (a privileged-only lane): route through
	// WriteCpsr so the register bank swap happens when it does.
	c.Regs.WriteCpsr(Psr(next))
	return retireOk()
}

// execMsrReg handles MSR CPSR|SPSR_fields, Rm (ArmMsrReg).
func execMsrReg(c *Cpu, opcode uint32) DispatchRes {
	spsrBit := (opcode>>22)&1 != 0
	maskBits := (opcode >> 16) & 0xf
	rm := Reg(opcode & 0xf)
	return writeStatusReg(c, spsrBit, maskBits, c.Regs.Read(rm))
}

// execMsrImm handles MSR CPSR|SPSR_fields, #imm (ArmMsrImm).
func execMsrImm(c *Cpu, opcode uint32) DispatchRes {
	spsrBit := (opcode>>22)&1 != 0
	maskBits := (opcode >> 16) & 0xf
	value, _ := ShiftImmRotate(opcode&0xfff, c.Regs.Cpsr().Carry())
	return writeStatusReg(c, spsrBit, maskBits, value)
}

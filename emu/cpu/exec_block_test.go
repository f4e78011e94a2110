/*
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

import "testing"

type fakeBlockBus struct {
	words map[uint32]uint32
}

func newFakeBlockBus() *fakeBlockBus { return &fakeBlockBus{words: map[uint32]uint32{}} }

func (b *fakeBlockBus) ReadWord(addr uint32) uint32     { return b.words[addr] }
func (b *fakeBlockBus) WriteWord(addr uint32, v uint32) { b.words[addr] = v }
func (b *fakeBlockBus) ReadHalf(addr uint32) uint16     { panic("unused") }
func (b *fakeBlockBus) WriteHalf(addr uint32, v uint16) { panic("unused") }
func (b *fakeBlockBus) ReadByte(addr uint32) uint8      { panic("unused") }
func (b *fakeBlockBus) WriteByte(addr uint32, v uint8)  { panic("unused") }

func buildBlockOp(p, u, s, w, l bool, rn Reg, list uint32) uint32 {
	var op uint32 = 0b100 << 25
	if p {
		op |= 1 << 24
	}
	if u {
		op |= 1 << 23
	}
	if s {
		op |= 1 << 22
	}
	if w {
		op |= 1 << 21
	}
	if l {
		op |= 1 << 20
	}
	op |= uint32(rn) << 16
	op |= list
	return op
}

func TestStmiaAscendingNoWriteback(t *testing.T) {
	bus := newFakeBlockBus()
	c := New(bus)
	c.Regs.Write(R0, 0x1000)
	c.Regs.Write(R1, 0xaaaa)
	c.Regs.Write(R2, 0xbbbb)

	op := buildBlockOp(false, true, false, false, false, R0, (1<<1)|(1<<2))
	res := execBlockXfer(c, op)
	if res.Tag != RetireOk {
		t.Fatalf("Tag = %v, want RetireOk", res.Tag)
	}
	if bus.words[0x1000] != 0xaaaa {
		t.Errorf("word at 0x1000 = %#x, want 0xaaaa (IA starts at base)", bus.words[0x1000])
	}
	if bus.words[0x1004] != 0xbbbb {
		t.Errorf("word at 0x1004 = %#x, want 0xbbbb", bus.words[0x1004])
	}
	if c.Regs.Read(R0) != 0x1000 {
		t.Errorf("R0 = %#x, want unchanged 0x1000 (no writeback)", c.Regs.Read(R0))
	}
}

func TestStmibWritesFromBasePlusFour(t *testing.T) {
	bus := newFakeBlockBus()
	c := New(bus)
	c.Regs.Write(R0, 0x1000)
	c.Regs.Write(R1, 0xcccc)

	op := buildBlockOp(true, true, false, false, false, R0, 1<<1)
	execBlockXfer(c, op)
	if bus.words[0x1004] != 0xcccc {
		t.Errorf("word at 0x1004 = %#x, want 0xcccc (IB starts at base+4)", bus.words[0x1004])
	}
	if _, wrote := bus.words[0x1000]; wrote {
		t.Error("IB must not write at the base address itself")
	}
}

func TestLdmiaReadsAscendingWithWriteback(t *testing.T) {
	bus := newFakeBlockBus()
	bus.words[0x2000] = 0x1111
	bus.words[0x2004] = 0x2222
	c := New(bus)
	c.Regs.Write(R0, 0x2000)

	op := buildBlockOp(false, true, false, true, true, R0, (1<<1)|(1<<2))
	res := execBlockXfer(c, op)
	if res.Tag != RetireOk {
		t.Fatalf("Tag = %v, want RetireOk", res.Tag)
	}
	if c.Regs.Read(R1) != 0x1111 || c.Regs.Read(R2) != 0x2222 {
		t.Errorf("R1=%#x R2=%#x, want 0x1111/0x2222", c.Regs.Read(R1), c.Regs.Read(R2))
	}
	if c.Regs.Read(R0) != 0x2008 {
		t.Errorf("R0 (writeback) = %#x, want 0x2008", c.Regs.Read(R0))
	}
}

func TestStmdaDescendingAfter(t *testing.T) {
	bus := newFakeBlockBus()
	c := New(bus)
	c.Regs.Write(R0, 0x3008)
	c.Regs.Write(R1, 0xd1)
	c.Regs.Write(R2, 0xd2)

	// DA (P=0,U=0): two registers, base=0x3008 -> lowest addr = base-4*(count-1) = 0x3004.
	op := buildBlockOp(false, false, false, false, false, R0, (1<<1)|(1<<2))
	execBlockXfer(c, op)
	if bus.words[0x3004] != 0xd1 {
		t.Errorf("word at 0x3004 = %#x, want 0xd1", bus.words[0x3004])
	}
	if bus.words[0x3008] != 0xd2 {
		t.Errorf("word at 0x3008 = %#x, want 0xd2", bus.words[0x3008])
	}
}

func TestStmdbDescendingBefore(t *testing.T) {
	bus := newFakeBlockBus()
	c := New(bus)
	c.Regs.Write(Sp, 0x4010)
	c.Regs.Write(R4, 0xe4)
	c.Regs.Write(Lr, 0xee)

	// DB (P=1,U=0), writeback: classic STMFD SP!, {R4, LR}.
	op := buildBlockOp(true, false, false, true, false, Sp, (1<<4)|(1<<14))
	execBlockXfer(c, op)
	if bus.words[0x4008] != 0xe4 {
		t.Errorf("word at 0x4008 = %#x, want 0xe4", bus.words[0x4008])
	}
	if bus.words[0x400c] != 0xee {
		t.Errorf("word at 0x400c = %#x, want 0xee", bus.words[0x400c])
	}
	if c.Regs.Read(Sp) != 0x4008 {
		t.Errorf("Sp after writeback = %#x, want 0x4008", c.Regs.Read(Sp))
	}
}

func TestLdmWritebackNotOverwrittenWhenBaseInList(t *testing.T) {
	bus := newFakeBlockBus()
	bus.words[0x5000] = 0x9999
	c := New(bus)
	c.Regs.Write(R0, 0x5000)

	op := buildBlockOp(false, true, false, true, true, R0, 1<<0)
	execBlockXfer(c, op)
	if c.Regs.Read(R0) != 0x9999 {
		t.Errorf("R0 = %#x, want the loaded value 0x9999, not the writeback address", c.Regs.Read(R0))
	}
}

func TestLdmPcInListRetiresBranch(t *testing.T) {
	bus := newFakeBlockBus()
	bus.words[0x6000] = 0x8001 // target with Thumb bit set
	c := New(bus)
	c.Regs.Write(R0, 0x6000)

	op := buildBlockOp(false, true, false, false, true, R0, 1<<15)
	res := execBlockXfer(c, op)
	if res.Tag != RetireBranch {
		t.Fatalf("Tag = %v, want RetireBranch", res.Tag)
	}
	if c.Regs.Cpsr().Thumb() != true {
		t.Error("loading an odd address into PC must set Thumb state")
	}
	if c.Regs.ReadPCFetch() != 0x8000 {
		t.Errorf("fetch PC = %#x, want 0x8000 (bit0 masked)", c.Regs.ReadPCFetch())
	}
}

func TestBlockXferEmptyListIsFatal(t *testing.T) {
	bus := newFakeBlockBus()
	c := New(bus)
	op := buildBlockOp(false, true, false, false, false, R0, 0)
	res := execBlockXfer(c, op)
	if res.Tag != FatalErr {
		t.Errorf("Tag = %v, want FatalErr for an empty register list", res.Tag)
	}
}

func TestStmUserBankWritesUsrRegsFromOtherMode(t *testing.T) {
	bus := newFakeBlockBus()
	c := New(bus)
	c.Regs.Write(R0, 0x7000)

	// Give the User bank's sp a distinct value, then switch to Svc and give
	// Svc's own sp a different one: sp is banked per mode (unlike r0-r7).
	toUsr := c.Regs.Cpsr()
	toUsr.SetMode(ModeUsr)
	c.Regs.WriteCpsr(toUsr)
	c.Regs.Write(Sp, 0x55)

	toSvc := c.Regs.Cpsr()
	toSvc.SetMode(ModeSvc)
	c.Regs.WriteCpsr(toSvc)
	c.Regs.Write(Sp, 0xaa)

	op := buildBlockOp(false, true, true, false, false, R0, 1<<13)
	execBlockXfer(c, op)
	if bus.words[0x7000] != 0x55 {
		t.Errorf("user-bank STM wrote %#x, want the User-bank sp value 0x55", bus.words[0x7000])
	}
}

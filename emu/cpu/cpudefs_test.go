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

func TestNewRegFileResetState(t *testing.T) {
	r := NewRegFile()
	if r.Cpsr().Mode() != ModeSvc {
		t.Fatalf("reset mode = %v, want Svc", r.Cpsr().Mode())
	}
	if r.Cpsr().Thumb() {
		t.Error("reset state should be ARM, not Thumb")
	}
	if !r.Cpsr().FiqDis() || !r.Cpsr().IrqDis() {
		t.Error("reset state should have both FIQ and IRQ disabled")
	}
}

func TestSwapBankPreservesPerModeSpLr(t *testing.T) {
	r := NewRegFile()
	r.Write(Sp, 0x1000)
	r.Write(Lr, 0x2000)

	r.SwapBank(ModeSvc, ModeIrq)
	r.Write(Sp, 0x3000)
	r.Write(Lr, 0x4000)

	r.SwapBank(ModeIrq, ModeSvc)
	if r.Read(Sp) != 0x1000 || r.Read(Lr) != 0x2000 {
		t.Errorf("Svc bank got sp=%#x lr=%#x, want sp=0x1000 lr=0x2000", r.Read(Sp), r.Read(Lr))
	}

	r.SwapBank(ModeSvc, ModeIrq)
	if r.Read(Sp) != 0x3000 || r.Read(Lr) != 0x4000 {
		t.Errorf("Irq bank got sp=%#x lr=%#x, want sp=0x3000 lr=0x4000", r.Read(Sp), r.Read(Lr))
	}
}

func TestSwapBankSameSlotIsNoop(t *testing.T) {
	r := NewRegFile()
	r.Write(Sp, 0xaaaa)
	r.SwapBank(ModeUsr, ModeSys)
	if r.Read(Sp) != 0xaaaa {
		t.Errorf("Usr/Sys share a bank, sp should be unchanged, got %#x", r.Read(Sp))
	}
}

func TestSwapBankFiqPreservesR8R12(t *testing.T) {
	r := NewRegFile()
	for i := R8; i <= R12; i++ {
		r.Write(i, uint32(i)*0x100)
	}
	r.SwapBank(ModeSvc, ModeFiq)
	for i := R8; i <= R12; i++ {
		r.Write(i, uint32(i)*0x100+0xf000)
	}
	r.SwapBank(ModeFiq, ModeSvc)
	for i := R8; i <= R12; i++ {
		want := uint32(i) * 0x100
		if r.Read(i) != want {
			t.Errorf("r%d after returning from FIQ = %#x, want %#x", i, r.Read(i), want)
		}
	}
	r.SwapBank(ModeSvc, ModeFiq)
	for i := R8; i <= R12; i++ {
		want := uint32(i)*0x100 + 0xf000
		if r.Read(i) != want {
			t.Errorf("r%d in FIQ bank = %#x, want %#x", i, r.Read(i), want)
		}
	}
}

func TestWriteCpsrSwapsBankOnModeChange(t *testing.T) {
	r := NewRegFile()
	r.Write(Sp, 0x1111)
	v := r.Cpsr()
	v.SetMode(ModeIrq)
	r.WriteCpsr(v)
	r.Write(Sp, 0x2222)

	back := r.Cpsr()
	back.SetMode(ModeSvc)
	r.WriteCpsr(back)
	if r.Read(Sp) != 0x1111 {
		t.Errorf("sp after returning to Svc = %#x, want 0x1111", r.Read(Sp))
	}
}

func TestSpsrReadWriteRoundTrip(t *testing.T) {
	r := NewRegFile()
	var want Psr
	want.SetNZCV(true, false, true, false)
	want.SetMode(ModeUsr)
	r.SpsrWrite(ModeAbt, want)
	if got := r.SpsrRead(ModeAbt); got != want {
		t.Errorf("SpsrRead(Abt) = %#x, want %#x", uint32(got), uint32(want))
	}
}

func TestCondPassEQNE(t *testing.T) {
	r := NewRegFile()
	v := r.Cpsr()
	v.SetNZCV(false, true, false, false) // Z set
	r.WriteCpsr(v)

	if !r.CondPass(0x0<<28) { // EQ
		t.Error("EQ should pass when Z is set")
	}
	if r.CondPass(0x1 << 28) { // NE
		t.Error("NE should fail when Z is set")
	}
}

func TestCondPassGELTGTLE(t *testing.T) {
	r := NewRegFile()
	v := r.Cpsr()
	v.SetNZCV(true, false, false, true) // N=1, V=1, N==V -> GE true
	r.WriteCpsr(v)

	if !r.CondPass(0xa << 28) { // GE
		t.Error("GE should pass when N==V")
	}
	if r.CondPass(0xb << 28) { // LT
		t.Error("LT should fail when N==V")
	}
	if !r.CondPass(0xc << 28) { // GT
		t.Error("GT should pass when Z is clear and N==V")
	}
	if r.CondPass(0xd << 28) { // LE
		t.Error("LE should fail when Z is clear and N==V")
	}
}

func TestCondPassAlwaysTrue(t *testing.T) {
	r := NewRegFile()
	if !r.CondPass(0xe << 28) {
		t.Error("AL (0xe) must always pass")
	}
	if !r.CondPass(0xf << 28) {
		t.Error("0xf must be treated as always-pass")
	}
}

func TestModeIsPrivileged(t *testing.T) {
	if ModeUsr.IsPrivileged() {
		t.Error("User mode must not be privileged")
	}
	for _, m := range []Mode{ModeFiq, ModeIrq, ModeSvc, ModeAbt, ModeUnd, ModeSys} {
		if !m.IsPrivileged() {
			t.Errorf("%v must be privileged", m)
		}
	}
}

func TestReadWritePCUsesExecOffset(t *testing.T) {
	r := NewRegFile()
	r.WritePCFetch(0x1000)
	// ARM mode: execute-PC is fetch-PC + 8.
	if got := r.ReadPCExec(); got != 0x1008 {
		t.Errorf("ReadPCExec() = %#x, want 0x1008", got)
	}
	if got := r.Read(Pc); got != 0x1008 {
		t.Errorf("Read(Pc) = %#x, want 0x1008", got)
	}
}

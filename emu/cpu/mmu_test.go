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

import (
	"errors"
	"testing"
)

type fakeMmuBus struct {
	words map[uint32]uint32
}

func newFakeMmuBus() *fakeMmuBus { return &fakeMmuBus{words: map[uint32]uint32{}} }

func (b *fakeMmuBus) ReadWord(addr uint32) uint32        { return b.words[addr] }
func (b *fakeMmuBus) WriteWord(addr uint32, v uint32)    { b.words[addr] = v }
func (b *fakeMmuBus) ReadHalf(addr uint32) uint16        { panic("unused in mmu tests") }
func (b *fakeMmuBus) WriteHalf(addr uint32, v uint16)    { panic("unused in mmu tests") }
func (b *fakeMmuBus) ReadByte(addr uint32) uint8         { panic("unused in mmu tests") }
func (b *fakeMmuBus) WriteByte(addr uint32, v uint8)     { panic("unused in mmu tests") }

const mmuTestTtbr0 = 0x4000

func newMmuTestCpu() (*Cpu, *fakeMmuBus) {
	bus := newFakeMmuBus()
	c := New(bus)
	c.P15.Ctrl = ControlReg(0x1) // MMU enabled, nothing else
	c.P15.Ttbr0 = mmuTestTtbr0
	return c, bus
}

func setSection(bus *fakeMmuBus, l1Index uint32, base uint32, domain uint32, ap uint32) {
	addr := mmuTestTtbr0 | (l1Index << 2)
	d := (base & 0xfff0_0000) | (domain&0xf)<<5 | (ap&0b11)<<10 | uint32(l1Section)
	bus.WriteWord(addr, d)
}

func setUsrMode(r *RegFile) {
	v := r.Cpsr()
	v.SetMode(ModeUsr)
	r.WriteCpsr(v)
}

func TestTranslateIdentityWhenMMUDisabled(t *testing.T) {
	c, _ := newMmuTestCpu()
	c.P15.Ctrl = 0 // MMU disabled
	got, err := c.Translate(0x12345678, AccessRead)
	if err != nil {
		t.Fatalf("Translate: %v", err)
	}
	if got != 0x12345678 {
		t.Errorf("got %#x, want identity", got)
	}
}

func TestTranslateSectionManagerDomainBypassesPermission(t *testing.T) {
	c, bus := newMmuTestCpu()
	c.P15.Dacr = DACR(uint32(DomainManager) << (2 * 3))
	setSection(bus, 1, 0x0020_0000, 3, 0b00) // ap=00 would normally deny
	got, err := c.Translate(0x0010_0000, AccessWrite)
	if err != nil {
		t.Fatalf("Translate: %v", err)
	}
	if got != 0x0020_0000 {
		t.Errorf("got %#x, want 0x00200000", got)
	}
}

func TestTranslateSectionClientDomainDeniesNoAccess(t *testing.T) {
	c, bus := newMmuTestCpu()
	c.P15.Dacr = DACR(uint32(DomainClient) << (2 * 0))
	setSection(bus, 1, 0x0020_0000, 0, 0b00)
	setUsrMode(c.Regs)
	_, err := c.Translate(0x0010_0000, AccessRead)
	var abort *AbortError
	if err == nil {
		t.Fatal("expected an AbortError for AP=00 client-domain access")
	}
	if ok := errors.As(err, &abort); !ok {
		t.Fatalf("expected *AbortError, got %T", err)
	}
	if abort.Kind != FaultData {
		t.Errorf("Kind = %v, want FaultData", abort.Kind)
	}
}

func TestTranslateSectionClientDomainAllowsFullAccess(t *testing.T) {
	c, bus := newMmuTestCpu()
	c.P15.Dacr = DACR(uint32(DomainClient) << (2 * 0))
	setSection(bus, 2, 0x0030_0000, 0, 0b11)
	got, err := c.Translate(0x0020_1000, AccessWrite)
	if err != nil {
		t.Fatalf("Translate: %v", err)
	}
	if got != 0x0030_1000 {
		t.Errorf("got %#x, want 0x00301000", got)
	}
}

func TestTranslateCoarseSmallPageRoundTrip(t *testing.T) {
	c, bus := newMmuTestCpu()
	c.P15.Dacr = DACR(uint32(DomainClient) << (2 * 1))

	l1Addr := uint32(mmuTestTtbr0 | (3 << 2))
	coarseBase := uint32(0x5000)
	l1Desc := (coarseBase & 0xffff_fc00) | (1&0xf)<<5 | uint32(l1Coarse)
	bus.WriteWord(l1Addr, l1Desc)

	vaddr := uint32(0x0030_2000)
	l2Index := (vaddr >> 12) & 0xff
	l2Addr := coarseBase | (l2Index << 2)
	pageBase := uint32(0x0060_0000)
	l2Desc := (pageBase & 0xffff_f000) | (0b11 << 4) | uint32(l2Small)
	bus.WriteWord(l2Addr, l2Desc)

	got, err := c.Translate(vaddr, AccessRead)
	if err != nil {
		t.Fatalf("Translate: %v", err)
	}
	if got != pageBase {
		t.Errorf("got %#x, want %#x", got, pageBase)
	}
}

func TestTranslateUnimplementedL1VariantPanics(t *testing.T) {
	c, bus := newMmuTestCpu()
	addr := uint32(mmuTestTtbr0 | (5 << 2))
	bus.WriteWord(addr, uint32(l1Fine))

	defer func() {
		if r := recover(); r == nil {
			t.Error("expected a panic for an unimplemented L1 descriptor kind")
		} else if _, ok := r.(*FatalGap); !ok {
			t.Errorf("recovered %T, want *FatalGap", r)
		}
	}()
	c.Translate(0x0050_0000, AccessRead)
}

func TestResolveAPAllCases(t *testing.T) {
	priv := permCtx{domain: DomainClient, isPriv: true}
	unpriv := permCtx{domain: DomainClient, isPriv: false}

	if got := resolveAP(unpriv, 0b00); got != apNA {
		t.Errorf("ap=00 unpriv no sys/romprot = %v, want NA", got)
	}
	sysprotCtx := permCtx{isPriv: true, sysprot: true}
	if got := resolveAP(sysprotCtx, 0b00); got != apRO {
		t.Errorf("ap=00 sysprot+priv = %v, want RO", got)
	}
	romprotCtx := permCtx{romprot: true}
	if got := resolveAP(romprotCtx, 0b00); got != apRO {
		t.Errorf("ap=00 romprot = %v, want RO", got)
	}
	if got := resolveAP(priv, 0b01); got != apRW {
		t.Errorf("ap=01 priv = %v, want RW", got)
	}
	if got := resolveAP(unpriv, 0b01); got != apNA {
		t.Errorf("ap=01 unpriv = %v, want NA", got)
	}
	if got := resolveAP(priv, 0b10); got != apRW {
		t.Errorf("ap=10 priv = %v, want RW", got)
	}
	if got := resolveAP(unpriv, 0b10); got != apRO {
		t.Errorf("ap=10 unpriv = %v, want RO", got)
	}
	if got := resolveAP(unpriv, 0b11); got != apRW {
		t.Errorf("ap=11 = %v, want RW always", got)
	}
}

func TestValidateDomainNoAccessAlwaysDenies(t *testing.T) {
	ctx := permCtx{domain: DomainNoAccess}
	if validate(ctx, AccessRead, 0b11) {
		t.Error("DomainNoAccess must deny regardless of AP")
	}
}

func TestValidateDebugAccessAlwaysAllowed(t *testing.T) {
	ctx := permCtx{domain: DomainNoAccess}
	if !validate(ctx, AccessDebug, 0b00) {
		t.Error("AccessDebug must bypass domain/AP checks")
	}
}

/*
 Memory-management unit: two-level page walk and permission resolution

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

// Access names the kind of memory request being translated.
type Access uint8

const (
	AccessRead Access = iota
	AccessWrite
	AccessDebug
)

// VirtAddr is a virtual address with field-extraction helpers mirroring the
// MMU's virtual-address layout.
type VirtAddr uint32

func (v VirtAddr) l1Index() uint32 { return uint32(v) >> 20 }
func (v VirtAddr) sectionOffset() uint32 { return uint32(v) & 0x000f_ffff }
func (v VirtAddr) l2IndexCoarse() uint32 { return (uint32(v) >> 12) & 0xff }
func (v VirtAddr) smallPageOffset() uint32 { return uint32(v) & 0x0000_0fff }

// l1Kind is the two-bit discriminator of a first-level descriptor.
type l1Kind uint32

const (
	l1Fault l1Kind = iota
	l1Coarse
	l1Section
	l1Fine
)

func decodeL1(x uint32) l1Kind { return l1Kind(x & 0b11) }

// l2Kind is the two-bit discriminator of a second-level descriptor.
type l2Kind uint32

const (
	l2Fault l2Kind = iota
	l2Large
	l2Small
	l2Tiny
)

func decodeL2(x uint32) l2Kind { return l2Kind(x & 0b11) }

// FaultKind distinguishes a data abort from a prefetch (instruction) abort.
type FaultKind uint8

const (
	FaultData FaultKind = iota
	FaultPrefetch
)

// AbortError signals a failed translation: a permission fault the CPU must
// turn into a Dabt/Pabt exception, not a panic.
// Permission failures are guest faults, unlike original_source's prototype
// which panics on the same condition.
type AbortError struct {
	Kind FaultKind
	VAddr uint32
}

func (e *AbortError) Error() string {
	return "mmu: translation fault"
}

// permCtx carries the inputs to the AP/domain permission table, mirroring
// original_source's PermissionContext.
type permCtx struct {
	domain DomainMode
	isPriv bool
	sysprot bool
	romprot bool
}

// resolveAP maps (ap, sysprot, romprot, priv) to one of NA/RO/RW.
type apPerm uint8

const (
	apNA apPerm = iota
	apRO
	apRW
)

func resolveAP(ctx permCtx, ap uint32) apPerm {
	switch ap {
	case 0b00:
		switch {
		case ctx.sysprot && ctx.isPriv:
			return apRO
		case ctx.sysprot:
			return apNA
		case ctx.romprot:
			return apRO
		default:
			return apNA
		}
	case 0b01:
		if ctx.isPriv {
			return apRW
		}
		return apNA
	case 0b10:
		if ctx.isPriv {
			return apRW
		}
		return apRO
	case 0b11:
		return apRW
	default:
		return apNA
	}
}

// validate reports whether ctx/ap permits the requested access kind.
func validate(ctx permCtx, kind Access, ap uint32) bool {
	if kind == AccessDebug {
		return true
	}
	switch ctx.domain {
	case DomainManager:
		return true
	case DomainNoAccess:
		return false
	case DomainClient:
		switch resolveAP(ctx, ap) {
		case apNA:
			return false
		case apRO:
			return kind != AccessWrite
		default:
			return true
		}
	default:
		return false
	}
}

// sectionDescriptor is an L1 descriptor mapping a 1 MiB section.
type sectionDescriptor uint32

func (d sectionDescriptor) baseAddr() uint32 { return uint32(d) & 0xfff0_0000 }
func (d sectionDescriptor) ap() uint32 { return (uint32(d) >> 10) & 0b11 }
func (d sectionDescriptor) domain() uint32 { return (uint32(d) >> 5) & 0xf }

// coarseDescriptor is an L1 descriptor pointing at a second-level table.
type coarseDescriptor uint32

func (d coarseDescriptor) baseAddr() uint32 { return uint32(d) & 0xffff_fc00 }
func (d coarseDescriptor) domain() uint32 { return (uint32(d) >> 5) & 0xf }

// smallPageDescriptor is an L2 descriptor mapping a 4 KiB page, with four
// independently-selectable 2-bit AP sub-fields.
type smallPageDescriptor uint32

func (d smallPageDescriptor) baseAddr() uint32 { return uint32(d) & 0xffff_f000 }

// ap returns the sub-page AP field selected by bits 11..10 of the faulting
// virtual address, per original_source's SmallPageDescriptor::get_ap.
func (d smallPageDescriptor) ap(vaddr VirtAddr) uint32 {
	shift := (uint32(vaddr) >> 9) & 0b0110
	return (uint32(d) >> 4 >> shift) & 0b11
}

// l1Fetch reads the first-level descriptor for vaddr from ttbr0's table.
func (c *Cpu) l1Fetch(vaddr VirtAddr) (l1Kind, uint32) {
	addr := (c.P15.Ttbr0 & 0xffff_c000) | (vaddr.l1Index() << 2)
	val := c.Bus.ReadWord(addr)
	return decodeL1(val), val
}

func (c *Cpu) l2Fetch(addr uint32) (l2Kind, uint32) {
	val := c.Bus.ReadWord(addr)
	return decodeL2(val), val
}

func (c *Cpu) permContext(domainIdx uint32) permCtx {
	return permCtx{
		domain: c.P15.Dacr.Domain(domainIdx),
		isPriv: c.Regs.Cpsr().Mode().IsPrivileged(),
		sysprot: c.P15.Ctrl.SysProtEnabled(),
		romprot: c.P15.Ctrl.RomProtEnabled(),
	}
}

func faultKindFor(kind Access) FaultKind {
	if kind == AccessWrite {
		return FaultData
	}
	return FaultData
}

// Translate performs the two-level page walk. If the MMU is disabled it
// is the identity function. A permission failure is reported as an
// *AbortError so the caller can raise the matching architectural exception;
// any L1 variant other than section/coarse, and any L2 variant other than
// small page, is an implementation-gap panic.
func (c *Cpu) Translate(vaddr uint32, kind Access) (uint32, error) {
	if !c.P15.Ctrl.MMUEnabled() {
		return vaddr, nil
	}
	va := VirtAddr(vaddr)
	l1k, l1v := c.l1Fetch(va)
	switch l1k {
	case l1Section:
		d := sectionDescriptor(l1v)
		ctx := c.permContext(d.domain())
		if !validate(ctx, kind, d.ap()) {
			return 0, &AbortError{Kind: faultKindFor(kind), VAddr: vaddr}
		}
		return d.baseAddr() | va.sectionOffset(), nil

	case l1Coarse:
		d := coarseDescriptor(l1v)
		l2addr := d.baseAddr() | (va.l2IndexCoarse() << 2)
		l2k, l2v := c.l2Fetch(l2addr)
		if l2k != l2Small {
			panic(&FatalGap{Reason: "unimplemented L2 descriptor variant", Detail: int(l2k)})
		}
		sp := smallPageDescriptor(l2v)
		ctx := c.permContext(d.domain())
		if !validate(ctx, kind, sp.ap(va)) {
			return 0, &AbortError{Kind: faultKindFor(kind), VAddr: vaddr}
		}
		return sp.baseAddr() | va.smallPageOffset(), nil

	default:
		panic(&FatalGap{Reason: "unimplemented L1 descriptor variant", Detail: int(l1k)})
	}
}

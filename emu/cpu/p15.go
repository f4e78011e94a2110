/*
 System-control coprocessor (p15) state and register access

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

import "fmt"

// ControlReg is the p15 c1 system control register.
type ControlReg uint32

func (c ControlReg) MMUEnabled() bool { return c&0x0000_0001 != 0 }
func (c ControlReg) AFaultEnabled() bool { return c&0x0000_0002 != 0 }
func (c ControlReg) DCacheEnabled() bool { return c&0x0000_0004 != 0 }
func (c ControlReg) WBufferEnabled() bool { return c&0x0000_0008 != 0 }
func (c ControlReg) BigEndian() bool { return c&0x0000_0080 != 0 }
func (c ControlReg) SysProtEnabled() bool { return c&0x0000_0100 != 0 }
func (c ControlReg) RomProtEnabled() bool { return c&0x0000_0200 != 0 }
func (c ControlReg) ICacheEnabled() bool { return c&0x0000_1000 != 0 }
func (c ControlReg) HiVecEnabled() bool { return c&0x0000_2000 != 0 }
func (c ControlReg) ThumbDisabled() bool { return c&0x0000_8000 != 0 }

// DomainMode is the two-bit access mode of a DACR domain field.
type DomainMode uint32

const (
	DomainNoAccess DomainMode = 0b00
	DomainClient DomainMode = 0b01
	DomainReserved DomainMode = 0b10
	DomainManager DomainMode = 0b11
)

// DACR is the p15 c3 domain access control register: 16 two-bit fields.
type DACR uint32

// Domain returns the access mode of domain idx (0..15).
func (d DACR) Domain(idx uint32) DomainMode {
	return DomainMode((uint32(d) >> (idx * 2)) & 0b11)
}

// SystemControl is the container for p15 (CRn, CRm, opc2)-addressed state:
// control register, TTBR0, DACR, fault status/address. Cache and TLB
// maintenance writes are accepted and discarded. Grounded on coproc.rs.
type SystemControl struct {
	Ctrl ControlReg
	Ttbr0 uint32
	Dacr DACR
	Dfsr uint32
	Ifsr uint32
	Dfar uint32
}

// NewSystemControl returns p15 state reset to all-zero (MMU disabled).
func NewSystemControl() *SystemControl {
	return &SystemControl{}
}

// p15 register numbers (CRn), per coproc.rs's SystemControlReg.
const (
	crControl = 1
	crPageControl = 2
	crAccessCtrl = 3
	crFaultStatus = 5
	crFaultAddr = 6
	crCacheControl = 7
	crTlbControl = 8
	crCacheLockdn = 9
	crTlbLockdn = 10
)

// ErrBadCoprocReg is a fatal implementation-gap signal: the guest addressed
// an undefined (CRn, CRm, opc2) triple. This is fatal, not a guest fault.
type ErrBadCoprocReg struct {
	Op string
	CRn, CRm, Opc2 uint32
}

func (e *ErrBadCoprocReg) Error() string {
	return fmt.Sprintf("p15: unimplemented %s CRn=%d CRm=%d opc2=%d", e.Op, e.CRn, e.CRm, e.Opc2)
}

// Read returns the value of register (crn, crm, opc2). Panics (fatal) on an
// undefined triple.
func (s *SystemControl) Read(crn, crm, opc2 uint32) uint32 {
	switch crn {
	case crControl:
		if crm == 0 && opc2 == 0 {
			return uint32(s.Ctrl)
		}
	case crPageControl:
		if crm == 0 && opc2 == 0 {
			return s.Ttbr0
		}
	case crAccessCtrl:
		if crm == 0 && opc2 == 0 {
			return uint32(s.Dacr)
		}
	case crFaultStatus:
		switch opc2 {
		case 0:
			return s.Dfsr
		case 1:
			return s.Ifsr
		}
	case crFaultAddr:
		if crm == 0 && opc2 == 0 {
			return s.Dfar
		}
	}
	panic(&ErrBadCoprocReg{Op: "read", CRn: crn, CRm: crm, Opc2: opc2})
}

// Write stores val into register (crn, crm, opc2). Cache/TLB maintenance
// operations (crCacheControl, crTlbControl) are accepted silently.
// Panics (fatal) on an undefined triple.
func (s *SystemControl) Write(val, crn, crm, opc2 uint32) {
	switch crn {
	case crControl:
		if crm == 0 && opc2 == 0 {
			s.Ctrl = ControlReg(val)
			return
		}
	case crPageControl:
		if crm == 0 && opc2 == 0 {
			s.Ttbr0 = val
			return
		}
	case crAccessCtrl:
		if crm == 0 && opc2 == 0 {
			s.Dacr = DACR(val)
			return
		}
	case crFaultStatus:
		switch opc2 {
		case 0:
			s.Dfsr = val
			return
		case 1:
			s.Ifsr = val
			return
		}
	case crFaultAddr:
		if crm == 0 && opc2 == 0 {
			s.Dfar = val
			return
		}
	case crCacheControl:
		switch {
		case crm == 5 && opc2 == 0: // invalidate entire icache
			return
		case crm == 6 && opc2 == 0: // invalidate entire dcache
			return
		case crm == 6 && opc2 == 1: // invalidate dcache line
			return
		case crm == 10 && opc2 == 1: // clean dcache line
			return
		case crm == 10 && opc2 == 4: // drain write buffer
			return
		}
	case crTlbControl:
		if crm == 7 && opc2 == 0 { // invalidate entire TLB
			return
		}
	}
	panic(&ErrBadCoprocReg{Op: "write", CRn: crn, CRm: crm, Opc2: opc2})
}

/*
 Exception entry and return

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
	"fmt"
	"log/slog"
)

// ExceptionKind enumerates the six architectural exceptions this core can
// take. Undef carries the offending opcode, used only for logging.
type ExceptionKind struct {
	sub exceptionSub
	Opcode uint32 // valid only when sub == excUndef
}

type exceptionSub uint8

const (
	excUndef exceptionSub = iota
	excSwi
	excPabt
	excDabt
	excIrq
	excFiq
)

func ExcUndefined(opcode uint32) ExceptionKind { return ExceptionKind{sub: excUndef, Opcode: opcode} }
func ExcSwi() ExceptionKind { return ExceptionKind{sub: excSwi} }
func ExcPabt() ExceptionKind { return ExceptionKind{sub: excPabt} }
func ExcDabt() ExceptionKind { return ExceptionKind{sub: excDabt} }
func ExcIrq() ExceptionKind { return ExceptionKind{sub: excIrq} }
func ExcFiq() ExceptionKind { return ExceptionKind{sub: excFiq} }

func (e ExceptionKind) String() string {
	switch e.sub {
	case excUndef:
		return fmt.Sprintf("Undefined(%08x)", e.Opcode)
	case excSwi:
		return "Swi"
	case excPabt:
		return "Pabt"
	case excDabt:
		return "Dabt"
	case excIrq:
		return "Irq"
	case excFiq:
		return "Fiq"
	default:
		return "???"
	}
}

// vector returns the exception's target mode and vector address.
func (e ExceptionKind) vector() (Mode, uint32) {
	switch e.sub {
	case excUndef:
		return ModeUnd, 0xffff_0004
	case excSwi:
		return ModeSvc, 0xffff_0008
	case excPabt:
		return ModeAbt, 0xffff_000c
	case excDabt:
		return ModeAbt, 0xffff_0010
	case excIrq:
		return ModeIrq, 0xffff_0018
	case excFiq:
		return ModeFiq, 0xffff_001c
	default:
		panic("cpu: unreachable exception kind")
	}
}

// pcOffset returns the offset added to the fetch-PC to form the saved
// return address, which differs for Dabt and by instruction set.
func (e ExceptionKind) pcOffset(thumb bool) uint32 {
	if thumb {
		switch e.sub {
		case excSwi, excUndef:
			return 2
		case excDabt:
			return 8
		default:
			return 4
		}
	}
	switch e.sub {
	case excDabt:
		return 8
	default:
		return 4
	}
}

// describeUndef resolves a syscall index from an undefined opcode purely
// for observability, mirroring original_source's dbg::ios::resolve_syscall.
// It never affects CPU state.
func describeUndef(opcode uint32) string {
	syscall := (opcode >> 5) & 0x7_ffff
	return fmt.Sprintf("syscall=%d opcode=%08x", syscall, opcode)
}

// GenerateException transitions the CPU into the given exception's target
// mode and vector. Panics if an exception is already being serviced:
// re-entrancy here is a fatal implementer bug, not a guest fault.
func (c *Cpu) GenerateException(e ExceptionKind) {
	currentPC := c.Regs.ReadPCFetch()
	oldCpsr := c.Regs.Cpsr()
	targetMode, targetPC := e.vector()
	returnPC := currentPC + e.pcOffset(oldCpsr.Thumb())

	if e.sub == excUndef {
		slog.Debug("undefined instruction", "pc", fmt.Sprintf("%08x", currentPC), "detail", describeUndef(e.Opcode))
	}

	newCpsr := oldCpsr
	newCpsr.SetMode(targetMode)
	newCpsr.SetThumb(false)
	newCpsr.SetIrqDis(true)
	if e.sub == excFiq {
		newCpsr.SetFiqDis(true)
	}

	if c.currentException != nil {
		panic(&FatalGap{
			Reason: fmt.Sprintf("pc=%08x CPU tried to take %s exception inside %s exception", currentPC, e, *c.currentException),
		})
	}

	c.Regs.WriteCpsr(newCpsr)
	c.Regs.SpsrWrite(targetMode, oldCpsr)
	c.Regs.Write(Lr, returnPC)
	c.Regs.WritePCFetch(targetPC)

	kind := e
	c.currentException = &kind
}

// ExceptionReturn restores CPSR from the current mode's SPSR (triggering a
// bank swap) and branches to dest, taking the T-flag from its low bit.
func (c *Cpu) ExceptionReturn(dest uint32) {
	currentMode := c.Regs.Cpsr().Mode()
	spsr := c.Regs.SpsrRead(currentMode)
	c.Regs.WriteCpsr(spsr)
	c.Regs.WritePCFetch(dest &^ 1)
	c.Regs.cpsr.SetThumb(dest&1 != 0)
	c.currentException = nil
}

/*
 Top-level CPU state and the bus contract it depends on

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

// Package cpu implements the ARMv5TE interpreter core: register file and
// PSR, the p15 system-control coprocessor, the MMU, the ARM and Thumb
// decoders and dispatch tables, instruction execute handlers, exception
// entry/return, and the single interpreter step.
package cpu

import "fmt"

// Bus is the contract the CPU core needs from the surrounding system bus.
// Word/half/byte reads and writes operate on physical addresses only; the
// CPU always goes through Translate first for guest-virtual addresses.
type Bus interface {
	ReadWord(addr uint32) uint32
	ReadHalf(addr uint32) uint16
	ReadByte(addr uint32) uint8
	WriteWord(addr uint32, v uint32)
	WriteHalf(addr uint32, v uint16)
	WriteByte(addr uint32, v uint8)
}

// FatalGap signals an implementation gap (unimplemented descriptor variant,
// addressing mode, etc): these halt the emulator rather than
// being recoverable guest faults.
type FatalGap struct {
	Reason string
	Detail int
}

func (e *FatalGap) Error() string {
	return fmt.Sprintf("%s (detail=%d)", e.Reason, e.Detail)
}

// Cpu holds the complete ARMv5TE core state: register file, p15, the bus it
// talks to, pending exception tracking, and the Thumb BL/BLX scratch slot.
type Cpu struct {
	Regs *RegFile
	P15 *SystemControl
	Bus Bus

	// currentException is non-nil while an exception is being serviced;
	// re-entering generate_exception while set is a fatal implementer bug.
	currentException *ExceptionKind

	// blScratch holds the sign-extended high half of a Thumb BL/BLX pair
	// between the prefix and suffix instructions.
	blScratch uint32

	// IrqInput is the level-sensitive IRQ line, sampled once at step start.
	IrqInput bool

	// Boot tracks the boot-progress latch, advanced at the
	// end of each step as the fetch-PC crosses known milestones.
	Boot BootStage
}

// New returns a Cpu wired to bus, with registers and p15 reset.
func New(bus Bus) *Cpu {
	return &Cpu{
		Regs: NewRegFile(),
		P15: NewSystemControl(),
		Bus: bus,
		Boot: Boot0,
	}
}

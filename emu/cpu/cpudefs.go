/*
 ARMv5TE register file, PSR and mode-bank definitions

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

// Reg names the sixteen general registers; Reg15 is the program counter.
type Reg uint8

const (
	R0 Reg = iota
	R1
	R2
	R3
	R4
	R5
	R6
	R7
	R8
	R9
	R10
	R11
	R12
	Sp
	Lr
	Pc
)

// Mode is one of the seven ARMv5TE processor modes, encoded in CPSR[4:0].
type Mode uint32

const (
	ModeUsr Mode = 0b10000
	ModeFiq Mode = 0b10001
	ModeIrq Mode = 0b10010
	ModeSvc Mode = 0b10011
	ModeAbt Mode = 0b10111
	ModeUnd Mode = 0b11011
	ModeSys Mode = 0b11111
)

func (m Mode) String() string {
	switch m {
	case ModeUsr:
		return "Usr"
	case ModeFiq:
		return "Fiq"
	case ModeIrq:
		return "Irq"
	case ModeSvc:
		return "Svc"
	case ModeAbt:
		return "Abt"
	case ModeUnd:
		return "Und"
	case ModeSys:
		return "Sys"
	default:
		return "???"
	}
}

// IsPrivileged reports whether m is any mode other than User.
func (m Mode) IsPrivileged() bool { return m != ModeUsr }

// bankSlot names the five mode banks that hold a private SP/LR (and, for
// FIQ, private r8..r12). User and System share a bank.
type bankSlot uint8

const (
	bankUsr bankSlot = iota
	bankFiq
	bankIrq
	bankSvc
	bankAbt
	bankUnd
	numBanks
)

func slotFor(m Mode) bankSlot {
	switch m {
	case ModeUsr, ModeSys:
		return bankUsr
	case ModeFiq:
		return bankFiq
	case ModeIrq:
		return bankIrq
	case ModeSvc:
		return bankSvc
	case ModeAbt:
		return bankAbt
	case ModeUnd:
		return bankUnd
	default:
		panic("cpu: invalid mode")
	}
}

// PSR bit layout.
const (
	psrModeMask = 0x1f
	psrThumb = 1 << 5
	psrFiqDis = 1 << 6
	psrIrqDis = 1 << 7
	psrSticky = 1 << 27
	psrOverflow = 1 << 28
	psrCarry = 1 << 29
	psrZero = 1 << 30
	psrNeg = 1 << 31
)

// Psr is a 32-bit ARM program status register.
type Psr uint32

func (p Psr) Mode() Mode { return Mode(uint32(p) & psrModeMask) }
func (p Psr) Thumb() bool { return uint32(p)&psrThumb != 0 }
func (p Psr) FiqDis() bool { return uint32(p)&psrFiqDis != 0 }
func (p Psr) IrqDis() bool { return uint32(p)&psrIrqDis != 0 }
func (p Psr) Negative() bool { return uint32(p)&psrNeg != 0 }
func (p Psr) Zero() bool { return uint32(p)&psrZero != 0 }
func (p Psr) Carry() bool { return uint32(p)&psrCarry != 0 }
func (p Psr) OverflowF() bool { return uint32(p)&psrOverflow != 0 }

func (p *Psr) SetMode(m Mode) { *p = Psr(uint32(*p)&^uint32(psrModeMask) | uint32(m)) }

func (p *Psr) setBit(bit uint32, v bool) {
	if v {
		*p = Psr(uint32(*p) | bit)
	} else {
		*p = Psr(uint32(*p) &^ bit)
	}
}

func (p *Psr) SetThumb(v bool) { p.setBit(psrThumb, v) }
func (p *Psr) SetFiqDis(v bool) { p.setBit(psrFiqDis, v) }
func (p *Psr) SetIrqDis(v bool) { p.setBit(psrIrqDis, v) }
func (p *Psr) SetNZCV(n, z, c, v bool) {
	p.setBit(psrNeg, n)
	p.setBit(psrZero, z)
	p.setBit(psrCarry, c)
	p.setBit(psrOverflow, v)
}

// bank holds the mode-private registers swapped in on a mode change.
type bank struct {
	sp, lr uint32
	spsr Psr
	// fiqLo holds r8..r12 for the FIQ bank; every other bank's fiqLo is unused.
	fiqLo [5]uint32
}

// RegFile is the ARMv5TE general-purpose register file plus CPSR and the
// per-mode banks of SP/LR/SPSR (and FIQ's private r8-r12).
type RegFile struct {
	gpr [15]uint32 // r0..r14 of the *current* bank; r15 is tracked separately
	cpsr Psr
	pc uint32 // stored fetch-PC of the instruction currently being fetched
	bank [numBanks]bank
}

// NewRegFile returns a register file with CPSR set to Svc/ARM/IRQ&FIQ
// disabled, matching reset state.
func NewRegFile() *RegFile {
	r := &RegFile{}
	r.cpsr = Psr(uint32(ModeSvc) | psrFiqDis | psrIrqDis)
	return r
}

// Read returns the current value of a general register, 0..14. Reading r15
// as an ordinary operand yields the execute-PC (fetch-PC + pipeline
// offset); code that needs the fetch-PC itself (exception
// entry, branch targets) calls ReadPCFetch directly instead of Read(Pc).
func (r *RegFile) Read(reg Reg) uint32 {
	if reg == Pc {
		return r.ReadPCExec()
	}
	return r.gpr[reg]
}

// Write sets the current value of a general register, 0..14. Writing r15
// through Write behaves like a branch that keeps the current instruction
// set (callers that need interworking call WritePCFetch/WritePCExec
// directly and update CPSR.T themselves).
func (r *RegFile) Write(reg Reg, v uint32) {
	if reg == Pc {
		r.pc = v
		return
	}
	r.gpr[reg] = v
}

// ReadPCFetch returns the fetch-PC: the address of the instruction that is
// currently being fetched.
func (r *RegFile) ReadPCFetch() uint32 { return r.pc }

// pcOffset is the canonical ARM/Thumb pipeline lookahead.
func (r *RegFile) pcOffset() uint32 {
	if r.cpsr.Thumb() {
		return 4
	}
	return 8
}

// ReadPCExec returns the execute-PC: what the instruction sees reading r15.
func (r *RegFile) ReadPCExec() uint32 { return r.pc + r.pcOffset() }

// WritePCExec stores v as if it were read as the execute-PC, i.e. strips the
// pipeline offset back off before storing the fetch-PC.
func (r *RegFile) WritePCExec(v uint32) { r.pc = v - r.pcOffset() }

// WritePCFetch stores v directly as the fetch-PC.
func (r *RegFile) WritePCFetch(v uint32) { r.pc = v }

// IncrementPC advances the fetch-PC by the current instruction width.
func (r *RegFile) IncrementPC() {
	if r.cpsr.Thumb() {
		r.pc += 2
	} else {
		r.pc += 4
	}
}

// Cpsr returns the current program status register.
func (r *RegFile) Cpsr() Psr { return r.cpsr }

// SwapBank saves (sp, lr[, r8-r12]) into the `from` mode's bank and loads
// them from the `to` mode's bank. A no-op when from and to share a bank.
// r8..r12 are shared by every mode except FIQ; the User bank's fiqLo slot
// doubles as storage for that shared view while FIQ's private copy is live.
func (r *RegFile) SwapBank(from, to Mode) {
	fromSlot, toSlot := slotFor(from), slotFor(to)
	if fromSlot == toSlot {
		return
	}
	r.bank[fromSlot].sp = r.gpr[Sp]
	r.bank[fromSlot].lr = r.gpr[Lr]

	if fromSlot == bankFiq {
		copy(r.bank[bankFiq].fiqLo[:], r.gpr[R8:R12+1])
		copy(r.gpr[R8:R12+1], r.bank[bankUsr].fiqLo[:])
	} else if toSlot == bankFiq {
		copy(r.bank[bankUsr].fiqLo[:], r.gpr[R8:R12+1])
		copy(r.gpr[R8:R12+1], r.bank[bankFiq].fiqLo[:])
	}

	r.gpr[Sp] = r.bank[toSlot].sp
	r.gpr[Lr] = r.bank[toSlot].lr
}

// SpsrRead returns the SPSR of mode m. Forbidden for Usr/Sys by the caller.
func (r *RegFile) SpsrRead(m Mode) Psr {
	return r.bank[slotFor(m)].spsr
}

// SpsrWrite sets the SPSR of mode m. Forbidden for Usr/Sys by the caller.
func (r *RegFile) SpsrWrite(m Mode, v Psr) {
	r.bank[slotFor(m)].spsr = v
}

// WriteCpsr installs v as the CPSR, swapping register banks if the mode
// field changed. This is the only path by which banks change.
func (r *RegFile) WriteCpsr(v Psr) {
	oldMode := r.cpsr.Mode()
	newMode := v.Mode()
	if oldMode != newMode {
		r.SwapBank(oldMode, newMode)
	}
	r.cpsr = v
}

// condTable maps the 4-bit condition field to an evaluator over NZCV.
var condTable = [16]func(p Psr) bool{
	func(p Psr) bool { return p.Zero() }, // EQ
	func(p Psr) bool { return !p.Zero() }, // NE
	func(p Psr) bool { return p.Carry() }, // CS/HS
	func(p Psr) bool { return !p.Carry() }, // CC/LO
	func(p Psr) bool { return p.Negative() }, // MI
	func(p Psr) bool { return !p.Negative() }, // PL
	func(p Psr) bool { return p.OverflowF() }, // VS
	func(p Psr) bool { return !p.OverflowF() }, // VC
	func(p Psr) bool { return p.Carry() && !p.Zero() }, // HI
	func(p Psr) bool { return !p.Carry() || p.Zero() }, // LS
	func(p Psr) bool { return p.Negative() == p.OverflowF() }, // GE
	func(p Psr) bool { return p.Negative() != p.OverflowF() }, // LT
	func(p Psr) bool { return !p.Zero() && p.Negative() == p.OverflowF() }, // GT
	func(p Psr) bool { return p.Zero() || p.Negative() != p.OverflowF() }, // LE
	func(p Psr) bool { return true }, // AL
	func(p Psr) bool { return true }, // AL (1111, unpredictable pre-v5 NV; treated as AL)
}

// CondPass extracts bits 28..31 of opcode and evaluates against CPSR.
func (r *RegFile) CondPass(opcode uint32) bool {
	cond := (opcode >> 28) & 0xf
	return condTable[cond](r.cpsr)
}

/*
 The single interpreter step

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

// Step executes exactly one instruction (or services one pending interrupt)
// and returns what happened:
//
// 1. A pending, unmasked IRQ is serviced before the next fetch, provided
// the core is not already mid-exception.
// 2. The instruction at the fetch-PC is fetched (ARM or Thumb, by CPSR.T),
// decoded, and dispatched.
// 3. The dispatch result is applied: PC/flags updates for RetireOk/
// RetireBranch, a no-op skip for CondFailed, an architectural exception
// or the semihosting escape hatch for DispatchException, and a halt
// for FatalErr.
// 4. The new fetch-PC is checked against the boot-progress milestones.
func (c *Cpu) Step() StepRes {
	defer func() { c.advanceBoot(c.Regs.ReadPCFetch()) }()

	if c.IrqInput && !c.Regs.Cpsr().IrqDis() && c.currentException == nil {
		c.GenerateException(ExcIrq())
		return StepRes{Tag: StepException, Exception: ExcIrq()}
	}

	fetchPC := c.Regs.ReadPCFetch()

	thumb := c.Regs.Cpsr().Thumb()

	var res DispatchRes
	if thumb {
		paddr, err := c.Translate(fetchPC, AccessRead)
		if err != nil {
			if _, ok := err.(*AbortError); ok {
				c.GenerateException(ExcPabt())
				return StepRes{Tag: StepException, Exception: ExcPabt()}
			}
			panic(err)
		}
		opcode16 := c.Bus.ReadHalf(paddr)
		// Thumb instructions execute unconditionally except ThumbCondBranch,
		// which evaluates its own 4-bit condition field internally and
		// signals CondFailed the same way an ARM condition failure would.
		res = dispatchThumb(c, opcode16)
	} else {
		paddr, err := c.Translate(fetchPC, AccessRead)
		if err != nil {
			if _, ok := err.(*AbortError); ok {
				c.GenerateException(ExcPabt())
				return StepRes{Tag: StepException, Exception: ExcPabt()}
			}
			panic(err)
		}
		opcode := c.Bus.ReadWord(paddr)
		if !c.Regs.CondPass(opcode) {
			c.Regs.IncrementPC()
			return StepRes{Tag: StepOk}
		}
		res = dispatchArm(c, opcode)
	}

	switch res.Tag {
	case RetireOk:
		c.Regs.IncrementPC()
		return StepRes{Tag: StepOk}
	case RetireBranch:
		return StepRes{Tag: StepOk}
	case CondFailed:
		c.Regs.IncrementPC()
		return StepRes{Tag: StepOk}
	case DispatchException:
		if res.Exception.sub == excSwi {
			c.Regs.IncrementPC()
			return StepRes{Tag: Semihosting, Exception: res.Exception}
		}
		c.GenerateException(res.Exception)
		return StepRes{Tag: StepException, Exception: res.Exception}
	default: // FatalErr
		return StepRes{Tag: HaltEmulation}
	}
}

/*
 Dispatch-result and step-result tags

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

// DispatchTag distinguishes the five outcomes an execute handler can signal.
type DispatchTag uint8

const (
	RetireOk DispatchTag = iota
	RetireBranch
	CondFailed
	DispatchException
	FatalErr
)

// DispatchRes is what every execute handler returns: RetireOk/RetireBranch/
// CondFailed/FatalErr carry no payload; DispatchException carries the kind
// of exception to raise before the next fetch.
type DispatchRes struct {
	Tag DispatchTag
	Exception ExceptionKind
}

func retireOk() DispatchRes { return DispatchRes{Tag: RetireOk} }
func retireBranch() DispatchRes { return DispatchRes{Tag: RetireBranch} }
func condFailed() DispatchRes { return DispatchRes{Tag: CondFailed} }
func fatalErr() DispatchRes { return DispatchRes{Tag: FatalErr} }
func exceptionRes(k ExceptionKind) DispatchRes {
	return DispatchRes{Tag: DispatchException, Exception: k}
}

// HandlerFn is the signature of every ARM and Thumb execute handler.
type HandlerFn func(c *Cpu, opcode uint32) DispatchRes

// StepTag distinguishes the four outcomes of a single interpreter step.
type StepTag uint8

const (
	StepOk StepTag = iota
	HaltEmulation
	StepException
	Semihosting
)

// StepRes is the outcome of Cpu.Step.
type StepRes struct {
	Tag StepTag
	Exception ExceptionKind
}

// BootStage is the boot-progress latch, advanced as the
// fetch-PC crosses known milestones. It gates the optional hot-patch and is
// otherwise observed only for logging.
type BootStage uint8

const (
	Boot0 BootStage = iota
	Boot1
	Boot2Stub
	Boot2
	Kernel
)

func (b BootStage) String() string {
	switch b {
	case Boot0:
		return "Boot0"
	case Boot1:
		return "Boot1"
	case Boot2Stub:
		return "Boot2Stub"
	case Boot2:
		return "Boot2"
	case Kernel:
		return "Kernel"
	default:
		return "???"
	}
}

// bootMilestones maps an observed fetch-PC to the stage reached by entering
// it.
var bootMilestones = map[uint32]BootStage{
	0xfff0_0000: Boot1,
	0xfff0_0058: Boot2Stub,
	0xffff_0000: Boot2,
}

// advanceBoot updates c.Boot if fetchPC matches a known milestone and the
// milestone represents forward progress.
func (c *Cpu) advanceBoot(fetchPC uint32) {
	if stage, ok := bootMilestones[fetchPC]; ok && stage > c.Boot {
		c.Boot = stage
	}
}

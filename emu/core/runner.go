/*
 Backend loop: steps the CPU, drains the bus's deferred queue, services
 the boot-progress hot-patch and the semihosting debug channel.

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

// Package core wraps the CPU's single-instruction Step into a goroutine-
// driven run loop: a sync.WaitGroup-tracked goroutine gated by a done
// channel, started and stopped from the command layer rather than run
// inline on the caller's own goroutine.
package core

import (
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/eigenform/ironic-sub000/emu/bus"
	"github.com/eigenform/ironic-sub000/emu/cpu"
	"github.com/eigenform/ironic-sub000/emu/device"
	"github.com/eigenform/ironic-sub000/emu/disassemble"
)

// HotPatchTargets is the configurable table of kernel module entry addresses
// the optional hot-patch watches for. Empty by default, meaning the
// hot-patch never fires unless an operator configures it.
var HotPatchTargets []uint32

// hotPatchBytes is the canned "immediate thread-cancel" sequence the
// hot-patch writes over a matched module entry point: BX LR (return
// immediately) followed by one NOP (MOV R0, R0), encoded big-endian per word.
var hotPatchBytes = [8]byte{0xe1, 0x2f, 0xff, 0x1e, 0xe1, 0xa0, 0x00, 0x00}

// Runner drives the CPU against a Bus, applying the boot-progress hot-patch
// and accumulating semihosting output, bounded by a watchdog step count.
type Runner struct {
	Cpu *cpu.Cpu
	Bus *bus.Bus
	Hlwd *device.Hollywood

	// MaxSteps bounds run's iteration count; zero means unbounded. This is
	// the watchdog the backend loop owns.
	MaxSteps uint64

	// Trace, if set, logs a one-line mnemonic for every fetched
	// instruction at slog.Debug level.
	Trace bool

	wg sync.WaitGroup
	done chan struct{}
	patched map[uint32]bool

	semihostBuf []byte
}

// NewRunner returns a Runner wired to a cpu and bus, ready to Start.
func NewRunner(c *cpu.Cpu, b *bus.Bus, hlwd *device.Hollywood) *Runner {
	return &Runner{
		Cpu: c,
		Bus: b,
		Hlwd: hlwd,
		done: make(chan struct{}),
		patched: map[uint32]bool{},
	}
}

// Start runs the backend loop on its own goroutine until Stop is called,
// the watchdog bound is reached, or the CPU halts.
func (rn *Runner) Start() {
	rn.wg.Add(1)
	go func() {
		defer rn.wg.Done()
		rn.run()
	}()
}

// Stop signals the backend loop to exit and waits up to one second for it
// to do so before logging a timeout.
func (rn *Runner) Stop() {
	close(rn.done)
	finished := make(chan struct{})
	go func() {
		rn.wg.Wait()
		close(finished)
	}()
	select {
	case <-finished:
	case <-time.After(time.Second):
		slog.Warn("timed out waiting for CPU core to stop")
	}
}

func (rn *Runner) run() {
	defer func() {
		if r := recover(); r != nil {
			slog.Error("fatal implementation gap, halting emulation", "cause", r)
		}
	}()

	var n uint64
	for {
		select {
		case <-rn.done:
			slog.Info("backend loop stopped")
			return
		default:
		}
		if rn.MaxSteps != 0 && n >= rn.MaxSteps {
			slog.Warn("watchdog step bound reached, halting emulation", "steps", n)
			return
		}

		// Hot-patch check, then a bus step (drained deferred tasks, timer
		// tick) strictly before the CPU step of the same iteration, so a
		// device write on iteration k is observable to the fetch on
		// iteration k+1 but not k.
		rn.applyHotPatch()

		rn.Bus.DrainDeferred()
		if rn.Hlwd != nil {
			rn.Hlwd.Tick()
			rn.Cpu.IrqInput = rn.Hlwd.PendingIrq()
		}

		rn.trace()
		res := rn.Cpu.Step()

		switch res.Tag {
		case cpu.StepOk, cpu.StepException:
			// fall through to next iteration
		case cpu.Semihosting:
			rn.drainSemihost()
		case cpu.HaltEmulation:
			slog.Error("CPU signalled a fatal dispatch error, halting emulation")
			return
		}
		n++
	}
}

func (rn *Runner) trace() {
	if !rn.Trace {
		return
	}
	pc := rn.Cpu.Regs.ReadPCFetch()
	paddr, err := rn.Cpu.Translate(pc, cpu.AccessDebug)
	if err != nil {
		return
	}
	if rn.Cpu.Regs.Cpsr().Thumb() {
		slog.Debug(disassemble.FormatThumb(pc, rn.Bus.ReadHalf(paddr)))
	} else {
		slog.Debug(disassemble.FormatArm(pc, rn.Bus.ReadWord(paddr)))
	}
}

// applyHotPatch implements the optional boot-progress hot-patch: while in
// the kernel boot stage, overwrite eight bytes at a matched module entry
// point with the canned thread-cancel sequence, exactly once per address.
func (rn *Runner) applyHotPatch() {
	if rn.Cpu.Boot != cpu.Kernel {
		return
	}
	pc := rn.Cpu.Regs.ReadPCFetch()
	for _, target := range HotPatchTargets {
		if pc != target || rn.patched[target] {
			continue
		}
		paddr, err := rn.Cpu.Translate(target, cpu.AccessWrite)
		if err != nil {
			continue
		}
		rn.Bus.WriteWord(paddr, uint32(hotPatchBytes[0])<<24|uint32(hotPatchBytes[1])<<16|uint32(hotPatchBytes[2])<<8|uint32(hotPatchBytes[3]))
		rn.Bus.WriteWord(paddr+4, uint32(hotPatchBytes[4])<<24|uint32(hotPatchBytes[5])<<16|uint32(hotPatchBytes[6])<<8|uint32(hotPatchBytes[7]))
		rn.patched[target] = true
		slog.Info("hot-patch applied", "target", fmt.Sprintf("%#08x", target))
	}
}

// drainSemihost reads a NUL-terminated string pointed to by r1, accumulating
// it until a newline, then flushes the accumulated line to the log sink.
func (rn *Runner) drainSemihost() {
	ptr := rn.Cpu.Regs.Read(cpu.R1)
	for {
		paddr, err := rn.Cpu.Translate(ptr, cpu.AccessDebug)
		if err != nil {
			return
		}
		b := rn.Bus.ReadByte(paddr)
		ptr++
		if b == 0 {
			return
		}
		if b == '\n' {
			slog.Info("semihosting", "msg", string(rn.semihostBuf))
			rn.semihostBuf = rn.semihostBuf[:0]
			return
		}
		rn.semihostBuf = append(rn.semihostBuf, b)
	}
}

/*
 Hollywood platform block: system registers, free-running timer, IRQ latch

 Copyright 2026, ironic-sub000 contributors

 Permission is hereby granted, free of charge, to any person obtaining a copy
 of this software and associated documentation files (the "Software"), to deal
 in the Software without restriction, including without limitation the rights
 to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
 copies of the Software, and to permit persons to whom the Software is
 furnished to do so, subject to the following conditions:

 The above copyright notice and this permission notice shall be included in
 all copies or substantial portions of the Software.

 THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
 IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
 FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
 AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
 LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
 OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
 SOFTWARE.

*/

package device

import "sync"

// Hollywood-relative register offsets this stub actually implements. The
// real block is far larger (busctrl, PLL, OTP, GPIO, DI/MI/AHB/DDR compat
// shims); every other offset is a plain RegBlock register that reads back
// the last value written (zero until written), which boot code that merely
// probes-and-moves-on is satisfied by.
const (
	offTimer = 0x10
	offArmIrqFlag = 0x30
	offArmIrqMask = 0x34
)

// Hollywood is the platform system-control block: timer, reset/compat
// registers, and the ARM-side interrupt latch/mask pair. Grounded on
// original_source's dev::hlwd::Hollywood register layout.
type Hollywood struct {
	mu sync.Mutex
	block *RegBlock
}

// NewHollywood returns a Hollywood block sized to cover the offsets this
// core touches.
func NewHollywood() *Hollywood {
	return &Hollywood{block: NewRegBlock("HLWD", 0x400)}
}

func (h *Hollywood) ReadWord(offset uint32) uint32 {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.block.ReadWord(offset)
}

func (h *Hollywood) WriteWord(offset uint32, v uint32) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if offset == offArmIrqFlag {
		// Hardware semantics: writing a 1 bit clears the corresponding
		// pending-interrupt latch bit (write-1-to-clear).
		cur := h.block.ReadWord(offset)
		h.block.WriteWord(offset, cur&^v)
		return
	}
	h.block.WriteWord(offset, v)
}

// Tick advances the free-running timer by one unit, called once per
// backend loop iteration.
func (h *Hollywood) Tick() {
	h.mu.Lock()
	defer h.mu.Unlock()
	cur := h.block.ReadWord(offTimer)
	h.block.WriteWord(offTimer, cur+1)
}

// RaiseIrq sets bit in the pending-interrupt latch.
func (h *Hollywood) RaiseIrq(bit uint) {
	h.mu.Lock()
	defer h.mu.Unlock()
	cur := h.block.ReadWord(offArmIrqFlag)
	h.block.WriteWord(offArmIrqFlag, cur|(1<<bit))
}

// PendingIrq reports whether any unmasked interrupt is latched, the value
// the CPU's IrqInput line should be driven from.
func (h *Hollywood) PendingIrq() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	flag := h.block.ReadWord(offArmIrqFlag)
	mask := h.block.ReadWord(offArmIrqMask)
	return flag&mask != 0
}

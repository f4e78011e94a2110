/*
 System bus: physical address decoding and device dispatch

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

// Package bus implements the physical address space of the security
// coprocessor core: the MEM1/MEM2 DRAM apertures, boot mask ROM, the two
// SRAM banks (with their ROM-mapped/mirrored addressing quirks), and the
// memory-mapped device region, all behind a single cpu.Bus implementation.
package bus

import (
	"fmt"
	"log/slog"
	"sync"

	"github.com/eigenform/ironic-sub000/emu/device"
	"github.com/eigenform/ironic-sub000/emu/memory"
)

// Bus is the system bus: it owns the physical memories, the registered
// devices, and the mutable ROM-mapped/mirror flags that change how boot
// addresses resolve. The read/write/DMA accessors take mu's read lock, so
// they exclude AttachDevice, SetRomMapped, SetSramMirror, Defer and
// DrainDeferred (which take the write lock) but not one another.
type Bus struct {
	mu sync.RWMutex

	mem1 *memory.Backing
	mem2 *memory.Backing
	maskRom *memory.Backing
	sram0 *memory.Backing
	sram1 *memory.Backing

	devices map[string]device.MMIODevice

	romMapped bool
	sramMirror bool

	deferred []func()
}

// New returns a Bus with MEM1/MEM2/SRAM0/SRAM1 backings at their physical
// sizes and the boot mask ROM loaded from romPath (empty leaves it zeroed).
func New(romPath string) (*Bus, error) {
	mem1 := memory.New("MEM1", Mem1Size)
	mem2 := memory.New("MEM2", Mem2Size)
	sram0 := memory.New("SRAM0", SramSize)
	sram1 := memory.New("SRAM1", SramSize)

	var maskRom *memory.Backing
	var err error
	if romPath != "" {
		maskRom, err = memory.NewFromFile("MaskRom", MaskRomSize, romPath)
		if err != nil {
			return nil, err
		}
	} else {
		maskRom = memory.New("MaskRom", MaskRomSize)
	}

	return &Bus{
		mem1: mem1,
		mem2: mem2,
		maskRom: maskRom,
		sram0: sram0,
		sram1: sram1,
		devices: map[string]device.MMIODevice{},
		romMapped: true,
		sramMirror: false,
	}, nil
}

// AttachDevice registers dev under name; decodePhysAddr routes the fixed
// MMIO range it assigns to that name to dev.
func (b *Bus) AttachDevice(name string, dev device.MMIODevice) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.devices[name] = dev
}

// SetRomMapped toggles whether the boot mask ROM is visible at its low
// alias, a boot-progress-gated remapping.
func (b *Bus) SetRomMapped(v bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.romMapped = v
}

// SetSramMirror toggles whether SRAM0 is mirrored across the high alias
// region used once the boot ROM disables itself.
func (b *Bus) SetSramMirror(v bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.sramMirror = v
}

// Defer queues fn to run once, the next time DrainDeferred is called. Used
// by device handlers that need to request work back on the bus's own
// goroutine instead of recursing (e.g. a device triggering a DMA).
func (b *Bus) Defer(fn func()) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.deferred = append(b.deferred, fn)
}

// DrainDeferred runs and clears every task queued by Defer since the last
// call, once per backend loop iteration.
func (b *Bus) DrainDeferred() {
	b.mu.Lock()
	tasks := b.deferred
	b.deferred = nil
	b.mu.Unlock()
	for _, fn := range tasks {
		fn()
	}
}

func (b *Bus) fault(op string, addr uint32) {
	panic(fmt.Sprintf("bus: unmapped %s at %#08x", op, addr))
}

func (b *Bus) ReadWord(addr uint32) uint32 {
	b.mu.RLock()
	defer b.mu.RUnlock()
	h := b.decodePhysAddr(addr)
	if h == nil {
		b.fault("word read", addr)
	}
	return h.readWord(addr)
}

func (b *Bus) WriteWord(addr uint32, v uint32) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	h := b.decodePhysAddr(addr)
	if h == nil {
		b.fault("word write", addr)
	}
	h.writeWord(addr, v)
}

func (b *Bus) ReadHalf(addr uint32) uint16 {
	b.mu.RLock()
	defer b.mu.RUnlock()
	h := b.decodePhysAddr(addr)
	if h == nil {
		b.fault("half read", addr)
	}
	return h.readHalf(addr)
}

func (b *Bus) WriteHalf(addr uint32, v uint16) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	h := b.decodePhysAddr(addr)
	if h == nil {
		b.fault("half write", addr)
	}
	h.writeHalf(addr, v)
}

func (b *Bus) ReadByte(addr uint32) uint8 {
	b.mu.RLock()
	defer b.mu.RUnlock()
	h := b.decodePhysAddr(addr)
	if h == nil {
		b.fault("byte read", addr)
	}
	return h.readByte(addr)
}

func (b *Bus) WriteByte(addr uint32, v uint8) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	h := b.decodePhysAddr(addr)
	if h == nil {
		b.fault("byte write", addr)
	}
	h.writeByte(addr, v)
}

// DmaRead/DmaWrite are the bulk-access path memory-to-memory DMA devices
// use; they bypass the per-access handle resolution in favor of a single
// bounds-checked copy, avoiding one device lookup per word.
func (b *Bus) DmaRead(addr uint32, n int) []byte {
	b.mu.RLock()
	defer b.mu.RUnlock()
	backing, off := b.backingFor(addr)
	if backing == nil {
		slog.Warn("DMA read from unmapped region", "addr", fmt.Sprintf("%08x", addr))
		return make([]byte, n)
	}
	return backing.CopyOut(off, uint32(n))
}

func (b *Bus) DmaWrite(addr uint32, data []byte) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	backing, off := b.backingFor(addr)
	if backing == nil {
		slog.Warn("DMA write to unmapped region", "addr", fmt.Sprintf("%08x", addr))
		return
	}
	backing.CopyIn(off, data)
}

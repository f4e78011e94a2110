/*
 Memory-mapped device interface

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

// Package device declares the memory-mapped device contract the bus
// dispatches register accesses through, and the minimal stub devices for
// the platform blocks this core needs to satisfy boot code that probes
// them (Hollywood system registers, the shared IRQ/timer block).
package device

// MMIODevice is the contract every register-file device implements.
// Registers are word-width, mirroring original_source's MmioDevice trait
// (Width = u32); the bus synthesizes half/byte accesses via read-modify-
// write over the enclosing word.
type MMIODevice interface {
	ReadWord(offset uint32) uint32
	WriteWord(offset uint32, v uint32)
}

// RegBlock is a fixed array of word registers addressed by offset>>2,
// suitable for embedding in a concrete device's state. Devices with
// interesting side effects on specific registers embed RegBlock and
// override behavior for just those offsets.
type RegBlock struct {
	Name string
	Regs []uint32
}

// NewRegBlock returns a RegBlock sized for byteLen bytes of register space.
func NewRegBlock(name string, byteLen int) *RegBlock {
	return &RegBlock{Name: name, Regs: make([]uint32, (byteLen+3)/4)}
}

func (r *RegBlock) ReadWord(offset uint32) uint32 {
	idx := offset >> 2
	if int(idx) >= len(r.Regs) {
		return 0
	}
	return r.Regs[idx]
}

func (r *RegBlock) WriteWord(offset uint32, v uint32) {
	idx := offset >> 2
	if int(idx) >= len(r.Regs) {
		return
	}
	r.Regs[idx] = v
}

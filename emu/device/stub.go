/*
 Bus-contract-only peripheral stubs

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

package device

import "sync"

// RegDevice is a minimal MMIODevice backed by nothing but a RegBlock: reads
// return whatever was last written (or zero), writes land and stay. It
// exists so boot code that probes a peripheral's identification/status
// registers and moves on is satisfied without modeling NAND ECC, AES/SHA
// computation, or any other device-internal semantics this core leaves
// out of scope.
type RegDevice struct {
	mu sync.Mutex
	block *RegBlock
}

// NewRegDevice returns a RegDevice with byteLen bytes of register space.
func NewRegDevice(name string, byteLen int) *RegDevice {
	return &RegDevice{block: NewRegBlock(name, byteLen)}
}

func (d *RegDevice) ReadWord(offset uint32) uint32 {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.block.ReadWord(offset)
}

func (d *RegDevice) WriteWord(offset uint32, v uint32) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.block.WriteWord(offset, v)
}

// NewNand, NewAes, NewSha return the 32-byte register files backing the
// NAND controller and the two cryptographic engines.
func NewNand() *RegDevice { return NewRegDevice("NAND", 0x20) }
func NewAes() *RegDevice { return NewRegDevice("AES", 0x20) }
func NewSha() *RegDevice { return NewRegDevice("SHA", 0x20) }

// NewDi, NewSi, NewExi, NewAhb, NewMi, NewDdr return register-file stubs for
// the legacy disc/serial/EXI interfaces and the AHB/memory-interface/DDR
// compat blocks living alongside the platform controller in the Hollywood
// address window (original_source's dev.rs DI_BASE/SI_BASE/EXI_BASE/
// AHB_BASE/MEM_BASE/DDR_BASE).
func NewDi() *RegDevice { return NewRegDevice("DI", 0x400) }
func NewSi() *RegDevice { return NewRegDevice("SI", 0x400) }
func NewExi() *RegDevice { return NewRegDevice("EXI", 0x400) }
func NewAhb() *RegDevice { return NewRegDevice("AHB", 0x400) }
func NewMi() *RegDevice { return NewRegDevice("MI", 0x400) }
func NewDdr() *RegDevice { return NewRegDevice("DDR", 0x400) }

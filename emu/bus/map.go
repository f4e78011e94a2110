/*
 Physical address decoding

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

package bus

import (
	"github.com/eigenform/ironic-sub000/emu/memory"
)

// Sizes and base addresses of the physical memory apertures, per dev.rs.
const (
	Mem1Size = 0x0180_0000
	Mem2Size = 0x0400_0000
	MaskRomSize = 0x0000_2000
	SramSize = 0x0001_0000

	mem1Base = 0x0000_0000
	mem1Tail = mem1Base + Mem1Size - 1
	mem2Base = 0x1000_0000
	mem2Tail = mem2Base + Mem2Size - 1
)

// accessHandle is the resolved target of one physical address: either a
// byte-addressable memory backing or a word-addressed MMIO device, both
// masked down to the device's local offset space.
type accessHandle struct {
	mem *memory.Backing
	dev wordDevice
	offset uint32
}

type wordDevice interface {
	ReadWord(offset uint32) uint32
	WriteWord(offset uint32, v uint32)
}

func (h *accessHandle) readWord(addr uint32) uint32 {
	if h.mem != nil {
		return h.mem.ReadWord(h.offset)
	}
	return h.dev.ReadWord(h.offset)
}

func (h *accessHandle) writeWord(addr uint32, v uint32) {
	if h.mem != nil {
		h.mem.WriteWord(h.offset, v)
		return
	}
	h.dev.WriteWord(h.offset, v)
}

func (h *accessHandle) readHalf(addr uint32) uint16 {
	if h.mem != nil {
		return h.mem.ReadHalf(h.offset)
	}
	word := h.dev.ReadWord(h.offset &^ 3)
	shift := (h.offset & 2) * 8
	return uint16(word >> shift)
}

func (h *accessHandle) writeHalf(addr uint32, v uint16) {
	if h.mem != nil {
		h.mem.WriteHalf(h.offset, v)
		return
	}
	wordOff := h.offset &^ 3
	shift := (h.offset & 2) * 8
	word := h.dev.ReadWord(wordOff)
	mask := uint32(0xffff) << shift
	word = (word &^ mask) | (uint32(v) << shift)
	h.dev.WriteWord(wordOff, word)
}

func (h *accessHandle) readByte(addr uint32) uint8 {
	if h.mem != nil {
		return h.mem.ReadByte(h.offset)
	}
	word := h.dev.ReadWord(h.offset &^ 3)
	shift := (h.offset & 3) * 8
	return uint8(word >> shift)
}

func (h *accessHandle) writeByte(addr uint32, v uint8) {
	if h.mem != nil {
		h.mem.WriteByte(h.offset, v)
		return
	}
	wordOff := h.offset &^ 3
	shift := (h.offset & 3) * 8
	word := h.dev.ReadWord(wordOff)
	mask := uint32(0xff) << shift
	word = (word &^ mask) | (uint32(v) << shift)
	h.dev.WriteWord(wordOff, word)
}

func memHandle(m *memory.Backing, mask, addr uint32) *accessHandle {
	return &accessHandle{mem: m, offset: addr & mask}
}

func devHandle(d wordDevice, mask, addr uint32) *accessHandle {
	return &accessHandle{dev: d, offset: addr & mask}
}

// decodePhysAddr is the bus's top-level address decoder, a direct
// transcription of original_source's Bus::decode_phys_addr: a coarse match
// on the address's high 16 bits, falling through to resolve_sram for every
// hi_bits value that maps into the SRAM/mask-ROM aliasing region.
func (b *Bus) decodePhysAddr(addr uint32) *accessHandle {
	switch addr >> 16 {
	case 0x0d40, 0x0d41, 0xfff0, 0xfff1, 0xfffe, 0xffff:
		return b.resolveSram(addr)
	case 0x0d01:
		return b.deviceHandle("nand", 0x1f, addr)
	case 0x0d02:
		return b.deviceHandle("aes", 0x1f, addr)
	case 0x0d03:
		return b.deviceHandle("sha", 0x1f, addr)
	case 0x0d80:
		switch {
		case addr >= 0x0d80_6000 && addr <= 0x0d80_63ff:
			return b.deviceHandle("di", 0x3ff, addr)
		case addr >= 0x0d80_6400 && addr <= 0x0d80_67ff:
			return b.deviceHandle("si", 0x3ff, addr)
		case addr >= 0x0d80_6800 && addr <= 0x0d80_6bff:
			return b.deviceHandle("exi", 0x3ff, addr)
		}
		return b.deviceHandle("hlwd", 0x3ff, addr)
	case 0x0d8b:
		switch {
		case addr >= 0x0d8b_0000 && addr <= 0x0d8b_03ff:
			return b.deviceHandle("ahb", 0x3ff, addr)
		case addr >= 0x0d8b_4200 && addr <= 0x0d8b_45ff:
			return b.deviceHandle("ddr", 0x3ff, addr)
		}
		return b.deviceHandle("mi", 0x3ff, addr)
	}
	switch {
	case addr >= mem1Base && addr <= mem1Tail:
		return memHandle(b.mem1, 0x01ff_ffff, addr)
	case addr >= mem2Base && addr <= mem2Tail:
		return memHandle(b.mem2, 0x03ff_ffff, addr)
	}
	return nil
}

// deviceHandle looks up a registered device by name, returning nil if it
// was never attached (an unmapped access, fatal).
func (b *Bus) deviceHandle(name string, mask, addr uint32) *accessHandle {
	dev, ok := b.devices[name]
	if !ok {
		return nil
	}
	return devHandle(dev, mask, addr)
}

// resolveSram implements the four rom_mapped x sram_mirror aliasing cases
// from original_source's resolve_rom_{,no}mir/resolve_norom_{,no}mir.
func (b *Bus) resolveSram(addr uint32) *accessHandle {
	switch {
	case b.romMapped && !b.sramMirror:
		switch {
		case addr >= 0x0d40_0000 && addr <= 0x0d40_ffff, addr >= 0xfff0_0000 && addr <= 0xfff0_ffff, addr >= 0xfffe_0000 && addr <= 0xfffe_ffff:
			return memHandle(b.sram0, 0xffff, addr)
		case addr >= 0x0d41_0000 && addr <= 0x0d41_ffff, addr >= 0xfff1_0000 && addr <= 0xfff1_ffff:
			return memHandle(b.sram1, 0xffff, addr)
		case addr >= 0xffff_0000 && addr <= 0xffff_1fff:
			return memHandle(b.maskRom, 0x1fff, addr)
		}
	case b.romMapped && b.sramMirror:
		switch {
		case addr >= 0x0d40_0000 && addr <= 0x0d41_7fff, addr >= 0xfff0_0000 && addr <= 0xfff1_ffff, addr >= 0xfffe_0000 && addr <= 0xfffe_ffff:
			return memHandle(b.maskRom, 0x1fff, addr)
		case addr >= 0xffff_0000:
			return memHandle(b.sram0, 0xffff, addr)
		}
	case !b.romMapped && b.sramMirror:
		switch {
		case addr >= 0x0d40_0000 && addr <= 0x0d40_ffff, addr >= 0xfff0_0000 && addr <= 0xfff0_ffff:
			return memHandle(b.sram1, 0xffff, addr)
		case addr >= 0x0d41_0000 && addr <= 0x0d41_ffff, addr >= 0xfff1_0000 && addr <= 0xfff1_ffff, addr >= 0xfffe_0000 && addr <= 0xfffe_ffff:
			return memHandle(b.sram1, 0xffff, addr)
		case addr >= 0xffff_0000:
			return memHandle(b.sram0, 0xffff, addr)
		}
	default: // !romMapped && !sramMirror
		switch {
		case addr >= 0x0d40_0000 && addr <= 0x0d40_ffff, addr >= 0xfff0_0000 && addr <= 0xfff0_ffff, addr >= 0xfffe_0000 && addr <= 0xfffe_ffff:
			return memHandle(b.sram0, 0xffff, addr)
		case addr >= 0x0d41_0000 && addr <= 0x0d41_ffff, addr >= 0xfff1_0000 && addr <= 0xfff1_ffff, addr >= 0xffff_0000:
			return memHandle(b.sram1, 0xffff, addr)
		}
	}
	return nil
}

// backingFor resolves addr to a raw memory backing and local offset for
// the DMA bulk-access path; MMIO devices are not valid DMA targets.
func (b *Bus) backingFor(addr uint32) (*memory.Backing, uint32) {
	h := b.decodePhysAddr(addr)
	if h == nil || h.mem == nil {
		return nil, 0
	}
	return h.mem, h.offset
}

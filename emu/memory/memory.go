/*
 * ironic-sub000 - Contiguous big-endian memory backing
 *
 * Copyright 2026, ironic-sub000 contributors
 *
 * Permission is hereby granted, free of charge, to any person obtaining a copy
 * of this software and associated documentation files (the "Software"), to deal
 * in the Software without restriction, including without limitation the rights
 * to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
 * copies of the Software, and to permit persons to whom the Software is
 * furnished to do so, subject to the following conditions:
 *
 * The above copyright notice and this permission notice shall be included in
 * all copies or substantial portions of the Software.
 *
 * THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
 * IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
 * FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
 * AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
 * LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
 * OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
 * SOFTWARE.
 *
 */

// Package memory implements contiguous big-endian byte-addressable memory
// backing used for the system's mask ROM and RAM regions.
package memory

import (
	"encoding/binary"
	"fmt"
	"os"
)

// Backing is a flat, big-endian byte buffer supporting word/half/byte
// accesses and bulk copies, optionally seeded from a file at creation.
type Backing struct {
	name string
	buf []byte
}

// New allocates a zeroed Backing of size bytes.
func New(name string, size uint32) *Backing {
	return &Backing{name: name, buf: make([]byte, size)}
}

// NewFromFile allocates a Backing of size bytes and loads the contents of
// path into its front. A file larger than size is an error; a smaller file
// leaves the remainder zeroed.
func NewFromFile(name string, size uint32, path string) (*Backing, error) {
	m := New(name, size)
	if path == "" {
		return m, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("memory: loading %s backing %q: %w", name, path, err)
	}
	if uint32(len(data)) > size {
		return nil, fmt.Errorf("memory: backing file %q (%d bytes) exceeds %s size %d", path, len(data), name, size)
	}
	copy(m.buf, data)
	return m, nil
}

// Name reports the memory's configured name, used in diagnostics.
func (m *Backing) Name() string { return m.name }

// Size reports the backing's length in bytes.
func (m *Backing) Size() uint32 { return uint32(len(m.buf)) }

// Contains reports whether off is a valid offset for a width-byte access.
func (m *Backing) Contains(off uint32, width uint32) bool {
	return uint64(off)+uint64(width) <= uint64(len(m.buf))
}

// ReadByte reads a single byte at off.
func (m *Backing) ReadByte(off uint32) uint8 {
	return m.buf[off]
}

// WriteByte writes a single byte at off.
func (m *Backing) WriteByte(off uint32, v uint8) {
	m.buf[off] = v
}

// ReadHalf reads a big-endian 16-bit halfword at off.
func (m *Backing) ReadHalf(off uint32) uint16 {
	return binary.BigEndian.Uint16(m.buf[off : off+2])
}

// WriteHalf writes a big-endian 16-bit halfword at off.
func (m *Backing) WriteHalf(off uint32, v uint16) {
	binary.BigEndian.PutUint16(m.buf[off:off+2], v)
}

// ReadWord reads a big-endian 32-bit word at off.
func (m *Backing) ReadWord(off uint32) uint32 {
	return binary.BigEndian.Uint32(m.buf[off : off+4])
}

// WriteWord writes a big-endian 32-bit word at off.
func (m *Backing) WriteWord(off uint32, v uint32) {
	binary.BigEndian.PutUint32(m.buf[off:off+4], v)
}

// CopyIn bulk-copies data into the backing starting at off, for DMA-style
// transfers. It panics if the destination range is out of bounds.
func (m *Backing) CopyIn(off uint32, data []byte) {
	copy(m.buf[off:uint64(off)+uint64(len(data))], data)
}

// CopyOut bulk-reads n bytes starting at off, for DMA-style transfers.
func (m *Backing) CopyOut(off uint32, n uint32) []byte {
	out := make([]byte, n)
	copy(out, m.buf[off:uint64(off)+uint64(n)])
	return out
}

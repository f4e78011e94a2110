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

package memory

import (
	"os"
	"path/filepath"
	"testing"
)

func TestWordReadWriteRoundTrip(t *testing.T) {
	m := New("test", 16)
	m.WriteWord(4, 0x01020304)
	if got := m.ReadWord(4); got != 0x01020304 {
		t.Errorf("ReadWord = %#x, want 0x01020304", got)
	}
	// Big-endian: the MSB lands at the lowest address.
	if got := m.ReadByte(4); got != 0x01 {
		t.Errorf("ReadByte(4) = %#x, want 0x01 (big-endian)", got)
	}
	if got := m.ReadByte(7); got != 0x04 {
		t.Errorf("ReadByte(7) = %#x, want 0x04", got)
	}
}

func TestHalfReadWriteRoundTrip(t *testing.T) {
	m := New("test", 8)
	m.WriteHalf(2, 0xbeef)
	if got := m.ReadHalf(2); got != 0xbeef {
		t.Errorf("ReadHalf = %#x, want 0xbeef", got)
	}
}

func TestContainsBoundaries(t *testing.T) {
	m := New("test", 16)
	if !m.Contains(12, 4) {
		t.Error("Contains(12,4) should hold for a 16-byte backing")
	}
	if m.Contains(13, 4) {
		t.Error("Contains(13,4) should not hold: 13+4 > 16")
	}
	if !m.Contains(16, 0) {
		t.Error("a zero-width access at the end boundary should be valid")
	}
}

func TestNewFromFileLoadsAndZeroPads(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "rom.bin")
	if err := os.WriteFile(path, []byte{0xde, 0xad, 0xbe, 0xef}, 0o644); err != nil {
		t.Fatalf("writing fixture: %v", err)
	}
	m, err := NewFromFile("rom", 8, path)
	if err != nil {
		t.Fatalf("NewFromFile: %v", err)
	}
	if got := m.ReadWord(0); got != 0xdeadbeef {
		t.Errorf("ReadWord(0) = %#x, want 0xdeadbeef", got)
	}
	if got := m.ReadWord(4); got != 0 {
		t.Errorf("ReadWord(4) = %#x, want 0 (zero padding)", got)
	}
}

func TestNewFromFileRejectsOversizedFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "rom.bin")
	if err := os.WriteFile(path, make([]byte, 16), 0o644); err != nil {
		t.Fatalf("writing fixture: %v", err)
	}
	if _, err := NewFromFile("rom", 8, path); err == nil {
		t.Fatal("expected an error when the file exceeds the backing size")
	}
}

func TestNewFromFileEmptyPathIsZeroed(t *testing.T) {
	m, err := NewFromFile("rom", 4, "")
	if err != nil {
		t.Fatalf("NewFromFile: %v", err)
	}
	if got := m.ReadWord(0); got != 0 {
		t.Errorf("ReadWord(0) = %#x, want 0", got)
	}
}

func TestCopyInCopyOutRoundTrip(t *testing.T) {
	m := New("test", 16)
	m.CopyIn(4, []byte{1, 2, 3, 4})
	out := m.CopyOut(4, 4)
	want := []byte{1, 2, 3, 4}
	for i := range want {
		if out[i] != want[i] {
			t.Errorf("CopyOut[%d] = %d, want %d", i, out[i], want[i])
		}
	}
}

func TestNameAndSize(t *testing.T) {
	m := New("MEM1", 0x0180_0000)
	if m.Name() != "MEM1" {
		t.Errorf("Name() = %q, want MEM1", m.Name())
	}
	if m.Size() != 0x0180_0000 {
		t.Errorf("Size() = %#x, want 0x1800000", m.Size())
	}
}

/*
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

import "testing"

func TestShiftRegByImmLSLZeroPassesCarry(t *testing.T) {
	v, c := ShiftRegByImm(0x1, ShiftLSL, 0, true)
	if v != 0x1 || c != true {
		t.Errorf("LSL #0 got (%#x,%v), want (0x1,true)", v, c)
	}
	v, c = ShiftRegByImm(0x1, ShiftLSL, 0, false)
	if v != 0x1 || c != false {
		t.Errorf("LSL #0 got (%#x,%v), want (0x1,false)", v, c)
	}
}

func TestShiftRegByImmLSR32(t *testing.T) {
	// LSR #0 in the encoding means LSR #32: result zero, carry = bit 31.
	v, c := ShiftRegByImm(0x8000_0000, ShiftLSR, 0, false)
	if v != 0 || !c {
		t.Errorf("LSR #32 got (%#x,%v), want (0,true)", v, c)
	}
}

func TestShiftRegByImmASR32NegativeSaturates(t *testing.T) {
	v, c := ShiftRegByImm(0x8000_0000, ShiftASR, 0, false)
	if v != 0xffff_ffff || !c {
		t.Errorf("ASR #32 of negative got (%#x,%v), want (0xffffffff,true)", v, c)
	}
}

func TestShiftRegByImmRRX(t *testing.T) {
	v, c := ShiftRegByImm(0x0000_0003, ShiftROR, 0, true)
	if v != 0x8000_0001 || !c {
		t.Errorf("RRX got (%#x,%v), want (0x80000001,true)", v, c)
	}
}

func TestShiftRegByRegLSLAt32And33(t *testing.T) {
	if v, c := ShiftRegByReg(1, ShiftLSL, 32, false); v != 0 || c != true {
		t.Errorf("LSL by 32 got (%#x,%v), want (0,true)", v, c)
	}
	if v, c := ShiftRegByReg(1, ShiftLSL, 33, true); v != 0 || c != false {
		t.Errorf("LSL by 33 got (%#x,%v), want (0,false)", v, c)
	}
}

func TestShiftRegByRegZeroAmountPassesThrough(t *testing.T) {
	v, c := ShiftRegByReg(0x1234, ShiftROR, 0, true)
	if v != 0x1234 || !c {
		t.Errorf("shift-by-0 got (%#x,%v), want unchanged value and carry", v, c)
	}
}

func TestShiftImmRotateZeroRotatePassesCarry(t *testing.T) {
	v, c := ShiftImmRotate(0x0ff, true)
	if v != 0xff || !c {
		t.Errorf("rotate #0 got (%#x,%v), want (0xff,true)", v, c)
	}
}

func TestShiftImmRotateNonzero(t *testing.T) {
	// imm8=0x01, rotate field=1 -> rotate right by 2.
	v, _ := ShiftImmRotate(0x101, false)
	want := rotateRight32(0x01, 2)
	if v != want {
		t.Errorf("rotate got %#x, want %#x", v, want)
	}
}

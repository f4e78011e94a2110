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

// TestThumbDispatchTableMatchesDecodeCascade mirrors the ARM table check:
// the 1024-entry table must be an exact cache over decodeThumb.
func TestThumbDispatchTableMatchesDecodeCascade(t *testing.T) {
	for idx := 0; idx < 1024; idx++ {
		opcode16 := uint16(idx << 6)
		want := thumbVariantHandler(decodeThumb(opcode16))
		got := thumbDispatchTable[idx]
		if funcPtr(got) != funcPtr(want) {
			t.Fatalf("index %#x: Thumb dispatch table handler differs from live decode", idx)
		}
	}
}

func TestDecodeThumbKnownEncodings(t *testing.T) {
	cases := []struct {
		name string
		op   uint16
		want ThumbVariant
	}{
		{"LSL R0,R1,#4", 0x0108, ThumbShiftImm},
		{"ADD R0,R1,R2", 0x1888, ThumbAddSub},
		{"MOV R0,#4", 0x2004, ThumbMovCmpAddSubImm},
		{"AND R0,R1", 0x4008, ThumbAluReg},
		{"ADD R8,R1", 0x4448, ThumbHiRegOp},
		{"BX R1", 0x4708, ThumbBx},
		{"LDR R0,[PC,#4]", 0x4801, ThumbLdrPcRel},
		{"STR R0,[R1,R2]", 0x5088, ThumbLdrStrReg},
		{"STR R0,[R1,#4]", 0x6040, ThumbLdrStrImm},
		{"STRH R0,[R1,#2]", 0x8048, ThumbLdrStrHalf},
		{"STR R0,[SP,#4]", 0x9001, ThumbLdrStrSp},
		{"ADD R0,SP,#4", 0xa801, ThumbLoadAddr},
		{"SUB SP,#4", 0xb081, ThumbAddSpImm},
		{"PUSH {R0,LR}", 0xb501, ThumbPushPop},
		{"BKPT #0", 0xbe00, ThumbBkpt},
		{"STMIA R0!,{R1}", 0xc002, ThumbBlockXfer},
		{"SVC #0", 0xdf00, ThumbSvc},
		{"BEQ #0", 0xd000, ThumbCondBranch},
		{"B #0", 0xe000, ThumbB},
		{"BL prefix", 0xf000, ThumbBlPrefix},
		{"BL suffix", 0xf800, ThumbBlSuffix},
		{"BLX suffix", 0xe800, ThumbBlxSuffix},
	}
	for _, c := range cases {
		if got := decodeThumb(c.op); got != c.want {
			t.Errorf("%s: decodeThumb(%#04x) = %v, want %v", c.name, c.op, got, c.want)
		}
	}
}

func TestDecodeThumbUndefinedCondIsUndefined(t *testing.T) {
	// 1101 1110 xxxxxxxx: cond nibble 0xe is the reserved/undefined encoding
	// carved out of the conditional-branch format.
	if got := decodeThumb(0xde00); got != ThumbUndefined {
		t.Errorf("decodeThumb(0xde00) = %v, want ThumbUndefined", got)
	}
}

func TestDecodeThumbNeverPanics(t *testing.T) {
	for idx := 0; idx < 1024; idx++ {
		opcode16 := uint16(idx << 6)
		_ = decodeThumb(opcode16)
	}
}

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

import (
	"reflect"
	"testing"
)

func funcPtr(f HandlerFn) uintptr {
	return reflect.ValueOf(f).Pointer()
}

// TestArmDispatchTableMatchesDecodeCascade confirms the init-time table is
// nothing but a cache over decodeArm: every one of the 4096 synthesized
// indices must resolve to the same handler decodeArm would pick directly.
func TestArmDispatchTableMatchesDecodeCascade(t *testing.T) {
	for idx := 0; idx < 4096; idx++ {
		opcode := (uint32(idx)&0xff0)<<16 | (uint32(idx)&0xf)<<4
		want := armVariantHandler(decodeArm(opcode))
		got := armDispatchTable[idx]
		if funcPtr(got) != funcPtr(want) {
			t.Fatalf("index %#x: dispatch table handler differs from live decode", idx)
		}
	}
}

// TestArmDispatchIndexRoundTrip confirms armDispatchIndex extracts exactly
// the bits the table was built from (bits 27:20 and 7:4).
func TestArmDispatchIndexRoundTrip(t *testing.T) {
	for idx := 0; idx < 4096; idx++ {
		opcode := (uint32(idx)&0xff0)<<16 | (uint32(idx)&0xf)<<4
		if got := armDispatchIndex(opcode); got != idx {
			t.Fatalf("armDispatchIndex(%#08x) = %#x, want %#x", opcode, got, idx)
		}
	}
}

func TestDecodeArmKnownEncodings(t *testing.T) {
	cases := []struct {
		name string
		op   uint32
		want ArmVariant
	}{
		{"BX LR", 0xe12fff1e, ArmBx},
		{"BLX R0", 0xe12fff30, ArmBlxReg},
		{"CLZ R0,R1", 0xe16f0f11, ArmClz},
		{"MOV R0,R1", 0xe1a00001, ArmDPRegShiftImm},
		{"ADD R0,R1,R2,LSL R3", 0xe0810312, ArmDPRegShiftReg},
		{"ADD R0,R1,#4", 0xe2810004, ArmDPImm},
		{"MUL R0,R1,R2", 0xe0000291, ArmMul},
		{"UMULL R0,R1,R2,R3", 0xe0810392, ArmMulLong},
		{"SWP R0,R1,[R2]", 0xe1020091, ArmSwap},
		{"MRS R0,CPSR", 0xe10f0000, ArmMrs},
		{"LDR R0,[R1,#4]", 0xe5910004, ArmLdrStrImm},
		{"LDR R0,[R1,R2]", 0xe7910002, ArmLdrStrReg},
		{"STMFD SP!,{R4-R11,LR}", 0xe92d4ff0, ArmBlockXfer},
		{"B #0", 0xea000000, ArmB},
		{"BL #0", 0xeb000000, ArmBl},
		{"SVC #0", 0xef000000, ArmSvc},
		{"MRC p15,0,R0,c1,c0,0", 0xee110f10, ArmMrcMcr},
		{"LDRH R0,[R1],#2", 0xe0d102b2, ArmLdrhStrhImm},
		{"LDRH R0,[R1,R2]", 0xe19100b2, ArmLdrhStrhReg},
	}
	for _, c := range cases {
		if got := decodeArm(c.op); got != c.want {
			t.Errorf("%s: decodeArm(%#08x) = %v, want %v", c.name, c.op, got, c.want)
		}
	}
}

func TestDecodeArmNeverPanics(t *testing.T) {
	for idx := 0; idx < 4096; idx++ {
		opcode := (uint32(idx)&0xff0)<<16 | (uint32(idx)&0xf)<<4
		_ = decodeArm(opcode)
	}
}

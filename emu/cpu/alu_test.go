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

func TestAddOverflow(t *testing.T) {
	// 0x7fffffff + 1 overflows into a negative result.
	res := Add(0x7fff_ffff, 1, false)
	if !res.V || res.Result != 0x8000_0000 || !res.N || res.Z || res.C {
		t.Errorf("got %+v, want overflow, N set, result 0x80000000", res)
	}
}

func TestAddCarryOut(t *testing.T) {
	res := Add(0xffff_ffff, 1, false)
	if res.Result != 0 || !res.Z || !res.C || res.V {
		t.Errorf("got %+v, want zero result with carry, no overflow", res)
	}
}

func TestAddWithCarryIn(t *testing.T) {
	res := Add(1, 1, true)
	if res.Result != 3 {
		t.Errorf("1+1+cin got %d, want 3", res.Result)
	}
}

func TestSubNoBorrow(t *testing.T) {
	// ARM CMP/SUB convention: cin=true means no borrow in.
	res := Sub(5, 3, true)
	if res.Result != 2 || !res.C || res.V {
		t.Errorf("5-3 got %+v, want result 2, carry set (no borrow)", res)
	}
}

func TestSubBorrow(t *testing.T) {
	res := Sub(3, 5, true)
	if res.Result != 0xffff_fffe || res.C {
		t.Errorf("3-5 got %+v, want result 0xfffffffe, carry clear (borrow)", res)
	}
}

func TestSubOverflow(t *testing.T) {
	// INT_MIN - 1 overflows into a positive result.
	res := Sub(0x8000_0000, 1, true)
	if !res.V || res.N {
		t.Errorf("INT_MIN-1 got %+v, want overflow set and N clear", res)
	}
}

/*
 ALU flag helpers: add/sub with carry and signed-overflow detection

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

// AluRes is the result of an add/sub: the 32-bit result plus the four flags.
type AluRes struct {
	Result uint32
	N, Z, C, V bool
}

func nzFor(res uint32) (bool, bool) {
	return res&0x8000_0000 != 0, res == 0
}

// Add computes rn+x with carry-in cin, reporting NZCV.
func Add(rn, x uint32, cin bool) AluRes {
	wide := uint64(rn) + uint64(x)
	if cin {
		wide++
	}
	res := uint32(wide)
	n, z := nzFor(res)
	c := wide > 0xffff_ffff
	sn, sx := int64(int32(rn)), int64(int32(x))
	swide := sn + sx
	if cin {
		swide++
	}
	v := swide != int64(int32(res))
	return AluRes{Result: res, N: n, Z: z, C: c, V: v}
}

// Sub computes rn-x with borrow-in (ARM convention: cin=1 means no borrow
// going in), reporting NZCV. C is set iff there is no borrow, i.e. rn >= x
// for the plain two-operand case.
func Sub(rn, x uint32, cin bool) AluRes {
	borrowIn := uint64(0)
	if !cin {
		borrowIn = 1
	}
	wide := uint64(rn) - uint64(x) - borrowIn
	res := uint32(wide)
	n, z := nzFor(res)
	c := uint64(rn) >= uint64(x)+borrowIn
	sn, sx := int64(int32(rn)), int64(int32(x))
	swide := sn - sx - int64(borrowIn)
	v := swide != int64(int32(res))
	return AluRes{Result: res, N: n, Z: z, C: c, V: v}
}

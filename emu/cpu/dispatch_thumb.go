/*
 Thumb dispatch table construction

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

// thumbDispatchTable has one entry per the top 10 bits of a Thumb opcode
// (bits 15:6), the standard 1024-way Thumb decode index, built the same
// way as armDispatchTable: synthesize a canonical opcode per index, decode
// it once at init, cache the resolved handler.
var thumbDispatchTable [1024]HandlerFn

func thumbVariantHandler(v ThumbVariant) HandlerFn {
	switch v {
	case ThumbShiftImm:
		return execThumbShiftImm
	case ThumbAddSub:
		return execThumbAddSub
	case ThumbMovCmpAddSubImm:
		return execThumbMovCmpAddSubImm
	case ThumbAluReg:
		return execThumbAluReg
	case ThumbHiRegOp:
		return execThumbHiRegOp
	case ThumbBx:
		return execThumbBx
	case ThumbLdrPcRel:
		return execThumbLdrPcRel
	case ThumbLdrStrReg:
		return execThumbLdrStrReg
	case ThumbLdrStrImm:
		return execThumbLdrStrImm
	case ThumbLdrStrHalf:
		return execThumbLdrStrHalf
	case ThumbLdrStrSp:
		return execThumbLdrStrSp
	case ThumbLoadAddr:
		return execThumbLoadAddr
	case ThumbAddSpImm:
		return execThumbAddSpImm
	case ThumbPushPop:
		return execThumbPushPop
	case ThumbBlockXfer:
		return execThumbBlockXfer
	case ThumbSvc:
		return execThumbSvc
	case ThumbBkpt:
		return execThumbBkpt
	case ThumbCondBranch:
		return execThumbCondBranch
	case ThumbB:
		return execThumbB
	case ThumbBlPrefix:
		return execThumbBlPrefix
	case ThumbBlSuffix:
		return execThumbBlSuffix
	case ThumbBlxSuffix:
		return execThumbBlxSuffix
	default:
		return execThumbUndefined
	}
}

func init() {
	for idx := 0; idx < 1024; idx++ {
		opcode16 := uint16(idx << 6)
		thumbDispatchTable[idx] = thumbVariantHandler(decodeThumb(opcode16))
	}
}

// dispatchThumb looks up and invokes the handler for a fully-decoded Thumb
// opcode, widened into the low 16 bits of the uint32 the handler expects.
func dispatchThumb(c *Cpu, opcode16 uint16) DispatchRes {
	idx := int(opcode16 >> 6)
	return thumbDispatchTable[idx](c, uint32(opcode16))
}

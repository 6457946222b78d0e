// Copyright The go-rocdl Authors
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with
// the License. You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on
// an "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied. See the License for the
// specific language governing permissions and limitations under the License.
//
// SPDX-License-Identifier: Apache-2.0

package gpu

import (
	"github.com/rocforge/go-rocdl/pkg/ir"
	"github.com/rocforge/go-rocdl/pkg/ir/rocdl"
)

// buildResource assembles the four-word buffer resource through which the
// hardware addresses the memref: a 48bit base address (words 0-1), the
// record count in bytes (word 2), and a flag word configuring the access
// behaviour (word 3).
func (p *bufferLowering) buildResource() ir.Value {
	resource := p.emit(rocdl.NewUndef(ir.NewVectorType(4, ir.I32)))
	// Words 0-1: base address.  The aligned pointer is split into a low and
	// a high word, masking the stride and swizzle bits off the latter.
	base := p.desc.AlignedPtr(p.rewriter)
	baseBits := p.emit(rocdl.NewPtrToInt(ir.I64, base))
	lowWord := p.emit(rocdl.NewTrunc(ir.I32, baseBits))
	resource = p.insert(resource, lowWord, 0)
	//
	shifted := p.emit(rocdl.NewLShr(baseBits, p.i64Const(32)))
	highWord := p.emit(rocdl.NewTrunc(ir.I32, shifted))
	highWord = p.emit(rocdl.NewAnd(highWord, p.i32Const(0xffff)))
	resource = p.insert(resource, highWord, 1)
	// Word 2: number of records
	resource = p.insert(resource, p.buildNumRecords(), 2)
	// Word 3: flags
	resource = p.insert(resource, p.i32Const(p.flagsWord()), 3)
	//
	return resource
}

// buildNumRecords computes the extent of the buffer in bytes (word 2), past
// which accesses fall out of bounds.  For static shapes this is a constant.
// Otherwise it is the largest byte extent spanned by any single dimension,
// as computed from the runtime sizes and strides.
func (p *bufferLowering) buildNumRecords() ir.Value {
	if p.memref.HasStaticShape() {
		return p.i32Const(uint32(p.memref.NumElements() * p.ebw))
	}
	//
	var (
		width   = p.i64Const(p.ebw)
		largest ir.Value
	)
	//
	for i := uint(0); i < p.memref.Rank(); i++ {
		var (
			size       = p.desc.Size(p.rewriter, i)
			stride     = p.desc.Stride(p.rewriter, i)
			byteStride = p.emit(rocdl.NewMul(stride, width))
			extent     = p.emit(rocdl.NewMul(size, byteStride))
		)
		//
		if largest == nil {
			largest = extent
		} else {
			largest = p.emit(rocdl.NewUMax(largest, extent))
		}
	}
	//
	return p.emit(rocdl.NewTrunc(ir.I32, largest))
}

// flagsWord computes the flag word (word 3) of the resource.  Most of its
// fields are ignored by the raw buffer instructions, beyond requiring a
// nonzero data format.  RDNA parts additionally take bit 24 set, along with
// the out of bounds behaviour in bits 28-29: 3 drops out of bounds accesses
// whilst 2 wraps them round.
func (p *bufferLowering) flagsWord() uint32 {
	// num_format=7 (bits 12-14), data_format=4 (bits 15-18)
	word := uint32((7 << 12) | (4 << 15))
	//
	if p.chipset.SupportsOutOfBoundsSelect() {
		word |= 1 << 24
		//
		if p.access.boundsCheck {
			word |= 3 << 28
		} else {
			word |= 2 << 28
		}
	}
	//
	return word
}

// insert emits the insertion of a value into a given lane of a vector.
func (p *bufferLowering) insert(vector ir.Value, element ir.Value, lane uint) ir.Value {
	return p.emit(rocdl.NewInsertElement(vector, element, lane))
}

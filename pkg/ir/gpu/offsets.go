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

// buildVOffset computes the per-thread byte offset of the accessed element:
// the sum over dimensions of index times byte stride, plus any static index
// offset.  Static strides fold into constants, whilst dynamic strides are
// read from the descriptor and scaled by the element width.
func (p *bufferLowering) buildVOffset() ir.Value {
	var voffset ir.Value
	//
	for i, index := range p.access.indices {
		var byteStride ir.Value
		//
		if stride := p.strides[i]; stride.IsKnown() {
			byteStride = p.i32Const(uint32(stride.Value() * p.ebw))
		} else {
			stride := p.desc.Stride(p.rewriter, uint(i))
			narrowed := p.emit(rocdl.NewTrunc(ir.I32, stride))
			byteStride = p.emit(rocdl.NewMul(narrowed, p.byteWidthConst()))
		}
		//
		term := p.emit(rocdl.NewMul(index, byteStride))
		//
		if voffset == nil {
			voffset = term
		} else {
			voffset = p.emit(rocdl.NewAdd(voffset, term))
		}
	}
	// Fold in the static index offset (if any)
	if p.access.indexOffset.HasValue() {
		extra := p.i32Const(p.access.indexOffset.Unwrap() * uint32(p.ebw))
		//
		if voffset == nil {
			voffset = extra
		} else {
			voffset = p.emit(rocdl.NewAdd(voffset, extra))
		}
	}
	// Zero rank access with no index offset addresses element zero
	if voffset == nil {
		voffset = p.i32Const(0)
	}
	//
	return voffset
}

// buildSOffset computes the scalar byte offset: the operation's scalar
// offset operand (or zero when absent), plus the base offset carried by the
// memref layout.  Observe that the base offset, though measured in elements,
// is added unscaled.
func (p *bufferLowering) buildSOffset() ir.Value {
	soffset := p.access.soffset
	//
	if soffset == nil {
		soffset = p.i32Const(0)
	}
	//
	if !p.offset.IsKnown() {
		base := p.desc.Offset(p.rewriter)
		narrowed := p.emit(rocdl.NewTrunc(ir.I32, base))
		soffset = p.emit(rocdl.NewAdd(narrowed, soffset))
	} else if p.offset.Value() > 0 {
		soffset = p.emit(rocdl.NewAdd(soffset, p.i32Const(uint32(p.offset.Value()))))
	}
	//
	return soffset
}

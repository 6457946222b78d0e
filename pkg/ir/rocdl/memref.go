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
package rocdl

import (
	"github.com/rocforge/go-rocdl/pkg/ir"
)

// Field indices within a memref descriptor struct.
const (
	descAllocatedPtr = 0
	descAlignedPtr   = 1
	descOffset       = 2
	descSizes        = 3
	descStrides      = 4
)

// MemRefDescriptorType returns the struct type a memref parameter lowers to:
// the allocated and aligned base pointers, the element offset, and then the
// per-dimension sizes and strides.  Rank zero memrefs drop the two arrays.
func MemRefDescriptorType(memref *ir.MemRefType) *ir.StructType {
	ptr := &ir.PointerType{Elem: memref.Elem, Space: memref.Space}
	fields := []ir.Type{ptr, ptr, ir.I64}
	//
	if rank := memref.Rank(); rank > 0 {
		dims := &ir.ArrayType{Len: rank, Elem: ir.I64}
		fields = append(fields, dims, dims)
	}
	//
	return &ir.StructType{Fields: fields}
}

// MemRefDescriptor provides access to the fields of a lowered memref value,
// emitting the required extraction instructions as fields are requested.
type MemRefDescriptor struct {
	// The lowered memref value, of descriptor struct type.
	value ir.Value
}

// NewMemRefDescriptor wraps a lowered memref value.  The value must have
// descriptor struct type.
func NewMemRefDescriptor(value ir.Value) MemRefDescriptor {
	if _, ok := value.Type().(*ir.StructType); !ok {
		panic("memref descriptor must have struct type")
	}
	//
	return MemRefDescriptor{value}
}

// AlignedPtr emits an extraction of the aligned base pointer.
func (p MemRefDescriptor) AlignedPtr(rewriter *ir.Rewriter) ir.Value {
	extract := NewExtractValue(p.value, descAlignedPtr)
	rewriter.Emit(extract)
	//
	return extract
}

// Offset emits an extraction of the element offset.
func (p MemRefDescriptor) Offset(rewriter *ir.Rewriter) ir.Value {
	extract := NewExtractValue(p.value, descOffset)
	rewriter.Emit(extract)
	//
	return extract
}

// Size emits an extraction of the size of the given dimension.
func (p MemRefDescriptor) Size(rewriter *ir.Rewriter, dim uint) ir.Value {
	extract := NewExtractValue(p.value, descSizes, dim)
	rewriter.Emit(extract)
	//
	return extract
}

// Stride emits an extraction of the stride of the given dimension.
func (p MemRefDescriptor) Stride(rewriter *ir.Rewriter, dim uint) ir.Value {
	extract := NewExtractValue(p.value, descStrides, dim)
	rewriter.Emit(extract)
	//
	return extract
}

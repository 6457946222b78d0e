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

// Package gpu provides the structured buffer operations a kernel is written
// against: loads, stores and atomic additions addressing a strided
// multi-dimensional array by index tuple, along with the workgroup barrier.
// The package also implements their conversion into the raw hardware
// intrinsics of the rocdl package, in which addressing becomes a buffer
// resource descriptor together with explicit byte offsets.
package gpu

import (
	"github.com/rocforge/go-rocdl/pkg/ir"
	"github.com/rocforge/go-rocdl/pkg/util"
)

// bufferAccess holds the operands and attributes common to the raw buffer
// operations: the memref being accessed, one index per dimension, an
// optional scalar offset operand, and the static addressing attributes.
type bufferAccess struct {
	// The memref being accessed.
	memref ir.Value
	// One index per dimension of the memref.
	indices []ir.Value
	// Optional scalar offset operand, or nil when absent.
	soffset ir.Value
	// Indicates whether out-of-bounds accesses are dropped (where the
	// hardware generation encodes this).
	boundsCheck bool
	// Optional static index offset, applied past the indexed element.
	indexOffset util.Option[uint32]
}

func newBufferAccess(memref ir.Value, indices []ir.Value) bufferAccess {
	return bufferAccess{
		memref:      memref,
		indices:     indices,
		soffset:     nil,
		boundsCheck: true,
		indexOffset: util.None[uint32](),
	}
}

// MemRef returns the memref being accessed.
func (p *bufferAccess) MemRef() ir.Value {
	return p.memref
}

// Indices returns the indices identifying the element accessed.
func (p *bufferAccess) Indices() []ir.Value {
	return p.indices
}

// SOffset returns the scalar offset operand, or nil when absent.
func (p *bufferAccess) SOffset() ir.Value {
	return p.soffset
}

// SetSOffset assigns the scalar offset operand.
func (p *bufferAccess) SetSOffset(soffset ir.Value) {
	p.soffset = soffset
}

// BoundsCheck indicates whether out-of-bounds accesses are dropped.
func (p *bufferAccess) BoundsCheck() bool {
	return p.boundsCheck
}

// SetBoundsCheck determines whether out-of-bounds accesses are dropped.
func (p *bufferAccess) SetBoundsCheck(enable bool) {
	p.boundsCheck = enable
}

// IndexOffset returns the static index offset, if one was given.
func (p *bufferAccess) IndexOffset() util.Option[uint32] {
	return p.indexOffset
}

// SetIndexOffset assigns a static index offset.
func (p *bufferAccess) SetIndexOffset(offset uint32) {
	p.indexOffset = util.Some(offset)
}

// Operands implementation for the Instruction interface.
func (p *bufferAccess) Operands() []*ir.Value {
	operands := []*ir.Value{&p.memref}
	//
	for i := range p.indices {
		operands = append(operands, &p.indices[i])
	}
	//
	if p.soffset != nil {
		operands = append(operands, &p.soffset)
	}
	//
	return operands
}

// ============================================================================
// Load
// ============================================================================

// RawBufferLoad reads a scalar or vector of elements from a memref at a
// given index tuple.
type RawBufferLoad struct {
	bufferAccess
	// Type of the value read.
	typ ir.Type
}

// NewRawBufferLoad constructs a load of a value of the given type from a
// memref.  Bounds checking is enabled by default.
func NewRawBufferLoad(typ ir.Type, memref ir.Value, indices ...ir.Value) *RawBufferLoad {
	return &RawBufferLoad{newBufferAccess(memref, indices), typ}
}

// Mnemonic returns the textual name of this operation.
func (p *RawBufferLoad) Mnemonic() string {
	return "amdgpu.raw.buffer.load"
}

// Type returns the type of the value read.
func (p *RawBufferLoad) Type() ir.Type {
	return p.typ
}

func (p *RawBufferLoad) access() *bufferAccess { return &p.bufferAccess }
func (p *RawBufferLoad) storeData() ir.Value   { return nil }
func (p *RawBufferLoad) wantedType() ir.Type   { return p.typ }

// ============================================================================
// Store
// ============================================================================

// RawBufferStore writes a scalar or vector of elements to a memref at a
// given index tuple.
type RawBufferStore struct {
	// Value being written.
	data ir.Value
	//
	bufferAccess
}

// NewRawBufferStore constructs a store of the given value to a memref.
// Bounds checking is enabled by default.
func NewRawBufferStore(data ir.Value, memref ir.Value, indices ...ir.Value) *RawBufferStore {
	return &RawBufferStore{data, newBufferAccess(memref, indices)}
}

// Mnemonic returns the textual name of this operation.
func (p *RawBufferStore) Mnemonic() string {
	return "amdgpu.raw.buffer.store"
}

// Data returns the value being written.
func (p *RawBufferStore) Data() ir.Value {
	return p.data
}

// Operands implementation for the Instruction interface.
func (p *RawBufferStore) Operands() []*ir.Value {
	return append([]*ir.Value{&p.data}, p.bufferAccess.Operands()...)
}

func (p *RawBufferStore) access() *bufferAccess { return &p.bufferAccess }
func (p *RawBufferStore) storeData() ir.Value   { return p.data }
func (p *RawBufferStore) wantedType() ir.Type   { return p.data.Type() }

// ============================================================================
// Atomic add
// ============================================================================

// RawBufferAtomicFadd atomically adds a floating point value to an element
// of a memref at a given index tuple.
type RawBufferAtomicFadd struct {
	// Value being added.
	data ir.Value
	//
	bufferAccess
}

// NewRawBufferAtomicFadd constructs an atomic addition of the given value to
// an element of a memref.  Bounds checking is enabled by default.
func NewRawBufferAtomicFadd(data ir.Value, memref ir.Value, indices ...ir.Value) *RawBufferAtomicFadd {
	return &RawBufferAtomicFadd{data, newBufferAccess(memref, indices)}
}

// Mnemonic returns the textual name of this operation.
func (p *RawBufferAtomicFadd) Mnemonic() string {
	return "amdgpu.raw.buffer.atomic.fadd"
}

// Data returns the value being added.
func (p *RawBufferAtomicFadd) Data() ir.Value {
	return p.data
}

// Operands implementation for the Instruction interface.
func (p *RawBufferAtomicFadd) Operands() []*ir.Value {
	return append([]*ir.Value{&p.data}, p.bufferAccess.Operands()...)
}

func (p *RawBufferAtomicFadd) access() *bufferAccess { return &p.bufferAccess }
func (p *RawBufferAtomicFadd) storeData() ir.Value   { return p.data }
func (p *RawBufferAtomicFadd) wantedType() ir.Type   { return p.data.Type() }

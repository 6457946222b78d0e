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
	"github.com/rocforge/go-rocdl/pkg/chipset"
	"github.com/rocforge/go-rocdl/pkg/ir"
	"github.com/rocforge/go-rocdl/pkg/ir/rocdl"
	"github.com/rocforge/go-rocdl/pkg/util"
	"github.com/rocforge/go-rocdl/pkg/util/source"

	log "github.com/sirupsen/logrus"
)

// Lowering converts the buffer operations of a module into their hardware
// intrinsic form for a given target chipset.  Memref parameters become
// descriptor structs, whilst each buffer operation becomes a raw intrinsic
// taking a buffer resource and explicit byte offsets.  Operations which
// cannot be lowered are reported as errors, against their source spans where
// a source map has been registered.
type Lowering struct {
	// Chipset being targeted.
	chipset chipset.Chipset
	// Mapping of instructions to their originating source (if any).
	srcmaps *source.Maps[ir.Instruction]
	// Failures accumulated so far.
	errs []error
	// Operations lowered so far.
	lowered uint
}

// NewLowering constructs a lowering targeting a given chipset.
func NewLowering(chip chipset.Chipset) *Lowering {
	return &Lowering{chip, source.NewSourceMaps[ir.Instruction](), nil, 0}
}

// AddSourceMap registers a mapping of instructions to their source spans,
// enabling failures to be reported against the originating text.
func (p *Lowering) AddSourceMap(srcmap *source.Map[ir.Instruction]) {
	p.srcmaps.Join(srcmap)
}

// LowerModule converts every buffer operation in the given module, returning
// the failures encountered (if any).  The module is updated in place, though
// operations which failed to lower are left untouched.
func (p *Lowering) LowerModule(module *ir.Module) []error {
	stats := util.NewPerfStats()
	//
	for _, fn := range module.Funcs() {
		p.LowerFunc(fn)
	}
	//
	log.Debugf("lowered %d operations (%d failures)", p.lowered, len(p.errs))
	stats.Log("Lowering buffer operations")
	//
	return p.errs
}

// LowerFunc converts every buffer operation in the given function, returning
// all failures accumulated by this lowering so far.
func (p *Lowering) LowerFunc(fn *ir.Func) []error {
	memrefs := p.lowerSignature(fn)
	rewriter := ir.NewRewriter(fn)
	//
	for rewriter.Next() {
		p.lowerInstruction(rewriter, memrefs)
	}
	//
	rewriter.Finish()
	//
	log.Debugf("lowered function %s for %s", fn.Name(), p.chipset.String())
	//
	return p.errs
}

// lowerSignature converts every memref parameter of the given function into
// its descriptor struct, returning the original memref type of each
// converted parameter.
func (p *Lowering) lowerSignature(fn *ir.Func) map[ir.Value]*ir.MemRefType {
	memrefs := make(map[ir.Value]*ir.MemRefType)
	//
	for _, param := range fn.Params() {
		if memref, ok := param.Type().(*ir.MemRefType); ok {
			memrefs[param] = memref
			param.SetType(rocdl.MemRefDescriptorType(memref))
		}
	}
	//
	return memrefs
}

// lowerInstruction dispatches on the instruction currently under the
// rewriter.  Instructions which are not buffer operations pass through
// untouched.
func (p *Lowering) lowerInstruction(rewriter *ir.Rewriter, memrefs map[ir.Value]*ir.MemRefType) {
	switch op := rewriter.Instruction().(type) {
	case *RawBufferLoad:
		p.lowerBuffer(rewriter, op, memrefs)
	case *RawBufferStore:
		p.lowerBuffer(rewriter, op, memrefs)
	case *RawBufferAtomicFadd:
		p.lowerBuffer(rewriter, op, memrefs)
	case *LDSBarrier:
		p.lowerBarrier(rewriter, op)
	}
}

// bufferOp provides a uniform view of the three buffer operations for the
// lowering: the operation's name, its common operand bundle, the value being
// written (nil for loads), and the type the access is wanted at.
type bufferOp interface {
	ir.Instruction
	// Textual name of the operation.
	Mnemonic() string
	// Common operand bundle.
	access() *bufferAccess
	// Value being written, or nil for loads.
	storeData() ir.Value
	// Type the access is wanted at.
	wantedType() ir.Type
}

// lowerBuffer converts a single buffer operation into its raw intrinsic
// form.  The operation's memref and indices are expanded into a buffer
// resource descriptor together with byte offsets, with the accessed value
// repacked to its wire type where the hardware requires this.
func (p *Lowering) lowerBuffer(rewriter *ir.Rewriter, op bufferOp, memrefs map[ir.Value]*ir.MemRefType) {
	access := op.access()
	// Check target has the buffer instructions
	if p.chipset.Major < 9 {
		p.fail(op, &UnsupportedChipsetError{p.chipset})
		return
	}
	//
	memref, ok := memrefs[access.MemRef()]
	// Sanity check memref operand was a converted parameter
	if !ok {
		panic("memref operand is not a lowered parameter")
	}
	// Determine type at which the access travels
	wire, err := wireType(op.wantedType())
	//
	if err != nil {
		p.fail(op, err)
		return
	}
	// Resolve the layout into strides and a base offset
	strides, offset, ok := memref.StridesAndOffset()
	//
	if !ok {
		p.fail(op, &UnrepresentableLayoutError{memref})
		return
	}
	//
	state := bufferLowering{
		chipset:  p.chipset,
		rewriter: rewriter,
		access:   access,
		memref:   memref,
		desc:     rocdl.NewMemRefDescriptor(access.MemRef()),
		strides:  strides,
		offset:   offset,
		ebw:      uint64(ir.BitWidth(memref.Elem) / 8),
	}
	// Repack the stored value onto the wire (where needed)
	data := op.storeData()
	//
	if data != nil && !ir.Equal(data.Type(), wire) {
		data = state.emit(rocdl.NewBitcast(wire, data))
	}
	//
	var (
		resource = state.buildResource()
		voffset  = state.buildVOffset()
		soffset  = state.buildSOffset()
		aux      = state.i32Const(0)
	)
	//
	switch op := op.(type) {
	case *RawBufferLoad:
		load := state.emit(rocdl.NewRawBufferLoad(wire, resource, voffset, soffset, aux))
		// Repack the loaded value off the wire (where needed)
		if !ir.Equal(wire, op.typ) {
			load = state.emit(rocdl.NewBitcast(op.typ, load))
		}
		//
		rewriter.Replace(load)
	case *RawBufferStore:
		rewriter.Emit(rocdl.NewRawBufferStore(data, resource, voffset, soffset, aux))
		rewriter.Erase()
	case *RawBufferAtomicFadd:
		rewriter.Emit(rocdl.NewRawBufferAtomicFadd(data, resource, voffset, soffset, aux))
		rewriter.Erase()
	}
	//
	p.lowered++
	log.Debugf("lowered %s as %s", op.Mnemonic(), wire.String())
}

// lowerBarrier converts a workgroup barrier into the corresponding assembly
// sequence: wait for outstanding LDS operations, then rendezvous.
func (p *Lowering) lowerBarrier(rewriter *ir.Rewriter, op *LDSBarrier) {
	asm := rocdl.NewInlineAsm("s_waitcnt lgkmcnt(0)\ns_barrier", "", true)
	//
	rewriter.Emit(asm)
	rewriter.Erase()
	//
	p.lowered++
	log.Debugf("lowered %s", op.Mnemonic())
}

// fail records a lowering failure, attaching the source span of the failed
// operation where one is known.
func (p *Lowering) fail(op ir.Instruction, err error) {
	if p.srcmaps.Has(op) {
		p.errs = append(p.errs, p.srcmaps.SyntaxError(op, err.Error()))
	} else {
		p.errs = append(p.errs, err)
	}
}

// ============================================================================
// Per-operation state
// ============================================================================

// bufferLowering carries the state for lowering a single buffer operation:
// the operand bundle, the memref being addressed in both its original and
// descriptor forms, its resolved layout, and the width of its elements in
// bytes.
type bufferLowering struct {
	chipset  chipset.Chipset
	rewriter *ir.Rewriter
	access   *bufferAccess
	memref   *ir.MemRefType
	desc     rocdl.MemRefDescriptor
	strides  []ir.Extent
	offset   ir.Extent
	ebw      uint64
	// Element byte width as an i32 constant, created on first use.
	byteWidth ir.Value
}

// emit places an instruction which produces a value, returning that value.
func (p *bufferLowering) emit(instruction ir.Instruction) ir.Value {
	p.rewriter.Emit(instruction)
	//
	return instruction.(ir.Value)
}

// i32Const emits an i32 constant with the given value.
func (p *bufferLowering) i32Const(value uint32) ir.Value {
	return p.emit(rocdl.NewConst(ir.I32, uint64(value)))
}

// i64Const emits an i64 constant with the given value.
func (p *bufferLowering) i64Const(value uint64) ir.Value {
	return p.emit(rocdl.NewConst(ir.I64, value))
}

// byteWidthConst returns the element byte width as an i32 constant, emitted
// on first use so that all dynamic stride terms share one constant.
func (p *bufferLowering) byteWidthConst() ir.Value {
	if p.byteWidth == nil {
		p.byteWidth = p.i32Const(uint32(p.ebw))
	}
	//
	return p.byteWidth
}

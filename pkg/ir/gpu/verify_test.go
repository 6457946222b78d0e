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
	"testing"

	"github.com/rocforge/go-rocdl/pkg/ir"
	"github.com/rocforge/go-rocdl/pkg/ir/rocdl"
)

func Test_Verify_01(t *testing.T) {
	// Well formed operations of all three kinds
	var (
		memref = ir.NewMemRefType(ir.F32, ir.Known(4), ir.Known(8))
		m      = ir.NewParam("%m", memref)
		i      = ir.NewParam("%i", ir.I32)
		j      = ir.NewParam("%j", ir.I32)
		v      = ir.NewParam("%v", ir.F32)
		load   = NewRawBufferLoad(ir.F32, m, i, j)
	)
	//
	checkVerifies(t, moduleOf([]*ir.Param{m, i, j, v},
		load,
		NewRawBufferStore(v, m, i, j),
		NewRawBufferAtomicFadd(v, m, i, j),
		NewLDSBarrier(),
		ir.NewReturn(load)))
}

func Test_Verify_02(t *testing.T) {
	// Vector accesses against the element type are fine
	var (
		memref = ir.NewMemRefType(ir.F32, ir.Known(64))
		m      = ir.NewParam("%m", memref)
		i      = ir.NewParam("%i", ir.I32)
		load   = NewRawBufferLoad(ir.NewVectorType(4, ir.F32), m, i)
	)
	//
	checkVerifies(t, moduleOf([]*ir.Param{m, i}, load, ir.NewReturn(load)))
}

func Test_Verify_03(t *testing.T) {
	// Memrefs in the default and global spaces both pass
	for space := uint(0); space <= 1; space++ {
		var (
			memref = &ir.MemRefType{Elem: ir.F32, Shape: []ir.Extent{ir.Known(8)}, Space: space}
			m      = ir.NewParam("%m", memref)
			i      = ir.NewParam("%i", ir.I32)
			load   = NewRawBufferLoad(ir.F32, m, i)
		)
		//
		checkVerifies(t, moduleOf([]*ir.Param{m, i}, load, ir.NewReturn(load)))
	}
}

func Test_Verify_04(t *testing.T) {
	var (
		memref = ir.NewMemRefType(ir.F32, ir.Known(8))
		i      = ir.NewParam("%i", ir.I32)
		load   = NewRawBufferLoad(ir.F32, rocdl.NewUndef(memref), i)
	)
	//
	checkRejected(t, moduleOf([]*ir.Param{i}, load, ir.NewReturn(load)),
		"memref operand must be a function parameter")
}

func Test_Verify_05(t *testing.T) {
	var (
		m    = ir.NewParam("%m", ir.I32)
		i    = ir.NewParam("%i", ir.I32)
		load = NewRawBufferLoad(ir.F32, m, i)
	)
	//
	checkRejected(t, moduleOf([]*ir.Param{m, i}, load, ir.NewReturn(load)),
		"memref operand has type i32, not a memref")
}

func Test_Verify_06(t *testing.T) {
	var (
		memref = &ir.MemRefType{Elem: ir.F32, Shape: []ir.Extent{ir.Known(8)}, Space: 3}
		m      = ir.NewParam("%m", memref)
		i      = ir.NewParam("%i", ir.I32)
		load   = NewRawBufferLoad(ir.F32, m, i)
	)
	//
	checkRejected(t, moduleOf([]*ir.Param{m, i}, load, ir.NewReturn(load)),
		"buffer operations must operate on a memref in global memory")
}

func Test_Verify_07(t *testing.T) {
	var (
		memref = ir.NewMemRefType(ir.F32, ir.Known(4), ir.Known(8))
		m      = ir.NewParam("%m", memref)
		i      = ir.NewParam("%i", ir.I32)
		load   = NewRawBufferLoad(ir.F32, m, i)
	)
	//
	checkRejected(t, moduleOf([]*ir.Param{m, i}, load, ir.NewReturn(load)),
		"expected 2 indices to memref, found 1")
}

func Test_Verify_08(t *testing.T) {
	var (
		memref = ir.NewMemRefType(ir.F32, ir.Known(8))
		m      = ir.NewParam("%m", memref)
		i      = ir.NewParam("%i", ir.I64)
		load   = NewRawBufferLoad(ir.F32, m, i)
	)
	//
	checkRejected(t, moduleOf([]*ir.Param{m, i}, load, ir.NewReturn(load)),
		"buffer indices must have type i32")
}

func Test_Verify_09(t *testing.T) {
	var (
		memref = ir.NewMemRefType(ir.F32, ir.Known(8))
		m      = ir.NewParam("%m", memref)
		i      = ir.NewParam("%i", ir.I32)
		s      = ir.NewParam("%s", ir.I64)
		load   = NewRawBufferLoad(ir.F32, m, i)
	)
	//
	load.SetSOffset(s)
	//
	checkRejected(t, moduleOf([]*ir.Param{m, i, s}, load, ir.NewReturn(load)),
		"scalar offset must have type i32")
}

func Test_Verify_10(t *testing.T) {
	var (
		memref = ir.NewMemRefType(ir.I32, ir.Known(8))
		m      = ir.NewParam("%m", memref)
		i      = ir.NewParam("%i", ir.I32)
		load   = NewRawBufferLoad(ir.F32, m, i)
	)
	//
	checkRejected(t, moduleOf([]*ir.Param{m, i}, load, ir.NewReturn(load)),
		"accessed type f32 incompatible with memref of i32")
}

func Test_Verify_11(t *testing.T) {
	var (
		memref = ir.NewMemRefType(ir.F32, ir.Known(8))
		m      = ir.NewParam("%m", memref)
		i      = ir.NewParam("%i", ir.I32)
		load   = NewRawBufferLoad(ir.NewVectorType(4, ir.I32), m, i)
	)
	//
	checkRejected(t, moduleOf([]*ir.Param{m, i}, load, ir.NewReturn(load)),
		"accessed type (vec 4 i32) incompatible with memref of f32")
}

func Test_Verify_12(t *testing.T) {
	var (
		memref = ir.NewMemRefType(ir.I32, ir.Known(8))
		m      = ir.NewParam("%m", memref)
		i      = ir.NewParam("%i", ir.I32)
		v      = ir.NewParam("%v", ir.I32)
	)
	//
	checkRejected(t, moduleOf([]*ir.Param{m, i, v}, NewRawBufferAtomicFadd(v, m, i), ir.NewReturn()),
		"atomic fadd requires a floating point element type")
}

// ============================================================================
// Framework
// ============================================================================

// moduleOf constructs a module holding a single function with the given
// parameters and body.
func moduleOf(params []*ir.Param, instructions ...ir.Instruction) *ir.Module {
	fn := ir.NewFunc("kernel", params...)
	fn.Append(instructions...)
	//
	return ir.NewModule(fn)
}

func checkVerifies(t *testing.T, module *ir.Module) {
	if errs := Verify(module, nil); len(errs) != 0 {
		t.Errorf("unexpected errors: %v", errs)
	}
}

func checkRejected(t *testing.T, module *ir.Module, msg string) {
	checkOneError(t, Verify(module, nil), msg)
}

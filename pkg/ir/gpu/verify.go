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
	"fmt"

	"github.com/pkg/errors"
	"github.com/rocforge/go-rocdl/pkg/ir"
	"github.com/rocforge/go-rocdl/pkg/util/source"
)

// Verify checks that every buffer operation of the given module is well
// formed: each must access a memref-typed parameter held in global memory,
// supply one i32 index per dimension, and move a value built from the
// memref's element type.  Violations are reported against their source
// spans where a source map is given (which may be nil).
func Verify(module *ir.Module, srcmaps *source.Maps[ir.Instruction]) []error {
	var errs []error
	//
	for _, fn := range module.Funcs() {
		for _, instruction := range fn.Body() {
			if op, ok := instruction.(bufferOp); ok {
				if err := verifyBuffer(op, srcmaps); err != nil {
					errs = append(errs, err)
				}
			}
		}
	}
	//
	return errs
}

// verifyBuffer checks a single buffer operation, reporting the first
// violation found (if any).
func verifyBuffer(op bufferOp, srcmaps *source.Maps[ir.Instruction]) error {
	access := op.access()
	// Memref operand must be a parameter of memref type
	param, ok := access.MemRef().(*ir.Param)
	//
	if !ok {
		return verifyError(op, srcmaps, "memref operand must be a function parameter")
	}
	//
	memref, ok := param.Type().(*ir.MemRefType)
	//
	if !ok {
		return verifyError(op, srcmaps,
			fmt.Sprintf("memref operand has type %s, not a memref", param.Type()))
	}
	// Buffer instructions address global memory only
	if memref.Space > 1 {
		return verifyError(op, srcmaps, "buffer operations must operate on a memref in global memory")
	}
	//
	if rank := memref.Rank(); uint(len(access.Indices())) != rank {
		return verifyError(op, srcmaps,
			fmt.Sprintf("expected %d indices to memref, found %d", rank, len(access.Indices())))
	}
	//
	for _, index := range access.Indices() {
		if !ir.Equal(index.Type(), ir.I32) {
			return verifyError(op, srcmaps, "buffer indices must have type i32")
		}
	}
	//
	if soffset := access.SOffset(); soffset != nil && !ir.Equal(soffset.Type(), ir.I32) {
		return verifyError(op, srcmaps, "scalar offset must have type i32")
	}
	// Accessed value must be built from the element type
	wanted := op.wantedType()
	//
	if !compatibleAccessType(wanted, memref.Elem) {
		return verifyError(op, srcmaps,
			fmt.Sprintf("accessed type %s incompatible with memref of %s", wanted, memref.Elem))
	}
	// Atomic addition only defined on floating point elements
	if _, ok := op.(*RawBufferAtomicFadd); ok {
		if _, ok := memref.Elem.(*ir.FloatType); !ok {
			return verifyError(op, srcmaps, "atomic fadd requires a floating point element type")
		}
	}
	//
	return nil
}

// compatibleAccessType determines whether a value of the given type can be
// moved to or from a memref of the given element type: either the element
// type itself, or a vector thereof.
func compatibleAccessType(wanted ir.Type, elem ir.Type) bool {
	if vector, ok := wanted.(*ir.VectorType); ok {
		return ir.Equal(vector.Elem, elem)
	}
	//
	return ir.Equal(wanted, elem)
}

// verifyError constructs a verification failure for a given operation,
// attached to its source span where one is known.
func verifyError(op ir.Instruction, srcmaps *source.Maps[ir.Instruction], msg string) error {
	if srcmaps != nil && srcmaps.Has(op) {
		return srcmaps.SyntaxError(op, msg)
	}
	//
	return errors.New(msg)
}

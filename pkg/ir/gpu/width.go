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
)

// maxVectorOpWidth is the widest value a single buffer instruction can move,
// in bits.
const maxVectorOpWidth = 32 * 4

// wireType determines the type at which a value of the given type actually
// travels through a buffer instruction.  Scalars and vectors of at least
// word-sized elements pass through unchanged.  Vectors of sub-word elements
// are repacked: into a single integer when they fit within one word, and
// into a vector of words otherwise.  Accesses which exceed the instruction
// width, or which straddle words without filling them, are rejected.
func wireType(wanted ir.Type) (ir.Type, error) {
	vector, ok := wanted.(*ir.VectorType)
	// Scalars travel as themselves.
	if !ok {
		return wanted, nil
	}
	//
	var (
		elemBits  = ir.BitWidth(vector.Elem)
		totalBits = elemBits * vector.Len
	)
	//
	switch {
	case totalBits > maxVectorOpWidth:
		return nil, &OversizedAccessError{totalBits}
	case elemBits >= 32:
		return wanted, nil
	case totalBits > 32 && totalBits%32 != 0:
		return nil, &MisalignedPackedWidthError{totalBits}
	case totalBits > 32:
		return ir.NewVectorType(totalBits/32, ir.I32), nil
	default:
		return &ir.IntType{Bits: totalBits}, nil
	}
}

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

	"github.com/rocforge/go-rocdl/pkg/chipset"
	"github.com/rocforge/go-rocdl/pkg/ir"
)

// UnsupportedChipsetError indicates the target chipset predates the buffer
// instructions required by this lowering.
type UnsupportedChipsetError struct {
	// Chipset the lowering was targeting.
	Chipset chipset.Chipset
}

// Error implementation for the error interface.
func (p *UnsupportedChipsetError) Error() string {
	return fmt.Sprintf("raw buffer operations require GCN/CDNA/RDNA generation >= 9 (got %s)", p.Chipset)
}

// OversizedAccessError indicates a load or store wider than a single buffer
// instruction can move.
type OversizedAccessError struct {
	// Total width of the access, in bits.
	Bits uint
}

// Error implementation for the error interface.
func (p *OversizedAccessError) Error() string {
	return fmt.Sprintf(
		"total width of loads or stores must be no more than %d bits, but we call for %d bits",
		maxVectorOpWidth, p.Bits)
}

// MisalignedPackedWidthError indicates a vector of sub-word elements whose
// total width exceeds a word without dividing evenly into words, and which
// therefore cannot be repacked for the hardware.
type MisalignedPackedWidthError struct {
	// Total width of the access, in bits.
	Bits uint
}

// Error implementation for the error interface.
func (p *MisalignedPackedWidthError) Error() string {
	return "load or store of more than 32 bits that doesn't fit into words"
}

// UnrepresentableLayoutError indicates a memref whose layout does not expose
// strides, leaving no way to turn its indices into byte offsets.
type UnrepresentableLayoutError struct {
	// MemRef whose layout was rejected.
	MemRef *ir.MemRefType
}

// Error implementation for the error interface.
func (p *UnrepresentableLayoutError) Error() string {
	return "cannot lower memrefs without a strided layout"
}

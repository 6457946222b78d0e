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

// InlineAsm represents a verbatim fragment of assembly emitted straight into
// the instruction stream, as used for barriers and other sequences with no
// instruction-level representation.
type InlineAsm struct {
	// Assembly text, with instructions separated by newlines.
	assembly string
	// Operand constraint string.
	constraints string
	// Indicates whether this fragment has effects beyond its operands, which
	// prevents it from being scheduled away.
	sideEffects bool
}

// NewInlineAsm constructs an inline assembly fragment with the given
// constraint string.
func NewInlineAsm(assembly string, constraints string, sideEffects bool) *InlineAsm {
	return &InlineAsm{assembly, constraints, sideEffects}
}

// Assembly returns the assembly text of this fragment.
func (p *InlineAsm) Assembly() string {
	return p.assembly
}

// Constraints returns the operand constraint string of this fragment.
func (p *InlineAsm) Constraints() string {
	return p.constraints
}

// HasSideEffects indicates whether this fragment has effects beyond its
// operands.
func (p *InlineAsm) HasSideEffects() bool {
	return p.sideEffects
}

// Operands implementation for the Instruction interface.
func (p *InlineAsm) Operands() []*ir.Value {
	return nil
}

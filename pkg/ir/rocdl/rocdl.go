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

// Package rocdl provides the target instruction set which buffer operations
// are lowered into: the scalar and vector primitives needed to assemble a
// buffer resource descriptor, the raw buffer hardware intrinsics themselves,
// and inline assembly.  Instructions at this level correspond one-to-one with
// what the backend compiler accepts, hence lowered modules contain no
// operation requiring further conversion.
package rocdl

import (
	"github.com/rocforge/go-rocdl/pkg/ir"
)

// binOp provides the common state for binary operations.  The result type of
// a binary operation is always the type of its left operand.
type binOp struct {
	// Left operand.
	lhs ir.Value
	// Right operand.
	rhs ir.Value
}

// Lhs returns the left operand of this operation.
func (p *binOp) Lhs() ir.Value {
	return p.lhs
}

// Rhs returns the right operand of this operation.
func (p *binOp) Rhs() ir.Value {
	return p.rhs
}

// Type returns the type of the value produced by this operation.
func (p *binOp) Type() ir.Type {
	return p.lhs.Type()
}

// Operands implementation for the Instruction interface.
func (p *binOp) Operands() []*ir.Value {
	return []*ir.Value{&p.lhs, &p.rhs}
}

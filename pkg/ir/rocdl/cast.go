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

// castOp provides the common state for single-operand conversions, where the
// result type is given explicitly.
type castOp struct {
	// Result type of this conversion.
	typ ir.Type
	// Value being converted.
	operand ir.Value
}

// Operand returns the value being converted.
func (p *castOp) Operand() ir.Value {
	return p.operand
}

// Type returns the type of the value produced by this conversion.
func (p *castOp) Type() ir.Type {
	return p.typ
}

// Operands implementation for the Instruction interface.
func (p *castOp) Operands() []*ir.Value {
	return []*ir.Value{&p.operand}
}

// Trunc represents an integer truncation to a narrower type.
type Trunc struct{ castOp }

// NewTrunc constructs a truncation of the given value to a narrower integer
// type.
func NewTrunc(typ ir.Type, operand ir.Value) *Trunc {
	return &Trunc{castOp{typ, operand}}
}

// Bitcast represents a reinterpretation of a value as another type of
// identical bit width.
type Bitcast struct{ castOp }

// NewBitcast constructs a bitcast of the given value to a type of identical
// width.
func NewBitcast(typ ir.Type, operand ir.Value) *Bitcast {
	return &Bitcast{castOp{typ, operand}}
}

// PtrToInt represents the conversion of a pointer into its integer address.
type PtrToInt struct{ castOp }

// NewPtrToInt constructs a conversion of the given pointer into an integer
// address.
func NewPtrToInt(typ ir.Type, operand ir.Value) *PtrToInt {
	return &PtrToInt{castOp{typ, operand}}
}

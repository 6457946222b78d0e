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

// Const represents a scalar constant.  The value is held as a raw bit
// pattern, truncated to the width of the type, hence floating point constants
// are stored by their encoding.
type Const struct {
	// Type of this constant.
	typ ir.Type
	// Bit pattern of this constant.
	bits uint64
}

// NewConst constructs a constant of the given type from a raw bit pattern.
// Bits beyond the width of the type are discarded.
func NewConst(typ ir.Type, bits uint64) *Const {
	if width := ir.BitWidth(typ); width < 64 {
		bits &= (uint64(1) << width) - 1
	}
	//
	return &Const{typ, bits}
}

// Bits returns the bit pattern of this constant.
func (p *Const) Bits() uint64 {
	return p.bits
}

// Type returns the type of this constant.
func (p *Const) Type() ir.Type {
	return p.typ
}

// Operands implementation for the Instruction interface.
func (p *Const) Operands() []*ir.Value {
	return nil
}

// Undef represents an undefined value of a given type, as used to seed the
// assembly of a vector.
type Undef struct {
	// Type of this value.
	typ ir.Type
}

// NewUndef constructs an undefined value of the given type.
func NewUndef(typ ir.Type) *Undef {
	return &Undef{typ}
}

// Type returns the type of this value.
func (p *Undef) Type() ir.Type {
	return p.typ
}

// Operands implementation for the Instruction interface.
func (p *Undef) Operands() []*ir.Value {
	return nil
}

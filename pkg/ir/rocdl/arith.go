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

// Add represents integer addition.
type Add struct{ binOp }

// NewAdd constructs an addition of two values of identical integer type.
func NewAdd(lhs ir.Value, rhs ir.Value) *Add {
	return &Add{binOp{lhs, rhs}}
}

// Mul represents integer multiplication.
type Mul struct{ binOp }

// NewMul constructs a multiplication of two values of identical integer type.
func NewMul(lhs ir.Value, rhs ir.Value) *Mul {
	return &Mul{binOp{lhs, rhs}}
}

// And represents bitwise conjunction.
type And struct{ binOp }

// NewAnd constructs a bitwise conjunction of two values of identical integer
// type.
func NewAnd(lhs ir.Value, rhs ir.Value) *And {
	return &And{binOp{lhs, rhs}}
}

// LShr represents a logical shift right.
type LShr struct{ binOp }

// NewLShr constructs a logical shift of the left operand right by the number
// of bits given by the right operand.
func NewLShr(lhs ir.Value, rhs ir.Value) *LShr {
	return &LShr{binOp{lhs, rhs}}
}

// UMax represents an unsigned integer maximum.
type UMax struct{ binOp }

// NewUMax constructs the unsigned maximum of two values of identical integer
// type.
func NewUMax(lhs ir.Value, rhs ir.Value) *UMax {
	return &UMax{binOp{lhs, rhs}}
}

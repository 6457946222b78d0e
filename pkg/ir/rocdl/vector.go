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
	"fmt"

	"github.com/rocforge/go-rocdl/pkg/ir"
)

// InsertElement represents the insertion of a scalar into one lane of a
// vector, producing the updated vector.
type InsertElement struct {
	// Vector being updated.
	vector ir.Value
	// Scalar being inserted.
	element ir.Value
	// Lane being written.
	index uint
}

// NewInsertElement constructs an insertion of the given scalar into the given
// lane of a vector.
func NewInsertElement(vector ir.Value, element ir.Value, index uint) *InsertElement {
	return &InsertElement{vector, element, index}
}

// Vector returns the vector being updated.
func (p *InsertElement) Vector() ir.Value {
	return p.vector
}

// Element returns the scalar being inserted.
func (p *InsertElement) Element() ir.Value {
	return p.element
}

// Index returns the lane being written.
func (p *InsertElement) Index() uint {
	return p.index
}

// Type returns the type of the value produced, being that of the vector
// operand.
func (p *InsertElement) Type() ir.Type {
	return p.vector.Type()
}

// Operands implementation for the Instruction interface.
func (p *InsertElement) Operands() []*ir.Value {
	return []*ir.Value{&p.vector, &p.element}
}

// ExtractValue represents the extraction of a field from an aggregate value,
// where nested aggregates are reached via a path of indices.
type ExtractValue struct {
	// Type of the extracted field.
	typ ir.Type
	// Aggregate being read.
	aggregate ir.Value
	// Indices identifying the field.
	path []uint
}

// NewExtractValue constructs an extraction of the field identified by the
// given path.  The type of the field is resolved from the aggregate, with an
// invalid path resulting in a panic.
func NewExtractValue(aggregate ir.Value, path ...uint) *ExtractValue {
	typ := aggregate.Type()
	//
	for _, index := range path {
		switch t := typ.(type) {
		case *ir.StructType:
			if index >= uint(len(t.Fields)) {
				panic(fmt.Sprintf("field index %d out of bounds", index))
			}
			//
			typ = t.Fields[index]
		case *ir.ArrayType:
			if index >= t.Len {
				panic(fmt.Sprintf("array index %d out of bounds", index))
			}
			//
			typ = t.Elem
		default:
			panic(fmt.Sprintf("cannot extract from %s", typ.String()))
		}
	}
	//
	return &ExtractValue{typ, aggregate, path}
}

// Aggregate returns the aggregate being read.
func (p *ExtractValue) Aggregate() ir.Value {
	return p.aggregate
}

// Path returns the indices identifying the extracted field.
func (p *ExtractValue) Path() []uint {
	return p.path
}

// Type returns the type of the extracted field.
func (p *ExtractValue) Type() ir.Type {
	return p.typ
}

// Operands implementation for the Instruction interface.
func (p *ExtractValue) Operands() []*ir.Value {
	return []*ir.Value{&p.aggregate}
}

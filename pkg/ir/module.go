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

// Package ir provides the core representation of kernel modules: a type
// system covering scalars, vectors and strided multi-dimensional arrays
// (memrefs), along with functions whose bodies are straight-line sequences of
// instructions in static single assignment form.  Instructions which produce
// a value are themselves values, hence use chains arise directly from operand
// references.  The rewriter supports the in-place conversion of one
// instruction set into another, as performed when buffer operations are
// lowered into their hardware intrinsic form.
package ir

// Value represents a single SSA value, being either a function parameter or
// an instruction which produces a result.
type Value interface {
	// Type returns the type of this value.
	Type() Type
}

// Instruction represents a single operation within a function body.
type Instruction interface {
	// Operands returns pointers to the operand slots of this instruction,
	// thereby allowing uses to be rewritten in place.
	Operands() []*Value
}

// ============================================================================
// Parameters
// ============================================================================

// Param represents a single function parameter.
type Param struct {
	// Name of this parameter (e.g. "%arg0").
	name string
	// Type of this parameter.
	typ Type
}

// NewParam constructs a new parameter with a given name and type.
func NewParam(name string, typ Type) *Param {
	return &Param{name, typ}
}

// Name returns the name of this parameter.
func (p *Param) Name() string {
	return p.name
}

// Type returns the type of this parameter.
func (p *Param) Type() Type {
	return p.typ
}

// SetType assigns a new type to this parameter.  This arises when function
// signatures are rewritten during lowering, at which point memref parameters
// become their runtime descriptor structs.
func (p *Param) SetType(typ Type) {
	p.typ = typ
}

// ============================================================================
// Functions & Modules
// ============================================================================

// Func represents a single kernel function, comprising an ordered list of
// parameters followed by a straight-line body of instructions.
type Func struct {
	// Name of this function.
	name string
	// Parameters of this function.
	params []*Param
	// Instructions making up the body of this function.
	body []Instruction
}

// NewFunc constructs a new function with the given parameters and an
// (initially) empty body.
func NewFunc(name string, params ...*Param) *Func {
	return &Func{name, params, nil}
}

// Name returns the name of this function.
func (p *Func) Name() string {
	return p.name
}

// Params returns the parameters of this function.
func (p *Func) Params() []*Param {
	return p.params
}

// Body returns the instructions making up the body of this function.
func (p *Func) Body() []Instruction {
	return p.body
}

// Append adds zero or more instructions onto the end of this function's body.
func (p *Func) Append(instructions ...Instruction) {
	p.body = append(p.body, instructions...)
}

// Module represents a collection of kernel functions.
type Module struct {
	// Functions making up this module.
	funcs []*Func
}

// NewModule constructs a new module containing the given functions.
func NewModule(funcs ...*Func) *Module {
	return &Module{funcs}
}

// Funcs returns the functions making up this module.
func (p *Module) Funcs() []*Func {
	return p.funcs
}

// Add appends a function onto this module.
func (p *Module) Add(fn *Func) {
	p.funcs = append(p.funcs, fn)
}

// ============================================================================
// Return
// ============================================================================

// Return terminates a function body, yielding zero or more values to the
// caller.
type Return struct {
	// Values returned.
	values []Value
}

// NewReturn constructs a return of zero or more values.
func NewReturn(values ...Value) *Return {
	return &Return{values}
}

// Values returns the values yielded by this return.
func (p *Return) Values() []Value {
	return p.values
}

// Operands implementation for the Instruction interface.
func (p *Return) Operands() []*Value {
	operands := make([]*Value, len(p.values))
	//
	for i := range p.values {
		operands[i] = &p.values[i]
	}
	//
	return operands
}

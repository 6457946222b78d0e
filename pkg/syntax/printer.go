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

package syntax

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/rocforge/go-rocdl/pkg/ir"
	"github.com/rocforge/go-rocdl/pkg/ir/gpu"
	"github.com/rocforge/go-rocdl/pkg/ir/rocdl"
	"github.com/rocforge/go-rocdl/pkg/util"
)

// Print returns the textual form of the given module, which parses back to
// an identical module.  Parameters keep their names, whilst instruction
// results are named "%0", "%1" and so on in order of definition.
func Print(module *ir.Module) string {
	var p printer
	//
	for i, fn := range module.Funcs() {
		if i != 0 {
			p.builder.WriteString("\n")
		}
		//
		p.printFunction(fn)
	}
	//
	return p.builder.String()
}

// printer holds the state for printing a single module, notably the names
// assigned to the values of the enclosing function.
type printer struct {
	builder strings.Builder
	// Name of every value defined so far.
	names map[ir.Value]string
	// Names taken, to keep generated names clear of parameters.
	used map[string]bool
	// Next candidate for a generated name.
	counter uint
}

func (p *printer) printFunction(fn *ir.Func) {
	p.names = make(map[ir.Value]string)
	p.used = make(map[string]bool)
	p.counter = 0
	//
	fmt.Fprintf(&p.builder, "(defun %s (", fn.Name())
	//
	for i, param := range fn.Params() {
		if i != 0 {
			p.builder.WriteString(" ")
		}
		//
		fmt.Fprintf(&p.builder, "(%s %s)", param.Name(), param.Type().String())
		p.names[param] = param.Name()
		p.used[param.Name()] = true
	}
	//
	p.builder.WriteString(")")
	//
	for _, instruction := range fn.Body() {
		text := p.operationText(instruction)
		p.builder.WriteString("\n  ")
		// Bind results with def
		if value, ok := instruction.(ir.Value); ok {
			fmt.Fprintf(&p.builder, "(def %s %s)", p.bind(value), text)
		} else {
			p.builder.WriteString(text)
		}
	}
	//
	p.builder.WriteString(")\n")
}

// operationText renders a single operation, excluding any def binding its
// result.
func (p *printer) operationText(instruction ir.Instruction) string {
	switch op := instruction.(type) {
	case *rocdl.Const:
		return fmt.Sprintf("(const %s %s)", op.Type().String(), constText(op))
	case *rocdl.Undef:
		return fmt.Sprintf("(undef %s)", op.Type().String())
	case *rocdl.Trunc:
		return fmt.Sprintf("(trunc %s %s)", op.Type().String(), p.name(op.Operand()))
	case *rocdl.Bitcast:
		return fmt.Sprintf("(bitcast %s %s)", op.Type().String(), p.name(op.Operand()))
	case *rocdl.PtrToInt:
		return fmt.Sprintf("(ptrtoint %s %s)", op.Type().String(), p.name(op.Operand()))
	case *rocdl.Add:
		return p.binOpText("add", op.Lhs(), op.Rhs())
	case *rocdl.Mul:
		return p.binOpText("mul", op.Lhs(), op.Rhs())
	case *rocdl.And:
		return p.binOpText("and", op.Lhs(), op.Rhs())
	case *rocdl.LShr:
		return p.binOpText("lshr", op.Lhs(), op.Rhs())
	case *rocdl.UMax:
		return p.binOpText("umax", op.Lhs(), op.Rhs())
	case *rocdl.InsertElement:
		return fmt.Sprintf("(insertelement %s %s %d)",
			p.name(op.Vector()), p.name(op.Element()), op.Index())
	case *rocdl.ExtractValue:
		text := fmt.Sprintf("(extractvalue %s", p.name(op.Aggregate()))
		//
		for _, index := range op.Path() {
			text += fmt.Sprintf(" %d", index)
		}
		//
		return text + ")"
	case *rocdl.RawBufferLoad:
		return fmt.Sprintf("(rocdl.raw.buffer.load %s %s %s %s %s)", op.Type().String(),
			p.name(op.Resource()), p.name(op.VOffset()), p.name(op.SOffset()), p.name(op.Aux()))
	case *rocdl.RawBufferStore:
		return fmt.Sprintf("(rocdl.raw.buffer.store %s %s %s %s %s)", p.name(op.Data()),
			p.name(op.Resource()), p.name(op.VOffset()), p.name(op.SOffset()), p.name(op.Aux()))
	case *rocdl.RawBufferAtomicFadd:
		return fmt.Sprintf("(rocdl.raw.buffer.atomic.fadd %s %s %s %s %s)", p.name(op.Data()),
			p.name(op.Resource()), p.name(op.VOffset()), p.name(op.SOffset()), p.name(op.Aux()))
	case *rocdl.InlineAsm:
		text := fmt.Sprintf("(rocdl.inline.asm %s %s",
			strconv.Quote(op.Assembly()), strconv.Quote(op.Constraints()))
		//
		if op.HasSideEffects() {
			text += " side-effects"
		}
		//
		return text + ")"
	case *gpu.RawBufferLoad:
		return fmt.Sprintf("(amdgpu.raw.buffer.load %s %s)", op.Type().String(),
			p.bufferText(op.MemRef(), op.Indices(), op.SOffset(), op.BoundsCheck(), op.IndexOffset()))
	case *gpu.RawBufferStore:
		return fmt.Sprintf("(amdgpu.raw.buffer.store %s %s)", p.name(op.Data()),
			p.bufferText(op.MemRef(), op.Indices(), op.SOffset(), op.BoundsCheck(), op.IndexOffset()))
	case *gpu.RawBufferAtomicFadd:
		return fmt.Sprintf("(amdgpu.raw.buffer.atomic.fadd %s %s)", p.name(op.Data()),
			p.bufferText(op.MemRef(), op.Indices(), op.SOffset(), op.BoundsCheck(), op.IndexOffset()))
	case *gpu.LDSBarrier:
		return "(amdgpu.lds.barrier)"
	case *ir.Return:
		text := "(return"
		//
		for _, value := range op.Values() {
			text += " " + p.name(value)
		}
		//
		return text + ")"
	}
	//
	panic(fmt.Sprintf("unknown instruction %v", instruction))
}

// bufferText renders the common trailing form of a buffer operation: the
// memref and indices, followed by any non-default attribute clauses.
func (p *printer) bufferText(memref ir.Value, indices []ir.Value, soffset ir.Value,
	boundsCheck bool, indexOffset util.Option[uint32]) string {
	var builder strings.Builder
	//
	builder.WriteString(p.name(memref))
	//
	for _, index := range indices {
		builder.WriteString(" ")
		builder.WriteString(p.name(index))
	}
	//
	if soffset != nil {
		fmt.Fprintf(&builder, " (soffset %s)", p.name(soffset))
	}
	//
	if !boundsCheck {
		builder.WriteString(" (bounds-check false)")
	}
	//
	if indexOffset.HasValue() {
		fmt.Fprintf(&builder, " (index-offset %d)", indexOffset.Unwrap())
	}
	//
	return builder.String()
}

func (p *printer) binOpText(mnemonic string, lhs ir.Value, rhs ir.Value) string {
	return fmt.Sprintf("(%s %s %s)", mnemonic, p.name(lhs), p.name(rhs))
}

// constText renders the value of a constant: raw bits in hex for floats,
// unsigned decimal otherwise.
func constText(constant *rocdl.Const) string {
	if _, ok := constant.Type().(*ir.FloatType); ok {
		return fmt.Sprintf("0x%x", constant.Bits())
	}
	//
	return fmt.Sprintf("%d", constant.Bits())
}

// bind assigns a fresh name to a newly defined value.
func (p *printer) bind(value ir.Value) string {
	name := fmt.Sprintf("%%%d", p.counter)
	// Step over parameter names
	for p.used[name] {
		p.counter++
		name = fmt.Sprintf("%%%d", p.counter)
	}
	//
	p.counter++
	p.used[name] = true
	p.names[value] = name
	//
	return name
}

// name returns the name bound to a given value.
func (p *printer) name(value ir.Value) string {
	name, ok := p.names[value]
	//
	if !ok {
		panic("value used before definition")
	}
	//
	return name
}

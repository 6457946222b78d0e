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

// Package syntax provides the textual form of kernel modules: an
// s-expression syntax in which a module is a sequence of function
// definitions, each comprising typed parameters followed by a straight-line
// body of operations.  Value-producing operations are bound to names with
// def, and all types (including memrefs with their layout clauses) follow
// the grammar their String forms print.  Parsing yields an ir.Module
// together with a source map of its instructions, against which subsequent
// verification and lowering failures are reported.
package syntax

import (
	"fmt"
	"strconv"

	"github.com/rocforge/go-rocdl/pkg/ir"
	"github.com/rocforge/go-rocdl/pkg/ir/gpu"
	"github.com/rocforge/go-rocdl/pkg/ir/rocdl"
	"github.com/rocforge/go-rocdl/pkg/util/source"
	"github.com/rocforge/go-rocdl/pkg/util/source/sexp"
)

// ParseSourceFile parses a kernel module from a given source file, returning
// the module together with a source map of its instructions.  The parsed
// module is verified before being returned, hence ill-formed buffer
// operations are reported here as well.
func ParseSourceFile(srcfile *source.File) (*ir.Module, *source.Map[ir.Instruction], []source.SyntaxError) {
	var errs []source.SyntaxError
	// Parse into raw s-expressions
	terms, sexps, err := sexp.ParseAll(srcfile)
	//
	if err != nil {
		return nil, nil, []source.SyntaxError{*err}
	}
	//
	parser := &Parser{
		srcfile: srcfile,
		sexps:   sexps,
		types:   newTypeTranslator(srcfile, sexps),
		srcmap:  source.NewSourceMap[ir.Instruction](*srcfile),
		funcs:   make(map[string]bool),
	}
	//
	module := ir.NewModule()
	//
	for _, term := range terms {
		fn, ferrs := parser.parseFunction(term)
		//
		errs = append(errs, ferrs...)
		//
		if fn != nil {
			module.Add(fn)
		}
	}
	// Verify the parsed module is well formed
	if len(errs) == 0 {
		srcmaps := source.NewSourceMaps[ir.Instruction]()
		srcmaps.Join(parser.srcmap)
		//
		for _, err := range gpu.Verify(module, srcmaps) {
			if syntaxError, ok := err.(*source.SyntaxError); ok {
				errs = append(errs, *syntaxError)
			} else {
				errs = append(errs, *srcfile.SyntaxError(source.NewSpan(0, 1), err.Error()))
			}
		}
	}
	//
	if len(errs) != 0 {
		return nil, nil, errs
	}
	//
	return module, parser.srcmap, nil
}

// ParseString parses a kernel module from a given string, as a convenience
// around ParseSourceFile.
func ParseString(text string) (*ir.Module, *source.Map[ir.Instruction], []source.SyntaxError) {
	return ParseSourceFile(source.NewSourceFile("string", []byte(text)))
}

// Parser converts the textual form of a kernel module into its tree form,
// recording the source span of every instruction constructed.
type Parser struct {
	// Source file being parsed.
	srcfile *source.File
	// Source map of the raw s-expressions.
	sexps *source.Map[sexp.SExp]
	// Sub-translator for the type grammar.
	types *sexp.Translator[ir.Type]
	// Source map of constructed instructions.
	srcmap *source.Map[ir.Instruction]
	// Values in scope of the enclosing function, by name.
	scope map[string]ir.Value
	// Function names seen so far.
	funcs map[string]bool
}

// parseFunction parses a single function definition of the form "(defun name
// ((param type) ...) instruction ...)".
func (p *Parser) parseFunction(term sexp.SExp) (*ir.Func, []source.SyntaxError) {
	var errs []source.SyntaxError
	//
	list := term.AsList()
	//
	if list == nil || !list.MatchSymbols(1, "defun") || list.Len() < 3 {
		return nil, p.syntaxErrors(term, "expected function definition")
	}
	//
	name := list.Get(1).AsSymbol()
	//
	if name == nil {
		return nil, p.syntaxErrors(list.Get(1), "malformed function name")
	} else if p.funcs[name.Value] {
		return nil, p.syntaxErrors(list.Get(1), fmt.Sprintf("function %s already defined", name.Value))
	}
	//
	p.funcs[name.Value] = true
	// Fresh scope for this function
	p.scope = make(map[string]ir.Value)
	//
	params, perrs := p.parseParameters(list.Get(2))
	//
	if len(perrs) != 0 {
		return nil, perrs
	}
	//
	fn := ir.NewFunc(name.Value, params...)
	// Parse the body, continuing past failed instructions so that as many
	// problems as possible are reported in one go.
	for i := 3; i < list.Len(); i++ {
		errs = append(errs, p.parseInstruction(fn, list.Get(i))...)
	}
	//
	return fn, errs
}

// parseParameters parses the parameter list of a function, declaring each
// parameter into the enclosing scope.
func (p *Parser) parseParameters(term sexp.SExp) ([]*ir.Param, []source.SyntaxError) {
	list := term.AsList()
	//
	if list == nil {
		return nil, p.syntaxErrors(term, "malformed parameter list")
	}
	//
	params := make([]*ir.Param, list.Len())
	//
	for i := 0; i < list.Len(); i++ {
		pair := list.Get(i).AsList()
		//
		if pair == nil || pair.Len() != 2 || pair.Get(0).AsSymbol() == nil {
			return nil, p.syntaxErrors(list.Get(i), "malformed parameter")
		}
		//
		name := pair.Get(0).AsSymbol().Value
		//
		if _, ok := p.scope[name]; ok {
			return nil, p.syntaxErrors(pair.Get(0), fmt.Sprintf("parameter %s already declared", name))
		}
		//
		typ, errs := p.types.Translate(pair.Get(1))
		//
		if len(errs) != 0 {
			return nil, errs
		}
		//
		params[i] = ir.NewParam(name, typ)
		p.scope[name] = params[i]
	}
	//
	return params, nil
}

// parseInstruction parses a single instruction of a function body, being
// either a def binding the result of an operation to a name, or a bare
// operation producing no result.
func (p *Parser) parseInstruction(fn *ir.Func, term sexp.SExp) []source.SyntaxError {
	list := term.AsList()
	//
	if list == nil || list.Len() == 0 || list.Get(0).AsSymbol() == nil {
		return p.syntaxErrors(term, "expected instruction")
	}
	// Result-binding form
	if list.MatchSymbols(1, "def") {
		if list.Len() != 3 || list.Get(1).AsSymbol() == nil {
			return p.syntaxErrors(term, "malformed def")
		}
		//
		name := list.Get(1).AsSymbol().Value
		//
		if _, ok := p.scope[name]; ok {
			return p.syntaxErrors(list.Get(1), fmt.Sprintf("value %s already defined", name))
		}
		//
		op, errs := p.parseOperation(list.Get(2))
		//
		if len(errs) != 0 {
			return errs
		}
		//
		value, ok := op.(ir.Value)
		//
		if !ok {
			return p.syntaxErrors(list.Get(2), "operation produces no result")
		}
		//
		p.scope[name] = value
		fn.Append(op)
		p.srcmap.Put(op, p.spanOf(term))
		//
		return nil
	}
	// Bare form
	op, errs := p.parseOperation(term)
	//
	if len(errs) != 0 {
		return errs
	}
	//
	if _, ok := op.(ir.Value); ok {
		return p.syntaxErrors(term, "result of operation must be bound with def")
	}
	//
	fn.Append(op)
	// Zero size instructions (e.g. barriers) may share an address, hence may
	// already be registered.
	if !p.srcmap.Has(op) {
		p.srcmap.Put(op, p.spanOf(term))
	}
	//
	return nil
}

// parseOperation parses a single operation, dispatching on its mnemonic.
func (p *Parser) parseOperation(term sexp.SExp) (ir.Instruction, []source.SyntaxError) {
	list := term.AsList()
	//
	if list == nil || list.Len() == 0 || list.Get(0).AsSymbol() == nil {
		return nil, p.syntaxErrors(term, "expected operation")
	}
	//
	switch list.Get(0).AsSymbol().Value {
	case "const":
		return p.parseConst(list)
	case "undef":
		return p.parseUndef(list)
	case "trunc", "bitcast", "ptrtoint":
		return p.parseCast(list)
	case "add", "mul", "and", "lshr", "umax":
		return p.parseBinOp(list)
	case "insertelement":
		return p.parseInsertElement(list)
	case "extractvalue":
		return p.parseExtractValue(list)
	case "return":
		return p.parseReturn(list)
	case "amdgpu.raw.buffer.load":
		return p.parseBufferLoad(list)
	case "amdgpu.raw.buffer.store", "amdgpu.raw.buffer.atomic.fadd":
		return p.parseBufferWrite(list)
	case "amdgpu.lds.barrier":
		return gpu.NewLDSBarrier(), nil
	case "rocdl.raw.buffer.load":
		return p.parseIntrinsicLoad(list)
	case "rocdl.raw.buffer.store", "rocdl.raw.buffer.atomic.fadd":
		return p.parseIntrinsicWrite(list)
	case "rocdl.inline.asm":
		return p.parseInlineAsm(list)
	}
	//
	return nil, p.syntaxErrors(list.Get(0),
		fmt.Sprintf("unknown operation %s", list.Get(0).AsSymbol().Value))
}

// parseConst parses "(const type literal)".
func (p *Parser) parseConst(list *sexp.List) (ir.Instruction, []source.SyntaxError) {
	if list.Len() != 3 || list.Get(2).AsSymbol() == nil {
		return nil, p.syntaxErrors(list, "malformed constant")
	}
	//
	typ, errs := p.types.Translate(list.Get(1))
	//
	if len(errs) != 0 {
		return nil, errs
	}
	//
	bits, err := constantBits(typ, list.Get(2).AsSymbol().Value)
	//
	if err != nil {
		return nil, p.syntaxErrors(list.Get(2), fmt.Sprintf("malformed constant (%s)", err))
	}
	//
	return rocdl.NewConst(typ, bits), nil
}

// parseUndef parses "(undef type)".
func (p *Parser) parseUndef(list *sexp.List) (ir.Instruction, []source.SyntaxError) {
	if list.Len() != 2 {
		return nil, p.syntaxErrors(list, "malformed undef")
	}
	//
	typ, errs := p.types.Translate(list.Get(1))
	//
	if len(errs) != 0 {
		return nil, errs
	}
	//
	return rocdl.NewUndef(typ), nil
}

// parseCast parses "(trunc type value)" and the other cast operations.
func (p *Parser) parseCast(list *sexp.List) (ir.Instruction, []source.SyntaxError) {
	if list.Len() != 3 {
		return nil, p.syntaxErrors(list, "malformed cast")
	}
	//
	typ, errs := p.types.Translate(list.Get(1))
	//
	if len(errs) != 0 {
		return nil, errs
	}
	//
	operand, errs := p.valueOf(list.Get(2))
	//
	if len(errs) != 0 {
		return nil, errs
	}
	//
	switch list.Get(0).AsSymbol().Value {
	case "trunc":
		return rocdl.NewTrunc(typ, operand), nil
	case "bitcast":
		return rocdl.NewBitcast(typ, operand), nil
	default:
		return rocdl.NewPtrToInt(typ, operand), nil
	}
}

// parseBinOp parses "(add lhs rhs)" and the other binary operations.
func (p *Parser) parseBinOp(list *sexp.List) (ir.Instruction, []source.SyntaxError) {
	if list.Len() != 3 {
		return nil, p.syntaxErrors(list, "malformed binary operation")
	}
	//
	lhs, errs := p.valueOf(list.Get(1))
	//
	if len(errs) != 0 {
		return nil, errs
	}
	//
	rhs, errs := p.valueOf(list.Get(2))
	//
	if len(errs) != 0 {
		return nil, errs
	}
	//
	switch list.Get(0).AsSymbol().Value {
	case "add":
		return rocdl.NewAdd(lhs, rhs), nil
	case "mul":
		return rocdl.NewMul(lhs, rhs), nil
	case "and":
		return rocdl.NewAnd(lhs, rhs), nil
	case "lshr":
		return rocdl.NewLShr(lhs, rhs), nil
	default:
		return rocdl.NewUMax(lhs, rhs), nil
	}
}

// parseInsertElement parses "(insertelement vector element lane)".
func (p *Parser) parseInsertElement(list *sexp.List) (ir.Instruction, []source.SyntaxError) {
	if list.Len() != 4 {
		return nil, p.syntaxErrors(list, "malformed insertelement")
	}
	//
	vector, errs := p.valueOf(list.Get(1))
	//
	if len(errs) != 0 {
		return nil, errs
	}
	//
	element, errs := p.valueOf(list.Get(2))
	//
	if len(errs) != 0 {
		return nil, errs
	}
	//
	lane, ok := uintValue(list.Get(3))
	//
	if !ok {
		return nil, p.syntaxErrors(list.Get(3), "malformed lane")
	}
	//
	return rocdl.NewInsertElement(vector, element, uint(lane)), nil
}

// parseExtractValue parses "(extractvalue aggregate index ...)".
func (p *Parser) parseExtractValue(list *sexp.List) (ir.Instruction, []source.SyntaxError) {
	if list.Len() < 3 {
		return nil, p.syntaxErrors(list, "malformed extractvalue")
	}
	//
	aggregate, errs := p.valueOf(list.Get(1))
	//
	if len(errs) != 0 {
		return nil, errs
	}
	//
	path := make([]uint, list.Len()-2)
	//
	for i := 2; i < list.Len(); i++ {
		index, ok := uintValue(list.Get(i))
		//
		if !ok {
			return nil, p.syntaxErrors(list.Get(i), "malformed index")
		}
		//
		path[i-2] = uint(index)
	}
	//
	if !validExtractPath(aggregate.Type(), path) {
		return nil, p.syntaxErrors(list, "extractvalue path does not match aggregate")
	}
	//
	return rocdl.NewExtractValue(aggregate, path...), nil
}

// parseReturn parses "(return value ...)".
func (p *Parser) parseReturn(list *sexp.List) (ir.Instruction, []source.SyntaxError) {
	values := make([]ir.Value, list.Len()-1)
	//
	for i := 1; i < list.Len(); i++ {
		value, errs := p.valueOf(list.Get(i))
		//
		if len(errs) != 0 {
			return nil, errs
		}
		//
		values[i-1] = value
	}
	//
	return ir.NewReturn(values...), nil
}

// parseBufferLoad parses "(amdgpu.raw.buffer.load type memref index ...
// clause ...)".
func (p *Parser) parseBufferLoad(list *sexp.List) (ir.Instruction, []source.SyntaxError) {
	if list.Len() < 3 {
		return nil, p.syntaxErrors(list, "malformed buffer load")
	}
	//
	typ, errs := p.types.Translate(list.Get(1))
	//
	if len(errs) != 0 {
		return nil, errs
	}
	//
	memref, errs := p.valueOf(list.Get(2))
	//
	if len(errs) != 0 {
		return nil, errs
	}
	//
	indices, next, errs := p.parseIndices(list, 3)
	//
	if len(errs) != 0 {
		return nil, errs
	}
	//
	op := gpu.NewRawBufferLoad(typ, memref, indices...)
	//
	return op, p.parseBufferClauses(op, list, next)
}

// parseBufferWrite parses "(amdgpu.raw.buffer.store data memref index ...
// clause ...)", and likewise for atomic fadd.
func (p *Parser) parseBufferWrite(list *sexp.List) (ir.Instruction, []source.SyntaxError) {
	if list.Len() < 4 {
		return nil, p.syntaxErrors(list, "malformed buffer write")
	}
	//
	data, errs := p.valueOf(list.Get(1))
	//
	if len(errs) != 0 {
		return nil, errs
	}
	//
	memref, errs := p.valueOf(list.Get(2))
	//
	if len(errs) != 0 {
		return nil, errs
	}
	//
	indices, next, errs := p.parseIndices(list, 3)
	//
	if len(errs) != 0 {
		return nil, errs
	}
	//
	var op bufferOp
	//
	if list.MatchSymbols(1, "amdgpu.raw.buffer.store") {
		op = gpu.NewRawBufferStore(data, memref, indices...)
	} else {
		op = gpu.NewRawBufferAtomicFadd(data, memref, indices...)
	}
	//
	return op, p.parseBufferClauses(op, list, next)
}

// parseIndices consumes value symbols from a given position, stopping at the
// first clause (or the end of the list).
func (p *Parser) parseIndices(list *sexp.List, from int) ([]ir.Value, int, []source.SyntaxError) {
	var indices []ir.Value
	//
	for ; from < list.Len() && list.Get(from).AsSymbol() != nil; from++ {
		index, errs := p.valueOf(list.Get(from))
		//
		if len(errs) != 0 {
			return nil, from, errs
		}
		//
		indices = append(indices, index)
	}
	//
	return indices, from, nil
}

// bufferOp captures what the three buffer operations have in common, namely
// their optional attributes.
type bufferOp interface {
	ir.Instruction
	// SetSOffset assigns the scalar offset operand.
	SetSOffset(ir.Value)
	// SetBoundsCheck determines whether out-of-bounds accesses are dropped.
	SetBoundsCheck(bool)
	// SetIndexOffset assigns a static index offset.
	SetIndexOffset(uint32)
}

// parseBufferClauses parses the optional attribute clauses of a buffer
// operation: "(soffset value)", "(bounds-check bool)" and "(index-offset
// n)".
func (p *Parser) parseBufferClauses(op bufferOp, list *sexp.List, from int) []source.SyntaxError {
	for ; from < list.Len(); from++ {
		clause := list.Get(from).AsList()
		//
		if clause == nil || clause.Len() != 2 || clause.Get(0).AsSymbol() == nil {
			return p.syntaxErrors(list.Get(from), "malformed attribute clause")
		}
		//
		switch clause.Get(0).AsSymbol().Value {
		case "soffset":
			soffset, errs := p.valueOf(clause.Get(1))
			//
			if len(errs) != 0 {
				return errs
			}
			//
			op.SetSOffset(soffset)
		case "bounds-check":
			enable, ok := boolValue(clause.Get(1))
			//
			if !ok {
				return p.syntaxErrors(clause.Get(1), "malformed bool")
			}
			//
			op.SetBoundsCheck(enable)
		case "index-offset":
			offset, ok := uintValue(clause.Get(1))
			//
			if !ok || offset > 0xffffffff {
				return p.syntaxErrors(clause.Get(1), "malformed index offset")
			}
			//
			op.SetIndexOffset(uint32(offset))
		default:
			return p.syntaxErrors(clause.Get(0), "unknown attribute clause")
		}
	}
	//
	return nil
}

// parseIntrinsicLoad parses "(rocdl.raw.buffer.load type rsrc voffset
// soffset aux)".
func (p *Parser) parseIntrinsicLoad(list *sexp.List) (ir.Instruction, []source.SyntaxError) {
	if list.Len() != 6 {
		return nil, p.syntaxErrors(list, "malformed intrinsic call")
	}
	//
	typ, errs := p.types.Translate(list.Get(1))
	//
	if len(errs) != 0 {
		return nil, errs
	}
	//
	args, errs := p.valuesOf(list, 2)
	//
	if len(errs) != 0 {
		return nil, errs
	}
	//
	return rocdl.NewRawBufferLoad(typ, args[0], args[1], args[2], args[3]), nil
}

// parseIntrinsicWrite parses "(rocdl.raw.buffer.store data rsrc voffset
// soffset aux)", and likewise for atomic fadd.
func (p *Parser) parseIntrinsicWrite(list *sexp.List) (ir.Instruction, []source.SyntaxError) {
	if list.Len() != 6 {
		return nil, p.syntaxErrors(list, "malformed intrinsic call")
	}
	//
	args, errs := p.valuesOf(list, 1)
	//
	if len(errs) != 0 {
		return nil, errs
	}
	//
	if list.MatchSymbols(1, "rocdl.raw.buffer.store") {
		return rocdl.NewRawBufferStore(args[0], args[1], args[2], args[3], args[4]), nil
	}
	//
	return rocdl.NewRawBufferAtomicFadd(args[0], args[1], args[2], args[3], args[4]), nil
}

// parseInlineAsm parses "(rocdl.inline.asm assembly constraints
// side-effects?)", where assembly and constraints are string literals.
func (p *Parser) parseInlineAsm(list *sexp.List) (ir.Instruction, []source.SyntaxError) {
	if list.Len() != 3 && list.Len() != 4 {
		return nil, p.syntaxErrors(list, "malformed inline asm")
	}
	//
	assembly, ok := stringValue(list.Get(1))
	//
	if !ok {
		return nil, p.syntaxErrors(list.Get(1), "malformed string literal")
	}
	//
	constraints, ok := stringValue(list.Get(2))
	//
	if !ok {
		return nil, p.syntaxErrors(list.Get(2), "malformed string literal")
	}
	//
	sideEffects := false
	//
	if list.Len() == 4 {
		symbol := list.Get(3).AsSymbol()
		//
		if symbol == nil || symbol.Value != "side-effects" {
			return nil, p.syntaxErrors(list.Get(3), "expected side-effects")
		}
		//
		sideEffects = true
	}
	//
	return rocdl.NewInlineAsm(assembly, constraints, sideEffects), nil
}

// ============================================================================
// Helpers
// ============================================================================

// valueOf resolves a symbol into the value it names in the enclosing scope.
func (p *Parser) valueOf(term sexp.SExp) (ir.Value, []source.SyntaxError) {
	symbol := term.AsSymbol()
	//
	if symbol == nil {
		return nil, p.syntaxErrors(term, "expected a value name")
	}
	//
	value, ok := p.scope[symbol.Value]
	//
	if !ok {
		return nil, p.syntaxErrors(term, fmt.Sprintf("unknown value %s", symbol.Value))
	}
	//
	return value, nil
}

// valuesOf resolves every element of a list from a given position onwards.
func (p *Parser) valuesOf(list *sexp.List, from int) ([]ir.Value, []source.SyntaxError) {
	values := make([]ir.Value, list.Len()-from)
	//
	for i := from; i < list.Len(); i++ {
		value, errs := p.valueOf(list.Get(i))
		//
		if len(errs) != 0 {
			return nil, errs
		}
		//
		values[i-from] = value
	}
	//
	return values, nil
}

// spanOf returns the span of a given s-expression in the source file.
func (p *Parser) spanOf(term sexp.SExp) source.Span {
	return p.sexps.Get(term)
}

// syntaxErrors constructs a syntax error against the span of a given
// s-expression.
func (p *Parser) syntaxErrors(term sexp.SExp, msg string) []source.SyntaxError {
	return []source.SyntaxError{*p.srcfile.SyntaxError(p.spanOf(term), msg)}
}

// stringValue extracts a string literal, stripping its quotes and resolving
// its escapes.
func stringValue(term sexp.SExp) (string, bool) {
	symbol := term.AsSymbol()
	//
	if symbol == nil || len(symbol.Value) == 0 || symbol.Value[0] != '"' {
		return "", false
	}
	//
	value, err := strconv.Unquote(symbol.Value)
	//
	return value, err == nil
}

// boolValue parses a boolean symbol.
func boolValue(term sexp.SExp) (bool, bool) {
	symbol := term.AsSymbol()
	//
	if symbol == nil {
		return false, false
	}
	//
	switch symbol.Value {
	case "true":
		return true, true
	case "false":
		return false, true
	}
	//
	return false, false
}

// validExtractPath checks a given extraction path resolves through the type
// of the aggregate.
func validExtractPath(typ ir.Type, path []uint) bool {
	for _, index := range path {
		switch t := typ.(type) {
		case *ir.StructType:
			if index >= uint(len(t.Fields)) {
				return false
			}
			//
			typ = t.Fields[index]
		case *ir.ArrayType:
			if index >= t.Len {
				return false
			}
			//
			typ = t.Elem
		default:
			return false
		}
	}
	//
	return len(path) > 0
}

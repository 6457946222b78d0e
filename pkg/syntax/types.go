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

	"github.com/rocforge/go-rocdl/pkg/ir"
	"github.com/rocforge/go-rocdl/pkg/util/source"
	"github.com/rocforge/go-rocdl/pkg/util/source/sexp"
)

// newTypeTranslator constructs a translator for the type grammar.  Every
// rule constructs a fresh type instance; types compare structurally, hence
// this loses nothing.
func newTypeTranslator(srcfile *source.File, srcmap *source.Map[sexp.SExp]) *sexp.Translator[ir.Type] {
	t := sexp.NewTranslator[ir.Type](srcfile, srcmap)
	//
	t.AddSymbolRule(scalarTypeRule)
	t.AddSymbolRule(unknownTypeRule)
	t.AddListRule("vec", vecTypeRule(t))
	t.AddListRule("ptr", ptrTypeRule(t))
	t.AddListRule("array", arrayTypeRule(t))
	t.AddListRule("struct", structTypeRule(t))
	t.AddListRule("memref", memrefTypeRule(t))
	//
	return t
}

// Rule for scalar types (e.g. "i32" or "bf16").
func scalarTypeRule(name string) (ir.Type, bool, error) {
	switch name {
	case "i8":
		return &ir.IntType{Bits: 8}, true, nil
	case "i16":
		return &ir.IntType{Bits: 16}, true, nil
	case "i32":
		return &ir.IntType{Bits: 32}, true, nil
	case "i64":
		return &ir.IntType{Bits: 64}, true, nil
	case "f16":
		return &ir.FloatType{Format: ir.IEEE16}, true, nil
	case "bf16":
		return &ir.FloatType{Format: ir.BFloat16}, true, nil
	case "f32":
		return &ir.FloatType{Format: ir.IEEE32}, true, nil
	case "f64":
		return &ir.FloatType{Format: ir.IEEE64}, true, nil
	}
	//
	return nil, false, nil
}

// Catch-all rule for symbols which name no known type.
func unknownTypeRule(name string) (ir.Type, bool, error) {
	return nil, true, fmt.Errorf("unknown type \"%s\"", name)
}

// Rule for vector types (e.g. "(vec 4 f32)").
func vecTypeRule(t *sexp.Translator[ir.Type]) sexp.ListRule[ir.Type] {
	return func(l *sexp.List) (ir.Type, []source.SyntaxError) {
		if l.Len() != 3 {
			return nil, t.SyntaxErrors(l, "malformed vector type")
		}
		//
		n, ok := uintValue(l.Get(1))
		//
		if !ok {
			return nil, t.SyntaxErrors(l.Get(1), "malformed vector length")
		}
		//
		elem, errs := t.Translate(l.Get(2))
		//
		if len(errs) != 0 {
			return nil, errs
		}
		//
		return &ir.VectorType{Len: uint(n), Elem: elem}, nil
	}
}

// Rule for pointer types (e.g. "(ptr f32 1)"), where the address space is
// optional.
func ptrTypeRule(t *sexp.Translator[ir.Type]) sexp.ListRule[ir.Type] {
	return func(l *sexp.List) (ir.Type, []source.SyntaxError) {
		var space uint64
		//
		if l.Len() != 2 && l.Len() != 3 {
			return nil, t.SyntaxErrors(l, "malformed pointer type")
		}
		//
		elem, errs := t.Translate(l.Get(1))
		//
		if len(errs) != 0 {
			return nil, errs
		}
		//
		if l.Len() == 3 {
			var ok bool
			//
			if space, ok = uintValue(l.Get(2)); !ok {
				return nil, t.SyntaxErrors(l.Get(2), "malformed address space")
			}
		}
		//
		return &ir.PointerType{Elem: elem, Space: uint(space)}, nil
	}
}

// Rule for array types (e.g. "(array 2 i64)").
func arrayTypeRule(t *sexp.Translator[ir.Type]) sexp.ListRule[ir.Type] {
	return func(l *sexp.List) (ir.Type, []source.SyntaxError) {
		if l.Len() != 3 {
			return nil, t.SyntaxErrors(l, "malformed array type")
		}
		//
		n, ok := uintValue(l.Get(1))
		//
		if !ok {
			return nil, t.SyntaxErrors(l.Get(1), "malformed array length")
		}
		//
		elem, errs := t.Translate(l.Get(2))
		//
		if len(errs) != 0 {
			return nil, errs
		}
		//
		return &ir.ArrayType{Len: uint(n), Elem: elem}, nil
	}
}

// Rule for struct types (e.g. "(struct (ptr f32) (ptr f32) i64)").
func structTypeRule(t *sexp.Translator[ir.Type]) sexp.ListRule[ir.Type] {
	return func(l *sexp.List) (ir.Type, []source.SyntaxError) {
		fields := make([]ir.Type, l.Len()-1)
		//
		for i := 1; i < l.Len(); i++ {
			field, errs := t.Translate(l.Get(i))
			//
			if len(errs) != 0 {
				return nil, errs
			}
			//
			fields[i-1] = field
		}
		//
		return &ir.StructType{Fields: fields}, nil
	}
}

// Rule for memref types (e.g. "(memref [4 8] (strides [8 1]) (offset 0)
// (space 1) f32)").  The shape comes first and the element type last, with
// any layout and address space clauses in between.
func memrefTypeRule(t *sexp.Translator[ir.Type]) sexp.ListRule[ir.Type] {
	return func(l *sexp.List) (ir.Type, []source.SyntaxError) {
		if l.Len() < 3 {
			return nil, t.SyntaxErrors(l, "malformed memref type")
		}
		//
		shape, errs := extentsOf(t, l.Get(1))
		//
		if len(errs) != 0 {
			return nil, errs
		}
		//
		elem, errs := t.Translate(l.Get(l.Len() - 1))
		//
		if len(errs) != 0 {
			return nil, errs
		}
		//
		var (
			strides []ir.Extent
			offset  = ir.Known(0)
			tiles   []uint64
			strided bool
			space   uint64
		)
		// Process layout / address space clauses
		for i := 2; i < l.Len()-1; i++ {
			clause := l.Get(i).AsList()
			//
			if clause == nil || clause.Len() != 2 || clause.Get(0).AsSymbol() == nil {
				return nil, t.SyntaxErrors(l.Get(i), "malformed memref clause")
			}
			//
			switch clause.Get(0).AsSymbol().Value {
			case "strides":
				if strides, errs = extentsOf(t, clause.Get(1)); len(errs) != 0 {
					return nil, errs
				}
				//
				strided = true
			case "offset":
				var ok bool
				//
				if offset, ok = extentValue(clause.Get(1)); !ok {
					return nil, t.SyntaxErrors(clause.Get(1), "malformed offset")
				}
				//
				strided = true
			case "tile":
				if tiles, errs = tilesOf(t, clause.Get(1)); len(errs) != 0 {
					return nil, errs
				}
			case "space":
				var ok bool
				//
				if space, ok = uintValue(clause.Get(1)); !ok {
					return nil, t.SyntaxErrors(clause.Get(1), "malformed address space")
				}
			default:
				return nil, t.SyntaxErrors(l.Get(i), "unknown memref clause")
			}
		}
		//
		memref := &ir.MemRefType{Elem: elem, Shape: shape, Space: uint(space)}
		// Assemble layout
		switch {
		case strided && tiles != nil:
			return nil, t.SyntaxErrors(l, "memref cannot have both strided and tiled layout")
		case strides != nil && len(strides) != len(shape):
			return nil, t.SyntaxErrors(l, fmt.Sprintf("expected %d strides, found %d", len(shape), len(strides)))
		case strided && strides == nil:
			return nil, t.SyntaxErrors(l, "offset clause requires a strides clause")
		case strided:
			memref.Layout = &ir.StridedLayout{Strides: strides, Offset: offset}
		case tiles != nil:
			memref.Layout = &ir.TileLayout{Tiles: tiles}
		}
		//
		return memref, nil
	}
}

// extentsOf parses an array of extents (e.g. "[4 ? 8]"), where "?" marks a
// dynamic extent.
func extentsOf(t *sexp.Translator[ir.Type], s sexp.SExp) ([]ir.Extent, []source.SyntaxError) {
	array := s.AsArray()
	//
	if array == nil {
		return nil, t.SyntaxErrors(s, "expected an array of extents")
	}
	//
	extents := make([]ir.Extent, array.Len())
	//
	for i := 0; i < array.Len(); i++ {
		extent, ok := extentValue(array.Get(i))
		//
		if !ok {
			return nil, t.SyntaxErrors(array.Get(i), "malformed extent")
		}
		//
		extents[i] = extent
	}
	//
	return extents, nil
}

// tilesOf parses an array of tile sizes (e.g. "[16 16]"), which are always
// static.
func tilesOf(t *sexp.Translator[ir.Type], s sexp.SExp) ([]uint64, []source.SyntaxError) {
	array := s.AsArray()
	//
	if array == nil {
		return nil, t.SyntaxErrors(s, "expected an array of tile sizes")
	}
	//
	tiles := make([]uint64, array.Len())
	//
	for i := 0; i < array.Len(); i++ {
		tile, ok := uintValue(array.Get(i))
		//
		if !ok {
			return nil, t.SyntaxErrors(array.Get(i), "malformed tile size")
		}
		//
		tiles[i] = tile
	}
	//
	return tiles, nil
}

// extentValue parses a single extent, being either an unsigned integer or
// "?" for dynamic.
func extentValue(s sexp.SExp) (ir.Extent, bool) {
	symbol := s.AsSymbol()
	//
	if symbol == nil {
		return ir.Extent{}, false
	} else if symbol.Value == "?" {
		return ir.Dynamic(), true
	}
	//
	n, err := strconv.ParseUint(symbol.Value, 10, 64)
	//
	if err != nil {
		return ir.Extent{}, false
	}
	//
	return ir.Known(n), true
}

// uintValue parses an unsigned integer symbol.
func uintValue(s sexp.SExp) (uint64, bool) {
	symbol := s.AsSymbol()
	//
	if symbol == nil {
		return 0, false
	}
	//
	n, err := strconv.ParseUint(symbol.Value, 10, 64)
	//
	return n, err == nil
}

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
package ir

import (
	"fmt"
	"strings"
)

// Type represents the type of a value within a kernel, such as a 32bit
// integer, a vector of floats, or a strided multi-dimensional array (memref).
type Type interface {
	// String returns the canonical textual form of this type.
	String() string
}

// Convenience instances for the primitive scalar types.  Observe that types
// compare structurally (via Equal), hence fresh instances constructed
// elsewhere are interchangeable with these.
var (
	// I8 is the 8bit integer type.
	I8 = &IntType{8}
	// I16 is the 16bit integer type.
	I16 = &IntType{16}
	// I32 is the 32bit integer type.
	I32 = &IntType{32}
	// I64 is the 64bit integer type.
	I64 = &IntType{64}
	// F16 is the IEEE 754 half precision type.
	F16 = &FloatType{IEEE16}
	// BF16 is the bfloat16 type (truncated single precision).
	BF16 = &FloatType{BFloat16}
	// F32 is the IEEE 754 single precision type.
	F32 = &FloatType{IEEE32}
	// F64 is the IEEE 754 double precision type.
	F64 = &FloatType{IEEE64}
)

// ============================================================================
// Scalars
// ============================================================================

// IntType represents an integer type of a given bit width.
type IntType struct {
	// Width of this type in bits.
	Bits uint
}

func (p *IntType) String() string {
	return fmt.Sprintf("i%d", p.Bits)
}

// FloatFormat distinguishes the supported floating point encodings.
type FloatFormat uint8

const (
	// IEEE16 is IEEE 754 binary16.
	IEEE16 FloatFormat = iota
	// BFloat16 is the 16bit truncated form of binary32.
	BFloat16
	// IEEE32 is IEEE 754 binary32.
	IEEE32
	// IEEE64 is IEEE 754 binary64.
	IEEE64
)

// FloatType represents a floating point type of a given format.
type FloatType struct {
	// Encoding of this type.
	Format FloatFormat
}

func (p *FloatType) String() string {
	switch p.Format {
	case IEEE16:
		return "f16"
	case BFloat16:
		return "bf16"
	case IEEE32:
		return "f32"
	case IEEE64:
		return "f64"
	}
	//
	panic("unknown float format")
}

// ============================================================================
// Aggregates
// ============================================================================

// VectorType represents a fixed-length vector of some scalar element type.
type VectorType struct {
	// Number of lanes.
	Len uint
	// Element type of each lane.
	Elem Type
}

// NewVectorType constructs a vector type with a given number of lanes.
func NewVectorType(n uint, elem Type) *VectorType {
	return &VectorType{n, elem}
}

func (p *VectorType) String() string {
	return fmt.Sprintf("(vec %d %s)", p.Len, p.Elem.String())
}

// PointerType represents a pointer into a given address space.
type PointerType struct {
	// Type pointed to.
	Elem Type
	// Address space pointed into.
	Space uint
}

func (p *PointerType) String() string {
	if p.Space != 0 {
		return fmt.Sprintf("(ptr %s %d)", p.Elem.String(), p.Space)
	}
	//
	return fmt.Sprintf("(ptr %s)", p.Elem.String())
}

// StructType represents a sequence of fields of arbitrary type.
type StructType struct {
	// Field types, in order.
	Fields []Type
}

func (p *StructType) String() string {
	var builder strings.Builder
	//
	builder.WriteString("(struct")
	//
	for _, f := range p.Fields {
		builder.WriteString(" ")
		builder.WriteString(f.String())
	}
	//
	builder.WriteString(")")
	//
	return builder.String()
}

// ArrayType represents a fixed-length array of some element type.
type ArrayType struct {
	// Number of elements.
	Len uint
	// Element type.
	Elem Type
}

func (p *ArrayType) String() string {
	return fmt.Sprintf("(array %d %s)", p.Len, p.Elem.String())
}

// ============================================================================
// MemRefs
// ============================================================================

// Extent describes one component of a memref shape or layout: either a value
// known at compile time, or a value determined only at kernel runtime.
type Extent struct {
	// Indicates whether value known at compile time.
	known bool
	// The value itself (when known).
	value uint64
}

// Known constructs an extent whose value is known at compile time.
func Known(value uint64) Extent {
	return Extent{true, value}
}

// Dynamic constructs an extent whose value is determined at runtime.
func Dynamic() Extent {
	return Extent{false, 0}
}

// IsKnown indicates whether or not this extent is known at compile time.
func (e Extent) IsKnown() bool {
	return e.known
}

// Value returns the compile time value of this extent, or panics if it is
// dynamic.
func (e Extent) Value() uint64 {
	if !e.known {
		panic("cannot take value of dynamic extent")
	}
	//
	return e.value
}

func (e Extent) String() string {
	if !e.known {
		return "?"
	}
	//
	return fmt.Sprintf("%d", e.value)
}

// Layout describes how the elements of a memref map onto linear memory.
type Layout interface {
	isLayout()
}

// StridedLayout maps element indices onto memory via a per-dimension stride
// and a base offset, all measured in elements.
type StridedLayout struct {
	// Stride for each dimension, in elements.
	Strides []Extent
	// Offset from the base pointer, in elements.
	Offset Extent
}

func (p *StridedLayout) isLayout() {}

// TileLayout groups elements into fixed-size tiles.  Tiled memrefs have no
// single stride per dimension and, hence, cannot be addressed by the raw
// buffer instructions.
type TileLayout struct {
	// Size of a tile in each dimension.
	Tiles []uint64
}

func (p *TileLayout) isLayout() {}

// MemRefType represents a multi-dimensional array of elements laid out in
// linear memory.  A nil layout means the canonical row-major layout for the
// shape.
type MemRefType struct {
	// Element type.
	Elem Type
	// Size of each dimension.
	Shape []Extent
	// Element layout, or nil for row-major.
	Layout Layout
	// Address space the elements reside in.
	Space uint
}

// NewMemRefType constructs a memref type with the canonical row-major layout.
func NewMemRefType(elem Type, shape ...Extent) *MemRefType {
	return &MemRefType{elem, shape, nil, 0}
}

// Rank returns the number of dimensions of this memref.
func (p *MemRefType) Rank() uint {
	return uint(len(p.Shape))
}

// HasStaticShape determines whether every dimension of this memref is known
// at compile time.
func (p *MemRefType) HasStaticShape() bool {
	for _, e := range p.Shape {
		if !e.IsKnown() {
			return false
		}
	}
	//
	return true
}

// NumElements returns the total number of elements in this memref, which must
// have a static shape.
func (p *MemRefType) NumElements() uint64 {
	count := uint64(1)
	//
	for _, e := range p.Shape {
		count *= e.Value()
	}
	//
	return count
}

// StridesAndOffset resolves the layout of this memref into a stride for each
// dimension and a base offset, all in elements.  For the row-major layout the
// strides are computed from the shape, where a dynamic dimension renders every
// stride to its left dynamic as well.  Tiled layouts have no such form, in
// which case false is returned.
func (p *MemRefType) StridesAndOffset() ([]Extent, Extent, bool) {
	switch layout := p.Layout.(type) {
	case nil:
		return rowMajorStrides(p.Shape), Known(0), true
	case *StridedLayout:
		return layout.Strides, layout.Offset, true
	case *TileLayout:
		return nil, Extent{}, false
	}
	//
	panic("unknown memref layout")
}

// Compute the row-major strides for a given shape.  The innermost dimension
// always has stride one, whilst each dimension before it strides over the
// product of the sizes to its right.
func rowMajorStrides(shape []Extent) []Extent {
	var (
		strides = make([]Extent, len(shape))
		acc     = Known(1)
	)
	//
	for i := len(shape) - 1; i >= 0; i-- {
		strides[i] = acc
		// Fold this dimension into the running product.
		if acc.IsKnown() && shape[i].IsKnown() {
			acc = Known(acc.Value() * shape[i].Value())
		} else {
			acc = Dynamic()
		}
	}
	//
	return strides
}

func (p *MemRefType) String() string {
	var builder strings.Builder
	//
	builder.WriteString("(memref ")
	builder.WriteString(extentsString(p.Shape))
	// Layout clauses (if any)
	switch layout := p.Layout.(type) {
	case *StridedLayout:
		builder.WriteString(" (strides ")
		builder.WriteString(extentsString(layout.Strides))
		builder.WriteString(") (offset ")
		builder.WriteString(layout.Offset.String())
		builder.WriteString(")")
	case *TileLayout:
		builder.WriteString(" (tile [")
		//
		for i, t := range layout.Tiles {
			if i != 0 {
				builder.WriteString(" ")
			}
			//
			fmt.Fprintf(&builder, "%d", t)
		}
		//
		builder.WriteString("])")
	}
	// Address space clause (if any)
	if p.Space != 0 {
		fmt.Fprintf(&builder, " (space %d)", p.Space)
	}
	//
	builder.WriteString(" ")
	builder.WriteString(p.Elem.String())
	builder.WriteString(")")
	//
	return builder.String()
}

func extentsString(extents []Extent) string {
	var builder strings.Builder
	//
	builder.WriteString("[")
	//
	for i, e := range extents {
		if i != 0 {
			builder.WriteString(" ")
		}
		//
		builder.WriteString(e.String())
	}
	//
	builder.WriteString("]")
	//
	return builder.String()
}

// ============================================================================
// Helpers
// ============================================================================

// BitWidth returns the width in bits of a scalar or vector type.
func BitWidth(t Type) uint {
	switch t := t.(type) {
	case *IntType:
		return t.Bits
	case *FloatType:
		switch t.Format {
		case IEEE16, BFloat16:
			return 16
		case IEEE32:
			return 32
		case IEEE64:
			return 64
		}
	case *VectorType:
		return t.Len * BitWidth(t.Elem)
	}
	//
	panic(fmt.Sprintf("type %s has no bit width", t.String()))
}

// Equal determines whether two types are structurally identical.
func Equal(a Type, b Type) bool {
	switch a := a.(type) {
	case *IntType:
		b, ok := b.(*IntType)
		return ok && a.Bits == b.Bits
	case *FloatType:
		b, ok := b.(*FloatType)
		return ok && a.Format == b.Format
	case *VectorType:
		b, ok := b.(*VectorType)
		return ok && a.Len == b.Len && Equal(a.Elem, b.Elem)
	case *PointerType:
		b, ok := b.(*PointerType)
		return ok && a.Space == b.Space && Equal(a.Elem, b.Elem)
	case *ArrayType:
		b, ok := b.(*ArrayType)
		return ok && a.Len == b.Len && Equal(a.Elem, b.Elem)
	case *StructType:
		b, ok := b.(*StructType)
		if !ok || len(a.Fields) != len(b.Fields) {
			return false
		}
		//
		for i := range a.Fields {
			if !Equal(a.Fields[i], b.Fields[i]) {
				return false
			}
		}
		//
		return true
	case *MemRefType:
		b, ok := b.(*MemRefType)
		return ok && a.Space == b.Space && Equal(a.Elem, b.Elem) &&
			equalExtents(a.Shape, b.Shape) && equalLayouts(a.Layout, b.Layout)
	}
	//
	panic("unknown type")
}

func equalExtents(a []Extent, b []Extent) bool {
	if len(a) != len(b) {
		return false
	}
	//
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	//
	return true
}

func equalLayouts(a Layout, b Layout) bool {
	switch a := a.(type) {
	case nil:
		return b == nil
	case *StridedLayout:
		b, ok := b.(*StridedLayout)
		return ok && equalExtents(a.Strides, b.Strides) && a.Offset == b.Offset
	case *TileLayout:
		b, ok := b.(*TileLayout)
		if !ok || len(a.Tiles) != len(b.Tiles) {
			return false
		}
		//
		for i := range a.Tiles {
			if a.Tiles[i] != b.Tiles[i] {
				return false
			}
		}
		//
		return true
	}
	//
	panic("unknown memref layout")
}

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
package source

import (
	"fmt"
)

// Span identifies a contiguous slice of an original source string.  Retaining
// the physical indices (rather than a string slice) allows us to determine
// the enclosing line, etc.
type Span struct {
	// Index of the first character of this span.
	start int
	// One past the final character of this span.
	end int
}

// NewSpan constructs a span, checking its internal invariant.
func NewSpan(start int, end int) Span {
	if start > end {
		panic("invalid span")
	}

	return Span{start, end}
}

// Start returns the index of the first character of this span.
func (p *Span) Start() int {
	return p.start
}

// End returns one past the last character of this span.
func (p *Span) End() int {
	return p.end
}

// Length returns the number of characters covered by this span.
func (p *Span) Length() int {
	return p.end - p.start
}

// Map associates terms of some translated form with spans of the source text
// they were translated from.  This is what allows an error arising on a term
// long after parsing to be reported against the exact source location the
// term came from.
type Map[T comparable] struct {
	// Span of the source text each term was translated from.
	mapping map[T]Span
	// Source file the spans index into.
	srcfile File
}

// NewSourceMap constructs an initially empty source map over a given file.
func NewSourceMap[T comparable](srcfile File) *Map[T] {
	return &Map[T]{make(map[T]Span), srcfile}
}

// Put records the span a given term was translated from.  Registering the
// same term twice is a bug in the translator, hence this panics.
func (p *Map[T]) Put(item T, span Span) {
	if _, ok := p.mapping[item]; ok {
		panic(fmt.Sprintf("span already recorded: %v", item))
	}
	//
	p.mapping[item] = span
}

// Has checks whether a span is recorded for the given term.
func (p *Map[T]) Has(item T) bool {
	_, ok := p.mapping[item]
	return ok
}

// Get returns the span a given term was translated from, or panics if no
// span was recorded for it.
func (p *Map[T]) Get(item T) Span {
	if s, ok := p.mapping[item]; ok {
		return s
	}

	panic(fmt.Sprintf("no span recorded: %v", item))
}

// Maps aggregates the source maps of several files, so that terms drawn from
// any of them can be looked up through a single handle.
type Maps[T comparable] struct {
	maps []*Map[T]
}

// NewSourceMaps constructs an (initially empty) set of source maps, which is
// populated as each file is parsed.
func NewSourceMaps[T comparable]() *Maps[T] {
	return &Maps[T]{}
}

// Join incorporates a given source map into this set.
func (p *Maps[T]) Join(srcmap *Map[T]) {
	p.maps = append(p.maps, srcmap)
}

// Has checks whether any of the source maps within records the given term.
func (p *Maps[T]) Has(node T) bool {
	for _, m := range p.maps {
		if m.Has(node) {
			return true
		}
	}
	//
	return false
}

// SyntaxError constructs a syntax error for a given term against the source
// file it was parsed from.  The caller is expected to check Has first, hence
// an unmapped term panics.
//
//nolint:revive
func (p *Maps[T]) SyntaxError(node T, msg string) *SyntaxError {
	for _, m := range p.maps {
		if m.Has(node) {
			return m.srcfile.SyntaxError(m.Get(node), msg)
		}
	}
	//
	panic("no source map covers this node")
}

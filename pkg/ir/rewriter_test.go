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
	"testing"
)

func Test_Rewriter_01(t *testing.T) {
	// Walking without rewriting leaves the body untouched
	a, b, c := op("a"), op("b"), op("c")
	fn := body(a, b, c)
	//
	rewriter := NewRewriter(fn)
	for rewriter.Next() {
	}
	rewriter.Finish()
	//
	checkBody(t, fn, a, b, c)
}

func Test_Rewriter_02(t *testing.T) {
	// Emitted instructions land before the one being examined
	a, b, c := op("a"), op("b"), op("c")
	x := op("x")
	fn := body(a, b, c)
	//
	rewriter := NewRewriter(fn)
	for rewriter.Next() {
		if rewriter.Instruction() == Instruction(b) {
			rewriter.Emit(x)
		}
	}
	rewriter.Finish()
	//
	checkBody(t, fn, a, x, b, c)
}

func Test_Rewriter_03(t *testing.T) {
	a, b, c := op("a"), op("b"), op("c")
	fn := body(a, b, c)
	//
	rewriter := NewRewriter(fn)
	for rewriter.Next() {
		if rewriter.Instruction() == Instruction(b) {
			rewriter.Erase()
		}
	}
	rewriter.Finish()
	//
	checkBody(t, fn, a, c)
}

func Test_Rewriter_04(t *testing.T) {
	// Replacing an instruction patches up its downstream uses
	a := op("a")
	b := op("b", a)
	c := op("c", b)
	fn := body(a, b, c)
	//
	var r *testOp
	//
	rewriter := NewRewriter(fn)
	for rewriter.Next() {
		if rewriter.Instruction() == Instruction(b) {
			r = op("r", a)
			rewriter.Emit(r)
			rewriter.Replace(r)
		}
	}
	rewriter.Finish()
	//
	checkBody(t, fn, a, r, c)
	// Check use of b was rewritten to r
	if c.operands[0] != Value(r) {
		t.Errorf("use of replaced instruction not rewritten")
	}
}

func Test_Rewriter_05(t *testing.T) {
	// Replacement applies to operands of instructions already emitted
	a := op("a")
	b := op("b", a)
	fn := body(a, b)
	//
	var r *testOp
	//
	rewriter := NewRewriter(fn)
	for rewriter.Next() {
		if rewriter.Instruction() == Instruction(a) {
			r = op("r")
			rewriter.Emit(r)
			rewriter.Replace(r)
		}
	}
	rewriter.Finish()
	//
	checkBody(t, fn, r, b)
	//
	if b.operands[0] != Value(r) {
		t.Errorf("use of replaced instruction not rewritten")
	}
}

// ============================================================================
// Framework
// ============================================================================

// Simple value-producing instruction for exercising the rewriter.
type testOp struct {
	name     string
	operands []Value
}

func op(name string, operands ...Value) *testOp {
	return &testOp{name, operands}
}

func (p *testOp) Type() Type {
	return I32
}

func (p *testOp) Operands() []*Value {
	slots := make([]*Value, len(p.operands))
	//
	for i := range p.operands {
		slots[i] = &p.operands[i]
	}
	//
	return slots
}

func body(instructions ...Instruction) *Func {
	fn := NewFunc("test")
	fn.Append(instructions...)
	//
	return fn
}

func checkBody(t *testing.T, fn *Func, expected ...Instruction) {
	actual := fn.Body()
	//
	if len(actual) != len(expected) {
		t.Errorf("got %d instructions, expected %d", len(actual), len(expected))
		return
	}
	//
	for i := range expected {
		if actual[i] != expected[i] {
			t.Errorf("instruction %d: got %v, expected %v", i, actual[i], expected[i])
		}
	}
}

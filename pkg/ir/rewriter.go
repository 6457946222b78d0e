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

// Rewriter supports the instruction-by-instruction rewriting of a function
// body.  The client steps through the body with Next, examining each
// instruction in turn.  Instructions emitted during a step are placed
// immediately before the instruction being examined, which itself either
// survives unchanged, is erased, or is replaced by some previously emitted
// value.  Replacements are applied to the operands of the entire rewritten
// body once Finish is called, hence uses occurring downstream of a replaced
// instruction are patched up automatically.
type Rewriter struct {
	// Function being rewritten.
	fn *Func
	// Index of the instruction currently being examined.
	index int
	// Rewritten body accumulated so far.
	out []Instruction
	// Indicates whether the current instruction was erased or replaced.
	dropped bool
	// Pending use rewrites, applied on Finish.
	repl map[Value]Value
}

// NewRewriter constructs a rewriter positioned before the first instruction
// of the given function.
func NewRewriter(fn *Func) *Rewriter {
	return &Rewriter{
		fn:    fn,
		index: -1,
		repl:  make(map[Value]Value),
	}
}

// Next advances to the next instruction, retaining the previous one unless it
// was erased or replaced.  It returns false once the body is exhausted.
func (r *Rewriter) Next() bool {
	if r.index >= 0 && !r.dropped {
		r.out = append(r.out, r.fn.body[r.index])
	}
	//
	r.index++
	r.dropped = false
	//
	return r.index < len(r.fn.body)
}

// Instruction returns the instruction currently being examined.
func (r *Rewriter) Instruction() Instruction {
	return r.fn.body[r.index]
}

// Emit places a new instruction immediately before the instruction currently
// being examined.
func (r *Rewriter) Emit(instruction Instruction) {
	r.out = append(r.out, instruction)
}

// Replace removes the instruction currently being examined, arranging for all
// uses of its result to refer to the given value instead.
func (r *Rewriter) Replace(with Value) {
	from, ok := r.Instruction().(Value)
	// Sanity check instruction produces a value
	if !ok {
		panic("replaced instruction has no result")
	}
	//
	r.repl[from] = with
	r.dropped = true
}

// Erase removes the instruction currently being examined.  Any result it
// produces must be unused.
func (r *Rewriter) Erase() {
	r.dropped = true
}

// Finish commits the rewritten body back to the function, applying any
// pending use rewrites.
func (r *Rewriter) Finish() {
	for _, instruction := range r.out {
		for _, slot := range instruction.Operands() {
			if to, ok := r.repl[*slot]; ok {
				*slot = to
			}
		}
	}
	//
	r.fn.body = r.out
}

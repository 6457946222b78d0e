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
	"testing"

	"github.com/rocforge/go-rocdl/pkg/chipset"
	"github.com/rocforge/go-rocdl/pkg/ir"
	"github.com/rocforge/go-rocdl/pkg/ir/gpu"
)

func Test_Parse_01(t *testing.T) {
	checkRoundTrip(t,
		"(defun noop ()\n"+
			"  (return))\n")
}

func Test_Parse_02(t *testing.T) {
	checkRoundTrip(t,
		"(defun copy ((%src (memref [64] (space 1) f32)) (%dst (memref [64] (space 1) f32)) (%i i32))\n"+
			"  (def %0 (amdgpu.raw.buffer.load f32 %src %i))\n"+
			"  (amdgpu.raw.buffer.store %0 %dst %i)\n"+
			"  (return))\n")
}

func Test_Parse_03(t *testing.T) {
	// Strided layout plus every attribute clause, in printing order
	checkRoundTrip(t,
		"(defun kernel ((%m (memref [4 8] (strides [8 1]) (offset 3) (space 1) i32)) (%i i32) (%j i32) (%s i32) (%v i32))\n"+
			"  (def %0 (amdgpu.raw.buffer.load i32 %m %i %j (soffset %s) (bounds-check false) (index-offset 2)))\n"+
			"  (amdgpu.raw.buffer.store %v %m %i %j)\n"+
			"  (amdgpu.lds.barrier)\n"+
			"  (return %0))\n")
}

func Test_Parse_04(t *testing.T) {
	// Multiple functions, dynamic shapes and repeated barriers
	checkRoundTrip(t,
		"(defun scale ((%m (memref [?] f32)) (%i i32) (%v f32))\n"+
			"  (amdgpu.raw.buffer.atomic.fadd %v %m %i)\n"+
			"  (return))\n"+
			"\n"+
			"(defun sync ()\n"+
			"  (amdgpu.lds.barrier)\n"+
			"  (amdgpu.lds.barrier)\n"+
			"  (return))\n")
}

func Test_Parse_05(t *testing.T) {
	// Intrinsic forms as produced by the lowering
	checkRoundTrip(t,
		"(defun lowered ((%rsrc (vec 4 i32)) (%data i32) (%acc f32) (%off i32))\n"+
			"  (def %0 (const i32 0))\n"+
			"  (def %1 (umax %off %0))\n"+
			"  (rocdl.raw.buffer.store %data %rsrc %1 %0 %0)\n"+
			"  (def %2 (rocdl.raw.buffer.load i32 %rsrc %1 %0 %0))\n"+
			"  (rocdl.raw.buffer.atomic.fadd %acc %rsrc %1 %0 %0)\n"+
			"  (rocdl.inline.asm \"s_waitcnt lgkmcnt(0)\\ns_barrier\" \"\" side-effects)\n"+
			"  (return %2))\n")
}

func Test_Parse_06(t *testing.T) {
	// Lowered modules print to a stable textual form
	text := "(defun kernel ((%m (memref [4 8] (space 1) i32)) (%i i32) (%j i32))\n" +
		"  (def %0 (amdgpu.raw.buffer.load i32 %m %i %j))\n" +
		"  (return %0))\n"
	//
	module := parseKernel(t, text)
	//
	chip, err := chipset.Parse("gfx908")
	//
	if err != nil {
		t.Fatal(err)
	}
	//
	if errs := gpu.NewLowering(chip).LowerModule(module); len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	//
	checkRoundTrip(t, Print(module))
}

func Test_Parse_07(t *testing.T) {
	// Float constants print as raw bits, integers as unsigned decimal
	checkConstText(t, "f16", "1.0", "0x3c00")
	checkConstText(t, "bf16", "1.5", "0x3fc0")
	checkConstText(t, "f32", "1.0", "0x3f800000")
	checkConstText(t, "f64", "1.0", "0x3ff0000000000000")
	checkConstText(t, "f64", "0x3ff0000000000000", "0x3ff0000000000000")
	checkConstText(t, "i32", "-1", "4294967295")
	checkConstText(t, "i32", "0xff", "255")
	checkConstText(t, "i64", "42", "42")
}

// ============================================================================
// Errors
// ============================================================================

func Test_Parse_08(t *testing.T) {
	checkRejects(t, "(foo)\n", "expected function definition")
}

func Test_Parse_09(t *testing.T) {
	checkRejects(t,
		"(defun f ()\n  (foo))\n",
		"unknown operation foo")
}

func Test_Parse_10(t *testing.T) {
	checkRejects(t,
		"(defun f ()\n  (return %x))\n",
		"unknown value %x")
}

func Test_Parse_11(t *testing.T) {
	// Value-producing operations must be bound
	checkRejects(t,
		"(defun f ((%m (memref [8] f32)) (%i i32))\n  (amdgpu.raw.buffer.load f32 %m %i)\n  (return))\n",
		"result of operation must be bound with def")
}

func Test_Parse_12(t *testing.T) {
	// ... and only those
	checkRejects(t,
		"(defun f ((%m (memref [8] f32)) (%i i32) (%v f32))\n  (def %0 (amdgpu.raw.buffer.store %v %m %i))\n  (return))\n",
		"operation produces no result")
}

func Test_Parse_13(t *testing.T) {
	checkRejects(t,
		"(defun f ()\n  (def %0))\n",
		"malformed def")
}

func Test_Parse_14(t *testing.T) {
	checkRejects(t,
		"(defun f ()\n  (def %0 (const i32 1))\n  (def %0 (const i32 2))\n  (return))\n",
		"value %0 already defined")
}

func Test_Parse_15(t *testing.T) {
	checkRejects(t,
		"(defun f ((%a i32) (%a i32))\n  (return))\n",
		"parameter %a already declared")
}

func Test_Parse_16(t *testing.T) {
	checkRejects(t,
		"(defun f ()\n  (return))\n(defun f ()\n  (return))\n",
		"function f already defined")
}

func Test_Parse_17(t *testing.T) {
	checkRejects(t,
		"(defun f ((%a i33))\n  (return))\n",
		"unknown type \"i33\"")
}

func Test_Parse_18(t *testing.T) {
	checkRejects(t,
		"(defun f ((%m (memref [4 4] (strides [4 1]) (tile [2 2]) f32)))\n  (return))\n",
		"memref cannot have both strided and tiled layout")
	//
	checkRejects(t,
		"(defun f ((%m (memref [4 4] (strides [1]) f32)))\n  (return))\n",
		"expected 2 strides, found 1")
	//
	checkRejects(t,
		"(defun f ((%m (memref [4] (offset 2) f32)))\n  (return))\n",
		"offset clause requires a strides clause")
}

func Test_Parse_19(t *testing.T) {
	checkRejects(t,
		"(defun f ((%p (ptr f32)))\n  (def %0 (extractvalue %p 0))\n  (return %0))\n",
		"extractvalue path does not match aggregate")
}

func Test_Parse_20(t *testing.T) {
	// Ill-formed buffer operations are caught before the module is returned
	checkRejects(t,
		"(defun f ((%m (memref [4 8] i32)) (%i i32))\n  (def %0 (amdgpu.raw.buffer.load i32 %m %i))\n  (return %0))\n",
		"expected 2 indices to memref, found 1")
	//
	checkRejects(t,
		"(defun f ((%m (memref [8] i32)) (%i i32) (%v i32))\n  (amdgpu.raw.buffer.atomic.fadd %v %m %i)\n  (return))\n",
		"atomic fadd requires a floating point element type")
}

func Test_Parse_21(t *testing.T) {
	checkRejects(t,
		"(defun f ()\n  (rocdl.inline.asm nop \"\")\n  (return))\n",
		"malformed string literal")
	//
	checkRejects(t,
		"(defun f ()\n  (rocdl.inline.asm \"nop\" \"\" effects)\n  (return))\n",
		"expected side-effects")
}

// ============================================================================
// Framework
// ============================================================================

// parseKernel parses a module, failing the test on any error.
func parseKernel(t *testing.T, text string) *ir.Module {
	module, _, errs := ParseString(text)
	//
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	//
	return module
}

// checkRoundTrip parses canonical text and checks it prints back identically.
func checkRoundTrip(t *testing.T, text string) {
	if actual := Print(parseKernel(t, text)); actual != text {
		t.Errorf("got:\n%s\nexpected:\n%s", actual, text)
	}
}

// checkRejects parses ill-formed text, checking the first error reported.
func checkRejects(t *testing.T, text string, msg string) {
	_, _, errs := ParseString(text)
	//
	if len(errs) == 0 {
		t.Fatalf("expected an error parsing \"%s\"", text)
	} else if errs[0].Message() != msg {
		t.Errorf("got \"%s\", expected \"%s\"", errs[0].Message(), msg)
	}
}

// checkConstText checks the printed form of a single constant literal.
func checkConstText(t *testing.T, typ string, literal string, expected string) {
	text := "(defun f ()\n  (def %0 (const " + typ + " " + literal + "))\n  (return))\n"
	rendered := "(defun f ()\n  (def %0 (const " + typ + " " + expected + "))\n  (return))\n"
	//
	if actual := Print(parseKernel(t, text)); actual != rendered {
		t.Errorf("got:\n%s\nexpected:\n%s", actual, rendered)
	}
}
